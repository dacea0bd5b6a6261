package declaration

// Module represents a program unit contributing declarations
type Module struct {
	ID           string         `yaml:"module"`
	Origin       Origin         `yaml:"origin"`
	Requires     []string       `yaml:"requires,omitempty"`
	Declarations []*Declaration `yaml:"declarations,omitempty"`

	declarationMap map[string]int
}

// NewModule creates a module
func NewModule(id string, origin Origin, requires ...string) *Module {
	return &Module{ID: id, Origin: origin, Requires: requires}
}

// AddDeclaration adds a declaration, module and origin are inherited from the module
func (m *Module) AddDeclaration(decl *Declaration) {
	if decl.Module == "" {
		decl.Module = m.ID
	}
	if decl.Origin == "" {
		decl.Origin = m.Origin
	}
	if decl.FQN == "" {
		decl.FQN = decl.Name
	}
	if decl.Name == "" {
		decl.Name = ShortName(decl.FQN)
	}
	m.Declarations = append(m.Declarations, decl)
	if m.declarationMap == nil {
		m.declarationMap = make(map[string]int)
	}
	if _, ok := m.declarationMap[decl.FQN]; !ok {
		m.declarationMap[decl.FQN] = len(m.Declarations) - 1
	}
}

// Lookup retrieves a declaration by fully qualified name
func (m *Module) Lookup(fqn string) *Declaration {
	if len(m.declarationMap) == 0 {
		return nil
	}
	if idx, ok := m.declarationMap[fqn]; ok && idx < len(m.Declarations) {
		return m.Declarations[idx]
	}
	return nil
}

// Requirement returns true if the module directly requires the other module
func (m *Module) Requirement(id string) bool {
	for _, candidate := range m.Requires {
		if candidate == id {
			return true
		}
	}
	return false
}
