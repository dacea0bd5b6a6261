package declaration

import "strings"

// Origin indicates where a declaration comes from
type Origin string

const (
	// Local declarations come from the program being built, full source is visible
	Local Origin = "local"
	// External declarations come from a dependency, only public surface is visible
	External Origin = "external"
)

// TriggerMode controls how a trigger propagates
type TriggerMode string

const (
	// Render triggers always join the binding re-render filter
	Render TriggerMode = "render"
	// Hook triggers only feed entity hooks, they never re-render
	Hook TriggerMode = "hook"
)

// TriggerKind indicates what kind of member a trigger is declared on
type TriggerKind string

const (
	PropertyTrigger TriggerKind = "property"
	CommandTrigger  TriggerKind = "command"
)

// Declaration represents a type declaration visible through the index
type Declaration struct {
	FQN         string            `yaml:"fqn"`
	Name        string            `yaml:"name"`
	Module      string            `yaml:"module"`
	Origin      Origin            `yaml:"origin"`
	Base        string            `yaml:"base,omitempty"`
	Properties  []*Member         `yaml:"properties,omitempty"`
	Commands    []*Member         `yaml:"commands,omitempty"`
	References  []*Reference      `yaml:"references,omitempty"`
	Triggers    []*Trigger        `yaml:"triggers,omitempty"`
	TypeParams  []*TypeParam      `yaml:"typeParams,omitempty"`
	Annotations map[string]string `yaml:"annotations,omitempty"`
	Location    string            `yaml:"location,omitempty"`

	propertyMap map[string]int
	commandMap  map[string]int
}

// Member represents a property or command member
type Member struct {
	Name        string            `yaml:"name"`
	Type        string            `yaml:"type,omitempty"`
	Annotations map[string]string `yaml:"annotations,omitempty"`
	Location    string            `yaml:"location,omitempty"`
}

// Reference represents a declared dependency on another entity
type Reference struct {
	Name     string   `yaml:"name"`
	Alias    string   `yaml:"alias,omitempty"`
	Target   string   `yaml:"target"`
	Usage    []string `yaml:"usage,omitempty"`
	Location string   `yaml:"location,omitempty"`
}

// Trigger represents a trigger annotation on a member
type Trigger struct {
	Member string      `yaml:"member"`
	Mode   TriggerMode `yaml:"mode,omitempty"`
	Kind   TriggerKind `yaml:"kind,omitempty"`
}

// TypeParam represents a generic type parameter
type TypeParam struct {
	Name       string `yaml:"name"`
	Constraint string `yaml:"constraint,omitempty"`
}

// AliasName returns explicit alias or PascalCase of the reference name
func (r *Reference) AliasName() string {
	if r.Alias != "" {
		return r.Alias
	}
	return PascalCase(r.Name)
}

// Descriptor returns canonical trigger text
func (t *Trigger) Descriptor() string {
	return t.Member + ":" + string(t.ModeOrDefault()) + ":" + string(t.KindOrDefault())
}

// ModeOrDefault returns trigger mode, render by default
func (t *Trigger) ModeOrDefault() TriggerMode {
	if t.Mode == "" {
		return Render
	}
	return t.Mode
}

// KindOrDefault returns trigger kind, property by default
func (t *Trigger) KindOrDefault() TriggerKind {
	if t.Kind == "" {
		return PropertyTrigger
	}
	return t.Kind
}

// Init indexes members for quick lookup, declarations must not change afterwards
func (d *Declaration) Init() {
	d.propertyMap = indexMembers(d.Properties)
	d.commandMap = indexMembers(d.Commands)
}

// Property retrieves a property by name
func (d *Declaration) Property(name string) *Member {
	return lookupMember(d.Properties, d.propertyMap, name)
}

// Command retrieves a command by name
func (d *Declaration) Command(name string) *Member {
	return lookupMember(d.Commands, d.commandMap, name)
}

// AddProperty adds a property
func (d *Declaration) AddProperty(member *Member) {
	d.Properties = append(d.Properties, member)
	d.propertyMap = nil
}

// AddCommand adds a command
func (d *Declaration) AddCommand(member *Member) {
	d.Commands = append(d.Commands, member)
	d.commandMap = nil
}

func lookupMember(members []*Member, index map[string]int, name string) *Member {
	if index != nil {
		if idx, ok := index[name]; ok && idx < len(members) {
			return members[idx]
		}
		return nil
	}
	for _, member := range members {
		if member != nil && member.Name == name {
			return member
		}
	}
	return nil
}

// Clone creates a deep copy of the declaration
func (d *Declaration) Clone() *Declaration {
	ret := &Declaration{
		FQN:      d.FQN,
		Name:     d.Name,
		Module:   d.Module,
		Origin:   d.Origin,
		Base:     d.Base,
		Location: d.Location,
	}
	for _, member := range d.Properties {
		ret.Properties = append(ret.Properties, member.clone())
	}
	for _, member := range d.Commands {
		ret.Commands = append(ret.Commands, member.clone())
	}
	for _, reference := range d.References {
		aCopy := *reference
		aCopy.Usage = append([]string(nil), reference.Usage...)
		ret.References = append(ret.References, &aCopy)
	}
	for _, trigger := range d.Triggers {
		aCopy := *trigger
		ret.Triggers = append(ret.Triggers, &aCopy)
	}
	for _, param := range d.TypeParams {
		aCopy := *param
		ret.TypeParams = append(ret.TypeParams, &aCopy)
	}
	ret.Annotations = cloneAnnotations(d.Annotations)
	return ret
}

func (m *Member) clone() *Member {
	aCopy := *m
	aCopy.Annotations = cloneAnnotations(m.Annotations)
	return &aCopy
}

func cloneAnnotations(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	ret := make(map[string]string, len(src))
	for k, v := range src {
		ret[k] = v
	}
	return ret
}

func indexMembers(members []*Member) map[string]int {
	ret := make(map[string]int, len(members))
	for i, member := range members {
		if member == nil {
			continue
		}
		if _, ok := ret[member.Name]; !ok {
			ret[member.Name] = i
		}
	}
	return ret
}

// FQN builds fully qualified name from package path and type name
func FQN(pkgPath, name string) string {
	if pkgPath == "" {
		return name
	}
	return pkgPath + "." + name
}

// ShortName returns type name part of a fully qualified name
func ShortName(fqn string) string {
	fqn = TypeName(fqn)
	if index := strings.LastIndex(fqn, "/"); index != -1 {
		fqn = fqn[index+1:]
	}
	if index := strings.LastIndex(fqn, "."); index != -1 {
		return fqn[index+1:]
	}
	return fqn
}

// TypeName strips pointer markers, slice markers and generic arguments from a type expression
func TypeName(expr string) string {
	expr = strings.TrimSpace(expr)
	expr = strings.TrimLeft(expr, "*&[]")
	if index := strings.Index(expr, "["); index != -1 {
		expr = expr[:index]
	}
	return strings.TrimSpace(expr)
}

// PascalCase upper-cases the first letter of an identifier
func PascalCase(name string) string {
	name = strings.TrimLeft(name, "_")
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
