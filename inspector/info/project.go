package info

// Project represents a detected go module project
type Project struct {
	Name      string   `yaml:"name"`
	RootURL   string   `yaml:"rootURL"`
	Module    string   `yaml:"module"`
	GoVersion string   `yaml:"goVersion,omitempty"`
	Requires  []string `yaml:"requires,omitempty"`
	Origin    string   `yaml:"origin,omitempty"`
}

// Requirement returns true if project directly requires module
func (p *Project) Requirement(module string) bool {
	for _, candidate := range p.Requires {
		if candidate == module {
			return true
		}
	}
	return false
}
