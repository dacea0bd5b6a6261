package observed

import "strings"

// Root is the fixed sentinel every observed path starts with
const Root = "Root"

const separator = "."

// Path is a canonical change notification path, e.g. Root.Settings.IsDay
type Path string

// NewPath creates a path rooted at Root for the given segments
func NewPath(segments ...string) Path {
	builder := strings.Builder{}
	builder.WriteString(Root)
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		builder.WriteString(separator)
		builder.WriteString(segment)
	}
	return Path(builder.String())
}

// Under returns true if path equals prefix or is nested under it
func (p Path) Under(prefix Path) bool {
	if p == prefix {
		return true
	}
	return strings.HasPrefix(string(p), string(prefix)+separator)
}

func (p Path) String() string {
	return string(p)
}
