package diagnostic

import (
	"fmt"
	"sort"
	"strings"
)

// Kind identifies diagnostic category
type Kind string

const (
	UnresolvedReference         Kind = "UnresolvedReferenceError"
	AmbiguousReference          Kind = "AmbiguousReferenceError"
	CircularReference           Kind = "CircularReferenceError"
	UnusedReference             Kind = "UnusedReferenceWarning"
	CrossModuleExpansionSkipped Kind = "CrossModuleExpansionSkipped"
	NonReactiveBinding          Kind = "NonReactiveBindingWarning"
	UnresolvedTrigger           Kind = "UnresolvedTriggerWarning"
	DeepTriggerDropped          Kind = "DeepTriggerDropped"
)

// Severity represents diagnostic severity
type Severity string

const (
	Error   Severity = "error"
	Warning Severity = "warning"
	Info    Severity = "info"
)

// Severity returns default severity for the kind
func (k Kind) Severity() Severity {
	switch k {
	case UnresolvedReference, AmbiguousReference, CircularReference:
		return Error
	case CrossModuleExpansionSkipped:
		return Info
	default:
		return Warning
	}
}

// Diagnostic represents a single resolution finding
type Diagnostic struct {
	Kind     Kind     `yaml:"kind"`
	Severity Severity `yaml:"severity"`
	FQN      string   `yaml:"fqn"`
	Message  string   `yaml:"message"`
	Location string   `yaml:"location,omitempty"`
}

// New creates a diagnostic with the kind default severity
func New(kind Kind, fqn, location, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Kind:     kind,
		Severity: kind.Severity(),
		FQN:      fqn,
		Message:  fmt.Sprintf(format, args...),
		Location: location,
	}
}

func (d *Diagnostic) String() string {
	builder := strings.Builder{}
	builder.WriteString(string(d.Severity))
	builder.WriteString(": ")
	builder.WriteString(string(d.Kind))
	builder.WriteString(" ")
	builder.WriteString(d.FQN)
	if d.Location != "" {
		builder.WriteString(" (")
		builder.WriteString(d.Location)
		builder.WriteString(")")
	}
	builder.WriteString(": ")
	builder.WriteString(d.Message)
	return builder.String()
}

// Diagnostics represents diagnostic list
type Diagnostics []*Diagnostic

// Append appends non nil diagnostics
func (d *Diagnostics) Append(items ...*Diagnostic) {
	for _, item := range items {
		if item == nil {
			continue
		}
		*d = append(*d, item)
	}
}

// Sort sorts diagnostics by kind, fqn, message and location
func (d Diagnostics) Sort() {
	sort.SliceStable(d, func(i, j int) bool {
		if d[i].Kind != d[j].Kind {
			return d[i].Kind < d[j].Kind
		}
		if d[i].FQN != d[j].FQN {
			return d[i].FQN < d[j].FQN
		}
		if d[i].Message != d[j].Message {
			return d[i].Message < d[j].Message
		}
		return d[i].Location < d[j].Location
	})
}

// HasErrors returns true if any diagnostic has error severity
func (d Diagnostics) HasErrors() bool {
	for _, item := range d {
		if item.Severity == Error {
			return true
		}
	}
	return false
}

// ByKind returns diagnostics of the given kind
func (d Diagnostics) ByKind(kind Kind) Diagnostics {
	var ret Diagnostics
	for _, item := range d {
		if item.Kind == kind {
			ret = append(ret, item)
		}
	}
	return ret
}
