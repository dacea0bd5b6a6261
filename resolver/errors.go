package resolver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/viant/reactor/diagnostic"
)

// ErrMarkerNotFound is returned when the index has no marker library root, the whole pass is aborted
var ErrMarkerNotFound = errors.New("marker library not found")

// UnresolvedReferenceError reports a reference target missing from the index
type UnresolvedReferenceError struct {
	From   string
	Alias  string
	Target string
	Reason string
}

func (e *UnresolvedReferenceError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unresolved reference %v to %v: %v", e.Alias, e.Target, e.Reason)
	}
	return fmt.Sprintf("unresolved reference %v to %v", e.Alias, e.Target)
}

// AmbiguousReferenceError reports a short type name matching more than one declaration
type AmbiguousReferenceError struct {
	From       string
	Alias      string
	Target     string
	Candidates []string
}

func (e *AmbiguousReferenceError) Error() string {
	return fmt.Sprintf("ambiguous reference %v to %v, candidates: %v", e.Alias, e.Target, strings.Join(e.Candidates, ", "))
}

// CircularReferenceError reports a reference cycle, the edge From.Alias closing it is suppressed
type CircularReferenceError struct {
	From  string
	Alias string
	Cycle []string
}

func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("circular reference %v via %v: %v -> %v", e.From, e.Alias, strings.Join(e.Cycle, " -> "), e.Cycle[0])
}

// asDiagnostic converts resolution error into a diagnostic record
func asDiagnostic(err error, fqn, location string) *diagnostic.Diagnostic {
	var unresolved *UnresolvedReferenceError
	var ambiguous *AmbiguousReferenceError
	var circular *CircularReferenceError
	switch {
	case errors.As(err, &unresolved):
		return diagnostic.New(diagnostic.UnresolvedReference, fqn, location, "%v", err.Error())
	case errors.As(err, &ambiguous):
		return diagnostic.New(diagnostic.AmbiguousReference, fqn, location, "%v", err.Error())
	case errors.As(err, &circular):
		return diagnostic.New(diagnostic.CircularReference, fqn, location, "%v", err.Error())
	}
	return nil
}
