// Package reactive is the marker library: types embedding Entity participate in the
// reactive binding system, fields of Command type are exposed as commands.
package reactive

// ModulePath is the marker library module path
const ModulePath = "github.com/viant/reactor"

const (
	// EntityName is the root sentinel type name
	EntityName = "Entity"
	// CommandName is the command type name
	CommandName = "Command"
)

// Entity is the root of every reactive entity base chain
type Entity struct{}

// Command marks a command member of a reactive entity
type Command struct {
	Executing bool
	Error     error
}

// CommandSurface lists operations on a command object, they never describe entity state
var CommandSurface = []string{"Execute", "CanExecute", "Cancel", "Error", "ResetError", "Executing"}
