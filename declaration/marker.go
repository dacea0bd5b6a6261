package declaration

import "github.com/viant/reactor/reactive"

// MarkerModule builds the marker library module with root sentinel and command type
func MarkerModule(marker string) *Module {
	module := NewModule(marker, External)
	module.AddDeclaration(&Declaration{
		FQN:  RootFQN(marker),
		Name: reactive.EntityName,
	})
	module.AddDeclaration(&Declaration{
		FQN:  CommandFQN(marker),
		Name: reactive.CommandName,
	})
	return module
}
