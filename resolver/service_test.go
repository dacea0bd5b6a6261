package resolver

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/reactor/declaration"
	"github.com/viant/reactor/diagnostic"
	"gopkg.in/yaml.v3"
)

const testMarker = "github.com/viant/reactor"

func newCatalog(t *testing.T, modulesYAML string) *declaration.Catalog {
	var modules []*declaration.Module
	require.Nil(t, yaml.Unmarshal([]byte(modulesYAML), &modules))
	modules = append(modules, declaration.MarkerModule(testMarker))
	catalog, err := declaration.NewCatalog(testMarker, modules...)
	require.Nil(t, err)
	return catalog
}

func resolve(t *testing.T, modulesYAML string, bindings []*Binding, opts ...Option) *Result {
	result, err := New(opts...).Resolve(context.Background(), newCatalog(t, modulesYAML), bindings)
	require.Nil(t, err)
	return result
}

const weatherModules = `
- module: github.com/acme/app
  origin: local
  requires: [github.com/viant/reactor]
  declarations:
    - fqn: github.com/acme/app.Weather
      base: Entity
      properties: [{name: IsLoading}, {name: Forecasts}]
      references: [{name: settings, target: Settings}]
    - fqn: github.com/acme/app.Settings
      base: Entity
      properties: [{name: IsDay}]
`

func TestService_Resolve_Weather(t *testing.T) {
	var testCases = []struct {
		description string
		bindings    []*Binding
		expectKinds []diagnostic.Kind
	}{
		{
			description: "reference without usage evidence or bindings",
			expectKinds: []diagnostic.Kind{diagnostic.UnusedReference},
		},
		{
			description: "reference observed by a binding",
			bindings:    []*Binding{{Name: "forecast", Entity: "Weather", Accesses: []string{"Settings.IsDay", "IsLoading"}}},
		},
	}

	for _, testCase := range testCases {
		result := resolve(t, weatherModules, testCase.bindings)
		assert.Equal(t, []string{"Root.Forecasts", "Root.IsLoading", "Root.Settings.IsDay"}, result.Filter("github.com/acme/app.Weather"), testCase.description)
		assert.Equal(t, []string{"Root.IsDay"}, result.Filter("github.com/acme/app.Settings"), testCase.description)
		var kinds []diagnostic.Kind
		for _, item := range result.Diagnostics {
			kinds = append(kinds, item.Kind)
		}
		assert.Equal(t, testCase.expectKinds, kinds, testCase.description)
	}
}

func TestService_Resolve_Cycle(t *testing.T) {
	result := resolve(t, `
- module: app
  origin: local
  requires: [github.com/viant/reactor]
  declarations:
    - {fqn: app.A, base: Entity, properties: [{name: a}], references: [{name: b, target: app.B}]}
    - {fqn: app.B, base: Entity, properties: [{name: b}], references: [{name: c, target: app.C}]}
    - {fqn: app.C, base: Entity, properties: [{name: c}], references: [{name: a, target: app.A}]}
`, nil)

	cycles := result.Diagnostics.ByKind(diagnostic.CircularReference)
	require.Len(t, cycles, 1)
	assert.Equal(t, "app.C", cycles[0].FQN)
	assert.Equal(t, diagnostic.Error, cycles[0].Severity)
	assert.Contains(t, cycles[0].Message, "app.A -> app.B -> app.C -> app.A")

	assert.Equal(t, []string{"Root.B.b", "Root.a"}, result.Filter("app.A"))
	assert.Equal(t, []string{"Root.C.c", "Root.b"}, result.Filter("app.B"))
	assert.Equal(t, []string{"Root.c"}, result.Filter("app.C"), "cyclic edge contribution is excluded")
}

func TestService_Resolve_OneHop(t *testing.T) {
	result := resolve(t, `
- module: app
  origin: local
  requires: [github.com/viant/reactor]
  declarations:
    - {fqn: app.A, base: Entity, properties: [{name: a}], references: [{name: b, target: B}]}
    - {fqn: app.B, base: Entity, properties: [{name: b}], references: [{name: c, target: C}]}
    - {fqn: app.C, base: Entity, properties: [{name: OnlyInC}]}
`, nil)
	for _, aPath := range result.Filter("app.A") {
		assert.NotContains(t, aPath, "OnlyInC")
	}
	assert.Contains(t, result.Filter("app.B"), "Root.C.OnlyInC")
}

func TestService_Resolve_Inheritance(t *testing.T) {
	var testCases = []struct {
		description string
		baseMembers string
		expect      []string
	}{
		{
			description: "inherited members",
			baseMembers: "[{name: x}]",
			expect:      []string{"Root.Save", "Root.x", "Root.y"},
		},
		{
			description: "new base member reaches derived entities",
			baseMembers: "[{name: x}, {name: z}]",
			expect:      []string{"Root.Save", "Root.x", "Root.y", "Root.z"},
		},
		{
			description: "overridden member is not duplicated",
			baseMembers: "[{name: x}, {name: y}]",
			expect:      []string{"Root.Save", "Root.x", "Root.y"},
		},
	}

	for _, testCase := range testCases {
		result := resolve(t, `
- module: app
  origin: local
  requires: [github.com/viant/reactor]
  declarations:
    - {fqn: app.Base, base: Entity, properties: `+testCase.baseMembers+`}
    - {fqn: app.Middle, base: app.Base}
    - {fqn: app.Derived, base: Middle, properties: [{name: y}], commands: [{name: Save}]}
    - {fqn: app.Plain, properties: [{name: p}]}
`, nil)
		assert.Equal(t, testCase.expect, result.Filter("app.Derived"), testCase.description)
		derived := result.Entities["app.Derived"]
		require.NotNil(t, derived, testCase.description)
		assert.Equal(t, "app.Middle", derived.NearestBase, testCase.description)
		assert.Equal(t, []string{"Save", "y"}, derived.Direct, testCase.description)
		_, ok := result.Entities["app.Plain"]
		assert.False(t, ok, "non reactive type")
	}
}

func TestFlatten(t *testing.T) {
	catalog := newCatalog(t, `
- module: app
  origin: local
  declarations:
    - {fqn: app.Loop1, base: app.Loop2, properties: [{name: a}]}
    - {fqn: app.Loop2, base: app.Loop1}
    - {fqn: app.Base, base: github.com/viant/reactor/reactive.Entity, references: [{name: a, target: app.X}], triggers: [{member: b}]}
    - {fqn: app.Derived, base: "*app.Base", properties: [{name: b}], references: [{name: a, alias: A, target: app.Y}]}
`)
	_, ok := flatten(catalog, "app.Loop1")
	assert.False(t, ok, "cyclic base chain terminates without reaching root")
	_, ok = flatten(catalog, catalog.Root())
	assert.False(t, ok)

	entity, ok := flatten(catalog, "app.Derived")
	require.True(t, ok)
	assert.Equal(t, []string{"app.Derived", "app.Base"}, entity.Chain)
	require.Len(t, entity.References, 1)
	assert.Equal(t, "app.Y", entity.References[0].Target, "most derived reference wins")
	assert.True(t, entity.declares(entity.References[0]))
	require.Len(t, entity.Triggers, 1)
	assert.True(t, entity.derives("app.Base"))
	assert.False(t, entity.derives("app.Loop1"))
}

func TestService_Resolve_Bindings(t *testing.T) {
	modules := `
- module: app
  origin: local
  requires: [github.com/viant/reactor]
  declarations:
    - fqn: app.Home
      base: Entity
      properties: [{name: Settings}, {name: Items}]
      commands: [{name: RefreshCommand}]
    - fqn: app.Clock
      base: Entity
      properties: [{name: Time}]
      triggers: [{member: Time}]
`
	var testCases = []struct {
		description   string
		binding       *Binding
		expect        []string
		expectDropped []string
		nonReactive   bool
	}{
		{
			description: "longest prefix",
			binding:     &Binding{Name: "home", Entity: "app.Home", Accesses: []string{"Settings.Identity.Name"}},
			expect:      []string{"Root.Settings"},
		},
		{
			description: "command suffix stripping",
			binding:     &Binding{Name: "home", Entity: "Home", Accesses: []string{"RefreshCommand.Executing", "RefreshCommand.CanExecute()"}},
			expect:      []string{"Root.RefreshCommand"},
		},
		{
			description:   "indexers and root prefix",
			binding:       &Binding{Name: "home", Entity: "Home", Accesses: []string{"Root.Items[item.Index].Name", " Settings ", "Unknown.Value"}},
			expect:        []string{"Root.Items", "Root.Settings"},
			expectDropped: []string{"Unknown.Value"},
		},
		{
			description:   "non reactive binding",
			binding:       &Binding{Name: "home", Entity: "Home", Accesses: []string{"Missing"}},
			expect:        []string{},
			expectDropped: []string{"Missing"},
			nonReactive:   true,
		},
		{
			description: "trigger mandated path",
			binding:     &Binding{Name: "clock", Entity: "Clock"},
			expect:      []string{"Root.Time"},
		},
	}

	for _, testCase := range testCases {
		result := resolve(t, modules, []*Binding{testCase.binding})
		assert.Equal(t, testCase.expect, result.BindingFilter(testCase.binding.Name), testCase.description)
		assert.Equal(t, testCase.expectDropped, result.Bindings[testCase.binding.Name].Dropped, testCase.description)
		assert.Equal(t, testCase.nonReactive, len(result.Diagnostics.ByKind(diagnostic.NonReactiveBinding)) == 1, testCase.description)
	}
}

func TestService_Resolve_BindingEntity(t *testing.T) {
	result := resolve(t, weatherModules, []*Binding{
		{Name: "missing", Entity: "Missing", Accesses: []string{"X"}},
		{Entity: "Weather", Accesses: []string{"IsLoading"}},
	})
	_, ok := result.Bindings["missing"]
	assert.False(t, ok)
	assert.Len(t, result.Diagnostics.ByKind(diagnostic.UnresolvedReference), 1)
	assert.Equal(t, []string{"Root.IsLoading"}, result.BindingFilter("Weather#1"))
}

func TestService_Resolve_Triggers(t *testing.T) {
	result := resolve(t, `
- module: github.com/acme/app
  origin: local
  requires: [github.com/viant/reactor, github.com/acme/settings]
  declarations:
    - fqn: github.com/acme/app.Weather
      base: Entity
      properties: [{name: IsLoading}]
      commands: [{name: Refresh}]
      references:
        - {name: settings, target: github.com/acme/settings.Settings, usage: [IsDay]}
        - {name: clock, target: Clock, usage: [Time]}
      triggers:
        - {member: IsLoading}
        - {member: Refresh, kind: command, mode: hook}
        - {member: Missing}
    - fqn: github.com/acme/app.Clock
      base: Entity
      properties: [{name: Time}, {name: Zone}]
      references: [{name: zone, target: Zone, usage: [Offset]}]
      triggers: [{member: Time}, {member: Zone, mode: hook}]
    - fqn: github.com/acme/app.Zone
      base: Entity
      properties: [{name: Offset}]
      triggers: [{member: Offset}]
- module: github.com/acme/settings
  origin: external
  requires: [github.com/viant/reactor]
  declarations:
    - fqn: github.com/acme/settings.Settings
      base: Entity
      properties: [{name: IsDay}]
      triggers: [{member: IsDay}]
`, nil)

	weather := result.Entities["github.com/acme/app.Weather"]
	require.NotNil(t, weather)
	assert.Equal(t, []string{"Root.Clock.Time", "Root.IsLoading"}, weather.Triggered.Strings())
	assert.Equal(t, []string{"Root.Clock.Zone", "Root.Refresh"}, weather.Hooks.Strings())
	assert.Equal(t, []string{"Root.IsDay"}, result.Entities["github.com/acme/settings.Settings"].Triggered.Strings(), "render effect applies locally")

	crossModule := result.Diagnostics.ByKind(diagnostic.CrossModuleExpansionSkipped)
	require.Len(t, crossModule, 1)
	assert.Equal(t, diagnostic.Info, crossModule[0].Severity)
	assert.Equal(t, "github.com/acme/app.Weather", crossModule[0].FQN)

	deep := result.Diagnostics.ByKind(diagnostic.DeepTriggerDropped)
	require.Len(t, deep, 1)
	assert.Equal(t, "github.com/acme/app.Weather", deep[0].FQN)
	assert.Contains(t, deep[0].Message, "Offset")

	unresolved := result.Diagnostics.ByKind(diagnostic.UnresolvedTrigger)
	require.Len(t, unresolved, 1)
	assert.Contains(t, unresolved[0].Message, "Missing")
	assert.Empty(t, result.Diagnostics.ByKind(diagnostic.UnusedReference))
}

func TestService_Resolve_ReferenceErrors(t *testing.T) {
	result := resolve(t, `
- module: app
  origin: local
  requires: [github.com/viant/reactor]
  declarations:
    - fqn: app.Home
      base: Entity
      properties: [{name: Title}]
      references:
        - {name: settings, target: Settings}
        - {name: missing, target: Missing}
        - {name: plain, target: app.Plain}
        - {name: clock, target: "*app.Clock", usage: [Time]}
    - {fqn: app.Plain, properties: [{name: p}]}
    - {fqn: app.Clock, base: Entity, properties: [{name: Time}]}
    - {fqn: app.Settings, base: Entity, properties: [{name: IsDay}]}
- module: lib
  origin: external
  requires: [github.com/viant/reactor]
  declarations:
    - {fqn: lib.Settings, base: Entity, properties: [{name: Theme}]}
`, nil)

	ambiguous := result.Diagnostics.ByKind(diagnostic.AmbiguousReference)
	require.Len(t, ambiguous, 1)
	assert.Contains(t, ambiguous[0].Message, "app.Settings, lib.Settings")
	unresolved := result.Diagnostics.ByKind(diagnostic.UnresolvedReference)
	require.Len(t, unresolved, 2)
	assert.True(t, strings.Contains(unresolved[0].Message, "not a reactive entity") || strings.Contains(unresolved[1].Message, "not a reactive entity"))
	assert.Equal(t, []string{"Root.Clock.Time", "Root.Title"}, result.Filter("app.Home"), "failed references do not affect the entity")
	assert.True(t, result.Diagnostics.HasErrors())
}

func TestService_Resolve_Scan(t *testing.T) {
	result := resolve(t, `
- module: app
  origin: local
  declarations:
    - {fqn: app.Home, base: Entity, properties: [{name: Title}]}
- module: unrelated
  origin: external
  declarations:
    - {fqn: unrelated.Widget, base: Entity, properties: [{name: Size}]}
`, nil)
	assert.NotNil(t, result.Entities["app.Home"], "local modules are always scanned")
	assert.Nil(t, result.Entities["unrelated.Widget"], "external module without marker dependency")
}

func TestService_Resolve_MarkerNotFound(t *testing.T) {
	catalog, err := declaration.NewCatalog(testMarker, declaration.NewModule("app", declaration.Local))
	require.Nil(t, err)
	_, err = New().Resolve(context.Background(), catalog, nil)
	assert.True(t, errors.Is(err, ErrMarkerNotFound))
	_, err = New().Resolve(context.Background(), nil, nil)
	assert.True(t, errors.Is(err, ErrMarkerNotFound))
}

func TestService_Resolve_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Resolve(ctx, newCatalog(t, weatherModules), nil)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestService_Resolve_Deterministic(t *testing.T) {
	modules := `
- module: b
  origin: local
  requires: [github.com/viant/reactor]
  declarations:
    - {fqn: b.Y, base: Entity, properties: [{name: y2}, {name: y1}], references: [{name: x, target: a.X}, {name: missing, target: M}]}
- module: a
  origin: local
  requires: [github.com/viant/reactor]
  declarations:
    - {fqn: a.X, base: Entity, properties: [{name: x}], references: [{name: y, target: b.Y}]}
`
	bindings := []*Binding{{Name: "y", Entity: "b.Y", Accesses: []string{"X.x", "y1", "Nothing"}}}
	first, err := yaml.Marshal(resolve(t, modules, bindings))
	require.Nil(t, err)
	for i := 0; i < 5; i++ {
		next, err := yaml.Marshal(resolve(t, modules, bindings))
		require.Nil(t, err)
		assert.Equal(t, string(first), string(next))
	}
}

func TestService_Resolve_Cache(t *testing.T) {
	service := New(WithConfig(&Config{RootModule: "github.com/acme/app", CacheSize: 16}))
	modules := weatherModules + `
- module: github.com/acme/clock
  origin: local
  requires: [github.com/viant/reactor]
  declarations:
    - {fqn: github.com/acme/clock.Clock, base: Entity, properties: [{name: Time}]}
`
	first, err := service.Resolve(context.Background(), newCatalog(t, modules), nil)
	require.Nil(t, err)
	assert.Equal(t, Stats{Entities: 3, Computed: 3}, first.Stats)
	assert.Equal(t, "github.com/acme/app", first.RootModule)

	second, err := service.Resolve(context.Background(), newCatalog(t, modules), nil)
	require.Nil(t, err)
	assert.Equal(t, Stats{Entities: 3, Cached: 3}, second.Stats, "structurally identical input")
	assert.Equal(t, first.Filter("github.com/acme/app.Weather"), second.Filter("github.com/acme/app.Weather"))

	changed := strings.Replace(modules, "properties: [{name: IsDay}]", "properties: [{name: IsDay}, {name: Sunrise}]", 1)
	third, err := service.Resolve(context.Background(), newCatalog(t, changed), nil)
	require.Nil(t, err)
	assert.Equal(t, Stats{Entities: 3, Computed: 2, Cached: 1, Invalidated: 2}, third.Stats)
	assert.Equal(t, []string{"Root.Forecasts", "Root.IsLoading", "Root.Settings.IsDay", "Root.Settings.Sunrise"}, third.Filter("github.com/acme/app.Weather"))
}

func TestDescriptor_Location(t *testing.T) {
	left := newCatalog(t, `
- module: app
  origin: local
  declarations:
    - {fqn: app.A, base: Entity, location: a.go, properties: [{name: x, location: a.go:3}]}
`)
	right := newCatalog(t, `
- module: app
  origin: local
  declarations:
    - {fqn: app.A, base: Entity, location: b.go, properties: [{name: x, location: b.go:9}]}
`)
	var keys []uint64
	for _, catalog := range []*declaration.Catalog{left, right} {
		entity, ok := flatten(catalog, "app.A")
		require.True(t, ok)
		graph, _ := buildGraph(catalog, map[string]*Entity{"app.A": entity})
		key, err := descriptor(entity, graph).Key()
		require.Nil(t, err)
		keys = append(keys, key)
	}
	assert.Equal(t, keys[0], keys[1])
}

func TestMatch(t *testing.T) {
	result := resolve(t, weatherModules, nil)
	weather := result.Entities["github.com/acme/app.Weather"]
	surface := map[string]bool{"Executing": true}
	var testCases = []struct {
		access string
		expect string
	}{
		{access: "Settings.IsDay", expect: "Root.Settings.IsDay"},
		{access: "Settings.IsDay.Executing", expect: "Root.Settings.IsDay"},
		{access: "Forecasts[0].High", expect: "Root.Forecasts"},
		{access: "Settings", expect: ""},
		{access: "", expect: ""},
	}
	for _, testCase := range testCases {
		actual, _ := match(normalize(testCase.access), weather.Filter, surface)
		assert.Equal(t, testCase.expect, string(actual), testCase.access)
	}
}

func TestService_Resolve_CacheEviction(t *testing.T) {
	service := New(WithConfig(&Config{CacheSize: 2}))
	first, err := service.Resolve(context.Background(), newCatalog(t, `
- module: app
  origin: local
  requires: [github.com/viant/reactor]
  declarations:
    - {fqn: app.A, base: Entity, properties: [{name: x}]}
    - {fqn: app.M, base: Entity, properties: [{name: m}]}
    - {fqn: app.Z, base: Entity, properties: [{name: z}], references: [{name: a, target: app.A, usage: [x]}]}
`), nil)
	require.Nil(t, err)
	assert.Equal(t, []string{"Root.A.x", "Root.z"}, first.Filter("app.Z"))

	second, err := service.Resolve(context.Background(), newCatalog(t, `
- module: app
  origin: local
  requires: [github.com/viant/reactor]
  declarations:
    - {fqn: app.A, base: Entity, properties: [{name: x}, {name: y}]}
    - {fqn: app.Z, base: Entity, properties: [{name: z}], references: [{name: a, target: app.A, usage: [x]}]}
`), nil)
	require.Nil(t, err)
	assert.Equal(t, []string{"Root.x", "Root.y"}, second.Filter("app.A"))
	assert.Equal(t, []string{"Root.A.x", "Root.A.y", "Root.z"}, second.Filter("app.Z"), "evicted target change reaches cached referrer")
	assert.Equal(t, 0, second.Stats.Cached)
}

func TestService_Resolve_CacheLocation(t *testing.T) {
	service := New(WithConfig(&Config{CacheSize: 16}))
	modules := `
- module: app
  origin: local
  requires: [github.com/viant/reactor]
  declarations:
    - {fqn: app.A, base: Entity, location: a.go:3, properties: [{name: x}], triggers: [{member: missing}]}
`
	var testCases = []struct {
		description string
		location    string
		expect      Stats
	}{
		{description: "initial pass", location: "a.go:3", expect: Stats{Entities: 1, Computed: 1}},
		{description: "same location", location: "a.go:3", expect: Stats{Entities: 1, Cached: 1}},
		{description: "moved declaration", location: "b.go:7", expect: Stats{Entities: 1, Computed: 1}},
	}
	for _, testCase := range testCases {
		actual := strings.Replace(modules, "a.go:3", testCase.location, 1)
		result, err := service.Resolve(context.Background(), newCatalog(t, actual), nil)
		require.Nil(t, err, testCase.description)
		assert.Equal(t, testCase.expect, result.Stats, testCase.description)
		warnings := result.Diagnostics.ByKind(diagnostic.UnresolvedTrigger)
		require.Len(t, warnings, 1, testCase.description)
		assert.Equal(t, testCase.location, warnings[0].Location, testCase.description)
	}
}

func TestService_Resolve_AmbiguousBase(t *testing.T) {
	result := resolve(t, `
- module: app
  origin: local
  requires: [github.com/viant/reactor]
  declarations:
    - {fqn: app.Page, base: Base, location: page.go:5, properties: [{name: Title}]}
    - {fqn: app.Base, base: Entity, properties: [{name: Id}]}
    - {fqn: app/admin.Base, base: Entity, properties: [{name: Role}]}
`, nil)
	assert.Nil(t, result.Entities["app.Page"])
	ambiguous := result.Diagnostics.ByKind(diagnostic.AmbiguousReference)
	require.Len(t, ambiguous, 1)
	assert.Equal(t, "app.Page", ambiguous[0].FQN)
	assert.Equal(t, "page.go:5", ambiguous[0].Location)
	assert.Contains(t, ambiguous[0].Message, "app.Base, app/admin.Base")
}

func TestService_Resolve_Ordering(t *testing.T) {
	ordered := `
- module: a
  origin: local
  requires: [github.com/viant/reactor]
  declarations:
    - {fqn: a.X, base: Entity, properties: [{name: x2}, {name: x1}], references: [{name: y, target: b.Y}], triggers: [{member: x1}]}
    - {fqn: a.W, base: a.X, properties: [{name: w}], references: [{name: z, target: Z}]}
- module: b
  origin: local
  requires: [github.com/viant/reactor]
  declarations:
    - {fqn: b.Y, base: Entity, properties: [{name: y}], references: [{name: x, target: a.X}]}
    - {fqn: b.Z, base: Entity, commands: [{name: Save}], triggers: [{member: Save, kind: command}]}
`
	shuffled := `
- module: b
  origin: local
  requires: [github.com/viant/reactor]
  declarations:
    - {fqn: b.Z, base: Entity, commands: [{name: Save}], triggers: [{member: Save, kind: command}]}
    - {fqn: b.Y, base: Entity, properties: [{name: y}], references: [{name: x, target: a.X}]}
- module: a
  origin: local
  requires: [github.com/viant/reactor]
  declarations:
    - {fqn: a.W, base: a.X, properties: [{name: w}], references: [{name: z, target: Z}]}
    - {fqn: a.X, base: Entity, properties: [{name: x1}, {name: x2}], triggers: [{member: x1}], references: [{name: y, target: b.Y}]}
`
	bindings := []*Binding{
		{Name: "w", Entity: "W", Accesses: []string{"Z.Save.Execute", "Y.y"}},
		{Name: "x", Entity: "a.X", Accesses: []string{"x2"}},
	}
	reversed := []*Binding{bindings[1], bindings[0]}
	expect, err := yaml.Marshal(resolve(t, ordered, bindings))
	require.Nil(t, err)
	actual, err := yaml.Marshal(resolve(t, shuffled, reversed))
	require.Nil(t, err)
	assert.Equal(t, string(expect), string(actual))
}
