package fixture

// Customization is a named bundle of builders applied to a Fixture in one
// call, typically to tailor a fixture for a test suite.
//
// Duplicate type names are not checked; when applied, later builders replace
// earlier ones.
type Customization struct {
	name     string
	builders []Builder
}

// NewCustomization bundles builders under name.
func NewCustomization(name string, builders ...Builder) Customization {
	bs := make([]Builder, len(builders))
	copy(bs, builders)
	return Customization{name: name, builders: bs}
}

// Name returns the customization's name.
func (c Customization) Name() string { return c.name }

// Builders returns the bundled builders in construction order.
func (c Customization) Builders() []Builder {
	out := make([]Builder, len(c.builders))
	copy(out, c.builders)
	return out
}
