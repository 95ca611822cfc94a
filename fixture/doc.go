// Package fixture is a test-data registry: it maps type names to builders and
// produces instances on demand, so tests do not hand-write fixture objects.
//
// The moving parts:
//
//   - Builder: produces instances for one type name. Embed Base for the name
//     and alias bookkeeping, or wrap a function with Func.
//   - Fixture: the registry. Register builders, then Create / CreateMany.
//     Builders receive the fixture as a Context and may create the types they
//     depend on.
//   - Freeze / Use: pin one value per type name; Create returns it until Clear
//     or Reset.
//   - Customization: a named bundle of builders applied with Customize.
//   - CustomizableType: a per-call request that overrides fields of the
//     default instance without touching the registry.
//
// Quick start
//
//	f := fixture.New(generator.IntRange(1, 5))
//	f.Register(fixture.Func("Person", func(ctx fixture.Context) (*Person, error) {
//		return &Person{Name: "default"}, nil
//	}))
//
//	p, err := fixture.Create[*Person](f, "Person")
//	people, err := fixture.CreateMany[*Person](f, "Person", 3)
//	alice, err := fixture.Build[*Person](f, "Person").With("Name", "Alice").Create()
//
// Type safety
//
// Registry entries are untyped. The generic helpers (Create, CreateMany,
// Build) assert the produced value to the requested type parameter and report
// a WrongTypeError on mismatch; picking the right T is the caller's job.
//
// A Fixture is single-threaded. Resolution is synchronous and depth-first
// with no cycle detection.
package fixture
