package fixture

// Builder produces instances for one fixture type name.
//
// Implementations usually embed Base for the name and alias bookkeeping and
// supply Build. Build may call back into ctx to resolve nested types; there is
// no cycle detection, so a builder that depends on its own type recurses until
// the stack is exhausted.
type Builder interface {
	// Type is the canonical name the builder is registered under.
	Type() string

	// Aliases returns the alias names recorded via CreateAlias, in call order.
	Aliases() []string

	// Build produces a new instance. Errors are returned to the caller of
	// Create unmodified.
	Build(ctx Context) (any, error)
}

// Base carries the canonical type name and alias list of a builder. Embed it
// in concrete builders.
type Base struct {
	typeName string
	aliases  []string
}

// NewBase returns a Base for typeName. Any string is accepted, including "".
func NewBase(typeName string) Base {
	return Base{typeName: typeName}
}

// Type returns the canonical type name.
func (b *Base) Type() string { return b.typeName }

// CreateAlias records an additional name for the builder. Duplicates are kept.
//
// Aliases are not registered automatically; see Fixture.RegisterWithAliases.
func (b *Base) CreateAlias(name string) {
	b.aliases = append(b.aliases, name)
}

// Aliases returns a copy of the recorded aliases in insertion order.
func (b *Base) Aliases() []string {
	out := make([]string, len(b.aliases))
	copy(out, b.aliases)
	return out
}

// FuncBuilder adapts a function into a Builder.
type FuncBuilder[T any] struct {
	Base
	fn func(Context) (T, error)
}

// Func returns a Builder for typeName backed by fn.
//
//	f.Register(fixture.Func("Person", func(ctx fixture.Context) (*Person, error) {
//		return &Person{Name: "default"}, nil
//	}))
func Func[T any](typeName string, fn func(ctx Context) (T, error)) *FuncBuilder[T] {
	return &FuncBuilder[T]{Base: NewBase(typeName), fn: fn}
}

// Alias records name as an alias and returns the builder for chaining.
func (b *FuncBuilder[T]) Alias(name string) *FuncBuilder[T] {
	b.CreateAlias(name)
	return b
}

// Build implements Builder.
func (b *FuncBuilder[T]) Build(ctx Context) (any, error) {
	v, err := b.fn(ctx)
	if err != nil {
		return nil, err
	}
	return v, nil
}
