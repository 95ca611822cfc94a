package fixture

import (
	"reflect"
	"sort"

	"go.uber.org/zap"

	"github.com/sghaida/ofixture/generator"
)

// Context is the view of a Fixture handed to builders so they can resolve the
// types they depend on. *Fixture implements it.
type Context interface {
	// Create resolves a single instance of typeName.
	Create(typeName string) (any, error)

	// CreateMany resolves size instances of typeName; size 0 means "pick a
	// size for me".
	CreateMany(typeName string, size int) ([]any, error)
}

// Fixture is a registry of builders keyed by type name, with a table of
// frozen values that shadow them.
//
// A Fixture is not safe for concurrent use.
type Fixture struct {
	builders map[string]Builder
	frozen   map[string]any
	sizes    generator.ValueGenerator[int]
	log      *zap.Logger
}

var _ Context = (*Fixture)(nil)

// New returns an empty Fixture. sizes picks collection lengths for CreateMany
// calls that do not give one; nil selects generator.DefaultSize.
func New(sizes generator.ValueGenerator[int], opts ...Option) *Fixture {
	if sizes == nil {
		sizes = generator.DefaultSize()
	}
	f := &Fixture{
		builders: make(map[string]Builder),
		frozen:   make(map[string]any),
		sizes:    sizes,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Register stores b under b.Type(), replacing any builder already registered
// under that name. Aliases are not registered. It panics with ErrNilBuilder
// if b is nil, including a typed nil pointer.
func (f *Fixture) Register(b Builder) *Fixture {
	if isNilBuilder(b) {
		panic(ErrNilBuilder)
	}
	f.builders[b.Type()] = b
	f.log.Debug("fixture: register", zap.String("type", b.Type()))
	return f
}

func isNilBuilder(b Builder) bool {
	if b == nil {
		return true
	}
	v := reflect.ValueOf(b)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Interface, reflect.Slice, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// RegisterWithAliases stores b under its type name and under every alias.
func (f *Fixture) RegisterWithAliases(b Builder) *Fixture {
	f.Register(b)
	for _, alias := range b.Aliases() {
		f.builders[alias] = b
		f.log.Debug("fixture: register alias", zap.String("type", b.Type()), zap.String("alias", alias))
	}
	return f
}

// Customize registers every builder of c, in order.
func (f *Fixture) Customize(c Customization) *Fixture {
	f.log.Debug("fixture: customize", zap.String("customization", c.Name()), zap.Int("builders", len(c.builders)))
	for _, b := range c.builders {
		f.Register(b)
	}
	return f
}

// Deregister removes the builder for typeName if there is one. Frozen values
// are left alone.
func (f *Fixture) Deregister(typeName string) *Fixture {
	delete(f.builders, typeName)
	f.log.Debug("fixture: deregister", zap.String("type", typeName))
	return f
}

// Freeze builds one instance of typeName and stores it, so that later calls
// to Create return that exact value. The builder must be registered. If the
// builder fails, its error is returned as is and nothing is stored.
func (f *Fixture) Freeze(typeName string) (*Fixture, error) {
	b, ok := f.builders[typeName]
	if !ok {
		return f, UnregisteredTypeError{Type: typeName}
	}
	v, err := b.Build(f)
	if err != nil {
		return f, err
	}
	f.frozen[typeName] = v
	f.log.Debug("fixture: freeze", zap.String("type", typeName))
	return f, nil
}

// Use stores value as the frozen value for typeName. Unlike Freeze it does
// not require a registered builder, but Create still does.
func (f *Fixture) Use(typeName string, value any) *Fixture {
	f.frozen[typeName] = value
	f.log.Debug("fixture: use", zap.String("type", typeName))
	return f
}

// Create returns the frozen value for typeName if there is one, otherwise a
// freshly built instance. It fails with UnregisteredTypeError when no builder
// is registered, even if a value was frozen with Use.
func (f *Fixture) Create(typeName string) (any, error) {
	b, ok := f.builders[typeName]
	if !ok {
		return nil, UnregisteredTypeError{Type: typeName}
	}
	if v, ok := f.frozen[typeName]; ok {
		return v, nil
	}
	return b.Build(f)
}

// CreateMany resolves size instances of typeName in index order.
//
// A size of 0 is treated as "not given" and the fixture's size generator
// picks the length; a negative size yields an empty slice. The first failing
// element aborts the call.
func (f *Fixture) CreateMany(typeName string, size int) ([]any, error) {
	if size == 0 {
		size = f.sizes.Generate()
	}
	if size < 0 {
		size = 0
	}

	list := make([]any, 0, size)
	for i := 0; i < size; i++ {
		v, err := f.Create(typeName)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, nil
}

// Has reports whether a builder is registered under typeName.
func (f *Fixture) Has(typeName string) bool {
	_, ok := f.builders[typeName]
	return ok
}

// IsFrozen reports whether a value is frozen for typeName.
func (f *Fixture) IsFrozen(typeName string) bool {
	_, ok := f.frozen[typeName]
	return ok
}

// Types returns the registered type names (aliases included), sorted.
func (f *Fixture) Types() []string {
	out := make([]string, 0, len(f.builders))
	for name := range f.builders {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Clear drops all frozen values. Registrations are kept.
func (f *Fixture) Clear() {
	f.frozen = make(map[string]any)
	f.log.Debug("fixture: clear")
}

// Reset drops all frozen values and all registrations. The size generator and
// logger are kept.
func (f *Fixture) Reset() {
	f.frozen = make(map[string]any)
	f.builders = make(map[string]Builder)
	f.log.Debug("fixture: reset")
}
