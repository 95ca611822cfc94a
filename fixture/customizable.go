package fixture

import "reflect"

type overrideKind int

const (
	literal overrideKind = iota
	created
	many
)

// override replaces one struct field of a built instance.
type override struct {
	field    string
	kind     overrideKind
	value    any
	typeName string
	size     int
}

// CustomizableType is a deferred creation request for one type name. Field
// overrides are recorded first and applied to the default instance when
// Create is called; registrations and the frozen table are never modified.
//
// Overrides address exported fields by name, so the built value must be a
// struct or a non-nil pointer to one. If the default instance is a frozen
// pointer, the overrides mutate that shared value and later Create calls see
// them. A frozen struct value is copied and stays untouched.
type CustomizableType[T any] struct {
	ctx       Context
	typeName  string
	overrides []override
	hooks     []func(T)
}

// TypeName returns the fixture type name this request resolves.
func (c *CustomizableType[T]) TypeName() string { return c.typeName }

// With sets field to value.
func (c *CustomizableType[T]) With(field string, value any) *CustomizableType[T] {
	return c.add(override{field: field, kind: literal, value: value})
}

// WithCreated sets field to a fresh instance of typeName, resolved at Create time.
func (c *CustomizableType[T]) WithCreated(field, typeName string) *CustomizableType[T] {
	return c.add(override{field: field, kind: created, typeName: typeName})
}

// WithMany sets a slice field to size instances of typeName, resolved at
// Create time. A size of 0 lets the fixture pick the length.
func (c *CustomizableType[T]) WithMany(field, typeName string, size int) *CustomizableType[T] {
	return c.add(override{field: field, kind: many, typeName: typeName, size: size})
}

// Do registers fn to run on the instance after all field overrides.
func (c *CustomizableType[T]) Do(fn func(T)) *CustomizableType[T] {
	if fn != nil {
		c.hooks = append(c.hooks, fn)
	}
	return c
}

// add records o, replacing an earlier override of the same field.
func (c *CustomizableType[T]) add(o override) *CustomizableType[T] {
	for i := range c.overrides {
		if c.overrides[i].field == o.field {
			c.overrides[i] = o
			return c
		}
	}
	c.overrides = append(c.overrides, o)
	return c
}

// Create builds the default instance for the type name and applies the
// recorded overrides, then the Do hooks, in registration order.
func (c *CustomizableType[T]) Create() (T, error) {
	var zero T
	v, err := Create[T](c.ctx, c.typeName)
	if err != nil {
		return zero, err
	}

	if len(c.overrides) > 0 {
		target, err := c.structOf(&v)
		if err != nil {
			return zero, err
		}
		for _, o := range c.overrides {
			if err := c.apply(target, o); err != nil {
				return zero, err
			}
		}
	}

	for _, fn := range c.hooks {
		fn(v)
	}
	return v, nil
}

// MustCreate is like Create but panics on error.
func (c *CustomizableType[T]) MustCreate() T {
	v, err := c.Create()
	if err != nil {
		panic(err)
	}
	return v
}

// structOf returns the settable struct behind *v.
func (c *CustomizableType[T]) structOf(v *T) (reflect.Value, error) {
	rv := reflect.ValueOf(v).Elem()
	for rv.Kind() == reflect.Interface || rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, NotStructError{Type: c.typeName, Got: rv.Type().String()}
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct || !rv.CanAddr() {
		return reflect.Value{}, NotStructError{Type: c.typeName, Got: rv.Type().String()}
	}
	return rv, nil
}

func (c *CustomizableType[T]) apply(target reflect.Value, o override) error {
	fv := target.FieldByName(o.field)
	if !fv.IsValid() || !fv.CanSet() {
		return UnknownFieldError{Type: c.typeName, Field: o.field}
	}

	switch o.kind {
	case created:
		v, err := c.ctx.Create(o.typeName)
		if err != nil {
			return err
		}
		return assign(fv, o.field, v)

	case many:
		if fv.Kind() != reflect.Slice {
			return FieldTypeError{Field: o.field, Want: "slice", Got: fv.Type().String()}
		}
		vs, err := c.ctx.CreateMany(o.typeName, o.size)
		if err != nil {
			return err
		}
		slice := reflect.MakeSlice(fv.Type(), len(vs), len(vs))
		for i, v := range vs {
			if err := assign(slice.Index(i), o.field, v); err != nil {
				return err
			}
		}
		fv.Set(slice)
		return nil

	default:
		return assign(fv, o.field, o.value)
	}
}

// assign sets dst to v, converting between types of the same kind (for
// example a string literal into a named string type).
func assign(dst reflect.Value, field string, v any) error {
	if v == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.Type().AssignableTo(dst.Type()):
		dst.Set(rv)
	case rv.Kind() == dst.Kind() && rv.Type().ConvertibleTo(dst.Type()):
		dst.Set(rv.Convert(dst.Type()))
	default:
		return FieldTypeError{Field: field, Want: dst.Type().String(), Got: rv.Type().String()}
	}
	return nil
}
