package fixture

import "reflect"

// ---------------------------------------------------------------------------
// Generic helpers
// ---------------------------------------------------------------------------

// Create resolves typeName through ctx and returns it as T.
//
//	p, err := fixture.Create[*Person](f, "Person")
//
// The registry is untyped; choosing T is the caller's job. A value that is not
// a T yields WrongTypeError. A nil value yields the zero T.
func Create[T any](ctx Context, typeName string) (T, error) {
	var zero T
	v, err := ctx.Create(typeName)
	if err != nil {
		return zero, err
	}
	return as[T](typeName, v)
}

// CreateMany resolves a collection of typeName through ctx. A size of 0 lets
// the fixture pick the length.
func CreateMany[T any](ctx Context, typeName string, size int) ([]T, error) {
	vs, err := ctx.CreateMany(typeName, size)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(vs))
	for i, v := range vs {
		if out[i], err = as[T](typeName, v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// MustCreate is like Create but panics on error. Handy in test setup.
func MustCreate[T any](ctx Context, typeName string) T {
	v, err := Create[T](ctx, typeName)
	if err != nil {
		panic(err)
	}
	return v
}

// Build returns a CustomizableType for typeName. Nothing is created until
// its Create method is called.
func Build[T any](ctx Context, typeName string) *CustomizableType[T] {
	return &CustomizableType[T]{ctx: ctx, typeName: typeName}
}

func as[T any](typeName string, v any) (T, error) {
	var zero T
	if v == nil {
		return zero, nil
	}
	out, ok := v.(T)
	if !ok {
		return zero, WrongTypeError{
			Type: typeName,
			Want: reflect.TypeOf((*T)(nil)).Elem().String(),
			Got:  reflect.TypeOf(v).String(),
		}
	}
	return out, nil
}
