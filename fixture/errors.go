package fixture

import (
	"errors"
	"strconv"
)

var (
	// ErrUnregisteredType is matched (via errors.Is) by every UnregisteredTypeError.
	ErrUnregisteredType = errors.New("fixture: unregistered type")

	// ErrNilBuilder is the panic value of Register and Customize when handed a nil builder.
	ErrNilBuilder = errors.New("fixture: nil builder")
)

// UnregisteredTypeError is returned when Create, CreateMany or Freeze is asked
// for a type name that has no registered builder.
type UnregisteredTypeError struct{ Type string }

// Error implements the error interface.
func (e UnregisteredTypeError) Error() string {
	// Example: fixture: no builder defined for type "Person"
	return "fixture: no builder defined for type " + strconv.Quote(e.Type)
}

// Is reports whether target is ErrUnregisteredType.
func (e UnregisteredTypeError) Is(target error) bool { return target == ErrUnregisteredType }

// WrongTypeError is returned by the generic helpers when the produced value
// cannot be converted to the requested type parameter.
type WrongTypeError struct {
	// Type is the fixture type name that was resolved.
	Type string

	// Want is the requested Go type; Got is the Go type actually produced.
	Want, Got string
}

// Error implements the error interface.
func (e WrongTypeError) Error() string {
	// Example: fixture: type "Person" produced *main.Robot, not *main.Person
	return "fixture: type " + strconv.Quote(e.Type) + " produced " + e.Got + ", not " + e.Want
}

// NotStructError is returned when field overrides target a value that is not
// a struct or a non-nil pointer to one.
type NotStructError struct {
	Type string
	Got  string
}

// Error implements the error interface.
func (e NotStructError) Error() string {
	return "fixture: cannot override fields of type " + strconv.Quote(e.Type) + " (" + e.Got + " is not a struct)"
}

// UnknownFieldError is returned when an override names a field the produced
// struct does not have, or one that cannot be set.
type UnknownFieldError struct {
	Type  string
	Field string
}

// Error implements the error interface.
func (e UnknownFieldError) Error() string {
	return "fixture: type " + strconv.Quote(e.Type) + " has no settable field " + strconv.Quote(e.Field)
}

// FieldTypeError is returned when an override value is not assignable (or
// convertible) to the target field.
type FieldTypeError struct {
	Field     string
	Want, Got string
}

// Error implements the error interface.
func (e FieldTypeError) Error() string {
	return "fixture: field " + strconv.Quote(e.Field) + " wants " + e.Want + ", got " + e.Got
}
