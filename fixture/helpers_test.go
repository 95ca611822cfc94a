package fixture

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sghaida/ofixture/generator"
)

// Shared test types and builders used across test files.

type testAddress struct {
	City string
}

type testEmail string

type testPerson struct {
	Name    string
	Age     int
	Email   testEmail
	Address *testAddress
	Friends []*testPerson
	Tags    []string
	secret  string
}

// counterBuilder numbers each instance it builds, so tests can tell
// instances apart and count calls.
type counterBuilder struct {
	Base
	calls int
}

func newCounterBuilder(typeName string) *counterBuilder {
	return &counterBuilder{Base: NewBase(typeName)}
}

func (b *counterBuilder) Build(Context) (any, error) {
	b.calls++
	return b.calls, nil
}

// personBuilder builds a *testPerson with a nested address.
type personBuilder struct {
	Base
}

func newPersonBuilder() *personBuilder {
	return &personBuilder{Base: NewBase("Person")}
}

func (b *personBuilder) Build(ctx Context) (any, error) {
	addr, err := Create[*testAddress](ctx, "Address")
	if err != nil {
		return nil, err
	}
	return &testPerson{Name: "default", Age: 30, Address: addr, secret: "s"}, nil
}

var errBoom = errors.New("boom")

// failingBuilder always fails with errBoom.
type failingBuilder struct {
	Base
}

func (b *failingBuilder) Build(Context) (any, error) { return nil, errBoom }

func addressBuilder() Builder {
	return Func("Address", func(Context) (*testAddress, error) {
		return &testAddress{City: "Springfield"}, nil
	})
}

// newPeopleFixture returns a fixture with Person and Address registered and a
// constant size generator.
func newPeopleFixture(size int) *Fixture {
	return New(generator.Constant(size)).
		Register(addressBuilder()).
		Register(newPersonBuilder())
}

// mustFreeze calls t.Fatal if Freeze fails.
func mustFreeze(t *testing.T, f *Fixture, typeName string) {
	t.Helper()
	_, err := f.Freeze(typeName)
	require.NoError(t, err, "Freeze(%q)", typeName)
}
