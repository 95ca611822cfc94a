package fixture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewCustomization_KeepsOrder verifies the name and builder order are preserved.
func TestNewCustomization_KeepsOrder(t *testing.T) {
	t.Parallel()

	a, b := newCounterBuilder("a"), newCounterBuilder("b")
	c := NewCustomization("suite", a, b, a)

	assert.Equal(t, "suite", c.Name())
	got := c.Builders()
	require.Len(t, got, 3)
	assert.Same(t, a, got[0])
	assert.Same(t, b, got[1])
	assert.Same(t, a, got[2])
}

// TestNewCustomization_Empty verifies an empty bundle is valid and applies nothing.
func TestNewCustomization_Empty(t *testing.T) {
	t.Parallel()

	c := NewCustomization("empty")
	assert.Empty(t, c.Builders())

	f := newPeopleFixture(1)
	f.Customize(c)
	assert.Equal(t, []string{"Address", "Person"}, f.Types())
}

// TestCustomization_BuildersIsCopy verifies callers cannot mutate the bundle.
func TestCustomization_BuildersIsCopy(t *testing.T) {
	t.Parallel()

	a, b := newCounterBuilder("a"), newCounterBuilder("b")
	in := []Builder{a}
	c := NewCustomization("suite", in...)
	in[0] = b

	got := c.Builders()
	got[0] = b
	assert.Same(t, a, c.Builders()[0])
}
