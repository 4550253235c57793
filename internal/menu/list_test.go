package menu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, id string, opts ...Option) *Viewable {
	t.Helper()
	it, err := NewItem(id, opts...)
	require.NoError(t, err)
	return it
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID()
	}
	return out
}

func TestItemIDValidation(t *testing.T) {
	_, err := NewItem(`my"item`)
	require.ErrorIs(t, err, ErrInvalidID)
	_, err = NewItem("my'item")
	require.ErrorIs(t, err, ErrInvalidID)

	it := mustItem(t, "ok")
	_, owned := it.Priority()
	assert.False(t, owned)
}

func TestItemListPriorities(t *testing.T) {
	var l ItemList
	a, b, c, d := mustItem(t, "a"), mustItem(t, "b"), mustItem(t, "c"), mustItem(t, "d")

	require.NoError(t, l.Add(a))
	p, ok := a.Priority()
	require.True(t, ok)
	assert.Equal(t, 1, p)

	require.NoError(t, l.AddAt(10, b))
	require.NoError(t, l.AddAt(5, c))
	require.NoError(t, l.Add(d))
	assert.Equal(t, []string{"a", "c", "b", "d"}, ids(l.Items()))

	p, _ = d.Priority()
	assert.Equal(t, 10, p)

	e := mustItem(t, "e")
	require.NoError(t, l.AddAt(0, e))
	assert.Equal(t, "e", l.Items()[0].ID())
}

func TestItemListSamePrioritySeparateCalls(t *testing.T) {
	var l ItemList
	require.NoError(t, l.AddAt(3, mustItem(t, "a"), mustItem(t, "b")))
	require.NoError(t, l.AddAt(3, mustItem(t, "c")))
	require.NoError(t, l.AddAt(2, mustItem(t, "d")))
	assert.Equal(t, []string{"d", "a", "b", "c"}, ids(l.Items()))
}

func TestItemListOwnershipAndDuplicates(t *testing.T) {
	var l1, l2 ItemList
	a := mustItem(t, "a")
	require.NoError(t, l1.Add(a))

	require.ErrorIs(t, l2.Add(a), ErrAlreadyOwned)
	require.ErrorIs(t, l1.Add(mustItem(t, "a")), ErrDuplicateID)
	require.ErrorIs(t, l2.Add(mustItem(t, "x"), mustItem(t, "x")), ErrDuplicateID)
	assert.Equal(t, 0, l2.Len())

	popped, err := l1.Pop("a")
	require.NoError(t, err)
	_, owned := popped.Priority()
	assert.False(t, owned)
	require.NoError(t, l2.Add(popped))

	_, err = l1.Pop("a")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestItemListChangePriority(t *testing.T) {
	var l ItemList
	require.NoError(t, l.Add(mustItem(t, "a"), mustItem(t, "b")))
	require.NoError(t, l.AddAt(5, mustItem(t, "c")))

	require.NoError(t, l.ChangePriority(10, "b", "a"))
	assert.Equal(t, []string{"c", "b", "a"}, ids(l.Items()))

	err := l.ChangePriority(1, "c", "unknown")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, []string{"c", "b", "a"}, ids(l.Items()))
}

func TestItemListClearAndRemove(t *testing.T) {
	var l ItemList
	a, b := mustItem(t, "a"), mustItem(t, "b")
	require.NoError(t, l.Add(a, b))

	l.Remove("unknown", "a")
	assert.Equal(t, []string{"b"}, ids(l.Items()))

	l.Clear()
	assert.Equal(t, 0, l.Len())
	_, owned := b.Priority()
	assert.False(t, owned)
	require.NoError(t, l.Add(a, b))
}

func TestItemListGetPath(t *testing.T) {
	m := New()
	c, err := NewContainer("persons", WithLabel("Directory"))
	require.NoError(t, err)
	require.NoError(t, c.Add(mustItem(t, "contacts")))
	require.NoError(t, m.Add(c, mustItem(t, "home")))

	it, err := m.Get("persons", "contacts")
	require.NoError(t, err)
	assert.Equal(t, "contacts", it.ID())

	_, err = m.Get("persons", "unknown")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = m.Get("home", "sub")
	require.ErrorIs(t, err, ErrNotContainer)
}

func TestGetOrCreate(t *testing.T) {
	m := New()
	created := 0
	newContainer := func(id string) (*Container, error) {
		created++
		return NewContainer(id, WithLabel("Tools"))
	}

	c1, err := GetOrCreate(m, "tools", At(10), newContainer)
	require.NoError(t, err)
	c2, err := GetOrCreate(m, "tools", At(10), newContainer)
	require.NoError(t, err)
	assert.Same(t, c1, c2)
	assert.Equal(t, 1, created)

	require.NoError(t, m.Add(mustItem(t, "plain")))
	_, err = GetOrCreate(m, "plain", End, newContainer)
	require.ErrorIs(t, err, ErrTypeMismatch)

	_, err = GetOrCreate(m, `bad"id`, End, newContainer)
	require.True(t, errors.Is(err, ErrInvalidID))
}
