package menu

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formsWith(t *testing.T, n int) *CreationForms {
	t.Helper()
	forms := &CreationForms{}
	for i := 1; i <= n; i++ {
		g, err := forms.GetOrCreateGroup(fmt.Sprintf("g%d", i), fmt.Sprintf("Group #%d", i), End)
		require.NoError(t, err)
		_, err = g.AddLink("l", nil, End, WithLabel("Link"), WithURL("/l"), WithPerm(StringPolicy("app")))
		require.NoError(t, err)
	}
	return forms
}

func rowSizes(grid [][]GridCell) []int {
	sizes := make([]int, len(grid))
	for i, row := range grid {
		sizes[i] = len(row)
	}
	return sizes
}

func TestAsGridShapes(t *testing.T) {
	cases := map[int][]int{
		0: {},
		1: {1},
		2: {1, 1},
		3: {1, 2},
		4: {2, 2},
		5: {1, 2, 2},
		6: {2, 2, 2},
		7: {2, 2, 3},
		9: {3, 3, 3},
	}
	for n, want := range cases {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			grid := formsWith(t, n).AsGrid(userWith())
			assert.Equal(t, want, rowSizes(grid))
		})
	}
}

func TestAsGridOrder(t *testing.T) {
	grid := formsWith(t, 4).AsGrid(userWith("app"))
	assert.Equal(t, "Group #1", grid[0][0].Label)
	assert.Equal(t, "Group #2", grid[0][1].Label)
	assert.Equal(t, "Group #3", grid[1][0].Label)
	assert.Equal(t, []LinkDict{{Label: "Link", URL: "/l"}}, grid[1][1].Links)
}

func TestLinkPermissions(t *testing.T) {
	l, err := NewLink("l", nil, WithLabel("Link"), WithURL("/l"), WithPerm(StringPolicy("app")))
	require.NoError(t, err)
	assert.Equal(t, LinkDict{Label: "Link", URL: "/l"}, l.Dict(userWith("app")))
	assert.Equal(t, LinkDict{Label: "Link"}, l.Dict(userWith()))

	_, err = NewLink("l", nil, WithLabel("Link"), WithURL("/l"))
	require.ErrorIs(t, err, ErrMissingArgument)
	_, err = NewLink("l", nil, WithURL("/l"), WithPerm(nil))
	require.ErrorIs(t, err, ErrMissingArgument)

	l, err = NewLink("contact", contact)
	require.NoError(t, err)
	assert.Equal(t, "Contact", l.Label)
	assert.Equal(t, "/persons/contact/add", l.URL())
	assert.Equal(t, StringPolicy("persons.add_contact"), l.Perm)
}

func TestCreationFormsEditing(t *testing.T) {
	forms := formsWith(t, 3)

	g, err := forms.GetOrCreateGroup("g2", "ignored", End)
	require.NoError(t, err)
	assert.Equal(t, "Group #2", g.Label)

	require.NoError(t, forms.ChangePriority(0, "g3"))
	forms.Remove("g1", "unknown")

	var got []string
	for _, g := range forms.Groups() {
		got = append(got, g.ID())
	}
	assert.Equal(t, []string{"g3", "g2"}, got)

	_, err = g.AddLink("l2", nil, At(0), WithLabel("First"), WithURL("/f"), WithPerm(nil))
	require.NoError(t, err)
	assert.Equal(t, "l2", g.Links()[0].ID())
	require.NoError(t, g.ChangePriority(5, "l2"))
	assert.Equal(t, "l2", g.Links()[1].ID())
	g.Remove("l2")
	assert.Len(t, g.Links(), 1)

	assert.Equal(t,
		"  <LinkGroup: id=\"g3\" label=\"Group #3\" priority=0>\n"+
			"     <Link: id=\"l\" priority=1 label=\"Link\">\n"+
			"  <LinkGroup: id=\"g2\" label=\"Group #2\" priority=1>\n"+
			"     <Link: id=\"l\" priority=1 label=\"Link\">\n",
		forms.VerboseString())
}
