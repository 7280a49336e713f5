package lists_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listsync/internal/lists"
)

func titles(l lists.List) []string {
	out := make([]string, len(l))
	for i, t := range l {
		out[i] = t.Title
	}
	return out
}

func seeded(t *testing.T, names lists.Names, id lists.ID, ts ...string) *lists.Collection {
	t.Helper()
	c := lists.NewCollection(names)
	for _, title := range ts {
		var err error
		c, err = c.Add(id, lists.Task{Title: title})
		require.NoError(t, err)
	}
	return c
}

func TestDefaultNames(t *testing.T) {
	names := lists.DefaultNames(3)

	assert.Equal(t, []lists.ID{"list1", "list2", "list3"}, names.Keys())
	assert.Equal(t, "List 2", names.Display("list2"))
	assert.Equal(t, "", names.Display("list9"))
}

func TestNames_RenameReturnsCopy(t *testing.T) {
	names := lists.DefaultNames(2)

	renamed, err := names.Rename("list1", "Groceries")
	require.NoError(t, err)

	assert.Equal(t, "Groceries", renamed.Display("list1"))
	assert.Equal(t, "List 1", names.Display("list1"), "original must be unchanged")
}

func TestNames_RenameErrors(t *testing.T) {
	names := lists.DefaultNames(2)

	_, err := names.Rename("nope", "X")
	assert.ErrorIs(t, err, lists.ErrUnknownList)

	_, err = names.Rename("list1", "   ")
	assert.Error(t, err)
}

func TestNames_LookupFirstMatchWins(t *testing.T) {
	names, err := lists.DefaultNames(3).Rename("list3", "List 2")
	require.NoError(t, err)

	id, ok := names.Lookup("List 2")
	require.True(t, ok)
	assert.Equal(t, lists.ID("list2"), id)

	_, ok = names.Lookup("Missing")
	assert.False(t, ok)
}

func TestNames_Resolve(t *testing.T) {
	names, err := lists.DefaultNames(3).Rename("list3", "Work")
	require.NoError(t, err)

	id, err := names.Resolve("  work ")
	require.NoError(t, err)
	assert.Equal(t, lists.ID("list3"), id)

	id, err = names.Resolve("list2")
	require.NoError(t, err)
	assert.Equal(t, lists.ID("list2"), id)

	_, err = names.Resolve("Shopping")
	assert.EqualError(t, err, "list not found: Shopping")

	dup, err := names.Rename("list1", "Work")
	require.NoError(t, err)
	_, err = dup.Resolve("Work")
	assert.EqualError(t, err, "ambiguous list name: Work")
}

func TestNewNames_RejectsDuplicates(t *testing.T) {
	_, err := lists.NewNames(lists.Entry{ID: "a", Name: "A"}, lists.Entry{ID: "a", Name: "B"})
	assert.Error(t, err)
}

func TestCollection_AddDoesNotMutateReceiver(t *testing.T) {
	names := lists.DefaultNames(2)
	base := lists.NewCollection(names)

	next, err := base.Add("list1", lists.Task{Title: "Buy milk", Description: "oat"})
	require.NoError(t, err)

	assert.Equal(t, 0, base.Len("list1"))
	assert.Equal(t, []string{"Buy milk"}, titles(next.List("list1")))
	assert.True(t, base.Empty())
	assert.False(t, next.Empty())
}

func TestCollection_AddErrors(t *testing.T) {
	c := lists.NewCollection(lists.DefaultNames(1))

	_, err := c.Add("list1", lists.Task{})
	assert.ErrorIs(t, err, lists.ErrEmptyTitle)

	_, err = c.Add("list7", lists.Task{Title: "x"})
	assert.ErrorIs(t, err, lists.ErrUnknownList)
}

func TestCollection_TitleWhitespace(t *testing.T) {
	c := lists.NewCollection(lists.DefaultNames(1))

	for _, blank := range []string{" ", "   ", "\t", " \t "} {
		_, err := c.Add("list1", lists.Task{Title: blank})
		assert.ErrorIs(t, err, lists.ErrEmptyTitle, "title %q", blank)
	}

	next, err := c.Add("list1", lists.Task{Title: "  Buy milk  ", Description: "oat"})
	require.NoError(t, err)
	assert.Equal(t, lists.List{{Title: "Buy milk", Description: "oat"}}, next.List("list1"))

	sel, err := next.Select("list1", 0)
	require.NoError(t, err)
	_, err = next.Update(sel, lists.Task{Title: " "})
	assert.ErrorIs(t, err, lists.ErrEmptyTitle)

	updated, err := next.Update(sel, lists.Task{Title: "Call Bob "})
	require.NoError(t, err)
	assert.Equal(t, []string{"Call Bob"}, titles(updated.List("list1")))
}

func TestCollection_SelectionGoesStaleAfterMutation(t *testing.T) {
	c := seeded(t, lists.DefaultNames(1), "list1", "a", "b", "c")

	sel, err := c.Select("list1", 0)
	require.NoError(t, err)

	next, err := c.Remove(sel)
	require.NoError(t, err)

	_, err = next.Remove(sel)
	assert.ErrorIs(t, err, lists.ErrStaleSelection)
}

func TestCollection_SelectValidates(t *testing.T) {
	c := seeded(t, lists.DefaultNames(1), "list1", "a")

	_, err := c.Select("list1", 1)
	assert.ErrorIs(t, err, lists.ErrOutOfRange)

	_, err = c.Select("list1")
	assert.ErrorIs(t, err, lists.ErrOutOfRange)

	_, err = c.Select("list5", 0)
	assert.ErrorIs(t, err, lists.ErrUnknownList)
}

func TestCollection_RemoveMultiple(t *testing.T) {
	c := seeded(t, lists.DefaultNames(1), "list1", "a", "b", "c", "d")

	sel, err := c.Select("list1", 3, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, sel.Positions)

	next, err := c.Remove(sel)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, titles(next.List("list1")))
}

func TestCollection_UpdateNeedsSingle(t *testing.T) {
	c := seeded(t, lists.DefaultNames(1), "list1", "a", "b")

	sel, err := c.Select("list1", 0, 1)
	require.NoError(t, err)
	_, err = c.Update(sel, lists.Task{Title: "z"})
	assert.ErrorIs(t, err, lists.ErrSingleSelection)

	sel, err = c.Select("list1", 1)
	require.NoError(t, err)
	next, err := c.Update(sel, lists.Task{Title: "z", Description: "d"})
	require.NoError(t, err)
	assert.Equal(t, lists.Task{Title: "z", Description: "d"}, next.List("list1")[1])
}

func TestCollection_MoveUpDown(t *testing.T) {
	c := seeded(t, lists.DefaultNames(1), "list1", "a", "b", "c")

	sel, err := c.Select("list1", 1)
	require.NoError(t, err)
	up, err := c.MoveUp(sel)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, titles(up.List("list1")))

	sel, err = c.Select("list1", 1)
	require.NoError(t, err)
	down, err := c.MoveDown(sel)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "b"}, titles(down.List("list1")))

	sel, err = c.Select("list1", 0)
	require.NoError(t, err)
	top, err := c.MoveUp(sel)
	require.NoError(t, err)
	assert.True(t, top.Equal(c), "moving the first task up changes nothing")
}

func TestCollection_Transfer(t *testing.T) {
	c := seeded(t, lists.DefaultNames(2), "list1", "a", "b", "c")

	sel, err := c.Select("list1", 2, 0)
	require.NoError(t, err)
	next, err := c.Transfer(sel, "list2")
	require.NoError(t, err)

	assert.Equal(t, []string{"b"}, titles(next.List("list1")))
	assert.Equal(t, []string{"a", "c"}, titles(next.List("list2")))

	sel, err = next.Select("list1", 0)
	require.NoError(t, err)
	_, err = next.Transfer(sel, "list1")
	assert.Error(t, err)
}

func TestCollection_FromListsIgnoresUnknownKeys(t *testing.T) {
	names := lists.DefaultNames(1)
	c := lists.FromLists(names, map[lists.ID]lists.List{
		"list1": {{Title: "a"}},
		"other": {{Title: "b"}},
	})

	assert.Equal(t, []lists.ID{"list1"}, c.Keys())
	assert.Equal(t, 1, c.Len("list1"))
}

func TestCollection_CloneIsIndependentAndEqual(t *testing.T) {
	c := seeded(t, lists.DefaultNames(1), "list1", "a")
	clone := c.Clone()

	assert.True(t, clone.Equal(c))

	sel, err := c.Select("list1", 0)
	require.NoError(t, err)
	_, err = clone.Remove(sel)
	assert.ErrorIs(t, err, lists.ErrStaleSelection)
}
