package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deposito626-api/internal/model"
)

func line(id int64, name string, price float64, size, flavor string) model.CartLine {
	return model.CartLine{ProductID: id, Name: name, Price: price, Size: size, Flavor: flavor}
}

func TestAddItemMergesByIdentity(t *testing.T) {
	s := NewStore(nil)

	s.AddItem(line(1, "Chips", 3.5, "", "Lime"), 1)
	s.AddItem(line(1, "Chips", 3.5, "", "Lime"), 2)
	s.AddItem(line(1, "Chips", 3.5, "", "Lime"), 1)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)
}

func TestAddItemDistinctVariantsStaySeparate(t *testing.T) {
	s := NewStore(nil)

	s.AddItem(line(1, "Chips", 3.5, "", "Lime"), 2)
	s.AddItem(line(1, "Chips", 3.5, "", "Mango"), 3)

	assert.Len(t, s.Items(), 2)
	assert.Equal(t, 5, s.ItemCount())
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	s := NewStore(nil)

	s.AddItem(line(1, "Chips", 3.5, "", ""), 0)
	s.AddItem(line(1, "Chips", 3.5, "", ""), -2)

	assert.Empty(t, s.Items())
}

func TestUpdateQuantitySetsExactly(t *testing.T) {
	s := NewStore(nil)
	s.AddItem(line(1, "Chips", 3.5, "", ""), 2)

	s.UpdateQuantity(model.LineIdentity{ProductID: 1}, 7)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestUpdateQuantityZeroOrNegativeRemoves(t *testing.T) {
	for _, q := range []int{0, -1} {
		s := NewStore(nil)
		s.AddItem(line(1, "Chips", 3.5, "", ""), 2)

		s.UpdateQuantity(model.LineIdentity{ProductID: 1}, q)

		assert.Empty(t, s.Items())
	}
}

func TestRemoveItemAbsentIsNoop(t *testing.T) {
	s := NewStore(nil)
	s.AddItem(line(1, "Chips", 3.5, "", ""), 1)

	s.RemoveItem(model.LineIdentity{ProductID: 2})
	s.RemoveItem(model.LineIdentity{ProductID: 1, Flavor: "Lime"})

	assert.Len(t, s.Items(), 1)
}

func TestSubtotalAndItemCount(t *testing.T) {
	s := NewStore(nil)
	s.AddItem(line(1, "Chips", 3.5, "", ""), 2)
	s.AddItem(line(2, "Soda", 2, "", "Cola"), 3)

	assert.InDelta(t, 13.0, s.Subtotal(), 1e-9)
	assert.Equal(t, 5, s.ItemCount())

	s.RemoveItem(model.LineIdentity{ProductID: 2, Flavor: "Cola"})
	assert.InDelta(t, 7.0, s.Subtotal(), 1e-9)
	assert.Equal(t, 2, s.ItemCount())
}

func TestClearCartKeepsSession(t *testing.T) {
	s := NewStore(nil)
	s.AddItem(line(1, "Chips", 3.5, "", ""), 1)
	s.SetPhone("6266271703")
	s.UnlockAccess("6266271703")

	s.ClearCart()

	assert.Empty(t, s.Items())
	user := s.User()
	assert.Equal(t, "6266271703", user.Phone)
	assert.True(t, user.IsAccessUnlocked)
}

func TestUnlockAccessClosesModal(t *testing.T) {
	s := NewStore(nil)
	s.OpenAccessModal()
	require.True(t, s.User().IsAccessModalOpen)

	s.UnlockAccess("6266271703")

	user := s.User()
	assert.True(t, user.IsAccessUnlocked)
	assert.False(t, user.IsAccessModalOpen)
	assert.Equal(t, "6266271703", user.ReferrerPhone)
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	s := NewStore(fs)
	s.AddItem(line(1, "Chips", 3.5, "Large", "Lime"), 2)
	s.SetPhone("6266271703")
	s.UnlockAccess("6266271703")

	reloaded := NewStore(mustFileStore(t, dir))
	items := reloaded.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Chips", items[0].Name)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, reloaded.User().IsAccessUnlocked)
	assert.Equal(t, "6266271703", reloaded.User().Phone)
}

func TestFileStoreLoadMissingIsEmpty(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	state, err := fs.Load()
	require.NoError(t, err)
	assert.Nil(t, state)
}

func mustFileStore(t *testing.T, dir string) *FileStore {
	t.Helper()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)
	return fs
}
