package cart

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addItem(t *testing.T, s *Store, id, name, price string, qty int) {
	t.Helper()
	_, err := s.AddItem(AddItemInput{ProductID: id, Name: name, Price: price, Quantity: qty})
	require.NoError(t, err)
}

func TestAddItemAppendsAndIncrements(t *testing.T) {
	s := NewStore()

	res, err := s.AddItem(AddItemInput{ProductID: "p1", Name: "Gold Standard", Price: "$25", Quantity: 1})
	require.NoError(t, err)
	assert.False(t, res.Incremented)
	assert.Equal(t, 1, res.Item.Quantity)

	res, err = s.AddItem(AddItemInput{ProductID: "p1", Name: "Gold Standard", Price: "$25", Quantity: 2})
	require.NoError(t, err)
	assert.True(t, res.Incremented)
	assert.Equal(t, 3, res.Item.Quantity)

	snap := s.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 3, snap.TotalItemCount)
}

func TestAddItemRejectsBadInput(t *testing.T) {
	s := NewStore()

	_, err := s.AddItem(AddItemInput{ProductID: "p1", Name: "x", Price: "$10", Quantity: 0})
	require.Error(t, err)

	_, err = s.AddItem(AddItemInput{ProductID: "", Name: "x", Price: "$10", Quantity: 1})
	require.Error(t, err)

	_, err = s.AddItem(AddItemInput{ProductID: "p1", Name: "  ", Price: "$10", Quantity: 1})
	require.Error(t, err)

	_, err = s.AddItem(AddItemInput{ProductID: "p1", Name: "x", Price: "N/A", Quantity: 1})
	require.Error(t, err)

	_, err = s.AddItem(AddItemInput{ProductID: "p1", Name: "x", Price: "-5", Quantity: 1})
	require.Error(t, err)

	assert.Equal(t, 0, s.TotalItemCount())
}

func TestTotalItemCountSumsQuantities(t *testing.T) {
	s := NewStore()
	addItem(t, s, "p1", "Gold Standard", "$25", 1)
	addItem(t, s, "p2", "Diamond Reserve", "$80", 2)
	assert.Equal(t, 3, s.TotalItemCount())

	require.True(t, s.RemoveItem("p1"))
	assert.Equal(t, 2, s.TotalItemCount())

	s.Clear()
	assert.Equal(t, 0, s.TotalItemCount())
}

func TestRemoveAbsentItemIsNoop(t *testing.T) {
	s := NewStore()
	addItem(t, s, "p1", "Gold Standard", "$25", 1)

	assert.False(t, s.RemoveItem("missing"))
	assert.Equal(t, 1, s.TotalItemCount())
}

func TestUpdateQuantity(t *testing.T) {
	s := NewStore()
	addItem(t, s, "p1", "Gold Standard", "$25", 1)

	require.NoError(t, s.UpdateQuantity("p1", 5))
	assert.Equal(t, 5, s.TotalItemCount())

	// zero or negative removes the row
	require.NoError(t, s.UpdateQuantity("p1", 0))
	assert.Equal(t, 0, s.TotalItemCount())

	err := s.UpdateQuantity("p1", 2)
	require.Error(t, err)
}

func TestObserversSeePostMutationState(t *testing.T) {
	s := NewStore()

	var seen []int
	unsubscribe := s.Subscribe(func(snap Snapshot) {
		seen = append(seen, snap.TotalItemCount)
	})

	addItem(t, s, "p1", "Gold Standard", "$25", 1)
	addItem(t, s, "p2", "Diamond Reserve", "$80", 2)
	require.NoError(t, s.UpdateQuantity("p2", 1))
	s.RemoveItem("p1")
	s.Clear()

	assert.Equal(t, []int{1, 3, 2, 1, 0}, seen)

	unsubscribe()
	addItem(t, s, "p3", "Purple Haze", "$40", 1)
	assert.Equal(t, []int{1, 3, 2, 1, 0}, seen)
}

func TestSnapshotIsDetached(t *testing.T) {
	s := NewStore()
	addItem(t, s, "p1", "Gold Standard", "$25", 1)
	addItem(t, s, "p2", "Diamond Reserve", "$80", 2)

	snap := s.Snapshot()
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "Gold Standard", snap.Items[0].Name)
	assert.True(t, snap.Subtotal.Equal(decimal.NewFromInt(185)))

	snap.Items[0].Quantity = 99
	snap.Items[0].Name = "tampered"

	fresh := s.Snapshot()
	assert.Equal(t, 1, fresh.Items[0].Quantity)
	assert.Equal(t, "Gold Standard", fresh.Items[0].Name)
}

func TestSnapshotPreservesInsertionOrder(t *testing.T) {
	s := NewStore()
	addItem(t, s, "p2", "Diamond Reserve", "$80", 1)
	addItem(t, s, "p1", "Gold Standard", "$25", 1)
	addItem(t, s, "p3", "Purple Haze", "$40", 1)
	require.True(t, s.RemoveItem("p1"))
	addItem(t, s, "p1", "Gold Standard", "$25", 1)

	snap := s.Snapshot()
	ids := []string{snap.Items[0].ProductID, snap.Items[1].ProductID, snap.Items[2].ProductID}
	assert.Equal(t, []string{"p2", "p3", "p1"}, ids)
}

func TestRegistryEvictsIdleCarts(t *testing.T) {
	r := NewRegistry(time.Minute, nil, nil)

	active := r.Get("active")
	addItem(t, active, "p1", "Gold Standard", "$25", 1)
	r.Get("stale")

	// nothing idle yet
	assert.Equal(t, 0, r.Sweep(time.Now()))
	assert.Equal(t, 2, r.Len())

	evicted := r.Sweep(time.Now().Add(2 * time.Minute))
	assert.Equal(t, 2, evicted)
	assert.Equal(t, 0, r.Len())

	_, ok := r.Peek("active")
	assert.False(t, ok)
}

func TestRegistryGetIsStablePerSession(t *testing.T) {
	r := NewRegistry(time.Hour, nil, nil)
	a := r.Get("s1")
	b := r.Get("s1")
	assert.Same(t, a, b)

	c := r.Get("s2")
	assert.NotSame(t, a, c)
}
