package cart

import (
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/Terellreed1/smokers-club-sub000/pkg/errors"
)

// LineItem is one product row in a shopper's cart.
type LineItem struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Subtotal returns unit price times quantity for this row.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Snapshot is a point-in-time copy of the cart. Mutating a snapshot never
// affects the live cart.
type Snapshot struct {
	Items          []LineItem
	TotalItemCount int
	Subtotal       decimal.Decimal
}

// Observer receives a snapshot after every cart mutation.
type Observer func(Snapshot)

// AddItemInput carries the fields needed to put a product in the cart.
type AddItemInput struct {
	ProductID string
	Name      string
	Price     string
	Quantity  int
}

// AddResult reports what AddItem did with the row.
type AddResult struct {
	Item        LineItem
	Incremented bool
}

// Store holds one shopper's cart. All methods are safe for concurrent use.
type Store struct {
	mu         sync.Mutex
	items      map[string]*LineItem
	order      []string
	observers  map[int]Observer
	nextObsID  int
	lastActive time.Time
}

// NewStore returns an empty cart.
func NewStore() *Store {
	return &Store{
		items:      make(map[string]*LineItem),
		observers:  make(map[int]Observer),
		lastActive: time.Now(),
	}
}

// AddItem validates the product and either appends a new row or increments
// the quantity of an existing one. The price is parsed up front so items
// with unusable prices never enter the cart.
func (s *Store) AddItem(input AddItemInput) (AddResult, error) {
	productID := strings.TrimSpace(input.ProductID)
	if productID == "" {
		return AddResult{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return AddResult{}, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.Quantity < 1 {
		return AddResult{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	unitPrice, err := ParsePrice(input.Price)
	if err != nil {
		return AddResult{}, err
	}

	s.mu.Lock()
	s.lastActive = time.Now()

	var result AddResult
	if existing, ok := s.items[productID]; ok {
		existing.Quantity += input.Quantity
		result = AddResult{Item: *existing, Incremented: true}
	} else {
		item := &LineItem{
			ProductID: productID,
			Name:      name,
			UnitPrice: unitPrice,
			Quantity:  input.Quantity,
		}
		s.items[productID] = item
		s.order = append(s.order, productID)
		result = AddResult{Item: *item}
	}

	snapshot := s.snapshotLocked()
	observers := s.observersLocked()
	s.mu.Unlock()

	notify(observers, snapshot)
	return result, nil
}

// RemoveItem deletes the row for the product. Removing an absent product is
// a no-op and reports false.
func (s *Store) RemoveItem(productID string) bool {
	s.mu.Lock()
	s.lastActive = time.Now()

	if _, ok := s.items[productID]; !ok {
		s.mu.Unlock()
		return false
	}
	s.deleteLocked(productID)

	snapshot := s.snapshotLocked()
	observers := s.observersLocked()
	s.mu.Unlock()

	notify(observers, snapshot)
	return true
}

// UpdateQuantity sets the quantity for an existing row. A quantity of zero
// or less removes the row, matching what shoppers expect from a stepper UI.
func (s *Store) UpdateQuantity(productID string, quantity int) error {
	s.mu.Lock()
	s.lastActive = time.Now()

	item, ok := s.items[productID]
	if !ok {
		s.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeNotFound, "item is not in the cart")
	}

	if quantity <= 0 {
		s.deleteLocked(productID)
	} else {
		item.Quantity = quantity
	}

	snapshot := s.snapshotLocked()
	observers := s.observersLocked()
	s.mu.Unlock()

	notify(observers, snapshot)
	return nil
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.items = make(map[string]*LineItem)
	s.order = nil

	snapshot := s.snapshotLocked()
	observers := s.observersLocked()
	s.mu.Unlock()

	notify(observers, snapshot)
}

// TotalItemCount returns the sum of quantities across all rows.
func (s *Store) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

// Snapshot returns a deep copy of the cart contents in insertion order.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers an observer and returns a function that removes it.
// The observer is called synchronously after each mutation with the cart
// state produced by that mutation.
func (s *Store) Subscribe(obs Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextObsID
	s.nextObsID++
	s.observers[id] = obs

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// LastActive reports when the cart was last read or mutated. The session
// registry uses it for idle eviction.
func (s *Store) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Store) deleteLocked(productID string) {
	delete(s.items, productID)
	for i, id := range s.order {
		if id == productID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Store) totalLocked() int {
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

func (s *Store) snapshotLocked() Snapshot {
	items := make([]LineItem, 0, len(s.order))
	subtotal := decimal.Zero
	for _, id := range s.order {
		item := s.items[id]
		items = append(items, *item)
		subtotal = subtotal.Add(item.Subtotal())
	}
	return Snapshot{
		Items:          items,
		TotalItemCount: s.totalLocked(),
		Subtotal:       subtotal,
	}
}

func (s *Store) observersLocked() []Observer {
	if len(s.observers) == 0 {
		return nil
	}
	observers := make([]Observer, 0, len(s.observers))
	for _, obs := range s.observers {
		observers = append(observers, obs)
	}
	return observers
}

func notify(observers []Observer, snapshot Snapshot) {
	for _, obs := range observers {
		obs(snapshot)
	}
}
