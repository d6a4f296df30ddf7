package cart

import (
	"math"
	"strings"
	"sync"

	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

// Item is a single cart line. A cart holds at most one Item per ProductID.
type Item struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Event describes one applied cart mutation. Quantity is the resulting
// quantity of the line, zero once it is gone.
type Event struct {
	Kind      enums.CartEventKind
	ProductID string
	Quantity  int
}

// Listener receives cart change notifications after the mutation is applied.
type Listener func(Event)

type subscription struct {
	id uint64
	fn Listener
}

// Cart is the session-scoped, insertion-ordered set of product selections.
// It is safe for concurrent use.
type Cart struct {
	mu     sync.Mutex
	items  []Item
	subs   []subscription
	nextID uint64
}

func New() *Cart {
	return &Cart{}
}

// AddItem increments the quantity of an existing line or appends a new one.
func (c *Cart) AddItem(productID string, quantity int) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1").
			WithDetails(map[string]any{"quantity": quantity})
	}

	c.mu.Lock()
	if c.totalLocked() > math.MaxInt-quantity {
		c.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity exceeds cart capacity").
			WithDetails(map[string]any{"quantity": quantity})
	}
	var result int
	if idx := c.indexOf(productID); idx >= 0 {
		c.items[idx].Quantity += quantity
		result = c.items[idx].Quantity
	} else {
		c.items = append(c.items, Item{ProductID: productID, Quantity: quantity})
		result = quantity
	}
	subs := c.snapshotSubs()
	c.mu.Unlock()

	notify(subs, Event{Kind: enums.CartEventItemAdded, ProductID: productID, Quantity: result})
	return nil
}

// RemoveItem deletes the line for productID. It reports whether a line was removed.
func (c *Cart) RemoveItem(productID string) bool {
	productID = strings.TrimSpace(productID)

	c.mu.Lock()
	idx := c.indexOf(productID)
	if idx < 0 {
		c.mu.Unlock()
		return false
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	subs := c.snapshotSubs()
	c.mu.Unlock()

	notify(subs, Event{Kind: enums.CartEventItemRemoved, ProductID: productID})
	return true
}

// UpdateQuantity sets the quantity of an existing line, clamping values
// below 1 to 1 and values that would overflow the cart total to the largest
// quantity that fits. It reports whether the line exists.
func (c *Cart) UpdateQuantity(productID string, quantity int) bool {
	productID = strings.TrimSpace(productID)
	quantity = max(1, quantity)

	c.mu.Lock()
	idx := c.indexOf(productID)
	if idx < 0 {
		c.mu.Unlock()
		return false
	}
	quantity = min(quantity, math.MaxInt-(c.totalLocked()-c.items[idx].Quantity))
	if c.items[idx].Quantity == quantity {
		c.mu.Unlock()
		return true
	}
	c.items[idx].Quantity = quantity
	subs := c.snapshotSubs()
	c.mu.Unlock()

	notify(subs, Event{Kind: enums.CartEventQuantityUpdated, ProductID: productID, Quantity: quantity})
	return true
}

// Clear empties the cart. It reports whether anything was removed.
func (c *Cart) Clear() bool {
	c.mu.Lock()
	if len(c.items) == 0 {
		c.mu.Unlock()
		return false
	}
	c.items = nil
	subs := c.snapshotSubs()
	c.mu.Unlock()

	notify(subs, Event{Kind: enums.CartEventCleared})
	return true
}

// TotalItemCount sums the quantities of every line.
func (c *Cart) TotalItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalLocked()
}

// totalLocked never overflows: AddItem and UpdateQuantity keep the sum
// within math.MaxInt.
func (c *Cart) totalLocked() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Subscribe registers fn for change notifications. Listeners run in
// subscription order on the mutating goroutine, outside the cart lock.
func (c *Cart) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, subscription{id: id, fn: fn})
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i, sub := range c.subs {
				if sub.id == id {
					c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (c *Cart) indexOf(productID string) int {
	for i, item := range c.items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) snapshotSubs() []subscription {
	if len(c.subs) == 0 {
		return nil
	}
	out := make([]subscription, len(c.subs))
	copy(out, c.subs)
	return out
}

func notify(subs []subscription, evt Event) {
	for _, sub := range subs {
		sub.fn(evt)
	}
}
