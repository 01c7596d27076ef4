// Package cart is the storefront's local shopping cart: a list of
// (book, quantity) pairs that lives entirely on the client and is written
// through to durable storage on every mutation. It never talks to the
// server; the contents only reach the backend as an order-creation request
// at checkout.
package cart

import (
	"encoding/json"

	"bookhaven/internal/domain"
)

// Storage persists the serialized cart. Implementations must overwrite the
// previous value wholesale; the cart is always saved as one document.
type Storage interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// Item is a book snapshot plus quantity. The embedded book keeps the
// serialized form flat, one object per line item.
type Item struct {
	domain.Book
	Quantity int `json:"quantity"`
}

type Cart struct {
	store Storage
	items []Item
}

// New rehydrates the cart from storage. Absent or unparseable data starts
// an empty cart rather than failing.
func New(store Storage) *Cart {
	c := &Cart{store: store}
	if data, err := store.Load(); err == nil && len(data) > 0 {
		var items []Item
		if json.Unmarshal(data, &items) == nil {
			c.items = items
		}
	}
	return c
}

// Add appends the book with quantity 1, or bumps the quantity by 1 if the
// book is already present. Never creates a duplicate entry.
func (c *Cart) Add(b domain.Book) error {
	for i := range c.items {
		if c.items[i].ID == b.ID {
			c.items[i].Quantity++
			return c.persist()
		}
	}
	c.items = append(c.items, Item{Book: b, Quantity: 1})
	return c.persist()
}

func (c *Cart) Remove(bookID string) error {
	kept := c.items[:0]
	for _, it := range c.items {
		if it.ID != bookID {
			kept = append(kept, it)
		}
	}
	c.items = kept
	return c.persist()
}

// SetQuantity replaces the quantity; n <= 0 removes the item.
func (c *Cart) SetQuantity(bookID string, n int) error {
	if n <= 0 {
		return c.Remove(bookID)
	}
	for i := range c.items {
		if c.items[i].ID == bookID {
			c.items[i].Quantity = n
			return c.persist()
		}
	}
	return nil
}

func (c *Cart) Clear() error {
	c.items = nil
	return c.persist()
}

func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Total() float64 {
	total := 0.0
	for _, it := range c.items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

func (c *Cart) Count() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) persist() error {
	data, err := json.Marshal(c.items)
	if err != nil {
		return err
	}
	return c.store.Save(data)
}
