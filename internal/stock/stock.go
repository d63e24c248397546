// Package stock holds the ingredients a session has on hand.
package stock

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyName          = errors.New("ingredient name is required")
	ErrQuantityRequired   = errors.New("quantity is required for this unit")
	ErrQuantityNotAllowed = errors.New("quantity must be empty when the unit is not applicable")
	ErrUnknownUnit        = errors.New("unknown unit")
)

// IngredientEntry is one recorded ingredient. Entries are never edited in
// place; removing and re-adding is the only way to change one.
type IngredientEntry struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Quantity string    `json:"quantity,omitempty"`
}

// HasQuantity reports whether the entry carries an amount.
func (e IngredientEntry) HasQuantity() bool {
	return e.Quantity != ""
}

// Snapshot is an ordered, immutable copy of a stock.
type Snapshot []IngredientEntry

// Len returns the number of entries.
func (s Snapshot) Len() int {
	return len(s)
}

// Stock is the ordered list of ingredients owned by one session.
// It is not safe for concurrent use; its owner serializes access.
type Stock struct {
	entries []IngredientEntry
	newID   func() uuid.UUID
}

// New returns an empty stock.
func New() *Stock {
	return &Stock{newID: uuid.New}
}

// Add appends a new entry. With UnitNotApplicable the amount must be empty;
// with any other unit it is required. A rejected call leaves the stock unchanged.
func (s *Stock) Add(name, amount string, unit Unit) (IngredientEntry, error) {
	name = strings.TrimSpace(name)
	amount = strings.TrimSpace(amount)

	if name == "" {
		return IngredientEntry{}, ErrEmptyName
	}
	if !unit.Valid() {
		return IngredientEntry{}, ErrUnknownUnit
	}

	var quantity string
	if unit == UnitNotApplicable {
		if amount != "" {
			return IngredientEntry{}, ErrQuantityNotAllowed
		}
	} else {
		if amount == "" {
			return IngredientEntry{}, ErrQuantityRequired
		}
		quantity = amount + " " + string(unit)
	}

	entry := IngredientEntry{
		ID:       s.newID(),
		Name:     name,
		Quantity: quantity,
	}
	s.entries = append(s.entries, entry)
	return entry, nil
}

// Remove deletes the entry with the given id. Unknown ids are ignored.
func (s *Stock) Remove(id uuid.UUID) {
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
			return
		}
	}
}

// List returns a copy of the entries in insertion order.
func (s *Stock) List() []IngredientEntry {
	out := make([]IngredientEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Snapshot returns an immutable copy of the current entries.
func (s *Stock) Snapshot() Snapshot {
	return Snapshot(s.List())
}

// Len returns the number of entries.
func (s *Stock) Len() int {
	return len(s.entries)
}
