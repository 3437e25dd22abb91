package cart

import (
	"sync"

	"github.com/zaikahouse/storefront/models"
)

// Line is one (menu item, variant) entry in a cart. The menu fields are
// denormalized at add time and the unit price is locked in for the life of
// the line; later catalog changes do not touch existing lines.
type Line struct {
	MenuID    uint    `json:"menu_id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	ImageURL  string  `json:"image_url"`
	Quantity  int     `json:"quantity"`
	Variant   Variant `json:"variant"`
	UnitPrice float64 `json:"unit_price"`
}

// Store holds the ordered cart lines of one customer session together with
// the derived aggregates. Aggregates are recomputed inside every mutation,
// so they are consistent with the lines the moment a call returns.
//
// Invariants: every present line has Quantity >= 1, and (MenuID, Variant)
// is unique across lines.
type Store struct {
	mu         sync.Mutex
	lines      []Line
	totalItems int
	totalPrice float64
}

func NewStore() *Store {
	return &Store{}
}

// Add resolves the unit price for (item, variant) and merges the unit into
// the cart: an existing (id, variant) line gains quantity 1, otherwise a new
// line is appended. It always succeeds.
func (s *Store) Add(item models.Menu, variant Variant) {
	price := ResolvePrice(item, variant)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].MenuID == item.ID && s.lines[i].Variant == variant {
			s.lines[i].Quantity++
			s.recompute()
			return
		}
	}

	s.lines = append(s.lines, Line{
		MenuID:    item.ID,
		Name:      item.Name,
		Category:  item.Category.Name,
		ImageURL:  item.ImageURL,
		Quantity:  1,
		Variant:   variant,
		UnitPrice: price,
	})
	s.recompute()
}

// UpdateQuantity adds delta to the matching line's quantity. A resulting
// quantity of zero or below removes the line; a missing line is a no-op.
func (s *Store) UpdateQuantity(menuID uint, variant Variant, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].MenuID != menuID || s.lines[i].Variant != variant {
			continue
		}
		s.lines[i].Quantity += delta
		if s.lines[i].Quantity <= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		}
		s.recompute()
		return
	}
}

// Remove deletes lines for menuID. With an empty variant every line of the
// item goes; otherwise only the exact (id, variant) line. Removing nothing
// is not an error.
func (s *Store) Remove(menuID uint, variant Variant) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.lines[:0]
	for _, l := range s.lines {
		if l.MenuID == menuID && (variant == "" || l.Variant == variant) {
			continue
		}
		kept = append(kept, l)
	}
	s.lines = kept
	s.recompute()
}

// Clear resets the cart to empty.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.recompute()
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalItems
}

func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalPrice
}

// recompute derives the aggregates from the lines. Callers must hold mu.
func (s *Store) recompute() {
	items := 0
	price := 0.0
	for _, l := range s.lines {
		items += l.Quantity
		price += l.UnitPrice * float64(l.Quantity)
	}
	s.totalItems = items
	s.totalPrice = price
}
