package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/zaikahouse/storefront/models"
)

// MenuFetcher is the slice of the menu service the reconciler needs: the
// customer-visible, availability-filtered catalog.
type MenuFetcher interface {
	FetchAvailableMenu(ctx context.Context) ([]models.Menu, error)
}

// ErrReorderInFlight is returned when a reorder for the same cart is still
// running. Attempts are serialized instead of racing over the cart.
var ErrReorderInFlight = errors.New("a reorder for this cart is already in progress")

// How long we wait for the live menu when the caller's context carries no
// deadline of its own.
const defaultFetchTimeout = 10 * time.Second

// Reconciler rebuilds a cart from a historical order against the current
// live menu. Items that were deleted or are no longer available are skipped;
// quantities and variants are preserved; prices are re-resolved against the
// live catalog, so a reorder reflects today's prices rather than the ones
// the customer originally paid.
type Reconciler struct {
	fetcher MenuFetcher

	mu      sync.Mutex
	pending map[*Store]struct{}
}

func NewReconciler(fetcher MenuFetcher) *Reconciler {
	return &Reconciler{
		fetcher: fetcher,
		pending: make(map[*Store]struct{}),
	}
}

// Reorder reconciles order into store. It returns the number of units added
// to the cart; zero with a nil error means the fetch worked but nothing from
// the order could be restored.
//
// The cart is not touched until the live menu has been fetched successfully:
// a failed fetch leaves whatever was in the cart before the call.
func (r *Reconciler) Reorder(ctx context.Context, store *Store, order models.Order) (int, error) {
	r.mu.Lock()
	if _, busy := r.pending[store]; busy {
		r.mu.Unlock()
		return 0, ErrReorderInFlight
	}
	r.pending[store] = struct{}{}
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.pending, store)
		r.mu.Unlock()
	}()

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultFetchTimeout)
		defer cancel()
	}

	menu, err := r.fetcher.FetchAvailableMenu(ctx)
	if err != nil {
		return 0, err
	}

	live := make(map[uint]models.Menu, len(menu))
	for _, m := range menu {
		live[m.ID] = m
	}

	store.Clear()

	added := 0
	for _, it := range order.OrderItems {
		current, ok := live[it.MenuID]
		if !ok || !current.IsAvailable {
			continue
		}
		variant := ParseVariant(it.Variant)
		// Quantity is rebuilt one unit at a time so duplicate entries for
		// the same (item, variant) merge into a single line.
		for i := 0; i < it.Quantity; i++ {
			store.Add(current, variant)
			added++
		}
	}

	return added, nil
}
