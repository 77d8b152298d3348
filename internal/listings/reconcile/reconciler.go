package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/GoSim-25-26J-441/property-listing-backend/internal/docstore"
	"github.com/GoSim-25-26J-441/property-listing-backend/internal/listings/domain"
)

// Report summarises a reconcile pass.
type Report struct {
	UsersScanned  int
	UsersRepaired int
	IDsRemoved    int
}

// Reconciler repairs user property lists left inconsistent by the
// non-atomic create and delete paths: ids whose property document is gone
// and repeated ids are dropped, keeping first-occurrence order.
type Reconciler struct {
	store docstore.Store
}

func New(store docstore.Store) *Reconciler {
	return &Reconciler{store: store}
}

// Run scans every user once. A user whose list needs repair is re-read right
// before the write and the fresh list is filtered, so ids appended while the
// pass was running are kept.
func (r *Reconciler) Run(ctx context.Context) (*Report, error) {
	users, err := r.store.List(ctx, domain.CollectionUser)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	report := &Report{}
	exists := make(map[string]bool)

	for _, entry := range users {
		report.UsersScanned++

		ids := entry.Data.StringSlice(domain.FieldProperties)
		kept, err := r.filter(ctx, ids, exists)
		if err != nil {
			return report, err
		}
		if len(kept) == len(ids) {
			continue
		}

		fresh, err := r.store.Get(ctx, domain.CollectionUser, entry.ID)
		if errors.Is(err, docstore.ErrNotFound) {
			continue
		}
		if err != nil {
			return report, fmt.Errorf("get user %s: %w", entry.ID, err)
		}

		ids = fresh.StringSlice(domain.FieldProperties)
		kept, err = r.filter(ctx, ids, exists)
		if err != nil {
			return report, err
		}
		if len(kept) == len(ids) {
			continue
		}

		if err := r.store.Update(ctx, domain.CollectionUser, entry.ID, docstore.Document{
			domain.FieldProperties: kept,
		}); err != nil {
			return report, fmt.Errorf("update properties of user %s: %w", entry.ID, err)
		}
		report.UsersRepaired++
		report.IDsRemoved += len(ids) - len(kept)
		log.Printf("[info] operation=reconcile user=%s removed=%d", entry.ID, len(ids)-len(kept))
	}

	return report, nil
}

// filter drops repeated ids and ids without a property document. exists caches
// lookups across users within one pass.
func (r *Reconciler) filter(ctx context.Context, ids []string, exists map[string]bool) ([]string, error) {
	kept := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		ok, cached := exists[id]
		if !cached {
			var err error
			ok, err = r.propertyExists(ctx, id)
			if err != nil {
				return nil, err
			}
			exists[id] = ok
		}
		if ok {
			kept = append(kept, id)
		}
	}
	return kept, nil
}

func (r *Reconciler) propertyExists(ctx context.Context, id string) (bool, error) {
	_, err := r.store.Get(ctx, domain.CollectionProperty, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get property %s: %w", id, err)
	}
	return true, nil
}
