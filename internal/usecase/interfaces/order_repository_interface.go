package interfaces

import (
	"context"
	"errors"
	"time"

	"tumblecup_admin/internal/domain/entities"
)

// ErrBackendUnavailable marks a backing store that cannot be reached or
// returned a malformed response. Repositories wrap transport failures with
// it; handlers map it to 503.
var ErrBackendUnavailable = errors.New("order backend unavailable")

// IOrderRepository abstracts the order backing store.
//
// Two backends implement it: a DynamoDB document table and a Postgres table
// standing in for the original spreadsheet. Neither offers a query language
// beyond full-collection retrieval, so every filtered read is fetch-all plus
// in-memory filtering. That is acceptable at the console's scale (hundreds of
// rows) and deliberately does not scale beyond it.
//
// Missing ids surface as a false bool, never an error. Store failures are
// wrapped with ErrBackendUnavailable.

type IOrderRepository interface {
	// FetchAll returns every non-archived order line with lenient date
	// coercion: unparseable dates become the zero time.
	FetchAll(ctx context.Context) ([]entities.Order, error)

	// FetchByMonth filters to orders dated in the given month of the caller's
	// year scope. Orders with unknown dates are excluded.
	FetchByMonth(ctx context.Context, month time.Month, year int) ([]entities.Order, error)

	// FetchByDay filters to orders on the exact calendar date. Orders with
	// unknown dates are excluded.
	FetchByDay(ctx context.Context, day int, month time.Month, year int) ([]entities.Order, error)

	// UpdateField sets one field on one order, atomically with respect to
	// that order. Returns false when the id does not exist.
	UpdateField(ctx context.Context, orderID string, field entities.OrderField, value string) (bool, error)

	// ApplyBatch applies every change in a single collection write (one
	// transaction / one transact call), bounding write amplification for
	// batch status updates. Returns the number of orders written.
	ApplyBatch(ctx context.Context, changes []entities.FieldChange) (int, error)

	// Delete removes or archives the order. Returns false when the id does
	// not exist.
	Delete(ctx context.Context, orderID string) (bool, error)
}
