package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"tumblecup_admin/internal/domain/entities"
	"tumblecup_admin/internal/usecase/interfaces"
	"tumblecup_admin/pkg/logger"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderID     = errors.New("invalid order id")
	ErrInvalidOrderNumber = errors.New("invalid order number")
	ErrInvalidStatusField = errors.New("invalid status field")
	ErrInvalidStatus      = errors.New("invalid status value")
	ErrTrackingRequired   = errors.New("tracking id and partner required for shipped status")
)

// Filters is the explicit per-request filter state. It replaces the original
// console's process-wide mutable filter globals: each action receives its own
// copy, nothing is cached between requests.
//
// Day filtering takes precedence over month filtering; both require Year.
type Filters struct {
	Month  time.Month
	Year   int
	Day    int
	Search string

	Statuses        []entities.OrderStatus
	PaymentStatuses []entities.PaymentStatus
}

// BatchUpdateCommand describes a status change applied to every order line
// whose order number contains the fragment.
type BatchUpdateCommand struct {
	OrderNumber     string
	Field           entities.OrderField
	NewStatus       string
	TrackingID      string
	TrackingPartner string
}

// BatchResult reports what a batch update touched.
type BatchResult struct {
	Count      int
	UpdatedIDs []string
}

// IOrderUseCase exposes the order console operations: scoped listing, single
// and batch status mutation, and deletion.

type IOrderUseCase interface {
	List(ctx context.Context, f Filters) ([]entities.Order, error)
	UpdateByOrderNumber(ctx context.Context, cmd BatchUpdateCommand) (BatchResult, error)
	UpdateStatus(ctx context.Context, orderID string, status entities.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, orderID string, status entities.PaymentStatus) error
	Delete(ctx context.Context, orderID string) error
}

type OrderUseCase struct {
	repo     interfaces.IOrderRepository
	notifier interfaces.INotifier
	logger   logger.Logger
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(repo interfaces.IOrderRepository, notifier interfaces.INotifier, log logger.Logger) *OrderUseCase {
	return &OrderUseCase{repo: repo, notifier: notifier, logger: log}
}

// List fetches the date-scoped snapshot and applies the search and status
// predicates in memory.
func (u *OrderUseCase) List(ctx context.Context, f Filters) ([]entities.Order, error) {
	orders, err := u.fetchScoped(ctx, f)
	if err != nil {
		return nil, err
	}

	preds := []entities.OrderPredicate{
		entities.HasStatusIn(f.Statuses),
		entities.HasPaymentStatusIn(f.PaymentStatuses),
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		preds = append(preds, entities.MatchesSearch(term))
	}
	return entities.Filter(orders, preds...), nil
}

func (u *OrderUseCase) fetchScoped(ctx context.Context, f Filters) ([]entities.Order, error) {
	switch {
	case f.Day > 0:
		return u.repo.FetchByDay(ctx, f.Day, f.Month, f.Year)
	case f.Month > 0:
		return u.repo.FetchByMonth(ctx, f.Month, f.Year)
	default:
		return u.repo.FetchAll(ctx)
	}
}

// UpdateByOrderNumber applies a status change to every order line whose
// order number contains cmd.OrderNumber as a case-insensitive substring.
//
// The snapshot is re-read immediately before mutating and the whole matched
// set goes to the store in one collection write. Zero matches is not an
// error: the result reports zero and the store is left untouched.
//
// A Shipped transition on the status field requires both tracking id and
// partner; the check runs before any store call and both tracking fields are
// stamped on every matched line.
func (u *OrderUseCase) UpdateByOrderNumber(ctx context.Context, cmd BatchUpdateCommand) (BatchResult, error) {
	fragment := strings.TrimSpace(cmd.OrderNumber)
	if fragment == "" {
		return BatchResult{}, ErrInvalidOrderNumber
	}

	if cmd.Field != entities.FieldStatus && cmd.Field != entities.FieldPaymentStatus {
		return BatchResult{}, ErrInvalidStatusField
	}
	newStatus := strings.TrimSpace(cmd.NewStatus)
	if cmd.Field == entities.FieldStatus && !entities.OrderStatus(newStatus).Valid() {
		return BatchResult{}, ErrInvalidStatus
	}
	if cmd.Field == entities.FieldPaymentStatus && !entities.PaymentStatus(newStatus).Valid() {
		return BatchResult{}, ErrInvalidStatus
	}

	trackingID := strings.TrimSpace(cmd.TrackingID)
	partner := strings.TrimSpace(cmd.TrackingPartner)
	shipping := cmd.Field == entities.FieldStatus && entities.OrderStatus(newStatus) == entities.StatusShipped
	if shipping && (trackingID == "" || partner == "") {
		return BatchResult{}, ErrTrackingRequired
	}

	orders, err := u.repo.FetchAll(ctx)
	if err != nil {
		return BatchResult{}, err
	}

	matched := entities.Filter(orders, entities.MatchesOrderNumber(fragment))
	if len(matched) == 0 {
		return BatchResult{Count: 0, UpdatedIDs: []string{}}, nil
	}

	changes := make([]entities.FieldChange, 0, len(matched)*3)
	ids := make([]string, 0, len(matched))
	for _, o := range matched {
		ids = append(ids, o.ID)
		changes = append(changes, entities.FieldChange{OrderID: o.ID, Field: cmd.Field, Value: newStatus})
		if shipping {
			changes = append(changes,
				entities.FieldChange{OrderID: o.ID, Field: entities.FieldTrackingID, Value: trackingID},
				entities.FieldChange{OrderID: o.ID, Field: entities.FieldTrackingPartner, Value: partner},
			)
		}
	}

	if _, err := u.repo.ApplyBatch(ctx, changes); err != nil {
		return BatchResult{}, err
	}

	u.logger.Info("batch status update applied",
		"fragment", fragment, "field", string(cmd.Field), "status", newStatus, "matched", len(matched))

	u.notifyBatch(ctx, matched, cmd.Field, newStatus, trackingID, partner)

	return BatchResult{Count: len(matched), UpdatedIDs: ids}, nil
}

// notifyBatch emails every distinct customer in the matched set. The
// historical console broke out of this loop after the first successful send;
// that was a bug, not batching, so every customer is notified here. A
// customer's lines may span several order numbers, so each email names all of
// that customer's matched orders. Failures are logged and never unwind the
// update.
func (u *OrderUseCase) notifyBatch(ctx context.Context, matched []entities.Order, field entities.OrderField, newStatus, trackingID, partner string) {
	if u.notifier == nil {
		return
	}

	subject := "Tumble Cup Order Status Update"
	if field == entities.FieldPaymentStatus {
		subject = "Tumble Cup Payment Status Update"
	}

	numbersByEmail := make(map[string][]string, len(matched))
	emails := make([]string, 0, len(matched))
	for _, o := range matched {
		email := strings.TrimSpace(o.Email)
		if email == "" {
			continue
		}
		nums, seen := numbersByEmail[email]
		if !seen {
			emails = append(emails, email)
		}
		if !slices.Contains(nums, o.OrderNumber) {
			numbersByEmail[email] = append(nums, o.OrderNumber)
		}
	}

	for _, email := range emails {
		numbers := numbersByEmail[email]
		body := buildNotificationBody(numbers, field, newStatus, trackingID, partner)
		if err := u.notifier.SendNotification(ctx, email, subject, body); err != nil {
			u.logger.Warn("could not send notification", "orders", strings.Join(numbers, ", "), "email", email, "error", err)
		}
	}
}

func buildNotificationBody(orderNumbers []string, field entities.OrderField, newStatus, trackingID, partner string) string {
	label := "status"
	if field == entities.FieldPaymentStatus {
		label = "payment status"
	}

	var b strings.Builder
	b.WriteString("<p>Dear Customer,</p>")
	if len(orderNumbers) == 1 {
		fmt.Fprintf(&b, "<p>Your order <strong>%s</strong> %s has been updated to <strong>%s</strong>.</p>", orderNumbers[0], label, newStatus)
	} else {
		fmt.Fprintf(&b, "<p>The %s of your orders <strong>%s</strong> has been updated to <strong>%s</strong>.</p>", label, strings.Join(orderNumbers, ", "), newStatus)
	}
	if trackingID != "" {
		fmt.Fprintf(&b, "<p>Your shipment is on its way! You can track your package using the tracking number: <strong>%s via %s</strong></p>", trackingID, partner)
	}
	b.WriteString("<p>Thank you for shopping with Tumble Cup!</p>")
	return b.String()
}

// UpdateStatus sets the fulfillment status of a single order line.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, orderID string, status entities.OrderStatus) error {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return ErrInvalidOrderID
	}
	if !status.Valid() {
		return ErrInvalidStatus
	}

	ok, err := u.repo.UpdateField(ctx, orderID, entities.FieldStatus, string(status))
	if err != nil {
		return err
	}
	if !ok {
		return ErrOrderNotFound
	}
	return nil
}

// UpdatePaymentStatus sets the payment status of a single order line.
func (u *OrderUseCase) UpdatePaymentStatus(ctx context.Context, orderID string, status entities.PaymentStatus) error {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return ErrInvalidOrderID
	}
	if !status.Valid() {
		return ErrInvalidStatus
	}

	ok, err := u.repo.UpdateField(ctx, orderID, entities.FieldPaymentStatus, string(status))
	if err != nil {
		return err
	}
	if !ok {
		return ErrOrderNotFound
	}
	return nil
}

// Delete removes a single order line.
func (u *OrderUseCase) Delete(ctx context.Context, orderID string) error {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return ErrInvalidOrderID
	}

	ok, err := u.repo.Delete(ctx, orderID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOrderNotFound
	}
	return nil
}
