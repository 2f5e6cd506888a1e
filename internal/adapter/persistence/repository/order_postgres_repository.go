package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tumblecup_admin/internal/domain/entities"
	"tumblecup_admin/internal/infrastructure/database"
	"tumblecup_admin/internal/usecase/interfaces"
	"tumblecup_admin/pkg/logger"
)

type orderRow struct {
	ID              string          `db:"id"`
	OrderNumber     string          `db:"order_number"`
	Name            string          `db:"name"`
	Email           string          `db:"email"`
	Phone           sql.NullString  `db:"phone"`
	Address         sql.NullString  `db:"address"`
	City            sql.NullString  `db:"city"`
	ItemName        string          `db:"item_name"`
	Quantity        int             `db:"item_quantity"`
	ItemStyle       sql.NullString  `db:"item_style"`
	BasePrice       float64         `db:"base_price"`
	Price           float64         `db:"price"`
	Total           float64         `db:"total"`
	OrderDate       sql.NullString  `db:"order_date"`
	Status          string          `db:"status"`
	PaymentStatus   string          `db:"payment_status"`
	TrackingID      sql.NullString  `db:"tracking_id"`
	TrackingPartner sql.NullString  `db:"tracking_partner"`
}

// fieldColumns whitelists the mutable order fields against their column
// names; field values never reach the SQL text directly.
var fieldColumns = map[entities.OrderField]string{
	entities.FieldStatus:          "status",
	entities.FieldPaymentStatus:   "payment_status",
	entities.FieldTrackingID:      "tracking_id",
	entities.FieldTrackingPartner: "tracking_partner",
}

const selectOrders = `
	SELECT id, order_number, name, email, phone, address, city,
	       item_name, item_quantity, item_style, base_price, price, total,
	       order_date, status, payment_status, tracking_id, tracking_partner
	FROM orders
	ORDER BY id
`

// OrderPostgresRepository persists order lines in the tabular backend, a
// Postgres table mirroring the original spreadsheet columns. order_date is
// loosely formatted text written by the storefront, coerced leniently here.
//
// Same ceiling as the document backend: fetch-all plus in-memory filtering,
// sized for hundreds of rows.

type OrderPostgresRepository struct {
	db      *database.Postgres
	timeout time.Duration
	logger  logger.Logger
}

var _ interfaces.IOrderRepository = (*OrderPostgresRepository)(nil)

func NewOrderPostgresRepository(db *database.Postgres, timeout time.Duration, log logger.Logger) *OrderPostgresRepository {
	return &OrderPostgresRepository{db: db, timeout: timeout, logger: log}
}

func (r *OrderPostgresRepository) FetchAll(ctx context.Context) ([]entities.Order, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rows []orderRow
	if err := r.db.DB.SelectContext(ctx, &rows, selectOrders); err != nil {
		r.logger.Error("Failed to fetch orders", "error", err)
		return nil, fmt.Errorf("%w: select orders: %v", interfaces.ErrBackendUnavailable, err)
	}

	orders := make([]entities.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, fromOrderRow(row))
	}
	return orders, nil
}

func (r *OrderPostgresRepository) FetchByMonth(ctx context.Context, month time.Month, year int) ([]entities.Order, error) {
	orders, err := r.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return entities.Filter(orders, entities.InMonth(month, year)), nil
}

func (r *OrderPostgresRepository) FetchByDay(ctx context.Context, day int, month time.Month, year int) ([]entities.Order, error) {
	orders, err := r.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return entities.Filter(orders, entities.OnDay(day, month, year)), nil
}

func (r *OrderPostgresRepository) UpdateField(ctx context.Context, orderID string, field entities.OrderField, value string) (bool, error) {
	column, ok := fieldColumns[field]
	if !ok {
		return false, fmt.Errorf("unknown order field %q", field)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf("UPDATE orders SET %s = $1 WHERE id = $2", column)
	result, err := r.db.DB.ExecContext(ctx, query, value, orderID)
	if err != nil {
		r.logger.Error("Failed to update order", "error", err, "orderID", orderID)
		return false, fmt.Errorf("%w: update order %s: %v", interfaces.ErrBackendUnavailable, orderID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: update order %s: %v", interfaces.ErrBackendUnavailable, orderID, err)
	}
	return affected > 0, nil
}

// ApplyBatch applies every change inside one transaction, so the matched set
// lands in the table as a single collection write.
func (r *OrderPostgresRepository) ApplyBatch(ctx context.Context, changes []entities.FieldChange) (int, error) {
	if len(changes) == 0 {
		return 0, nil
	}

	grouped, order := groupChanges(changes)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: begin batch: %v", interfaces.ErrBackendUnavailable, err)
	}
	defer tx.Rollback()

	written := 0
	for _, id := range order {
		for _, ch := range grouped[id] {
			column, ok := fieldColumns[ch.Field]
			if !ok {
				return 0, fmt.Errorf("unknown order field %q", ch.Field)
			}
			query := fmt.Sprintf("UPDATE orders SET %s = $1 WHERE id = $2", column)
			if _, err := tx.ExecContext(ctx, query, ch.Value, id); err != nil {
				r.logger.Error("Failed to apply batch change", "error", err, "orderID", id)
				return 0, fmt.Errorf("%w: batch update order %s: %v", interfaces.ErrBackendUnavailable, id, err)
			}
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit batch: %v", interfaces.ErrBackendUnavailable, err)
	}
	return written, nil
}

func (r *OrderPostgresRepository) Delete(ctx context.Context, orderID string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.db.DB.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", orderID)
	if err != nil {
		r.logger.Error("Failed to delete order", "error", err, "orderID", orderID)
		return false, fmt.Errorf("%w: delete order %s: %v", interfaces.ErrBackendUnavailable, orderID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: delete order %s: %v", interfaces.ErrBackendUnavailable, orderID, err)
	}
	return affected > 0, nil
}

func (r *OrderPostgresRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func fromOrderRow(row orderRow) entities.Order {
	return entities.Order{
		ID:              row.ID,
		OrderNumber:     row.OrderNumber,
		Name:            row.Name,
		Email:           row.Email,
		Phone:           row.Phone.String,
		Address:         row.Address.String,
		City:            row.City.String,
		ItemName:        row.ItemName,
		Quantity:        row.Quantity,
		ItemStyle:       row.ItemStyle.String,
		BasePrice:       row.BasePrice,
		Price:           row.Price,
		Total:           row.Total,
		OrderDate:       entities.ParseOrderDate(row.OrderDate.String),
		Status:          entities.OrderStatus(row.Status),
		PaymentStatus:   entities.PaymentStatus(row.PaymentStatus),
		TrackingID:      row.TrackingID.String,
		TrackingPartner: row.TrackingPartner.String,
	}
}
