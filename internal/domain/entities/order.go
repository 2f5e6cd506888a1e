package entities

import "time"

// OrderStatus is the fulfillment state of an order line.
//
// Only these values may be persisted; anything else is rejected before the
// store is touched.

type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// OrderStatuses lists every valid fulfillment status.
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// PaymentStatus is the payment state of an order line. Confirmed is the value
// that gates inclusion in profit analytics.

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "Pending"
	PaymentProcessing PaymentStatus = "Processing"
	PaymentConfirmed  PaymentStatus = "Confirmed"
	PaymentCancelled  PaymentStatus = "Cancelled"
)

// PaymentStatuses lists every valid payment status.
var PaymentStatuses = []PaymentStatus{
	PaymentPending,
	PaymentProcessing,
	PaymentConfirmed,
	PaymentCancelled,
}

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentProcessing, PaymentConfirmed, PaymentCancelled:
		return true
	}
	return false
}

// OrderField names a mutable column of an order line. Repositories map these
// to their backend's native column/attribute names.

type OrderField string

const (
	FieldStatus          OrderField = "status"
	FieldPaymentStatus   OrderField = "payment_status"
	FieldTrackingID      OrderField = "tracking_id"
	FieldTrackingPartner OrderField = "tracking_partner"
)

func (f OrderField) Valid() bool {
	switch f {
	case FieldStatus, FieldPaymentStatus, FieldTrackingID, FieldTrackingPartner:
		return true
	}
	return false
}

// Order is one purchased line item. Multiple lines can share an OrderNumber
// (one customer checkout spans several rows), so OrderNumber is not unique.
//
// ID is assigned by the backing store at creation and immutable; this service
// never creates orders, it only reads, updates selected fields and deletes.
//
// A zero OrderDate means the source date could not be parsed; such rows are
// kept in fetch-all results but excluded from month/day filters.
type Order struct {
	ID          string  `json:"id"`
	OrderNumber string  `json:"order_number"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	ItemName    string  `json:"item_name"`
	Quantity    int     `json:"quantity"`
	ItemStyle   string  `json:"item_style,omitempty"`
	BasePrice   float64 `json:"base_price"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`

	OrderDate     time.Time     `json:"order_date,omitempty"`
	Status        OrderStatus   `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`

	TrackingID      string `json:"tracking_id,omitempty"`
	TrackingPartner string `json:"tracking_partner,omitempty"`
}

// DateKnown reports whether the order carries a parseable order date.
func (o Order) DateKnown() bool {
	return !o.OrderDate.IsZero()
}

// FieldChange is a single-field mutation against one order line. Batch
// operations hand the repository a slice of these so the whole matched set is
// written in one collection write.
type FieldChange struct {
	OrderID string
	Field   OrderField
	Value   string
}

// orderDateLayouts are the accepted source formats, in the order they are
// tried. Backends store dates as loosely formatted text (spreadsheet cells,
// document properties), so coercion has to be lenient.
var orderDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-01-2006",
	"02-January-2006",
}

// ParseOrderDate coerces a backend date string into a time.Time. Unparseable
// input yields the zero time, never an error: a bad date must not make a
// fetch fail.
func ParseOrderDate(raw string) time.Time {
	for _, layout := range orderDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
