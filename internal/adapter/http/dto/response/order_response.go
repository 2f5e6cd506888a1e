package response

import (
	"tumblecup_admin/internal/domain/entities"
)

// OrderResponse is the wire shape of one order line. The order date is
// rendered the way the console displays it; unknown dates come back empty.
type OrderResponse struct {
	ID              string  `json:"id"`
	OrderNumber     string  `json:"order_number"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone,omitempty"`
	Address         string  `json:"address,omitempty"`
	City            string  `json:"city,omitempty"`
	ItemName        string  `json:"item_name"`
	Quantity        int     `json:"item_quantity"`
	ItemStyle       string  `json:"item_style,omitempty"`
	BasePrice       float64 `json:"base_price"`
	Price           float64 `json:"price"`
	Total           float64 `json:"total"`
	OrderDate       string  `json:"order_date,omitempty"`
	Status          string  `json:"status"`
	PaymentStatus   string  `json:"payment_status"`
	TrackingID      string  `json:"tracking_id,omitempty"`
	TrackingPartner string  `json:"tracking_partner,omitempty"`
}

func FromOrder(o entities.Order) OrderResponse {
	date := ""
	if o.DateKnown() {
		date = o.OrderDate.Format("02-January-2006")
	}
	return OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		Name:            o.Name,
		Email:           o.Email,
		Phone:           o.Phone,
		Address:         o.Address,
		City:            o.City,
		ItemName:        o.ItemName,
		Quantity:        o.Quantity,
		ItemStyle:       o.ItemStyle,
		BasePrice:       o.BasePrice,
		Price:           o.Price,
		Total:           o.Total,
		OrderDate:       date,
		Status:          string(o.Status),
		PaymentStatus:   string(o.PaymentStatus),
		TrackingID:      o.TrackingID,
		TrackingPartner: o.TrackingPartner,
	}
}

// OrdersResponse wraps a listed order set.
type OrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
	Count  int             `json:"count"`
}

func FromOrders(orders []entities.Order) OrdersResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return OrdersResponse{Orders: out, Count: len(out)}
}

// BatchUpdateResponse reports what a batch status update touched.
type BatchUpdateResponse struct {
	UpdatedCount int      `json:"updated_count"`
	UpdatedIDs   []string `json:"updated_ids"`
}
