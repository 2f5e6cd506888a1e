package request

import (
	"strings"

	"tumblecup_admin/internal/domain/entities"
	"tumblecup_admin/internal/usecase"
)

// BatchUpdateRequest updates every order line whose order number contains
// OrderNumber as a case-insensitive substring. Field selects which status
// column changes; a Shipped transition on the status field must carry both
// tracking values (enforced as a struct-level validation before the store is
// touched).
type BatchUpdateRequest struct {
	OrderNumber     string `json:"order_number" binding:"required"`
	Field           string `json:"field" binding:"required,oneof=status payment_status"`
	NewStatus       string `json:"new_status" binding:"required"`
	TrackingID      string `json:"tracking_id"`
	TrackingPartner string `json:"tracking_partner"`
}

// ToCommand translates the payload into the engine command.
func (r BatchUpdateRequest) ToCommand() usecase.BatchUpdateCommand {
	return usecase.BatchUpdateCommand{
		OrderNumber:     strings.TrimSpace(r.OrderNumber),
		Field:           entities.OrderField(r.Field),
		NewStatus:       strings.TrimSpace(r.NewStatus),
		TrackingID:      strings.TrimSpace(r.TrackingID),
		TrackingPartner: strings.TrimSpace(r.TrackingPartner),
	}
}

// IsShippedTransition reports whether the payload ships orders (and so needs
// tracking data).
func (r BatchUpdateRequest) IsShippedTransition() bool {
	return r.Field == string(entities.FieldStatus) &&
		entities.OrderStatus(strings.TrimSpace(r.NewStatus)) == entities.StatusShipped
}
