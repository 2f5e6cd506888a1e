package validation

import (
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"

	"tumblecup_admin/internal/adapter/http/dto/request"
)

// New returns a configured validator with the batch-update struct rule
// registered. It reads the same `binding` tags gin enforces during JSON
// binding, so a struct passed here is held to identical field rules.
func New() *validatorv10.Validate {
	v := validatorv10.New()
	v.SetTagName("binding")
	v.RegisterStructValidation(batchUpdateStructValidation, request.BatchUpdateRequest{})
	return v
}

// batchUpdateStructValidation gates the Shipped transition: shipping a batch
// without both a tracking id and a shipping partner is rejected before the
// action reaches the store.
func batchUpdateStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(request.BatchUpdateRequest)
	if !req.IsShippedTransition() {
		return
	}

	if strings.TrimSpace(req.TrackingID) == "" {
		sl.ReportError(req.TrackingID, "tracking_id", "TrackingID", "required_for_shipped", "")
	}
	if strings.TrimSpace(req.TrackingPartner) == "" {
		sl.ReportError(req.TrackingPartner, "tracking_partner", "TrackingPartner", "required_for_shipped", "")
	}
}
