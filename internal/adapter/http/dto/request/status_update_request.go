package request

import "strings"

// StatusUpdateRequest changes one status column on a single order line. The
// same payload serves the status and payment-status endpoints; the route
// decides which column it targets.
type StatusUpdateRequest struct {
	NewStatus string `json:"new_status" binding:"required"`
}

func (r StatusUpdateRequest) ResolveStatus() string {
	return strings.TrimSpace(r.NewStatus)
}
