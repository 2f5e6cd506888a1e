package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	request "tumblecup_admin/internal/adapter/http/dto/request"
	response "tumblecup_admin/internal/adapter/http/dto/response"
	"tumblecup_admin/internal/domain/entities"
	"tumblecup_admin/internal/usecase"
	"tumblecup_admin/internal/usecase/interfaces"
	"tumblecup_admin/internal/validation"
	"tumblecup_admin/pkg"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

var (
	errInvalidStatusPayload = pkg.NewDomainErrorSimple("INVALID_STATUS_INPUT", "Invalid status payload", http.StatusBadRequest)
	errInvalidFilters       = pkg.NewDomainErrorSimple("INVALID_FILTERS", "Invalid filter parameters", http.StatusBadRequest)
)

// OrderHandler handles the order console endpoints: scoped listing, single
// and batch status mutation, deletion, and the orders CSV export.

type OrderHandler struct {
	usecase   usecase.IOrderUseCase
	validator *validatorv10.Validate
}

func NewOrderHandler(uc usecase.IOrderUseCase) *OrderHandler {
	return &OrderHandler{usecase: uc, validator: validation.New()}
}

// ListOrders returns the filtered order set. Query parameters: month (1-12),
// year, day, search, status (repeatable), payment_status (repeatable).
func (h *OrderHandler) ListOrders(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		c.JSON(errInvalidFilters.HTTPStatus, errInvalidFilters.ToHTTPError())
		return
	}

	orders, err := h.usecase.List(c.Request.Context(), filters)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrders(orders))
}

// BatchUpdate applies a status change to every order line matching the order
// number fragment, stamping tracking fields on Shipped transitions.
func (h *OrderHandler) BatchUpdate(c *gin.Context) {
	var payload request.BatchUpdateRequest
	if err := validation.BindAndValidate(c, &payload, h.validator); err != nil {
		return
	}

	result, err := h.usecase.UpdateByOrderNumber(c.Request.Context(), payload.ToCommand())
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if result.Count == 0 {
		appErr := pkg.NewDomainErrorSimple("NO_MATCHING_ORDERS", "No orders found matching '"+payload.OrderNumber+"'", http.StatusNotFound)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.BatchUpdateResponse{
		UpdatedCount: result.Count,
		UpdatedIDs:   result.UpdatedIDs,
	})
}

// UpdateStatus sets the fulfillment status of one order line.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var payload request.StatusUpdateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidStatusPayload.HTTPStatus, errInvalidStatusPayload.ToHTTPError())
		return
	}

	orderID := c.Param("id")
	if err := h.usecase.UpdateStatus(c.Request.Context(), orderID, entities.OrderStatus(payload.ResolveStatus())); err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": orderID, "status": payload.ResolveStatus()})
}

// UpdatePaymentStatus sets the payment status of one order line.
func (h *OrderHandler) UpdatePaymentStatus(c *gin.Context) {
	var payload request.StatusUpdateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidStatusPayload.HTTPStatus, errInvalidStatusPayload.ToHTTPError())
		return
	}

	orderID := c.Param("id")
	if err := h.usecase.UpdatePaymentStatus(c.Request.Context(), orderID, entities.PaymentStatus(payload.ResolveStatus())); err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": orderID, "payment_status": payload.ResolveStatus()})
}

// DeleteOrder removes one order line.
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	orderID := c.Param("id")
	if err := h.usecase.Delete(c.Request.Context(), orderID); err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": orderID, "deleted": true})
}

// ExportOrders streams the filtered order set as a CSV attachment with a
// dated filename.
func (h *OrderHandler) ExportOrders(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		c.JSON(errInvalidFilters.HTTPStatus, errInvalidFilters.ToHTTPError())
		return
	}

	orders, err := h.usecase.List(c.Request.Context(), filters)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	data, err := usecase.OrdersCSV(orders)
	if err != nil {
		appErr := pkg.NewDomainError("EXPORT_FAILED", "Could not export orders", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	name := usecase.ExportFilename("orders", time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// parseFilters builds the per-request filter state from query parameters.
// The year scope defaults to the current year when a date filter is present
// without one.
func parseFilters(c *gin.Context) (usecase.Filters, error) {
	var f usecase.Filters

	if raw := c.Query("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			return usecase.Filters{}, errors.New("month out of range")
		}
		f.Month = time.Month(m)
	}
	if raw := c.Query("day"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d < 1 || d > 31 {
			return usecase.Filters{}, errors.New("day out of range")
		}
		f.Day = d
	}
	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 2000 || y > 2100 {
			return usecase.Filters{}, errors.New("year out of range")
		}
		f.Year = y
	}
	if (f.Month > 0 || f.Day > 0) && f.Year == 0 {
		f.Year = time.Now().Year()
	}
	if f.Day > 0 && f.Month == 0 {
		return usecase.Filters{}, errors.New("day filter requires month")
	}

	f.Search = strings.TrimSpace(c.Query("search"))

	for _, raw := range c.QueryArray("status") {
		s := entities.OrderStatus(strings.TrimSpace(raw))
		if !s.Valid() {
			return usecase.Filters{}, errors.New("unknown status " + raw)
		}
		f.Statuses = append(f.Statuses, s)
	}
	for _, raw := range c.QueryArray("payment_status") {
		s := entities.PaymentStatus(strings.TrimSpace(raw))
		if !s.Valid() {
			return usecase.Filters{}, errors.New("unknown payment status " + raw)
		}
		f.PaymentStatuses = append(f.PaymentStatuses, s)
	}

	return f, nil
}

func mapOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID),
		errors.Is(err, usecase.ErrInvalidOrderNumber),
		errors.Is(err, usecase.ErrInvalidStatusField),
		errors.Is(err, usecase.ErrInvalidStatus):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrTrackingRequired):
		return pkg.NewDomainErrorSimple("TRACKING_REQUIRED", "Tracking ID and shipping partner are required to mark orders Shipped", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, interfaces.ErrBackendUnavailable):
		return pkg.NewDomainError("BACKEND_UNAVAILABLE", "Order store is unavailable", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
