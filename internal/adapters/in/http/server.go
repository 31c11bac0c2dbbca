// Package http exposes the order lifecycle over a small JSON API: submit an
// order, pack an allocation, report tracking updates and fetch details.
package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"fulfillment/internal/core/application/runtime"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	submitOrderHandler     commands.SubmitOrderCommandHandler
	packAllocationHandler  commands.PackAllocationCommandHandler
	updateTrackingHandler  commands.UpdateTrackingCommandHandler
	getOrderDetailsHandler queries.GetOrderDetailsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	submitOrderHandler commands.SubmitOrderCommandHandler,
	packAllocationHandler commands.PackAllocationCommandHandler,
	updateTrackingHandler commands.UpdateTrackingCommandHandler,
	getOrderDetailsHandler queries.GetOrderDetailsQueryHandler,
) *Server {
	return &Server{
		submitOrderHandler:     submitOrderHandler,
		packAllocationHandler:  packAllocationHandler,
		updateTrackingHandler:  updateTrackingHandler,
		getOrderDetailsHandler: getOrderDetailsHandler,
	}
}

// RegisterRoutes mounts the order API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.SubmitOrder)
	api.GET("/orders/:orderId", s.GetOrderDetails)
	api.POST("/orders/:orderId/allocations/:allocationId/pack", s.PackAllocation)
	api.POST("/orders/:orderId/allocations/:allocationId/tracking", s.UpdateTracking)
}

// SubmitOrder handles POST /api/v1/orders - registers a new order.
func (s *Server) SubmitOrder(ctx echo.Context) error {
	var request SubmitOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items, err := toDomainItems(request.Items)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}
	customer, err := toDomainCustomer(request.Customer)
	if err != nil {
		return badRequest(ctx, "Invalid customer data: "+err.Error())
	}

	cmd, err := commands.NewSubmitOrderCommand(request.OrderID, items, customer)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.submitOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetOrderDetails handles GET /api/v1/orders/:orderId. An order with no
// allocations was never submitted and reports not found.
func (s *Server) GetOrderDetails(ctx echo.Context) error {
	query, err := queries.NewGetOrderDetailsQuery(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	details, err := s.getOrderDetailsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	if len(details.Allocations()) == 0 {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	}

	return ctx.JSON(http.StatusOK, toOrderDetailsResponse(query.OrderID(), details))
}

// PackAllocation handles POST /api/v1/orders/:orderId/allocations/:allocationId/pack.
func (s *Server) PackAllocation(ctx echo.Context) error {
	cmd, err := commands.NewPackAllocationCommand(ctx.Param("orderId"), ctx.Param("allocationId"))
	if err != nil {
		return badRequest(ctx, "Invalid pack request: "+err.Error())
	}

	trackingID, err := s.packAllocationHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, PackAllocationResponse{TrackingID: trackingID})
}

// UpdateTracking handles POST /api/v1/orders/:orderId/allocations/:allocationId/tracking.
func (s *Server) UpdateTracking(ctx echo.Context) error {
	var request UpdateTrackingRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := order.ParseStatus(request.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}

	cmd, err := commands.NewUpdateTrackingCommand(ctx.Param("orderId"), ctx.Param("allocationId"), status)
	if err != nil {
		return badRequest(ctx, "Invalid tracking request: "+err.Error())
	}

	if handleErr := s.updateTrackingHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps application errors to HTTP statuses: validation to 400,
// missing objects to 404, phase and status conflicts to 409, backpressure to
// 429, booking failures to 502 and ask timeouts to 503.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, runtime.ErrOrderNotFound), errors.Is(err, runtime.ErrAllocationNotFound):
		status = http.StatusNotFound
	case errors.Is(err, runtime.ErrOrderAlreadyExists),
		errors.Is(err, runtime.ErrNoAllocations),
		errors.Is(err, runtime.ErrInconsistentStatus):
		status = http.StatusConflict
	case errors.Is(err, runtime.ErrBookingCapExceeded):
		status = http.StatusTooManyRequests
	case errors.Is(err, runtime.ErrUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, ports.ErrBooking):
		status = http.StatusBadGateway
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}
