// Package http provides the inbound HTTP adapter.
// It translates JSON requests into commands and queries and maps business
// rejections to stable JSON error responses.
package http

import (
	"errors"
	"net/http"
	"strings"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/returnrequest"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler          commands.CreateOrderCommandHandler
	advanceOrderHandler         commands.AdvanceOrderCommandHandler
	cancelOrderHandler          commands.CancelOrderCommandHandler
	openReturnRequestHandler    commands.OpenReturnRequestCommandHandler
	resolveReturnRequestHandler commands.ResolveReturnRequestCommandHandler

	// Query handlers
	getOrderHandler           queries.GetOrderQueryHandler
	listCustomerOrdersHandler queries.ListCustomerOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	advanceOrderHandler commands.AdvanceOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	openReturnRequestHandler commands.OpenReturnRequestCommandHandler,
	resolveReturnRequestHandler commands.ResolveReturnRequestCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listCustomerOrdersHandler queries.ListCustomerOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		advanceOrderHandler:         advanceOrderHandler,
		cancelOrderHandler:          cancelOrderHandler,
		openReturnRequestHandler:    openReturnRequestHandler,
		resolveReturnRequestHandler: resolveReturnRequestHandler,
		getOrderHandler:             getOrderHandler,
		listCustomerOrdersHandler:   listCustomerOrdersHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:orderID", s.GetOrder)
	api.GET("/customers/:customerID/orders", s.ListCustomerOrders)
	api.POST("/orders/:orderID/transitions", s.RequestTransition)
	api.POST("/orders/:orderID/cancellation", s.CancelOrder)
	api.POST("/orders/:orderID/returns", s.OpenReturnRequest)
	api.POST("/returns/:requestID/resolution", s.ResolveReturnRequest)
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer ID: "+err.Error())
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, itemReq := range req.Items {
		productID, productErr := kernel.UUIDFromString(itemReq.ProductID)
		if productErr != nil {
			return badRequest(ctx, "Invalid product ID: "+productErr.Error())
		}
		item, itemErr := order.NewItem(kernel.NewUUID(), productID, itemReq.Name, itemReq.Quantity, itemReq.UnitPrice)
		if itemErr != nil {
			return badRequest(ctx, "Invalid item: "+itemErr.Error())
		}
		items = append(items, item)
	}

	address, err := order.NewAddress(
		req.Address.FullName,
		req.Address.Phone,
		req.Address.Street,
		req.Address.Building,
		req.Address.Floor,
		req.Address.Apartment,
		req.Address.Area,
		req.Address.City,
		req.Address.Landmark,
	)
	if err != nil {
		return badRequest(ctx, "Invalid address: "+err.Error())
	}

	paymentMethod, err := order.ParsePaymentMethod(req.Payment)
	if err != nil {
		return badRequest(ctx, "Invalid payment method: "+err.Error())
	}

	orderID := kernel.NewUUID()
	number := newOrderNumber(orderID)

	cmd, err := commands.NewCreateOrderCommand(
		orderID, number, customerID, items,
		req.Subtotal, req.ShippingFee, req.Tax, req.Total,
		address, paymentMethod,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		ID:     orderID.String(),
		Number: number,
		Status: order.Pending.String(),
	})
}

// GetOrder handles GET /api/v1/orders/:orderID - returns an order with its tracking log.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	items := make([]ItemResponse, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, ItemResponse{
			ID:        item.ID.String(),
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	tracking := make([]TrackingEventResponse, 0, len(result.Tracking))
	for _, event := range result.Tracking {
		tracking = append(tracking, TrackingEventResponse{
			Status:     event.Status,
			Message:    event.Message,
			OccurredAt: event.OccurredAt,
		})
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		ID:            result.ID.String(),
		Number:        result.Number,
		CustomerID:    result.CustomerID.String(),
		Status:        result.Status,
		Subtotal:      result.Subtotal,
		ShippingFee:   result.ShippingFee,
		Tax:           result.Tax,
		Total:         result.Total,
		PaymentMethod: result.PaymentMethod,
		Address: AddressRequest{
			FullName:  result.Address.FullName,
			Phone:     result.Address.Phone,
			Street:    result.Address.Street,
			Building:  result.Address.Building,
			Floor:     result.Address.Floor,
			Apartment: result.Address.Apartment,
			Area:      result.Address.Area,
			City:      result.Address.City,
			Landmark:  result.Address.Landmark,
		},
		Items:     items,
		Tracking:  tracking,
		CreatedAt: result.CreatedAt,
	})
}

// ListCustomerOrders handles GET /api/v1/customers/:customerID/orders.
func (s *Server) ListCustomerOrders(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerID"))
	if err != nil {
		return badRequest(ctx, "Invalid customer ID: "+err.Error())
	}

	query, err := queries.NewListCustomerOrdersQuery(customerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer ID: "+err.Error())
	}

	summaries, err := s.listCustomerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	response := make([]OrderSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		response = append(response, OrderSummaryResponse{
			ID:        summary.ID.String(),
			Number:    summary.Number,
			Status:    summary.Status,
			Total:     summary.Total,
			ItemCount: summary.ItemCount,
			CreatedAt: summary.CreatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// RequestTransition handles POST /api/v1/orders/:orderID/transitions.
// Requesting the order's current status is treated as an acknowledged no-op.
func (s *Server) RequestTransition(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	var req TransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.ParseStatus(req.Target)
	if err != nil {
		return badRequest(ctx, "Invalid target status: "+err.Error())
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID, target, req.Message)
	if err != nil {
		return badRequest(ctx, "Invalid transition data: "+err.Error())
	}

	aggregate, err := s.advanceOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil && !errors.Is(err, order.ErrTransitionNoOp) {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, transitionResponse(aggregate))
}

// CancelOrder handles POST /api/v1/orders/:orderID/cancellation.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	var req CancellationRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, req.Message)
	if err != nil {
		return badRequest(ctx, "Invalid cancellation data: "+err.Error())
	}

	aggregate, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil && !errors.Is(err, order.ErrTransitionNoOp) {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, transitionResponse(aggregate))
}

// OpenReturnRequest handles POST /api/v1/orders/:orderID/returns.
func (s *Server) OpenReturnRequest(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	var req OpenReturnRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	kind, err := returnrequest.ParseKind(req.Kind)
	if err != nil {
		return badRequest(ctx, "Invalid kind: "+err.Error())
	}

	reason, err := returnrequest.ParseReason(req.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid reason: "+err.Error())
	}

	itemIDs := make([]kernel.UUID, 0, len(req.ItemIDs))
	for _, raw := range req.ItemIDs {
		itemID, itemErr := kernel.UUIDFromString(raw)
		if itemErr != nil {
			return badRequest(ctx, "Invalid item ID: "+itemErr.Error())
		}
		itemIDs = append(itemIDs, itemID)
	}

	cmd, err := commands.NewOpenReturnRequestCommand(
		kernel.NewUUID(), orderID, itemIDs, kind, reason, req.Description, req.Attachments,
	)
	if err != nil {
		return badRequest(ctx, "Invalid return request data: "+err.Error())
	}

	request, err := s.openReturnRequestHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, ReturnRequestResponse{
		ID:        request.ID().String(),
		OrderID:   request.OrderID().String(),
		Kind:      request.Kind().String(),
		Reason:    request.Reason().String(),
		Status:    request.Status().String(),
		CreatedAt: request.CreatedAt(),
	})
}

// ResolveReturnRequest handles POST /api/v1/returns/:requestID/resolution.
// Called by the fulfillment gateway to record the final decision on a request.
func (s *Server) ResolveReturnRequest(ctx echo.Context) error {
	requestID, err := kernel.UUIDFromString(ctx.Param("requestID"))
	if err != nil {
		return badRequest(ctx, "Invalid request ID: "+err.Error())
	}

	var req ResolutionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := returnrequest.ParseStatus(req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid resolution status: "+err.Error())
	}

	cmd, err := commands.NewResolveReturnRequestCommand(requestID, target)
	if err != nil {
		return badRequest(ctx, "Invalid resolution data: "+err.Error())
	}

	resolved, err := s.resolveReturnRequestHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ReturnRequestResponse{
		ID:        resolved.ID().String(),
		OrderID:   resolved.OrderID().String(),
		Kind:      resolved.Kind().String(),
		Reason:    resolved.Reason().String(),
		Status:    resolved.Status().String(),
		CreatedAt: resolved.CreatedAt(),
	})
}

// newOrderNumber derives a human-facing order number from the order ID.
func newOrderNumber(orderID kernel.UUID) string {
	compact := strings.ToUpper(strings.ReplaceAll(orderID.String(), "-", ""))
	return "ORD-" + compact[:12]
}

func transitionResponse(aggregate *order.Order) TransitionResponse {
	last := aggregate.LastTrackingEvent()
	return TransitionResponse{
		ID:     aggregate.ID().String(),
		Status: aggregate.Status().String(),
		Tracking: TrackingEventResponse{
			Status:     last.Status().String(),
			Message:    last.Message(),
			OccurredAt: last.OccurredAt(),
		},
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// mapError translates business rejections into stable JSON error responses.
func mapError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrConcurrencyConflict):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:      http.StatusConflict,
			Message:   err.Error(),
			Retryable: true,
		})
	case errors.Is(err, returnrequest.ErrItemsAlreadyRequested),
		errors.Is(err, returnrequest.ErrAlreadyResolved):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, returnrequest.ErrNotEligible),
		errors.Is(err, returnrequest.ErrWindowExpired),
		errors.Is(err, returnrequest.ErrInvalidSelection),
		errors.Is(err, returnrequest.ErrTooManyAttachments):
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
