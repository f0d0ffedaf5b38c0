// Package http exposes the sale edit use cases over a JSON API built on echo.
package http

import (
	"context"
	"errors"
	"net/http"

	"saleedit/internal/core/application/usecases/commands"
	"saleedit/internal/core/application/usecases/queries"
	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/core/domain/model/sale"
	"saleedit/internal/core/domain/model/stock"
	"saleedit/internal/core/domain/services"
	"saleedit/internal/pkg/errs"
	"saleedit/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
	}
	UpdateOrdersHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrdersCommand) error
	}
	TransitionOrderHandler interface {
		Handle(ctx context.Context, cmd commands.TransitionOrderCommand) error
	}
	InvoiceOrderHandler interface {
		Handle(ctx context.Context, cmd commands.InvoiceOrderCommand) error
	}
	UpdateLinesHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateLinesCommand) error
	}
	DeleteLinesHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteLinesCommand) error
	}
	UpdateShipmentsHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateShipmentsCommand) error
	}
	TransitionShipmentHandler interface {
		Handle(ctx context.Context, cmd commands.TransitionShipmentCommand) error
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (*queries.GetOrderQueryResponse, error)
	}
)

// Handlers groups the use cases served by the API.
type Handlers struct {
	CreateOrder        CreateOrderHandler
	UpdateOrders       UpdateOrdersHandler
	TransitionOrder    TransitionOrderHandler
	InvoiceOrder       InvoiceOrderHandler
	UpdateLines        UpdateLinesHandler
	DeleteLines        DeleteLinesHandler
	UpdateShipments    UpdateShipmentsHandler
	TransitionShipment TransitionShipmentHandler
	GetOrder           GetOrderHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	h   Handlers
	log *logger.Logger

	// updateAmounts refreshes shipment amounts on every shipment write, not
	// only when the request asks for it.
	updateAmounts bool
}

func NewServer(h Handlers, updateAmounts bool, log *logger.Logger) *Server {
	return &Server{
		h:             h,
		log:           log.Component("http"),
		updateAmounts: updateAmounts,
	}
}

// Register mounts the API routes on e. The middleware applies to the
// /api/v1 group only.
func (s *Server) Register(e *echo.Echo, mw ...echo.MiddlewareFunc) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1", mw...)

	v1.POST("/orders", s.CreateOrder)
	v1.PATCH("/orders", s.UpdateOrders)
	v1.GET("/orders/:id", s.GetOrder)
	v1.POST("/orders/:id/transitions/:transition", s.TransitionOrder)
	v1.POST("/orders/:id/invoices", s.InvoiceOrder)

	v1.PATCH("/lines", s.UpdateLines)
	v1.DELETE("/lines", s.DeleteLines)

	v1.PATCH("/shipments", s.UpdateShipments)
	v1.POST("/shipments/:id/transitions/:transition", s.TransitionShipment)
}

func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req newOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	method, err := sale.ParseInvoiceMethod(req.InvoiceMethod)
	if err != nil {
		return badRequest(c, err.Error())
	}
	lines, err := lineParams(req.Lines)
	if err != nil {
		return badRequest(c, err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, commands.CreateOrderParams{
		Number:          req.Number,
		Party:           req.Party,
		InvoiceMethod:   method,
		Description:     req.Description,
		Reference:       req.Reference,
		PaymentTerm:     req.PaymentTerm,
		PaymentType:     req.PaymentType,
		InvoiceAddress:  req.InvoiceAddress,
		ShipmentAddress: req.ShipmentAddress,
		ShipmentParty:   req.ShipmentParty,
		Lines:           lines,
	})
	if err != nil {
		return badRequest(c, "Invalid order data: "+err.Error())
	}

	if err = s.h.CreateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, createdResponse{ID: orderID.String()})
}

// UpdateOrders handles PATCH /api/v1/orders.
func (s *Server) UpdateOrders(c echo.Context) error {
	var req orderWritesRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	writes := make([]commands.OrderWrite, 0, len(req.Writes))
	for _, w := range req.Writes {
		ids, err := kernel.UUIDsFromStrings(w.IDs)
		if err != nil {
			return badRequest(c, err.Error())
		}
		values, err := orderValues(w.Values)
		if err != nil {
			return badRequest(c, err.Error())
		}
		writes = append(writes, commands.OrderWrite{IDs: ids, Values: values})
	}

	cmd, err := commands.NewUpdateOrdersCommand(writes)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err = s.h.UpdateOrders.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return badRequest(c, err.Error())
	}
	order, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, newOrderResponse(order))
}

// TransitionOrder handles POST /api/v1/orders/{id}/transitions/{transition}.
func (s *Server) TransitionOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	cmd, err := commands.NewTransitionOrderCommand(id, c.Param("transition"))
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err = s.h.TransitionOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// InvoiceOrder handles POST /api/v1/orders/{id}/invoices.
func (s *Server) InvoiceOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req newInvoiceRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	invoiceID := kernel.NewUUID()
	cmd, err := commands.NewInvoiceOrderCommand(id, invoiceID, req.Number)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err = s.h.InvoiceOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, createdResponse{ID: invoiceID.String()})
}

// UpdateLines handles PATCH /api/v1/lines.
func (s *Server) UpdateLines(c echo.Context) error {
	var req lineWritesRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	writes := make([]commands.LineWrite, 0, len(req.Writes))
	for _, w := range req.Writes {
		ids, err := kernel.UUIDsFromStrings(w.IDs)
		if err != nil {
			return badRequest(c, err.Error())
		}
		values, err := lineValues(w.Values)
		if err != nil {
			return badRequest(c, err.Error())
		}
		writes = append(writes, commands.LineWrite{IDs: ids, Values: values})
	}

	cmd, err := commands.NewUpdateLinesCommand(writes)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err = s.h.UpdateLines.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteLines handles DELETE /api/v1/lines.
func (s *Server) DeleteLines(c echo.Context) error {
	var req idsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	ids, err := kernel.UUIDsFromStrings(req.IDs)
	if err != nil {
		return badRequest(c, err.Error())
	}

	cmd, err := commands.NewDeleteLinesCommand(ids)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err = s.h.DeleteLines.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UpdateShipments handles PATCH /api/v1/shipments. With update_amounts=true
// the written shipments get their amounts recomputed.
func (s *Server) UpdateShipments(c echo.Context) error {
	var updateAmounts *bool
	err := runtime.BindQueryParameter("form", true, false, "update_amounts", c.QueryParams(), &updateAmounts)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var req shipmentWritesRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	writes := make([]commands.ShipmentWrite, 0, len(req.Writes))
	for _, w := range req.Writes {
		ids, idsErr := kernel.UUIDsFromStrings(w.IDs)
		if idsErr != nil {
			return badRequest(c, idsErr.Error())
		}
		writes = append(writes, commands.ShipmentWrite{
			IDs: ids,
			Values: stock.ShipmentValues{
				DeliveryAddress: w.Values.DeliveryAddress,
				Customer:        w.Values.Customer,
				Reference:       w.Values.Reference,
			},
		})
	}

	cmd, err := commands.NewUpdateShipmentsCommand(writes)
	if err != nil {
		return badRequest(c, err.Error())
	}

	ctx := c.Request().Context()
	if s.updateAmounts || (updateAmounts != nil && *updateAmounts) {
		ctx = services.WithUpdateAmounts(ctx)
	}
	if err = s.h.UpdateShipments.Handle(ctx, cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// TransitionShipment handles POST /api/v1/shipments/{id}/transitions/{transition}.
func (s *Server) TransitionShipment(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	cmd, err := commands.NewTransitionShipmentCommand(id, c.Param("transition"))
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err = s.h.TransitionShipment.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// fail maps a use case error to its HTTP status.
func (s *Server) fail(c echo.Context, err error) error {
	var editErr *errs.EditNotAllowedError
	switch {
	case errors.As(err, &editErr):
		return c.JSON(http.StatusConflict, errorResponse{
			Code:    http.StatusConflict,
			Message: editErr.Error(),
			Kind:    editErr.Kind,
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return badRequest(c, err.Error())
	default:
		s.log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: msg,
	})
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var raw string
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &raw,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return kernel.UUID{}, err
	}
	return kernel.UUIDFromString(raw)
}

func orderValues(r orderValuesRequest) (sale.OrderValues, error) {
	v := sale.OrderValues{
		Description:     r.Description,
		Reference:       r.Reference,
		PaymentTerm:     r.PaymentTerm,
		PaymentType:     r.PaymentType,
		InvoiceAddress:  r.InvoiceAddress,
		ShipmentAddress: r.ShipmentAddress,
		ShipmentParty:   r.ShipmentParty,
	}
	if r.Lines == nil {
		return v, nil
	}

	create, err := lineParams(r.Lines.Create)
	if err != nil {
		return sale.OrderValues{}, err
	}
	deleted, err := kernel.UUIDsFromStrings(r.Lines.Delete)
	if err != nil {
		return sale.OrderValues{}, err
	}
	v.Lines = &sale.LineActions{Create: create, Delete: deleted}
	return v, nil
}

func lineValues(r lineValuesRequest) (sale.LineValues, error) {
	v := sale.LineValues{
		Product:       r.Product,
		Unit:          r.Unit,
		Quantity:      r.Quantity,
		UnitPrice:     r.UnitPrice,
		Discount:      r.Discount,
		TaxRate:       r.TaxRate,
		Description:   r.Description,
		MoveRecreated: r.MoveRecreated,
		MoveIgnored:   r.MoveIgnored,
	}
	if r.Type != nil {
		t, err := sale.ParseLineType(*r.Type)
		if err != nil {
			return sale.LineValues{}, err
		}
		v.Type = &t
	}
	return v, nil
}
