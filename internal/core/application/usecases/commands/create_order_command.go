package commands

import (
	"errors"
	"strings"

	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/core/domain/model/sale"
	"saleedit/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrNumberIsRequired = errors.New("number is required")
	ErrPartyIsRequired  = errors.New("party is required")
)

// CreateOrderParams are the values of a new order.
type CreateOrderParams struct {
	Number          string
	Party           string
	InvoiceMethod   sale.InvoiceMethod
	Description     string
	Reference       string
	PaymentTerm     string
	PaymentType     string
	InvoiceAddress  string
	ShipmentAddress string
	ShipmentParty   string
	Lines           []sale.NewLineParams
}

// CreateOrderCommand represents a request to create a draft order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), CreateOrderParams{
//	    Number:        "SO-0001",
//	    Party:         "ACME",
//	    InvoiceMethod: sale.InvoiceMethodOrder,
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	params  CreateOrderParams

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the identifiers of a new order. Line values
// are validated by the order itself.
func NewCreateOrderCommand(orderID kernel.UUID, params CreateOrderParams) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setParams(params),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) Params() CreateOrderParams {
	params := c.params
	params.Lines = append([]sale.NewLineParams(nil), c.params.Lines...)
	return params
}

// Values returns the order values written right after creation.
func (c CreateOrderCommand) Values() sale.OrderValues {
	p := c.params
	values := sale.OrderValues{
		Description:     &p.Description,
		Reference:       &p.Reference,
		PaymentTerm:     &p.PaymentTerm,
		PaymentType:     &p.PaymentType,
		InvoiceAddress:  &p.InvoiceAddress,
		ShipmentAddress: &p.ShipmentAddress,
		ShipmentParty:   &p.ShipmentParty,
	}
	if len(p.Lines) > 0 {
		values.Lines = &sale.LineActions{Create: append([]sale.NewLineParams(nil), p.Lines...)}
	}
	return values
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setParams(params CreateOrderParams) error {
	var errList []error
	if strings.TrimSpace(params.Number) == "" {
		errList = append(errList, ErrNumberIsRequired)
	}
	if strings.TrimSpace(params.Party) == "" {
		errList = append(errList, ErrPartyIsRequired)
	}
	errList = append(errList, params.InvoiceMethod.Validate())
	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.params = params
	return nil
}
