package commands

import (
	"errors"

	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/pkg/guard"
)

var (
	ErrInvoiceOrderCommandIsNotConstructed = errors.New(
		"InvoiceOrderCommand must be created via NewInvoiceOrderCommand constructor",
	)
	ErrInvoiceNumberIsRequired = errors.New("invoice number is required")
)

// InvoiceOrderCommand issues an invoice for the whole order total.
type InvoiceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	invoiceID kernel.UUID
	number    string

	guard guard.ConstructorGuard
}

func NewInvoiceOrderCommand(orderID, invoiceID kernel.UUID, number string) (InvoiceOrderCommand, error) {
	var errList []error
	errList = append(errList, orderID.Validate(), invoiceID.Validate())
	if number == "" {
		errList = append(errList, ErrInvoiceNumberIsRequired)
	}
	if err := errors.Join(errList...); err != nil {
		return InvoiceOrderCommand{}, err
	}

	return InvoiceOrderCommand{
		orderID:   orderID,
		invoiceID: invoiceID,
		number:    number,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c InvoiceOrderCommand) Validate() error {
	return c.guard.Validate(ErrInvoiceOrderCommandIsNotConstructed)
}

func (c InvoiceOrderCommand) OrderID() kernel.UUID   { return c.orderID }
func (c InvoiceOrderCommand) InvoiceID() kernel.UUID { return c.invoiceID }
func (c InvoiceOrderCommand) Number() string         { return c.number }
