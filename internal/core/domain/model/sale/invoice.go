package sale

import (
	"errors"
	"fmt"

	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/pkg/errs"
	"saleedit/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoice constructor")

// Invoice is an invoice issued for an order.
type Invoice struct {
	id     kernel.UUID
	number string
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

func NewInvoice(id kernel.UUID, number string, amount decimal.Decimal) (*Invoice, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if number == "" {
		return nil, errs.NewValueIsRequiredError("invoice number")
	}
	if amount.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("invoice amount", fmt.Errorf("%s is negative", amount))
	}
	return &Invoice{id: id, number: number, amount: amount, guard: guard.NewConstructorGuard()}, nil
}

func (i *Invoice) Validate() error {
	if i == nil {
		return ErrInvoiceIsNotConstructed
	}
	return i.guard.Validate(ErrInvoiceIsNotConstructed)
}

func (i *Invoice) ID() kernel.UUID         { return i.id }
func (i *Invoice) Number() string          { return i.number }
func (i *Invoice) Amount() decimal.Decimal { return i.amount }
