package sale

import (
	"fmt"

	"saleedit/internal/pkg/errs"
)

// InvoiceMethod tells when an order gets invoiced.
type InvoiceMethod string

const (
	InvoiceMethodManual   InvoiceMethod = "manual"
	InvoiceMethodOrder    InvoiceMethod = "order"
	InvoiceMethodShipment InvoiceMethod = "shipment"
)

// ParseInvoiceMethod validates s as an InvoiceMethod.
func ParseInvoiceMethod(s string) (InvoiceMethod, error) {
	m := InvoiceMethod(s)
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

func (m InvoiceMethod) Validate() error {
	switch m {
	case InvoiceMethodManual, InvoiceMethodOrder, InvoiceMethodShipment:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("invoice method", fmt.Errorf("%q is not a valid invoice method", string(m)))
	}
}

func (m InvoiceMethod) String() string {
	return string(m)
}
