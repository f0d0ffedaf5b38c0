package queries

import (
	"errors"

	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order with its lines, shipments and invoices.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	order, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to read order: %w", err)
//	}
//	fmt.Printf("%s total %s (cached: %t)\n", order.Number, order.Totals.Total, order.Totals.Cached)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the read model of an order.
type GetOrderQueryResponse struct {
	ID              kernel.UUID
	Number          string
	Party           string
	State           string
	InvoiceMethod   string
	Description     string
	Reference       string
	PaymentTerm     string
	PaymentType     string
	InvoiceAddress  string
	ShipmentAddress string
	ShipmentParty   string
	Totals          TotalsView
	Lines           []LineView
	Shipments       []ShipmentView
	Invoices        []InvoiceView
}

// TotalsView holds order or shipment amounts. Cached is false when the
// values were computed because the stored cache is empty.
type TotalsView struct {
	Untaxed decimal.Decimal
	Tax     decimal.Decimal
	Total   decimal.Decimal
	Cached  bool
}

type LineView struct {
	ID            kernel.UUID
	Sequence      int
	Type          string
	Product       string
	Unit          string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	Discount      decimal.Decimal
	TaxRate       decimal.Decimal
	Amount        decimal.Decimal
	Description   string
	MoveRecreated bool
	MoveIgnored   bool
}

type ShipmentView struct {
	ID              kernel.UUID
	Kind            string
	Number          string
	State           string
	DeliveryAddress string
	Customer        string
	Reference       string
	Amounts         *TotalsView
	Moves           []MoveView
}

type MoveView struct {
	ID         kernel.UUID
	Kind       string
	OriginLine *kernel.UUID
	Product    string
	UOM        string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	State      string
}

type InvoiceView struct {
	ID     kernel.UUID
	Number string
	Amount decimal.Decimal
}
