package queries

import (
	"context"

	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/core/domain/model/sale"
	"saleedit/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads orders straight from the database. When the
// totals cache of the order is empty the totals are computed from its lines
// with the same rules the domain uses.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	id := query.OrderID()

	resp, cache, err := h.readOrder(db, id)
	if err != nil {
		return nil, err
	}

	lines, err := h.readLines(db, id)
	if err != nil {
		return nil, err
	}
	resp.Totals = totalsView(cache, lines)
	for _, l := range lines {
		resp.Lines = append(resp.Lines, lineView(l))
	}

	if resp.Shipments, err = h.readShipments(db, id); err != nil {
		return nil, err
	}
	if resp.Invoices, err = h.readInvoices(db, id); err != nil {
		return nil, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) readOrder(db *gorm.DB, id kernel.UUID) (*GetOrderQueryResponse, sale.CachedTotals, error) {
	rows, err := db.Raw(`
		SELECT
			number, party, state, invoice_method, description, reference,
			payment_term, payment_type, invoice_address, shipment_address, shipment_party,
			untaxed_amount_cache, tax_amount_cache, total_amount_cache
		FROM sale_orders
		WHERE id = ?
	`, id.Bytes()).Rows()
	if err != nil {
		return nil, sale.CachedTotals{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, sale.CachedTotals{}, err
		}
		return nil, sale.CachedTotals{}, errs.NewObjectNotFoundError("order", id.String())
	}

	resp := &GetOrderQueryResponse{ID: id}
	var (
		state               int
		untaxed, tax, total decimal.NullDecimal
	)
	err = rows.Scan(
		&resp.Number, &resp.Party, &state, &resp.InvoiceMethod, &resp.Description, &resp.Reference,
		&resp.PaymentTerm, &resp.PaymentType, &resp.InvoiceAddress, &resp.ShipmentAddress, &resp.ShipmentParty,
		&untaxed, &tax, &total,
	)
	if err != nil {
		return nil, sale.CachedTotals{}, err
	}
	resp.State = sale.State(state).String()

	return resp, sale.CachedTotals{
		Untaxed: nullable(untaxed),
		Tax:     nullable(tax),
		Total:   nullable(total),
	}, nil
}

func (h GetOrderQueryHandler) readLines(db *gorm.DB, orderID kernel.UUID) ([]*sale.Line, error) {
	rows, err := db.Raw(`
		SELECT
			id, sequence, type, product, unit, quantity, unit_price, discount, tax_rate,
			description, move_recreated, move_ignored
		FROM sale_lines
		WHERE order_id = ?
		ORDER BY sequence
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]*sale.Line, 0)
	for rows.Next() {
		var (
			rawID    uuid.UUID
			lineType string
			p        = sale.LineParams{OrderID: orderID}
		)
		err = rows.Scan(
			&rawID, &p.Sequence, &lineType, &p.Product, &p.Unit, &p.Quantity, &p.UnitPrice, &p.Discount, &p.TaxRate,
			&p.Description, &p.MoveRecreated, &p.MoveIgnored,
		)
		if err != nil {
			return nil, err
		}
		if p.ID, err = kernel.UUIDFromBytes(rawID[:]); err != nil {
			return nil, err
		}
		if p.Type, err = sale.ParseLineType(lineType); err != nil {
			return nil, err
		}

		line, lineErr := sale.RestoreLine(p)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

type shipmentRow struct {
	ID              uuid.UUID
	Kind            string
	Number          string
	State           string
	DeliveryAddress string
	Customer        string
	Reference       string
	UntaxedAmount   decimal.NullDecimal
	TaxAmount       decimal.NullDecimal
	TotalAmount     decimal.NullDecimal
}

type moveRow struct {
	ID           uuid.UUID
	ShipmentID   uuid.UUID
	Kind         string
	OriginLineID *uuid.UUID
	Product      string
	UOM          string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	State        string
}

func (h GetOrderQueryHandler) readShipments(db *gorm.DB, orderID kernel.UUID) ([]ShipmentView, error) {
	var shipments []shipmentRow
	err := db.Raw(`
		SELECT
			id, kind, number, state, delivery_address, customer, reference,
			untaxed_amount, tax_amount, total_amount
		FROM stock_shipments
		WHERE order_id = ?
		ORDER BY number
	`, orderID.Bytes()).Scan(&shipments).Error
	if err != nil {
		return nil, err
	}

	var moves []moveRow
	err = db.Raw(`
		SELECT
			m.id, m.shipment_id, m.kind, m.origin_line_id, m.product, m.uom,
			m.quantity, m.unit_price, m.state
		FROM stock_moves m
		JOIN stock_shipments s ON s.id = m.shipment_id
		WHERE s.order_id = ?
		ORDER BY m.position
	`, orderID.Bytes()).Scan(&moves).Error
	if err != nil {
		return nil, err
	}

	byShipment := make(map[uuid.UUID][]MoveView, len(shipments))
	for _, m := range moves {
		view, viewErr := moveView(m)
		if viewErr != nil {
			return nil, viewErr
		}
		byShipment[m.ShipmentID] = append(byShipment[m.ShipmentID], view)
	}

	views := make([]ShipmentView, 0, len(shipments))
	for _, s := range shipments {
		id, idErr := kernel.UUIDFromBytes(s.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		view := ShipmentView{
			ID:              id,
			Kind:            s.Kind,
			Number:          s.Number,
			State:           s.State,
			DeliveryAddress: s.DeliveryAddress,
			Customer:        s.Customer,
			Reference:       s.Reference,
			Moves:           byShipment[s.ID],
		}
		if s.TotalAmount.Valid {
			view.Amounts = &TotalsView{
				Untaxed: s.UntaxedAmount.Decimal,
				Tax:     s.TaxAmount.Decimal,
				Total:   s.TotalAmount.Decimal,
				Cached:  true,
			}
		}
		views = append(views, view)
	}

	return views, nil
}

func (h GetOrderQueryHandler) readInvoices(db *gorm.DB, orderID kernel.UUID) ([]InvoiceView, error) {
	var rows []struct {
		ID     uuid.UUID
		Number string
		Amount decimal.Decimal
	}
	err := db.Raw(`
		SELECT id, number, amount
		FROM sale_invoices
		WHERE order_id = ?
		ORDER BY number
	`, orderID.Bytes()).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	invoices := make([]InvoiceView, 0, len(rows))
	for _, r := range rows {
		id, idErr := kernel.UUIDFromBytes(r.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		invoices = append(invoices, InvoiceView{ID: id, Number: r.Number, Amount: r.Amount})
	}
	return invoices, nil
}

func totalsView(cache sale.CachedTotals, lines []*sale.Line) TotalsView {
	if cache.IsComplete() {
		t := cache.Totals()
		return TotalsView{Untaxed: t.Untaxed, Tax: t.Tax, Total: t.Total, Cached: true}
	}
	t := sale.ComputeTotals(lines)
	return TotalsView{Untaxed: t.Untaxed, Tax: t.Tax, Total: t.Total}
}

func lineView(l *sale.Line) LineView {
	return LineView{
		ID:            l.ID(),
		Sequence:      l.Sequence(),
		Type:          l.Type().String(),
		Product:       l.Product(),
		Unit:          l.Unit(),
		Quantity:      l.Quantity(),
		UnitPrice:     l.UnitPrice(),
		Discount:      l.Discount(),
		TaxRate:       l.TaxRate(),
		Amount:        l.Amount(),
		Description:   l.Description(),
		MoveRecreated: l.MoveRecreated(),
		MoveIgnored:   l.MoveIgnored(),
	}
}

func moveView(m moveRow) (MoveView, error) {
	id, err := kernel.UUIDFromBytes(m.ID[:])
	if err != nil {
		return MoveView{}, err
	}
	view := MoveView{
		ID:        id,
		Kind:      m.Kind,
		Product:   m.Product,
		UOM:       m.UOM,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		State:     m.State,
	}
	if m.OriginLineID != nil {
		line, lineErr := kernel.UUIDFromBytes(m.OriginLineID[:])
		if lineErr != nil {
			return MoveView{}, lineErr
		}
		view.OriginLine = &line
	}
	return view, nil
}

func nullable(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	return kernel.DecimalPtr(n.Decimal)
}
