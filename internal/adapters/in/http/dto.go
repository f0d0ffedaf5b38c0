package http

import (
	"saleedit/internal/core/application/usecases/queries"
	"saleedit/internal/core/domain/model/sale"

	"github.com/shopspring/decimal"
)

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}

type createdResponse struct {
	ID string `json:"id"`
}

type idsRequest struct {
	IDs []string `json:"ids"`
}

type newLineRequest struct {
	Type        string          `json:"type"`
	Product     string          `json:"product"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Description string          `json:"description"`
}

func (r newLineRequest) params() (sale.NewLineParams, error) {
	lineType, err := sale.ParseLineType(r.Type)
	if err != nil {
		return sale.NewLineParams{}, err
	}
	return sale.NewLineParams{
		Type:        lineType,
		Product:     r.Product,
		Unit:        r.Unit,
		Quantity:    r.Quantity,
		UnitPrice:   r.UnitPrice,
		Discount:    r.Discount,
		TaxRate:     r.TaxRate,
		Description: r.Description,
	}, nil
}

func lineParams(in []newLineRequest) ([]sale.NewLineParams, error) {
	out := make([]sale.NewLineParams, 0, len(in))
	for _, r := range in {
		p, err := r.params()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

type newOrderRequest struct {
	Number          string           `json:"number"`
	Party           string           `json:"party"`
	InvoiceMethod   string           `json:"invoice_method"`
	Description     string           `json:"description"`
	Reference       string           `json:"reference"`
	PaymentTerm     string           `json:"payment_term"`
	PaymentType     string           `json:"payment_type"`
	InvoiceAddress  string           `json:"invoice_address"`
	ShipmentAddress string           `json:"shipment_address"`
	ShipmentParty   string           `json:"shipment_party"`
	Lines           []newLineRequest `json:"lines"`
}

type lineActionsRequest struct {
	Create []newLineRequest `json:"create"`
	Delete []string         `json:"delete"`
}

type orderValuesRequest struct {
	Description     *string             `json:"description"`
	Reference       *string             `json:"reference"`
	PaymentTerm     *string             `json:"payment_term"`
	PaymentType     *string             `json:"payment_type"`
	InvoiceAddress  *string             `json:"invoice_address"`
	ShipmentAddress *string             `json:"shipment_address"`
	ShipmentParty   *string             `json:"shipment_party"`
	Lines           *lineActionsRequest `json:"lines"`
}

type orderWritesRequest struct {
	Writes []struct {
		IDs    []string           `json:"ids"`
		Values orderValuesRequest `json:"values"`
	} `json:"writes"`
}

type lineValuesRequest struct {
	Type          *string          `json:"type"`
	Product       *string          `json:"product"`
	Unit          *string          `json:"unit"`
	Quantity      *decimal.Decimal `json:"quantity"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	Discount      *decimal.Decimal `json:"discount"`
	TaxRate       *decimal.Decimal `json:"tax_rate"`
	Description   *string          `json:"description"`
	MoveRecreated *bool            `json:"move_recreated"`
	MoveIgnored   *bool            `json:"move_ignored"`
}

type lineWritesRequest struct {
	Writes []struct {
		IDs    []string          `json:"ids"`
		Values lineValuesRequest `json:"values"`
	} `json:"writes"`
}

type shipmentValuesRequest struct {
	DeliveryAddress *string `json:"delivery_address"`
	Customer        *string `json:"customer"`
	Reference       *string `json:"reference"`
}

type shipmentWritesRequest struct {
	Writes []struct {
		IDs    []string              `json:"ids"`
		Values shipmentValuesRequest `json:"values"`
	} `json:"writes"`
}

type newInvoiceRequest struct {
	Number string `json:"number"`
}

type totalsResponse struct {
	Untaxed decimal.Decimal `json:"untaxed"`
	Tax     decimal.Decimal `json:"tax"`
	Total   decimal.Decimal `json:"total"`
	Cached  bool            `json:"cached"`
}

type lineResponse struct {
	ID            string          `json:"id"`
	Sequence      int             `json:"sequence"`
	Type          string          `json:"type"`
	Product       string          `json:"product"`
	Unit          string          `json:"unit"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Discount      decimal.Decimal `json:"discount"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	MoveRecreated bool            `json:"move_recreated"`
	MoveIgnored   bool            `json:"move_ignored"`
}

type moveResponse struct {
	ID         string          `json:"id"`
	Kind       string          `json:"kind"`
	OriginLine *string         `json:"origin_line"`
	Product    string          `json:"product"`
	UOM        string          `json:"uom"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	State      string          `json:"state"`
}

type shipmentResponse struct {
	ID              string          `json:"id"`
	Kind            string          `json:"kind"`
	Number          string          `json:"number"`
	State           string          `json:"state"`
	DeliveryAddress string          `json:"delivery_address"`
	Customer        string          `json:"customer"`
	Reference       string          `json:"reference"`
	Amounts         *totalsResponse `json:"amounts,omitempty"`
	Moves           []moveResponse  `json:"moves"`
}

type invoiceResponse struct {
	ID     string          `json:"id"`
	Number string          `json:"number"`
	Amount decimal.Decimal `json:"amount"`
}

type orderResponse struct {
	ID              string             `json:"id"`
	Number          string             `json:"number"`
	Party           string             `json:"party"`
	State           string             `json:"state"`
	InvoiceMethod   string             `json:"invoice_method"`
	Description     string             `json:"description"`
	Reference       string             `json:"reference"`
	PaymentTerm     string             `json:"payment_term"`
	PaymentType     string             `json:"payment_type"`
	InvoiceAddress  string             `json:"invoice_address"`
	ShipmentAddress string             `json:"shipment_address"`
	ShipmentParty   string             `json:"shipment_party"`
	Totals          totalsResponse     `json:"totals"`
	Lines           []lineResponse     `json:"lines"`
	Shipments       []shipmentResponse `json:"shipments"`
	Invoices        []invoiceResponse  `json:"invoices"`
}

func newOrderResponse(o *queries.GetOrderQueryResponse) orderResponse {
	resp := orderResponse{
		ID:              o.ID.String(),
		Number:          o.Number,
		Party:           o.Party,
		State:           o.State,
		InvoiceMethod:   o.InvoiceMethod,
		Description:     o.Description,
		Reference:       o.Reference,
		PaymentTerm:     o.PaymentTerm,
		PaymentType:     o.PaymentType,
		InvoiceAddress:  o.InvoiceAddress,
		ShipmentAddress: o.ShipmentAddress,
		ShipmentParty:   o.ShipmentParty,
		Totals:          totalsResponse(o.Totals),
		Lines:           make([]lineResponse, 0, len(o.Lines)),
		Shipments:       make([]shipmentResponse, 0, len(o.Shipments)),
		Invoices:        make([]invoiceResponse, 0, len(o.Invoices)),
	}

	for _, l := range o.Lines {
		resp.Lines = append(resp.Lines, lineResponse{
			ID:            l.ID.String(),
			Sequence:      l.Sequence,
			Type:          l.Type,
			Product:       l.Product,
			Unit:          l.Unit,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			Discount:      l.Discount,
			TaxRate:       l.TaxRate,
			Amount:        l.Amount,
			Description:   l.Description,
			MoveRecreated: l.MoveRecreated,
			MoveIgnored:   l.MoveIgnored,
		})
	}

	for _, s := range o.Shipments {
		shipment := shipmentResponse{
			ID:              s.ID.String(),
			Kind:            s.Kind,
			Number:          s.Number,
			State:           s.State,
			DeliveryAddress: s.DeliveryAddress,
			Customer:        s.Customer,
			Reference:       s.Reference,
			Moves:           make([]moveResponse, 0, len(s.Moves)),
		}
		if s.Amounts != nil {
			amounts := totalsResponse(*s.Amounts)
			shipment.Amounts = &amounts
		}
		for _, m := range s.Moves {
			move := moveResponse{
				ID:        m.ID.String(),
				Kind:      m.Kind,
				Product:   m.Product,
				UOM:       m.UOM,
				Quantity:  m.Quantity,
				UnitPrice: m.UnitPrice,
				State:     m.State,
			}
			if m.OriginLine != nil {
				line := m.OriginLine.String()
				move.OriginLine = &line
			}
			shipment.Moves = append(shipment.Moves, move)
		}
		resp.Shipments = append(resp.Shipments, shipment)
	}

	for _, i := range o.Invoices {
		resp.Invoices = append(resp.Invoices, invoiceResponse{
			ID:     i.ID.String(),
			Number: i.Number,
			Amount: i.Amount,
		})
	}

	return resp
}
