// Package salerepo maps sale orders, their lines and invoices to PostgreSQL
// tables through GORM.
package salerepo

import (
	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/core/domain/model/sale"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is a row of sale_orders. The *_cache columns hold the stored
// totals and are NULL once invalidated.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number          string    `gorm:"uniqueIndex;not null"`
	Party           string    `gorm:"not null"`
	State           int       `gorm:"index"`
	InvoiceMethod   string
	Description     string
	Reference       string
	PaymentTerm     string
	PaymentType     string
	InvoiceAddress  string
	ShipmentAddress string
	ShipmentParty   string

	UntaxedAmountCache decimal.NullDecimal `gorm:"type:numeric(16,2)"`
	TaxAmountCache     decimal.NullDecimal `gorm:"type:numeric(16,2)"`
	TotalAmountCache   decimal.NullDecimal `gorm:"type:numeric(16,2)"`

	Lines    []LineDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Invoices []InvoiceDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "sale_orders"
}

// LineDTO is a row of sale_lines.
type LineDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;index;not null"`
	Sequence      int
	Type          string
	Product       string
	Unit          string
	Quantity      decimal.Decimal `gorm:"type:numeric(16,4)"`
	UnitPrice     decimal.Decimal `gorm:"type:numeric(16,4)"`
	Discount      decimal.Decimal `gorm:"type:numeric(5,4)"`
	TaxRate       decimal.Decimal `gorm:"type:numeric(5,4)"`
	Description   string
	MoveRecreated bool
	MoveIgnored   bool
}

func (LineDTO) TableName() string {
	return "sale_lines"
}

// InvoiceDTO is a row of sale_invoices.
type InvoiceDTO struct {
	ID      uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Number  string          `gorm:"not null"`
	Amount  decimal.Decimal `gorm:"type:numeric(16,2)"`
}

func (InvoiceDTO) TableName() string {
	return "sale_invoices"
}

func fromDomain(o *sale.Order) OrderDTO {
	cache := o.CachedTotals()
	dto := OrderDTO{
		ID:                 o.ID().Bytes(),
		Number:             o.Number(),
		Party:              o.Party(),
		State:              int(o.State()),
		InvoiceMethod:      o.InvoiceMethod().String(),
		Description:        o.Description(),
		Reference:          o.Reference(),
		PaymentTerm:        o.PaymentTerm(),
		PaymentType:        o.PaymentType(),
		InvoiceAddress:     o.InvoiceAddress(),
		ShipmentAddress:    o.ShipmentAddress(),
		ShipmentParty:      o.ShipmentParty(),
		UntaxedAmountCache: nullDecimal(cache.Untaxed),
		TaxAmountCache:     nullDecimal(cache.Tax),
		TotalAmountCache:   nullDecimal(cache.Total),
	}

	for _, l := range o.Lines() {
		dto.Lines = append(dto.Lines, LineDTO{
			ID:            l.ID().Bytes(),
			OrderID:       dto.ID,
			Sequence:      l.Sequence(),
			Type:          l.Type().String(),
			Product:       l.Product(),
			Unit:          l.Unit(),
			Quantity:      l.Quantity(),
			UnitPrice:     l.UnitPrice(),
			Discount:      l.Discount(),
			TaxRate:       l.TaxRate(),
			Description:   l.Description(),
			MoveRecreated: l.MoveRecreated(),
			MoveIgnored:   l.MoveIgnored(),
		})
	}
	for _, inv := range o.Invoices() {
		dto.Invoices = append(dto.Invoices, InvoiceDTO{
			ID:      inv.ID().Bytes(),
			OrderID: dto.ID,
			Number:  inv.Number(),
			Amount:  inv.Amount(),
		})
	}

	return dto
}

func toDomain(dto OrderDTO) (*sale.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	method, err := sale.ParseInvoiceMethod(dto.InvoiceMethod)
	if err != nil {
		return nil, err
	}

	lines := make([]*sale.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		line, lineErr := lineToDomain(id, l)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	invoices := make([]*sale.Invoice, 0, len(dto.Invoices))
	for _, i := range dto.Invoices {
		invID, idErr := kernel.UUIDFromBytes(i.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		inv, invErr := sale.NewInvoice(invID, i.Number, i.Amount)
		if invErr != nil {
			return nil, invErr
		}
		invoices = append(invoices, inv)
	}

	return sale.RestoreOrder(sale.OrderParams{
		ID:              id,
		Number:          dto.Number,
		Party:           dto.Party,
		State:           sale.State(dto.State),
		InvoiceMethod:   method,
		Description:     dto.Description,
		Reference:       dto.Reference,
		PaymentTerm:     dto.PaymentTerm,
		PaymentType:     dto.PaymentType,
		InvoiceAddress:  dto.InvoiceAddress,
		ShipmentAddress: dto.ShipmentAddress,
		ShipmentParty:   dto.ShipmentParty,
		Lines:           lines,
		Invoices:        invoices,
		Totals: sale.CachedTotals{
			Untaxed: decimalPtr(dto.UntaxedAmountCache),
			Tax:     decimalPtr(dto.TaxAmountCache),
			Total:   decimalPtr(dto.TotalAmountCache),
		},
	})
}

func lineToDomain(orderID kernel.UUID, dto LineDTO) (*sale.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	lineType, err := sale.ParseLineType(dto.Type)
	if err != nil {
		return nil, err
	}

	return sale.RestoreLine(sale.LineParams{
		ID:            id,
		OrderID:       orderID,
		Sequence:      dto.Sequence,
		Type:          lineType,
		Product:       dto.Product,
		Unit:          dto.Unit,
		Quantity:      dto.Quantity,
		UnitPrice:     dto.UnitPrice,
		Discount:      dto.Discount,
		TaxRate:       dto.TaxRate,
		Description:   dto.Description,
		MoveRecreated: dto.MoveRecreated,
		MoveIgnored:   dto.MoveIgnored,
	})
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func decimalPtr(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	return kernel.DecimalPtr(n.Decimal)
}
