// Package stockrepo maps shipments, returns and their moves to PostgreSQL
// tables through GORM.
package stockrepo

import (
	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/core/domain/model/stock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShipmentDTO is a row of stock_shipments. Outbound shipments and returns
// share the table and are told apart by Kind.
type ShipmentDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind            string    `gorm:"not null"`
	OrderID         uuid.UUID `gorm:"type:uuid;index;not null"`
	Number          string    `gorm:"uniqueIndex;not null"`
	State           string    `gorm:"index;not null"`
	DeliveryAddress string
	Customer        string
	Reference       string

	UntaxedAmount decimal.NullDecimal `gorm:"type:numeric(16,2)"`
	TaxAmount     decimal.NullDecimal `gorm:"type:numeric(16,2)"`
	TotalAmount   decimal.NullDecimal `gorm:"type:numeric(16,2)"`

	Moves []MoveDTO `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

func (ShipmentDTO) TableName() string {
	return "stock_shipments"
}

// MoveDTO is a row of stock_moves. Inventory moves have no origin line.
type MoveDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ShipmentID   uuid.UUID  `gorm:"type:uuid;index;not null"`
	Position     int        `gorm:"not null"`
	Kind         string     `gorm:"not null"`
	OriginLineID *uuid.UUID `gorm:"type:uuid;index"`
	Product      string
	UOM          string          `gorm:"column:uom"`
	Quantity     decimal.Decimal `gorm:"type:numeric(16,4)"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(16,4)"`
	State        string          `gorm:"not null"`
}

func (MoveDTO) TableName() string {
	return "stock_moves"
}

func fromDomain(s *stock.Shipment) ShipmentDTO {
	dto := ShipmentDTO{
		ID:              s.ID().Bytes(),
		Kind:            string(s.Kind()),
		OrderID:         s.OrderID().Bytes(),
		Number:          s.Number(),
		State:           s.State().String(),
		DeliveryAddress: s.DeliveryAddress(),
		Customer:        s.Customer(),
		Reference:       s.Reference(),
	}
	if a := s.Amounts(); a != nil {
		dto.UntaxedAmount = decimal.NewNullDecimal(a.Untaxed)
		dto.TaxAmount = decimal.NewNullDecimal(a.Tax)
		dto.TotalAmount = decimal.NewNullDecimal(a.Total)
	}

	for i, m := range s.AllMoves() {
		move := MoveDTO{
			ID:         m.ID().Bytes(),
			ShipmentID: dto.ID,
			Position:   i,
			Kind:       string(m.Kind()),
			Product:    m.Product(),
			UOM:        m.UOM(),
			Quantity:   m.Quantity(),
			UnitPrice:  m.UnitPrice(),
			State:      string(m.State()),
		}
		if line := m.OriginLine(); line != nil {
			raw := line.Bytes()
			move.OriginLineID = &raw
		}
		dto.Moves = append(dto.Moves, move)
	}

	return dto
}

func toDomain(dto ShipmentDTO) (*stock.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	kind, err := stock.ParseShipmentKind(dto.Kind)
	if err != nil {
		return nil, err
	}
	state, err := stock.ParseShipmentState(dto.State)
	if err != nil {
		return nil, err
	}

	params := stock.ShipmentParams{
		ID:              id,
		Kind:            kind,
		OrderID:         orderID,
		Number:          dto.Number,
		State:           state,
		DeliveryAddress: dto.DeliveryAddress,
		Customer:        dto.Customer,
		Reference:       dto.Reference,
	}
	if dto.TotalAmount.Valid {
		params.Amounts = &stock.Amounts{
			Untaxed: dto.UntaxedAmount.Decimal,
			Tax:     dto.TaxAmount.Decimal,
			Total:   dto.TotalAmount.Decimal,
		}
	}

	for _, m := range dto.Moves {
		move, moveErr := moveToDomain(id, m)
		if moveErr != nil {
			return nil, moveErr
		}
		if move.Kind() == stock.MoveKindInventory {
			params.InventoryMoves = append(params.InventoryMoves, move)
		} else {
			params.Moves = append(params.Moves, move)
		}
	}

	return stock.RestoreShipment(params)
}

func moveToDomain(shipmentID kernel.UUID, dto MoveDTO) (*stock.Move, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	kind, err := stock.ParseMoveKind(dto.Kind)
	if err != nil {
		return nil, err
	}
	state, err := stock.ParseMoveState(dto.State)
	if err != nil {
		return nil, err
	}

	var origin *kernel.UUID
	if dto.OriginLineID != nil {
		lineID, lineErr := kernel.UUIDFromBytes(dto.OriginLineID[:])
		if lineErr != nil {
			return nil, lineErr
		}
		origin = &lineID
	}

	return stock.RestoreMove(stock.MoveParams{
		ID:         id,
		Kind:       kind,
		OriginLine: origin,
		ShipmentID: shipmentID,
		Product:    dto.Product,
		UOM:        dto.UOM,
		Quantity:   dto.Quantity,
		UnitPrice:  dto.UnitPrice,
		State:      state,
	})
}
