package stockrepo

import (
	"context"
	"errors"
	"fmt"

	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/core/domain/model/stock"
	"saleedit/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormShipmentRepository implements ports.ShipmentRepository using GORM.
// A shipment is stored together with all of its moves.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *stock.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(&dto).Error; err != nil {
		return fmt.Errorf("insert shipment %s: %w", dto.Number, err)
	}
	if err := saveMoves(db, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update overwrites the shipment and replaces its set of moves. Inventory
// moves dropped by a state change are deleted.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *stock.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	result := db.Model(&ShipmentDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit(clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return fmt.Errorf("update shipment %s: %w", dto.Number, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipment", aggregate.ID().String())
	}

	keep := make([]uuid.UUID, 0, len(dto.Moves))
	for _, m := range dto.Moves {
		keep = append(keep, m.ID)
	}
	stale := db.Where("shipment_id = ?", dto.ID)
	if len(keep) > 0 {
		stale = stale.Where("id NOT IN ?", keep)
	}
	if err := stale.Delete(&MoveDTO{}).Error; err != nil {
		return fmt.Errorf("delete moves of shipment %s: %w", dto.Number, err)
	}

	if err := saveMoves(db, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*stock.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := r.preload(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrder returns the shipments and returns of an order ordered by number.
func (r *GormShipmentRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*stock.Shipment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ShipmentDTO
	if err := r.preload(ctx).Where("order_id = ?", orderID.Bytes()).Order("number").Find(&dtos).Error; err != nil {
		return nil, err
	}

	shipments := make([]*stock.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}

	return shipments, nil
}

func (r *GormShipmentRepository) preload(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Moves", func(db *gorm.DB) *gorm.DB { return db.Order("position") })
}

func saveMoves(db *gorm.DB, dto ShipmentDTO) error {
	if len(dto.Moves) == 0 {
		return nil
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&dto.Moves).Error
	if err != nil {
		return fmt.Errorf("save moves of shipment %s: %w", dto.Number, err)
	}
	return nil
}
