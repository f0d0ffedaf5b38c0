package salerepo

import (
	"context"
	"errors"
	"fmt"

	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/core/domain/model/sale"
	"saleedit/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order with its lines and invoices.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *sale.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(&dto).Error; err != nil {
		return fmt.Errorf("insert order %s: %w", dto.Number, err)
	}
	if err := r.saveChildren(db, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update overwrites every column of the order, upserts its lines and
// invoices and deletes the lines that are no longer part of it.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *sale.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	result := db.Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit(clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return fmt.Errorf("update order %s: %w", dto.Number, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	keep := make([]uuid.UUID, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		keep = append(keep, l.ID)
	}
	stale := db.Where("order_id = ?", dto.ID)
	if len(keep) > 0 {
		stale = stale.Where("id NOT IN ?", keep)
	}
	if err := stale.Delete(&LineDTO{}).Error; err != nil {
		return fmt.Errorf("delete lines of order %s: %w", dto.Number, err)
	}

	if err := r.saveChildren(db, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) saveChildren(db *gorm.DB, dto OrderDTO) error {
	upsert := clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}
	if len(dto.Lines) > 0 {
		if err := db.Clauses(upsert).Create(&dto.Lines).Error; err != nil {
			return fmt.Errorf("save lines of order %s: %w", dto.Number, err)
		}
	}
	if len(dto.Invoices) > 0 {
		if err := db.Clauses(upsert).Create(&dto.Invoices).Error; err != nil {
			return fmt.Errorf("save invoices of order %s: %w", dto.Number, err)
		}
	}
	return nil
}

// Get loads an order with its lines and invoices.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*sale.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.preload(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByLineIDs loads the orders owning any of the given lines, ordered by number.
func (r *GormOrderRepository) GetByLineIDs(ctx context.Context, ids []kernel.UUID) ([]*sale.Order, error) {
	if len(ids) == 0 {
		return []*sale.Order{}, nil
	}

	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.String())
	}

	var dtos []OrderDTO
	err := r.preload(ctx).
		Where("id IN (SELECT order_id FROM sale_lines WHERE id::text = ANY(?))", pq.StringArray(raw)).
		Order("number").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// ListWithoutTotals returns up to limit orders in one of states whose total
// is not cached.
func (r *GormOrderRepository) ListWithoutTotals(ctx context.Context, states []sale.State, limit int) ([]*sale.Order, error) {
	codes := make([]int64, 0, len(states))
	for _, s := range states {
		codes = append(codes, int64(s))
	}

	var dtos []OrderDTO
	err := r.preload(ctx).
		Where("state = ANY(?) AND total_amount_cache IS NULL", pq.Int64Array(codes)).
		Order("number").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func (r *GormOrderRepository) preload(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("sequence") }).
		Preload("Invoices")
}

func toDomainList(dtos []OrderDTO) ([]*sale.Order, error) {
	orders := make([]*sale.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
