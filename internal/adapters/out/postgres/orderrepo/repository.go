package orderrepo

import (
	"context"
	"errors"
	"time"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository. tracker may be
// nil for read-only use outside a unit of work.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.track(aggregate)
	return nil
}

// Update writes every column, so cleared optional fields become NULL.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.track(aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves an order by ID and locks its row until the
// surrounding transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

// GetAllInStatus retrieves the orders in any of statuses, oldest first.
func (r *GormOrderRepository) GetAllInStatus(ctx context.Context, statuses ...order.Status) ([]*order.Order, error) {
	return r.findInStatus(r.db.WithContext(ctx), statuses)
}

// GetAllInStatusForUpdate is GetAllInStatus holding a row lock on every
// returned order.
func (r *GormOrderRepository) GetAllInStatusForUpdate(
	ctx context.Context,
	statuses ...order.Status,
) ([]*order.Order, error) {
	return r.findInStatus(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), statuses)
}

// GetDeliveredBetween retrieves Delivered orders with from <= actual_delivery_at < to.
func (r *GormOrderRepository) GetDeliveredBetween(ctx context.Context, from, to time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND actual_delivery_at >= ? AND actual_delivery_at < ?", int(order.Delivered), from, to).
		Order("actual_delivery_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func (r *GormOrderRepository) get(db *gorm.DB, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) findInStatus(db *gorm.DB, statuses []order.Status) ([]*order.Order, error) {
	if len(statuses) == 0 {
		return []*order.Order{}, nil
	}

	values := make([]int, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, int(s))
	}

	var dtos []OrderDTO
	if err := db.Where("status IN ?", values).Order("created_at, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func (r *GormOrderRepository) track(aggregate *order.Order) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
}
