package gorm

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/roamsim/roamsim/internal/domain/order"
	ierr "github.com/roamsim/roamsim/internal/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepository struct {
	store *Store
}

// NewOrderRepository creates an order repository backed by the store.
func NewOrderRepository(store *Store) order.Repository {
	return &orderRepository{store: store}
}

// CreateIfAbsent inserts the order unless one already exists for the same
// payment session. The insert is conditional (ON CONFLICT DO NOTHING on the
// session id's unique index) so concurrent reconciliations of one session
// race safely: exactly one wins, the rest read the winner's row back.
func (r *orderRepository) CreateIfAbsent(ctx context.Context, o *order.Order) (*order.Order, bool, error) {
	if err := o.Validate(); err != nil {
		return nil, false, err
	}

	m := ToOrderModel(o)

	var created bool
	err := r.store.withRetry(ctx, func() error {
		res := r.store.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(m)
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
				created = false
				return nil
			}
			return res.Error
		}
		created = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return nil, false, ierr.WithError(err).
			WithHint("Failed to persist order").
			WithReportableDetails(map[string]interface{}{
				"payment_session_id": o.PaymentSessionID,
			}).
			Mark(ierr.ErrDatabase)
	}

	if !created {
		existing, err := r.GetByPaymentSessionID(ctx, o.PaymentSessionID)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	return o, true, nil
}

func (r *orderRepository) GetByPaymentSessionID(ctx context.Context, sessionID string) (*order.Order, error) {
	var m OrderModel
	err := r.store.withRetry(ctx, func() error {
		return r.store.db.WithContext(ctx).
			Where("payment_session_id = ?", sessionID).
			First(&m).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewErrorf("no order for payment session %s", sessionID).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to read order").
			Mark(ierr.ErrDatabase)
	}

	return FromOrderModel(&m), nil
}

// NextSequenceForDay reads the highest order number carrying the day's
// prefix and returns its sequence plus one.
func (r *orderRepository) NextSequenceForDay(ctx context.Context, day time.Time) (int, error) {
	prefix := order.DayPrefix(day)

	var m OrderModel
	err := r.store.withRetry(ctx, func() error {
		return r.store.db.WithContext(ctx).
			Where("order_number LIKE ?", prefix+"%").
			Order("order_number desc").
			First(&m).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 1, nil
		}
		return 0, ierr.WithError(err).
			WithHint("Failed to derive order number sequence").
			Mark(ierr.ErrDatabase)
	}

	seq, err := strconv.Atoi(strings.TrimPrefix(m.OrderNumber, prefix))
	if err != nil {
		return 0, ierr.NewErrorf("malformed order number %s", m.OrderNumber).
			Mark(ierr.ErrInternal)
	}
	return seq + 1, nil
}

func (r *orderRepository) List(ctx context.Context, limit, offset int) ([]*order.Order, error) {
	var models []OrderModel
	err := r.store.withRetry(ctx, func() error {
		return r.store.db.WithContext(ctx).
			Order("created_at desc").
			Limit(limit).
			Offset(offset).
			Find(&models).Error
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list orders").
			Mark(ierr.ErrDatabase)
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = FromOrderModel(&models[i])
	}
	return orders, nil
}
