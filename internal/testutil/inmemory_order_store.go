package testutil

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/roamsim/roamsim/internal/domain/order"
	ierr "github.com/roamsim/roamsim/internal/errors"
)

// InMemoryOrderStore implements order.Repository with the same
// insert-if-absent semantics the database's unique index provides.
type InMemoryOrderStore struct {
	mu sync.Mutex
	// bySession keys orders by payment session id, mirroring the unique
	// index that backs reconciliation idempotency.
	bySession map[string]*order.Order

	// FailCreates forces CreateIfAbsent to fail, for persistence-error
	// tests.
	FailCreates bool
}

// NewInMemoryOrderStore creates a new in-memory order store
func NewInMemoryOrderStore() *InMemoryOrderStore {
	return &InMemoryOrderStore{
		bySession: make(map[string]*order.Order),
	}
}

func (s *InMemoryOrderStore) CreateIfAbsent(_ context.Context, o *order.Order) (*order.Order, bool, error) {
	if err := o.Validate(); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailCreates {
		return nil, false, ierr.NewError("order insert failed").
			Mark(ierr.ErrDatabase)
	}

	if existing, ok := s.bySession[o.PaymentSessionID]; ok {
		return copyOrder(existing), false, nil
	}
	s.bySession[o.PaymentSessionID] = copyOrder(o)
	return copyOrder(o), true, nil
}

func (s *InMemoryOrderStore) GetByPaymentSessionID(_ context.Context, sessionID string) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.bySession[sessionID]
	if !ok {
		return nil, ierr.NewErrorf("no order for payment session %s", sessionID).
			Mark(ierr.ErrNotFound)
	}
	return copyOrder(o), nil
}

func (s *InMemoryOrderStore) NextSequenceForDay(_ context.Context, day time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := order.DayPrefix(day)
	highest := 0
	for _, o := range s.bySession {
		if !strings.HasPrefix(o.OrderNumber, prefix) {
			continue
		}
		if seq, err := strconv.Atoi(strings.TrimPrefix(o.OrderNumber, prefix)); err == nil && seq > highest {
			highest = seq
		}
	}
	return highest + 1, nil
}

func (s *InMemoryOrderStore) List(_ context.Context, limit, offset int) ([]*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]*order.Order, 0, len(s.bySession))
	for _, o := range s.bySession {
		all = append(all, copyOrder(o))
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// Count returns the number of stored orders.
func (s *InMemoryOrderStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bySession)
}

func copyOrder(o *order.Order) *order.Order {
	if o == nil {
		return nil
	}
	copied := *o
	return &copied
}
