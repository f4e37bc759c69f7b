package subscription

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store implementation for tests and prototypes.
type MemoryStore struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]Subscription
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{subs: make(map[uuid.UUID]Subscription)}
}

func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subs[id]
	if !ok {
		return nil, ErrSubscriptionNotFound
	}
	return &sub, nil
}

func (s *MemoryStore) Save(ctx context.Context, sub *Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subs[sub.ID] = *sub
	return nil
}

// MemoryPaymentStore is an in-memory PaymentStore implementation.
type MemoryPaymentStore struct {
	mu       sync.RWMutex
	payments map[uuid.UUID]Payment
}

func NewMemoryPaymentStore() *MemoryPaymentStore {
	return &MemoryPaymentStore{payments: make(map[uuid.UUID]Payment)}
}

func (s *MemoryPaymentStore) Get(ctx context.Context, id uuid.UUID) (*Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.payments[id]
	if !ok {
		return nil, ErrPaymentNotFound
	}
	return &p, nil
}

func (s *MemoryPaymentStore) ListBySubscription(ctx context.Context, subscriptionID uuid.UUID) ([]Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Payment
	for _, p := range s.payments {
		if p.SubscriptionID == subscriptionID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemoryPaymentStore) Save(ctx context.Context, payment *Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.payments[payment.ID] = *payment
	return nil
}

// MemoryInvoiceStore is an in-memory InvoiceStore implementation.
type MemoryInvoiceStore struct {
	mu       sync.RWMutex
	invoices map[uuid.UUID]Invoice
}

func NewMemoryInvoiceStore() *MemoryInvoiceStore {
	return &MemoryInvoiceStore{invoices: make(map[uuid.UUID]Invoice)}
}

func (s *MemoryInvoiceStore) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := s.invoices[id]
	if !ok {
		return nil, ErrInvoiceNotFound
	}
	return &inv, nil
}

func (s *MemoryInvoiceStore) ListBySubscription(ctx context.Context, subscriptionID uuid.UUID) ([]Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Invoice
	for _, inv := range s.invoices {
		if inv.SubscriptionID == subscriptionID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (s *MemoryInvoiceStore) Save(ctx context.Context, invoice *Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoices[invoice.ID] = *invoice
	return nil
}
