package commands_test

import (
	"context"
	"sync"
	"time"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"
)

// memStore keeps snapshots of sessions and enforces the version check the
// way the postgres repository does. Transactions are no-ops.
type memStore struct {
	mu       sync.Mutex
	sessions map[kernel.UUID]*checkout.Session
	orders   map[string]*order.Result
	orderErr error

	// updateHook, when set, runs before each session write; an error
	// rejects the write.
	updateHook func(*checkout.Session) error
}

func newMemStore(sessions ...*checkout.Session) *memStore {
	s := &memStore{
		sessions: make(map[kernel.UUID]*checkout.Session),
		orders:   make(map[string]*order.Result),
	}
	for _, session := range sessions {
		s.sessions[session.ID()] = snapshot(session)
	}
	return s
}

func (s *memStore) Create() commands.UoW {
	return memUoW{store: s}
}

func (s *memStore) session(id kernel.UUID) *checkout.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.sessions[id])
}

func snapshot(s *checkout.Session) *checkout.Session {
	c, _ := cart.NewCart(s.Lines()...)
	out, _ := checkout.RestoreSession(
		s.ID(), s.Draft(), c, s.Status(), s.LastInvoice(), s.LastError(), s.Version(), s.UpdatedAt(),
	)
	return out
}

type memUoW struct {
	store *memStore
}

func (memUoW) Begin(context.Context) error    { return nil }
func (memUoW) Commit(context.Context) error   { return nil }
func (memUoW) Rollback(context.Context) error { return nil }

func (u memUoW) SessionRepository() ports.SessionRepository { return &memSessions{store: u.store} }
func (u memUoW) OrderRepository() ports.OrderRepository     { return &memOrders{store: u.store} }

type memSessions struct {
	store *memStore
}

func (r *memSessions) Add(_ context.Context, s *checkout.Session) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.sessions[s.ID()] = snapshot(s)
	return nil
}

func (r *memSessions) Update(_ context.Context, s *checkout.Session) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.sessions[s.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("session", s.ID().String())
	}
	if r.store.updateHook != nil {
		if err := r.store.updateHook(s); err != nil {
			return err
		}
	}
	if stored.Version() != s.Version() {
		return ports.ErrVersionConflict
	}
	s.BumpVersion()
	r.store.sessions[s.ID()] = snapshot(s)
	return nil
}

func (r *memSessions) Get(_ context.Context, id kernel.UUID) (*checkout.Session, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.sessions[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("session", id.String())
	}
	return snapshot(stored), nil
}

func (r *memSessions) DeleteStale(_ context.Context, cutoff time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for id, s := range r.store.sessions {
		if s.IsStale(cutoff) {
			delete(r.store.sessions, id)
			n++
		}
	}
	return n, nil
}

func (r *memSessions) ReleaseExpiredSubmissions(_ context.Context, cutoff time.Time, reason string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for id, s := range r.store.sessions {
		if s.ExpireSubmit(cutoff, reason) {
			s.BumpVersion()
			r.store.sessions[id] = s
			n++
		}
	}
	return n, nil
}

var _ ports.OrderRepository = (*memOrders)(nil)

type memOrders struct {
	store *memStore
}

func (r *memOrders) Add(_ context.Context, result *order.Result) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.orders[result.Invoice().ID()] = result
	return r.store.orderErr
}

func (r *memOrders) Get(_ context.Context, invoice string) (*order.Result, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.orders[invoice], nil
}
