package transaction

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/entity"
	errs "github.com/amirhossein-jamali/remittance-backoffice/internal/domain/error"
	"github.com/amirhossein-jamali/remittance-backoffice/internal/domain/port/persistence"
)

// memStore is an in-memory unit of work used by the workflow tests.
// A unit of work operates on a snapshot that replaces the committed state on Commit.
type memStore struct {
	mu     sync.Mutex
	state  *memState
	users  []*entity.User
	failOn string // repository method that fails with ErrDatabaseConnection
}

type memState struct {
	txns   map[string]*entity.Transaction
	events []*entity.TransactionEvent
}

func (s *memState) clone() *memState {
	c := &memState{txns: make(map[string]*entity.Transaction, len(s.txns)), events: slices.Clone(s.events)}
	for id, t := range s.txns {
		c.txns[id] = t.Clone()
	}
	return c
}

type memTxKey struct{}

func newMemStore(users ...*entity.User) *memStore {
	return &memStore{state: &memState{txns: map[string]*entity.Transaction{}}, users: users}
}

func (m *memStore) current(ctx context.Context) *memState {
	if st, ok := ctx.Value(memTxKey{}).(*memState); ok {
		return st
	}
	return m.state
}

func (m *memStore) Begin(ctx context.Context) (context.Context, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return context.WithValue(ctx, memTxKey{}, m.state.clone()), nil
}

func (m *memStore) Commit(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = ctx.Value(memTxKey{}).(*memState)
	return nil
}

func (m *memStore) Rollback(context.Context) error { return nil }

func (m *memStore) GetUserRepository(context.Context) persistence.UserRepository { return m }

func (m *memStore) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	return &memTxnRepo{store: m, ctx: ctx}
}

func (m *memStore) GetEventRepository(ctx context.Context) persistence.EventRepository {
	return &memEventRepo{store: m, ctx: ctx}
}

func (m *memStore) get(id string) (*entity.Transaction, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.state.txns[id]
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

func (m *memStore) eventsOf(id string) []*entity.TransactionEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.TransactionEvent
	for _, e := range m.state.events {
		if e.TransactionID == id {
			out = append(out, e)
		}
	}
	return out
}

// user directory

func (m *memStore) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errs.ErrUserNotFound
}

func (m *memStore) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errs.ErrUserNotFound
}

func (m *memStore) Create(_ context.Context, u *entity.User) error {
	m.users = append(m.users, u)
	return nil
}

func (m *memStore) ListByRole(_ context.Context, role entity.Role, activeOnly bool) ([]*entity.User, error) {
	if m.failOn == "ListByRole" {
		return nil, errs.ErrDatabaseConnection
	}
	var out []*entity.User
	for _, u := range m.users {
		if u.Role == role && (!activeOnly || u.Active) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memStore) List(context.Context) ([]*entity.User, error) { return m.users, nil }

type memTxnRepo struct {
	store *memStore
	ctx   context.Context
}

func (r *memTxnRepo) Create(_ context.Context, t *entity.Transaction) error {
	if r.store.failOn == "Create" {
		return errs.ErrDatabaseConnection
	}
	r.store.current(r.ctx).txns[t.ID] = t.Clone()
	return nil
}

func (r *memTxnRepo) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	t, ok := r.store.current(r.ctx).txns[id]
	if !ok {
		return nil, errs.ErrTransactionNotFound
	}
	return t.Clone(), nil
}

func (r *memTxnRepo) List(_ context.Context, filter persistence.TransactionFilter) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, t := range r.store.current(r.ctx).txns {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		out = append(out, t.Clone())
	}
	slices.SortFunc(out, func(a, b *entity.Transaction) int { return cmp.Compare(a.ID, b.ID) })
	if len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *memTxnRepo) UpdateIfStatus(_ context.Context, t *entity.Transaction, expected entity.TransactionStatus) error {
	if r.store.failOn == "UpdateIfStatus" {
		return errs.ErrDatabaseConnection
	}
	st := r.store.current(r.ctx)
	stored, ok := st.txns[t.ID]
	if !ok {
		return errs.ErrTransactionNotFound
	}
	if stored.Status != expected {
		return errs.NewStateConflictError(t.ID, "update", string(stored.Status), string(expected))
	}
	st.txns[t.ID] = t.Clone()
	return nil
}

func (r *memTxnRepo) DeleteIfStatus(_ context.Context, id string, expected entity.TransactionStatus) error {
	if r.store.failOn == "DeleteIfStatus" {
		return errs.ErrDatabaseConnection
	}
	st := r.store.current(r.ctx)
	stored, ok := st.txns[id]
	if !ok {
		return errs.ErrTransactionNotFound
	}
	if stored.Status != expected {
		return errs.NewStateConflictError(id, "delete", string(stored.Status), string(expected))
	}
	delete(st.txns, id)
	return nil
}

type memEventRepo struct {
	store *memStore
	ctx   context.Context
}

func (r *memEventRepo) Append(_ context.Context, e *entity.TransactionEvent) error {
	st := r.store.current(r.ctx)
	st.events = append(st.events, e)
	return nil
}

func (r *memEventRepo) ListByTransaction(_ context.Context, id string) ([]*entity.TransactionEvent, error) {
	var out []*entity.TransactionEvent
	for _, e := range r.store.current(r.ctx).events {
		if e.TransactionID == id {
			out = append(out, e)
		}
	}
	return out, nil
}

