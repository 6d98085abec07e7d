// Package memory is a process-local RepositoryManager used for the
// DATA_BACKEND=memory mode and in tests. Its semantics mirror the PostgreSQL
// repositories: unique emails, owner-scoped updates and deletes, and the same
// list ordering.
package memory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/dmitrijs2005/expensetracker/internal/dbx"
	"github.com/dmitrijs2005/expensetracker/internal/server/models"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/expenses"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/users"
	"github.com/google/uuid"
)

// ErrUnknownOwner mirrors the foreign key on expenses.user_id.
var ErrUnknownOwner = errors.New("expense owner does not exist")

// Store holds all records behind a single lock. The DBTX arguments of the
// manager methods are ignored.
type Store struct {
	mu       sync.RWMutex
	users    map[string]*models.User
	byEmail  map[string]string
	expenses map[string]*models.Expense
	seq      map[string]uint64
	next     uint64
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]*models.User),
		byEmail:  make(map[string]string),
		expenses: make(map[string]*models.Expense),
		seq:      make(map[string]uint64),
		now:      time.Now,
	}
}

func (s *Store) RunMigrations(context.Context, *sql.DB) error { return nil }

func (s *Store) Users(dbx.DBTX) users.Repository { return (*userRepo)(s) }

func (s *Store) Expenses(dbx.DBTX) expenses.Repository { return (*expenseRepo)(s) }

type userRepo Store

func (r *userRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[user.Email]; taken {
		return nil, common.ErrorAlreadyExists
	}

	user.ID = uuid.NewString()
	user.CreatedAt = s.now().UTC()

	stored := *user
	s.users[user.ID] = &stored
	s.byEmail[user.Email] = user.ID

	return user, nil
}

func (r *userRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := *s.users[id]
	return &u, nil
}

type expenseRepo Store

func (r *expenseRepo) Create(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[e.UserID]; !ok {
		return nil, fmt.Errorf("db error: %w", ErrUnknownOwner)
	}

	e.ID = uuid.NewString()
	e.CreatedAt = s.now().UTC()

	stored := *e
	s.expenses[e.ID] = &stored
	s.next++
	s.seq[e.ID] = s.next

	return e, nil
}

func (r *expenseRepo) ListByUser(ctx context.Context, userID string) ([]*models.Expense, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Expense, 0)
	for _, e := range s.expenses {
		if e.UserID == userID {
			c := *e
			result = append(result, &c)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return s.seq[a.ID] < s.seq[b.ID]
	})

	return result, nil
}

// owned returns the stored expense if userID owns it. Callers hold s.mu.
func (s *Store) owned(id, userID string) (*models.Expense, bool) {
	e, ok := s.expenses[id]
	if !ok || e.UserID != userID {
		return nil, false
	}
	return e, true
}

func (r *expenseRepo) UpdateOwned(ctx context.Context, id, userID string, patch models.ExpensePatch) (*models.Expense, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.owned(id, userID)
	if !ok {
		return nil, common.ErrorNotFound
	}

	patch.Apply(e)
	c := *e
	return &c, nil
}

func (r *expenseRepo) DeleteOwned(ctx context.Context, id, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.owned(id, userID); !ok {
		return common.ErrorNotFound
	}
	delete(s.expenses, id)
	delete(s.seq, id)
	return nil
}
