package expense

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

type fakeExpenseRepository struct {
	expenses   map[uuid.UUID]*entity.Expense
	lastFilter adapter.ExpenseFilter
	deleted    []uuid.UUID
	createErr  error
}

func newFakeExpenseRepository(expenses ...*entity.Expense) *fakeExpenseRepository {
	repo := &fakeExpenseRepository{expenses: make(map[uuid.UUID]*entity.Expense)}
	for _, expense := range expenses {
		repo.expenses[expense.ID] = expense
	}
	return repo
}

func (r *fakeExpenseRepository) Create(_ context.Context, expense *entity.Expense) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.expenses[expense.ID] = expense
	return nil
}

func (r *fakeExpenseRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Expense, error) {
	expense, ok := r.expenses[id]
	if !ok {
		return nil, domainerror.ErrExpenseNotFound
	}
	copied := *expense
	return &copied, nil
}

func (r *fakeExpenseRepository) FindByOwner(_ context.Context, filter adapter.ExpenseFilter) ([]*entity.Expense, error) {
	r.lastFilter = filter
	var result []*entity.Expense
	for _, expense := range r.expenses {
		if expense.OwnerID == filter.OwnerID {
			result = append(result, expense)
		}
	}
	return result, nil
}

func (r *fakeExpenseRepository) Update(_ context.Context, expense *entity.Expense) error {
	r.expenses[expense.ID] = expense
	return nil
}

func (r *fakeExpenseRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.deleted = append(r.deleted, id)
	delete(r.expenses, id)
	return nil
}

type fakeOwnerRepository struct {
	owner *entity.Owner
}

func (r *fakeOwnerRepository) Create(context.Context, *entity.Owner) error { return nil }

func (r *fakeOwnerRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Owner, error) {
	if r.owner == nil || r.owner.ID != id {
		return nil, domainerror.ErrOwnerNotFound
	}
	return r.owner, nil
}

func (r *fakeOwnerRepository) FindByExternalID(context.Context, string) (*entity.Owner, error) {
	return nil, domainerror.ErrOwnerNotFound
}

func (r *fakeOwnerRepository) Update(context.Context, *entity.Owner) error { return nil }

type fakeStatsCache struct {
	invalidated []uuid.UUID
	err         error
}

func (c *fakeStatsCache) GetMonthly(context.Context, uuid.UUID, int, int) (*entity.MonthlyAggregate, int64, error) {
	return nil, 0, nil
}

func (c *fakeStatsCache) SetMonthly(context.Context, uuid.UUID, int64, int, int, *entity.MonthlyAggregate) error {
	return nil
}

func (c *fakeStatsCache) Invalidate(_ context.Context, ownerID uuid.UUID) error {
	c.invalidated = append(c.invalidated, ownerID)
	return c.err
}

type fakePublisher struct {
	events []adapter.ExpenseEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, event adapter.ExpenseEvent) error {
	p.events = append(p.events, event)
	return p.err
}

type fakeMetrics struct {
	writes []string
}

func (m *fakeMetrics) RecordExpenseWrite(operation string) { m.writes = append(m.writes, operation) }

func (m *fakeMetrics) RecordBudgetAlert(bool) {}

type budgetCheck struct {
	ownerID uuid.UUID
	year    int
	month   int
}

type fakeBudgetChecker struct {
	checks []budgetCheck
	err    error
}

func (b *fakeBudgetChecker) Check(_ context.Context, ownerID uuid.UUID, year, month int) (bool, error) {
	b.checks = append(b.checks, budgetCheck{ownerID: ownerID, year: year, month: month})
	return false, b.err
}

type fakeSuggester struct {
	available  bool
	suggestion *adapter.CategorySuggestion
	err        error
	lastReq    *adapter.CategorySuggestionRequest
}

func (s *fakeSuggester) SuggestCategory(_ context.Context, request *adapter.CategorySuggestionRequest) (*adapter.CategorySuggestion, error) {
	s.lastReq = request
	return s.suggestion, s.err
}

func (s *fakeSuggester) IsAvailable() bool { return s.available }

var errBoom = errors.New("boom")
