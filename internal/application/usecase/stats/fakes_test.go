package stats

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

type fakeExpenseRepository struct {
	records   []*entity.Expense
	findCalls int
	findErr   error
	onFind    func()
}

func (r *fakeExpenseRepository) Create(_ context.Context, expense *entity.Expense) error {
	r.records = append(r.records, expense)
	return nil
}

func (r *fakeExpenseRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Expense, error) {
	for _, record := range r.records {
		if record.ID == id {
			return record, nil
		}
	}
	return nil, domainerror.ErrExpenseNotFound
}

func (r *fakeExpenseRepository) FindByOwner(_ context.Context, filter adapter.ExpenseFilter) ([]*entity.Expense, error) {
	r.findCalls++
	if r.findErr != nil {
		return nil, r.findErr
	}
	var result []*entity.Expense
	for _, record := range r.records {
		if record.OwnerID != filter.OwnerID {
			continue
		}
		if filter.StartDate != nil && record.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && record.Date.After(*filter.EndDate) {
			continue
		}
		result = append(result, record)
	}
	if r.onFind != nil {
		r.onFind()
	}
	return result, nil
}

func (r *fakeExpenseRepository) Update(context.Context, *entity.Expense) error { return nil }

func (r *fakeExpenseRepository) Delete(context.Context, uuid.UUID) error { return nil }

type fakeOwnerRepository struct {
	owners map[uuid.UUID]*entity.Owner
}

func newFakeOwnerRepository(owners ...*entity.Owner) *fakeOwnerRepository {
	repo := &fakeOwnerRepository{owners: make(map[uuid.UUID]*entity.Owner)}
	for _, owner := range owners {
		repo.owners[owner.ID] = owner
	}
	return repo
}

func (r *fakeOwnerRepository) Create(_ context.Context, owner *entity.Owner) error {
	r.owners[owner.ID] = owner
	return nil
}

func (r *fakeOwnerRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Owner, error) {
	owner, ok := r.owners[id]
	if !ok {
		return nil, domainerror.ErrOwnerNotFound
	}
	return owner, nil
}

func (r *fakeOwnerRepository) FindByExternalID(_ context.Context, externalID string) (*entity.Owner, error) {
	for _, owner := range r.owners {
		if owner.ExternalID == externalID {
			return owner, nil
		}
	}
	return nil, domainerror.ErrOwnerNotFound
}

func (r *fakeOwnerRepository) Update(_ context.Context, owner *entity.Owner) error {
	r.owners[owner.ID] = owner
	return nil
}

type fakeStatsCache struct {
	entries  map[string]*entity.MonthlyAggregate
	versions map[uuid.UUID]int64
	getErr   error
	sets     int
}

func newFakeStatsCache() *fakeStatsCache {
	return &fakeStatsCache{
		entries:  make(map[string]*entity.MonthlyAggregate),
		versions: make(map[uuid.UUID]int64),
	}
}

func cacheKey(ownerID uuid.UUID, version int64, year, month int) string {
	return fmt.Sprintf("%s:v%d:%d:%d", ownerID, version, year, month)
}

func (c *fakeStatsCache) GetMonthly(_ context.Context, ownerID uuid.UUID, year, month int) (*entity.MonthlyAggregate, int64, error) {
	if c.getErr != nil {
		return nil, 0, c.getErr
	}
	version := c.versions[ownerID]
	return c.entries[cacheKey(ownerID, version, year, month)], version, nil
}

func (c *fakeStatsCache) SetMonthly(_ context.Context, ownerID uuid.UUID, version int64, year, month int, aggregate *entity.MonthlyAggregate) error {
	c.sets++
	c.entries[cacheKey(ownerID, version, year, month)] = aggregate
	return nil
}

func (c *fakeStatsCache) Invalidate(_ context.Context, ownerID uuid.UUID) error {
	c.versions[ownerID]++
	return nil
}

type fakeEmailService struct {
	mu     sync.Mutex
	queued map[string]adapter.QueueBudgetAlertInput
}

func newFakeEmailService() *fakeEmailService {
	return &fakeEmailService{queued: make(map[string]adapter.QueueBudgetAlertInput)}
}

func (s *fakeEmailService) QueueBudgetAlertEmail(_ context.Context, input adapter.QueueBudgetAlertInput) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := fmt.Sprintf("%s:%d-%02d", input.OwnerID, input.Year, input.Month)
	if _, exists := s.queued[key]; exists {
		return false, nil
	}
	s.queued[key] = input
	return true, nil
}

type fakeMetricsRecorder struct {
	writes map[string]int
	alerts []bool
}

func newFakeMetricsRecorder() *fakeMetricsRecorder {
	return &fakeMetricsRecorder{writes: make(map[string]int)}
}

func (m *fakeMetricsRecorder) RecordExpenseWrite(operation string) {
	m.writes[operation]++
}

func (m *fakeMetricsRecorder) RecordBudgetAlert(queued bool) {
	m.alerts = append(m.alerts, queued)
}
