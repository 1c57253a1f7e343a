package email

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

type memoryQueue struct {
	mu         sync.Mutex
	jobs       map[uuid.UUID]*entity.EmailJob
	enqueueErr error
}

func newMemoryQueue() *memoryQueue {
	return &memoryQueue{jobs: make(map[uuid.UUID]*entity.EmailJob)}
}

func (q *memoryQueue) Enqueue(ctx context.Context, job *entity.EmailJob) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.enqueueErr != nil {
		return false, q.enqueueErr
	}
	if job.DedupeKey != "" {
		for _, existing := range q.jobs {
			if existing.DedupeKey == job.DedupeKey {
				return false, nil
			}
		}
	}
	copied := *job
	q.jobs[job.ID] = &copied
	return true, nil
}

func (q *memoryQueue) GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := time.Now().UTC()
	var pending []*entity.EmailJob
	for _, job := range q.jobs {
		if job.Status == entity.EmailStatusPending && !job.ScheduledAt.After(now) {
			copied := *job
			pending = append(pending, &copied)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].ScheduledAt.Before(pending[j].ScheduledAt)
	})
	if len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (q *memoryQueue) Update(ctx context.Context, job *entity.EmailJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	copied := *job
	q.jobs[job.ID] = &copied
	return nil
}

func (q *memoryQueue) GetByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	job, ok := q.jobs[id]
	if !ok {
		return nil, domainerror.ErrEmailJobNotFound
	}
	copied := *job
	return &copied, nil
}

func (q *memoryQueue) DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	cutoff := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	var deleted int64
	for id, job := range q.jobs {
		if job.Status == entity.EmailStatusSent && job.ProcessedAt != nil && job.ProcessedAt.Before(cutoff) {
			delete(q.jobs, id)
			deleted++
		}
	}
	return deleted, nil
}

func (q *memoryQueue) all() []*entity.EmailJob {
	q.mu.Lock()
	defer q.mu.Unlock()

	jobs := make([]*entity.EmailJob, 0, len(q.jobs))
	for _, job := range q.jobs {
		copied := *job
		jobs = append(jobs, &copied)
	}
	return jobs
}
