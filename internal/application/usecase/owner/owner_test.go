package owner

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// memoryOwnerRepository enforces a unique external id the way the database does.
type memoryOwnerRepository struct {
	mu      sync.Mutex
	owners  map[uuid.UUID]*entity.Owner
	updates int

	// beforeCreate runs once inside Create to simulate a concurrent insert.
	beforeCreate func()
}

func newMemoryOwnerRepository() *memoryOwnerRepository {
	return &memoryOwnerRepository{owners: make(map[uuid.UUID]*entity.Owner)}
}

func (r *memoryOwnerRepository) insert(owner *entity.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.owners {
		if existing.ExternalID == owner.ExternalID {
			return domainerror.ErrOwnerAlreadyExists
		}
	}
	copied := *owner
	r.owners[owner.ID] = &copied
	return nil
}

func (r *memoryOwnerRepository) Create(_ context.Context, owner *entity.Owner) error {
	if hook := r.beforeCreate; hook != nil {
		r.beforeCreate = nil
		hook()
	}
	return r.insert(owner)
}

func (r *memoryOwnerRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Owner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	owner, ok := r.owners[id]
	if !ok {
		return nil, domainerror.ErrOwnerNotFound
	}
	copied := *owner
	return &copied, nil
}

func (r *memoryOwnerRepository) FindByExternalID(_ context.Context, externalID string) (*entity.Owner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, owner := range r.owners {
		if owner.ExternalID == externalID {
			copied := *owner
			return &copied, nil
		}
	}
	return nil, domainerror.ErrOwnerNotFound
}

func (r *memoryOwnerRepository) Update(_ context.Context, owner *entity.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	copied := *owner
	r.owners[owner.ID] = &copied
	return nil
}

func newResolver(repo *memoryOwnerRepository) *ResolveOwnerUseCase {
	return NewResolveOwnerUseCase(repo, decimal.NewFromInt(10000), "LKR")
}

func TestResolveOwnerUseCase_CreatesWithDefaults(t *testing.T) {
	repo := newMemoryOwnerRepository()

	output, err := newResolver(repo).Execute(context.Background(), ResolveOwnerInput{
		Claims: entity.IdentityClaims{Subject: "auth0|123"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !output.Created {
		t.Errorf("expected owner to be created")
	}

	owner := output.Owner
	if owner.Email != "user-auth0|123@temp.com" {
		t.Errorf("expected placeholder email, got %s", owner.Email)
	}
	if owner.Name != entity.DefaultOwnerName {
		t.Errorf("expected default name, got %s", owner.Name)
	}
	if !owner.MonthlyBudgetLimit.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("expected limit 10000, got %s", owner.MonthlyBudgetLimit)
	}
	if owner.Currency != "LKR" {
		t.Errorf("expected currency LKR, got %s", owner.Currency)
	}
}

func TestResolveOwnerUseCase_Idempotent(t *testing.T) {
	repo := newMemoryOwnerRepository()
	uc := newResolver(repo)
	claims := entity.IdentityClaims{Subject: "auth0|abc", Email: "a@example.com", Name: "Ada"}

	first, err := uc.Execute(context.Background(), ResolveOwnerInput{Claims: claims})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := uc.Execute(context.Background(), ResolveOwnerInput{Claims: claims})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Owner.ID != second.Owner.ID {
		t.Errorf("expected same owner, got %s and %s", first.Owner.ID, second.Owner.ID)
	}
	if second.Created {
		t.Errorf("expected second call not to create")
	}
	if repo.updates != 0 {
		t.Errorf("expected no updates for unchanged claims, got %d", repo.updates)
	}
	if len(repo.owners) != 1 {
		t.Errorf("expected 1 owner, got %d", len(repo.owners))
	}
}

func TestResolveOwnerUseCase_RefreshesChangedClaims(t *testing.T) {
	repo := newMemoryOwnerRepository()
	uc := newResolver(repo)

	if _, err := uc.Execute(context.Background(), ResolveOwnerInput{
		Claims: entity.IdentityClaims{Subject: "auth0|r", Email: "old@example.com", Name: "Old", Picture: "https://img/old.png"},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output, err := uc.Execute(context.Background(), ResolveOwnerInput{
		Claims: entity.IdentityClaims{Subject: "auth0|r", Email: "new@example.com"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.Owner.Email != "new@example.com" {
		t.Errorf("expected refreshed email, got %s", output.Owner.Email)
	}
	if output.Owner.Name != "Old" {
		t.Errorf("expected name kept when claim is empty, got %s", output.Owner.Name)
	}
	if output.Owner.Picture != "https://img/old.png" {
		t.Errorf("expected picture kept when claim is empty, got %s", output.Owner.Picture)
	}
	if repo.updates != 1 {
		t.Errorf("expected 1 update, got %d", repo.updates)
	}
}

func TestResolveOwnerUseCase_ConcurrentCreateReturnsWinner(t *testing.T) {
	repo := newMemoryOwnerRepository()
	winner := entity.NewOwner(entity.IdentityClaims{Subject: "auth0|race", Email: "race@example.com"}, decimal.Zero, "")
	repo.beforeCreate = func() {
		if err := repo.insert(winner); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	output, err := newResolver(repo).Execute(context.Background(), ResolveOwnerInput{
		Claims: entity.IdentityClaims{Subject: "auth0|race", Email: "race@example.com"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Owner.ID != winner.ID {
		t.Errorf("expected winner %s, got %s", winner.ID, output.Owner.ID)
	}
	if output.Created {
		t.Errorf("expected loser not to report creation")
	}
	if len(repo.owners) != 1 {
		t.Errorf("expected 1 owner, got %d", len(repo.owners))
	}
}

func TestResolveOwnerUseCase_ParallelRequests(t *testing.T) {
	repo := newMemoryOwnerRepository()
	uc := newResolver(repo)

	const workers = 8
	ids := make([]uuid.UUID, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			output, err := uc.Execute(context.Background(), ResolveOwnerInput{
				Claims: entity.IdentityClaims{Subject: "auth0|parallel"},
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			ids[i] = output.Owner.ID
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if ids[i] != ids[0] {
			t.Errorf("expected all requests to resolve %s, got %s", ids[0], ids[i])
		}
	}
	if len(repo.owners) != 1 {
		t.Errorf("expected 1 owner, got %d", len(repo.owners))
	}
}

func TestResolveOwnerUseCase_MissingSubject(t *testing.T) {
	_, err := newResolver(newMemoryOwnerRepository()).Execute(context.Background(), ResolveOwnerInput{
		Claims: entity.IdentityClaims{Subject: "  ", Email: "x@example.com"},
	})
	var ownerErr *domainerror.OwnerError
	if !errors.As(err, &ownerErr) {
		t.Fatalf("expected OwnerError, got %v", err)
	}
	if ownerErr.Code != domainerror.ErrCodeMissingSubject {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeMissingSubject, ownerErr.Code)
	}
}

func TestGetProfileUseCase(t *testing.T) {
	repo := newMemoryOwnerRepository()
	created, err := newResolver(repo).Execute(context.Background(), ResolveOwnerInput{
		Claims: entity.IdentityClaims{Subject: "auth0|profile", Name: "Grace"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output, err := NewGetProfileUseCase(repo).Execute(context.Background(), GetProfileInput{OwnerID: created.Owner.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Profile.Name != "Grace" {
		t.Errorf("expected name Grace, got %s", output.Profile.Name)
	}

	_, err = NewGetProfileUseCase(repo).Execute(context.Background(), GetProfileInput{OwnerID: uuid.New()})
	if !errors.Is(err, domainerror.ErrOwnerNotFound) {
		t.Errorf("expected ErrOwnerNotFound, got %v", err)
	}
}

func TestUpdateProfileUseCase(t *testing.T) {
	repo := newMemoryOwnerRepository()
	created, err := newResolver(repo).Execute(context.Background(), ResolveOwnerInput{
		Claims: entity.IdentityClaims{Subject: "auth0|update"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ownerID := created.Owner.ID

	limit := decimal.NewFromInt(25000)
	currency := "usd"
	output, err := NewUpdateProfileUseCase(repo).Execute(context.Background(), UpdateProfileInput{
		OwnerID:            ownerID,
		MonthlyBudgetLimit: &limit,
		Currency:           &currency,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !output.Profile.MonthlyBudgetLimit.Equal(limit) {
		t.Errorf("expected limit 25000, got %s", output.Profile.MonthlyBudgetLimit)
	}
	if output.Profile.Currency != "USD" {
		t.Errorf("expected currency USD, got %s", output.Profile.Currency)
	}

	stored, _ := repo.FindByID(context.Background(), ownerID)
	if !stored.MonthlyBudgetLimit.Equal(limit) {
		t.Errorf("expected stored limit 25000, got %s", stored.MonthlyBudgetLimit)
	}
}

func TestUpdateProfileUseCase_Validation(t *testing.T) {
	repo := newMemoryOwnerRepository()
	created, err := newResolver(repo).Execute(context.Background(), ResolveOwnerInput{
		Claims: entity.IdentityClaims{Subject: "auth0|validation"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	zero := decimal.Zero
	negative := decimal.NewFromInt(-10)
	badCurrency := "RUPEE"
	blank := "   "

	tests := []struct {
		name         string
		input        UpdateProfileInput
		expectedCode domainerror.OwnerErrorCode
	}{
		{name: "nothing to update", input: UpdateProfileInput{}, expectedCode: domainerror.ErrCodeMissingProfileFields},
		{name: "zero limit", input: UpdateProfileInput{MonthlyBudgetLimit: &zero}, expectedCode: domainerror.ErrCodeInvalidBudgetLimitUpdate},
		{name: "negative limit", input: UpdateProfileInput{MonthlyBudgetLimit: &negative}, expectedCode: domainerror.ErrCodeInvalidBudgetLimitUpdate},
		{name: "bad currency", input: UpdateProfileInput{Currency: &badCurrency}, expectedCode: domainerror.ErrCodeInvalidCurrency},
		{name: "blank name", input: UpdateProfileInput{Name: &blank}, expectedCode: domainerror.ErrCodeMissingProfileFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			input.OwnerID = created.Owner.ID

			_, err := NewUpdateProfileUseCase(repo).Execute(context.Background(), input)
			var ownerErr *domainerror.OwnerError
			if !errors.As(err, &ownerErr) {
				t.Fatalf("expected OwnerError, got %v", err)
			}
			if ownerErr.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, ownerErr.Code)
			}
		})
	}
}
