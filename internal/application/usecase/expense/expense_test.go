package expense

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

type effectsHarness struct {
	cache     *fakeStatsCache
	publisher *fakePublisher
	metrics   *fakeMetrics
	budget    *fakeBudgetChecker
	effects   *WriteEffects
}

func newEffectsHarness() *effectsHarness {
	h := &effectsHarness{
		cache:     &fakeStatsCache{},
		publisher: &fakePublisher{},
		metrics:   &fakeMetrics{},
		budget:    &fakeBudgetChecker{},
	}
	h.effects = NewWriteEffects(h.cache, h.publisher, h.metrics, h.budget)
	return h
}

func newOwner() *entity.Owner {
	return entity.NewOwner(entity.IdentityClaims{Subject: "auth0|expense-owner"}, decimal.Zero, "USD")
}

func TestCreateExpenseUseCase(t *testing.T) {
	owner := newOwner()
	repo := newFakeExpenseRepository()
	h := newEffectsHarness()
	uc := NewCreateExpenseUseCase(repo, &fakeOwnerRepository{owner: owner}, h.effects)

	date := time.Date(2024, 4, 18, 0, 0, 0, 0, time.UTC)
	output, err := uc.Execute(context.Background(), CreateExpenseInput{
		OwnerID:     owner.ID,
		Description: "  Groceries  ",
		Amount:      decimal.RequireFromString("42.50"),
		Date:        date,
		Category:    "Food",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.Expense.Description != "Groceries" {
		t.Errorf("expected trimmed description, got %q", output.Expense.Description)
	}
	if output.Expense.Category != entity.CategoryFood {
		t.Errorf("expected category food, got %s", output.Expense.Category)
	}
	if output.Expense.Currency != "USD" {
		t.Errorf("expected owner currency USD, got %s", output.Expense.Currency)
	}
	if len(repo.expenses) != 1 {
		t.Errorf("expected 1 stored expense, got %d", len(repo.expenses))
	}

	if len(h.cache.invalidated) != 1 || h.cache.invalidated[0] != owner.ID {
		t.Errorf("expected cache invalidation for owner, got %v", h.cache.invalidated)
	}
	if len(h.publisher.events) != 1 || h.publisher.events[0].Type != adapter.ExpenseCreated {
		t.Errorf("expected one created event, got %v", h.publisher.events)
	}
	if len(h.metrics.writes) != 1 || h.metrics.writes[0] != string(adapter.ExpenseCreated) {
		t.Errorf("expected one created metric, got %v", h.metrics.writes)
	}
	if len(h.budget.checks) != 1 || h.budget.checks[0].year != 2024 || h.budget.checks[0].month != 4 {
		t.Errorf("expected budget check for 2024-4, got %v", h.budget.checks)
	}
}

func TestCreateExpenseUseCase_Validation(t *testing.T) {
	owner := newOwner()
	valid := CreateExpenseInput{
		OwnerID:     owner.ID,
		Description: "Bus ticket",
		Amount:      decimal.NewFromInt(3),
		Date:        time.Date(2024, 4, 18, 0, 0, 0, 0, time.UTC),
		Category:    "transport",
	}

	tests := []struct {
		name         string
		mutate       func(*CreateExpenseInput)
		expectedCode domainerror.ExpenseErrorCode
	}{
		{
			name:         "empty description",
			mutate:       func(in *CreateExpenseInput) { in.Description = "   " },
			expectedCode: domainerror.ErrCodeMissingExpenseFields,
		},
		{
			name:         "description too long",
			mutate:       func(in *CreateExpenseInput) { in.Description = strings.Repeat("a", MaxDescriptionLength+1) },
			expectedCode: domainerror.ErrCodeDescriptionTooLong,
		},
		{
			name:         "notes too long",
			mutate:       func(in *CreateExpenseInput) { in.Notes = strings.Repeat("n", MaxNotesLength+1) },
			expectedCode: domainerror.ErrCodeNotesTooLong,
		},
		{
			name:         "negative amount",
			mutate:       func(in *CreateExpenseInput) { in.Amount = decimal.NewFromInt(-1) },
			expectedCode: domainerror.ErrCodeInvalidExpenseAmount,
		},
		{
			name:         "missing date",
			mutate:       func(in *CreateExpenseInput) { in.Date = time.Time{} },
			expectedCode: domainerror.ErrCodeInvalidExpenseDate,
		},
		{
			name:         "unknown category",
			mutate:       func(in *CreateExpenseInput) { in.Category = "groceries" },
			expectedCode: domainerror.ErrCodeInvalidCategory,
		},
		{
			name:         "malformed currency",
			mutate:       func(in *CreateExpenseInput) { in.Currency = "US1" },
			expectedCode: domainerror.ErrCodeInvalidExpenseCurrency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeExpenseRepository()
			uc := NewCreateExpenseUseCase(repo, &fakeOwnerRepository{owner: owner}, nil)

			input := valid
			tt.mutate(&input)

			_, err := uc.Execute(context.Background(), input)
			var expenseErr *domainerror.ExpenseError
			if !errors.As(err, &expenseErr) {
				t.Fatalf("expected ExpenseError, got %v", err)
			}
			if expenseErr.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, expenseErr.Code)
			}
			if len(repo.expenses) != 0 {
				t.Errorf("expected nothing stored, got %d", len(repo.expenses))
			}
		})
	}
}

func TestCreateExpenseUseCase_ZeroAmountAllowed(t *testing.T) {
	owner := newOwner()
	uc := NewCreateExpenseUseCase(newFakeExpenseRepository(), &fakeOwnerRepository{owner: owner}, nil)

	output, err := uc.Execute(context.Background(), CreateExpenseInput{
		OwnerID:     owner.ID,
		Description: "Free sample",
		Amount:      decimal.Zero,
		Date:        time.Now(),
		Category:    "other",
		Currency:    "eur",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Expense.Currency != "EUR" {
		t.Errorf("expected currency EUR, got %s", output.Expense.Currency)
	}
}

func TestCreateExpenseUseCase_SideEffectFailuresDoNotFailWrite(t *testing.T) {
	owner := newOwner()
	repo := newFakeExpenseRepository()
	h := newEffectsHarness()
	h.cache.err = errBoom
	h.publisher.err = errBoom
	h.budget.err = errBoom
	uc := NewCreateExpenseUseCase(repo, &fakeOwnerRepository{owner: owner}, h.effects)

	_, err := uc.Execute(context.Background(), CreateExpenseInput{
		OwnerID:     owner.ID,
		Description: "Cinema",
		Amount:      decimal.NewFromInt(15),
		Date:        time.Now(),
		Category:    "entertainment",
	})
	if err != nil {
		t.Fatalf("expected write to succeed, got %v", err)
	}
	if len(repo.expenses) != 1 {
		t.Errorf("expected 1 stored expense, got %d", len(repo.expenses))
	}
}

func TestCreateExpenseUseCase_RepositoryError(t *testing.T) {
	owner := newOwner()
	repo := newFakeExpenseRepository()
	repo.createErr = errBoom
	h := newEffectsHarness()
	uc := NewCreateExpenseUseCase(repo, &fakeOwnerRepository{owner: owner}, h.effects)

	_, err := uc.Execute(context.Background(), CreateExpenseInput{
		OwnerID:     owner.ID,
		Description: "Cinema",
		Amount:      decimal.NewFromInt(15),
		Date:        time.Now(),
		Category:    "entertainment",
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected repository error, got %v", err)
	}
	if len(h.publisher.events) != 0 {
		t.Errorf("expected no events after failed write, got %d", len(h.publisher.events))
	}
}

func TestGetExpenseUseCase_ForeignRecordIsNotFound(t *testing.T) {
	owner := newOwner()
	expense := entity.NewExpense(owner.ID, "Taxi", decimal.NewFromInt(8), time.Now(), entity.CategoryTransport, "USD", "")
	uc := NewGetExpenseUseCase(newFakeExpenseRepository(expense))

	tests := []struct {
		name      string
		expenseID uuid.UUID
		ownerID   uuid.UUID
		wantErr   bool
	}{
		{name: "owner reads own record", expenseID: expense.ID, ownerID: owner.ID},
		{name: "other owner gets not found", expenseID: expense.ID, ownerID: uuid.New(), wantErr: true},
		{name: "unknown id", expenseID: uuid.New(), ownerID: owner.ID, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := uc.Execute(context.Background(), GetExpenseInput{ExpenseID: tt.expenseID, OwnerID: tt.ownerID})
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if output.Expense.ID != expense.ID {
					t.Errorf("expected id %s, got %s", expense.ID, output.Expense.ID)
				}
				return
			}
			var expenseErr *domainerror.ExpenseError
			if !errors.As(err, &expenseErr) || expenseErr.Code != domainerror.ErrCodeExpenseNotFound {
				t.Errorf("expected code %s, got %v", domainerror.ErrCodeExpenseNotFound, err)
			}
		})
	}
}

func TestListExpensesUseCase(t *testing.T) {
	owner := newOwner()
	repo := newFakeExpenseRepository(
		entity.NewExpense(owner.ID, "Lunch", decimal.NewFromInt(12), time.Now(), entity.CategoryFood, "USD", ""),
		entity.NewExpense(owner.ID, "Dinner", decimal.NewFromInt(30), time.Now(), entity.CategoryFood, "USD", ""),
		entity.NewExpense(uuid.New(), "Someone else", decimal.NewFromInt(99), time.Now(), entity.CategoryFood, "USD", ""),
	)
	uc := NewListExpensesUseCase(repo)

	output, err := uc.Execute(context.Background(), ListExpensesInput{OwnerID: owner.ID, Category: "FOOD"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Expenses) != 2 {
		t.Errorf("expected 2 expenses, got %d", len(output.Expenses))
	}
	if !output.Total.Equal(decimal.NewFromInt(42)) {
		t.Errorf("expected total 42, got %s", output.Total)
	}
	if repo.lastFilter.Category == nil || *repo.lastFilter.Category != entity.CategoryFood {
		t.Errorf("expected food filter, got %v", repo.lastFilter.Category)
	}
}

func TestListExpensesUseCase_InvalidFilters(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)
	low := decimal.NewFromInt(10)
	high := decimal.NewFromInt(5)

	tests := []struct {
		name         string
		input        ListExpensesInput
		expectedCode domainerror.ExpenseErrorCode
	}{
		{name: "unknown category", input: ListExpensesInput{Category: "rent"}, expectedCode: domainerror.ErrCodeInvalidCategory},
		{name: "inverted dates", input: ListExpensesInput{StartDate: &start, EndDate: &end}, expectedCode: domainerror.ErrCodeInvalidExpenseFilter},
		{name: "inverted amounts", input: ListExpensesInput{MinAmount: &low, MaxAmount: &high}, expectedCode: domainerror.ErrCodeInvalidExpenseFilter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewListExpensesUseCase(newFakeExpenseRepository()).Execute(context.Background(), tt.input)
			var expenseErr *domainerror.ExpenseError
			if !errors.As(err, &expenseErr) {
				t.Fatalf("expected ExpenseError, got %v", err)
			}
			if expenseErr.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, expenseErr.Code)
			}
		})
	}
}

func TestUpdateExpenseUseCase_PartialUpdate(t *testing.T) {
	owner := newOwner()
	original := entity.NewExpense(owner.ID, "Gym", decimal.NewFromInt(50), time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), entity.CategoryHealth, "USD", "monthly")
	repo := newFakeExpenseRepository(original)
	h := newEffectsHarness()
	uc := NewUpdateExpenseUseCase(repo, h.effects)

	amount := decimal.NewFromInt(65)
	newDate := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	output, err := uc.Execute(context.Background(), UpdateExpenseInput{
		ExpenseID: original.ID,
		OwnerID:   owner.ID,
		Amount:    &amount,
		Date:      &newDate,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !output.Expense.Amount.Equal(amount) {
		t.Errorf("expected amount 65, got %s", output.Expense.Amount)
	}
	if output.Expense.Description != "Gym" || output.Expense.Notes != "monthly" {
		t.Errorf("expected untouched fields, got %q and %q", output.Expense.Description, output.Expense.Notes)
	}
	if output.Expense.ID != original.ID {
		t.Errorf("expected id to be preserved")
	}
	if len(h.budget.checks) != 2 {
		t.Fatalf("expected budget checks for both months, got %v", h.budget.checks)
	}
	if h.budget.checks[0].month != 2 || h.budget.checks[1].month != 1 {
		t.Errorf("expected checks for months 2 and 1, got %v", h.budget.checks)
	}
	if h.publisher.events[0].Type != adapter.ExpenseUpdated {
		t.Errorf("expected updated event, got %s", h.publisher.events[0].Type)
	}
}

func TestUpdateExpenseUseCase_ForeignRecord(t *testing.T) {
	owner := newOwner()
	original := entity.NewExpense(owner.ID, "Gym", decimal.NewFromInt(50), time.Now(), entity.CategoryHealth, "USD", "")
	repo := newFakeExpenseRepository(original)
	uc := NewUpdateExpenseUseCase(repo, nil)

	description := "Hijacked"
	_, err := uc.Execute(context.Background(), UpdateExpenseInput{
		ExpenseID:   original.ID,
		OwnerID:     uuid.New(),
		Description: &description,
	})
	if !errors.Is(err, domainerror.ErrExpenseNotFound) {
		t.Fatalf("expected ErrExpenseNotFound, got %v", err)
	}
	if repo.expenses[original.ID].Description != "Gym" {
		t.Errorf("expected stored record untouched, got %q", repo.expenses[original.ID].Description)
	}
}

func TestDeleteExpenseUseCase(t *testing.T) {
	owner := newOwner()
	expense := entity.NewExpense(owner.ID, "Book", decimal.NewFromInt(20), time.Now(), entity.CategoryEducation, "USD", "")
	repo := newFakeExpenseRepository(expense)
	h := newEffectsHarness()
	uc := NewDeleteExpenseUseCase(repo, h.effects)

	if _, err := uc.Execute(context.Background(), DeleteExpenseInput{ExpenseID: expense.ID, OwnerID: uuid.New()}); !errors.Is(err, domainerror.ErrExpenseNotFound) {
		t.Fatalf("expected ErrExpenseNotFound for foreign owner, got %v", err)
	}

	output, err := uc.Execute(context.Background(), DeleteExpenseInput{ExpenseID: expense.ID, OwnerID: owner.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !output.Success {
		t.Errorf("expected success")
	}
	if len(repo.deleted) != 1 {
		t.Errorf("expected 1 deletion, got %d", len(repo.deleted))
	}
	if len(h.publisher.events) != 1 || h.publisher.events[0].Type != adapter.ExpenseDeleted {
		t.Errorf("expected one deleted event, got %v", h.publisher.events)
	}
	if len(h.budget.checks) != 0 {
		t.Errorf("expected no budget checks on delete, got %v", h.budget.checks)
	}
}
