package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finsim/internal/domain"
	"github.com/iho/finsim/internal/usecase"
	"github.com/iho/finsim/internal/usecase/mocks"
)

type transactionFixture struct {
	scenarioRepo    *mocks.MockScenarioRepository
	accountRepo     *mocks.MockAccountRepository
	transactionRepo *mocks.MockTransactionRepository
	txManager       *mocks.MockTransactionManager
	invalidator     *mocks.MockInvalidator
	uc              *usecase.TransactionUseCase
}

func newTransactionFixture(t *testing.T) *transactionFixture {
	t.Helper()

	f := &transactionFixture{
		scenarioRepo:    mocks.NewMockScenarioRepository(),
		accountRepo:     mocks.NewMockAccountRepository(),
		transactionRepo: mocks.NewMockTransactionRepository(),
		txManager:       mocks.NewMockTransactionManager(),
		invalidator:     mocks.NewMockInvalidator(),
	}
	f.uc = usecase.NewTransactionUseCase(f.scenarioRepo, f.accountRepo, f.transactionRepo, f.txManager, mocks.NewMockIDGenerator(), f.invalidator)

	f.scenarioRepo.Create(context.Background(), &domain.Scenario{
		ID:     "scn-1",
		UserID: "user-1",
		Name:   "base",
		Start:  domain.YearMonth{Year: 2024, Month: time.January},
		End:    domain.YearMonth{Year: 2026, Month: time.December},
	})
	f.accountRepo.Create(context.Background(), &domain.Account{
		ID:         "acc-1",
		ScenarioID: "scn-1",
		Name:       "checking",
		Kind:       domain.AccountKindBank,
	})
	f.accountRepo.Create(context.Background(), &domain.Account{
		ID:         "acc-2",
		ScenarioID: "scn-1",
		Name:       "savings",
		Kind:       domain.AccountKindBank,
	})
	f.accountRepo.Create(context.Background(), &domain.Account{
		ID:         "acc-mortgage",
		ScenarioID: "scn-1",
		Name:       "mortgage",
		Kind:       domain.AccountKindMortgage,
	})

	return f
}

func TestTransactionUseCase_CreateSimple(t *testing.T) {
	f := newTransactionFixture(t)

	created, err := f.uc.Create(context.Background(), "user-1", "scn-1", usecase.CreateTransactionInput{
		AccountID: "acc-1",
		Name:      "salary",
		Kind:      domain.TransactionKindRegular,
		Amount:    decimal.NewFromInt(6000),
		Start:     domain.YearMonth{Year: 2024, Month: time.January},
		Frequency: 1,
		Taxable:   true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.PairID != nil || created.PairRole != domain.PairRoleNone {
		t.Errorf("single-leg transaction must not carry pair metadata, got %+v", created)
	}

	all, _ := f.transactionRepo.ListByScenario(context.Background(), "scn-1")
	if len(all) != 1 {
		t.Errorf("expected one stored transaction, got %d", len(all))
	}
	if len(f.invalidator.Calls()) != 1 {
		t.Errorf("expected one invalidation, got %v", f.invalidator.Calls())
	}
}

func TestTransactionUseCase_CreatePair(t *testing.T) {
	f := newTransactionFixture(t)

	counter := "acc-2"
	primary, err := f.uc.Create(context.Background(), "user-1", "scn-1", usecase.CreateTransactionInput{
		AccountID:        "acc-1",
		Name:             "monthly savings",
		Kind:             domain.TransactionKindRegular,
		Amount:           decimal.NewFromInt(-500),
		Start:            domain.YearMonth{Year: 2024, Month: time.January},
		Frequency:        1,
		Taxable:          true,
		CounterAccountID: &counter,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.txManager.LastTx == nil || !f.txManager.LastTx.Committed {
		t.Error("expected both legs written in one committed transaction")
	}

	all, _ := f.transactionRepo.ListByScenario(context.Background(), "scn-1")
	if len(all) != 2 {
		t.Fatalf("expected two legs, got %d", len(all))
	}

	var counterLeg *domain.Transaction
	for _, txn := range all {
		if txn.ID != primary.ID {
			counterLeg = txn
		}
	}
	if counterLeg == nil {
		t.Fatal("counter leg not stored")
	}

	if primary.PairID == nil || counterLeg.PairID == nil || *primary.PairID != *counterLeg.PairID {
		t.Error("legs must share a pair ID")
	}
	if primary.PairRole != domain.PairRoleCredit {
		t.Errorf("negative primary leg must be credit, got %q", primary.PairRole)
	}
	if counterLeg.PairRole != domain.PairRoleDebit {
		t.Errorf("positive counter leg must be debit, got %q", counterLeg.PairRole)
	}
	if counterLeg.AccountID != "acc-2" {
		t.Errorf("counter leg lives on acc-2, got %q", counterLeg.AccountID)
	}
	if !counterLeg.Amount.Equal(decimal.NewFromInt(500)) {
		t.Errorf("counter leg must negate the primary amount, got %s", counterLeg.Amount)
	}
	if !primary.Amount.Add(counterLeg.Amount).IsZero() {
		t.Error("pair legs must net to zero")
	}
	if counterLeg.Taxable {
		t.Error("only the primary leg carries the taxable flag")
	}
	if counterLeg.CounterAccountID == nil || *counterLeg.CounterAccountID != "acc-1" {
		t.Error("counter leg must point back at the primary account")
	}
}

func TestTransactionUseCase_CreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.CreateTransactionInput
		wantErr error
	}{
		{
			name: "unknown account",
			input: usecase.CreateTransactionInput{
				AccountID: "nope",
				Name:      "salary",
				Kind:      domain.TransactionKindRegular,
				Start:     domain.YearMonth{Year: 2024, Month: time.January},
				Frequency: 1,
			},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name: "recurring without frequency",
			input: usecase.CreateTransactionInput{
				AccountID: "acc-1",
				Name:      "salary",
				Kind:      domain.TransactionKindRegular,
				Start:     domain.YearMonth{Year: 2024, Month: time.January},
			},
			wantErr: domain.ErrInvalidFrequency,
		},
		{
			name: "mortgage interest without reference",
			input: usecase.CreateTransactionInput{
				AccountID: "acc-1",
				Name:      "interest",
				Kind:      domain.TransactionKindMortgageInterest,
				Start:     domain.YearMonth{Year: 2024, Month: time.January},
				Frequency: 1,
			},
			wantErr: domain.ErrMissingMortgageReference,
		},
		{
			name: "mortgage interest on non-mortgage account",
			input: usecase.CreateTransactionInput{
				AccountID:         "acc-1",
				Name:              "interest",
				Kind:              domain.TransactionKindMortgageInterest,
				Start:             domain.YearMonth{Year: 2024, Month: time.January},
				Frequency:         1,
				MortgageAccountID: strPtr("acc-2"),
			},
			wantErr: domain.ErrNotMortgageAccount,
		},
		{
			name: "transfer to itself",
			input: usecase.CreateTransactionInput{
				AccountID:        "acc-1",
				Name:             "loop",
				Kind:             domain.TransactionKindRegular,
				Amount:           decimal.NewFromInt(100),
				Start:            domain.YearMonth{Year: 2024, Month: time.January},
				Frequency:        1,
				CounterAccountID: strPtr("acc-1"),
			},
			wantErr: domain.ErrSameAccount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTransactionFixture(t)

			_, err := f.uc.Create(context.Background(), "user-1", "scn-1", tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}

			all, _ := f.transactionRepo.ListByScenario(context.Background(), "scn-1")
			if len(all) != 0 {
				t.Errorf("expected no stored transactions on failure, got %d", len(all))
			}
		})
	}
}

func TestTransactionUseCase_UpdateSingle(t *testing.T) {
	f := newTransactionFixture(t)

	created, err := f.uc.Create(context.Background(), "user-1", "scn-1", usecase.CreateTransactionInput{
		AccountID: "acc-1",
		Name:      "salary",
		Kind:      domain.TransactionKindRegular,
		Amount:    decimal.NewFromInt(6000),
		Start:     domain.YearMonth{Year: 2024, Month: time.January},
		Frequency: 1,
		Taxable:   true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := f.uc.Update(context.Background(), "user-1", "scn-1", created.ID, usecase.UpdateTransactionInput{
		AccountID: "acc-2",
		Name:      "salary raised",
		Kind:      domain.TransactionKindRegular,
		Amount:    decimal.NewFromInt(6500),
		Start:     domain.YearMonth{Year: 2024, Month: time.March},
		Frequency: 1,
		Taxable:   true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.ID != created.ID {
		t.Errorf("expected id %s preserved, got %s", created.ID, updated.ID)
	}
	if updated.AccountID != "acc-2" {
		t.Errorf("expected account moved to acc-2, got %s", updated.AccountID)
	}

	stored, err := f.transactionRepo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stored.Amount.Equal(decimal.NewFromInt(6500)) {
		t.Errorf("expected stored amount 6500, got %s", stored.Amount)
	}

	if calls := f.invalidator.Calls(); len(calls) != 2 || calls[1] != "user-1/scn-1" {
		t.Errorf("expected cache invalidated on update, got calls %v", calls)
	}
}

func TestTransactionUseCase_UpdateRejectsPairLeg(t *testing.T) {
	f := newTransactionFixture(t)

	counter := "acc-2"
	primary, err := f.uc.Create(context.Background(), "user-1", "scn-1", usecase.CreateTransactionInput{
		AccountID:        "acc-1",
		Name:             "monthly savings",
		Kind:             domain.TransactionKindRegular,
		Amount:           decimal.NewFromInt(-500),
		Start:            domain.YearMonth{Year: 2024, Month: time.January},
		Frequency:        1,
		CounterAccountID: &counter,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = f.uc.Update(context.Background(), "user-1", "scn-1", primary.ID, usecase.UpdateTransactionInput{
		AccountID: "acc-1",
		Name:      "monthly savings",
		Kind:      domain.TransactionKindRegular,
		Amount:    decimal.NewFromInt(-600),
		Start:     domain.YearMonth{Year: 2024, Month: time.January},
		Frequency: 1,
	})
	if !errors.Is(err, domain.ErrPairLegImmutable) {
		t.Fatalf("expected ErrPairLegImmutable, got %v", err)
	}
}

func TestTransactionUseCase_UpdateValidation(t *testing.T) {
	f := newTransactionFixture(t)

	created, err := f.uc.Create(context.Background(), "user-1", "scn-1", usecase.CreateTransactionInput{
		AccountID: "acc-1",
		Name:      "rent",
		Kind:      domain.TransactionKindRegular,
		Amount:    decimal.NewFromInt(-2000),
		Start:     domain.YearMonth{Year: 2024, Month: time.January},
		Frequency: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = f.uc.Update(context.Background(), "user-1", "scn-1", created.ID, usecase.UpdateTransactionInput{
		AccountID: "acc-1",
		Name:      "rent",
		Kind:      domain.TransactionKindRegular,
		Amount:    decimal.NewFromInt(-2000),
		Start:     domain.YearMonth{Year: 2024, Month: time.January},
		Frequency: 0,
	})
	if !errors.Is(err, domain.ErrInvalidFrequency) {
		t.Fatalf("expected ErrInvalidFrequency, got %v", err)
	}
}

func TestTransactionUseCase_DeletePair(t *testing.T) {
	f := newTransactionFixture(t)

	counter := "acc-2"
	primary, err := f.uc.Create(context.Background(), "user-1", "scn-1", usecase.CreateTransactionInput{
		AccountID:        "acc-1",
		Name:             "monthly savings",
		Kind:             domain.TransactionKindRegular,
		Amount:           decimal.NewFromInt(-500),
		Start:            domain.YearMonth{Year: 2024, Month: time.January},
		Frequency:        1,
		CounterAccountID: &counter,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := f.uc.Delete(context.Background(), "user-1", "scn-1", primary.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all, _ := f.transactionRepo.ListByScenario(context.Background(), "scn-1")
	if len(all) != 0 {
		t.Errorf("expected both legs deleted, got %d left", len(all))
	}
}

func TestTransactionUseCase_DeleteSingle(t *testing.T) {
	f := newTransactionFixture(t)

	created, err := f.uc.Create(context.Background(), "user-1", "scn-1", usecase.CreateTransactionInput{
		AccountID: "acc-1",
		Name:      "salary",
		Kind:      domain.TransactionKindRegular,
		Amount:    decimal.NewFromInt(6000),
		Start:     domain.YearMonth{Year: 2024, Month: time.January},
		Frequency: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := f.uc.Delete(context.Background(), "user-1", "scn-1", created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.transactionRepo.GetByID(context.Background(), created.ID); !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Errorf("expected transaction gone, got %v", err)
	}
}
