package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rajabalanj/poultry-ledger/internal/apperrors"
	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
	portsrepo "github.com/rajabalanj/poultry-ledger/internal/core/ports/repositories"
	"github.com/rajabalanj/poultry-ledger/internal/dto"
	"github.com/rajabalanj/poultry-ledger/internal/middleware"
)

type AccountService struct {
	accountRepo portsrepo.AccountRepository
}

func NewAccountService(repo portsrepo.AccountRepository) *AccountService {
	return &AccountService{accountRepo: repo}
}

func (s *AccountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.ValidAccountType(req.AccountType) {
		return nil, fmt.Errorf("invalid account type %q: %w", req.AccountType, apperrors.ErrValidation)
	}
	if existing, err := s.accountRepo.FindAccountByCode(ctx, tenantID, req.Code); err == nil && existing != nil {
		return nil, fmt.Errorf("account code %q already exists: %w", req.Code, apperrors.ErrDuplicate)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    tenantID,
		Code:        req.Code,
		Name:        req.Name,
		AccountType: req.AccountType,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

func (s *AccountService) GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *AccountService) ListAccounts(ctx context.Context, tenantID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID, params.AccountType, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		return nil, err
	}
	return accounts, nil
}

func (s *AccountService) UpdateAccount(ctx context.Context, tenantID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	if req.IsActive != nil && !*req.IsActive && account.IsActive {
		referenced, err := s.accountRepo.IsAccountReferenced(ctx, tenantID, accountID)
		if err != nil {
			return nil, err
		}
		if referenced {
			return nil, fmt.Errorf("account %s is referenced by settings or postings: %w", accountID, apperrors.ErrValidation)
		}
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeactivateAccount marks the account inactive. Accounts are never removed,
// and accounts still referenced by settings or postings cannot be
// deactivated either.
func (s *AccountService) DeactivateAccount(ctx context.Context, tenantID string, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return err
	}

	referenced, err := s.accountRepo.IsAccountReferenced(ctx, tenantID, accountID)
	if err != nil {
		return err
	}
	if referenced {
		logger.Info("Refusing to deactivate referenced account", slog.String("account_id", accountID))
		return fmt.Errorf("account %s is referenced by settings or postings: %w", accountID, apperrors.ErrValidation)
	}

	account.IsActive = false
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID
	return s.accountRepo.UpdateAccount(ctx, *account)
}

// GetOrCreateAccount resolves seed accounts idempotently. Lookup is by
// name first, then by code, creating the account only when both miss.
func (s *AccountService) GetOrCreateAccount(ctx context.Context, tenantID string, seed domain.DefaultAccountSeed, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByName(ctx, tenantID, seed.Name)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	account, err = s.accountRepo.FindAccountByCode(ctx, tenantID, seed.Code)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	created, err := s.CreateAccount(ctx, tenantID, dto.CreateAccountRequest{
		Code:        seed.Code,
		Name:        seed.Name,
		AccountType: seed.Type,
	}, userID)
	if err != nil {
		return nil, err
	}

	logger.Info("Seeded default account", slog.String("name", seed.Name), slog.String("code", seed.Code))
	return created, nil
}
