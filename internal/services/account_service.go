package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"banking_backend/internal/models"
	"banking_backend/internal/repositories"
)

// --- Custom Service Errors for Account ---
var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountExists     = errors.New("account with this RIB already exists")
	ErrAccountValidation = errors.New("account data validation error")
)

// --- Account DTOs ---
type AccountRequest struct {
	RIB            string               `json:"rib" binding:"required"`
	Balance        float64              `json:"balance"`
	Type           models.AccountType   `json:"type" binding:"required"`
	Status         models.AccountStatus `json:"status" binding:"required"`
	Currency       *string              `json:"currency"`
	InterestRate   *float64             `json:"interest_rate"`
	OverdraftLimit *float64             `json:"overdraft_limit"`
	SwiftCode      *string              `json:"swift_code"`
	IBAN           *string              `json:"iban"`
	BranchCode     *string              `json:"branch_code"`
	Notes          *string              `json:"notes"`
	ClientID       int64                `json:"client_id" binding:"required"`
}

// --- AccountService Interface ---
type AccountService interface {
	CreateAccount(req AccountRequest) (*models.Account, error)
	GetAccountByRIB(rib string) (*models.Account, error)
	GetAccounts() ([]models.Account, error)
	GetAccountsByClientID(clientID int64) ([]models.Account, error)
	UpdateAccount(rib string, req AccountRequest) (*models.Account, error)
	DeleteAccount(rib string) error
}

// --- accountService Implementation ---
type accountService struct {
	accountRepo repositories.AccountRepository
	clientRepo  repositories.ClientRepository
	db          *sql.DB
}

// NewAccountService creates a new instance of AccountService.
func NewAccountService(accountRepo repositories.AccountRepository, clientRepo repositories.ClientRepository, db *sql.DB) AccountService {
	return &accountService{
		accountRepo: accountRepo,
		clientRepo:  clientRepo,
		db:          db,
	}
}

func validateAccountRequest(req AccountRequest) error {
	if strings.TrimSpace(req.RIB) == "" {
		return fmt.Errorf("%w: RIB cannot be empty", ErrAccountValidation)
	}
	if !models.ValidAccountType(req.Type) {
		return fmt.Errorf("%w: unknown account type %q", ErrAccountValidation, req.Type)
	}
	if !models.ValidAccountStatus(req.Status) {
		return fmt.Errorf("%w: unknown account status %q", ErrAccountValidation, req.Status)
	}
	return nil
}

// CreateAccount creates an account for an existing live client. Soft-deleted
// clients cannot own new accounts.
func (s *accountService) CreateAccount(req AccountRequest) (*models.Account, error) {
	if err := validateAccountRequest(req); err != nil {
		return nil, err
	}
	if _, err := s.clientRepo.GetClientByID(req.ClientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to check account owner: %w", err)
	}

	account := accountFromRequest(req)
	if err := s.accountRepo.CreateAccount(s.db, account); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrAccountExists
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return s.GetAccountByRIB(account.RIB)
}

func (s *accountService) GetAccountByRIB(rib string) (*models.Account, error) {
	account, err := s.accountRepo.GetAccountByRIB(rib)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by RIB: %w", err)
	}
	return account, nil
}

func (s *accountService) GetAccounts() ([]models.Account, error) {
	accounts, err := s.accountRepo.GetAccounts()
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// GetAccountsByClientID lists the accounts of a live client.
func (s *accountService) GetAccountsByClientID(clientID int64) ([]models.Account, error) {
	if _, err := s.clientRepo.GetClientByID(clientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to check account owner: %w", err)
	}
	accounts, err := s.accountRepo.GetAccountsByClientID(clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for client: %w", err)
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(rib string, req AccountRequest) (*models.Account, error) {
	if err := validateAccountRequest(req); err != nil {
		return nil, err
	}
	existing, err := s.accountRepo.GetAccountByRIB(rib)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account for update: %w", err)
	}
	if _, err := s.clientRepo.GetClientByID(req.ClientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to check account owner: %w", err)
	}

	account := accountFromRequest(req)
	account.RIB = existing.RIB
	account.CreatedAt = existing.CreatedAt
	account.ClosedAt = existing.ClosedAt
	account.LastTransactionDate = existing.LastTransactionDate
	if err := s.accountRepo.UpdateAccount(s.db, account); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return s.GetAccountByRIB(rib)
}

func (s *accountService) DeleteAccount(rib string) error {
	if err := s.accountRepo.DeleteAccount(s.db, rib); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

func accountFromRequest(req AccountRequest) *models.Account {
	return &models.Account{
		RIB:            strings.TrimSpace(req.RIB),
		Balance:        req.Balance,
		Type:           req.Type,
		Status:         req.Status,
		Currency:       req.Currency,
		InterestRate:   req.InterestRate,
		OverdraftLimit: req.OverdraftLimit,
		SwiftCode:      req.SwiftCode,
		IBAN:           req.IBAN,
		BranchCode:     req.BranchCode,
		Notes:          req.Notes,
		ClientID:       req.ClientID,
	}
}
