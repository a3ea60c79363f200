package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"banking_backend/internal/models"

	"github.com/lib/pq"
)

// AccountRepository defines the interface for account-related database operations.
type AccountRepository interface {
	CreateAccount(executor SQLExecutor, account *models.Account) error
	GetAccountByRIB(rib string) (*models.Account, error)
	GetAccounts() ([]models.Account, error)
	GetAccountsByClientID(clientID int64) ([]models.Account, error)
	UpdateAccount(executor SQLExecutor, account *models.Account) error
	DeleteAccount(executor SQLExecutor, rib string) error
	DeleteAccountsByClientID(executor SQLExecutor, clientID int64) error
}

type accountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new instance of AccountRepository.
func NewAccountRepository(db *sql.DB) AccountRepository {
	return &accountRepository{db: db}
}

const accountSelectColumns = `rib, balance, type, status, currency, interest_rate, overdraft_limit, swift_code, iban,
	          branch_code, notes, client_id, created_at, updated_at, closed_at, last_transaction_date`

func scanAccount(s scanner) (*models.Account, error) {
	account := &models.Account{}
	var (
		currency, swift, iban, branch, notes sql.NullString
		interest, overdraft                  sql.NullFloat64
		closedAt, lastTx                     sql.NullTime
	)
	err := s.Scan(
		&account.RIB, &account.Balance, &account.Type, &account.Status, &currency, &interest, &overdraft,
		&swift, &iban, &branch, &notes, &account.ClientID, &account.CreatedAt, &account.UpdatedAt, &closedAt, &lastTx,
	)
	if err != nil {
		return nil, err
	}
	account.Currency = nullStrPtr(currency)
	account.InterestRate = nullFloatPtr(interest)
	account.OverdraftLimit = nullFloatPtr(overdraft)
	account.SwiftCode = nullStrPtr(swift)
	account.IBAN = nullStrPtr(iban)
	account.BranchCode = nullStrPtr(branch)
	account.Notes = nullStrPtr(notes)
	account.ClosedAt = nullTimePtr(closedAt)
	account.LastTransactionDate = nullTimePtr(lastTx)
	return account, nil
}

// CreateAccount inserts a new account.
func (r *accountRepository) CreateAccount(executor SQLExecutor, account *models.Account) error {
	query := `INSERT INTO accounts (rib, balance, type, status, currency, interest_rate, overdraft_limit, swift_code,
	            iban, branch_code, notes, client_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	currentTime := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = currentTime
	}
	if account.UpdatedAt.IsZero() {
		account.UpdatedAt = currentTime
	}

	_, err := executor.Exec(query,
		account.RIB, account.Balance, account.Type, account.Status, account.Currency, account.InterestRate,
		account.OverdraftLimit, account.SwiftCode, account.IBAN, account.BranchCode, account.Notes,
		account.ClientID, account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return fmt.Errorf("%w: creating account %s: %v", ErrDatabaseError, account.RIB, err)
	}
	return nil
}

// GetAccountByRIB retrieves an account by its RIB.
func (r *accountRepository) GetAccountByRIB(rib string) (*models.Account, error) {
	query := `SELECT ` + accountSelectColumns + ` FROM accounts WHERE rib = $1`
	account, err := scanAccount(r.db.QueryRow(query, rib))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting account by RIB %s: %v", ErrDatabaseError, rib, err)
	}
	return account, nil
}

// GetAccounts retrieves all accounts.
func (r *accountRepository) GetAccounts() ([]models.Account, error) {
	query := `SELECT ` + accountSelectColumns + ` FROM accounts ORDER BY created_at DESC, rib ASC`
	return r.queryAccounts(query)
}

// GetAccountsByClientID retrieves the accounts owned by a client.
func (r *accountRepository) GetAccountsByClientID(clientID int64) ([]models.Account, error) {
	query := `SELECT ` + accountSelectColumns + ` FROM accounts WHERE client_id = $1 ORDER BY created_at DESC, rib ASC`
	return r.queryAccounts(query, clientID)
}

func (r *accountRepository) queryAccounts(query string, args ...interface{}) ([]models.Account, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying accounts: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning account: %v", ErrDatabaseError, err)
		}
		accounts = append(accounts, *account)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating account rows: %v", ErrDatabaseError, err)
	}
	return accounts, nil
}

// UpdateAccount updates an existing account.
func (r *accountRepository) UpdateAccount(executor SQLExecutor, account *models.Account) error {
	query := `UPDATE accounts SET
	            balance = $1, type = $2, status = $3, currency = $4, interest_rate = $5, overdraft_limit = $6,
	            swift_code = $7, iban = $8, branch_code = $9, notes = $10, client_id = $11, updated_at = $12,
	            closed_at = $13, last_transaction_date = $14
	          WHERE rib = $15`

	account.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		account.Balance, account.Type, account.Status, account.Currency, account.InterestRate,
		account.OverdraftLimit, account.SwiftCode, account.IBAN, account.BranchCode, account.Notes,
		account.ClientID, account.UpdatedAt, account.ClosedAt, account.LastTransactionDate, account.RIB,
	)
	if err != nil {
		return fmt.Errorf("%w: updating account %s: %v", ErrDatabaseError, account.RIB, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating account %s: %v", ErrDatabaseError, account.RIB, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAccount removes an account.
func (r *accountRepository) DeleteAccount(executor SQLExecutor, rib string) error {
	result, err := executor.Exec(`DELETE FROM accounts WHERE rib = $1`, rib)
	if err != nil {
		return fmt.Errorf("%w: deleting account %s: %v", ErrDatabaseError, rib, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting account %s: %v", ErrDatabaseError, rib, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAccountsByClientID removes every account owned by a client. Used by
// the client soft-delete cascade; deleting zero rows is not an error.
func (r *accountRepository) DeleteAccountsByClientID(executor SQLExecutor, clientID int64) error {
	_, err := executor.Exec(`DELETE FROM accounts WHERE client_id = $1`, clientID)
	if err != nil {
		return fmt.Errorf("%w: deleting accounts for client ID %d: %v", ErrDatabaseError, clientID, err)
	}
	return nil
}
