package models

import "time"

// AccountType enumerates supported account products.
type AccountType string

const (
	AccountTypeChecking     AccountType = "CHECKING"
	AccountTypeSavings      AccountType = "SAVINGS"
	AccountTypeFixedDeposit AccountType = "FIXED_DEPOSIT"
)

// AccountStatus enumerates the lifecycle states of an account.
type AccountStatus string

const (
	AccountStatusActive            AccountStatus = "ACTIVE"
	AccountStatusInactive          AccountStatus = "INACTIVE"
	AccountStatusBlocked           AccountStatus = "BLOCKED"
	AccountStatusClosed            AccountStatus = "CLOSED"
	AccountStatusPendingActivation AccountStatus = "PENDING_ACTIVATION"
	AccountStatusSuspended         AccountStatus = "SUSPENDED"
)

// Account represents a bank account, keyed by its RIB and owned by a client.
type Account struct {
	RIB                 string        `json:"rib"`
	Balance             float64       `json:"balance"`
	Type                AccountType   `json:"type"`
	Status              AccountStatus `json:"status"`
	Currency            *string       `json:"currency,omitempty"`
	InterestRate        *float64      `json:"interest_rate,omitempty"`
	OverdraftLimit      *float64      `json:"overdraft_limit,omitempty"`
	SwiftCode           *string       `json:"swift_code,omitempty"`
	IBAN                *string       `json:"iban,omitempty"`
	BranchCode          *string       `json:"branch_code,omitempty"`
	Notes               *string       `json:"notes,omitempty"`
	ClientID            int64         `json:"client_id"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
	ClosedAt            *time.Time    `json:"closed_at,omitempty"`
	LastTransactionDate *time.Time    `json:"last_transaction_date,omitempty"`
}

// ValidAccountType reports whether t is one of the supported account types.
func ValidAccountType(t AccountType) bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeFixedDeposit:
		return true
	}
	return false
}

// ValidAccountStatus reports whether s is a known account status.
func ValidAccountStatus(s AccountStatus) bool {
	switch s {
	case AccountStatusActive, AccountStatusInactive, AccountStatusBlocked,
		AccountStatusClosed, AccountStatusPendingActivation, AccountStatusSuspended:
		return true
	}
	return false
}
