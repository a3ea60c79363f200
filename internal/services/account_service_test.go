package services

import (
	"errors"
	"testing"
	"time"

	"banking_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccountServiceForTest() (AccountService, *fakeClientRepo, *fakeAccountRepo) {
	clientRepo := newFakeClientRepo()
	accountRepo := newFakeAccountRepo()
	return NewAccountService(accountRepo, clientRepo, nil), clientRepo, accountRepo
}

func validAccountRequest(clientID int64) AccountRequest {
	return AccountRequest{
		RIB:      "007780000123456789012345",
		Type:     models.AccountTypeChecking,
		Status:   models.AccountStatusActive,
		ClientID: clientID,
	}
}

func TestCreateAccount(t *testing.T) {
	svc, clientRepo, _ := newAccountServiceForTest()
	clientRepo.byID[1] = &models.Client{ID: 1, Name: "Amina", Surname: "Benali", Email: "amina@example.com"}

	account, err := svc.CreateAccount(validAccountRequest(1))

	require.NoError(t, err)
	assert.Equal(t, "007780000123456789012345", account.RIB)
	assert.EqualValues(t, 1, account.ClientID)
}

func TestCreateAccountRejectsUnknownOwner(t *testing.T) {
	svc, _, _ := newAccountServiceForTest()

	_, err := svc.CreateAccount(validAccountRequest(99))

	assert.True(t, errors.Is(err, ErrClientNotFound))
}

func TestCreateAccountRejectsSoftDeletedOwner(t *testing.T) {
	svc, clientRepo, _ := newAccountServiceForTest()
	now := time.Now()
	clientRepo.byID[1] = &models.Client{ID: 1, Name: "Omar", Surname: "Tazi", Email: "omar@example.com", DeletedAt: &now}

	_, err := svc.CreateAccount(validAccountRequest(1))

	assert.True(t, errors.Is(err, ErrClientNotFound), "soft-deleted client must not own new accounts")
}

func TestCreateAccountRejectsDuplicateRIB(t *testing.T) {
	svc, clientRepo, _ := newAccountServiceForTest()
	clientRepo.byID[1] = &models.Client{ID: 1, Name: "Amina", Surname: "Benali", Email: "amina@example.com"}

	_, err := svc.CreateAccount(validAccountRequest(1))
	require.NoError(t, err)

	_, err = svc.CreateAccount(validAccountRequest(1))
	assert.True(t, errors.Is(err, ErrAccountExists))
}

func TestCreateAccountValidation(t *testing.T) {
	svc, clientRepo, _ := newAccountServiceForTest()
	clientRepo.byID[1] = &models.Client{ID: 1, Name: "Amina", Surname: "Benali", Email: "amina@example.com"}

	req := validAccountRequest(1)
	req.Type = "CRYPTO"
	_, err := svc.CreateAccount(req)
	assert.True(t, errors.Is(err, ErrAccountValidation))

	req = validAccountRequest(1)
	req.Status = "ON_FIRE"
	_, err = svc.CreateAccount(req)
	assert.True(t, errors.Is(err, ErrAccountValidation))

	req = validAccountRequest(1)
	req.RIB = "   "
	_, err = svc.CreateAccount(req)
	assert.True(t, errors.Is(err, ErrAccountValidation))
}

func TestUpdateAccountPreservesImmutableFields(t *testing.T) {
	svc, clientRepo, accountRepo := newAccountServiceForTest()
	clientRepo.byID[1] = &models.Client{ID: 1, Name: "Amina", Surname: "Benali", Email: "amina@example.com"}

	created := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	accountRepo.byRIB["RIB-1"] = &models.Account{
		RIB: "RIB-1", Type: models.AccountTypeChecking, Status: models.AccountStatusActive,
		ClientID: 1, CreatedAt: created,
	}

	req := validAccountRequest(1)
	req.RIB = "RIB-1"
	req.Status = models.AccountStatusBlocked
	updated, err := svc.UpdateAccount("RIB-1", req)

	require.NoError(t, err)
	assert.Equal(t, models.AccountStatusBlocked, updated.Status)
	assert.Equal(t, created, updated.CreatedAt)
}

func TestDeleteAccountNotFound(t *testing.T) {
	svc, _, _ := newAccountServiceForTest()

	err := svc.DeleteAccount("RIB-404")

	assert.True(t, errors.Is(err, ErrAccountNotFound))
}

func TestGetAccountsByClientIDChecksOwner(t *testing.T) {
	svc, _, _ := newAccountServiceForTest()

	_, err := svc.GetAccountsByClientID(42)

	assert.True(t, errors.Is(err, ErrClientNotFound))
}
