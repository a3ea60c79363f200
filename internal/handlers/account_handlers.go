package handlers

import (
	"errors"
	"net/http"

	"banking_backend/internal/services"
	"banking_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AccountHandler holds the account service.
type AccountHandler struct {
	accountService services.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(as services.AccountService) *AccountHandler {
	return &AccountHandler{accountService: as}
}

// CreateAccount handles the creation of a new account.
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req services.AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	account, err := h.accountService.CreateAccount(req)
	if err != nil {
		h.respondAccountError(c, err, "create")
		return
	}
	c.JSON(http.StatusCreated, account)
}

// GetAccounts lists all accounts.
func (h *AccountHandler) GetAccounts(c *gin.Context) {
	accounts, err := h.accountService.GetAccounts()
	if err != nil {
		utils.LogError(err, "GetAccounts: Error from accountService.GetAccounts")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch accounts.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": accounts})
}

// GetAccountByRIB fetches a single account.
func (h *AccountHandler) GetAccountByRIB(c *gin.Context) {
	account, err := h.accountService.GetAccountByRIB(c.Param("rib"))
	if err != nil {
		h.respondAccountError(c, err, "fetch")
		return
	}
	c.JSON(http.StatusOK, account)
}

// GetClientAccounts lists the accounts owned by one client.
func (h *AccountHandler) GetClientAccounts(c *gin.Context) {
	clientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	accounts, err := h.accountService.GetAccountsByClientID(clientID)
	if err != nil {
		h.respondAccountError(c, err, "fetch accounts for")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": accounts})
}

// UpdateAccount handles a full account update.
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	var req services.AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	account, err := h.accountService.UpdateAccount(c.Param("rib"), req)
	if err != nil {
		h.respondAccountError(c, err, "update")
		return
	}
	c.JSON(http.StatusOK, account)
}

// DeleteAccount removes an account.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	if err := h.accountService.DeleteAccount(c.Param("rib")); err != nil {
		h.respondAccountError(c, err, "delete")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}

func (h *AccountHandler) respondAccountError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrAccountNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Account not found.", err.Error()))
	case errors.Is(err, services.ErrClientNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found.", err.Error()))
	case errors.Is(err, services.ErrAccountExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Account with this RIB already exists.", err.Error()))
	case errors.Is(err, services.ErrAccountValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
	default:
		utils.LogError(err, "AccountHandler: failed to "+action+" account")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to "+action+" account.", "Internal error"))
	}
}
