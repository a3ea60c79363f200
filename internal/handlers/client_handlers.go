package handlers

import (
	"errors"
	"net/http"

	"banking_backend/internal/models"
	"banking_backend/internal/services"
	"banking_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ClientHandler holds the client service.
type ClientHandler struct {
	clientService services.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(cs services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: cs}
}

// ListClients handles the filtered, paginated client listing.
func (h *ClientHandler) ListClients(c *gin.Context) {
	var filter models.ClientFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid query parameters: "+err.Error(), err.Error()))
		return
	}

	page, err := h.clientService.ListClients(filter)
	if err != nil {
		if errors.Is(err, services.ErrFilterValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
			return
		}
		utils.LogError(err, "ListClients: Error from clientService.ListClients")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch clients.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, page)
}

// CreateClient handles the creation of a new client.
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req services.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	client, err := h.clientService.CreateClient(req)
	if err != nil {
		h.respondClientError(c, err, "create")
		return
	}
	c.JSON(http.StatusCreated, client)
}

// GetClientByID handles fetching a single live client by ID.
func (h *ClientHandler) GetClientByID(c *gin.Context) {
	clientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	client, err := h.clientService.GetClientByID(clientID)
	if err != nil {
		h.respondClientError(c, err, "fetch")
		return
	}
	c.JSON(http.StatusOK, client)
}

// UpdateClient handles a full client update.
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	clientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	client, err := h.clientService.UpdateClient(clientID, req)
	if err != nil {
		h.respondClientError(c, err, "update")
		return
	}
	c.JSON(http.StatusOK, client)
}

// PatchClient handles a partial client update.
func (h *ClientHandler) PatchClient(c *gin.Context) {
	clientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var patch services.ClientPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	client, err := h.clientService.PatchClient(clientID, patch)
	if err != nil {
		h.respondClientError(c, err, "patch")
		return
	}
	c.JSON(http.StatusOK, client)
}

// UpdateProfilePicture sets the client's profile picture reference.
func (h *ClientHandler) UpdateProfilePicture(c *gin.Context) {
	clientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	pictureURL := c.Query("profilePictureUrl")
	client, err := h.clientService.UpdateProfilePicture(clientID, pictureURL)
	if err != nil {
		h.respondClientError(c, err, "update profile picture for")
		return
	}
	c.JSON(http.StatusOK, client)
}

// DeleteClient soft-deletes a client.
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	clientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.clientService.DeleteClient(clientID); err != nil {
		h.respondClientError(c, err, "delete")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}

// RestoreClient brings a soft-deleted client back.
func (h *ClientHandler) RestoreClient(c *gin.Context) {
	clientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	client, err := h.clientService.RestoreClient(clientID)
	if err != nil {
		h.respondClientError(c, err, "restore")
		return
	}
	c.JSON(http.StatusOK, client)
}

// ListDeletedClients exposes the audit/recovery view of soft-deleted clients.
// The view is intentionally unpaginated: it exists for recovery and audit, so
// the body carries the items plus their count rather than the page envelope of
// the live listing.
func (h *ClientHandler) ListDeletedClients(c *gin.Context) {
	clients, err := h.clientService.ListDeletedClients()
	if err != nil {
		utils.LogError(err, "ListDeletedClients: Error from clientService.ListDeletedClients")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch deleted clients.", "Internal error"))
		return
	}
	if clients == nil {
		clients = []models.Client{}
	}
	c.JSON(http.StatusOK, gin.H{"items": clients, "totalElements": len(clients)})
}

// GetDeletedClientByID fetches one soft-deleted client.
func (h *ClientHandler) GetDeletedClientByID(c *gin.Context) {
	clientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	client, err := h.clientService.GetDeletedClientByID(clientID)
	if err != nil {
		h.respondClientError(c, err, "fetch deleted")
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) respondClientError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrClientNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found.", err.Error()))
	case errors.Is(err, services.ErrEmailExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Email already exists.", err.Error()))
	case errors.Is(err, services.ErrPhoneExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Phone number already exists.", err.Error()))
	case errors.Is(err, services.ErrClientValidation), errors.Is(err, services.ErrDateFormat):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
	default:
		utils.LogError(err, "ClientHandler: failed to "+action+" client")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to "+action+" client.", "Internal error"))
	}
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid client ID format.", err.Error()))
		return 0, false
	}
	return id, true
}
