package handlers

import (
	"errors"
	"net/http"

	"banking_backend/internal/services"
	"banking_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// UploadHandler holds the file storage service.
type UploadHandler struct {
	fileService services.FileStorageService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(fs services.FileStorageService) *UploadHandler {
	return &UploadHandler{fileService: fs}
}

// UploadProfilePicture stores an uploaded image and returns its public URL.
func (h *UploadHandler) UploadProfilePicture(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Missing file in form field 'file'.", err.Error()))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.LogError(err, "UploadProfilePicture: failed to open uploaded file")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to read uploaded file.", "Internal error"))
		return
	}
	defer file.Close()

	url, err := h.fileService.StoreProfilePicture(fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnsupportedFileType):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Unsupported file type.", err.Error()))
		case errors.Is(err, services.ErrFileTooLarge):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusRequestEntityTooLarge, utils.ErrCodeValidationFailed, "File is too large.", err.Error()))
		default:
			utils.LogError(err, "UploadProfilePicture: failed to store file")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to store file.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
