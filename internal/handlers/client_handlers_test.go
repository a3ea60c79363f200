package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"banking_backend/internal/models"
	"banking_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClientService returns canned results and records the filter it was
// called with.
type fakeClientService struct {
	listPage   *models.ClientPage
	listErr    error
	lastFilter models.ClientFilter

	client    *models.Client
	clientErr error
	deleteErr error
	deleted   []models.Client
}

func (f *fakeClientService) CreateClient(req services.CreateClientRequest) (*models.Client, error) {
	return f.client, f.clientErr
}
func (f *fakeClientService) GetClientByID(clientID int64) (*models.Client, error) {
	return f.client, f.clientErr
}
func (f *fakeClientService) ListClients(filter models.ClientFilter) (*models.ClientPage, error) {
	f.lastFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listPage, nil
}
func (f *fakeClientService) UpdateClient(clientID int64, req services.CreateClientRequest) (*models.Client, error) {
	return f.client, f.clientErr
}
func (f *fakeClientService) PatchClient(clientID int64, patch services.ClientPatch) (*models.Client, error) {
	return f.client, f.clientErr
}
func (f *fakeClientService) UpdateProfilePicture(clientID int64, pictureURL string) (*models.Client, error) {
	return f.client, f.clientErr
}
func (f *fakeClientService) DeleteClient(clientID int64) error { return f.deleteErr }
func (f *fakeClientService) RestoreClient(clientID int64) (*models.Client, error) {
	return f.client, f.clientErr
}
func (f *fakeClientService) ListDeletedClients() ([]models.Client, error) {
	return f.deleted, nil
}
func (f *fakeClientService) GetDeletedClientByID(clientID int64) (*models.Client, error) {
	return f.client, f.clientErr
}

func setupClientRouter(svc services.ClientService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewClientHandler(svc)
	r := gin.New()
	r.GET("/clients", h.ListClients)
	r.POST("/clients", h.CreateClient)
	r.GET("/clients/deleted", h.ListDeletedClients)
	r.GET("/clients/:id", h.GetClientByID)
	r.DELETE("/clients/:id", h.DeleteClient)
	return r
}

func TestListClientsBindsFilterDefaults(t *testing.T) {
	svc := &fakeClientService{listPage: &models.ClientPage{Items: []models.Client{}, Size: 10}}
	router := setupClientRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, svc.lastFilter.Page)
	assert.Equal(t, 10, svc.lastFilter.Size)
	assert.Equal(t, "name", svc.lastFilter.SortBy)
	assert.Equal(t, "asc", svc.lastFilter.SortDirection)
}

func TestListClientsPassesFilterValues(t *testing.T) {
	svc := &fakeClientService{listPage: &models.ClientPage{Items: []models.Client{}}}
	router := setupClientRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/clients?city=Casablanca&ageMin=18&ageMax=30&page=2&size=5&sortBy=createdAt&sortDirection=desc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.lastFilter.City)
	assert.Equal(t, "Casablanca", *svc.lastFilter.City)
	require.NotNil(t, svc.lastFilter.AgeMin)
	assert.Equal(t, 18, *svc.lastFilter.AgeMin)
	require.NotNil(t, svc.lastFilter.AgeMax)
	assert.Equal(t, 30, *svc.lastFilter.AgeMax)
	assert.Equal(t, 2, svc.lastFilter.Page)
	assert.Equal(t, 5, svc.lastFilter.Size)
	assert.Equal(t, "createdAt", svc.lastFilter.SortBy)
	assert.Equal(t, "desc", svc.lastFilter.SortDirection)
}

func TestListClientsFilterValidationIs400(t *testing.T) {
	svc := &fakeClientService{listErr: fmt.Errorf("%w: page number cannot be negative", services.ErrFilterValidation)}
	router := setupClientRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/clients?page=-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListClientsStoreFailureIs500(t *testing.T) {
	svc := &fakeClientService{listErr: fmt.Errorf("connection refused")}
	router := setupClientRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestListClientsEmptyPageIs200(t *testing.T) {
	svc := &fakeClientService{listPage: &models.ClientPage{
		Items: []models.Client{}, Page: 0, Size: 10, TotalElements: 0, TotalPages: 0,
	}}
	router := setupClientRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var page models.ClientPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.EqualValues(t, 0, page.TotalElements)
}

func TestCreateClientMissingRequiredFieldIs400(t *testing.T) {
	svc := &fakeClientService{}
	router := setupClientRouter(svc)

	w := httptest.NewRecorder()
	body := strings.NewReader(`{"name": "Amina"}`)
	req := httptest.NewRequest(http.MethodPost, "/clients", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateClientConflictIs409(t *testing.T) {
	svc := &fakeClientService{clientErr: services.ErrEmailExists}
	router := setupClientRouter(svc)

	w := httptest.NewRecorder()
	body := strings.NewReader(`{"name": "Amina", "surname": "Benali", "email": "amina@example.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/clients", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetClientByIDBadIDIs400(t *testing.T) {
	router := setupClientRouter(&fakeClientService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/clients/abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetClientByIDNotFoundIs404(t *testing.T) {
	router := setupClientRouter(&fakeClientService{clientErr: services.ErrClientNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/clients/99", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListDeletedClientsCarriesItemsAndCount(t *testing.T) {
	now := time.Now()
	svc := &fakeClientService{deleted: []models.Client{
		{ID: 4, Name: "Omar", Surname: "Tazi", Email: "omar@example.com", DeletedAt: &now},
	}}
	router := setupClientRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/clients/deleted", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Items         []models.Client `json:"items"`
		TotalElements int             `json:"totalElements"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, 1, body.TotalElements)
	assert.NotNil(t, body.Items[0].DeletedAt)
}

func TestListDeletedClientsEmptyViewIsAnEmptyList(t *testing.T) {
	router := setupClientRouter(&fakeClientService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/clients/deleted", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"items":[]`)
	assert.Contains(t, w.Body.String(), `"totalElements":0`)
}

func TestDeleteClient(t *testing.T) {
	router := setupClientRouter(&fakeClientService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/clients/1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "deleted")
}
