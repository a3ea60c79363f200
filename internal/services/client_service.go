package services

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"banking_backend/internal/models"
	"banking_backend/internal/repositories"
	"banking_backend/internal/specification"
)

// --- Custom Service Errors for Client ---
var (
	ErrClientNotFound   = errors.New("client not found")
	ErrEmailExists      = errors.New("email already exists")
	ErrPhoneExists      = errors.New("phone number already exists")
	ErrClientValidation = errors.New("client data validation error")
	ErrFilterValidation = errors.New("filter validation error")
	ErrDateFormat       = errors.New("invalid date format, please use YYYY-MM-DD")
)

// --- Client DTOs ---
type CreateClientRequest struct {
	Name              string   `json:"name" binding:"required"`
	Surname           string   `json:"surname" binding:"required"`
	Email             string   `json:"email" binding:"required"`
	Phone             *string  `json:"phone"`
	StreetAddress     *string  `json:"street_address"`
	City              *string  `json:"city"`
	State             *string  `json:"state"`
	PostalCode        *string  `json:"postal_code"`
	Country           *string  `json:"country"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	Region            *string  `json:"region"`
	RegionCode        *string  `json:"region_code"`
	ProfilePictureURL *string  `json:"profile_picture_url"`
	DateOfBirth       *string  `json:"date_of_birth"` // Format YYYY-MM-DD
}

// ClientPatch is a partial update: one optional slot per mutable field, each
// applied by direct assignment when present. Fields absent from the request
// body stay untouched.
type ClientPatch struct {
	Name              *string  `json:"name"`
	Surname           *string  `json:"surname"`
	Email             *string  `json:"email"`
	Phone             *string  `json:"phone"`
	StreetAddress     *string  `json:"street_address"`
	City              *string  `json:"city"`
	State             *string  `json:"state"`
	PostalCode        *string  `json:"postal_code"`
	Country           *string  `json:"country"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	Region            *string  `json:"region"`
	RegionCode        *string  `json:"region_code"`
	ProfilePictureURL *string  `json:"profile_picture_url"`
	DateOfBirth       *string  `json:"date_of_birth"` // Format YYYY-MM-DD
}

// clientSortFields whitelists the accepted sortBy values and maps them to
// columns. Anything else is a validation error, not a store error.
var clientSortFields = map[string]string{
	"id":          "id",
	"name":        "name",
	"surname":     "surname",
	"email":       "email",
	"city":        "city",
	"region":      "region",
	"regionCode":  "region_code",
	"dateOfBirth": "date_of_birth",
	"createdAt":   "created_at",
}

// --- ClientService Interface ---
type ClientService interface {
	CreateClient(req CreateClientRequest) (*models.Client, error)
	GetClientByID(clientID int64) (*models.Client, error)
	ListClients(filter models.ClientFilter) (*models.ClientPage, error)
	UpdateClient(clientID int64, req CreateClientRequest) (*models.Client, error)
	PatchClient(clientID int64, patch ClientPatch) (*models.Client, error)
	UpdateProfilePicture(clientID int64, pictureURL string) (*models.Client, error)
	DeleteClient(clientID int64) error
	RestoreClient(clientID int64) (*models.Client, error)
	ListDeletedClients() ([]models.Client, error)
	GetDeletedClientByID(clientID int64) (*models.Client, error)
}

// --- clientService Implementation ---
type clientService struct {
	clientRepo  repositories.ClientRepository
	accountRepo repositories.AccountRepository
	db          *sql.DB

	// inTx runs fn inside one transaction, committing on nil and rolling back
	// on error. It is a field so multi-repository units stay observable in
	// tests without a live database.
	inTx func(fn func(tx repositories.SQLExecutor) error) error
}

// NewClientService creates a new instance of ClientService.
func NewClientService(clientRepo repositories.ClientRepository, accountRepo repositories.AccountRepository, db *sql.DB) ClientService {
	s := &clientService{
		clientRepo:  clientRepo,
		accountRepo: accountRepo,
		db:          db,
	}
	s.inTx = s.runInTransaction
	return s
}

func (s *clientService) runInTransaction(fn func(tx repositories.SQLExecutor) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// ListClients validates the filter, builds the specification and executes the
// paginated query. The soft-delete guard is ANDed in here, at the executor
// boundary, so callers cannot forget it. Validation failures never reach the
// store and are distinguishable from an empty result.
func (s *clientService) ListClients(filter models.ClientFilter) (*models.ClientPage, error) {
	sortColumn, sortDirection, err := validateClientFilter(filter)
	if err != nil {
		return nil, err
	}

	spec := specification.AllOf(
		specification.NotDeleted{},
		specification.WithName(strDeref(filter.Name)),
		specification.WithCity(strDeref(filter.City)),
		specification.WithRegion(strDeref(filter.Region)),
		specification.WithRegionCode(strDeref(filter.RegionCode)),
		specification.WithPhonePrefix(strDeref(filter.PhonePrefix)),
		specification.WithSearchQuery(strDeref(filter.Query)),
		specification.WithAgeRange(filter.AgeMin, filter.AgeMax),
		specification.WithAccounts(filter.HasAccounts),
	)

	items, total, err := s.clientRepo.FindClients(spec, filter.Page, filter.Size, sortColumn, sortDirection)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	totalPages := int((total + int64(filter.Size) - 1) / int64(filter.Size))
	return &models.ClientPage{
		Items:         items,
		Page:          filter.Page,
		Size:          filter.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

func validateClientFilter(filter models.ClientFilter) (sortColumn, sortDirection string, err error) {
	if filter.Page < 0 {
		return "", "", fmt.Errorf("%w: page number cannot be negative", ErrFilterValidation)
	}
	if filter.Size < 1 {
		return "", "", fmt.Errorf("%w: page size must be greater than 0", ErrFilterValidation)
	}
	if filter.AgeMin != nil && *filter.AgeMin < 0 {
		return "", "", fmt.Errorf("%w: minimum age cannot be negative", ErrFilterValidation)
	}
	if filter.AgeMax != nil && *filter.AgeMax < 0 {
		return "", "", fmt.Errorf("%w: maximum age cannot be negative", ErrFilterValidation)
	}
	if filter.AgeMin != nil && filter.AgeMax != nil && *filter.AgeMin > *filter.AgeMax {
		return "", "", fmt.Errorf("%w: minimum age cannot be greater than maximum age", ErrFilterValidation)
	}

	column, ok := clientSortFields[filter.SortBy]
	if !ok {
		return "", "", fmt.Errorf("%w: unknown sort field %q", ErrFilterValidation, filter.SortBy)
	}
	switch strings.ToLower(filter.SortDirection) {
	case "asc":
		sortDirection = "ASC"
	case "desc":
		sortDirection = "DESC"
	default:
		return "", "", fmt.Errorf("%w: sort direction must be asc or desc", ErrFilterValidation)
	}
	return column, sortDirection, nil
}

func (s *clientService) CreateClient(req CreateClientRequest) (*models.Client, error) {
	if err := s.validateClientData(req.Name, req.Surname, req.Email, req.Phone, 0); err != nil {
		return nil, err
	}
	dob, err := parseDateOfBirth(req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	client := &models.Client{
		Name:              strings.TrimSpace(req.Name),
		Surname:           strings.TrimSpace(req.Surname),
		Email:             strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:             req.Phone,
		StreetAddress:     req.StreetAddress,
		City:              req.City,
		State:             req.State,
		PostalCode:        req.PostalCode,
		Country:           req.Country,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		Region:            req.Region,
		RegionCode:        req.RegionCode,
		ProfilePictureURL: req.ProfilePictureURL,
		DateOfBirth:       dob,
	}

	id, err := s.clientRepo.CreateClient(s.db, client)
	if err != nil {
		return nil, s.mapDuplicateError(err, "failed to create client")
	}
	return s.GetClientByID(id)
}

// GetClientByID returns a live client with its accounts attached.
func (s *clientService) GetClientByID(clientID int64) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByID(clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by ID: %w", err)
	}
	accounts, err := s.accountRepo.GetAccountsByClientID(clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts for client ID %d: %w", clientID, err)
	}
	client.Accounts = accounts
	return client, nil
}

func (s *clientService) UpdateClient(clientID int64, req CreateClientRequest) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByID(clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to find client for update: %w", err)
	}

	if err := s.validateClientData(req.Name, req.Surname, req.Email, req.Phone, clientID); err != nil {
		return nil, err
	}
	dob, err := parseDateOfBirth(req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	client.Name = strings.TrimSpace(req.Name)
	client.Surname = strings.TrimSpace(req.Surname)
	client.Email = strings.ToLower(strings.TrimSpace(req.Email))
	client.Phone = req.Phone
	client.StreetAddress = req.StreetAddress
	client.City = req.City
	client.State = req.State
	client.PostalCode = req.PostalCode
	client.Country = req.Country
	client.Latitude = req.Latitude
	client.Longitude = req.Longitude
	client.Region = req.Region
	client.RegionCode = req.RegionCode
	client.ProfilePictureURL = req.ProfilePictureURL
	client.DateOfBirth = dob

	if err := s.clientRepo.UpdateClient(s.db, client); err != nil {
		return nil, s.mapDuplicateError(err, "failed to update client")
	}
	return s.GetClientByID(clientID)
}

// PatchClient applies a partial update. Only fields present in the patch are
// assigned; validation runs against the resulting state.
func (s *clientService) PatchClient(clientID int64, patch ClientPatch) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByID(clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to find client for patch: %w", err)
	}

	if patch.Name != nil {
		client.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Surname != nil {
		client.Surname = strings.TrimSpace(*patch.Surname)
	}
	if patch.Email != nil {
		client.Email = strings.ToLower(strings.TrimSpace(*patch.Email))
	}
	if patch.Phone != nil {
		client.Phone = patch.Phone
	}
	if patch.StreetAddress != nil {
		client.StreetAddress = patch.StreetAddress
	}
	if patch.City != nil {
		client.City = patch.City
	}
	if patch.State != nil {
		client.State = patch.State
	}
	if patch.PostalCode != nil {
		client.PostalCode = patch.PostalCode
	}
	if patch.Country != nil {
		client.Country = patch.Country
	}
	if patch.Latitude != nil {
		client.Latitude = patch.Latitude
	}
	if patch.Longitude != nil {
		client.Longitude = patch.Longitude
	}
	if patch.Region != nil {
		client.Region = patch.Region
	}
	if patch.RegionCode != nil {
		client.RegionCode = patch.RegionCode
	}
	if patch.ProfilePictureURL != nil {
		client.ProfilePictureURL = patch.ProfilePictureURL
	}
	if patch.DateOfBirth != nil {
		dob, err := parseDateOfBirth(patch.DateOfBirth)
		if err != nil {
			return nil, err
		}
		client.DateOfBirth = dob
	}

	if err := s.validateClientData(client.Name, client.Surname, client.Email, client.Phone, clientID); err != nil {
		return nil, err
	}
	if err := s.clientRepo.UpdateClient(s.db, client); err != nil {
		return nil, s.mapDuplicateError(err, "failed to patch client")
	}
	return s.GetClientByID(clientID)
}

func (s *clientService) UpdateProfilePicture(clientID int64, pictureURL string) (*models.Client, error) {
	if strings.TrimSpace(pictureURL) == "" {
		return nil, fmt.Errorf("%w: profile picture URL cannot be empty", ErrClientValidation)
	}
	err := s.clientRepo.UpdateProfilePicture(s.db, clientID, pictureURL)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to update profile picture: %w", err)
	}
	return s.GetClientByID(clientID)
}

// DeleteClient soft-deletes a client and removes its accounts in the same
// transaction, so the aggregate disappears as a whole or not at all.
func (s *clientService) DeleteClient(clientID int64) error {
	err := s.inTx(func(tx repositories.SQLExecutor) error {
		if err := s.clientRepo.SoftDeleteClient(tx, clientID); err != nil {
			return err
		}
		return s.accountRepo.DeleteAccountsByClientID(tx, clientID)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}

// RestoreClient brings a soft-deleted client back into the live set.
func (s *clientService) RestoreClient(clientID int64) (*models.Client, error) {
	err := s.clientRepo.RestoreClient(s.db, clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to restore client: %w", err)
	}
	return s.GetClientByID(clientID)
}

func (s *clientService) ListDeletedClients() ([]models.Client, error) {
	clients, err := s.clientRepo.GetDeletedClients()
	if err != nil {
		return nil, fmt.Errorf("failed to list deleted clients: %w", err)
	}
	return clients, nil
}

func (s *clientService) GetDeletedClientByID(clientID int64) (*models.Client, error) {
	client, err := s.clientRepo.GetDeletedClientByID(clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get deleted client by ID: %w", err)
	}
	return client, nil
}

func (s *clientService) validateClientData(name, surname, email string, phone *string, clientID int64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrClientValidation)
	}
	if strings.TrimSpace(surname) == "" {
		return fmt.Errorf("%w: surname cannot be empty", ErrClientValidation)
	}
	em := strings.ToLower(strings.TrimSpace(email))
	if em == "" {
		return fmt.Errorf("%w: email cannot be empty", ErrClientValidation)
	}
	if !emailRegex.MatchString(em) {
		return fmt.Errorf("%w: email format is invalid", ErrClientValidation)
	}

	// Uniqueness checks run against live rows only; soft-deleted rows do not
	// block re-use of an email or phone.
	existing, err := s.clientRepo.GetClientByEmail(em)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if existing != nil && existing.ID != clientID {
		return ErrEmailExists
	}

	if phone != nil && strings.TrimSpace(*phone) != "" {
		existing, err := s.clientRepo.GetClientByPhone(strings.TrimSpace(*phone))
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("failed to check phone uniqueness: %w", err)
		}
		if existing != nil && existing.ID != clientID {
			return ErrPhoneExists
		}
	}
	return nil
}

func (s *clientService) mapDuplicateError(err error, context string) error {
	if errors.Is(err, repositories.ErrDuplicateKey) {
		if strings.Contains(err.Error(), "phone") {
			return ErrPhoneExists
		}
		return ErrEmailExists
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrClientNotFound
	}
	return fmt.Errorf("%s: %w", context, err)
}

func parseDateOfBirth(dobStr *string) (*time.Time, error) {
	if dobStr == nil || strings.TrimSpace(*dobStr) == "" {
		return nil, nil
	}
	dob, err := time.Parse("2006-01-02", *dobStr)
	if err != nil {
		return nil, ErrDateFormat
	}
	if dob.After(time.Now()) {
		return nil, fmt.Errorf("%w: date of birth cannot be in the future", ErrClientValidation)
	}
	return &dob, nil
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
