package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"banking_backend/internal/models"
	"banking_backend/internal/specification"

	"github.com/lib/pq" // For pq.Error
)

// ClientRepository defines the interface for client-related database operations.
// Default reads see live rows only; the Deleted variants are the explicit
// audit/recovery view.
type ClientRepository interface {
	CreateClient(executor SQLExecutor, client *models.Client) (int64, error)
	GetClientByID(id int64) (*models.Client, error)
	GetClientByEmail(email string) (*models.Client, error)
	GetClientByPhone(phone string) (*models.Client, error)
	FindClients(spec specification.Predicate, page, pageSize int, sortColumn, sortDirection string) ([]models.Client, int64, error)
	UpdateClient(executor SQLExecutor, client *models.Client) error
	UpdateProfilePicture(executor SQLExecutor, id int64, pictureURL string) error
	SoftDeleteClient(executor SQLExecutor, id int64) error
	RestoreClient(executor SQLExecutor, id int64) error
	GetDeletedClients() ([]models.Client, error)
	GetDeletedClientByID(id int64) (*models.Client, error)
}

type clientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new instance of ClientRepository.
func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepository{db: db}
}

const clientSelectColumns = `id, name, surname, email, phone, street_address, city, state, postal_code, country,
	          latitude, longitude, region, region_code, profile_picture_url, date_of_birth, created_at, updated_at, deleted_at`

// scanClient scans one client row. extraDest lets list queries append window
// columns such as the total count.
func scanClient(s scanner, extraDest ...interface{}) (*models.Client, error) {
	client := &models.Client{}
	var (
		phone, street, city, state, postal, country sql.NullString
		region, regionCode, picture                 sql.NullString
		lat, lng                                    sql.NullFloat64
		dob, deletedAt                              sql.NullTime
	)
	dest := []interface{}{
		&client.ID, &client.Name, &client.Surname, &client.Email, &phone, &street, &city, &state, &postal, &country,
		&lat, &lng, &region, &regionCode, &picture, &dob, &client.CreatedAt, &client.UpdatedAt, &deletedAt,
	}
	dest = append(dest, extraDest...)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	client.Phone = nullStrPtr(phone)
	client.StreetAddress = nullStrPtr(street)
	client.City = nullStrPtr(city)
	client.State = nullStrPtr(state)
	client.PostalCode = nullStrPtr(postal)
	client.Country = nullStrPtr(country)
	client.Latitude = nullFloatPtr(lat)
	client.Longitude = nullFloatPtr(lng)
	client.Region = nullStrPtr(region)
	client.RegionCode = nullStrPtr(regionCode)
	client.ProfilePictureURL = nullStrPtr(picture)
	client.DateOfBirth = nullTimePtr(dob)
	client.DeletedAt = nullTimePtr(deletedAt)
	return client, nil
}

func nullStrPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func nullFloatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	return &nf.Float64
}

func nullTimePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	return &nt.Time
}

// CreateClient inserts a new client into the database.
func (r *clientRepository) CreateClient(executor SQLExecutor, client *models.Client) (int64, error) {
	query := `INSERT INTO clients (name, surname, email, phone, street_address, city, state, postal_code, country,
	            latitude, longitude, region, region_code, profile_picture_url, date_of_birth, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	          RETURNING id`

	currentTime := time.Now()
	if client.CreatedAt.IsZero() {
		client.CreatedAt = currentTime
	}
	if client.UpdatedAt.IsZero() {
		client.UpdatedAt = currentTime
	}

	var dob sql.NullTime
	if client.DateOfBirth != nil && !client.DateOfBirth.IsZero() {
		dob = sql.NullTime{Time: *client.DateOfBirth, Valid: true}
	}

	err := executor.QueryRow(query,
		client.Name, client.Surname, client.Email, client.Phone, client.StreetAddress, client.City,
		client.State, client.PostalCode, client.Country, client.Latitude, client.Longitude,
		client.Region, client.RegionCode, client.ProfilePictureURL, dob, client.CreatedAt, client.UpdatedAt,
	).Scan(&client.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return 0, fmt.Errorf("%w: creating client: %v", ErrDatabaseError, err)
	}
	return client.ID, nil
}

// GetClientByID retrieves a live client by ID.
func (r *clientRepository) GetClientByID(id int64) (*models.Client, error) {
	query := `SELECT ` + clientSelectColumns + ` FROM clients WHERE id = $1 AND deleted_at IS NULL`
	client, err := scanClient(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting client by ID %d: %v", ErrDatabaseError, id, err)
	}
	return client, nil
}

// GetClientByEmail retrieves a live client by email. Soft-deleted rows do not
// participate in uniqueness checks, so they are filtered here as well.
func (r *clientRepository) GetClientByEmail(email string) (*models.Client, error) {
	query := `SELECT ` + clientSelectColumns + ` FROM clients WHERE email = $1 AND deleted_at IS NULL`
	client, err := scanClient(r.db.QueryRow(query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting client by email %s: %v", ErrDatabaseError, email, err)
	}
	return client, nil
}

// GetClientByPhone retrieves a live client by phone number.
func (r *clientRepository) GetClientByPhone(phone string) (*models.Client, error) {
	query := `SELECT ` + clientSelectColumns + ` FROM clients WHERE phone = $1 AND deleted_at IS NULL`
	client, err := scanClient(r.db.QueryRow(query, phone))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting client by phone %s: %v", ErrDatabaseError, phone, err)
	}
	return client, nil
}

// FindClients executes a specification-backed listing with pagination and
// sorting. The page number is zero-based. sortColumn and sortDirection must
// already be validated against the service whitelist; id ASC is always
// appended as the tie-break so paging stays stable for equal sort keys.
func (r *clientRepository) FindClients(spec specification.Predicate, page, pageSize int, sortColumn, sortDirection string) ([]models.Client, int64, error) {
	cond, args, err := buildClientCondition(spec)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT `+clientSelectColumns+`, COUNT(*) OVER() AS total_count
	          FROM clients WHERE %s ORDER BY %s %s, id ASC LIMIT $%d OFFSET $%d`,
		cond, sortColumn, sortDirection, len(args)+1, len(args)+2)
	args = append(args, pageSize, page*pageSize)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying clients: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	clients := []models.Client{}
	var totalCount int64
	for rows.Next() {
		client, err := scanClient(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning client: %v", ErrDatabaseError, err)
		}
		clients = append(clients, *client)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating client rows: %v", ErrDatabaseError, err)
	}

	// A page past the end returns no rows, so the window total is lost. Fall
	// back to a plain count with the same condition; totals stay best-effort
	// under concurrent writes.
	if len(clients) == 0 {
		countCond, countArgs, err := buildClientCondition(spec)
		if err != nil {
			return nil, 0, err
		}
		countQuery := "SELECT COUNT(*) FROM clients WHERE " + countCond
		if err := r.db.QueryRow(countQuery, countArgs...).Scan(&totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: counting clients: %v", ErrDatabaseError, err)
		}
	}

	return clients, totalCount, nil
}

// UpdateClient updates all mutable fields of an existing live client.
func (r *clientRepository) UpdateClient(executor SQLExecutor, client *models.Client) error {
	query := `UPDATE clients SET
	            name = $1, surname = $2, email = $3, phone = $4, street_address = $5, city = $6, state = $7,
	            postal_code = $8, country = $9, latitude = $10, longitude = $11, region = $12, region_code = $13,
	            profile_picture_url = $14, date_of_birth = $15, updated_at = $16
	          WHERE id = $17 AND deleted_at IS NULL`

	client.UpdatedAt = time.Now()
	var dob sql.NullTime
	if client.DateOfBirth != nil && !client.DateOfBirth.IsZero() {
		dob = sql.NullTime{Time: *client.DateOfBirth, Valid: true}
	}

	result, err := executor.Exec(query,
		client.Name, client.Surname, client.Email, client.Phone, client.StreetAddress, client.City,
		client.State, client.PostalCode, client.Country, client.Latitude, client.Longitude,
		client.Region, client.RegionCode, client.ProfilePictureURL, dob, client.UpdatedAt, client.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return fmt.Errorf("%w: updating client ID %d: %v", ErrDatabaseError, client.ID, err)
	}
	return requireRowsAffected(result, client.ID, "updating client")
}

// UpdateProfilePicture sets only the profile picture reference.
func (r *clientRepository) UpdateProfilePicture(executor SQLExecutor, id int64, pictureURL string) error {
	query := `UPDATE clients SET profile_picture_url = $1, updated_at = $2 WHERE id = $3 AND deleted_at IS NULL`
	result, err := executor.Exec(query, pictureURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: updating profile picture for client ID %d: %v", ErrDatabaseError, id, err)
	}
	return requireRowsAffected(result, id, "updating profile picture")
}

// SoftDeleteClient marks a live client as deleted.
func (r *clientRepository) SoftDeleteClient(executor SQLExecutor, id int64) error {
	query := `UPDATE clients SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND deleted_at IS NULL`
	result, err := executor.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: soft-deleting client ID %d: %v", ErrDatabaseError, id, err)
	}
	return requireRowsAffected(result, id, "soft-deleting client")
}

// RestoreClient clears the deleted marker of a soft-deleted client. The
// partial unique indexes re-admit the row, so email/phone collisions with a
// live row surface as ErrDuplicateKey.
func (r *clientRepository) RestoreClient(executor SQLExecutor, id int64) error {
	query := `UPDATE clients SET deleted_at = NULL, updated_at = $1 WHERE id = $2 AND deleted_at IS NOT NULL`
	result, err := executor.Exec(query, time.Now(), id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return fmt.Errorf("%w: restoring client ID %d: %v", ErrDatabaseError, id, err)
	}
	return requireRowsAffected(result, id, "restoring client")
}

// GetDeletedClients lists soft-deleted clients, most recently deleted first.
func (r *clientRepository) GetDeletedClients() ([]models.Client, error) {
	query := `SELECT ` + clientSelectColumns + ` FROM clients WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC, id ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying deleted clients: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning deleted client: %v", ErrDatabaseError, err)
		}
		clients = append(clients, *client)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating deleted client rows: %v", ErrDatabaseError, err)
	}
	return clients, nil
}

// GetDeletedClientByID retrieves a soft-deleted client by ID.
func (r *clientRepository) GetDeletedClientByID(id int64) (*models.Client, error) {
	query := `SELECT ` + clientSelectColumns + ` FROM clients WHERE id = $1 AND deleted_at IS NOT NULL`
	client, err := scanClient(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting deleted client by ID %d: %v", ErrDatabaseError, id, err)
	}
	return client, nil
}

func requireRowsAffected(result sql.Result, id int64, action string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for %s ID %d: %v", ErrDatabaseError, action, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
