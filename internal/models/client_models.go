package models

import "time"

// Client represents a bank client. A non-nil DeletedAt marks the row as
// soft-deleted: it is excluded from all default reads and uniqueness checks
// and is only reachable through the explicit deleted queries.
type Client struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Surname           string     `json:"surname"`
	Email             string     `json:"email"`
	Phone             *string    `json:"phone,omitempty"`
	StreetAddress     *string    `json:"street_address,omitempty"`
	City              *string    `json:"city,omitempty"`
	State             *string    `json:"state,omitempty"`
	PostalCode        *string    `json:"postal_code,omitempty"`
	Country           *string    `json:"country,omitempty"`
	Latitude          *float64   `json:"latitude,omitempty"`
	Longitude         *float64   `json:"longitude,omitempty"`
	Region            *string    `json:"region,omitempty"`
	RegionCode        *string    `json:"region_code,omitempty"`
	ProfilePictureURL *string    `json:"profile_picture_url,omitempty"`
	DateOfBirth       *time.Time `json:"date_of_birth,omitempty"`
	Accounts          []Account  `json:"accounts,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	DeletedAt         *time.Time `json:"deleted_at,omitempty"`
}

// ClientFilter carries the optional listing filters plus pagination and
// sorting. Defaults for page/size/sort are applied at binding time; the
// service rejects out-of-range values before touching the store.
type ClientFilter struct {
	Name          *string `form:"name"`
	City          *string `form:"city"`
	Region        *string `form:"region"`
	RegionCode    *string `form:"regionCode"`
	PhonePrefix   *string `form:"phonePrefix"`
	Query         *string `form:"query"`
	AgeMin        *int    `form:"ageMin"`
	AgeMax        *int    `form:"ageMax"`
	HasAccounts   *bool   `form:"hasAccounts"`
	Page          int     `form:"page,default=0"`
	Size          int     `form:"size,default=10"`
	SortBy        string  `form:"sortBy,default=name"`
	SortDirection string  `form:"sortDirection,default=asc"`
}

// ClientPage is one page of a filtered client listing.
type ClientPage struct {
	Items         []Client `json:"items"`
	Page          int      `json:"page"`
	Size          int      `json:"size"`
	TotalElements int64    `json:"totalElements"`
	TotalPages    int      `json:"totalPages"`
}
