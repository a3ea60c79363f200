package specification

import (
	"strings"
	"time"
)

// Field identifies a client attribute a predicate can constrain. The values
// double as the column names the Postgres repository translates to.
type Field string

const (
	FieldName        Field = "name"
	FieldSurname     Field = "surname"
	FieldEmail       Field = "email"
	FieldPhone       Field = "phone"
	FieldCity        Field = "city"
	FieldRegion      Field = "region"
	FieldRegionCode  Field = "region_code"
	FieldDateOfBirth Field = "date_of_birth"
)

// Predicate is a plain-data boolean condition over client attributes. A nil
// Predicate is the identity: it matches everything and is skipped when
// combining, so absent filter fields contribute nothing. Store adapters
// translate the tree into their native query language; Matches evaluates it
// in memory.
type Predicate interface {
	isPredicate()
}

// And matches when every child predicate matches.
type And struct {
	Predicates []Predicate
}

// Or matches when at least one child predicate matches.
type Or struct {
	Predicates []Predicate
}

// Equals is an exact, case-sensitive equality on a string field.
type Equals struct {
	Field Field
	Value string
}

// Contains is a case-insensitive substring match on a string field.
type Contains struct {
	Field Field
	Value string
}

// HasPrefix is a raw, case-sensitive prefix match on a string field.
type HasPrefix struct {
	Field Field
	Value string
}

// DateBetween matches dates in [From, To], inclusive on both ends.
type DateBetween struct {
	Field    Field
	From, To time.Time
}

// DateOnOrBefore matches dates <= Value.
type DateOnOrBefore struct {
	Field Field
	Value time.Time
}

// DateAfter matches dates strictly after Value.
type DateAfter struct {
	Field Field
	Value time.Time
}

// HasAccounts matches clients that own at least one account (true) or none
// (false).
type HasAccounts struct {
	Value bool
}

// NotDeleted matches rows whose deleted-at timestamp is unset. The query
// executor ANDs it into every listing; callers never supply it themselves.
type NotDeleted struct{}

func (And) isPredicate()            {}
func (Or) isPredicate()             {}
func (Equals) isPredicate()         {}
func (Contains) isPredicate()       {}
func (HasPrefix) isPredicate()      {}
func (DateBetween) isPredicate()    {}
func (DateOnOrBefore) isPredicate() {}
func (DateAfter) isPredicate()      {}
func (HasAccounts) isPredicate()    {}
func (NotDeleted) isPredicate()     {}

// AllOf conjoins the given predicates, skipping nil entries. An empty
// conjunction is the identity and is returned as nil.
func AllOf(predicates ...Predicate) Predicate {
	kept := make([]Predicate, 0, len(predicates))
	for _, p := range predicates {
		if p != nil {
			kept = append(kept, p)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return And{Predicates: kept}
}

// AnyOf disjoins the given predicates, skipping nil entries.
func AnyOf(predicates ...Predicate) Predicate {
	kept := make([]Predicate, 0, len(predicates))
	for _, p := range predicates {
		if p != nil {
			kept = append(kept, p)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return Or{Predicates: kept}
}

// WithName matches clients whose name contains the given substring,
// case-insensitively. Blank input means no constraint.
func WithName(name string) Predicate {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	return Contains{Field: FieldName, Value: name}
}

// WithCity matches clients in exactly the given city.
func WithCity(city string) Predicate {
	if strings.TrimSpace(city) == "" {
		return nil
	}
	return Equals{Field: FieldCity, Value: city}
}

// WithRegion matches clients in exactly the given region.
func WithRegion(region string) Predicate {
	if strings.TrimSpace(region) == "" {
		return nil
	}
	return Equals{Field: FieldRegion, Value: region}
}

// WithRegionCode matches clients with exactly the given region code.
func WithRegionCode(regionCode string) Predicate {
	if strings.TrimSpace(regionCode) == "" {
		return nil
	}
	return Equals{Field: FieldRegionCode, Value: regionCode}
}

// WithPhonePrefix matches clients whose phone number starts with the given
// raw prefix.
func WithPhonePrefix(prefix string) Predicate {
	if strings.TrimSpace(prefix) == "" {
		return nil
	}
	return HasPrefix{Field: FieldPhone, Value: prefix}
}

// WithSearchQuery matches clients where any of name, email, city or region
// contains the query, case-insensitively.
func WithSearchQuery(query string) Predicate {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	return Or{Predicates: []Predicate{
		Contains{Field: FieldName, Value: query},
		Contains{Field: FieldEmail, Value: query},
		Contains{Field: FieldCity, Value: query},
		Contains{Field: FieldRegion, Value: query},
	}}
}

// WithAccounts constrains account ownership. A nil input means no constraint.
func WithAccounts(hasAccounts *bool) Predicate {
	if hasAccounts == nil {
		return nil
	}
	return HasAccounts{Value: *hasAccounts}
}

// WithAgeRange derives a date-of-birth window from the requested age bounds,
// evaluated against today's date. A person is "age A" for the whole year
// between their A-th and (A+1)-th birthday, hence the max+1 arithmetic on the
// lower boundary. The boundary comparisons are intentionally asymmetric
// between the both-bounds and single-bound cases; changing them shifts
// matches at exact birthdays.
func WithAgeRange(ageMin, ageMax *int) Predicate {
	return withAgeRangeAt(ageMin, ageMax, time.Now())
}

func withAgeRangeAt(ageMin, ageMax *int, now time.Time) Predicate {
	if ageMin == nil && ageMax == nil {
		return nil
	}
	today := truncateToDate(now)
	switch {
	case ageMin != nil && ageMax != nil:
		return DateBetween{
			Field: FieldDateOfBirth,
			From:  today.AddDate(-(*ageMax + 1), 0, 0),
			To:    today.AddDate(-*ageMin, 0, 0),
		}
	case ageMin != nil:
		return DateOnOrBefore{Field: FieldDateOfBirth, Value: today.AddDate(-*ageMin, 0, 0)}
	default:
		return DateAfter{Field: FieldDateOfBirth, Value: today.AddDate(-(*ageMax + 1), 0, 0)}
	}
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
