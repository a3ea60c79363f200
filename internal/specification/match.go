package specification

import (
	"strings"
	"time"

	"banking_backend/internal/models"
)

// Matches evaluates a predicate tree against a client in memory. A nil
// predicate matches everything. String predicates on unset optional fields do
// not match; date predicates on a missing date of birth do not match.
func Matches(p Predicate, c *models.Client) bool {
	switch pred := p.(type) {
	case nil:
		return true
	case And:
		for _, child := range pred.Predicates {
			if !Matches(child, c) {
				return false
			}
		}
		return true
	case Or:
		for _, child := range pred.Predicates {
			if Matches(child, c) {
				return true
			}
		}
		return false
	case Equals:
		v, ok := fieldValue(c, pred.Field)
		return ok && v == pred.Value
	case Contains:
		v, ok := fieldValue(c, pred.Field)
		return ok && strings.Contains(strings.ToLower(v), strings.ToLower(pred.Value))
	case HasPrefix:
		v, ok := fieldValue(c, pred.Field)
		return ok && strings.HasPrefix(v, pred.Value)
	case DateBetween:
		d, ok := dateValue(c, pred.Field)
		return ok && !d.Before(pred.From) && !d.After(pred.To)
	case DateOnOrBefore:
		d, ok := dateValue(c, pred.Field)
		return ok && !d.After(pred.Value)
	case DateAfter:
		d, ok := dateValue(c, pred.Field)
		return ok && d.After(pred.Value)
	case HasAccounts:
		return (len(c.Accounts) > 0) == pred.Value
	case NotDeleted:
		return c.DeletedAt == nil
	}
	return false
}

func fieldValue(c *models.Client, f Field) (string, bool) {
	switch f {
	case FieldName:
		return c.Name, true
	case FieldSurname:
		return c.Surname, true
	case FieldEmail:
		return c.Email, true
	case FieldPhone:
		return deref(c.Phone)
	case FieldCity:
		return deref(c.City)
	case FieldRegion:
		return deref(c.Region)
	case FieldRegionCode:
		return deref(c.RegionCode)
	}
	return "", false
}

func dateValue(c *models.Client, f Field) (time.Time, bool) {
	if f != FieldDateOfBirth || c.DateOfBirth == nil {
		return time.Time{}, false
	}
	return truncateToDate(*c.DateOfBirth), true
}

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}
