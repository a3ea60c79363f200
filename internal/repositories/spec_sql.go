package repositories

import (
	"fmt"
	"strings"

	"banking_backend/internal/specification"
)

// clientColumns maps specification fields to clients table columns. Only
// whitelisted fields can reach the SQL text; values always travel as
// numbered arguments.
var clientColumns = map[specification.Field]string{
	specification.FieldName:        "name",
	specification.FieldSurname:     "surname",
	specification.FieldEmail:       "email",
	specification.FieldPhone:       "phone",
	specification.FieldCity:        "city",
	specification.FieldRegion:      "region",
	specification.FieldRegionCode:  "region_code",
	specification.FieldDateOfBirth: "date_of_birth",
}

// specSQLBuilder translates a predicate tree into a Postgres WHERE condition
// with numbered placeholders.
type specSQLBuilder struct {
	args []interface{}
}

func (b *specSQLBuilder) placeholder(value interface{}) string {
	b.args = append(b.args, value)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *specSQLBuilder) column(f specification.Field) (string, error) {
	col, ok := clientColumns[f]
	if !ok {
		return "", fmt.Errorf("%w: no column mapping for field %q", ErrDatabaseError, f)
	}
	return col, nil
}

// condition renders a predicate as a SQL boolean expression. A nil predicate
// renders as TRUE so an unfiltered listing stays a valid query.
func (b *specSQLBuilder) condition(p specification.Predicate) (string, error) {
	switch pred := p.(type) {
	case nil:
		return "TRUE", nil
	case specification.And:
		return b.joinGroup(pred.Predicates, " AND ")
	case specification.Or:
		return b.joinGroup(pred.Predicates, " OR ")
	case specification.Equals:
		col, err := b.column(pred.Field)
		if err != nil {
			return "", err
		}
		return col + " = " + b.placeholder(pred.Value), nil
	case specification.Contains:
		col, err := b.column(pred.Field)
		if err != nil {
			return "", err
		}
		return col + " ILIKE " + b.placeholder("%"+pred.Value+"%"), nil
	case specification.HasPrefix:
		col, err := b.column(pred.Field)
		if err != nil {
			return "", err
		}
		return col + " LIKE " + b.placeholder(pred.Value+"%"), nil
	case specification.DateBetween:
		col, err := b.column(pred.Field)
		if err != nil {
			return "", err
		}
		return col + " BETWEEN " + b.placeholder(pred.From) + " AND " + b.placeholder(pred.To), nil
	case specification.DateOnOrBefore:
		col, err := b.column(pred.Field)
		if err != nil {
			return "", err
		}
		return col + " <= " + b.placeholder(pred.Value), nil
	case specification.DateAfter:
		col, err := b.column(pred.Field)
		if err != nil {
			return "", err
		}
		return col + " > " + b.placeholder(pred.Value), nil
	case specification.HasAccounts:
		if pred.Value {
			return "EXISTS (SELECT 1 FROM accounts WHERE accounts.client_id = clients.id)", nil
		}
		return "NOT EXISTS (SELECT 1 FROM accounts WHERE accounts.client_id = clients.id)", nil
	case specification.NotDeleted:
		return "deleted_at IS NULL", nil
	}
	return "", fmt.Errorf("%w: unsupported predicate %T", ErrDatabaseError, p)
}

func (b *specSQLBuilder) joinGroup(predicates []specification.Predicate, sep string) (string, error) {
	if len(predicates) == 0 {
		return "TRUE", nil
	}
	parts := make([]string, 0, len(predicates))
	for _, child := range predicates {
		cond, err := b.condition(child)
		if err != nil {
			return "", err
		}
		parts = append(parts, cond)
	}
	return "(" + strings.Join(parts, sep) + ")", nil
}

// buildClientCondition renders the predicate tree into a WHERE condition and
// its ordered argument list.
func buildClientCondition(p specification.Predicate) (string, []interface{}, error) {
	b := &specSQLBuilder{}
	cond, err := b.condition(p)
	if err != nil {
		return "", nil, err
	}
	return cond, b.args, nil
}
