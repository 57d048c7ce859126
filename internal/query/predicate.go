// Package query turns filter widget selections into typed predicates over listings.
package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/codr1/airbnbviz/internal/models"
)

// Op identifies the kind of a column constraint.
type Op int

const (
	OpEquals Op = iota
	OpMemberOf
	OpGreaterOrEqual
	OpLessOrEqual
)

func (o Op) String() string {
	switch o {
	case OpEquals:
		return "=="
	case OpMemberOf:
		return "in"
	case OpGreaterOrEqual:
		return ">="
	case OpLessOrEqual:
		return "<="
	default:
		return "?"
	}
}

// Constraint is a single condition on one listing column. Text is used by
// OpEquals, Values by OpMemberOf and Number by the range operators.
type Constraint struct {
	Column string
	Op     Op
	Text   string
	Values []string
	Number float64
}

// Equals constrains a string column to a single value.
func Equals(column, value string) Constraint {
	return Constraint{Column: column, Op: OpEquals, Text: value}
}

// MemberOf constrains a string column to one of values.
func MemberOf(column string, values ...string) Constraint {
	copied := make([]string, len(values))
	copy(copied, values)
	return Constraint{Column: column, Op: OpMemberOf, Values: copied}
}

// GreaterOrEqual constrains a numeric column to >= bound.
func GreaterOrEqual(column string, bound float64) Constraint {
	return Constraint{Column: column, Op: OpGreaterOrEqual, Number: bound}
}

// LessOrEqual constrains a numeric column to <= bound.
func LessOrEqual(column string, bound float64) Constraint {
	return Constraint{Column: column, Op: OpLessOrEqual, Number: bound}
}

// Match reports whether listing satisfies the constraint. Missing values and
// unknown columns never match.
func (c Constraint) Match(listing models.Listing) bool {
	switch c.Op {
	case OpEquals:
		value, ok := listing.Text(c.Column)
		return ok && value == c.Text
	case OpMemberOf:
		value, ok := listing.Text(c.Column)
		if !ok {
			return false
		}
		for _, candidate := range c.Values {
			if candidate == value {
				return true
			}
		}
		return false
	case OpGreaterOrEqual:
		value, ok := listing.Number(c.Column)
		return ok && value >= c.Number
	case OpLessOrEqual:
		value, ok := listing.Number(c.Column)
		return ok && value <= c.Number
	default:
		return false
	}
}

func (c Constraint) String() string {
	switch c.Op {
	case OpEquals:
		return fmt.Sprintf("%s == %q", c.Column, c.Text)
	case OpMemberOf:
		quoted := make([]string, 0, len(c.Values))
		for _, value := range c.Values {
			quoted = append(quoted, strconv.Quote(value))
		}
		return fmt.Sprintf("%s in [%s]", c.Column, strings.Join(quoted, ", "))
	default:
		return fmt.Sprintf("%s %s %s", c.Column, c.Op, strconv.FormatFloat(c.Number, 'f', -1, 64))
	}
}

// Predicate is a conjunction of constraints. The zero value matches every listing.
type Predicate struct {
	constraints []Constraint
}

// And returns a predicate requiring all constraints.
func And(constraints ...Constraint) Predicate {
	copied := make([]Constraint, len(constraints))
	copy(copied, constraints)
	return Predicate{constraints: copied}
}

// MatchAll returns the predicate without constraints.
func MatchAll() Predicate {
	return Predicate{}
}

// Constraints returns a copy of the predicate's constraints.
func (p Predicate) Constraints() []Constraint {
	copied := make([]Constraint, len(p.constraints))
	copy(copied, p.constraints)
	return copied
}

func (p Predicate) Match(listing models.Listing) bool {
	for _, constraint := range p.constraints {
		if !constraint.Match(listing) {
			return false
		}
	}
	return true
}

func (p Predicate) String() string {
	if len(p.constraints) == 0 {
		return "true"
	}
	parts := make([]string, 0, len(p.constraints))
	for _, constraint := range p.constraints {
		parts = append(parts, constraint.String())
	}
	return strings.Join(parts, " & ")
}

// Build converts a filter selection into a predicate. "All" and an empty room
// type set add no constraint; the price bounds are always present. Inverted
// price bounds are kept as-is and match nothing.
func Build(selection models.FilterSelection) Predicate {
	constraints := make([]Constraint, 0, 5)
	if selection.Country != models.AllOption {
		constraints = append(constraints, Equals(models.ColumnCountry, selection.Country))
	}
	if selection.PropertyType != models.AllOption {
		constraints = append(constraints, Equals(models.ColumnPropertyType, selection.PropertyType))
	}
	if len(selection.RoomTypes) > 0 {
		constraints = append(constraints, MemberOf(models.ColumnRoomType, selection.RoomTypes...))
	}
	constraints = append(constraints,
		GreaterOrEqual(models.ColumnPrice, selection.PriceMin),
		LessOrEqual(models.ColumnPrice, selection.PriceMax),
	)
	return Predicate{constraints: constraints}
}

// Filter returns the listings matching p in their original order. rows is not
// modified.
func Filter(rows []models.Listing, p Predicate) []models.Listing {
	filtered := make([]models.Listing, 0, len(rows))
	for _, row := range rows {
		if p.Match(row) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
