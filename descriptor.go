package pagekit

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Direction defines the sort direction for the requested dataset.
type Direction string

const (
	DirectionASC  Direction = "ASC"
	DirectionDESC Direction = "DESC"
)

func (d Direction) Valid() bool {
	return d == DirectionASC || d == DirectionDESC
}

func (d Direction) ForOperator() Operator {
	switch d {
	case DirectionASC:
		return OperatorGT
	case DirectionDESC:
		return OperatorLT
	default:
		panic(fmt.Errorf("cannot map direction '%s' to operator", d))
	}
}

func (d Direction) Invert() Direction {
	switch d {
	case DirectionASC:
		return DirectionDESC
	case DirectionDESC:
		return DirectionASC
	default:
		panic(fmt.Errorf("cannot invert direction '%s'", d))
	}
}

// ParseDirection reads a caller-supplied sort order ("asc"/"desc", any case).
// The second return value is false for anything else.
func ParseDirection(s string) (Direction, bool) {
	d := Direction(strings.ToUpper(strings.TrimSpace(s)))
	return d, d.Valid()
}

// NullsPolicy controls where NULL values of a sort column land in the order.
//
// NullsDefault means the column is assumed NOT NULL: the engine emits no
// NULLS clause and builds plain comparison predicates for it. Sort terms over
// nullable columns must set an explicit policy, otherwise rows with NULLs may
// be skipped or duplicated across page boundaries.
type NullsPolicy string

const (
	NullsDefault NullsPolicy = ""
	NullsFirst   NullsPolicy = "FIRST"
	NullsLast    NullsPolicy = "LAST"
)

func (n NullsPolicy) Valid() bool {
	return n == NullsDefault || n == NullsFirst || n == NullsLast
}

func (n NullsPolicy) Invert() NullsPolicy {
	switch n {
	case NullsFirst:
		return NullsLast
	case NullsLast:
		return NullsFirst
	default:
		return NullsDefault
	}
}

// Term is a single comparison term of a sort descriptor.
type Term struct {
	Column    string
	Direction Direction
	Nulls     NullsPolicy
}

var _availableColumnNameSymbols = append([]rune("_.'`\""), lo.AlphanumericCharset...)

func (t Term) validate() error {
	if !t.Direction.Valid() {
		return fmt.Errorf("invalid sort direction '%s'", t.Direction)
	}

	if !t.Nulls.Valid() {
		return fmt.Errorf("invalid nulls policy '%s'", t.Nulls)
	}

	// Guard against SQL injection by restricting allowed characters in column names.
	if !lo.Every(_availableColumnNameSymbols, []rune(t.Column)) {
		return fmt.Errorf("sort column name contains forbidden symbols '%s'", t.Column)
	}

	return nil
}

// invert flips the term's direction. An explicit nulls policy flips with it;
// NullsDefault stays default, since the database's native null placement
// already inverts together with the direction.
func (t Term) invert() Term {
	t.Direction = t.Direction.Invert()
	t.Nulls = t.Nulls.Invert()

	return t
}

// toSQL renders "<column> <direction>" plus a NULLS clause when the policy is
// explicit. The NULLS keyword is omitted for NullsDefault so descriptors that
// only sort non-nullable columns stay portable to MySQL.
func (t Term) toSQL() string {
	if t.Nulls == NullsDefault {
		return fmt.Sprintf("%s %s", t.Column, t.Direction)
	}

	return fmt.Sprintf("%s %s NULLS %s", t.Column, t.Direction, t.Nulls)
}

// Descriptor is an ordered list of sort terms. Descriptors produced by a
// Registry always end with the row source's primary-key column, which makes
// the order total: no two rows ever compare equal, so keyset bounds are exact
// even when every row shares the leading sort value.
type Descriptor []Term

func (d Descriptor) validate() error {
	if len(d) == 0 {
		return fmt.Errorf("empty sort descriptor")
	}

	var err error
	for _, term := range d {
		err = term.validate()
		if err != nil {
			return err
		}
	}

	return nil
}

// Invert returns the descriptor with every term flipped. Used to scan
// backward pages adjacent to a prev-cursor boundary.
func (d Descriptor) Invert() Descriptor {
	return lo.Map(d, func(term Term, _ int) Term { return term.invert() })
}

// Columns returns the descriptor's column names in order.
func (d Descriptor) Columns() []string {
	return lo.Map(d, func(term Term, _ int) string { return term.Column })
}

// ToSQLSlice converts the descriptor to a slice of strings in the form
// "<column> <direction> [NULLS FIRST|LAST]" suitable for SQL query builders.
func (d Descriptor) ToSQLSlice() []string {
	ret := make([]string, 0, len(d))
	for _, term := range d {
		ret = append(ret, term.toSQL())
	}

	return ret
}

// ToSQL converts the descriptor to a single ORDER BY body.
//
// Usage:
//
//	query := fmt.Sprintf("SELECT * FROM table ORDER BY %s", descriptor.ToSQL())
func (d Descriptor) ToSQL() string {
	return strings.Join(d.ToSQLSlice(), ", ")
}

// Apply applies the ordering to a gorm query.
func (d Descriptor) Apply(db *gorm.DB) *gorm.DB {
	return db.Order(d.ToSQL())
}
