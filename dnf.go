package pagekit

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"gorm.io/gorm/clause"
)

type (
	tConjunct struct {
		Column   string
		Value    any
		Operator Operator
	}

	tDisjunct []tConjunct

	// tDNF represents the disjunctive normal form (DNF) of a logical expression.
	// Each disjunct is joined by OR, and each disjunct consists of a list of
	// conjuncts which are joined by AND. A conjunct is the value of
	// Operator(Column, Value).
	//
	// Thus:
	//
	//	DNF = X1 OR X2 ... OR Xn, where Xi = Ai1 AND Ai2 ... AND Aim.
	//	DNF = (A11 AND A12 AND A13) OR (A21 AND A22 AND A23), for n=2, m=3.
	//
	//  Where (A11 AND A12 AND A13), (A21 AND A22 AND A23) are disjuncts and
	//  A11, A12, A13, A21, A22, A23 are conjuncts.
	tDNF []tDisjunct
)

// seekDNF expands a decoded token into the keyset bound for the scan
// descriptor: the set of rows strictly after the boundary row in scan order.
//
// For a boundary [(C1, V1), (C2, V2), ... (Cn, Vn)] the expansion is the
// standard lexicographic comparison
//
//	(C1 o1 V1) OR (C1 = V1 AND C2 o2 V2) OR ...
//
// generalized for nulls policies: each position contributes zero, one or two
// strict alternatives (see strictConjuncts), each of which becomes its own
// disjunct behind the equality prefix of the preceding positions.
//
// scan must be the effective scan descriptor: for backward tokens the caller
// passes the inverted descriptor, so element operators and term directions
// always agree here.
func seekDNF(scan Descriptor, elements []Element) tDNF {
	dnf := make(tDNF, 0, len(scan))

	for i, term := range scan {
		alternatives := strictConjuncts(term, elements[i].Value)
		if len(alternatives) == 0 {
			continue
		}

		prefix := make(tDisjunct, 0, i)
		for j := 0; j < i; j++ {
			prefix = append(prefix, eqConjunct(scan[j].Column, elements[j].Value))
		}

		for _, alt := range alternatives {
			dnf = append(dnf, append(slices.Clone(prefix), alt))
		}
	}

	return dnf
}

// strictConjuncts returns the ways a row's column can sort strictly after the
// boundary value under the term's direction and nulls policy. Alternatives
// are mutually exclusive, so each can form its own DNF disjunct.
func strictConjuncts(term Term, value any) []tConjunct {
	cmp := tConjunct{Column: term.Column, Operator: term.Direction.ForOperator(), Value: value}

	switch term.Nulls {
	case NullsFirst:
		if value == nil {
			// The null group leads; everything non-null sorts after it.
			return []tConjunct{{Column: term.Column, Operator: operatorIsNotNull}}
		}

		return []tConjunct{cmp}
	case NullsLast:
		if value == nil {
			// Nothing sorts after the trailing null group on this column.
			return nil
		}

		return []tConjunct{cmp, {Column: term.Column, Operator: operatorIsNull}}
	default:
		// NullsDefault assumes a NOT NULL column. A null boundary value can
		// only come from a hand-built token; treat it like nulls-last.
		if value == nil {
			return nil
		}

		return []tConjunct{cmp}
	}
}

func eqConjunct(column string, value any) tConjunct {
	if value == nil {
		return tConjunct{Column: column, Operator: operatorIsNull}
	}

	return tConjunct{Column: column, Value: value, Operator: operatorEq}
}

// toGORMExpression converts a conjunct of the form Operator(Column, Value)
// into an SQL condition "Column Operator Value" represented as a clause.Expression.
// Null-check operators render without a placeholder.
//
// Example:
//
//	tConjunct = { Column: "id", Operator: ">", Value: "123"}
//
// Result:
//
//	"id > 123"
func (c tConjunct) toGORMExpression() clause.Expression {
	sqlClause, args := c.toSQLClause()

	vars := make([]any, 0, len(args))
	for _, arg := range args {
		vars = append(vars, arg)
	}

	return clause.Expr{
		SQL:  sqlClause,
		Vars: vars,
	}
}

// toSQLClause converts a conjunct of the form Operator(Column, Value) to
// an SQL condition of the form "Column Operator ?" with a corresponding value.
// Returns the SQL string and the placeholder values (empty for null checks).
//
// Example:
//
//	tConjunct = { Column: "id", Operator: ">", Value: 123}
//
// Result:
//
//	("id > ?", [123])
func (c tConjunct) toSQLClause() (string, []driver.Value) {
	if c.Operator.zeroArg() {
		return fmt.Sprintf("%s %s", c.Column, c.Operator), nil
	}

	return fmt.Sprintf("%s %s ?", c.Column, c.Operator), []driver.Value{parseAnyValue(c.Value)}
}

func parseAnyValue(v any) any {
	// Try parsing a value as time.Time. If it succeeds, return time.Time.
	// Otherwise return the original value.
	fnParseBytesToTimeOrValue := func(vBytes []byte) any {
		dst := time.Time{}
		err := dst.UnmarshalText(vBytes)
		if err == nil {
			return dst
		}

		return v
	}

	switch vt := v.(type) {
	case string:
		return fnParseBytesToTimeOrValue([]byte(vt))
	case []byte:
		return fnParseBytesToTimeOrValue(vt)
	case json.Number:
		// Decoded numeric literals stay exact: int64 where the literal is
		// integral, float64 otherwise.
		if i, err := vt.Int64(); err == nil {
			return i
		}
		if f, err := vt.Float64(); err == nil {
			return f
		}

		return vt.String()
	default:
		return v
	}
}

// toGORMExpression converts a disjunct (K1, K2, K3) into a gorm expression
// "K1 AND K2 AND K3" where each Ki is expanded via tConjunct.toGORMExpression.
func (d tDisjunct) toGORMExpression() clause.Expression {
	andExpressions := make([]clause.Expression, 0, len(d))
	for _, conjunct := range d {
		andExpressions = append(andExpressions, conjunct.toGORMExpression())
	}

	if len(andExpressions) == 1 {
		return andExpressions[0]
	} else if len(andExpressions) > 1 {
		return clause.And(andExpressions...)
	}

	return nil
}

// toSQLClause converts a disjunct (K1, K2, K3) into an SQL condition
// "(K1 AND K2 AND K3)" with corresponding values. Returns the SQL string and
// the list of values for placeholders.
//
// Example:
//
//	tDisjunct = {
//		{Column: "id", Operator: ">", Value: 5},
//		{Column: "name", Operator: "<", Value: "abc"}
//	}
//
// Result:
//
//	("(id > ? AND name < ?)", [5, "abc"])
func (d tDisjunct) toSQLClause() (string, []driver.Value) {
	andClauses := make([]string, 0, len(d))
	andValues := make([]driver.Value, 0, len(d))

	for _, conjunct := range d {
		andClause, andArgs := conjunct.toSQLClause()
		andClauses = append(andClauses, andClause)
		andValues = append(andValues, andArgs...)
	}

	if len(andClauses) >= 1 {
		return fmt.Sprintf("(%s)", strings.Join(andClauses, " AND ")), andValues
	}

	return "", nil
}

// toGORMExpression converts a DNF (tDNF) into a clause.Expression.
// For each disjunct it calls tDisjunct.toGORMExpression and joins disjuncts with OR.
func (d tDNF) toGORMExpression() clause.Expression {
	orExpressions := make([]clause.Expression, 0, len(d))

	for _, disjunct := range d {
		andExpressions := disjunct.toGORMExpression()
		if andExpressions == nil {
			continue
		}

		orExpressions = append(orExpressions, andExpressions)
	}

	if len(orExpressions) == 1 {
		return orExpressions[0]
	} else if len(orExpressions) > 1 {
		return clause.Or(orExpressions...)
	}

	return nil
}

// toSQLClause converts a DNF (tDNF) into an SQL condition. For each disjunct it
// calls tDisjunct.toSQLClause and joins disjuncts with OR. Returns the SQL
// string and the list of values for placeholders.
//
// Example:
//
//	tDNF = {
//		{{Column: "id", Operator: "<", Value: 10}},
//		{{Column: "id", Operator: "=", Value: 10}, {Column: "name", Operator: "<", Value: "abc"}},
//	}
//
// Result:
//
//	("((id < ?) OR (id = ? AND name < ?))", [10, 10, "abc"])
func (d tDNF) toSQLClause() (string, []driver.Value) {
	orClauses := make([]string, 0, len(d))
	values := make([]driver.Value, 0, len(d))

	for _, disjunct := range d {
		orClause, orValues := disjunct.toSQLClause()
		if orClause == "" {
			continue
		}

		orClauses = append(orClauses, orClause)
		values = append(values, orValues...)
	}

	if len(orClauses) >= 1 {
		return fmt.Sprintf("(%s)", strings.Join(orClauses, " OR ")), values
	}

	return "TRUE", nil
}
