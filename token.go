package pagekit

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Element is one (column, operator, value) condition of a cursor token.
//
// The value is the boundary row's value for the column; the operator's
// orientation relative to the descriptor's direction marks the token as a
// next-page or prev-page cursor.
type Element struct {
	Column   string   `json:"c"`
	Value    any      `json:"v"`
	Operator Operator `json:"o"`
}

// Token is a decoded cursor: one boundary row's sort-relevant values plus the
// ordinal of the page the token leads to.
//
// IMPORTANT:
// A token is only usable against a descriptor that ends in a unique column;
// Registry-built descriptors guarantee that via the tie-break term.
type Token struct {
	Elements []Element
	// Page is the 1-based ordinal of the page this token resolves to. Kept
	// inside the token so cursor-mode responses can still report a page
	// number. Tolerated when absent in older tokens (treated as 1).
	Page int
	// Backward marks a prev-page token: every element operator is inverted
	// relative to the descriptor and the scan runs in inverted order.
	Backward bool
}

// DecodeError reports a cursor token that could not be decoded against the
// requested descriptor. The Paginator never surfaces it: any DecodeError
// silently degrades the request to the first offset page.
type DecodeError struct {
	Reason string
	cause  error
}

func (e *DecodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("cannot decode cursor: %s: %v", e.Reason, e.cause)
	}

	return fmt.Sprintf("cannot decode cursor: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.cause
}

// tokenEnvelope is the wire form of a token.
type tokenEnvelope struct {
	Elements []Element `json:"e"`
	Page     int       `json:"p,omitempty"`
}

// DecodeToken parses a base64 cursor string against the CURRENTLY requested
// descriptor. Decoding is pure: it depends only on the raw token and the
// descriptor passed here, never on the descriptor that produced the token, so
// sort changes between pages surface as a DecodeError instead of a crash.
//
// An empty string decodes to (nil, nil): the start of the dataset.
func DecodeToken(raw string, d Descriptor) (*Token, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	jsonData, err := _encoder.DecodeString(raw)
	if err != nil {
		return nil, &DecodeError{Reason: "malformed transport encoding", cause: err}
	}

	// UseNumber keeps integer boundary values exact: snowflake-style int64
	// ids exceed float64's 2^53 integer range, and an id off by one shifts
	// the keyset bound.
	dec := json.NewDecoder(bytes.NewReader(jsonData))
	dec.UseNumber()

	var env tokenEnvelope
	if err = dec.Decode(&env); err != nil {
		return nil, &DecodeError{Reason: "malformed token structure", cause: err}
	}

	if len(env.Elements) != len(d) {
		return nil, &DecodeError{Reason: fmt.Sprintf(
			"token carries %d fields, requested sort requires %d", len(env.Elements), len(d),
		)}
	}

	backward := false
	for i, el := range env.Elements {
		term := d[i]

		if el.Column != term.Column {
			return nil, &DecodeError{Reason: fmt.Sprintf(
				"unexpected cursor column '%s', requested sort expects '%s'", el.Column, term.Column,
			)}
		}

		if !el.Operator.Valid() {
			return nil, &DecodeError{Reason: fmt.Sprintf("invalid cursor operator '%s'", el.Operator)}
		}

		// Orientation must be consistent across all elements: either every
		// operator follows the descriptor (next token) or every operator is
		// inverted (prev token).
		inverted := el.Operator != term.Direction.ForOperator()
		if i == 0 {
			backward = inverted
		} else if inverted != backward {
			return nil, &DecodeError{Reason: fmt.Sprintf(
				"inconsistent cursor operator '%s' for column '%s'", el.Operator, el.Column,
			)}
		}
	}

	page := env.Page
	if page < 1 {
		page = 1
	}

	return &Token{
		Elements: env.Elements,
		Page:     page,
		Backward: backward,
	}, nil
}

// String - implements fmt.Stringer. Returns the opaque transport form.
func (t *Token) String() string {
	if t.IsEmpty() {
		return ""
	}

	jTok, err := json.Marshal(tokenEnvelope{Elements: t.Elements, Page: t.Page})
	if err != nil {
		panic(fmt.Errorf("cannot marshal cursor token: %w", err))
	}

	var buf bytes.Buffer
	if err = json.Compact(&buf, jTok); err != nil {
		panic(fmt.Errorf("cannot compact cursor token: %w", err))
	}

	return _encoder.EncodeToString(buf.Bytes())
}

// IsEmpty reports whether the token carries no boundary.
func (t *Token) IsEmpty() bool {
	return t == nil || len(t.Elements) == 0
}

// ToSQLClause expands the token's boundary into a parameterized SQL predicate
// for query builders outside GORM. scan must be the effective scan
// descriptor: pass the inverted descriptor for backward tokens. An empty
// token, or a descriptor whose length does not match the token's elements,
// renders as "TRUE" (no bound).
//
// Usage:
//
//	clause, args := token.ToSQLClause(descriptor)
//	query := fmt.Sprintf("SELECT * FROM contents WHERE %s ORDER BY %s", clause, descriptor.ToSQL())
func (t *Token) ToSQLClause(scan Descriptor) (string, []driver.Value) {
	if t.IsEmpty() || len(scan) != len(t.Elements) {
		return "TRUE", nil
	}

	return seekDNF(scan, t.Elements).toSQLClause()
}

var _ fmt.Stringer = (*Token)(nil)
