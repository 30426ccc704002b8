package pagekit

import (
	"database/sql/driver"
	"testing"
	"time"

	"gorm.io/gorm/clause"
)

func Test_tConjunct_toExpression(t *testing.T) {
	timeNow := time.Now().UTC()
	timeNowStr, _ := timeNow.MarshalText()

	tests := []struct {
		name     string
		conjunct tConjunct
		wantSQL  string
		wantVars []interface{}
	}{
		{
			name:     "string less than",
			conjunct: tConjunct{Column: "title", Operator: OperatorLT, Value: "abc"},
			wantSQL:  "title < ?",
			wantVars: []interface{}{"abc"},
		},
		{
			name:     "timestamp greater than",
			conjunct: tConjunct{Column: "created_at", Operator: OperatorGT, Value: timeNow},
			wantSQL:  "created_at > ?",
			wantVars: []interface{}{timeNow},
		},
		{
			name:     "timestamp string should convert to timestamp",
			conjunct: tConjunct{Column: "created_at", Operator: OperatorGT, Value: timeNowStr},
			wantSQL:  "created_at > ?",
			wantVars: []interface{}{timeNow},
		},
		{
			name:     "integer less than",
			conjunct: tConjunct{Column: "id", Operator: OperatorLT, Value: 10},
			wantSQL:  "id < ?",
			wantVars: []interface{}{10},
		},
		{
			name:     "null check takes no placeholder",
			conjunct: tConjunct{Column: "rating", Operator: operatorIsNull},
			wantSQL:  "rating IS NULL",
			wantVars: nil,
		},
		{
			name:     "not-null check takes no placeholder",
			conjunct: tConjunct{Column: "rating", Operator: operatorIsNotNull},
			wantSQL:  "rating IS NOT NULL",
			wantVars: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := tt.conjunct.toGORMExpression()
			clauseExpr := expr.(clause.Expr)

			if clauseExpr.SQL != tt.wantSQL {
				t.Errorf("unexpected SQL: got %s, want %s", clauseExpr.SQL, tt.wantSQL)
			}

			if len(clauseExpr.Vars) != len(tt.wantVars) {
				t.Errorf("unexpected vars length: got %d, want %d", len(clauseExpr.Vars), len(tt.wantVars))
			}

			for i, wantVar := range tt.wantVars {
				if clauseExpr.Vars[i] != wantVar {
					t.Errorf("unexpected var[%d]: got %v, want %v", i, clauseExpr.Vars[i], wantVar)
				}
			}
		})
	}
}

func Test_tDisjunct_toSQLClause(t *testing.T) {
	timeNow := time.Now().UTC()
	timeNowStr, _ := timeNow.MarshalText()

	tests := []struct {
		name     string
		disjunct tDisjunct
		wantSQL  string
		wantVals []driver.Value
	}{
		{
			name: "single conjunct",
			disjunct: tDisjunct{
				{Column: "id", Operator: OperatorGT, Value: 5},
			},
			wantSQL:  "(id > ?)",
			wantVals: []driver.Value{5},
		},
		{
			name: "multiple conjuncts",
			disjunct: tDisjunct{
				{Column: "id", Operator: OperatorGT, Value: 5},
				{Column: "title", Operator: OperatorLT, Value: "abc"},
			},
			wantSQL:  "(id > ? AND title < ?)",
			wantVals: []driver.Value{5, "abc"},
		},
		{
			name: "null check inside a disjunct",
			disjunct: tDisjunct{
				{Column: "rating", Operator: operatorIsNull},
				{Column: "id", Operator: OperatorLT, Value: 9},
			},
			wantSQL:  "(rating IS NULL AND id < ?)",
			wantVals: []driver.Value{9},
		},
		{
			name: "timestamp conversion",
			disjunct: tDisjunct{
				{Column: "created_at", Operator: OperatorGT, Value: timeNowStr},
				{Column: "updated_at", Operator: OperatorLT, Value: timeNow},
			},
			wantSQL:  "(created_at > ? AND updated_at < ?)",
			wantVals: []driver.Value{timeNow, timeNow},
		},
		{
			name:     "empty disjunct",
			disjunct: tDisjunct{},
			wantSQL:  "",
			wantVals: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSQL, gotVals := tt.disjunct.toSQLClause()

			if gotSQL != tt.wantSQL {
				t.Errorf("toSQLClause() SQL = %v, want %v", gotSQL, tt.wantSQL)
			}

			if len(gotVals) != len(tt.wantVals) {
				t.Errorf("toSQLClause() Vals length = %v, want %v", len(gotVals), len(tt.wantVals))
			}

			for i, wantVal := range tt.wantVals {
				if gotVals[i] != wantVal {
					t.Errorf("toSQLClause() Vals[%d] = %v, want %v", i, gotVals[i], wantVal)
				}
			}
		})
	}
}

func Test_tDNF_toSQLClause(t *testing.T) {
	tests := []struct {
		name     string
		dnf      tDNF
		wantSQL  string
		wantVals []driver.Value
	}{
		{
			name: "single disjunct with single conjunct",
			dnf: tDNF{
				{{Column: "id", Operator: OperatorGT, Value: 5}},
			},
			wantSQL:  "((id > ?))",
			wantVals: []driver.Value{5},
		},
		{
			name: "multiple disjuncts",
			dnf: tDNF{
				{
					{Column: "id", Operator: OperatorGT, Value: 5},
					{Column: "title", Operator: OperatorLT, Value: "abc"},
				},
				{
					{Column: "id", Operator: OperatorGT, Value: 10},
				},
			},
			wantSQL:  "((id > ? AND title < ?) OR (id > ?))",
			wantVals: []driver.Value{5, "abc", 10},
		},
		{
			name:     "empty DNF",
			dnf:      tDNF{},
			wantSQL:  "TRUE",
			wantVals: nil,
		},
		{
			name: "DNF with empty disjuncts",
			dnf: tDNF{
				{},
				{{Column: "id", Operator: OperatorGT, Value: 5}},
				{},
			},
			wantSQL:  "((id > ?))",
			wantVals: []driver.Value{5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSQL, gotVals := tt.dnf.toSQLClause()

			if gotSQL != tt.wantSQL {
				t.Errorf("toSQLClause() SQL = %v, want %v", gotSQL, tt.wantSQL)
			}

			if len(gotVals) != len(tt.wantVals) {
				t.Errorf("toSQLClause() Vals length = %v, want %v", len(gotVals), len(tt.wantVals))
			}

			for i, wantVal := range tt.wantVals {
				if gotVals[i] != wantVal {
					t.Errorf("toSQLClause() Vals[%d] = %v, want %v", i, gotVals[i], wantVal)
				}
			}
		})
	}
}

func Test_seekDNF(t *testing.T) {
	tests := []struct {
		name     string
		scan     Descriptor
		elements []Element
		wantSQL  string
		wantVals []driver.Value
	}{
		{
			name: "two columns, default nulls",
			scan: Descriptor{
				{Column: "created_at", Direction: DirectionDESC},
				{Column: "id", Direction: DirectionDESC},
			},
			elements: []Element{
				{Column: "created_at", Value: "2024-01-02T00:00:00Z", Operator: OperatorLT},
				{Column: "id", Value: 20, Operator: OperatorLT},
			},
			wantSQL:  "((created_at < ?) OR (created_at = ? AND id < ?))",
			wantVals: []driver.Value{mustTime("2024-01-02T00:00:00Z"), mustTime("2024-01-02T00:00:00Z"), 20},
		},
		{
			name: "non-null boundary with nulls last adds the null group",
			scan: Descriptor{
				{Column: "rating", Direction: DirectionDESC, Nulls: NullsLast},
				{Column: "id", Direction: DirectionDESC},
			},
			elements: []Element{
				{Column: "rating", Value: 4.5, Operator: OperatorLT},
				{Column: "id", Value: 9, Operator: OperatorLT},
			},
			wantSQL:  "((rating < ?) OR (rating IS NULL) OR (rating = ? AND id < ?))",
			wantVals: []driver.Value{4.5, 4.5, 9},
		},
		{
			name: "null boundary with nulls last stays inside the null group",
			scan: Descriptor{
				{Column: "rating", Direction: DirectionDESC, Nulls: NullsLast},
				{Column: "id", Direction: DirectionDESC},
			},
			elements: []Element{
				{Column: "rating", Value: nil, Operator: OperatorLT},
				{Column: "id", Value: 9, Operator: OperatorLT},
			},
			wantSQL:  "((rating IS NULL AND id < ?))",
			wantVals: []driver.Value{9},
		},
		{
			name: "null boundary with nulls first escapes to non-null rows",
			scan: Descriptor{
				{Column: "rating", Direction: DirectionASC, Nulls: NullsFirst},
				{Column: "id", Direction: DirectionASC},
			},
			elements: []Element{
				{Column: "rating", Value: nil, Operator: OperatorGT},
				{Column: "id", Value: 9, Operator: OperatorGT},
			},
			wantSQL:  "((rating IS NOT NULL) OR (rating IS NULL AND id > ?))",
			wantVals: []driver.Value{9},
		},
		{
			name: "non-null boundary with nulls first has no null escape",
			scan: Descriptor{
				{Column: "rating", Direction: DirectionASC, Nulls: NullsFirst},
				{Column: "id", Direction: DirectionASC},
			},
			elements: []Element{
				{Column: "rating", Value: 2.5, Operator: OperatorGT},
				{Column: "id", Value: 9, Operator: OperatorGT},
			},
			wantSQL:  "((rating > ?) OR (rating = ? AND id > ?))",
			wantVals: []driver.Value{2.5, 2.5, 9},
		},
		{
			name: "mixed directions",
			scan: Descriptor{
				{Column: "title", Direction: DirectionASC},
				{Column: "id", Direction: DirectionDESC},
			},
			elements: []Element{
				{Column: "title", Value: "m", Operator: OperatorGT},
				{Column: "id", Value: 100, Operator: OperatorLT},
			},
			wantSQL:  "((title > ?) OR (title = ? AND id < ?))",
			wantVals: []driver.Value{"m", "m", 100},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSQL, gotVals := seekDNF(tt.scan, tt.elements).toSQLClause()

			if gotSQL != tt.wantSQL {
				t.Errorf("seekDNF() SQL = %v, want %v", gotSQL, tt.wantSQL)
			}

			if len(gotVals) != len(tt.wantVals) {
				t.Fatalf("seekDNF() Vals length = %v, want %v", len(gotVals), len(tt.wantVals))
			}

			for i, wantVal := range tt.wantVals {
				if gotVals[i] != wantVal {
					t.Errorf("seekDNF() Vals[%d] = %v, want %v", i, gotVals[i], wantVal)
				}
			}
		})
	}
}

func mustTime(s string) time.Time {
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}

	return ts
}
