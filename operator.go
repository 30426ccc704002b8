package pagekit

import "fmt"

// Operator defines a comparison operator for bounding by column.
// Cursor tokens carry one operator per sort term; its orientation relative to
// the requested descriptor distinguishes next-page from prev-page tokens.
type Operator string

func (o Operator) Valid() bool {
	return o == OperatorLT || o == OperatorGT
}

func (o Operator) ForOrdering() Direction {
	switch o {
	case OperatorGT:
		return DirectionASC
	case OperatorLT:
		return DirectionDESC
	default:
		panic(fmt.Errorf("cannot map operator '%s' to ordering", o))
	}
}

// Invert swaps the comparison direction. Used when deriving prev-page tokens
// and when turning a backward token into a scan predicate.
func (o Operator) Invert() Operator {
	switch o {
	case OperatorGT:
		return OperatorLT
	case OperatorLT:
		return OperatorGT
	default:
		panic(fmt.Errorf("cannot invert operator '%s'", o))
	}
}

const (
	OperatorGT Operator = ">"
	OperatorLT Operator = "<"

	// operatorEq is the equality operator. It is private because we use it
	// ONLY while building bounding conditions.
	operatorEq Operator = "="

	// operatorIsNull and operatorIsNotNull are value-less null checks emitted
	// for sort terms with an explicit nulls policy. Never present in tokens.
	operatorIsNull    Operator = "IS NULL"
	operatorIsNotNull Operator = "IS NOT NULL"
)

// zeroArg reports whether the operator takes no right-hand side value.
func (o Operator) zeroArg() bool {
	return o == operatorIsNull || o == operatorIsNotNull
}
