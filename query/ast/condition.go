package ast

import (
	"fmt"
	"strings"
)

// ComparisonOperator is the operator of a single comparison.
type ComparisonOperator string

const (
	OpEqual          ComparisonOperator = "="
	OpNotEqual       ComparisonOperator = "<>"
	OpGreaterThan    ComparisonOperator = ">"
	OpLessThan       ComparisonOperator = "<"
	OpGreaterOrEqual ComparisonOperator = ">="
	OpLessOrEqual    ComparisonOperator = "<="
	OpIn             ComparisonOperator = "IN"
	OpNotIn          ComparisonOperator = "NOT IN"
)

// ParseComparisonOperator normalizes s into a ComparisonOperator.
// "!=" is accepted as an alias for "<>".
func ParseComparisonOperator(s string) (ComparisonOperator, error) {
	norm := strings.Join(strings.Fields(strings.ToUpper(s)), " ")
	switch norm {
	case "=", "<>", ">", "<", ">=", "<=", "IN", "NOT IN":
		return ComparisonOperator(norm), nil
	case "!=":
		return OpNotEqual, nil
	}
	return "", NewValidationError("operator", fmt.Sprintf("unknown comparison operator %q", s), s)
}

// TakesList reports whether the operator compares against a list.
func (o ComparisonOperator) TakesList() bool {
	return o == OpIn || o == OpNotIn
}

// LogicalOperator connects a condition to its preceding sibling.
type LogicalOperator string

const (
	And    LogicalOperator = "AND"
	Or     LogicalOperator = "OR"
	AndNot LogicalOperator = "AND NOT"
	OrNot  LogicalOperator = "OR NOT"
)

// ParseLogicalOperator normalizes s into a LogicalOperator.
func ParseLogicalOperator(s string) (LogicalOperator, error) {
	norm := strings.Join(strings.Fields(strings.ToUpper(s)), " ")
	switch LogicalOperator(norm) {
	case And, Or, AndNot, OrNot:
		return LogicalOperator(norm), nil
	}
	return "", NewValidationError("connector", fmt.Sprintf("unknown logical operator %q", s), s)
}

// ConditionNode is either a Comparison or a ConditionGroup.
type ConditionNode interface {
	// Link returns the connector attaching the node to its preceding sibling.
	Link() LogicalOperator
	conditionNode()
}

// Comparison is a leaf condition. Right holds a scalar, a []any for IN and
// NOT IN, or a ColumnRef when IsColumnComparison is set.
type Comparison struct {
	Left               ColumnRef
	Operator           ComparisonOperator
	Right              any
	IsColumnComparison bool
	Connector          LogicalOperator
}

func (c Comparison) Link() LogicalOperator { return c.Connector }
func (Comparison) conditionNode()          {}

// ConditionGroup is an ordered list of conditions rendered in parentheses.
type ConditionGroup struct {
	Conditions []ConditionNode
	Connector  LogicalOperator
}

func (g ConditionGroup) Link() LogicalOperator { return g.Connector }
func (ConditionGroup) conditionNode()          {}

// Len returns the number of top-level conditions.
func (g ConditionGroup) Len() int { return len(g.Conditions) }

// Clone returns a deep copy of the group.
func (g ConditionGroup) Clone() ConditionGroup {
	out := ConditionGroup{Connector: g.Connector}
	if g.Conditions == nil {
		return out
	}
	out.Conditions = make([]ConditionNode, len(g.Conditions))
	for i, n := range g.Conditions {
		switch node := n.(type) {
		case Comparison:
			if list, ok := node.Right.([]any); ok {
				node.Right = append([]any(nil), list...)
			}
			if list, ok := node.Right.([]ColumnRef); ok {
				node.Right = append([]ColumnRef(nil), list...)
			}
			out.Conditions[i] = node
		case ConditionGroup:
			out.Conditions[i] = node.Clone()
		default:
			out.Conditions[i] = n
		}
	}
	return out
}
