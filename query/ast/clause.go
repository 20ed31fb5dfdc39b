package ast

import (
	"fmt"
	"strings"
)

// JoinKind is the kind of a JOIN clause.
type JoinKind string

const (
	JoinInner JoinKind = "INNER"
	JoinLeft  JoinKind = "LEFT"
	JoinRight JoinKind = "RIGHT"
	JoinFull  JoinKind = "FULL"
)

// ParseJoinKind normalizes s into a JoinKind. An empty string means INNER.
func ParseJoinKind(s string) (JoinKind, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.TrimSuffix(norm, " JOIN")
	switch JoinKind(norm) {
	case "":
		return JoinInner, nil
	case JoinInner, JoinLeft, JoinRight, JoinFull:
		return JoinKind(norm), nil
	}
	return "", NewValidationError("join", fmt.Sprintf("unknown join kind %q", s), s)
}

// JoinEntry is one JOIN of a statement. On always holds at least one condition.
type JoinEntry struct {
	Kind  JoinKind
	Table string
	Alias string
	On    ConditionGroup
}

// OrderDirection is the sort direction of an ORDER BY entry.
type OrderDirection string

const (
	Asc  OrderDirection = "ASC"
	Desc OrderDirection = "DESC"
)

// ParseOrderDirection normalizes s into an OrderDirection. An empty string
// means ASC.
func ParseOrderDirection(s string) (OrderDirection, error) {
	switch OrderDirection(strings.ToUpper(strings.TrimSpace(s))) {
	case "", Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	}
	return "", NewValidationError("orderBy", fmt.Sprintf("direction must be ASC or DESC, got %q", s), s)
}

// OrderEntry is one ORDER BY column.
type OrderEntry struct {
	Column    ColumnRef
	Direction OrderDirection
}

// Limit is the LIMIT clause.
type Limit struct {
	Count int
}

// Offset is the OFFSET clause.
type Offset struct {
	Count int
}
