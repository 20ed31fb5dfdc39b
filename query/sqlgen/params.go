package sqlgen

import (
	"strconv"
)

// ParameterManager hands out placeholder tokens in order. Reset restarts
// the sequence.
type ParameterManager interface {
	Next() string
	Reset()
	Count() int
}

// NumberedParams produces 1-based numbered placeholders such as $1, $2.
type NumberedParams struct {
	prefix string
	n      int
}

// NewNumberedParams creates a numbered placeholder generator
func NewNumberedParams(prefix string) *NumberedParams {
	return &NumberedParams{prefix: prefix}
}

func (p *NumberedParams) Next() string {
	p.n++
	return p.prefix + strconv.Itoa(p.n)
}

func (p *NumberedParams) Reset()     { p.n = 0 }
func (p *NumberedParams) Count() int { return p.n }

// PositionalParams repeats one placeholder token, such as ?.
type PositionalParams struct {
	token string
	n     int
}

// NewPositionalParams creates a positional placeholder generator
func NewPositionalParams(token string) *PositionalParams {
	return &PositionalParams{token: token}
}

func (p *PositionalParams) Next() string {
	p.n++
	return p.token
}

func (p *PositionalParams) Reset()     { p.n = 0 }
func (p *PositionalParams) Count() int { return p.n }
