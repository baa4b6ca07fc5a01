package filter

import (
	"fmt"
	"strings"
)

// MaxConditions is the maximum number of hard filters per expression.
const MaxConditions = 32

// Expression is a conjunction of hard filters: every condition must hold.
type Expression struct {
	must []Condition
}

// NewExpression validates and creates a filter Expression.
func NewExpression(must ...Condition) (Expression, error) {
	if len(must) > MaxConditions {
		return Expression{}, fmt.Errorf("too many filter conditions (max %d)", MaxConditions)
	}
	return Expression{must: must}, nil
}

// With returns a copy of e with c appended.
func (e Expression) With(c Condition) (Expression, error) {
	must := make([]Condition, 0, len(e.must)+1)
	must = append(must, e.must...)
	must = append(must, c)
	return NewExpression(must...)
}

// Must returns the conditions.
func (e Expression) Must() []Condition { return e.must }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool { return len(e.must) == 0 }

// Has reports whether a condition on key is present.
func (e Expression) Has(key string) bool {
	for _, c := range e.must {
		if c.key == key {
			return true
		}
	}
	return false
}

// Condition is a single filter clause: an exact match, a numeric range, or a text match.
type Condition struct {
	key       string
	match     string
	text      string
	rangeExpr *Range
}

// NewMatch creates an exact match condition (slug, enumerated value).
func NewMatch(key, match string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if match == "" {
		return Condition{}, fmt.Errorf("match value is required for key %q", key)
	}
	return Condition{key: key, match: match}, nil
}

// NewText creates a text condition: analyzed match on the index, substring on the store.
func NewText(key, text string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Condition{}, fmt.Errorf("text value is required for key %q", key)
	}
	return Condition{key: key, text: text}, nil
}

// NewRange creates a numeric range condition.
func NewRange(key string, r Range) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	return Condition{key: key, rangeExpr: &r}, nil
}

// NewEquals creates a numeric equality condition as a closed range.
func NewEquals(key string, v float64) (Condition, error) {
	r, err := NewRangeFilter(nil, &v, nil, &v)
	if err != nil {
		return Condition{}, err
	}
	return NewRange(key, r)
}

// Key returns the field name.
func (c Condition) Key() string { return c.key }

// Match returns the exact match value.
func (c Condition) Match() string { return c.match }

// Text returns the text value.
func (c Condition) Text() string { return c.text }

// Range returns the numeric range expression.
func (c Condition) Range() *Range { return c.rangeExpr }

// IsMatch reports whether this is a match condition.
func (c Condition) IsMatch() bool { return c.match != "" }

// IsText reports whether this is a text condition.
func (c Condition) IsText() bool { return c.text != "" }

// IsRange reports whether this is a range condition.
func (c Condition) IsRange() bool { return c.rangeExpr != nil }

// Range is a numeric range with gt/gte/lt/lte boundaries.
type Range struct {
	gt  *float64
	gte *float64
	lt  *float64
	lte *float64
}

// NewRangeFilter validates and creates a Range.
// At least one boundary required. gt/gte and lt/lte are mutually exclusive.
func NewRangeFilter(gt, gte, lt, lte *float64) (Range, error) {
	if gt == nil && gte == nil && lt == nil && lte == nil {
		return Range{}, fmt.Errorf("at least one range boundary is required")
	}
	if gt != nil && gte != nil {
		return Range{}, fmt.Errorf("cannot specify both gt and gte")
	}
	if lt != nil && lte != nil {
		return Range{}, fmt.Errorf("cannot specify both lt and lte")
	}
	return Range{gt: gt, gte: gte, lt: lt, lte: lte}, nil
}

// GT returns the lower exclusive bound.
func (r Range) GT() *float64 { return r.gt }

// GTE returns the lower inclusive bound.
func (r Range) GTE() *float64 { return r.gte }

// LT returns the upper exclusive bound.
func (r Range) LT() *float64 { return r.lt }

// LTE returns the upper inclusive bound.
func (r Range) LTE() *float64 { return r.lte }

// Contains reports whether v satisfies every boundary.
func (r Range) Contains(v float64) bool {
	switch {
	case r.gt != nil && v <= *r.gt:
		return false
	case r.gte != nil && v < *r.gte:
		return false
	case r.lt != nil && v >= *r.lt:
		return false
	case r.lte != nil && v > *r.lte:
		return false
	}
	return true
}
