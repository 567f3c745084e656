package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jmylchreest/modalstack/internal/model"
)

// FilterOp represents a comparison operator.
type FilterOp string

const (
	FilterOpEqual     FilterOp = "="  // Exact match
	FilterOpNotEqual  FilterOp = "!=" // Not equal
	FilterOpContains  FilterOp = "~"  // Contains substring
	FilterOpRegex     FilterOp = "~=" // Regex match
	FilterOpGreater   FilterOp = ">"  // Greater than
	FilterOpLess      FilterOp = "<"  // Less than
	FilterOpGreaterEq FilterOp = ">=" // Greater than or equal
	FilterOpLessEq    FilterOp = "<=" // Less than or equal
)

// FilterCondition represents a single filter condition.
type FilterCondition struct {
	Field    string   // Field name: id, content, size, color, effect, state, age
	Operator FilterOp // Comparison operator
	Value    string   // Value to compare against

	regex   *regexp.Regexp
	sizeVal model.Size
	ageVal  time.Duration
}

// FilterExpr represents a compound filter expression.
// Multiple conditions are ANDed together.
type FilterExpr struct {
	Conditions []FilterCondition

	now func() time.Time
}

// ParseDuration parses a duration string with extended formats.
// Supports: 90s, 5m, 2h, 1d, 0 (no limit)
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "0" || s == "" {
		return 0, nil
	}

	if daysStr, found := strings.CutSuffix(s, "d"); found {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}

	return time.ParseDuration(s)
}

// ParseFilter parses a filter expression string into a FilterExpr.
// Format: "field=value,field2~value2,field3>value3"
// Multiple conditions are comma-separated and ANDed together.
//
// Supported fields: id, content, size, color, effect, state, age
// Supported operators: = (equal), != (not equal), ~ (contains), ~= (regex), >, <, >=, <=
// Size and age are ordered and take =, !=, >, <, >=, <=. Custom sorts after
// extra-large.
//
// Examples:
//   - "content=demo.Confirm" - exact content match
//   - "state!=removing" - dialogs that are not closing
//   - "size>=large" - large and extra-large dialogs
//   - "age>30s" - dialogs opened more than 30 seconds ago
func ParseFilter(expr string) (*FilterExpr, error) {
	filter := &FilterExpr{now: time.Now}
	if expr == "" {
		return filter, nil
	}

	for part := range strings.SplitSeq(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		cond, err := parseCondition(part)
		if err != nil {
			return nil, err
		}
		filter.Conditions = append(filter.Conditions, cond)
	}

	return filter, nil
}

// parseCondition parses a single condition like "size=large".
func parseCondition(s string) (FilterCondition, error) {
	// Longest operators first so "!=" is not read as "=".
	operators := []FilterOp{
		FilterOpNotEqual,
		FilterOpGreaterEq,
		FilterOpLessEq,
		FilterOpRegex,
		FilterOpEqual,
		FilterOpContains,
		FilterOpGreater,
		FilterOpLess,
	}

	for _, op := range operators {
		idx := strings.Index(s, string(op))
		if idx > 0 {
			cond := FilterCondition{
				Field:    strings.ToLower(strings.TrimSpace(s[:idx])),
				Operator: op,
				Value:    strings.TrimSpace(s[idx+len(op):]),
			}
			if err := cond.init(); err != nil {
				return FilterCondition{}, err
			}
			return cond, nil
		}
	}

	return FilterCondition{}, fmt.Errorf("invalid filter condition: %s (missing operator)", s)
}

// init pre-parses and validates the condition value.
func (c *FilterCondition) init() error {
	ordered := false
	switch c.Field {
	case "id":
	case "content", "ref":
		c.Field = "content"
	case "color", "colour":
		c.Field = "color"
	case "effect", "background_effect":
		c.Field = "effect"
	case "state":
		switch c.Value {
		case model.StateOpening, model.StateVisible, model.StateResizing, model.StateRemoving:
		default:
			if c.Operator == FilterOpEqual || c.Operator == FilterOpNotEqual {
				return fmt.Errorf("invalid state: %s (use opening, visible, resizing, or removing)", c.Value)
			}
		}
	case "size":
		size, err := model.ParseSize(c.Value)
		if err != nil {
			return err
		}
		c.sizeVal = size
		ordered = true
	case "age":
		dur, err := ParseDuration(c.Value)
		if err != nil {
			return fmt.Errorf("invalid age value: %w", err)
		}
		c.ageVal = dur
		ordered = true
	default:
		return fmt.Errorf("unknown filter field: %s", c.Field)
	}

	switch c.Operator {
	case FilterOpGreater, FilterOpLess, FilterOpGreaterEq, FilterOpLessEq:
		if !ordered {
			return fmt.Errorf("operator %s is not supported for %s", c.Operator, c.Field)
		}
	case FilterOpContains:
		if ordered {
			return fmt.Errorf("operator %s is not supported for %s", c.Operator, c.Field)
		}
	case FilterOpRegex:
		if ordered {
			return fmt.Errorf("operator %s is not supported for %s", c.Operator, c.Field)
		}
		re, err := regexp.Compile(c.Value)
		if err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
		c.regex = re
	}

	return nil
}

// Match tests if a dialog matches the filter expression.
// All conditions must match (AND logic).
func (f *FilterExpr) Match(d model.Summary) bool {
	now := time.Now
	if f.now != nil {
		now = f.now
	}
	for i := range f.Conditions {
		if !f.Conditions[i].match(d, now()) {
			return false
		}
	}
	return true
}

func (c *FilterCondition) match(d model.Summary, now time.Time) bool {
	switch c.Field {
	case "id":
		return c.matchString(d.ID)
	case "content":
		return c.matchString(d.Content)
	case "color":
		return c.matchString(d.Color)
	case "effect":
		return c.matchString(d.BackgroundEffect)
	case "state":
		return c.matchString(d.State())
	case "size":
		size, err := model.ParseSize(d.Size)
		if err != nil {
			return false
		}
		return c.matchInt(int(size), int(c.sizeVal))
	case "age":
		return c.matchInt(int(now.Sub(d.CreatedAt)), int(c.ageVal))
	default:
		return false
	}
}

// matchString matches a string field.
func (c *FilterCondition) matchString(fieldValue string) bool {
	switch c.Operator {
	case FilterOpEqual:
		return strings.EqualFold(fieldValue, c.Value)
	case FilterOpNotEqual:
		return !strings.EqualFold(fieldValue, c.Value)
	case FilterOpContains:
		return strings.Contains(strings.ToLower(fieldValue), strings.ToLower(c.Value))
	case FilterOpRegex:
		return c.regex != nil && c.regex.MatchString(fieldValue)
	default:
		return false
	}
}

// matchInt matches an ordered field.
func (c *FilterCondition) matchInt(fieldValue, condValue int) bool {
	switch c.Operator {
	case FilterOpEqual:
		return fieldValue == condValue
	case FilterOpNotEqual:
		return fieldValue != condValue
	case FilterOpGreater:
		return fieldValue > condValue
	case FilterOpLess:
		return fieldValue < condValue
	case FilterOpGreaterEq:
		return fieldValue >= condValue
	case FilterOpLessEq:
		return fieldValue <= condValue
	default:
		return false
	}
}

// FilterWithExpr filters dialogs using a filter expression.
func FilterWithExpr(dialogs []model.Summary, expr *FilterExpr) []model.Summary {
	if expr == nil || len(expr.Conditions) == 0 {
		return dialogs
	}

	result := make([]model.Summary, 0, len(dialogs))
	for _, d := range dialogs {
		if expr.Match(d) {
			result = append(result, d)
		}
	}
	return result
}
