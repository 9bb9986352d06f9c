package repositories

import (
	"strconv"
	"strings"
	"time"
)

// MatchKind selects how a query parameter compiles into a predicate.
type MatchKind int

const (
	MatchExact MatchKind = iota
	MatchBool
	MatchRelationID
	MatchDateFrom
	MatchDateTo
)

// FieldSpec binds one query parameter to a column and a matcher.
type FieldSpec struct {
	Param  string
	Column string
	Kind   MatchKind
}

// Filter is a declarative filter set for one entity: a list of field
// matchers plus the columns the free-text search mode scans. Every entity
// controller declares one of these instead of hand-building where clauses.
type Filter struct {
	Fields        []FieldSpec
	SearchColumns []string
}

// Compile turns request query parameters into where predicates. A non-empty
// "search" parameter switches to search mode: an OR of substring matches over
// SearchColumns that replaces the field filters, mirroring the historic API
// behavior.
func (f Filter) Compile(get func(string) string) []Cond {
	if len(f.SearchColumns) > 0 {
		if s := get("search"); s != "" {
			like := "%" + s + "%"
			parts := make([]string, len(f.SearchColumns))
			args := make([]any, len(f.SearchColumns))
			for i, col := range f.SearchColumns {
				parts[i] = col + " LIKE ?"
				args[i] = like
			}
			return []Cond{{Query: "(" + strings.Join(parts, " OR ") + ")", Args: args}}
		}
	}

	var conds []Cond
	for _, fs := range f.Fields {
		v := get(fs.Param)
		if v == "" {
			continue
		}
		switch fs.Kind {
		case MatchExact:
			conds = append(conds, Cond{Query: fs.Column + " = ?", Args: []any{v}})
		case MatchBool:
			if b, err := strconv.ParseBool(v); err == nil {
				conds = append(conds, Cond{Query: fs.Column + " = ?", Args: []any{b}})
			}
		case MatchRelationID:
			if n, err := strconv.Atoi(v); err == nil {
				conds = append(conds, Cond{Query: fs.Column + " = ?", Args: []any{n}})
			}
		case MatchDateFrom:
			if t, ok := parseDate(v); ok {
				conds = append(conds, Cond{Query: fs.Column + " >= ?", Args: []any{t}})
			}
		case MatchDateTo:
			if t, ok := parseDate(v); ok {
				conds = append(conds, Cond{Query: fs.Column + " <= ?", Args: []any{t}})
			}
		}
	}
	return conds
}

func parseDate(v string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, true
	}
	return time.Time{}, false
}
