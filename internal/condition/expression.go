package condition

import (
	"log/slog"
	"strconv"
	"strings"
)

// LogicalOp joins two adjacent clauses.
type LogicalOp string

const (
	OpAnd LogicalOp = "&&"
	OpOr  LogicalOp = "||"
)

// Operator is one of the nine supported comparisons.
type Operator string

const (
	OpEq       Operator = "="
	OpNeq      Operator = "!="
	OpGt       Operator = ">"
	OpLt       Operator = "<"
	OpGte      Operator = ">="
	OpLte      Operator = "<="
	OpContains Operator = "*="
	OpPrefix   Operator = "^="
	OpSuffix   Operator = "$="
)

// comparison operators in match order: two-rune operators first so "="
// never shadows ">=".
var operators = []Operator{OpNeq, OpGte, OpLte, OpContains, OpPrefix, OpSuffix, OpEq, OpGt, OpLt}

// Clause is one atomic condition: {field} op value.
type Clause struct {
	Field string
	Op    Operator
	Value string
}

// Expression is an ordered list of clauses plus the logical operators
// joining them (len(Ops) == len(Clauses)-1). It evaluates strictly left to
// right: "a && b || c" means "(a && b) || c" purely by operator order, with
// no precedence and no grouping.
type Expression struct {
	Clauses []Clause
	Ops     []LogicalOp
}

// Fields returns the set of field names the expression depends on.
func (e *Expression) Fields() []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range e.Clauses {
		if !seen[c.Field] {
			seen[c.Field] = true
			out = append(out, c.Field)
		}
	}
	return out
}

// Parse splits a raw condition string into an expression. A clause lacking
// a brace-delimited field reference or a recognized operator is dropped
// with a logged warning: a malformed attribute degrades, it never crashes.
func Parse(raw string, logger *slog.Logger) *Expression {
	expr := &Expression{}
	rest := raw
	var pendingOp LogicalOp

	for rest != "" {
		clauseText, op, more := cutLogical(rest)
		clause, ok := parseClause(strings.TrimSpace(clauseText))
		if !ok {
			logger.Warn("dropping unparseable condition clause", "clause", strings.TrimSpace(clauseText), "raw", raw)
		} else {
			if len(expr.Clauses) > 0 {
				expr.Ops = append(expr.Ops, pendingOp)
			}
			expr.Clauses = append(expr.Clauses, clause)
		}
		if !more {
			break
		}
		pendingOp = op
		rest = rest[len(clauseText)+len(op):]
	}

	if len(expr.Clauses) == 0 {
		return nil
	}
	return expr
}

// cutLogical returns the text before the first logical operator, the
// operator itself, and whether one was found.
func cutLogical(s string) (string, LogicalOp, bool) {
	and := strings.Index(s, string(OpAnd))
	or := strings.Index(s, string(OpOr))
	switch {
	case and == -1 && or == -1:
		return s, "", false
	case or == -1 || (and != -1 && and < or):
		return s[:and], OpAnd, true
	default:
		return s[:or], OpOr, true
	}
}

func parseClause(text string) (Clause, bool) {
	open := strings.Index(text, "{")
	close := strings.Index(text, "}")
	if open == -1 || close == -1 || close < open {
		return Clause{}, false
	}
	field := strings.TrimSpace(text[open+1 : close])
	if field == "" {
		return Clause{}, false
	}
	rest := strings.TrimSpace(text[close+1:])
	for _, op := range operators {
		if strings.HasPrefix(rest, string(op)) {
			value := strings.TrimSpace(rest[len(op):])
			return Clause{Field: field, Op: op, Value: value}, true
		}
	}
	return Clause{}, false
}

// Evaluate folds the clauses left to right against the current field
// values, looked up through the supplied function.
func (e *Expression) Evaluate(lookup func(field string) string) bool {
	if e == nil || len(e.Clauses) == 0 {
		return false
	}
	result := e.Clauses[0].eval(lookup)
	for i, op := range e.Ops {
		next := e.Clauses[i+1].eval(lookup)
		if op == OpAnd {
			result = result && next
		} else {
			result = result || next
		}
	}
	return result
}

func (c Clause) eval(lookup func(string) string) bool {
	actual := lookup(c.Field)
	switch c.Op {
	case OpGt, OpLt, OpGte, OpLte:
		a, errA := strconv.ParseFloat(strings.TrimSpace(actual), 64)
		b, errB := strconv.ParseFloat(strings.TrimSpace(c.Value), 64)
		if errA != nil || errB != nil {
			return false
		}
		switch c.Op {
		case OpGt:
			return a > b
		case OpLt:
			return a < b
		case OpGte:
			return a >= b
		default:
			return a <= b
		}
	}

	a := strings.ToLower(strings.TrimSpace(actual))
	b := strings.ToLower(strings.TrimSpace(c.Value))
	switch c.Op {
	case OpEq:
		return a == b
	case OpNeq:
		return a != b
	case OpContains:
		return strings.Contains(a, b)
	case OpPrefix:
		return strings.HasPrefix(a, b)
	case OpSuffix:
		return strings.HasSuffix(a, b)
	}
	return false
}
