package formulation

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

// linear is a parsed affine expression: Σ terms[name]·name + constant.
type linear struct {
	terms    map[string]float64
	order    []string // first-appearance order of identifiers
	constant float64
}

func newLinear() *linear { return &linear{terms: map[string]float64{}} }

func (l *linear) isConstant() bool {
	for _, a := range l.terms {
		if a != 0 {
			return false
		}
	}

	return true
}

func (l *linear) add(o *linear, scale float64) {
	for _, n := range o.order {
		if _, ok := l.terms[n]; !ok {
			l.order = append(l.order, n)
		}
		l.terms[n] += scale * o.terms[n]
	}
	l.constant += scale * o.constant
}

func (l *linear) scale(k float64) *linear {
	out := newLinear()
	out.add(l, k)

	return out
}

// ParseObjective parses a linear objective such as "2*x1 + 3*x2" against the
// ordered variable names and returns one coefficient per name.
// Constant offsets are rejected because the tableau z row carries none.
func ParseObjective(src string, names []string) ([]float64, error) {
	l, err := parseLinear(src)
	if err != nil {
		return nil, err
	}
	if l.constant != 0 {
		return nil, fmt.Errorf("objective %q has constant term %g: %w", src, l.constant, ErrNonLinear)
	}

	return project(l, names, src)
}

// ParseConstraint parses "lhs REL rhs" where REL is <=, >=, == or =.
// Both sides may hold variables; the result is normalized to Coeffs·x REL RHS.
func ParseConstraint(name, src string, names []string) (Constraint, error) {
	tree, err := parser.Parse(normalizeEquals(src))
	if err != nil {
		return Constraint{}, fmt.Errorf("constraint %q: %w", src, err)
	}
	bin, ok := tree.Node.(*ast.BinaryNode)
	if !ok {
		return Constraint{}, fmt.Errorf("constraint %q: %w", src, ErrMissingRelation)
	}
	var rel Relation
	switch bin.Operator {
	case "<=":
		rel = LE
	case ">=":
		rel = GE
	case "==":
		rel = EQ
	default:
		return Constraint{}, fmt.Errorf("constraint %q: operator %q: %w", src, bin.Operator, ErrMissingRelation)
	}

	left, err := walk(bin.Left)
	if err != nil {
		return Constraint{}, fmt.Errorf("constraint %q: %w", src, err)
	}
	right, err := walk(bin.Right)
	if err != nil {
		return Constraint{}, fmt.Errorf("constraint %q: %w", src, err)
	}

	// lhs - rhs REL 0  →  (lhs.terms - rhs.terms)·x REL rhs.const - lhs.const
	diff := newLinear()
	diff.add(left, 1)
	diff.add(right, -1)
	coeffs, err := project(diff, names, src)
	if err != nil {
		return Constraint{}, err
	}

	return Constraint{Name: name, Coeffs: coeffs, Relation: rel, RHS: negate(diff.constant)}, nil
}

// Identifiers lists the variable names of an expression (or constraint) in
// first-appearance order. Used when a model omits its variable list.
func Identifiers(src string) ([]string, error) {
	tree, err := parser.Parse(normalizeEquals(src))
	if err != nil {
		return nil, err
	}
	var out []string
	seen := map[string]bool{}
	var visit func(n ast.Node)
	visit = func(n ast.Node) {
		switch t := n.(type) {
		case *ast.IdentifierNode:
			if !seen[t.Value] {
				seen[t.Value] = true
				out = append(out, t.Value)
			}
		case *ast.BinaryNode:
			visit(t.Left)
			visit(t.Right)
		case *ast.UnaryNode:
			visit(t.Node)
		}
	}
	visit(tree.Node)

	return out, nil
}

func parseLinear(src string) (*linear, error) {
	tree, err := parser.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("expression %q: %w", src, err)
	}
	l, err := walk(tree.Node)
	if err != nil {
		return nil, fmt.Errorf("expression %q: %w", src, err)
	}

	return l, nil
}

// walk folds an expr AST into a linear form, rejecting anything non-affine.
func walk(n ast.Node) (*linear, error) {
	switch t := n.(type) {
	case *ast.IntegerNode:
		l := newLinear()
		l.constant = float64(t.Value)

		return l, nil
	case *ast.FloatNode:
		l := newLinear()
		l.constant = t.Value

		return l, nil
	case *ast.IdentifierNode:
		l := newLinear()
		l.terms[t.Value] = 1
		l.order = append(l.order, t.Value)

		return l, nil
	case *ast.UnaryNode:
		inner, err := walk(t.Node)
		if err != nil {
			return nil, err
		}
		switch t.Operator {
		case "-":
			return inner.scale(-1), nil
		case "+":
			return inner, nil
		}

		return nil, fmt.Errorf("unary %q: %w", t.Operator, ErrNonLinear)
	case *ast.BinaryNode:
		left, err := walk(t.Left)
		if err != nil {
			return nil, err
		}
		right, err := walk(t.Right)
		if err != nil {
			return nil, err
		}
		switch t.Operator {
		case "+":
			left.add(right, 1)

			return left, nil
		case "-":
			left.add(right, -1)

			return left, nil
		case "*":
			if right.isConstant() {
				out := left.scale(right.constant)

				return out, nil
			}
			if left.isConstant() {
				return right.scale(left.constant), nil
			}

			return nil, fmt.Errorf("product of variables: %w", ErrNonLinear)
		case "/":
			if !right.isConstant() || right.constant == 0 {
				return nil, fmt.Errorf("division by a variable or zero: %w", ErrNonLinear)
			}

			return left.scale(1 / right.constant), nil
		}

		return nil, fmt.Errorf("operator %q: %w", t.Operator, ErrNonLinear)
	}

	return nil, fmt.Errorf("node %T: %w", n, ErrNonLinear)
}

// project maps a linear form onto the declared variable order.
func project(l *linear, names []string, src string) ([]float64, error) {
	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}
	out := make([]float64, len(names))
	for _, n := range l.order {
		i, ok := index[n]
		if !ok {
			return nil, fmt.Errorf("%q in %q: %w", n, src, ErrUnknownVariable)
		}
		out[i] = l.terms[n]
	}

	return out, nil
}

// normalizeEquals rewrites a lone "=" into "==" so expr accepts textbook equalities.
func normalizeEquals(src string) string {
	var b strings.Builder
	b.Grow(len(src) + 1)
	for i := 0; i < len(src); i++ {
		ch := src[i]
		if ch != '=' {
			b.WriteByte(ch)
			continue
		}
		prev := byte(0)
		if i > 0 {
			prev = src[i-1]
		}
		next := byte(0)
		if i+1 < len(src) {
			next = src[i+1]
		}
		switch {
		case prev == '<' || prev == '>' || prev == '!' || prev == '=':
			b.WriteByte(ch)
		case next == '=':
			b.WriteString("==")
			i++
		default:
			b.WriteString("==")
		}
	}

	return b.String()
}
