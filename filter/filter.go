package filter

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter is a compiled expression over report rows. It is safe for
// concurrent use.
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile compiles an expression with the default compiler, without caching
func Compile(expression string) (*Filter, error) {
	return defaultCompiler.Compile(expression)
}

// Expression returns the original expression
func (f *Filter) Expression() string {
	return f.expression
}

// Match reports whether row satisfies the filter
func (f *Filter) Match(row map[string]any) (bool, error) {
	return f.match(row, -1)
}

// Apply returns the rows matching the filter, in their original order.
// Evaluation stops at the first row that fails.
func (f *Filter) Apply(rows []map[string]any) ([]map[string]any, error) {
	matched := make([]map[string]any, 0, len(rows))
	for i, row := range rows {
		ok, err := f.match(row, i)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

func (f *Filter) match(row map[string]any, index int) (bool, error) {
	result, err := expr.Run(f.program, newRowEnvironment(row))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			Row:        index,
			Reason:     "failed to evaluate expression",
			Err:        err,
		}
	}

	matched, ok := result.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression: f.expression,
			Row:        index,
			Reason:     fmt.Sprintf("expression returned %T, not bool", result),
		}
	}
	return matched, nil
}
