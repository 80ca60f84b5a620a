package filter

import (
	"strings"

	"github.com/expr-lang/expr"
)

var defaultCompiler = NewCompiler()

// shadowedBuiltins are expr builtins sharing a name with a report column.
var shadowedBuiltins = []string{"duration"}

// CompilerOption configures a Compiler
type CompilerOption func(*Compiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) CompilerOption {
	return func(c *Compiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// Compiler compiles expressions into filters, optionally caching the result
// per expression.
type Compiler struct {
	cache *lruCache
}

// NewCompiler creates a new expr-based filter compiler
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile compiles an expression into an executable filter
func (c *Compiler) Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// Row keys are unknown until run time. Builtins named like a report
	// column would hide it, so they are disabled.
	opts := []expr.Option{
		expr.Env(helperFunctions()),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	}
	for _, name := range shadowedBuiltins {
		opts = append(opts, expr.DisableBuiltin(name))
	}
	program, err := expr.Compile(expression, opts...)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	f := &Filter{
		expression: expression,
		program:    program,
	}

	if c.cache != nil {
		c.cache.Put(expression, f)
	}

	return f, nil
}

// Size returns the number of cached filters
func (c *Compiler) Size() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Size()
}
