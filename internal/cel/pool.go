package cel

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
)

// ErrNotPredicate is returned for expressions that do not produce a bool.
var ErrNotPredicate = errors.New("expression is not a predicate")

// ExpressionPool caches compiled CEL programs by source text.
type ExpressionPool struct {
	mu       sync.RWMutex
	programs map[string]cel.Program
	env      *cel.Env
	limit    int
}

// NewExpressionPool creates a pool over the node predicate environment.
func NewExpressionPool() (*ExpressionPool, error) {
	env, err := NewEnvironment()
	if err != nil {
		return nil, fmt.Errorf("failed to create environment: %w", err)
	}
	return NewExpressionPoolWithEnv(env)
}

// NewExpressionPoolWithEnv creates a pool with a custom CEL environment.
func NewExpressionPoolWithEnv(env *cel.Env) (*ExpressionPool, error) {
	if env == nil {
		return nil, fmt.Errorf("CEL environment cannot be nil")
	}
	return &ExpressionPool{
		env:      env,
		programs: make(map[string]cel.Program),
	}, nil
}

// SetLimit bounds the number of cached programs. When the cache is full it is
// emptied before the next program is stored. Zero means no limit.
func (e *ExpressionPool) SetLimit(n int) {
	e.mu.Lock()
	e.limit = n
	e.mu.Unlock()
}

// Len returns the number of cached programs.
func (e *ExpressionPool) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.programs)
}

// GetExpression returns the compiled program for expr, compiling and caching
// it on first use.
func (e *ExpressionPool) GetExpression(expr string) (cel.Program, error) {
	e.mu.RLock()
	if program, ok := e.programs[expr]; ok {
		e.mu.RUnlock()
		return program, nil
	}
	e.mu.RUnlock()

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("failed to compile expression %q: %w", expr, issues.Err())
	}
	if out := ast.OutputType(); !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("%w: %q has type %s", ErrNotPredicate, expr, out)
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to create program: %w", err)
	}

	e.mu.Lock()
	if e.limit > 0 && len(e.programs) >= e.limit {
		clear(e.programs)
	}
	e.programs[expr] = program
	e.mu.Unlock()

	return program, nil
}

// Match evaluates program against the node variables and reports whether the
// predicate holds.
func (e *ExpressionPool) Match(program cel.Program, vars map[string]any) (bool, error) {
	val, _, err := program.Eval(vars)
	if err != nil {
		return false, fmt.Errorf("expression evaluation error: %w", err)
	}
	b, ok := val.(types.Bool)
	if !ok {
		return false, fmt.Errorf("%w: got %v", ErrNotPredicate, val.Type())
	}
	return bool(b), nil
}
