package extensibility

import (
	"fmt"
	"log/slog"
	"sync"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"

	"github.com/comalice/storex/internal/primitives"
)

// ExprEvaluatorOption configures an expr evaluator instance.
type ExprEvaluatorOption func(*ExprGuardEvaluator)

// ExprWithLogger wires a logger for guard evaluation failures.
func ExprWithLogger(logger *slog.Logger) ExprEvaluatorOption {
	return func(e *ExprGuardEvaluator) {
		e.logger = logger
	}
}

// ExprGuardEvaluator executes guard expressions using github.com/expr-lang/expr.
// Guards see the state fields as top-level variables plus an "action" map with
// "type" and "payload" keys, e.g. `count < 15 && action.type == "ADD"`.
//
// Compiled programs are cached per expression.
type ExprGuardEvaluator struct {
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string]*exprvm.Program
}

// NewExprGuardEvaluator constructs a guard evaluator backed by expr-lang/expr.
func NewExprGuardEvaluator(opts ...ExprEvaluatorOption) *ExprGuardEvaluator {
	e := &ExprGuardEvaluator{
		cache: make(map[string]*exprvm.Program),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Eval implements core.GuardEvaluator. Compile or runtime failures fail
// closed: the guard is treated as false and the dispatch proceeds without
// the rule.
func (e *ExprGuardEvaluator) Eval(state map[string]any, guard string, action primitives.Action) bool {
	pass, err := e.Evaluate(state, guard, action)
	if err != nil {
		if e.logger != nil {
			e.logger.Warn("guard evaluation failed", "error", err)
		}
		return false
	}
	return pass
}

// Evaluate compiles and runs guard against the state snapshot, surfacing
// errors to callers that want them.
func (e *ExprGuardEvaluator) Evaluate(state map[string]any, guard string, action primitives.Action) (bool, error) {
	if guard == "" {
		return true, nil
	}
	program, err := e.loadOrCompile(guard)
	if err != nil {
		return false, err
	}

	env := make(map[string]any, len(state)+1)
	for k, v := range state {
		env[k] = v
	}
	env["action"] = actionEnv(action)

	out, err := exprlang.Run(program, env)
	if err != nil {
		return false, wrapEvaluationError("expr", guard, err)
	}
	pass, ok := out.(bool)
	if !ok {
		return false, wrapEvaluationError("expr", guard, fmt.Errorf("guard returned %T, want bool", out))
	}
	return pass, nil
}

func (e *ExprGuardEvaluator) loadOrCompile(guard string) (*exprvm.Program, error) {
	e.mu.RLock()
	program, ok := e.cache[guard]
	e.mu.RUnlock()
	if ok {
		return program, nil
	}

	program, err := exprlang.Compile(guard,
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
		exprlang.AsBool(),
	)
	if err != nil {
		return nil, wrapEvaluationError("expr", guard, err)
	}

	e.mu.Lock()
	e.cache[guard] = program
	e.mu.Unlock()
	return program, nil
}
