package extensibility

import (
	"fmt"
	"log/slog"
	"sync"

	celgo "github.com/google/cel-go/cel"

	"github.com/comalice/storex/internal/primitives"
)

// CELEvaluatorOption configures the CEL evaluator.
type CELEvaluatorOption func(*CELGuardEvaluator)

// CELWithLogger wires a logger for guard evaluation failures.
func CELWithLogger(logger *slog.Logger) CELEvaluatorOption {
	return func(e *CELGuardEvaluator) {
		e.logger = logger
	}
}

// CELGuardEvaluator executes guard expressions using cel-go. Guards see the
// whole snapshot as a "state" map plus an "action" map, e.g.
// `state.count < 15 && action.type == "ADD"`.
type CELGuardEvaluator struct {
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string]celgo.Program
}

// NewCELGuardEvaluator constructs a guard evaluator backed by cel-go.
func NewCELGuardEvaluator(opts ...CELEvaluatorOption) *CELGuardEvaluator {
	e := &CELGuardEvaluator{
		cache: make(map[string]celgo.Program),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Eval implements core.GuardEvaluator, failing closed on any error.
func (e *CELGuardEvaluator) Eval(state map[string]any, guard string, action primitives.Action) bool {
	pass, err := e.Evaluate(state, guard, action)
	if err != nil {
		if e.logger != nil {
			e.logger.Warn("guard evaluation failed", "error", err)
		}
		return false
	}
	return pass
}

// Evaluate compiles and runs guard against the state snapshot.
func (e *CELGuardEvaluator) Evaluate(state map[string]any, guard string, action primitives.Action) (bool, error) {
	if guard == "" {
		return true, nil
	}
	program, err := e.loadOrCompile(guard)
	if err != nil {
		return false, err
	}

	out, _, err := program.Eval(map[string]any{
		"state":  state,
		"action": actionEnv(action),
	})
	if err != nil {
		return false, wrapEvaluationError("cel", guard, err)
	}
	pass, ok := out.Value().(bool)
	if !ok {
		return false, wrapEvaluationError("cel", guard, fmt.Errorf("guard returned %T, want bool", out.Value()))
	}
	return pass, nil
}

func (e *CELGuardEvaluator) loadOrCompile(guard string) (celgo.Program, error) {
	e.mu.RLock()
	program, ok := e.cache[guard]
	e.mu.RUnlock()
	if ok {
		return program, nil
	}

	env, err := celgo.NewEnv(
		celgo.Variable("state", celgo.DynType),
		celgo.Variable("action", celgo.DynType),
	)
	if err != nil {
		return nil, wrapEvaluationError("cel", guard, err)
	}
	ast, issues := env.Compile(guard)
	if issues != nil && issues.Err() != nil {
		return nil, wrapEvaluationError("cel", guard, issues.Err())
	}
	program, err = env.Program(ast)
	if err != nil {
		return nil, wrapEvaluationError("cel", guard, err)
	}

	e.mu.Lock()
	e.cache[guard] = program
	e.mu.Unlock()
	return program, nil
}
