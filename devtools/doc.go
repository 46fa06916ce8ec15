// Package devtools provides a record/replay layer for the store engine.
//
// The recorder journals every dispatched action together with the resulting
// state snapshot. Replay re-executes a journal through a fresh engine using
// the same code path as live dispatch, so a journal replayed from the
// initial state reproduces every intermediate snapshot exactly. Idempotency
// here is structural, not a special replay mode: there is no divergent
// branch for replayed actions.
//
// # Example Usage
//
//	store, _ := core.NewStore(config)
//	rec := devtools.NewRecorder(store)
//	rec.Dispatch(ctx, primitives.NewAction("ADD", nil))
//
//	final, _ := devtools.Replay(ctx, config, rec.Journal())
//	at2, _ := devtools.StateAt(ctx, config, rec.Journal(), 2)
//
// # Use Cases
//
//   - Time-travel debugging (inspect the state after any recorded step)
//   - Reproducing bug reports from a captured journal
//   - Verifying reducer determinism in tests
//   - Visualizing a session as a DOT timeline
package devtools
