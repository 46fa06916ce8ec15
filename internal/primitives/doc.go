// Package primitives provides the foundational data structures for the
// store engine: the Action value type and the declarative StoreConfig.
//
// Core invariants:
// - Immutability where possible (Action)
// - Configs validate before any engine consumes them
// - Zero-allocation action construction on the hot path
package primitives
