// Package model is the probability-model collaborator the cmvns samplers
// consume: a minimal node abstraction over random variables with cached
// values, explicit dependency (child) sets, and log-density evaluation.
//
// 🚀 What is a Node?
//
//	A tagged variant over the two node kinds a sampler needs:
//	  • Stochastic     — owns a value and a log-density function;
//	    may report a zero-probability state via ErrZeroDensity
//	  • Deterministic  — owns a cached value and a compute function
//	    of its parents; recomputed when an upstream value changes
//
// The dependency set is injected explicitly: samplers receive the nodes
// they must recompute as constructor arguments and never discover them
// by walking a live graph. Dispatch is on the Kind tag, never on
// duck-typed attribute probing.
//
// ✨ Cache discipline
//
//   - SetValue / ForceCache snapshot the previous committed value, so
//     Revert restores it bit-exactly
//   - Recompute re-derives a deterministic cache from its parents
//   - CheckCached recomputes and compares against the cache; any
//     disagreement is ErrInconsistent — a fatal bookkeeping defect,
//     never to be swallowed
//   - EvalChildren force-recomputes an entire downstream cone in a
//     fixed order, consistency-checking every node it touches
//
// Nothing here is concurrency-safe: exactly one sampler owns and
// mutates a node set per sweep, per the sequential-sweep execution
// model.
package model
