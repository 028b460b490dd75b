// Package orchestrator wires the parameter loader → template resolver →
// renderer → comparator → output writer pipeline, providing dependency
// injection friendly helpers for consumers that prefer a single entry point.
package orchestrator
