// Package graph holds the reference-graph walks used by the composer and the
// type deriver.
package graph

import "fmt"

type visitState uint8

const (
	stateVisiting visitState = iota + 1
	stateDone
)

// CycleError reports a cycle. Path starts and ends with the same key.
type CycleError[K comparable] struct {
	Path []K
}

func (e CycleError[K]) Error() string {
	return fmt.Sprintf("cycle detected: %v", e.Path)
}

// Config configures cycle detection traversal. Nodes for which Exists
// returns false are skipped; missing targets are reported elsewhere.
type Config[K comparable] struct {
	Exists func(K) bool
	Next   func(K) []K
	Starts []K
}

// DetectCycle walks directed edges from Starts and reports the first cycle.
func DetectCycle[K comparable](cfg Config[K]) error {
	if cfg.Next == nil {
		return fmt.Errorf("cycle detect: next function is nil")
	}
	states := make(map[K]visitState, len(cfg.Starts))
	var stack []K

	var visit func(key K) error
	visit = func(key K) error {
		switch states[key] {
		case stateVisiting:
			return CycleError[K]{Path: cyclePath(stack, key)}
		case stateDone:
			return nil
		}
		if cfg.Exists != nil && !cfg.Exists(key) {
			return nil
		}
		states[key] = stateVisiting
		stack = append(stack, key)
		for _, next := range cfg.Next(key) {
			if err := visit(next); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		states[key] = stateDone
		return nil
	}

	for _, start := range cfg.Starts {
		if err := visit(start); err != nil {
			return err
		}
	}
	return nil
}

// cyclePath cuts the stack at the first occurrence of key and closes the loop.
func cyclePath[K comparable](stack []K, key K) []K {
	for i, k := range stack {
		if k == key {
			out := make([]K, 0, len(stack)-i+1)
			out = append(out, stack[i:]...)
			return append(out, key)
		}
	}
	return []K{key, key}
}
