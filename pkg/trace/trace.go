// Package trace models the request-scope chain attached to resolution events.
//
// A chain is built by the resolution engine as it nests work: a collection request
// wraps collection steps, a step wraps the descriptor read for its node, and so on.
// Each node carries one Payload variant and a link to its parent. Listeners read the
// chain during event handling and must not retain it.
package trace

// Trace is one immutable node of a request-scope chain.
// A nil *Trace is a valid, empty chain.
type Trace struct {
	parent  *Trace
	payload Payload
}

// New starts a chain with payload at its root.
func New(payload Payload) *Trace {
	return &Trace{payload: payload}
}

// Child returns a node nested under t. t may be nil.
func (t *Trace) Child(payload Payload) *Trace {
	return &Trace{parent: t, payload: payload}
}

// Parent returns the enclosing node, or nil at the root.
func (t *Trace) Parent() *Trace {
	if t == nil {
		return nil
	}
	return t.parent
}

// Payload returns the node's payload, which may be nil.
func (t *Trace) Payload() Payload {
	if t == nil {
		return nil
	}
	return t.payload
}

// Depth returns the number of nodes from t up to the root.
func (t *Trace) Depth() int {
	depth := 0
	for n := t; n != nil; n = n.parent {
		depth++
	}
	return depth
}
