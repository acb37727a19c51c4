package warehouse

import (
	"slices"

	"github.com/TheBitDrifter/mask"
)

type Operation int

const (
	OpAnd Operation = iota
	OpOr
	OpNot
)

// compositeNode combines its own component mask with child nodes. The mask
// is built once, when the node is created.
type compositeNode struct {
	op       Operation
	mask     mask.Mask
	hasMask  bool
	children []QueryNode
}

// leafNode is an And without children: a plain superset test.
type leafNode struct {
	mask mask.Mask
}

// query is a builder. Its root is the outermost node built so far, so
// q.And(a, q.Not(b)) evaluates the And.
type query struct {
	root QueryNode
}

func newQuery() Query {
	return &query{}
}

func componentMask(components []Component) mask.Mask {
	var m mask.Mask
	for _, comp := range components {
		m.Mark(uint32(comp.ComponentID()))
	}
	return m
}

func (n *compositeNode) Evaluate(archetype Archetype, world *World) bool {
	have := archetype.Mask()

	switch n.op {
	case OpAnd:
		if n.hasMask && !have.ContainsAll(n.mask) {
			return false
		}
		for _, child := range n.children {
			if !child.Evaluate(archetype, world) {
				return false
			}
		}
		return true

	case OpOr:
		if n.hasMask && have.ContainsAny(n.mask) {
			return true
		}
		for _, child := range n.children {
			if child.Evaluate(archetype, world) {
				return true
			}
		}
		return false

	case OpNot:
		for _, child := range n.children {
			if child.Evaluate(archetype, world) {
				return false
			}
		}
		return !n.hasMask || have.ContainsNone(n.mask)
	}
	return false
}

func (n *leafNode) Evaluate(archetype Archetype, _ *World) bool {
	return n.mask.IsEmpty() || archetype.Mask().ContainsAll(n.mask)
}

func (q *query) And(items ...interface{}) QueryNode {
	return q.node(OpAnd, items)
}

func (q *query) Or(items ...interface{}) QueryNode {
	return q.node(OpOr, items)
}

func (q *query) Not(items ...interface{}) QueryNode {
	return q.node(OpNot, items)
}

func (q *query) node(op Operation, items []interface{}) QueryNode {
	components, children := splitItems(items)

	var node QueryNode
	if op == OpAnd && len(children) == 0 {
		node = &leafNode{mask: componentMask(components)}
	} else {
		node = &compositeNode{
			op:       op,
			mask:     componentMask(components),
			hasMask:  len(components) > 0,
			children: children,
		}
	}

	if q.root == nil || slices.Contains(children, q.root) {
		q.root = node
	}
	return node
}

func splitItems(items []interface{}) ([]Component, []QueryNode) {
	var components []Component
	var children []QueryNode
	for _, item := range items {
		switch v := item.(type) {
		case Component:
			components = append(components, v)
		case []Component:
			components = append(components, v...)
		case QueryNode:
			children = append(children, v)
		}
	}
	return components, children
}

func (q *query) Evaluate(archetype Archetype, world *World) bool {
	if q.root == nil {
		return false
	}
	return q.root.Evaluate(archetype, world)
}
