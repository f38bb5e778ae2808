package calc

import (
	"strings"
)

// Node is a node in the expression tree. Literals are leaves; unary operators
// have one child and binary operators have two, in operand order. A Node
// exclusively owns its children.
type Node struct {
	tok      Token
	children []*Node
	// reduced is set once the node is complete: a literal, a bracketed
	// group, or an operator with its operands attached.
	reduced bool
}

// Token returns the token the node was created from.
func (n *Node) Token() Token {
	return n.tok
}

// Kind is a shortcut for n.Token().Kind.
func (n *Node) Kind() Kind {
	return n.tok.Kind
}

// Children returns a copy of the node's operands.
func (n *Node) Children() []*Node {
	return append(([]*Node)(nil), n.children...)
}

// String creates a fully parenthesized representation of the tree. The result
// parses to an identical tree.
func (n *Node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *Node) fmt(b *strings.Builder) {
	switch n.tok.Kind.Arity() {
	case Nullary:
		b.WriteString(n.tok.Text)
	case Unary:
		b.WriteByte('(')
		b.WriteString(n.tok.Text)
		n.children[0].fmt(b)
		b.WriteByte(')')
	case Binary:
		b.WriteByte('(')
		n.children[0].fmt(b)
		b.WriteString(" " + n.tok.Text + " ")
		n.children[1].fmt(b)
		b.WriteByte(')')
	default:
		// Hidden nodes never survive parsing. Use invalid characters.
		b.WriteString("$" + n.tok.Kind.String() + "$")
	}
}

// walk calls f on n and its descendants in pre-order. id is the pre-order
// index of each node and parent is the index of its parent, or -1 for n.
func (n *Node) walk(f func(m *Node, id, parent int) error) error {
	id := 0
	var rec func(m *Node, parent int) error
	rec = func(m *Node, parent int) error {
		me := id
		id++
		if err := f(m, me, parent); err != nil {
			return err
		}
		for _, c := range m.children {
			if err := rec(c, me); err != nil {
				return err
			}
		}
		return nil
	}
	return rec(n, -1)
}
