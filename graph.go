package calc

import (
	"strconv"

	"github.com/awalterschulze/gographviz"
)

// Dot renders the tree as a Graphviz digraph. Each node is labeled with its
// token text and kind, and edges run from operators to their operands in
// operand order.
func (n *Node) Dot() (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("expr"); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}
	// Keep operands in order left to right.
	if err := g.AddAttr("expr", "ordering", "out"); err != nil {
		return "", err
	}
	err := n.walk(func(m *Node, id, parent int) error {
		name := "n" + strconv.Itoa(id)
		attrs := map[string]string{
			"label": strconv.Quote(m.tok.Text + "\n" + m.tok.Kind.String()),
		}
		if m.tok.Kind.IsLiteral() {
			attrs["shape"] = "box"
		}
		if err := g.AddNode("expr", name, attrs); err != nil {
			return err
		}
		if parent < 0 {
			return nil
		}
		return g.AddEdge("n"+strconv.Itoa(parent), name, true, nil)
	})
	if err != nil {
		return "", err
	}
	return g.String(), nil
}
