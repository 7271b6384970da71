package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented dump of the tree rooted at n to w.
func Fprint(w io.Writer, n *Node) error {
	return fprint(w, n, 0)
}

func fprint(w io.Writer, n *Node, depth int) error {
	if n == nil {
		return nil
	}
	indent := strings.Repeat("  ", depth)
	var err error
	if n.Rule.IsLeaf() {
		_, err = fmt.Fprintf(w, "%s%s %q %s\n", indent, n.Rule, n.Text, n.Pos)
	} else {
		_, err = fmt.Fprintf(w, "%s%s %s\n", indent, n.Rule, n.Pos)
	}
	if err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := fprint(w, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}
