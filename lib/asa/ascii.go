package asa

import (
	"fmt"
	"io"
	"strings"
)

// ASCIIArt renders the subtree rooted at n as indented text for
// diagnostics, generalizing containers.RBTree's test-only ASCIIArt
// helper from a two-child binary node to a 2-3 tree node holding one
// or two keys and zero, two, or three children.
func (n *TreeNode[K]) ASCIIArt() string {
	var out strings.Builder
	n.asciiArt(&out, "")
	return out.String()
}

func (n *TreeNode[K]) asciiArt(w io.Writer, indent string) {
	if n == nil {
		fmt.Fprintf(w, "%snil\n", indent)
		return
	}

	keys := make([]string, len(n.Keys))
	for i, k := range n.Keys {
		keys[i] = fmt.Sprintf("%v", k.Key)
		if k.Count > 1 {
			keys[i] += fmt.Sprintf("×%d", k.Count)
		}
	}
	fmt.Fprintf(w, "%s[%s]\n", indent, strings.Join(keys, " | "))
	for _, c := range n.Children {
		c.asciiArt(w, indent+"    ")
	}
}

// ASCIIArt renders the whole engine's tree, or "empty" if it holds no
// keys.
func (e *Engine[K]) ASCIIArt() string {
	if e.root == nil {
		return "empty\n"
	}
	return e.root.ASCIIArt()
}
