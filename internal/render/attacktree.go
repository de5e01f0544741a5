package render

import (
	"fmt"
	"strings"

	"threatmap/internal/domain/model"
)

// AttackTree renders a threat and its transitive child threats as a DOT
// digraph, one edge per parent/child link. Only resolved child objects are
// walked; identifiers that were never reconciled do not appear.
func AttackTree(root *model.Threat) string {
	var b strings.Builder
	b.WriteString("digraph attack_tree {\n")
	fmt.Fprintf(&b, "  fontname=%q;\n", fontFace)

	seen := make(map[model.ID]bool)
	writeThreat(&b, root, seen)

	b.WriteString("}\n")
	return b.String()
}

func writeThreat(b *strings.Builder, t *model.Threat, seen map[model.ID]bool) {
	if seen[t.Identifier()] {
		return
	}
	seen[t.Identifier()] = true

	fmt.Fprintf(b, "  %q [label=%q, shape=rectangle, style=filled, fillcolor=%q, fontname=%q, fontsize=%d];\n",
		string(t.Identifier()), t.Name(), elementFill, fontFace, fontSize)
	for _, child := range t.ChildThreats() {
		fmt.Fprintf(b, "  %q -> %q;\n", string(t.Identifier()), string(child.Identifier()))
		writeThreat(b, child, seen)
	}
}
