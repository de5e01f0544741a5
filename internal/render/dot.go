// Package render emits Graphviz DOT text for data-flow diagrams and attack
// trees. It consumes the finalized element collection and the boundary
// forest; turning the DOT output into an image is left to external tools.
package render

import (
	"fmt"
	"strings"

	"threatmap/internal/domain/model"
)

const (
	fontFace    = "Arial"
	fontSize    = 14
	elementFill = "grey90"
)

// shapeFor resolves the per-variant rendering metadata. The variant set is
// closed, so a single switch here replaces per-type draw methods.
func shapeFor(k model.Kind) string {
	switch k {
	case model.KindProcess:
		return "circle"
	case model.KindExternalEntity:
		return "rectangle"
	case model.KindDatastore:
		return "cylinder"
	default:
		return "ellipse"
	}
}

// DFD renders the model's data-flow diagram: one node per plain element,
// one edge per dataflow, and nested clusters following the boundary forest.
func DFD(tm *model.ThreatModel) string {
	var b strings.Builder
	b.WriteString("digraph dfd {\n")
	fmt.Fprintf(&b, "  fontname=%q;\n", fontFace)
	if tm.Name() != "" {
		fmt.Fprintf(&b, "  label=%q;\n", tm.Name())
	}

	forest := tm.ResolveBoundaries()
	owners := leafOwners(forest)

	for _, root := range forest.Roots() {
		writeCluster(&b, tm, forest, owners, root, "  ")
	}

	for _, e := range tm.Elements() {
		switch e.Kind() {
		case model.KindBoundary, model.KindDataflow, model.KindBidirectionalDataflow:
			continue
		}
		if _, owned := owners[e.Identifier()]; owned {
			continue
		}
		writeNode(&b, e, "  ")
	}

	for _, e := range tm.Elements() {
		flow, ok := e.(*model.Dataflow)
		if !ok {
			continue
		}
		dir := "forward"
		if flow.Bidirectional() {
			dir = "both"
		}
		fmt.Fprintf(&b, "  %q -> %q [label=%q, dir=%s, fontname=%q, fontsize=%d];\n",
			string(flow.FirstID()), string(flow.SecondID()),
			flow.Name(), dir, fontFace, fontSize-2)
	}

	b.WriteString("}\n")
	return b.String()
}

// leafOwners maps each leaf node onto the boundary cluster it is drawn in.
// The forest order is root-first, so a leaf claimed by both an ancestor and
// a descendant ends up with the descendant, the innermost cluster.
func leafOwners(forest *model.BoundaryForest) map[model.ID]model.ID {
	owners := make(map[model.ID]model.ID)
	for _, boundary := range forest.Order() {
		for _, leaf := range forest.Leaves(boundary) {
			owners[leaf] = boundary.Identifier()
		}
	}
	return owners
}

func writeCluster(b *strings.Builder, tm *model.ThreatModel, forest *model.BoundaryForest,
	owners map[model.ID]model.ID, boundary *model.Boundary, indent string) {

	fmt.Fprintf(b, "%ssubgraph %q {\n", indent, "cluster_"+string(boundary.Identifier()))
	fmt.Fprintf(b, "%s  label=%q;\n", indent, boundary.Name())
	fmt.Fprintf(b, "%s  style=dashed;\n", indent)

	for _, leaf := range forest.Leaves(boundary) {
		if owners[leaf] != boundary.Identifier() {
			continue
		}
		entity, err := tm.Get(leaf)
		if err != nil {
			continue
		}
		if e, ok := entity.(model.Element); ok {
			writeNode(b, e, indent+"  ")
		}
	}

	for _, child := range forest.ChildrenOf(boundary.Identifier()) {
		writeCluster(b, tm, forest, owners, child, indent+"  ")
	}

	fmt.Fprintf(b, "%s}\n", indent)
}

func writeNode(b *strings.Builder, e model.Element, indent string) {
	fmt.Fprintf(b, "%s%q [label=%q, shape=%s, style=filled, fillcolor=%q, fontname=%q, fontsize=%d];\n",
		indent, string(e.Identifier()), e.Name(),
		shapeFor(e.Kind()), elementFill, fontFace, fontSize)
}
