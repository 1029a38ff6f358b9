package sumtree

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

type nodeids[I SummarizedItem[S], S any] struct {
	idTable map[treeNode[I, S]]int
	max     int
}

func newtable[I SummarizedItem[S], S any]() nodeids[I, S] {
	return nodeids[I, S]{
		idTable: make(map[treeNode[I, S]]int),
		max:     1,
	}
}

func (ids nodeids[I, S]) find(node treeNode[I, S]) int {
	return ids.idTable[node]
}

func (ids *nodeids[I, S]) alloc(node treeNode[I, S]) int {
	if id := ids.find(node); id > 0 {
		return id
	}
	ids.idTable[node] = ids.max
	ids.max++
	return ids.max - 1
}

// Dot outputs the internal structure of a tree in Graphviz DOT format
// (for debugging purposes).
func (t *Tree[I, S]) Dot(w io.Writer) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	if t != nil && t.root != nil {
		ids := newtable[I, S]()
		nodelist, edgelist := "", ""
		t.dotNode(t.root, &ids, &nodelist, &edgelist)
		io.WriteString(w, nodelist)
		io.WriteString(w, edgelist)
	}
	io.WriteString(w, "}\n")
}

func (t *Tree[I, S]) dotNode(n treeNode[I, S], ids *nodeids[I, S], nodelist, edgelist *string) {
	id := ids.alloc(n)
	if n.isLeaf() {
		leaf := n.(*leafNode[I, S])
		label := fmt.Sprintf("%d\\n“%v”", len(leaf.items), leaf.summary)
		*nodelist += fmt.Sprintf("\"%d\" [label=\"%s\"%s];\n", id, label, dotNodeStyles(true))
		return
	}
	inner := n.(*innerNode[I, S])
	*nodelist += fmt.Sprintf("\"%d\" [label=%d%s];\n", id, inner.size, dotNodeStyles(false))
	for _, child := range inner.children {
		t.dotNode(child, ids, nodelist, edgelist)
		*edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", id, ids.find(child))
	}
}

func dotNodeStyles(isleaf bool) string {
	s := ",style=filled"
	if isleaf {
		s += ",shape=box"
	} else {
		s += ",color=black,fillcolor=\"#a3d7e4\""
		s += ",shape=circle"
	}
	return s
}

// Dump prints one line per tree node to w, indented by depth (for debugging
// purposes).
//
// When stdout is a terminal, lines are clipped to the terminal width; node
// kinds are colorized.
func (t *Tree[I, S]) Dump(w io.Writer) {
	tracer().Debugf("dumping tree of height %d", t.Height())
	if t == nil || t.root == nil {
		fmt.Fprintln(w, "empty tree")
		return
	}
	width := dumpLineWidth()
	palette := makeDumpPalette()
	t.dumpNode(w, t.root, 0, width, palette)
}

func makeDumpPalette() map[string]*color.Color {
	palette := map[string]*color.Color{
		"leaf":  color.New(color.FgGreen),
		"inner": color.New(color.FgBlue),
	}
	return palette
}

func (t *Tree[I, S]) dumpNode(w io.Writer, n treeNode[I, S], depth, width int, palette map[string]*color.Color) {
	indent := strings.Repeat("  ", depth)
	if n.isLeaf() {
		leaf := n.(*leafNode[I, S])
		line := clipLine(fmt.Sprintf("%sleaf[%d] %v", indent, len(leaf.items), leaf.summary), width)
		palette["leaf"].Fprintln(w, line)
		return
	}
	inner := n.(*innerNode[I, S])
	line := clipLine(fmt.Sprintf("%snode(%d children, %d items) %v",
		indent, len(inner.children), inner.size, inner.summary), width)
	palette["inner"].Fprintln(w, line)
	for _, child := range inner.children {
		t.dumpNode(w, child, depth+1, width, palette)
	}
}

// dumpLineWidth finds a usable output width, falling back to 65 columns when
// stdout is not a terminal.
func dumpLineWidth() int {
	if !term.IsTerminal(0) {
		return 65
	}
	w, _, err := term.GetSize(0)
	if err != nil {
		return 65
	}
	switch {
	case w > 65:
		return w - 10
	case w > 30:
		return w - 5
	case w > 10:
		return w
	default:
		return 10
	}
}

func clipLine(line string, width int) string {
	runes := []rune(line)
	if len(runes) <= width {
		return line
	}
	return string(runes[:width-1]) + "…"
}
