package sortedset

import (
	"fmt"
	"io"
	"strings"
)

// maxDotLabelItems limits the number of values printed into a bucket's label.
const maxDotLabelItems = 8

// Set2Dot outputs the bucket layout of a set in Graphviz DOT format
// (for debugging purposes).
//
// The set is drawn as a root node with one record per bucket. Each bucket
// record shows the bucket's starting effective index, its length and its
// leading values.
func Set2Dot(s *Set, w io.Writer) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	io.WriteString(w, "\trankdir=TB;\n")
	if s == nil {
		io.WriteString(w, "}\n")
		return
	}
	nodelist, edgelist := "", ""
	nodelist += fmt.Sprintf("\t\"set\" [label=\"%d items\\n%d buckets\" %s];\n",
		s.size, len(s.buckets), nodeDotStyles(false, false))
	pos := 0
	for i, b := range s.buckets {
		ID := i + 1
		full := b.len() >= s.cfg.MaxBucketSize-1
		label := fmt.Sprintf("#%d @%d (%d)\\n%s", i, pos, b.len(), dotLabel(b))
		nodelist += fmt.Sprintf("\t\"%d\" [label=\"%s\" %s];\n", ID, label, nodeDotStyles(true, full))
		edgelist += fmt.Sprintf("\t\"set\" -> \"%d\";\n", ID)
		if i > 0 {
			edgelist += fmt.Sprintf("\t\"%d\" -> \"%d\" [style=dotted,arrowhead=none];\n", ID-1, ID)
		}
		pos += b.len()
	}
	tracer().Debugf("set DOT: %d buckets", len(s.buckets))
	io.WriteString(w, nodelist)
	io.WriteString(w, edgelist)
	io.WriteString(w, "}\n")
}

func dotLabel(b *bucket) string {
	if b.len() == 0 {
		return "∅"
	}
	n := min(b.len(), maxDotLabelItems)
	s := joinValues(b.data[:n])
	if n < b.len() {
		s += ",…"
	}
	return strings.NewReplacer(`"`, `\"`, `\`, `\\`).Replace(s)
}

func nodeDotStyles(isBucket bool, highlight bool) string {
	s := ",style=filled"
	if isBucket {
		s += ",shape=box"
		if highlight {
			s += fmt.Sprintf(",fillcolor=\"%s\"", hexhlcolors[3])
		} else {
			s += fmt.Sprintf(",fillcolor=\"%s\"", hexcolors[1])
		}
	} else {
		s += ",color=black,fillcolor=\"#a3d7e4\""
		s += ",shape=circle"
	}
	return s
}

var hexhlcolors = [...]string{"#FFEEDD", "#FFDDCC", "#FFCCAA", "#FFBB88", "#FFAA66",
	"#FF9944", "#FF8822", "#FF7700", "#ff6600"}

var hexcolors = [...]string{"white", "#CCDDFF", "#AACCFF", "#88BBFF", "#66AAFF",
	"#4499FF", "#2288FF", "#0077FF", "#0066FF"}
