package node

import "strings"

// Stats summarises a document tree.
type Stats struct {
	Nodes  int
	Depth  int
	Kinds  map[string]int
	Images int
	// ImageBytes is the approximate decoded size of all image payloads.
	ImageBytes uint64
}

// Count walks n depth-first and collects Stats.
func Count(n Node) Stats {
	s := Stats{Kinds: map[string]int{}}
	s.walk(n, 1)
	return s
}

func (s *Stats) walk(n Node, depth int) {
	if n == nil {
		return
	}
	s.Nodes++
	s.Kinds[KindOf(n)]++
	if depth > s.Depth {
		s.Depth = depth
	}

	switch v := n.(type) {
	case Iter:
		for _, c := range v {
			s.walk(c, depth+1)
		}
	case Verbatim:
		s.walk(v.Content, depth+1)
	case Image:
		s.Images++
		blob := v.Blob
		if i := strings.Index(blob, ","); i >= 0 {
			blob = blob[i+1:]
		}
		s.ImageBytes += uint64(len(blob)) * 3 / 4
	}
}
