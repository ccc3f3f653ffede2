package conf

import (
	"fmt"
	"maps"
)

// Tree is a nested lookup table. Inner nodes are map[string]any (or Tree)
// and leaves are strings.
//
// Depending on which dimensions are enabled, a Tree is keyed by
// source → section → item, source → item, section → item, or item alone.
type Tree map[string]any

// Clone returns a deep copy of t.
func (t Tree) Clone() Tree {
	if t == nil {
		return nil
	}

	return Tree(cloneNode(map[string]any(t)))
}

func cloneNode(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))

	for k, v := range m {
		if sub, ok := asNode(v); ok {
			out[k] = cloneNode(sub)
		} else {
			out[k] = v
		}
	}

	return out
}

// asNode reports whether v is an inner node.
func asNode(v any) (map[string]any, bool) {
	switch n := v.(type) {
	case map[string]any:
		return n, true
	case Tree:
		return map[string]any(n), true
	default:
		return nil, false
	}
}

// asLeaf reports whether v is a leaf and returns its string form.
func asLeaf(v any) (string, bool) {
	switch l := v.(type) {
	case nil:
		return "", false
	case string:
		return l, true
	case map[string]any, Tree:
		return "", false
	default:
		return fmt.Sprint(l), true
	}
}

// step is one level of a descent.
type step struct {
	reason Reason
	key    string
}

// descend walks root along path. It returns the leaf value, or the
// NotFoundError for the first step that is absent.
func descend(root map[string]any, path []step) (string, error) {
	node := root

	for i, s := range path {
		v, ok := node[s.key]

		if i == len(path)-1 {
			if leaf, isLeaf := asLeaf(v); ok && isLeaf {
				return leaf, nil
			}

			return "", notFound(s.reason, s.key)
		}

		if node, ok = asNode(v); !ok {
			return "", notFound(s.reason, s.key)
		}
	}

	return "", notFound(ReasonItem, "")
}

// merge shallow-merges src into dst: top-level keys of src replace those of
// dst.
func merge(dst, src map[string]any) {
	maps.Copy(dst, src)
}
