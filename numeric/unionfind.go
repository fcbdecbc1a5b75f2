package numeric

import "github.com/sketchsolve/core/sketch"

// unionFind is a disjoint-set structure over parameter handles, used by
// Substitution to merge parameters an equality equation (p - q = 0) has
// proven identical, with path compression and union by rank.
type unionFind struct {
	parent map[sketch.ParamHandle]sketch.ParamHandle
	rank   map[sketch.ParamHandle]int
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[sketch.ParamHandle]sketch.ParamHandle), rank: make(map[sketch.ParamHandle]int)}
}

func (u *unionFind) add(h sketch.ParamHandle) {
	if _, ok := u.parent[h]; !ok {
		u.parent[h] = h
		u.rank[h] = 0
	}
}

// find walks up until the root (parent[h] == h), compressing the path as it
// goes so repeated lookups stay near O(1).
func (u *unionFind) find(h sketch.ParamHandle) sketch.ParamHandle {
	for u.parent[h] != h {
		u.parent[h] = u.parent[u.parent[h]]
		h = u.parent[h]
	}
	return h
}

// union merges the sets containing a and b, attaching the shallower tree
// under the deeper one (union by rank).
func (u *unionFind) union(a, b sketch.ParamHandle) {
	rootA, rootB := u.find(a), u.find(b)
	if rootA == rootB {
		return
	}
	switch {
	case u.rank[rootA] < u.rank[rootB]:
		u.parent[rootA] = rootB
	case u.rank[rootA] > u.rank[rootB]:
		u.parent[rootB] = rootA
	default:
		u.parent[rootB] = rootA
		u.rank[rootA]++
	}
}
