package coauthor

// unionFind tracks connected components over dense integer ids with path
// compression and union by rank.
type unionFind struct {
	parent []int
	rank   []int
	size   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{
		parent: make([]int, n),
		rank:   make([]int, n),
		size:   make([]int, n),
	}
	for i := range uf.parent {
		uf.parent[i] = i
		uf.size[i] = 1
	}
	return uf
}

// find returns the root of x's component, compressing the path walked.
func (uf *unionFind) find(x int) int {
	if uf.parent[x] != x {
		uf.parent[x] = uf.find(uf.parent[x])
	}
	return uf.parent[x]
}

// union merges the components containing a and b. Returns true if they
// were separate.
func (uf *unionFind) union(a, b int) bool {
	rootA, rootB := uf.find(a), uf.find(b)
	if rootA == rootB {
		return false
	}
	if uf.rank[rootA] < uf.rank[rootB] {
		rootA, rootB = rootB, rootA
	}
	uf.parent[rootB] = rootA
	uf.size[rootA] += uf.size[rootB]
	if uf.rank[rootA] == uf.rank[rootB] {
		uf.rank[rootA]++
	}
	return true
}

// components counts the distinct roots.
func (uf *unionFind) components() int {
	n := 0
	for i := range uf.parent {
		if uf.find(i) == i {
			n++
		}
	}
	return n
}

// componentSize returns the member count of x's component.
func (uf *unionFind) componentSize(x int) int {
	return uf.size[uf.find(x)]
}
