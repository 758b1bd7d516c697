package coauthor

import (
	"reflect"
	"testing"

	"github.com/pdiddy/pubnet/pkg/types"
)

func buildDefault(lists [][]string) *Graph {
	return BuildGraph(lists, types.GraphConfig{})
}

func checkEdges(t *testing.T, g *Graph, want []Edge) {
	t.Helper()
	if !reflect.DeepEqual(g.Edges, want) {
		t.Errorf("Edges = %+v, want %+v", g.Edges, want)
	}
}

// --- Author list extraction ---

func TestAuthorLists(t *testing.T) {
	records := []types.Record{
		&types.Article{
			PubmedID: "1",
			Authors: []types.Author{
				{LastName: "Smith", ForeName: "J"},
				{LastName: "Doe", ForeName: "A"},
			},
		},
		&types.Article{PubmedID: "2"},
		&types.Book{
			PubmedID: "3",
			Authors: []types.Author{
				{CollectiveName: "REACH Study Group"},
				{},
			},
		},
	}

	got := AuthorLists(records)
	want := [][]string{
		{"Smith J", "Doe A"},
		{"REACH Study Group"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AuthorLists = %v, want %v (authorless records and empty names dropped)", got, want)
	}
}

// --- Pair tally ---

func TestBuildGraphPairsOfThree(t *testing.T) {
	g := buildDefault([][]string{{"Smith J", "Doe A", "Lee K"}})

	checkEdges(t, g, []Edge{
		{A: "Doe A", B: "Lee K", Weight: 1},
		{A: "Doe A", B: "Smith J", Weight: 1},
		{A: "Lee K", B: "Smith J", Weight: 1},
	})
	if len(g.Nodes) != 3 {
		t.Errorf("nodes = %d, want 3", len(g.Nodes))
	}
}

func TestBuildGraphSmallListsYieldNoEdges(t *testing.T) {
	g := buildDefault([][]string{{"Smith J"}, {"Doe A"}, {}})

	if len(g.Edges) != 0 {
		t.Errorf("Edges = %+v, want none from lists under two names", g.Edges)
	}
	if len(g.Nodes) != 2 {
		t.Errorf("nodes = %d, want 2 (names still become nodes)", len(g.Nodes))
	}
	for _, n := range g.Nodes {
		if n.Degree != 0 {
			t.Errorf("node %q degree = %d, want 0", n.Label, n.Degree)
		}
	}
}

func TestBuildGraphRepeatedPair(t *testing.T) {
	g := buildDefault([][]string{
		{"Smith J", "Doe A"},
		{"Smith J", "Doe A"},
	})

	checkEdges(t, g, []Edge{{A: "Doe A", B: "Smith J", Weight: 2}})
	if len(g.Nodes) != 2 {
		t.Errorf("nodes = %d, want exactly the two authors", len(g.Nodes))
	}
}

func TestBuildGraphListingOrderIrrelevant(t *testing.T) {
	g := buildDefault([][]string{
		{"Smith J", "Doe A"},
		{"Doe A", "Smith J"},
	})

	checkEdges(t, g, []Edge{{A: "Doe A", B: "Smith J", Weight: 2}})
}

func TestBuildGraphWeightConservation(t *testing.T) {
	lists := [][]string{
		{"A", "B", "C", "D"},
		{"A", "B"},
		{"C", "E", "F"},
		{"G"},
	}
	// C(4,2) + C(2,2) + C(3,2) + C(1,2) = 6 + 1 + 3 + 0.
	wantSum := 10

	g := buildDefault(lists)
	sum := 0
	for _, e := range g.Edges {
		sum += e.Weight
	}
	if sum != wantSum {
		t.Errorf("weight sum = %d, want %d (one per 2-combination)", sum, wantSum)
	}
}

func TestBuildGraphScenario(t *testing.T) {
	g := buildDefault([][]string{
		{"Smith J", "Doe A"},
		{"Smith J", "Doe A"},
		{"Lee K"},
	})

	checkEdges(t, g, []Edge{{A: "Doe A", B: "Smith J", Weight: 2}})

	labels := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		labels[i] = n.Label
	}
	if !reflect.DeepEqual(labels, []string{"Smith J", "Doe A", "Lee K"}) {
		t.Errorf("labels = %v, want all three authors in first-seen order", labels)
	}

	stats := g.Stats()
	want := Stats{Nodes: 3, Edges: 1, WeightSum: 2, Components: 2, Largest: 2, Isolated: 1}
	if stats != want {
		t.Errorf("Stats = %+v, want %+v", stats, want)
	}
}

func TestBuildGraphDeterminism(t *testing.T) {
	lists := [][]string{
		{"Nguyen Thanh", "Okafor Chinwe", "Hartmann Lena"},
		{"Okafor Chinwe", "Nguyen Thanh"},
		{"Hartmann Lena", "Berg Nils"},
	}

	first := buildDefault(lists)
	second := buildDefault(lists)

	if !reflect.DeepEqual(first.Nodes, second.Nodes) {
		t.Errorf("node order differs across runs:\n%+v\n%+v", first.Nodes, second.Nodes)
	}
	if !reflect.DeepEqual(first.Edges, second.Edges) {
		t.Errorf("edge order differs across runs:\n%+v\n%+v", first.Edges, second.Edges)
	}
}

// --- Self-pairs ---

func TestBuildGraphSelfPairs(t *testing.T) {
	lists := [][]string{{"Smith J", "Smith J", "Doe A"}}

	g := buildDefault(lists)
	checkEdges(t, g, []Edge{{A: "Doe A", B: "Smith J", Weight: 2}})

	g = BuildGraph(lists, types.GraphConfig{KeepSelfLoops: true})
	checkEdges(t, g, []Edge{
		{A: "Doe A", B: "Smith J", Weight: 2},
		{A: "Smith J", B: "Smith J", Weight: 1},
	})

	id, ok := g.NodeID("Smith J")
	if !ok {
		t.Fatal("NodeID(Smith J) not found")
	}
	if got := g.Nodes[id].Degree; got != 2 {
		t.Errorf("self-loop degree = %d, want 2 (the loop counts once)", got)
	}
}

// --- Node identity ---

func TestNodeIDsInsertionOrder(t *testing.T) {
	g := buildDefault([][]string{
		{"Smith J", "Doe A"},
		{"Lee K", "Smith J"},
	})

	for i, n := range g.Nodes {
		if n.ID != i {
			t.Errorf("Nodes[%d].ID = %d, want the slice index", i, n.ID)
		}
	}
	for want, label := range map[int]string{0: "Smith J", 1: "Doe A", 2: "Lee K"} {
		id, ok := g.NodeID(label)
		if !ok || id != want {
			t.Errorf("NodeID(%q) = %d,%v, want %d", label, id, ok, want)
		}
	}
	if _, ok := g.NodeID("Nobody"); ok {
		t.Error("NodeID(Nobody) = found, want missing")
	}
}

// --- Stats ---

func TestStatsComponents(t *testing.T) {
	g := buildDefault([][]string{
		{"A", "B"},
		{"B", "C"},
		{"D", "E"},
		{"F"},
	})

	stats := g.Stats()
	want := Stats{Nodes: 6, Edges: 3, WeightSum: 3, Components: 3, Largest: 3, Isolated: 1}
	if stats != want {
		t.Errorf("Stats = %+v, want %+v", stats, want)
	}
}

func TestStatsEmptyGraph(t *testing.T) {
	stats := buildDefault(nil).Stats()
	if stats != (Stats{}) {
		t.Errorf("Stats = %+v, want zero values", stats)
	}
}
