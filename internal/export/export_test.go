package export

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/pubnet/internal/coauthor"
	"github.com/pdiddy/pubnet/pkg/types"
)

// scenarioGraph has two connected authors (weight 2) and one isolated.
func scenarioGraph() *coauthor.Graph {
	return coauthor.BuildGraph([][]string{
		{"Smith J", "Doe A"},
		{"Smith J", "Doe A"},
		{"Lee K"},
	}, types.GraphConfig{})
}

// --- CSV ---

func TestWriteNodesCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteNodesCSV(&buf, scenarioGraph(), types.GraphConfig{}); err != nil {
		t.Fatalf("WriteNodesCSV: %v", err)
	}

	want := "id,label\n0,Smith J\n1,Doe A\n2,Lee K\n"
	if got := buf.String(); got != want {
		t.Errorf("nodes CSV = %q, want %q", got, want)
	}
}

func TestWriteNodesCSVDropIsolated(t *testing.T) {
	var buf bytes.Buffer
	cfg := types.GraphConfig{DropIsolated: true}
	if err := WriteNodesCSV(&buf, scenarioGraph(), cfg); err != nil {
		t.Fatalf("WriteNodesCSV: %v", err)
	}

	got := buf.String()
	if strings.Contains(got, "Lee K") {
		t.Errorf("nodes CSV still carries the isolated node:\n%s", got)
	}
	if !strings.Contains(got, "Smith J") || !strings.Contains(got, "Doe A") {
		t.Errorf("nodes CSV dropped connected nodes:\n%s", got)
	}
}

func TestWriteNodesCSVQuotesLabels(t *testing.T) {
	g := coauthor.BuildGraph([][]string{{"Consortium, International", "Doe A"}}, types.GraphConfig{})

	var buf bytes.Buffer
	if err := WriteNodesCSV(&buf, g, types.GraphConfig{}); err != nil {
		t.Fatalf("WriteNodesCSV: %v", err)
	}
	if !strings.Contains(buf.String(), `"Consortium, International"`) {
		t.Errorf("label with comma not quoted:\n%s", buf.String())
	}
}

func TestWriteEdgesCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEdgesCSV(&buf, scenarioGraph(), types.GraphConfig{}); err != nil {
		t.Fatalf("WriteEdgesCSV: %v", err)
	}

	// The canonically first endpoint "Doe A" holds node id 1.
	want := "source,target,weight\n1,0,2\n"
	if got := buf.String(); got != want {
		t.Errorf("edges CSV = %q, want %q", got, want)
	}
}

func TestWriteEdgesCSVMinWeight(t *testing.T) {
	g := coauthor.BuildGraph([][]string{
		{"A", "B"},
		{"A", "B"},
		{"A", "C"},
	}, types.GraphConfig{})

	var buf bytes.Buffer
	cfg := types.GraphConfig{MinWeight: 2}
	if err := WriteEdgesCSV(&buf, g, cfg); err != nil {
		t.Fatalf("WriteEdgesCSV: %v", err)
	}

	want := "source,target,weight\n0,1,2\n"
	if got := buf.String(); got != want {
		t.Errorf("edges CSV = %q, want only the weight-2 edge as %q", got, want)
	}
}

func TestExportFiles(t *testing.T) {
	dir := t.TempDir()
	nodesPath := filepath.Join(dir, "nodes.csv")
	edgesPath := filepath.Join(dir, "edges.csv")

	if err := ExportFiles(nodesPath, edgesPath, scenarioGraph(), types.GraphConfig{}); err != nil {
		t.Fatalf("ExportFiles: %v", err)
	}

	nodes, err := os.ReadFile(nodesPath)
	if err != nil {
		t.Fatalf("reading nodes file: %v", err)
	}
	if !strings.HasPrefix(string(nodes), "id,label\n") {
		t.Errorf("nodes file header = %q", string(nodes))
	}

	edges, err := os.ReadFile(edgesPath)
	if err != nil {
		t.Fatalf("reading edges file: %v", err)
	}
	if !strings.HasPrefix(string(edges), "source,target,weight\n") {
		t.Errorf("edges file header = %q", string(edges))
	}
}

// --- GraphML ---

func TestWriteGraphML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteGraphML(&buf, scenarioGraph(), types.GraphConfig{}); err != nil {
		t.Fatalf("WriteGraphML: %v", err)
	}
	got := buf.String()

	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`xmlns="http://graphml.graphdrawing.org/xmlns"`,
		`edgedefault="undirected"`,
		`<node id="n0">`,
		`<data key="label">Smith J</data>`,
		`<edge source="n1" target="n0">`,
		`<data key="weight">2</data>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("graphml output missing %q:\n%s", want, got)
		}
	}

	// The document must parse back.
	var doc graphmlDoc
	if err := xml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("re-parsing graphml: %v", err)
	}
	if len(doc.Graph.Nodes) != 3 || len(doc.Graph.Edges) != 1 {
		t.Errorf("re-parsed %d nodes, %d edges, want 3 and 1",
			len(doc.Graph.Nodes), len(doc.Graph.Edges))
	}
}

// --- JSON ---

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, scenarioGraph(), types.GraphConfig{}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var doc struct {
		Nodes []struct {
			ID     int    `json:"id"`
			Label  string `json:"label"`
			Degree int    `json:"degree"`
		} `json:"nodes"`
		Edges []struct {
			Source int `json:"source"`
			Target int `json:"target"`
			Weight int `json:"weight"`
		} `json:"edges"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("decoding output: %v", err)
	}

	if len(doc.Nodes) != 3 || len(doc.Edges) != 1 {
		t.Fatalf("decoded %d nodes, %d edges, want 3 and 1", len(doc.Nodes), len(doc.Edges))
	}
	if doc.Nodes[2].Label != "Lee K" || doc.Nodes[2].Degree != 0 {
		t.Errorf("Nodes[2] = %+v, want the isolated author with degree 0", doc.Nodes[2])
	}
	if doc.Edges[0].Weight != 2 {
		t.Errorf("edge weight = %d, want 2", doc.Edges[0].Weight)
	}
}

func TestWriteJSONEmptyGraph(t *testing.T) {
	var buf bytes.Buffer
	g := coauthor.BuildGraph(nil, types.GraphConfig{})
	if err := WriteJSON(&buf, g, types.GraphConfig{}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	got := buf.String()
	if strings.Contains(got, "null") {
		t.Errorf("empty graph must encode empty arrays, not null:\n%s", got)
	}
}

// --- ID file ---

func TestWriteIDFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pmids.txt")

	if err := WriteIDFile(path, []string{"31452104", "30000231"}); err != nil {
		t.Fatalf("WriteIDFile: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "31452104\n30000231\n"; string(got) != want {
		t.Errorf("id file = %q, want %q", got, want)
	}

	// A rerun truncates, never appends.
	if err := WriteIDFile(path, []string{"11111111"}); err != nil {
		t.Fatalf("WriteIDFile: %v", err)
	}
	got, err = os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "11111111\n"; string(got) != want {
		t.Errorf("id file after rerun = %q, want %q", got, want)
	}
}

func TestWriteIDFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pmids.txt")
	if err := WriteIDFile(path, nil); err != nil {
		t.Fatalf("WriteIDFile: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("id file = %q, want empty", got)
	}
}
