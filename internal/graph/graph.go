package graph

import "sort"

// Node types
const (
	NodePerson       = "Person"
	NodeOrganization = "Organization"
	NodeBill         = "Bill"
	NodeProject      = "Project"
)

// Edge relations
const (
	EdgeVotedOn     = "VOTED_ON"
	EdgeMemberOf    = "MEMBER_OF"
	EdgeMentionedIn = "MENTIONED_IN"
	EdgeAuthorizes  = "AUTHORIZES"
	EdgeRelatesTo   = "RELATES_TO"
)

// Node is one entity in the knowledge graph. IDs carry a type prefix
// (person:, org:, bill:, project:) so names from different classes never
// collide.
type Node struct {
	ID    string            `json:"id"`
	Type  string            `json:"type"`
	Attrs map[string]string `json:"attrs,omitempty"`
}

// Edge is a directed relationship between two nodes
type Edge struct {
	From     string            `json:"from"`
	To       string            `json:"to"`
	Relation string            `json:"relation"`
	Attrs    map[string]string `json:"attrs,omitempty"`
}

// Graph is a directed graph with at most one edge per (from, to) pair,
// insertion-ordered for deterministic exports.
type Graph struct {
	nodes     []Node
	nodeIndex map[string]int
	edges     []Edge
	edgeIndex map[[2]string]int
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{
		nodeIndex: make(map[string]int),
		edgeIndex: make(map[[2]string]int),
	}
}

// AddNode inserts or updates a node. Re-adding an existing ID replaces
// its attributes, mirroring repeated mentions across transcripts.
func (g *Graph) AddNode(id, nodeType string, attrs map[string]string) {
	if i, ok := g.nodeIndex[id]; ok {
		g.nodes[i].Attrs = attrs
		return
	}
	g.nodeIndex[id] = len(g.nodes)
	g.nodes = append(g.nodes, Node{ID: id, Type: nodeType, Attrs: attrs})
}

// HasNode reports whether a node with the given ID exists
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodeIndex[id]
	return ok
}

// AddEdge inserts an edge. The first edge between a pair of nodes wins;
// later relations between the same endpoints are ignored.
func (g *Graph) AddEdge(from, to, relation string, attrs map[string]string) bool {
	key := [2]string{from, to}
	if _, ok := g.edgeIndex[key]; ok {
		return false
	}
	g.edgeIndex[key] = len(g.edges)
	g.edges = append(g.edges, Edge{From: from, To: to, Relation: relation, Attrs: attrs})
	return true
}

// HasEdge reports whether any edge connects from to to
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.edgeIndex[[2]string{from, to}]
	return ok
}

// Nodes returns the nodes in insertion order
func (g *Graph) Nodes() []Node { return g.nodes }

// Edges returns the edges in insertion order
func (g *Graph) Edges() []Edge { return g.edges }

// Stats summarizes the graph by node type and edge relation
type Stats struct {
	Nodes       int
	Edges       int
	NodesByType map[string]int
	EdgesByType map[string]int
}

// Stats computes node and edge counts by type
func (g *Graph) Stats() Stats {
	s := Stats{
		Nodes:       len(g.nodes),
		Edges:       len(g.edges),
		NodesByType: make(map[string]int),
		EdgesByType: make(map[string]int),
	}
	for _, n := range g.nodes {
		s.NodesByType[n.Type]++
	}
	for _, e := range g.edges {
		s.EdgesByType[e.Relation]++
	}
	return s
}

// SortedKeys returns the keys of a count map in lexicographic order,
// used when printing stats.
func SortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
