package graph

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// nodeLinkDocument is the JSON export shape: flat node and edge lists,
// loadable by most graph tooling.
type nodeLinkDocument struct {
	Directed bool   `json:"directed"`
	Nodes    []Node `json:"nodes"`
	Edges    []Edge `json:"edges"`
}

// WriteJSON writes the graph as an indented node-link JSON document
func WriteJSON(g *Graph, path string) error {
	doc := nodeLinkDocument{
		Directed: true,
		Nodes:    g.Nodes(),
		Edges:    g.Edges(),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal graph: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write graph: %w", err)
	}
	return nil
}

// GraphML export types. Attribute keys are declared up front, then each
// node and edge carries its values as <data> elements.
type graphmlDoc struct {
	XMLName xml.Name     `xml:"graphml"`
	Xmlns   string       `xml:"xmlns,attr"`
	Keys    []graphmlKey `xml:"key"`
	Graph   graphmlGraph `xml:"graph"`
}

type graphmlKey struct {
	ID       string `xml:"id,attr"`
	For      string `xml:"for,attr"`
	AttrName string `xml:"attr.name,attr"`
	AttrType string `xml:"attr.type,attr"`
}

type graphmlGraph struct {
	ID          string        `xml:"id,attr"`
	EdgeDefault string        `xml:"edgedefault,attr"`
	Nodes       []graphmlNode `xml:"node"`
	Edges       []graphmlEdge `xml:"edge"`
}

type graphmlNode struct {
	ID   string        `xml:"id,attr"`
	Data []graphmlData `xml:"data"`
}

type graphmlEdge struct {
	Source string        `xml:"source,attr"`
	Target string        `xml:"target,attr"`
	Data   []graphmlData `xml:"data"`
}

type graphmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// WriteGraphML writes the graph in GraphML, suitable for Neo4j and Gephi
// imports.
func WriteGraphML(g *Graph, path string) error {
	nodeKeys := collectAttrNames(g.Nodes(), nil)
	edgeKeys := collectAttrNames(nil, g.Edges())

	doc := graphmlDoc{
		Xmlns: "http://graphml.graphdrawing.org/xmlns",
		Graph: graphmlGraph{ID: "G", EdgeDefault: "directed"},
	}

	doc.Keys = append(doc.Keys, graphmlKey{ID: "type", For: "node", AttrName: "type", AttrType: "string"})
	for _, name := range nodeKeys {
		doc.Keys = append(doc.Keys, graphmlKey{ID: "n_" + name, For: "node", AttrName: name, AttrType: "string"})
	}
	doc.Keys = append(doc.Keys, graphmlKey{ID: "relation", For: "edge", AttrName: "relation", AttrType: "string"})
	for _, name := range edgeKeys {
		doc.Keys = append(doc.Keys, graphmlKey{ID: "e_" + name, For: "edge", AttrName: name, AttrType: "string"})
	}

	for _, n := range g.Nodes() {
		gn := graphmlNode{ID: n.ID}
		gn.Data = append(gn.Data, graphmlData{Key: "type", Value: n.Type})
		for _, name := range sortedAttrNames(n.Attrs) {
			gn.Data = append(gn.Data, graphmlData{Key: "n_" + name, Value: n.Attrs[name]})
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, gn)
	}

	for _, e := range g.Edges() {
		ge := graphmlEdge{Source: e.From, Target: e.To}
		ge.Data = append(ge.Data, graphmlData{Key: "relation", Value: e.Relation})
		for _, name := range sortedAttrNames(e.Attrs) {
			ge.Data = append(ge.Data, graphmlData{Key: "e_" + name, Value: e.Attrs[name]})
		}
		doc.Graph.Edges = append(doc.Graph.Edges, ge)
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal graphml: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	out := append([]byte(xml.Header), data...)
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("write graphml: %w", err)
	}
	return nil
}

// WriteDOT writes the graph in Graphviz DOT format for quick visual
// inspection with dot or neato.
func WriteDOT(g *Graph, path string) error {
	var sb strings.Builder
	sb.WriteString("digraph civigraph {\n")
	sb.WriteString("  rankdir=LR;\n")

	for _, n := range g.Nodes() {
		label := n.ID
		if name, ok := n.Attrs["name"]; ok && name != "" {
			label = name
		}
		fmt.Fprintf(&sb, "  %q [label=%q, shape=%s];\n", n.ID, label, dotShape(n.Type))
	}
	for _, e := range g.Edges() {
		fmt.Fprintf(&sb, "  %q -> %q [label=%q];\n", e.From, e.To, e.Relation)
	}
	sb.WriteString("}\n")

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("write dot: %w", err)
	}
	return nil
}

func dotShape(nodeType string) string {
	switch nodeType {
	case NodePerson:
		return "ellipse"
	case NodeBill:
		return "box"
	case NodeOrganization:
		return "hexagon"
	case NodeProject:
		return "diamond"
	}
	return "ellipse"
}

// collectAttrNames gathers the distinct attribute names across nodes or
// edges, sorted for stable key declarations.
func collectAttrNames(nodes []Node, edges []Edge) []string {
	seen := make(map[string]bool)
	for _, n := range nodes {
		for name := range n.Attrs {
			seen[name] = true
		}
	}
	for _, e := range edges {
		for name := range e.Attrs {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedAttrNames(attrs map[string]string) []string {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
