package graph

import (
	"strings"

	"github.com/opencivics/civigraph/internal/model"
)

// Builder assembles the knowledge graph from extraction records and a
// resolution document. Every entity name passes through the alias map
// before becoming a node ID, so merged aliases collapse onto one node.
type Builder struct {
	bills    aliasIndex
	orgs     aliasIndex
	projects aliasIndex
}

// aliasIndex is a case-insensitive view over one alias map. Names absent
// from the map pass through verbatim.
type aliasIndex map[string]string

func newAliasIndex(m model.AliasMap) aliasIndex {
	idx := make(aliasIndex, len(m))
	for alias, canonical := range m {
		idx[strings.ToLower(alias)] = canonical
	}
	return idx
}

func (idx aliasIndex) resolve(name string) string {
	if canonical, ok := idx[strings.ToLower(name)]; ok {
		return canonical
	}
	return name
}

// NewBuilder creates a builder over the given resolution. A nil
// resolution leaves all names unresolved.
func NewBuilder(resolution *model.Resolution) *Builder {
	b := &Builder{}
	if resolution != nil {
		b.bills = newAliasIndex(resolution.Bills)
		b.orgs = newAliasIndex(resolution.Organizations)
		b.projects = newAliasIndex(resolution.Projects)
	}
	return b
}

// Build constructs the full graph: all nodes first, then edges, so edge
// guards can check that both endpoints exist.
func (b *Builder) Build(extractions []*model.TranscriptExtraction) *Graph {
	g := NewGraph()
	for _, extraction := range extractions {
		b.addNodes(g, extraction)
	}
	for _, extraction := range extractions {
		b.addEdges(g, extraction)
	}
	return g
}

func (b *Builder) addNodes(g *Graph, extraction *model.TranscriptExtraction) {
	for _, person := range extraction.People {
		g.AddNode("person:"+person.Name, NodePerson, map[string]string{
			"name":         person.Name,
			"role":         orDefault(person.Role, "member"),
			"organization": orDefault(person.Organization, "City Council"),
		})
	}

	for _, org := range extraction.Organizations {
		name := b.orgs.resolve(org.Name)
		g.AddNode("org:"+name, NodeOrganization, map[string]string{
			"name":     name,
			"org_type": orDefault(org.Type, "Missing"),
		})
	}

	for _, bill := range extraction.Bills {
		id := b.bills.resolve(bill.ID)
		g.AddNode("bill:"+id, NodeBill, map[string]string{
			"title":      bill.Title,
			"bill_type":  orDefault(bill.Type, "Missing"),
			"prediction": orDefault(string(bill.Prediction), "Missing"),
			"confidence": orDefault(string(bill.Confidence), "Missing"),
			"reasoning":  orDefault(bill.Reasoning, "Missing"),
		})
	}

	for _, project := range extraction.Projects {
		name := b.projects.resolve(project.Name)
		g.AddNode("project:"+name, NodeProject, map[string]string{
			"name":         name,
			"project_type": orDefault(project.Type, "Missing"),
			"location":     orDefault(project.Location, "Unknown"),
			"amount":       orDefault(project.Amount, "Unknown"),
		})
	}
}

func (b *Builder) addEdges(g *Graph, extraction *model.TranscriptExtraction) {
	// VOTED_ON: Person -> Bill
	for _, vote := range extraction.Votes {
		billNode := "bill:" + b.bills.resolve(vote.BillID)
		personNode := "person:" + vote.Person
		if g.HasNode(billNode) && g.HasNode(personNode) {
			g.AddEdge(personNode, billNode, EdgeVotedOn, map[string]string{
				"vote": string(vote.Vote),
			})
		}
	}

	// MEMBER_OF: Person -> Organization
	for _, person := range extraction.People {
		if person.Organization == "" {
			continue
		}
		personNode := "person:" + person.Name
		orgNode := "org:" + b.orgs.resolve(person.Organization)
		if g.HasNode(personNode) && g.HasNode(orgNode) {
			g.AddEdge(personNode, orgNode, EdgeMemberOf, map[string]string{
				"role": person.Role,
			})
		}
	}

	// MENTIONED_IN: Person -> Bill, only when no vote already links them
	for _, person := range extraction.People {
		personNode := "person:" + person.Name
		for _, bill := range extraction.Bills {
			billNode := "bill:" + b.bills.resolve(bill.ID)
			if g.HasNode(personNode) && g.HasNode(billNode) && !g.HasEdge(personNode, billNode) {
				g.AddEdge(personNode, billNode, EdgeMentionedIn, nil)
			}
		}
	}

	// AUTHORIZES: Bill -> Project, when the project name appears in the
	// bill title
	for _, project := range extraction.Projects {
		projectNode := "project:" + b.projects.resolve(project.Name)
		for _, bill := range extraction.Bills {
			billNode := "bill:" + b.bills.resolve(bill.ID)
			if g.HasNode(billNode) && g.HasNode(projectNode) &&
				strings.Contains(strings.ToLower(bill.Title), strings.ToLower(project.Name)) {
				g.AddEdge(billNode, projectNode, EdgeAuthorizes, nil)
			}
		}
	}

	// RELATES_TO: Bill -> Organization, for every co-mention
	for _, bill := range extraction.Bills {
		billNode := "bill:" + b.bills.resolve(bill.ID)
		for _, org := range extraction.Organizations {
			orgNode := "org:" + b.orgs.resolve(org.Name)
			if g.HasNode(billNode) && g.HasNode(orgNode) {
				g.AddEdge(billNode, orgNode, EdgeRelatesTo, nil)
			}
		}
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
