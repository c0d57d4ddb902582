package domain

// Node is a labeled knowledge-graph node with arbitrary string attributes.
type Node struct {
	ID    string
	Attrs map[string]string
}

// Graph is a read-only labeled graph of medical concepts.
// Edges are undirected; traversal is a linear scan by design.
type Graph struct {
	nodes []Node
	index map[string]int
	adj   map[string][]string
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		index: make(map[string]int),
		adj:   make(map[string][]string),
	}
}

// AddNode inserts a node, merging attributes if the ID already exists.
func (g *Graph) AddNode(id string, attrs map[string]string) {
	if i, ok := g.index[id]; ok {
		for k, v := range attrs {
			if g.nodes[i].Attrs == nil {
				g.nodes[i].Attrs = make(map[string]string)
			}
			g.nodes[i].Attrs[k] = v
		}
		return
	}
	g.index[id] = len(g.nodes)
	g.nodes = append(g.nodes, Node{ID: id, Attrs: attrs})
}

// AddEdge inserts an undirected edge, creating missing endpoints.
func (g *Graph) AddEdge(a, b string) {
	if _, ok := g.index[a]; !ok {
		g.AddNode(a, nil)
	}
	if _, ok := g.index[b]; !ok {
		g.AddNode(b, nil)
	}
	g.adj[a] = append(g.adj[a], b)
	g.adj[b] = append(g.adj[b], a)
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []Node { return g.nodes }

// Neighbors returns the adjacent node IDs in insertion order.
func (g *Graph) Neighbors(id string) []string { return g.adj[id] }

// Order returns the number of nodes.
func (g *Graph) Order() int { return len(g.nodes) }
