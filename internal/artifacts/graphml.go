package artifacts

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/medassist-ai/medassist/internal/domain"
)

// GraphML subset: attribute keys, nodes with <data> values, edges.
// Edge direction is ignored; the medical graph is traversed as
// undirected neighbors.

type graphmlFile struct {
	XMLName xml.Name       `xml:"graphml"`
	Keys    []graphmlKey   `xml:"key"`
	Graphs  []graphmlGraph `xml:"graph"`
}

type graphmlKey struct {
	ID       string `xml:"id,attr"`
	AttrName string `xml:"attr.name,attr"`
	For      string `xml:"for,attr"`
}

type graphmlGraph struct {
	Nodes []graphmlNode `xml:"node"`
	Edges []graphmlEdge `xml:"edge"`
}

type graphmlNode struct {
	ID   string        `xml:"id,attr"`
	Data []graphmlData `xml:"data"`
}

type graphmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

type graphmlEdge struct {
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
}

func loadGraphML(path string) (*domain.Graph, error) {
	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read graph: %w", err)
	}

	var doc graphmlFile
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse graphml: %w", err)
	}
	if len(doc.Graphs) == 0 {
		return nil, fmt.Errorf("graphml contains no graph element")
	}

	// Map data key IDs to attribute names ("d0" -> "label").
	attrNames := make(map[string]string, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.For == "" || k.For == "node" {
			attrNames[k.ID] = k.AttrName
		}
	}

	g := domain.NewGraph()
	for _, gr := range doc.Graphs {
		for _, n := range gr.Nodes {
			var attrs map[string]string
			for _, d := range n.Data {
				name := attrNames[d.Key]
				if name == "" {
					name = d.Key
				}
				if attrs == nil {
					attrs = make(map[string]string)
				}
				attrs[name] = d.Value
			}
			g.AddNode(n.ID, attrs)
		}
		for _, e := range gr.Edges {
			g.AddEdge(e.Source, e.Target)
		}
	}
	return g, nil
}
