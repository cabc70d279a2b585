// Mgmt
// Copyright (C) James Shubin and the project contributors
// Written by James Shubin <james@shubin.ca> and the project contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package pgraph represents the internal "pointer graph" that we use. The
// processing graph of clips is stored in one of these.
package pgraph

import (
	"fmt"
	"sort"
	"sync"
)

// Vertex is the primary vertex struct in this library. It can be anything that
// implements Stringer. The string output must be stable and unique in the
// graph.
type Vertex interface {
	fmt.Stringer // String() string
}

// Edge is the primary edge struct in this library. It can be anything that
// implements Stringer. The string output must be stable and unique in the
// graph.
type Edge interface {
	fmt.Stringer // String() string
}

// SimpleEdge is a basic edge that just carries a name.
type SimpleEdge struct {
	Name string
}

// String returns the name of the edge.
func (obj *SimpleEdge) String() string {
	return obj.Name
}

// Graph is the graph structure in this library. The graph abstract data type
// (ADT) is defined as follows:
// * the directed graph arrows point from left to right ( -> )
// * the arrows point away from their dependencies (eg: arrows mean "before")
// * IOW, a producer clip points at the clip that consumes its frames
type Graph struct {
	Name string

	adjacency map[Vertex]map[Vertex]Edge // Vertex -> Vertex (edge)

	mutex *sync.Mutex // used when modifying the adjacency map
}

// NewGraph builds a new graph.
func NewGraph(name string) (*Graph, error) {
	if name == "" {
		return nil, fmt.Errorf("graph must be named")
	}
	g := &Graph{
		Name: name,
	}
	g.init()
	return g, nil
}

// init initializes the graph which populates all the internal structures.
func (g *Graph) init() {
	if g.adjacency == nil {
		g.adjacency = make(map[Vertex]map[Vertex]Edge)
	}
	if g.mutex == nil {
		// ptr b/c: Mutex must not be copied after first use
		g.mutex = &sync.Mutex{}
	}
}

// Copy makes a copy of the graph struct. It does not copy the vertices or the
// edges, only the structure that connects them.
func (g *Graph) Copy() *Graph {
	if g == nil { // allow nil graphs through
		return g
	}
	g.init()
	g.mutex.Lock()
	defer g.mutex.Unlock()

	newGraph := &Graph{
		Name:      g.Name,
		adjacency: make(map[Vertex]map[Vertex]Edge, len(g.adjacency)),
		mutex:     &sync.Mutex{},
	}
	for k, v := range g.adjacency {
		newGraph.adjacency[k] = make(map[Vertex]Edge, len(v))
		for kk, vv := range v {
			newGraph.adjacency[k][kk] = vv
		}
	}
	return newGraph
}

// GetName returns the name of the graph.
func (g *Graph) GetName() string {
	return g.Name
}

// Adjacency returns the adjacency map representing this graph. This API should
// be considered read-only.
func (g *Graph) Adjacency() map[Vertex]map[Vertex]Edge {
	g.init()
	return g.adjacency
}

// AddVertex uses variadic input to add all listed vertices to the graph.
func (g *Graph) AddVertex(xv ...Vertex) {
	g.init()
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.addVertex(xv...)
}

func (g *Graph) addVertex(xv ...Vertex) {
	for _, v := range xv {
		if _, exists := g.adjacency[v]; !exists {
			g.adjacency[v] = make(map[Vertex]Edge)
		}
	}
}

// AddEdge adds a directed edge to the graph from v1 to v2.
func (g *Graph) AddEdge(v1, v2 Vertex, e Edge) {
	g.init()
	g.mutex.Lock()
	defer g.mutex.Unlock()
	// NOTE: this doesn't allow more than one edge between two vertexes...
	g.addVertex(v1, v2) // supports adding N vertices now
	g.adjacency[v1][v2] = e
}

// NumVertices returns the number of vertices in the graph.
func (g *Graph) NumVertices() int {
	g.init()
	return len(g.adjacency)
}

// NumEdges returns the number of edges in the graph.
func (g *Graph) NumEdges() int {
	g.init()
	count := 0
	for k := range g.adjacency {
		count += len(g.adjacency[k])
	}
	return count
}

// Vertices returns a randomly sorted slice of all vertices in the graph. The
// order is random, because the map implementation is intentionally so!
func (g *Graph) Vertices() []Vertex {
	g.init()
	var vertices []Vertex
	for k := range g.adjacency {
		vertices = append(vertices, k)
	}
	return vertices
}

// VertexSlice is a linear list of vertices. It can be sorted.
type VertexSlice []Vertex

func (vs VertexSlice) Len() int           { return len(vs) }
func (vs VertexSlice) Swap(i, j int)      { vs[i], vs[j] = vs[j], vs[i] }
func (vs VertexSlice) Less(i, j int) bool { return vs[i].String() < vs[j].String() }

// VerticesSorted returns a sorted slice of all vertices in the graph. The order
// is sorted by String() to avoid the non-determinism in the map type.
func (g *Graph) VerticesSorted() []Vertex {
	vertices := g.Vertices()
	sort.Sort(VertexSlice(vertices)) // add determinism
	return vertices
}

// String makes the graph pretty print.
func (g *Graph) String() string {
	return fmt.Sprintf("%s: Vertices(%d), Edges(%d)", g.Name, g.NumVertices(), g.NumEdges())
}

// IncomingGraphVertices returns an array (slice) of all directed vertices to
// vertex v (??? -> v). These are the producers of a clip.
func (g *Graph) IncomingGraphVertices(v Vertex) []Vertex {
	g.init()
	var s []Vertex
	for k := range g.adjacency { // reverse paths
		for w := range g.adjacency[k] {
			if w == v {
				s = append(s, k)
			}
		}
	}
	return s
}

// OutgoingGraphVertices returns an array (slice) of all vertices that vertex v
// points to (v -> ???). These are the consumers of a clip.
func (g *Graph) OutgoingGraphVertices(v Vertex) []Vertex {
	g.init()
	var s []Vertex
	for k := range g.adjacency[v] { // forward paths
		s = append(s, k)
	}
	return s
}

// InDegree returns the count of vertices that point to me in one big lookup map.
func (g *Graph) InDegree() map[Vertex]int {
	g.init()
	result := make(map[Vertex]int)
	for k := range g.adjacency {
		result[k] = 0 // initialize
	}

	for k := range g.adjacency {
		for z := range g.adjacency[k] {
			result[z]++
		}
	}
	return result
}

// OutDegree returns the count of vertices that point away in one big lookup map.
func (g *Graph) OutDegree() map[Vertex]int {
	g.init()
	result := make(map[Vertex]int)

	for k := range g.adjacency {
		result[k] = len(g.adjacency[k])
	}
	return result
}

// TopologicalSort returns the sort of graph vertices in that order. It is based
// on descriptions and code from wikipedia and rosetta code. Ties are broken by
// the String() of each vertex so that the output is deterministic.
func (g *Graph) TopologicalSort() ([]Vertex, error) { // kahn's algorithm
	var L []Vertex                    // empty list that will contain the sorted elements
	var S []Vertex                    // set of all nodes with no incoming edges
	remaining := make(map[Vertex]int) // amount of edges remaining

	for v, d := range g.InDegree() {
		if d == 0 {
			// accumulate set of all nodes with no incoming edges
			S = append(S, v)
		} else {
			// initialize remaining edge count from indegree
			remaining[v] = d
		}
	}
	sort.Sort(sort.Reverse(VertexSlice(S))) // pop from the end

	for len(S) > 0 {
		last := len(S) - 1 // remove a node v from S
		v := S[last]
		S = S[:last]
		L = append(L, v) // add v to tail of L

		next := []Vertex{}
		for n := range g.adjacency[v] {
			// for each node n remaining in the graph, consume from
			// remaining, so for remaining[n] > 0
			if remaining[n] > 0 {
				remaining[n]--         // remove edge from the graph
				if remaining[n] == 0 { // if n has no other incoming edges
					next = append(next, n)
				}
			}
		}
		sort.Sort(sort.Reverse(VertexSlice(next)))
		S = append(S, next...) // insert n into S
	}

	// if graph has edges, eg if any value in rem is > 0
	for c, in := range remaining {
		if in > 0 {
			for n := range g.adjacency[c] {
				if remaining[n] > 0 {
					return nil, fmt.Errorf("not a dag")
				}
			}
		}
	}

	return L, nil
}
