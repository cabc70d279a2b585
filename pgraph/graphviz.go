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

package pgraph

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Graphviz outputs the graph in graphviz format. The vertices are printed in a
// sorted order so that the output is stable.
// https://en.wikipedia.org/wiki/DOT_%28graph_description_language%29
func (g *Graph) Graphviz() string {
	//digraph g {
	//	label="hello world";
	//	A [label="A"];
	//	B [label="B"];
	//	A -> B [label=f];
	//}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("digraph %s {\n", strconv.Quote(g.GetName())))
	b.WriteString(fmt.Sprintf("\tlabel=%s;\n", strconv.Quote(g.GetName())))

	vertices := g.VerticesSorted()
	index := make(map[Vertex]int)
	for i, v := range vertices {
		index[v] = i
		b.WriteString(fmt.Sprintf("\tv%d [label=%s];\n", i, strconv.Quote(v.String())))
	}
	for _, v1 := range vertices {
		next := VertexSlice{}
		for v2 := range g.Adjacency()[v1] {
			next = append(next, v2)
		}
		sort.Sort(next)
		for _, v2 := range next {
			e := g.Adjacency()[v1][v2]
			b.WriteString(fmt.Sprintf("\tv%d -> v%d [label=%s];\n", index[v1], index[v2], strconv.Quote(e.String())))
		}
	}
	b.WriteString("}\n")
	return b.String()
}
