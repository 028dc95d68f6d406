package hexgrid

import "sort"

// Adjacency is the neighbor graph between populated hexes.
type Adjacency struct {
	names []string
	axial map[string]AxialCoord
	at    map[AxialCoord]string
	// ByAxial maps the "q,r" key of every populated hex to its name.
	ByAxial map[string]string
	// Neighbors maps a hex name to its present neighbors in direction order.
	Neighbors map[string][]string
}

// NewAdjacency builds both lookup tables from the axial coordinate of every hex.
// Names are visited in sorted order so identical input yields identical output.
func NewAdjacency(coords map[string]AxialCoord) *Adjacency {
	adj := &Adjacency{
		names:     make([]string, 0, len(coords)),
		axial:     coords,
		at:        make(map[AxialCoord]string, len(coords)),
		ByAxial:   make(map[string]string, len(coords)),
		Neighbors: make(map[string][]string, len(coords)),
	}
	for name := range coords {
		adj.names = append(adj.names, name)
	}
	sort.Strings(adj.names)

	for _, name := range adj.names {
		a := coords[name]
		adj.at[a] = name
		adj.ByAxial[a.String()] = name
	}
	for _, name := range adj.names {
		adj.Neighbors[name] = adj.neighborsOf(coords[name])
	}
	return adj
}

// neighborsOf lists the names of the populated hexes around a, omitting empty directions.
func (adj *Adjacency) neighborsOf(a AxialCoord) []string {
	out := make([]string, 0, len(Directions))
	for dir := range Directions {
		if name, ok := adj.at[a.Neighbor(dir)]; ok {
			out = append(out, name)
		}
	}
	return out
}

// NeighborsAt lists the populated neighbors of any axial coordinate, populated or not.
func (adj *Adjacency) NeighborsAt(a AxialCoord) []string {
	return adj.neighborsOf(a)
}

// At returns the hex at an axial coordinate.
func (adj *Adjacency) At(a AxialCoord) (string, bool) {
	name, ok := adj.at[a]
	return name, ok
}

// Axial returns the axial coordinate of a hex.
func (adj *Adjacency) Axial(name string) (AxialCoord, bool) {
	a, ok := adj.axial[name]
	return a, ok
}

// Names returns the sorted hex names.
func (adj *Adjacency) Names() []string {
	return adj.names
}

// Len returns the number of populated hexes.
func (adj *Adjacency) Len() int {
	return len(adj.names)
}
