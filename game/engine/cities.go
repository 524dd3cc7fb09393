package engine

import (
	"container/heap"
	"log"
)

// Edge is one undirected weighted connection out of a city. A zero cost marks
// two map nodes that are the same settlement for building purposes.
type Edge struct {
	To   string `json:"to"`
	Cost int    `json:"cost"`
}

// CityNode is one city on the immutable map graph.
type CityNode struct {
	Name      string `json:"name"`
	Region    string `json:"region"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Neighbors []Edge `json:"neighbors"`
}

// CityNetwork is the static weighted city graph loaded once at startup.
// It is never mutated after construction; build state lives on the Board.
type CityNetwork struct {
	nodes map[string]*CityNode
}

// NewCityNetwork builds the graph from config. Edge symmetry is validated
// here: every mismatch is logged as a data-integrity finding but does not
// abort startup.
func NewCityNetwork(cities map[string]CityConfig) *CityNetwork {
	n := &CityNetwork{nodes: make(map[string]*CityNode, len(cities))}
	for name, c := range cities {
		node := &CityNode{Name: name, Region: c.Region, X: c.Position[0], Y: c.Position[1]}
		for _, nb := range c.Neighbors {
			node.Neighbors = append(node.Neighbors, Edge{To: nb.City, Cost: nb.Cost})
		}
		n.nodes[name] = node
	}
	n.validateSymmetry()
	return n
}

func (n *CityNetwork) validateSymmetry() {
	mismatches := 0
	for name, node := range n.nodes {
		for _, e := range node.Neighbors {
			rev, ok := n.nodes[e.To]
			if !ok {
				log.Printf("[cities] %s references unknown neighbor %s", name, e.To)
				mismatches++
				continue
			}
			found := false
			for _, re := range rev.Neighbors {
				if re.To == name {
					found = true
					if re.Cost != e.Cost {
						log.Printf("[cities] edge cost mismatch: %s->%s is %d but %s->%s is %d", name, e.To, e.Cost, e.To, name, re.Cost)
						mismatches++
					}
					break
				}
			}
			if !found {
				log.Printf("[cities] missing reverse edge: %s->%s (%d)", name, e.To, e.Cost)
				mismatches++
			}
		}
	}
	if mismatches == 0 {
		log.Printf("[cities] validated %d city connections", len(n.nodes))
	}
}

// City returns the node for name.
func (n *CityNetwork) City(name string) (*CityNode, bool) {
	node, ok := n.nodes[name]
	return node, ok
}

// Size returns the number of cities on the map.
func (n *CityNetwork) Size() int {
	return len(n.nodes)
}

// cityQueue is a min-heap of (distance, city) pairs for Dijkstra.
type cityItem struct {
	name string
	dist int
}

type cityQueue []cityItem

func (q cityQueue) Len() int            { return len(q) }
func (q cityQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q cityQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *cityQueue) Push(x interface{}) { *q = append(*q, x.(cityItem)) }
func (q *cityQueue) Pop() interface{} {
	old := *q
	it := old[len(old)-1]
	*q = old[:len(old)-1]
	return it
}

// ConnectionCost returns the cheapest connection from target to the nearest
// city in owned, running Dijkstra rooted at the target. Rooting at the target
// makes one call serve any owned-city set. An empty owned set costs nothing;
// ok is false when no owned city is reachable. When regions is non-empty the
// search never leaves those regions.
func (n *CityNetwork) ConnectionCost(target string, owned map[string]bool, regions map[string]bool) (cost int, ok bool) {
	if len(owned) == 0 {
		return 0, true
	}
	root, exists := n.nodes[target]
	if !exists {
		return 0, false
	}
	if len(regions) > 0 && !regions[root.Region] {
		return 0, false
	}

	dist := map[string]int{target: 0}
	visited := make(map[string]bool, len(n.nodes))
	q := &cityQueue{{name: target, dist: 0}}
	heap.Init(q)

	for q.Len() > 0 {
		it := heap.Pop(q).(cityItem)
		if visited[it.name] {
			continue
		}
		visited[it.name] = true
		if owned[it.name] {
			return it.dist, true
		}
		for _, e := range n.nodes[it.name].Neighbors {
			nb, exists := n.nodes[e.To]
			if !exists {
				continue
			}
			if len(regions) > 0 && !regions[nb.Region] {
				continue
			}
			nd := it.dist + e.Cost
			if d, seen := dist[e.To]; !seen || nd < d {
				dist[e.To] = nd
				heap.Push(q, cityItem{name: e.To, dist: nd})
			}
		}
	}
	return 0, false
}

// Board tracks which players built where. It lives beside the immutable
// CityNetwork and is mutated only through Build.
type Board struct {
	network *CityNetwork
	built   map[string][]string // city -> builder IDs in build order
}

// NewBoard creates an empty board over the network.
func NewBoard(network *CityNetwork) *Board {
	return &Board{network: network, built: make(map[string][]string)}
}

// HouseCount returns how many houses stand in city.
func (b *Board) HouseCount(city string) int {
	return len(b.built[city])
}

// BuildCost returns the tiered price of the next house in city: the first
// costs 10, the second 15, every later one 20.
func (b *Board) BuildCost(city string) int {
	switch b.HouseCount(city) {
	case 0:
		return 10
	case 1:
		return 15
	default:
		return 20
	}
}

// Builders returns the build-order list of player IDs for city.
func (b *Board) Builders(city string) []string {
	out := make([]string, len(b.built[city]))
	copy(out, b.built[city])
	return out
}

// BuiltCities returns a copy of the whole build map.
func (b *Board) BuiltCities() map[string][]string {
	out := make(map[string][]string, len(b.built))
	for city := range b.built {
		out[city] = b.Builders(city)
	}
	return out
}

// CanBuild runs the house-build legality checks for p in city, in order:
// region limit, duplicate house, step cap, zero-cost-neighbor exclusivity,
// affordability. On success it returns the total (build + connection) cost,
// not yet charged.
func (b *Board) CanBuild(p *Player, city string, step, maxRegions int, occupied map[string]bool) (int, error) {
	node, ok := b.network.City(city)
	if !ok {
		return 0, ruleErrorf(CodeUnknownCity, "unknown city %q", city)
	}

	if !occupied[node.Region] && len(occupied)+1 > maxRegions {
		return 0, ruleErrorf(CodeRegionLimit, "building in new region %q would exceed the %d-region limit", node.Region, maxRegions)
	}
	if p.OwnsCity(city) {
		return 0, ruleErrorf(CodeAlreadyBuilt, "%s already has a house in %s", p.Name, city)
	}
	if b.HouseCount(city) >= step {
		return 0, ruleErrorf(CodeStepCap, "%s already holds %d houses, the cap at step %d", city, b.HouseCount(city), step)
	}
	for _, e := range node.Neighbors {
		if e.Cost == 0 && p.OwnsCity(e.To) {
			return 0, ruleErrorf(CodeSameSettlement, "%s and %s count as one settlement; %s already built there", city, e.To, p.Name)
		}
	}

	owned := make(map[string]bool, len(p.Cities))
	for _, c := range p.Cities {
		owned[c] = true
	}
	connection, reachable := b.network.ConnectionCost(city, owned, nil)
	if !reachable {
		return 0, ruleErrorf(CodeNoPath, "no connection from %s's network to %s", p.Name, city)
	}
	total := b.BuildCost(city) + connection
	if total > p.Money {
		return 0, ruleErrorf(CodeInsufficientFunds, "building in %s costs %d but %s has only %d", city, total, p.Name, p.Money)
	}
	return total, nil
}

// Build commits a house purchase that CanBuild already approved: debits the
// player, appends the city to their network, marks the region occupied and
// records the builder.
func (b *Board) Build(p *Player, city string, cost int, occupied map[string]bool) {
	node, ok := b.network.City(city)
	if !ok {
		return
	}
	p.Money -= cost
	p.Cities = append(p.Cities, city)
	occupied[node.Region] = true
	b.built[city] = append(b.built[city], p.ID)
}
