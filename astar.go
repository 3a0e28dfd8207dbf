package gridplanner

import (
	"container/heap"
	"context"
	"fmt"
)

// node is an open-set entry for the A* search
type node struct {
	Coord Coordinate
	F     float64 // priority, copied from the cell when pushed or fixed
	Index int     // Index in the heap
}

// priorityQueue implements heap.Interface ordered by f-cost, then row-major
// coordinate.
type priorityQueue []*node

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].F != pq[j].F {
		return pq[i].F < pq[j].F
	}
	return pq[i].Coord.Less(pq[j].Coord)
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *priorityQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*node)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.Index = -1
	*pq = old[0 : n-1]
	return item
}

// Result contains the outcome of a search.
type Result struct {
	Path     []Coordinate // start → goal inclusive
	Cost     float64      // accumulated g-cost at the goal
	Expanded int          // nodes moved to the closed set
}

// heuristic is weight × (distance to start + distance to goal).
func (p *Planner) heuristic(c, start, goal Coordinate) float64 {
	if p.heuristicWeight == 0 {
		return 0
	}
	return p.heuristicWeight * (c.Distance(start) + c.Distance(goal))
}

// astar runs the search on the configured grid. Search metadata is reset on
// entry, so consecutive calls never see each other's costs or parents.
func (p *Planner) astar(ctx context.Context, start, goal Coordinate) (Result, error) {
	g := p.grid
	g.resetSearch()

	startCell := g.Cell(start)
	startCell.G = 0
	startCell.F = p.heuristic(start, start, goal)

	openSet := &priorityQueue{}
	heap.Init(openSet)
	startNode := &node{Coord: start, F: startCell.F}
	heap.Push(openSet, startNode)

	openSetMap := map[Coordinate]*node{start: startNode}
	closedSet := make([]bool, g.Rows*g.Cols)

	expanded := 0
	edges := make([]Edge, 0, len(neighborOffsets))

	for openSet.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return Result{Expanded: expanded}, fmt.Errorf("search cancelled after %d expansions: %w", expanded, err)
		}
		if p.maxExpansions > 0 && expanded >= p.maxExpansions {
			return Result{Expanded: expanded}, fmt.Errorf("%w: %d expansions", ErrSearchLimit, expanded)
		}

		current := heap.Pop(openSet).(*node)
		delete(openSetMap, current.Coord)
		closedSet[g.index(current.Coord)] = true
		expanded++

		currentCell := g.Cell(current.Coord)

		// Check if we reached the goal
		if current.Coord == goal {
			path, err := p.reconstructPath(start, goal)
			if err != nil {
				return Result{Expanded: expanded}, err
			}
			return Result{Path: path, Cost: currentCell.G, Expanded: expanded}, nil
		}

		// Explore neighbors
		edges = p.neighbors(current.Coord, edges)
		for _, edge := range edges {
			idx := g.index(edge.To)
			if closedSet[idx] {
				continue
			}

			tentativeG := currentCell.G + edge.Cost
			neighborCell := &g.cells[idx]
			if tentativeG >= neighborCell.G {
				continue
			}

			neighborCell.Parent = current.Coord
			neighborCell.hasParent = true
			neighborCell.G = tentativeG
			neighborCell.F = tentativeG + p.heuristic(edge.To, start, goal)

			if item, inOpen := openSetMap[edge.To]; inOpen {
				item.F = neighborCell.F
				heap.Fix(openSet, item.Index)
			} else {
				item = &node{Coord: edge.To, F: neighborCell.F}
				heap.Push(openSet, item)
				openSetMap[edge.To] = item
			}
		}
	}

	return Result{Expanded: expanded}, fmt.Errorf("%w: open set exhausted after %d expansions", ErrNoPathFound, expanded)
}
