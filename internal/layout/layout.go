// Package layout assigns grid columns to overlapping time blocks so a
// day's items render side by side without visual overlap.
package layout

import (
	"sort"

	"github.com/tempo-sh/tempo/internal/event"
)

const (
	// MaxColumns caps how wide a collision cluster may grow. Items that
	// would need more columns stack in the last one.
	MaxColumns = 3
	// SideBySideThresholdMinutes controls column reuse: an occupant that
	// started at least this long before a new item keeps its column and
	// the newcomer may share it even though they overlap.
	SideBySideThresholdMinutes = 45
)

// ItemLayout is the computed position of one item within its cluster.
type ItemLayout struct {
	ColumnIndex  int // 0-based, < TotalColumns
	TotalColumns int // columns used by the item's cluster
	StackOrder   int // 1-based z-order within the cluster
}

// Layout computes a layout for every item of one day. The result contains
// exactly one entry per item id. Input order does not matter; the function
// sorts internally, breaking start-time ties by input position.
func Layout(items []event.PositionedItem) map[string]ItemLayout {
	result := make(map[string]ItemLayout, len(items))
	if len(items) == 0 {
		return result
	}

	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return items[order[a]].StartMinutes < items[order[b]].StartMinutes
	})

	for _, cluster := range clusters(items, order) {
		layoutCluster(items, cluster, result)
	}

	return result
}

// clusters partitions the sorted item indices into maximal groups connected
// by pairwise or transitive overlap, using a union-find over the overlap
// graph. Each returned group preserves start-time order.
func clusters(items []event.PositionedItem, order []int) [][]int {
	parent := make([]int, len(items))
	for i := range parent {
		parent[i] = i
	}

	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[rb] = ra
		}
	}

	// Walk in start order; an item can only overlap something that starts
	// no later than it ends, so one pass over sorted neighbors suffices.
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			a, b := items[order[i]], items[order[j]]
			if b.StartMinutes >= a.EndMinutes {
				// Sorted by start: nothing further overlaps a directly,
				// but a later item may still bridge clusters, so only
				// the inner loop stops here.
				break
			}
			if a.Overlaps(b) {
				union(order[i], order[j])
			}
		}
	}

	groups := make(map[int][]int)
	var roots []int
	for _, idx := range order {
		root := find(idx)
		if _, seen := groups[root]; !seen {
			roots = append(roots, root)
		}
		groups[root] = append(groups[root], idx)
	}

	out := make([][]int, 0, len(roots))
	for _, root := range roots {
		out = append(out, groups[root])
	}
	return out
}

// layoutCluster assigns columns within one cluster. Items arrive in
// start-time order. Each takes the first column whose occupants either do
// not overlap it or started at least SideBySideThresholdMinutes earlier;
// otherwise a new column opens, capped at MaxColumns.
func layoutCluster(items []event.PositionedItem, cluster []int, result map[string]ItemLayout) {
	if len(cluster) == 1 {
		it := items[cluster[0]]
		result[it.ID] = ItemLayout{ColumnIndex: 0, TotalColumns: 1, StackOrder: 1}
		return
	}

	columns := make([][]event.PositionedItem, 0, MaxColumns)
	assigned := make([]int, len(cluster))
	maxColumn := 0

	for pos, idx := range cluster {
		it := items[idx]

		col := -1
		for c := range columns {
			if columnAccepts(columns[c], it) {
				col = c
				break
			}
		}
		if col < 0 {
			if len(columns) < MaxColumns {
				columns = append(columns, nil)
				col = len(columns) - 1
			} else {
				// Over the cap: stack in the last column.
				col = MaxColumns - 1
			}
		}

		columns[col] = append(columns[col], it)
		assigned[pos] = col
		if col > maxColumn {
			maxColumn = col
		}
	}

	total := maxColumn + 1
	for pos, idx := range cluster {
		it := items[idx]
		result[it.ID] = ItemLayout{
			ColumnIndex:  assigned[pos],
			TotalColumns: total,
			StackOrder:   pos + 1,
		}
	}
}

func columnAccepts(occupants []event.PositionedItem, it event.PositionedItem) bool {
	for _, o := range occupants {
		if !o.Overlaps(it) {
			continue
		}
		if o.StartMinutes+SideBySideThresholdMinutes <= it.StartMinutes {
			continue
		}
		return false
	}
	return true
}
