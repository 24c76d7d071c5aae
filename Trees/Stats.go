package Trees

import (
	"fmt"
	"strings"
)

// Stats are the per-tree counters. Inserts and Removes count successful
// mutations; Searches and Traversals count every call. The remaining fields
// are engine specific and stay zero for engines that never perform them:
//   - AVL, Treap: Rotations.
//   - AA: Skews and Splits count every application of the repair to a node,
//     Rotations counts the ones that actually rotated.
//   - 2-3 tree: Splits, Merges and Borrows count node splits, sibling merges
//     and sibling borrows.
//   - Treap: Splits and Merges count split and merge operations.
type Stats struct {
	Inserts    uint `json:"inserts"`
	Removes    uint `json:"removes"`
	Searches   uint `json:"searches"`
	Traversals uint `json:"traversals"`
	Rotations  uint `json:"rotations"`
	Skews      uint `json:"skews"`
	Splits     uint `json:"splits"`
	Merges     uint `json:"merges"`
	Borrows    uint `json:"borrows"`
}

// Sub returns the counter deltas u-o, used to attribute work to a batch of
// operations.
func (u Stats) Sub(o Stats) Stats {
	return Stats{
		Inserts:    u.Inserts - o.Inserts,
		Removes:    u.Removes - o.Removes,
		Searches:   u.Searches - o.Searches,
		Traversals: u.Traversals - o.Traversals,
		Rotations:  u.Rotations - o.Rotations,
		Skews:      u.Skews - o.Skews,
		Splits:     u.Splits - o.Splits,
		Merges:     u.Merges - o.Merges,
		Borrows:    u.Borrows - o.Borrows,
	}
}

func (u Stats) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "inserts=%d removes=%d searches=%d traversals=%d", u.Inserts, u.Removes, u.Searches, u.Traversals)
	fmt.Fprintf(&sb, " rotations=%d skews=%d splits=%d merges=%d borrows=%d", u.Rotations, u.Skews, u.Splits, u.Merges, u.Borrows)
	return sb.String()
}
