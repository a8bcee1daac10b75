package network

import (
	// Local Packages
	models "network-ops/models"
)

// MaxVisibleDepth is the number of downline levels a user of the given rank
// may expand. A user without a rank sees only themselves.
func MaxVisibleDepth(rank *models.Rank) int {
	if rank == nil || rank.Number < 0 {
		return 0
	}
	return rank.Number
}

// Expandable reports whether node's children may be shown.
func Expandable(node models.NetworkNode, maxDepth int) bool {
	return node.User.Level < maxDepth && len(node.Children) > 0
}

// Visible returns a copy of tree in which the children of every
// non-expandable node are hidden. tree itself is not modified.
func Visible(tree models.NetworkNode, maxDepth int) models.NetworkNode {
	out := tree
	out.Children = []models.NetworkNode{}
	if !Expandable(tree, maxDepth) {
		return out
	}
	for _, child := range tree.Children {
		out.Children = append(out.Children, Visible(child, maxDepth))
	}
	return out
}
