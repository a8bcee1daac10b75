// Package network rebuilds a user's referral tree from the flat downline listing.
package network

import (
	// Local Packages
	models "network-ops/models"
)

// LevelGroups holds downline records keyed by level, each group in discovery order.
type LevelGroups map[int][]models.DownlineRecord

// recordKey identifies one placement of a user: the same username may be
// listed again under another referrer.
type recordKey struct {
	level      int
	referredBy string
	username   string
}

func keyOf(rec models.DownlineRecord) recordKey {
	return recordKey{level: rec.Level, referredBy: rec.ReferredBy, username: rec.Username}
}

// GroupByLevel groups records by level. Records below level 1 cannot hang under
// the root and are left out; a repeated (level, referrer, username) record keeps
// its first occurrence.
func GroupByLevel(records []models.DownlineRecord) LevelGroups {
	groups := make(LevelGroups)
	seen := make(map[recordKey]struct{})
	for _, rec := range records {
		if rec.Level < 1 {
			continue
		}
		if _, dup := seen[keyOf(rec)]; dup {
			continue
		}
		seen[keyOf(rec)] = struct{}{}
		groups[rec.Level] = append(groups[rec.Level], rec)
	}
	return groups
}

// Build returns the tree rooted at root. Each node's children are the records one
// level down whose referrer is that node; anything else never gets attached.
// Recursion stops at the deepest level present in groups.
func Build(root models.User, groups LevelGroups) models.NetworkNode {
	return buildNode(models.NodeUser{Username: root.Username, License: root.License}, "", 0, groups)
}

func buildNode(user models.NodeUser, referredBy string, level int, groups LevelGroups) models.NetworkNode {
	user.Level = level
	node := models.NetworkNode{User: user, ReferredBy: referredBy, Children: []models.NetworkNode{}}

	for _, rec := range groups[level+1] {
		if rec.ReferredBy != user.Username {
			continue
		}
		child := models.NodeUser{Username: rec.Username, License: rec.License}
		node.Children = append(node.Children, buildNode(child, rec.ReferredBy, level+1, groups))
	}
	return node
}

// Assemble groups records, builds the tree and returns the records that ended
// up outside it.
func Assemble(root models.User, records []models.DownlineRecord) (models.NetworkNode, []models.DownlineRecord) {
	tree := Build(root, GroupByLevel(records))

	attached := make(map[recordKey]struct{})
	Walk(tree, func(n models.NetworkNode) {
		attached[recordKey{level: n.User.Level, referredBy: n.ReferredBy, username: n.User.Username}] = struct{}{}
	})

	var orphans []models.DownlineRecord
	for _, rec := range records {
		if _, ok := attached[keyOf(rec)]; !ok || rec.Level < 1 {
			orphans = append(orphans, rec)
		}
	}
	return tree, orphans
}

// Walk visits every node depth first, parents before children.
func Walk(node models.NetworkNode, fn func(models.NetworkNode)) {
	fn(node)
	for _, child := range node.Children {
		Walk(child, fn)
	}
}
