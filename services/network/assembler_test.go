package network

import (
	"fmt"
	"testing"

	models "network-ops/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = models.User{Username: "alice", Rank: &models.Rank{Number: 1}}

func rec(username string, level int, referredBy string) models.DownlineRecord {
	return models.DownlineRecord{Username: username, Level: level, ReferredBy: referredBy}
}

func usernames(nodes []models.NetworkNode) []string {
	out := []string{}
	for _, n := range nodes {
		out = append(out, n.User.Username)
	}
	return out
}

func TestAssembleScenario(t *testing.T) {
	records := []models.DownlineRecord{
		rec("bob", 1, "alice"),
		rec("carol", 2, "bob"),
		rec("dave", 2, "nobody"),
	}

	tree, orphans := Assemble(alice, records)

	assert.Equal(t, "alice", tree.User.Username)
	assert.Equal(t, 0, tree.User.Level)
	require.Equal(t, []string{"bob"}, usernames(tree.Children))
	bob := tree.Children[0]
	require.Equal(t, []string{"carol"}, usernames(bob.Children))
	assert.Empty(t, bob.Children[0].Children)

	require.Len(t, orphans, 1)
	assert.Equal(t, "dave", orphans[0].Username)

	visible := Visible(tree, MaxVisibleDepth(alice.Rank))
	assert.True(t, Expandable(tree, 1))
	assert.False(t, Expandable(bob, 1))
	require.Len(t, visible.Children, 1)
	assert.Empty(t, visible.Children[0].Children)
}

func TestAssembleEmptyDownline(t *testing.T) {
	tree, orphans := Assemble(alice, nil)
	assert.Equal(t, "alice", tree.User.Username)
	assert.NotNil(t, tree.Children)
	assert.Empty(t, tree.Children)
	assert.Empty(t, orphans)
}

func TestAssembleOrphanIsNotAttachedAnywhere(t *testing.T) {
	records := []models.DownlineRecord{
		rec("bob", 1, "alice"),
		rec("erin", 2, "zoe"),
		// right referrer, wrong level
		rec("frank", 3, "bob"),
		rec("ghost", 1, "someone-else"),
	}

	tree, orphans := Assemble(alice, records)

	var seen []string
	Walk(tree, func(n models.NetworkNode) { seen = append(seen, n.User.Username) })
	assert.Equal(t, []string{"alice", "bob"}, seen)
	assert.ElementsMatch(t, []string{"erin", "frank", "ghost"}, usernames(nodesOf(orphans)))
}

func nodesOf(records []models.DownlineRecord) []models.NetworkNode {
	out := make([]models.NetworkNode, 0, len(records))
	for _, r := range records {
		out = append(out, models.NetworkNode{User: models.NodeUser{Username: r.Username}})
	}
	return out
}

func TestAssembleKeepsDiscoveryOrderAndDropsDuplicates(t *testing.T) {
	records := []models.DownlineRecord{
		rec("zed", 1, "alice"),
		rec("amy", 1, "alice"),
		rec("zed", 1, "alice"),
		rec("kim", 2, "amy"),
		rec("lou", 2, "zed"),
	}

	tree, orphans := Assemble(alice, records)
	assert.Equal(t, []string{"zed", "amy"}, usernames(tree.Children))
	assert.Equal(t, []string{"lou"}, usernames(tree.Children[0].Children))
	assert.Equal(t, []string{"kim"}, usernames(tree.Children[1].Children))
	assert.Empty(t, orphans)
}

func TestAssembleKeepsAttachedCopyOfRepeatedUser(t *testing.T) {
	records := []models.DownlineRecord{
		rec("bob", 1, "alice"),
		rec("carol", 2, "nobody"),
		rec("carol", 2, "bob"),
	}

	tree, orphans := Assemble(alice, records)
	require.Equal(t, []string{"bob"}, usernames(tree.Children))
	assert.Equal(t, []string{"carol"}, usernames(tree.Children[0].Children))
	require.Len(t, orphans, 1)
	assert.Equal(t, "nobody", orphans[0].ReferredBy)
}

func TestAssembleIgnoresNonPositiveLevels(t *testing.T) {
	records := []models.DownlineRecord{rec("alice", 0, ""), rec("neg", -1, "alice")}

	groups := GroupByLevel(records)
	assert.Empty(t, groups)

	tree, orphans := Assemble(alice, records)
	assert.Empty(t, tree.Children)
	assert.Len(t, orphans, 2)
}

func TestAssembleLevelInvariant(t *testing.T) {
	// a wide, deep listing with a sprinkling of bad referrers
	var records []models.DownlineRecord
	parents := []string{"alice"}
	for level := 1; level <= 6; level++ {
		var next []string
		for i, parent := range parents {
			for j := 0; j < 3; j++ {
				name := fmt.Sprintf("u%d_%d_%d", level, i, j)
				ref := parent
				if (i+j)%5 == 4 {
					ref = "missing"
				}
				records = append(records, rec(name, level, ref))
				next = append(next, name)
			}
		}
		parents = next
	}

	tree, orphans := Assemble(alice, records)

	count := 0
	var check func(parent models.NetworkNode)
	check = func(parent models.NetworkNode) {
		for _, child := range parent.Children {
			count++
			assert.Equal(t, parent.User.Level+1, child.User.Level)
			assert.Equal(t, parent.User.Username, child.ReferredBy)
			check(child)
		}
	}
	check(tree)
	assert.Equal(t, len(records), count+len(orphans))
	assert.NotEmpty(t, orphans)
}
