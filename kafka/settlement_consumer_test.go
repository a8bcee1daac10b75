package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twmb/franz-go/pkg/kgo"
)

func TestRewindOffsetsStartsAtFirstRecordPerPartition(t *testing.T) {
	records := []*kgo.Record{
		{Topic: "settlements", Partition: 0, Offset: 41, LeaderEpoch: 3},
		{Topic: "settlements", Partition: 0, Offset: 42, LeaderEpoch: 3},
		{Topic: "settlements", Partition: 2, Offset: 7, LeaderEpoch: 1},
		{Topic: "settlements", Partition: 2, Offset: 5, LeaderEpoch: 1},
	}

	got := rewindOffsets(records)
	assert.Equal(t, map[string]map[int32]kgo.EpochOffset{
		"settlements": {
			0: {Epoch: 3, Offset: 41},
			2: {Epoch: 1, Offset: 5},
		},
	}, got)
}

func TestRewindOffsetsEmptyBatch(t *testing.T) {
	assert.Empty(t, rewindOffsets(nil))
}
