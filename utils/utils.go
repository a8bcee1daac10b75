package utils

import (
	// Go Internal Packages
	"strconv"
	"strings"
)

// JoinInt32Slice renders partition numbers for log lines.
func JoinInt32Slice(ints []int32) string {
	strs := make([]string, len(ints))
	for i, v := range ints {
		strs[i] = strconv.FormatInt(int64(v), 10)
	}
	return strings.Join(strs, ",")
}

func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ClampPageSize bounds a caller-chosen page size to [1, max].
func ClampPageSize(size, max int) int {
	if size <= 0 || size > max {
		return max
	}
	return size
}
