package util

import (
	"strconv"
)

// MustParseUint 将字符串转换为无符号整数，解析失败时返回 0
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// ParseUintList parses every entry and skips the ones that are not valid ids.
// Repeated ids are kept once, in first-seen order.
func ParseUintList(values []string) []uint {
	ids := make([]uint, 0, len(values))
	for _, v := range values {
		if id := MustParseUint(v); id != 0 {
			ids = append(ids, id)
		}
	}
	return UniqueUints(ids)
}

// UniqueUints drops repeated values, keeping first-seen order.
func UniqueUints(values []uint) []uint {
	seen := make(map[uint]struct{}, len(values))
	out := make([]uint, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
