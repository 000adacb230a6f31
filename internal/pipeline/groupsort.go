package pipeline

import (
	"cmp"
	"fmt"
	"slices"
)

// Group is a named bucket of records in presentation order.
type Group struct {
	Name    string
	Records []Record
}

// GroupSort sorts records by sortBy and buckets them by groupBy.
//
// The sort is stable and ascending on each key in turn. A record without a
// key sorts before every record that has it. Values compare as bools, then
// numbers, then strings, then anything else by its printed form. A record
// without the group key lands in the "" group. Groups appear in the order
// their first record appears in the sorted list.
func GroupSort(records []Record, groupBy string, sortBy []string) []Group {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b Record) int {
		for _, key := range sortBy {
			if c := compareField(a.Metadata, b.Metadata, key); c != 0 {
				return c
			}
		}
		return 0
	})

	var groups []Group
	index := make(map[string]int)
	for _, rec := range sorted {
		name := rec.Metadata.String(groupBy)
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, Group{Name: name})
		}
		groups[i].Records = append(groups[i].Records, rec)
	}
	return groups
}

// Value kinds in ascending sort order.
const (
	kindMissing = iota
	kindBool
	kindNumber
	kindString
	kindOther
)

func compareField(a, b Metadata, key string) int {
	av, aok := a.Lookup(key)
	bv, bok := b.Lookup(key)
	ak, bk := valueKind(av, aok), valueKind(bv, bok)
	if ak != bk {
		return cmp.Compare(ak, bk)
	}

	switch ak {
	case kindMissing:
		return 0
	case kindBool:
		return cmp.Compare(boolRank(av.(bool)), boolRank(bv.(bool)))
	case kindNumber:
		return cmp.Compare(toFloat(av), toFloat(bv))
	case kindString:
		return cmp.Compare(av.(string), bv.(string))
	default:
		return cmp.Compare(fmt.Sprint(av), fmt.Sprint(bv))
	}
}

func valueKind(v any, ok bool) int {
	if !ok {
		return kindMissing
	}
	switch v.(type) {
	case bool:
		return kindBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return kindNumber
	case string:
		return kindString
	default:
		return kindOther
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	}
	return 0
}
