package graph

import "reflect"

// edgeKey identifies one visited edge of the raw graph during the
// expand pass.
type edgeKey struct {
	parent string
	field  string
	child  string
}

// BuildIndex flattens a nested result tree into the uid index used by
// the expand pass. The first occurrence of a uid becomes the canonical
// record; later occurrences only contribute fields the canonical record
// lacks.
func BuildIndex(roots []any) map[string]Record {
	index := make(map[string]Record)
	seen := make(map[uintptr]struct{})
	for _, root := range roots {
		if rec, ok := root.(Record); ok {
			indexRecord(index, seen, rec)
		}
	}
	return index
}

func indexRecord(index map[string]Record, seen map[uintptr]struct{}, rec Record) {
	ptr := reflect.ValueOf(rec).Pointer()
	if _, ok := seen[ptr]; ok {
		return
	}
	seen[ptr] = struct{}{}
	if uid, ok := rec[UIDField].(string); ok && uid != "" {
		canonical, ok := index[uid]
		if !ok {
			index[uid] = rec
		} else if !sameRecord(canonical, rec) {
			for k, v := range rec {
				if _, ok := canonical[k]; !ok {
					canonical[k] = v
				}
			}
		}
	}
	for field, v := range rec {
		if field == TypeTag {
			continue
		}
		arr, ok := v.([]any)
		if !ok {
			continue
		}
		for _, el := range arr {
			if child, ok := el.(Record); ok {
				indexRecord(index, seen, child)
			}
		}
	}
}

// sameRecord reports whether a and b are the identical map.
func sameRecord(a, b Record) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// Expand merges the uid index into every partial reference of the given
// roots, in place. Every array-valued field except the reserved type
// tag is visited; an element whose uid exists in the index receives the
// indexed record's fields by shallow overwrite, indexed fields winning.
//
// Recursion is guarded by a visited set keyed on (parent uid, field,
// child uid), bounding the work to the number of distinct edges and
// terminating cycles. An element without a uid is a tolerated data
// fault: its merge is skipped, the branch itself is still visited.
func (m *Mapper) Expand(index map[string]Record, roots []any) {
	visited := make(map[edgeKey]struct{})
	for _, root := range roots {
		if rec, ok := root.(Record); ok {
			m.expand(index, rec, visited)
		}
	}
}

func (m *Mapper) expand(index map[string]Record, rec Record, visited map[edgeKey]struct{}) {
	parent, _ := rec[UIDField].(string)
	for field, v := range rec {
		if field == TypeTag {
			continue
		}
		arr, ok := v.([]any)
		if !ok {
			continue
		}
		for _, el := range arr {
			child, ok := el.(Record)
			if !ok {
				continue
			}
			cuid, ok := child[UIDField].(string)
			if !ok || cuid == "" {
				m.logf("%v", &DataError{UID: parent, Field: field, Message: "record missing uid, merge skipped"})
				m.expand(index, child, visited)
				continue
			}
			key := edgeKey{parent: parent, field: field, child: cuid}
			if _, ok := visited[key]; ok {
				continue
			}
			visited[key] = struct{}{}
			if full, ok := index[cuid]; ok && !sameRecord(full, child) {
				for k, fv := range full {
					child[k] = fv
				}
			}
			m.expand(index, child, visited)
		}
	}
}
