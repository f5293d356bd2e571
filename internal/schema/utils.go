package schema

import "sort"

// sortedKeys returns the keys of m in lexical order so traversal of
// inline object attributes is deterministic.
func sortedKeys(m map[string]*Ref) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
