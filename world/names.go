package world

import "strconv"

const unnamedPrefix = "Unnamed"

// UnusedName returns the smallest "Unnamed{i}" not present in used.
func UnusedName(used []string) string {
	taken := make(map[string]struct{}, len(used))
	for _, n := range used {
		taken[n] = struct{}{}
	}
	for i := 0; ; i++ {
		name := unnamedPrefix + strconv.Itoa(i)
		if _, ok := taken[name]; !ok {
			return name
		}
	}
}
