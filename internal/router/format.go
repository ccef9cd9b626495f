package router

import "strings"

// joinNames renders one name bare and several as "a, b and c".
func joinNames(names []string) string {
	if len(names) == 1 {
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}

// plural returns "s" when n calls for it.
func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
