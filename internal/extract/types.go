// Package extract walks domain XML documents (factions, ships, map
// sectors, wares), resolves name references through the localization
// catalog, and assembles flat tables ready for CSV output.
package extract

import "regexp"

// Table is a flattened record set: a header row plus data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// Empty reports whether the table holds no data rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// excluded reports whether macro matches any exclusion pattern.
func excluded(macro string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(macro) {
			return true
		}
	}
	return false
}
