// Package locale loads the game's localization text catalog and resolves
// the {page,t} reference tokens embedded in game data strings.
package locale

import (
	"encoding/xml"
	"regexp"
	"strings"

	"x4tables/internal/xmlscan"

	"github.com/rs/zerolog/log"
)

// refRE matches a whole-string name reference like {20201,401}.
var refRE = regexp.MustCompile(`^\{\s*(\d+)\s*,\s*(\d+)\s*\}$`)

// Catalog is the flattened localization map, keyed by "pageID_tID".
// It is built once per run and read-only afterwards.
type Catalog struct {
	entries  map[string]string
	maxDepth int
}

// NewCatalog returns an empty catalog with the default resolution depth.
func NewCatalog() *Catalog {
	return &Catalog{
		entries:  make(map[string]string),
		maxDepth: DefaultMaxDepth,
	}
}

// SetMaxDepth overrides the resolution pass bound.
func (c *Catalog) SetMaxDepth(n int) {
	c.maxDepth = n
}

// Len reports the number of entries loaded.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Lookup returns the raw, unresolved payload stored under key.
func (c *Catalog) Lookup(key string) (string, bool) {
	v, ok := c.entries[key]
	return v, ok
}

// Key builds a catalog key from page and text identifiers.
func Key(pageID, tID string) string {
	return pageID + "_" + tID
}

// ParseReference parses a whole-string name reference like "{20201,401}"
// into its catalog key. Returns false for anything else.
func ParseReference(ref string) (string, bool) {
	m := refRE.FindStringSubmatch(strings.TrimSpace(ref))
	if m == nil {
		return "", false
	}
	return Key(m[1], m[2]), true
}

type textElement struct {
	ID    string `xml:"id,attr"`
	Value string `xml:",chardata"`
}

// LoadFile merges the page/t entries of one localization document into the
// catalog. Text entries are found anywhere inside their page, not only as
// direct children, so entries wrapped by diff-format extension files are
// picked up too. Later files win on duplicate keys, so callers control
// overlay precedence by load order. Malformed documents are logged and
// contribute nothing; loading never fails. Returns the number of entries
// merged.
func (c *Catalog) LoadFile(path string) int {
	staged := make(map[string]string)

	err := xmlscan.ScanFile(path, "page", func(d *xml.Decoder, se xml.StartElement) error {
		pageID := xmlscan.Attr(se, "id")
		if pageID == "" {
			return nil
		}
		return collectPageEntries(d, pageID, staged)
	})
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("Failed to load localization file")
		return 0
	}

	for k, v := range staged {
		c.entries[k] = v
	}

	log.Info().Int("entries", len(staged)).Str("file", path).Msg("Loaded localization entries")
	return len(staged)
}

// collectPageEntries walks a page's subtree and stages every t element at
// any depth under the page's id, consuming the subtree.
func collectPageEntries(d *xml.Decoder, pageID string, staged map[string]string) error {
	depth := 1
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				var entry textElement
				if err := d.DecodeElement(&entry, &t); err != nil {
					return err
				}
				if entry.ID != "" {
					staged[Key(pageID, entry.ID)] = strings.TrimSpace(entry.Value)
				}
				continue
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return nil
}
