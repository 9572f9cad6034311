package extract

import (
	"encoding/xml"
	"regexp"
	"sort"
	"strings"

	"x4tables/internal/discovery"
	"x4tables/internal/xmlscan"

	"github.com/rs/zerolog/log"
)

// wordRE splits whitespace-separated token lists like faction and tag
// attributes into individual tokens.
var wordRE = regexp.MustCompile(`\w+`)

type shipElement struct {
	ID       string        `xml:"id,attr"`
	Group    string        `xml:"group,attr"`
	Category *shipCategory `xml:"category"`
}

type shipCategory struct {
	Size    string `xml:"size,attr"`
	Faction string `xml:"faction,attr"`
	Tags    string `xml:"tags,attr"`
}

type shipRecord struct {
	id, group, size, source string
	factions, tags          []string
}

// Ships extracts one row per ship element and generates dynamic boolean
// columns from the global sets of faction and tag tokens seen across all
// ships: faction columns wrapped in ( ), tag columns in [ ], both sorted.
// Columns are finalized only after every ship has been seen.
func Ships(files []discovery.File) Table {
	var records []shipRecord
	factionSet := make(map[string]struct{})
	tagSet := make(map[string]struct{})

	for _, f := range files {
		var fileRecords []shipRecord

		err := xmlscan.ScanFile(f.Path, "ship", func(d *xml.Decoder, se xml.StartElement) error {
			var ship shipElement
			if err := d.DecodeElement(&ship, &se); err != nil {
				return err
			}

			id := strings.TrimSpace(ship.ID)
			if id == "" {
				log.Warn().Str("file", f.Path).Msg("Ship without id, skipping entry")
				return nil
			}

			rec := shipRecord{
				id:     id,
				group:  strings.TrimSpace(ship.Group),
				source: f.Source,
			}
			if ship.Category != nil {
				rec.size = strings.TrimSpace(ship.Category.Size)
				rec.factions = wordRE.FindAllString(ship.Category.Faction, -1)
				rec.tags = wordRE.FindAllString(ship.Category.Tags, -1)
			}

			for _, fac := range rec.factions {
				factionSet[fac] = struct{}{}
			}
			for _, tag := range rec.tags {
				tagSet[tag] = struct{}{}
			}

			fileRecords = append(fileRecords, rec)
			return nil
		})
		if err != nil {
			log.Error().Err(err).Str("file", f.Path).Msg("Failed to process ships file")
			continue
		}

		records = append(records, fileRecords...)
	}

	if len(records) == 0 {
		log.Warn().Msg("No ship data extracted")
		return Table{Header: []string{"id", "group", "size", "source"}}
	}

	factionCols := wrapSorted(factionSet, "(", ")")
	tagCols := wrapSorted(tagSet, "[", "]")

	table := Table{Header: append(append([]string{"id", "group", "size", "source"}, factionCols...), tagCols...)}

	for _, rec := range records {
		row := make([]string, 0, len(table.Header))
		row = append(row, rec.id, rec.group, rec.size, rec.source)

		present := make(map[string]bool, len(rec.factions)+len(rec.tags))
		for _, fac := range rec.factions {
			present["("+fac+")"] = true
		}
		for _, tag := range rec.tags {
			present["["+tag+"]"] = true
		}

		for _, col := range factionCols {
			row = append(row, boolCell(present[col]))
		}
		for _, col := range tagCols {
			row = append(row, boolCell(present[col]))
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

func wrapSorted(set map[string]struct{}, left, right string) []string {
	cols := make([]string, 0, len(set))
	for token := range set {
		cols = append(cols, left+token+right)
	}
	sort.Strings(cols)
	return cols
}

func boolCell(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
