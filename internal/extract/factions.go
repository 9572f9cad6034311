package extract

import (
	"encoding/xml"
	"regexp"
	"strings"

	"x4tables/internal/discovery"
	"x4tables/internal/locale"
	"x4tables/internal/xmlscan"

	"github.com/rs/zerolog/log"
)

type factionElement struct {
	ID            string `xml:"id,attr"`
	Name          string `xml:"name,attr"`
	ShortName     string `xml:"shortname,attr"`
	PrefixName    string `xml:"prefixname,attr"`
	SpaceName     string `xml:"spacename,attr"`
	HomeSpaceName string `xml:"homespacename,attr"`
	PrimaryRace   string `xml:"primaryrace,attr"`
}

// Factions extracts one row per faction element across all discovered
// files, resolving the name-like attributes through the catalog. Exclusion
// patterns are matched against "id_" + faction id. Factions without an id
// are skipped. A malformed file is logged and contributes nothing.
func Factions(files []discovery.File, cat *locale.Catalog, exclude []*regexp.Regexp) Table {
	table := Table{
		Header: []string{"id", "name", "shortname", "prefixname", "spacename", "homespacename", "primaryrace", "source"},
	}

	for _, f := range files {
		var rows [][]string

		err := xmlscan.ScanFile(f.Path, "faction", func(d *xml.Decoder, se xml.StartElement) error {
			var fe factionElement
			if err := d.DecodeElement(&fe, &se); err != nil {
				return err
			}

			id := strings.TrimSpace(fe.ID)
			if id == "" {
				log.Warn().Str("file", f.Path).Msg("Faction without id, skipping entry")
				return nil
			}

			if excluded("id_"+id, exclude) {
				log.Info().Str("faction", id).Str("file", f.Path).Msg("Excluded faction")
				return nil
			}

			rows = append(rows, []string{
				id,
				cat.Resolve(strings.TrimSpace(fe.Name)),
				cat.Resolve(strings.TrimSpace(fe.ShortName)),
				cat.Resolve(strings.TrimSpace(fe.PrefixName)),
				cat.Resolve(strings.TrimSpace(fe.SpaceName)),
				cat.Resolve(strings.TrimSpace(fe.HomeSpaceName)),
				strings.TrimSpace(fe.PrimaryRace),
				f.Source,
			})
			return nil
		})
		if err != nil {
			log.Error().Err(err).Str("file", f.Path).Msg("Failed to process factions file")
			continue
		}

		table.Rows = append(table.Rows, rows...)
	}

	if table.Empty() {
		log.Warn().Msg("No faction data extracted")
	}
	return table
}
