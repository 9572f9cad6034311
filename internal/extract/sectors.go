package extract

import (
	"encoding/xml"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"x4tables/internal/discovery"
	"x4tables/internal/locale"
	"x4tables/internal/xmlscan"

	"github.com/rs/zerolog/log"
)

var digitsRE = regexp.MustCompile(`\d+`)

type sectorRecord struct {
	cluster, sector        int
	entryType, macro, name string
	source                 string
}

// Sectors extracts one row per map dataset across all discovered files.
// The display name comes from the identification element's name reference;
// exclusion patterns are matched against the dataset macro. Rows are
// sorted by (cluster id, sector id) ascending.
func Sectors(files []discovery.File, cat *locale.Catalog, exclude []*regexp.Regexp) Table {
	var records []sectorRecord

	for _, f := range files {
		var fileRecords []sectorRecord

		err := xmlscan.ScanFile(f.Path, "dataset", func(d *xml.Decoder, se xml.StartElement) error {
			macro := strings.TrimSpace(xmlscan.Attr(se, "macro"))
			nameRef, err := firstIdentificationName(d)
			if err != nil {
				return err
			}
			if macro == "" || nameRef == "" {
				return nil
			}

			if excluded(macro, exclude) {
				log.Info().Str("macro", macro).Str("file", f.Path).Msg("Excluded macro")
				return nil
			}

			cluster, sector, entryType := clusterSector(macro)

			name, ok := cat.ResolveReference(nameRef)
			if !ok {
				log.Warn().Str("ref", nameRef).Str("file", f.Path).Msg("Invalid name reference")
			}

			fileRecords = append(fileRecords, sectorRecord{
				cluster:   cluster,
				sector:    sector,
				entryType: entryType,
				macro:     macro,
				name:      name,
				source:    f.Source,
			})
			return nil
		})
		if err != nil {
			log.Error().Err(err).Str("file", f.Path).Msg("Failed to process map file")
			continue
		}

		records = append(records, fileRecords...)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].cluster != records[j].cluster {
			return records[i].cluster < records[j].cluster
		}
		return records[i].sector < records[j].sector
	})

	table := Table{Header: []string{"macro", "name", "source", "type"}}
	for _, r := range records {
		table.Rows = append(table.Rows, []string{r.macro, r.name, r.source, r.entryType})
	}
	return table
}

// firstIdentificationName walks a dataset's subtree and returns the name
// attribute of the first identification element, consuming the subtree.
func firstIdentificationName(d *xml.Decoder) (string, error) {
	name := ""
	depth := 1
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if name == "" && t.Name.Local == "identification" {
				name = strings.TrimSpace(xmlscan.Attr(t, "name"))
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return name, nil
}

// clusterSector derives cluster and sector ids from a macro string: the
// first run of digits is the cluster, the second the sector. One run means
// a cluster-level entry; none is reported as unknown. This is a heuristic
// kept for compatibility, not a general macro parser.
func clusterSector(macro string) (int, int, string) {
	runs := digitsRE.FindAllString(macro, -1)
	switch {
	case len(runs) >= 2:
		cluster, _ := strconv.Atoi(runs[0])
		sector, _ := strconv.Atoi(runs[1])
		return cluster, sector, "sector"
	case len(runs) == 1:
		cluster, _ := strconv.Atoi(runs[0])
		return cluster, 0, "cluster"
	default:
		log.Warn().Str("macro", macro).Msg("Could not extract cluster and sector ids from macro")
		return 0, 0, "unknown"
	}
}
