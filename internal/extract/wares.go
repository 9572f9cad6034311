package extract

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"x4tables/internal/discovery"
	"x4tables/internal/locale"
	"x4tables/internal/xmlscan"

	"github.com/rs/zerolog/log"
)

// validTransport holds the transport classes that count as tradable.
var validTransport = map[string]bool{
	"container": true,
	"liquid":    true,
	"solid":     true,
}

type wareElement struct {
	Name      string        `xml:"name,attr"`
	Tags      string        `xml:"tags,attr"`
	Transport string        `xml:"transport,attr"`
	Price     *priceElement `xml:"price"`
}

type priceElement struct {
	Min string `xml:"min,attr"`
	Max string `xml:"max,attr"`
}

// priceBands holds the derived price intervals around the average, each
// clamped into [min, max].
type priceBands struct {
	avg          float64
	min30, max30 float64
	min50, max50 float64
	min70, max70 float64
}

// Wares extracts one row per tradable ware: wares tagged module are
// skipped, transport is restricted to container/liquid/solid, and entries
// missing a price or carrying an unparseable name reference are dropped.
func Wares(files []discovery.File, cat *locale.Catalog) Table {
	table := Table{
		Header: []string{"name", "min", "max", "avg",
			"30% min", "30% max",
			"50% min", "50% max",
			"70% min", "70% max",
			"transport", "source"},
	}

	for _, f := range files {
		var rows [][]string

		err := xmlscan.ScanFile(f.Path, "ware", func(d *xml.Decoder, se xml.StartElement) error {
			var ware wareElement
			if err := d.DecodeElement(&ware, &se); err != nil {
				return err
			}

			if hasToken(ware.Tags, "module") {
				return nil
			}
			if !validTransport[ware.Transport] {
				return nil
			}
			if ware.Price == nil || ware.Price.Min == "" || ware.Price.Max == "" {
				return nil
			}

			name, ok := cat.ResolveReference(ware.Name)
			if !ok {
				return nil
			}

			min, errMin := strconv.ParseFloat(ware.Price.Min, 64)
			max, errMax := strconv.ParseFloat(ware.Price.Max, 64)
			if errMin != nil || errMax != nil {
				log.Warn().Str("name", name).Str("file", f.Path).Msg("Unparseable ware price, skipping entry")
				return nil
			}

			bands := calculateBands(min, max)
			rows = append(rows, []string{
				name, ware.Price.Min, ware.Price.Max,
				fmt.Sprintf("%.0f", bands.avg),
				fmt.Sprintf("%.0f", bands.min30),
				fmt.Sprintf("%.0f", bands.max30),
				fmt.Sprintf("%.0f", bands.min50),
				fmt.Sprintf("%.0f", bands.max50),
				fmt.Sprintf("%.0f", bands.min70),
				fmt.Sprintf("%.0f", bands.max70),
				ware.Transport, f.Source,
			})
			return nil
		})
		if err != nil {
			log.Error().Err(err).Str("file", f.Path).Msg("Failed to process wares file")
			continue
		}

		table.Rows = append(table.Rows, rows...)
	}

	if table.Empty() {
		log.Warn().Msg("No ware data extracted")
	}
	return table
}

// calculateBands derives the 30/50/70% price intervals around the average,
// using half the min-max range as the spread unit.
func calculateBands(min, max float64) priceBands {
	avg := (min + max) / 2
	halfRange := (max - min) / 2

	clamp := func(p float64) float64 {
		if p < min {
			return min
		}
		if p > max {
			return max
		}
		return p
	}

	return priceBands{
		avg:   avg,
		min30: clamp(avg - 0.30*halfRange),
		max30: clamp(avg + 0.30*halfRange),
		min50: clamp(avg - 0.50*halfRange),
		max50: clamp(avg + 0.50*halfRange),
		min70: clamp(avg - 0.70*halfRange),
		max70: clamp(avg + 0.70*halfRange),
	}
}

func hasToken(list, token string) bool {
	for _, t := range strings.Fields(list) {
		if t == token {
			return true
		}
	}
	return false
}
