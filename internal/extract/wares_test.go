package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWaresXML = `<?xml version="1.0" encoding="utf-8"?>
<wares>
  <ware id="energycells" name="{20101,103}" transport="container" tags="economy">
    <price min="10" average="15" max="20"/>
  </ware>
  <ware id="dock" name="{20101,103}" transport="container" tags="economy module">
    <price min="1" max="2"/>
  </ware>
  <ware id="engine" name="{20101,103}" transport="equipment">
    <price min="1" max="2"/>
  </ware>
  <ware id="badref" name="not_a_reference" transport="solid">
    <price min="1" max="2"/>
  </ware>
  <ware id="nameless" name="{20101,103}" transport="liquid"/>
  <ware id="badprice" name="{20101,103}" transport="solid">
    <price min="ten" max="20"/>
  </ware>
</wares>`

func TestWares(t *testing.T) {
	files := sourceFiles(t, "wares.xml", testWaresXML)
	table := Wares(files, testCatalog(t))

	assert.Equal(t, []string{"name", "min", "max", "avg",
		"30% min", "30% max", "50% min", "50% max", "70% min", "70% max",
		"transport", "source"}, table.Header)

	// Only energycells survives: module-tagged, wrong-transport, bad-name,
	// priceless and unparseable-price wares are all skipped.
	require.Len(t, table.Rows, 1)

	assert.Equal(t, []string{
		"Energy Cells", "10", "20", "15",
		"14", "16", "12", "18", "12", "18",
		"container", "original",
	}, table.Rows[0])
}

func TestCalculateBands(t *testing.T) {
	bands := calculateBands(10, 20)

	assert.InDelta(t, 15.0, bands.avg, 1e-9)
	assert.InDelta(t, 13.5, bands.min30, 1e-9)
	assert.InDelta(t, 16.5, bands.max30, 1e-9)
	assert.InDelta(t, 12.5, bands.min50, 1e-9)
	assert.InDelta(t, 17.5, bands.max50, 1e-9)
	assert.InDelta(t, 11.5, bands.min70, 1e-9)
	assert.InDelta(t, 18.5, bands.max70, 1e-9)
}

func TestCalculateBandsClamping(t *testing.T) {
	bands := calculateBands(10, 10)

	assert.Equal(t, 10.0, bands.avg)
	assert.Equal(t, 10.0, bands.min70)
	assert.Equal(t, 10.0, bands.max70)
}

func TestHasToken(t *testing.T) {
	assert.True(t, hasToken("economy module", "module"))
	assert.False(t, hasToken("modules economy", "module"))
	assert.False(t, hasToken("", "module"))
}
