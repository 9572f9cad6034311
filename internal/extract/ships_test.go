package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testShipsXML = `<?xml version="1.0" encoding="utf-8"?>
<ships>
  <ship id="ship_a" group="fighters">
    <category size="ship_s" faction="argon teladi" tags="fighter"/>
  </ship>
  <ship id="ship_b" group="freighters">
    <category size="ship_l" faction="teladi" tags="trader heavy"/>
  </ship>
  <ship group="orphans"/>
  <ship id="ship_c"/>
</ships>`

func TestShips(t *testing.T) {
	files := sourceFiles(t, "ships.xml", testShipsXML)
	table := Ships(files)

	// Dynamic columns: factions wrapped in ( ), tags in [ ], both sorted.
	assert.Equal(t,
		[]string{"id", "group", "size", "source", "(argon)", "(teladi)", "[fighter]", "[heavy]", "[trader]"},
		table.Header)

	// The ship without an id is skipped; ship_c has no category.
	require.Len(t, table.Rows, 3)

	assert.Equal(t,
		[]string{"ship_a", "fighters", "ship_s", "original", "TRUE", "TRUE", "TRUE", "FALSE", "FALSE"},
		table.Rows[0])
	assert.Equal(t,
		[]string{"ship_b", "freighters", "ship_l", "original", "FALSE", "TRUE", "FALSE", "TRUE", "TRUE"},
		table.Rows[1])
	assert.Equal(t,
		[]string{"ship_c", "", "", "original", "FALSE", "FALSE", "FALSE", "FALSE", "FALSE"},
		table.Rows[2])
}

func TestShipsEmpty(t *testing.T) {
	files := sourceFiles(t, "ships.xml", `<ships/>`)
	table := Ships(files)

	assert.True(t, table.Empty())
	assert.Equal(t, []string{"id", "group", "size", "source"}, table.Header)
}
