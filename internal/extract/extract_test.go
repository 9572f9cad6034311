package extract

import (
	"os"
	"path/filepath"
	"testing"

	"x4tables/internal/discovery"
	"x4tables/internal/locale"

	"github.com/stretchr/testify/require"
)

const testLocXML = `<?xml version="1.0" encoding="utf-8"?>
<language id="44">
  <page id="20101">
    <t id="101">Argon Federation (faction)</t>
    <t id="102">ARG</t>
    <t id="103">Energy Cells</t>
  </page>
  <page id="20201">
    <t id="401">Argon Prime</t>
    <t id="402">The Void (dangerous)</t>
    <t id="403">{20201,401} II</t>
  </page>
</language>`

// testCatalog loads the shared localization fixture through the real loader.
func testCatalog(t *testing.T) *locale.Catalog {
	t.Helper()
	cat := locale.NewCatalog()
	cat.LoadFile(writeXML(t, "0001-l044.xml", testLocXML))
	require.Equal(t, 6, cat.Len())
	return cat
}

func writeXML(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func sourceFiles(t *testing.T, name, content string) []discovery.File {
	t.Helper()
	return []discovery.File{{Source: discovery.OriginalSource, Path: writeXML(t, name, content)}}
}
