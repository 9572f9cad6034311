package xmlscan

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanFindsElementsAtAnyDepth(t *testing.T) {
	doc := `<root>
  <item id="a"/>
  <wrapper>
    <add sel="something">
      <item id="b"/>
    </add>
  </wrapper>
</root>`

	var ids []string
	err := Scan(strings.NewReader(doc), "item", func(d *xml.Decoder, se xml.StartElement) error {
		ids = append(ids, Attr(se, "id"))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestScanDecodeElementConsumesSubtree(t *testing.T) {
	doc := `<root><entry id="outer"><entry id="inner"/></entry><entry id="next"/></root>`

	type entry struct {
		ID string `xml:"id,attr"`
	}

	var ids []string
	err := Scan(strings.NewReader(doc), "entry", func(d *xml.Decoder, se xml.StartElement) error {
		var e entry
		if err := d.DecodeElement(&e, &se); err != nil {
			return err
		}
		ids = append(ids, e.ID)
		return nil
	})
	require.NoError(t, err)

	// The inner entry is part of the outer element's decode and is not
	// visited separately.
	assert.Equal(t, []string{"outer", "next"}, ids)
}

func TestScanMalformed(t *testing.T) {
	err := Scan(strings.NewReader(`<root><item>`), "item", func(d *xml.Decoder, se xml.StartElement) error {
		return nil
	})
	assert.Error(t, err)
}

func TestAttr(t *testing.T) {
	se := xml.StartElement{Attr: []xml.Attr{
		{Name: xml.Name{Local: "macro"}, Value: "Cluster_01_macro"},
	}}
	assert.Equal(t, "Cluster_01_macro", Attr(se, "macro"))
	assert.Equal(t, "", Attr(se, "missing"))
}
