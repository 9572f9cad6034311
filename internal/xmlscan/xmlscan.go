// Package xmlscan provides a streaming XML element scanner shared by the
// localization loader and the record extractors. Elements are matched by
// local name at any depth, which also picks up entries nested inside
// extension diff/add wrappers.
package xmlscan

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"golang.org/x/net/html/charset"
)

// ElementFunc is invoked for each matching start element. Implementations
// typically call d.DecodeElement to unmarshal the element in place; if they
// do not consume it, scanning continues into the element's subtree.
type ElementFunc func(d *xml.Decoder, se xml.StartElement) error

// NewDecoder wraps r in an xml.Decoder that honors non-UTF-8 encoding
// declarations.
func NewDecoder(r io.Reader) *xml.Decoder {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel
	return d
}

// Scan walks the token stream of r and calls fn for every start element
// whose local name equals name, at any nesting depth.
func Scan(r io.Reader, name string, fn ElementFunc) error {
	d := NewDecoder(r)
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read xml token: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != name {
			continue
		}
		if err := fn(d, se); err != nil {
			return err
		}
	}
}

// ScanFile opens path and scans it for elements named name.
func ScanFile(path, name string, fn ElementFunc) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open xml file: %w", err)
	}
	defer f.Close()

	if err := Scan(f, name, fn); err != nil {
		return fmt.Errorf("scan %s: %w", path, err)
	}
	return nil
}

// Attr returns the value of the named attribute on se, or "" if absent.
func Attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
