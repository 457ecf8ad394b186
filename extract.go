package clashreport

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// ExtractFile parses the clash XML at path. A missing or unreadable file is
// an *InputError, everything else behaves like Extract.
func ExtractFile(path string) ([]Record, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	defer fd.Close()
	return Extract(fd)
}

// Extract parses a clash XML document into records, in document order.
//
// Two layouts exist in the wild, depending on the exporting tool version: a
// flat one where results sit in a clashresults container under each test,
// and a nested one where results sit inside clashgroup elements. The flat
// layout is probed first; only if it matches nothing is the nested layout
// tried. Results from the two probes are never mixed.
func Extract(r io.Reader) ([]Record, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, &ParseError{Err: err}
	}

	if elems := doc.FindElements("//clashresults/clashresult"); len(elems) > 0 {
		return extractFlat(doc, elems), nil
	}
	if elems := doc.FindElements("//clashgroup//clashresult"); len(elems) > 0 {
		return extractNested(elems), nil
	}
	return nil, &ParseError{Err: errors.New("no clash results in either supported layout")}
}

// charsetReader decodes the encodings coordination tools tend to declare
// (windows-125x, ISO-8859-x) into UTF-8.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", charset)
	}
	return transform.NewReader(input, enc.NewDecoder()), nil
}

func extractFlat(doc *etree.Document, elems []*etree.Element) []Record {
	// Tests and their results are siblings in the flat layout, so the
	// owning test is found by matching result guids.
	testByGUID := make(map[string]string)
	for _, test := range doc.FindElements("//clashtest") {
		name := attrOr(test, "name", UnknownTest)
		for _, res := range test.FindElements(".//clashresult") {
			guid := res.SelectAttrValue("guid", "")
			if guid == "" {
				continue
			}
			if _, ok := testByGUID[guid]; !ok {
				testByGUID[guid] = name
			}
		}
	}

	recs := make([]Record, 0, len(elems))
	for i, el := range elems {
		rec := recordFrom(el, i+1)
		rec.TestName = UnknownTest
		if name, ok := testByGUID[rec.GUID]; ok && rec.GUID != "" {
			rec.TestName = name
		}
		recs = append(recs, rec)
	}
	return recs
}

func extractNested(elems []*etree.Element) []Record {
	recs := make([]Record, 0, len(elems))
	for i, el := range elems {
		rec := recordFrom(el, i+1)
		group := ancestor(el, "clashgroup")
		if group != nil {
			rec.GroupName = attrOr(group, "name", UnknownGroup)
			if test := ancestor(group, "clashtest"); test != nil {
				rec.TestName = attrOr(test, "name", UnknownTest)
			} else {
				rec.TestName = UnknownTest
			}
		} else {
			rec.TestName = UnknownTest
		}
		recs = append(recs, rec)
	}
	return recs
}

// recordFrom reads the fields held on the clashresult element itself.
// index is 1-based and used to synthesize a name when the attribute is
// missing.
func recordFrom(el *etree.Element, index int) Record {
	rec := Record{
		ClashName: attrOr(el, "name", fmt.Sprintf("Clash%d", index)),
		GroupName: attrOr(el, "group", UnknownGroup),
		GUID:      el.SelectAttrValue("guid", ""),
		Distance:  attrOr(el, "distance", "N/A"),
		ImageHref: strings.TrimSpace(strings.ReplaceAll(el.SelectAttrValue("href", ""), `\`, "/")),
		Position:  parsePosition(el.FindElement(".//pos3f")),
	}
	objs := el.FindElements(".//clashobject")
	if len(objs) > 0 {
		rec.Item1 = itemDetails(objs[0])
	}
	if len(objs) > 1 {
		rec.Item2 = itemDetails(objs[1])
	}
	return rec
}

// parsePosition returns nil unless all three coordinates parse as finite
// numbers. A broken position is not an error, just an absent one.
func parsePosition(pos *etree.Element) *Position {
	if pos == nil {
		return nil
	}
	var p Position
	for _, c := range []struct {
		attr string
		dst  *float64
	}{
		{"x", &p.X},
		{"y", &p.Y},
		{"z", &p.Z},
	} {
		v, err := strconv.ParseFloat(strings.TrimSpace(pos.SelectAttrValue(c.attr, "")), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		*c.dst = v
	}
	return &p
}

// itemDetails summarizes the smarttag metadata of one clashing object into
// the multi-line description the reports show.
func itemDetails(obj *etree.Element) string {
	tags := make(map[string]string)
	for _, st := range obj.FindElements(".//smarttag") {
		name := strings.TrimSpace(childText(st, "name"))
		if name != "" {
			tags[name] = strings.TrimSpace(childText(st, "value"))
		}
	}

	var lines []string
	if v := tags["Item Name"]; v != "" {
		lines = append(lines, "Item Name: "+v)
	}
	if v := tags["Civil3D General:Network name"]; v != "" {
		lines = append(lines, "Network: "+v)
	}
	if v := strings.TrimSpace(tags["Civil3D General:Part Size Name"] + " " + tags["Item Type"]); v != "" {
		lines = append(lines, "Item Type: "+v)
	}
	inner := tags["Civil3D General:Inner Diameter or Width"]
	outer := tags["Civil3D General:Outer Diameter or Width"]
	if inner != "" || outer != "" {
		lines = append(lines, strings.TrimSpace(fmt.Sprintf("Pipe %s x %s", inner, outer)))
	}
	return strings.Join(lines, "\n")
}

func childText(el *etree.Element, tag string) string {
	if c := el.FindElement(tag); c != nil {
		return c.Text()
	}
	return ""
}

func attrOr(el *etree.Element, attr, def string) string {
	if v := el.SelectAttrValue(attr, ""); v != "" {
		return v
	}
	return def
}

func ancestor(el *etree.Element, tag string) *etree.Element {
	for p := el.Parent(); p != nil; p = p.Parent() {
		if p.Tag == tag {
			return p
		}
	}
	return nil
}
