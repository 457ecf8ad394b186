// Command clash-fields inventories the element and attribute paths present
// in a clash XML export, as JSON. Useful when a new tool version changes
// the schema and the exporter's field mapping needs checking.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/beevik/etree"
)

type fields struct {
	Elements   []string `json:"elements"`
	Attributes []string `json:"attributes"`
}

func main() {
	input := flag.String("input", "", "Clash XML file")
	output := flag.String("output", "", "Output JSON file (default: available_fields.json next to the input)")
	flag.Parse()

	if *input == "" {
		log.Fatal("missing -input")
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(*input); err != nil {
		log.Fatal(err)
	}

	elements := make(map[string]bool)
	attributes := make(map[string]bool)
	if root := doc.Root(); root != nil {
		walk(root, "", elements, attributes)
	}

	out := *output
	if out == "" {
		out = filepath.Join(filepath.Dir(*input), "available_fields.json")
	}

	bs, err := json.MarshalIndent(fields{
		Elements:   sorted(elements),
		Attributes: sorted(attributes),
	}, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(out, append(bs, '\n'), 0o644); err != nil {
		log.Fatal(err)
	}
	log.Printf("found %d elements and %d attributes, saved to %s", len(elements), len(attributes), out)
}

func walk(el *etree.Element, path string, elements, attributes map[string]bool) {
	tagPath := el.Tag
	if path != "" {
		tagPath = path + "/" + el.Tag
	}
	for _, attr := range el.Attr {
		attributes[tagPath+"/@"+attr.Key] = true
	}
	children := el.ChildElements()
	if len(children) > 0 || strings.TrimSpace(el.Text()) != "" {
		elements[tagPath] = true
	}
	for _, child := range children {
		walk(child, tagPath, elements, attributes)
	}
}

func sorted(set map[string]bool) []string {
	res := make([]string, 0, len(set))
	for k := range set {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}
