// Package kicad renders generated artifacts into KiCad 8 file formats:
// .kicad_mod footprints, .kicad_sym symbol libraries, and an STL mesh
// for the 3D model. Output is deterministic; element UUIDs are SHA-1
// UUIDs of the document name and element key, never random, so
// re-exporting an identical artifact produces a byte-identical file.
package kicad

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// node is one S-expression list: a head token followed by atoms and
// child lists.
type node struct {
	name     string
	atoms    []string
	children []*node
}

func n(name string, atoms ...string) *node {
	return &node{name: name, atoms: atoms}
}

func (nd *node) add(children ...*node) *node {
	nd.children = append(nd.children, children...)
	return nd
}

// mm formats a millimetre value the way KiCad writes them: plain
// decimal, trailing noise rounded off at a tenth of a micron.
func mm(v float64) string {
	r := math.Round(v*1e4) / 1e4
	if r == 0 {
		r = 0 // normalize -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// q quotes a string atom.
func q(s string) string {
	return strconv.Quote(s)
}

// elementUUID derives the stable UUID for one element of a document.
func elementUUID(doc, key string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("kiforge/"+doc+"/"+key)).String()
}

func uuidNode(doc, key string) *node {
	return n("uuid", q(elementUUID(doc, key)))
}

// render writes the tree with KiCad's indentation style: leaf lists
// inline, nested lists on their own line.
func (nd *node) render(w io.Writer, depth int) error {
	indent := strings.Repeat("\t", depth)
	if _, err := fmt.Fprintf(w, "%s(%s", indent, nd.name); err != nil {
		return err
	}
	for _, a := range nd.atoms {
		if _, err := fmt.Fprintf(w, " %s", a); err != nil {
			return err
		}
	}
	if len(nd.children) == 0 {
		_, err := io.WriteString(w, ")")
		return err
	}
	for _, c := range nd.children {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		if err := c.render(w, depth+1); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n%s)", indent)
	return err
}

func writeDoc(w io.Writer, root *node) error {
	if err := root.render(w, 0); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
