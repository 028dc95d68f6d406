package svgpath

import (
	"io"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

// BordersID is the id of the decorative border layer, which is not a hex.
const BordersID = "State_borders"

// ErrDuplicateID is returned when two hex paths share an id.
var ErrDuplicateID = errors.New("duplicate path id")

// Element is a raw <path> element of the map document.
type Element struct {
	ID string
	D  string
}

// ReadDocument returns every hex <path> of an SVG document in document order.
// Paths without an id and the border layer are skipped.
func ReadDocument(r io.Reader) ([]Element, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, errors.Wrap(err, "could not read the svg document")
	}

	var (
		elems []Element
		seen  = make(map[string]struct{})
	)
	for _, el := range paths(doc.Root(), nil) {
		id := el.SelectAttrValue("id", "")
		if id == "" || id == BordersID {
			continue
		}
		if _, ok := seen[id]; ok {
			return nil, errors.Wrapf(ErrDuplicateID, "id %q", id)
		}
		seen[id] = struct{}{}
		elems = append(elems, Element{ID: id, D: el.SelectAttrValue("d", "")})
	}
	return elems, nil
}

// paths collects the <path> elements below el depth first, in the order they
// appear in the document.
func paths(el *etree.Element, acc []*etree.Element) []*etree.Element {
	if el == nil {
		return acc
	}
	for _, child := range el.ChildElements() {
		if child.Tag == "path" {
			acc = append(acc, child)
		}
		acc = paths(child, acc)
	}
	return acc
}
