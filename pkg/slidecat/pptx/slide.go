package pptx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// ErrNoShapeTree indicates a slide without p:cSld/p:spTree.
var ErrNoShapeTree = errors.New("slide has no shape tree")

// shapeTags lists the p:spTree children that are shapes.
var shapeTags = map[string]bool{
	"sp":           true,
	"grpSp":        true,
	"graphicFrame": true,
	"cxnSp":        true,
	"pic":          true,
	"contentPart":  true,
}

// Slide is one slide part of a presentation.
type Slide struct {
	pres *Presentation
	// Part is the slide's part name.
	Part string
	doc  *etree.Document
}

// Root returns the p:sld element.
func (s *Slide) Root() *etree.Element {
	return s.doc.Root()
}

// ShapeTree returns the slide's p:spTree element.
func (s *Slide) ShapeTree() (*etree.Element, error) {
	tree := childPath(s.Root(), NamespaceP, "cSld", "spTree")
	if tree == nil {
		return nil, fmt.Errorf("%s: %w", s.Part, ErrNoShapeTree)
	}
	return tree, nil
}

// Shapes returns the shape elements of the shape tree in document order.
func (s *Slide) Shapes() ([]*etree.Element, error) {
	tree, err := s.ShapeTree()
	if err != nil {
		return nil, err
	}
	var shapes []*etree.Element
	for _, c := range tree.ChildElements() {
		if isShape(c) {
			shapes = append(shapes, c)
		}
	}
	return shapes, nil
}

func isShape(e *etree.Element) bool {
	return shapeTags[e.Tag] && lookupNamespace(e, e.Space) == NamespaceP
}

// TitleShape returns the first shape holding a title or centered-title
// placeholder, or nil.
func (s *Slide) TitleShape() (*etree.Element, error) {
	shapes, err := s.Shapes()
	if err != nil {
		return nil, err
	}
	for _, shape := range shapes {
		switch placeholderType(shape) {
		case "title", "ctrTitle":
			return shape, nil
		}
	}
	return nil, nil
}

// HasTitle reports whether the slide has a title placeholder.
func (s *Slide) HasTitle() (bool, error) {
	shape, err := s.TitleShape()
	return shape != nil, err
}

// Title returns the text of the title placeholder, if any.
func (s *Slide) Title() string {
	shape, err := s.TitleShape()
	if err != nil || shape == nil {
		return ""
	}
	return shapeText(shape)
}

// placeholderType returns the p:ph type of a shape. A placeholder without
// a type attribute is an object placeholder; a non-placeholder yields "".
func placeholderType(shape *etree.Element) string {
	for _, nv := range shape.ChildElements() {
		if !strings.HasPrefix(nv.Tag, "nv") {
			continue
		}
		ph := childPath(nv, NamespaceP, "nvPr", "ph")
		if ph == nil {
			return ""
		}
		return ph.SelectAttrValue("type", "obj")
	}
	return ""
}

// shapeText joins the text runs of a shape, one line per paragraph.
func shapeText(shape *etree.Element) string {
	var paragraphs []string
	walk(shape, func(e *etree.Element) {
		if !isElement(e, NamespaceA, "p") {
			return
		}
		var b strings.Builder
		walk(e, func(r *etree.Element) {
			if isElement(r, NamespaceA, "t") {
				b.WriteString(r.Text())
			}
		})
		if b.Len() > 0 {
			paragraphs = append(paragraphs, b.String())
		}
	})
	return strings.Join(paragraphs, "\n")
}
