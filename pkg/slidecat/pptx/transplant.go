package pptx

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/beevik/etree"
)

// ErrNoSolidBackground indicates a slide whose background is absent, not a
// solid fill, or not an explicit RGB color.
var ErrNoSolidBackground = errors.New("slide background is not a solid RGB fill")

// deckBoundRelTypes cannot be carried from one presentation to another.
var deckBoundRelTypes = map[string]bool{
	RelTypeSlide:         true,
	RelTypeSlideLayout:   true,
	RelTypeSlideMaster:   true,
	RelTypeNotesSlide:    true,
	RelTypeNotesMaster:   true,
	RelTypeHandoutMaster: true,
}

// Importer copies slide content from one presentation into another. Parts
// referenced by copied shapes (images, media, charts) are imported once per
// Importer, so reuse one Importer for all slides of a source deck.
type Importer struct {
	dst, src *Presentation
	// imported maps source part names to destination part names.
	imported map[string]string
}

// NewImporter returns an Importer copying from src into dst.
func NewImporter(dst, src *Presentation) *Importer {
	return &Importer{dst: dst, src: src, imported: make(map[string]string)}
}

// ImportedParts returns how many source parts have been copied so far.
func (im *Importer) ImportedParts() int {
	return len(im.imported)
}

// CopyShapes appends a deep copy of every shape of from to the shape tree
// of to, in order. Relationship references inside the copies are re-pointed
// at relationships of to.
func (im *Importer) CopyShapes(to, from *Slide) error {
	shapes, err := from.Shapes()
	if err != nil {
		return err
	}
	tree, err := to.ShapeTree()
	if err != nil {
		return err
	}
	fromRels, err := im.src.pkg.Rels(from.Part)
	if err != nil {
		return err
	}
	toRels, err := im.dst.pkg.Rels(to.Part)
	if err != nil {
		return err
	}

	l := &relinker{im: im, fromPart: from.Part, toPart: to.Part, fromRels: fromRels, toRels: toRels, ids: make(map[string]string)}
	for _, shape := range shapes {
		declareNamespaces(to.Root(), shape.Parent())
		c := shape.Copy()
		tree.AddChild(c)
		if err := l.relink(c); err != nil {
			return fmt.Errorf("copying shapes of %s: %w", from.Part, err)
		}
	}
	return nil
}

// declareNamespaces declares on root every prefix bound in the scope of
// from that root does not bind yet.
func declareNamespaces(root, from *etree.Element) {
	for el := from; el != nil; el = el.Parent() {
		for _, a := range el.Attr {
			if a.Space != "xmlns" {
				continue
			}
			if lookupNamespace(root, a.Key) == "" {
				root.CreateAttr("xmlns:"+a.Key, a.Value)
			}
		}
	}
}

// relinker rewrites r:* attributes of copied shapes for one slide.
type relinker struct {
	im               *Importer
	fromPart, toPart string
	fromRels, toRels *Relationships
	// ids maps source relationship ids to destination ids.
	ids map[string]string
}

func (l *relinker) relink(shape *etree.Element) error {
	var firstErr error
	walk(shape, func(e *etree.Element) {
		if firstErr != nil {
			return
		}
		attrs := append([]etree.Attr(nil), e.Attr...)
		for _, a := range attrs {
			if a.Space == "" || a.Space == "xmlns" || lookupNamespace(e, a.Space) != NamespaceR {
				continue
			}
			key := a.Space + ":" + a.Key
			id, ok, err := l.remap(a.Value)
			if err != nil {
				firstErr = err
				return
			}
			if !ok {
				e.RemoveAttr(key)
				continue
			}
			e.CreateAttr(key, id)
		}
	})
	return firstErr
}

// remap returns the destination relationship id for a source id. ok is
// false when the reference cannot be carried over.
func (l *relinker) remap(old string) (string, bool, error) {
	if id, ok := l.ids[old]; ok {
		return id, true, nil
	}
	rel, ok := l.fromRels.Get(old)
	if !ok {
		return "", false, nil
	}

	var id string
	switch {
	case rel.External:
		id = l.toRels.Add(rel.Type, rel.Target, true)
	case deckBoundRelTypes[rel.Type]:
		return "", false, nil
	default:
		target, err := l.im.importPart(ResolveTarget(l.fromPart, rel.Target))
		if err != nil {
			return "", false, err
		}
		if target == "" {
			return "", false, nil
		}
		id = l.toRels.Add(rel.Type, RelativeTarget(l.toPart, target), false)
	}
	l.ids[old] = id
	return id, true, nil
}

// importPart copies a source part, and the parts it references, into the
// destination package. It returns "" when the source part does not exist.
func (im *Importer) importPart(name string) (string, error) {
	if dst, ok := im.imported[name]; ok {
		return dst, nil
	}
	part, ok := im.src.pkg.Part(name)
	if !ok {
		return "", nil
	}
	data, err := part.Bytes()
	if err != nil {
		return "", err
	}

	prefix, suffix := partNamePattern(name)
	dstName := im.dst.pkg.nextPartName(prefix, suffix)
	im.dst.pkg.addPart(dstName, data, nil, "")
	im.imported[name] = dstName

	ct := im.src.pkg.ContentType(name)
	if ct == "" {
		ct = "application/octet-stream"
	}
	if im.src.pkg.types.overridden(name) {
		im.dst.pkg.types.register(dstName, ct)
	} else {
		im.dst.pkg.types.registerDefault(dstName, ct)
	}

	if _, hasRels := im.src.pkg.Part(relsPartName(name)); !hasRels {
		return dstName, nil
	}
	srcRels, err := im.src.pkg.Rels(name)
	if err != nil {
		return "", err
	}
	dstRels, err := im.dst.pkg.Rels(dstName)
	if err != nil {
		return "", err
	}
	// Ids are kept so references inside the copied part stay valid.
	for _, rel := range srcRels.All() {
		switch {
		case rel.External:
			dstRels.AddWithID(rel.ID, rel.Type, rel.Target, true)
		case deckBoundRelTypes[rel.Type]:
		default:
			child, err := im.importPart(ResolveTarget(name, rel.Target))
			if err != nil {
				return "", err
			}
			if child != "" {
				dstRels.AddWithID(rel.ID, rel.Type, RelativeTarget(dstName, child), false)
			}
		}
	}
	return dstName, nil
}

// partNamePattern splits "ppt/media/image3.png" into "ppt/media/image" and
// ".png" so a fresh number can be placed between them.
func partNamePattern(name string) (prefix, suffix string) {
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	return strings.TrimRight(stem, "0123456789"), ext
}

// BackgroundColor returns the RRGGBB color of a solid slide background.
func (s *Slide) BackgroundColor() (string, error) {
	bgPr := childPath(s.Root(), NamespaceP, "cSld", "bg", "bgPr")
	clr := firstChild(firstChild(bgPr, NamespaceA, "solidFill"), NamespaceA, "srgbClr")
	if clr == nil {
		return "", ErrNoSolidBackground
	}
	val := clr.SelectAttrValue("val", "")
	if !isHexColor(val) {
		return "", fmt.Errorf("%w: invalid color %q", ErrNoSolidBackground, val)
	}
	return strings.ToUpper(val), nil
}

// SetSolidBackground replaces the slide background with a solid RGB fill.
func (s *Slide) SetSolidBackground(rgb string) error {
	if !isHexColor(rgb) {
		return fmt.Errorf("invalid color %q", rgb)
	}
	cSld := firstChild(s.Root(), NamespaceP, "cSld")
	if cSld == nil {
		return fmt.Errorf("%s: %w", s.Part, ErrNoShapeTree)
	}
	if old := firstChild(cSld, NamespaceP, "bg"); old != nil {
		cSld.RemoveChild(old)
	}

	pTag := func(local string) string { return qualify(cSld, NamespaceP, local, false) }
	aTag := func(local string) string { return qualify(cSld, NamespaceA, local, false) }

	bg := etree.NewElement(pTag("bg"))
	bgPr := bg.CreateElement(pTag("bgPr"))
	fill := bgPr.CreateElement(aTag("solidFill"))
	fill.CreateElement(aTag("srgbClr")).CreateAttr("val", strings.ToUpper(rgb))
	bgPr.CreateElement(aTag("effectLst"))
	// p:bg is the first child of p:cSld.
	cSld.InsertChildAt(0, bg)
	return nil
}

// CopySolidBackground gives to the solid background color of from. The
// source is inspected first, so a failure leaves to untouched.
func CopySolidBackground(to, from *Slide) error {
	rgb, err := from.BackgroundColor()
	if err != nil {
		return err
	}
	return to.SetSolidBackground(rgb)
}

func isHexColor(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
