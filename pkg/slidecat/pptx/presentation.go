// Package pptx provides a PresentationML object model over an in-memory
// OPC package: slide list editing, layouts, masters and shape transplant.
package pptx

import (
	"errors"
	"fmt"
	"path"
	"strconv"

	"github.com/beevik/etree"
)

// ErrSlideIndex indicates a zero-based slide index outside the slide list.
var ErrSlideIndex = errors.New("slide index out of range")

const defaultMainPart = "ppt/presentation.xml"

// firstSlideID is the smallest id PowerPoint assigns to a p:sldId entry.
const firstSlideID = 256

// Presentation is an opened presentation document.
type Presentation struct {
	pkg  *Package
	part string
	doc  *etree.Document
}

// Layout describes one slide layout of the presentation.
type Layout struct {
	// Part is the layout's part name.
	Part string
	// Name is the layout's display name (p:cSld/@name).
	Name string
	// Type is the layout type (p:sldLayout/@type), e.g. "blank" or "title".
	Type string
	// Index is the position in Presentation.Layouts.
	Index int
}

// Open opens the presentation at filename.
func Open(filename string) (*Presentation, error) {
	pkg, err := OpenPackage(filename)
	if err != nil {
		return nil, err
	}
	return FromPackage(pkg)
}

// FromPackage locates and parses the main presentation part of pkg.
func FromPackage(pkg *Package) (*Presentation, error) {
	rels, err := pkg.Rels("")
	if err != nil {
		return nil, err
	}

	main := ""
	for _, rel := range rels.All() {
		if rel.Type == RelTypeOfficeDocument && !rel.External {
			main = ResolveTarget("", rel.Target)
			break
		}
	}
	if main == "" {
		main = defaultMainPart
		rels.Add(RelTypeOfficeDocument, main, false)
	}

	part, ok := pkg.Part(main)
	if !ok {
		return nil, fmt.Errorf("%w: missing main part %s", ErrNotPackage, main)
	}
	doc, err := part.Document()
	if err != nil {
		return nil, err
	}
	if !isElement(doc.Root(), NamespaceP, "presentation") {
		return nil, fmt.Errorf("%w: %s is not a presentation part", ErrNotPackage, main)
	}

	return &Presentation{pkg: pkg, part: main, doc: doc}, nil
}

// Package returns the underlying package.
func (p *Presentation) Package() *Package {
	return p.pkg
}

// PartName returns the name of the main presentation part.
func (p *Presentation) PartName() string {
	return p.part
}

func (p *Presentation) root() *etree.Element {
	return p.doc.Root()
}

func (p *Presentation) slideIDList() *etree.Element {
	return firstChild(p.root(), NamespaceP, "sldIdLst")
}

func (p *Presentation) slideRefs() []*etree.Element {
	return children(p.slideIDList(), NamespaceP, "sldId")
}

// SlideCount returns the number of entries in the slide list.
func (p *Presentation) SlideCount() int {
	return len(p.slideRefs())
}

// MasterCount returns the number of slide masters.
func (p *Presentation) MasterCount() int {
	return len(children(firstChild(p.root(), NamespaceP, "sldMasterIdLst"), NamespaceP, "sldMasterId"))
}

// SlideSize returns the slide dimensions in EMU, if declared.
func (p *Presentation) SlideSize() (cx, cy int64, ok bool) {
	sz := firstChild(p.root(), NamespaceP, "sldSz")
	if sz == nil {
		return 0, 0, false
	}
	cx, errX := strconv.ParseInt(sz.SelectAttrValue("cx", ""), 10, 64)
	cy, errY := strconv.ParseInt(sz.SelectAttrValue("cy", ""), 10, 64)
	if errX != nil || errY != nil {
		return 0, 0, false
	}
	return cx, cy, true
}

// slideRef returns the i-th slide list entry and its relationship id.
func (p *Presentation) slideRef(i int) (*etree.Element, string, error) {
	refs := p.slideRefs()
	if i < 0 || i >= len(refs) {
		return nil, "", fmt.Errorf("%w: %d (have %d slides)", ErrSlideIndex, i, len(refs))
	}
	rid, _ := attrNS(refs[i], NamespaceR, "id")
	return refs[i], rid, nil
}

// RemoveSlide drops the i-th slide list entry together with the
// presentation relationship it points through. The slide part itself is
// orphaned and left out when the package is saved.
func (p *Presentation) RemoveSlide(i int) error {
	ref, rid, err := p.slideRef(i)
	if err != nil {
		return err
	}
	rels, err := p.pkg.Rels(p.part)
	if err != nil {
		return err
	}
	if _, ok := rels.Get(rid); ok {
		if err := rels.Remove(rid); err != nil {
			return err
		}
	}
	p.slideIDList().RemoveChild(ref)
	return nil
}

// Slide loads the i-th slide.
func (p *Presentation) Slide(i int) (*Slide, error) {
	_, rid, err := p.slideRef(i)
	if err != nil {
		return nil, err
	}
	if rid == "" {
		return nil, fmt.Errorf("slide %d: missing relationship id", i+1)
	}
	rels, err := p.pkg.Rels(p.part)
	if err != nil {
		return nil, err
	}
	rel, ok := rels.Get(rid)
	if !ok {
		return nil, fmt.Errorf("slide %d: relationship %s not found", i+1, rid)
	}

	name := ResolveTarget(p.part, rel.Target)
	part, ok := p.pkg.Part(name)
	if !ok {
		return nil, fmt.Errorf("slide %d: missing part %s", i+1, name)
	}
	doc, err := part.Document()
	if err != nil {
		return nil, fmt.Errorf("slide %d: %w", i+1, err)
	}
	if !isElement(doc.Root(), NamespaceP, "sld") {
		return nil, fmt.Errorf("slide %d: %s is not a slide part", i+1, name)
	}
	return &Slide{pres: p, Part: name, doc: doc}, nil
}

// relatedPart resolves the relationship rid of source to a part name.
func (p *Presentation) relatedPart(source, rid string) (string, error) {
	rels, err := p.pkg.Rels(source)
	if err != nil {
		return "", err
	}
	rel, ok := rels.Get(rid)
	if !ok {
		return "", fmt.Errorf("%s: relationship %s not found", source, rid)
	}
	return ResolveTarget(source, rel.Target), nil
}

func (p *Presentation) partDocument(name string) (*etree.Document, error) {
	part, ok := p.pkg.Part(name)
	if !ok {
		return nil, fmt.Errorf("missing part %s", name)
	}
	return part.Document()
}

// Layouts returns the slide layouts of every master, in master order and
// then in each master's layout list order.
func (p *Presentation) Layouts() ([]*Layout, error) {
	var layouts []*Layout
	masters := children(firstChild(p.root(), NamespaceP, "sldMasterIdLst"), NamespaceP, "sldMasterId")
	for _, m := range masters {
		rid, _ := attrNS(m, NamespaceR, "id")
		masterName, err := p.relatedPart(p.part, rid)
		if err != nil {
			return nil, err
		}
		masterDoc, err := p.partDocument(masterName)
		if err != nil {
			return nil, err
		}

		ids := children(firstChild(masterDoc.Root(), NamespaceP, "sldLayoutIdLst"), NamespaceP, "sldLayoutId")
		for _, l := range ids {
			lrid, _ := attrNS(l, NamespaceR, "id")
			layoutName, err := p.relatedPart(masterName, lrid)
			if err != nil {
				return nil, err
			}
			layoutDoc, err := p.partDocument(layoutName)
			if err != nil {
				return nil, err
			}
			root := layoutDoc.Root()
			layout := &Layout{
				Part:  layoutName,
				Type:  root.SelectAttrValue("type", ""),
				Index: len(layouts),
			}
			if cSld := firstChild(root, NamespaceP, "cSld"); cSld != nil {
				layout.Name = cSld.SelectAttrValue("name", "")
			}
			layouts = append(layouts, layout)
		}
	}
	return layouts, nil
}

const slideTemplate = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr></p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`

// AddSlide appends an empty slide based on layout. Placeholders of the
// layout are not instantiated on the new slide.
func (p *Presentation) AddSlide(layout *Layout) (*Slide, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(slideTemplate); err != nil {
		return nil, err
	}

	name := p.pkg.nextPartName(path.Join(path.Dir(p.part), "slides", "slide"), ".xml")
	p.pkg.addPart(name, nil, doc, ContentTypeSlide)

	slideRels, err := p.pkg.Rels(name)
	if err != nil {
		return nil, err
	}
	slideRels.Add(RelTypeSlideLayout, RelativeTarget(name, layout.Part), false)

	presRels, err := p.pkg.Rels(p.part)
	if err != nil {
		return nil, err
	}
	rid := presRels.Add(RelTypeSlide, RelativeTarget(p.part, name), false)

	id := p.nextSlideID()
	lst := p.ensureSlideIDList()
	ref := lst.CreateElement(qualify(lst, NamespaceP, "sldId", false))
	ref.CreateAttr("id", strconv.Itoa(id))
	ref.CreateAttr(qualify(ref, NamespaceR, "id", true), rid)

	return &Slide{pres: p, Part: name, doc: doc}, nil
}

func (p *Presentation) nextSlideID() int {
	max := firstSlideID - 1
	for _, ref := range p.slideRefs() {
		if n, err := strconv.Atoi(ref.SelectAttrValue("id", "")); err == nil && n > max {
			max = n
		}
	}
	return max + 1
}

// ensureSlideIDList returns p:sldIdLst, creating it after the master id
// lists when the presentation has none.
func (p *Presentation) ensureSlideIDList() *etree.Element {
	if lst := p.slideIDList(); lst != nil {
		return lst
	}
	root := p.root()
	lst := etree.NewElement(qualify(root, NamespaceP, "sldIdLst", false))
	for _, c := range root.ChildElements() {
		switch c.Tag {
		case "sldMasterIdLst", "notesMasterIdLst", "handoutMasterIdLst":
			continue
		}
		root.InsertChildAt(c.Index(), lst)
		return lst
	}
	root.AddChild(lst)
	return lst
}

// Save writes the presentation to filename.
func (p *Presentation) Save(filename string) error {
	return p.pkg.Save(filename)
}
