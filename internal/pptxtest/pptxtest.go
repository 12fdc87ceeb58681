// Package pptxtest writes synthetic presentations for tests.
package pptxtest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Layout describes a slide layout of a generated deck.
type Layout struct {
	Name string
	Type string
}

// DefaultLayouts mirrors the first seven layouts of PowerPoint's default
// template, with "Blank" in slot 6.
var DefaultLayouts = []Layout{
	{Name: "Title Slide", Type: "title"},
	{Name: "Title and Content", Type: "obj"},
	{Name: "Section Header", Type: "secHead"},
	{Name: "Two Content", Type: "twoObj"},
	{Name: "Comparison", Type: "twoTxTwoObj"},
	{Name: "Title Only", Type: "titleOnly"},
	{Name: "Blank", Type: "blank"},
}

// Slide describes one generated slide.
type Slide struct {
	// Title becomes a title placeholder; empty means no title shape.
	Title string
	// Body adds one text box per entry.
	Body []string
	// Background is an RRGGBB solid background fill.
	Background string
	// ThemeBackground references a theme background style instead.
	ThemeBackground bool
	// Picture adds a picture backed by a media part.
	Picture bool
	// Link adds an external hyperlink to the title run.
	Link string
	// Broken writes a slide part that is not well-formed XML.
	Broken bool
}

// Deck describes a generated presentation.
type Deck struct {
	Slides []Slide
	// Layouts defaults to DefaultLayouts.
	Layouts []Layout
}

// Titled returns a deck of n slides titled "<prefix> 1" .. "<prefix> n",
// each with one body text box.
func Titled(prefix string, n int) Deck {
	deck := Deck{}
	for i := 1; i <= n; i++ {
		deck.Slides = append(deck.Slides, Slide{
			Title: fmt.Sprintf("%s %d", prefix, i),
			Body:  []string{fmt.Sprintf("%s body %d", prefix, i)},
		})
	}
	return deck
}

// WriteTitled writes Titled(name, n) to dir/name.pptx and returns the path.
func WriteTitled(t testing.TB, dir, name string, n int) string {
	t.Helper()
	filename := filepath.Join(dir, name+".pptx")
	Write(t, filename, Titled(name, n))
	return filename
}

const (
	nsDecl = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
		`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
		`xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`
	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
	relsNS    = "http://schemas.openxmlformats.org/package/2006/relationships"
	relBase   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"
	ctBase    = "application/vnd.openxmlformats-officedocument."
)

// pngStub is a PNG signature followed by an IHDR chunk header; enough for a
// part whose bytes are only copied around.
var pngStub = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

// Write writes deck as a .pptx package to filename.
func Write(t testing.TB, filename string, deck Deck) {
	t.Helper()
	data, err := Build(deck)
	if err != nil {
		t.Fatalf("Failed to build deck: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", filename, err)
	}
}

// Build renders deck as .pptx bytes.
func Build(deck Deck) ([]byte, error) {
	layouts := deck.Layouts
	if layouts == nil {
		layouts = DefaultLayouts
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	add := func(name, content string) error {
		w, err := zw.Create(name)
		if err != nil {
			return err
		}
		_, err = w.Write([]byte(content))
		return err
	}

	var overrides strings.Builder
	override := func(part, ct string) {
		fmt.Fprintf(&overrides, `<Override PartName="/%s" ContentType="%s"/>`, part, ct)
	}
	override("ppt/presentation.xml", ctBase+"presentationml.presentation.main+xml")
	override("ppt/slideMasters/slideMaster1.xml", ctBase+"presentationml.slideMaster+xml")
	override("ppt/theme/theme1.xml", ctBase+"theme+xml")
	for i := range layouts {
		override(fmt.Sprintf("ppt/slideLayouts/slideLayout%d.xml", i+1), ctBase+"presentationml.slideLayout+xml")
	}
	for i := range deck.Slides {
		override(fmt.Sprintf("ppt/slides/slide%d.xml", i+1), ctBase+"presentationml.slide+xml")
	}

	files := []entry{
		{"[Content_Types].xml", xmlHeader + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
			`<Default Extension="xml" ContentType="application/xml"/>` +
			`<Default Extension="png" ContentType="image/png"/>` +
			overrides.String() + `</Types>`},
		{"_rels/.rels", rels(rel{"rId1", "officeDocument", "ppt/presentation.xml", false})},
		{"ppt/presentation.xml", presentationXML(len(deck.Slides))},
		{"ppt/_rels/presentation.xml.rels", presentationRels(len(deck.Slides))},
		{"ppt/theme/theme1.xml", xmlHeader + `<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="Office Theme"><a:themeElements/></a:theme>`},
		{"ppt/slideMasters/slideMaster1.xml", masterXML(len(layouts))},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", masterRels(len(layouts))},
	}
	for i, l := range layouts {
		files = append(files,
			entry{fmt.Sprintf("ppt/slideLayouts/slideLayout%d.xml", i+1), layoutXML(l)},
			entry{fmt.Sprintf("ppt/slideLayouts/_rels/slideLayout%d.xml.rels", i+1),
				rels(rel{"rId1", "slideMaster", "../slideMasters/slideMaster1.xml", false})},
		)
	}
	for i, s := range deck.Slides {
		n := i + 1
		content := slideXML(s)
		if s.Broken {
			content = xmlHeader + `<p:sld ` + nsDecl + `><p:cSld name=unquoted><p:spTree>`
		}
		var slideRels []rel
		if len(layouts) > 0 {
			slideRels = append(slideRels, rel{"rId1", "slideLayout", fmt.Sprintf("../slideLayouts/slideLayout%d.xml", min(2, len(layouts))), false})
		}
		if s.Picture {
			slideRels = append(slideRels, rel{"rId2", "image", fmt.Sprintf("../media/image%d.png", n), false})
			files = append(files, entry{fmt.Sprintf("ppt/media/image%d.png", n), string(pngStub)})
		}
		if s.Link != "" {
			slideRels = append(slideRels, rel{"rId3", "hyperlink", s.Link, true})
		}
		files = append(files,
			entry{fmt.Sprintf("ppt/slides/slide%d.xml", n), content},
			entry{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), rels(slideRels...)},
		)
	}

	for _, f := range files {
		if err := add(f.name, f.content); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type entry struct{ name, content string }

type rel struct {
	id, kind, target string
	external         bool
}

func rels(rs ...rel) string {
	var b strings.Builder
	b.WriteString(xmlHeader + `<Relationships xmlns="` + relsNS + `">`)
	for _, r := range rs {
		mode := ""
		if r.external {
			mode = ` TargetMode="External"`
		}
		fmt.Fprintf(&b, `<Relationship Id="%s" Type="%s%s" Target="%s"%s/>`, r.id, relBase, r.kind, escape(r.target), mode)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

func presentationXML(slides int) string {
	var b strings.Builder
	b.WriteString(xmlHeader + `<p:presentation ` + nsDecl + ` saveSubsetFonts="1">`)
	b.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	if slides > 0 {
		b.WriteString(`<p:sldIdLst>`)
		for i := 0; i < slides; i++ {
			fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, i+3)
		}
		b.WriteString(`</p:sldIdLst>`)
	}
	b.WriteString(`<p:sldSz cx="9144000" cy="6858000" type="screen4x3"/><p:notesSz cx="6858000" cy="9144000"/>`)
	b.WriteString(`</p:presentation>`)
	return b.String()
}

func presentationRels(slides int) string {
	rs := []rel{
		{"rId1", "slideMaster", "slideMasters/slideMaster1.xml", false},
		{"rId2", "theme", "theme/theme1.xml", false},
	}
	for i := 0; i < slides; i++ {
		rs = append(rs, rel{fmt.Sprintf("rId%d", i+3), "slide", fmt.Sprintf("slides/slide%d.xml", i+1), false})
	}
	return rels(rs...)
}

func masterXML(layouts int) string {
	var b strings.Builder
	b.WriteString(xmlHeader + `<p:sldMaster ` + nsDecl + `>`)
	b.WriteString(`<p:cSld><p:bg><p:bgRef idx="1001"><a:schemeClr val="bg1"/></p:bgRef></p:bg>` + emptyTree + `</p:cSld>`)
	b.WriteString(`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>`)
	b.WriteString(`<p:sldLayoutIdLst>`)
	for i := 0; i < layouts; i++ {
		fmt.Fprintf(&b, `<p:sldLayoutId id="%d" r:id="rId%d"/>`, 2147483649+i, i+1)
	}
	b.WriteString(`</p:sldLayoutIdLst></p:sldMaster>`)
	return b.String()
}

func masterRels(layouts int) string {
	var rs []rel
	for i := 0; i < layouts; i++ {
		rs = append(rs, rel{fmt.Sprintf("rId%d", i+1), "slideLayout", fmt.Sprintf("../slideLayouts/slideLayout%d.xml", i+1), false})
	}
	rs = append(rs, rel{fmt.Sprintf("rId%d", layouts+1), "theme", "../theme/theme1.xml", false})
	return rels(rs...)
}

const emptyTree = `<p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/></p:spTree>`

func layoutXML(l Layout) string {
	typ := ""
	if l.Type != "" {
		typ = fmt.Sprintf(` type="%s"`, l.Type)
	}
	return xmlHeader + fmt.Sprintf(`<p:sldLayout %s%s preserve="1"><p:cSld name="%s">%s</p:cSld>`+
		`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sldLayout>`, nsDecl, typ, escape(l.Name), emptyTree)
}

func slideXML(s Slide) string {
	var b strings.Builder
	b.WriteString(xmlHeader + `<p:sld ` + nsDecl + `><p:cSld>`)
	switch {
	case s.Background != "":
		fmt.Fprintf(&b, `<p:bg><p:bgPr><a:solidFill><a:srgbClr val="%s"/></a:solidFill><a:effectLst/></p:bgPr></p:bg>`, s.Background)
	case s.ThemeBackground:
		b.WriteString(`<p:bg><p:bgRef idx="1001"><a:schemeClr val="bg2"/></p:bgRef></p:bg>`)
	}
	b.WriteString(`<p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`)

	id := 2
	if s.Title != "" {
		link := ""
		if s.Link != "" {
			link = `<a:hlinkClick r:id="rId3"/>`
		}
		fmt.Fprintf(&b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Title %d"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr>`+
			`<p:nvPr><p:ph type="title"/></p:nvPr></p:nvSpPr><p:spPr/>`+
			`<p:txBody><a:bodyPr/><a:lstStyle/><a:p><a:r><a:rPr lang="en-US" dirty="0">%s</a:rPr><a:t>%s</a:t></a:r></a:p></p:txBody></p:sp>`,
			id, id-1, link, escape(s.Title))
		id++
	}
	for _, text := range s.Body {
		fmt.Fprintf(&b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="TextBox %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`+
			`<p:spPr><a:xfrm><a:off x="457200" y="1600200"/><a:ext cx="8229600" cy="457200"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>`+
			`<p:txBody><a:bodyPr wrap="square"/><a:lstStyle/><a:p><a:r><a:rPr lang="en-US"/><a:t>%s</a:t></a:r></a:p></p:txBody></p:sp>`,
			id, id-1, escape(text))
		id++
	}
	if s.Picture {
		fmt.Fprintf(&b, `<p:pic><p:nvPicPr><p:cNvPr id="%d" name="Picture %d"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>`+
			`<p:blipFill><a:blip r:embed="rId2"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`+
			`<p:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="952500" cy="952500"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`,
			id, id-1)
	}
	b.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	return b.String()
}

func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
