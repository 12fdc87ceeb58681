package pptx

import (
	"github.com/beevik/etree"
)

// XML namespaces used in PresentationML packages.
const (
	NamespaceP = "http://schemas.openxmlformats.org/presentationml/2006/main"
	NamespaceA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	NamespaceR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	nsPackageRels  = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes = "http://schemas.openxmlformats.org/package/2006/content-types"
)

// Relationship types.
const (
	RelTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	RelTypeSlide          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	RelTypeSlideLayout    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	RelTypeSlideMaster    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	RelTypeNotesSlide     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide"
	RelTypeNotesMaster    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesMaster"
	RelTypeHandoutMaster  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/handoutMaster"
)

// ContentTypeSlide is the content type of slide parts.
const ContentTypeSlide = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"

// preferredPrefixes maps namespaces to the prefix PowerPoint itself writes.
var preferredPrefixes = map[string]string{
	NamespaceP: "p",
	NamespaceA: "a",
	NamespaceR: "r",
}

// lookupNamespace resolves prefix to a namespace URI in the scope of e.
// The empty prefix resolves the default namespace.
func lookupNamespace(e *etree.Element, prefix string) string {
	for el := e; el != nil; el = el.Parent() {
		for _, a := range el.Attr {
			if prefix == "" && a.Space == "" && a.Key == "xmlns" {
				return a.Value
			}
			if prefix != "" && a.Space == "xmlns" && a.Key == prefix {
				return a.Value
			}
		}
	}
	return ""
}

// lookupPrefix finds a prefix bound to ns in the scope of e. When allowDefault
// is false only named prefixes qualify, which is what attributes require.
func lookupPrefix(e *etree.Element, ns string, allowDefault bool) (string, bool) {
	for el := e; el != nil; el = el.Parent() {
		for _, a := range el.Attr {
			if a.Value != ns {
				continue
			}
			if a.Space == "xmlns" {
				return a.Key, true
			}
			if allowDefault && a.Space == "" && a.Key == "xmlns" {
				return "", true
			}
		}
	}
	return "", false
}

// rootOf returns the outermost element above e.
func rootOf(e *etree.Element) *etree.Element {
	for e.Parent() != nil && e.Parent().Tag != "" {
		e = e.Parent()
	}
	return e
}

// qualify returns the tag for local in ns as written in e's scope, declaring
// the namespace on the document root when no binding is in scope.
func qualify(e *etree.Element, ns, local string, attr bool) string {
	prefix, ok := lookupPrefix(e, ns, !attr)
	if !ok {
		prefix = preferredPrefixes[ns]
		if prefix == "" {
			prefix = "ns"
		}
		rootOf(e).CreateAttr("xmlns:"+prefix, ns)
	}
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

// isElement reports whether e is the element local in namespace ns.
func isElement(e *etree.Element, ns, local string) bool {
	return e != nil && e.Tag == local && lookupNamespace(e, e.Space) == ns
}

// firstChild returns the first child element of e named local in ns.
func firstChild(e *etree.Element, ns, local string) *etree.Element {
	if e == nil {
		return nil
	}
	for _, c := range e.ChildElements() {
		if isElement(c, ns, local) {
			return c
		}
	}
	return nil
}

// childPath walks a chain of child elements, all in namespace ns.
func childPath(e *etree.Element, ns string, locals ...string) *etree.Element {
	for _, local := range locals {
		e = firstChild(e, ns, local)
		if e == nil {
			return nil
		}
	}
	return e
}

// children returns every child element of e named local in ns.
func children(e *etree.Element, ns, local string) []*etree.Element {
	var out []*etree.Element
	if e == nil {
		return out
	}
	for _, c := range e.ChildElements() {
		if isElement(c, ns, local) {
			out = append(out, c)
		}
	}
	return out
}

// attrNS returns the value of the namespaced attribute local on e.
func attrNS(e *etree.Element, ns, local string) (string, bool) {
	for _, a := range e.Attr {
		if a.Key == local && a.Space != "" && a.Space != "xmlns" && lookupNamespace(e, a.Space) == ns {
			return a.Value, true
		}
	}
	return "", false
}

// walk calls fn for e and every element below it, depth first.
func walk(e *etree.Element, fn func(*etree.Element)) {
	fn(e)
	for _, c := range e.ChildElements() {
		walk(c, fn)
	}
}

func newXMLDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	return doc
}
