package pptx

import (
	"path"
	"strings"

	"github.com/beevik/etree"
)

// contentTypes wraps the [Content_Types].xml part.
type contentTypes struct {
	doc *etree.Document
}

func (c *contentTypes) root() *etree.Element {
	return c.doc.Root()
}

// lookup returns the content type of a part: its Override when present,
// otherwise the Default registered for its extension.
func (c *contentTypes) lookup(name string) string {
	partName := "/" + name
	for _, o := range c.root().SelectElements("Override") {
		if strings.EqualFold(o.SelectAttrValue("PartName", ""), partName) {
			return o.SelectAttrValue("ContentType", "")
		}
	}
	if ct, ok := c.defaultFor(extension(name)); ok {
		return ct
	}
	return ""
}

// overridden reports whether name has its own Override entry.
func (c *contentTypes) overridden(name string) bool {
	partName := "/" + name
	for _, o := range c.root().SelectElements("Override") {
		if strings.EqualFold(o.SelectAttrValue("PartName", ""), partName) {
			return true
		}
	}
	return false
}

func (c *contentTypes) defaultFor(ext string) (string, bool) {
	for _, d := range c.root().SelectElements("Default") {
		if strings.EqualFold(d.SelectAttrValue("Extension", ""), ext) {
			return d.SelectAttrValue("ContentType", ""), true
		}
	}
	return "", false
}

// register records contentType for name. A Default entry already covering
// the extension with the same type is reused; otherwise an Override is added.
func (c *contentTypes) register(name, contentType string) {
	if ct, ok := c.defaultFor(extension(name)); ok && ct == contentType {
		return
	}
	root := c.root()
	o := root.CreateElement(qualify(root, nsContentTypes, "Override", false))
	o.CreateAttr("PartName", "/"+name)
	o.CreateAttr("ContentType", contentType)
}

// registerDefault adds a Default entry for the extension of name unless one
// exists. Binary parts such as images are typed this way.
func (c *contentTypes) registerDefault(name, contentType string) {
	ext := extension(name)
	if ext == "" {
		c.register(name, contentType)
		return
	}
	if ct, ok := c.defaultFor(ext); ok {
		if ct != contentType {
			c.register(name, contentType)
		}
		return
	}
	root := c.root()
	d := etree.NewElement(qualify(root, nsContentTypes, "Default", false))
	d.CreateAttr("Extension", ext)
	d.CreateAttr("ContentType", contentType)
	// Defaults precede Overrides.
	root.InsertChildAt(0, d)
}

// pruned returns a serialized copy without Overrides for unwritten parts.
func (c *contentTypes) pruned(written map[string]bool) ([]byte, error) {
	doc := c.doc.Copy()
	root := doc.Root()
	for _, o := range root.SelectElements("Override") {
		name := strings.TrimPrefix(o.SelectAttrValue("PartName", ""), "/")
		if !written[name] {
			root.RemoveChild(o)
		}
	}
	return doc.WriteToBytes()
}

func extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
}
