package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

const contentTypesPart = "[Content_Types].xml"

// Part is a single entry of an OPC package.
type Part struct {
	// Name is the zip entry name, without a leading slash.
	Name string

	data []byte
	doc  *etree.Document
}

// Document returns the part parsed as XML. The parsed tree is cached and
// written back in place of the original bytes when the package is saved.
func (p *Part) Document() (*etree.Document, error) {
	if p.doc != nil {
		return p.doc, nil
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(p.data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", p.Name, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("parsing %s: no root element", p.Name)
	}
	p.doc = doc
	return doc, nil
}

// Bytes returns the serialized part.
func (p *Part) Bytes() ([]byte, error) {
	if p.doc == nil {
		return p.data, nil
	}
	return p.doc.WriteToBytes()
}

// Package is an OPC package held in memory.
type Package struct {
	parts map[string]*Part
	// order keeps the original entry order; new parts are appended.
	order []string
	rels  map[string]*Relationships
	types *contentTypes
}

// OpenPackage reads the package at path into memory.
func OpenPackage(filename string) (*Package, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ReadPackage(bytes.NewReader(data), int64(len(data)))
}

// ReadPackage reads a package from r.
func ReadPackage(r io.ReaderAt, size int64) (*Package, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		if cerr := inspectCompound(r); cerr != nil {
			return nil, cerr
		}
		return nil, fmt.Errorf("%w: %v", ErrNotPackage, err)
	}

	pkg := &Package{
		parts: make(map[string]*Part),
		rels:  make(map[string]*Relationships),
	}
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		data, err := readZipEntry(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Name, err)
		}
		name := strings.TrimPrefix(f.Name, "/")
		if _, dup := pkg.parts[name]; dup {
			continue
		}
		pkg.parts[name] = &Part{Name: name, data: data}
		pkg.order = append(pkg.order, name)
	}

	ct, ok := pkg.parts[contentTypesPart]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrNotPackage, contentTypesPart)
	}
	doc, err := ct.Document()
	if err != nil {
		return nil, err
	}
	pkg.types = &contentTypes{doc: doc}

	return pkg, nil
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Part returns the named part.
func (pkg *Package) Part(name string) (*Part, bool) {
	p, ok := pkg.parts[name]
	return p, ok
}

// ContentType returns the content type registered for the named part.
func (pkg *Package) ContentType(name string) string {
	return pkg.types.lookup(name)
}

// addPart stores a new part and registers its content type.
func (pkg *Package) addPart(name string, data []byte, doc *etree.Document, contentType string) *Part {
	p := &Part{Name: name, data: data, doc: doc}
	if _, exists := pkg.parts[name]; !exists {
		pkg.order = append(pkg.order, name)
	}
	pkg.parts[name] = p
	if contentType != "" {
		pkg.types.register(name, contentType)
	}
	return p
}

// nextPartName returns the first unused name of the form prefix<N>suffix,
// with N starting at 1.
func (pkg *Package) nextPartName(prefix, suffix string) string {
	for n := 1; ; n++ {
		name := prefix + strconv.Itoa(n) + suffix
		if _, taken := pkg.parts[name]; !taken {
			return name
		}
	}
}

// Rels returns the relationships whose source is the named part. The empty
// name addresses the package-level relationships. A part without a rels
// entry yields an empty, writable set.
func (pkg *Package) Rels(source string) (*Relationships, error) {
	if r, ok := pkg.rels[source]; ok {
		return r, nil
	}
	name := relsPartName(source)
	var doc *etree.Document
	if p, ok := pkg.parts[name]; ok {
		d, err := p.Document()
		if err != nil {
			return nil, err
		}
		doc = d
	} else {
		doc = newXMLDocument()
		doc.CreateElement("Relationships").CreateAttr("xmlns", nsPackageRels)
		pkg.addPart(name, nil, doc, "")
	}
	r := &Relationships{source: source, doc: doc}
	pkg.rels[source] = r
	return r, nil
}

// reachable returns every part reachable from the package relationships.
func (pkg *Package) reachable() (map[string]bool, error) {
	seen := make(map[string]bool)
	queue := []string{""}
	for len(queue) > 0 {
		source := queue[0]
		queue = queue[1:]

		if source != "" {
			if _, ok := pkg.parts[relsPartName(source)]; !ok {
				if _, loaded := pkg.rels[source]; !loaded {
					continue
				}
			}
		}
		rels, err := pkg.Rels(source)
		if err != nil {
			return nil, err
		}
		for _, rel := range rels.All() {
			if rel.External {
				continue
			}
			target := ResolveTarget(source, rel.Target)
			if seen[target] {
				continue
			}
			if _, ok := pkg.parts[target]; !ok {
				continue
			}
			seen[target] = true
			queue = append(queue, target)
		}
	}
	return seen, nil
}

// WriteTo writes the package as a zip archive. Parts that are no longer
// reachable from the package relationships are left out, together with
// their content type overrides.
func (pkg *Package) WriteTo(w io.Writer) error {
	keep, err := pkg.reachable()
	if err != nil {
		return err
	}

	written := make(map[string]bool)
	var entries []string
	for _, name := range pkg.order {
		if name == contentTypesPart {
			continue
		}
		if source, ok := relsSource(name); ok {
			if source != "" && !keep[source] {
				continue
			}
			rels, err := pkg.Rels(source)
			if err != nil {
				return err
			}
			if len(rels.All()) == 0 {
				continue
			}
		} else if !keep[name] {
			continue
		}
		entries = append(entries, name)
		written[name] = true
	}

	types, err := pkg.types.pruned(written)
	if err != nil {
		return fmt.Errorf("serializing %s: %w", contentTypesPart, err)
	}
	zw := zip.NewWriter(w)
	if err := writeEntry(zw, contentTypesPart, types); err != nil {
		return err
	}
	for _, name := range entries {
		data, err := pkg.parts[name].Bytes()
		if err != nil {
			return fmt.Errorf("serializing %s: %w", name, err)
		}
		if err := writeEntry(zw, name, data); err != nil {
			return err
		}
	}
	return zw.Close()
}

// Save writes the package to filename.
func (pkg *Package) Save(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := pkg.WriteTo(f); err != nil {
		f.Close()
		os.Remove(filename)
		return err
	}
	return f.Close()
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// relsPartName returns the rels entry name for a source part.
func relsPartName(source string) string {
	if source == "" {
		return "_rels/.rels"
	}
	dir, file := path.Split(source)
	return dir + "_rels/" + file + ".rels"
}

// relsSource reports whether name is a rels entry and, if so, its source part.
func relsSource(name string) (string, bool) {
	if name == "_rels/.rels" {
		return "", true
	}
	dir, file := path.Split(name)
	if !strings.HasSuffix(dir, "_rels/") || !strings.HasSuffix(file, ".rels") {
		return "", false
	}
	return strings.TrimSuffix(dir, "_rels/") + strings.TrimSuffix(file, ".rels"), true
}

// ResolveTarget resolves a relationship target against its source part.
func ResolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return path.Clean(strings.TrimPrefix(target, "/"))
	}
	return strings.TrimPrefix(path.Clean(path.Join(path.Dir(source), target)), "/")
}

// RelativeTarget returns the relative target from source to the part target.
func RelativeTarget(source, target string) string {
	from := strings.Split(path.Dir(source), "/")
	if path.Dir(source) == "." {
		from = nil
	}
	to := strings.Split(target, "/")

	i := 0
	for i < len(from) && i < len(to)-1 && from[i] == to[i] {
		i++
	}
	parts := make([]string, 0, len(from)-i+len(to)-i)
	for range from[i:] {
		parts = append(parts, "..")
	}
	parts = append(parts, to[i:]...)
	return strings.Join(parts, "/")
}
