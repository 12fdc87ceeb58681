package pptx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Relationship is a link from a source part to a target part or resource.
type Relationship struct {
	ID       string
	Type     string
	Target   string
	External bool
}

// Relationships is the relationship set of one source part.
type Relationships struct {
	source string
	doc    *etree.Document
}

func (r *Relationships) elements() []*etree.Element {
	root := r.doc.Root()
	if root == nil {
		return nil
	}
	return root.SelectElements("Relationship")
}

// All returns the relationships in document order.
func (r *Relationships) All() []Relationship {
	var out []Relationship
	for _, el := range r.elements() {
		out = append(out, relationshipFrom(el))
	}
	return out
}

func relationshipFrom(el *etree.Element) Relationship {
	return Relationship{
		ID:       el.SelectAttrValue("Id", ""),
		Type:     el.SelectAttrValue("Type", ""),
		Target:   el.SelectAttrValue("Target", ""),
		External: strings.EqualFold(el.SelectAttrValue("TargetMode", ""), "External"),
	}
}

// Get returns the relationship with the given id.
func (r *Relationships) Get(id string) (Relationship, bool) {
	for _, el := range r.elements() {
		if el.SelectAttrValue("Id", "") == id {
			return relationshipFrom(el), true
		}
	}
	return Relationship{}, false
}

// Add appends a relationship under the next free rIdN and returns its id.
func (r *Relationships) Add(relType, target string, external bool) string {
	id := r.nextID()
	r.AddWithID(id, relType, target, external)
	return id
}

// AddWithID appends a relationship under a caller-chosen id.
func (r *Relationships) AddWithID(id, relType, target string, external bool) {
	root := r.doc.Root()
	el := root.CreateElement(qualify(root, nsPackageRels, "Relationship", false))
	el.CreateAttr("Id", id)
	el.CreateAttr("Type", relType)
	el.CreateAttr("Target", target)
	if external {
		el.CreateAttr("TargetMode", "External")
	}
}

// Remove drops the relationship with the given id.
func (r *Relationships) Remove(id string) error {
	for _, el := range r.elements() {
		if el.SelectAttrValue("Id", "") == id {
			el.Parent().RemoveChild(el)
			return nil
		}
	}
	return fmt.Errorf("relationship %s not found on %q", id, r.source)
}

func (r *Relationships) nextID() string {
	max := 0
	for _, el := range r.elements() {
		id := el.SelectAttrValue("Id", "")
		if n, err := strconv.Atoi(strings.TrimPrefix(id, "rId")); err == nil && n > max {
			max = n
		}
	}
	return "rId" + strconv.Itoa(max+1)
}
