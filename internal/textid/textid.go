// Package textid builds and resolves the identifiers that tie a text node in an
// FTL document to its gettext entry.
//
// An identifier names the nearest named anchor element (an event, eventList,
// textList or ship carrying a name attribute) and the element path from that
// anchor down to the node:
//
//	event__INTRO_EVENT__choice[2]/event[1]/text[1]
//
// Identifiers are relative to the anchor, not to the document, so they survive
// regeneration of the document as long as the anchor and the structure below it
// are unchanged.
package textid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Separator joins the anchor tag, the anchor name and the relative path.
// Anchor names must not start or end with it.
const Separator = "__"

// DefaultAnchorTags is the anchor search order, most specific container first.
var DefaultAnchorTags = []string{"event", "eventList", "textList", "ship"}

var (
	// ErrNoAnchor is matched by IdentifierError.
	ErrNoAnchor = errors.New("no named anchor")
	// ErrMalformedID is returned when an identifier string cannot be decomposed.
	ErrMalformedID = errors.New("malformed identifier")
)

// IdentifierError reports a node that has no recognized anchor among its
// ancestors. It means the anchor tag set does not cover the document shape.
type IdentifierError struct {
	Path string
}

func (e *IdentifierError) Error() string {
	return fmt.Sprintf("cannot generate translation ID for %s: %s", e.Path, ErrNoAnchor)
}

func (e *IdentifierError) Is(target error) bool {
	return target == ErrNoAnchor
}

// ID is the decomposed form of an identifier.
type ID struct {
	AnchorTag  string
	AnchorName string
	// Path is the slash separated element path from the anchor to the node,
	// without a leading separator. Empty when the node is its own anchor.
	Path string
}

// String composes the wire form "{AnchorTag}__{AnchorName}__{Path}".
func (id ID) String() string {
	return id.AnchorTag + Separator + id.AnchorName + Separator + id.Path
}

// Parse decomposes an identifier produced by ID.String.
//
// The tag ends at the first separator and the path starts after the last one,
// so everything in between is the anchor name. A leading slash on the path is
// accepted for catalogs written by older tooling.
func Parse(s string) (ID, error) {
	first := strings.Index(s, Separator)
	last := strings.LastIndex(s, Separator)
	if first <= 0 || first == last {
		return ID{}, fmt.Errorf("%w: %q", ErrMalformedID, s)
	}

	id := ID{
		AnchorTag:  s[:first],
		AnchorName: s[first+len(Separator) : last],
		Path:       strings.TrimPrefix(s[last+len(Separator):], "/"),
	}
	if id.AnchorName == "" {
		return ID{}, fmt.Errorf("%w: empty anchor name in %q", ErrMalformedID, s)
	}
	if _, err := parseSteps(id.Path); err != nil {
		return ID{}, fmt.Errorf("%w: %q: %v", ErrMalformedID, s, err)
	}
	return id, nil
}

// Generator computes identifiers for elements of a parsed document.
type Generator struct {
	anchorTags []string
}

// NewGenerator creates a generator trying anchorTags in order.
func NewGenerator(anchorTags []string) *Generator {
	if len(anchorTags) == 0 {
		anchorTags = DefaultAnchorTags
	}
	return &Generator{anchorTags: anchorTags}
}

// Generate returns the identifier of el.
//
// Each anchor tag is tried in order. A node carrying a name attribute is its
// own anchor; otherwise the nearest ancestor with the tag and a non-empty name
// is used. The first tag that yields an anchor wins.
func (g *Generator) Generate(el *etree.Element) (ID, error) {
	for _, tag := range g.anchorTags {
		anchor := findAnchor(el, tag)
		if anchor == nil {
			continue
		}

		full := steps(el)
		base := steps(anchor)
		return ID{
			AnchorTag:  anchor.FullTag(),
			AnchorName: anchor.SelectAttrValue("name", ""),
			Path:       strings.Join(full[len(base):], "/"),
		}, nil
	}

	return ID{}, &IdentifierError{Path: AbsPath(el)}
}

func findAnchor(el *etree.Element, tag string) *etree.Element {
	if el.SelectAttrValue("name", "") != "" {
		return el
	}
	for a := el.Parent(); a != nil; a = a.Parent() {
		if a.FullTag() == tag && a.SelectAttrValue("name", "") != "" {
			return a
		}
	}
	return nil
}

// AbsPath returns the absolute element path of el, e.g. "/FTL[1]/event[3]/text[1]".
func AbsPath(el *etree.Element) string {
	return "/" + strings.Join(steps(el), "/")
}

// steps lists the path steps from the document down to el. The document
// container itself has no parent and contributes no step.
func steps(el *etree.Element) []string {
	var out []string
	for e := el; e != nil && e.Parent() != nil; e = e.Parent() {
		out = append(out, fmt.Sprintf("%s[%d]", e.FullTag(), position(e)))
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// position is the 1-based index of el among its parent's children sharing its tag.
func position(el *etree.Element) int {
	n := 1
	for _, sib := range el.Parent().ChildElements() {
		if sib == el {
			break
		}
		if sib.FullTag() == el.FullTag() {
			n++
		}
	}
	return n
}

type step struct {
	tag   string
	index int // 0 selects every child with the tag
}

func parseSteps(path string) ([]step, error) {
	if path == "" {
		return nil, nil
	}

	var out []step
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			return nil, fmt.Errorf("empty path step")
		}
		open := strings.IndexByte(part, '[')
		if open < 0 {
			out = append(out, step{tag: part})
			continue
		}
		if open == 0 || !strings.HasSuffix(part, "]") {
			return nil, fmt.Errorf("bad path step %q", part)
		}
		n, err := strconv.Atoi(part[open+1 : len(part)-1])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("bad index in path step %q", part)
		}
		out = append(out, step{tag: part[:open], index: n})
	}
	return out, nil
}

// Resolve returns every element of doc addressed by id, in document order:
// all elements with the anchor tag and name, each followed along the path.
// Anchor names are not unique in practice, so several nodes may match.
func Resolve(doc *etree.Document, id ID) []*etree.Element {
	path, err := parseSteps(id.Path)
	if err != nil {
		return nil
	}

	var matches []*etree.Element
	for _, anchor := range findAll(&doc.Element, id.AnchorTag, id.AnchorName) {
		matches = append(matches, follow(anchor, path)...)
	}
	return matches
}

func findAll(root *etree.Element, tag, name string) []*etree.Element {
	var out []*etree.Element
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, c := range e.ChildElements() {
			if c.FullTag() == tag && c.SelectAttrValue("name", "") == name {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(root)
	return out
}

func follow(el *etree.Element, path []step) []*etree.Element {
	if len(path) == 0 {
		return []*etree.Element{el}
	}

	var out []*etree.Element
	n := 0
	for _, c := range el.ChildElements() {
		if c.FullTag() != path[0].tag {
			continue
		}
		n++
		if path[0].index == 0 || path[0].index == n {
			out = append(out, follow(c, path[1:])...)
		}
	}
	return out
}
