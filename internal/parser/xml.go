// Package parser loads FTL event documents and enumerates their translatable
// text nodes.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ftl-translator/internal/classify"

	"github.com/beevik/etree"
)

// ErrMalformed marks documents that are not well-formed XML.
var ErrMalformed = errors.New("malformed xml document")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// XMLParser reads .xml and .append documents.
type XMLParser struct {
	classifier *classify.Classifier
	extensions map[string]bool
}

// NewXMLParser creates a parser that keeps the text nodes accepted by classifier.
func NewXMLParser(classifier *classify.Classifier, extensions []string) *XMLParser {
	p := &XMLParser{classifier: classifier, extensions: make(map[string]bool, len(extensions))}
	for _, ext := range extensions {
		p.extensions[normalizeExt(ext)] = true
	}
	return p
}

// CanParse returns true if the extension is one of the configured document extensions.
func (p *XMLParser) CanParse(ext string) bool {
	return p.extensions[normalizeExt(ext)]
}

// Parse reads a document and collects its translatable text nodes.
func (p *XMLParser) Parse(filePath string) (*ParseResult, error) {
	doc, err := Load(filePath)
	if err != nil {
		return nil, err
	}

	return &ParseResult{
		FilePath: filePath,
		FileName: filepath.Base(filePath),
		Doc:      doc,
		Texts:    p.Collect(doc),
	}, nil
}

// Collect returns the translatable text nodes of doc in document order.
func (p *XMLParser) Collect(doc *etree.Document) []ExtractedText {
	var texts []ExtractedText
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, c := range e.ChildElements() {
			text := c.Text()
			if p.classifier.IsTranslatable(text, c.FullTag()) {
				texts = append(texts, ExtractedText{
					Text:    text,
					Tag:     c.FullTag(),
					Element: c,
				})
			}
			walk(c)
		}
	}
	walk(&doc.Element)
	return texts
}

// Load parses a document without classifying it.
func Load(filePath string) (*etree.Document, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read xml file: %w", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(bytes.TrimPrefix(data, utf8BOM)); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, filepath.Base(filePath), err)
	}
	return doc, nil
}

// Write serializes doc as UTF-8 with an XML declaration. A positive indent
// re-indents the tree with that many spaces.
func Write(doc *etree.Document, filePath string, indent int) error {
	setDeclaration(doc)
	if indent > 0 {
		doc.Indent(indent)
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := doc.WriteToFile(filePath); err != nil {
		return fmt.Errorf("write xml file: %w", err)
	}
	return nil
}

const declaration = `version="1.0" encoding="UTF-8"`

func setDeclaration(doc *etree.Document) {
	for _, tok := range doc.Child {
		if pi, ok := tok.(*etree.ProcInst); ok && pi.Target == "xml" {
			pi.Inst = declaration
			return
		}
	}
	doc.InsertChildAt(0, &etree.ProcInst{Target: "xml", Inst: declaration})
}

func normalizeExt(ext string) string {
	return "." + strings.TrimPrefix(strings.ToLower(ext), ".")
}
