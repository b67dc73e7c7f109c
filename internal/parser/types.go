package parser

import "github.com/beevik/etree"

// ExtractedText is a translatable text node found in an FTL document.
type ExtractedText struct {
	// Text is the element's leading character data, untrimmed.
	Text string
	// Tag is the owning element's tag, including any namespace prefix.
	Tag string
	// Element is the owning element inside ParseResult.Doc.
	Element *etree.Element
}

// ParseResult holds parsing output for a single document.
type ParseResult struct {
	// FilePath is the path the document was read from.
	FilePath string
	// FileName is the base name, used to pair documents with their templates.
	FileName string
	// Doc is the parsed tree. Injection mutates it in place.
	Doc *etree.Document
	// Texts are the translatable nodes in document order.
	Texts []ExtractedText
}
