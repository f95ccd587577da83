package model

import "strings"

// BlockType is the _type of a text block node
const BlockType = "block"

// Span is a run of text inside a block
type Span struct {
	Type  string   `json:"_type"`
	Key   string   `json:"_key,omitempty"`
	Text  string   `json:"text"`
	Marks []string `json:"marks,omitempty"`
}

// Block is a top-level node of a rich-text document
type Block struct {
	Type     string           `json:"_type"`
	Key      string           `json:"_key,omitempty"`
	Style    string           `json:"style,omitempty"`
	Children []Span           `json:"children,omitempty"`
	MarkDefs []map[string]any `json:"markDefs,omitempty"`
}

// Text concatenates the span texts of the block, ignoring marks.
// Nodes that are not text blocks have no text.
func (b Block) Text() string {
	if b.Type != BlockType {
		return ""
	}
	var sb strings.Builder
	for _, span := range b.Children {
		sb.WriteString(span.Text)
	}
	return sb.String()
}

// RichText is an ordered sequence of blocks
type RichText []Block

// PlainText projects the document to plain text: block texts joined by a single space
func (r RichText) PlainText() string {
	parts := make([]string, len(r))
	for i, block := range r {
		parts[i] = block.Text()
	}
	return strings.Join(parts, " ")
}
