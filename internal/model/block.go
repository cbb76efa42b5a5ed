package model

// Field is one field node of a message block. TextLines returns the raw,
// untrimmed text nodes of the field in document order.
type Field interface {
	TextLines() []string
}

// Block is one chat message as exported by the transcript tool. The first
// field carries the tab, the second the speaker name, and the third the
// message text.
type Block interface {
	Fields() []Field
}

// StaticField is a Field backed by a fixed slice of lines.
type StaticField []string

// TextLines returns the field's lines.
func (f StaticField) TextLines() []string { return f }

// StaticBlock is a Block backed by a fixed slice of fields.
type StaticBlock []Field

// Fields returns the block's fields.
func (b StaticBlock) Fields() []Field { return b }

// NewStaticBlock builds a block with one field per argument.
func NewStaticBlock(fields ...[]string) StaticBlock {
	b := make(StaticBlock, len(fields))
	for i, f := range fields {
		b[i] = StaticField(f)
	}
	return b
}
