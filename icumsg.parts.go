package icumsg

import (
	"fmt"
	"strings"
)

// PartType discriminates output part variants.
type PartType int

// Part type constants
const (
	PartTypeLiteral PartType = iota
	PartTypeObject
)

// String returns the string representation of the part type.
func (t PartType) String() string {
	if t == PartTypeObject {
		return PartTypeNameObject
	}
	return PartTypeNameLiteral
}

// Part is one element of the ordered output sequence produced by evaluation.
// Adjacent literal parts are always coalesced before a sequence is returned.
type Part interface {
	// Type returns the part type
	Type() PartType
	// String returns a debug representation
	String() string
}

// LiteralPart is plain output text.
type LiteralPart struct {
	Text string
}

// Type returns the part type
func (p LiteralPart) Type() PartType { return PartTypeLiteral }

// String returns a debug representation
func (p LiteralPart) String() string { return fmt.Sprintf("Literal(%q)", p.Text) }

// ObjectPart carries rich caller content produced by a tag transform or a
// rich argument value.
type ObjectPart struct {
	Value any
}

// Type returns the part type
func (p ObjectPart) Type() PartType { return PartTypeObject }

// String returns a debug representation
func (p ObjectPart) String() string { return fmt.Sprintf("Object(%v)", p.Value) }

// PartsString concatenates an all-literal part sequence. The second return is
// false when any part carries rich content.
func PartsString(parts []Part) (string, bool) {
	var sb strings.Builder
	for _, part := range parts {
		lit, ok := part.(LiteralPart)
		if !ok {
			return "", false
		}
		sb.WriteString(lit.Text)
	}
	return sb.String(), true
}

// partsBuilder accumulates output parts, coalescing adjacent literals as it
// appends. Empty literal text is dropped.
type partsBuilder struct {
	parts []Part
}

func (b *partsBuilder) appendLiteral(text string) {
	if text == "" {
		return
	}
	if n := len(b.parts); n > 0 {
		if lit, ok := b.parts[n-1].(LiteralPart); ok {
			b.parts[n-1] = LiteralPart{Text: lit.Text + text}
			return
		}
	}
	b.parts = append(b.parts, LiteralPart{Text: text})
}

func (b *partsBuilder) appendObject(value any) {
	b.parts = append(b.parts, ObjectPart{Value: value})
}

func (b *partsBuilder) appendParts(parts []Part) {
	for _, part := range parts {
		if lit, ok := part.(LiteralPart); ok {
			b.appendLiteral(lit.Text)
			continue
		}
		b.parts = append(b.parts, part)
	}
}

func (b *partsBuilder) result() []Part {
	return b.parts
}
