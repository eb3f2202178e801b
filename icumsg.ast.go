package icumsg

import (
	"fmt"
	"strings"
)

// NodeType identifies AST node types
type NodeType int

// Node type constants
const (
	NodeTypeLiteral NodeType = iota
	NodeTypeArgument
	NodeTypeNumber
	NodeTypeDate
	NodeTypeTime
	NodeTypeSelect
	NodeTypePlural
	NodeTypeTag
	NodeTypePound
)

// String returns the string representation of the node type.
func (n NodeType) String() string {
	switch n {
	case NodeTypeLiteral:
		return NodeNameLiteral
	case NodeTypeArgument:
		return NodeNameArgument
	case NodeTypeNumber:
		return NodeNameNumber
	case NodeTypeDate:
		return NodeNameDate
	case NodeTypeTime:
		return NodeNameTime
	case NodeTypeSelect:
		return NodeNameSelect
	case NodeTypePlural:
		return NodeNamePlural
	case NodeTypeTag:
		return NodeNameTag
	case NodeTypePound:
		return NodeNamePound
	default:
		return NodeNameLiteral
	}
}

// Node is the interface implemented by all AST nodes. Messages are ordered
// node sequences; Select, Plural, and Tag nodes nest further sequences.
type Node interface {
	// Type returns the node type
	Type() NodeType
	// Pos returns the source position of the node
	Pos() Position
	// String returns a debug representation
	String() string
}

// Branch is one labeled sub-tree of a Select or Plural node. Order is
// preserved from the source; resolution never depends on it.
type Branch struct {
	Label string
	Nodes []Node
}

// LiteralNode is verbatim message text.
type LiteralNode struct {
	Text string
	pos  Position
}

// NewLiteralNode creates a literal text node.
func NewLiteralNode(text string, pos Position) *LiteralNode {
	return &LiteralNode{Text: text, pos: pos}
}

// Type returns the node type
func (n *LiteralNode) Type() NodeType { return NodeTypeLiteral }

// Pos returns the source position
func (n *LiteralNode) Pos() Position { return n.pos }

// String returns a debug representation
func (n *LiteralNode) String() string { return fmt.Sprintf("Literal(%q)", n.Text) }

// ArgumentNode substitutes a runtime value without locale formatting.
type ArgumentNode struct {
	Name string
	pos  Position
}

// NewArgumentNode creates a plain argument node.
func NewArgumentNode(name string, pos Position) *ArgumentNode {
	return &ArgumentNode{Name: name, pos: pos}
}

// Type returns the node type
func (n *ArgumentNode) Type() NodeType { return NodeTypeArgument }

// Pos returns the source position
func (n *ArgumentNode) Pos() Position { return n.pos }

// String returns a debug representation
func (n *ArgumentNode) String() string { return fmt.Sprintf("Argument(%s)", n.Name) }

// NumberNode formats a numeric value with locale rules. Style names a preset
// of the merged configuration; Options, when non-nil, is an inline record that
// takes precedence over the style name.
type NumberNode struct {
	Name    string
	Style   string
	Options *NumberOptions
	pos     Position
}

// NewNumberNode creates a number format node.
func NewNumberNode(name, style string, pos Position) *NumberNode {
	return &NumberNode{Name: name, Style: style, pos: pos}
}

// Type returns the node type
func (n *NumberNode) Type() NodeType { return NodeTypeNumber }

// Pos returns the source position
func (n *NumberNode) Pos() Position { return n.pos }

// String returns a debug representation
func (n *NumberNode) String() string { return fmt.Sprintf("Number(%s, %s)", n.Name, n.Style) }

// DateNode formats a temporal value as a date.
type DateNode struct {
	Name    string
	Style   string
	Options *DateTimeOptions
	pos     Position
}

// NewDateNode creates a date format node.
func NewDateNode(name, style string, pos Position) *DateNode {
	return &DateNode{Name: name, Style: style, pos: pos}
}

// Type returns the node type
func (n *DateNode) Type() NodeType { return NodeTypeDate }

// Pos returns the source position
func (n *DateNode) Pos() Position { return n.pos }

// String returns a debug representation
func (n *DateNode) String() string { return fmt.Sprintf("Date(%s, %s)", n.Name, n.Style) }

// TimeNode formats a temporal value as a time of day.
type TimeNode struct {
	Name    string
	Style   string
	Options *DateTimeOptions
	pos     Position
}

// NewTimeNode creates a time format node.
func NewTimeNode(name, style string, pos Position) *TimeNode {
	return &TimeNode{Name: name, Style: style, pos: pos}
}

// Type returns the node type
func (n *TimeNode) Type() NodeType { return NodeTypeTime }

// Pos returns the source position
func (n *TimeNode) Pos() Position { return n.pos }

// String returns a debug representation
func (n *TimeNode) String() string { return fmt.Sprintf("Time(%s, %s)", n.Name, n.Style) }

// SelectNode picks one branch by exact string key, falling back to other.
type SelectNode struct {
	Name     string
	Branches []Branch
	pos      Position
}

// NewSelectNode creates a select node.
func NewSelectNode(name string, branches []Branch, pos Position) *SelectNode {
	return &SelectNode{Name: name, Branches: branches, pos: pos}
}

// Type returns the node type
func (n *SelectNode) Type() NodeType { return NodeTypeSelect }

// Pos returns the source position
func (n *SelectNode) Pos() Position { return n.pos }

// String returns a debug representation
func (n *SelectNode) String() string {
	return fmt.Sprintf("Select(%s, [%s])", n.Name, branchLabels(n.Branches))
}

// Branch returns the node sequence labeled label.
func (n *SelectNode) Branch(label string) ([]Node, bool) {
	return findBranch(n.Branches, label)
}

// PluralNode picks one branch by plural classification of a numeric value.
// Offset is subtracted from the value before classification and before pound
// substitution. Branch labels are category keywords or exact selectors (=N).
type PluralNode struct {
	Name       string
	PluralType PluralType
	Offset     int64
	Branches   []Branch
	pos        Position
}

// NewPluralNode creates a plural node.
func NewPluralNode(name string, pluralType PluralType, offset int64, branches []Branch, pos Position) *PluralNode {
	return &PluralNode{Name: name, PluralType: pluralType, Offset: offset, Branches: branches, pos: pos}
}

// Type returns the node type
func (n *PluralNode) Type() NodeType { return NodeTypePlural }

// Pos returns the source position
func (n *PluralNode) Pos() Position { return n.pos }

// String returns a debug representation
func (n *PluralNode) String() string {
	return fmt.Sprintf("Plural(%s, %s, offset=%d, [%s])",
		n.Name, n.PluralType, n.Offset, branchLabels(n.Branches))
}

// Branch returns the node sequence labeled label.
func (n *PluralNode) Branch(label string) ([]Node, bool) {
	return findBranch(n.Branches, label)
}

// TagNode is a rich-text span whose rendering is delegated to a caller
// transform named after the tag.
type TagNode struct {
	Name     string
	Children []Node
	pos      Position
}

// NewTagNode creates a rich-text tag node.
func NewTagNode(name string, children []Node, pos Position) *TagNode {
	return &TagNode{Name: name, Children: children, pos: pos}
}

// Type returns the node type
func (n *TagNode) Type() NodeType { return NodeTypeTag }

// Pos returns the source position
func (n *TagNode) Pos() Position { return n.pos }

// String returns a debug representation
func (n *TagNode) String() string {
	return fmt.Sprintf("Tag(%s, %d children)", n.Name, len(n.Children))
}

// PoundNode substitutes the offset-adjusted value of the enclosing plural.
type PoundNode struct {
	pos Position
}

// NewPoundNode creates a pound placeholder node.
func NewPoundNode(pos Position) *PoundNode {
	return &PoundNode{pos: pos}
}

// Type returns the node type
func (n *PoundNode) Type() NodeType { return NodeTypePound }

// Pos returns the source position
func (n *PoundNode) Pos() Position { return n.pos }

// String returns a debug representation
func (n *PoundNode) String() string { return "Pound" }

func findBranch(branches []Branch, label string) ([]Node, bool) {
	for i := range branches {
		if branches[i].Label == label {
			return branches[i].Nodes, true
		}
	}
	return nil, false
}

func branchLabels(branches []Branch) string {
	labels := make([]string, len(branches))
	for i := range branches {
		labels[i] = branches[i].Label
	}
	return strings.Join(labels, " ")
}
