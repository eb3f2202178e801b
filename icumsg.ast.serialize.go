package icumsg

import (
	"encoding/json"
)

// jsonNode is the stable interchange shape for one AST node. The type field
// discriminates; the remaining fields are populated per node type. Source
// positions are deliberately not part of the shape.
type jsonNode struct {
	Type            string           `json:"type"`
	Text            string           `json:"text,omitempty"`
	Name            string           `json:"name,omitempty"`
	Style           string           `json:"style,omitempty"`
	NumberOptions   *NumberOptions   `json:"numberOptions,omitempty"`
	DateTimeOptions *DateTimeOptions `json:"dateTimeOptions,omitempty"`
	PluralType      string           `json:"pluralType,omitempty"`
	Offset          int64            `json:"offset,omitempty"`
	Branches        []jsonBranch     `json:"branches,omitempty"`
	Children        []jsonNode       `json:"children,omitempty"`
}

// jsonBranch is the interchange shape for one labeled branch.
type jsonBranch struct {
	Label string     `json:"label"`
	Nodes []jsonNode `json:"nodes"`
}

// MarshalAST encodes a node sequence as JSON for storage or transport.
// ParseJSON restores an equivalent sequence; positions are not preserved.
func MarshalAST(nodes []Node) ([]byte, error) {
	encoded, err := encodeNodes(nodes)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(encoded)
	if err != nil {
		return nil, NewInvalidMessageError(ErrMsgASTEncodeFailed, err)
	}
	return data, nil
}

// ParseJSON decodes a node sequence previously produced by MarshalAST. It
// supports toolchains that pre-compile messages and ship ASTs instead of
// source text. Unknown node or plural types fail with an invalid message
// error; decoded nodes carry zero positions.
func ParseJSON(data []byte) ([]Node, error) {
	var encoded []jsonNode
	if err := json.Unmarshal(data, &encoded); err != nil {
		return nil, NewInvalidMessageError(ErrMsgASTDecodeFailed, err)
	}
	return decodeNodes(encoded)
}

func encodeNodes(nodes []Node) ([]jsonNode, error) {
	encoded := make([]jsonNode, 0, len(nodes))
	for _, node := range nodes {
		if node == nil {
			return nil, NewInvalidMessageError(ErrMsgNilNode, nil)
		}
		one, err := encodeNode(node)
		if err != nil {
			return nil, err
		}
		encoded = append(encoded, one)
	}
	return encoded, nil
}

func encodeNode(node Node) (jsonNode, error) {
	switch n := node.(type) {
	case *LiteralNode:
		return jsonNode{Type: NodeNameLiteral, Text: n.Text}, nil
	case *ArgumentNode:
		return jsonNode{Type: NodeNameArgument, Name: n.Name}, nil
	case *NumberNode:
		return jsonNode{Type: NodeNameNumber, Name: n.Name, Style: n.Style, NumberOptions: n.Options}, nil
	case *DateNode:
		return jsonNode{Type: NodeNameDate, Name: n.Name, Style: n.Style, DateTimeOptions: n.Options}, nil
	case *TimeNode:
		return jsonNode{Type: NodeNameTime, Name: n.Name, Style: n.Style, DateTimeOptions: n.Options}, nil
	case *SelectNode:
		branches, err := encodeBranches(n.Branches)
		if err != nil {
			return jsonNode{}, err
		}
		return jsonNode{Type: NodeNameSelect, Name: n.Name, Branches: branches}, nil
	case *PluralNode:
		branches, err := encodeBranches(n.Branches)
		if err != nil {
			return jsonNode{}, err
		}
		return jsonNode{
			Type:       NodeNamePlural,
			Name:       n.Name,
			PluralType: n.PluralType.String(),
			Offset:     n.Offset,
			Branches:   branches,
		}, nil
	case *TagNode:
		children, err := encodeNodes(n.Children)
		if err != nil {
			return jsonNode{}, err
		}
		return jsonNode{Type: NodeNameTag, Name: n.Name, Children: children}, nil
	case *PoundNode:
		return jsonNode{Type: NodeNamePound}, nil
	default:
		return jsonNode{}, NewInvalidMessageError(ErrMsgUnknownNodeType, nil)
	}
}

func encodeBranches(branches []Branch) ([]jsonBranch, error) {
	encoded := make([]jsonBranch, 0, len(branches))
	for i := range branches {
		nodes, err := encodeNodes(branches[i].Nodes)
		if err != nil {
			return nil, err
		}
		encoded = append(encoded, jsonBranch{Label: branches[i].Label, Nodes: nodes})
	}
	return encoded, nil
}

func decodeNodes(encoded []jsonNode) ([]Node, error) {
	nodes := make([]Node, 0, len(encoded))
	for i := range encoded {
		node, err := decodeNode(&encoded[i])
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func decodeNode(encoded *jsonNode) (Node, error) {
	switch encoded.Type {
	case NodeNameLiteral:
		return NewLiteralNode(encoded.Text, Position{}), nil
	case NodeNameArgument:
		return NewArgumentNode(encoded.Name, Position{}), nil
	case NodeNameNumber:
		node := NewNumberNode(encoded.Name, encoded.Style, Position{})
		node.Options = encoded.NumberOptions
		return node, nil
	case NodeNameDate:
		node := NewDateNode(encoded.Name, encoded.Style, Position{})
		node.Options = encoded.DateTimeOptions
		return node, nil
	case NodeNameTime:
		node := NewTimeNode(encoded.Name, encoded.Style, Position{})
		node.Options = encoded.DateTimeOptions
		return node, nil
	case NodeNameSelect:
		branches, err := decodeBranches(encoded.Branches)
		if err != nil {
			return nil, err
		}
		return NewSelectNode(encoded.Name, branches, Position{}), nil
	case NodeNamePlural:
		pluralType, err := decodePluralType(encoded.PluralType)
		if err != nil {
			return nil, err
		}
		branches, err := decodeBranches(encoded.Branches)
		if err != nil {
			return nil, err
		}
		return NewPluralNode(encoded.Name, pluralType, encoded.Offset, branches, Position{}), nil
	case NodeNameTag:
		children, err := decodeNodes(encoded.Children)
		if err != nil {
			return nil, err
		}
		return NewTagNode(encoded.Name, children, Position{}), nil
	case NodeNamePound:
		return NewPoundNode(Position{}), nil
	default:
		return nil, NewInvalidMessageError(ErrMsgUnknownNodeType, nil)
	}
}

func decodeBranches(encoded []jsonBranch) ([]Branch, error) {
	branches := make([]Branch, 0, len(encoded))
	for i := range encoded {
		nodes, err := decodeNodes(encoded[i].Nodes)
		if err != nil {
			return nil, err
		}
		branches = append(branches, Branch{Label: encoded[i].Label, Nodes: nodes})
	}
	return branches, nil
}

// decodePluralType maps the interchange string to a plural rule family. An
// absent value defaults to cardinal for compatibility with hand-written ASTs.
func decodePluralType(name string) (PluralType, error) {
	switch name {
	case "", PluralTypeNameCardinal:
		return Cardinal, nil
	case PluralTypeNameOrdinal:
		return Ordinal, nil
	default:
		return Cardinal, NewInvalidMessageError(ErrMsgBadPluralType, nil)
	}
}
