package icumsg

// ValidateMessage lints message text: it parses with the configured parser
// and returns the first structural finding, or nil for a clean message. It
// is stricter than construction, which leaves branch fallback presence to
// evaluation.
func ValidateMessage(text string, opts ...Option) error {
	config := buildConfig(opts)
	parser := config.parser
	if parser == nil {
		parser = NewMessageParser(
			WithParserIgnoreTag(config.ignoreTag),
			WithParserLogger(config.logger),
		)
	}
	nodes, err := parser.Parse(text)
	if err != nil {
		return err
	}
	if issues := Lint(nodes); len(issues) > 0 {
		return issues[0]
	}
	return nil
}

// Lint inspects a node sequence for structural problems: empty messages, nil
// nodes, empty argument names, negative offsets, duplicate branch labels,
// missing other fallbacks, pound placeholders that can never resolve, and
// nesting depth overflow. All findings are returned, each an error from the
// package taxonomy.
func Lint(nodes []Node) []error {
	if len(nodes) == 0 {
		return []error{NewInvalidMessageError(ErrMsgEmptyMessage, nil)}
	}
	var issues []error
	lintSequence(nodes, 1, false, &issues)
	return issues
}

func lintSequence(nodes []Node, depth int, inPlural bool, issues *[]error) {
	if depth > MaxNestingDepth {
		*issues = append(*issues, NewInvalidMessageError(ErrMsgNestingTooDeep, nil))
		return
	}
	for _, node := range nodes {
		if node == nil {
			*issues = append(*issues, NewInvalidMessageError(ErrMsgNilNode, nil))
			continue
		}
		switch n := node.(type) {
		case *LiteralNode:
		case *PoundNode:
			if !inPlural {
				*issues = append(*issues, NewInvalidPlaceholderError())
			}
		case *ArgumentNode:
			lintName(n.Name, issues)
		case *NumberNode:
			lintName(n.Name, issues)
		case *DateNode:
			lintName(n.Name, issues)
		case *TimeNode:
			lintName(n.Name, issues)
		case *SelectNode:
			lintName(n.Name, issues)
			lintBranches(n.Branches, depth, inPlural, issues)
		case *PluralNode:
			lintName(n.Name, issues)
			if n.Offset < 0 {
				*issues = append(*issues, NewInvalidMessageError(ErrMsgNegativeOffset, nil))
			}
			lintBranches(n.Branches, depth, true, issues)
		case *TagNode:
			lintName(n.Name, issues)
			lintSequence(n.Children, depth+1, inPlural, issues)
		default:
			*issues = append(*issues, NewInvalidMessageError(ErrMsgUnknownNodeType, nil))
		}
	}
}

// lintBranches checks one branch set for duplicate labels and the mandatory
// other fallback, then descends into the bodies. Pound validity flows through
// select branches because the enclosing plural operand stays active there.
func lintBranches(branches []Branch, depth int, inPlural bool, issues *[]error) {
	seen := make(map[string]bool, len(branches))
	for i := range branches {
		if seen[branches[i].Label] {
			*issues = append(*issues, NewInvalidMessageError(ErrMsgDuplicateLabel, nil))
		}
		seen[branches[i].Label] = true
		lintSequence(branches[i].Nodes, depth+1, inPlural, issues)
	}
	if !seen[LabelOther] {
		*issues = append(*issues, NewInvalidMessageError(ErrMsgMissingOther, nil))
	}
}

func lintName(name string, issues *[]error) {
	if name == "" {
		*issues = append(*issues, NewInvalidMessageError(ErrMsgEmptyArgName, nil))
	}
}

// validateNodes checks that a node sequence is non-empty and structurally
// well formed within the maximum nesting depth. This is the construction
// gate; branch fallback presence is deliberately left to evaluation.
func validateNodes(nodes []Node) error {
	if len(nodes) == 0 {
		return NewInvalidMessageError(ErrMsgEmptyMessage, nil)
	}
	return validateSequence(nodes, 1)
}

func validateSequence(nodes []Node, depth int) error {
	if depth > MaxNestingDepth {
		return NewInvalidMessageError(ErrMsgNestingTooDeep, nil)
	}
	for _, node := range nodes {
		if node == nil {
			return NewInvalidMessageError(ErrMsgNilNode, nil)
		}
		switch n := node.(type) {
		case *LiteralNode:
			if n == nil {
				return NewInvalidMessageError(ErrMsgNilNode, nil)
			}
		case *PoundNode:
			if n == nil {
				return NewInvalidMessageError(ErrMsgNilNode, nil)
			}
		case *ArgumentNode:
			if n == nil || n.Name == "" {
				return invalidNodeError(n == nil)
			}
		case *NumberNode:
			if n == nil || n.Name == "" {
				return invalidNodeError(n == nil)
			}
		case *DateNode:
			if n == nil || n.Name == "" {
				return invalidNodeError(n == nil)
			}
		case *TimeNode:
			if n == nil || n.Name == "" {
				return invalidNodeError(n == nil)
			}
		case *SelectNode:
			if n == nil || n.Name == "" {
				return invalidNodeError(n == nil)
			}
			if err := validateBranches(n.Branches, depth); err != nil {
				return err
			}
		case *PluralNode:
			if n == nil || n.Name == "" {
				return invalidNodeError(n == nil)
			}
			if n.Offset < 0 {
				return NewInvalidMessageError(ErrMsgNegativeOffset, nil)
			}
			if err := validateBranches(n.Branches, depth); err != nil {
				return err
			}
		case *TagNode:
			if n == nil || n.Name == "" {
				return invalidNodeError(n == nil)
			}
			if err := validateSequence(n.Children, depth+1); err != nil {
				return err
			}
		default:
			return NewInvalidMessageError(ErrMsgUnknownNodeType, nil)
		}
	}
	return nil
}

func validateBranches(branches []Branch, depth int) error {
	for i := range branches {
		if err := validateSequence(branches[i].Nodes, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func invalidNodeError(isNil bool) error {
	if isNil {
		return NewInvalidMessageError(ErrMsgNilNode, nil)
	}
	return NewInvalidMessageError(ErrMsgEmptyArgName, nil)
}
