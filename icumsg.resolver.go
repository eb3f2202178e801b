package icumsg

import (
	"strconv"

	"github.com/itsatony/go-icumsg/internal"
)

// resolveSelect picks the branch whose label equals key, falling back to the
// other branch. The chosen label is returned alongside the branch body.
func resolveSelect(node *SelectNode, key string) ([]Node, string, error) {
	if nodes, ok := node.Branch(key); ok {
		return nodes, key, nil
	}
	if nodes, ok := node.Branch(LabelOther); ok {
		return nodes, LabelOther, nil
	}
	return nil, "", NewInvalidSelectorError(node.Name, key)
}

// resolvePlural picks the branch for the offset-adjusted operand. An exact
// selector always outranks category classification, and both are matched
// against the adjusted value, never the raw one.
func resolvePlural(node *PluralNode, adjusted float64, locales []string, cache *FormatterCache) ([]Node, string, error) {
	exact := ExactPrefix + pluralOperandString(adjusted)
	if nodes, ok := node.Branch(exact); ok {
		return nodes, exact, nil
	}
	rules, err := cache.PluralRules(locales, node.PluralType)
	if err != nil {
		return nil, "", err
	}
	category := rules.Select(adjusted)
	if nodes, ok := node.Branch(category); ok {
		return nodes, category, nil
	}
	if nodes, ok := node.Branch(LabelOther); ok {
		return nodes, LabelOther, nil
	}
	return nil, "", NewInvalidSelectorError(node.Name, category)
}

// pluralOperandString renders an operand the way exact selectors write it,
// integers without a fraction and everything else in shortest decimal form.
func pluralOperandString(v float64) string {
	if i, ok := internal.IsInt(v); ok {
		return strconv.FormatInt(i, 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
