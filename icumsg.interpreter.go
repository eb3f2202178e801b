package icumsg

import (
	"fmt"

	"go.uber.org/zap"
)

// evaluator walks one message AST with one set of runtime values. An
// evaluator is created per formatToParts call; the formats configuration and
// the formatter cache it references are owned by the facade and shared across
// calls.
type evaluator struct {
	locales []string
	formats *Formats
	cache   *FormatterCache
	values  Values
	logger  *zap.Logger
}

// evaluate renders a node sequence into an ordered part sequence with
// adjacent literals coalesced. pluralValue is the offset-adjusted operand of
// the innermost enclosing plural branch, nil outside any plural.
func (e *evaluator) evaluate(nodes []Node, pluralValue *float64) ([]Part, error) {
	var builder partsBuilder
	if err := e.evaluateNodes(&builder, nodes, pluralValue); err != nil {
		return nil, err
	}
	return builder.result(), nil
}

func (e *evaluator) evaluateNodes(builder *partsBuilder, nodes []Node, pluralValue *float64) error {
	for _, node := range nodes {
		if err := e.evaluateNode(builder, node, pluralValue); err != nil {
			return err
		}
	}
	return nil
}

func (e *evaluator) evaluateNode(builder *partsBuilder, node Node, pluralValue *float64) error {
	switch n := node.(type) {
	case *LiteralNode:
		builder.appendLiteral(n.Text)
		return nil
	case *ArgumentNode:
		return e.evaluateArgument(builder, n)
	case *NumberNode:
		return e.evaluateNumber(builder, n)
	case *DateNode:
		return e.evaluateDate(builder, n)
	case *TimeNode:
		return e.evaluateTime(builder, n)
	case *SelectNode:
		return e.evaluateSelect(builder, n, pluralValue)
	case *PluralNode:
		return e.evaluatePlural(builder, n)
	case *TagNode:
		return e.evaluateTag(builder, n, pluralValue)
	case *PoundNode:
		return e.evaluatePound(builder, pluralValue)
	default:
		return NewInvalidMessageError(ErrMsgUnknownNodeType, nil)
	}
}

// evaluateArgument substitutes a runtime value without locale formatting.
// Scalars become literal text; everything else flows through as an object
// part for the caller's renderer.
func (e *evaluator) evaluateArgument(builder *partsBuilder, n *ArgumentNode) error {
	value, err := e.value(n.Name)
	if err != nil {
		return err
	}
	if s, ok := value.scalarString(); ok {
		builder.appendLiteral(s)
		return nil
	}
	builder.appendObject(value.richValue())
	return nil
}

func (e *evaluator) evaluateNumber(builder *partsBuilder, n *NumberNode) error {
	value, err := e.value(n.Name)
	if err != nil {
		return err
	}
	operand, ok := value.floatValue()
	if !ok {
		return NewInvalidValueTypeError(n.Name, ValueKindNameNumber, value.Kind().String())
	}
	format, err := e.cache.NumberFormat(e.locales, e.numberOptions(n))
	if err != nil {
		return err
	}
	builder.appendLiteral(format.Format(operand))
	return nil
}

func (e *evaluator) evaluateDate(builder *partsBuilder, n *DateNode) error {
	value, err := e.value(n.Name)
	if err != nil {
		return err
	}
	operand, ok := value.timeValue()
	if !ok {
		return NewInvalidValueTypeError(n.Name, ValueKindNameTime, value.Kind().String())
	}
	format, err := e.cache.DateTimeFormat(e.locales, e.dateOptions(n))
	if err != nil {
		return err
	}
	builder.appendLiteral(format.Format(operand))
	return nil
}

func (e *evaluator) evaluateTime(builder *partsBuilder, n *TimeNode) error {
	value, err := e.value(n.Name)
	if err != nil {
		return err
	}
	operand, ok := value.timeValue()
	if !ok {
		return NewInvalidValueTypeError(n.Name, ValueKindNameTime, value.Kind().String())
	}
	format, err := e.cache.DateTimeFormat(e.locales, e.timeOptions(n))
	if err != nil {
		return err
	}
	builder.appendLiteral(format.Format(operand))
	return nil
}

func (e *evaluator) evaluateSelect(builder *partsBuilder, n *SelectNode, pluralValue *float64) error {
	value, err := e.value(n.Name)
	if err != nil {
		return err
	}
	key, ok := value.scalarString()
	if !ok {
		return NewInvalidValueTypeError(n.Name, ValueKindNameString, value.Kind().String())
	}
	nodes, label, err := resolveSelect(n, key)
	if err != nil {
		return err
	}
	e.logger.Debug(LogMsgBranchSelected,
		zap.String(LogFieldBranch, label),
		zap.String(LogFieldKind, NodeNameSelect))
	return e.evaluateNodes(builder, nodes, pluralValue)
}

func (e *evaluator) evaluatePlural(builder *partsBuilder, n *PluralNode) error {
	value, err := e.value(n.Name)
	if err != nil {
		return err
	}
	operand, ok := value.floatValue()
	if !ok {
		return NewInvalidValueTypeError(n.Name, ValueKindNameNumber, value.Kind().String())
	}
	adjusted := operand - float64(n.Offset)
	nodes, label, err := resolvePlural(n, adjusted, e.locales, e.cache)
	if err != nil {
		return err
	}
	e.logger.Debug(LogMsgBranchSelected,
		zap.String(LogFieldBranch, label),
		zap.String(LogFieldKind, NodeNamePlural))
	return e.evaluateNodes(builder, nodes, &adjusted)
}

// evaluateTag renders the children first, then hands them to the caller
// transform of the same name. A tag with no configured transform degrades to
// literal markers around the rendered children instead of failing, so
// messages can carry tags a given caller does not style.
func (e *evaluator) evaluateTag(builder *partsBuilder, n *TagNode, pluralValue *float64) error {
	children, err := e.evaluate(n.Children, pluralValue)
	if err != nil {
		return err
	}
	value, ok := e.values[n.Name]
	if !ok {
		builder.appendLiteral(fmt.Sprintf("<%s>", n.Name))
		builder.appendParts(children)
		builder.appendLiteral(fmt.Sprintf("</%s>", n.Name))
		return nil
	}
	transform, ok := value.transformFn()
	if !ok {
		return NewInvalidValueTypeError(n.Name, ValueKindNameTransform, value.Kind().String())
	}
	builder.appendObject(transform(children))
	return nil
}

// evaluatePound substitutes the offset-adjusted operand of the enclosing
// plural branch, formatted with the default number style.
func (e *evaluator) evaluatePound(builder *partsBuilder, pluralValue *float64) error {
	if pluralValue == nil {
		return NewInvalidPlaceholderError()
	}
	format, err := e.cache.NumberFormat(e.locales, NumberOptions{})
	if err != nil {
		return err
	}
	builder.appendLiteral(format.Format(*pluralValue))
	return nil
}

func (e *evaluator) value(name string) (Value, error) {
	value, ok := e.values[name]
	if !ok {
		return Value{}, NewMissingValueError(name)
	}
	return value, nil
}

func (e *evaluator) numberOptions(n *NumberNode) NumberOptions {
	if n.Options != nil {
		return *n.Options
	}
	if n.Style != "" {
		if opts, ok := e.formats.Number[n.Style]; ok {
			return opts
		}
	}
	return NumberOptions{}
}

func (e *evaluator) dateOptions(n *DateNode) DateTimeOptions {
	var opts DateTimeOptions
	switch {
	case n.Options != nil:
		opts = *n.Options
	case n.Style != "":
		if preset, ok := e.formats.Date[n.Style]; ok {
			opts = preset
		}
	}
	if opts.Layout == "" {
		opts.Layout = LayoutDateDefault
	}
	return opts
}

func (e *evaluator) timeOptions(n *TimeNode) DateTimeOptions {
	var opts DateTimeOptions
	switch {
	case n.Options != nil:
		opts = *n.Options
	case n.Style != "":
		if preset, ok := e.formats.Time[n.Style]; ok {
			opts = preset
		}
	}
	if opts.Layout == "" {
		opts.Layout = LayoutTimeDefault
	}
	return opts
}
