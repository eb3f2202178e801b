package icumsg

import (
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/itsatony/go-icumsg/internal"
)

// Default layouts used when a date or time node carries no style at all
const (
	LayoutDateDefault = "1/2/2006"
	LayoutTimeDefault = "3:04 PM"
)

// resolveTag parses the first well-formed locale of the list, falling back to
// DefaultLocale. Negotiation across a catalog's available locales is the
// catalog's concern; a single message only needs one usable tag.
func resolveTag(locales []string) language.Tag {
	for _, locale := range locales {
		if tag, err := language.Parse(strings.TrimSpace(locale)); err == nil {
			return tag
		}
	}
	return language.MustParse(DefaultLocale)
}

// SupportedLocalesOf returns the requested locales that carry a well-formed
// language tag, canonicalized, in request order.
func SupportedLocalesOf(locales []string) []string {
	var supported []string
	for _, locale := range locales {
		if tag, err := language.Parse(strings.TrimSpace(locale)); err == nil {
			supported = append(supported, tag.String())
		}
	}
	return supported
}

// NumberFormat is the locale-aware number primitive. Instances are immutable
// once constructed and safe for concurrent use.
type NumberFormat struct {
	tag     language.Tag
	printer *message.Printer
	opts    NumberOptions
	unit    currency.Unit
	display currency.Formatter
}

func newNumberFormat(locales []string, opts NumberOptions) (*NumberFormat, error) {
	tag := resolveTag(locales)
	f := &NumberFormat{
		tag:     tag,
		printer: message.NewPrinter(tag),
		opts:    opts,
	}
	if opts.Style == NumberStyleCurrency {
		code := opts.Currency
		if code == "" {
			code = DefaultCurrency
		}
		unit, err := currency.ParseISO(code)
		if err != nil {
			return nil, NewBadCurrencyError(code, err)
		}
		f.unit = unit
		f.display = currencyDisplayFormatter(opts.CurrencyDisplay)
	}
	return f, nil
}

// currencyDisplayFormatter maps the display mode onto the matching currency
// decorator. Unrecognized modes render the plain symbol.
func currencyDisplayFormatter(display string) currency.Formatter {
	switch display {
	case CurrencyDisplayNarrowSymbol:
		return currency.NarrowSymbol
	case CurrencyDisplayCode:
		return currency.ISO
	default:
		return currency.Symbol
	}
}

// Format renders v according to the formatter's options record.
func (f *NumberFormat) Format(v float64) string {
	switch f.opts.Style {
	case NumberStylePercent:
		return f.printer.Sprintf("%v", number.Percent(v, f.numberOptions()...))
	case NumberStyleCurrency:
		return f.printer.Sprintf("%v", f.display(f.unit.Amount(v)))
	default:
		return f.printer.Sprintf("%v", number.Decimal(v, f.numberOptions()...))
	}
}

func (f *NumberFormat) numberOptions() []number.Option {
	var opts []number.Option
	if f.opts.MinIntegerDigits != nil {
		opts = append(opts, number.MinIntegerDigits(*f.opts.MinIntegerDigits))
	}
	if f.opts.MinFractionDigits != nil {
		opts = append(opts, number.MinFractionDigits(*f.opts.MinFractionDigits))
	}
	if f.opts.MaxFractionDigits != nil {
		opts = append(opts, number.MaxFractionDigits(*f.opts.MaxFractionDigits))
	}
	if f.opts.UseGrouping != nil && !*f.opts.UseGrouping {
		opts = append(opts, number.NoSeparator())
	}
	return opts
}

// DateTimeFormat is the temporal primitive. Rendering uses Go reference
// layouts resolved from the preset configuration; an optional IANA zone
// rebases the value before formatting.
type DateTimeFormat struct {
	layout string
	loc    *time.Location
}

func newDateTimeFormat(_ []string, opts DateTimeOptions) (*DateTimeFormat, error) {
	layout := opts.Layout
	if layout == "" {
		layout = LayoutDateDefault
	}
	f := &DateTimeFormat{layout: layout}
	if opts.TimeZone != "" {
		loc, err := time.LoadLocation(opts.TimeZone)
		if err != nil {
			return nil, NewBadTimeZoneError(opts.TimeZone, err)
		}
		f.loc = loc
	}
	return f, nil
}

// Format renders t with the formatter's layout.
func (f *DateTimeFormat) Format(t time.Time) string {
	if f.loc != nil {
		t = t.In(f.loc)
	}
	return t.Format(f.layout)
}

// PluralRules classifies numbers into locale plural categories for one rule
// family (cardinal or ordinal).
type PluralRules struct {
	tag   language.Tag
	rules *plural.Rules
}

func newPluralRules(locales []string, pluralType PluralType) (*PluralRules, error) {
	rules := plural.Cardinal
	if pluralType == Ordinal {
		rules = plural.Ordinal
	}
	return &PluralRules{tag: resolveTag(locales), rules: rules}, nil
}

// Select returns the plural category keyword for n, classified on the visible
// decimal form of n under the default fraction-digit bounds.
func (r *PluralRules) Select(n float64) string {
	dec := internal.FormatDec(n, DefaultMinFractionDigits, DefaultMaxFractionDigits)
	return pluralFormName(r.rules.MatchDigits(r.tag, dec.Digits, dec.Exp, dec.Scale))
}

func pluralFormName(form plural.Form) string {
	switch form {
	case plural.Zero:
		return PluralZero
	case plural.One:
		return PluralOne
	case plural.Two:
		return PluralTwo
	case plural.Few:
		return PluralFew
	case plural.Many:
		return PluralMany
	default:
		return PluralOther
	}
}
