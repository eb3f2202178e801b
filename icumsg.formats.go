package icumsg

// Go reference-time layouts backing the built-in date and time presets
const (
	LayoutDateShort  = "1/2/06"
	LayoutDateMedium = "Jan 2, 2006"
	LayoutDateLong   = "January 2, 2006"
	LayoutDateFull   = "Monday, January 2, 2006"
	LayoutTimeShort  = "3:04 PM"
	LayoutTimeMedium = "3:04:05 PM"
	LayoutTimeLong   = "3:04:05 PM MST"
	LayoutTimeFull   = "3:04:05 PM MST"
)

// Ptr returns a pointer to v, for filling optional option fields.
func Ptr[T any](v T) *T {
	return &v
}

// NumberOptions is the options record understood by the number primitive.
// Pointer fields distinguish "not set" from an explicit zero, which the
// preset merge relies on.
type NumberOptions struct {
	// Style is one of decimal, percent, currency; empty means decimal.
	Style string `json:"style,omitempty"`
	// Currency is the ISO 4217 code used by the currency style.
	Currency string `json:"currency,omitempty"`
	// CurrencyDisplay picks how the currency style marks the unit: symbol,
	// narrowSymbol, or code. Empty means symbol.
	CurrencyDisplay string `json:"currencyDisplay,omitempty"`
	// MinIntegerDigits pads the integer part with leading zeros.
	MinIntegerDigits *int `json:"minIntegerDigits,omitempty"`
	// MinFractionDigits and MaxFractionDigits bound the visible fraction.
	MinFractionDigits *int `json:"minFractionDigits,omitempty"`
	MaxFractionDigits *int `json:"maxFractionDigits,omitempty"`
	// UseGrouping toggles digit group separators; nil keeps the locale default.
	UseGrouping *bool `json:"useGrouping,omitempty"`
}

// DateTimeOptions is the options record understood by the date/time primitive.
type DateTimeOptions struct {
	// Layout is a Go reference-time layout.
	Layout string `json:"layout,omitempty"`
	// TimeZone is an IANA zone name; empty keeps the value's own location.
	TimeZone string `json:"timeZone,omitempty"`
}

// Formats maps preset names to options records for the three format
// categories. Instances are treated as immutable once passed to a message or
// catalog.
type Formats struct {
	Number map[string]NumberOptions   `json:"number,omitempty"`
	Date   map[string]DateTimeOptions `json:"date,omitempty"`
	Time   map[string]DateTimeOptions `json:"time,omitempty"`
}

// DefaultFormats returns the built-in preset configuration. Every call
// returns a fresh value; there is no shared mutable default.
func DefaultFormats() *Formats {
	return &Formats{
		Number: map[string]NumberOptions{
			PresetInteger:  {Style: NumberStyleDecimal, MaxFractionDigits: Ptr(0)},
			PresetCurrency: {Style: NumberStyleCurrency},
			PresetPercent:  {Style: NumberStylePercent},
		},
		Date: map[string]DateTimeOptions{
			PresetShort:  {Layout: LayoutDateShort},
			PresetMedium: {Layout: LayoutDateMedium},
			PresetLong:   {Layout: LayoutDateLong},
			PresetFull:   {Layout: LayoutDateFull},
		},
		Time: map[string]DateTimeOptions{
			PresetShort:  {Layout: LayoutTimeShort},
			PresetMedium: {Layout: LayoutTimeMedium},
			PresetLong:   {Layout: LayoutTimeLong},
			PresetFull:   {Layout: LayoutTimeFull},
		},
	}
}

// MergeFormats shallow-merges override presets into the default presets, per
// category. Override wins per individual option field. Presets present only
// in overrides are dropped: the preset vocabulary is fixed by defaults. A nil
// override returns defaults unchanged. The merge is idempotent.
func MergeFormats(defaults, overrides *Formats) *Formats {
	if overrides == nil {
		return defaults
	}
	if defaults == nil {
		return &Formats{}
	}
	merged := &Formats{
		Number: make(map[string]NumberOptions, len(defaults.Number)),
		Date:   make(map[string]DateTimeOptions, len(defaults.Date)),
		Time:   make(map[string]DateTimeOptions, len(defaults.Time)),
	}
	for name, base := range defaults.Number {
		if over, ok := overrides.Number[name]; ok {
			merged.Number[name] = mergeNumberOptions(base, over)
		} else {
			merged.Number[name] = base
		}
	}
	for name, base := range defaults.Date {
		if over, ok := overrides.Date[name]; ok {
			merged.Date[name] = mergeDateTimeOptions(base, over)
		} else {
			merged.Date[name] = base
		}
	}
	for name, base := range defaults.Time {
		if over, ok := overrides.Time[name]; ok {
			merged.Time[name] = mergeDateTimeOptions(base, over)
		} else {
			merged.Time[name] = base
		}
	}
	return merged
}

func mergeNumberOptions(base, over NumberOptions) NumberOptions {
	merged := base
	if over.Style != "" {
		merged.Style = over.Style
	}
	if over.Currency != "" {
		merged.Currency = over.Currency
	}
	if over.CurrencyDisplay != "" {
		merged.CurrencyDisplay = over.CurrencyDisplay
	}
	if over.MinIntegerDigits != nil {
		merged.MinIntegerDigits = over.MinIntegerDigits
	}
	if over.MinFractionDigits != nil {
		merged.MinFractionDigits = over.MinFractionDigits
	}
	if over.MaxFractionDigits != nil {
		merged.MaxFractionDigits = over.MaxFractionDigits
	}
	if over.UseGrouping != nil {
		merged.UseGrouping = over.UseGrouping
	}
	return merged
}

func mergeDateTimeOptions(base, over DateTimeOptions) DateTimeOptions {
	merged := base
	if over.Layout != "" {
		merged.Layout = over.Layout
	}
	if over.TimeZone != "" {
		merged.TimeZone = over.TimeZone
	}
	return merged
}
