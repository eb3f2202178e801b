package internal

// Character constants for message syntax scanning
const (
	CharOpenBrace   = '{'
	CharCloseBrace  = '}'
	CharComma       = ','
	CharPound       = '#'
	CharApostrophe  = '\''
	CharLess        = '<'
	CharGreater     = '>'
	CharSlash       = '/'
	CharEquals      = '='
	CharColon       = ':'
	CharDoubleQuote = '"'
	CharNewline     = '\n'
	CharSpace       = ' '
	CharTab         = '\t'
	CharCarriageRet = '\r'
)

// Decimal decomposition limits
const (
	// MaxFractionDigits caps the visible fraction digits considered during
	// plural operand decomposition. Matches the Intl hard limit for the
	// maximumFractionDigits option.
	MaxFractionDigits = 20
)

// Log message constants
const (
	LogMsgScannerCreated = "scanner created"
)

// Log field name constants
const (
	LogFieldSource = "source_length"
)
