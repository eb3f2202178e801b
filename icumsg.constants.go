package icumsg

// Argument sub-format keywords as they appear in message syntax
const (
	ArgTypeNumber        = "number"
	ArgTypeDate          = "date"
	ArgTypeTime          = "time"
	ArgTypeSelect        = "select"
	ArgTypePlural        = "plural"
	ArgTypeSelectOrdinal = "selectordinal"
)

// Branch label syntax
const (
	// LabelOther is the mandatory fallback label of select and plural nodes.
	LabelOther = "other"
	// ExactPrefix marks exact numeric selectors in plural branches (=0, =1, ...).
	ExactPrefix = "="
	// OffsetKeyword introduces the plural offset clause (offset:N).
	OffsetKeyword = "offset"
)

// Plural category keywords, as produced by plural rule classification
const (
	PluralZero  = "zero"
	PluralOne   = "one"
	PluralTwo   = "two"
	PluralFew   = "few"
	PluralMany  = "many"
	PluralOther = "other"
)

// PluralType selects between the two plural rule families.
type PluralType int

const (
	// Cardinal classifies "how many" quantities.
	Cardinal PluralType = iota
	// Ordinal classifies "nth position" quantities.
	Ordinal
)

// Plural type string values for serialization and cache keys
const (
	PluralTypeNameCardinal = "cardinal"
	PluralTypeNameOrdinal  = "ordinal"
)

// String returns the string representation of the plural type.
func (t PluralType) String() string {
	if t == Ordinal {
		return PluralTypeNameOrdinal
	}
	return PluralTypeNameCardinal
}

// Node type names for String() output and JSON interchange
const (
	NodeNameLiteral  = "literal"
	NodeNameArgument = "argument"
	NodeNameNumber   = "number"
	NodeNameDate     = "date"
	NodeNameTime     = "time"
	NodeNameSelect   = "select"
	NodeNamePlural   = "plural"
	NodeNameTag      = "tag"
	NodeNamePound    = "pound"
)

// Part type names for JSON interchange
const (
	PartTypeNameLiteral = "literal"
	PartTypeNameObject  = "object"
)

// Number style constants for the number formatting options record
const (
	NumberStyleDecimal  = "decimal"
	NumberStylePercent  = "percent"
	NumberStyleCurrency = "currency"
)

// Currency display modes for the currency style
const (
	CurrencyDisplaySymbol       = "symbol"
	CurrencyDisplayNarrowSymbol = "narrowSymbol"
	CurrencyDisplayCode         = "code"
)

// Built-in preset names of the default configuration
const (
	PresetInteger  = "integer"
	PresetCurrency = "currency"
	PresetPercent  = "percent"
	PresetShort    = "short"
	PresetMedium   = "medium"
	PresetLong     = "long"
	PresetFull     = "full"
)

// Formatter cache keyspaces, one per primitive kind
const (
	CacheKindNumber   = "number"
	CacheKindDateTime = "dateTime"
	CacheKindPlural   = "pluralRules"
)

// Catalog file formats accepted by LoadBytes
const (
	FileFormatYAML = "yaml"
	FileFormatJSON = "json"
	FileFormatTOML = "toml"
)

// Evaluation and formatting defaults
const (
	// DefaultLocale is used when no requested locale can be parsed.
	DefaultLocale = "en"
	// DefaultCurrency is used by the currency style when no code is configured.
	DefaultCurrency = "USD"
	// DefaultMinFractionDigits and DefaultMaxFractionDigits bound the visible
	// fraction digits of the default number style and of plural operands.
	DefaultMinFractionDigits = 0
	DefaultMaxFractionDigits = 3
	// MaxNestingDepth is the maximum safe AST nesting depth. Construction
	// rejects deeper messages so evaluation can recurse without re-checking.
	MaxNestingDepth = 128
)

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	// Construction errors
	ErrMsgEmptyMessage    = "message must not be empty"
	ErrMsgNilNode         = "message contains a nil node"
	ErrMsgNestingTooDeep  = "message nesting exceeds the maximum depth"
	ErrMsgMissingOther    = "branch mapping lacks the mandatory other label"
	ErrMsgEmptyArgName    = "argument name must not be empty"
	ErrMsgDuplicateLabel  = "duplicate branch label"
	ErrMsgNegativeOffset  = "plural offset must not be negative"
	ErrMsgUnknownNodeType = "unknown node type"
	ErrMsgBadPluralType   = "unknown plural type"
	ErrMsgASTDecodeFailed = "ast decoding failed"
	ErrMsgASTEncodeFailed = "ast encoding failed"

	// Syntax errors
	ErrMsgSyntax          = "message syntax invalid"
	ErrMsgUnclosedArg     = "unclosed argument"
	ErrMsgUnclosedQuote   = "unclosed quoted text"
	ErrMsgUnclosedTag     = "unclosed tag"
	ErrMsgMismatchedTag   = "mismatched closing tag"
	ErrMsgStrayCloseTag   = "unmatched closing tag"
	ErrMsgBadArgType      = "unsupported argument type"
	ErrMsgBadSelector     = "malformed branch selector"
	ErrMsgBadOffset       = "malformed plural offset"
	ErrMsgEmptyStyle      = "argument style must not be empty"
	ErrMsgEmptyBranch     = "branch body must be enclosed in braces"
	ErrMsgNoBranches      = "select and plural require at least one branch"
	ErrMsgStrayCloseBrace = "unmatched closing brace"

	// Evaluation errors
	ErrMsgMissingValue       = "argument value missing"
	ErrMsgInvalidValueType   = "argument value has the wrong type"
	ErrMsgInvalidSelector    = "no branch matches and no other fallback exists"
	ErrMsgInvalidPlaceholder = "pound placeholder used outside a plural branch"

	// Formatter errors
	ErrMsgBadCurrencyCode = "unknown currency code"
	ErrMsgBadTimeZone     = "unknown time zone"
	ErrMsgCacheKey        = "cache key serialization failed"
	ErrMsgRichParts       = "result contains rich content parts"

	// Catalog errors
	ErrMsgMessageNotFound  = "message not found"
	ErrMsgLocaleInvalid    = "locale tag cannot be parsed"
	ErrMsgFileUnsupported  = "unsupported catalog file extension"
	ErrMsgFileReadFailed   = "catalog file read failed"
	ErrMsgFileDecodeFailed = "catalog file decoding failed"
	ErrMsgFlattenBadValue  = "catalog entry is neither string nor table"

	// Storage errors
	ErrMsgStoreMessageNil    = "stored message must not be nil"
	ErrMsgStoreKeyEmpty      = "locale and id must not be empty"
	ErrMsgStoreClosed        = "store is closed"
	ErrMsgStoreInterrupted   = "store load interrupted"
	ErrMsgStoreDriverNil     = "store driver is nil"
	ErrMsgStoreDriverDup     = "store driver already registered"
	ErrMsgStoreDriverUnknown = "store driver not found"
	ErrMsgStoreRootEmpty     = "store root directory must not be empty"
	ErrMsgStoreDirFailed     = "store directory cannot be created"
	ErrMsgStoreReadFailed    = "store read failed"
	ErrMsgStoreWriteFailed   = "store write failed"
	ErrMsgStoreDecodeFailed  = "store document decoding failed"
	ErrMsgStoreEncodeFailed  = "store document encoding failed"
	ErrMsgStoreDSNEmpty      = "store connection string must not be empty"
	ErrMsgStoreConnFailed    = "store connection failed"
	ErrMsgStoreQueryFailed   = "store query failed"
	ErrMsgStoreScanFailed    = "store row scan failed"
	ErrMsgStoreTxFailed      = "store transaction failed"
	ErrMsgStoreMigrateFailed = "store migration failed"
)

// Store driver names for the driver registry
const (
	StoreDriverMemory     = "memory"
	StoreDriverFilesystem = "filesystem"
	StoreDriverPostgres   = "postgres"
)

// Filesystem store layout defaults
const (
	FSStoreDirPerm  = 0o755
	FSStoreFilePerm = 0o644
	FSStoreExt      = ".yaml"
)

// Error code constants for categorization
const (
	ErrCodeMessage = "ICUMSG_MESSAGE"
	ErrCodeSyntax  = "ICUMSG_SYNTAX"
	ErrCodeEval    = "ICUMSG_EVAL"
	ErrCodeFormat  = "ICUMSG_FORMAT"
	ErrCodeCatalog = "ICUMSG_CATALOG"
	ErrCodeStorage = "ICUMSG_STORAGE"
)

// Error kind discriminators carried in metadata, see ErrorKind
const (
	ErrKindInvalidMessage     = "invalid_message"
	ErrKindSyntax             = "syntax"
	ErrKindMissingValue       = "missing_value"
	ErrKindInvalidValueType   = "invalid_value_type"
	ErrKindInvalidSelector    = "invalid_selector"
	ErrKindInvalidPlaceholder = "invalid_placeholder"
	ErrKindMessageNotFound    = "message_not_found"
	ErrKindStorage            = "storage"
)

// Metadata keys for cuserr.WithMetadata
const (
	MetaKeyKind      = "error_kind"
	MetaKeyArgument  = "argument"
	MetaKeySelector  = "selector"
	MetaKeyLocale    = "locale"
	MetaKeyMessageID = "message_id"
	MetaKeyNodeType  = "node_type"
	MetaKeyStyle     = "style"
	MetaKeyValue     = "value"
	MetaKeyExpected  = "expected"
	MetaKeyActual    = "actual"
	MetaKeyLine      = "line"
	MetaKeyColumn    = "column"
	MetaKeyOffset    = "offset"
	MetaKeyDepth     = "depth"
	MetaKeyTag       = "tag"
	MetaKeyFile      = "file"
	MetaKeyCurrency  = "currency"
	MetaKeyTimeZone  = "time_zone"
	MetaKeyReason    = "reason"
	MetaKeyDriver    = "driver"
)

// Log message constants
const (
	LogMsgParserStart      = "starting message parse"
	LogMsgParserEnd        = "message parse complete"
	LogMsgMessageCompiled  = "message compiled"
	LogMsgEvalStart        = "starting evaluation"
	LogMsgEvalEnd          = "evaluation complete"
	LogMsgBranchSelected   = "branch selected"
	LogMsgFormatterBuilt   = "formatter constructed"
	LogMsgCacheHit         = "formatter cache hit"
	LogMsgCacheMiss        = "formatter cache miss"
	LogMsgCatalogCreated   = "catalog created"
	LogMsgCatalogAdded     = "catalog message added"
	LogMsgCatalogFile      = "catalog file loaded"
	LogMsgCatalogNegotiate = "catalog locale negotiated"
	LogMsgStoreHydrated    = "catalog hydrated from store"
)

// Log field name constants
const (
	LogFieldLocale    = "locale"
	LogFieldLocales   = "locales"
	LogFieldResolved  = "resolved"
	LogFieldMessageID = "message_id"
	LogFieldNodes     = "node_count"
	LogFieldParts     = "part_count"
	LogFieldBranch    = "branch"
	LogFieldKind      = "kind"
	LogFieldKey       = "key"
	LogFieldFile      = "file"
	LogFieldCount     = "count"
	LogFieldSource    = "source_length"
	LogFieldStyle     = "style"
)
