package icumsg

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/itsatony/go-cuserr"
)

// Position represents a location in the message source
type Position struct {
	Offset int // Byte offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number
}

// String returns a human-readable position string
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// ErrorKind returns the taxonomy discriminator of an error produced by this
// package (one of the ErrKind* constants), or an empty string for errors
// outside the taxonomy.
func ErrorKind(err error) string {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return ""
	}
	kind, _ := customErr.GetMetadata(MetaKeyKind)
	return kind
}

// IsInvalidMessageError reports a malformed or absent AST at construction.
func IsInvalidMessageError(err error) bool { return ErrorKind(err) == ErrKindInvalidMessage }

// IsSyntaxError reports a message text parse failure.
func IsSyntaxError(err error) bool { return ErrorKind(err) == ErrKindSyntax }

// IsMissingValueError reports a referenced argument absent from the values.
func IsMissingValueError(err error) bool { return ErrorKind(err) == ErrKindMissingValue }

// IsInvalidValueTypeError reports a value of the wrong shape for its node.
func IsInvalidValueTypeError(err error) bool { return ErrorKind(err) == ErrKindInvalidValueType }

// IsInvalidSelectorError reports branch resolution without a usable fallback.
func IsInvalidSelectorError(err error) bool { return ErrorKind(err) == ErrKindInvalidSelector }

// IsInvalidPlaceholderError reports a pound placeholder outside a plural branch.
func IsInvalidPlaceholderError(err error) bool { return ErrorKind(err) == ErrKindInvalidPlaceholder }

// NewInvalidMessageError creates a construction error for malformed messages
func NewInvalidMessageError(msg string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeMessage, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeMessage, msg)
	}
	return err.WithMetadata(MetaKeyKind, ErrKindInvalidMessage)
}

// NewSyntaxError creates a parse error with position context
func NewSyntaxError(msg string, pos Position) error {
	return cuserr.NewValidationError(ErrCodeSyntax, msg).
		WithMetadata(MetaKeyKind, ErrKindSyntax).
		WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column)).
		WithMetadata(MetaKeyOffset, strconv.Itoa(pos.Offset))
}

// NewMismatchedTagError creates a parse error for mismatched closing tags
func NewMismatchedTagError(expected, actual string, pos Position) error {
	return cuserr.NewValidationError(ErrCodeSyntax, ErrMsgMismatchedTag).
		WithMetadata(MetaKeyKind, ErrKindSyntax).
		WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column)).
		WithMetadata(MetaKeyExpected, expected).
		WithMetadata(MetaKeyActual, actual)
}

// NewMissingValueError creates an error for an argument absent from values
func NewMissingValueError(argument string) error {
	return cuserr.NewNotFoundError(MetaKeyArgument, ErrMsgMissingValue).
		WithMetadata(MetaKeyKind, ErrKindMissingValue).
		WithMetadata(MetaKeyArgument, argument)
}

// NewInvalidValueTypeError creates an error for a value of the wrong shape
func NewInvalidValueTypeError(argument, expected, actual string) error {
	return cuserr.NewValidationError(ErrCodeEval, ErrMsgInvalidValueType).
		WithMetadata(MetaKeyKind, ErrKindInvalidValueType).
		WithMetadata(MetaKeyArgument, argument).
		WithMetadata(MetaKeyExpected, expected).
		WithMetadata(MetaKeyActual, actual)
}

// NewInvalidSelectorError creates an error for branch resolution that found
// neither a matching label nor the other fallback
func NewInvalidSelectorError(argument, selector string) error {
	return cuserr.NewValidationError(ErrCodeEval, ErrMsgInvalidSelector).
		WithMetadata(MetaKeyKind, ErrKindInvalidSelector).
		WithMetadata(MetaKeyArgument, argument).
		WithMetadata(MetaKeySelector, selector)
}

// NewInvalidPlaceholderError creates an error for pound outside a plural branch
func NewInvalidPlaceholderError() error {
	return cuserr.NewValidationError(ErrCodeEval, ErrMsgInvalidPlaceholder).
		WithMetadata(MetaKeyKind, ErrKindInvalidPlaceholder)
}

// NewFormatError wraps a locale primitive failure with formatting context
func NewFormatError(msg string, cause error) error {
	if cause != nil {
		return cuserr.WrapStdError(cause, ErrCodeFormat, msg)
	}
	return cuserr.NewValidationError(ErrCodeFormat, msg)
}

// NewBadCurrencyError creates a formatter error for an unparseable ISO 4217 code
func NewBadCurrencyError(code string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeFormat, ErrMsgBadCurrencyCode).
		WithMetadata(MetaKeyCurrency, code)
}

// NewBadTimeZoneError creates a formatter error for an unloadable IANA zone name
func NewBadTimeZoneError(name string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeFormat, ErrMsgBadTimeZone).
		WithMetadata(MetaKeyTimeZone, name)
}

// NewMessageNotFoundError creates a catalog lookup error
func NewMessageNotFoundError(locale, id string) error {
	return cuserr.NewNotFoundError(MetaKeyMessageID, ErrMsgMessageNotFound).
		WithMetadata(MetaKeyKind, ErrKindMessageNotFound).
		WithMetadata(MetaKeyLocale, locale).
		WithMetadata(MetaKeyMessageID, id)
}

// IsMessageNotFoundError reports a catalog lookup that matched no message.
func IsMessageNotFoundError(err error) bool { return ErrorKind(err) == ErrKindMessageNotFound }

// NewBadLocaleError creates a catalog error for an unparsable locale tag
func NewBadLocaleError(locale string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeCatalog, ErrMsgLocaleInvalid)
	} else {
		err = cuserr.NewValidationError(ErrCodeCatalog, ErrMsgLocaleInvalid)
	}
	return err.WithMetadata(MetaKeyLocale, locale)
}

// NewCatalogFileError wraps a catalog file loading failure
func NewCatalogFileError(msg, file string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeCatalog, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeCatalog, msg)
	}
	return err.WithMetadata(MetaKeyFile, file)
}

// NewStoreError wraps a message store failure
func NewStoreError(msg string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeStorage, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeStorage, msg)
	}
	return err.WithMetadata(MetaKeyKind, ErrKindStorage)
}

// IsStoreError reports a message store backend failure.
func IsStoreError(err error) bool { return ErrorKind(err) == ErrKindStorage }
