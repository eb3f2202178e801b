package main

// Command names
const (
	CmdNameRender  = "render"
	CmdNameParse   = "parse"
	CmdNameLint    = "lint"
	CmdNameVersion = "version"
	CmdNameHelp    = "help"
)

// Flag names - long form
const (
	FlagMessage     = "message"
	FlagMessageFile = "message-file"
	FlagLocale      = "locale"
	FlagData        = "data"
	FlagDataFile    = "data-file"
	FlagOutput      = "output"
	FlagParts       = "parts"
	FlagIgnoreTag   = "ignore-tag"
	FlagFormat      = "format"
)

// Flag names - short form
const (
	FlagMessageShort     = "m"
	FlagMessageFileShort = "t"
	FlagLocaleShort      = "l"
	FlagDataShort        = "d"
	FlagDataFileShort    = "f"
	FlagOutputShort      = "o"
	FlagPartsShort       = "p"
	FlagFormatShort      = "F"
)

// Flag default values
const (
	FlagDefaultOutput = "-" // stdout
	FlagDefaultFormat = "text"
	FlagDefaultLocale = "en"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Exit codes
const (
	ExitCodeSuccess         = 0
	ExitCodeError           = 1
	ExitCodeUsageError      = 2
	ExitCodeValidationError = 3
	ExitCodeInputError      = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Error messages - ALL must be constants
const (
	ErrMsgNoCommand          = "no command specified"
	ErrMsgUnknownCommand     = "unknown command"
	ErrMsgMissingMessage     = "message source required"
	ErrMsgMessageConflict    = "use either --message or --message-file, not both"
	ErrMsgMissingDirectory   = "catalog directory required"
	ErrMsgInvalidJSON        = "invalid JSON data"
	ErrMsgReadFileFailed     = "failed to read file"
	ErrMsgWriteOutputFailed  = "failed to write output"
	ErrMsgParseMessageFailed = "message parsing failed"
	ErrMsgFormatFailed       = "message formatting failed"
	ErrMsgInvalidFormat      = "invalid output format"
	ErrMsgJSONMarshalFailed  = "failed to marshal JSON"
	ErrMsgWalkFailed         = "failed to walk catalog directory"
)

// Help text templates
const (
	HelpMainUsage = `go-icumsg - ICU MessageFormat CLI

Usage:
    icumsg <command> [options]

Commands:
    render      Format a message with values
    parse       Print the AST of a message as JSON
    lint        Validate catalog files in a directory tree
    version     Show version information
    help        Show help for a command

Use "icumsg help <command>" for more information about a command.`

	HelpRenderUsage = `Format a message with values

Usage:
    icumsg render [options]

Options:
    -m, --message <text>    Message text inline
    -t, --message-file <f>  Message file (use "-" for stdin)
    -l, --locale <tag>      BCP 47 locale tag (default: en)
    -d, --data <json>       JSON values string
    -f, --data-file <file>  JSON values file
    -o, --output <file>     Output file (default: stdout)
    -p, --parts             Print the part sequence as JSON
    --ignore-tag            Treat <tags> as literal text

Examples:
    icumsg render -m 'Hello, {name}!' -d '{"name": "Alice"}'
    icumsg render -m '{n, plural, one {# item} other {# items}}' -l de -d '{"n": 5}'
    icumsg render -t message.txt -f values.json -o out.txt
    cat message.txt | icumsg render -t - -d '{"name": "Bob"}' --parts`

	HelpParseUsage = `Print the AST of a message as JSON

Usage:
    icumsg parse [options]

Options:
    -m, --message <text>    Message text inline
    -t, --message-file <f>  Message file (use "-" for stdin)
    -o, --output <file>     Output file (default: stdout)
    --ignore-tag            Treat <tags> as literal text

Examples:
    icumsg parse -m '{count, plural, one {# file} other {# files}}'
    cat message.txt | icumsg parse -t -`

	HelpLintUsage = `Validate catalog files in a directory tree

Scans the directory recursively for <locale>.yaml, <locale>.yml,
<locale>.json and <locale>.toml catalog files and checks every
message they contain.

Usage:
    icumsg lint [options] <directory>

Options:
    -F, --format <format>   Output format: text, json (default: text)

Examples:
    icumsg lint ./locales
    icumsg lint -F json ./locales`

	HelpVersionUsage = `Show version information

Usage:
    icumsg version [options]

Options:
    -F, --format <format>   Output format: text, json (default: text)`

	HelpHelpUsage = `Show help for a command

Usage:
    icumsg help [command]

Commands:
    render      Show help for render command
    parse       Show help for parse command
    lint        Show help for lint command
    version     Show help for version command`
)

// Version output format templates
const (
	VersionTextTemplate = "go-icumsg version %s\nCommit: %s\nBranch: %s\nBuilt: %s\nGo: %s"
	VersionUnknown      = "unknown"
)

// Lint output format templates
const (
	LintTextSuccess     = "Catalog files are valid"
	LintTextIssueHeader = "Lint issues:"
	LintTextIssueFormat = "  %s: %s"
	LintTextSummary     = "%d issue(s) in %d file(s)"
)

// CLI metadata
const (
	CLIName        = "icumsg"
	CLIDescription = "ICU MessageFormat CLI"
)

// File permission constant
const (
	FilePermissions = 0644
)

// Format string constants
const (
	FmtErrorWithDetail = "%s: %s\n"
	FmtErrorWithCause  = "%s: %v\n"
	FmtNewline         = "\n"
)
