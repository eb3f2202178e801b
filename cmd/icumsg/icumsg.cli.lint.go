package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/itsatony/go-cuserr"
	icumsg "github.com/itsatony/go-icumsg"
)

// lintConfig holds parsed lint command configuration
type lintConfig struct {
	dir    string
	format string
}

// lintIssueOutput represents one lint finding in JSON output
type lintIssueOutput struct {
	File      string `json:"file"`
	Locale    string `json:"locale,omitempty"`
	MessageID string `json:"message_id,omitempty"`
	Message   string `json:"message"`
}

// lintOutput represents JSON output for lint
type lintOutput struct {
	Valid  bool              `json:"valid"`
	Files  int               `json:"files"`
	Issues []lintIssueOutput `json:"issues,omitempty"`
}

func runLint(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseLintFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgMissingDirectory, err)
		return ExitCodeUsageError
	}

	issues, scanned, err := lintTree(os.DirFS(cfg.dir))
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWalkFailed, err)
		return ExitCodeInputError
	}

	if cfg.format == OutputFormatJSON {
		return outputLintJSON(issues, scanned, stdout, stderr)
	}
	return outputLintText(issues, stdout)
}

func parseLintFlags(args []string) (*lintConfig, error) {
	fs := flag.NewFlagSet(CmdNameLint, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &lintConfig{}

	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.dir = fs.Arg(0)
	if cfg.dir == "" {
		return nil, errors.New(ErrMsgMissingDirectory)
	}

	if cfg.format != OutputFormatText && cfg.format != OutputFormatJSON {
		return nil, errors.New(ErrMsgInvalidFormat)
	}

	return cfg, nil
}

// lintTree walks the tree rooted at fsys and checks every catalog file it finds.
// It returns the collected issues and the number of files scanned.
func lintTree(fsys fs.FS) ([]lintIssueOutput, int, error) {
	var files []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if isCatalogFile(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	var issues []lintIssueOutput
	for _, file := range files {
		issues = append(issues, lintFile(fsys, file)...)
	}
	return issues, len(files), nil
}

// lintFile loads one catalog file into a fresh catalog and lints every message.
func lintFile(fsys fs.FS, file string) []lintIssueOutput {
	locale := strings.TrimSuffix(path.Base(file), path.Ext(file))

	catalog := icumsg.NewCatalog(icumsg.WithCatalogDefaultLocale(locale))
	if err := catalog.LoadFile(fsys, file); err != nil {
		return []lintIssueOutput{{
			File:      file,
			Locale:    locale,
			MessageID: metadataValue(err, icumsg.MetaKeyMessageID),
			Message:   err.Error(),
		}}
	}

	var issues []lintIssueOutput
	for _, loc := range catalog.Locales() {
		for _, id := range catalog.MessageIDs(loc) {
			msg, _, err := catalog.Message(loc, id)
			if err != nil {
				continue
			}
			for _, lintErr := range icumsg.Lint(msg.AST()) {
				issues = append(issues, lintIssueOutput{
					File:      file,
					Locale:    loc,
					MessageID: id,
					Message:   lintErr.Error(),
				})
			}
		}
	}
	return issues
}

// isCatalogFile reports whether the path has a supported catalog extension
func isCatalogFile(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml", ".json", ".toml":
		return true
	}
	return false
}

// metadataValue extracts a metadata entry from an error, if present
func metadataValue(err error, key string) string {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return ""
	}
	value, _ := customErr.GetMetadata(key)
	return value
}

func outputLintText(issues []lintIssueOutput, stdout io.Writer) int {
	if len(issues) == 0 {
		fmt.Fprintln(stdout, LintTextSuccess)
		return ExitCodeSuccess
	}

	fmt.Fprintln(stdout, LintTextIssueHeader)
	affected := make(map[string]struct{})
	for _, issue := range issues {
		affected[issue.File] = struct{}{}
		fmt.Fprintf(stdout, LintTextIssueFormat+FmtNewline, issueLocation(issue), issue.Message)
	}
	fmt.Fprintf(stdout, LintTextSummary+FmtNewline, len(issues), len(affected))

	return ExitCodeValidationError
}

func outputLintJSON(issues []lintIssueOutput, scanned int, stdout, stderr io.Writer) int {
	output := lintOutput{
		Valid:  len(issues) == 0,
		Files:  scanned,
		Issues: issues,
	}

	encoded, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgJSONMarshalFailed, err)
		return ExitCodeError
	}
	fmt.Fprintln(stdout, string(encoded))

	if !output.Valid {
		return ExitCodeValidationError
	}
	return ExitCodeSuccess
}

// issueLocation renders the file plus message id of an issue
func issueLocation(issue lintIssueOutput) string {
	if issue.MessageID == "" {
		return issue.File
	}
	return issue.File + "#" + issue.MessageID
}
