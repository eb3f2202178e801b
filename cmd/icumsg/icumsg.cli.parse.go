package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	icumsg "github.com/itsatony/go-icumsg"
)

// parseConfig holds parsed parse command configuration
type parseConfig struct {
	messageText string
	messagePath string
	outputPath  string
	ignoreTag   bool
}

func runParse(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseParseFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgMissingMessage, err)
		return ExitCodeUsageError
	}

	// Read message source
	source, err := resolveMessageSource(cfg.messageText, cfg.messagePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	// Parse into an AST
	nodes, err := icumsg.Parse(source, icumsg.WithParserIgnoreTag(cfg.ignoreTag))
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgParseMessageFailed, err)
		return ExitCodeError
	}

	encoded, err := icumsg.MarshalAST(nodes)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgJSONMarshalFailed, err)
		return ExitCodeError
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, encoded, "", "  "); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgJSONMarshalFailed, err)
		return ExitCodeError
	}
	pretty.WriteString(FmtNewline)

	// Write output
	if err := writeOutput(cfg.outputPath, pretty.Bytes(), stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}

	return ExitCodeSuccess
}

func parseParseFlags(args []string) (*parseConfig, error) {
	fs := flag.NewFlagSet(CmdNameParse, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &parseConfig{}

	fs.StringVar(&cfg.messageText, FlagMessage, "", "")
	fs.StringVar(&cfg.messageText, FlagMessageShort, "", "")
	fs.StringVar(&cfg.messagePath, FlagMessageFile, "", "")
	fs.StringVar(&cfg.messagePath, FlagMessageFileShort, "", "")
	fs.StringVar(&cfg.outputPath, FlagOutput, FlagDefaultOutput, "")
	fs.StringVar(&cfg.outputPath, FlagOutputShort, FlagDefaultOutput, "")
	fs.BoolVar(&cfg.ignoreTag, FlagIgnoreTag, false, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := checkMessageSource(cfg.messageText, cfg.messagePath); err != nil {
		return nil, err
	}

	return cfg, nil
}
