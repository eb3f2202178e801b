package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	icumsg "github.com/itsatony/go-icumsg"
)

// renderConfig holds parsed render command configuration
type renderConfig struct {
	messageText  string
	messagePath  string
	locale       string
	dataJSON     string
	dataFilePath string
	outputPath   string
	parts        bool
	ignoreTag    bool
}

// partOutput represents one formatted part in JSON output
type partOutput struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	Value any    `json:"value,omitempty"`
}

func runRender(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseRenderFlags(args)
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

	// Parse values
	data, err := loadData(cfg.dataJSON, cfg.dataFilePath)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidJSON, err)
		return ExitCodeInputError
	}
	values := icumsg.CoerceValues(data)

	// Compile the message
	msg, err := icumsg.New(source, []string{cfg.locale}, icumsg.WithIgnoreTag(cfg.ignoreTag))
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgParseMessageFailed, err)
		return ExitCodeError
	}

	var output []byte
	if cfg.parts {
		parts, err := msg.FormatToParts(values)
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgFormatFailed, err)
			return ExitCodeError
		}
		output, err = encodeParts(parts)
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgJSONMarshalFailed, err)
			return ExitCodeError
		}
	} else {
		result, err := msg.FormatString(values)
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgFormatFailed, err)
			return ExitCodeError
		}
		output = []byte(result)
	}

	// Write output
	if err := writeOutput(cfg.outputPath, output, stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}

	return ExitCodeSuccess
}

func parseRenderFlags(args []string) (*renderConfig, error) {
	fs := flag.NewFlagSet(CmdNameRender, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &renderConfig{}

	fs.StringVar(&cfg.messageText, FlagMessage, "", "")
	fs.StringVar(&cfg.messageText, FlagMessageShort, "", "")
	fs.StringVar(&cfg.messagePath, FlagMessageFile, "", "")
	fs.StringVar(&cfg.messagePath, FlagMessageFileShort, "", "")
	fs.StringVar(&cfg.locale, FlagLocale, FlagDefaultLocale, "")
	fs.StringVar(&cfg.locale, FlagLocaleShort, FlagDefaultLocale, "")
	fs.StringVar(&cfg.dataJSON, FlagData, "", "")
	fs.StringVar(&cfg.dataJSON, FlagDataShort, "", "")
	fs.StringVar(&cfg.dataFilePath, FlagDataFile, "", "")
	fs.StringVar(&cfg.dataFilePath, FlagDataFileShort, "", "")
	fs.StringVar(&cfg.outputPath, FlagOutput, FlagDefaultOutput, "")
	fs.StringVar(&cfg.outputPath, FlagOutputShort, FlagDefaultOutput, "")
	fs.BoolVar(&cfg.parts, FlagParts, false, "")
	fs.BoolVar(&cfg.parts, FlagPartsShort, false, "")
	fs.BoolVar(&cfg.ignoreTag, FlagIgnoreTag, false, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := checkMessageSource(cfg.messageText, cfg.messagePath); err != nil {
		return nil, err
	}

	return cfg, nil
}

// checkMessageSource ensures exactly one message source was given
func checkMessageSource(text, path string) error {
	if text == "" && path == "" {
		return errors.New(ErrMsgMissingMessage)
	}
	if text != "" && path != "" {
		return errors.New(ErrMsgMessageConflict)
	}
	return nil
}

// resolveMessageSource returns the message text from the inline flag or a file
func resolveMessageSource(text, path string, stdin io.Reader) (string, error) {
	if text != "" {
		return text, nil
	}

	raw, err := readInput(path, stdin)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// encodeParts serializes a part sequence as indented JSON
func encodeParts(parts []icumsg.Part) ([]byte, error) {
	outputs := make([]partOutput, 0, len(parts))
	for _, part := range parts {
		switch p := part.(type) {
		case icumsg.LiteralPart:
			outputs = append(outputs, partOutput{Type: icumsg.PartTypeNameLiteral, Text: p.Text})
		case icumsg.ObjectPart:
			outputs = append(outputs, partOutput{Type: icumsg.PartTypeNameObject, Value: p.Value})
		}
	}

	encoded, err := json.MarshalIndent(outputs, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(encoded, '\n'), nil
}
