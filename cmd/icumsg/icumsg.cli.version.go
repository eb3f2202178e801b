package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"

	"gopkg.in/yaml.v3"
)

// versionConfig holds parsed version command configuration
type versionConfig struct {
	format string
}

// versionInfo is the version report, shaped for both text and JSON output.
type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Branch    string `json:"branch"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

// versionsFile mirrors the release metadata layout of versions.yaml.
type versionsFile struct {
	Project struct {
		Name        string `yaml:"name"`
		Version     string `yaml:"version"`
		Description string `yaml:"description"`
	} `yaml:"project"`
	Git struct {
		Commit string `yaml:"commit"`
		Branch string `yaml:"branch"`
		Tag    string `yaml:"tag"`
	} `yaml:"git"`
	Build struct {
		Time      string `yaml:"time"`
		GoVersion string `yaml:"go_version"`
	} `yaml:"build"`
}

func runVersion(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseVersionFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFormat, err)
		return ExitCodeUsageError
	}

	info := collectVersionInfo()

	if cfg.format == OutputFormatJSON {
		return outputVersionJSON(info, stdout)
	}
	return outputVersionText(info, stdout)
}

func parseVersionFlags(args []string) (*versionConfig, error) {
	fs := flag.NewFlagSet(CmdNameVersion, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &versionConfig{}
	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.format != OutputFormatText && cfg.format != OutputFormatJSON {
		return nil, errors.New(ErrMsgInvalidFormat)
	}

	return cfg, nil
}

// collectVersionInfo layers the report from weakest to strongest source:
// static defaults, then whatever the compiled binary embeds, then the release
// metadata in versions.yaml when one is found.
func collectVersionInfo() *versionInfo {
	info := &versionInfo{
		Version:   VersionUnknown,
		Commit:    VersionUnknown,
		Branch:    VersionUnknown,
		BuildTime: VersionUnknown,
		GoVersion: runtime.Version(),
	}
	applyBuildInfo(info)
	applyVersionsFile(info)
	return info
}

// applyBuildInfo fills in what the binary knows about itself: the module
// version and, for VCS-stamped builds, the revision and commit time.
func applyBuildInfo(info *versionInfo) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if bi.Main.Version != "" {
		info.Version = bi.Main.Version
	}
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.Commit = setting.Value
		case "vcs.time":
			info.BuildTime = setting.Value
		}
	}
}

// applyVersionsFile overlays release metadata from versions.yaml, searched
// upward from the working directory so the command also works from inside the
// repository tree. Empty fields in the file leave the current values alone.
func applyVersionsFile(info *versionInfo) {
	paths := []string{"versions.yaml", "../versions.yaml", "../../versions.yaml"}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var vf versionsFile
		if err := yaml.Unmarshal(data, &vf); err != nil {
			continue
		}
		if vf.Project.Version != "" {
			info.Version = vf.Project.Version
		}
		if vf.Git.Commit != "" {
			info.Commit = vf.Git.Commit
		}
		if vf.Git.Branch != "" {
			info.Branch = vf.Git.Branch
		}
		if vf.Build.Time != "" {
			info.BuildTime = vf.Build.Time
		}
		if vf.Build.GoVersion != "" {
			info.GoVersion = vf.Build.GoVersion
		}
		return
	}
}

func outputVersionText(info *versionInfo, stdout io.Writer) int {
	fmt.Fprintf(stdout, VersionTextTemplate+FmtNewline,
		info.Version, info.Commit, info.Branch, info.BuildTime, info.GoVersion)
	return ExitCodeSuccess
}

func outputVersionJSON(info *versionInfo, stdout io.Writer) int {
	encoded, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return ExitCodeError
	}
	fmt.Fprintln(stdout, string(encoded))
	return ExitCodeSuccess
}
