// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command routing and global flags for talentdesk.
package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/jeranaias/talentdesk/internal/ui/styles"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdChat
	CmdConversations
	CmdRank
	CmdHistory
	CmdLogin
	CmdRegister
	CmdLogout
	CmdDevServer
	CmdConfig
	CmdVersion
	CmdHelp
)

// String returns the command name as typed.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdChat:
		return "chat"
	case CmdConversations:
		return "conversations"
	case CmdRank:
		return "rank"
	case CmdHistory:
		return "history"
	case CmdLogin:
		return "login"
	case CmdRegister:
		return "register"
	case CmdLogout:
		return "logout"
	case CmdDevServer:
		return "devserver"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	default:
		return "help"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	NoColor bool
	Server  string // --server overrides server.base_url
	Mode    string // --mode overrides chat.mode
	Theme   string // --theme overrides ui.theme

	// Subcommand is the first positional argument after the command.
	Subcommand string

	// Raw holds the arguments after the command, global flags removed.
	Raw []string

	// Unknown is set when the command word was not recognized.
	Unknown string
}

// Parser returns an ArgParser over the command's arguments.
func (a Args) Parser(boolNames ...string) *ArgParser {
	return NewArgParser(a.Raw, boolNames...)
}

const usageText = `talentdesk - chat and resume ranking in the terminal

Usage:
  talentdesk                          Start the chat TUI (default)
  talentdesk tui [chat|upload]        Start a TUI view
  talentdesk upload [FILES...]        Start the upload TUI with files selected
  talentdesk chat [MESSAGE]           Line chat (one-shot when MESSAGE given)
  talentdesk conversations [list]     List conversations
  talentdesk conversations export N   Export conversation N (or an id)
    --format markdown|html|json       Export format (default: markdown)
    --out DIR                         Output directory
    --open                            Open the file when written
  talentdesk rank FILES...            Rank resumes against a job description
    --jd TEXT                         Job description text
    --jd-file PATH                    Read the job description from a file
    --csv                             Download the ranking as CSV
    --html PATH                       Write a standalone HTML report
    --json                            Print the raw ranking as JSON
    --open                            Open the HTML report when written
  talentdesk history                  Show previous analyses
  talentdesk login [USERNAME]         Sign in (password is prompted)
  talentdesk register                 Create an account
  talentdesk logout                   Sign out
  talentdesk devserver [--addr A]     Run the development server
  talentdesk config [show]            Show configuration
  talentdesk config get KEY           Show one value
  talentdesk config set KEY VALUE     Change one value
  talentdesk config path              Show the config file location
  talentdesk config reset             Restore defaults
  talentdesk version                  Show version information

Global Flags:
  --server URL      Server base URL (default from config)
  --mode MODE       Chat storage: local or remote
  --theme THEME     dark, light or auto
  --no-color        Disable colors
  -q, --quiet       Minimal output
  -v, --verbose     Debug logging to stderr

Examples:
  talentdesk --mode local                     Chat without a server account
  talentdesk rank ~/cvs/*.pdf --jd "golang kubernetes" --html report.html
  talentdesk conversations export 1 --format html
  talentdesk config set server.base_url http://localhost:8080

Version: %s
`

// PrintUsage writes the usage text to w.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion writes version information to w.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "talentdesk version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go:         %s\n", runtime.Version())
}

// Parse parses os.Args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses command-line arguments and returns the command and args.
func ParseArgs(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	rest := remaining[1:]
	parsedArgs.Raw = rest
	if len(rest) > 0 && !strings.HasPrefix(rest[0], "-") {
		parsedArgs.Subcommand = rest[0]
	}

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "upload":
		// Shorthand for "tui upload FILES..."
		parsedArgs.Subcommand = "upload"
		parsedArgs.Raw = append([]string{"upload"}, rest...)
		return CmdTUI, parsedArgs

	case "chat":
		return CmdChat, parsedArgs

	case "conversations", "conversation", "convs":
		return CmdConversations, parsedArgs

	case "rank":
		return CmdRank, parsedArgs

	case "history":
		return CmdHistory, parsedArgs

	case "login":
		return CmdLogin, parsedArgs

	case "register", "signup":
		return CmdRegister, parsedArgs

	case "logout":
		return CmdLogout, parsedArgs

	case "devserver", "serve":
		return CmdDevServer, parsedArgs

	case "config":
		return CmdConfig, parsedArgs

	case "version", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		parsedArgs.Unknown = remaining[0]
		return CmdHelp, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	// valueFlag handles "--name value" and "--name=value".
	valueFlag := func(i *int, arg, name string, dst *string) bool {
		if arg == name {
			if *i+1 < len(args) {
				*i++
				*dst = args[*i]
			}
			return true
		}
		if strings.HasPrefix(arg, name+"=") {
			*dst = strings.TrimPrefix(arg, name+"=")
			return true
		}
		return false
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// Everything after "--" belongs to the command.
		if arg == "--" {
			remaining = append(remaining, args[i:]...)
			break
		}

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--no-color":
			parsedArgs.NoColor = true
		default:
			if valueFlag(&i, arg, "--server", &parsedArgs.Server) ||
				valueFlag(&i, arg, "--mode", &parsedArgs.Mode) ||
				valueFlag(&i, arg, "--theme", &parsedArgs.Theme) {
				continue
			}
			remaining = append(remaining, arg)
		}
	}

	return remaining, parsedArgs
}

// =============================================================================
// COMMAND HANDLERS
// =============================================================================

// HandleVersion handles the "version" command.
func HandleVersion() {
	PrintVersion(os.Stdout)
}

// HandleHelp handles the "help" command and unknown commands.
func HandleHelp(args Args) error {
	PrintUsage(os.Stdout)
	if args.Unknown != "" {
		return &UsageError{Message: fmt.Sprintf("unknown command %q", args.Unknown)}
	}
	return nil
}

// =============================================================================
// DISPATCH
// =============================================================================

// Run executes cmd and returns the process exit code. Errors are printed to
// stderr.
func Run(cmd Command, args Args) int {
	var err error
	switch cmd {
	case CmdTUI:
		err = HandleTUI(args)
	case CmdChat:
		err = HandleChat(args)
	case CmdConversations:
		err = HandleConversations(args)
	case CmdRank:
		err = HandleRank(args)
	case CmdHistory:
		err = HandleHistory(args)
	case CmdLogin:
		err = HandleLogin(args)
	case CmdRegister:
		err = HandleRegister(args)
	case CmdLogout:
		err = HandleLogout(args)
	case CmdDevServer:
		err = HandleDevServer(args)
	case CmdConfig:
		err = HandleConfig(args)
	case CmdVersion:
		HandleVersion()
	default:
		err = HandleHelp(args)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(displayText(err)))
	}
	return ExitCodeFor(err)
}
