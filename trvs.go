package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"time"

	"github.com/docopt/docopt-go"
	"github.com/sirupsen/logrus"

	"github.com/TombRunners/trvs/internal/audio"
	"github.com/TombRunners/trvs/internal/console"
	"github.com/TombRunners/trvs/internal/game"
	"github.com/TombRunners/trvs/internal/games"
	"github.com/TombRunners/trvs/internal/github"
	"github.com/TombRunners/trvs/internal/install"
	"github.com/TombRunners/trvs/internal/integrity"
	"github.com/TombRunners/trvs/internal/logfile"
	"github.com/TombRunners/trvs/internal/paths"
	"github.com/TombRunners/trvs/internal/process"
	"github.com/TombRunners/trvs/internal/program"
	"github.com/TombRunners/trvs/internal/prompt"
	"github.com/TombRunners/trvs/internal/session"
	"github.com/TombRunners/trvs/internal/settings"
	"github.com/TombRunners/trvs/internal/swap"
	"github.com/TombRunners/trvs/internal/version"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "1.0.0"

const usage = `Tomb Raider Version Swapper.

Usage:
  trvs [options]
  trvs [options] audit <dir>
  trvs -h | --help
  trvs --version

Options:
  -h --help         Show this screen.
  --version         Show version.
  -g --game=<abbr>  Game to operate on (tr4, tr5) [default: tr4].
  -d --dir=<path>   Game installation directory. Defaults to the folder
                    containing this program's folder.
  -p --pick         Choose the game directory with a folder dialog (Windows).
  -v --verbose      Enable console logging.
  -q --quiet        Disable sound cues.`

// options are the parsed command line
type options struct {
	Game    string
	Dir     string
	Pick    bool
	Verbose bool
	Quiet   bool
	Audit   bool
	Target  string
}

func main() {
	os.Exit(run())
}

func run() (code int) {
	ui := prompt.New(os.Stdin, os.Stdout)

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\nOops, something broke: %v\n", r)
			fmt.Fprintln(os.Stderr, "Let the developers know what happened.")
			if ui.Sound != nil {
				ui.Sound.Play(audio.Error)
			}
			code = session.ExitUnexpected
		}
	}()

	console.Attach()

	opts, ok := parseArgs(os.Args[1:])
	if !ok {
		// Nothing is logged yet; the pause keeps a double-clicked window open
		return earlySession(ui).EarlyPauseAndExit(session.ExitUnexpected)
	}
	if opts == nil {
		return session.ExitOK
	}

	if opts.Audit {
		return audit(opts.Target)
	}

	g, err := games.Lookup(opts.Game)
	if err != nil {
		ui.Error(err.Error())
		return earlySession(ui).EarlyPauseAndExit(session.ExitUnexpected)
	}
	def := g.Definition()

	_ = console.SetTitle(def.Abbreviation + " Version Swapper")
	program.Splash(ui.Printer, def)

	programDir, err := paths.ProgramDir()
	if err != nil {
		ui.Error("I couldn't find the folder this program is running from.")
		return earlySession(ui).EarlyPauseAndExit(session.ExitUnexpected)
	}

	logs, err := logfile.Open(programDir, def.Abbreviation, opts.Verbose, os.Stderr, time.Now())
	if err != nil {
		ui.Error("I couldn't create this session's log file.")
		ui.Println(err.Error())
		return earlySession(ui).EarlyPauseAndExit(session.ExitUnexpected)
	}
	defer logs.Close()
	log := logs.Logger.WithField("game", def.Abbreviation)

	s := session.New(log, ui, settings.Default(), version.MustParse(Version), func(code int) {
		logs.Close()
		os.Exit(code)
	})
	log.Debugf("%s Version Swapper %s started from %s.", def.Abbreviation, Version, programDir)

	handleInterrupts(s, logs)

	userSettings, created, err := settings.Load(programDir)
	if err != nil {
		return s.GiveErrorMessageAndExit("An error was encountered while reading the user settings file.", err, session.ExitUnexpected)
	}
	if created {
		path := settings.Path(programDir)
		log.Debugf("Created a default user settings file at %s.", path)
		ui.Println("I created a default user settings files at")
		ui.Println(path)
		ui.Println("You can edit the settings in this file to your desired amounts.")
		ui.Println()
	}
	s.Settings = userSettings

	ui.Sound = audio.NewPlayer(userSettings.PlaySounds && !opts.Quiet, log)

	logfile.Prune(filepath.Join(programDir, logfile.Dir), userSettings.LogFileLimit, log, ui)

	gameDir, err := gameDirectory(opts, def, programDir)
	if err != nil {
		return s.GiveErrorMessageAndExit("I couldn't determine the game folder.", err, session.ExitUnexpected)
	}
	dirs := game.Dirs{GameDir: gameDir, PackagedDir: programDir}
	log.WithFields(logrus.Fields{"game_dir": dirs.Game(), "packaged_dir": dirs.Packaged()}).Info("Resolved directories.")

	client := github.NewClient("TRVS/"+Version, nil)
	manager := install.NewManager(s, def, dirs, client)

	guard := process.NewGuard(def.Executable, def.Abbreviation, log, ui)
	ops := swap.NewOperations(s, guard, dirs.Game())

	return program.Run(s, manager, g.NewSwapper(ops, dirs, ui))
}

// parseArgs returns nil options with ok set when help or the version was
// printed, and ok unset when the arguments are invalid
func parseArgs(argv []string) (*options, bool) {
	failed := false
	parser := &docopt.Parser{
		HelpHandler: func(err error, text string) {
			if err != nil {
				failed = true
				fmt.Fprintln(os.Stderr, text)
				return
			}
			fmt.Println(text)
		},
		OptionsFirst: false,
	}

	parsed, err := parser.ParseArgs(usage, argv, Version)
	if failed || err != nil {
		return nil, false
	}
	if len(parsed) == 0 {
		return nil, true
	}

	if optSpecified("--help", parsed) || optSpecified("--version", parsed) {
		return nil, true
	}
	return &options{
		Game:    getArg("--game", parsed),
		Dir:     getArg("--dir", parsed),
		Pick:    optSpecified("--pick", parsed),
		Verbose: optSpecified("--verbose", parsed),
		Quiet:   optSpecified("--quiet", parsed),
		Audit:   optSpecified("audit", parsed),
		Target:  getArg("<dir>", parsed),
	}, true
}

func optSpecified(key string, parsed docopt.Opts) bool {
	on, _ := parsed.Bool(key)
	return on
}

// getArg returns "" for arguments that were not given
func getArg(key string, parsed docopt.Opts) string {
	value, _ := parsed.String(key)
	return value
}

// earlySession is used to pause before exiting when no log exists yet
func earlySession(ui *prompt.Prompter) *session.Session {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	return session.New(quiet, ui, settings.Default(), version.MustParse(Version), os.Exit)
}

// handleInterrupts warns and exits on CTRL + C, whether it arrives as a
// signal or as a key read in raw mode
func handleInterrupts(s *session.Session, logs *logfile.Session) {
	var once sync.Once
	interrupt := func() {
		once.Do(func() {
			s.Log.Debug("User gave SIGINT. Ending Program.")
			s.UI.Println()
			s.UI.Warn("Received SIGINT. It's up to you to know the current state of your game!")
			logs.Close()
			os.Exit(session.ExitInterrupted)
		})
	}
	s.UI.OnInterrupt = interrupt

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt)
	go func() {
		<-signals
		interrupt()
	}()
}

// gameDirectory resolves the installation to operate on
func gameDirectory(opts *options, def game.Definition, programDir string) (string, error) {
	switch {
	case opts.Dir != "":
		return filepath.Abs(opts.Dir)
	case opts.Pick:
		dir, err := prompt.SelectFolder(fmt.Sprintf("Select your %s installation folder", def.Title), console.Window())
		if err != nil {
			return "", err
		}
		return dir, nil
	default:
		return paths.GameDirFor(programDir), nil
	}
}

// audit prints the packaged listing for a versions folder. Maintainers run it
// when preparing a release.
func audit(dir string) int {
	entries, err := integrity.Generate(dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return session.ExitFileFailure
	}
	if err := integrity.WriteListing(os.Stdout, entries); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return session.ExitFileFailure
	}
	return session.ExitOK
}
