// Package logfile sets up the per-session log file and keeps the logs folder
// under the user's limit.
package logfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Dir is the logs folder inside the program folder
const Dir = "logs"

// timeLayout sorts lexically and avoids characters Windows rejects in file names
const timeLayout = "2006-01-02T15-04-05"

// Session is an open session log
type Session struct {
	Logger *logrus.Logger
	Path   string
	file   *os.File
}

// Close flushes and closes the log file
func (s *Session) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}

// FileName returns the log file name for a session started at now
func FileName(abbreviation string, now time.Time) string {
	return fmt.Sprintf("%s_Version_Swapper.%s.log", abbreviation, now.Format(timeLayout))
}

// Open creates the session log under programDir/logs. Every level is written
// to the file; with verbose, Info through Error are echoed to console too.
func Open(programDir, abbreviation string, verbose bool, console io.Writer, now time.Time) (*Session, error) {
	dir := filepath.Join(programDir, Dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs folder: %w", err)
	}

	path := filepath.Join(dir, FileName(abbreviation, now))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(file)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetReportCaller(true)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.0000",
	})

	if verbose && console != nil {
		logger.AddHook(NewConsoleHook(console))
		logger.Info("Verbose mode activated.")
	}

	return &Session{Logger: logger, Path: path, file: file}, nil
}

// ConsoleHook echoes entries to a console as "LEVEL: message error"
type ConsoleHook struct {
	out io.Writer
}

// NewConsoleHook creates a hook writing to out
func NewConsoleHook(out io.Writer) *ConsoleHook {
	return &ConsoleHook{out: out}
}

// Levels implements logrus.Hook
func (h *ConsoleHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.ErrorLevel, logrus.WarnLevel, logrus.InfoLevel}
}

// Fire implements logrus.Hook
func (h *ConsoleHook) Fire(entry *logrus.Entry) error {
	line := strings.ToUpper(entry.Level.String()) + ": " + entry.Message
	if err, ok := entry.Data[logrus.ErrorKey].(error); ok {
		line += " " + err.Error()
	}
	_, err := fmt.Fprintln(h.out, line)
	return err
}

// Notifier shows pruning notices to the user
type Notifier interface {
	Println(a ...interface{})
	Warn(text string)
}

// approachMargin is how close to the limit the user starts being warned
const approachMargin = 3

// Prune deletes the oldest log files in dir until at most limit remain.
// A limit of 0 keeps everything. The first failed delete stops pruning and is
// reported once. It returns how many files were deleted.
func Prune(dir string, limit int, log logrus.FieldLogger, ui Notifier) int {
	if limit == 0 {
		return 0
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.WithError(err).Error("Could not list the logs folder.")
		return 0
	}

	var files []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)

	switch {
	case len(files) > limit:
		log.Debugf("Excessive log file count: %d vs %d", len(files), limit)
		ui.Warn(fmt.Sprintf("Log file limit of %d exceeded (total: %d)", limit, len(files)))
		ui.Println("Files will be deleted accordingly.")
		ui.Println()
	case len(files)+approachMargin > limit:
		log.Debugf("Log file count approaching excessive: %d vs %d", len(files), limit)
		ui.Warn(fmt.Sprintf("You are approaching your set log file limit (%d of %d)", len(files), limit))
		ui.Println("Be sure to edit appsettings.json to adjust the limit to your tastes.")
		ui.Println()
	}

	deleted := 0
	for len(files) > limit {
		if err := os.Remove(files[0]); err != nil {
			log.WithError(err).Error("Could not delete at least one excess log file.")
			ui.Warn(fmt.Sprintf("You have more than your setting of %d log files in the logs folder.", limit))
			ui.Println("Normally I'd take care of this for you but I had an unexpected error.")
			ui.Println("I've put some additional information in this session's log file.")
			ui.Println()
			break
		}
		log.Infof("Deleted excess log file %s.", files[0])
		files = files[1:]
		deleted++
	}

	return deleted
}
