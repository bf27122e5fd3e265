package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the global logger. It discards everything until Init runs,
// so packages can log unconditionally (tests included).
var Logger = log.New(io.Discard)

// Config holds logger configuration.
type Config struct {
	Debug     bool
	ConfigDir string
}

// Init points the global logger at a rotating file under the config
// dir. Stderr belongs to the TUI, so file-only unless Debug is set.
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "pomogoal.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
	}

	var writer io.Writer = fileWriter
	if cfg.Debug {
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "pomogoal",
	})

	return nil
}

func Debug(msg string, keyvals ...any) { Logger.Debug(msg, keyvals...) }

func Info(msg string, keyvals ...any) { Logger.Info(msg, keyvals...) }

func Warn(msg string, keyvals ...any) { Logger.Warn(msg, keyvals...) }

func Error(msg string, keyvals ...any) { Logger.Error(msg, keyvals...) }
