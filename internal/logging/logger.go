package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const DefaultLevel = "warn"

type LoggerSetupParams struct {
	LogLevel      string
	LogFormatJSON bool
	// LogFileName adds a rotating log file next to stderr.
	LogFileName string
	// Stderr is where logs go besides the optional file; nil means os.Stderr.
	Stderr io.Writer
}

// Setup configures the global logrus logger. Command output goes to stdout,
// so logs never share that stream.
func Setup(params LoggerSetupParams) {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	logrus.SetLevel(GetLevel(params.LogLevel))

	stderr := params.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	if params.LogFileName == "" {
		logrus.SetOutput(stderr)
		return
	}

	if !strings.HasSuffix(params.LogFileName, ".log") {
		params.LogFileName += ".log"
	}
	lumberJackLogger := &lumberjack.Logger{
		Filename:   params.LogFileName,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		Compress:   true,
	}
	logrus.SetOutput(NewCombinedWriter(stderr, lumberJackLogger))
	logrus.Debugf("writing logs to stderr and %s", params.LogFileName)
}

// GetLevel maps a level name to logrus, defaulting to warn for unknown names.
func GetLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	default:
		return logrus.WarnLevel
	}
}
