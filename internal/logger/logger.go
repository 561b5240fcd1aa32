package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ********************************************************
// ********* LOGGING **************************************
// ********************************************************

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorOrange = "\033[38;5;208m"
)

type Logger struct {
	out   *log.Logger
	errs  *log.Logger
	level LogLevel
}

var (
	defaultLogger *Logger
	showDateTime  bool
	logFile       *os.File
)

func init() {
	defaultLogger = NewLogger(INFO)
	showDateTime = false
}

func NewLogger(level LogLevel) *Logger {
	return &Logger{
		out:   log.New(os.Stdout, "", flags()),
		errs:  log.New(os.Stderr, "", flags()),
		level: level,
	}
}

func flags() int {
	if showDateTime {
		return log.Ldate | log.Ltime
	}
	return 0
}

// SetLevel changes the minimum level emitted by the default logger
func SetLevel(level LogLevel) {
	defaultLogger.level = level
}

func SetShowDateTime(value bool) {
	showDateTime = value
	defaultLogger.out.SetFlags(flags())
	defaultLogger.errs.SetFlags(flags())
}

// SetLogOutput sets the output destination for logs
// 'c' for console, 'f' for file
func SetLogOutput(outputType rune) {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}

	switch outputType {
	case 'c':
		defaultLogger.out = log.New(os.Stdout, "", flags())
		defaultLogger.errs = log.New(os.Stderr, "", flags())
	case 'f':
		var err error
		logFile, err = os.OpenFile("/tmp/footy.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defaultLogger.out = log.New(logFile, "", flags())
		defaultLogger.errs = log.New(logFile, "", flags())
	default:
		fmt.Fprintf(os.Stderr, "Invalid log output type: %c\n", outputType)
		os.Exit(1)
	}
}

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) color() string {
	switch l {
	case DEBUG:
		return colorBlue
	case INFO:
		return colorGreen
	case WARN:
		return colorYellow
	case ERROR:
		return colorOrange
	case FATAL:
		return colorRed
	default:
		return colorReset
	}
}

func (l *Logger) log(level LogLevel, msg string, v ...any) {
	if level < l.level {
		return
	}

	// Caller information, base filename only
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file = "unknown"
		line = 0
	}
	file = filepath.Base(file)

	if len(v) > 0 {
		msg = msg + " " + formatArgs(v...)
	}

	out := fmt.Sprintf("[%s] %s:%d: %s%s%s", level.String(), file, line, level.color(), msg, colorReset)

	if level >= ERROR {
		l.errs.Println(out)
	} else {
		l.out.Println(out)
	}
}

// formatArgs converts any number of arguments into a space-joined string
func formatArgs(args ...any) string {
	var parts []string
	for _, arg := range args {
		switch v := arg.(type) {
		case float32:
			parts = append(parts, fmt.Sprintf("%.2f", v))
		case float64:
			parts = append(parts, fmt.Sprintf("%.2f", v))
		case int:
			parts = append(parts, fmt.Sprintf("%d", v))
		case bool:
			parts = append(parts, fmt.Sprintf("%v", v))
		case string:
			parts = append(parts, v)
		case error:
			parts = append(parts, v.Error())
		case nil:
			parts = append(parts, "nil")
		default:
			parts = append(parts, fmt.Sprintf("%v", v))
		}
	}
	return strings.Join(parts, " ")
}

// Convenience methods using the default logger
func Debug(msg string, v ...any) {
	defaultLogger.log(DEBUG, msg, v...)
}

func Info(msg string, v ...any) {
	defaultLogger.log(INFO, msg, v...)
}

func Warn(msg string, v ...any) {
	defaultLogger.log(WARN, msg, v...)
}

func Error(msg string, v ...any) {
	defaultLogger.log(ERROR, msg, v...)
}

func Fatal(msg string, v ...any) {
	defaultLogger.log(FATAL, msg, v...)
	os.Exit(1)
}
