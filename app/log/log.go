// Package log defines the logger engine.
// The unique feature is that it can create a child logger derived from the parent logger.
// Each logger defines a unique color style for the message outputs.
//
// Create a child logger for the packages that the service is calling.
package log

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/charmbracelet/lipgloss"

	"github.com/muesli/gamut"
)

const (
	WITH_TIMESTAMP    = true
	WITHOUT_TIMESTAMP = false
)

// The prefix and separator styles are package globals of charmbracelet/log.
// Request handlers log concurrently, so switching the style and printing
// must happen together.
var styleMu sync.Mutex

// Logger is the wrapper over the logger and keeps the style.
// The style is generated randomly.
type Logger struct {
	logger log.Logger
	style  LoggerStyle
}

// LoggerStyle defines the various colors for each log parts.
type LoggerStyle struct {
	prefix    lipgloss.Style
	separator lipgloss.Style
}

func randomStyle() (LoggerStyle, error) {
	rawPalette, err := gamut.Generate(2, gamut.PastelGenerator{})
	if err != nil {
		return LoggerStyle{}, fmt.Errorf("gamut.Generate: %w", err)
	}
	palette := make([]lipgloss.Color, len(rawPalette))
	for i, rawColor := range rawPalette {
		lighter := gamut.Lighter(rawColor, 0.05)
		palette[i] = lipgloss.Color(gamut.ToHex(lighter))
	}

	// web: questions/42480000/python-ansi-colour-codes-transparent-background
	backgroundColor := lipgloss.Color("49m")

	style := LoggerStyle{}

	style.prefix = lipgloss.NewStyle().
		Bold(true).
		Faint(true).
		Background(backgroundColor).
		Foreground(palette[0])

	style.separator = lipgloss.NewStyle().
		Faint(true).
		Background(backgroundColor).
		Foreground(palette[1])

	return style, nil
}

func (style LoggerStyle) setPrimary() {
	log.PrefixStyle = style.prefix
	log.SeparatorStyle = style.separator
}

// New logger with the prefix and timestamp.
// It generates the random color style.
func New(prefix string, timestamp bool) (*Logger, error) {
	style, err := randomStyle()
	if err != nil {
		return nil, fmt.Errorf("randomStyle: %w", err)
	}

	logger := log.New()
	logger.SetPrefix(prefix)
	logger.SetReportCaller(false)
	logger.SetReportTimestamp(timestamp)

	return &Logger{
		logger: logger,
		style:  style,
	}, nil
}

// SetDebug switches the debug messages on or off.
func (logger *Logger) SetDebug(enabled bool) {
	if enabled {
		logger.logger.SetLevel(log.DebugLevel)
	} else {
		logger.logger.SetLevel(log.InfoLevel)
	}
}

// Fatal calls the Error, then os.Exit()
func Fatal(title string, kv ...interface{}) {
	log.Fatal(title, kv...)
}

// Prefix returns the full prefix including the parent prefixes.
func (logger *Logger) Prefix() string {
	return logger.logger.GetPrefix()
}

// Debug prints the message only if the debug level is enabled
func (logger *Logger) Debug(title string, kv ...interface{}) {
	styleMu.Lock()
	defer styleMu.Unlock()
	logger.style.setPrimary()
	logger.logger.Debug(title, kv...)
}

// Info prints the information
func (logger *Logger) Info(title string, kv ...interface{}) {
	styleMu.Lock()
	defer styleMu.Unlock()
	logger.style.setPrimary()
	logger.logger.Info(title, kv...)
}

// Warn prints the warning message
func (logger *Logger) Warn(title string, kv ...interface{}) {
	styleMu.Lock()
	defer styleMu.Unlock()
	logger.style.setPrimary()
	logger.logger.Warn(title, kv...)
}

// Error prints the error message
func (logger *Logger) Error(title string, kv ...interface{}) {
	styleMu.Lock()
	defer styleMu.Unlock()
	logger.style.setPrimary()
	logger.logger.Error(title, kv...)
}

// Fatal prints the error message and then calls the os.Exit()
func (logger *Logger) Fatal(title string, kv ...interface{}) {
	styleMu.Lock()
	logger.style.setPrimary()
	logger.logger.Fatal(title, kv...)
}

// Child logger from the parent with its own color style.
//
// For example:
//
//	parent, _ := log.New("main", false)
//	chainLog := parent.Child("client")
//	httpLog := parent.Child("controller", "port", 3000)
//
//	parent.Info("starting", "secure", true)
//	chainLog.Info("dialing")
//	httpLog.Info("listening")
//
//	// prints the following
//	// INFO main: starting: secure=true
//	// INFO main/client: dialing
//	// INFO main/controller: listening port=3000
func (logger *Logger) Child(prefix string, kv ...interface{}) *Logger {
	child := logger.logger.With(kv...)
	child.SetPrefix(logger.logger.GetPrefix() + "/" + prefix)

	style, err := randomStyle()
	if err != nil {
		style = logger.style
	}

	return &Logger{
		logger: child,
		style:  style,
	}
}
