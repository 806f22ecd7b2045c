package logger

import (
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"golang.org/x/term"
)

// Logger wraps the go-ethereum structured logger.
type Logger struct {
	log.Logger
}

// New creates a logger writing to stderr. Debug records are kept only when verbose is set.
func New(verbose bool) *Logger {
	useColor := term.IsTerminal(int(os.Stderr.Fd()))
	return NewWriter(os.Stderr, verbose, useColor)
}

// NewWriter creates a logger that writes terminal-formatted records to w.
func NewWriter(w io.Writer, verbose, useColor bool) *Logger {
	level := log.LevelInfo
	if verbose {
		level = log.LevelDebug
	}
	return &Logger{
		Logger: log.NewLogger(log.NewTerminalHandlerWithLevel(w, level, useColor)),
	}
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	return NewWriter(io.Discard, false, false)
}
