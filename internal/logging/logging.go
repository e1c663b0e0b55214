package logging

import (
	"io"
	"log"
	"os"
)

// Logger is the logging port handed to services and handlers.
// *log.Logger satisfies it.
type Logger interface {
	Printf(format string, v ...any)
}

// New returns a logger writing to stderr with the component as prefix.
func New(component string) *log.Logger {
	return NewWithWriter(os.Stderr, component)
}

// NewWithWriter returns a logger writing to w with the component as prefix.
func NewWithWriter(w io.Writer, component string) *log.Logger {
	return log.New(w, "["+component+"] ", log.LstdFlags|log.Lmsgprefix)
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard, "", 0)
}
