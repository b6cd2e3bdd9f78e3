// Package stdlogger adapts the zerolog global logger to the printf-style
// interfaces expected by libraries that take a plain logger, such as gorm.
package stdlogger

import (
	"github.com/rs/zerolog/log"
)

// Logger is a printf-style facade over the zerolog global logger.
type Logger struct{}

// New creates a new printf-style logger adapter.
func New() *Logger {
	return &Logger{}
}

// Printf implements the gorm logger.Writer interface.
func (l *Logger) Printf(format string, v ...interface{}) {
	log.Info().Msgf(format, v...)
}

// Infof logs at info level.
func (l *Logger) Infof(format string, v ...interface{}) {
	log.Info().Msgf(format, v...)
}

// Warningf logs at warn level.
func (l *Logger) Warningf(format string, v ...interface{}) {
	log.Warn().Msgf(format, v...)
}

// Errorf logs at error level.
func (l *Logger) Errorf(format string, v ...interface{}) {
	log.Error().Msgf(format, v...)
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, v ...interface{}) {
	log.Debug().Msgf(format, v...)
}
