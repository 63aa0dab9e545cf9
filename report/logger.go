package report

import (
	"fmt"

	log "github.com/vine-io/vine/lib/logger"
)

type LoggerOption func(options *LoggerOptions)

// WithReport sets the report every message is appended to.
func WithReport(r *Report) LoggerOption {
	return func(opts *LoggerOptions) {
		opts.report = r
	}
}

// WithPhase tags the diagnostics with a run phase.
func WithPhase(phase string) LoggerOption {
	return func(opts *LoggerOptions) {
		opts.phase = phase
	}
}

// WithQuiet keeps messages in the report only.
func WithQuiet() LoggerOption {
	return func(opts *LoggerOptions) {
		opts.quiet = true
	}
}

type LoggerOptions struct {
	report *Report
	phase  string
	quiet  bool
}

func NewLoggerOptions(opts ...LoggerOption) LoggerOptions {
	var options LoggerOptions

	for _, opt := range opts {
		opt(&options)
	}

	if options.report == nil {
		options.report = New()
	}

	return options
}

// Logger writes diagnostics to the vine logger and to a Report.
type Logger struct {
	LoggerOptions
}

func NewLogger(opts ...LoggerOption) *Logger {
	options := NewLoggerOptions(opts...)
	return &Logger{LoggerOptions: options}
}

// Phase returns a logger sharing the report, tagged with another phase.
func (lg *Logger) Phase(phase string) *Logger {
	options := lg.LoggerOptions
	options.phase = phase
	return &Logger{LoggerOptions: options}
}

func (lg *Logger) Report() *Report {
	return lg.report
}

func (lg *Logger) record(level Level, subject, text string) {
	lg.report.Add(Diagnostic{
		Level:   level,
		Phase:   lg.phase,
		Subject: subject,
		Message: text,
	})
}

func (lg *Logger) prefix(subject string) string {
	switch {
	case lg.phase != "" && subject != "":
		return "[" + lg.phase + "] " + subject + ": "
	case lg.phase != "":
		return "[" + lg.phase + "] "
	case subject != "":
		return subject + ": "
	}
	return ""
}

func (lg *Logger) Trace(text string) {
	lg.record(LevelTrace, "", text)
	if !lg.quiet {
		log.Trace(lg.prefix("") + text)
	}
}

func (lg *Logger) Tracef(format string, args ...any) {
	lg.Trace(fmt.Sprintf(format, args...))
}

func (lg *Logger) Debug(text string) {
	lg.record(LevelDebug, "", text)
	if !lg.quiet {
		log.Debug(lg.prefix("") + text)
	}
}

func (lg *Logger) Debugf(format string, args ...any) {
	lg.Debug(fmt.Sprintf(format, args...))
}

func (lg *Logger) Info(text string) {
	lg.record(LevelInfo, "", text)
	if !lg.quiet {
		log.Info(lg.prefix("") + text)
	}
}

func (lg *Logger) Infof(format string, args ...any) {
	lg.Info(fmt.Sprintf(format, args...))
}

func (lg *Logger) Warn(text string) {
	lg.record(LevelWarn, "", text)
	if !lg.quiet {
		log.Warn(lg.prefix("") + text)
	}
}

func (lg *Logger) Warnf(format string, args ...any) {
	lg.Warn(fmt.Sprintf(format, args...))
}

func (lg *Logger) Error(text string) {
	lg.record(LevelError, "", text)
	if !lg.quiet {
		log.Error(lg.prefix("") + text)
	}
}

func (lg *Logger) Errorf(format string, args ...any) {
	lg.Error(fmt.Sprintf(format, args...))
}

// Warnw records a warning about one named item, e.g. an element or a flow.
func (lg *Logger) Warnw(subject string, format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	lg.record(LevelWarn, subject, text)
	if !lg.quiet {
		log.Warn(lg.prefix(subject) + text)
	}
}

// Errorw records an error about one named item.
func (lg *Logger) Errorw(subject string, format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	lg.record(LevelError, subject, text)
	if !lg.quiet {
		log.Error(lg.prefix(subject) + text)
	}
}
