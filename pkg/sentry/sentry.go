// Package sentry wraps the Sentry SDK with a small builder for
// attaching request context, tags and extras to captured events.
package sentry

import (
	"fmt"
	"os"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

// FlushTime bounds how long Fatal waits for pending events to drain.
var FlushTime = 2 * time.Second

// Sentry accumulates event properties before sending. Zero value is
// ready to use.
type Sentry struct {
	context       echo.Context
	error         error
	message       string
	level         sentrygo.Level
	extras        map[string]interface{}
	tags          map[string]string
	contextValues map[string]sentrygo.Context
}

func (s *Sentry) WithContext(c echo.Context) *Sentry {
	s.context = c
	return s
}

func (s *Sentry) WithError(err error) *Sentry {
	s.error = err
	return s
}

func (s *Sentry) WithMessage(message string) *Sentry {
	s.message = message
	return s
}

func (s *Sentry) WithLevel(level sentrygo.Level) *Sentry {
	s.level = level
	return s
}

func (s *Sentry) WithExtras(extras map[string]interface{}) *Sentry {
	s.extras = extras
	return s
}

func (s *Sentry) WithTags(tags map[string]string) *Sentry {
	s.tags = tags
	return s
}

func (s *Sentry) WithContextValues(contextValues map[string]sentrygo.Context) *Sentry {
	s.contextValues = contextValues
	return s
}

// WithContext creates a Sentry bound to the request context.
func WithContext(c echo.Context) *Sentry {
	return new(Sentry).WithContext(c)
}

// WithExtras creates a Sentry with the given extras.
func WithExtras(extras map[string]interface{}) *Sentry {
	return new(Sentry).WithExtras(extras)
}

// WithTags creates a Sentry with the given tags.
func WithTags(tags map[string]string) *Sentry {
	return new(Sentry).WithTags(tags)
}

// WithContextValues creates a Sentry with the given context values.
func WithContextValues(contextValues map[string]sentrygo.Context) *Sentry {
	return new(Sentry).WithContextValues(contextValues)
}

func (s *Sentry) Debug(message string) {
	s.WithMessage(message).WithLevel(sentrygo.LevelDebug).sendMessage()
}

func (s *Sentry) Debugf(format string, args ...interface{}) {
	s.Debug(fmt.Sprintf(format, args...))
}

func (s *Sentry) Info(message string) {
	s.WithMessage(message).WithLevel(sentrygo.LevelInfo).sendMessage()
}

func (s *Sentry) Infof(format string, args ...interface{}) {
	s.Info(fmt.Sprintf(format, args...))
}

func (s *Sentry) Warning(message string) {
	s.WithMessage(message).WithLevel(sentrygo.LevelWarning).sendMessage()
}

func (s *Sentry) Warningf(format string, args ...interface{}) {
	s.Warning(fmt.Sprintf(format, args...))
}

func (s *Sentry) Error(err error) {
	s.WithError(err).WithLevel(sentrygo.LevelError).sendError()
}

func (s *Sentry) Errorf(format string, args ...interface{}) {
	s.Error(fmt.Errorf(format, args...))
}

// Fatal sends the error and drains the queue; the decision to exit is
// left to the caller.
func (s *Sentry) Fatal(err error) {
	s.WithError(err).WithLevel(sentrygo.LevelFatal).sendError()
	sentrygo.Flush(FlushTime)
}

func (s *Sentry) Fatalf(format string, args ...interface{}) {
	s.Fatal(fmt.Errorf(format, args...))
}

// Standalone variants for call sites without a builder chain.

func Debug(message string) { new(Sentry).Debug(message) }

func Debugf(format string, args ...interface{}) { new(Sentry).Debugf(format, args...) }

func Info(message string) { new(Sentry).Info(message) }

func Infof(format string, args ...interface{}) { new(Sentry).Infof(format, args...) }

func Warning(message string) { new(Sentry).Warning(message) }

func Warningf(format string, args ...interface{}) { new(Sentry).Warningf(format, args...) }

func Error(err error) { new(Sentry).Error(err) }

func Errorf(format string, args ...interface{}) { new(Sentry).Errorf(format, args...) }

func Fatal(err error) { new(Sentry).Fatal(err) }

func Fatalf(format string, args ...interface{}) { new(Sentry).Fatalf(format, args...) }

func (s *Sentry) sendMessage() {
	if !enabled() {
		return
	}
	s.getHub().WithScope(func(scope *sentrygo.Scope) {
		s.configScope(scope)
		s.getHub().CaptureMessage(s.message)
	})
}

func (s *Sentry) sendError() {
	if !enabled() {
		return
	}
	s.getHub().WithScope(func(scope *sentrygo.Scope) {
		s.configScope(scope)
		s.getHub().CaptureException(s.error)
	})
}

// enabled reports whether events should actually be sent. Local runs
// and deployments without a DSN stay silent.
func enabled() bool {
	return os.Getenv("APP_ENV") != "local" && os.Getenv("SENTRY_DSN") != ""
}

// getHub prefers the request-scoped hub installed by the echo
// middleware and falls back to the global one.
func (s *Sentry) getHub() *sentrygo.Hub {
	if s.context != nil {
		if hub := sentryecho.GetHubFromContext(s.context); hub != nil {
			return hub
		}
	}
	return sentrygo.CurrentHub()
}

func (s *Sentry) configScope(scope *sentrygo.Scope) {
	scope.SetLevel(s.level)
	for key, value := range s.extras {
		scope.SetExtra(key, value)
	}
	for key, value := range s.tags {
		scope.SetTag(key, value)
	}
	for key, value := range s.contextValues {
		scope.SetContext(key, value)
	}
}
