package log

import (
	_log "log"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/gookit/color"
)

type Log struct {
	*_log.Logger

	DEBUG bool

	mu       sync.RWMutex // ensures atomic writes; protects the following fields
	prefix   string
	enabled  []*regexp.Regexp
	disabled []*regexp.Regexp
}

// NewLog returns a logger for namespace. Debug output is enabled when the
// DEBUG environment variable lists a matching pattern, e.g.
// DEBUG="engine:*,-engine:compression".
func NewLog(prefix string) *Log {
	l := &Log{
		Logger: _log.New(os.Stderr, "", 0),
		DEBUG:  false,
	}

	if prefix != "" {
		l.SetPrefix(prefix)
	}

	l.parseNamespaces(os.Getenv("DEBUG"))
	return l
}

func (d *Log) parseNamespaces(debug string) {
	for _, ns := range strings.FieldsFunc(debug, func(r rune) bool { return r == ',' || r == ' ' }) {
		disable := strings.HasPrefix(ns, "-")
		ns = strings.TrimPrefix(ns, "-")
		if ns == "" {
			continue
		}
		re := regexp.MustCompile("^" + strings.ReplaceAll(regexp.QuoteMeta(ns), `\*`, `.*`) + "$")
		if disable {
			d.disabled = append(d.disabled, re)
		} else {
			d.enabled = append(d.enabled, re)
		}
	}
}

func (d *Log) checkNamespace(namespace string) bool {
	for _, re := range d.disabled {
		if re.MatchString(namespace) {
			return false
		}
	}
	for _, re := range d.enabled {
		if re.MatchString(namespace) {
			return true
		}
	}
	return false
}

// Enabled reports whether Debug writes anything.
func (d *Log) Enabled() bool {
	return d.DEBUG || d.checkNamespace(d.Prefix())
}

// Console log Println.
func (d *Log) Println(message string, args ...any) {
	d.Logger.Println(color.Sprintf(message, args...))
}

// Console log Info.
func (d *Log) Info(message string, args ...any) {
	d.Logger.Println(color.Info.Sprintf(message, args...))
}

// Console Debug Debug.
func (d *Log) Debug(message string, args ...any) {
	if d.Enabled() {
		d.Logger.Println(color.Debug.Sprintf(message, args...))
	}
}

// Console log Success.
func (d *Log) Success(message string, args ...any) {
	d.Logger.Println(color.Success.Sprintf(message, args...))
}

// Console log Error.
func (d *Log) Error(message string, args ...any) {
	d.Logger.Println(color.Danger.Sprintf(message, args...))
}

// Console log Warning.
func (d *Log) Warning(message string, args ...any) {
	d.Logger.Println(color.Warn.Sprintf(message, args...))
}

// Console log Fatal.
func (d *Log) Fatal(message string, args ...any) {
	d.Logger.Fatal(color.Error.Sprintf(message, args...))
}

// Prefix returns the output prefix for the logger.
func (d *Log) Prefix() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.prefix
}

// SetPrefix sets the output prefix for the logger.
func (d *Log) SetPrefix(prefix string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.prefix = prefix

	d.Logger.SetPrefix(prefix + " ")
}
