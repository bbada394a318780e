package logger

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	mu  sync.RWMutex
	log = newLogger()
)

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&colorFormatter{})
	return l
}

// * SetLevel changes the minimum level that gets written
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()

	switch level {
	case LevelDebug:
		log.SetLevel(logrus.DebugLevel)
	case LevelWarn:
		log.SetLevel(logrus.WarnLevel)
	case LevelError:
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
}

// * UseJSON switches output to one JSON object per line
func UseJSON() {
	mu.Lock()
	defer mu.Unlock()
	log.SetFormatter(&logrus.JSONFormatter{})
}

// * Logger exposes the underlying logrus instance for components that want fields
func Logger() *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

func Debug(format string, args ...any) {
	Logger().Debugf(format, args...)
}

func Info(format string, args ...any) {
	Logger().Infof(format, args...)
}

func Warn(format string, args ...any) {
	Logger().Warnf(format, args...)
}

func Error(format string, args ...any) {
	Logger().Errorf(format, args...)
}

// * colorFormatter renders `TIME LEVEL message key=value` with a tinted level tag
type colorFormatter struct{}

var levelColors = map[logrus.Level]*color.Color{
	logrus.DebugLevel: color.New(color.FgCyan),
	logrus.InfoLevel:  color.New(color.FgGreen),
	logrus.WarnLevel:  color.New(color.FgYellow),
	logrus.ErrorLevel: color.New(color.FgRed, color.Bold),
	logrus.FatalLevel: color.New(color.FgRed, color.Bold),
	logrus.PanicLevel: color.New(color.FgRed, color.Bold),
}

func (f *colorFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	tag := strings.ToUpper(entry.Level.String())
	if c, ok := levelColors[entry.Level]; ok {
		tag = c.Sprintf("%-5s", tag)
	}

	fmt.Fprintf(&b, "%s %s %s", entry.Time.Format("2006-01-02 15:04:05"), tag, entry.Message)

	if len(entry.Data) > 0 {
		keys := make([]string, 0, len(entry.Data))
		for k := range entry.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
		}
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}
