// Package log is a minimal leveled key-value logger over the standard
// library, shared by the library packages and the shell.
package log

import (
	"fmt"
	stdlog "log"
	"os"
	"strings"
	"sync"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

var (
	mu       sync.Mutex
	logger   = stdlog.New(os.Stderr, "", stdlog.LstdFlags)
	minLevel = LevelInfo
)

func SetLevel(l Level) {
	mu.Lock()
	minLevel = l
	mu.Unlock()
}

func Debug(msg string, kv ...any) {
	write(LevelDebug, msg, kv...)
}

func Info(msg string, kv ...any) {
	write(LevelInfo, msg, kv...)
}

func Error(msg string, err error, kv ...any) {
	write(LevelError, msg, append([]any{"err", err}, kv...)...)
}

func write(level Level, msg string, kv ...any) {
	mu.Lock()
	defer mu.Unlock()
	if level < minLevel {
		return
	}

	var b strings.Builder
	b.WriteString("[" + level.String() + "] " + msg)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		b.WriteString(" " + key + "=" + fmt.Sprint(kv[i+1]))
	}
	logger.Println(b.String())
}
