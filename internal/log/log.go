// Package log initializes apex/log for the memocache command.
package log

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

// Init sets up apex with a single-line handler and a level from the
// MEMOCACHE_LOG env variable, falling back to the given default and then
// to "info".
func Init(level string) {
	if env := os.Getenv("MEMOCACHE_LOG"); env != "" {
		level = env
	}
	if level == "" {
		level = "info"
	}
	log.SetHandler(handler{})
	log.SetLevelFromString(strings.ToLower(level))
}

// handler writes one line per entry to stderr.
type handler struct{}

// HandleLog implements the log.Handler interface.
func (handler) HandleLog(e *log.Entry) error {
	ts := time.Now().Format("15:04:05.000")
	fmt.Fprintf(os.Stderr, "%s %-5s %s\n", ts, strings.ToUpper(e.Level.String()), e.Message)
	return nil
}
