package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

// Init installs the line handler on stdout and sets the level. An empty
// level falls back to OBJECTCACHE_LOG, then to "info".
func Init(level string) error {
	if level == "" {
		level = os.Getenv("OBJECTCACHE_LOG")
	}
	if level == "" {
		level = "info"
	}
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.SetHandler(NewHandler(os.Stdout))
	log.SetLevel(lvl)
	return nil
}

// Handler writes one line per entry: timestamp, level initial, message,
// then fields sorted by name.
type Handler struct {
	mu sync.Mutex
	w  io.Writer
}

func NewHandler(w io.Writer) *Handler {
	return &Handler{w: w}
}

// HandleLog implements the log.Handler interface
func (h *Handler) HandleLog(e *log.Entry) error {
	names := e.Fields.Names()
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %.1s %s", e.Timestamp.Format(time.DateTime), strings.ToUpper(e.Level.String()), e.Message)
	for _, name := range names {
		fmt.Fprintf(&b, " %s=%v", name, e.Fields.Get(name))
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}
