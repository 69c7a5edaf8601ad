package logging

import (
	"log"
	"strings"
	"sync/atomic"

	"github.com/example/menubridge/internal/protocol"
)

var debugEnabled atomic.Bool

// EnableDebug turns on verbose debug logging for the application lifecycle.
func EnableDebug() {
	debugEnabled.Store(true)
	log.Printf("[DEBUG] debug logging enabled")
}

// DebugEnabled reports whether debug logging is active.
func DebugEnabled() bool {
	return debugEnabled.Load()
}

// Debugf emits a formatted debug log message when debugging is enabled.
func Debugf(format string, args ...interface{}) {
	if !DebugEnabled() {
		return
	}
	log.Printf("[DEBUG] "+format, args...)
}

// LogInboundFrame emits details of a frame received over the bridge when
// debugging is enabled. Tokens are masked prior to logging.
func LogInboundFrame(f *protocol.Frame) {
	logFrame("<--", f)
}

// LogOutboundFrame emits details of a frame sent over the bridge when
// debugging is enabled. Tokens are masked prior to logging.
func LogOutboundFrame(f *protocol.Frame) {
	logFrame("-->", f)
}

func logFrame(direction string, f *protocol.Frame) {
	if !DebugEnabled() || f == nil {
		return
	}

	var b strings.Builder
	b.WriteString(f.Kind)
	if f.Method != "" {
		b.WriteString(" method=")
		b.WriteString(f.Method)
	}
	if f.Name != "" {
		b.WriteString(" name=")
		b.WriteString(f.Name)
	}
	if f.ID != "" {
		b.WriteString(" id=")
		b.WriteString(f.ID)
	}
	if f.Token != "" {
		b.WriteString(" token=")
		b.WriteString(MaskIdentifier(f.Token))
	}
	if f.Result != nil {
		b.WriteString(" result=")
		b.WriteString(boolWord(*f.Result))
	}
	if f.Handled != nil {
		b.WriteString(" handled=")
		b.WriteString(boolWord(*f.Handled))
	}
	if f.Error != "" {
		b.WriteString(" error=")
		b.WriteString(f.Error)
	}
	if len(f.Args) > 0 {
		b.WriteString(" args=")
		b.Write(f.Args)
	}
	if len(f.Payload) > 0 {
		b.WriteString(" payload=")
		b.Write(f.Payload)
	}

	log.Printf("[DEBUG] %s %s", direction, b.String())
}

func boolWord(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// MaskIdentifier obscures sensitive identifiers leaving only the last four characters visible.
func MaskIdentifier(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(trimmed)-4) + trimmed[len(trimmed)-4:]
}
