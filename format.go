// FILE: format.go
package logship

import (
	"sort"
	"strconv"
	"time"

	"github.com/davecgh/go-spew/spew"
)

// serializer renders records for the console mirror. It is owned by the
// processor goroutine and reuses one buffer across records.
type consoleSerializer struct {
	buf []byte
}

func newConsoleSerializer() *consoleSerializer {
	return &consoleSerializer{
		buf: make([]byte, 0, 512),
	}
}

func (cs *consoleSerializer) reset() {
	cs.buf = cs.buf[:0]
}

// serialize formats one record as "timestamp LEVEL message key=value ...\n".
// Metadata keys are sorted for stable output.
func (cs *consoleSerializer) serialize(record Record) []byte {
	cs.reset()

	cs.buf = append(cs.buf, record.Timestamp.UTC().Format(time.RFC3339Nano)...)
	cs.buf = append(cs.buf, ' ')
	cs.buf = append(cs.buf, levelTag(record.Level)...)
	cs.buf = append(cs.buf, ' ')
	cs.buf = append(cs.buf, record.Message...)

	if len(record.Metadata) > 0 {
		keys := make([]string, 0, len(record.Metadata))
		for k := range record.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			cs.buf = append(cs.buf, ' ')
			cs.buf = append(cs.buf, k...)
			cs.buf = append(cs.buf, '=')
			cs.writeValue(record.Metadata[k])
		}
	}

	cs.buf = append(cs.buf, '\n')
	return cs.buf
}

// writeValue converts a metadata value to its console representation,
// falling back to go-spew for types without an explicit case.
func (cs *consoleSerializer) writeValue(v any) {
	switch val := v.(type) {
	case string:
		cs.buf = append(cs.buf, val...)
	case []byte:
		cs.buf = append(cs.buf, val...)
	case bool:
		cs.buf = strconv.AppendBool(cs.buf, val)
	case int:
		cs.buf = strconv.AppendInt(cs.buf, int64(val), 10)
	case int64:
		cs.buf = strconv.AppendInt(cs.buf, val, 10)
	case uint64:
		cs.buf = strconv.AppendUint(cs.buf, val, 10)
	case float64:
		cs.buf = strconv.AppendFloat(cs.buf, val, 'f', -1, 64)
	case time.Time:
		cs.buf = append(cs.buf, val.Format(time.RFC3339Nano)...)
	case error:
		cs.buf = append(cs.buf, val.Error()...)
	case nil:
		cs.buf = append(cs.buf, "nil"...)
	default:
		cs.buf = append(cs.buf, spew.Sprintf("%+v", val)...)
	}
}

// levelTag returns the console form of a level.
func levelTag(level int64) string {
	switch {
	case level <= LevelDebug:
		return "DEBUG"
	case level <= LevelInfo:
		return "INFO"
	case level <= LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

// echoToConsole mirrors a record to the configured console writer. Failures
// here are ignored; the console is a debug aid, not a delivery path.
func (s *Shipper) echoToConsole(record Record) {
	writer, ok := s.state.ConsoleWriter.Load().(*sink)
	if !ok || writer == nil {
		return
	}
	if s.console == nil {
		s.console = newConsoleSerializer()
	}
	_, _ = writer.w.Write(s.console.serialize(record))
}
