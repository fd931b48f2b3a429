package logger

import (
	"bytes"
	"testing"

	kitlog "github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
)

func TestKitLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewKitLogger(kitlog.NewLogfmtLogger(&buf))

	t.Run("Printf logs at info level", func(t *testing.T) {
		buf.Reset()
		log.Printf("hello %s", "world")
		assert.Contains(t, buf.String(), "level=info")
		assert.Contains(t, buf.String(), "msg=\"hello world\"")
	})

	t.Run("Warnf logs at warn level", func(t *testing.T) {
		buf.Reset()
		log.Warnf("disk %d%% full", 91)
		assert.Contains(t, buf.String(), "level=warn")
		assert.Contains(t, buf.String(), "disk 91% full")
	})

	t.Run("Errorf logs at error level", func(t *testing.T) {
		buf.Reset()
		log.Errorf("boom")
		assert.Contains(t, buf.String(), "level=error")
		assert.Contains(t, buf.String(), "msg=boom")
	})
}
