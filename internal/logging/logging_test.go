package logging

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf)

	e := &log.Entry{
		Level:     log.WarnLevel,
		Message:   "cacher expired",
		Timestamp: time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC),
		Fields:    log.Fields{"cacher": "lookups", "error": errors.New("boom"), "count": 3},
	}
	require.NoError(t, h.HandleLog(e))
	assert.Equal(t, "2025-03-10 08:30:00 W cacher expired cacher=lookups count=3 error=boom\n", buf.String())
}

func TestInit_Levels(t *testing.T) {
	t.Setenv("OBJECTCACHE_LOG", "")
	require.NoError(t, Init("DEBUG"))
	require.NoError(t, Init(""))
	assert.Error(t, Init("chatty"))

	t.Setenv("OBJECTCACHE_LOG", "warn")
	require.NoError(t, Init(""))
}
