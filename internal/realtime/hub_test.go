package realtime

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mu       sync.Mutex
	messages [][]byte
	fail     bool
}

func (f *fakeClient) Send(message []byte) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return false
	}
	f.messages = append(f.messages, message)
	return true
}

func (f *fakeClient) Close() {}

func TestHub_PublishToRegistered(t *testing.T) {
	h := NewHub()
	a, b, broken := &fakeClient{}, &fakeClient{}, &fakeClient{fail: true}
	h.Register(a)
	h.Register(b)
	h.Register(broken)
	require.Equal(t, 3, h.Len())

	h.Publish(Event{Type: EventCacherExpired, Cacher: "sessions", By: "admin"})

	require.Len(t, a.messages, 1)
	require.Len(t, b.messages, 1)

	var got Event
	require.NoError(t, json.Unmarshal(a.messages[0], &got))
	require.Equal(t, EventCacherExpired, got.Type)
	require.Equal(t, "sessions", got.Cacher)
	require.False(t, got.At.IsZero())

	h.Unregister(b)
	h.Publish(Event{Type: EventLookupDeleted, Key: "country/BR"})
	require.Len(t, a.messages, 2)
	require.Len(t, b.messages, 1)
	require.Equal(t, 2, h.Len())
}
