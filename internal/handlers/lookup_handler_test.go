package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"objectcache/internal/models"
	"objectcache/internal/realtime"
)

func TestLookupLifecycle(t *testing.T) {
	f := newFixture(t)
	client := &recordingClient{}
	f.hub.Register(client)

	w := f.do(t, http.MethodGet, "/api/lookups/country/BR", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodPut, "/api/lookups/country/BR", map[string]string{"label": "Brazil"})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, "/api/lookups/country/BR", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Lookup
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, "Brazil", got.Label)

	store, ok := f.manager.Lookup(f.lookups.CacherID())
	require.True(t, ok)
	require.Equal(t, 1, store.Size())

	w = f.do(t, http.MethodDelete, "/api/lookups/country/BR", nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, 0, store.Size())

	w = f.do(t, http.MethodDelete, "/api/lookups/country/BR", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	require.Len(t, client.events, 2)
	require.Equal(t, realtime.EventLookupSaved, client.events[0].Type)
	require.Equal(t, "country/BR", client.events[0].Key)
	require.Equal(t, realtime.EventLookupDeleted, client.events[1].Type)
}

func TestSaveLookup_RequiresLabel(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodPut, "/api/lookups/country/BR", map[string]string{"description": "no label"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
