package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpoClient_SendsPushPayload(t *testing.T) {
	var received Push
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewExpoClient(srv.URL)
	err := c.Send(context.Background(), Push{
		To:    "ExponentPushToken[abc]",
		Title: "Booking Confirmed",
		Body:  "Your appointment on 2026-04-20 at 10:00 AM has been booked!",
	})

	require.NoError(t, err)
	assert.Equal(t, "ExponentPushToken[abc]", received.To)
	// Sound defaults when the caller leaves it empty.
	assert.Equal(t, "default", received.Sound)
}

func TestExpoClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad token", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewExpoClient(srv.URL)
	err := c.Send(context.Background(), Push{To: "tok"})

	assert.ErrorContains(t, err, "400")
}
