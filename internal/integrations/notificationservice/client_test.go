package notificationservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Send(t *testing.T) {
	var got Notification
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/internal/notifications", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	err := client.Send(context.Background(), Notification{
		Kind:        KindUpdate,
		Reservation: Reservation{ID: 7, Date: "2025-03-12", StartTime: "10:00", EndTime: "11:00"},
		Changes:     []Change{{Field: "time", Before: "09:00", After: "10:00"}},
	})
	require.NoError(t, err)

	assert.Equal(t, KindUpdate, got.Kind)
	assert.Equal(t, int64(7), got.Reservation.ID)
	require.Len(t, got.Changes, 1)
	assert.Equal(t, "time", got.Changes[0].Field)
}

func TestClient_Send_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad payload", http.StatusBadRequest)
	}))
	defer server.Close()

	err := NewClient(server.URL, time.Second).Send(context.Background(), Notification{Kind: KindConfirmation})
	assert.ErrorIs(t, err, ErrRejected)
}

func TestClient_Send_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	err := NewClient(url, 100*time.Millisecond).Send(context.Background(), Notification{Kind: KindConfirmation})
	assert.ErrorIs(t, err, ErrInternal)
}
