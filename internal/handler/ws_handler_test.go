package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"msgboard/internal/app/board"
)

func TestFeedRejectsMissingToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(Router(newTestDeps(t)))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/feed"

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.Nil(t, conn)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestFeedDeliversPostedMessages(t *testing.T) {
	t.Parallel()

	deps := newTestDeps(t)
	server := httptest.NewServer(Router(deps))
	defer server.Close()

	sess, customErr := deps.Sessions.IssueGuest(context.Background())
	require.Nil(t, customErr)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/feed?token=" + sess.Token

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	// Give the server side a moment to register the subscriber with the hub.
	time.Sleep(100 * time.Millisecond)

	body, err := json.Marshal(map[string]any{"text": "hello feed"})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/protected/messages", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+sess.Token)

	postResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer postResp.Body.Close()
	require.Equal(t, http.StatusOK, postResp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg board.Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	require.Equal(t, "hello feed", msg.Text)
	require.Equal(t, "Guest", msg.Username)
}
