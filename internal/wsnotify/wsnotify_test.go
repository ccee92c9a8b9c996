package wsnotify

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesConnectedClients(t *testing.T) {
	manager := NewManager()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := Upgrader().Upgrade(w, r, nil)
		if err != nil {
			return
		}
		manager.AddClient(conn)
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return manager.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	manager.Publish(EventUploadRenamed, UploadPayload{UploadID: 5, UploadName: "Autumn"})

	var event struct {
		Type    string        `json:"type"`
		Payload UploadPayload `json:"payload"`
	}
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, EventUploadRenamed, event.Type)
	assert.Equal(t, int64(5), event.Payload.UploadID)
	assert.Equal(t, "Autumn", event.Payload.UploadName)
}

func TestPublishFromConcurrentRequests(t *testing.T) {
	manager := NewManager()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := Upgrader().Upgrade(w, r, nil)
		if err != nil {
			return
		}
		manager.AddClient(conn)
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return manager.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	const publishers, perPublisher = 20, 25
	received := make(chan int, 1)
	go func() {
		n := 0
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		for n < publishers*perPublisher {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
			n++
		}
		received <- n
	}()

	var wg sync.WaitGroup
	for i := 0; i < publishers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < perPublisher; j++ {
				manager.Publish(EventImportCompleted, ImportPayload{UploadID: int64(i), ImportedRows: j})
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, publishers*perPublisher, <-received)
	assert.Equal(t, 1, manager.ClientCount())
}
