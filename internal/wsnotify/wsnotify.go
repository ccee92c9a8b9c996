package wsnotify

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	EventImportCompleted = "import_completed"
	EventUploadDeleted   = "upload_deleted"
	EventUploadRenamed   = "upload_renamed"
)

type WebSocketManager struct {
	clients map[*websocket.Conn]bool
	lock    sync.RWMutex
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func Upgrader() *websocket.Upgrader {
	return &upgrader
}

var Manager = NewManager()

func NewManager() *WebSocketManager {
	return &WebSocketManager{clients: make(map[*websocket.Conn]bool)}
}

func (m *WebSocketManager) AddClient(conn *websocket.Conn) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.clients[conn] = true
}

func (m *WebSocketManager) RemoveClient(conn *websocket.Conn) {
	m.lock.Lock()
	defer m.lock.Unlock()
	delete(m.clients, conn)
}

func (m *WebSocketManager) ClientCount() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return len(m.clients)
}

// Broadcast writes event to every client. A connection allows one writer
// at a time, so writes happen under the exclusive lock.
func (m *WebSocketManager) Broadcast(event interface{}) {
	m.lock.Lock()
	defer m.lock.Unlock()
	for client := range m.clients {
		client.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := client.WriteJSON(event); err != nil {
			client.Close()
			delete(m.clients, client)
		}
	}
}

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	SentAt  string      `json:"sentAt"`
}

// Publish broadcasts an event of the given type to every connected client.
func (m *WebSocketManager) Publish(eventType string, payload interface{}) {
	m.Broadcast(Event{
		Type:    eventType,
		Payload: payload,
		SentAt:  time.Now().UTC().Format(time.RFC3339Nano),
	})
}

type ImportPayload struct {
	UploadID     int64  `json:"uploadId"`
	UploadName   string `json:"uploadName"`
	Table        string `json:"table"`
	ImportedRows int    `json:"importedRows"`
}

type UploadPayload struct {
	UploadID       int64  `json:"uploadId"`
	UploadName     string `json:"uploadName,omitempty"`
	RemovedRecords int64  `json:"removedRecords,omitempty"`
}
