package handlers

import (
	"net/http"
	"sway-pr/internal/utils"
	"sway-pr/internal/wsnotify"
)

// @Summary Live notifications
// @Description WebSocket stream of import_completed, upload_deleted and upload_renamed events
// @Tags events
// @Router /api/ws [get]
func (h *HTTPHandler) WebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := wsnotify.Upgrader().Upgrade(w, r, nil)
	if err != nil {
		utils.LogWarning("websocket upgrade failed: %v", err)
		return
	}
	h.hub.AddClient(conn)
	defer func() {
		h.hub.RemoveClient(conn)
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
