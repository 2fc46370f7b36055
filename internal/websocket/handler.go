package websocket

import (
	"encoding/json"
	"log"
	"net/http"

	ws "github.com/coder/websocket"

	"github.com/dukerupert/mealbook/internal/model"
)

// HandleWebSocket returns an HTTP handler that upgrades connections to
// WebSocket and runs them as Hub clients. Each new client is primed with the
// current member snapshot before broadcasts start reaching it, so no
// subscriber is ever left without initial data.
func HandleWebSocket(hub *Hub, snapshot func() []model.Member) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			InsecureSkipVerify: true, // Allow connections from any origin (household LAN)
		})
		if err != nil {
			log.Printf("websocket: accept: %v", err)
			return
		}

		client := NewClient(hub, conn)

		if data, err := json.Marshal(MembersMessage(snapshot())); err == nil {
			client.enqueue(data)
		}

		client.Run(r.Context())
	}
}
