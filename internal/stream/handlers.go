package stream

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes mounts the watch socket. Each connection follows exactly
// one live session and receives its points as they arrive.
func RegisterRoutes(r fiber.Router, hub *Hub) {
	r.Get("/live/sessions/:id/ws", websocket.New(func(c *websocket.Conn) {
		sessionID := c.Params("id")
		w := hub.Register(sessionID)
		defer hub.Unregister(w)

		done := make(chan struct{})
		go func() {
			for msg := range w.Send {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					break
				}
			}
			close(done)
		}()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
		<-done
	}))
}
