package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/serenitymassage/clinic-scheduler/internal/realtime"
)

const keepaliveInterval = 25 * time.Second

// EventsHandler streams row-change events to the dashboard over SSE. Each
// connection gets its own broker subscription; the stream ends when the
// client disconnects.
type EventsHandler struct {
	broker *realtime.Broker
}

func NewEventsHandler(broker *realtime.Broker) *EventsHandler {
	return &EventsHandler{broker: broker}
}

func (h *EventsHandler) Stream(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	ctx := c.Request.Context()
	events := h.broker.Subscribe(ctx)

	// Handshake so clients can tell an open stream from a hung request.
	fmt.Fprintf(c.Writer, "event: connected\ndata: {}\n\n")
	c.Writer.Flush()

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-keepalive.C:
			fmt.Fprint(w, ": keepalive\n\n")
			return true
		case ev, ok := <-events:
			if !ok {
				return false
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				return true
			}
			fmt.Fprintf(w, "event: change\ndata: %s\n\n", payload)
			return true
		}
	})
}
