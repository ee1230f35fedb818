package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/swiftpay/wallet-backend/internal/notify"
)

type EventsHandler struct {
	Broker notify.Broker
}

func NewEventsHandler(b notify.Broker) *EventsHandler {
	return &EventsHandler{Broker: b}
}

// Stream pushes balance-changed events to the client as server-sent
// events until the client goes away.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	events, cancel := h.Broker.Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			buf, err := json.Marshal(e)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: balanceUpdate\ndata: %s\n\n", buf)
			flusher.Flush()
		}
	}
}
