package main

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/coder/websocket"

	"github.com/Edward-VS/Kerkers-sub000/internal/protocol"
	"github.com/Edward-VS/Kerkers-sub000/internal/web/views"
	"github.com/Edward-VS/Kerkers-sub000/internal/ws"
)

// newMux wires the viewer page, the JSON snapshot and the patch stream.
func newMux(engine DungeonEngine, hub *ws.Hub, handlers *IntentHandlers, sequence *SequenceGeneratorImpl, logger Logger) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := views.IndexPage(engine.Snapshot()).Render(r.Context(), w); err != nil {
			logger.Printf("render index: %v", err)
		}
	})

	mux.HandleFunc("GET /snapshot", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(engine.Snapshot()); err != nil {
			logger.Printf("encode snapshot: %v", err)
		}
	})

	mux.HandleFunc("/stream", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			return
		}

		hello, err := marshalPatch(sequence.Current(), protocol.PatchSnapshot, engine.Snapshot())
		if err != nil {
			logger.Printf("failed to marshal snapshot: %v", err)
			_ = conn.Close(websocket.StatusInternalError, "")
			return
		}
		if err := conn.Write(r.Context(), websocket.MessageText, hello); err != nil {
			return
		}
		hub.Add(conn)

		go func(c *websocket.Conn) {
			defer hub.Remove(c)
			defer c.Close(websocket.StatusNormalClosure, "")
			for {
				_, data, err := c.Read(context.Background())
				if err != nil {
					return
				}
				var env protocol.IntentEnvelope
				if err := json.Unmarshal(data, &env); err != nil {
					logger.Printf("ignoring malformed intent: %v", err)
					continue
				}
				_ = handlers.Handle(env)
			}
		}(conn)
	})

	return mux
}
