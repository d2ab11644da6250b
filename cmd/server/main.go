package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/coder/websocket"

	"github.com/suburbsim/street-layout-engine/internal/config"
	"github.com/suburbsim/street-layout-engine/internal/protocol"
	"github.com/suburbsim/street-layout-engine/internal/web/views"
	"github.com/suburbsim/street-layout-engine/internal/ws"
)

func loadStreet() *config.Street {
	path := os.Getenv("STREET_CONFIG")
	if path == "" {
		log.Printf("STREET_CONFIG not set, using the built-in dev street")
		return config.DevStreet()
	}
	street, err := config.Load(path)
	if err != nil {
		log.Fatalf("load street config: %v", err)
	}
	return street
}

func main() {
	StartProfiling(GetProfilingConfigFromEnv())

	street := loadStreet()
	engine, err := NewEngine(street)
	if err != nil {
		log.Fatalf("generate street: %v", err)
	}
	if interval, err := time.ParseDuration(os.Getenv("METRICS_INTERVAL")); err == nil {
		StartMetricsReporting(engine.Metrics(), interval)
	}

	hub := ws.NewHub()
	sequence := NewSequenceGenerator()
	broadcaster := NewBroadcaster(hub, sequence)
	handlers := NewHandlers(engine, broadcaster, NewLogger())

	mux := http.NewServeMux()

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			return
		}
		hub.Add(conn)

		hello, _ := json.Marshal(protocol.PatchEnvelope{
			Sequence: 0,
			Type:     "StreetSnapshot",
			Payload:  protocol.StreetSnapshot{Snapshot: engine.Snapshot()},
		})
		if err := hub.Send(conn, hello); err != nil {
			hub.Remove(conn)
			_ = conn.Close(websocket.StatusNormalClosure, "")
			return
		}

		go func(c *websocket.Conn) {
			defer hub.Remove(c)
			defer c.Close(websocket.StatusNormalClosure, "")
			for {
				_, data, err := c.Read(context.Background())
				if err != nil {
					return
				}
				if err := handlers.HandleWebSocketMessage(data); err != nil {
					log.Printf("intent failed: %v", err)
				}
			}
		}(conn)
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if err := views.IndexPage(engine.Snapshot()).Render(r.Context(), w); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("street %q: %d houses, listening on :%s", street.Seed, len(street.Houses), port)
	log.Fatal(http.ListenAndServe(":"+port, mux))
}
