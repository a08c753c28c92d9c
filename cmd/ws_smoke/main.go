package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

// ws_smoke connects to a running task board, adds a task over HTTP and prints
// what the feed pushes back.
func main() {
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	base := "127.0.0.1:" + port
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+base+"/ws", nil)
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	readMessage := func() map[string]any {
		conn.SetReadDeadline(time.Now().Add(3 * time.Second))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			log.Fatalf("read: %v", err)
		}
		var obj map[string]any
		_ = json.Unmarshal(msg, &obj)
		log.Printf("got: %s", string(msg))
		return obj
	}

	// drain ready + initial snapshot
	readMessage()
	readMessage()

	body, _ := json.Marshal(map[string]string{
		"title":       "smoke " + time.Now().Format(time.TimeOnly),
		"description": "created by ws_smoke",
	})
	resp, err := http.Post("http://"+base+"/api/tasks", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("create task: %v", err)
	}
	resp.Body.Close()
	fmt.Println("create status:", resp.Status)

	if obj := readMessage(); obj["type"] != "tasks" {
		log.Fatalf("expected tasks message, got %v", obj["type"])
	}

	log.Println("smoke test finished")
}
