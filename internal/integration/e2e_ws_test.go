package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpserver "taskhub/internal/http"
	"taskhub/internal/http/handlers"
	"taskhub/internal/repository"
	"taskhub/internal/service"
	"taskhub/internal/storage"
	"taskhub/internal/view"
	"taskhub/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func newBoardServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	store := storage.NewMemory()
	board := service.NewBoard()
	ctrl := service.NewTaskController(repository.NewTaskModel(store, "mvc_sim_tasks"), board, service.ControllerOptions{})
	if _, err := ctrl.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	hub := ws.NewHub(board)
	hub.Start(ctx)

	r := httpserver.NewEngine("")
	httpserver.RegisterTaskRoutes(r, httpserver.TaskRoutes{
		Tasks:  handlers.NewTaskHandler(ctrl, view.NewDeleteConfirmation(service.NewConfirmIssuer("e2e", time.Minute), ctrl)),
		Health: handlers.NewHealthHandler(store, "memory", "test"),
		Hub:    hub,
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func readFeed(t *testing.T, conn *websocket.Conn) ws.TasksPayload {
	t.Helper()
	for {
		conn.SetReadDeadline(time.Now().Add(3 * time.Second))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var p ws.TasksPayload
		if err := json.Unmarshal(msg, &p); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if p.Type == ws.MsgTasks {
			return p
		}
	}
}

func TestE2E_BoardFeed(t *testing.T) {
	srv := newBoardServer(t)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if first := readFeed(t, conn); first.Count != 0 {
		t.Fatalf("initial snapshot=%#v", first)
	}

	post := func(title string) {
		body, _ := json.Marshal(map[string]string{"title": title})
		resp, err := http.Post(srv.URL+"/api/tasks", "application/json", bytes.NewReader(body))
		if err != nil {
			t.Fatalf("post: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("post status=%d", resp.StatusCode)
		}
	}

	post("Write spec")
	if got := readFeed(t, conn); got.Count != 1 || got.Tasks[0].Title != "Write spec" {
		t.Fatalf("after first add=%#v", got)
	}

	post("Review spec")
	got := readFeed(t, conn)
	if got.Count != 2 || got.Tasks[0].Title != "Review spec" {
		t.Fatalf("after second add=%#v", got)
	}
}

func TestE2E_HealthAndMetrics(t *testing.T) {
	srv := newBoardServer(t)

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("get %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s status=%d", path, resp.StatusCode)
		}
	}
}
