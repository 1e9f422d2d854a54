// Package sim implements a self-contained backend simulator: the same REST
// and push surface the real backend exposes, backed by in-memory state.
// It exists so the watcher can be exercised end to end without a live
// deployment.
package sim

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/nexwatch/nexwatch/pkg/state"
)

const (
	// DefaultTaskDuration is how long a submitted task runs before the
	// simulator completes it.
	DefaultTaskDuration = 3 * time.Second

	// taskListLimit caps GET /tasks, newest first.
	taskListLimit = 50

	// logHistoryLimit caps the in-memory log history.
	logHistoryLimit = 1000
)

// Option configures a Server.
type Option func(*Server)

// WithTaskDuration overrides how long simulated tasks run.
func WithTaskDuration(d time.Duration) Option {
	return func(s *Server) {
		s.taskDuration = d
	}
}

// Server is the backend simulator. All state lives in memory behind one
// mutex; the push hub mirrors every state change to subscribers.
type Server struct {
	router       *gin.Engine
	hub          *Hub
	upgrader     websocket.Upgrader
	taskDuration time.Duration

	mu          sync.Mutex
	running     bool
	startedAt   time.Time
	nextID      int64
	tasks       []state.Task // newest first
	logs        []state.LogEntry
	activeTasks map[int64]string
}

// NewServer creates a simulator with empty state.
func NewServer(opts ...Option) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		hub:          NewHub(),
		taskDuration: DefaultTaskDuration,
		activeTasks:  make(map[int64]string),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", s.handleRoot)
	r.GET("/status", s.handleStatus)
	r.GET("/tasks", s.handleTasks)
	r.GET("/logs", s.handleLogs)
	r.POST("/start", s.handleStart)
	r.POST("/stop", s.handleStop)
	r.POST("/tasks", s.handleSubmit)
	r.GET("/ws", s.handleWS)

	s.router = r
	return s
}

// Router exposes the HTTP handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// ListenAndServe runs the simulator until ctx is cancelled, then shuts the
// listener down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()

	log.Infof("Simulator listening on %s", addr)

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "nexwatch simulator running"})
}

func (s *Server) handleStatus(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := state.SystemStatus{
		Status:       state.SystemStopped,
		ActiveAgents: len(s.activeTasks),
	}
	if s.running {
		status.Status = state.SystemRunning
		status.Uptime = time.Since(s.startedAt).Seconds()
	}
	for _, t := range s.tasks {
		if t.Status == state.TaskCompleted {
			status.TasksCompleted++
		}
	}
	for _, name := range s.activeTasks {
		status.CurrentTask = name
		break
	}

	c.JSON(http.StatusOK, status)
}

// handleTasks returns the newest tasks first, as a bare array.
func (s *Server) handleTasks(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.tasks)
	if n > taskListLimit {
		n = taskListLimit
	}
	out := make([]state.Task, n)
	copy(out, s.tasks[:n])

	c.JSON(http.StatusOK, out)
}

// handleLogs returns recent logs most recent first, as a bare array.
func (s *Server) handleLogs(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		limit = 100
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if limit > len(s.logs) {
		limit = len(s.logs)
	}
	out := make([]state.LogEntry, limit)
	for i := 0; i < limit; i++ {
		out[i] = s.logs[len(s.logs)-1-i]
	}

	c.JSON(http.StatusOK, out)
}

func (s *Server) handleStart(c *gin.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		c.JSON(http.StatusOK, gin.H{"message": "system already running"})
		return
	}
	s.running = true
	s.startedAt = time.Now()
	s.mu.Unlock()

	s.logf(state.LevelInfo, "System started")
	c.JSON(http.StatusOK, gin.H{"message": "system started"})
}

func (s *Server) handleStop(c *gin.Context) {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	s.logf(state.LevelInfo, "System stopped")
	c.JSON(http.StatusOK, gin.H{"message": "system stopped"})
}

type submitRequest struct {
	Task string `json:"task"`
	Mode string `json:"mode"`
}

func (s *Server) handleSubmit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Task) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task must not be empty"})
		return
	}
	if req.Mode == "" {
		req.Mode = "auto"
	}

	now := time.Now().UTC().Format(time.RFC3339)

	s.mu.Lock()
	s.nextID++
	task := state.Task{
		ID:        s.nextID,
		Name:      req.Task,
		Status:    state.TaskRunning,
		CreatedAt: now,
	}
	s.tasks = append([]state.Task{task}, s.tasks...)
	s.activeTasks[task.ID] = task.Name
	s.mu.Unlock()

	s.logf(state.LevelInfo, "Task created: %s (mode %s)", req.Task, req.Mode)
	s.hub.Broadcast(gin.H{
		"type":      "task_started",
		"task_id":   strconv.FormatInt(task.ID, 10),
		"task":      task.Name,
		"timestamp": now,
	})

	time.AfterFunc(s.taskDuration, func() { s.completeTask(task.ID) })

	c.JSON(http.StatusOK, gin.H{"task_id": task.ID, "status": "started"})
}

// completeTask moves a task to its terminal state and broadcasts the
// lifecycle frame.
func (s *Server) completeTask(id int64) {
	now := time.Now().UTC().Format(time.RFC3339)

	s.mu.Lock()
	var name string
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Status = state.TaskCompleted
			s.tasks[i].CompletedAt = now
			name = s.tasks[i].Name
			break
		}
	}
	delete(s.activeTasks, id)
	s.mu.Unlock()

	if name == "" {
		return
	}

	s.logf(state.LevelInfo, "Task completed: %s", name)
	s.hub.Broadcast(gin.H{
		"type":      "task_completed",
		"task_id":   strconv.FormatInt(id, 10),
		"result":    fmt.Sprintf("%s finished", name),
		"timestamp": now,
	})
}

func (s *Server) handleWS(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warnf("Push upgrade failed: %v", err)
		return
	}

	s.hub.Add(conn)
	conn.WriteJSON(gin.H{
		"type":      "connected",
		"message":   "connected to simulator",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})

	// Drain client messages until the connection drops.
	go func() {
		defer func() {
			s.hub.Remove(conn)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// logf records a log entry and broadcasts it as a push frame.
func (s *Server) logf(level state.LogLevel, format string, args ...interface{}) {
	entry := state.LogEntry{
		Level:     level,
		Message:   fmt.Sprintf(format, args...),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	s.mu.Lock()
	s.logs = append(s.logs, entry)
	if len(s.logs) > logHistoryLimit {
		s.logs = s.logs[len(s.logs)-logHistoryLimit:]
	}
	s.mu.Unlock()

	s.hub.Broadcast(gin.H{
		"type":      "log",
		"level":     entry.Level,
		"message":   entry.Message,
		"timestamp": entry.Timestamp,
	})
}
