package api

import (
	"context"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/history"
)

// DeviceStatus is a read-only snapshot of one fog device's load, copied
// out of the simulation core rather than referencing it.
type DeviceStatus struct {
	ID          string  `json:"id"`
	QueueLen    int     `json:"queue_len"`
	Executing   int     `json:"executing"`
	Utilization float64 `json:"utilization"`
}

// Status is the full published snapshot for one run in progress.
type Status struct {
	Policy  string         `json:"policy"`
	Tick    int            `json:"tick"`
	Ticks   int            `json:"ticks"`
	Devices []DeviceStatus `json:"devices"`
}

// Server publishes an atomically-swapped Status snapshot over HTTP. The
// simulation loop owns all writes via Publish; handlers only ever read,
// so no lock is needed on the hot tick path.
type Server struct {
	engine  *gin.Engine
	current atomic.Value // holds Status
	httpSrv *http.Server
	history *history.Store
}

func NewServer() *Server {
	s := &Server{}
	s.current.Store(Status{})
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET("/api/v1/health", s.handleHealth)
	r.GET("/api/v1/status", s.handleStatus)
	r.GET("/api/v1/history", s.handleHistory)
	r.NoRoute(s.handleNotFound)
	s.engine = r
	return s
}

// SetHistory wires a history store so /api/v1/history can serve past runs
// alongside the in-progress status. Optional: without it, the route
// reports an empty-history error rather than panicking.
func (s *Server) SetHistory(store *history.Store) {
	s.history = store
}

// Publish replaces the visible snapshot. Safe to call from the simulation
// loop's goroutine while handlers run concurrently on others.
func (s *Server) Publish(st Status) {
	s.current.Store(st)
}

func (s *Server) handleHealth(c *gin.Context) {
	Success(c, gin.H{"status": "up"})
}

func (s *Server) handleStatus(c *gin.Context) {
	Success(c, s.current.Load().(Status))
}

func (s *Server) handleHistory(c *gin.Context) {
	if s.history == nil {
		Error(c, http.StatusNotFound, "no history store configured for this run")
		return
	}
	n := 20
	if raw := c.Query("n"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			n = parsed
		}
	}
	records, err := s.history.Recent(n)
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	Success(c, records)
}

func (s *Server) handleNotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "no such route")
}

// Start runs the server in the background and returns immediately. Call
// Shutdown to stop it cleanly.
func (s *Server) Start(addr string) {
	s.httpSrv = &http.Server{Addr: addr, Handler: s.engine}
	go func() {
		_ = s.httpSrv.ListenAndServe()
	}()
}

// Shutdown gives in-flight requests up to the given timeout to finish.
func (s *Server) Shutdown(timeout time.Duration) error {
	if s.httpSrv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpSrv.Shutdown(ctx)
}
