package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"cv-forge/internal/shared/server/respond"
)

// CheckFunc reports whether a dependency is reachable.
type CheckFunc func(ctx context.Context) error

// Service encapsulates health-related checks.
type Service struct {
	Timeout time.Duration
	checks  map[string]CheckFunc
}

// NewService constructs a new health service.
func NewService() *Service {
	return &Service{Timeout: 2 * time.Second, checks: make(map[string]CheckFunc)}
}

// Add registers a named readiness check.
func (s *Service) Add(name string, check CheckFunc) {
	s.checks[name] = check
}

// Status returns a simple liveness payload.
func (s *Service) Status() map[string]bool {
	return map[string]bool{"ok": true}
}

// Report holds the outcome of every readiness check.
type Report struct {
	OK     bool              `json:"ok"`
	Checks map[string]string `json:"checks"`
}

// Ready runs every check with the service timeout.
func (s *Service) Ready(ctx context.Context) Report {
	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	report := Report{OK: true, Checks: make(map[string]string, len(names))}
	for _, name := range names {
		checkCtx, cancel := context.WithTimeout(ctx, s.Timeout)
		err := s.checks[name](checkCtx)
		cancel()
		if err != nil {
			report.OK = false
			report.Checks[name] = err.Error()
			continue
		}
		report.Checks[name] = "ok"
	}
	return report
}

// RegisterRoutes mounts /ready.
func (s *Service) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ready", func(c *gin.Context) {
		report := s.Ready(c.Request.Context())
		status := http.StatusOK
		if !report.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, report)
	})
}
