package health

import (
	"context"
	"database/sql"
	"time"
)

// Service encapsulates health-related checks.
type Service struct {
	DB *sql.DB
}

// NewService constructs a new health service. db may be nil when the
// process runs on in-memory repositories.
func NewService(db *sql.DB) *Service {
	return &Service{DB: db}
}

// Status reports process health and database reachability.
func (s *Service) Status(ctx context.Context) (map[string]any, bool) {
	if s.DB == nil {
		return map[string]any{"ok": true, "database": "memory"}, true
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.DB.PingContext(pingCtx); err != nil {
		return map[string]any{"ok": false, "database": "unreachable"}, false
	}
	return map[string]any{"ok": true, "database": "ok"}, true
}
