package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/razan-ali/petrolube-guardpass/internal/gate/entity"
	"github.com/razan-ali/petrolube-guardpass/internal/gate/repository"
)

const overviewCacheTTL = 30 * time.Second

// Overview is the dashboard statistics projection.
type Overview struct {
	PendingCount  int64 `json:"pending_count"`
	ApprovedCount int64 `json:"approved_count"`
	RejectedCount int64 `json:"rejected_count"`
	EntriesToday  int64 `json:"entries_today"`
	ExitsToday    int64 `json:"exits_today"`
}

// StatsService aggregates request and entry/exit counts. Results are cached
// in redis for the dashboard poll hot path; a nil client disables caching.
type StatsService struct {
	repos  *repository.Repositories
	rdb    *redis.Client
	logger *zap.Logger
}

// NewStatsService creates a stats service.
func NewStatsService(repos *repository.Repositories, rdb *redis.Client, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{repos: repos, rdb: rdb, logger: logger}
}

func overviewCacheKey(scope string) string {
	if scope == "" {
		scope = "all"
	}
	return "guardpass:overview:" + scope
}

// GetOverview returns counts for the actor's scope: their department for
// department admins, facility-wide for security admins.
func (s *StatsService) GetOverview(ctx context.Context, actor Actor) (*Overview, error) {
	scope := actor.Scope()

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, overviewCacheKey(scope)).Bytes(); err == nil {
			var overview Overview
			if json.Unmarshal(cached, &overview) == nil {
				return &overview, nil
			}
		}
	}

	overview, err := s.computeOverview(ctx, scope)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(overview); err == nil {
			if err := s.rdb.Set(ctx, overviewCacheKey(scope), payload, overviewCacheTTL).Err(); err != nil {
				s.logger.Warn("Overview cache write failed", zap.Error(err))
			}
		}
	}
	return overview, nil
}

func (s *StatsService) computeOverview(ctx context.Context, scope string) (*Overview, error) {
	pending, err := s.repos.Request.CountByStatus(ctx, scope, entity.StatusPendingDepartment)
	if err != nil {
		return nil, fmt.Errorf("count pending: %w", err)
	}
	approved, err := s.repos.Request.CountByStatus(ctx, scope, entity.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("count approved: %w", err)
	}
	rejected, err := s.repos.Request.CountByStatus(ctx, scope, entity.StatusRejected)
	if err != nil {
		return nil, fmt.Errorf("count rejected: %w", err)
	}

	// Current calendar day in server time.
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	entries, err := s.repos.EntryLog.CountEntriesBetween(ctx, scope, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("count entries: %w", err)
	}
	exits, err := s.repos.EntryLog.CountExitsBetween(ctx, scope, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("count exits: %w", err)
	}

	return &Overview{
		PendingCount:  pending,
		ApprovedCount: approved,
		RejectedCount: rejected,
		EntriesToday:  entries,
		ExitsToday:    exits,
	}, nil
}

// Invalidate drops the cached overview for a department and the facility-wide
// entry. Called after every transition.
func (s *StatsService) Invalidate(department string) {
	if s.rdb == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.rdb.Del(ctx, overviewCacheKey(department), overviewCacheKey("")).Err(); err != nil {
		s.logger.Warn("Overview cache invalidation failed",
			zap.String("department", department), zap.Error(err))
	}
}
