package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/razan-ali/petrolube-guardpass/internal/config"
	"github.com/razan-ali/petrolube-guardpass/internal/gate/entity"
	"github.com/razan-ali/petrolube-guardpass/internal/gate/repository"
)

// Actor is the authenticated identity a transition runs as, resolved once
// per request from the token and threaded explicitly. Never read from
// ambient state.
type Actor struct {
	ID         string
	Role       string
	Department string
}

// IsDepartmentAdmin reports whether the actor is a department admin.
func (a Actor) IsDepartmentAdmin() bool {
	return a.Role == entity.RoleDepartmentAdmin
}

// IsSecurityAdmin reports whether the actor is a security admin.
func (a Actor) IsSecurityAdmin() bool {
	return a.Role == entity.RoleSecurityAdmin
}

// Scope returns the department filter this actor's queries carry: their own
// department for department admins, unscoped for security admins.
func (a Actor) Scope() string {
	if a.IsDepartmentAdmin() {
		return a.Department
	}
	return ""
}

// Services is the service collection.
type Services struct {
	Auth      *AuthService
	Request   *RequestService
	Log       *LogService
	Blacklist *BlacklistService
	Stats     *StatsService
	Report    *ReportService
}

// NewServices creates the service collection. rdb and minioClient may be nil
// (tests, degraded deployments); dependent features fall through gracefully.
func NewServices(repos *repository.Repositories, rdb *redis.Client, minioClient *minio.Client, cfg *config.Config, logger *zap.Logger) *Services {
	stats := NewStatsService(repos, rdb, logger)
	request := NewRequestService(repos)
	request.SetStatsService(stats)

	return &Services{
		Auth:      NewAuthService(repos.Profile, cfg.JWT),
		Request:   request,
		Log:       NewLogService(repos, minioClient, cfg.MinIO.Bucket),
		Blacklist: NewBlacklistService(repos.Blacklist),
		Stats:     stats,
		Report:    NewReportService(repos.EntryLog),
	}
}
