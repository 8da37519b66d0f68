package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/razan-ali/petrolube-guardpass/internal/gate/entity"
	"github.com/razan-ali/petrolube-guardpass/internal/middleware"
)

const JWTSecret = "guardpass-test-jwt-secret"

// SetupTestDB opens an isolated in-memory sqlite database with all tables
// migrated. Each test gets its own database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&entity.Profile{},
		&entity.VisitorRequest{},
		&entity.EntryExitLog{},
		&entity.DeliveryNote{},
		&entity.RequestDocument{},
		&entity.BlacklistEntry{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	})

	return db
}

// SetupRouter creates a gin test router.
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// AuthGroup creates an API group protected by the JWT middleware.
func AuthGroup(r *gin.Engine, path string) *gin.RouterGroup {
	return r.Group(path, middleware.JWTAuth(JWTSecret))
}

// GenerateTestToken creates a signed token with the given identity claims.
func GenerateTestToken(userID, name, email, role, department string) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":        userID,
		"uid":        userID,
		"name":       name,
		"email":      email,
		"role":       role,
		"department": department,
		"iss":        "guardpass-test",
		"iat":        now.Unix(),
		"exp":        now.Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(JWTSecret))
	return tokenString
}

// DepartmentAdminToken returns a token for a department admin.
func DepartmentAdminToken(department string) string {
	return GenerateTestToken(
		"dept-admin-001",
		"Dept Admin",
		"dept@test.com",
		entity.RoleDepartmentAdmin,
		department,
	)
}

// SecurityAdminToken returns a token for a security admin.
func SecurityAdminToken() string {
	return GenerateTestToken(
		"sec-admin-001",
		"Security Admin",
		"security@test.com",
		entity.RoleSecurityAdmin,
		"",
	)
}

// DoRequest executes an HTTP request against the test router.
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON response body into a map.
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedRequest inserts a visitor request in the given status.
func SeedRequest(t *testing.T, db *gorm.DB, department, status string) *entity.VisitorRequest {
	t.Helper()
	now := time.Now()
	req := &entity.VisitorRequest{
		ID:                uuid.NewString(),
		FullName:          "Test Visitor",
		IDNumber:          "1234567890",
		Nationality:       "Saudi",
		CompanyName:       "Test Transport Co",
		DepartmentToVisit: department,
		PurposeOfVisit:    "Scheduled delivery",
		PlantLocation:     entity.PlantLocationJeddah,
		Status:            status,
		SubmittedAt:       now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := db.Create(req).Error; err != nil {
		t.Fatalf("Failed to seed request: %v", err)
	}
	return req
}

// SeedTruckRequest inserts a request with a truck doing the given operation.
func SeedTruckRequest(t *testing.T, db *gorm.DB, department, status, operation string) *entity.VisitorRequest {
	t.Helper()
	req := SeedRequest(t, db, department, status)
	req.HasVehicle = true
	req.VehicleType = entity.VehicleTypeTruck
	req.PlateNumber = "TRK 1234"
	req.TruckOperation = operation
	if err := db.Save(req).Error; err != nil {
		t.Fatalf("Failed to update seeded request: %v", err)
	}
	return req
}

// SeedProfile inserts an admin profile.
func SeedProfile(t *testing.T, db *gorm.DB, id, email, role, department, passwordHash string) *entity.Profile {
	t.Helper()
	profile := &entity.Profile{
		ID:           id,
		Email:        email,
		FullName:     "Seeded Admin",
		Role:         role,
		Department:   department,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("Failed to seed profile: %v", err)
	}
	return profile
}
