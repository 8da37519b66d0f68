package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/razan-ali/petrolube-guardpass/internal/gate/entity"
	"github.com/razan-ali/petrolube-guardpass/internal/gate/repository"
	"github.com/razan-ali/petrolube-guardpass/internal/gate/service"
	"github.com/razan-ali/petrolube-guardpass/internal/gate/testutil"
)

func setupRequestHandlerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	svc := service.NewRequestService(repos)
	h := NewRequestHandler(svc)

	router.POST("/api/v1/requests", h.Submit)
	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/requests/pending", h.ListPending)
	api.GET("/requests/:id", h.Get)
	api.POST("/requests/:id/approve", h.Approve)
	api.POST("/requests/:id/reject", h.Reject)

	return router, db
}

func submissionBody() map[string]interface{} {
	return map[string]interface{}{
		"full_name":           "Ahmed Al-Omari",
		"id_number":           "2345678901",
		"nationality":         "Saudi",
		"company_name":        "Gulf Transport",
		"department_to_visit": entity.DepartmentShipping,
		"purpose_of_visit":    "Scheduled pickup",
	}
}

func TestSubmitEndpoint(t *testing.T) {
	router, _ := setupRequestHandlerTest(t)

	// Submission is public-facing, no token involved.
	w := testutil.DoRequest(router, "POST", "/api/v1/requests", submissionBody(), "")
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["status"] != entity.StatusPendingDepartment {
		t.Errorf("Expected pending_department, got %v", data["status"])
	}

	// Missing required fields hit the binding layer.
	w2 := testutil.DoRequest(router, "POST", "/api/v1/requests", map[string]interface{}{
		"full_name": "No Details",
	}, "")
	if w2.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w2.Code, w2.Body.String())
	}
	resp2 := testutil.ParseResponse(w2)
	if resp2["code"].(float64) != 40000 {
		t.Errorf("Expected code 40000, got %v", resp2["code"])
	}
}

func TestListPendingRequiresAuth(t *testing.T) {
	router, _ := setupRequestHandlerTest(t)

	w := testutil.DoRequest(router, "GET", "/api/v1/requests/pending", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 without token, got %d", w.Code)
	}

	w2 := testutil.DoRequest(router, "GET", "/api/v1/requests/pending", nil,
		testutil.DepartmentAdminToken(entity.DepartmentShipping))
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200 with token, got %d: %s", w2.Code, w2.Body.String())
	}
}

func TestApproveDispatchesByRole(t *testing.T) {
	router, db := setupRequestHandlerTest(t)

	request := testutil.SeedRequest(t, db, entity.DepartmentShipping, entity.StatusPendingDepartment)

	// Department admin advances pending_department -> pending_security.
	w := testutil.DoRequest(router, "POST", "/api/v1/requests/"+request.ID+"/approve",
		map[string]interface{}{"remarks": "ok"},
		testutil.DepartmentAdminToken(entity.DepartmentShipping))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["status"] != entity.StatusPendingSecurity {
		t.Errorf("Expected pending_security, got %v", data["status"])
	}

	// Security admin advances pending_security -> approved.
	w2 := testutil.DoRequest(router, "POST", "/api/v1/requests/"+request.ID+"/approve",
		nil, testutil.SecurityAdminToken())
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	data2 := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	if data2["status"] != entity.StatusApproved {
		t.Errorf("Expected approved, got %v", data2["status"])
	}

	// A third approve hits the terminal guard: 409 with code 40900.
	w3 := testutil.DoRequest(router, "POST", "/api/v1/requests/"+request.ID+"/approve",
		nil, testutil.SecurityAdminToken())
	if w3.Code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d: %s", w3.Code, w3.Body.String())
	}
	resp3 := testutil.ParseResponse(w3)
	if resp3["code"].(float64) != 40900 {
		t.Errorf("Expected code 40900, got %v", resp3["code"])
	}
}

func TestApproveForeignDepartmentIsForbidden(t *testing.T) {
	router, db := setupRequestHandlerTest(t)

	request := testutil.SeedRequest(t, db, entity.DepartmentShipping, entity.StatusPendingDepartment)

	w := testutil.DoRequest(router, "POST", "/api/v1/requests/"+request.ID+"/approve",
		nil, testutil.DepartmentAdminToken(entity.DepartmentLab))
	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["code"].(float64) != 40300 {
		t.Errorf("Expected code 40300, got %v", resp["code"])
	}
}

func TestRejectEndpoint(t *testing.T) {
	router, db := setupRequestHandlerTest(t)

	request := testutil.SeedRequest(t, db, entity.DepartmentShipping, entity.StatusPendingDepartment)

	// Reason is enforced at the binding layer.
	w := testutil.DoRequest(router, "POST", "/api/v1/requests/"+request.ID+"/reject",
		map[string]interface{}{}, testutil.DepartmentAdminToken(entity.DepartmentShipping))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 without reason, got %d", w.Code)
	}

	w2 := testutil.DoRequest(router, "POST", "/api/v1/requests/"+request.ID+"/reject",
		map[string]interface{}{"reason": "no appointment"},
		testutil.DepartmentAdminToken(entity.DepartmentShipping))
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	data := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	if data["status"] != entity.StatusRejected {
		t.Errorf("Expected rejected, got %v", data["status"])
	}
	if data["rejection_reason"] != "no appointment" {
		t.Errorf("Expected reason recorded, got %v", data["rejection_reason"])
	}
}

func TestGetUnknownRequestIs404(t *testing.T) {
	router, _ := setupRequestHandlerTest(t)

	w := testutil.DoRequest(router, "GET", "/api/v1/requests/no-such-id", nil,
		testutil.SecurityAdminToken())
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["code"].(float64) != 40400 {
		t.Errorf("Expected code 40400, got %v", resp["code"])
	}
}
