package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"coparent/db"
	"coparent/models"

	"github.com/gin-gonic/gin"
)

func setupAdminRouter(t *testing.T) *gin.Engine {
	t.Helper()
	router := setupTestRouter(t)
	admin := models.User{Name: "Root", Email: "root@x.com", Role: models.RoleAdmin}
	router.GET("/admin/:resource", func(c *gin.Context) { AdminList(c, &admin) })
	router.PUT("/admin/:resource/:id", func(c *gin.Context) { AdminUpdate(c, &admin) })
	return router
}

func putJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshalling payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAdminUpdateIgnoresBodyID(t *testing.T) {
	router := setupAdminRouter(t)
	users := []models.User{
		{Name: "One", Email: "one@x.com", Role: models.RoleParent},
		{Name: "Two", Email: "two@x.com", Role: models.RoleParent},
	}
	for i := range users {
		if err := db.Instance.Create(&users[i]).Error; err != nil {
			t.Fatalf("creating user: %v", err)
		}
	}

	// The body names another user's id; only the row from the URL may change
	w := putJSON(t, router, fmt.Sprintf("/admin/users/%d", users[0].ID), map[string]interface{}{
		"id":   users[1].ID,
		"name": "Renamed",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	body := decodeResponse(t, w)
	if uint64(body["id"].(float64)) != users[0].ID {
		t.Errorf("response id = %v, want %d", body["id"], users[0].ID)
	}
	var one, two models.User
	if err := db.Instance.First(&one, users[0].ID).Error; err != nil {
		t.Fatalf("reloading target: %v", err)
	}
	if err := db.Instance.First(&two, users[1].ID).Error; err != nil {
		t.Fatalf("reloading bystander: %v", err)
	}
	if one.Name != "Renamed" {
		t.Errorf("target name = %q, want Renamed", one.Name)
	}
	if two.Name != "Two" {
		t.Errorf("bystander name = %q, want Two", two.Name)
	}
}

func TestAdminUpdateUnknownRow(t *testing.T) {
	router := setupAdminRouter(t)

	w := putJSON(t, router, "/admin/users/12345", map[string]interface{}{"name": "Ghost"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if body := decodeResponse(t, w); body["code"] != "NOT_FOUND" {
		t.Errorf("code = %v, want NOT_FOUND", body["code"])
	}
}

func TestAdminUnknownResource(t *testing.T) {
	router := setupAdminRouter(t)

	w := getPath(t, router, "/admin/invitations")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
