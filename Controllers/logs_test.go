package Controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"PalkhiTrans/Models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAuditLogsPagination(t *testing.T) {
	db := testDB(t)
	for _, action := range []string{"generate", "generate", "mark_sent"} {
		require.NoError(t, db.Create(&Models.AuditLog{
			Actor: "operator1", Action: action, Entity: "customer_bill", EntityID: 1,
		}).Error)
	}
	h := NewAuditLogHandler(db)

	app := fiber.New()
	app.Get("/api/logs", h.GetAuditLogs)

	// Garbage pagination falls back to defaults
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/logs?page=zero&page_size=0", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.JSONEq(t, "1", string(body["page"]))
	assert.JSONEq(t, "50", string(body["page_size"]))
	assert.JSONEq(t, "3", string(body["total"]))

	// Action filter narrows the window
	resp2, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/logs?action=mark_sent", nil))
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&body))
	assert.JSONEq(t, "1", string(body["total"]))
}
