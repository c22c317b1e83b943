package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/models"
	"github.com/raheelakhtar8678-cmd/hotel-management-sub001/storage"
)

func TestExecutePricingForOneProperty(t *testing.T) {
	app := buildTestApp(t)
	room := seedRoom(t)

	rule := models.PricingRule{
		PropertyID:  room.PropertyID,
		Name:        "weekend bump",
		Priority:    10,
		ActionType:  models.RuleActionPercentage,
		ActionValue: 10,
	}
	require.NoError(t, storage.DB.Create(&rule).Error)

	resp := postJSON(app, "/api/pricing/execute", `{"propertyID":`+uintString(room.PropertyID)+`}`)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var run struct {
		UpdatedRooms int    `json:"updatedRooms"`
		AppliedRules []uint `json:"appliedRules"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &run))
	assert.Equal(t, 1, run.UpdatedRooms)
	assert.Equal(t, []uint{rule.ID}, run.AppliedRules)

	var updated models.Room
	require.NoError(t, storage.DB.First(&updated, room.ID).Error)
	require.NotNil(t, updated.CurrentPrice)
	assert.NotEmpty(t, updated.LastLogicReason)
}

func TestExecutePricingUnknownPropertyIs404(t *testing.T) {
	app := buildTestApp(t)

	resp := postJSON(app, "/api/pricing/execute", `{"propertyID":9999}`)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestExecutePricingAllProperties(t *testing.T) {
	app := buildTestApp(t)
	seedRoom(t)
	seedRoom(t)

	resp := postJSON(app, "/api/pricing/execute", "")
	require.Equal(t, http.StatusOK, resp.Code)

	var batch struct {
		PropertiesProcessed int `json:"propertiesProcessed"`
		TotalUpdated        int `json:"totalUpdated"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &batch))
	assert.Equal(t, 2, batch.PropertiesProcessed)
	assert.Equal(t, 2, batch.TotalUpdated)
}

func TestCronPricingRequiresSharedSecret(t *testing.T) {
	os.Setenv("CRON_SECRET", "testsecret")
	app := buildTestApp(t)
	seedRoom(t)

	req := httptest.NewRequest(http.MethodGet, "/api/pricing/cron", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	req2 := httptest.NewRequest(http.MethodGet, "/api/pricing/cron", nil)
	req2.Header.Set("Authorization", "Bearer wrong")
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	assert.Equal(t, http.StatusUnauthorized, resp2.Code)

	req3 := httptest.NewRequest(http.MethodGet, "/api/pricing/cron", nil)
	req3.Header.Set("Authorization", "Bearer testsecret")
	resp3 := httptest.NewRecorder()
	app.ServeHTTP(resp3, req3)
	assert.Equal(t, http.StatusOK, resp3.Code, resp3.Body.String())
}
