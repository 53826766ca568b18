package handlers

import (
	"net/http"
	"testing"

	"github.com/opswatch/opswatch/internal/database"
	"github.com/opswatch/opswatch/internal/testhelpers"
	"gorm.io/gorm"
)

func seedLLMSettings(t *testing.T, db *gorm.DB) *database.LLMSettings {
	t.Helper()
	settings := &database.LLMSettings{Enabled: false}
	if err := db.Create(settings).Error; err != nil {
		t.Fatalf("failed to seed settings: %v", err)
	}
	return settings
}

func TestGetLLMSettingsMasksAPIKey(t *testing.T) {
	db, mux := setupAPITest(t)
	seeded := seedLLMSettings(t, db)
	db.Model(seeded).Updates(map[string]interface{}{"api_key": "sk-verysecret1234"})

	var resp map[string]interface{}
	testhelpers.NewHTTPTestContext(t, http.MethodGet, "/api/settings/llm", nil).
		Execute(mux).
		AssertStatus(http.StatusOK).
		DecodeJSON(&resp)

	if resp["api_key"] != "****1234" {
		t.Errorf("expected masked api_key ****1234, got %v", resp["api_key"])
	}
	if resp["is_configured"] != true {
		t.Errorf("expected is_configured true, got %v", resp["is_configured"])
	}
}

func TestUpdateLLMSettingsEnablesAdvisory(t *testing.T) {
	db, mux := setupAPITest(t)
	seedLLMSettings(t, db)

	before, err := database.GetLLMSettings(db)
	if err != nil {
		t.Fatalf("failed to load settings: %v", err)
	}
	if before.IsActive() {
		t.Fatal("expected seeded settings to start inactive")
	}

	testhelpers.NewHTTPTestContext(t, http.MethodPut, "/api/settings/llm", nil).
		WithJSONBody(map[string]interface{}{
			"api_key":  "sk-opswatch-test",
			"model":    "gpt-4o-mini",
			"base_url": "http://llm.internal:8080/v1/chat/completions",
			"enabled":  true,
		}).
		Execute(mux).
		AssertStatus(http.StatusOK).
		AssertBodyContains(`"is_configured":true`)

	after, err := database.GetLLMSettings(db)
	if err != nil {
		t.Fatalf("failed to reload settings: %v", err)
	}
	if !after.IsActive() {
		t.Error("expected settings to be active after update")
	}
	if after.APIKey != "sk-opswatch-test" {
		t.Errorf("expected api_key persisted, got %q", after.APIKey)
	}
	if after.BaseURL != "http://llm.internal:8080/v1/chat/completions" {
		t.Errorf("unexpected base_url %q", after.BaseURL)
	}
}

func TestUpdateLLMSettingsCanDisable(t *testing.T) {
	db, mux := setupAPITest(t)
	seeded := seedLLMSettings(t, db)
	db.Model(seeded).Updates(map[string]interface{}{"api_key": "sk-x", "enabled": true})

	enabled := false
	testhelpers.NewHTTPTestContext(t, http.MethodPut, "/api/settings/llm", nil).
		WithJSONBody(map[string]interface{}{"enabled": enabled}).
		Execute(mux).
		AssertStatus(http.StatusOK)

	after, err := database.GetLLMSettings(db)
	if err != nil {
		t.Fatalf("failed to reload settings: %v", err)
	}
	if after.Enabled {
		t.Error("expected enabled=false to be written")
	}
	if after.APIKey != "sk-x" {
		t.Errorf("expected api_key untouched, got %q", after.APIKey)
	}
}

func TestUpdateLLMSettingsRejectsBadBaseURL(t *testing.T) {
	db, mux := setupAPITest(t)
	seedLLMSettings(t, db)

	testhelpers.NewHTTPTestContext(t, http.MethodPut, "/api/settings/llm", nil).
		WithJSONBody(map[string]interface{}{"base_url": "ftp://nope"}).
		Execute(mux).
		AssertStatus(http.StatusBadRequest)

	after, err := database.GetLLMSettings(db)
	if err != nil {
		t.Fatalf("failed to reload settings: %v", err)
	}
	if after.BaseURL != "" {
		t.Errorf("expected base_url unchanged, got %q", after.BaseURL)
	}
}

func TestGetLLMSettingsMissingRow(t *testing.T) {
	_, mux := setupAPITest(t)

	testhelpers.NewHTTPTestContext(t, http.MethodGet, "/api/settings/llm", nil).
		Execute(mux).
		AssertStatus(http.StatusNotFound)
}
