package api

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParsePaginationDefaults(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/alerts", nil)
	p := ParsePagination(req)
	if p.Page != 1 || p.PerPage != 25 {
		t.Errorf("defaults = %+v, want page=1 per_page=25", p)
	}
	if p.Offset() != 0 {
		t.Errorf("offset = %d, want 0", p.Offset())
	}
}

func TestParsePaginationExplicit(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/alerts?page=3&per_page=10", nil)
	p := ParsePagination(req)
	if p.Page != 3 || p.PerPage != 10 {
		t.Errorf("parsed = %+v", p)
	}
	if p.Offset() != 20 {
		t.Errorf("offset = %d, want 20", p.Offset())
	}
}

func TestParsePaginationClampsAndIgnoresGarbage(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/alerts?page=-1&per_page=9999", nil)
	p := ParsePagination(req)
	if p.Page != 1 {
		t.Errorf("negative page = %d, want default 1", p.Page)
	}
	if p.PerPage != 100 {
		t.Errorf("per_page = %d, want clamped to 100", p.PerPage)
	}

	req = httptest.NewRequest("GET", "/api/alerts?page=abc", nil)
	if p := ParsePagination(req); p.Page != 1 {
		t.Errorf("garbage page = %d, want default", p.Page)
	}
}

func TestTotalPages(t *testing.T) {
	p := PaginationParams{Page: 1, PerPage: 10}
	tests := []struct {
		total int64
		want  int
	}{
		{0, 0},
		{5, 1},
		{10, 1},
		{11, 2},
		{100, 10},
	}
	for _, tt := range tests {
		if got := p.TotalPages(tt.total); got != tt.want {
			t.Errorf("TotalPages(%d) = %d, want %d", tt.total, got, tt.want)
		}
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x"}`))
	var p payload
	if err := DecodeJSON(req, &p); err != nil {
		t.Fatalf("DecodeJSON returned error: %v", err)
	}
	if p.Name != "x" {
		t.Errorf("decoded name = %q", p.Name)
	}
}

func TestDecodeJSONRejectsUnknownField(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"nmae":"typo"}`))
	var p payload
	err := DecodeJSON(req, &p)
	if err == nil {
		t.Fatal("unknown field accepted")
	}
	if !strings.Contains(err.Error(), "unknown field") {
		t.Errorf("error = %v, want unknown field message", err)
	}
}

func TestDecodeJSONEmptyBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(""))
	var p struct{}
	err := DecodeJSON(req, &p)
	if err == nil || !strings.Contains(err.Error(), "empty") {
		t.Errorf("error = %v, want empty body message", err)
	}
}

func TestPathID(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/systems/42", nil)
	req.SetPathValue("id", "42")
	id, err := PathID(req)
	if err != nil || id != 42 {
		t.Errorf("PathID = %d, %v", id, err)
	}

	for _, raw := range []string{"0", "-1", "abc", ""} {
		req := httptest.NewRequest("GET", "/api/systems/x", nil)
		req.SetPathValue("id", raw)
		if _, err := PathID(req); err == nil {
			t.Errorf("PathID(%q) accepted", raw)
		}
	}
}

func TestValidate(t *testing.T) {
	type form struct {
		Name  string `validate:"required"`
		Email string `validate:"omitempty,email"`
	}

	if errs := Validate(form{Name: "x"}); errs != nil {
		t.Errorf("valid struct produced errors: %v", errs)
	}

	errs := Validate(form{})
	if errs == nil {
		t.Fatal("missing required field passed validation")
	}
	if msg, ok := errs["name"]; !ok || msg != "is required" {
		t.Errorf("errs = %v, want snake_case field with required message", errs)
	}

	errs = Validate(form{Name: "x", Email: "not-an-email"})
	if msg := errs["email"]; msg != "must be a valid email" {
		t.Errorf("email error = %q", msg)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Name":          "name",
		"SystemID":      "system_i_d",
		"SeverityLevel": "severity_level",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
