package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestChatworkSenderPostsForm(t *testing.T) {
	var gotPath, gotToken, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get("X-ChatWorkToken")
		if err := r.ParseForm(); err != nil {
			t.Errorf("bad form body: %v", err)
		}
		gotBody = r.PostFormValue("body")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sender := NewChatworkSender("tok-123")
	sender.baseURL = server.URL

	err := sender.SendGroupMessage(context.Background(), "987", "system down")
	if err != nil {
		t.Fatalf("SendGroupMessage returned error: %v", err)
	}
	if gotPath != "/rooms/987/messages" {
		t.Errorf("path = %q", gotPath)
	}
	if gotToken != "tok-123" {
		t.Errorf("token header = %q", gotToken)
	}
	if gotBody != "system down" {
		t.Errorf("body = %q", gotBody)
	}
}

func TestChatworkSenderNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":["invalid token"]}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	sender := NewChatworkSender("bad")
	sender.baseURL = server.URL

	err := sender.SendGroupMessage(context.Background(), "1", "x")
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error = %v, want status in message", err)
	}
}

func TestSMSGatewaySenderPostsJSON(t *testing.T) {
	var got smsGatewayRequest
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("bad json body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	sender := NewSMSGatewaySender(server.URL, "key-9", "OPSWATCH")
	err := sender.SendSMS(context.Background(), "+8400000001", "[OPS] DOWN edge (#1)")
	if err != nil {
		t.Fatalf("SendSMS returned error: %v", err)
	}
	if gotAuth != "Bearer key-9" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if got.To != "+8400000001" || got.From != "OPSWATCH" || !strings.HasPrefix(got.Body, "[OPS]") {
		t.Errorf("payload = %+v", got)
	}
}

func TestSMSGatewaySenderErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	sender := NewSMSGatewaySender(server.URL, "k", "")
	if err := sender.SendSMS(context.Background(), "+84", "x"); err == nil {
		t.Fatal("expected error for 429 response")
	}
}

func TestSimulatedSenderHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &SimulatedSender{Delay: 0}
	// Zero delay succeeds even with a cancelled context
	if err := s.SendEmail(ctx, "x@example.com", "s", "b"); err != nil {
		t.Errorf("zero-delay send failed: %v", err)
	}
}
