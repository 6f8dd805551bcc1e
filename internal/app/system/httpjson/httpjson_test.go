package httpjson_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/civicwatch/civicwatch/internal/app/system/httpjson"
)

func TestRespond(t *testing.T) {
	rec := httptest.NewRecorder()
	httpjson.Respond(rec, http.StatusCreated, map[string]string{"message": "ok"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusCreated)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse body: %v", err)
	}
	if body["message"] != "ok" {
		t.Errorf("message: got %q, want %q", body["message"], "ok")
	}
}

func TestErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	httpjson.Error(rec, http.StatusNotFound, "Report not found")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse body: %v", err)
	}
	if body["message"] != "Report not found" {
		t.Errorf("message: got %q", body["message"])
	}
}

func TestDecode(t *testing.T) {
	type payload struct {
		Email string `json:"email"`
	}

	t.Run("valid", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.it"}`))
		var p payload
		if err := httpjson.Decode(r, &p); err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if p.Email != "a@b.it" {
			t.Errorf("email: got %q", p.Email)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader(""))
		var p payload
		err := httpjson.Decode(r, &p)
		if err == nil {
			t.Fatal("expected error for empty body")
		}
		if err.Error() != "request body is empty" {
			t.Errorf("error: got %q", err.Error())
		}
	})

	t.Run("malformed", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", strings.NewReader("{not json"))
		var p payload
		if err := httpjson.Decode(r, &p); err == nil {
			t.Fatal("expected error for malformed body")
		}
	})
}
