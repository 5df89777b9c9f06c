package generate

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"finmodeler/pkg/api/session"
	"finmodeler/pkg/core/model"
)

func setup() *session.Store {
	store := session.NewStore()
	InitHandler(store)
	return store
}

func TestSessionLifecycle(t *testing.T) {
	setup()

	// Create
	w := httptest.NewRecorder()
	HandleCreateSession(w, httptest.NewRequest("POST", "/api/session/create", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("create returned %d", w.Code)
	}
	var sess session.Session
	if err := json.NewDecoder(w.Body).Decode(&sess); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if sess.ID == "" || sess.Model == nil {
		t.Fatal("session should come back with an id and a seeded model")
	}

	// Get
	w = httptest.NewRecorder()
	HandleGetModel(w, httptest.NewRequest("GET", "/api/session/model?session_id="+sess.ID, nil))
	if w.Code != http.StatusOK {
		t.Errorf("get returned %d", w.Code)
	}

	// Get unknown
	w = httptest.NewRecorder()
	HandleGetModel(w, httptest.NewRequest("GET", "/api/session/model?session_id=nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown session returned %d, want 404", w.Code)
	}
}

func TestUpdateModelValidates(t *testing.T) {
	store := setup()
	sess := store.Create()

	bad := model.Example()
	bad.COGS[0].Kind = "Broken"
	body, _ := json.Marshal(UpdateModelRequest{SessionID: sess.ID, Model: bad})

	w := httptest.NewRecorder()
	HandleUpdateModel(w, httptest.NewRequest("POST", "/api/session/update", bytes.NewReader(body)))
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid model returned %d, want 400", w.Code)
	}

	good := model.Example()
	good.WorkingCapital.BeginningCash = 75000
	body, _ = json.Marshal(UpdateModelRequest{SessionID: sess.ID, Model: good})
	w = httptest.NewRecorder()
	HandleUpdateModel(w, httptest.NewRequest("POST", "/api/session/update", bytes.NewReader(body)))
	if w.Code != http.StatusOK {
		t.Fatalf("valid update returned %d", w.Code)
	}
	stored, _ := store.Get(sess.ID)
	if stored.Model.WorkingCapital.BeginningCash != 75000 {
		t.Error("update did not replace the session model")
	}
}

func TestGenerateStreamsWorkbook(t *testing.T) {
	store := setup()
	sess := store.Create()

	body, _ := json.Marshal(GenerateRequest{SessionID: sess.ID, Variant: model.VariantQuarterly, Scenario: model.ScenarioBase})
	w := httptest.NewRecorder()
	HandleGenerate(w, httptest.NewRequest("POST", "/api/generate", bytes.NewReader(body)))
	if w.Code != http.StatusOK {
		t.Fatalf("generate returned %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "quarterly") {
		t.Errorf("disposition = %q", w.Header().Get("Content-Disposition"))
	}
	// xlsx is a zip container; check the magic bytes.
	if b := w.Body.Bytes(); len(b) < 4 || b[0] != 'P' || b[1] != 'K' {
		t.Error("response body is not an xlsx archive")
	}
}

func TestGenerateRejectsBadRequest(t *testing.T) {
	store := setup()
	sess := store.Create()

	body, _ := json.Marshal(GenerateRequest{SessionID: sess.ID, Variant: "weekly", Scenario: model.ScenarioBase})
	w := httptest.NewRecorder()
	HandleGenerate(w, httptest.NewRequest("POST", "/api/generate", bytes.NewReader(body)))
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown variant returned %d, want 400", w.Code)
	}

	body, _ = json.Marshal(GenerateRequest{SessionID: "nope", Variant: model.VariantMonthly, Scenario: model.ScenarioBase})
	w = httptest.NewRecorder()
	HandleGenerate(w, httptest.NewRequest("POST", "/api/generate", bytes.NewReader(body)))
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown session returned %d, want 404", w.Code)
	}
}
