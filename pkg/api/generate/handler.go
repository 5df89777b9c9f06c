package generate

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"finmodeler/pkg/api/session"
	coreGenerate "finmodeler/pkg/core/generate"
	"finmodeler/pkg/core/model"
	"finmodeler/pkg/render/xlsx"
)

var store *session.Store

// InitHandler wires the shared session store into the package handlers.
func InitHandler(s *session.Store) {
	store = s
}

func cors(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// statusFor maps the error taxonomy onto HTTP: bad input is the client's
// fault, a leaked internal defect is ours.
func statusFor(err error) int {
	if errors.Is(err, model.ErrConfig) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// HandleCreateSession opens a session seeded with the example model.
func HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	sess := store.Create()
	fmt.Printf("[SESSION] Created %s (%d open)\n", sess.ID, store.Len())
	writeJSON(w, sess)
}

// HandleGetModel returns a session's current model.
func HandleGetModel(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	sess, ok := store.Get(r.URL.Query().Get("session_id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, sess)
}

// UpdateModelRequest replaces a session's working model.
type UpdateModelRequest struct {
	SessionID string       `json:"session_id"`
	Model     *model.Model `json:"model"`
}

// HandleUpdateModel validates and stores a replacement model.
func HandleUpdateModel(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	var req UpdateModelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Model == nil {
		http.Error(w, "model is required", http.StatusBadRequest)
		return
	}
	if err := req.Model.Validate(); err != nil {
		fmt.Printf("[MODEL] Rejected update for %s: %v\n", req.SessionID, err)
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	if !store.Update(req.SessionID, req.Model) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	fmt.Printf("[MODEL] Updated session %s\n", req.SessionID)
	writeJSON(w, map[string]string{"status": "ok"})
}

// GenerateRequest selects the axis and scenario of one export.
type GenerateRequest struct {
	SessionID string         `json:"session_id"`
	Variant   model.Variant  `json:"variant"`
	Scenario  model.Scenario `json:"scenario"`
}

// HandleGenerate runs the pipeline on the session's model and streams the
// workbook back as an xlsx attachment.
func HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sess, ok := store.Get(req.SessionID)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	fmt.Printf("[GENERATE] Session %s variant=%s scenario=%s\n", req.SessionID, req.Variant, req.Scenario)

	wb, err := coreGenerate.Generate(sess.Model, coreGenerate.Options{
		Variant:  req.Variant,
		Scenario: req.Scenario,
	})
	if err != nil {
		fmt.Printf("[GENERATE] Failed: %v\n", err)
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	filename := fmt.Sprintf("financial_model_%s_%s.xlsx", req.Variant, req.Scenario)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	var writer xlsx.Writer
	if err := writer.Write(wb, w); err != nil {
		// Headers are gone at this point; all we can do is log.
		fmt.Printf("[GENERATE] Stream failed: %v\n", err)
	}
}
