package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/zjrosen/bulletdash/internal/decoration"
	"github.com/zjrosen/bulletdash/internal/engine"
	"github.com/zjrosen/bulletdash/internal/log"
	"github.com/zjrosen/bulletdash/internal/settings"
	"github.com/zjrosen/bulletdash/internal/structure"
)

// Offset units accepted in ?units=.
const (
	UnitsBytes = "bytes"
	UnitsUTF16 = "utf16"
)

type decorateRequest struct {
	Text string `json:"text"`
	// Settings overrides the server's snapshot for this request only.
	Settings map[string]any `json:"settings,omitempty"`
}

type roleEntry struct {
	Line int            `json:"line"`
	Role structure.Role `json:"role"`
}

type spanEntry struct {
	decoration.Span
	CSS string `json:"css,omitempty"`
}

type decorateResponse struct {
	PassID string      `json:"passId"`
	Units  string      `json:"units"`
	Roles  []roleEntry `json:"roles"`
	Spans  []spanEntry `json:"spans"`
}

type rolesResponse struct {
	Roles  []roleEntry    `json:"roles"`
	Counts map[string]int `json:"counts"`
}

func (s *Server) handleDecorate(w http.ResponseWriter, r *http.Request) {
	var req decorateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	units := r.URL.Query().Get("units")
	if units == "" {
		units = UnitsBytes
	}
	if units != UnitsBytes && units != UnitsUTF16 {
		jsonError(w, fmt.Sprintf("units must be %q or %q", UnitsBytes, UnitsUTF16), http.StatusBadRequest)
		return
	}

	cfg := s.store.Snapshot()
	if len(req.Settings) > 0 {
		merged, err := settings.Merge(cfg, req.Settings)
		if err != nil {
			jsonError(w, "invalid settings: "+err.Error(), http.StatusUnprocessableEntity)
			return
		}
		cfg = merged
	}

	eng := engine.New(engine.StaticSettings(cfg), engine.WithTracer(s.tracer))
	pass := eng.Update(r.Context(), req.Text, engine.DocChanged)

	convert := func(i int) int { return i }
	if units == UnitsUTF16 {
		convert = utf16Offsets(req.Text)
	}

	spans := make([]spanEntry, len(pass.Spans))
	for i, sp := range pass.Spans {
		sp.Start, sp.End = convert(sp.Start), convert(sp.End)
		spans[i] = spanEntry{Span: sp, CSS: sp.Declaration()}
	}

	writeJSON(w, http.StatusOK, decorateResponse{
		PassID: pass.ID,
		Units:  units,
		Roles:  roleEntries(pass.Roles),
		Spans:  spans,
	})
}

func (s *Server) handleRoles(w http.ResponseWriter, r *http.Request) {
	var req decorateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	roles := structure.Analyze(req.Text)
	counts := map[string]int{}
	for _, role := range []structure.Role{structure.Leaf, structure.Parent, structure.Grandparent} {
		counts[role.String()] = 0
	}
	for role, n := range roles.Counts() {
		counts[role.String()] = n
	}
	writeJSON(w, http.StatusOK, rolesResponse{Roles: roleEntries(roles), Counts: counts})
}

func (s *Server) handleGetSettings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot().Blob())
}

// handlePutSettings merges the body over the current snapshot, or over the
// defaults with ?reset=true. Valid keys are applied even when others are
// rejected; the response then carries 422 and the resulting settings.
func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var blob map[string]any
	if !decodeJSON(w, r, &blob) {
		return
	}

	reset, _ := strconv.ParseBool(r.URL.Query().Get("reset"))
	var err error
	if reset {
		err = s.store.Reset(r.Context(), blob)
	} else {
		err = s.store.Apply(r.Context(), blob)
	}

	current := s.store.Snapshot().Blob()
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, current)
	case errors.Is(err, settings.ErrInvalidValue):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":    err.Error(),
			"settings": current,
		})
	default:
		log.ErrorErr(log.CatAPI, "Saving settings failed", err)
		jsonError(w, "failed to save settings: "+err.Error(), http.StatusInternalServerError)
	}
}

func roleEntries(roles structure.Assignment) []roleEntry {
	out := make([]roleEntry, 0, len(roles))
	for line, role := range roles {
		out = append(out, roleEntry{Line: line, Role: role})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Line < out[j].Line })
	return out
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, "request body too large", http.StatusRequestEntityTooLarge)
			return false
		}
		jsonError(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.ErrorErr(log.CatAPI, "Encoding response failed", err)
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
