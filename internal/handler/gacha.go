package handler

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/neo84716/ro-data/internal/gacha"
)

// GachaHandler serves the gacha simulator
type GachaHandler struct {
	service gacha.Service
}

func NewGachaHandler(service gacha.Service) *GachaHandler {
	return &GachaHandler{service: service}
}

type RegisterPoolRequest struct {
	Name string      `json:"name" validate:"max=100"`
	Rows []gacha.Row `json:"rows" validate:"required,min=1,max=500,dive"`
}

type CreateGachaSessionRequest struct {
	PoolID string `json:"pool_id" validate:"required,max=100"`
}

type PullRequest struct {
	Count PullCount `json:"count" validate:"max=10000"`
}

// PullCount accepts a JSON number or string. A string contributes its leading
// integer, and anything without one decodes to 0, which the service pulls once for.
type PullCount int

func (c *PullCount) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case float64:
		*c = PullCount(clampCount(t))
	case string:
		*c = PullCount(leadingInt(t))
	default:
		*c = 0
	}
	return nil
}

func clampCount(f float64) int {
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	if f < math.MinInt32 {
		return math.MinInt32
	}
	return int(f)
}

// leadingInt parses an optional sign and the digits that follow it.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' && end-start < 10 {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

type PullUntilRequest struct {
	Target      string `json:"target" validate:"required,max=100"`
	MaxAttempts int    `json:"max_attempts" validate:"min=0"`
}

func (h *GachaHandler) HandleListPools(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.ListPools(r.Context()))
}

func (h *GachaHandler) HandleGetPool(w http.ResponseWriter, r *http.Request) {
	pool, err := h.service.GetPool(r.Context(), chi.URLParam(r, "poolID"))
	if err != nil {
		respondServiceError(w, r, ErrMsgGetPoolFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, pool)
}

func (h *GachaHandler) HandleRegisterPool(w http.ResponseWriter, r *http.Request) {
	var req RegisterPoolRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Register pool"); err != nil {
		return
	}

	pool, err := h.service.RegisterPool(r.Context(), req.Name, req.Rows)
	if err != nil {
		respondServiceError(w, r, ErrMsgRegisterPoolFailed, err)
		return
	}
	respondJSON(w, http.StatusCreated, pool)
}

func (h *GachaHandler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateGachaSessionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create gacha session"); err != nil {
		return
	}

	v, err := h.service.CreateSession(r.Context(), req.PoolID)
	if err != nil {
		respondServiceError(w, r, ErrMsgCreateSessionFailed, err)
		return
	}
	respondJSON(w, http.StatusCreated, v)
}

func (h *GachaHandler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, r, ErrMsgGetSessionFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, v)
}

func (h *GachaHandler) HandlePull(w http.ResponseWriter, r *http.Request) {
	var req PullRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Pull"); err != nil {
		return
	}

	res, err := h.service.Pull(r.Context(), chi.URLParam(r, "sessionID"), int(req.Count))
	if err != nil {
		respondServiceError(w, r, ErrMsgPullFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// HandlePullUntil runs a seek bound to the request context, so a client that
// disconnects stops the seek between chunks.
func (h *GachaHandler) HandlePullUntil(w http.ResponseWriter, r *http.Request) {
	var req PullUntilRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Pull until"); err != nil {
		return
	}

	res, err := h.service.PullUntil(r.Context(), chi.URLParam(r, "sessionID"), req.Target, req.MaxAttempts)
	if err != nil {
		respondServiceError(w, r, ErrMsgSeekFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *GachaHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.Reset(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, r, ErrMsgResetSessionFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, v)
}
