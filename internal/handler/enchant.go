package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/neo84716/ro-data/internal/enchant"
)

// EnchantHandler serves the enchant simulator
type EnchantHandler struct {
	service enchant.Service
}

func NewEnchantHandler(service enchant.Service) *EnchantHandler {
	return &EnchantHandler{service: service}
}

type CreateEnchantSessionRequest struct {
	ProfileID string `json:"profile_id" validate:"required,max=100"`
	Equipment string `json:"equipment" validate:"max=200"`
}

// ComboSeekRequest maps slot ids to option ids; "*" or an absent slot matches anything
type ComboSeekRequest struct {
	Targets     map[int]string `json:"targets" validate:"required,min=1"`
	MaxAttempts int            `json:"max_attempts" validate:"min=0"`
}

func (h *EnchantHandler) HandleListProfiles(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.ListProfiles(r.Context()))
}

func (h *EnchantHandler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateEnchantSessionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create enchant session"); err != nil {
		return
	}

	v, err := h.service.CreateSession(r.Context(), req.ProfileID, req.Equipment)
	if err != nil {
		respondServiceError(w, r, ErrMsgCreateSessionFailed, err)
		return
	}
	respondJSON(w, http.StatusCreated, v)
}

func (h *EnchantHandler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, r, ErrMsgGetSessionFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, v)
}

func (h *EnchantHandler) HandleEnchantSlot(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.Atoi(chi.URLParam(r, "slotID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidSlotID)
		return
	}

	v, err := h.service.EnchantSlot(r.Context(), chi.URLParam(r, "sessionID"), slotID)
	if err != nil {
		respondServiceError(w, r, ErrMsgEnchantFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, v)
}

func (h *EnchantHandler) HandleEnchantAll(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.EnchantAll(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, r, ErrMsgEnchantFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, v)
}

func (h *EnchantHandler) HandleSeekCombo(w http.ResponseWriter, r *http.Request) {
	var req ComboSeekRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Seek combo"); err != nil {
		return
	}

	res, err := h.service.SeekCombo(r.Context(), chi.URLParam(r, "sessionID"), req.Targets, req.MaxAttempts)
	if err != nil {
		respondServiceError(w, r, ErrMsgSeekFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *EnchantHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.Reset(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, r, ErrMsgResetSessionFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, v)
}
