package handler

import (
	"net/http"

	"github.com/neo84716/ro-data/internal/domain"
	"github.com/neo84716/ro-data/internal/exptable"
	"github.com/neo84716/ro-data/internal/tracker"
)

// ExpTable is the read side of the experience table used by the handlers
type ExpTable interface {
	RequiredExp(level int, c domain.CharacterCategory) (float64, bool)
	Summaries() []exptable.Summary
}

// ExpHandler serves experience table lookups and level arithmetic
type ExpHandler struct {
	service tracker.Service
	table   ExpTable
}

func NewExpHandler(service tracker.Service, table ExpTable) *ExpHandler {
	return &ExpHandler{service: service, table: table}
}

// Position is a level and a percent into it
type Position struct {
	Level   int     `json:"level" validate:"min=1,max=260"`
	Percent float64 `json:"percent" validate:"min=0,max=100"`
}

func (p Position) progress() domain.LevelProgress {
	return domain.LevelProgress{Level: p.Level, Percent: p.Percent}
}

type DifferenceRequest struct {
	Category string   `json:"category" validate:"required,category"`
	Start    Position `json:"start"`
	End      Position `json:"end"`
}

type ResolveRequest struct {
	Category string   `json:"category" validate:"required,category"`
	Start    Position `json:"start"`
	Gained   float64  `json:"gained" validate:"min=0"`
}

// RequiredExpResponse reports a table value; Known is false for table gaps
type RequiredExpResponse struct {
	Category    domain.CharacterCategory `json:"category"`
	Level       int                      `json:"level"`
	RequiredExp float64                  `json:"required_exp"`
	Known       bool                     `json:"known"`
}

type ExpValueResponse struct {
	Category domain.CharacterCategory `json:"category"`
	Exp      float64                  `json:"exp"`
}

func categoryParam(w http.ResponseWriter, r *http.Request) (domain.CharacterCategory, bool) {
	raw, ok := GetQueryParam(r, w, "category")
	if !ok {
		return "", false
	}
	c, err := domain.ParseCategory(raw)
	if err != nil {
		respondServiceError(w, r, ErrMsgExpLookupFailed, err)
		return "", false
	}
	return c, true
}

func (h *ExpHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.table.Summaries())
}

func (h *ExpHandler) HandleRequired(w http.ResponseWriter, r *http.Request) {
	c, ok := categoryParam(w, r)
	if !ok {
		return
	}
	level, ok := GetIntQueryParam(r, w, "level")
	if !ok {
		return
	}

	v, known := h.table.RequiredExp(level, c)
	respondJSON(w, http.StatusOK, RequiredExpResponse{Category: c, Level: level, RequiredExp: v, Known: known})
}

func (h *ExpHandler) HandleAccumulated(w http.ResponseWriter, r *http.Request) {
	c, ok := categoryParam(w, r)
	if !ok {
		return
	}
	level, ok := GetIntQueryParam(r, w, "level")
	if !ok {
		return
	}
	percent, ok := GetFloatQueryParam(r, w, "percent", 0)
	if !ok {
		return
	}

	exp, err := h.service.AccumulatedExp(r.Context(), c, domain.LevelProgress{Level: level, Percent: percent})
	if err != nil {
		respondServiceError(w, r, ErrMsgExpLookupFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, ExpValueResponse{Category: c, Exp: exp})
}

func (h *ExpHandler) HandleDifference(w http.ResponseWriter, r *http.Request) {
	var req DifferenceRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Exp difference"); err != nil {
		return
	}
	c, _ := domain.ParseCategory(req.Category)

	exp, err := h.service.Difference(r.Context(), c, req.Start.progress(), req.End.progress())
	if err != nil {
		respondServiceError(w, r, ErrMsgExpLookupFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, ExpValueResponse{Category: c, Exp: exp})
}

func (h *ExpHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Resolve level"); err != nil {
		return
	}
	c, _ := domain.ParseCategory(req.Category)

	final, err := h.service.Resolve(r.Context(), c, req.Start.progress(), req.Gained)
	if err != nil {
		respondServiceError(w, r, ErrMsgExpLookupFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, final)
}
