package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/neo84716/ro-data/internal/domain"
	"github.com/neo84716/ro-data/internal/tracker"
)

// TrackerHandler serves session estimates and the saved history
type TrackerHandler struct {
	service tracker.Service
}

func NewTrackerHandler(service tracker.Service) *TrackerHandler {
	return &TrackerHandler{service: service}
}

// SessionRequest is one grinding session as entered by the player
type SessionRequest struct {
	Category        string   `json:"category" validate:"required,category"`
	Start           Position `json:"start"`
	End             Position `json:"end"`
	DurationMinutes float64  `json:"duration_minutes" validate:"min=0"`
	ServerRate      float64  `json:"server_rate" validate:"min=0,max=10000"`
	GearRate        float64  `json:"gear_rate" validate:"min=0,max=1000"`
	ManualBook      float64  `json:"manual_book" validate:"manualbook"`
	DoubleRate      bool     `json:"double_rate"`
	MapName         string   `json:"map_name" validate:"max=100"`
}

func (req SessionRequest) session() tracker.Session {
	c, _ := domain.ParseCategory(req.Category)
	return tracker.Session{
		Category:        c,
		Start:           req.Start.progress(),
		End:             req.End.progress(),
		DurationMinutes: req.DurationMinutes,
		Modifiers: domain.Modifiers{
			ServerRate: req.ServerRate,
			GearRate:   req.GearRate,
			ManualBook: req.ManualBook,
			DoubleRate: req.DoubleRate,
		},
		MapName: req.MapName,
	}
}

type HoursToLevelRequest struct {
	Category    string   `json:"category" validate:"required,category"`
	Start       Position `json:"start"`
	TargetLevel int      `json:"target_level" validate:"min=2,max=260"`
	ExpPerHour  float64  `json:"exp_per_hour" validate:"gt=0"`
}

func (h *TrackerHandler) HandleEstimate(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Estimate session"); err != nil {
		return
	}

	est, err := h.service.Estimate(r.Context(), req.session())
	if err != nil {
		respondServiceError(w, r, ErrMsgExpLookupFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, est)
}

func (h *TrackerHandler) HandleSaveRecord(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Save record"); err != nil {
		return
	}

	rec, err := h.service.SaveRecord(r.Context(), req.session())
	if err != nil {
		respondServiceError(w, r, ErrMsgSaveRecordFailed, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

// HandleListRecords accepts map, manual_book, double_rate and limit query filters
func (h *TrackerHandler) HandleListRecords(w http.ResponseWriter, r *http.Request) {
	filter := domain.RecordFilter{MapContains: GetOptionalQueryParam(r, "map", "")}

	var ok bool
	if filter.ManualBook, ok = GetBoolQueryParam(r, w, "manual_book"); !ok {
		return
	}
	if filter.DoubleRate, ok = GetBoolQueryParam(r, w, "double_rate"); !ok {
		return
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidQueryParam, "limit"))
			return
		}
		filter.Limit = limit
	}

	records, err := h.service.ListRecords(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, ErrMsgListRecordsFailed, err)
		return
	}
	if records == nil {
		records = []domain.TrackingRecord{}
	}
	respondJSON(w, http.StatusOK, records)
}

func (h *TrackerHandler) HandleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteRecord(r.Context(), chi.URLParam(r, "recordID")); err != nil {
		respondServiceError(w, r, ErrMsgDeleteRecordFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgRecordDeleted})
}

func (h *TrackerHandler) HandleHoursToLevel(w http.ResponseWriter, r *http.Request) {
	var req HoursToLevelRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Hours to level"); err != nil {
		return
	}
	c, _ := domain.ParseCategory(req.Category)

	proj, err := h.service.HoursToLevel(r.Context(), c, req.Start.progress(), req.TargetLevel, req.ExpPerHour)
	if err != nil {
		respondServiceError(w, r, ErrMsgExpLookupFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, proj)
}
