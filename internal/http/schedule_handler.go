package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/campus-reservations/internal/application"
	"github.com/example/campus-reservations/internal/interval"
	"github.com/example/campus-reservations/internal/reservation"
)

type scheduleService interface {
	CreateSchedule(ctx context.Context, params application.CreateScheduleParams) (reservation.Schedule, error)
	ListSchedules(ctx context.Context, roomID, term string) ([]reservation.Schedule, error)
	UpdateSchedule(ctx context.Context, params application.UpdateScheduleParams) (reservation.Schedule, error)
	DeleteSchedule(ctx context.Context, principal application.Principal, id string) error
}

// ScheduleHandler exposes the recurring weekly schedule operations.
type ScheduleHandler struct {
	service   scheduleService
	responder responder
}

// NewScheduleHandler constructs a handler backed by the given service.
func NewScheduleHandler(service scheduleService, logger *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{service: service, responder: newResponder(logger)}
}

// Create handles POST /schedules.
func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	input, fieldErrors := req.toInput()
	if len(fieldErrors) > 0 {
		h.responder.writeJSON(r.Context(), w, http.StatusUnprocessableEntity, errorResponse{
			Message: "request validation failed",
			Errors:  fieldErrors,
		})
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	schedule, err := h.service.CreateSchedule(r.Context(), application.CreateScheduleParams{
		Principal: principal,
		Input:     input,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toScheduleDTO(schedule))
}

// List handles GET /schedules.
func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	roomID := strings.TrimSpace(r.URL.Query().Get("room_id"))
	term := strings.TrimSpace(r.URL.Query().Get("term"))

	schedules, err := h.service.ListSchedules(r.Context(), roomID, term)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]scheduleDTO, 0, len(schedules))
	for _, schedule := range schedules {
		dtos = append(dtos, toScheduleDTO(schedule))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, dtos)
}

// Update handles PUT /schedules/{id}. The request replaces every mutable
// field of the schedule.
func (h *ScheduleHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ScheduleIDFromContext(r.Context())
	if !ok || id == "" {
		http.NotFound(w, r)
		return
	}

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	input, fieldErrors := req.toInput()
	if len(fieldErrors) > 0 {
		h.responder.writeJSON(r.Context(), w, http.StatusUnprocessableEntity, errorResponse{
			Message: "request validation failed",
			Errors:  fieldErrors,
		})
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	schedule, err := h.service.UpdateSchedule(r.Context(), application.UpdateScheduleParams{
		Principal:  principal,
		ScheduleID: id,
		Input:      input,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toScheduleDTO(schedule))
}

// Delete handles DELETE /schedules/{id}.
func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ScheduleIDFromContext(r.Context())
	if !ok || id == "" {
		http.NotFound(w, r)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	if err := h.service.DeleteSchedule(r.Context(), principal, id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type scheduleRequest struct {
	RoomID     string `json:"room_id"`
	CourseCode string `json:"course_code"`
	CourseName string `json:"course_name"`
	Weekday    string `json:"weekday"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Term       string `json:"term"`
}

func (req scheduleRequest) toInput() (application.ScheduleInput, map[string]string) {
	fieldErrors := make(map[string]string)

	input := application.ScheduleInput{
		RoomID:     strings.TrimSpace(req.RoomID),
		CourseCode: strings.TrimSpace(req.CourseCode),
		CourseName: strings.TrimSpace(req.CourseName),
		Term:       strings.TrimSpace(req.Term),
	}

	weekday, ok := parseWeekday(req.Weekday)
	if !ok {
		fieldErrors["weekday"] = "weekday must be a day name such as monday"
	} else {
		input.Weekday = weekday
	}

	start, end, ok := parseSlot(req.StartTime, req.EndTime, fieldErrors)
	if ok {
		input.Slot = interval.Span{Start: start, End: end}
	}

	if len(fieldErrors) > 0 {
		return application.ScheduleInput{}, fieldErrors
	}
	return input, nil
}

type scheduleDTO struct {
	ID         string `json:"id"`
	RoomID     string `json:"room_id"`
	OwnerID    string `json:"owner_id"`
	CourseCode string `json:"course_code,omitempty"`
	CourseName string `json:"course_name,omitempty"`
	Weekday    string `json:"weekday"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Term       string `json:"term"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

func toScheduleDTO(schedule reservation.Schedule) scheduleDTO {
	dto := scheduleDTO{
		ID:         schedule.ID,
		RoomID:     schedule.RoomID,
		OwnerID:    schedule.OwnerID,
		CourseCode: schedule.CourseCode,
		CourseName: schedule.CourseName,
		Weekday:    strings.ToLower(schedule.Weekday.String()),
		StartTime:  schedule.Slot.Start.String(),
		EndTime:    schedule.Slot.End.String(),
		Term:       schedule.Term,
		CreatedAt:  schedule.CreatedAt.UTC().Format(time.RFC3339),
	}
	if !schedule.UpdatedAt.IsZero() {
		dto.UpdatedAt = schedule.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return dto
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekday(raw string) (time.Weekday, bool) {
	weekday, ok := weekdayNames[strings.ToLower(strings.TrimSpace(raw))]
	return weekday, ok
}
