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

type bookingService interface {
	CreateBooking(ctx context.Context, params application.CreateBookingParams) (reservation.Booking, error)
	ListBookings(ctx context.Context, params application.ListBookingsParams) ([]reservation.Booking, error)
	GetBooking(ctx context.Context, principal application.Principal, id string) (reservation.Booking, error)
	TransitionBooking(ctx context.Context, params application.TransitionBookingParams) (reservation.Booking, error)
	DeleteBooking(ctx context.Context, principal application.Principal, id string) error
}

// BookingHandler exposes the ad-hoc reservation operations.
type BookingHandler struct {
	service   bookingService
	responder responder
}

// NewBookingHandler constructs a handler backed by the given service.
func NewBookingHandler(service bookingService, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{service: service, responder: newResponder(logger)}
}

// Create handles POST /bookings.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req bookingRequest
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

	booking, err := h.service.CreateBooking(r.Context(), application.CreateBookingParams{
		Principal: principal,
		Input:     input,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toBookingDTO(booking))
}

// List handles GET /bookings. Ordinary callers receive only their own
// bookings.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	params := application.ListBookingsParams{
		Principal: principal,
		RoomID:    strings.TrimSpace(r.URL.Query().Get("room_id")),
	}
	if rawDate := strings.TrimSpace(r.URL.Query().Get("date")); rawDate != "" {
		date, err := interval.ParseDate(rawDate)
		if err != nil {
			h.responder.writeJSON(r.Context(), w, http.StatusUnprocessableEntity, errorResponse{
				Message: "request validation failed",
				Errors:  map[string]string{"date": "date must be formatted 2006-01-02"},
			})
			return
		}
		params.Date = &date
	}

	bookings, err := h.service.ListBookings(r.Context(), params)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]bookingDTO, 0, len(bookings))
	for _, booking := range bookings {
		dtos = append(dtos, toBookingDTO(booking))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, dtos)
}

// Get handles GET /bookings/{id}. Ordinary callers only see their own
// bookings.
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := BookingIDFromContext(r.Context())
	if !ok || id == "" {
		http.NotFound(w, r)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	booking, err := h.service.GetBooking(r.Context(), principal, id)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toBookingDTO(booking))
}

// Transition handles PUT /bookings/{id}/status.
func (h *BookingHandler) Transition(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := BookingIDFromContext(r.Context())
	if !ok || id == "" {
		http.NotFound(w, r)
		return
	}

	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	booking, err := h.service.TransitionBooking(r.Context(), application.TransitionBookingParams{
		Principal: principal,
		BookingID: id,
		Target:    req.Status,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toBookingDTO(booking))
}

// Delete handles DELETE /bookings/{id}.
func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := BookingIDFromContext(r.Context())
	if !ok || id == "" {
		http.NotFound(w, r)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	if err := h.service.DeleteBooking(r.Context(), principal, id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type bookingRequest struct {
	RoomID    string `json:"room_id"`
	Purpose   string `json:"purpose"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (req bookingRequest) toInput() (application.BookingInput, map[string]string) {
	fieldErrors := make(map[string]string)

	input := application.BookingInput{
		RoomID:  strings.TrimSpace(req.RoomID),
		Purpose: req.Purpose,
	}

	if strings.TrimSpace(req.Date) == "" {
		fieldErrors["date"] = "date is required"
	} else {
		date, err := interval.ParseDate(strings.TrimSpace(req.Date))
		if err != nil {
			fieldErrors["date"] = "date must be formatted 2006-01-02"
		} else {
			input.Date = date
		}
	}

	start, end, ok := parseSlot(req.StartTime, req.EndTime, fieldErrors)
	if ok {
		input.Slot = interval.Span{Start: start, End: end}
	}

	if len(fieldErrors) > 0 {
		return application.BookingInput{}, fieldErrors
	}
	return input, nil
}

type transitionRequest struct {
	Status string `json:"status"`
}

type bookingDTO struct {
	ID          string `json:"id"`
	RoomID      string `json:"room_id"`
	RequesterID string `json:"requester_id"`
	Purpose     string `json:"purpose,omitempty"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

func toBookingDTO(booking reservation.Booking) bookingDTO {
	dto := bookingDTO{
		ID:          booking.ID,
		RoomID:      booking.RoomID,
		RequesterID: booking.RequesterID,
		Purpose:     booking.Purpose,
		Date:        booking.Date.String(),
		StartTime:   booking.Slot.Start.String(),
		EndTime:     booking.Slot.End.String(),
		Status:      string(booking.Status),
		CreatedAt:   booking.CreatedAt.UTC().Format(time.RFC3339),
	}
	if booking.UpdatedAt != nil {
		dto.UpdatedAt = booking.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return dto
}

// parseSlot parses the shared start/end fields, recording issues in
// fieldErrors keyed the way the services key them.
func parseSlot(rawStart, rawEnd string, fieldErrors map[string]string) (interval.TimeOfDay, interval.TimeOfDay, bool) {
	var (
		start, end interval.TimeOfDay
		err        error
		valid      = true
	)

	if strings.TrimSpace(rawStart) == "" {
		fieldErrors["start_time"] = "start time is required"
		valid = false
	} else if start, err = interval.ParseTimeOfDay(strings.TrimSpace(rawStart)); err != nil {
		fieldErrors["start_time"] = "start time must be formatted 15:04"
		valid = false
	}

	if strings.TrimSpace(rawEnd) == "" {
		fieldErrors["end_time"] = "end time is required"
		valid = false
	} else if end, err = interval.ParseTimeOfDay(strings.TrimSpace(rawEnd)); err != nil {
		fieldErrors["end_time"] = "end time must be formatted 15:04"
		valid = false
	}

	if valid && end <= start {
		fieldErrors["time"] = "start must be before end"
		valid = false
	}

	return start, end, valid
}
