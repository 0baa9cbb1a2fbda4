package dto

import (
	"time"

	"go-interview-crm/modules/scheduling/entity"
)

// ===================== Request DTOs =====================

// ScheduleRequest is the already-separated day/time/location intent the
// upstream AI layer extracted from the conversation.
type ScheduleRequest struct {
	ConversationID string `json:"conversation_id" validate:"required"`
	ContactID      string `json:"contact_id" validate:"required"`
	Day            string `json:"day"`
	Time           string `json:"time"`
	Location       string `json:"location"`
}

// ReleaseRequest frees the conversation's active reservation.
type ReleaseRequest struct {
	Status string `json:"status" validate:"required,oneof=cancelled on_hold"`
}

// CreateBlockRequest registers an administrative blackout.
type CreateBlockRequest struct {
	StartAt  time.Time `json:"start_at" validate:"required"`
	Location string    `json:"location"`
	Reason   string    `json:"reason"`
}

// ===================== Result DTOs =====================

// FailReason discriminates the expected failure paths of a schedule attempt.
type FailReason string

const (
	ReasonMissing             FailReason = "MISSING"
	ReasonBadInput            FailReason = "BAD_INPUT"
	ReasonOutsideAvailability FailReason = "OUTSIDE_AVAILABILITY"
	ReasonConflict            FailReason = "CONFLICT"
)

// ScheduleKind discriminates the success outcomes.
type ScheduleKind string

const (
	KindScheduled   ScheduleKind = "SCHEDULED"
	KindRescheduled ScheduleKind = "RESCHEDULED"
	KindUnchanged   ScheduleKind = "UNCHANGED"
)

// SlotDTO is a candidate or booked slot rendered for the chat layer.
type SlotDTO struct {
	Day      string    `json:"day"`
	Time     string    `json:"time"`
	Location string    `json:"location"`
	Timezone string    `json:"timezone"`
	StartAt  time.Time `json:"start_at"`
	EndAt    time.Time `json:"end_at"`
}

// ScheduleAttemptResult is the tagged outcome of AttemptSchedule. Expected
// failures are values here, never errors; each one carries ranked
// alternatives so the caller can offer a recovery path without a second
// round trip.
type ScheduleAttemptResult struct {
	OK                    bool         `json:"ok"`
	Reason                FailReason   `json:"reason,omitempty"`
	Kind                  ScheduleKind `json:"kind,omitempty"`
	Slot                  *SlotDTO     `json:"slot,omitempty"`
	ReservationID         *string      `json:"reservation_id,omitempty"`
	PreviousReservationID *string      `json:"previous_reservation_id,omitempty"`
	Alternatives          []SlotDTO    `json:"alternatives"`
	Message               string       `json:"message,omitempty"`
}

// ReservationResponse for reservation display
type ReservationResponse struct {
	ID             string    `json:"id"`
	PublicCode     string    `json:"public_code"`
	ConversationID string    `json:"conversation_id"`
	ContactID      string    `json:"contact_id"`
	StartAt        time.Time `json:"start_at"`
	EndAt          time.Time `json:"end_at"`
	Timezone       string    `json:"timezone"`
	Location       string    `json:"location"`
	Status         string    `json:"status"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
}

// BlockResponse for administrative blackouts
type BlockResponse struct {
	ID        string    `json:"id"`
	StartAt   time.Time `json:"start_at"`
	Location  string    `json:"location"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AlternativesResponse for the standalone alternatives endpoint
type AlternativesResponse struct {
	Alternatives []SlotDTO `json:"alternatives"`
	Message      string    `json:"message"`
}

// ===================== Mapper functions =====================

func ToSlotDTO(s *entity.SlotCandidate) *SlotDTO {
	if s == nil {
		return nil
	}
	return &SlotDTO{
		Day:      s.DayLabel,
		Time:     s.TimeLabel,
		Location: s.Location,
		Timezone: s.Timezone,
		StartAt:  s.StartAt,
		EndAt:    s.EndAt,
	}
}

func ToSlotDTOs(slots []entity.SlotCandidate) []SlotDTO {
	result := make([]SlotDTO, 0, len(slots))
	for i := range slots {
		result = append(result, *ToSlotDTO(&slots[i]))
	}
	return result
}

func ToReservationResponse(r *entity.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:             r.ID.String(),
		PublicCode:     r.PublicCode,
		ConversationID: r.ConversationID,
		ContactID:      r.ContactID,
		StartAt:        r.StartAt,
		EndAt:          r.EndAt,
		Timezone:       r.Timezone,
		Location:       r.Location,
		Status:         string(r.Status),
		Active:         r.IsActive(),
		CreatedAt:      r.CreatedAt,
	}
}

func ToBlockResponse(b *entity.SlotBlock) *BlockResponse {
	return &BlockResponse{
		ID:        b.ID.String(),
		StartAt:   b.StartAt,
		Location:  b.Location,
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}
}
