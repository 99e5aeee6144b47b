package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeRoleCreated      = "role.created"
	EventTypeRoleUpdated      = "role.updated"
	EventTypeRoleDeleted      = "role.deleted"
	EventTypeTripLogGenerated = "triplog.generated"
	EventTypeTripLogSaved     = "triplog.saved"
)

type RoleChangedEvent struct {
	BaseEvent
	RoleID   int64  `json:"role_id"`
	RoleName string `json:"role_name"`
	Grants   int    `json:"grants"`
}

func newRoleEvent(eventType string, roleID int64, roleName string, grants int) *RoleChangedEvent {
	return &RoleChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"role_id":   roleID,
				"role_name": roleName,
				"grants":    grants,
			},
		},
		RoleID:   roleID,
		RoleName: roleName,
		Grants:   grants,
	}
}

func NewRoleCreatedEvent(roleID int64, roleName string, grants int) *RoleChangedEvent {
	return newRoleEvent(EventTypeRoleCreated, roleID, roleName, grants)
}

func NewRoleUpdatedEvent(roleID int64, roleName string, grants int) *RoleChangedEvent {
	return newRoleEvent(EventTypeRoleUpdated, roleID, roleName, grants)
}

func NewRoleDeletedEvent(roleID int64, roleName string) *RoleChangedEvent {
	return newRoleEvent(EventTypeRoleDeleted, roleID, roleName, 0)
}

type TripLogEvent struct {
	BaseEvent
	Registration string `json:"registration"`
	Month        int    `json:"month"`
	Year         int    `json:"year"`
	Legs         int    `json:"legs"`
	TotalKm      int    `json:"total_km"`
}

func newTripLogEvent(eventType, registration string, month, year, legs, totalKm int) *TripLogEvent {
	return &TripLogEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"registration": registration,
				"month":        month,
				"year":         year,
				"legs":         legs,
				"total_km":     totalKm,
			},
		},
		Registration: registration,
		Month:        month,
		Year:         year,
		Legs:         legs,
		TotalKm:      totalKm,
	}
}

func NewTripLogGeneratedEvent(registration string, month, year, legs, totalKm int) *TripLogEvent {
	return newTripLogEvent(EventTypeTripLogGenerated, registration, month, year, legs, totalKm)
}

func NewTripLogSavedEvent(registration string, month, year, legs int) *TripLogEvent {
	return newTripLogEvent(EventTypeTripLogSaved, registration, month, year, legs, 0)
}
