package event

import "github.com/oklog/ulid/v2"

// EventType represents the type of game event
type EventType int

const (
	// EventTick is reserved for automatic FSM transitions and never published on the bus
	EventTick EventType = iota

	// EventPauseGame freezes arbitration, motor force and ghost tracking
	// Trigger: device assignment reset, pause menu
	// Consumer: Motor, GhostControl, Reveal | Payload: nil
	EventPauseGame

	// EventResumeGame resumes simulation after a pause
	// Trigger: device assignment completed
	// Consumer: Motor, GhostControl, Reveal | Payload: nil
	EventResumeGame

	// EventStartGame marks the first time both roles have a device
	// Trigger: device assignment, first completion only
	// Consumer: Director | Payload: nil
	EventStartGame

	// EventHaunt signals the start or end of a haunt
	// Trigger: Director haunt request and haunt expiry
	// Consumer: Behavior (scared), haunt sting | Payload: HauntPayload
	EventHaunt

	// EventPossession signals a possession attempt result
	// Trigger: Director possession request
	// Consumer: Behavior (confused) | Payload: PossessionPayload
	EventPossession

	// EventCatch signals a catch attempt result
	// Trigger: Director catch request
	// Consumer: Motor (catch latch) | Payload: CatchPayload
	EventCatch

	// EventEndGame signals the end of the round
	// Trigger: successful catch
	// Consumer: Reveal | Payload: nil
	EventEndGame
)

// RoomID identifies a room of the mansion
type RoomID int

// NoRoom is reported for positions outside every room
const NoRoom RoomID = -1

// GameEvent represents a single published event
type GameEvent struct {
	ID      ulid.ULID
	Type    EventType
	Payload any
}

// String returns the registered name of the event type
func (t EventType) String() string {
	return GetEventName(t)
}
