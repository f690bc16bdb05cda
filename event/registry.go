package event

import (
	"reflect"
	"strings"
)

const tickName = "Tick"

type kind struct {
	name    string
	payload reflect.Type // nil for bare events
}

// catalog is filled once at init and read-only afterwards
var (
	kinds  = map[EventType]kind{}
	byName = map[string]EventType{}
)

func init() {
	for _, k := range []struct {
		et      EventType
		name    string
		payload any
	}{
		{EventPauseGame, "PauseGame", nil},
		{EventResumeGame, "ResumeGame", nil},
		{EventStartGame, "StartGame", nil},
		{EventHaunt, "Haunt", HauntPayload{}},
		{EventPossession, "Possession", PossessionPayload{}},
		{EventCatch, "Catch", CatchPayload{}},
		{EventEndGame, "EndGame", nil},
	} {
		entry := kind{name: k.name}
		if k.payload != nil {
			entry.payload = reflect.TypeOf(k.payload)
		}
		kinds[k.et] = entry
		byName[strings.ToLower(k.name)] = k.et
	}
}

// GetEventType resolves a case-insensitive event name, Tick included
func GetEventType(name string) (EventType, bool) {
	if strings.EqualFold(name, tickName) {
		return EventTick, true
	}
	et, ok := byName[strings.ToLower(name)]
	return et, ok
}

// GetEventName is the inverse of GetEventType
func GetEventName(et EventType) string {
	if et == EventTick {
		return tickName
	}
	if k, ok := kinds[et]; ok {
		return k.name
	}
	return "Unknown"
}

// NewPayloadStruct allocates a zero payload for et and returns the pointer, nil for bare events
func NewPayloadStruct(et EventType) any {
	k, ok := kinds[et]
	if !ok || k.payload == nil {
		return nil
	}
	return reflect.New(k.payload).Interface()
}
