package event

// HauntPayload carries haunt start/end results
type HauntPayload struct {
	IsStart   bool   `yaml:"is_start"`
	Succeeded bool   `yaml:"succeeded"`
	Room      RoomID `yaml:"room"`
}

// PossessionPayload carries the possession attempt result
type PossessionPayload struct {
	Succeeded bool   `yaml:"succeeded"`
	Room      RoomID `yaml:"room"`
}

// CatchPayload carries the catch attempt result
type CatchPayload struct {
	Successful bool `yaml:"successful"`
}
