package input

// Priority tags an input vector by the controller that produced it
type Priority uint8

const (
	PriorityGhost Priority = iota
	PriorityHunter
	PriorityStandard

	priorityCount
)

// String returns the priority name
func (p Priority) String() string {
	switch p {
	case PriorityGhost:
		return "Ghost"
	case PriorityHunter:
		return "Hunter"
	case PriorityStandard:
		return "Standard"
	default:
		return "Unknown"
	}
}

// Button identifies a device action button
type Button uint8

const (
	Action1 Button = iota
	Action2
	Action3
	Action4

	ButtonCount
)

// Role bindings of the action buttons
const (
	ButtonPossess = Action1 // Ghost: jump to the closest actor
	ButtonHaunt   = Action3 // Ghost: haunt current room
	ButtonSmell   = Action1 // Hunter: hold to hear the ghost trail
	ButtonCatch   = Action4 // Hunter: attempt a catch
)
