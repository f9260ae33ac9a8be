package domain

type EventStatus string

const (
	EventPlanned     EventStatus = "planned"
	EventTBC         EventStatus = "tbc"
	EventCompleted   EventStatus = "completed"
	EventUncompleted EventStatus = "uncompleted"
)

// ValidEventStatuses is the canonical set of accepted event status strings.
var ValidEventStatuses = map[string]bool{
	"planned": true, "tbc": true, "completed": true, "uncompleted": true,
}

type CommissionType string

const (
	CommissionPerHour CommissionType = "per_hour"
	CommissionFlat    CommissionType = "flat"
)
