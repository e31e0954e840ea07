package workorder

import "strings"

// Status is the lifecycle state of a work order
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusAssigned   Status = "ASSIGNED"
	StatusAccepted   Status = "ACCEPTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// transitions lists the legal next states. COMPLETED and CANCELLED are terminal.
// Completion confirms the whole task in one step and is legal only from PENDING.
// ASSIGNED, ACCEPTED and IN_PROGRESS are pass-through workflow states set by a
// direct status update; they carry no rules of their own.
var transitions = map[Status][]Status{
	StatusPending:    {StatusAssigned, StatusAccepted, StatusInProgress, StatusCompleted, StatusCancelled},
	StatusAssigned:   {StatusAccepted, StatusInProgress, StatusCancelled},
	StatusAccepted:   {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsActive is true for every non-terminal status
func (s Status) IsActive() bool {
	return s.IsValid() && !s.IsTerminal()
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// ActiveStatuses returns the non-terminal statuses in lifecycle order
func ActiveStatuses() []Status {
	return []Status{StatusPending, StatusAssigned, StatusAccepted, StatusInProgress}
}

// ParseStatus accepts any letter case
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", NewInvalidStatusValueError(s)
	}
	return status, nil
}
