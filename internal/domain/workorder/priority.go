package workorder

import "strings"

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

var priorityRank = map[Priority]int{
	PriorityUrgent: 0,
	PriorityHigh:   1,
	PriorityMedium: 2,
	PriorityLow:    3,
}

// ParsePriority validates against the fixed enum. An empty value defaults to MEDIUM.
func ParsePriority(s string) (Priority, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(s))
	if trimmed == "" {
		return PriorityMedium, nil
	}
	p := Priority(trimmed)
	if _, ok := priorityRank[p]; !ok {
		return "", NewInvalidPriorityError(s)
	}
	return p, nil
}

// Rank orders priorities, lower is more urgent
func (p Priority) Rank() int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return len(priorityRank)
}
