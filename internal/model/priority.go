package model

// Priority is the task severity level. The zero value is invalid; callers
// that accept user input should go through ParsePriority.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// priorityRank fixes the ordering used when sorting by priority.
var priorityRank = map[Priority]int{
	PriorityHigh:   3,
	PriorityMedium: 2,
	PriorityLow:    1,
}

// ParsePriority maps a raw string to a Priority. An empty string falls back
// to medium; anything else unknown is rejected rather than coerced.
func ParsePriority(s string) (Priority, bool) {
	if s == "" {
		return PriorityMedium, true
	}
	p := Priority(s)
	if _, ok := priorityRank[p]; !ok {
		return "", false
	}
	return p, true
}

// Rank returns the numeric severity of p (high=3, medium=2, low=1).
// Unknown values rank below low.
func (p Priority) Rank() int {
	return priorityRank[p]
}
