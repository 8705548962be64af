// Package query implements the task list view: completion filtering,
// ordering, and text search over a single owner's tasks. It never touches
// the store; handlers pass in the owner-scoped slice and an explicit
// Params value, which keeps the engine pure and testable.
package query

import (
	"sort"
	"strings"

	"taskflow/internal/model"
)

type Filter string

const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
	FilterPending   Filter = "pending"
)

type Sort string

const (
	SortCreatedAt Sort = "createdAt"
	SortDueDate   Sort = "dueDate"
	SortPriority  Sort = "priority"
)

// Params carries the client's view state for one list call.
type Params struct {
	Filter Filter
	Sort   Sort
	Search string
}

// ParseFilter maps a raw query value to a Filter, falling back to "all"
// for anything unrecognized.
func ParseFilter(s string) Filter {
	switch Filter(s) {
	case FilterCompleted, FilterPending:
		return Filter(s)
	default:
		return FilterAll
	}
}

// ParseSort maps a raw query value to a Sort, falling back to "createdAt".
func ParseSort(s string) Sort {
	switch Sort(s) {
	case SortDueDate, SortPriority:
		return Sort(s)
	default:
		return SortCreatedAt
	}
}

// Apply returns the tasks matching p, ordered per p.Sort. The input slice is
// not modified. A no-match result is an empty slice, never nil or an error.
func Apply(tasks []model.Task, p Params) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if matchFilter(t, p.Filter) {
			out = append(out, t)
		}
	}

	sortTasks(out, p.Sort)

	if term := strings.TrimSpace(p.Search); term != "" {
		out = searchTasks(out, term)
	}
	return out
}

func matchFilter(t model.Task, f Filter) bool {
	switch f {
	case FilterCompleted:
		return t.Completed
	case FilterPending:
		return !t.Completed
	default:
		return true
	}
}

func sortTasks(tasks []model.Task, s Sort) {
	switch s {
	case SortDueDate:
		// Ascending by due date; a task with no due date sorts after every
		// task that has one. Ties fall through to newest-first.
		sort.SliceStable(tasks, func(i, j int) bool {
			a, b := tasks[i].DueDate, tasks[j].DueDate
			switch {
			case a == nil && b == nil:
				return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
			case a == nil:
				return false
			case b == nil:
				return true
			case a.Equal(*b):
				return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
			default:
				return a.Before(*b)
			}
		})
	case SortPriority:
		sort.SliceStable(tasks, func(i, j int) bool {
			ri, rj := tasks[i].Priority.Rank(), tasks[j].Priority.Rank()
			if ri == rj {
				return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
			}
			return ri > rj
		})
	default:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
	}
}

// searchTasks keeps tasks whose title or description contains term,
// case-insensitive. Description may be empty.
func searchTasks(tasks []model.Task, term string) []model.Task {
	term = strings.ToLower(term)
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), term) ||
			strings.Contains(strings.ToLower(t.Description), term) {
			out = append(out, t)
		}
	}
	return out
}
