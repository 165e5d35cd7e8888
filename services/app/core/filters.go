package core

import (
	"sort"
	"strings"
)

// Match reports whether t passes every non-empty filter.
func (f TaskFilters) Match(t Task) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		return strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q)
	}
	return true
}

// Merge applies p on top of f.
func (f TaskFilters) Merge(p FiltersPatch) TaskFilters {
	if p.Status != nil {
		f.Status = *p.Status
	}
	if p.Category != nil {
		f.Category = *p.Category
	}
	if p.Priority != nil {
		f.Priority = *p.Priority
	}
	if p.Search != nil {
		f.Search = *p.Search
	}
	return f
}

// FilterTasks keeps the tasks matching f in their original order.
func FilterTasks(tasks []Task, f TaskFilters) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

func ComputeStats(tasks []Task) TaskStats {
	stats := TaskStats{
		Total:      len(tasks),
		ByStatus:   map[string]int{},
		ByCategory: map[string]int{},
	}
	for _, t := range tasks {
		switch t.Status {
		case StatusCompleted:
			stats.Completed++
		case StatusPending:
			stats.Pending++
		case StatusInProgress:
			stats.InProgress++
		}
		stats.ByStatus[string(t.Status)]++
		stats.ByCategory[t.Category]++
	}
	return stats
}

// DistinctCategories returns the categories used by tasks, deduplicated and sorted.
func DistinctCategories(tasks []Task) []string {
	seen := make(map[string]struct{}, len(tasks))
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}
	sort.Strings(out)
	return out
}
