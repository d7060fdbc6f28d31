package requests

import (
	"strings"

	"fixora/models"
)

// BadgeStyle names the visual treatment of a status badge.
type BadgeStyle string

const (
	BadgeNeutral BadgeStyle = "neutral"
	BadgeInfo    BadgeStyle = "info"
	BadgeWarning BadgeStyle = "warning"
	BadgeSuccess BadgeStyle = "success"
	BadgeDanger  BadgeStyle = "danger"
)

// StatusLabel maps a status to its display label. Pure function; used
// consistently in list and detail views.
func StatusLabel(status models.RequestStatus) string {
	switch status {
	case models.StatusPending:
		return "Sent"
	case models.StatusAccepted:
		return "Accepted"
	case models.StatusOnHold:
		return "On Hold"
	case models.StatusInProcess:
		return "In Process"
	case models.StatusCompleted:
		return "Completed"
	case models.StatusCancelled:
		return "Cancelled"
	}
	return string(status)
}

// StatusBadge maps a status to its badge style. Pure function.
func StatusBadge(status models.RequestStatus) BadgeStyle {
	switch status {
	case models.StatusPending:
		return BadgeNeutral
	case models.StatusAccepted:
		return BadgeInfo
	case models.StatusOnHold:
		return BadgeWarning
	case models.StatusInProcess:
		return BadgeInfo
	case models.StatusCompleted:
		return BadgeSuccess
	case models.StatusCancelled:
		return BadgeDanger
	}
	return BadgeNeutral
}

// NormalizeStatus folds backend label variants ("on hold", "In Process")
// onto the canonical status keys.
func NormalizeStatus(raw string) models.RequestStatus {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")
	return models.RequestStatus(key)
}

// NormalizeCounts converts raw backend count keys into canonical
// StatusCounts.
func NormalizeCounts(raw map[string]int) models.StatusCounts {
	counts := make(models.StatusCounts, len(raw))
	for k, v := range raw {
		counts[NormalizeStatus(k)] += v
	}
	return counts
}

// TotalCount sums every status, independent of the active filter.
func TotalCount(counts models.StatusCounts) int {
	total := 0
	for _, v := range counts {
		total += v
	}
	return total
}
