package models

import (
	"errors"
	"fmt"
	"strings"
)

// PlanDays is the fixed length of an intervention plan.
const PlanDays = 21

// Error variables for plan validation.
var (
	ErrMissingPlanSummary = errors.New("plan_summary cannot be empty")
	ErrMissingDayTask     = errors.New("plan is missing a day task")
	ErrUnknownDayKey      = errors.New("plan contains an unknown day key")
)

// Plan21D is the 21-day intervention plan. DayTasks always carries exactly
// the keys day_1..day_21, each mapped to a non-empty directive, in any
// value handed to a caller.
type Plan21D struct {
	PlanSummary string            `json:"plan_summary"`
	DayTasks    map[string]string `json:"day_tasks"`
}

// DayKey maps a 1-based day number to its canonical key, e.g. 5 -> "day_5".
func DayKey(n int) string {
	return fmt.Sprintf("day_%d", n)
}

// DayKeys returns the 21 canonical day keys in order.
func DayKeys() []string {
	keys := make([]string, 0, PlanDays)
	for i := 1; i <= PlanDays; i++ {
		keys = append(keys, DayKey(i))
	}
	return keys
}

// IsDayKey reports whether k is one of day_1..day_21.
func IsDayKey(k string) bool {
	for i := 1; i <= PlanDays; i++ {
		if k == DayKey(i) {
			return true
		}
	}
	return false
}

// Validate enforces the completeness contract: a summary plus all 21 day
// keys with non-empty tasks, and nothing else.
func (p *Plan21D) Validate() error {
	if strings.TrimSpace(p.PlanSummary) == "" {
		return ErrMissingPlanSummary
	}
	for _, key := range DayKeys() {
		task, ok := p.DayTasks[key]
		if !ok || strings.TrimSpace(task) == "" {
			return fmt.Errorf("%w: %s", ErrMissingDayTask, key)
		}
	}
	for key := range p.DayTasks {
		if !IsDayKey(key) {
			return fmt.Errorf("%w: %s", ErrUnknownDayKey, key)
		}
	}
	return nil
}
