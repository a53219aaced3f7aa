package flow

import (
	"fmt"

	"github.com/unhabit-ai/unhabit/internal/models"
)

// FallbackPlan synthesizes the deterministic 21-day plan used when plan
// generation fails or no summary is available. It is pure: same summary
// in, same plan out. The summary, when present, contributes the habit
// label, trigger, and motivation; everything else is fixed structure with
// weekly slip-recovery days on day 7 and day 14.
func FallbackPlan(summary *models.QuizSummary) *models.Plan21D {
	habit := "your habit"
	trigger := "your usual triggers"
	motive := "your reasons for change"
	if summary != nil {
		habit = summary.HabitName(habit)
		trigger = orDefault(summary.MainTrigger, trigger)
		motive = orDefault(summary.MotivationReason, motive)
	}

	planSummary := fmt.Sprintf(
		"This 21-day plan helps you reduce %s with small daily actions, "+
			"focusing on awareness, friction around %s, and identity shifts based on %s.",
		habit, trigger, motive,
	)

	dayTasks := map[string]string{
		"day_1":  fmt.Sprintf("Write down when and why %s usually happens. No pressure to change yet.", habit),
		"day_2":  fmt.Sprintf("Before each urge for %s, pause 30 seconds and name what you’re feeling.", habit),
		"day_3":  fmt.Sprintf("Move one step further from your usual %s location before acting.", trigger),
		"day_4":  "Choose a 5-minute healthy activity to try once when an urge appears.",
		"day_5":  fmt.Sprintf("Disable one small cue that feeds %s (notification, tab, app, or object).", habit),
		"day_6":  fmt.Sprintf("Set a clear daily cutoff time after which you do not allow %s.", habit),
		"day_7":  "Slip-recovery: review this week, note one pattern, and adjust cutoff time if needed.",
		"day_8":  fmt.Sprintf("Delay %s by 5 minutes once today and do your chosen healthy activity first.", habit),
		"day_9":  fmt.Sprintf("Change your usual %s location; do it somewhere less comfortable if you must.", habit),
		"day_10": fmt.Sprintf("Tell future-you in a note why reducing %s matters over the next 3 months.", habit),
		"day_11": fmt.Sprintf("Reduce one typical %s episode by half in time, intensity, or frequency.", habit),
		"day_12": "Plan a simple evening routine that does not include your main trigger source.",
		"day_13": "Practice one ‘urge surfing’ cycle: breathe, observe, and let one urge pass unacted.",
		"day_14": "Slip-recovery: list three things that went well and one small adjustment for next week.",
		"day_15": fmt.Sprintf("Define a rule: one specific situation where %s is no longer allowed at all.", habit),
		"day_16": fmt.Sprintf("Replace one full %s episode with your healthy alternative, start to finish.", habit),
		"day_17": "Prepare your environment tonight so tomorrow’s first hour is completely trigger-free.",
		"day_18": fmt.Sprintf("Teach someone (or journal) one insight you’ve learned about your %s triggers.", habit),
		"day_19": "Create a 2-sentence identity statement about who you’re becoming without this habit.",
		"day_20": "Plan how you will keep these limits and routines going after Day 21.",
		"day_21": "Review progress, refresh your identity statement, and choose one long-term keystone rule.",
	}

	return &models.Plan21D{PlanSummary: planSummary, DayTasks: dayTasks}
}
