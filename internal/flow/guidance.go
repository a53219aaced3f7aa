package flow

import (
	"fmt"
	"strings"

	"github.com/unhabit-ai/unhabit/internal/models"
)

const guidanceBaseContext = `User-specific context:
- Exact wording: %s
- Canonical habit name: %s
- Severity: %s
- Main trigger: %s
- Peak times (when it MOST OFTEN happens, not the only possible times): %s
- Common locations (where it MOST OFTEN happens, not the only places): %s
- Emotional pattern: %s
- Frequency pattern: %s
- Motivation: %s
- High-risk situations: %s
- Previous attempts: %s

Global rules for using this information in the 21-day plan:
- Treat peak times and common locations as patterns or hotspots, NOT as exclusive rules.
- Do NOT assume the habit only happens at %s or only during %s unless the summary explicitly says so.
- At most about half of the daily tasks should explicitly mention a specific location like %s.
- At most about half of the daily tasks should explicitly mention a specific time window like %s.
- The remaining tasks should either be:
  - location-agnostic (work anywhere), or
  - clearly applicable across multiple contexts (home, outside, work, with friends, etc.).
- Use language like "often at home", "usually late at night", "especially in your room"
  instead of "only at home" or "always late at night", unless the summary literally says it ONLY happens there.
- Make sure at least a few tasks explicitly handle situations where the habit appears
  in other places or times than %s / %s (for example outside, with friends, or at random times).

Plan must explicitly reference these details across the 21 days, but in a BALANCED way that still works
if the habit also shows up in other places or times.
`

// orDefault substitutes def for empty summary fields so the guidance text
// never embeds a blank.
func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

// CategoryGuidance renders the category- and user-specific strategy block
// injected into the plan prompt, so each habit type produces a structurally
// different 21-day plan. It is pure: same summary in, same text out, with
// no generation involved.
func CategoryGuidance(summary *models.QuizSummary) string {
	if summary == nil {
		summary = &models.QuizSummary{}
	}

	cat := strings.ToLower(string(summary.HabitCategory))
	severity := summary.SeverityLevel
	name := summary.HabitName("the habit")
	raw := summary.UserHabitRaw
	trigger := orDefault(summary.MainTrigger, "unclear triggers")
	peak := orDefault(summary.PeakTimes, "unclear peak times")
	loc := orDefault(summary.CommonLocations, "unclear locations")
	emo := orDefault(summary.EmotionalPatterns, "unclear emotional patterns")
	freq := orDefault(summary.FrequencyPattern, "unclear frequency")
	motive := orDefault(summary.MotivationReason, "unclear motivation")
	risk := orDefault(summary.RiskSituations, "unclear risk situations")
	prev := orDefault(summary.PreviousAttempts, "not clearly described")

	baseContext := fmt.Sprintf(guidanceBaseContext,
		raw, name, severity, trigger, peak, loc, emo, freq, motive, risk, prev,
		loc, peak,
		loc,
		peak,
		loc, peak,
	)

	var catBlock string
	switch cat {
	case "nicotine_smoking", "nicotine_vaping", "nicotine_oral":
		catBlock = fmt.Sprintf(`Category: Nicotine

Core strategy:
- Treat %s as a dopamine and ritual loop, not just a chemical.
- Emphasize routines around peak times (for example %s), and environments like %s.
- Explicitly build friction around storage, access, purchase, and first use of the day.
- For oral products like pouches, include mouth and hand substitution tasks.
- For higher severity, include more aggressive environment restructuring and longer urge delays.

Must include across 21 days:
- At least 4 tasks about changing where %s is kept or accessed.
- At least 4 tasks about first use of the day and last use window.
- At least 3 tasks about physical state regulation during withdrawal (sleep window, hydration, body movement).
- At least 3 tasks that use emotional patterns like %s to pre-empt urges.
`, name, peak, loc, name, emo)

	case "pornography":
		catBlock = fmt.Sprintf(`Category: Pornography / sexual content

Core strategy:
- Treat %s as a privacy plus device plus emotional loop.
- Focus on device rules, room layout, and late-night behaviour, especially around %s.
- Explicitly design friction around entering high-risk locations such as %s.
- Use stimulus control (lights, door, blockers, charging locations) instead of just "willpower".
- Tie reflection tasks to shame cycles and emotion patterns like %s, but without using shame language.

Must include across 21 days:
- At least 4 tasks that change how and where the device is used.
- At least 3 tasks that pre-empt late-night or alone-time triggers.
- At least 3 tasks that redirect immediately after a strong urge into a specific alternative behaviour.
- At least 2 tasks that review a slip in a non-judgmental, purely diagnostic way.
`, name, peak, loc, emo)

	case "screen_time", "social_media", "gaming":
		catBlock = fmt.Sprintf(`Category: Screen-based habit (social media, scrolling, or gaming)

Core strategy:
- Treat %s as an algorithm plus environment plus boredom loop.
- Focus on first and last 30 minutes of the day, especially if peak times include %s.
- Redesign notification logic, home screen layout, and app availability.
- Use strong "screen zones" and "screen windows" instead of unrealistic total bans.
- Tie replacement activities to the motivation: %s.

Must include across 21 days:
- At least 3 tasks modifying notifications, app positions, or app removal.
- At least 3 tasks that change morning behaviour before the first use.
- At least 3 tasks that change evening behaviour and pre-sleep routines.
- At least 3 tasks that deliberately swap a high-risk scrolling window with something aligned to %s.
`, name, peak, motive, motive)

	case "alcohol", "cannabis":
		catBlock = fmt.Sprintf(`Category: Substance use (alcohol or cannabis)

Core strategy:
- Treat %s as a context plus people plus emotional regulation loop.
- Focus on social settings, routes, and specific times like %s.
- Include clear "no-use" contexts and re-routing strategies for high-risk places like %s.
- Include craving delay plus alternative rituals at the exact times they usually use.
- Tie medium-term tasks to motivation %s and long-term identity.

Must include across 21 days:
- At least 3 tasks that alter routes or places that usually lead to use.
- At least 3 tasks that create explicit "no-use" rules in specific contexts.
- At least 3 tasks focused on high-risk situations described as %s.
- At least 2 tasks rehearsing what to do during a social invite or stress spike.
`, name, peak, loc, motive, risk)

	case "sugar", "food_overeating":
		catBlock = fmt.Sprintf(`Category: Food / sugar / overeating

Core strategy:
- Treat %s as a kitchen plus shopping plus emotional soothing loop.
- Focus on visibility and proximity of foods, especially around locations like %s.
- Tie tasks to emotional states like %s and times like %s.
- Include shopping list and preparation changes that reduce impulsive access.
- Use small plate, portion, and environment tricks rather than "never eat X again" rules.

Must include across 21 days:
- At least 3 tasks about shopping or preparing alternatives in advance.
- At least 3 tasks about changing visibility and proximity of trigger foods.
- At least 3 tasks about emotional check-ins before eating in high-risk moments.
- At least 2 tasks about how to handle evenings or specific risk situations like %s.
`, name, loc, emo, peak, risk)

	case "shopping_spending", "gambling":
		catBlock = fmt.Sprintf(`Category: Spending / gambling

Core strategy:
- Treat %s as a excitement plus access plus impulse loop.
- Focus on financial access: cards, apps, cash, sites, groups.
- Use strong pre-commitment rules, delays, and visibility of consequences.
- Tie specific tasks to high-risk times or contexts like %s and %s.
- Use replacement forms of excitement or reward that are lower-risk.

Must include across 21 days:
- At least 3 tasks about restricting or delaying financial access.
- At least 3 tasks about changing what happens in the 10-20 minutes before spending or betting.
- At least 2 tasks about reviewing a past spending or gambling episode analytically, not emotionally.
- At least 2 tasks that explicitly reinforce the motivation: %s.
`, name, peak, risk, motive)

	case "procrastination":
		catBlock = fmt.Sprintf(`Category: Procrastination

Core strategy:
- Treat %s as avoidance of a specific type of work or feeling.
- Tie tasks directly to the kind of work they avoid most (for example study or deep work).
- Use very small, clear start behaviours instead of vague discipline tasks.
- Design environment and time box rules around the true peak avoidance windows like %s.
- Link identity work to becoming someone who handles %s with short, focused bursts.

Must include across 21 days:
- At least 5 tasks that define a tiny, concrete starting action (for example open document and write one sentence).
- At least 3 tasks that reduce distractions in the main work location %s.
- At least 3 tasks that handle emotional patterns like %s before work instead of during.
- At least 2 tasks that rehearse what to do after a bad day without abandoning the plan.
`, name, peak, trigger, loc, emo)

	default:
		catBlock = fmt.Sprintf(`Category: Other or unclear

Core strategy:
- The category label is not precise, so lean heavily on the user's actual patterns.
- Design tasks explicitly around the main trigger %s, peak times %s, and locations %s.
- Use emotional pattern %s to time interventions before the urge becomes very strong.
- Apply standard habit-breaking tools: friction, replacement, identity, slip recovery, environment design.

Must include across 21 days:
- At least 5 tasks that directly reference the described triggers, times, or locations.
- At least 3 tasks that practice urge delay plus a named replacement behaviour.
- At least 2 tasks that explicitly connect daily actions to the motivation: %s.
`, trigger, peak, loc, emo, motive)
	}

	return baseContext + "\n" + catBlock
}
