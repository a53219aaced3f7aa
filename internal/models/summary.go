package models

import "errors"

// HabitCategory is the closed set of habit categories the pipeline
// understands. Anything the classifier cannot place lands in CategoryOther.
type HabitCategory string

const (
	CategoryNicotineSmoking  HabitCategory = "nicotine_smoking"
	CategoryNicotineVaping   HabitCategory = "nicotine_vaping"
	CategoryNicotineOral     HabitCategory = "nicotine_oral"
	CategoryPornography      HabitCategory = "pornography"
	CategorySocialMedia      HabitCategory = "social_media"
	CategoryGaming           HabitCategory = "gaming"
	CategoryFoodOvereating   HabitCategory = "food_overeating"
	CategoryShoppingSpending HabitCategory = "shopping_spending"
	CategoryProcrastination  HabitCategory = "procrastination"
	CategoryAlcohol          HabitCategory = "alcohol"
	CategoryCannabis         HabitCategory = "cannabis"
	CategoryOther            HabitCategory = "other"
)

// Confidence values for category classification.
const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// Severity values for severity_level.
const (
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

var (
	ErrMissingCanonicalName = errors.New("canonical_habit_name cannot be empty")
)

// IsValidHabitCategory checks if the given category is one of the closed set.
func IsValidHabitCategory(c HabitCategory) bool {
	switch c {
	case CategoryNicotineSmoking, CategoryNicotineVaping, CategoryNicotineOral,
		CategoryPornography, CategorySocialMedia, CategoryGaming,
		CategoryFoodOvereating, CategoryShoppingSpending, CategoryProcrastination,
		CategoryAlcohol, CategoryCannabis, CategoryOther:
		return true
	default:
		return false
	}
}

// QuizSummary is the mechanism-level diagnostic profile distilled from the
// habit description, the quiz, and the user's answers. Identity and
// mechanism fields drive plan generation; the legacy descriptive fields may
// be empty or "not central" when the quiz does not support them.
type QuizSummary struct {
	// Identity fields.
	UserHabitRaw       string        `json:"user_habit_raw"`
	CanonicalHabitName string        `json:"canonical_habit_name"`
	HabitCategory      HabitCategory `json:"habit_category"`
	CategoryConfidence string        `json:"category_confidence"`
	ProductType        string        `json:"product_type"`
	SeverityLevel      string        `json:"severity_level"`

	// Mechanism fields: the psychological engine behind the habit.
	CoreLoop          string `json:"core_loop"`
	PrimaryPayoff     string `json:"primary_payoff"`
	AvoidanceTarget   string `json:"avoidance_target"`
	IdentityLink      string `json:"identity_link"`
	DopamineProfile   string `json:"dopamine_profile"`
	CollapseCondition string `json:"collapse_condition"`
	LongTermCost      string `json:"long_term_cost"`

	// Legacy descriptive fields.
	MainTrigger       string `json:"main_trigger"`
	PeakTimes         string `json:"peak_times"`
	CommonLocations   string `json:"common_locations"`
	EmotionalPatterns string `json:"emotional_patterns"`
	FrequencyPattern  string `json:"frequency_pattern"`
	PreviousAttempts  string `json:"previous_attempts"`
	MotivationReason  string `json:"motivation_reason"`
	RiskSituations    string `json:"risk_situations"`

	MechanismSummary string `json:"mechanism_summary,omitempty"`
}

// Validate checks the minimal identity contract. Categories outside the
// closed set are not an error at the model level; the guidance engine
// treats them as "other".
func (q *QuizSummary) Validate() error {
	if q.CanonicalHabitName == "" && q.UserHabitRaw == "" {
		return ErrMissingCanonicalName
	}
	return nil
}

// HabitName returns the best available habit label: canonical name, raw
// wording, or the given default.
func (q *QuizSummary) HabitName(def string) string {
	if q == nil {
		return def
	}
	if q.CanonicalHabitName != "" {
		return q.CanonicalHabitName
	}
	if q.UserHabitRaw != "" {
		return q.UserHabitRaw
	}
	return def
}
