package flow

import (
	"strings"
	"testing"

	"github.com/unhabit-ai/unhabit/internal/models"
)

func TestCategoryGuidanceNicotine(t *testing.T) {
	summary := &models.QuizSummary{
		UserHabitRaw:       "zyn all day",
		CanonicalHabitName: "frequent nicotine pouch use",
		HabitCategory:      models.CategoryNicotineOral,
		SeverityLevel:      models.SeverityModerate,
		PeakTimes:          "during work calls",
		CommonLocations:    "desk",
		EmotionalPatterns:  "stress",
	}

	text := CategoryGuidance(summary)

	if !strings.Contains(text, "Category: Nicotine") {
		t.Error("expected the nicotine category block")
	}
	if !strings.Contains(text, "At least 4 tasks about changing where frequent nicotine pouch use is kept or accessed.") {
		t.Error("expected the storage/access quota with the habit name substituted")
	}
	if !strings.Contains(text, "mouth and hand substitution tasks") {
		t.Error("expected the oral product strategy line")
	}
	if !strings.Contains(text, "during work calls") || !strings.Contains(text, "desk") {
		t.Error("expected user-specific context embedded in the guidance")
	}
}

func TestCategoryGuidanceDispatch(t *testing.T) {
	cases := []struct {
		category models.HabitCategory
		want     string
	}{
		{models.CategoryNicotineSmoking, "Category: Nicotine"},
		{models.CategoryNicotineVaping, "Category: Nicotine"},
		{models.CategoryNicotineOral, "Category: Nicotine"},
		{models.CategoryPornography, "Category: Pornography / sexual content"},
		{models.CategorySocialMedia, "Category: Screen-based habit"},
		{models.CategoryGaming, "Category: Screen-based habit"},
		{models.CategoryAlcohol, "Category: Substance use"},
		{models.CategoryCannabis, "Category: Substance use"},
		{models.CategoryFoodOvereating, "Category: Food / sugar / overeating"},
		{models.CategoryShoppingSpending, "Category: Spending / gambling"},
		{models.CategoryProcrastination, "Category: Procrastination"},
		{models.CategoryOther, "Category: Other or unclear"},
	}
	for _, tc := range cases {
		t.Run(string(tc.category), func(t *testing.T) {
			summary := &models.QuizSummary{
				CanonicalHabitName: "the habit",
				HabitCategory:      tc.category,
			}
			if text := CategoryGuidance(summary); !strings.Contains(text, tc.want) {
				t.Errorf("category %q: expected block %q", tc.category, tc.want)
			}
		})
	}
}

func TestCategoryGuidanceUnknownCategoryFallsBack(t *testing.T) {
	summary := &models.QuizSummary{
		CanonicalHabitName: "mystery habit",
		HabitCategory:      "astrology",
	}
	if text := CategoryGuidance(summary); !strings.Contains(text, "Category: Other or unclear") {
		t.Error("expected unrecognized categories to use the generic block")
	}
}

func TestCategoryGuidanceDefaultsForEmptyFields(t *testing.T) {
	text := CategoryGuidance(&models.QuizSummary{CanonicalHabitName: "smoking"})

	for _, want := range []string{
		"unclear triggers",
		"unclear peak times",
		"unclear locations",
		"unclear emotional patterns",
		"unclear frequency",
		"unclear motivation",
		"unclear risk situations",
		"not clearly described",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected default %q in guidance", want)
		}
	}
}

func TestCategoryGuidanceDeterministic(t *testing.T) {
	summary := &models.QuizSummary{
		CanonicalHabitName: "late night gaming",
		HabitCategory:      models.CategoryGaming,
		PeakTimes:          "after midnight",
	}
	if CategoryGuidance(summary) != CategoryGuidance(summary) {
		t.Error("guidance must be deterministic for the same summary")
	}
}

func TestCategoryGuidanceNilSummary(t *testing.T) {
	text := CategoryGuidance(nil)
	if !strings.Contains(text, "Category: Other or unclear") {
		t.Error("expected the generic block for a nil summary")
	}
	if !strings.Contains(text, "the habit") {
		t.Error("expected the default habit label")
	}
}
