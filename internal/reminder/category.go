// AngelaMos | 2026
// category.go

package reminder

import (
	"strings"
)

// Category is the closed reminder classification. The canonical token (the
// constant's value) is what serialization emits, never the raw input string.
type Category string

const (
	CategoryMeal       Category = "MEAL"
	CategoryMedication Category = "MEDICATION"
	CategoryExercise   Category = "EXERCISE"
	CategoryRest       Category = "REST"
	CategoryMeeting    Category = "MEETING"
	CategoryShower     Category = "SHOWER"
	CategoryCleaning   Category = "CLEANING"
	CategoryOther      Category = "OTHER"
)

// categoryAliases maps accepted spellings to categories. Swedish labels come
// first, each with an accent-stripped fallback for clients that drop
// diacritics, then the English set.
var categoryAliases = map[string]Category{
	"måltider":       CategoryMeal,
	"maltdier":       CategoryMeal,
	"medicinintag":   CategoryMedication,
	"medicin":        CategoryMedication,
	"rörelse/pauser": CategoryExercise,
	"rorelse/pauser": CategoryExercise,
	"vila/sömn":      CategoryRest,
	"vila/somn":      CategoryRest,
	"möte":           CategoryMeeting,
	"mote":           CategoryMeeting,
	"dusch":          CategoryShower,
	"städning":       CategoryCleaning,
	"stadning":       CategoryCleaning,
	"övrigt":         CategoryOther,
	"ovrigt":         CategoryOther,

	"meal":       CategoryMeal,
	"meals":      CategoryMeal,
	"medication": CategoryMedication,
	"medicine":   CategoryMedication,
	"exercise":   CategoryExercise,
	"rest":       CategoryRest,
	"sleep":      CategoryRest,
	"meeting":    CategoryMeeting,
	"shower":     CategoryShower,
	"cleaning":   CategoryCleaning,
	"other":      CategoryOther,
}

// ClassifyCategory maps a raw client string to a Category. Matching is
// case-insensitive on the trimmed input; anything unrecognized falls back to
// CategoryMeal rather than erroring, so the function is total.
func ClassifyCategory(raw string) Category {
	key := strings.ToLower(strings.TrimSpace(raw))
	if category, ok := categoryAliases[key]; ok {
		return category
	}
	return CategoryMeal
}
