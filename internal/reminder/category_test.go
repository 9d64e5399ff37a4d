// AngelaMos | 2026
// category_test.go

package reminder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyCategory(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Category
	}{
		{"swedish meal", "måltider", CategoryMeal},
		{"swedish meal no accents", "maltdier", CategoryMeal},
		{"english meal", "meal", CategoryMeal},
		{"swedish medication", "medicinintag", CategoryMedication},
		{"swedish medicine short", "medicin", CategoryMedication},
		{"english medication", "medication", CategoryMedication},
		{"swedish exercise", "rörelse/pauser", CategoryExercise},
		{"swedish exercise no accents", "rorelse/pauser", CategoryExercise},
		{"swedish rest", "vila/sömn", CategoryRest},
		{"swedish meeting", "möte", CategoryMeeting},
		{"shower", "dusch", CategoryShower},
		{"swedish cleaning", "städning", CategoryCleaning},
		{"swedish other", "övrigt", CategoryOther},
		{"canonical token", "MEDICATION", CategoryMedication},
		{"mixed case", "MeEtInG", CategoryMeeting},
		{"surrounding whitespace", "  sleep  ", CategoryRest},
		{"unknown falls back to meal", "unknown_category", CategoryMeal},
		{"empty falls back to meal", "", CategoryMeal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyCategory(tt.input))
		})
	}
}
