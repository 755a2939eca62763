package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Allow letters, numbers, spaces, and common professional punctuation: . ' - / & ( ) ,
var jobRoleRegex = regexp.MustCompile(`^[\p{L}0-9 .'/&(),+#-]+$`)

// Category keys accepted by the goal endpoints. Kept in sync with the
// domain-level dictionary; unknown keys never default silently.
var goalCategoryKeys = map[string]bool{
	"interview": true,
	"learning":  true,
	"practice":  true,
	"resume":    true,
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("job_role", JobRole)
	_ = v.RegisterValidation("goal_category", GoalCategory)
}

// JobRole validates that a string looks like a job title
// Rejects control characters and most special symbols
func JobRole(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return jobRoleRegex.MatchString(val)
}

// GoalCategory validates a client-facing goal category key
func GoalCategory(fl validator.FieldLevel) bool {
	return goalCategoryKeys[strings.ToLower(fl.Field().String())]
}
