package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly labels
var FieldLabels = map[string]string{
	"JobRole":         "Job Role",
	"JobDescription":  "Job Description",
	"ExperienceYears": "Years of Experience",
	"AnswerText":      "Answer",
	"Email":           "Email",
	"Password":        "Password",
	"Name":            "Name",
	"Title":           "Title",
	"Description":     "Description",
	"Category":        "Category",
	"TargetDate":      "Target Date",
	"Progress":        "Progress",
	"Reason":          "Reason",
	"Code":            "Reset Code",
	"NewPassword":     "New Password",
}

// FormatValidationErrors turns validator errors into a single readable
// message for the API response.
func FormatValidationErrors(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		label := FieldLabels[fe.Field()]
		if label == "" {
			label = fe.Field()
		}
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", label))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email address", label))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s", label, fe.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s", label, fe.Param()))
		case "goal_category":
			messages = append(messages, fmt.Sprintf("%s must be one of: interview, learning, practice, resume", label))
		case "job_role":
			messages = append(messages, fmt.Sprintf("%s contains invalid characters", label))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", label))
		}
	}
	return strings.Join(messages, "; ")
}
