package shared

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"gigmatch/internal/transport/http/api"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type ValidationIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Check validates a payload struct against its validate tags and returns
// one issue per failing field.
func Check(payload any) []ValidationIssue {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []ValidationIssue{{Field: "", Reason: "invalid payload"}}
	}

	issues := make([]ValidationIssue, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		issues = append(issues, ValidationIssue{
			Field:  strings.ToLower(fieldErr.Field()[:1]) + fieldErr.Field()[1:],
			Reason: reasonFor(fieldErr),
		})
	}
	return issues
}

// Reject writes a validation failure response when the payload has issues
// and reports whether it did.
func Reject(w http.ResponseWriter, requestID string, payload any) bool {
	issues := Check(payload)
	if len(issues) == 0 {
		return false
	}
	api.FailWithDetails(
		w,
		http.StatusBadRequest,
		"validation_error",
		"payload validation failed",
		map[string]any{"fields": issues},
		requestID,
	)
	return true
}

func reasonFor(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "latitude":
		return "must be a valid latitude"
	case "longitude":
		return "must be a valid longitude"
	case "gte":
		return "must be at least " + fieldErr.Param()
	case "lte":
		return "must be at most " + fieldErr.Param()
	case "min":
		return "must have length at least " + fieldErr.Param()
	default:
		return "failed " + fieldErr.Tag() + " validation"
	}
}
