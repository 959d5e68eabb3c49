package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/yungbote/planbridge-backend/internal/domain/feedback"
)

var (
	ErrInvalidSalesPerson = errors.New("Missing or invalid 'sales_person_text'")
	ErrInvalidDateFormat  = errors.New("Invalid 'date' format. Use YYYY-MM-DD.")
)

// ValidateFeedbackPayload checks a decoded feedback body and returns the
// first problem found. It does not inspect section contents.
func ValidateFeedbackPayload(payload map[string]any) error {
	if payload == nil {
		return ErrInvalidSalesPerson
	}
	if _, ok := payload["sales_person_text"].(string); !ok {
		return ErrInvalidSalesPerson
	}
	if raw, present := payload["date"]; present && !isEmptyValue(raw) {
		s, ok := raw.(string)
		if !ok {
			return ErrInvalidDateFormat
		}
		if _, err := time.Parse(feedback.DateLayout, s); err != nil {
			return ErrInvalidDateFormat
		}
	}
	for _, k := range feedback.Sections {
		v, present := payload[k]
		if !present {
			return fmt.Errorf("Missing section '%s'", k)
		}
		if _, ok := v.(map[string]any); !ok {
			return fmt.Errorf("Section '%s' must be an object (dict)", k)
		}
	}
	return nil
}

// isEmptyValue mirrors JSON falsiness for the optional date: null, "" and
// false count as absent.
func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	default:
		return false
	}
}
