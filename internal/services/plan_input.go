package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	types "github.com/yungbote/planbridge-backend/internal/domain"
)

const PlanVersion = "1.0"

type PlanInput struct {
	Version   string       `json:"version" validate:"required,eq=1.0"`
	PlanCode  *string      `json:"plan_code,omitempty"`
	PlanTitle string       `json:"plan_title" validate:"required"`
	Sujets    []SujetInput `json:"sujets" validate:"dive"`
}

type SujetInput struct {
	Code        *string       `json:"code,omitempty"`
	Title       string        `json:"title" validate:"required"`
	Description *string       `json:"description,omitempty"`
	Sujets      []SujetInput  `json:"sujets,omitempty" validate:"dive"`
	Actions     []ActionInput `json:"actions,omitempty" validate:"dive"`
}

type ActionInput struct {
	Title       string        `json:"title" validate:"required"`
	Description *string       `json:"description,omitempty"`
	Owner       *string       `json:"owner,omitempty"`
	Priority    *int          `json:"priority,omitempty" validate:"omitempty,min=0"`
	DueDate     *string       `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status      *string       `json:"status,omitempty" validate:"omitempty,oneof=open closed blocked"`
	Actions     []ActionInput `json:"actions,omitempty" validate:"dive"`
}

// ValidationError describes the first problem found in a plan document.
// Path uses JSON field names, e.g. sujets[0].actions[1].title.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return e.Path + ": " + e.Reason
}

var (
	planValidatorOnce sync.Once
	planValidator     *validator.Validate
)

func getPlanValidator() *validator.Validate {
	planValidatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		planValidator = v
	})
	return planValidator
}

// DecodePlan reads one JSON plan document. Syntax and type errors come back
// as *ValidationError; read errors such as *http.MaxBytesError are returned
// as is.
func DecodePlan(r io.Reader) (*PlanInput, error) {
	var in PlanInput
	dec := json.NewDecoder(r)
	if err := dec.Decode(&in); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, err
		}
		return nil, decodeValidationError(err)
	}
	if dec.More() {
		return nil, &ValidationError{Reason: "body must contain a single JSON object"}
	}
	return &in, nil
}

func decodeValidationError(err error) *ValidationError {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return &ValidationError{Reason: "request body is empty"}
	case errors.Is(err, io.ErrUnexpectedEOF):
		return &ValidationError{Reason: "malformed JSON: unexpected end of input"}
	case errors.As(err, &syntaxErr):
		return &ValidationError{Reason: fmt.Sprintf("malformed JSON at offset %d: %s", syntaxErr.Offset, syntaxErr.Error())}
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return &ValidationError{Reason: fmt.Sprintf("expected a JSON object, got %s", typeErr.Value)}
		}
		return &ValidationError{
			Path:   typeErr.Field,
			Reason: fmt.Sprintf("expected %s, got %s", jsonKind(typeErr.Type), typeErr.Value),
		}
	default:
		return &ValidationError{Reason: err.Error()}
	}
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "integer"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	default:
		return t.String()
	}
}

// ValidatePlan checks the document and reports the first violation in
// field order.
func ValidatePlan(in *PlanInput) error {
	if in == nil {
		return &ValidationError{Reason: "plan is required"}
	}
	err := getPlanValidator().Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Reason: err.Error()}
	}
	fe := verrs[0]
	return &ValidationError{Path: fieldPath(fe.Namespace()), Reason: fieldReason(fe)}
}

// fieldPath turns "PlanInput.sujets[0].title" into "sujets[0].title".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "eq":
		return fmt.Sprintf("must be %q", fe.Param())
	case "min":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.Join(strings.Fields(fe.Param()), ", "))
	case "datetime":
		return "must be a date formatted YYYY-MM-DD"
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

// ApplyDefaults fills values left out of a valid plan: absent status
// becomes open.
func ApplyDefaults(in *PlanInput) {
	if in == nil {
		return
	}
	for i := range in.Sujets {
		defaultSujet(&in.Sujets[i])
	}
}

func defaultSujet(s *SujetInput) {
	for i := range s.Actions {
		defaultAction(&s.Actions[i])
	}
	for i := range s.Sujets {
		defaultSujet(&s.Sujets[i])
	}
}

func defaultAction(a *ActionInput) {
	if a.Status == nil {
		open := string(types.ActionStatusOpen)
		a.Status = &open
	}
	for i := range a.Actions {
		defaultAction(&a.Actions[i])
	}
}

// normalizeCode treats a blank business code as absent.
func normalizeCode(code *string) *string {
	if code == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*code)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ExamplePlan is the illustrative document served by GET /api/schema.
func ExamplePlan() map[string]any {
	return map[string]any{
		"version":    PlanVersion,
		"plan_code":  "PLAN-2025-Q4",
		"plan_title": "Plan d'actions commerciales Q4",
		"sujets": []any{
			map[string]any{
				"code":        "SUJ-CRM",
				"title":       "Adoption CRM",
				"description": "Usage quotidien du CRM par l'équipe",
				"actions": []any{
					map[string]any{
						"title":    "Former l'équipe",
						"owner":    "alice",
						"priority": 1,
						"due_date": "2025-11-30",
						"status":   "open",
						"actions": []any{
							map[string]any{
								"title":  "Préparer le support",
								"owner":  "bob",
								"status": "open",
							},
						},
					},
				},
				"sujets": []any{
					map[string]any{
						"title": "Qualité des données",
						"actions": []any{
							map[string]any{"title": "Nettoyer les doublons", "priority": 2},
						},
					},
				},
			},
		},
	}
}
