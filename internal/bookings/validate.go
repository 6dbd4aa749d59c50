package bookings

import (
	"strings"
	"time"

	"bookinub-backend/internal/validation"
)

// Candidate is a normalized request that passed validation and can be stored.
type Candidate struct {
	CustomerName string
	Email        string
	Service      string
	Date         string
	Time         string
}

type FieldError struct {
	Field string
	Rule  string
}

// ValidationError lists every offending field of a rejected request.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

// Fields returns field -> rule, the shape used in error details.
func (e *ValidationError) Fields() map[string]string {
	out := make(map[string]string, len(e.Errors))
	for _, fe := range e.Errors {
		out[fe.Field] = fe.Rule
	}
	return out
}

func fieldMessage(fe FieldError) string {
	switch fe.Rule {
	case "required":
		return fe.Field + " is required"
	case "email":
		return fe.Field + " must be a valid email address"
	case "date":
		return fe.Field + " must be a date (YYYY-MM-DD)"
	case "clock":
		return fe.Field + " must be a time (HH:MM)"
	default:
		return fe.Field + " is invalid"
	}
}

// Normalize trims every field, lower-cases the email and reduces a full
// timestamp to its calendar date.
func Normalize(req CreateRequest) CreateRequest {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Service = strings.TrimSpace(req.Service)
	req.Date = normalizeDate(strings.TrimSpace(req.Date))
	req.Time = strings.TrimSpace(req.Time)
	return req
}

func normalizeDate(value string) string {
	if len(value) <= len(validation.DateLayout) {
		return value
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.Format(validation.DateLayout)
	}
	return value
}

// Validate normalizes req and checks it. It returns either a Candidate or a
// *ValidationError, never both.
func Validate(val *validation.Validator, req CreateRequest) (Candidate, error) {
	req = Normalize(req)
	if err := val.Struct(req); err != nil {
		errs := val.ValidationErrors(err)
		if errs == nil {
			return Candidate{}, err
		}
		verr := &ValidationError{Errors: make([]FieldError, 0, len(errs))}
		for _, fe := range errs {
			verr.Errors = append(verr.Errors, FieldError{Field: fe.Field(), Rule: fe.Tag()})
		}
		return Candidate{}, verr
	}

	return Candidate{
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Service:      req.Service,
		Date:         req.Date,
		Time:         req.Time,
	}, nil
}
