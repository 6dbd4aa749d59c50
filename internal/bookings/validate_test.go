package bookings

import (
	"errors"
	"strings"
	"testing"

	"bookinub-backend/internal/validation"
)

func TestValidateReturnsCandidate(t *testing.T) {
	c, err := Validate(validation.New(), CreateRequest{
		CustomerName: "  Jane Doe ",
		Email:        " A@Example.COM ",
		Service:      " Massage ",
		Date:         "2024-05-01T08:30:00Z",
		Time:         "10:00",
	})
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if c.CustomerName != "Jane Doe" || c.Email != "a@example.com" || c.Service != "Massage" {
		t.Fatalf("unexpected normalization: %+v", c)
	}
	if c.Date != "2024-05-01" {
		t.Fatalf("expected date reduced to calendar day, got %s", c.Date)
	}
}

func TestValidateListsEveryField(t *testing.T) {
	_, err := Validate(validation.New(), CreateRequest{Email: "not-an-email", Date: "01/05/2024", Time: "10am"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	fields := verr.Fields()
	want := map[string]string{
		"customerName": "required",
		"email":        "email",
		"service":      "required",
		"date":         "date",
		"time":         "clock",
	}
	if len(fields) != len(want) {
		t.Fatalf("expected %d field errors, got %v", len(want), fields)
	}
	for field, rule := range want {
		if fields[field] != rule {
			t.Fatalf("field %s: expected %s, got %q", field, rule, fields[field])
		}
	}
	if !strings.Contains(verr.Error(), "customerName is required") {
		t.Fatalf("expected readable message, got %q", verr.Error())
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusPending, false},
		{StatusConfirmed, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.ok {
			t.Fatalf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}
