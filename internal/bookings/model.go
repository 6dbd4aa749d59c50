package bookings

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

var validStatuses = map[Status]struct{}{
	StatusPending:   {},
	StatusConfirmed: {},
	StatusCancelled: {},
}

// transitions lists the allowed next states. confirmed and cancelled are terminal.
var transitions = map[Status][]Status{
	StatusPending: {StatusConfirmed, StatusCancelled},
}

func IsValidStatus(value Status) bool {
	_, ok := validStatuses[value]
	return ok
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// KnownServices is the list offered by the booking form. The API does not
// restrict service to it.
var KnownServices = []string{"Haircut", "Massage", "Consultation", "Training", "Other"}

type Booking struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	CustomerName string    `bson:"customerName" json:"customerName"`
	Email        string    `bson:"email" json:"email"`
	Service      string    `bson:"service" json:"service"`
	Date         string    `bson:"date" json:"date"`
	Time         string    `bson:"time" json:"time"`
	Status       Status    `bson:"status" json:"status"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

type CreateRequest struct {
	CustomerName string `json:"customerName" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Service      string `json:"service" validate:"required"`
	Date         string `json:"date" validate:"required,date"`
	Time         string `json:"time" validate:"required,clock"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

type ListFilter struct {
	Status Status
}
