package main

import (
	"time"

	"gorm.io/datatypes"
)

// Invitation is a guest/family's entry for the event. Invitations are created
// and deleted by the admin, never updated, so NormName only has to be
// computed once at creation.
type Invitation struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	DisplayName   string    `json:"displayName" gorm:"not null"`
	NormName      string    `json:"-" gorm:"index;not null"` // backs /public/find
	AllowedGuests int       `json:"allowedGuests" gorm:"not null"`
	Message       string    `json:"message"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (Invitation) TableName() string { return "invitations" }

// RSVP is a guest's response, at most one per invitation. InviteID being the
// primary key is what makes the upsert atomic: a second submission lands on
// the same row.
type RSVP struct {
	InviteID        string                      `json:"-" gorm:"primaryKey"`
	PrimaryName     string                      `json:"name" gorm:"not null"`
	Attending       bool                        `json:"attending"`
	ExtraGuestNames datatypes.JSONSlice[string] `json:"extraGuestNames"`
	Notes           string                      `json:"notes"`
	SubmittedAt     time.Time                   `json:"submittedAt"`
	IP              string                      `json:"-"`
}

func (RSVP) TableName() string { return "rsvps" }

// AdminInvite is the admin list view: the invitation plus its response, if
// any, and the resulting headcount.
type AdminInvite struct {
	Invitation
	RSVP          *RSVP `json:"rsvp"`
	RSVPAttending int   `json:"rsvpAttending"`
}

// Headcount returns the total number of attendees an RSVP accounts for:
// the primary respondent plus their extra guests, or zero when declining.
func (r *RSVP) Headcount() int {
	if r == nil || !r.Attending {
		return 0
	}
	return 1 + len(r.ExtraGuestNames)
}
