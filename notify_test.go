package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestNotifierEnabled(t *testing.T) {
	cfg := &Config{SMTP: SMTPConfig{
		Host: "smtp.example.com",
		Port: "587",
		From: "rsvp@example.com",
		To:   "couple@example.com",
	}}
	assert.True(t, NewNotifier(cfg).Enabled())

	cfg.SMTP.Host = ""
	assert.False(t, NewNotifier(cfg).Enabled())

	cfg.SMTP.Host = "smtp.example.com"
	cfg.SMTP.To = ""
	assert.False(t, NewNotifier(cfg).Enabled())
}

func TestRSVPBodyAttending(t *testing.T) {
	inv := Invitation{ID: "inv-1", DisplayName: "John Smith", AllowedGuests: 2}
	resp := RSVP{
		InviteID:        "inv-1",
		PrimaryName:     "John Smith",
		Attending:       true,
		ExtraGuestNames: datatypes.NewJSONSlice([]string{"Jane Smith", "Joe Smith"}),
		Notes:           "vegetarian meals please",
	}

	body := rsvpBody(inv, resp)
	assert.Contains(t, body, "John Smith")
	assert.Contains(t, body, "Attending: yes (3 total)")
	assert.Contains(t, body, "Jane Smith, Joe Smith")
	assert.Contains(t, body, "vegetarian meals please")
}

func TestRSVPBodyDeclining(t *testing.T) {
	inv := Invitation{ID: "inv-1", DisplayName: "John Smith"}
	resp := RSVP{InviteID: "inv-1", PrimaryName: "John Smith", Attending: false}

	body := rsvpBody(inv, resp)
	assert.Contains(t, body, "Attending: no")
	assert.NotContains(t, body, "Extra guests")
}
