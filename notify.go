package main

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Notifier sends the transactional email that tells the couple an RSVP came
// in. It is only ever invoked from a background task: a send failure is
// logged and swallowed, never retried, never shown to the guest.
type Notifier struct {
	cfg SMTPConfig
	log zerolog.Logger
}

func NewNotifier(cfg *Config) *Notifier {
	return &Notifier{
		cfg: cfg.SMTP,
		log: zerolog.New(os.Stdout).With().Timestamp().Str("component", "notifier").Logger(),
	}
}

// Enabled reports whether enough SMTP settings are present to attempt a
// send. The server runs fine without them; RSVPs are just silent.
func (n *Notifier) Enabled() bool {
	return n.cfg.Host != "" && n.cfg.From != "" && n.cfg.To != ""
}

// SendRSVPNotification emails the configured recipient about a submitted
// response.
func (n *Notifier) SendRSVPNotification(inv Invitation, resp RSVP) error {
	subject := fmt.Sprintf("RSVP: %s", resp.PrimaryName)

	msg := "From: " + n.cfg.From + "\r\n" +
		"To: " + n.cfg.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" + rsvpBody(inv, resp)

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%s", n.cfg.Host, n.cfg.Port)
	if err := smtp.SendMail(addr, auth, n.cfg.From, []string{n.cfg.To}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	n.log.Info().Str("invite_id", inv.ID).Msg("rsvp notification sent")
	return nil
}

func rsvpBody(inv Invitation, resp RSVP) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Invitation: %s\n", inv.DisplayName)
	fmt.Fprintf(&b, "Respondent: %s\n", resp.PrimaryName)
	if resp.Attending {
		fmt.Fprintf(&b, "Attending: yes (%d total)\n", resp.Headcount())
		if len(resp.ExtraGuestNames) > 0 {
			fmt.Fprintf(&b, "Extra guests: %s\n", strings.Join(resp.ExtraGuestNames, ", "))
		}
	} else {
		b.WriteString("Attending: no\n")
	}
	if resp.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", resp.Notes)
	}

	return b.String()
}
