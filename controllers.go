package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// adminTokenTTL is how long an issued admin token stays valid.
const adminTokenTTL = 6 * time.Hour

type Handler struct {
	db       *gorm.DB
	cfg      *Config
	notifier *Notifier
	tasks    *TaskGroup
	log      zerolog.Logger
}

func NewHandler(db *gorm.DB, cfg *Config, notifier *Notifier, tasks *TaskGroup) *Handler {
	return &Handler{
		db:       db,
		cfg:      cfg,
		notifier: notifier,
		tasks:    tasks,
		log:      zerolog.New(os.Stdout).With().Timestamp().Str("component", "api").Logger(),
	}
}

// -----------------------------
// Helper functions
// -----------------------------

func jsonError(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"error": msg})
}

// serverError hides the real failure from the caller; the detail goes to the
// log only.
func (h *Handler) serverError(c *gin.Context, err error, what string) {
	h.log.Error().Err(err).Msg(what)
	jsonError(c, http.StatusInternalServerError, "internal server error")
}

// decodeJSON reads the request body into dst. An absent or empty body is
// treated as an empty object. A body that fails to parse is an unanticipated
// failure, not a validation error, so it answers a generic 500.
func (h *Handler) decodeJSON(c *gin.Context, dst interface{}) bool {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.serverError(c, err, "read request body")
		return false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return true
	}
	if err := json.Unmarshal(body, dst); err != nil {
		h.serverError(c, err, "parse request body")
		return false
	}
	return true
}

// -----------------------------
// Public: lookup
// -----------------------------

type FindRequest struct {
	Name string `json:"name"`
}

// FindInvite looks an invitation up by guest-typed name. The lookup hits the
// precomputed norm_name column, never normalize-at-query-time.
func (h *Handler) FindInvite(c *gin.Context) {
	var body FindRequest
	if !h.decodeJSON(c, &body) {
		return
	}

	norm := NormalizeName(body.Name)
	if norm == "" {
		jsonError(c, http.StatusBadRequest, "name is required")
		return
	}

	var inv Invitation
	if err := h.db.Where("norm_name = ?", norm).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			jsonError(c, http.StatusNotFound, "invitation not found")
			return
		}
		h.serverError(c, err, "find invitation")
		return
	}

	c.JSON(http.StatusOK, gin.H{"invite": inv})
}

// GetInvite looks an invitation up by its opaque identifier.
func (h *Handler) GetInvite(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		jsonError(c, http.StatusBadRequest, "id is required")
		return
	}

	var inv Invitation
	if err := h.db.First(&inv, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			jsonError(c, http.StatusNotFound, "invitation not found")
			return
		}
		h.serverError(c, err, "get invitation")
		return
	}

	c.JSON(http.StatusOK, gin.H{"invite": inv})
}

// -----------------------------
// Public: RSVP
// -----------------------------

type RSVPRequest struct {
	InviteID        string   `json:"inviteId"`
	Name            string   `json:"name"`
	Attending       bool     `json:"attending"`
	ExtraGuestNames []string `json:"extraGuestNames"`
	Notes           string   `json:"notes"`
}

// SubmitRSVP validates and upserts a response, then fires the notification
// email in the background. A second submission for the same invitation fully
// replaces the first; the one-row-per-invitation invariant is enforced by
// the primary key plus ON CONFLICT, so concurrent duplicates cannot fork.
func (h *Handler) SubmitRSVP(c *gin.Context) {
	var body RSVPRequest
	if !h.decodeJSON(c, &body) {
		return
	}

	if body.InviteID == "" {
		jsonError(c, http.StatusBadRequest, "inviteId is required")
		return
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		jsonError(c, http.StatusBadRequest, "name is required")
		return
	}

	var inv Invitation
	if err := h.db.First(&inv, "id = ?", body.InviteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			jsonError(c, http.StatusNotFound, "invitation not found")
			return
		}
		h.serverError(c, err, "load invitation for rsvp")
		return
	}

	// Extra guests only mean something when attending; a decline always
	// stores an empty list.
	extras := make([]string, 0, len(body.ExtraGuestNames))
	if body.Attending {
		for _, n := range body.ExtraGuestNames {
			if t := strings.TrimSpace(n); t != "" {
				extras = append(extras, t)
			}
		}
		if len(extras) > inv.AllowedGuests {
			jsonError(c, http.StatusBadRequest,
				fmt.Sprintf("this invitation allows at most %d extra guests", inv.AllowedGuests))
			return
		}
	}

	resp := RSVP{
		InviteID:        inv.ID,
		PrimaryName:     name,
		Attending:       body.Attending,
		ExtraGuestNames: datatypes.NewJSONSlice(extras),
		Notes:           body.Notes,
		SubmittedAt:     time.Now().UTC(),
		IP:              c.ClientIP(),
	}

	err := h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "invite_id"}},
		UpdateAll: true,
	}).Create(&resp).Error
	if err != nil {
		h.serverError(c, err, "upsert rsvp")
		return
	}

	// The guest gets their acknowledgment now; the email settles on its own
	// time in a tracked background task.
	if h.notifier.Enabled() {
		h.tasks.Go("rsvp-notification", func() {
			if err := h.notifier.SendRSVPNotification(inv, resp); err != nil {
				h.log.Error().Err(err).Str("invite_id", inv.ID).Msg("rsvp notification failed")
			}
		})
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// -----------------------------
// Admin: login
// -----------------------------

type LoginRequest struct {
	Password string `json:"password"`
}

// AdminLogin checks the shared password and issues a short-lived token. A
// wrong password answers the same unauthorized message as a bad token would.
func (h *Handler) AdminLogin(c *gin.Context) {
	var body LoginRequest
	if !h.decodeJSON(c, &body) {
		return
	}

	if !CheckPassword(h.cfg.Auth.PasswordSalt, h.cfg.Auth.PasswordHash, body.Password) {
		jsonError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	token, err := GenerateToken([]byte(h.cfg.Auth.TokenSecret), jwt.MapClaims{"role": "admin"}, adminTokenTTL)
	if err != nil {
		h.serverError(c, err, "issue admin token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// -----------------------------
// Admin: invitations
// -----------------------------

// ListInvites returns every invitation with its RSVP summary attached.
func (h *Handler) ListInvites(c *gin.Context) {
	var invites []Invitation
	if err := h.db.Order("created_at asc").Find(&invites).Error; err != nil {
		h.serverError(c, err, "list invitations")
		return
	}

	var responses []RSVP
	if err := h.db.Find(&responses).Error; err != nil {
		h.serverError(c, err, "list rsvps")
		return
	}
	byInvite := make(map[string]*RSVP, len(responses))
	for i := range responses {
		byInvite[responses[i].InviteID] = &responses[i]
	}

	out := make([]AdminInvite, 0, len(invites))
	for _, inv := range invites {
		r := byInvite[inv.ID]
		out = append(out, AdminInvite{
			Invitation:    inv,
			RSVP:          r,
			RSVPAttending: r.Headcount(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"invites": out})
}

type CreateInviteRequest struct {
	DisplayName   string `json:"displayName"`
	AllowedGuests int    `json:"allowedGuests"`
	Message       string `json:"message"`
}

// CreateInvite creates an invitation. The normalized name is computed here,
// once; invitations are never updated afterwards.
func (h *Handler) CreateInvite(c *gin.Context) {
	var body CreateInviteRequest
	if !h.decodeJSON(c, &body) {
		return
	}

	displayName := strings.TrimSpace(body.DisplayName)
	if displayName == "" {
		jsonError(c, http.StatusBadRequest, "displayName is required")
		return
	}
	if body.AllowedGuests < 0 || body.AllowedGuests > 10 {
		jsonError(c, http.StatusBadRequest, "allowedGuests must be between 0 and 10")
		return
	}

	inv := Invitation{
		ID:            uuid.NewString(),
		DisplayName:   displayName,
		NormName:      NormalizeName(displayName),
		AllowedGuests: body.AllowedGuests,
		Message:       body.Message,
		CreatedAt:     time.Now().UTC(),
	}

	if err := h.db.Create(&inv).Error; err != nil {
		h.serverError(c, err, "create invitation")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"invite": inv})
}

// DeleteInvite removes an invitation and its RSVP in one transaction. The
// cascade lives here, not in a database foreign key.
func (h *Handler) DeleteInvite(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		jsonError(c, http.StatusBadRequest, "id is required")
		return
	}

	var inv Invitation
	if err := h.db.First(&inv, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			jsonError(c, http.StatusNotFound, "invitation not found")
			return
		}
		h.serverError(c, err, "load invitation for delete")
		return
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invite_id = ?", inv.ID).Delete(&RSVP{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Invitation{}, "id = ?", inv.ID).Error
	}); err != nil {
		h.serverError(c, err, "delete invitation")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// -----------------------------
// Health
// -----------------------------

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
