package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigRequiredVars(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD_SALT", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	t.Setenv("TOKEN_SECRET", "")
	t.Setenv("DB_USER", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOKEN_SECRET")
	assert.Contains(t, err.Error(), "ADMIN_PASSWORD_SALT")
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD_SALT", "salt")
	t.Setenv("ADMIN_PASSWORD_HASH", "hash")
	t.Setenv("TOKEN_SECRET", "secret")
	t.Setenv("DB_USER", "rsvp")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "rsvp", cfg.Database.DBName)
	assert.Equal(t, "587", cfg.SMTP.Port)
}
