package config_test

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-contacts/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
// This prevents accidental deletion of keys required for runtime or UI logic.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"KeyringService", config.KeyringService},
		{"SnapshotSlot", config.SnapshotSlot},
		{"SnapshotFileName", config.SnapshotFileName},
		{"SQLiteDriver", config.SQLiteDriver},
		{"MimeTextVCard", config.MimeTextVCard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestDefaults_Sanity checks that default values make sense logically.
func TestDefaults_Sanity(t *testing.T) {
	assert.Contains(t, []string{config.StorageBackendFile, config.StorageBackendSQLite},
		config.DefaultBackend, "Default backend must be a known backend")

	port, err := strconv.Atoi(config.DefaultPort)
	assert.NoError(t, err, "Default port must be numeric")
	assert.GreaterOrEqual(t, port, config.MinPort)
	assert.LessOrEqual(t, port, config.MaxPort)

	assert.Contains(t, config.SupportedLanguages, config.DefaultLanguage,
		"Default language must be among the supported languages")
}

// TestUserAgent_Format ensures the UA string follows the standard format.
func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-Contacts/"), "UserAgent must start with AppName/")
}

// TestTimeoutsAndLimits ensures that operational constraints are reasonable.
func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.HTTPTimeout, 0*time.Second, "HTTPTimeout must be positive")
	assert.LessOrEqual(t, config.HTTPTimeout, 2*time.Minute, "HTTPTimeout should not be excessively long")
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")

	assert.Greater(t, config.MaxHTTPResponseSize, 0, "MaxHTTPResponseSize must be positive")
	// An address book export is small, but vCards can embed photos.
	assert.GreaterOrEqual(t, int64(config.MaxHTTPResponseSize), int64(16*1024*1024), "MaxHTTPResponseSize should leave room for embedded photos")
	assert.Less(t, int64(config.MaxHTTPResponseSize), int64(1*1024*1024*1024), "MaxHTTPResponseSize should stay under 1GB to protect RAM")
}

// TestVCardRevLayout verifies the REV timestamp layout renders the expected shape.
func TestVCardRevLayout(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC)
	assert.Equal(t, "20250601T123045Z", ts.Format(config.VCardRevLayout))
}
