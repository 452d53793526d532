package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	info := New("questdeck-notify")

	assert.Equal(t, "questdeck-notify", info.Name)
	assert.Equal(t, "0.0.0-dev", info.Version)
	assert.Equal(t, "unknown", info.BuildDate)
	assert.Equal(t, "unknown", info.GitCommit)
}

func TestString(t *testing.T) {
	info := &Info{Name: "questdeck-notify", Version: "1.2.3", GitCommit: "abc123", BuildDate: "2026-08-30"}

	assert.Equal(t, "questdeck-notify version 1.2.3 (commit: abc123, built: 2026-08-30)", info.String())
}
