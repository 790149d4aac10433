package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), settings)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "soak.yaml")
	payload := []byte("telemetry:\n  serviceName: custom\nsoak:\n  workers: 2\n  duration: 1s\n")
	require.NoError(t, os.WriteFile(path, payload, 0o600))

	settings, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "custom", settings.Telemetry.ServiceName)
	require.Equal(t, 2, settings.Soak.Workers)
	require.Equal(t, time.Second, settings.Soak.Duration)
	require.Equal(t, Default().Soak.Rate, settings.Soak.Rate)
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("soak: ["), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*Settings){
		"zero workers":      func(s *Settings) { s.Soak.Workers = 0 },
		"negative queue":    func(s *Settings) { s.Soak.Queue = -1 },
		"zero duration":     func(s *Settings) { s.Soak.Duration = 0 },
		"zero rate":         func(s *Settings) { s.Soak.Rate = 0 },
		"zero burst":        func(s *Settings) { s.Soak.Burst = 0 },
		"negative capacity": func(s *Settings) { s.Soak.ArenaCapacity = -1 },
		"zero payload":      func(s *Settings) { s.Soak.PayloadBytes = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			settings := Default()
			mutate(&settings)
			require.Error(t, settings.Validate())
		})
	}
}
