package pyroscope

import (
	"testing"

	"github.com/flexprice/aggbot/internal/config"
	"github.com/flexprice/aggbot/internal/logger"
	"github.com/grafana/pyroscope-go"
	"github.com/stretchr/testify/assert"
)

func TestGetProfileTypes(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  []pyroscope.ProfileType
	}{
		{
			name: "defaults",
			want: defaultProfileTypes,
		},
		{
			name:  "case and unknown names",
			names: []string{"CPU", " goroutines ", "heap"},
			want:  []pyroscope.ProfileType{pyroscope.ProfileCPU, pyroscope.ProfileGoroutines},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.GetDefaultConfig()
			cfg.Pyroscope.ProfileTypes = tt.names
			svc := NewPyroscopeService(cfg, logger.NewNopLogger())
			assert.Equal(t, tt.want, svc.getProfileTypes())
		})
	}
}
