package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePosition(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"forklift driver", PositionForkliftDriver},
		{"Forklift Driver", PositionForkliftDriver},
		{"FORKLIFT_DRIVER", PositionForkliftDriver},
		{"forklift-operator", PositionForkliftDriver},
		{"  forklift  ", PositionForkliftDriver},
		{"general labor", PositionGeneralLabor},
		{"General Laborer", PositionGeneralLabor},
		{"warehouse labor", PositionGeneralLabor},
		{"", PositionGeneralLabor},
		{"picker", PositionGeneralLabor},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePosition(tt.raw))
		})
	}
}

func TestDefaultRateTable(t *testing.T) {
	rt := DefaultRateTable()

	rate, err := rt.StandardRate(PositionGeneralLabor)
	require.NoError(t, err)
	assert.InDelta(t, 16.00, rate, 1e-9)

	rate, err = rt.StandardRate(PositionForkliftDriver)
	require.NoError(t, err)
	assert.InDelta(t, 18.00, rate, 1e-9)

	_, err = rt.StandardRate("picker")
	var unknown *UnknownPositionError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "picker", unknown.Position)
}

func TestLoadRateTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.yaml")
	content := "positions:\n  - position: Forklift Driver\n    rate: 19.50\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rt, err := LoadRateTable(path)
	require.NoError(t, err)

	rate, err := rt.StandardRate(PositionForkliftDriver)
	require.NoError(t, err)
	assert.InDelta(t, 19.50, rate, 1e-9)

	// Unnamed positions keep the built-in default.
	rate, err = rt.StandardRate(PositionGeneralLabor)
	require.NoError(t, err)
	assert.InDelta(t, 16.00, rate, 1e-9)
}

func TestLoadRateTableRejectsNonPositiveRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.yaml")
	content := "positions:\n  - position: general labor\n    rate: 0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadRateTable(path)
	assert.Error(t, err)
}
