package attendanceprovider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseCutoff(t *testing.T) {
	cutoff, err := ParseCutoff("09:00")
	require.NoError(t, err)
	require.Equal(t, Cutoff{Hour: 9}, cutoff)
	require.Equal(t, "09:00", cutoff.String())

	_, err = ParseCutoff("9am")
	require.Error(t, err)
}

func TestIsLate(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	cutoff := Cutoff{Hour: 9}
	tests := []struct {
		name    string
		checkIn time.Time
		late    bool
	}{
		{"before cutoff", time.Date(2024, 6, 3, 8, 59, 59, 0, loc), false},
		{"exactly cutoff", time.Date(2024, 6, 3, 9, 0, 0, 0, loc), false},
		{"one second after", time.Date(2024, 6, 3, 9, 0, 1, 0, loc), true},
		{"utc instant converted to local", time.Date(2024, 6, 3, 2, 30, 0, 0, time.UTC), true},
		{"early utc instant", time.Date(2024, 6, 3, 1, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.late, IsLate(tt.checkIn, cutoff, loc))
		})
	}
}
