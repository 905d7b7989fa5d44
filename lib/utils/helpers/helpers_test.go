package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestToday(t *testing.T) {
	loc := time.FixedZone("WIB", 7*60*60)
	t.Run(`utc evening is next local day`, func(t *testing.T) {
		now := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)
		require.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), Today(now, loc))
	})
	t.Run(`same day`, func(t *testing.T) {
		now := time.Date(2024, 3, 10, 2, 0, 0, 0, time.UTC)
		require.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), Today(now, loc))
	})
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-02-29 ")
	require.NoError(t, err)
	require.Equal(t, "2024-02-29", FormatDate(&d))

	_, err = ParseDate("29.02.2024")
	require.Error(t, err)

	empty, err := ParseOptionalDate("")
	require.NoError(t, err)
	require.Nil(t, empty)
	require.Equal(t, "", FormatDate(nil))
}

func TestIsContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	require.False(t, IsContextDone(ctx))
	cancel()
	require.True(t, IsContextDone(ctx))
}

func TestStrPtr(t *testing.T) {
	require.Nil(t, StrPtr(""))
	require.Equal(t, "x", StrValue(StrPtr("x")))
	require.Equal(t, "", StrValue(nil))
}
