package filestorage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	t.Run(`face photo key`, func(t *testing.T) {
		key := FacePhotoKey("emp-1", FaceLeft, "IMG_01.PNG")
		require.True(t, strings.HasPrefix(key, "faces/emp-1/left-"))
		require.True(t, strings.HasSuffix(key, ".png"))
	})
	t.Run(`unknown extension falls back to jpg`, func(t *testing.T) {
		key := CheckInPhotoKey("emp-1", "2024-05-01", "photo.exe")
		require.True(t, strings.HasPrefix(key, "attendance/emp-1/2024-05-01-"))
		require.True(t, strings.HasSuffix(key, ".jpg"))
	})
	t.Run(`keys are unique`, func(t *testing.T) {
		require.NotEqual(t, FacePhotoKey("e", FaceFront, "a.jpg"), FacePhotoKey("e", FaceFront, "a.jpg"))
	})
}
