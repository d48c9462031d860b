package catalogue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeForExtension(t *testing.T) {
	assert.Equal(t, TypeImage, TypeForExtension(".jpg"))
	assert.Equal(t, TypeImage, TypeForExtension(".WEBP"))
	assert.Equal(t, TypeAudio, TypeForExtension(".mp3"))
	assert.Equal(t, TypeVideo, TypeForExtension(".mkv"))
	assert.Equal(t, TypeUnknown, TypeForExtension(".txt"))
	assert.Equal(t, TypeUnknown, TypeForExtension(""))
}

func TestExtensionsForType(t *testing.T) {
	assert.Contains(t, ExtensionsForType(TypeImage), ".png")
	assert.Contains(t, ExtensionsForType(TypeAudio), ".flac")
	assert.Contains(t, ExtensionsForType(TypeVideo), ".webm")
	assert.Nil(t, ExtensionsForType(TypeUnknown), "unknown accepts any extension")
}

func TestValidType(t *testing.T) {
	for _, v := range []string{"image", "audio", "video", "unknown"} {
		assert.True(t, ValidType(v), "%s is a valid type", v)
	}
	assert.False(t, ValidType("document"))
	assert.False(t, ValidType(""))
}

func TestParseTimestamp(t *testing.T) {
	cases := []string{
		"2026-08-01T12:30:45Z",
		"2026-08-01T12:30:45+02:00",
		"2026-08-01T12:30:45.123456789Z",
		"2026-08-01T12:30:45",
		"2026-08-01T12:30:45.123456",
	}
	for _, s := range cases {
		parsed, err := ParseTimestamp(s)
		require.NoError(t, err, "expected %q to parse", s)
		assert.Equal(t, 2026, parsed.Year())
		assert.Equal(t, time.August, parsed.Month())
	}

	_, err := ParseTimestamp("not-a-date")
	assert.Error(t, err)
	_, err = ParseTimestamp("")
	assert.Error(t, err)
}

func TestParseTimestamp_NaiveIsLocal(t *testing.T) {
	parsed, err := ParseTimestamp("2026-08-01T12:30:45")
	require.NoError(t, err)
	assert.Equal(t, time.Local, parsed.Location())
}

func TestFormatTimestampRoundTrip(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	parsed, err := ParseTimestamp(FormatTimestamp(now))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(now))
}

func TestPathSet(t *testing.T) {
	m := &Manifest{Assets: []AssetRecord{
		{Path: "a/b.jpg"},
		{Path: "c.mp3"},
	}}

	set := m.PathSet()
	assert.True(t, set["a/b.jpg"])
	assert.True(t, set["c.mp3"])
	assert.False(t, set["d.png"])
}
