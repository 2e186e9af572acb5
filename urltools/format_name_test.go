package urltools

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInputFormatNameFromURL(t *testing.T) {
	t.Parallel()
	for input, expected := range map[string]string{
		"/tmp/sample.h264":           "h264",
		"file:///tmp/sample.HEVC":    "hevc",
		"sample.ivf":                 "ivf",
		"/tmp/sample.mkv":            "",
		"rtsp://camera.local/stream": "rtsp",
		"https://example.com/a.h264": "",
	} {
		u, err := url.Parse(input)
		require.NoError(t, err)
		require.Equal(t, expected, InputFormatNameFromURL(u), input)
	}
}

func TestLocalPath(t *testing.T) {
	t.Parallel()

	path, ok := LocalPath("file:///tmp/a.mp4")
	require.True(t, ok)
	require.Equal(t, "/tmp/a.mp4", path)

	path, ok = LocalPath("/tmp/b.h264")
	require.True(t, ok)
	require.Equal(t, "/tmp/b.h264", path)

	_, ok = LocalPath("rtsp://camera.local/stream")
	require.False(t, ok)
}
