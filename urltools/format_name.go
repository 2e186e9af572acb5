// Package urltools guesses libav demuxers for the inputs of the tools.
package urltools

import (
	"net/url"
	"path/filepath"
	"slices"
	"strings"
)

// InputFormatNameFromURL returns the demuxer to force for inputs libav
// does not probe reliably (raw elementary streams), or "" to let libav
// probe the input.
func InputFormatNameFromURL(u *url.URL) string {
	switch u.Scheme {
	case "file", "":
		return InputFormatNameFromFileExtension(u.Path)
	case "rtsp":
		return "rtsp"
	}
	return ""
}

func InputFormatNameFromFileExtension(path string) string {
	switch {
	case hasFileExtension(path, ".h264", ".264", ".avc"):
		return "h264"
	case hasFileExtension(path, ".h265", ".265", ".hevc"):
		return "hevc"
	case hasFileExtension(path, ".ivf"):
		return "ivf"
	case hasFileExtension(path, ".obu"):
		return "obu"
	case hasFileExtension(path, ".m2v", ".mpv"):
		return "mpegvideo"
	}
	return ""
}

func hasFileExtension(path string, exts ...string) bool {
	return slices.Contains(exts, strings.ToLower(filepath.Ext(path)))
}
