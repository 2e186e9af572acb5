package urltools

import (
	"net/url"
)

// LocalPath returns the filesystem path of a local input.
func LocalPath(urlString string) (string, bool) {
	u, err := url.Parse(urlString)
	if err != nil {
		return urlString, true
	}
	switch u.Scheme {
	case "file", "":
		return u.Path, true
	}
	return "", false
}
