package analysis

import "strings"

// ExtractVideoID pulls the YouTube video id out of a watch, share, live or
// shorts URL. Query strings and #fragments are never part of the id and are
// cut in every form. It returns "" when no id can be found.
func ExtractVideoID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	cut := func(s string, seps ...string) string {
		for _, sep := range seps {
			if i := strings.Index(s, sep); i >= 0 {
				s = s[:i]
			}
		}
		return s
	}

	switch {
	case strings.Contains(raw, "youtu.be"):
		parts := strings.Split(raw, "/")
		return cut(parts[len(parts)-1], "?", "#")
	case strings.Contains(raw, "/live/"):
		_, after, _ := strings.Cut(raw, "/live/")
		return cut(after, "?", "#")
	case strings.Contains(raw, "v="):
		_, after, _ := strings.Cut(raw, "v=")
		return cut(after, "&", "#")
	case strings.Contains(raw, "/shorts/"):
		_, after, _ := strings.Cut(raw, "/shorts/")
		return cut(after, "?", "#")
	}
	return ""
}
