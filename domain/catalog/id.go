package catalog

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	nonSlugRunes   = regexp.MustCompile(`[^a-z0-9-]`)
)

// Slugify lower-cases the name, collapses whitespace runs to single hyphens
// and strips everything that is not alphanumeric or a hyphen.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = whitespaceRuns.ReplaceAllString(s, "-")
	return nonSlugRunes.ReplaceAllString(s, "")
}

// NewAgentID derives an id from the agent name: a readable slug suffixed with
// the base-36 creation timestamp so that repeated names stay unique.
func NewAgentID(name string, now time.Time) string {
	suffix := strconv.FormatInt(now.UnixMilli(), 36)
	slug := Slugify(name)
	if slug == "" {
		return suffix
	}
	return slug + "-" + suffix
}
