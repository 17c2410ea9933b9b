package model

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// ErrInvalidNotionID is returned when the input cannot be parsed as a Notion ID
var ErrInvalidNotionID = goerr.New("invalid Notion ID")

var hexPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

// ParseNotionID extracts a Notion ID from a raw ID, a dashed UUID or a Notion URL.
// The result is always in UUID form (8-4-4-4-12).
//   - "1cfbe24c0c90801d80a3e3f220e4f50c"
//   - "1cfbe24c-0c90-801d-80a3-e3f220e4f50c"
//   - "https://www.notion.so/workspace/Title-1cfbe24c0c90801d80a3e3f220e4f50c?v=..."
func ParseNotionID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", goerr.Wrap(ErrInvalidNotionID, "empty ID")
	}

	var hex string
	var err error
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		hex, err = parseNotionURL(input)
	} else {
		hex, err = normalizeNotionID(input)
	}
	if err != nil {
		return "", goerr.Wrap(err, "failed to parse Notion ID", goerr.V("input", input))
	}

	id, err := uuid.Parse(hex)
	if err != nil {
		return "", goerr.Wrap(ErrInvalidNotionID, "not a UUID", goerr.V("input", input))
	}

	return id.String(), nil
}

func parseNotionURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrInvalidNotionID
	}

	host := u.Hostname()
	if host != "www.notion.so" && host != "notion.so" {
		return "", ErrInvalidNotionID
	}

	// The ID is the trailing 32 hex chars of the last segment, after an optional title
	segments := strings.Split(strings.TrimRight(u.Path, "/"), "/")
	last := strings.ReplaceAll(segments[len(segments)-1], "-", "")
	if len(last) >= 32 {
		candidate := last[len(last)-32:]
		if hexPattern.MatchString(candidate) {
			return candidate, nil
		}
	}

	return "", ErrInvalidNotionID
}

func normalizeNotionID(input string) (string, error) {
	clean := strings.ToLower(strings.ReplaceAll(input, "-", ""))
	if hexPattern.MatchString(clean) {
		return clean, nil
	}
	return "", ErrInvalidNotionID
}
