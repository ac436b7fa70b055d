package canvas

import (
	"errors"
	"regexp"
	"strings"

	"discussum/internal/model"
)

var ErrInvalidLink = errors.New("invalid discussion link format")

var linkPattern = regexp.MustCompile(`^https?://([^/\s]+)/courses/([0-9]+)/discussion_topics/([0-9]+)`)

// ParseLink extracts the host, course id and discussion id from a discussion
// link. Anything after the discussion id (such as /view or a query) is ignored.
func ParseLink(link string) (model.DiscussionRef, error) {
	m := linkPattern.FindStringSubmatch(strings.TrimSpace(link))
	if m == nil {
		return model.DiscussionRef{}, ErrInvalidLink
	}

	return model.DiscussionRef{
		Host:         m[1],
		CourseID:     m[2],
		DiscussionID: m[3],
	}, nil
}
