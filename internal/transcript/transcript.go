// Package transcript turns a raw discussion view into the plain-text
// transcript sent to the completion service.
package transcript

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"discussum/internal/model"
	"discussum/internal/roster"
)

const DefaultMinContributors = 8

var ErrInsufficientContributors = errors.New("insufficient contributors")

type InsufficientError struct {
	Have int
	Need int
}

func (e *InsufficientError) Error() string {
	return fmt.Sprintf("%s: have %d, need %d", ErrInsufficientContributors, e.Have, e.Need)
}

func (e *InsufficientError) Unwrap() error { return ErrInsufficientContributors }

var tagPattern = regexp.MustCompile(`<[^>]*>`)

func StripTags(s string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(s, ""))
}

// Entries filters the view against allow. Participants are filtered first and
// counted against minContributors before any post is looked at; posts whose
// author did not survive that filter are dropped.
func Entries(view model.DiscussionView, allow *roster.Roster, minContributors int) ([]model.FormattedEntry, error) {
	names := make(map[int64]string, len(view.Participants))
	for _, p := range view.Participants {
		if allow.Contains(p.DisplayName) {
			names[p.ID] = p.DisplayName
		}
	}

	if len(names) < minContributors {
		return nil, &InsufficientError{Have: len(names), Need: minContributors}
	}

	entries := make([]model.FormattedEntry, 0, len(view.View))
	for _, post := range view.View {
		name, ok := names[post.UserID]
		if !ok {
			continue
		}
		entries = append(entries, model.FormattedEntry{
			Name:    name,
			Message: StripTags(post.Message),
		})
	}

	return entries, nil
}

func Render(entries []model.FormattedEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("name: %s\n", e.Name))
		sb.WriteString(fmt.Sprintf("message: %s\n\n", e.Message))
	}
	return strings.TrimRight(sb.String(), " \t\r\n")
}

func Format(view model.DiscussionView, allow *roster.Roster, minContributors int) (string, error) {
	entries, err := Entries(view, allow, minContributors)
	if err != nil {
		return "", err
	}
	return Render(entries), nil
}
