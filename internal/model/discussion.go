package model

// DiscussionRef identifies one discussion topic on a Canvas host.
type DiscussionRef struct {
	Host         string
	CourseID     string
	DiscussionID string
}

type Participant struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
}

type Post struct {
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
}

// DiscussionView is the decoded body of the discussion topic view endpoint.
type DiscussionView struct {
	Participants []Participant `json:"participants"`
	View         []Post        `json:"view"`
}

type FormattedEntry struct {
	Name    string
	Message string
}
