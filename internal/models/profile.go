package models

// UserProfile describes the requesting user in suggestion mode. The implicit
// interest set is derived from OwnUploads plus the declared fields.
type UserProfile struct {
	UserID     string      `json:"id"`
	Name       string      `json:"name,omitempty"`
	UserType   string      `json:"userType"`
	Subject    string      `json:"subject,omitempty"`
	Class      string      `json:"class,omitempty"`
	Semester   string      `json:"semester,omitempty"`
	OwnUploads []*Document `json:"-"`
}
