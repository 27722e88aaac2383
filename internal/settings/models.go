package settings

import "time"

// Author field labels accepted by SetAuthorField
const (
	LabelAuthorName  = "authorName"
	LabelAuthorEmail = "authorEmail"
)

// AuthorInfo is the identity recorded on commits made from the editor
type AuthorInfo struct {
	AuthorName  string `json:"author_name" db:"author_name"`
	AuthorEmail string `json:"author_email" db:"author_email" binding:"omitempty,email"`
}

// GitProfile is the per-user git author profile
type GitProfile struct {
	UserID string `json:"user_id" db:"user_id"`
	AuthorInfo
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// UpdateFieldRequest is the body of PATCH /settings/git-profile/:label
type UpdateFieldRequest struct {
	Value string `json:"value"`
}

// SetAuthorField replaces the field named by label and keeps the other one. Unknown
// labels leave the author untouched and report false.
func SetAuthorField(info AuthorInfo, label, value string) (AuthorInfo, bool) {
	switch label {
	case LabelAuthorName:
		return AuthorInfo{AuthorName: value, AuthorEmail: info.AuthorEmail}, true
	case LabelAuthorEmail:
		return AuthorInfo{AuthorName: info.AuthorName, AuthorEmail: value}, true
	default:
		return info, false
	}
}
