package models

// CreateGroupRequest carries the caller-supplied fields of a new group.
type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MaxMembers  *int   `json:"max_members,omitempty"`
}
