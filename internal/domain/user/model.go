package user

import (
	"fmt"
	"strings"
)

// Profile is the identity-provider profile kept in the session.
type Profile struct {
	ID          int64
	Username    string
	DisplayName string
	Avatar      string
	Admin       bool
}

// Validate enforces the required fields before a profile is written to a
// session or persisted.
func (p Profile) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("profile id must be greater than zero")
	}
	if strings.TrimSpace(p.Username) == "" {
		return fmt.Errorf("profile username cannot be empty")
	}
	return nil
}

// Name returns the display name when present, falling back to the username.
func (p Profile) Name() string {
	if name := strings.TrimSpace(p.DisplayName); name != "" {
		return name
	}
	return p.Username
}

// AvatarURL builds the CDN URL for the profile avatar, falling back to one of
// the provider's default embed avatars when the user has none.
func (p Profile) AvatarURL() string {
	if strings.TrimSpace(p.Avatar) != "" {
		return fmt.Sprintf("https://cdn.discordapp.com/avatars/%d/%s.png", p.ID, p.Avatar)
	}
	return fmt.Sprintf("https://cdn.discordapp.com/embed/avatars/%d.png", p.ID%5)
}
