package team

// Branding holds the display attributes for one team.
type Branding struct {
	Color        string
	Logo         string
	DarkLogo     string
	Abbreviation string
	Mascot       string
}

// BrandingSet maps team identifiers to display attributes. It is built once
// at startup and must not be mutated afterwards; concurrent readers are safe.
type BrandingSet map[string]Branding

func (s BrandingSet) Lookup(teamID string) (Branding, bool) {
	b, ok := s[teamID]
	return b, ok
}
