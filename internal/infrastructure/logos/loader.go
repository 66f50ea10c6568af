package logos

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MelloMattGit/CFBPyckem/internal/domain/team"
)

// LoadFile reads the branding CSV into a lookup set keyed by team id. The
// first record is the header; column order is not assumed. Rows with a blank
// id are skipped.
func LoadFile(path string) (team.BrandingSet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open branding file: %w", err)
	}
	defer file.Close()

	set, err := load(file)
	if err != nil {
		return nil, fmt.Errorf("parse branding file %s: %w", path, err)
	}
	return set, nil
}

func load(r io.Reader) (team.BrandingSet, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["id"]; !ok {
		return nil, fmt.Errorf("header is missing the id column")
	}

	set := make(team.BrandingSet)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}

		teamID := field(record, columns, "id")
		if teamID == "" {
			continue
		}
		set[teamID] = team.Branding{
			Color:        field(record, columns, "color"),
			Logo:         field(record, columns, "logo"),
			DarkLogo:     field(record, columns, "dark_logo"),
			Abbreviation: field(record, columns, "abbreviation"),
			Mascot:       field(record, columns, "mascot"),
		}
	}
	return set, nil
}

func field(record []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
