package logos

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_HeaderOrderIndependent(t *testing.T) {
	input := strings.NewReader(
		"mascot,id,logo,color,abbreviation,dark_logo\n" +
			"Wolverines,130,https://cdn.example.com/130.png,00274c,MICH,https://cdn.example.com/130-dark.png\n")

	set, err := load(input)
	if err != nil {
		t.Fatalf("load branding: %v", err)
	}

	b, ok := set.Lookup("130")
	if !ok {
		t.Fatal("expected team 130 in set")
	}
	if b.Mascot != "Wolverines" || b.Color != "00274c" || b.Abbreviation != "MICH" {
		t.Fatalf("unexpected branding: %+v", b)
	}
	if b.DarkLogo != "https://cdn.example.com/130-dark.png" {
		t.Fatalf("unexpected dark logo: %q", b.DarkLogo)
	}
}

func TestLoad_SkipsBlankIDRows(t *testing.T) {
	input := strings.NewReader(
		"id,color,logo,dark_logo,abbreviation,mascot\n" +
			"130,00274c,,,MICH,Wolverines\n" +
			" ,ffffff,,,XX,Ghosts\n" +
			"194,bb0000,,,OSU,Buckeyes\n")

	set, err := load(input)
	if err != nil {
		t.Fatalf("load branding: %v", err)
	}
	if len(set) != 2 {
		t.Fatalf("expected blank-id row skipped, got %d entries", len(set))
	}
}

func TestLoad_MissingIDColumn(t *testing.T) {
	input := strings.NewReader("color,logo\n00274c,x.png\n")

	_, err := load(input)
	if err == nil {
		t.Fatal("expected error for missing id column")
	}
}

func TestLoad_ShortRecordYieldsEmptyFields(t *testing.T) {
	reader := strings.NewReader(
		"id,color,logo,dark_logo,abbreviation,mascot\n" +
			"130,00274c,logo.png,dark.png,MICH,Wolverines\n")

	set, err := load(reader)
	if err != nil {
		t.Fatalf("load branding: %v", err)
	}
	b, _ := set.Lookup("130")
	if b.Logo != "logo.png" {
		t.Fatalf("unexpected logo: %q", b.Logo)
	}
}

func TestLoadFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logos.csv")
	content := "id,color,logo,dark_logo,abbreviation,mascot\n130,00274c,l.png,d.png,MICH,Wolverines\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	set, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if _, ok := set.Lookup("130"); !ok {
		t.Fatal("expected team 130 in set")
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.csv"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
