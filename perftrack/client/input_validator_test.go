package client

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeTextKeepsRuneBoundaries(t *testing.T) {
	// A two-byte rune straddling the cap must not be split in half.
	path := strings.Repeat("a", 254) + "é"
	got := sanitizeText(path, maxPathLen)
	if !utf8.ValidString(got) {
		t.Error("Truncation split a rune")
	}
	if len(got) != 254 {
		t.Error("Expected the cut to back up to the rune boundary, got ", len(got))
	}

	wide := strings.Repeat("日", 10)
	got = sanitizeText(wide, 10)
	if !utf8.ValidString(got) {
		t.Error("Truncation split a three-byte rune")
	}
	if len(got) != 9 {
		t.Error("Expected 3 whole runes, got ", len(got), " bytes")
	}

	// Pure ASCII still cuts exactly at the cap.
	if got := sanitizeText(strings.Repeat("a", 300), maxPathLen); len(got) != maxPathLen {
		t.Error("ASCII should truncate at the cap, got ", len(got))
	}
}

func TestSanitizeMethod(t *testing.T) {
	if got := sanitizeMethod("  get  "); got != "GET" {
		t.Error("Method should be trimmed and uppercased, got ", got)
	}
	if got := sanitizeMethod("propfind-extended"); got != "PROPFIND-EXT" {
		t.Error("Method should truncate to 12, got ", got)
	}
	if got := sanitizeMethod("   "); got != "" {
		t.Error("Blank method should come back empty, got ", got)
	}
}
