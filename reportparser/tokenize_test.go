package reportparser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitCells(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"framed row", "| 1 | Hyperkalemia | STOP |", []string{"1", "Hyperkalemia", "STOP"}},
		{"unframed row", "1 | Hyperkalemia | STOP", []string{"1", "Hyperkalemia", "STOP"}},
		{"interior empty kept", "| 2 | Elevated LDL | | Cholesterol 7.2 |", []string{"2", "Elevated LDL", "", "Cholesterol 7.2"}},
		{"trailing empty cell", "| a | b | |", []string{"a", "b", ""}},
		{"indented", "   |  x  |  y  |  ", []string{"x", "y"}},
		{"single empty cell", "| |", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, splitCells(tt.line)); diff != "" {
				t.Errorf("splitCells(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestIsSeparatorRow(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"|--|--|", true},
		{"| --- | :---: | ---: |", true},
		{"--- | ---", true},
		{"|---|", true},
		{"---", false},
		{"| a | b |", false},
		{"| - | x |", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isSeparatorRow(tt.line); got != tt.want {
			t.Errorf("isSeparatorRow(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestIsPipeRow(t *testing.T) {
	if !isPipeRow("| a | b |") {
		t.Error("framed row should be a pipe row")
	}
	if isPipeRow("|--|--|") {
		t.Error("separator should not count as a pipe row")
	}
	if isPipeRow("plain text") {
		t.Error("text without pipes should not be a pipe row")
	}
}

func TestNumberedLine(t *testing.T) {
	tests := []struct {
		line        string
		wantOrdinal string
		wantText    string
		wantOK      bool
	}{
		{"1. Hyperkalemia", "1", "Hyperkalemia", true},
		{"  12. Twelfth item  ", "12", "Twelfth item", true},
		{"**3.** Bold numeral", "3", "Bold numeral", true},
		{"4 . Spaced period", "4", "Spaced period", true},
		{"2.5 mg daily", "", "", false},
		{"1.", "", "", false},
		{"- bullet", "", "", false},
		{"1) paren", "", "", false},
		{"1234. too long", "", "", false},
		{"Item 1. inline", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			ordinal, text, ok := numberedLine(tt.line)
			if ok != tt.wantOK || ordinal != tt.wantOrdinal || text != tt.wantText {
				t.Errorf("numberedLine(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.line, ordinal, text, ok, tt.wantOrdinal, tt.wantText, tt.wantOK)
			}
		})
	}
}

func TestSplitDelimited(t *testing.T) {
	tests := []struct {
		name string
		text string
		n    int
		want []string
	}{
		{"semicolons", "Hoog LDL; simvastatine; LDL 4.1", 5, []string{"Hoog LDL", "simvastatine", "LDL 4.1"}},
		{"mixed", "Hypertensie: ACE-remmer | intolerantie", 3, []string{"Hypertensie", "ACE-remmer", "intolerantie"}},
		{"remainder kept", "a; b; c; d", 2, []string{"a", "b; c; d"}},
		{"no delimiter", "plain", 3, []string{"plain"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, splitDelimited(tt.text, tt.n)); diff != "" {
				t.Errorf("splitDelimited mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitAtAction(t *testing.T) {
	tests := []struct {
		text       string
		wantDesc   string
		wantAction string
		wantOK     bool
	}{
		{"Hyperkalemia door spironolacton STOP spironolacton", "Hyperkalemia door spironolacton", "STOP spironolacton", true},
		{"Hoog LDL - START atorvastatine 20mg", "Hoog LDL", "START atorvastatine 20mg", true},
		{"Dubbelmedicatie, OVERWEEG afbouw", "Dubbelmedicatie", "OVERWEEG afbouw", true},
		{"STOP diclofenac", "STOP diclofenac", "STOP diclofenac", true},
		{"stop is lowercase here", "stop is lowercase here", "", false},
		{"Geen actie nodig", "Geen actie nodig", "", false},
		{"Hyperkalemie bij spironolacton: STOP spironolacton", "Hyperkalemie bij spironolacton", "STOP spironolacton", true},
		{"RESTART na opname", "RESTART na opname", "", false},
		{"STOPPEN met roken besproken", "STOPPEN met roken besproken", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			desc, action, ok := splitAtAction(tt.text)
			if desc != tt.wantDesc || action != tt.wantAction || ok != tt.wantOK {
				t.Errorf("splitAtAction(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.text, desc, action, ok, tt.wantDesc, tt.wantAction, tt.wantOK)
			}
		})
	}
}
