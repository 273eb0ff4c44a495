package prompt

import "testing"

func TestParseSelection(t *testing.T) {
	tests := []struct {
		input      string
		n          int
		wantChoice int
		wantOK     bool
	}{
		{"0", 3, 0, true},
		{"1", 3, 1, true},
		{"3", 3, 3, true},
		{" 2 ", 3, 2, true},
		{"4", 3, 0, false},
		{"-1", 3, 0, false},
		{"abc", 3, 0, false},
		{"", 3, 0, false},
		{"1.5", 3, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			choice, ok := parseSelection(tt.input, tt.n)
			if choice != tt.wantChoice || ok != tt.wantOK {
				t.Errorf("parseSelection(%q, %d) = (%d, %v), want (%d, %v)",
					tt.input, tt.n, choice, ok, tt.wantChoice, tt.wantOK)
			}
		})
	}
}

func TestParseYesNo(t *testing.T) {
	tests := []struct {
		input     string
		def       bool
		wantValue bool
		wantOK    bool
	}{
		{"y", false, true, true},
		{"Y", false, true, true},
		{"yes", false, true, true},
		{"n", true, false, true},
		{"NO", true, false, true},
		{"", true, true, true},
		{"", false, false, true},
		{" y ", false, true, true},
		{"maybe", false, false, false},
		{"1", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.input+"/"+map[bool]string{true: "def-yes", false: "def-no"}[tt.def], func(t *testing.T) {
			value, ok := parseYesNo(tt.input, tt.def)
			if value != tt.wantValue || ok != tt.wantOK {
				t.Errorf("parseYesNo(%q, %v) = (%v, %v), want (%v, %v)",
					tt.input, tt.def, value, ok, tt.wantValue, tt.wantOK)
			}
		})
	}
}
