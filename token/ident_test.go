package token

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		in                      string
		ident, method, constant bool
	}{
		{in: "name", ident: true, method: true},
		{in: "_x1", ident: true, method: true},
		{in: "Agency", ident: true, method: true, constant: true},
		{in: "Admin::Role", constant: true},
		{in: "Admin::", constant: false},
		{in: "a-b"},
		{in: "1a"},
		{in: ""},
		{in: "create!", method: true},
		{in: "valid?", method: true},
		{in: "!"},
		{in: "naïve", ident: true, method: true},
		{in: "a b"},
	}
	for _, tt := range tests {
		if got := IsIdent(tt.in); got != tt.ident {
			t.Errorf("IsIdent(%q) = %t", tt.in, got)
		}
		if got := IsMethodName(tt.in); got != tt.method {
			t.Errorf("IsMethodName(%q) = %t", tt.in, got)
		}
		if got := IsConstant(tt.in); got != tt.constant {
			t.Errorf("IsConstant(%q) = %t", tt.in, got)
		}
	}
}

func TestIsNumber(t *testing.T) {
	for s, want := range map[string]bool{
		"0":        true,
		"1":        true,
		"-12":      true,
		"+3":       true,
		"1_000":    true,
		"1.5":      true,
		"0.25":     true,
		"1e10":     true,
		"1.5E-3":   true,
		"":         false,
		"-":        false,
		"01":       false,
		"1.":       false,
		".5":       false,
		"1__0":     false,
		"_1":       false,
		"1_":       false,
		"1e":       false,
		"0x1F":     true,
		"0X1f_ff":  true,
		"-0b101":   true,
		"0o17":     true,
		"0d19":     true,
		"1r":       true,
		"1.5r":     true,
		"2i":       true,
		"3ri":      true,
		"1e3i":     true,
		"1e3r":     false,
		"0x":       false,
		"0xG":      false,
		"0b102":    false,
		"0o8":      false,
		"0x_1":     false,
		"017":      false,
		"1ir":      false,
		"1.2.3":    false,
		"12abc":    false,
		"Infinity": false,
	} {
		if got := IsNumber(s); got != want {
			t.Errorf("IsNumber(%q) = %t want %t", s, got, want)
		}
	}
}
