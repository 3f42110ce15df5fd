package helper

import "testing"

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Str0ng!Pass", true},
		{"Aa1!aaaa", true},
		{"short1!A", true},
		{"Aa1!aaa", false},     // too short
		{"alllower1!", false},  // no uppercase
		{"ALLUPPER1!", false},  // no lowercase
		{"NoDigits!!", false},  // no digit
		{"NoSymbols11", false}, // no symbol
		{"", false},
	}
	for _, tt := range tests {
		if got := IsStrongPassword(tt.password); got != tt.want {
			t.Errorf("IsStrongPassword(%q) = %v, want %v", tt.password, got, tt.want)
		}
	}
}
