package server

import "testing"

func TestValidBloodGroup(t *testing.T) {
	for _, g := range []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"} {
		if !validBloodGroup(g) {
			t.Errorf("validBloodGroup(%q) = false", g)
		}
	}
	for _, g := range []string{"", "o+", "C+", "AB", "A +"} {
		if validBloodGroup(g) {
			t.Errorf("validBloodGroup(%q) = true", g)
		}
	}
}

func TestValidMobile(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"01711111111", true},
		{"+8801711111111", true},
		{"123456", true},
		{"12345", false},
		{"1234567890123456", false},
		{"01-711", false},
		{"", false},
		{"abc123", false},
	}
	for _, tt := range tests {
		if got := validMobile(tt.in); got != tt.want {
			t.Errorf("validMobile(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
