package utils

import "testing"

func TestValidatePhoneNumber(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"08012345678", true},
		{"+2348012345678", true},
		{"09112345678", true},
		{"07012345678", true},
		{"07999999999", false}, // second digit after 7 must be 0 or 1
		{"0801234567", false},  // too short
		{"080123456789", false},
		{"2348012345678", false}, // bare country code needs the plus
		{"abc", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidatePhoneNumber(tc.phone); got != tc.want {
			t.Errorf("ValidatePhoneNumber(%q) = %v, want %v", tc.phone, got, tc.want)
		}
	}
}

func TestFormatPhoneNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2348012345678", "08012345678"},
		{"+234 801 234 5678", "08012345678"},
		{"08012345678", "08012345678"},
		{"8012345678", "08012345678"},
		{"0801-234-5678", "08012345678"},
	}
	for _, tc := range cases {
		if got := FormatPhoneNumber(tc.in); got != tc.want {
			t.Errorf("FormatPhoneNumber(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestReferralCode(t *testing.T) {
	if got := NormalizeReferralCode(" abc123 "); got != "ABC123" {
		t.Fatalf("NormalizeReferralCode = %q, want ABC123", got)
	}
	if !ValidateReferralCode("abc123") {
		t.Fatalf("expected abc123 to validate")
	}
	if ValidateReferralCode("abc12") {
		t.Fatalf("expected 5-char code to fail")
	}
	if ValidateReferralCode("abc12!") {
		t.Fatalf("expected non-alphanumeric code to fail")
	}
}
