package utils

import (
	"regexp"
	"strings"
)

// Nigerian mobile numbers: leading 0 or +234, then 7/8/9, then 0/1, then
// eight more digits.
var phonePattern = regexp.MustCompile(`^(0|\+234)[789][01]\d{8}$`)

var referralCodePattern = regexp.MustCompile(`^[A-Za-z0-9]{6}$`)

var nonDigits = regexp.MustCompile(`\D`)

// ValidatePhoneNumber reports whether phone is a well-formed Nigerian mobile
// number in local (0...) or international (+234...) form.
func ValidatePhoneNumber(phone string) bool {
	return phonePattern.MatchString(phone)
}

// FormatPhoneNumber normalizes a phone number to the local 0XXXXXXXXXX form.
// A leading 234 country code is replaced with a single 0; numbers already
// starting with 0 are returned unchanged; anything else gets a 0 prefix.
func FormatPhoneNumber(phone string) string {
	cleaned := nonDigits.ReplaceAllString(phone, "")
	if strings.HasPrefix(cleaned, "234") {
		return "0" + cleaned[3:]
	}
	if strings.HasPrefix(cleaned, "0") {
		return cleaned
	}
	return "0" + cleaned
}

// NormalizeReferralCode trims and uppercases a referral code. It does not
// validate; pair with ValidateReferralCode.
func NormalizeReferralCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateReferralCode reports whether code is exactly six alphanumeric
// characters, case-insensitive.
func ValidateReferralCode(code string) bool {
	return referralCodePattern.MatchString(strings.TrimSpace(code))
}
