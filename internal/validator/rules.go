package validator

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	namePattern  = regexp.MustCompile(`^[a-zA-Z\s]+$`)

	upperPattern   = regexp.MustCompile(`[A-Z]`)
	lowerPattern   = regexp.MustCompile(`[a-z]`)
	digitPattern   = regexp.MustCompile(`\d`)
	specialPattern = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// PasswordRequirement is one line of the signup password checklist.
type PasswordRequirement struct {
	Label string
	Test  func(password string) bool
}

var PasswordRequirements = []PasswordRequirement{
	{Label: "At least 8 characters", Test: func(p string) bool { return len(p) >= 8 }},
	{Label: "Contains uppercase letter", Test: upperPattern.MatchString},
	{Label: "Contains lowercase letter", Test: lowerPattern.MatchString},
	{Label: "Contains number", Test: digitPattern.MatchString},
	{Label: "Contains special character", Test: specialPattern.MatchString},
}

// PasswordStrength counts the requirements password meets.
func PasswordStrength(password string) int {
	n := 0
	for _, req := range PasswordRequirements {
		if req.Test(password) {
			n++
		}
	}
	return n
}

func IsEmailLike(s string) bool {
	return emailPattern.MatchString(s)
}

func checkEmail(v string) string {
	if strings.TrimSpace(v) == "" {
		return "Email is required"
	}
	if !IsEmailLike(v) {
		return "Please enter a valid email address"
	}
	return ""
}

func checkPersonName(label, v string) string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return label + " is required"
	}
	if len(trimmed) < 2 {
		return label + " must be at least 2 characters"
	}
	if !namePattern.MatchString(v) {
		return label + " can only contain letters"
	}
	return ""
}

func checkRequired(label, v string) string {
	if strings.TrimSpace(v) == "" {
		return label + " is required"
	}
	return ""
}
