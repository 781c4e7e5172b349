package entity

import (
	"regexp"
	"strconv"
	"strings"
)

// PasswordStrength grades a password by how many requirements it meets.
type PasswordStrength string

const (
	PasswordWeak   PasswordStrength = "weak"
	PasswordMedium PasswordStrength = "medium"
	PasswordStrong PasswordStrength = "strong"
)

// PasswordRequirements configures ValidatePassword.
type PasswordRequirements struct {
	MinLength        int
	RequireUppercase bool
	RequireLowercase bool
	RequireNumber    bool
	RequireSymbol    bool
}

// DefaultPasswordRequirements are the rules applied at registration.
var DefaultPasswordRequirements = PasswordRequirements{
	MinLength:        8,
	RequireUppercase: true,
	RequireLowercase: true,
	RequireNumber:    true,
	RequireSymbol:    true,
}

// PasswordValidation is the outcome of ValidatePassword.
type PasswordValidation struct {
	IsValid  bool             `json:"is_valid"`
	Errors   []string         `json:"errors"`
	Strength PasswordStrength `json:"strength"`
}

var (
	uppercasePattern = regexp.MustCompile(`[A-Z]`)
	lowercasePattern = regexp.MustCompile(`[a-z]`)
	numberPattern    = regexp.MustCompile(`\d`)
	symbolPattern    = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?]`)
)

// ValidatePassword checks password against req and grades its strength.
func ValidatePassword(password string, req PasswordRequirements) PasswordValidation {
	errs := make([]string, 0)
	score := 0

	if len(password) < req.MinLength {
		errs = append(errs, "At least "+strconv.Itoa(req.MinLength)+" characters long")
	} else {
		score++
	}

	checks := []struct {
		enabled bool
		pattern *regexp.Regexp
		message string
	}{
		{req.RequireUppercase, uppercasePattern, "One uppercase letter (A-Z)"},
		{req.RequireLowercase, lowercasePattern, "One lowercase letter (a-z)"},
		{req.RequireNumber, numberPattern, "One number (0-9)"},
		{req.RequireSymbol, symbolPattern, "One symbol (!@#$%^&*)"},
	}
	for _, c := range checks {
		if !c.enabled {
			continue
		}
		if c.pattern.MatchString(password) {
			score++
		} else {
			errs = append(errs, c.message)
		}
	}

	strength := PasswordStrong
	switch {
	case score <= 2:
		strength = PasswordWeak
	case score <= 4:
		strength = PasswordMedium
	}

	return PasswordValidation{
		IsValid:  len(errs) == 0,
		Errors:   errs,
		Strength: strength,
	}
}

// PasswordErrorMessage joins the failed requirements into one sentence.
func PasswordErrorMessage(v PasswordValidation) string {
	switch len(v.Errors) {
	case 0:
		return ""
	case 1:
		return "Password must contain " + strings.ToLower(v.Errors[0])
	}
	head := v.Errors[:len(v.Errors)-1]
	last := v.Errors[len(v.Errors)-1]
	return "Password must contain: " + strings.Join(head, ", ") + " and " + strings.ToLower(last)
}

// PasswordStrengthMessage describes a strength grade.
func PasswordStrengthMessage(strength PasswordStrength) string {
	switch strength {
	case PasswordWeak:
		return "Weak password - consider adding more requirements"
	case PasswordMedium:
		return "Medium strength - good, but could be stronger"
	case PasswordStrong:
		return "Strong password - excellent security!"
	}
	return ""
}
