package domain

import (
	"strings"
	"unicode/utf8"
)

const (
	MinPasswordLength = 4
	MaxMessageLength  = 255
)

// Violation names the rule a candidate broke. The zero value means none.
type Violation string

const (
	ViolationNone             Violation = ""
	ViolationUsernameBlank    Violation = "username_blank"
	ViolationPasswordTooShort Violation = "password_too_short"
	ViolationUsernameTaken    Violation = "username_taken"
	ViolationTextBlank        Violation = "text_blank"
	ViolationTextTooLong      Violation = "text_too_long"
)

var violationMessages = map[Violation]string{
	ViolationUsernameBlank:    "username cannot be blank",
	ViolationPasswordTooShort: "password must be at least 4 characters long",
	ViolationUsernameTaken:    "username is already taken",
	ViolationTextBlank:        "message text cannot be blank",
	ViolationTextTooLong:      "message text cannot exceed 255 characters",
}

// OK reports whether no rule was broken.
func (v Violation) OK() bool { return v == ViolationNone }

// Message is the human readable form of v.
func (v Violation) Message() string {
	if msg, ok := violationMessages[v]; ok {
		return msg
	}
	if v.OK() {
		return "ok"
	}
	return string(v)
}

// Err returns nil for ViolationNone, otherwise a *ValidationError.
func (v Violation) Err() error {
	if v.OK() {
		return nil
	}
	return NewValidationError(v)
}

// ValidateAccount checks a registration candidate. Uniqueness needs the
// store and is checked by the account service.
func ValidateAccount(a Account) Violation {
	if strings.TrimSpace(a.Username) == "" {
		return ViolationUsernameBlank
	}
	if utf8.RuneCountInString(a.Password) < MinPasswordLength {
		return ViolationPasswordTooShort
	}
	return ViolationNone
}

// ValidateMessageText checks text for both new and edited messages.
func ValidateMessageText(text string) Violation {
	if strings.TrimSpace(text) == "" {
		return ViolationTextBlank
	}
	if utf8.RuneCountInString(text) > MaxMessageLength {
		return ViolationTextTooLong
	}
	return ViolationNone
}
