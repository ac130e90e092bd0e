package usertype

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknown is returned by Parse for values outside the enumeration.
var ErrUnknown = errors.New("unknown user type")

// Type identifies the kind of member a tutorial flow is written for.
type Type string

const (
	Entrepreneur        Type = "entrepreneur"
	Student             Type = "student"
	StudentEntrepreneur Type = "student-entrepreneur"
	Mentor              Type = "mentor"
	CommunityBuilder    Type = "community-builder"
	Investor            Type = "investor"
)

// Default is the type assigned when nothing more specific is known.
const Default = CommunityBuilder

// All returns every user type in display order.
func All() []Type {
	return []Type{
		Entrepreneur,
		Student,
		StudentEntrepreneur,
		Mentor,
		CommunityBuilder,
		Investor,
	}
}

// Valid reports whether t is one of the enumerated types.
func (t Type) Valid() bool {
	switch t {
	case Entrepreneur, Student, StudentEntrepreneur, Mentor, CommunityBuilder, Investor:
		return true
	default:
		return false
	}
}

// DisplayName returns a human-readable name for a user type.
func (t Type) DisplayName() string {
	switch t {
	case Entrepreneur:
		return "Entrepreneur"
	case Student:
		return "Student"
	case StudentEntrepreneur:
		return "Student Entrepreneur"
	case Mentor:
		return "Mentor"
	case CommunityBuilder:
		return "Community Builder"
	case Investor:
		return "Investor"
	default:
		return string(t)
	}
}

func (t Type) String() string {
	return string(t)
}

// Parse converts s to a Type. Matching is case-insensitive and "other"
// resolves to CommunityBuilder.
func Parse(s string) (Type, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "other" {
		return CommunityBuilder, nil
	}
	t := Type(v)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknown, s)
	}
	return t, nil
}
