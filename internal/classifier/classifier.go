// Package classifier assigns a user type from onboarding answers using an
// ordered decision list. The first matching rule wins; ambiguity is resolved
// by rule priority, never by scoring.
package classifier

import (
	"strings"

	"github.com/abhisek/circlet/internal/usertype"
)

// Answers holds the onboarding responses the classifier looks at.
type Answers struct {
	UsageInterest    string
	IndustryInterest string
	Location         string
}

// Rule pairs a predicate with the user type it yields.
type Rule struct {
	Name   string
	Match  func(a Answers) bool
	Result usertype.Type
}

// businessPhrases separate student-entrepreneurs from plain students.
var businessPhrases = []string{
	"entrepreneur",
	"start your business",
	"scale your business",
}

var entrepreneurPhrases = []string{
	"start your business",
	"scale your business",
	"network with entrepreneurs",
	"find co-founder",
	"find mentors",
	"find investors",
	"sell a skill",
}

// DefaultRules returns the production rules in priority order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name: "student",
			Match: func(a Answers) bool {
				u := normalize(a.UsageInterest)
				return strings.Contains(u, "student") && !containsAny(u, businessPhrases...)
			},
			Result: usertype.Student,
		},
		{
			Name: "student-entrepreneur",
			Match: func(a Answers) bool {
				u := normalize(a.UsageInterest)
				return strings.Contains(u, "student") && containsAny(u, businessPhrases...)
			},
			Result: usertype.StudentEntrepreneur,
		},
		usageRule("entrepreneur", usertype.Entrepreneur, entrepreneurPhrases...),
		usageRule("investor", usertype.Investor, "make investments"),
		usageRule("mentor", usertype.Mentor, "share knowledge"),
		usageRule("community-builder", usertype.CommunityBuilder, "be part of the community"),

		// Broad keyword pass over everything the member told us.
		keywordRule("keyword-entrepreneur", usertype.Entrepreneur, "entrepreneur"),
		keywordRule("keyword-investor", usertype.Investor, "invest"),
		keywordRule("keyword-mentor", usertype.Mentor, "mentor", "coach", "teach"),
		keywordRule("keyword-community", usertype.CommunityBuilder, "community", "network"),
	}
}

// Run evaluates rules top to bottom and returns the first match along with
// the name of the rule that produced it, or ("", "") if no rule applies.
func Run(rules []Rule, a Answers) (usertype.Type, string) {
	for _, r := range rules {
		if r.Match(a) {
			return r.Result, r.Name
		}
	}
	return "", ""
}

// Classify maps onboarding answers to exactly one user type.
func Classify(a Answers) usertype.Type {
	t, _ := Run(DefaultRules(), a)
	if t == "" {
		return usertype.Default
	}
	return t
}

// Explain is Classify that also reports which rule decided. The rule name is
// "default" when the fallback applied.
func Explain(a Answers) (usertype.Type, string) {
	t, name := Run(DefaultRules(), a)
	if t == "" {
		return usertype.Default, "default"
	}
	return t, name
}

func usageRule(name string, result usertype.Type, phrases ...string) Rule {
	return Rule{
		Name: name,
		Match: func(a Answers) bool {
			return containsAny(normalize(a.UsageInterest), phrases...)
		},
		Result: result,
	}
}

func keywordRule(name string, result usertype.Type, keywords ...string) Rule {
	return Rule{
		Name: name,
		Match: func(a Answers) bool {
			text := normalize(a.UsageInterest) + " " + normalize(a.IndustryInterest)
			return containsAny(text, keywords...)
		},
		Result: result,
	}
}

func normalize(s string) string {
	return strings.ToLower(s)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
