package resume

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/job-assistant/internal/types"
)

// nameScanLines is how many leading lines FindName inspects.
const nameScanLines = 5

var (
	namePattern       = regexp.MustCompile(`^[A-Z][a-z]+\s+[A-Z][a-z]+`)
	emailPattern      = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern      = regexp.MustCompile(`\+?\d(?:[ -]?\d){9,}`)
	experiencePattern = regexp.MustCompile(`(?i)(\d+)[ \t]*\+?[ \t]*(?:years?|yrs?)\b`)
	skillPatterns     = compileSkillPatterns(Vocabulary)
)

func compileSkillPatterns(vocab []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(vocab))
	for i, skill := range vocab {
		// Word boundaries are spelled out because \b does not treat "+" or "#" as word characters.
		patterns[i] = regexp.MustCompile(`(?i)(^|[^A-Za-z0-9])` + regexp.QuoteMeta(skill) + `($|[^A-Za-z0-9])`)
	}
	return patterns
}

// ExtractProfile runs every field finder over text.
func ExtractProfile(text string) types.ResumeProfile {
	return types.ResumeProfile{
		Name:            FindName(text),
		Email:           FindEmail(text),
		Phone:           FindPhone(text),
		Skills:          FindSkills(text),
		ExperienceYears: FindExperienceYears(text),
		EducationLine:   FindEducation(text),
	}
}

// FindName returns the two capitalized words that open one of the first
// lines, so "John Smith | Engineer" yields "John Smith".
func FindName(text string) string {
	lines := strings.SplitN(text, "\n", nameScanLines+1)
	if len(lines) > nameScanLines {
		lines = lines[:nameScanLines]
	}
	for _, line := range lines {
		if m := namePattern.FindString(strings.TrimSpace(line)); m != "" {
			return m
		}
	}
	return ""
}

// FindEmail returns the first email address in text.
func FindEmail(text string) string {
	return emailPattern.FindString(text)
}

// FindPhone returns the first run of at least ten digits, allowing single spaces or dashes and a leading plus.
func FindPhone(text string) string {
	return strings.TrimSpace(phonePattern.FindString(text))
}

// FindSkills returns up to types.MaxSkills vocabulary entries present in text,
// in vocabulary order and title case.
func FindSkills(text string) []string {
	skills := []string{}
	for i, pattern := range skillPatterns {
		if !pattern.MatchString(text) {
			continue
		}
		skills = append(skills, titleCase(Vocabulary[i]))
		if len(skills) == types.MaxSkills {
			break
		}
	}
	return skills
}

// FindExperienceYears returns the first integer followed by "years" or "yrs".
func FindExperienceYears(text string) string {
	m := experiencePattern.FindStringSubmatch(text)
	if m == nil {
		return types.DefaultExperienceYears
	}
	return m[1]
}

// FindEducation returns the first line mentioning a degree keyword.
func FindEducation(text string) string {
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		for _, keyword := range EducationKeywords {
			if strings.Contains(lower, keyword) {
				return strings.TrimSpace(line)
			}
		}
	}
	return ""
}

// titleCase upper-cases each letter that follows a non-letter and lower-cases the rest.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}
