package resume

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const scenarioResume = "John Smith\njohn.smith@mail.com\n+1 555-123-4567\n5 years experience\nBachelor of Science in Computer Science\nSkills: python, teamwork"

func TestExtractProfile_Scenario(t *testing.T) {
	profile := ExtractProfile(scenarioResume)

	assert.Equal(t, "John Smith", profile.Name)
	assert.Equal(t, "john.smith@mail.com", profile.Email)
	assert.Equal(t, "+1 555-123-4567", profile.Phone)
	assert.Equal(t, "5", profile.ExperienceYears)
	assert.True(t, strings.HasPrefix(profile.EducationLine, "Bachelor of Science"))
	assert.Equal(t, []string{"Python", "Teamwork"}, profile.Skills)
}

func TestExtractProfile_EmptyText(t *testing.T) {
	profile := ExtractProfile("")

	assert.Empty(t, profile.Name)
	assert.Empty(t, profile.Email)
	assert.Empty(t, profile.Phone)
	assert.Empty(t, profile.Skills)
	assert.Equal(t, "0", profile.ExperienceYears)
	assert.Empty(t, profile.EducationLine)
}

func TestFindName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"first line", "Ada Lovelace\nengineer", "Ada Lovelace"},
		{"skips blank and lowercase lines", "\n\ncurriculum vitae\nGrace Hopper  \n", "Grace Hopper"},
		{"single word is not a name", "Resume\nsummary", ""},
		{"beyond first five lines", "a\nb\nc\nd\ne\nAlan Turing", ""},
		{"all caps is not matched", "JOHN SMITH", ""},
		{"trailing title is dropped", "John Smith | Senior Engineer\njohn@x.io", "John Smith"},
		{"blank lines count toward the five", "\n\n\n\n\nAlan Turing", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindName(tt.text))
		})
	}
}

func TestFindPhone(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"call 555-123-4567 now", "555-123-4567"},
		{"tel: 5551234567", "5551234567"},
		{"+49 30 1234 5678", "+49 30 1234 5678"},
		{"ext 123-4567", ""},
		{"double  spaces 555  123  4567", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, FindPhone(tt.text))
		})
	}
}

func TestFindEmail(t *testing.T) {
	assert.Equal(t, "a.b+jobs@sub.example.org", FindEmail("contact: a.b+jobs@sub.example.org, other@x.io"))
	assert.Empty(t, FindEmail("no address here @ all"))
}

func TestFindExperienceYears(t *testing.T) {
	assert.Equal(t, "7", FindExperienceYears("Over 7+ years building services"))
	assert.Equal(t, "3", FindExperienceYears("3 yrs of Go, 10 years total"))
	assert.Equal(t, "12", FindExperienceYears("12 YEAR veteran"))
	assert.Equal(t, "0", FindExperienceYears("recent graduate"))
}

func TestFindEducation(t *testing.T) {
	assert.Equal(t, "MBA, Wharton", FindEducation("Summary\n  MBA, Wharton  \nBachelor of Arts"))
	assert.Empty(t, FindEducation("self taught"))
}

func TestFindSkills_VocabularyOrderAndCase(t *testing.T) {
	skills := FindSkills("Teamwork, DOCKER and Go; also c++ and Node.js. Python!")
	assert.Equal(t, []string{"Python", "Go", "C++", "Docker", "Node.Js", "Teamwork"}, skills)
}

func TestFindSkills_WholeWordOnly(t *testing.T) {
	assert.Empty(t, FindSkills("googler cargo gitlab sqlite"))
	assert.Equal(t, []string{"Javascript"}, FindSkills("javascript"))
}

func TestFindSkills_CappedAtTen(t *testing.T) {
	skills := FindSkills(strings.Join(Vocabulary, " "))
	assert.Len(t, skills, 10)
	assert.Equal(t, "Python", skills[0])
}

func TestFindSkills_Idempotent(t *testing.T) {
	inputs := []string{scenarioResume, "AWS azure GCP, machine learning", strings.Join(Vocabulary, "\n")}
	for _, in := range inputs {
		first := FindSkills(in)
		second := FindSkills(strings.Join(first, ", "))
		assert.Equal(t, first, second)
		assert.Equal(t, first, FindSkills(in))
	}
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Machine Learning", titleCase("machine learning"))
	assert.Equal(t, "C#", titleCase("c#"))
	assert.Equal(t, "Power Bi", titleCase("POWER BI"))
}
