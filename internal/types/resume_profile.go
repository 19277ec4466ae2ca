package types

// DefaultExperienceYears is reported when no "N years" phrase is found.
const DefaultExperienceYears = "0"

// MaxSkills caps the number of skills kept on a profile.
const MaxSkills = 10

// ResumeProfile is the structured subset of an uploaded résumé.
// Every field is best-effort and may be empty.
type ResumeProfile struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Skills          []string `json:"skills"`
	ExperienceYears string   `json:"experience_years"`
	EducationLine   string   `json:"education_line"`
}
