package resume

import "github.com/jonathan/job-assistant/internal/types"

// Parse extracts text from a document and derives its profile.
func Parse(data []byte, ext string) (string, types.ResumeProfile, error) {
	text, err := ExtractText(data, ext)
	if err != nil {
		return "", types.ResumeProfile{}, err
	}
	return text, ExtractProfile(text), nil
}
