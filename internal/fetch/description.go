package fetch

import (
	"context"
	"fmt"
)

// Description loads a job posting and returns its description text, isolated
// with the selectors of the detected platform.
func Description(ctx context.Context, rawURL string, opts *Options) (string, Platform, error) {
	platform := DetectPlatform(rawURL)

	page, err := URL(ctx, rawURL, opts)
	if err != nil {
		return "", platform, err
	}

	doc, err := ParseDocument(page.Body)
	if err != nil {
		return "", platform, fmt.Errorf("content extraction failed: %w", err)
	}
	return MainText(doc, PlatformContentSelectors(platform), PlatformNoiseSelectors(platform)), platform, nil
}
