package fetch

import (
	"net/url"
	"strings"
)

// Platform names the job board or ATS hosting a posting.
type Platform string

// Known platforms.
const (
	PlatformLinkedIn       Platform = "linkedin"
	PlatformIndeed         Platform = "indeed"
	PlatformRemoteOK       Platform = "remoteok"
	PlatformWeWorkRemotely Platform = "weworkremotely"
	PlatformGreenhouse     Platform = "greenhouse"
	PlatformLever          Platform = "lever"
	PlatformUnknown        Platform = "unknown"
)

type platformRules struct {
	platform Platform
	hosts    []string
	content  []string
	noise    []string
}

var platforms = []platformRules{
	{
		platform: PlatformLinkedIn,
		hosts:    []string{"linkedin.com"},
		content:  []string{".show-more-less-html__markup", ".description__text", ".jobs-description__content"},
		noise:    []string{".show-more-less-html__button", ".sign-up-modal", ".similar-jobs"},
	},
	{
		platform: PlatformIndeed,
		hosts:    []string{"indeed.com"},
		content:  []string{"#jobDescriptionText", ".jobsearch-JobComponent-description"},
		noise:    []string{"#jobsearch-ViewJobButtons-container", ".jobsearch-RelatedLinks"},
	},
	{
		platform: PlatformRemoteOK,
		hosts:    []string{"remoteok.com", "remoteok.io"},
		content:  []string{".description", ".markdown"},
	},
	{
		platform: PlatformWeWorkRemotely,
		hosts:    []string{"weworkremotely.com"},
		content:  []string{".lis-container__job__content__description", "#job-listing-show-container", ".listing-container"},
	},
	{
		platform: PlatformGreenhouse,
		hosts:    []string{"greenhouse.io"},
		content:  []string{".job__description.body", ".job__description", "#content"},
		noise:    []string{".application--wrapper", "#usa_self_id_section"},
	},
	{
		platform: PlatformLever,
		hosts:    []string{"lever.co"},
		content:  []string{".posting-page", ".posting-description", ".content"},
		noise:    []string{".apply-section", ".posting-apply"},
	},
}

// commonNoise is removed from postings on every platform.
var commonNoise = []string{
	"form",
	".application-form",
	".apply-button-container",
	".social-share",
	".share-buttons",
	".cookie-consent",
	".gdpr-notice",
}

// DetectPlatform identifies the platform from the URL's host, matching whole
// domain labels so that notlinkedin.com is not LinkedIn.
func DetectPlatform(rawURL string) Platform {
	u, err := url.Parse(rawURL)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(u.Hostname())
	for _, p := range platforms {
		for _, h := range p.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return p.platform
			}
		}
	}
	return PlatformUnknown
}

func rulesFor(platform Platform) (platformRules, bool) {
	for _, p := range platforms {
		if p.platform == platform {
			return p, true
		}
	}
	return platformRules{}, false
}

// PlatformContentSelectors returns the description selectors for platform.
func PlatformContentSelectors(platform Platform) []string {
	if p, ok := rulesFor(platform); ok {
		return append([]string(nil), p.content...)
	}
	return PostingSelectors()
}

// PlatformNoiseSelectors returns what to strip from a posting on platform.
func PlatformNoiseSelectors(platform Platform) []string {
	out := append([]string(nil), commonNoise...)
	if p, ok := rulesFor(platform); ok {
		out = append(out, p.noise...)
	}
	return out
}
