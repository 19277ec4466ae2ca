package ratelimit

import (
	"net/http"
	"strings"
)

// exempt is returned for requests that are never limited.
var exempt = &EndpointConfig{}

// MatchEndpoint returns the configuration for method and path, or nil when
// the default limit applies. An exact path wins; otherwise the longest
// configured prefix ending in "/" is used.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if method == http.MethodGet && path == "/health" {
		return exempt
	}

	var best *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method {
			continue
		}
		if c.Path == path {
			return c
		}
		if strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			if best == nil || len(c.Path) > len(best.Path) {
				best = c
			}
		}
	}
	return best
}
