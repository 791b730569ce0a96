package cdn

import (
	"fmt"
	"strings"
)

// PlaceholderDomain keeps distribution URLs well-formed when no CDN domain
// is configured; the catalog must never hold an undefined URL.
const PlaceholderDomain = "your-cdn-domain.example.net"

// URL builds a distribution URL for an object key.
func URL(domain, key string) string {
	if domain == "" {
		domain = PlaceholderDomain
	}
	domain = strings.TrimPrefix(strings.TrimPrefix(domain, "https://"), "http://")
	return fmt.Sprintf("https://%s/%s", strings.TrimSuffix(domain, "/"), strings.TrimPrefix(key, "/"))
}
