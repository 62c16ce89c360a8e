package sweep

import "strings"

// matchGlob reports whether url matches pattern. The only metacharacter is
// '*', which matches any run of characters including '/': a trailing
// "/checkout*" therefore covers "/checkout/confirm" as well as
// "/checkout-v2". The pattern is anchored to the whole URL.
func matchGlob(pattern, url string) bool {
	parts := strings.Split(pattern, "*")
	if len(parts) == 1 {
		return url == pattern
	}

	if !strings.HasPrefix(url, parts[0]) {
		return false
	}
	url = url[len(parts[0]):]

	for _, part := range parts[1 : len(parts)-1] {
		idx := strings.Index(url, part)
		if idx < 0 {
			return false
		}
		url = url[idx+len(part):]
	}

	return strings.HasSuffix(url, parts[len(parts)-1])
}
