package instance

import "strings"

// nextPageURL extracts the next-page target from a Link header of the shape
// `<next>; rel="next", <prev>; rel="prev"`.
//
// Anything that does not match the exact two-part shape means pagination is
// exhausted. That leniency is deliberate: the cursor header is not fully
// standardized across server versions and a malformed header must not fail
// the whole fetch.
func nextPageURL(link string) string {
	if link == "" {
		return ""
	}
	pagination := strings.Split(link, ", ")
	if len(pagination) != 2 {
		return ""
	}
	segments := strings.SplitN(pagination[0], "; ", 2)
	if len(segments) != 2 {
		return ""
	}
	url := strings.TrimPrefix(segments[0], "<")
	return strings.TrimSuffix(url, ">")
}
