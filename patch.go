package interpose

import "net/http"

// Patch is a deferred, composable description of a response mutation. A nil
// Patch is the empty patch. Applying a combined patch equals applying its
// parts left to right, and the empty patch is a two-sided identity for
// [Patch.And] and [Combine].
type Patch func(*Response)

// Empty returns the patch that leaves the response untouched.
func Empty() Patch {
	return nil
}

// SetStatus returns a patch that sets the response status code.
func SetStatus(code int) Patch {
	return func(resp *Response) {
		resp.Status = code
	}
}

// AddHeader returns a patch that appends a header value.
func AddHeader(key, value string) Patch {
	return func(resp *Response) {
		resp.Header.Add(key, value)
	}
}

// SetHeader returns a patch that replaces a header value.
func SetHeader(key, value string) Patch {
	return func(resp *Response) {
		resp.Header.Set(key, value)
	}
}

// RemoveHeader returns a patch that drops a header.
func RemoveHeader(key string) Patch {
	return func(resp *Response) {
		resp.Header.Del(key)
	}
}

// AddCookie returns a patch that attaches a cookie to the response.
func AddCookie(c *http.Cookie) Patch {
	return func(resp *Response) {
		resp.Cookies = append(resp.Cookies, c)
	}
}

// And combines two patches into one applied left to right.
func (p Patch) And(other Patch) Patch {
	if p == nil {
		return other
	}
	if other == nil {
		return p
	}
	return func(resp *Response) {
		p(resp)
		other(resp)
	}
}

// Combine folds any number of patches into one applied left to right.
func Combine(patches ...Patch) Patch {
	var combined Patch
	for _, p := range patches {
		combined = combined.And(p)
	}
	return combined
}

// Apply mutates resp with the patch. Application is total and synchronous.
func (p Patch) Apply(resp *Response) {
	if p != nil {
		p(resp)
	}
}
