package zoom

import (
	"maps"
	"net/url"
	"strings"
)

// Reserved query parameters.
const (
	ParamPageSize      = "page_size"
	ParamNextPageToken = "next_page_token"
	ParamFrom          = "from"
	ParamTo            = "to"
)

const (
	defaultPageSize    = "100"
	highVolumePageSize = "300"
)

// highVolumeEndpoints accept pages of up to 300 records. The match is on the
// exact endpoint path.
var highVolumeEndpoints = map[string]bool{
	"/phone/call_logs": true,
	"/phone/devices":   true,
}

// Params are the query parameters of one call.
type Params map[string]string

// clone returns a copy that is safe to modify; a nil receiver yields an empty
// map.
func (p Params) clone() Params {
	out := make(Params, len(p)+2)
	maps.Copy(out, p)
	return out
}

// DefaultPageSize returns the page_size injected for endpoint when the caller
// does not set one.
func DefaultPageSize(endpoint string) string {
	if highVolumeEndpoints[endpoint] {
		return highVolumePageSize
	}
	return defaultPageSize
}

// DataKey returns the response field that holds an endpoint's records: the
// final segment of its path, e.g. "meetings" for /users/me/meetings.
// Endpoints whose records live under a different key are not merged.
func DataKey(endpoint string) string {
	p := endpoint
	if u, err := url.Parse(endpoint); err == nil {
		p = u.Path
	} else if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return p[strings.LastIndex(p, "/")+1:]
}
