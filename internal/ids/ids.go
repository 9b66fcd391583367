package ids

import "github.com/segmentio/ksuid"

// New returns a ksuid prefixed with the entity kind, e.g. "post_2bK...".
// The prefix makes raw store dumps readable; uniqueness comes from the ksuid.
func New(prefix string) string {
	id := ksuid.New().String()
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}
