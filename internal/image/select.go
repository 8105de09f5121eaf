package image

import (
	"sort"
	"time"

	"github.com/napo-io/k8sway/internal/platform/aws"
)

// Newest returns the candidate with the latest creation date. Candidates
// with equal dates keep their input order, so the first one wins. Dates that
// do not parse as RFC 3339 sort after every parseable date. ok is false when
// candidates is empty.
func Newest(candidates []aws.Image) (img aws.Image, ok bool) {
	if len(candidates) == 0 {
		return aws.Image{}, false
	}

	sorted := SortByCreationDate(candidates)
	return sorted[0], true
}

// SortByCreationDate returns a copy of candidates ordered newest first.
func SortByCreationDate(candidates []aws.Image) []aws.Image {
	type keyed struct {
		img    aws.Image
		at     time.Time
		parsed bool
	}

	keys := make([]keyed, len(candidates))
	for i, c := range candidates {
		at, err := time.Parse(time.RFC3339, c.CreationDate)
		keys[i] = keyed{img: c, at: at, parsed: err == nil}
	}

	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.parsed != b.parsed {
			return a.parsed
		}
		return a.at.After(b.at)
	})

	out := make([]aws.Image, len(keys))
	for i, k := range keys {
		out[i] = k.img
	}
	return out
}
