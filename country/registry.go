// Package country derives country labels from hex names and assigns each label
// a stable index.
package country

import (
	"sort"
	"strings"

	"github.com/biter777/countries"
	"github.com/pkg/errors"
)

const (
	// Unclaimed is the index of a hex without a registered country.
	Unclaimed uint8 = 254
	// MaxCountries is the number of indices available below the sentinel.
	MaxCountries = int(Unclaimed)
	// MaxNameLen is the longest label the asset's u8 length prefix can hold.
	MaxNameLen = 255
)

var (
	ErrTooManyCountries = errors.New("too many countries for a one byte index")
	ErrNameTooLong      = errors.New("country name too long")
)

// Label strips the trailing index suffix from a hex name: digits first, then any
// separator left in front of them. "France_12" and "France12" both yield "France".
func Label(name string) string {
	label := strings.TrimRight(name, "0123456789")
	label = strings.TrimRight(label, "_-. ")
	if label == "" {
		return name
	}
	return label
}

// Registry is the sorted, deduplicated set of country labels.
type Registry struct {
	labels []string
}

// NewRegistry builds the registry from every hex label. Duplicates are collapsed
// and the index of a label is its position in lexicographic order.
func NewRegistry(labels []string) (*Registry, error) {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}

	sorted := make([]string, 0, len(set))
	for l := range set {
		if len(l) > MaxNameLen {
			return nil, errors.Wrapf(ErrNameTooLong, "%q is %d bytes", l, len(l))
		}
		sorted = append(sorted, l)
	}
	if len(sorted) > MaxCountries {
		return nil, errors.Wrapf(ErrTooManyCountries, "%d labels", len(sorted))
	}
	sort.Strings(sorted)
	return &Registry{labels: sorted}, nil
}

// Index returns the index of a label, or Unclaimed when it is not registered.
func (r *Registry) Index(label string) uint8 {
	i := sort.SearchStrings(r.labels, label)
	if i < len(r.labels) && r.labels[i] == label {
		return uint8(i)
	}
	return Unclaimed
}

// Lookup is like Index but also reports whether the label was found.
func (r *Registry) Lookup(label string) (uint8, bool) {
	idx := r.Index(label)
	return idx, idx != Unclaimed
}

// Labels returns the labels in index order.
func (r *Registry) Labels() []string {
	return r.labels
}

// Len returns the number of registered labels.
func (r *Registry) Len() int {
	return len(r.labels)
}

// ISO returns the ISO 3166-1 alpha-2 code of a label that names a real
// country, or the empty string. Underscores are read as spaces.
func ISO(label string) string {
	code := countries.ByName(strings.ReplaceAll(label, "_", " "))
	if code == countries.Unknown {
		return ""
	}
	return code.Alpha2()
}
