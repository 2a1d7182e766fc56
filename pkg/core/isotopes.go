// Package core provides parsing of the requested isotopologue list
package core

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// MaxIsotopeShift is the largest supported isotopologue shift. Requested
// shifts above this value are dropped from the request.
const MaxIsotopeShift = 15

// ParseIsotopes converts a comma-separated isotopologue list (e.g. "0,6")
// into a deduplicated, ascending slice of shift indices. Tokens that are not
// integers, negative values and shifts above MaxIsotopeShift are dropped.
// An empty resulting set is an error: there is nothing to integrate.
func ParseIsotopes(s string) ([]int, error) {
	seen := make(map[int]bool)

	for _, tok := range strings.Split(s, ",") {
		iso, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil {
			continue
		}
		if iso < 0 || iso > MaxIsotopeShift {
			continue
		}
		seen[iso] = true
	}

	if len(seen) == 0 {
		return nil, fmt.Errorf("invalid isotopologue list %q: no usable shifts between 0 and %d", s, MaxIsotopeShift)
	}

	isotopes := make([]int, 0, len(seen))
	for iso := range seen {
		isotopes = append(isotopes, iso)
	}
	sort.Ints(isotopes)

	return isotopes, nil
}
