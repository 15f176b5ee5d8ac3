package timezone

import (
	"sort"
	"strconv"
)

// GetOffsetHours returns a location's UTC offset in whole hours.
func (s *System) GetOffsetHours(name string) (int, bool) {
	loc, err := s.GetLocation(name)
	if err != nil {
		return 0, false
	}
	return loc.Offset, true
}

// ReverseLookupByOffset finds a registered location whose offset matches
// offsetHours. Many zones share an offset (many at +0, +1, ...); ties are
// broken deterministically by sorting the candidate names alphabetically
// and returning the first, since Go map iteration order is randomized.
func (s *System) ReverseLookupByOffset(offsetHours int) (*Location, bool) {
	var names []string
	for name, loc := range s.locations {
		if loc.Offset == offsetHours {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, false
	}
	sort.Strings(names)
	return s.locations[names[0]], true
}

// GMTLabel renders the canonical "GMT±N" label for an offset, used for
// "auto" timezone targets per the detector's timezone path.
func GMTLabel(offsetHours int) string {
	if offsetHours >= 0 {
		return "GMT+" + strconv.Itoa(offsetHours)
	}
	return "GMT-" + strconv.Itoa(-offsetHours)
}
