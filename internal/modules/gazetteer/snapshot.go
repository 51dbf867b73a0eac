// README: Immutable, validated gazetteer snapshot shared by the matcher and the API.
package gazetteer

import (
	"errors"
	"fmt"
)

var (
	ErrDanglingParent = errors.New("gazetteer: parent code does not resolve")
	ErrDuplicateCode  = errors.New("gazetteer: duplicate code")
	ErrEmptyCode      = errors.New("gazetteer: empty code")
)

// Snapshot is a read-only view over a Dataset. Every accessor returns copies,
// so callers can never mutate the loaded hierarchy.
type Snapshot struct {
	regions   []Region
	provinces []Province
	cities    []City
	barangays []Barangay

	regionIdx   map[string]int
	provinceIdx map[string]int
	cityIdx     map[string]int
	barangayIdx map[string]int
	byCity      map[string][]int
}

// NewSnapshot copies d and checks that every parent code resolves. Entity
// order is preserved; it is the tie-break order used by name matching.
func NewSnapshot(d Dataset) (*Snapshot, error) {
	s := &Snapshot{
		regions:     append([]Region(nil), d.Regions...),
		provinces:   append([]Province(nil), d.Provinces...),
		cities:      append([]City(nil), d.Cities...),
		barangays:   append([]Barangay(nil), d.Barangays...),
		regionIdx:   make(map[string]int, len(d.Regions)),
		provinceIdx: make(map[string]int, len(d.Provinces)),
		cityIdx:     make(map[string]int, len(d.Cities)),
		barangayIdx: make(map[string]int, len(d.Barangays)),
		byCity:      make(map[string][]int, len(d.Cities)),
	}

	for i, r := range s.regions {
		if err := index(s.regionIdx, "region", r.Code, i); err != nil {
			return nil, err
		}
	}
	for i, p := range s.provinces {
		if err := index(s.provinceIdx, "province", p.Code, i); err != nil {
			return nil, err
		}
		if _, ok := s.regionIdx[p.RegionCode]; !ok {
			return nil, fmt.Errorf("%w: province %s -> region %q", ErrDanglingParent, p.Code, p.RegionCode)
		}
	}
	for i, c := range s.cities {
		if err := index(s.cityIdx, "city", c.Code, i); err != nil {
			return nil, err
		}
		if _, ok := s.provinceIdx[c.ProvinceCode]; !ok {
			return nil, fmt.Errorf("%w: city %s -> province %q", ErrDanglingParent, c.Code, c.ProvinceCode)
		}
	}
	for i, b := range s.barangays {
		if err := index(s.barangayIdx, "barangay", b.Code, i); err != nil {
			return nil, err
		}
		if _, ok := s.cityIdx[b.CityCode]; !ok {
			return nil, fmt.Errorf("%w: barangay %s -> city %q", ErrDanglingParent, b.Code, b.CityCode)
		}
		s.byCity[b.CityCode] = append(s.byCity[b.CityCode], i)
	}
	return s, nil
}

func index(m map[string]int, kind, code string, i int) error {
	if code == "" {
		return fmt.Errorf("%w: %s at position %d", ErrEmptyCode, kind, i)
	}
	if _, dup := m[code]; dup {
		return fmt.Errorf("%w: %s %s", ErrDuplicateCode, kind, code)
	}
	m[code] = i
	return nil
}

func (s *Snapshot) Regions() []Region     { return append([]Region(nil), s.regions...) }
func (s *Snapshot) Provinces() []Province { return append([]Province(nil), s.provinces...) }
func (s *Snapshot) Cities() []City        { return append([]City(nil), s.cities...) }
func (s *Snapshot) Barangays() []Barangay { return append([]Barangay(nil), s.barangays...) }

func (s *Snapshot) Region(code string) (Region, bool) {
	i, ok := s.regionIdx[code]
	if !ok {
		return Region{}, false
	}
	return s.regions[i], true
}

func (s *Snapshot) Province(code string) (Province, bool) {
	i, ok := s.provinceIdx[code]
	if !ok {
		return Province{}, false
	}
	return s.provinces[i], true
}

func (s *Snapshot) City(code string) (City, bool) {
	i, ok := s.cityIdx[code]
	if !ok {
		return City{}, false
	}
	return s.cities[i], true
}

func (s *Snapshot) Barangay(code string) (Barangay, bool) {
	i, ok := s.barangayIdx[code]
	if !ok {
		return Barangay{}, false
	}
	return s.barangays[i], true
}

// ProvincesOf lists the provinces of a region in snapshot order.
func (s *Snapshot) ProvincesOf(regionCode string) []Province {
	var out []Province
	for _, p := range s.provinces {
		if p.RegionCode == regionCode {
			out = append(out, p)
		}
	}
	return out
}

// CitiesOf lists the cities of a province in snapshot order.
func (s *Snapshot) CitiesOf(provinceCode string) []City {
	var out []City
	for _, c := range s.cities {
		if c.ProvinceCode == provinceCode {
			out = append(out, c)
		}
	}
	return out
}

// BarangaysOf lists the barangays of a city in snapshot order.
func (s *Snapshot) BarangaysOf(cityCode string) []Barangay {
	idx := s.byCity[cityCode]
	out := make([]Barangay, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.barangays[i])
	}
	return out
}

// Chain walks a city up to its province and region. Snapshot validation
// guarantees both parents exist.
func (s *Snapshot) Chain(c City) (Province, Region) {
	p, _ := s.Province(c.ProvinceCode)
	r, _ := s.Region(p.RegionCode)
	return p, r
}

// Counts returns the number of regions, provinces, cities and barangays.
func (s *Snapshot) Counts() (regions, provinces, cities, barangays int) {
	return len(s.regions), len(s.provinces), len(s.cities), len(s.barangays)
}
