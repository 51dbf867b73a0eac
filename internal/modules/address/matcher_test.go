package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"porter/internal/modules/gazetteer"
	"porter/internal/modules/gazetteer/gazetteertest"
)

func comp(name string, t ...ComponentType) Component {
	return Component{LongName: name, ShortName: name, Types: t}
}

func TestResolve_InfersProvinceAndRegionFromCity(t *testing.T) {
	m := NewMatcher(gazetteertest.Snapshot())

	got := m.Resolve(GeocodeResult{
		FormattedAddress: "Makati, Philippines",
		Components:       []Component{comp("Makati", TypeLocality)},
	})

	require.NotNil(t, got.City)
	require.NotNil(t, got.Province)
	require.NotNil(t, got.Region)
	assert.Equal(t, gazetteertest.CityMakati, got.City.Code)
	assert.Equal(t, gazetteertest.ProvinceMetro, got.Province.Code)
	assert.Equal(t, gazetteertest.RegionNCR, got.Region.Code)
	assert.Nil(t, got.Barangay)
	assert.Equal(t, "1200", got.PostalCode)
	assert.Equal(t, PostalFromGazetteer, got.PostalSource)
	assert.Equal(t, []Gap{GapBarangay}, got.Gaps())
}

func TestResolve_FullCebuAddress(t *testing.T) {
	m := NewMatcher(gazetteertest.Snapshot())

	got := m.Resolve(GeocodeResult{
		FormattedAddress: "Gorordo Ave, Lahug, Cebu City, 6000 Cebu, Philippines",
		Components: []Component{
			comp("Gorordo Avenue"),
			comp("Lahug", TypeSublocality),
			comp("Cebu City", TypeLocality),
			comp("Cebu", TypeProvince),
			comp("Central Visayas", TypeRegion),
			comp("6000", TypePostalCode),
		},
	})

	require.True(t, got.Complete(), "gaps: %v", got.Gaps())
	assert.Equal(t, gazetteertest.RegionCentralVis, got.Region.Code)
	assert.Equal(t, gazetteertest.ProvinceCebu, got.Province.Code)
	assert.Equal(t, gazetteertest.CityCebu, got.City.Code)
	assert.Equal(t, gazetteertest.BarangayLahug, got.Barangay.Code)
	assert.Equal(t, "6000", got.PostalCode)
	assert.Equal(t, PostalFromGeocoder, got.PostalSource)
}

func TestResolve_DiscardsBarangayFromAnotherCity(t *testing.T) {
	m := NewMatcher(gazetteertest.Snapshot())

	got := m.Resolve(GeocodeResult{
		FormattedAddress: "Lahug, Makati, Metro Manila, Philippines",
		Components: []Component{
			comp("Lahug", TypeSublocality),
			comp("Makati", TypeLocality),
			comp("Metro Manila", TypeRegion),
		},
	})

	require.NotNil(t, got.City)
	assert.Equal(t, gazetteertest.CityMakati, got.City.Code)
	assert.Nil(t, got.Barangay)
}

func TestResolve_SameBarangayNameScopedToCity(t *testing.T) {
	m := NewMatcher(gazetteertest.Snapshot())

	got := m.Resolve(GeocodeResult{
		Components: []Component{
			comp("Poblacion", TypeSublocality),
			comp("Mandaue City", TypeLocality),
		},
	})

	require.NotNil(t, got.Barangay)
	assert.Equal(t, gazetteertest.BarangayPobMandau, got.Barangay.Code)
	assert.Equal(t, gazetteertest.CityMandaue, got.Barangay.CityCode)
}

func TestResolve_NCRSynonymSetsMetroManila(t *testing.T) {
	m := NewMatcher(gazetteertest.Snapshot())

	got := m.Resolve(GeocodeResult{
		Components: []Component{comp("National Capital Region", TypeRegion)},
	})

	require.NotNil(t, got.Region)
	require.NotNil(t, got.Province)
	assert.Equal(t, gazetteertest.RegionNCR, got.Region.Code)
	assert.Equal(t, gazetteertest.ProvinceMetro, got.Province.Code)
	assert.Nil(t, got.City)
}

func TestResolve_RejectsReservedAndCollidingBarangays(t *testing.T) {
	m := NewMatcher(gazetteertest.Snapshot())

	tests := []struct {
		name     string
		sublocal string
	}{
		{"district suffix", "Bagumbayan District"},
		{"zone suffix", "Bagumbayan Zone"},
		{"collides with city", "Quezon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Resolve(GeocodeResult{
				Components: []Component{
					comp(tt.sublocal, TypeSublocality),
					comp("Quezon City", TypeLocality),
				},
			})
			require.NotNil(t, got.City)
			assert.Equal(t, gazetteertest.CityQuezon, got.City.Code)
			assert.Nil(t, got.Barangay)
		})
	}

	got := m.Resolve(GeocodeResult{
		Components: []Component{
			comp("Bagumbayan", TypeNeighborhood),
			comp("Quezon City", TypeLocality),
		},
	})
	require.NotNil(t, got.Barangay)
	assert.Equal(t, "Bagumbayan", got.Barangay.Name)
}

func TestResolve_NormalizesVariants(t *testing.T) {
	m := NewMatcher(gazetteertest.Snapshot())

	tests := []struct {
		name string
		comp Component
		want string
	}{
		{"diacritics", comp("Cebú City", TypeLocality), gazetteertest.CityCebu},
		{"honorific prefix", comp("City of Mandaue", TypeLocality), gazetteertest.CityMandaue},
		{"containment", comp("Lungsod ng Makati", TypeAdminLevel3), gazetteertest.CityMakati},
		{"admin level 3", comp("Bacoor", TypeAdminLevel3), gazetteertest.CityBacoor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Resolve(GeocodeResult{Components: []Component{tt.comp}})
			require.NotNil(t, got.City)
			assert.Equal(t, tt.want, got.City.Code)
		})
	}
}

func TestResolve_FormattedAddressFallback(t *testing.T) {
	m := NewMatcher(gazetteertest.Snapshot())

	got := m.Resolve(GeocodeResult{
		FormattedAddress: "Molino III, Bacoor, Cavite, Philippines",
	})

	require.NotNil(t, got.City)
	require.NotNil(t, got.Barangay)
	assert.Equal(t, gazetteertest.CityBacoor, got.City.Code)
	assert.Equal(t, gazetteertest.BarangayMolino, got.Barangay.Code)
	assert.Equal(t, "", got.PostalCode)
	assert.Equal(t, []Gap{GapPostalCode}, got.Gaps())
}

// withSanAntonioZambales adds a city that shares its name with a Makati
// barangay.
func withSanAntonioZambales(t *testing.T) *gazetteer.Snapshot {
	t.Helper()
	ds := gazetteertest.Dataset()
	ds.Regions = append(ds.Regions, gazetteer.Region{Code: "030000000", Name: "Region III (Central Luzon)"})
	ds.Provinces = append(ds.Provinces, gazetteer.Province{Code: "037100000", Name: "Zambales", RegionCode: "030000000"})
	ds.Cities = append(ds.Cities, gazetteer.City{Code: "037116000", Name: "San Antonio", ProvinceCode: "037100000", PostalCode: "2206"})
	snap, err := gazetteer.NewSnapshot(ds)
	require.NoError(t, err)
	return snap
}

func TestResolve_CityScopedToNamedProvince(t *testing.T) {
	m := NewMatcher(withSanAntonioZambales(t))

	got := m.Resolve(GeocodeResult{
		FormattedAddress: "San Antonio, Makati, Metro Manila, Philippines",
		Components: []Component{
			comp("San Antonio", TypeSublocality),
			comp("Metro Manila", TypeProvince),
		},
	})

	require.NotNil(t, got.City)
	require.NotNil(t, got.Province)
	require.NotNil(t, got.Barangay)
	assert.Equal(t, gazetteertest.CityMakati, got.City.Code)
	assert.Equal(t, gazetteertest.ProvinceMetro, got.Province.Code)
	assert.Equal(t, gazetteertest.RegionNCR, got.Region.Code)
	assert.Equal(t, "137602003", got.Barangay.Code)
	assert.Equal(t, "1200", got.PostalCode)
}

func TestResolve_SegmentsStayInsideNamedProvince(t *testing.T) {
	m := NewMatcher(withSanAntonioZambales(t))

	got := m.Resolve(GeocodeResult{
		FormattedAddress: "San Antonio, Metro Manila, Philippines",
		Components:       []Component{comp("Metro Manila", TypeProvince)},
	})

	assert.Nil(t, got.City)
	require.NotNil(t, got.Province)
	assert.Equal(t, gazetteertest.ProvinceMetro, got.Province.Code)
	assert.Equal(t, gazetteertest.RegionNCR, got.Region.Code)
}

func TestResolve_LocalityOutsideNamedProvince(t *testing.T) {
	m := NewMatcher(withSanAntonioZambales(t))

	got := m.Resolve(GeocodeResult{
		Components: []Component{
			comp("San Antonio", TypeLocality),
			comp("Zambales", TypeProvince),
		},
	})

	require.NotNil(t, got.City)
	assert.Equal(t, "037116000", got.City.Code)
	assert.Equal(t, "037100000", got.Province.Code)
	assert.Equal(t, "030000000", got.Region.Code)
}

func TestResolve_EmptyResultIsAllGaps(t *testing.T) {
	m := NewMatcher(gazetteertest.Snapshot())

	got := m.Resolve(GeocodeResult{})

	assert.Equal(t, ResolvedAddress{}, got)
	assert.Equal(t, []Gap{GapRegion, GapProvince, GapCity, GapBarangay, GapPostalCode}, got.Gaps())
}

func TestResolve_Deterministic(t *testing.T) {
	snap := gazetteertest.Snapshot()
	m := NewMatcher(snap)
	in := GeocodeResult{
		Components: []Component{
			comp("San Antonio", TypeSublocality),
			comp("Makati", TypeLocality),
		},
	}

	first := m.Resolve(in)
	second := m.Resolve(in)

	assert.Equal(t, first, second)
	require.NotNil(t, first.Barangay)
	first.City.Name = "mutated"
	c, _ := snap.City(gazetteertest.CityMakati)
	assert.Equal(t, "City of Makati", c.Name)
}
