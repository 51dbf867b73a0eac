// Package gazetteertest provides a small, hand-checked slice of the
// Philippine administrative hierarchy for tests in other packages.
package gazetteertest

import "porter/internal/modules/gazetteer"

const (
	RegionNCR         = "130000000"
	RegionCentralVis  = "070000000"
	RegionCalabarzon  = "040000000"
	ProvinceMetro     = "133900000"
	ProvinceCebu      = "072200000"
	ProvinceCavite    = "042100000"
	CityMakati        = "137602000"
	CityQuezon        = "137404000"
	CityManila        = "133900001"
	CityCebu          = "072217000"
	CityMandaue       = "072230000"
	CityBacoor        = "042103000"
	BarangayBelAir    = "137602001"
	BarangayPobMakati = "137602002"
	BarangayLahug     = "072217001"
	BarangayPobMandau = "072230001"
	BarangayMolino    = "042103001"
)

func Dataset() gazetteer.Dataset {
	return gazetteer.Dataset{
		Regions: []gazetteer.Region{
			{Code: RegionNCR, Name: "National Capital Region (NCR)"},
			{Code: RegionCentralVis, Name: "Region VII (Central Visayas)"},
			{Code: RegionCalabarzon, Name: "Region IV-A (CALABARZON)"},
		},
		Provinces: []gazetteer.Province{
			{Code: ProvinceMetro, Name: "Metro Manila", RegionCode: RegionNCR},
			{Code: ProvinceCebu, Name: "Cebu", RegionCode: RegionCentralVis},
			{Code: ProvinceCavite, Name: "Cavite", RegionCode: RegionCalabarzon},
		},
		Cities: []gazetteer.City{
			{Code: CityMakati, Name: "City of Makati", ProvinceCode: ProvinceMetro, PostalCode: "1200"},
			{Code: CityQuezon, Name: "Quezon City", ProvinceCode: ProvinceMetro, PostalCode: "1100"},
			{Code: CityManila, Name: "City of Manila", ProvinceCode: ProvinceMetro, PostalCode: "1000"},
			{Code: CityCebu, Name: "Cebu City", ProvinceCode: ProvinceCebu, PostalCode: "6000"},
			{Code: CityMandaue, Name: "Mandaue City", ProvinceCode: ProvinceCebu, PostalCode: "6014"},
			{Code: CityBacoor, Name: "City of Bacoor", ProvinceCode: ProvinceCavite},
		},
		Barangays: []gazetteer.Barangay{
			{Code: BarangayBelAir, Name: "Bel-Air", CityCode: CityMakati},
			{Code: BarangayPobMakati, Name: "Poblacion", CityCode: CityMakati},
			{Code: "137602003", Name: "San Antonio", CityCode: CityMakati},
			{Code: "137404001", Name: "Bagumbayan", CityCode: CityQuezon},
			{Code: BarangayLahug, Name: "Lahug", CityCode: CityCebu},
			{Code: "072217002", Name: "Apas", CityCode: CityCebu},
			{Code: BarangayPobMandau, Name: "Poblacion", CityCode: CityMandaue},
			{Code: BarangayMolino, Name: "Molino III", CityCode: CityBacoor},
		},
	}
}

// Snapshot builds the fixture snapshot and panics if it is invalid.
func Snapshot() *gazetteer.Snapshot {
	s, err := gazetteer.NewSnapshot(Dataset())
	if err != nil {
		panic(err)
	}
	return s
}
