// README: Administrative hierarchy records (region > province > city > barangay).
package gazetteer

type Region struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type Province struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	RegionCode string `json:"regionCode"`
}

type City struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	ProvinceCode string `json:"provinceCode"`
	PostalCode   string `json:"postalCode,omitempty"`
}

type Barangay struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	CityCode string `json:"cityCode"`
}

// Dataset is the raw content of the four gazetteer feeds.
type Dataset struct {
	Regions   []Region
	Provinces []Province
	Cities    []City
	Barangays []Barangay
}
