// README: Gazetteer data feed read from four flat JSON datasets.
package gazetteer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	RegionsFile   = "regions.json"
	ProvincesFile = "provinces.json"
	CitiesFile    = "cities.json"
	BarangaysFile = "barangays.json"
)

// LoadDir reads the four dataset files from dir. Each file holds a JSON array
// of records using the field names of the model types.
func LoadDir(ctx context.Context, dir string) (Dataset, error) {
	var d Dataset
	files := []struct {
		name string
		dst  any
	}{
		{RegionsFile, &d.Regions},
		{ProvincesFile, &d.Provinces},
		{CitiesFile, &d.Cities},
		{BarangaysFile, &d.Barangays},
	}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		if err := readJSON(filepath.Join(dir, f.name), f.dst); err != nil {
			return Dataset{}, err
		}
	}
	return d, nil
}

func readJSON(path string, dst any) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(dst); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}
