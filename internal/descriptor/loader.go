package descriptor

import (
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a descriptor file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read descriptor file %s", path)
	}

	return Parse(data, path)
}

// LoadFiles loads every path in order.
func LoadFiles(paths ...string) ([]*File, error) {
	files := make([]*File, 0, len(paths))

	for _, p := range paths {
		f, err := LoadFile(p)
		if err != nil {
			return nil, err
		}

		files = append(files, f)
	}

	return files, nil
}

// Parse parses YAML data into a File. source names the data in messages.
func Parse(data []byte, source string) (*File, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(err, "failed to parse descriptor YAML %s", source)
	}

	f.Source = source
	applyDefaults(&f)

	return &f, nil
}

func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = CurrentVersion
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}
