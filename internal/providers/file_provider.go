package providers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/example/staybook/internal/listing"
	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Listings []listing.Listing `yaml:"listings"`
}

// FileProvider reads listings from a YAML catalog on every call, so edits
// to the file show up without a restart.
type FileProvider struct {
	name string
	path string
}

func NewFileProvider(name, path string) *FileProvider {
	return &FileProvider{name: name, path: path}
}

func (f *FileProvider) Name() string { return f.name }

func (f *FileProvider) Listings(ctx context.Context) ([]listing.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", f.path, err)
	}
	return DecodeCatalog(raw)
}

// DecodeCatalog parses a YAML catalog document and rejects entries without
// an id or with a negative price or capacity.
func DecodeCatalog(raw []byte) ([]listing.Listing, error) {
	var doc catalogFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for i, l := range doc.Listings {
		if strings.TrimSpace(l.ID) == "" {
			return nil, fmt.Errorf("catalog entry %d: missing id", i)
		}
		if l.PricePerNight < 0 {
			return nil, fmt.Errorf("catalog entry %q: negative price_per_night", l.ID)
		}
		if l.MaxGuests < 0 {
			return nil, fmt.Errorf("catalog entry %q: negative max_guests", l.ID)
		}
	}
	return doc.Listings, nil
}
