package scriptcfg

import (
	"log/slog"

	"github.com/leapstack-labs/leapedit/internal/blob"
	"github.com/leapstack-labs/leapedit/internal/recent"
)

// SeedResult reports one artifact handled by Seed.
type SeedResult struct {
	Name    string `json:"name" yaml:"name"`
	Path    string `json:"path" yaml:"path"`
	Written bool   `json:"written" yaml:"written"`
}

// Seed creates every persisted artifact that does not exist yet, holding
// its default value. Existing artifacts are left alone.
func Seed(store *blob.Store, logger *slog.Logger) ([]SeedResult, error) {
	reg, err := recent.Read(store, logger)
	if err != nil {
		return nil, err
	}
	wroteRecents, err := reg.Seed()
	if err != nil {
		return nil, err
	}

	cache, err := openCache(store, logger)
	if err != nil {
		return nil, err
	}
	wroteCache, err := cache.Seed()
	if err != nil {
		return nil, err
	}

	return []SeedResult{
		{Name: recent.DirName, Path: reg.ArtifactPath(), Written: wroteRecents},
		{Name: KeybindsDirName, Path: cache.Path(), Written: wroteCache},
	}, nil
}
