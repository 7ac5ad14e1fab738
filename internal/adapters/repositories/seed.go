package repositories

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"taxi-dispatch-service/internal/adapters/instancefile"
)

// Populate the database from an instance file, or from every instance file
// in a directory. Returns the names of the seeded instances.
func SeedFromFile(ctx context.Context, repo *SQLInstanceRepository, path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("seed instances: stat %q: %w", path, err)
	}

	files := []string{path}
	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("seed instances: read dir %q: %w", path, err)
		}

		files = files[:0]
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if _, err := instancefile.FormatFromPath(e.Name()); err != nil {
				continue
			}
			files = append(files, filepath.Join(path, e.Name()))
		}
		slices.Sort(files)
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		inst, err := instancefile.Load(f)
		if err != nil {
			return nil, fmt.Errorf("seed instances: %w", err)
		}
		if err := repo.SaveInstance(ctx, inst); err != nil {
			return nil, fmt.Errorf("seed instances: %w", err)
		}
		names = append(names, inst.Name)
	}

	return names, nil
}
