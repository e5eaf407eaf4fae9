package progress

import (
	"context"
	"fmt"
	"maps"
	"slices"
)

// Copy writes every record of src into dst in id order and returns how many were copied.
func Copy(ctx context.Context, src, dst Store) (int, error) {
	blob, err := src.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("src.Load() > %w", err)
	}

	ids := slices.Sorted(maps.Keys(blob))
	for i, id := range ids {
		if err := dst.Save(ctx, id, blob[id]); err != nil {
			return i, fmt.Errorf("dst.Save(%d) > %w", id, err)
		}
	}
	return len(ids), nil
}
