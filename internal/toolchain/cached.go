package toolchain

import (
	"context"
	"os"
	"os/exec"
	"time"

	"ferrite/internal/cache"
)

// CachedProbe answers from the disk cache when the binary on disk has not
// changed since the last probe, and falls back to a live Probe otherwise.
// A nil cache degrades to a plain Probe.
func CachedProbe(ctx context.Context, r Runner, name string, c *cache.DiskCache) (Tool, error) {
	if c == nil {
		return Probe(ctx, r, name)
	}

	path, lookErr := exec.LookPath(name)
	if lookErr != nil {
		// Пусть Probe вернёт каноничную ошибку.
		return Probe(ctx, r, name)
	}

	key := cache.KeyOf("tool", name, path)
	var p cache.ToolPayload
	if ok, err := c.Get(key, &p); err == nil && ok && p.Fresh() {
		return Tool{
			Name:    p.Name,
			Path:    p.Path,
			Version: p.Version,
			Release: p.Release,
			Commit:  p.Commit,
			Date:    p.Date,
		}, nil
	}

	tool, err := Probe(ctx, r, name)
	if err != nil {
		return Tool{}, err
	}

	// Запись best-effort: промахнуться мимо кеша не страшно.
	if info, statErr := os.Stat(tool.Path); statErr == nil {
		_ = c.Put(key, &cache.ToolPayload{
			Schema:   cache.SchemaVersion,
			Name:     tool.Name,
			Path:     tool.Path,
			Version:  tool.Version,
			Release:  tool.Release,
			Commit:   tool.Commit,
			Date:     tool.Date,
			BinSize:  info.Size(),
			BinMTime: info.ModTime().UnixNano(),
			ProbedAt: time.Now().Unix(),
		})
	}
	return tool, nil
}
