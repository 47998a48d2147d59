package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DecorateDir decorates every .html file under in, mirroring the directory
// layout under out. Files are processed in parallel, bounded by
// max_concurrent_files.
func (p *Pipeline) DecorateDir(ctx context.Context, in, out string) error {
	info, err := os.Stat(in)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", in, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", in)
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(p.cfg.MaxConcurrentFiles)

	count := 0
	walkErr := filepath.WalkDir(in, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}
		rel, err := filepath.Rel(in, path)
		if err != nil {
			return err
		}
		count++
		dst := filepath.Join(out, rel)
		eg.Go(func() error {
			return p.DecorateFile(egCtx, path, dst)
		})
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("failed to walk %s: %w", in, walkErr)
	}

	if err := eg.Wait(); err != nil {
		return err
	}
	p.log.Info("directory decorated", zap.String("in", in), zap.Int("files", count))
	return nil
}
