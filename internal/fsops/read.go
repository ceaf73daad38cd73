package fsops

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ReadFiles reads every path concurrently and returns a map of path to
// content. All paths are authorized up front; any single read failure fails
// the whole call. The fan-out joins before returning, so the result map is
// complete and keyed per input path regardless of completion order.
func (o *Ops) ReadFiles(ctx context.Context, paths []string) (map[string]string, error) {
	for _, p := range paths {
		if err := o.guard.Check(p); err != nil {
			return nil, err
		}
	}

	contents := make([]string, len(paths))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, p := range paths {
		g.Go(func() error {
			data, err := os.ReadFile(p)
			if err != nil {
				return fmt.Errorf("read %s: %w", p, err)
			}
			contents[i] = string(data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(paths))
	for i, p := range paths {
		out[p] = contents[i]
	}
	return out, nil
}
