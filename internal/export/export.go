// Package export writes the portfolio as a self-contained static site: the
// page, every section fragment, the backdrops for every theme, and the
// embedded assets. The output needs no server runtime.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Zachkp/neon-portfolio/internal/backdrop"
	"github.com/Zachkp/neon-portfolio/internal/content"
	"github.com/Zachkp/neon-portfolio/internal/prefs"
	"github.com/Zachkp/neon-portfolio/internal/site"
)

// Renderer is the part of site.Server an export needs.
type Renderer interface {
	RenderPage() ([]byte, error)
	RenderSection(id string) ([]byte, error)
}

// Options control an export run.
type Options struct {
	OutDir string
	// Backdrop overrides the frame options; the palette is always taken from
	// each theme.
	Backdrop backdrop.Options
	// Workers bounds concurrent renders; zero means GOMAXPROCS.
	Workers int
	// Assets is the static tree copied to /static. Nil uses site.Assets().
	Assets fs.FS
}

// Result summarizes what was written.
type Result struct {
	Files int64
	Bytes int64
}

type exporter struct {
	out    string
	logger *zap.Logger
	files  atomic.Int64
	bytes  atomic.Int64
}

// Run renders everything into opts.OutDir. The directory is created if
// needed; existing files with the same names are overwritten.
func Run(ctx context.Context, r Renderer, opts Options, logger *zap.Logger) (Result, error) {
	if opts.OutDir == "" {
		return Result{}, errors.New("export: output directory is required")
	}
	if opts.Assets == nil {
		opts.Assets = site.Assets()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if opts.Backdrop.Width == 0 {
		opts.Backdrop = backdrop.DefaultOptions()
	}

	e := &exporter{out: opts.OutDir, logger: logger}
	if err := os.MkdirAll(e.out, 0o755); err != nil {
		return Result{}, fmt.Errorf("export: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		page, err := r.RenderPage()
		if err != nil {
			return err
		}
		return e.write("index.html", page)
	})

	for _, sec := range content.Sections {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			body, err := r.RenderSection(sec.ID)
			if err != nil {
				return err
			}
			return e.write(path.Join("sections", sec.ID+".html"), body)
		})
	}

	for _, theme := range prefs.Themes {
		for _, scene := range backdrop.Scenes {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				frame := opts.Backdrop
				frame.Palette = backdrop.PaletteFor(string(theme))
				var buf bytes.Buffer
				if err := backdrop.Render(&buf, scene, frame); err != nil {
					return err
				}
				return e.write(path.Join("backdrop", site.BackdropFile(scene, theme)), buf.Bytes())
			})
		}
	}

	g.Go(func() error {
		return e.copyAssets(ctx, opts.Assets)
	})

	if err := g.Wait(); err != nil {
		return e.result(), fmt.Errorf("export: %w", err)
	}
	res := e.result()
	logger.Info("export complete", zap.String("dir", e.out), zap.Int64("files", res.Files), zap.Int64("bytes", res.Bytes))
	return res, nil
}

func (e *exporter) result() Result {
	return Result{Files: e.files.Load(), Bytes: e.bytes.Load()}
}

// write stores data at the slash-separated rel path under the output dir.
func (e *exporter) write(rel string, data []byte) error {
	dst := filepath.Join(e.out, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return err
	}
	e.files.Add(1)
	e.bytes.Add(int64(len(data)))
	e.logger.Debug("wrote", zap.String("file", rel), zap.Int("bytes", len(data)))
	return nil
}

func (e *exporter) copyAssets(ctx context.Context, assets fs.FS) error {
	return fs.WalkDir(assets, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(assets, p)
		if err != nil {
			return err
		}
		return e.write(path.Join("static", p), data)
	})
}
