package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/midbel/tschart"
	"github.com/midbel/tschart/render"
	"github.com/midbel/tschart/source"
)

const (
	defaultWidth  = 800
	defaultHeight = 400
)

type chartWriter interface {
	tschart.Renderer
	io.WriterTo
}

type drawOptions struct {
	Options   string
	Type      string
	Width     float64
	Height    float64
	Dir       string
	Crosshair int64
	Point     string
	Watch     bool
}

func newDrawCmd() *cobra.Command {
	var opts drawOptions
	cmd := &cobra.Command{
		Use:   "draw <series files...>",
		Short: "Draw one chart per series file",
		Long: `Draw one chart per series file. Series are read from JSON or CSV files
and every chart is written as <name>.svg in the output directory.`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.Type {
			case "line", "bar":
			default:
				return fmt.Errorf("%s: unknown chart type", opts.Type)
			}
			if _, ok := points[opts.Point]; !ok {
				return fmt.Errorf("%s: unknown point shape", opts.Point)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDraw(cmd.Context(), opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Options, "options", "o", "", "Path to the options file (YAML or JSON)")
	cmd.Flags().StringVarP(&opts.Type, "type", "t", "line", "Chart type: line or bar")
	cmd.Flags().Float64Var(&opts.Width, "width", defaultWidth, "Width of the charts")
	cmd.Flags().Float64Var(&opts.Height, "height", defaultHeight, "Height of the charts")
	cmd.Flags().StringVarP(&opts.Dir, "out", "d", ".", "Output directory")
	cmd.Flags().Int64Var(&opts.Crosshair, "crosshair", 0, "Draw a crosshair at the given unix timestamp (ms)")
	cmd.Flags().StringVar(&opts.Point, "point", "", "Shape drawn on each datapoint of line charts: circle, square or diamond")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Draw again the charts when their series files change")

	return cmd
}

func runDraw(ctx context.Context, opts drawOptions, files []string) error {
	var chartOpts tschart.Options
	if opts.Options != "" {
		o, err := source.LoadOptions(opts.Options)
		if err != nil {
			return err
		}
		chartOpts = o
		log.Debug("options loaded", "file", opts.Options)
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return err
	}

	grp, ctx := errgroup.WithContext(ctx)
	for _, file := range files {
		d := drawer{
			file:    file,
			out:     outputFile(opts.Dir, file),
			opts:    chartOpts,
			options: opts,
		}
		grp.Go(func() error {
			if err := d.Draw(); err != nil {
				return err
			}
			if !opts.Watch {
				return nil
			}
			return d.Watch(ctx)
		})
	}
	return grp.Wait()
}

// drawer owns the chart built from one series file. It is only used by the
// goroutine drawing that file.
type drawer struct {
	file    string
	out     string
	opts    tschart.Options
	options drawOptions

	chart *tschart.Chart
	rdr   chartWriter
}

func (d *drawer) Draw() error {
	series, err := source.LoadSeries(d.file)
	if err != nil {
		return err
	}
	if d.chart == nil {
		d.rdr = newRenderer(d.options.Type, d.options.Point)
		box := tschart.NewBox(d.options.Width, d.options.Height)
		d.chart, err = tschart.New(box, series, d.opts, d.rdr, nil)
	} else {
		err = d.chart.SetSeries(series)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", d.file, err)
	}
	if d.options.Crosshair != 0 {
		d.chart.RenderSharedCrosshair(d.options.Crosshair)
	}
	if err := d.write(); err != nil {
		return err
	}
	log.Info("chart rendered", "file", d.out, "series", len(series))
	return nil
}

func (d *drawer) write() error {
	w, err := os.Create(d.out)
	if err != nil {
		return err
	}
	defer w.Close()

	n, err := d.rdr.WriteTo(w)
	if err != nil {
		return fmt.Errorf("%s: %w", d.out, err)
	}
	log.Debug("chart written", "file", d.out, "bytes", n)
	return nil
}

// Watch draws the chart again every time its series file is written. A file
// that can not be loaded anymore is reported and the previous chart is kept.
func (d *drawer) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed creating file watcher: %w", err)
	}
	defer watcher.Close()

	// editors often replace the file so the directory is watched instead.
	if err := watcher.Add(filepath.Dir(d.file)); err != nil {
		return fmt.Errorf("%s: %w", d.file, err)
	}
	log.Debug("watching", "file", d.file)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(d.file) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if err := d.Draw(); err != nil {
				log.Error("fail to draw chart", "file", d.file, "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", "file", d.file, "error", err)
		}
	}
}

var points = map[string]render.PointFunc{
	"":        nil,
	"circle":  render.GetCircle,
	"square":  render.GetSquare,
	"diamond": render.GetDiamond,
}

func newRenderer(kind, point string) chartWriter {
	if kind == "bar" {
		return render.NewBar()
	}
	r := render.NewLine()
	r.Point = points[point]
	r.IgnoreMissing = true
	return r
}

func outputFile(dir, file string) string {
	name := filepath.Base(file)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Join(dir, name+".svg")
}
