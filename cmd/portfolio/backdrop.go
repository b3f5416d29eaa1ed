package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zachkp/neon-portfolio/internal/backdrop"
	"github.com/Zachkp/neon-portfolio/internal/prefs"
)

type backdropOptions struct {
	scene  string
	theme  string
	output string
	frame  backdrop.Options
}

func newBackdropCommand() *cobra.Command {
	opts := backdropOptions{
		scene:  string(backdrop.SceneParticles),
		theme:  string(prefs.ThemeDark),
		output: "-",
		frame:  backdrop.DefaultOptions(),
	}
	cmd := &cobra.Command{
		Use:   "backdrop",
		Short: "Render one decorative backdrop frame to PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackdrop(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.scene, "scene", opts.scene, "Scene to render (particles, waves, morph)")
	cmd.Flags().StringVar(&opts.theme, "theme", opts.theme, "Palette theme (dark, light, cyberpunk)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "PNG file to write, or - for stdout")
	cmd.Flags().IntVar(&opts.frame.Width, "width", opts.frame.Width, "Frame width in pixels")
	cmd.Flags().IntVar(&opts.frame.Height, "height", opts.frame.Height, "Frame height in pixels")
	cmd.Flags().IntVar(&opts.frame.Count, "count", opts.frame.Count, "Particle count")
	cmd.Flags().Uint64Var(&opts.frame.Seed, "seed", opts.frame.Seed, "Random seed")
	cmd.Flags().Float64Var(&opts.frame.Time, "time", opts.frame.Time, "Animation time in seconds")
	return cmd
}

func runBackdrop(stdout io.Writer, opts backdropOptions) (err error) {
	scene, err := backdrop.ParseScene(opts.scene)
	if err != nil {
		return err
	}
	theme, ok := prefs.ParseTheme(opts.theme)
	if !ok {
		return fmt.Errorf("unknown theme %q", opts.theme)
	}
	frame := opts.frame
	frame.Palette = backdrop.PaletteFor(string(theme))

	out := stdout
	if opts.output != "-" {
		f, cerr := os.Create(opts.output)
		if cerr != nil {
			return fmt.Errorf("create %s: %w", opts.output, cerr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		out = f
	}
	bw := bufio.NewWriter(out)
	if err := backdrop.Render(bw, scene, frame); err != nil {
		return err
	}
	return bw.Flush()
}
