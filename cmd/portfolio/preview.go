package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zachkp/neon-portfolio/internal/config"
	"github.com/Zachkp/neon-portfolio/internal/preview"
)

func newPreviewCommand(global *globalOptions) *cobra.Command {
	var width int
	var raw bool
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the portfolio content in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(global.envFile)
			if err != nil {
				return err
			}
			p, err := loadContent(cfg.ContentPath)
			if err != nil {
				return err
			}
			if raw {
				_, err = fmt.Fprint(cmd.OutOrStdout(), preview.Markdown(p))
				return err
			}
			out, err := preview.Render(p, width)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().IntVar(&width, "width", 80, "Word-wrap width")
	cmd.Flags().BoolVar(&raw, "markdown", false, "Print the markdown source instead of rendering it")
	return cmd
}
