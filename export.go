package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/anuptiwari/portfolio/internal/content"
	"github.com/anuptiwari/portfolio/internal/web"
)

var (
	exportDir     string
	exportContent string
	exportAction  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the portfolio as static HTML",
	Long: `Render the page with every section revealed and copy its assets, for hosting
without the server. The contact form posts to --contact-action, which defaults
to the portfolio's mailto link.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", "dist", "Output directory")
	exportCmd.Flags().StringVar(&exportContent, "content", "", "Portfolio YAML file (defaults to the built-in content)")
	exportCmd.Flags().StringVar(&exportAction, "contact-action", "", "Contact form action URL")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	p, err := content.Load(exportContent)
	if err != nil {
		return errors.Wrap(err, "failed to load portfolio content")
	}

	action := exportAction
	if action == "" {
		action = mailtoAction(p)
	}
	if err := web.Export(cmd.Context(), exportDir, p, action); err != nil {
		return err
	}
	cmd.Printf("Exported portfolio to %s\n", exportDir)
	return nil
}

// mailtoAction returns the first mailto channel, or "#" when there is none.
func mailtoAction(p *content.Portfolio) string {
	for _, ch := range p.Channels {
		if strings.HasPrefix(ch.Link, "mailto:") {
			return ch.Link
		}
	}
	return "#"
}
