package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/memo"
	"github.com/aretw0/memo/pkg/render"
)

var (
	exportJSON   bool
	exportOutput string
	exportSearch string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the notes as an HTML page (default) or JSON",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctrl := open()
		defer memo.Close(ctrl)

		ctrl.Search(exportSearch)

		var w io.Writer = os.Stdout
		if exportOutput != "" && exportOutput != "-" {
			f, err := os.Create(exportOutput)
			if err != nil {
				fatal("Failed to create output", err)
			}
			defer f.Close()
			w = f
		}

		if exportJSON {
			encoder := json.NewEncoder(w)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(ctrl.Visible()); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		if err := render.HTML(w, ctrl.Render()); err != nil {
			fatal("Failed to render HTML", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().Bool("html", true, "Export as an HTML page")
	exportCmd.Flags().BoolVar(&exportJSON, "json", false, "Export the notes as JSON instead")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	exportCmd.Flags().StringVarP(&exportSearch, "search", "s", "", "Only export notes matching the query")
	exportCmd.MarkFlagsMutuallyExclusive("html", "json")
}
