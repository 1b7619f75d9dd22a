package main

import (
	"encoding/json"
	"os"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/memo"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the internal state of the widget and its storage as JSON",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctrl := open()
		defer memo.Close(ctrl)

		state := map[string]any{
			"data_dir": dataDir,
			"adapter":  adapter,
		}
		state[ctrl.ComponentType()] = ctrl.State()
		kv := ctrl.Repository().Store().KV()
		if c, ok := kv.(introspection.Component); ok {
			key := c.ComponentType()
			state[key] = key
			if i, ok := kv.(introspection.Introspectable); ok {
				state[key] = i.State()
			}
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(state); err != nil {
			fatal("Failed to encode JSON", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
