package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/memo"
	"github.com/aretw0/memo/pkg/app"
	"github.com/aretw0/memo/pkg/core"
	"github.com/aretw0/memo/pkg/render"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark|toggle]",
	Short:     "Show or change the display theme",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"light", "dark", "toggle"},
	Run: func(cmd *cobra.Command, args []string) {
		ctrl := open()
		defer memo.Close(ctrl)

		if len(args) == 0 {
			fmt.Println(ctrl.Theme())
			return
		}

		want := ctrl.Theme().Toggle()
		if args[0] != "toggle" {
			want = core.ParseTheme(args[0])
		}

		if want != ctrl.Theme() {
			ev := render.Event{Action: render.ActionToggleTheme}
			if err := ctrl.Dispatch(context.Background(), ev, app.Input{}); err != nil {
				fatal("Failed to change theme", err)
			}
		}

		fmt.Println(ctrl.Theme())
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
