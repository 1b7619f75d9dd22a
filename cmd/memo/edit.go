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

var (
	editTitle   string
	editContent string
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Change the title or content of a note",
	Long:  `Edit replaces the fields given by flags; omitted fields keep their value.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])

		ctrl := open()
		defer memo.Close(ctrl)

		if _, ok := ctrl.Repository().Get(id); !ok {
			fatal("Failed to edit note", &core.NotFoundError{ID: id})
		}

		ctx := context.Background()
		if err := ctrl.Dispatch(ctx, render.Event{Action: render.ActionEdit, NoteID: id}, app.Input{}); err != nil {
			fatal("Failed to edit note", err)
		}

		draft, _ := ctrl.Draft(id)
		if cmd.Flags().Changed("title") {
			draft.Title = editTitle
		}
		if cmd.Flags().Changed("content") {
			draft.Content = editContent
		}

		in := app.Input{Title: draft.Title, Content: draft.Content}
		if err := ctrl.Dispatch(ctx, render.Event{Action: render.ActionSave, NoteID: id}, in); err != nil {
			fatal("Failed to save note", err)
		}

		fmt.Printf("Note updated: %d\n", id)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editContent, "content", "c", "", "New content")
}
