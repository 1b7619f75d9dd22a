package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/memo"
	"github.com/aretw0/memo/pkg/app"
	"github.com/aretw0/memo/pkg/core"
	"github.com/aretw0/memo/pkg/render"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note",
	Long: `Delete permanently removes a note. It asks for confirmation unless
--yes is given; without a terminal, --yes is required.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])

		ctrl := open()
		defer memo.Close(ctrl)

		ctx := context.Background()
		if err := ctrl.Dispatch(ctx, render.Event{Action: render.ActionDelete, NoteID: id}, app.Input{}); err != nil {
			fatal("Failed to delete note", err)
		}
		note, ok := ctrl.PendingDelete()
		if !ok {
			fatal("Failed to delete note", &core.NotFoundError{ID: id})
		}

		if !deleteYes {
			confirmed, err := confirm(fmt.Sprintf("Delete %q? [y/N] ", note.Title))
			if err != nil {
				fatal("Failed to delete note", err)
			}
			if !confirmed {
				_ = ctrl.Dispatch(ctx, render.Event{Action: render.ActionDismissDelete, NoteID: id}, app.Input{})
				fmt.Println("Kept.")
				return
			}
		}

		if err := ctrl.Dispatch(ctx, render.Event{Action: render.ActionConfirmDelete, NoteID: id}, app.Input{}); err != nil {
			fatal("Failed to delete note", err)
		}

		fmt.Printf("Note deleted: %d\n", id)
	},
}

func confirm(prompt string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, errors.New("refusing to delete without a terminal; pass --yes")
	}
	fmt.Print(prompt)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Delete without asking")
}
