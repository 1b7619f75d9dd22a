// Package memo is the Composition Root for the memo notes widget.
//
// It connects the core business logic (Domain Layer) with the storage
// adapters (Persistence Layer) and hands back a Controller that any host, the
// terminal UI, the CLI or an HTML export, can drive.
//
// Features:
//
//   - **Notes**: create, edit, delete and search short title/content notes.
//   - **Themes**: a persisted light/dark display toggle.
//   - **Pluggable storage**: a key-value medium on files (default), SQLite or memory.
//   - **Display tree**: host-agnostic rendering with explicit {action, noteId} events.
//
// Usage:
//
//	ctrl, err := memo.New("./notes", memo.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	defer memo.Close(ctrl)
//
//	note, err := ctrl.AddNote(ctx, "Milk", "buy milk")
package memo
