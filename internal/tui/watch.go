package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/memo/pkg/core"
)

// changeMsg reports an external change of the storage medium.
type changeMsg struct {
	event core.Event
}

// watchClosedMsg reports that the change feed has ended.
type watchClosedMsg struct{}

// waitForChange blocks on the next storage event.
func waitForChange(events <-chan core.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return watchClosedMsg{}
		}
		return changeMsg{event: ev}
	}
}
