package chat

import (
	"github.com/devantler-tech/olschat/pkg/cli/helpers/editor"
	"github.com/devantler-tech/olschat/pkg/cli/slash"
	"github.com/devantler-tech/olschat/pkg/svc/chat/history"
)

// entryAppendedMsg reports that an entry was committed to history.
type entryAppendedMsg struct {
	index int
}

// discardedMsg reports that the outcome of a query from before a new chat was dropped.
type discardedMsg struct {
	entry history.AssistantEntry
}

// waitingMsg toggles the awaiting-response indicator.
type waitingMsg struct {
	waiting bool
}

// scrollMsg asks the viewport to jump to the newest entry.
type scrollMsg struct{}

// focusMsg asks for the prompt input to take focus.
type focusMsg struct{}

// editFinishedMsg carries the exit of the external editor.
type editFinishedMsg struct {
	edit *editor.Edit
	err  error
}

// commandDoneMsg carries the outcome of a slash command run off the update loop.
type commandDoneMsg struct {
	output string
	result slash.Result
	err    error
}
