package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/poojitha20043/postx/internal/tasks"
)

var (
	_ list.Item = statusItem{}
)

// statusItem wraps [tasks.PlatformStatus] to implement [list.Item].
type statusItem struct {
	status tasks.PlatformStatus
}

func (i statusItem) FilterValue() string { return i.status.Platform.DisplayName() }

func (i statusItem) Title() string {
	marker := "✗"
	if i.status.Connected() {
		marker = "✓"
	}
	return fmt.Sprintf("%s %s", marker, i.status.Platform.DisplayName())
}

func (i statusItem) Description() string {
	desc := string(i.status.State)
	if acct := i.status.Account; acct != nil {
		if acct.Username != "" {
			desc = fmt.Sprintf("%s • @%s", desc, acct.Username)
		} else if acct.Name != "" {
			desc = fmt.Sprintf("%s • %s", desc, acct.Name)
		}
	}
	if i.status.Reason != "" {
		desc = fmt.Sprintf("%s (%s)", desc, i.status.Reason)
	}
	return desc
}
