// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for managing social platform posting:
//  1. [DashboardView] : Platform cards with live or cached connection state
//  2. [ManagerView] : Compose a post with a live character counter
//  3. [ConfirmView] : Confirm a disconnect operation
//  4. [ResultView] : Display the accepted post or the backend's error
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Connection checks run through the StatusEngine with progress updates flowing
// over a channel, so the dashboard renders while platforms resolve.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
