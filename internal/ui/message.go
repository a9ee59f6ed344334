package ui

import (
	"github.com/poojitha20043/postx/internal/models"
	"github.com/poojitha20043/postx/internal/tasks"
)

// statusesResolvedMsg carries the resolved platform states after a full check.
type statusesResolvedMsg struct {
	statuses []tasks.PlatformStatus
	err      error
}

// progressUpdateMsg forwards one [tasks.ProgressUpdate] from the engine.
type progressUpdateMsg tasks.ProgressUpdate

// publishDoneMsg carries the outcome of a publish attempt.
type publishDoneMsg struct {
	record *models.PostRecord
	err    error
}

// disconnectDoneMsg carries the outcome of a disconnect request.
type disconnectDoneMsg struct {
	platform models.Platform
	err      error
}
