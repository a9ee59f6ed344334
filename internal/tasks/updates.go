package tasks

import (
	"fmt"

	"github.com/poojitha20043/postx/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase           // Operation phase
	Step    int             // Current step number within phase
	Total   int             // Total steps in this phase
	Message string          // Human-readable message for display
	Data    any             // Optional phase-specific data for advanced UIs
	Target  models.Platform // Platform the update concerns, when applicable
}

// Operation phase enumeration
type Phase int

const (
	CheckAccount Phase = iota
	CheckDone
	PublishPost
)

func (p Phase) String() string {
	switch p {
	case CheckAccount:
		return "check_account"
	case CheckDone:
		return "check_done"
	case PublishPost:
		return "publish_post"
	default:
		return ""
	}
}

func checkingUpdate(step, total int, platform models.Platform) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CheckAccount,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Checking %s...", platform.DisplayName()),
		Target:  platform,
	}
}

func checkedUpdate(step, total int, status PlatformStatus) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CheckDone,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s: %s", step, total, status.Platform.DisplayName(), status.State),
		Data:    status,
		Target:  status.Platform,
	}
}

func publishUpdate(platform models.Platform, message string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PublishPost,
		Step:    1,
		Total:   1,
		Message: message,
		Target:  platform,
	}
}
