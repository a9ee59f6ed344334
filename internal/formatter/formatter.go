// package formatter renders account status, post history, and metrics for terminal output and CSV export
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"

	"github.com/poojitha20043/postx/internal/models"
	"github.com/poojitha20043/postx/internal/services"
	"github.com/poojitha20043/postx/internal/tasks"
)

// StatusLines renders one line per platform status for plain CLI output.
func StatusLines(statuses []tasks.PlatformStatus) []byte {
	var buf bytes.Buffer

	for _, status := range statuses {
		marker := "✗"
		if status.Connected() {
			marker = "✓"
		}

		buf.WriteString(fmt.Sprintf("%s %-12s %s", marker, status.Platform.DisplayName(), status.State))

		if status.Account != nil {
			if status.Account.Username != "" {
				buf.WriteString(fmt.Sprintf("  @%s", status.Account.Username))
			} else if status.Account.Name != "" {
				buf.WriteString(fmt.Sprintf("  %s", status.Account.Name))
			}
		}
		if status.Reason != "" {
			buf.WriteString(fmt.Sprintf("  (%s)", status.Reason))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes()
}

// PostHistoryText renders the backend's post history as aligned rows.
func PostHistoryText(posts []services.RemotePost) []byte {
	var buf bytes.Buffer

	if len(posts) == 0 {
		buf.WriteString("No posts yet.\n")
		return buf.Bytes()
	}

	for _, post := range posts {
		message := post.Message
		if message == "" {
			message = "(no caption)"
		}
		if len([]rune(message)) > 60 {
			message = string([]rune(message)[:57]) + "..."
		}

		buf.WriteString(fmt.Sprintf("%-10s %-9s %-19s %s\n", post.Platform, post.Status, post.CreatedAt, message))
	}

	return buf.Bytes()
}

// PostHistoryCSV exports the backend's post history with columns: ID, Platform, Status, CreatedAt, ImageName, Message
func PostHistoryCSV(posts []services.RemotePost) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Platform", "Status", "CreatedAt", "ImageName", "Message"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, post := range posts {
		record := []string{
			post.ID,
			post.Platform,
			post.Status,
			post.CreatedAt,
			post.ImageName,
			post.Message,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// MetricsText renders a metrics map with stable key ordering.
func MetricsText(metrics models.Metrics) []byte {
	var buf bytes.Buffer

	keys := make([]string, 0, len(metrics))
	for key := range metrics {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := metrics[key]
		if _, ok := value.(map[string]any); ok {
			buf.WriteString(fmt.Sprintf("%-20s -\n", key))
			continue
		}
		buf.WriteString(fmt.Sprintf("%-20s %v\n", key, value))
	}

	return buf.Bytes()
}

// PagesText renders the managed page listing.
func PagesText(pages []models.Page) []byte {
	var buf bytes.Buffer

	if len(pages) == 0 {
		buf.WriteString("No managed pages.\n")
		return buf.Bytes()
	}

	for _, page := range pages {
		buf.WriteString(fmt.Sprintf("%-20s %s\n", page.ProviderID, page.Name))
	}

	return buf.Bytes()
}

// RecordText renders one accepted post for CLI confirmation output.
func RecordText(record *models.PostRecord) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Posted to %s (id %s)\n", record.Platform.DisplayName(), record.ID))
	if record.URL != "" {
		buf.WriteString(fmt.Sprintf("URL: %s\n", record.URL))
	}
	if record.ScheduledFor != "" {
		buf.WriteString(fmt.Sprintf("Scheduled for: %s\n", record.ScheduledFor))
	}

	return buf.Bytes()
}
