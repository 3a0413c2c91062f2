// Package scoreboard renders the score log as tables.
package scoreboard

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/bubbles/table"

	"github.com/okoshkin/trivtui/internal/model"
)

// PlaceholderRow is shown when the score log is empty.
const PlaceholderRow = "No scores yet"

const timeLayout = "2006-01-02 15:04"

// Columns describes the scoreboard table for a given total width.
func Columns(width int) []table.Column {
	nameWidth := width - 7 - 7 - 17 - 6
	if nameWidth < 8 {
		nameWidth = 8
	}
	return []table.Column{
		{Title: "Player", Width: nameWidth},
		{Title: "Score", Width: 7},
		{Title: "Total", Width: 7},
		{Title: "When", Width: 17},
	}
}

// Rows converts score entries to table rows in insertion order. An empty log
// yields a single placeholder row; malformed entries are skipped.
func Rows(entries []model.ScoreEntry) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for _, entry := range entries {
		if !wellFormed(entry) {
			continue
		}
		rows = append(rows, table.Row{
			entry.Username,
			strconv.Itoa(entry.Score),
			strconv.Itoa(entry.Total),
			entry.CreatedAt.Format(timeLayout),
		})
	}
	if len(rows) == 0 {
		return []table.Row{{PlaceholderRow, "", "", ""}}
	}
	return rows
}

// Format writes an aligned plain-text scoreboard, same rules as Rows.
func Format(w io.Writer, entries []model.ScoreEntry) error {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		if !wellFormed(entry) {
			continue
		}
		rows = append(rows, []string{
			entry.Username,
			strconv.Itoa(entry.Score),
			strconv.Itoa(entry.Total),
			entry.CreatedAt.Format(timeLayout),
		})
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, PlaceholderRow+".")
		return err
	}
	headers := []string{"Player", "Score", "Total", "When"}
	rightAlign := map[int]bool{1: true, 2: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func wellFormed(entry model.ScoreEntry) bool {
	if entry.Username == "" {
		return false
	}
	if entry.Score < 0 || entry.Total < 0 || entry.Score > entry.Total {
		return false
	}
	return true
}
