package controller

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/matt-steen/zenith/pkg/model"
	"github.com/matt-steen/zenith/pkg/stats"
)

func priorityColor(priority string) tcell.Color {
	switch priority {
	case model.PriorityHigh:
		return tcell.ColorRed
	case model.PriorityLow:
		return tcell.ColorGreen
	default:
		return tcell.ColorYellow
	}
}

// TodoContent implements tview.TableContent, which tview.Table uses to
// update data. Keeping the todos here instead of copying them into
// cells lets the sort order change without rebuilding the table.
type TodoContent struct {
	tview.TableContentReadOnly
	todos []model.TodoItem
	now   time.Time
}

func (t *TodoContent) rowID(row int) string {
	if idx := row - 1; idx >= 0 && idx < len(t.todos) {
		return t.todos[idx].ID
	}

	return ""
}

// GetCell returns the cell at the given position or nil if no cell.
func (t *TodoContent) GetCell(row, col int) *tview.TableCell {
	if row == 0 {
		headers := []string{"title", "priority", "category", "due", "status"}
		if col >= len(headers) {
			return nil
		}

		return tview.NewTableCell(headers[col]).SetExpansion(1).
			SetTextColor(tcell.ColorYellow).SetSelectable(false)
	}

	if row > len(t.todos) {
		return nil
	}

	todo := t.todos[row-1]

	switch col {
	case 0:
		return tview.NewTableCell(todo.Title).SetExpansion(1).SetReference(todo)
	case 1:
		return tview.NewTableCell(todo.Priority).SetExpansion(1).
			SetTextColor(priorityColor(todo.Priority))
	case 2:
		return tview.NewTableCell(todo.Category).SetExpansion(1)
	case 3:
		due := tview.NewTableCell(todo.DueDate).SetExpansion(1)
		if stats.IsOverdue(todo, t.now) {
			due.SetTextColor(tcell.ColorRed)
		}

		return due
	case 4:
		return tview.NewTableCell(todo.Status).SetExpansion(1)
	}

	return nil
}

// GetRowCount returns the number of rows in the table.
func (t *TodoContent) GetRowCount() int {
	return len(t.todos) + 1
}

// GetColumnCount returns the number of columns in the table.
func (t *TodoContent) GetColumnCount() int {
	return 5
}
