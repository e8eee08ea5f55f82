package controller

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/matt-steen/zenith/pkg/model"
	"github.com/matt-steen/zenith/pkg/stats"
)

// renderAll redraws the banner, headers, and every page body from the
// current dashboard state.
func (c *Controller) renderAll() {
	c.renderBanner()

	for _, name := range pageOrder {
		c.renderHeader(name)
	}

	c.renderDashboard()
	c.renderNotes()
	c.renderTodos()
	c.renderSchedule()
	c.renderBudget()
	c.renderPlanner()
	c.renderExams()
	c.renderDetail(pagePlanner)
	c.renderDetail(pageExams)
}

// renderHeader shows the page title and its keyboard shortcuts,
// page-specific ones first.
func (c *Controller) renderHeader(name string) {
	parts := []string{}

	for key, event := range c.pageEvents[name] {
		parts = append(parts, fmt.Sprintf("[orange]<%s>[white] %s", tcell.KeyNames[key], event.Description))
	}

	sort.Strings(parts)

	globals := []string{}

	for key, event := range c.events {
		globals = append(globals, fmt.Sprintf("[orange]<%s>[white] %s", tcell.KeyNames[key], event.Description))
	}

	sort.Strings(globals)

	extra := ""
	if name == pageTodos {
		s := stats.CountTodos(c.dash.Todos(), time.Now())
		extra = fmt.Sprintf("\n[white]total %d | pending %d | in progress %d | done %d | [red]overdue %d[white] | sort: %s",
			s.Total, s.Pending, s.InProgress, s.Completed, s.Overdue, c.todoSort)
	}

	c.headers[name].SetText(fmt.Sprintf("[yellow]%s[white]  %s\n%s%s",
		name, strings.Join(parts, " "), strings.Join(globals, " "), extra))
}

func (c *Controller) rowID(name string, row int) string {
	if name == pageTodos {
		if c.todoContent == nil {
			return ""
		}

		return c.todoContent.rowID(row)
	}

	ids := c.rowIDs[name]
	if idx := row - 1; idx >= 0 && idx < len(ids) {
		return ids[idx]
	}

	return ""
}

func headerCell(text string) *tview.TableCell {
	return tview.NewTableCell(text).SetExpansion(1).
		SetTextColor(tcell.ColorYellow).SetSelectable(false)
}

func cell(text string) *tview.TableCell {
	return tview.NewTableCell(text).SetExpansion(1)
}

// fillTable replaces a table's rows and records the id behind each
// row. An empty id marks a non-selectable divider row.
func (c *Controller) fillTable(name string, headers []string, rows [][]string, ids []string) {
	table := c.tables[name]
	table.Clear()

	for col, h := range headers {
		table.SetCell(0, col, headerCell(h))
	}

	for row, values := range rows {
		for col, v := range values {
			tc := cell(v)
			if ids[row] == "" {
				tc.SetTextColor(tcell.ColorYellow).SetSelectable(false)
			}

			table.SetCell(row+1, col, tc)
		}
	}

	c.rowIDs[name] = ids

	if c.selected[name] == "" && len(ids) > 0 {
		table.Select(1, 0)
	}
}

func (c *Controller) renderDashboard() {
	data := c.dash.Data(time.Now())

	var b strings.Builder

	fmt.Fprintf(&b, "[yellow]study hours[white] %d   [yellow]completed tasks[white] %d   ",
		data.Stats.StudyHours, data.Stats.CompletedTasks)
	fmt.Fprintf(&b, "[yellow]budget remaining[white] $%.2f   [yellow]study streak[white] %d days\n\n",
		data.Stats.BudgetRemaining, data.Stats.StudyStreak)

	b.WriteString("[yellow]recent goals[white]\n")

	for _, g := range data.RecentGoals {
		fmt.Fprintf(&b, "  %s (%.0f%%)\n", g.Title, stats.GoalProgress(g))
	}

	b.WriteString("\n[yellow]recent todos[white]\n")

	for _, t := range data.RecentTodos {
		fmt.Fprintf(&b, "  [%s] %s (%s)\n", t.Status, t.Title, t.Priority)
	}

	b.WriteString("\n[yellow]upcoming classes[white]\n")

	for _, cls := range data.UpcomingClasses {
		fmt.Fprintf(&b, "  %s %s-%s %s (%s)\n", cls.Day, cls.StartTime, cls.EndTime, cls.Subject, cls.RoomNumber)
	}

	b.WriteString("\n[yellow]recent transactions[white]\n")

	for _, t := range data.RecentTransactions {
		fmt.Fprintf(&b, "  %s %s $%.2f (%s)\n", t.Date, t.Type, t.Amount, t.Category)
	}

	b.WriteString("\n[yellow]recent notes[white]\n")

	for _, n := range data.RecentNotes {
		fmt.Fprintf(&b, "  %s (%s)\n", n.Title, n.Subject)
	}

	c.detail[pageDashboard].SetText(b.String())
}

func (c *Controller) renderNotes() {
	notes := c.dash.Notes()
	rows := make([][]string, 0, len(notes))
	ids := make([]string, 0, len(notes))

	for _, n := range notes {
		created := ""
		if !n.CreatedAt.IsZero() {
			created = n.CreatedAt.Format(model.DateLayout)
		}

		rows = append(rows, []string{n.Title, n.Subject, strings.Join(n.Tags, ", "), n.Status, created})
		ids = append(ids, n.ID)
	}

	c.fillTable(pageNotes, []string{"title", "subject", "tags", "status", "created"}, rows, ids)
}

func (c *Controller) renderTodos() {
	c.todoContent.todos = stats.SortTodos(c.dash.Todos(), c.todoSort)
	c.todoContent.now = time.Now()
}

func (c *Controller) renderSchedule() {
	grouped := stats.GroupByDay(c.dash.Classes())
	rows := [][]string{}
	ids := []string{}

	for _, day := range model.Weekdays() {
		rows = append(rows, []string{day, "", "", "", ""})
		ids = append(ids, "")

		for _, cls := range grouped[day] {
			rows = append(rows, []string{
				"", cls.StartTime + "-" + cls.EndTime, cls.Subject, cls.Teacher, cls.RoomNumber,
			})
			ids = append(ids, cls.ID)
		}
	}

	c.fillTable(pageSchedule, []string{"day", "time", "subject", "teacher", "room"}, rows, ids)
}

func (c *Controller) renderBudget() {
	summary := c.dash.Summary()

	var b strings.Builder

	fmt.Fprintf(&b, "[green]income[white] $%.2f\n[red]expenses[white] $%.2f\n[yellow]balance[white] $%.2f\n\n",
		summary.TotalIncome, summary.TotalExpenses, summary.Balance)

	b.WriteString("[yellow]spending by category[white]\n")

	chart := stats.BreakdownChart(summary)
	for i, label := range chart.Labels {
		fmt.Fprintf(&b, "  %-15s $%.2f\n", label, chart.Data[i])
	}

	budgets := c.dash.Budgets()
	if len(budgets) > 0 {
		b.WriteString("\n[yellow]limits[white]\n")

		for _, bd := range budgets {
			fmt.Fprintf(&b, "  %-15s $%.2f / $%.2f (%s)\n", bd.Category, bd.Spent, bd.Limit, bd.Month)
		}
	}

	for _, alert := range c.dash.Alerts() {
		fmt.Fprintf(&b, "\n[red]%s[white]", alert)
	}

	c.detail[pageBudget].SetText(b.String())

	transactions := c.dash.Transactions()
	rows := make([][]string, 0, len(transactions))
	ids := make([]string, 0, len(transactions))

	for _, t := range transactions {
		recurring := ""
		if t.IsRecurring {
			recurring = t.RecurringFrequency
		}

		rows = append(rows, []string{t.Date, t.Type, t.Category, fmt.Sprintf("$%.2f", t.Amount), t.Note, recurring})
		ids = append(ids, t.ID)
	}

	c.fillTable(pageBudget, []string{"date", "type", "category", "amount", "note", "recurring"}, rows, ids)
}

func (c *Controller) renderPlanner() {
	goals := c.dash.Goals()
	rows := [][]string{}
	ids := []string{}

	for _, g := range goals {
		override := ""
		if g.Progress != nil {
			override = "*"
		}

		rows = append(rows, []string{
			g.Title,
			fmt.Sprintf("%.0f%%%s", stats.GoalProgress(g), override),
			fmt.Sprintf("%d tasks", len(g.Tasks)),
			g.TargetDate,
		})
		ids = append(ids, g.ID)

		for _, t := range g.Tasks {
			mark := "[ ]"
			if t.Completed {
				mark = "[x]"
			}

			rows = append(rows, []string{"  " + mark + " " + t.Title, "", "", t.DueDate})
			ids = append(ids, g.ID+"/"+t.ID)
		}
	}

	c.fillTable(pagePlanner, []string{"goal / task", "progress", "tasks", "target"}, rows, ids)
}

func (c *Controller) renderExams() {
	exams := c.dash.Exams()
	rows := make([][]string, 0, len(exams))
	ids := make([]string, 0, len(exams))

	for _, e := range exams {
		created := ""
		if !e.CreatedAt.IsZero() {
			created = e.CreatedAt.Format(model.DateLayout)
		}

		rows = append(rows, []string{e.Subject, e.Topic, fmt.Sprintf("%d questions", len(e.Questions)), created})
		ids = append(ids, e.ID)
	}

	c.fillTable(pageExams, []string{"subject", "topic", "questions", "created"}, rows, ids)
}

// renderDetail fills the side pane for pages that have one.
func (c *Controller) renderDetail(name string) {
	switch name {
	case pagePlanner:
		goals := c.dash.Goals()

		var b strings.Builder

		fmt.Fprintf(&b, "[yellow]overall progress[white] %.0f%%\n\n", stats.OverallProgress(goals))

		goalID, _ := splitPlannerID(c.selected[name])

		for _, g := range goals {
			if g.ID != goalID {
				continue
			}

			fmt.Fprintf(&b, "[yellow]%s[white]\n%s\n\n", g.Title, g.Description)
			fmt.Fprintf(&b, "derived %.0f%%", stats.DerivedProgress(g))

			if g.Progress != nil {
				fmt.Fprintf(&b, " | override %.0f%%", *g.Progress)
			}

			if g.TargetDate != "" {
				fmt.Fprintf(&b, "\ntarget %s", g.TargetDate)
			}
		}

		c.detail[name].SetText(b.String())
	case pageExams:
		var b strings.Builder

		for _, e := range c.dash.Exams() {
			if e.ID != c.selected[name] {
				continue
			}

			fmt.Fprintf(&b, "[yellow]%s: %s[white]\n\n", e.Subject, e.Topic)

			for i, q := range e.Questions {
				fmt.Fprintf(&b, "[orange]Q%d[white] %s\n[green]A[white] %s\n\n", i+1, q.Question, q.Answer)
			}
		}

		c.detail[name].SetText(b.String())
	}
}

func splitPlannerID(id string) (goalID, taskID string) {
	parts := strings.SplitN(id, "/", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}

	return id, ""
}
