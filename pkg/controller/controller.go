// Package controller mediates between the dashboard state and the
// terminal UI.
package controller

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"github.com/matt-steen/zenith/pkg/dashboard"
	"github.com/matt-steen/zenith/pkg/stats"
)

// Page names.
const (
	pageDashboard = "dashboard"
	pageNotes     = "notes"
	pageTodos     = "todos"
	pageSchedule  = "schedule"
	pageBudget    = "budget"
	pagePlanner   = "planner"
	pageExams     = "exams"
)

var pageOrder = []string{
	pageDashboard, pageNotes, pageTodos, pageSchedule,
	pageBudget, pagePlanner, pageExams,
}

// Controller mediates between the model and the view.
type Controller struct {
	ctx  context.Context
	dash *dashboard.Dashboard
	app  *tview.Application

	pages   *tview.Pages
	current string

	events     map[tcell.Key]KeyEvent
	pageEvents map[string]map[tcell.Key]KeyEvent
	forms      map[string]*tview.Form

	banner   *tview.TextView
	headers  map[string]*tview.TextView
	tables   map[string]*tview.Table
	detail   map[string]*tview.TextView
	rowIDs   map[string][]string
	todoSort stats.TodoSort

	todoContent *TodoContent

	// selection state per page, keyed by record id so re-fetches
	// don't make actions address the wrong row
	selected map[string]string
}

// KeyEvent defines an event associated with a keypress.
type KeyEvent struct {
	Description string
	Action      func(*tcell.EventKey) *tcell.EventKey
}

// NewController creates a new Controller to run the app.
func NewController(ctx context.Context, dash *dashboard.Dashboard) (*Controller, error) {
	c := Controller{
		ctx:      ctx,
		dash:     dash,
		app:      tview.NewApplication(),
		pages:    tview.NewPages(),
		headers:  map[string]*tview.TextView{},
		tables:   map[string]*tview.Table{},
		detail:   map[string]*tview.TextView{},
		rowIDs:   map[string][]string{},
		selected: map[string]string{},
		todoSort: stats.SortCreated,
	}

	initKeys()
	c.initEvents()
	c.initForms()

	return &c, nil
}

// Go fetches the collections, builds every page, and runs the app
// until the user exits.
func (c *Controller) Go() {
	if err := c.dash.RefreshAll(c.ctx); err != nil {
		log.Warn().Err(err).Msg("initial fetch incomplete")
	}

	c.banner = tview.NewTextView().SetDynamicColors(true).SetWrap(false)

	for _, name := range pageOrder {
		c.pages.AddPage(pageName(name), c.getPageGrid(name), true, name == pageDashboard)
	}

	c.addFormPages()

	c.current = pageDashboard
	c.renderAll()

	c.app.SetInputCapture(c.handleKeys)

	if err := c.app.SetRoot(c.pages, true).SetFocus(c.pages).Run(); err != nil {
		panic(err)
	}
}

func pageName(name string) string {
	return "page-" + name
}

// getPageGrid assembles one feature page: error banner, shortcut
// header, then the page body.
func (c *Controller) getPageGrid(name string) *tview.Grid {
	c.headers[name] = tview.NewTextView().SetDynamicColors(true).SetWrap(false)

	grid := tview.NewGrid().SetBorders(true).SetRows(1, 3, 0)

	grid.AddItem(c.banner, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.headers[name], 1, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.getBody(name), 2, 0, 1, 1, 0, 0, true)

	return grid
}

func (c *Controller) getBody(name string) tview.Primitive {
	switch name {
	case pageDashboard:
		c.detail[name] = tview.NewTextView().SetDynamicColors(true)

		return c.detail[name]
	case pageBudget:
		c.detail[name] = tview.NewTextView().SetDynamicColors(true)

		grid := tview.NewGrid().SetColumns(0, 0)
		grid.AddItem(c.detail[name], 0, 0, 1, 1, 0, 0, false)
		grid.AddItem(c.getTable(name), 0, 1, 1, 1, 0, 0, true)

		return grid
	case pagePlanner, pageExams:
		c.detail[name] = tview.NewTextView().SetDynamicColors(true)

		grid := tview.NewGrid().SetColumns(0, 0)
		grid.AddItem(c.getTable(name), 0, 0, 1, 1, 0, 0, true)
		grid.AddItem(c.detail[name], 0, 1, 1, 1, 0, 0, false)

		return grid
	default:
		return c.getTable(name)
	}
}

func (c *Controller) getTable(name string) *tview.Table {
	table := tview.NewTable().SetBorders(false)
	table.SetSelectable(true, false)
	table.SetFixed(1, 0)

	if name == pageTodos {
		c.todoContent = &TodoContent{now: time.Now()}
		table.SetContent(c.todoContent)
	}

	table.SetSelectionChangedFunc(func(row, _ int) {
		c.setCurrentRow(name, row)
	})

	table.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape {
			c.app.Stop()
		}
	})

	c.tables[name] = table

	return table
}

func (c *Controller) setCurrentRow(name string, row int) {
	id := c.rowID(name, row)
	c.selected[name] = id

	log.Debug().Str("page", name).Int("row", row).Msgf("setting selection to '%s'", id)

	if name == pagePlanner || name == pageExams {
		c.renderDetail(name)
	}
}

// renderBanner shows the surfaced errors, if any; <c> dismisses them.
func (c *Controller) renderBanner() {
	msgs := c.dash.Errors()
	if len(msgs) == 0 {
		c.banner.SetText("")

		return
	}

	c.banner.SetText(fmt.Sprintf("[red]%s[white]  <c> dismiss", strings.Join(msgs, " | ")))
}

func (c *Controller) handleKeys(evt *tcell.EventKey) *tcell.EventKey {
	key := AsKey(evt)

	if events, ok := c.pageEvents[c.current]; ok {
		if k, ok := events[key]; ok {
			return k.Action(evt)
		}
	}

	if k, ok := c.events[key]; ok {
		return k.Action(evt)
	}

	return evt
}

// showPage switches to a feature page and re-renders it.
func (c *Controller) showPage(name string) {
	c.current = name
	c.pages.SwitchToPage(pageName(name))
	c.app.SetInputCapture(c.handleKeys)
	c.renderAll()
}

// refresh re-fetches everything off the UI goroutine and redraws.
func (c *Controller) refresh() {
	go func() {
		if err := c.dash.RefreshAll(c.ctx); err != nil {
			log.Warn().Err(err).Msg("refresh incomplete")
		}

		c.app.QueueUpdateDraw(c.renderAll)
	}()
}

// run executes a mutation off the UI goroutine and redraws when it
// lands. ErrBusy means a submission is already in flight; the action
// is dropped rather than queued.
func (c *Controller) run(action string, mutation func(context.Context) error) {
	go func() {
		if err := mutation(c.ctx); err != nil {
			log.Warn().Err(err).Msgf("error during %s", action)
		}

		c.app.QueueUpdateDraw(c.renderAll)
	}()
}
