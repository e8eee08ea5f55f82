package controller

import (
	"context"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/matt-steen/zenith/pkg/stats"
)

func (c *Controller) initEvents() {
	c.events = map[tcell.Key]KeyEvent{}
	c.pageEvents = map[string]map[tcell.Key]KeyEvent{}

	c.initShowEvents(c.events)
	c.initGlobalEvents(c.events)
	c.initNoteEvents()
	c.initTodoEvents()
	c.initScheduleEvents()
	c.initBudgetEvents()
	c.initPlannerEvents()
	c.initExamEvents()
}

func (c *Controller) getShowAction(page string) func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.showPage(page)

		return key
	}
}

func (c *Controller) initShowEvents(events map[tcell.Key]KeyEvent) {
	shows := map[tcell.Key]string{
		KeyShiftD: pageDashboard,
		KeyShiftN: pageNotes,
		KeyShiftT: pageTodos,
		KeyShiftS: pageSchedule,
		KeyShiftB: pageBudget,
		KeyShiftP: pagePlanner,
		KeyShiftE: pageExams,
	}

	titles := map[string]string{
		pageDashboard: "Show Dashboard",
		pageNotes:     "Show Notes",
		pageTodos:     "Show Todos",
		pageSchedule:  "Show Schedule",
		pageBudget:    "Show Budget",
		pagePlanner:   "Show Planner",
		pageExams:     "Show Exam Q&A",
	}

	for key, page := range shows {
		events[key] = KeyEvent{
			Description: titles[page],
			Action:      c.getShowAction(page),
		}
	}
}

func (c *Controller) initGlobalEvents(events map[tcell.Key]KeyEvent) {
	events[KeyR] = KeyEvent{
		Description: "Refresh",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.refresh()

			return key
		},
	}

	events[KeyC] = KeyEvent{
		Description: "Dismiss errors",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.dash.DismissErrors()
			c.renderAll()

			return key
		},
	}

	events[KeyQ] = KeyEvent{
		Description: "Exit",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.app.Stop()

			log.Info().Msg("terminating application")

			os.Exit(0)

			return key
		},
	}
}

func (c *Controller) initNoteEvents() {
	c.pageEvents[pageNotes] = map[tcell.Key]KeyEvent{
		KeyA: {Description: "Add note", Action: c.getFormAction(formNote)},
		KeyV: {
			Description: "Archive/unarchive",
			Action: c.getSelectionAction(pageNotes, "note status toggle", func(ctx context.Context, id string) error {
				return c.dash.ToggleNoteStatus(ctx, id)
			}),
		},
		KeyX: {
			Description: "Delete note",
			Action: c.getSelectionAction(pageNotes, "note delete", func(ctx context.Context, id string) error {
				return c.dash.DeleteNote(ctx, id)
			}),
		},
	}
}

func (c *Controller) initTodoEvents() {
	c.pageEvents[pageTodos] = map[tcell.Key]KeyEvent{
		KeyA: {Description: "Add todo", Action: c.getFormAction(formTodo)},
		KeySpace: {
			Description: "Advance status",
			Action: c.getSelectionAction(pageTodos, "todo status advance", func(ctx context.Context, id string) error {
				return c.dash.AdvanceTodo(ctx, id)
			}),
		},
		KeyS: {
			Description: "Cycle sort",
			Action: func(key *tcell.EventKey) *tcell.EventKey {
				switch c.todoSort {
				case stats.SortCreated:
					c.todoSort = stats.SortPriority
				case stats.SortPriority:
					c.todoSort = stats.SortDueDate
				default:
					c.todoSort = stats.SortCreated
				}

				c.renderAll()

				return key
			},
		},
		KeyX: {
			Description: "Delete todo",
			Action: c.getSelectionAction(pageTodos, "todo delete", func(ctx context.Context, id string) error {
				return c.dash.DeleteTodo(ctx, id)
			}),
		},
	}
}

func (c *Controller) initScheduleEvents() {
	c.pageEvents[pageSchedule] = map[tcell.Key]KeyEvent{
		KeyA: {Description: "Add class", Action: c.getFormAction(formClass)},
		KeyX: {
			Description: "Delete class",
			Action: c.getSelectionAction(pageSchedule, "class delete", func(ctx context.Context, id string) error {
				return c.dash.DeleteClass(ctx, id)
			}),
		},
	}
}

func (c *Controller) initBudgetEvents() {
	c.pageEvents[pageBudget] = map[tcell.Key]KeyEvent{
		KeyA: {Description: "Add transaction", Action: c.getFormAction(formTransaction)},
		KeyL: {Description: "Set category limit", Action: c.getFormAction(formBudget)},
		KeyX: {
			Description: "Delete transaction",
			Action: c.getSelectionAction(pageBudget, "transaction delete", func(ctx context.Context, id string) error {
				return c.dash.DeleteTransaction(ctx, id)
			}),
		},
	}
}

func (c *Controller) initPlannerEvents() {
	c.pageEvents[pagePlanner] = map[tcell.Key]KeyEvent{
		KeyA: {Description: "Add goal", Action: c.getFormAction(formGoal)},
		KeyT: {Description: "Add task", Action: c.getFormAction(formTask)},
		KeyU: {Description: "Set progress", Action: c.getFormAction(formProgress)},
		KeyK: {
			Description: "Clear progress override",
			Action: c.getSelectionAction(pagePlanner, "progress clear", func(ctx context.Context, id string) error {
				goalID, taskID := splitPlannerID(id)
				if taskID != "" {
					return nil
				}

				return c.dash.SetGoalProgress(ctx, goalID, nil)
			}),
		},
		KeySpace: {
			Description: "Toggle task",
			Action: c.getSelectionAction(pagePlanner, "task toggle", func(ctx context.Context, id string) error {
				goalID, taskID := splitPlannerID(id)
				if taskID == "" {
					return nil
				}

				return c.dash.ToggleTask(ctx, goalID, taskID)
			}),
		},
		KeyX: {
			Description: "Delete goal/task",
			Action: c.getSelectionAction(pagePlanner, "planner delete", func(ctx context.Context, id string) error {
				goalID, taskID := splitPlannerID(id)
				if taskID != "" {
					return c.dash.DeleteTask(ctx, goalID, taskID)
				}

				return c.dash.DeleteGoal(ctx, goalID)
			}),
		},
	}
}

func (c *Controller) initExamEvents() {
	c.pageEvents[pageExams] = map[tcell.Key]KeyEvent{
		KeyG: {Description: "Generate Q&A", Action: c.getFormAction(formExam)},
	}
}

// getSelectionAction builds an action that applies a mutation to the
// currently selected record, if any.
func (c *Controller) getSelectionAction(page, action string,
	mutation func(context.Context, string) error,
) func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		id := c.selected[page]
		if id == "" {
			return key
		}

		c.run(action, func(ctx context.Context) error {
			return mutation(ctx, id)
		})

		return key
	}
}
