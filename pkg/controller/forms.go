package controller

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"github.com/matt-steen/zenith/pkg/api"
	"github.com/matt-steen/zenith/pkg/dashboard"
	"github.com/matt-steen/zenith/pkg/model"
)

// Form names.
const (
	formNote        = "note-form"
	formTodo        = "todo-form"
	formClass       = "class-form"
	formTransaction = "transaction-form"
	formBudget      = "budget-form"
	formGoal        = "goal-form"
	formTask        = "task-form"
	formProgress    = "progress-form"
	formExam        = "exam-form"
)

var formOrder = []string{
	formNote, formTodo, formClass, formTransaction,
	formBudget, formGoal, formTask, formProgress, formExam,
}

func (c *Controller) initForms() {
	c.forms = map[string]*tview.Form{}

	c.initNoteForm()
	c.initTodoForm()
	c.initClassForm()
	c.initTransactionForm()
	c.initBudgetForm()
	c.initGoalForm()
	c.initTaskForm()
	c.initProgressForm()
	c.initExamForm()

	for _, name := range formOrder {
		form := c.forms[name]
		form.SetBorder(true).SetTitle(" " + name + " ")
		form.AddButton("Cancel", c.closeForm)
	}
}

func (c *Controller) addFormPages() {
	for _, name := range formOrder {
		c.pages.AddPage(pageName(name), c.forms[name], true, false)
	}
}

// formResources maps each form to the collection its submit mutates.
// The budget form is absent: limits are stored locally without a
// server round trip.
var formResources = map[string]string{
	formNote:        dashboard.ResNotes,
	formTodo:        dashboard.ResTodos,
	formClass:       dashboard.ResClasses,
	formTransaction: dashboard.ResTransactions,
	formGoal:        dashboard.ResGoals,
	formTask:        dashboard.ResGoals,
	formProgress:    dashboard.ResGoals,
	formExam:        dashboard.ResExams,
}

// getFormAction builds an action that opens the named form. While a
// change for the form's collection is still in flight the action does
// nothing, so a second submission can't start. Input capture switches
// to form handling so letter shortcuts don't fire while typing.
func (c *Controller) getFormAction(name string) func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		if resource, ok := formResources[name]; ok && c.dash.Busy(resource) {
			log.Debug().Str("form", name).Msg("change still in flight; not opening the form")

			return nil
		}

		c.forms[name].SetFocus(0)
		c.pages.SwitchToPage(pageName(name))
		c.app.SetInputCapture(c.handleFormKeys)

		return nil
	}
}

func (c *Controller) handleFormKeys(evt *tcell.EventKey) *tcell.EventKey {
	if evt.Key() == tcell.KeyEscape {
		c.closeForm()

		return nil
	}

	return evt
}

func (c *Controller) closeForm() {
	c.showPage(c.current)
}

// submit closes the form and runs the mutation in the background.
func (c *Controller) submit(action string, mutation func(context.Context) error) {
	c.closeForm()
	c.run(action, mutation)
}

func (c *Controller) fieldText(name, label string) string {
	field, _ := c.forms[name].GetFormItemByLabel(label).(*tview.InputField)

	return strings.TrimSpace(field.GetText())
}

func (c *Controller) setFieldText(name, label, text string) {
	field, _ := c.forms[name].GetFormItemByLabel(label).(*tview.InputField)
	field.SetText(text)
}

func (c *Controller) dropdownValue(name, label string) string {
	dropdown, _ := c.forms[name].GetFormItemByLabel(label).(*tview.DropDown)
	_, value := dropdown.GetCurrentOption()

	return value
}

func (c *Controller) checkboxValue(name, label string) bool {
	checkbox, _ := c.forms[name].GetFormItemByLabel(label).(*tview.Checkbox)

	return checkbox.IsChecked()
}

func (c *Controller) fieldFloat(name, label string) (float64, bool) {
	text := c.fieldText(name, label)

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		log.Error().Msgf("invalid number '%s' for %s", text, label)

		return 0, false
	}

	return value, true
}

func (c *Controller) clearFields(name string, labels ...string) {
	for _, label := range labels {
		c.setFieldText(name, label, "")
	}
}

func (c *Controller) initNoteForm() {
	c.forms[formNote] = tview.NewForm().
		AddInputField("Title", "", 50, nil, nil).
		AddInputField("Subject", "", 30, nil, nil).
		AddInputField("Tags", "", 50, nil, nil).
		AddInputField("Content", "", 500, nil, nil)

	c.forms[formNote].AddButton("Save", func() {
		input := api.NoteInput{
			Title:   c.fieldText(formNote, "Title"),
			Subject: c.fieldText(formNote, "Subject"),
			Content: c.fieldText(formNote, "Content"),
		}

		if tags := c.fieldText(formNote, "Tags"); tags != "" {
			for _, tag := range strings.Split(tags, ",") {
				input.Tags = append(input.Tags, strings.TrimSpace(tag))
			}
		}

		if input.Title == "" {
			return
		}

		c.clearFields(formNote, "Title", "Subject", "Tags", "Content")

		c.submit("note add", func(ctx context.Context) error {
			return c.dash.AddNote(ctx, input)
		})
	})
}

func (c *Controller) initTodoForm() {
	c.forms[formTodo] = tview.NewForm().
		AddInputField("Title", "", 50, nil, nil).
		AddInputField("Description", "", 200, nil, nil).
		AddDropDown("Priority", []string{model.PriorityHigh, model.PriorityMedium, model.PriorityLow}, 1, nil).
		AddInputField("Category", "", 30, nil, nil).
		AddInputField("Due date (YYYY-MM-DD)", "", 10, nil, nil)

	c.forms[formTodo].AddButton("Save", func() {
		input := api.TodoInput{
			Title:       c.fieldText(formTodo, "Title"),
			Description: c.fieldText(formTodo, "Description"),
			Priority:    c.dropdownValue(formTodo, "Priority"),
			Category:    c.fieldText(formTodo, "Category"),
			DueDate:     c.fieldText(formTodo, "Due date (YYYY-MM-DD)"),
		}

		if input.Title == "" {
			return
		}

		c.clearFields(formTodo, "Title", "Description", "Category", "Due date (YYYY-MM-DD)")

		c.submit("todo add", func(ctx context.Context) error {
			return c.dash.AddTodo(ctx, input)
		})
	})
}

func (c *Controller) initClassForm() {
	c.forms[formClass] = tview.NewForm().
		AddInputField("Subject", "", 30, nil, nil).
		AddInputField("Teacher", "", 30, nil, nil).
		AddDropDown("Day", model.Weekdays(), 0, nil).
		AddInputField("Start (HH:MM)", "", 5, nil, nil).
		AddInputField("End (HH:MM)", "", 5, nil, nil).
		AddInputField("Room", "", 10, nil, nil)

	c.forms[formClass].AddButton("Save", func() {
		input := api.ClassInput{
			Subject:   c.fieldText(formClass, "Subject"),
			Teacher:   c.fieldText(formClass, "Teacher"),
			Day:       c.dropdownValue(formClass, "Day"),
			StartTime: c.fieldText(formClass, "Start (HH:MM)"),
			EndTime:   c.fieldText(formClass, "End (HH:MM)"),
			RoomNo:    c.fieldText(formClass, "Room"),
		}

		if input.Subject == "" {
			return
		}

		c.clearFields(formClass, "Subject", "Teacher", "Start (HH:MM)", "End (HH:MM)", "Room")

		c.submit("class add", func(ctx context.Context) error {
			return c.dash.AddClass(ctx, input)
		})
	})
}

func (c *Controller) initTransactionForm() {
	frequencies := []string{"daily", "weekly", "monthly", "yearly"}

	c.forms[formTransaction] = tview.NewForm().
		AddInputField("Amount", "", 12, nil, nil).
		AddDropDown("Type", []string{model.TypeExpense, model.TypeIncome}, 0, nil).
		AddInputField("Category", "", 30, nil, nil).
		AddInputField("Note", "", 100, nil, nil).
		AddInputField("Date (YYYY-MM-DD)", "", 10, nil, nil).
		AddCheckbox("Recurring", false, nil).
		AddDropDown("Frequency", frequencies, 2, nil)

	c.forms[formTransaction].AddButton("Save", func() {
		amount, ok := c.fieldFloat(formTransaction, "Amount")
		if !ok {
			return
		}

		input := api.TransactionInput{
			Amount:      amount,
			Type:        c.dropdownValue(formTransaction, "Type"),
			Category:    c.fieldText(formTransaction, "Category"),
			Note:        c.fieldText(formTransaction, "Note"),
			Date:        c.fieldText(formTransaction, "Date (YYYY-MM-DD)"),
			IsRecurring: c.checkboxValue(formTransaction, "Recurring"),
		}

		if input.Date == "" {
			input.Date = model.Today(time.Now())
		}

		if input.IsRecurring {
			input.RecurringFrequency = c.dropdownValue(formTransaction, "Frequency")
		}

		if input.Category == "" {
			return
		}

		c.clearFields(formTransaction, "Amount", "Category", "Note", "Date (YYYY-MM-DD)")

		c.submit("transaction add", func(ctx context.Context) error {
			return c.dash.AddTransaction(ctx, input)
		})
	})
}

func (c *Controller) initBudgetForm() {
	c.forms[formBudget] = tview.NewForm().
		AddInputField("Category", "", 30, nil, nil).
		AddInputField("Monthly limit", "", 12, nil, nil).
		AddInputField("Month (YYYY-MM)", "", 7, nil, nil)

	c.forms[formBudget].AddButton("Save", func() {
		limit, ok := c.fieldFloat(formBudget, "Monthly limit")
		if !ok {
			return
		}

		category := c.fieldText(formBudget, "Category")
		if category == "" {
			return
		}

		month := c.fieldText(formBudget, "Month (YYYY-MM)")
		if month == "" {
			month = time.Now().Format("2006-01")
		}

		c.clearFields(formBudget, "Category", "Monthly limit", "Month (YYYY-MM)")

		c.submit("budget limit set", func(ctx context.Context) error {
			return c.dash.SetBudget(ctx, category, limit, month)
		})
	})
}

func (c *Controller) initGoalForm() {
	c.forms[formGoal] = tview.NewForm().
		AddInputField("Title", "", 50, nil, nil).
		AddInputField("Description", "", 200, nil, nil).
		AddInputField("Target date (YYYY-MM-DD)", "", 10, nil, nil)

	c.forms[formGoal].AddButton("Save", func() {
		input := api.GoalInput{
			GoalTitle:   c.fieldText(formGoal, "Title"),
			Description: c.fieldText(formGoal, "Description"),
			Deadline:    c.fieldText(formGoal, "Target date (YYYY-MM-DD)"),
		}

		if input.GoalTitle == "" {
			return
		}

		c.clearFields(formGoal, "Title", "Description", "Target date (YYYY-MM-DD)")

		c.submit("goal add", func(ctx context.Context) error {
			return c.dash.AddGoal(ctx, input)
		})
	})
}

func (c *Controller) initTaskForm() {
	c.forms[formTask] = tview.NewForm().
		AddInputField("Title", "", 50, nil, nil).
		AddInputField("Description", "", 200, nil, nil).
		AddInputField("Due date (YYYY-MM-DD)", "", 10, nil, nil)

	c.forms[formTask].AddButton("Save", func() {
		goalID, _ := splitPlannerID(c.selected[pagePlanner])
		if goalID == "" {
			return
		}

		input := api.TaskInput{
			Title:       c.fieldText(formTask, "Title"),
			Description: c.fieldText(formTask, "Description"),
			DueDate:     c.fieldText(formTask, "Due date (YYYY-MM-DD)"),
		}

		if input.Title == "" {
			return
		}

		c.clearFields(formTask, "Title", "Description", "Due date (YYYY-MM-DD)")

		c.submit("task add", func(ctx context.Context) error {
			return c.dash.AddTask(ctx, goalID, input)
		})
	})
}

func (c *Controller) initProgressForm() {
	c.forms[formProgress] = tview.NewForm().
		AddInputField("Progress (0-100)", "", 5, nil, nil)

	c.forms[formProgress].AddButton("Save", func() {
		goalID, _ := splitPlannerID(c.selected[pagePlanner])
		if goalID == "" {
			return
		}

		progress, ok := c.fieldFloat(formProgress, "Progress (0-100)")
		if !ok || progress < 0 || progress > 100 {
			return
		}

		c.clearFields(formProgress, "Progress (0-100)")

		c.submit("progress set", func(ctx context.Context) error {
			return c.dash.SetGoalProgress(ctx, goalID, &progress)
		})
	})
}

func (c *Controller) initExamForm() {
	c.forms[formExam] = tview.NewForm().
		AddInputField("Subject", "", 30, nil, nil).
		AddInputField("Topic", "", 50, nil, nil)

	c.forms[formExam].AddButton("Generate", func() {
		subject := c.fieldText(formExam, "Subject")
		topic := c.fieldText(formExam, "Topic")

		if subject == "" || topic == "" {
			return
		}

		c.clearFields(formExam, "Subject", "Topic")

		c.submit("exam generate", func(ctx context.Context) error {
			return c.dash.GenerateExam(ctx, subject, topic)
		})
	})
}
