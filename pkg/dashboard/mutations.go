package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matt-steen/zenith/pkg/api"
	"github.com/matt-steen/zenith/pkg/model"
	"github.com/matt-steen/zenith/pkg/stats"
)

// mutate runs one optimistic mutation: apply the local change, make
// the server call, then reconcile with an authoritative re-fetch. On
// failure the re-fetch doubles as the rollback and the error is
// surfaced afterwards so the reconcile can't clear it.
func (d *Dashboard) mutate(ctx context.Context, resource string, optimistic func(),
	call func(context.Context) error, refetch func(context.Context) error,
) error {
	d.mu.Lock()

	st := d.state(resource)
	if st.phase != PhaseIdle {
		d.mu.Unlock()

		return ErrBusy
	}

	st.phase = PhaseSubmitting

	if optimistic != nil {
		optimistic()
	}

	d.mu.Unlock()

	if err := call(ctx); err != nil {
		_ = refetch(ctx)

		d.mu.Lock()
		st.phase = PhaseIdle
		st.err = err
		d.mu.Unlock()

		return err
	}

	d.mu.Lock()
	st.phase = PhaseReconciling
	d.mu.Unlock()

	return refetch(ctx)
}

// localID tags optimistic records until the re-fetch replaces them
// with server-assigned ids.
func localID() string {
	return "local-" + uuid.NewString()
}

// AddNote creates a note, showing it immediately.
func (d *Dashboard) AddNote(ctx context.Context, in api.NoteInput) error {
	optimistic := func() {
		d.notes = append(d.notes, model.Note{
			ID:        localID(),
			Title:     in.Title,
			Content:   in.Content,
			Subject:   in.Subject,
			Tags:      in.Tags,
			Status:    model.NoteActive,
			CreatedAt: time.Now(),
		})
	}

	return d.mutate(ctx, ResNotes, optimistic,
		func(ctx context.Context) error { return d.client.CreateNote(ctx, in) },
		d.RefreshNotes)
}

// UpdateNote edits a note's fields.
func (d *Dashboard) UpdateNote(ctx context.Context, id string, in api.NoteInput) error {
	optimistic := func() {
		for i := range d.notes {
			if d.notes[i].ID == id {
				d.notes[i].Title = in.Title
				d.notes[i].Content = in.Content
				d.notes[i].Subject = in.Subject
				d.notes[i].Tags = in.Tags
				d.notes[i].UpdatedAt = time.Now()
			}
		}
	}

	return d.mutate(ctx, ResNotes, optimistic,
		func(ctx context.Context) error { return d.client.UpdateNote(ctx, id, in) },
		d.RefreshNotes)
}

// ToggleNoteStatus flips a note between active and archived.
func (d *Dashboard) ToggleNoteStatus(ctx context.Context, id string) error {
	next := model.NoteArchived

	for _, n := range d.Notes() {
		if n.ID == id && n.Status == model.NoteArchived {
			next = model.NoteActive
		}
	}

	optimistic := func() {
		for i := range d.notes {
			if d.notes[i].ID == id {
				d.notes[i].Status = next
			}
		}
	}

	return d.mutate(ctx, ResNotes, optimistic,
		func(ctx context.Context) error { return d.client.UpdateNoteStatus(ctx, id, next) },
		d.RefreshNotes)
}

// DeleteNote removes a note, hiding it immediately.
func (d *Dashboard) DeleteNote(ctx context.Context, id string) error {
	optimistic := func() { d.notes = removeByID(d.notes, id, func(n model.Note) string { return n.ID }) }

	return d.mutate(ctx, ResNotes, optimistic,
		func(ctx context.Context) error { return d.client.DeleteNote(ctx, id) },
		d.RefreshNotes)
}

// AddTodo creates a todo, showing it immediately.
func (d *Dashboard) AddTodo(ctx context.Context, in api.TodoInput) error {
	optimistic := func() {
		d.todos = append(d.todos, model.TodoItem{
			ID:          localID(),
			Title:       in.Title,
			Description: in.Description,
			Priority:    in.Priority,
			Category:    in.Category,
			DueDate:     model.NormalizeDate(in.DueDate),
			Status:      model.TodoPending,
			CreatedAt:   time.Now(),
		})
	}

	return d.mutate(ctx, ResTodos, optimistic,
		func(ctx context.Context) error { return d.client.CreateTodo(ctx, in) },
		d.RefreshTodos)
}

// UpdateTodo edits a todo's fields.
func (d *Dashboard) UpdateTodo(ctx context.Context, id string, in api.TodoInput) error {
	optimistic := func() {
		for i := range d.todos {
			if d.todos[i].ID == id {
				d.todos[i].Title = in.Title
				d.todos[i].Description = in.Description
				d.todos[i].Priority = in.Priority
				d.todos[i].Category = in.Category
				d.todos[i].DueDate = model.NormalizeDate(in.DueDate)
			}
		}
	}

	return d.mutate(ctx, ResTodos, optimistic,
		func(ctx context.Context) error { return d.client.UpdateTodo(ctx, id, in) },
		d.RefreshTodos)
}

// AdvanceTodo moves a todo to the next status in the cycle.
func (d *Dashboard) AdvanceTodo(ctx context.Context, id string) error {
	next := ""

	for _, t := range d.Todos() {
		if t.ID == id {
			next = stats.NextStatus(t.Status)
		}
	}

	if next == "" {
		return nil
	}

	optimistic := func() {
		for i := range d.todos {
			if d.todos[i].ID == id {
				d.todos[i].Status = next
			}
		}
	}

	return d.mutate(ctx, ResTodos, optimistic,
		func(ctx context.Context) error { return d.client.UpdateTodoStatus(ctx, id, next) },
		d.RefreshTodos)
}

// DeleteTodo removes a todo, hiding it immediately.
func (d *Dashboard) DeleteTodo(ctx context.Context, id string) error {
	optimistic := func() { d.todos = removeByID(d.todos, id, func(t model.TodoItem) string { return t.ID }) }

	return d.mutate(ctx, ResTodos, optimistic,
		func(ctx context.Context) error { return d.client.DeleteTodo(ctx, id) },
		d.RefreshTodos)
}

// AddClass adds a schedule entry, showing it immediately.
func (d *Dashboard) AddClass(ctx context.Context, in api.ClassInput) error {
	optimistic := func() {
		d.classes = append(d.classes, model.ClassEntry{
			ID:         localID(),
			Subject:    in.Subject,
			Teacher:    in.Teacher,
			Day:        in.Day,
			StartTime:  in.StartTime,
			EndTime:    in.EndTime,
			RoomNumber: in.RoomNo,
			CreatedAt:  time.Now(),
		})
	}

	return d.mutate(ctx, ResClasses, optimistic,
		func(ctx context.Context) error { return d.client.CreateClass(ctx, in) },
		d.RefreshClasses)
}

// UpdateClass replaces a schedule entry's fields.
func (d *Dashboard) UpdateClass(ctx context.Context, id string, in api.ClassInput) error {
	optimistic := func() {
		for i := range d.classes {
			if d.classes[i].ID == id {
				d.classes[i].Subject = in.Subject
				d.classes[i].Teacher = in.Teacher
				d.classes[i].Day = in.Day
				d.classes[i].StartTime = in.StartTime
				d.classes[i].EndTime = in.EndTime
				d.classes[i].RoomNumber = in.RoomNo
			}
		}
	}

	return d.mutate(ctx, ResClasses, optimistic,
		func(ctx context.Context) error { return d.client.UpdateClass(ctx, id, in) },
		d.RefreshClasses)
}

// DeleteClass removes a schedule entry, hiding it immediately.
func (d *Dashboard) DeleteClass(ctx context.Context, id string) error {
	optimistic := func() { d.classes = removeByID(d.classes, id, func(c model.ClassEntry) string { return c.ID }) }

	return d.mutate(ctx, ResClasses, optimistic,
		func(ctx context.Context) error { return d.client.DeleteClass(ctx, id) },
		d.RefreshClasses)
}

// AddTransaction records a transaction, showing it immediately, and
// recomputes the summary after reconciliation.
func (d *Dashboard) AddTransaction(ctx context.Context, in api.TransactionInput) error {
	optimistic := func() {
		d.transactions = append(d.transactions, model.Transaction{
			ID:                 localID(),
			Amount:             in.Amount,
			Type:               in.Type,
			Category:           in.Category,
			Note:               in.Note,
			Date:               model.NormalizeDate(in.Date),
			IsRecurring:        in.IsRecurring,
			RecurringFrequency: in.RecurringFrequency,
			CreatedAt:          time.Now(),
		})
		d.installSummary(stats.CalculateSummary(d.transactions, time.Now()))
	}

	return d.mutate(ctx, ResTransactions, optimistic,
		func(ctx context.Context) error { return d.client.CreateTransaction(ctx, in) },
		d.RefreshTransactions)
}

// DeleteTransaction removes a transaction, hiding it immediately.
func (d *Dashboard) DeleteTransaction(ctx context.Context, id string) error {
	optimistic := func() {
		d.transactions = removeByID(d.transactions, id, func(t model.Transaction) string { return t.ID })
		d.installSummary(stats.CalculateSummary(d.transactions, time.Now()))
	}

	return d.mutate(ctx, ResTransactions, optimistic,
		func(ctx context.Context) error { return d.client.DeleteTransaction(ctx, id) },
		d.RefreshTransactions)
}

// AddGoal creates a study goal, showing it immediately.
func (d *Dashboard) AddGoal(ctx context.Context, in api.GoalInput) error {
	optimistic := func() {
		d.goals = append(d.goals, model.StudyGoal{
			ID:          localID(),
			Title:       in.GoalTitle,
			Description: in.Description,
			Tasks:       []model.Task{},
			CreatedAt:   model.Today(time.Now()),
			TargetDate:  model.NormalizeDate(in.Deadline),
		})
	}

	return d.mutate(ctx, ResGoals, optimistic,
		func(ctx context.Context) error { return d.client.CreateGoal(ctx, in) },
		d.RefreshGoals)
}

// AddTask appends a task to a goal, showing it immediately.
func (d *Dashboard) AddTask(ctx context.Context, goalID string, in api.TaskInput) error {
	optimistic := func() {
		for i := range d.goals {
			if d.goals[i].ID == goalID {
				d.goals[i].Tasks = append(d.goals[i].Tasks, model.Task{
					ID:          localID(),
					Title:       in.Title,
					Description: in.Description,
					DueDate:     model.NormalizeDate(in.DueDate),
				})
			}
		}
	}

	return d.mutate(ctx, ResGoals, optimistic,
		func(ctx context.Context) error { return d.client.AddGoalTask(ctx, goalID, in) },
		d.RefreshGoals)
}

// DeleteGoal removes a whole goal, hiding it immediately.
func (d *Dashboard) DeleteGoal(ctx context.Context, goalID string) error {
	optimistic := func() { d.goals = removeByID(d.goals, goalID, func(g model.StudyGoal) string { return g.ID }) }

	return d.mutate(ctx, ResGoals, optimistic,
		func(ctx context.Context) error { return d.client.DeleteGoal(ctx, goalID) },
		d.RefreshGoals)
}

// ToggleTask flips a task's completion in place for responsiveness;
// it only falls back to a re-fetch when the server call fails.
func (d *Dashboard) ToggleTask(ctx context.Context, goalID, taskID string) error {
	completed, found := false, false

	d.mu.Lock()

	for i := range d.goals {
		if d.goals[i].ID != goalID {
			continue
		}

		for j := range d.goals[i].Tasks {
			if d.goals[i].Tasks[j].ID == taskID {
				d.goals[i].Tasks[j].Completed = !d.goals[i].Tasks[j].Completed
				completed = d.goals[i].Tasks[j].Completed
				found = true
			}
		}
	}

	d.mu.Unlock()

	if !found {
		return nil
	}

	if err := d.client.SetTaskCompleted(ctx, goalID, taskID, completed); err != nil {
		_ = d.RefreshGoals(ctx)

		d.mu.Lock()
		d.state(ResGoals).err = err
		d.mu.Unlock()

		return err
	}

	return nil
}

// DeleteTask removes a single task in place; it only falls back to a
// re-fetch when the server call fails.
func (d *Dashboard) DeleteTask(ctx context.Context, goalID, taskID string) error {
	d.mu.Lock()

	for i := range d.goals {
		if d.goals[i].ID == goalID {
			d.goals[i].Tasks = removeByID(d.goals[i].Tasks, taskID, func(t model.Task) string { return t.ID })
		}
	}

	d.mu.Unlock()

	if err := d.client.DeleteGoalTask(ctx, goalID, taskID); err != nil {
		_ = d.RefreshGoals(ctx)

		d.mu.Lock()
		d.state(ResGoals).err = err
		d.mu.Unlock()

		return err
	}

	return nil
}

// SetGoalProgress stores a manual progress override for a goal, or
// clears it when progress is nil.
func (d *Dashboard) SetGoalProgress(ctx context.Context, goalID string, progress *float64) error {
	optimistic := func() {
		for i := range d.goals {
			if d.goals[i].ID == goalID {
				if progress == nil {
					d.goals[i].Progress = nil
				} else {
					v := *progress
					d.goals[i].Progress = &v
				}
			}
		}
	}

	return d.mutate(ctx, ResGoals, optimistic,
		func(ctx context.Context) error { return d.client.SetGoalProgress(ctx, goalID, progress) },
		d.RefreshGoals)
}

// GenerateExam asks the backend for a new Q&A set and prepends the
// result; generated sets are immutable, so no re-fetch is needed.
func (d *Dashboard) GenerateExam(ctx context.Context, subject, topic string) error {
	d.mu.Lock()

	st := d.state(ResExams)
	if st.phase != PhaseIdle {
		d.mu.Unlock()

		return ErrBusy
	}

	st.phase = PhaseSubmitting
	d.mu.Unlock()

	record, err := d.client.GenerateExam(ctx, subject, topic)

	d.mu.Lock()
	defer d.mu.Unlock()

	st.phase = PhaseIdle

	if err != nil {
		st.err = err

		return err
	}

	if record != nil {
		d.exams = append([]model.ExamSet{model.ExamFromRecord(*record)}, d.exams...)
	}

	return nil
}

// SetBudget stores a per-category limit. Limits live client-side only
// (there is no budget-limit endpoint), so this writes straight to the
// local store and re-derives the alerts.
func (d *Dashboard) SetBudget(ctx context.Context, category string, limit float64, month string) error {
	b := model.Budget{
		ID:       uuid.NewString(),
		Category: category,
		Limit:    limit,
		Month:    month,
	}

	d.mu.Lock()

	kept := []model.Budget{}
	replaced := []string{}

	for _, existing := range d.budgets {
		if existing.Category == category && existing.Month == month {
			replaced = append(replaced, existing.ID)
		} else {
			kept = append(kept, existing)
		}
	}

	d.mu.Unlock()

	if d.cache != nil {
		for _, id := range replaced {
			if err := d.cache.DeleteBudget(ctx, id); err != nil {
				return err
			}
		}

		if err := d.cache.SaveBudget(ctx, b); err != nil {
			return err
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.budgets = append(kept, b)
	d.installSummary(d.summary)

	return nil
}

// RemoveBudget deletes a per-category limit.
func (d *Dashboard) RemoveBudget(ctx context.Context, id string) error {
	if d.cache != nil {
		if err := d.cache.DeleteBudget(ctx, id); err != nil {
			return err
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.budgets = removeByID(d.budgets, id, func(b model.Budget) string { return b.ID })
	d.installSummary(d.summary)

	return nil
}

func removeByID[T any](items []T, id string, key func(T) string) []T {
	out := make([]T, 0, len(items))

	for _, item := range items {
		if key(item) != id {
			out = append(out, item)
		}
	}

	return out
}
