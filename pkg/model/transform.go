package model

import "github.com/matt-steen/zenith/pkg/api"

// The transforms below are pure: one wire record in, one view record
// out, missing optionals defaulted, never an error.

// NoteFromRecord maps a wire note to its view shape.
func NoteFromRecord(r api.NoteRecord) Note {
	status := r.Status
	if status == "" {
		status = NoteActive
	}

	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}

	return Note{
		ID:        r.ID,
		Title:     r.Title,
		Content:   r.Content,
		Subject:   r.Subject,
		Tags:      tags,
		Status:    status,
		CreatedAt: ParseTimestamp(r.CreatedAt),
		UpdatedAt: ParseTimestamp(r.UpdatedAt),
	}
}

// NotesFromRecords maps a wire note collection.
func NotesFromRecords(rs []api.NoteRecord) []Note {
	out := make([]Note, 0, len(rs))
	for _, r := range rs {
		out = append(out, NoteFromRecord(r))
	}

	return out
}

// TodoFromRecord maps a wire todo to its view shape.
func TodoFromRecord(r api.TodoRecord) TodoItem {
	status := r.Status
	if status == "" {
		status = TodoPending
	}

	priority := r.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	return TodoItem{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    priority,
		Category:    r.Category,
		DueDate:     NormalizeDate(r.DueDate),
		Status:      status,
		CreatedAt:   ParseTimestamp(r.CreatedAt),
	}
}

// TodosFromRecords maps a wire todo collection.
func TodosFromRecords(rs []api.TodoRecord) []TodoItem {
	out := make([]TodoItem, 0, len(rs))
	for _, r := range rs {
		out = append(out, TodoFromRecord(r))
	}

	return out
}

// ClassFromRecord maps a wire schedule entry to its view shape.
// Start and end times stay raw HH:MM strings.
func ClassFromRecord(r api.ClassRecord) ClassEntry {
	return ClassEntry{
		ID:         r.ID,
		Subject:    r.Subject,
		Teacher:    r.Teacher,
		Day:        r.Day,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		RoomNumber: r.RoomNo,
		CreatedAt:  ParseTimestamp(r.CreatedAt),
	}
}

// ClassesFromRecords maps a wire schedule collection.
func ClassesFromRecords(rs []api.ClassRecord) []ClassEntry {
	out := make([]ClassEntry, 0, len(rs))
	for _, r := range rs {
		out = append(out, ClassFromRecord(r))
	}

	return out
}

// TransactionFromRecord maps a wire transaction to its view shape.
func TransactionFromRecord(r api.TransactionRecord) Transaction {
	return Transaction{
		ID:                 r.ID,
		Amount:             r.Amount,
		Type:               r.Type,
		Category:           r.Category,
		Note:               r.Note,
		Date:               NormalizeDate(r.Date),
		IsRecurring:        r.IsRecurring,
		RecurringFrequency: r.RecurringFrequency,
		CreatedAt:          ParseTimestamp(r.CreatedAt),
	}
}

// TransactionsFromRecords maps a wire transaction collection.
func TransactionsFromRecords(rs []api.TransactionRecord) []Transaction {
	out := make([]Transaction, 0, len(rs))
	for _, r := range rs {
		out = append(out, TransactionFromRecord(r))
	}

	return out
}

// TaskFromRecord maps a wire task to its view shape.
func TaskFromRecord(r api.TaskRecord) Task {
	return Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.IsCompleted,
		DueDate:     NormalizeDate(r.DueDate),
	}
}

// GoalFromRecord maps a wire study goal to its view shape. The server
// field goalTitle becomes Title, deadline becomes TargetDate, and a
// progress value, when present, is kept as the manual override.
func GoalFromRecord(r api.GoalRecord) StudyGoal {
	tasks := make([]Task, 0, len(r.Tasks))
	for _, t := range r.Tasks {
		tasks = append(tasks, TaskFromRecord(t))
	}

	var progress *float64
	if r.Progress != nil {
		v := *r.Progress
		progress = &v
	}

	return StudyGoal{
		ID:          r.ID,
		Title:       r.GoalTitle,
		Description: r.Description,
		Tasks:       tasks,
		CreatedAt:   NormalizeDate(r.CreatedAt),
		TargetDate:  NormalizeDate(r.Deadline),
		Progress:    progress,
	}
}

// GoalsFromRecords maps a wire goal collection.
func GoalsFromRecords(rs []api.GoalRecord) []StudyGoal {
	out := make([]StudyGoal, 0, len(rs))
	for _, r := range rs {
		out = append(out, GoalFromRecord(r))
	}

	return out
}

// ExamFromRecord maps a wire exam set to its view shape.
func ExamFromRecord(r api.ExamRecord) ExamSet {
	questions := make([]Question, 0, len(r.Questions))
	for _, q := range r.Questions {
		questions = append(questions, Question{ID: q.ID, Question: q.Question, Answer: q.Answer})
	}

	return ExamSet{
		ID:        r.ID,
		Subject:   r.Subject,
		Topic:     r.Topic,
		Questions: questions,
		CreatedAt: ParseTimestamp(r.CreatedAt),
	}
}

// ExamsFromRecords maps a wire exam collection.
func ExamsFromRecords(rs []api.ExamRecord) []ExamSet {
	out := make([]ExamSet, 0, len(rs))
	for _, r := range rs {
		out = append(out, ExamFromRecord(r))
	}

	return out
}
