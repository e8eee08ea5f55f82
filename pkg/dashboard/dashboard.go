// Package dashboard owns the client's in-memory collections: it
// fetches them through the gateway, transforms them to view models,
// applies optimistic mutations, and reconciles with an authoritative
// re-fetch after every server round trip.
package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/matt-steen/zenith/pkg/api"
	"github.com/matt-steen/zenith/pkg/cache"
	"github.com/matt-steen/zenith/pkg/model"
	"github.com/matt-steen/zenith/pkg/stats"
)

// Resource names, used for lifecycle state, error reporting, and
// cache snapshots.
const (
	ResNotes        = "notes"
	ResTodos        = "todo"
	ResClasses      = "class-schedule"
	ResGoals        = "study-planner"
	ResTransactions = "budget"
	ResExams        = "exam-qa"
)

// resourceOrder fixes the order errors and refreshes run in.
var resourceOrder = []string{
	ResGoals, ResTodos, ResClasses, ResTransactions, ResNotes, ResExams,
}

// Dashboard is the optimistic local state for one user session.
type Dashboard struct {
	mu     sync.Mutex
	client *api.Client
	cache  *cache.Cache

	monthlyBudget float64

	notes        []model.Note
	todos        []model.TodoItem
	classes      []model.ClassEntry
	goals        []model.StudyGoal
	transactions []model.Transaction
	exams        []model.ExamSet

	budgets []model.Budget
	summary stats.Summary
	alerts  []string

	states map[string]*resourceState
}

// New creates a dashboard backed by the given gateway client and
// snapshot cache. The cache may be nil; offline fallback is then
// disabled. Stored budget limits are loaded right away.
func New(ctx context.Context, client *api.Client, snapshots *cache.Cache, monthlyBudget float64) *Dashboard {
	d := &Dashboard{
		client:        client,
		cache:         snapshots,
		monthlyBudget: monthlyBudget,
		budgets:       []model.Budget{},
		summary:       stats.Summary{CategoryBreakdown: map[string]float64{}},
		alerts:        []string{},
		states:        map[string]*resourceState{},
	}

	if snapshots != nil {
		budgets, err := snapshots.LoadBudgets(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("could not load stored budget limits")
		} else {
			d.budgets = budgets
		}
	}

	return d
}

// RefreshAll re-fetches every collection and recomputes the budget
// summary. Failed resources fall back to their cached snapshot so
// data already in hand keeps rendering; their errors are still
// surfaced and joined in the return value.
func (d *Dashboard) RefreshAll(ctx context.Context) error {
	refreshers := map[string]func(context.Context) error{
		ResGoals:        d.RefreshGoals,
		ResTodos:        d.RefreshTodos,
		ResClasses:      d.RefreshClasses,
		ResTransactions: d.RefreshTransactions,
		ResNotes:        d.RefreshNotes,
		ResExams:        d.RefreshExams,
	}

	var errs []error

	for _, resource := range resourceOrder {
		if err := refreshers[resource](ctx); err != nil {
			errs = append(errs, err)
			d.restoreSnapshot(ctx, resource)
		}
	}

	d.RefreshSummary(ctx)

	return errors.Join(errs...)
}

// RefreshNotes re-fetches the authoritative note collection.
func (d *Dashboard) RefreshNotes(ctx context.Context) error {
	seq := d.begin(ResNotes)

	records, err := d.client.ListNotes(ctx)
	if err != nil {
		d.fail(ResNotes, seq, err)

		return err
	}

	notes := model.NotesFromRecords(records)

	if d.apply(ResNotes, seq, func() { d.notes = notes }) {
		d.snapshot(ctx, ResNotes, notes)
	}

	return nil
}

// RefreshTodos re-fetches the authoritative todo collection.
func (d *Dashboard) RefreshTodos(ctx context.Context) error {
	seq := d.begin(ResTodos)

	records, err := d.client.ListTodos(ctx)
	if err != nil {
		d.fail(ResTodos, seq, err)

		return err
	}

	todos := model.TodosFromRecords(records)

	if d.apply(ResTodos, seq, func() { d.todos = todos }) {
		d.snapshot(ctx, ResTodos, todos)
	}

	return nil
}

// RefreshClasses re-fetches the authoritative class schedule.
func (d *Dashboard) RefreshClasses(ctx context.Context) error {
	seq := d.begin(ResClasses)

	records, err := d.client.ListClasses(ctx)
	if err != nil {
		d.fail(ResClasses, seq, err)

		return err
	}

	classes := model.ClassesFromRecords(records)

	if d.apply(ResClasses, seq, func() { d.classes = classes }) {
		d.snapshot(ctx, ResClasses, classes)
	}

	return nil
}

// RefreshGoals re-fetches the authoritative study goal collection.
func (d *Dashboard) RefreshGoals(ctx context.Context) error {
	seq := d.begin(ResGoals)

	records, err := d.client.ListGoals(ctx)
	if err != nil {
		d.fail(ResGoals, seq, err)

		return err
	}

	goals := model.GoalsFromRecords(records)

	if d.apply(ResGoals, seq, func() { d.goals = goals }) {
		d.snapshot(ctx, ResGoals, goals)
	}

	return nil
}

// RefreshTransactions re-fetches the authoritative transaction set
// and recomputes the budget summary from it.
func (d *Dashboard) RefreshTransactions(ctx context.Context) error {
	seq := d.begin(ResTransactions)

	records, err := d.client.ListTransactions(ctx)
	if err != nil {
		d.fail(ResTransactions, seq, err)

		return err
	}

	transactions := model.TransactionsFromRecords(records)

	if d.apply(ResTransactions, seq, func() { d.transactions = transactions }) {
		d.snapshot(ctx, ResTransactions, transactions)
		d.recomputeSummaryLocal()
	}

	return nil
}

// RefreshExams re-fetches the generated exam sets.
func (d *Dashboard) RefreshExams(ctx context.Context) error {
	seq := d.begin(ResExams)

	records, err := d.client.ListExams(ctx)
	if err != nil {
		d.fail(ResExams, seq, err)

		return err
	}

	exams := model.ExamsFromRecords(records)

	if d.apply(ResExams, seq, func() { d.exams = exams }) {
		d.snapshot(ctx, ResExams, exams)
	}

	return nil
}

// RefreshSummary asks the server for the budget summary and falls
// back to recomputing it from the transactions already in hand when
// the secondary read fails or comes back malformed. A summary failure
// never surfaces as an error; data already fetched must keep
// rendering.
func (d *Dashboard) RefreshSummary(ctx context.Context) {
	record, err := d.client.BudgetSummary(ctx)
	if err != nil || record == nil || record.CategoryBreakdown == nil {
		log.Warn().Err(err).Msg("summary fetch failed; recomputing locally")
		d.recomputeSummaryLocal()

		return
	}

	summary := stats.Summary{
		TotalIncome:       record.TotalIncome,
		TotalExpenses:     record.TotalExpenses,
		Balance:           record.Balance,
		CategoryBreakdown: record.CategoryBreakdown,
		MonthlyTrends:     make([]stats.MonthlyTrend, 0, len(record.MonthlyTrends)),
	}

	for _, t := range record.MonthlyTrends {
		summary.MonthlyTrends = append(summary.MonthlyTrends, stats.MonthlyTrend{
			Month: t.Month, Income: t.Income, Expenses: t.Expenses,
		})
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.installSummary(summary)
}

// recomputeSummaryLocal rebuilds the summary and alert list from the
// in-memory transaction set.
func (d *Dashboard) recomputeSummaryLocal() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.installSummary(stats.CalculateSummary(d.transactions, time.Now()))
}

// installSummary stores a summary and re-derives everything hanging
// off it. Callers hold the lock.
func (d *Dashboard) installSummary(summary stats.Summary) {
	d.summary = summary
	d.budgets = stats.FillSpent(d.budgets, summary)
	d.alerts = stats.BudgetAlerts(d.budgets, summary)
}

// snapshot stores a freshly fetched collection in the offline cache.
func (d *Dashboard) snapshot(ctx context.Context, resource string, v interface{}) {
	if d.cache == nil {
		return
	}

	if err := d.cache.PutSnapshot(ctx, resource, v); err != nil {
		log.Warn().Err(err).Str("resource", resource).Msg("could not cache snapshot")
	}
}

// restoreSnapshot loads a collection's last snapshot after a failed
// fetch, keeping the view populated while offline.
func (d *Dashboard) restoreSnapshot(ctx context.Context, resource string) {
	if d.cache == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	var (
		fetchedAt time.Time
		err       error
	)

	switch resource {
	case ResNotes:
		var notes []model.Note
		if fetchedAt, err = d.cache.GetSnapshot(ctx, resource, &notes); err == nil {
			d.notes = notes
		}
	case ResTodos:
		var todos []model.TodoItem
		if fetchedAt, err = d.cache.GetSnapshot(ctx, resource, &todos); err == nil {
			d.todos = todos
		}
	case ResClasses:
		var classes []model.ClassEntry
		if fetchedAt, err = d.cache.GetSnapshot(ctx, resource, &classes); err == nil {
			d.classes = classes
		}
	case ResGoals:
		var goals []model.StudyGoal
		if fetchedAt, err = d.cache.GetSnapshot(ctx, resource, &goals); err == nil {
			d.goals = goals
		}
	case ResTransactions:
		var transactions []model.Transaction
		if fetchedAt, err = d.cache.GetSnapshot(ctx, resource, &transactions); err == nil {
			d.transactions = transactions
		}
	case ResExams:
		var exams []model.ExamSet
		if fetchedAt, err = d.cache.GetSnapshot(ctx, resource, &exams); err == nil {
			d.exams = exams
		}
	}

	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			log.Warn().Err(err).Str("resource", resource).Msg("could not restore snapshot")
		}

		return
	}

	log.Info().Str("resource", resource).Time("fetchedAt", fetchedAt).
		Msg("rendering cached snapshot while offline")
}

// Notes returns a copy of the note collection.
func (d *Dashboard) Notes() []model.Note {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]model.Note{}, d.notes...)
}

// Todos returns a copy of the todo collection.
func (d *Dashboard) Todos() []model.TodoItem {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]model.TodoItem{}, d.todos...)
}

// Classes returns a copy of the class schedule.
func (d *Dashboard) Classes() []model.ClassEntry {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]model.ClassEntry{}, d.classes...)
}

// copyGoals deep-copies the goal collection. A shallow copy would
// still share the Tasks backing arrays, which ToggleTask and
// DeleteTask write in place under the lock.
func copyGoals(goals []model.StudyGoal) []model.StudyGoal {
	out := append([]model.StudyGoal{}, goals...)
	for i := range out {
		out[i].Tasks = append([]model.Task{}, out[i].Tasks...)
	}

	return out
}

// Goals returns a copy of the study goal collection.
func (d *Dashboard) Goals() []model.StudyGoal {
	d.mu.Lock()
	defer d.mu.Unlock()

	return copyGoals(d.goals)
}

// Transactions returns a copy of the transaction set.
func (d *Dashboard) Transactions() []model.Transaction {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]model.Transaction{}, d.transactions...)
}

// Exams returns a copy of the generated exam sets.
func (d *Dashboard) Exams() []model.ExamSet {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]model.ExamSet{}, d.exams...)
}

// Budgets returns a copy of the per-category budget limits with Spent
// filled in.
func (d *Dashboard) Budgets() []model.Budget {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]model.Budget{}, d.budgets...)
}

// Summary returns the current budget summary.
func (d *Dashboard) Summary() stats.Summary {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.summary
}

// Alerts returns the current budget alert list.
func (d *Dashboard) Alerts() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]string{}, d.alerts...)
}

// Data derives the dashboard page from the current collections. The
// derivation runs on copies taken under the lock; the internal slices
// keep changing underneath it otherwise.
func (d *Dashboard) Data(now time.Time) stats.DashboardData {
	d.mu.Lock()
	collections := stats.Collections{
		Goals:        copyGoals(d.goals),
		Todos:        append([]model.TodoItem{}, d.todos...),
		Classes:      append([]model.ClassEntry{}, d.classes...),
		Transactions: append([]model.Transaction{}, d.transactions...),
		Notes:        append([]model.Note{}, d.notes...),
	}
	budget := d.monthlyBudget
	d.mu.Unlock()

	return stats.BuildDashboard(collections, budget, now)
}
