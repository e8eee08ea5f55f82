package dashboard_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/matt-steen/zenith/pkg/api"
	"github.com/matt-steen/zenith/pkg/cache"
	"github.com/matt-steen/zenith/pkg/dashboard"
	"github.com/matt-steen/zenith/pkg/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubBackend is a mutable in-memory backend for the routes the
// dashboard touches. Routes not overridden serve empty collections.
type stubBackend struct {
	mu    sync.Mutex
	notes []api.NoteRecord
	goals []api.GoalRecord
	txns  []api.TransactionRecord

	// listNotes replaces the default GET /notes handler
	listNotes gin.HandlerFunc
	// summary replaces the default failing /budget/summary handler
	summary gin.HandlerFunc
}

func (s *stubBackend) router(override func(r *gin.Engine)) *gin.Engine {
	r := gin.New()

	r.GET("/notes", func(c *gin.Context) {
		if s.listNotes != nil {
			s.listNotes(c)

			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		c.JSON(http.StatusOK, append([]api.NoteRecord{}, s.notes...))
	})
	r.GET("/todo", func(c *gin.Context) { c.JSON(http.StatusOK, []api.TodoRecord{}) })
	r.GET("/class-schedule", func(c *gin.Context) { c.JSON(http.StatusOK, []api.ClassRecord{}) })
	r.GET("/study-planner", func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		c.JSON(http.StatusOK, append([]api.GoalRecord{}, s.goals...))
	})
	r.GET("/budget", func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		c.JSON(http.StatusOK, append([]api.TransactionRecord{}, s.txns...))
	})
	r.GET("/exam-qa", func(c *gin.Context) { c.JSON(http.StatusOK, []api.ExamRecord{}) })
	r.GET("/budget/summary", func(c *gin.Context) {
		if s.summary != nil {
			s.summary(c)

			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"message": "summary unavailable"})
	})

	if override != nil {
		override(r)
	}

	return r
}

func newTestDashboard(t *testing.T, backend *stubBackend, override func(r *gin.Engine)) *dashboard.Dashboard {
	t.Helper()

	server := httptest.NewServer(backend.router(override))
	t.Cleanup(server.Close)

	client := api.NewClient(server.URL)
	client.SetSession("test-token", "user-1")

	return dashboard.New(context.Background(), client, nil, 1000)
}

func TestRefreshAll(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	backend := &stubBackend{
		notes: []api.NoteRecord{{ID: "n1", Title: "kinematics"}},
		goals: []api.GoalRecord{{ID: "g1", GoalTitle: "pass finals"}},
		txns: []api.TransactionRecord{
			{ID: "t1", Amount: 20, Type: "expense", Category: "food", Date: "2026-03-02"},
		},
	}

	dash := newTestDashboard(t, backend, nil)

	assert.Nil(dash.RefreshAll(context.Background()))

	assert.Len(dash.Notes(), 1)
	assert.Len(dash.Goals(), 1)
	assert.Equal("pass finals", dash.Goals()[0].Title)
	assert.Len(dash.Transactions(), 1)

	// the summary endpoint fails, so figures come from the local recompute
	assert.InDelta(20.0, dash.Summary().TotalExpenses, 0.001)
	assert.Empty(dash.Errors())
}

func TestRefreshSummaryPrefersServerFigures(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	backend := &stubBackend{
		summary: func(c *gin.Context) {
			c.JSON(http.StatusOK, api.SummaryRecord{
				TotalIncome:       500,
				TotalExpenses:     120,
				Balance:           380,
				CategoryBreakdown: map[string]float64{"food": 120},
			})
		},
	}

	dash := newTestDashboard(t, backend, nil)

	assert.Nil(dash.RefreshAll(context.Background()))

	summary := dash.Summary()
	assert.InDelta(500.0, summary.TotalIncome, 0.001)
	assert.InDelta(380.0, summary.Balance, 0.001)
	assert.InDelta(120.0, summary.CategoryBreakdown["food"], 0.001)
}

func TestRefreshSummaryMalformedFallsBackLocal(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	backend := &stubBackend{
		txns: []api.TransactionRecord{
			{ID: "t1", Amount: 45.50, Type: "expense", Category: "books", Date: "2026-03-02"},
		},
		// a summary without a breakdown counts as malformed
		summary: func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"totalIncome": 999})
		},
	}

	dash := newTestDashboard(t, backend, nil)

	assert.Nil(dash.RefreshAll(context.Background()))
	assert.InDelta(45.50, dash.Summary().TotalExpenses, 0.001)
	assert.Zero(dash.Summary().TotalIncome)
}

func TestAddNoteReconciles(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	backend := &stubBackend{}

	dash := newTestDashboard(t, backend, func(r *gin.Engine) {
		r.POST("/notes", func(c *gin.Context) {
			var in api.NoteInput
			assert.Nil(c.BindJSON(&in))

			backend.mu.Lock()
			backend.notes = append(backend.notes, api.NoteRecord{
				ID: "n-server", Title: in.Title, UserID: in.UserID,
			})
			backend.mu.Unlock()

			c.JSON(http.StatusCreated, gin.H{"success": true})
		})
	})

	err := dash.AddNote(context.Background(), api.NoteInput{Title: "optics"})
	assert.Nil(err)

	notes := dash.Notes()
	assert.Len(notes, 1)

	// the optimistic local id is gone; the server's id replaced it
	assert.Equal("n-server", notes[0].ID)
	assert.Empty(dash.Errors())
	assert.False(dash.Busy(dashboard.ResNotes))
}

func TestAddNoteFailureRollsBack(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	backend := &stubBackend{
		notes: []api.NoteRecord{{ID: "n1", Title: "kinematics"}},
	}

	dash := newTestDashboard(t, backend, func(r *gin.Engine) {
		r.POST("/notes", func(c *gin.Context) {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "insert failed"})
		})
	})

	assert.Nil(dash.RefreshNotes(context.Background()))

	err := dash.AddNote(context.Background(), api.NoteInput{Title: "optics"})
	assert.NotNil(err)

	// the re-fetch rolled the optimistic append back
	notes := dash.Notes()
	assert.Len(notes, 1)
	assert.Equal("n1", notes[0].ID)

	msgs := dash.Errors()
	assert.Len(msgs, 1)
	assert.Contains(msgs[0], "insert failed")

	// the collection is idle again; a retry is allowed
	assert.False(dash.Busy(dashboard.ResNotes))

	dash.DismissErrors()
	assert.Empty(dash.Errors())
}

func TestMutationWhileInFlightIsRejected(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	entered := make(chan struct{})
	release := make(chan struct{})

	backend := &stubBackend{}

	dash := newTestDashboard(t, backend, func(r *gin.Engine) {
		r.POST("/notes", func(c *gin.Context) {
			close(entered)
			<-release
			c.JSON(http.StatusCreated, gin.H{"success": true})
		})
	})

	done := make(chan error, 1)

	go func() {
		done <- dash.AddNote(context.Background(), api.NoteInput{Title: "first"})
	}()

	<-entered

	err := dash.AddNote(context.Background(), api.NoteInput{Title: "second"})
	assert.ErrorIs(err, dashboard.ErrBusy)

	close(release)
	assert.Nil(<-done)
}

func TestStaleRefreshResponseDiscarded(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	entered := make(chan struct{})
	release := make(chan struct{})

	backend := &stubBackend{}

	var requests int

	backend.listNotes = func(c *gin.Context) {
		backend.mu.Lock()
		requests++
		first := requests == 1
		backend.mu.Unlock()

		if first {
			close(entered)
			<-release
			c.JSON(http.StatusOK, []api.NoteRecord{{ID: "n-old", Title: "stale"}})

			return
		}

		c.JSON(http.StatusOK, []api.NoteRecord{{ID: "n-new", Title: "fresh"}})
	}

	dash := newTestDashboard(t, backend, nil)

	done := make(chan error, 1)

	go func() {
		done <- dash.RefreshNotes(context.Background())
	}()

	<-entered

	// a newer refresh completes while the first is still waiting
	assert.Nil(dash.RefreshNotes(context.Background()))
	assert.Equal("n-new", dash.Notes()[0].ID)

	close(release)
	assert.Nil(<-done)

	// the older response arrived last; it must not overwrite the newer one
	notes := dash.Notes()
	assert.Len(notes, 1)
	assert.Equal("n-new", notes[0].ID)
}

func TestDataWhileTogglingTask(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	backend := &stubBackend{
		goals: []api.GoalRecord{{
			ID:        "g1",
			GoalTitle: "pass finals",
			Tasks:     []api.TaskRecord{{ID: "t1", Title: "mock exam"}},
		}},
	}

	dash := newTestDashboard(t, backend, func(r *gin.Engine) {
		r.PATCH("/study-planner/:id", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true})
		})
	})

	assert.Nil(dash.RefreshGoals(context.Background()))

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		for i := 0; i < 50; i++ {
			_ = dash.ToggleTask(context.Background(), "g1", "t1")
		}
	}()

	now := time.Now()
	for i := 0; i < 50; i++ {
		dash.Data(now)
		dash.Goals()
	}

	wg.Wait()
}

func TestGoalsCopyIsDetached(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	backend := &stubBackend{
		goals: []api.GoalRecord{{
			ID:        "g1",
			GoalTitle: "pass finals",
			Tasks:     []api.TaskRecord{{ID: "t1", Title: "mock exam"}},
		}},
	}

	dash := newTestDashboard(t, backend, func(r *gin.Engine) {
		r.PATCH("/study-planner/:id", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true})
		})
	})

	assert.Nil(dash.RefreshGoals(context.Background()))

	goals := dash.Goals()
	assert.False(goals[0].Tasks[0].Completed)

	assert.Nil(dash.ToggleTask(context.Background(), "g1", "t1"))

	// the earlier copy does not see the in-place toggle
	assert.False(goals[0].Tasks[0].Completed)
	assert.True(dash.Goals()[0].Tasks[0].Completed)
}

func TestToggleTaskErrorRefetchesAndSurfaces(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	backend := &stubBackend{
		goals: []api.GoalRecord{{
			ID:        "g1",
			GoalTitle: "pass finals",
			Tasks:     []api.TaskRecord{{ID: "t1", Title: "mock exam"}},
		}},
	}

	dash := newTestDashboard(t, backend, func(r *gin.Engine) {
		r.PATCH("/study-planner/:id", func(c *gin.Context) {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "update failed"})
		})
	})

	assert.Nil(dash.RefreshGoals(context.Background()))

	err := dash.ToggleTask(context.Background(), "g1", "t1")
	assert.NotNil(err)

	// the re-fetch restored the server's state
	goals := dash.Goals()
	assert.False(goals[0].Tasks[0].Completed)

	msgs := dash.Errors()
	assert.Len(msgs, 1)
	assert.Contains(msgs[0], "update failed")
}

func TestGenerateExamPrepends(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	backend := &stubBackend{}

	dash := newTestDashboard(t, backend, func(r *gin.Engine) {
		r.POST("/exam-qa", func(c *gin.Context) {
			c.JSON(http.StatusCreated, api.ExamRecord{
				ID: "e2", Subject: "physics", Topic: "optics",
				Questions: []api.QuestionRecord{{ID: "q1", Question: "Q", Answer: "A"}},
			})
		})
	})

	assert.Nil(dash.GenerateExam(context.Background(), "physics", "optics"))

	exams := dash.Exams()
	assert.Len(exams, 1)
	assert.Equal("e2", exams[0].ID)
	assert.False(dash.Busy(dashboard.ResExams))
}

func TestOfflineFallsBackToSnapshot(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	ctx := context.Background()
	cacheFile := filepath.Join(t.TempDir(), "cache.sqlite")

	snapshots, err := cache.New(ctx, cacheFile)
	assert.Nil(err)

	backend := &stubBackend{
		notes: []api.NoteRecord{{ID: "n1", Title: "kinematics"}},
	}

	server := httptest.NewServer(backend.router(nil))

	client := api.NewClient(server.URL)
	client.SetSession("test-token", "user-1")

	dash := dashboard.New(ctx, client, snapshots, 1000)
	assert.Nil(dash.RefreshAll(ctx))
	assert.Len(dash.Notes(), 1)

	// the backend goes away; a fresh dashboard must render the snapshot
	server.Close()

	offline := dashboard.New(ctx, client, snapshots, 1000)

	err = offline.RefreshAll(ctx)
	assert.NotNil(err)

	notes := offline.Notes()
	assert.Len(notes, 1)
	assert.Equal("n1", notes[0].ID)
}

func TestSetBudgetDerivesAlertsAndPersists(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	ctx := context.Background()
	cacheFile := filepath.Join(t.TempDir(), "cache.sqlite")

	snapshots, err := cache.New(ctx, cacheFile)
	assert.Nil(err)

	backend := &stubBackend{
		txns: []api.TransactionRecord{
			{ID: "t1", Amount: 20.50, Type: "expense", Category: "food", Date: "2026-03-02"},
		},
	}

	server := httptest.NewServer(backend.router(nil))
	t.Cleanup(server.Close)

	client := api.NewClient(server.URL)
	client.SetSession("test-token", "user-1")

	dash := dashboard.New(ctx, client, snapshots, 1000)
	assert.Nil(dash.RefreshAll(ctx))

	assert.Nil(dash.SetBudget(ctx, "food", 20, "2026-03"))

	alerts := dash.Alerts()
	assert.Len(alerts, 1)
	assert.Equal("Budget exceeded for food: $20.50 / $20.00", alerts[0])

	// saving the same category and month again replaces the row
	assert.Nil(dash.SetBudget(ctx, "food", 30, "2026-03"))
	assert.Len(dash.Budgets(), 1)
	assert.InDelta(30.0, dash.Budgets()[0].Limit, 0.001)
	assert.Empty(dash.Alerts())

	// a fresh dashboard restores the stored limit
	reloaded := dashboard.New(ctx, client, snapshots, 1000)
	assert.Len(reloaded.Budgets(), 1)
	assert.InDelta(30.0, reloaded.Budgets()[0].Limit, 0.001)
}

func TestRemoveBudget(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	backend := &stubBackend{}
	dash := newTestDashboard(t, backend, nil)

	assert.Nil(dash.SetBudget(context.Background(), "food", 30, "2026-03"))

	id := dash.Budgets()[0].ID
	assert.Nil(dash.RemoveBudget(context.Background(), id))
	assert.Empty(dash.Budgets())
}

func TestAddTransactionRecomputesSummary(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	backend := &stubBackend{}

	dash := newTestDashboard(t, backend, func(r *gin.Engine) {
		r.POST("/budget", func(c *gin.Context) {
			var in api.TransactionInput
			assert.Nil(c.BindJSON(&in))

			backend.mu.Lock()
			backend.txns = append(backend.txns, api.TransactionRecord{
				ID: "t-server", Amount: in.Amount, Type: in.Type, Category: in.Category, Date: in.Date,
			})
			backend.mu.Unlock()

			c.JSON(http.StatusCreated, gin.H{"success": true})
		})
	})

	err := dash.AddTransaction(context.Background(), api.TransactionInput{
		Amount: 25, Type: model.TypeExpense, Category: "books", Date: "2026-03-04",
	})
	assert.Nil(err)

	assert.Len(dash.Transactions(), 1)
	assert.InDelta(25.0, dash.Summary().TotalExpenses, 0.001)
	assert.InDelta(25.0, dash.Summary().CategoryBreakdown["books"], 0.001)
}
