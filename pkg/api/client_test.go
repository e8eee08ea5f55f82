package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/matt-steen/zenith/pkg/api"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newStubClient spins up a gin stub backend and returns a logged-in
// client pointed at it.
func newStubClient(t *testing.T, register func(r *gin.Engine)) *api.Client {
	t.Helper()

	router := gin.New()
	register(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	client := api.NewClient(server.URL)
	client.SetSession("test-token", "user-1")

	return client
}

func TestListNotesSendsAuthAndUserID(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	client := newStubClient(t, func(r *gin.Engine) {
		r.GET("/notes", func(c *gin.Context) {
			assert.Equal("Bearer test-token", c.GetHeader("Authorization"))
			assert.Equal("user-1", c.Query("userId"))

			c.JSON(http.StatusOK, []api.NoteRecord{{ID: "n1", Title: "kinematics"}})
		})
	})

	notes, err := client.ListNotes(context.Background())
	assert.Nil(err)
	assert.Len(notes, 1)
	assert.Equal("n1", notes[0].ID)
}

func TestListNotesNonArrayCoercedToEmpty(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	client := newStubClient(t, func(r *gin.Engine) {
		r.GET("/notes", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "no notes found"})
		})
	})

	notes, err := client.ListNotes(context.Background())
	assert.Nil(err)
	assert.NotNil(notes)
	assert.Empty(notes)
}

func TestListNotesNullCoercedToEmpty(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	client := newStubClient(t, func(r *gin.Engine) {
		r.GET("/notes", func(c *gin.Context) {
			c.Data(http.StatusOK, "application/json", []byte("null"))
		})
	})

	notes, err := client.ListNotes(context.Background())
	assert.Nil(err)
	assert.NotNil(notes)
	assert.Empty(notes)
}

func TestErrorCarriesServerMessage(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	client := newStubClient(t, func(r *gin.Engine) {
		r.GET("/todo", func(c *gin.Context) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "token expired"})
		})
	})

	_, err := client.ListTodos(context.Background())
	assert.NotNil(err)

	apiErr := &api.Error{}
	assert.ErrorAs(err, &apiErr)
	assert.Equal("todo", apiErr.Resource)
	assert.Equal(http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal("token expired", apiErr.Message)
}

func TestListIsNoOpWhenLoggedOut(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	// the base URL is unreachable; a request would fail loudly
	client := api.NewClient("http://127.0.0.1:1")

	notes, err := client.ListNotes(context.Background())
	assert.Nil(err)
	assert.Empty(notes)

	goals, err := client.ListGoals(context.Background())
	assert.Nil(err)
	assert.Empty(goals)
}

func TestCreateTransactionInjectsUserID(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	client := newStubClient(t, func(r *gin.Engine) {
		r.POST("/budget", func(c *gin.Context) {
			var in api.TransactionInput

			assert.Nil(c.BindJSON(&in))
			assert.Equal("user-1", in.UserID)
			assert.InDelta(15.50, in.Amount, 0.001)

			c.JSON(http.StatusCreated, gin.H{"success": true})
		})
	})

	err := client.CreateTransaction(context.Background(), api.TransactionInput{
		Amount:   15.50,
		Type:     "expense",
		Category: "food",
		Date:     "2026-03-02",
	})
	assert.Nil(err)
}

func TestSetTaskCompletedPayload(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	client := newStubClient(t, func(r *gin.Engine) {
		r.PATCH("/study-planner/:id", func(c *gin.Context) {
			var payload map[string]interface{}

			assert.Nil(c.BindJSON(&payload))
			assert.Equal("g1", c.Param("id"))
			assert.Equal("t1", payload["taskId"])
			assert.Equal(true, payload["isCompleted"])

			c.JSON(http.StatusOK, gin.H{"success": true})
		})
	})

	assert.Nil(client.SetTaskCompleted(context.Background(), "g1", "t1", true))
}

func TestSetGoalProgressClearsWithNull(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	client := newStubClient(t, func(r *gin.Engine) {
		r.PATCH("/study-planner/:id", func(c *gin.Context) {
			var payload map[string]interface{}

			assert.Nil(c.BindJSON(&payload))

			value, present := payload["progress"]
			assert.True(present)
			assert.Nil(value)

			c.JSON(http.StatusOK, gin.H{"success": true})
		})
	})

	assert.Nil(client.SetGoalProgress(context.Background(), "g1", nil))
}

func TestDeleteGoalTaskSendsTaskIDInBody(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	client := newStubClient(t, func(r *gin.Engine) {
		r.DELETE("/study-planner/:id", func(c *gin.Context) {
			var payload map[string]string

			assert.Nil(c.BindJSON(&payload))
			assert.Equal("t1", payload["taskId"])

			c.JSON(http.StatusOK, gin.H{"success": true})
		})
	})

	assert.Nil(client.DeleteGoalTask(context.Background(), "g1", "t1"))
}

func TestLogin(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	client := newStubClient(t, func(r *gin.Engine) {
		r.POST("/user/login", func(c *gin.Context) {
			var creds map[string]string

			assert.Nil(c.BindJSON(&creds))
			assert.Equal("amy@example.com", creds["email"])

			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"token":   "issued-token",
				"userId":  "user-9",
				"user":    gin.H{"_id": "user-9", "name": "Amy", "email": "amy@example.com"},
			})
		})
	})

	result, err := client.Login(context.Background(), "amy@example.com", "hunter2")
	assert.Nil(err)
	assert.Equal("issued-token", result.Token)
	assert.Equal("user-9", result.UserID)
	assert.Equal("Amy", result.User.Name)
}

func TestLoginRejected(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	client := newStubClient(t, func(r *gin.Engine) {
		r.POST("/user/login", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": false})
		})
	})

	result, err := client.Login(context.Background(), "amy@example.com", "wrong")
	assert.Nil(result)
	assert.NotNil(err)
}

func TestGenerateExam(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	client := newStubClient(t, func(r *gin.Engine) {
		r.POST("/exam-qa", func(c *gin.Context) {
			c.JSON(http.StatusCreated, api.ExamRecord{
				ID:      "e1",
				Subject: "physics",
				Topic:   "optics",
				Questions: []api.QuestionRecord{
					{ID: "q1", Question: "What is refraction?", Answer: "Bending of light."},
				},
			})
		})
	})

	exam, err := client.GenerateExam(context.Background(), "physics", "optics")
	assert.Nil(err)
	assert.Equal("e1", exam.ID)
	assert.Len(exam.Questions, 1)
}
