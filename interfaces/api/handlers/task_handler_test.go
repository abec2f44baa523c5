package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskly/domain/dto"
)

func createTask(t *testing.T, app *fiber.App, token, title string) dto.TaskResponse {
	t.Helper()

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/tasks/", token, fiber.Map{"title": title})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var task dto.TaskResponse
	require.NoError(t, json.Unmarshal(env.Data, &task))
	return task
}

func TestTaskRoutesRequireAuth(t *testing.T) {
	app := newTestApp(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/tasks/"},
		{http.MethodPost, "/api/v1/tasks/"},
		{http.MethodGet, "/api/v1/tasks/stats"},
		{http.MethodGet, "/api/v1/tasks/completed"},
		{http.MethodGet, "/api/v1/tasks/pending"},
	}

	for _, p := range paths {
		resp, _ := doJSON(t, app, p.method, p.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", p.method, p.path)
	}
}

func TestTaskCRUD(t *testing.T) {
	app := newTestApp(t)
	token := signup(t, app, "alice@example.com")

	task := createTask(t, app, token, "Buy groceries")

	t.Run("get returns the created task", func(t *testing.T) {
		resp, env := doJSON(t, app, http.MethodGet, "/api/v1/tasks/"+task.ID.String(), token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got dto.TaskResponse
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "Buy groceries", got.Title)
		assert.False(t, got.Completed)
	})

	t.Run("patch updates only the provided fields", func(t *testing.T) {
		resp, env := doJSON(t, app, http.MethodPatch, "/api/v1/tasks/"+task.ID.String(), token, fiber.Map{
			"description": "milk and eggs",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got dto.TaskResponse
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "Buy groceries", got.Title)
		assert.Equal(t, "milk and eggs", got.Description)
	})

	t.Run("delete removes the task", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodDelete, "/api/v1/tasks/"+task.ID.String(), token, nil)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/tasks/"+task.ID.String(), token, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("malformed task ID is a bad request", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/tasks/not-a-uuid", token, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestTaskOwnershipHiding(t *testing.T) {
	app := newTestApp(t)
	aliceToken := signup(t, app, "alice@example.com")
	bobToken := signup(t, app, "bob@example.com")

	task := createTask(t, app, aliceToken, "Alice's secret")

	// Every operation on a foreign task answers exactly like a missing task.
	cases := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"get", http.MethodGet, "/api/v1/tasks/" + task.ID.String(), nil},
		{"update", http.MethodPut, "/api/v1/tasks/" + task.ID.String(), fiber.Map{"title": "hijacked"}},
		{"status", http.MethodPatch, "/api/v1/tasks/" + task.ID.String() + "/status", fiber.Map{"completed": true}},
		{"toggle", http.MethodPost, "/api/v1/tasks/" + task.ID.String() + "/toggle", nil},
		{"delete", http.MethodDelete, "/api/v1/tasks/" + task.ID.String(), nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, env := doJSON(t, app, tc.method, tc.path, bobToken, tc.body)
			require.Equal(t, http.StatusNotFound, resp.StatusCode)
			require.NotNil(t, env.Error)
			assert.Equal(t, "Task not found", env.Error.Message)
		})
	}

	t.Run("owner's list never shows foreign tasks", func(t *testing.T) {
		createTask(t, app, bobToken, "Bob's own")

		resp, env := doJSON(t, app, http.MethodGet, "/api/v1/tasks/", bobToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var list dto.TaskListResponse
		require.NoError(t, json.Unmarshal(env.Data, &list))
		require.Equal(t, 1, list.Total)
		assert.Equal(t, "Bob's own", list.Tasks[0].Title)
	})
}

func TestTaskListQueries(t *testing.T) {
	app := newTestApp(t)
	token := signup(t, app, "alice@example.com")

	groceries := createTask(t, app, token, "Buy groceries")
	createTask(t, app, token, "Write report")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/tasks/"+groceries.ID.String()+"/toggle", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	list := func(t *testing.T, path string) dto.TaskListResponse {
		resp, env := doJSON(t, app, http.MethodGet, path, token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out dto.TaskListResponse
		require.NoError(t, json.Unmarshal(env.Data, &out))
		return out
	}

	t.Run("search filters by substring", func(t *testing.T) {
		out := list(t, "/api/v1/tasks/?search=groc")
		require.Equal(t, 1, out.Total)
		assert.Equal(t, "Buy groceries", out.Tasks[0].Title)
	})

	t.Run("completed=1 narrows to completed tasks", func(t *testing.T) {
		out := list(t, "/api/v1/tasks/?completed=1")
		require.Equal(t, 1, out.Total)
		assert.True(t, out.Tasks[0].Completed)
	})

	t.Run("completed=false narrows to pending tasks", func(t *testing.T) {
		out := list(t, "/api/v1/tasks/?completed=false")
		require.Equal(t, 1, out.Total)
		assert.False(t, out.Tasks[0].Completed)
	})

	t.Run("completed and pending endpoints partition the tasks", func(t *testing.T) {
		completed := list(t, "/api/v1/tasks/completed")
		pending := list(t, "/api/v1/tasks/pending")
		assert.Equal(t, 1, completed.Total)
		assert.Equal(t, 1, pending.Total)
		assert.NotEqual(t, completed.Tasks[0].ID, pending.Tasks[0].ID)
	})
}

func TestSetTaskStatus(t *testing.T) {
	app := newTestApp(t)
	token := signup(t, app, "alice@example.com")
	task := createTask(t, app, token, "Status task")

	t.Run("missing completed field is a validation error", func(t *testing.T) {
		resp, env := doJSON(t, app, http.MethodPatch, "/api/v1/tasks/"+task.ID.String()+"/status", token, fiber.Map{})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.NotNil(t, env.Error)
		assert.Equal(t, "This field is required", env.Error.Details["completed"])
	})

	t.Run("explicit false is a valid status", func(t *testing.T) {
		resp, env := doJSON(t, app, http.MethodPatch, "/api/v1/tasks/"+task.ID.String()+"/status", token, fiber.Map{
			"completed": false,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got dto.TaskResponse
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.False(t, got.Completed)
	})
}

func TestTaskStats(t *testing.T) {
	app := newTestApp(t)
	token := signup(t, app, "alice@example.com")

	done := createTask(t, app, token, "Done")
	createTask(t, app, token, "Open")
	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/tasks/"+done.ID.String()+"/toggle", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env := doJSON(t, app, http.MethodGet, "/api/v1/tasks/stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats dto.TaskStatsResponse
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, int64(2), stats.TotalTasks)
	assert.Equal(t, int64(1), stats.CompletedTasks)
	assert.Equal(t, int64(1), stats.PendingTasks)
	assert.Equal(t, int64(0), stats.OverdueTasks)
	assert.Equal(t, float64(50), stats.CompletionRate)
}
