// taskmaster-mcp exposes the task store over MCP so an agent can read and
// modify the same task list the interactive app uses. The store is loaded
// once at startup; changes made by the interactive app after that are not
// picked up, and saves from either process overwrite the other's.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"taskmaster/internal/task"
)

func main() {
	// Log to stderr so stdout is clean for JSON-RPC
	log.SetOutput(os.Stderr)
	log.SetPrefix("[taskmaster-mcp] ")

	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env file")
	}

	statePath := os.Getenv("STATE_PATH")
	if statePath == "" {
		statePath = "state"
	}
	os.MkdirAll(statePath, 0755)

	store := task.NewStore(statePath)
	if err := store.Load(); err != nil {
		log.Printf("Warning: failed to load state: %v", err)
	}

	s := server.NewMCPServer(
		"taskmaster",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.AddTool(addTaskTool(), handleAddTask(store))
	s.AddTool(listTasksTool(), handleListTasks(store))
	s.AddTool(completeTaskTool(), handleCompleteTask(store))
	s.AddTool(deleteTaskTool(), handleDeleteTask(store))
	s.AddTool(listCategoriesTool(), handleListCategories(store))
	s.AddTool(statsTool(), handleStats(store))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func addTaskTool() mcp.Tool {
	return mcp.NewTool("add_task",
		mcp.WithDescription("Add a task to the user's task list. New tasks go to the top of the list."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Task title (what needs to be done)"),
		),
		mcp.WithString("description",
			mcp.Description("Additional details for the task"),
		),
		mcp.WithString("priority",
			mcp.Description("Priority: High, Medium, or Low (default Medium)"),
		),
		mcp.WithString("category",
			mcp.Description("Category ID, e.g. work, personal, study (default personal)"),
		),
		mcp.WithString("due_date",
			mcp.Description("Due date in YYYY-MM-DD format (optional)"),
		),
	)
}

func handleAddTask(store *task.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := req.Params.Arguments.(map[string]any)
		title, _ := args["title"].(string)
		if title == "" {
			return mcp.NewToolResultError("title is required"), nil
		}

		input := task.TaskInput{Title: title, Category: "personal"}
		if desc, ok := args["description"].(string); ok {
			input.Description = desc
		}
		if p, ok := args["priority"].(string); ok {
			input.Priority = task.ParsePriority(p)
		}
		if c, ok := args["category"].(string); ok && c != "" {
			input.Category = c
		}
		if due, ok := args["due_date"].(string); ok && due != "" {
			if _, err := time.Parse("2006-01-02", due); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid due_date: %v", err)), nil
			}
			input.DueDate = due
		}

		created, err := store.Add(input)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to add task: %v", err)), nil
		}

		log.Printf("Added task: %s", created.ID)
		return mcp.NewToolResultText(fmt.Sprintf("Task added: %s (ID: %s)", created.Title, created.ID)), nil
	}
}

func listTasksTool() mcp.Tool {
	return mcp.NewTool("list_tasks",
		mcp.WithDescription("List the user's tasks in display order, with optional filters."),
		mcp.WithString("category",
			mcp.Description("Filter by category ID; omit or use 'all' for every category"),
		),
		mcp.WithString("status",
			mcp.Description("Filter by status: pending, completed, or all (default pending)"),
		),
	)
}

func handleListTasks(store *task.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := req.Params.Arguments.(map[string]any)
		category, _ := args["category"].(string)
		status, _ := args["status"].(string)
		if status == "" {
			status = "pending"
		}

		var tasks []task.Task
		switch status {
		case "pending":
			tasks = store.PendingByCategory(category)
		case "completed":
			for _, t := range store.ByCategory(category) {
				if t.Completed {
					tasks = append(tasks, t)
				}
			}
		case "all":
			tasks = store.ByCategory(category)
		default:
			return mcp.NewToolResultError(fmt.Sprintf("unknown status: %s (use pending, completed, or all)", status)), nil
		}

		if len(tasks) == 0 {
			return mcp.NewToolResultText("No tasks found."), nil
		}

		data, _ := json.MarshalIndent(tasks, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func completeTaskTool() mcp.Tool {
	return mcp.NewTool("complete_task",
		mcp.WithDescription("Toggle a task between pending and completed."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("ID of the task to toggle"),
		),
	)
}

func handleCompleteTask(store *task.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := req.Params.Arguments.(map[string]any)
		taskID, _ := args["task_id"].(string)
		if taskID == "" {
			return mcp.NewToolResultError("task_id is required"), nil
		}

		t, ok := store.Get(taskID)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("task not found: %s", taskID)), nil
		}

		store.ToggleCompletion(taskID)
		if t.Completed {
			return mcp.NewToolResultText(fmt.Sprintf("Task reopened: %s", t.Title)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Task completed: %s", t.Title)), nil
	}
}

func deleteTaskTool() mcp.Tool {
	return mcp.NewTool("delete_task",
		mcp.WithDescription("Delete a task permanently."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("ID of the task to delete"),
		),
	)
}

func handleDeleteTask(store *task.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := req.Params.Arguments.(map[string]any)
		taskID, _ := args["task_id"].(string)
		if taskID == "" {
			return mcp.NewToolResultError("task_id is required"), nil
		}

		t, ok := store.Get(taskID)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("task not found: %s", taskID)), nil
		}

		store.Delete(taskID)
		log.Printf("Deleted task: %s", taskID)
		return mcp.NewToolResultText(fmt.Sprintf("Task deleted: %s", t.Title)), nil
	}
}

func listCategoriesTool() mcp.Tool {
	return mcp.NewTool("list_categories",
		mcp.WithDescription("List the task categories with per-category task counts."),
	)
}

func handleListCategories(store *task.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		counts := store.CountByCategory()

		type categoryWithCount struct {
			task.Category
			TaskCount int `json:"taskCount"`
		}
		var out []categoryWithCount
		for _, c := range store.Categories() {
			out = append(out, categoryWithCount{Category: c, TaskCount: counts[c.ID]})
		}

		data, _ := json.MarshalIndent(out, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func statsTool() mcp.Tool {
	return mcp.NewTool("task_stats",
		mcp.WithDescription("Get aggregate task statistics: totals, completion rate, and per-priority counts."),
	)
}

func handleStats(store *task.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats := store.ComputeStats(time.Now())
		data, _ := json.MarshalIndent(stats, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}
