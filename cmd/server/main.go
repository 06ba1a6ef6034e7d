package main

import "github.com/alx-zhu/one-task-manager/internal/app"

// @title           one-task-manager API
// @version         1.0
// @description     Kanban-style task board with ordered, capacity-limited buckets.
// @BasePath        /
func main() {
	app.Run()
}
