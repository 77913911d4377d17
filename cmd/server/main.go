package main

import "github.com/listworks/todo-service/internal/app"

func main() {
	app.Run()
}
