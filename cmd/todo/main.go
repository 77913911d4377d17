package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/listworks/todo-service/internal/client"
)

func main() {
	server := flag.String("server", "http://localhost:4000", "base URL of the todo service")
	flag.Parse()

	api := client.New(*server)
	p := tea.NewProgram(client.NewModel(api), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
