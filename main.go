package main

import (
	"fmt"
	"os"

	"github.com/a-cup-of-joe/reflection/internal/session"
	"github.com/a-cup-of-joe/reflection/internal/stats"
	"github.com/a-cup-of-joe/reflection/internal/store"
	"github.com/a-cup-of-joe/reflection/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	dataPath, err := store.DefaultDataPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	s := store.New(store.NewDiskBlob(dataPath))
	eng := session.NewEngine(s)
	agg := stats.NewAggregator(s, eng)

	app := tui.NewApp(s, eng, agg)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
