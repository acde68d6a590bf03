package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/a-marczewski/todotxt/internal/app"
	"github.com/a-marczewski/todotxt/internal/query"
	"github.com/a-marczewski/todotxt/internal/todo"
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage saved filter presets",
}

func init() {
	presetCmd.AddCommand(presetSaveCmd)
	presetCmd.AddCommand(presetListCmd)
	presetCmd.AddCommand(presetApplyCmd)
	presetCmd.AddCommand(presetRmCmd)
}

var presetSaveCmd = &cobra.Command{
	Use:   "save [name]",
	Short: "Save the given filter flags as a named preset",
	Args:  cobra.ExactArgs(1),
}

var presetPriority string
var presetSearch string
var presetStatus string
var presetGroup string

func init() {
	presetSaveCmd.Flags().StringVarP(&presetPriority, "priority", "p", "", `Priority filter letter, or "none"`)
	presetSaveCmd.Flags().StringVarP(&presetSearch, "search", "s", "", "Search query")
	presetSaveCmd.Flags().StringVar(&presetStatus, "status", query.StatusAll, "Status filter: all, active, completed")
	presetSaveCmd.Flags().StringVarP(&presetGroup, "group", "g", "", "Grouping: project, context, priority")
}

func runPresetSaveCmd(a *app.App, cmd *cobra.Command, args []string) {
	now := time.Now()
	p := query.FilterPreset{
		ID:   query.NewPresetID(now),
		Name: args[0],
		State: query.FilterState{
			Priority: presetPriority,
			Search:   presetSearch,
			Status:   presetStatus,
			Group:    presetGroup,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.Presets.Save(p); err != nil {
		fail(a, "Failed to save preset", err)
	}
	fmt.Printf("Saved preset %s (%s)\n", p.Name, p.ID)
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved presets",
}

func runPresetListCmd(a *app.App, cmd *cobra.Command, args []string) {
	presets, err := a.Presets.List()
	if err != nil {
		fail(a, "Failed to list presets", err)
	}
	if len(presets) == 0 {
		fmt.Println("No presets saved.")
		return
	}
	for _, p := range presets {
		fmt.Printf("%s  %s\n", p.ID, p.Name)
		if p.State.Priority != "" {
			fmt.Printf("    priority: %s\n", p.State.Priority)
		}
		if p.State.Search != "" {
			fmt.Printf("    search: %s\n", p.State.Search)
		}
		if p.State.Status != "" && p.State.Status != query.StatusAll {
			fmt.Printf("    status: %s\n", p.State.Status)
		}
		if p.State.Group != "" {
			fmt.Printf("    group: %s\n", p.State.Group)
		}
	}
}

var presetApplyCmd = &cobra.Command{
	Use:   "apply [preset id]",
	Short: "List tasks through a saved preset",
	Args:  cobra.ExactArgs(1),
}

func runPresetApplyCmd(a *app.App, cmd *cobra.Command, args []string) {
	p, err := a.Presets.Get(args[0])
	if errors.Is(err, sql.ErrNoRows) {
		fmt.Fprintf(os.Stderr, "No preset with id %s\n", args[0])
		os.Exit(1)
	}
	if err != nil {
		fail(a, "Failed to load preset", err)
	}

	content, err := a.LoadDocument()
	if err != nil {
		fail(a, "Failed to read todo file", err)
	}

	tasks := todo.ParseAll(content)
	ordinals := taskOrdinals(tasks)
	filtered := query.Apply(tasks, p.State)

	switch p.State.Group {
	case "project":
		printGroups(query.GroupByProject(filtered), ordinals)
	case "context":
		printGroups(query.GroupByContext(filtered), ordinals)
	case "priority":
		printGroups(query.GroupByPriority(filtered), ordinals)
	default:
		printTasks(filtered, ordinals)
	}
}

var presetRmCmd = &cobra.Command{
	Use:   "rm [preset id]",
	Short: "Delete a saved preset",
	Args:  cobra.ExactArgs(1),
}

func runPresetRmCmd(a *app.App, cmd *cobra.Command, args []string) {
	if err := a.Presets.Delete(args[0]); err != nil {
		fail(a, "Failed to delete preset", err)
	}
	fmt.Printf("Deleted preset %s\n", args[0])
}

func wirePresetCmds(a *app.App) {
	presetSaveCmd.Run = newAppRunner(a, runPresetSaveCmd)
	presetListCmd.Run = newAppRunner(a, runPresetListCmd)
	presetApplyCmd.Run = newAppRunner(a, runPresetApplyCmd)
	presetRmCmd.Run = newAppRunner(a, runPresetRmCmd)
}
