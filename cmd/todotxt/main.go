package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/a-marczewski/todotxt/internal/app"
	"github.com/a-marczewski/todotxt/internal/archive"
	"github.com/a-marczewski/todotxt/internal/ops"
	"github.com/a-marczewski/todotxt/internal/query"
	"github.com/a-marczewski/todotxt/internal/todo"
	"github.com/a-marczewski/todotxt/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "todotxt",
	Short: "todotxt - a todo.txt task manager",
	Long:  `todotxt manages plain todo.txt task files: priorities, due and threshold dates, recurrence, filtering and archiving.`,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(doCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(focusCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(redoCmd)
	rootCmd.AddCommand(presetCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(completionCmd)
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate the autocompletion script for the specified shell",
	Long: `Generate the autocompletion script for todotxt for the specified shell.
See each command's help for details on how to use the generated script.
	`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.ExactValidArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var err error
		switch args[0] {
		case "bash":
			err = cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			err = cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			err = cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			err = cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating completion script: %v\n", err)
			os.Exit(1)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
}

func runVersionCmd(a *app.App, cmd *cobra.Command, args []string) {
	fmt.Printf("todotxt v%s\n", version.Version)
	if latest, err := version.CheckForUpdates(); err == nil && latest != "" {
		fmt.Printf("A newer version is available: v%s\n", latest)
	}
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
}

var listPriority string
var listSearch string
var listStatus string
var listGroup string
var listSorted bool

func init() {
	listCmd.Flags().StringVarP(&listPriority, "priority", "p", "", `Filter by priority letter, or "none"`)
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Filter with the search query language")
	listCmd.Flags().StringVar(&listStatus, "status", query.StatusAll, "Status filter: all, active, completed")
	listCmd.Flags().StringVarP(&listGroup, "group", "g", "", "Group output by: project, context, priority")
	listCmd.Flags().BoolVar(&listSorted, "sort", false, "Sort by completion state and priority")
}

func runListCmd(a *app.App, cmd *cobra.Command, args []string) {
	content, err := a.LoadDocument()
	if err != nil {
		fail(a, "Failed to read todo file", err)
	}

	tasks := todo.ParseAll(content)
	ordinals := taskOrdinals(tasks)

	filtered := query.Apply(tasks, query.FilterState{
		Priority: listPriority,
		Search:   listSearch,
		Status:   listStatus,
	})
	if listSorted {
		filtered = query.SortTasks(filtered)
	}

	switch listGroup {
	case "":
		printTasks(filtered, ordinals)
	case "project":
		printGroups(query.GroupByProject(filtered), ordinals)
	case "context":
		printGroups(query.GroupByContext(filtered), ordinals)
	case "priority":
		printGroups(query.GroupByPriority(filtered), ordinals)
	default:
		fmt.Fprintf(os.Stderr, "Unknown group %q; use project, context or priority\n", listGroup)
		os.Exit(1)
	}
}

var addCmd = &cobra.Command{
	Use:   "add [description]",
	Short: "Add a new task",
	Args:  cobra.MinimumNArgs(1),
}

var addPriority string
var addDue string
var addThreshold string

func init() {
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "Priority letter A-Z")
	addCmd.Flags().StringVarP(&addDue, "due", "d", "", "Due date (YYYY-MM-DD)")
	addCmd.Flags().StringVarP(&addThreshold, "threshold", "t", "", "Threshold date (YYYY-MM-DD), defaults to today")
}

func runAddCmd(a *app.App, cmd *cobra.Command, args []string) {
	content, err := a.LoadDocument()
	if err != nil {
		fail(a, "Failed to read todo file", err)
	}

	task := ops.CreateTask(strings.Join(args, " "), addPriority, addDue, addThreshold, time.Now())
	if err := a.SaveDocument(todo.AppendTask(content, task)); err != nil {
		fail(a, "Failed to write todo file", err)
	}
	fmt.Printf("Added: %s\n", todo.Line(task))
}

var doCmd = &cobra.Command{
	Use:   "do [task number]",
	Short: "Toggle completion of a task",
	Args:  cobra.ExactArgs(1),
}

func runDoCmd(a *app.App, cmd *cobra.Command, args []string) {
	content, err := a.LoadDocument()
	if err != nil {
		fail(a, "Failed to read todo file", err)
	}

	tasks := todo.ParseAll(content)
	index := parseTaskNumber(args[0], len(tasks))

	result := ops.ToggleCompletion(tasks[index], time.Now())
	content = todo.UpdateAtIndex(content, index, result.Task)
	if result.Recurring != nil {
		content = todo.AppendTask(content, *result.Recurring)
	}
	if err := a.SaveDocument(content); err != nil {
		fail(a, "Failed to write todo file", err)
	}

	fmt.Printf("Toggled: %s\n", todo.Line(result.Task))
	if result.Recurring != nil {
		fmt.Printf("Recurred: %s\n", todo.Line(*result.Recurring))
	}
}

var editCmd = &cobra.Command{
	Use:   "edit [task number]",
	Short: "Edit a task",
	Long: `Edit a task in place. Only the provided flags change; passing an
empty value clears that field, e.g. --priority "" removes the priority.`,
	Args: cobra.ExactArgs(1),
}

var editDescription string
var editPriority string
var editDue string
var editThreshold string

func init() {
	editCmd.Flags().StringVar(&editDescription, "desc", "", "New description")
	editCmd.Flags().StringVarP(&editPriority, "priority", "p", "", "New priority letter, empty to clear")
	editCmd.Flags().StringVarP(&editDue, "due", "d", "", "New due date, empty to clear")
	editCmd.Flags().StringVarP(&editThreshold, "threshold", "t", "", "New threshold date, empty to clear")
}

func runEditCmd(a *app.App, cmd *cobra.Command, args []string) {
	content, err := a.LoadDocument()
	if err != nil {
		fail(a, "Failed to read todo file", err)
	}

	tasks := todo.ParseAll(content)
	index := parseTaskNumber(args[0], len(tasks))

	var updates ops.TaskUpdates
	if cmd.Flags().Changed("desc") {
		updates.Description = &editDescription
	}
	if cmd.Flags().Changed("priority") {
		updates.Priority = &editPriority
	}
	if cmd.Flags().Changed("due") {
		updates.DueDate = &editDue
	}
	if cmd.Flags().Changed("threshold") {
		updates.ThresholdDate = &editThreshold
	}

	task := ops.EditTask(tasks[index], updates)
	if err := a.SaveDocument(todo.UpdateAtIndex(content, index, task)); err != nil {
		fail(a, "Failed to write todo file", err)
	}
	fmt.Printf("Edited: %s\n", todo.Line(task))
}

var rmCmd = &cobra.Command{
	Use:   "rm [task number]",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
}

func runRmCmd(a *app.App, cmd *cobra.Command, args []string) {
	content, err := a.LoadDocument()
	if err != nil {
		fail(a, "Failed to read todo file", err)
	}

	tasks := todo.ParseAll(content)
	index := parseTaskNumber(args[0], len(tasks))
	removed := todo.Line(tasks[index])

	if err := a.SaveDocument(todo.DeleteAtIndex(content, index)); err != nil {
		fail(a, "Failed to write todo file", err)
	}
	fmt.Printf("Removed: %s\n", removed)
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search tasks",
	Long: `Search tasks with the query language: space-separated terms AND
together, | separates alternatives, - negates a term, /re/ matches a
case-insensitive regular expression, and project:, context:, priority: and
due: qualify a term to one field.`,
	Args: cobra.MinimumNArgs(1),
}

func runSearchCmd(a *app.App, cmd *cobra.Command, args []string) {
	content, err := a.LoadDocument()
	if err != nil {
		fail(a, "Failed to read todo file", err)
	}

	tasks := todo.ParseAll(content)
	ordinals := taskOrdinals(tasks)
	printTasks(query.FilterByAdvancedSearch(tasks, strings.Join(args, " ")), ordinals)
}

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Show tasks needing attention now",
	Long:  `Show incomplete tasks that are overdue, due today, or past their threshold date.`,
}

func runFocusCmd(a *app.App, cmd *cobra.Command, args []string) {
	content, err := a.LoadDocument()
	if err != nil {
		fail(a, "Failed to read todo file", err)
	}

	tasks := todo.ParseAll(content)
	ordinals := taskOrdinals(tasks)
	printTasks(query.FilterFocus(tasks, time.Now()), ordinals)
}

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Move completed tasks to done.txt",
}

func runArchiveCmd(a *app.App, cmd *cobra.Command, args []string) {
	content, err := a.LoadDocument()
	if err != nil {
		fail(a, "Failed to read todo file", err)
	}

	result := archive.SplitCompleted(content)
	if len(result.CompletedTasks) == 0 {
		fmt.Println("Nothing to archive.")
		return
	}

	donePath := archive.CompanionPath(a.TodoPath())
	existing, err := a.Vault.Read(donePath)
	if err != nil {
		fail(a, "Failed to read done file", err)
	}
	if err := a.Vault.Write(donePath, archive.AppendToFile(existing, result.CompletedTasks)); err != nil {
		fail(a, "Failed to write done file", err)
	}
	if err := a.SaveDocument(result.RemainingContent); err != nil {
		fail(a, "Failed to write todo file", err)
	}

	fmt.Printf("Archived %d completed task(s) to %s\n", len(result.CompletedTasks), donePath)
}

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Restore the previous document state",
}

func runUndoCmd(a *app.App, cmd *cobra.Command, args []string) {
	if _, err := a.LoadDocument(); err != nil {
		fail(a, "Failed to read todo file", err)
	}
	_, ok, err := a.Undo()
	if err != nil {
		fail(a, "Failed to undo", err)
	}
	if !ok {
		fmt.Println("Nothing to undo.")
		return
	}
	fmt.Println("Undone.")
}

var redoCmd = &cobra.Command{
	Use:   "redo",
	Short: "Reapply the last undone change",
}

func runRedoCmd(a *app.App, cmd *cobra.Command, args []string) {
	if _, err := a.LoadDocument(); err != nil {
		fail(a, "Failed to read todo file", err)
	}
	_, ok, err := a.Redo()
	if err != nil {
		fail(a, "Failed to redo", err)
	}
	if !ok {
		fmt.Println("Nothing to redo.")
		return
	}
	fmt.Println("Redone.")
}

// taskOrdinals maps each task line to its 1-based position in the full
// document, so filtered views can display stable task numbers. Duplicate
// lines keep the first position.
func taskOrdinals(tasks []todo.Task) map[string]int {
	ordinals := make(map[string]int, len(tasks))
	for i, t := range tasks {
		line := todo.Line(t)
		if _, seen := ordinals[line]; !seen {
			ordinals[line] = i + 1
		}
	}
	return ordinals
}

func printTasks(tasks []todo.Task, ordinals map[string]int) {
	for _, t := range tasks {
		fmt.Printf("%3d %s\n", ordinals[todo.Line(t)], todo.Line(t))
	}
}

func printGroups(groups []query.Group, ordinals map[string]int) {
	for i, g := range groups {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s:\n", g.Key)
		printTasks(g.Tasks, ordinals)
	}
}

// parseTaskNumber converts a 1-based task number argument to an index,
// exiting with a usage error when out of range.
func parseTaskNumber(arg string, count int) int {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > count {
		fmt.Fprintf(os.Stderr, "Invalid task number %q: expected 1-%d\n", arg, count)
		os.Exit(1)
	}
	return n - 1
}

func fail(a *app.App, msg string, err error) {
	a.Logger.Error(msg, zap.Error(err))
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}

// newAppRunner creates a Cobra Run function closure with the app.App instance.
func newAppRunner(a *app.App, runFunc func(*app.App, *cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		runFunc(a, cmd, args)
	}
}

func main() {
	appInstance, err := app.NewApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}
	defer appInstance.Close()

	versionCmd.Run = newAppRunner(appInstance, runVersionCmd)
	listCmd.Run = newAppRunner(appInstance, runListCmd)
	addCmd.Run = newAppRunner(appInstance, runAddCmd)
	doCmd.Run = newAppRunner(appInstance, runDoCmd)
	editCmd.Run = newAppRunner(appInstance, runEditCmd)
	rmCmd.Run = newAppRunner(appInstance, runRmCmd)
	searchCmd.Run = newAppRunner(appInstance, runSearchCmd)
	focusCmd.Run = newAppRunner(appInstance, runFocusCmd)
	archiveCmd.Run = newAppRunner(appInstance, runArchiveCmd)
	undoCmd.Run = newAppRunner(appInstance, runUndoCmd)
	redoCmd.Run = newAppRunner(appInstance, runRedoCmd)
	wirePresetCmds(appInstance)
	convertCmd.Run = newAppRunner(appInstance, runConvertCmd)

	if err := rootCmd.Execute(); err != nil {
		appInstance.Logger.Error("Root command execution failed", zap.Error(err))
		os.Exit(1)
	}
}
