package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/a-marczewski/todotxt/internal/app"
	"github.com/a-marczewski/todotxt/internal/todo"
)

var convertCmd = &cobra.Command{
	Use:   "convert [instruction]",
	Short: "Turn a natural-language instruction into task lines",
	Long: `Convert a natural-language instruction into todo.txt lines using the
configured AI service and append them to the todo file. With --task, the
instruction rewrites that task in place instead.`,
	Args: cobra.MinimumNArgs(1),
}

var convertTask int

func init() {
	convertCmd.Flags().IntVar(&convertTask, "task", 0, "Rewrite this task number instead of creating new tasks")
}

func runConvertCmd(a *app.App, cmd *cobra.Command, args []string) {
	content, err := a.LoadDocument()
	if err != nil {
		fail(a, "Failed to read todo file", err)
	}

	ctx := a.ContextWithLogger(a.Ctx)
	instruction := strings.Join(args, " ")

	if cmd.Flags().Changed("task") {
		tasks := todo.ParseAll(content)
		index := parseTaskNumber(fmt.Sprintf("%d", convertTask), len(tasks))

		line, err := a.AI.ConvertLine(ctx, todo.Line(tasks[index]), instruction)
		if err != nil {
			fail(a, "Conversion failed", err)
		}

		task := todo.ParseLine(line)
		if err := a.SaveDocument(todo.UpdateAtIndex(content, index, task)); err != nil {
			fail(a, "Failed to write todo file", err)
		}
		fmt.Printf("Rewrote: %s\n", todo.Line(task))
		return
	}

	lines, err := a.AI.ConvertBatch(ctx, instruction)
	if err != nil {
		fail(a, "Conversion failed", err)
	}

	today := time.Now().Format(todo.DateLayout)
	for _, line := range lines {
		task := todo.ParseLine(line)
		if task.CreationDate == "" && !task.Completed {
			task.CreationDate = today
			task.Raw = ""
		}
		content = todo.AppendTask(content, task)
		fmt.Printf("Added: %s\n", todo.Line(task))
	}
	if err := a.SaveDocument(content); err != nil {
		fail(a, "Failed to write todo file", err)
	}
}
