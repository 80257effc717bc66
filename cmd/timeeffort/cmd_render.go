package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-timeeffort"
	"github.com/goliatone/go-timeeffort/pkg/model"
	"github.com/goliatone/go-timeeffort/pkg/wizard"
)

// renderCmd replays a record file through a session and exports the result
var renderCmd = &cobra.Command{
	Use:   "render <record.yaml>",
	Short: "Replay a record file through the wizard and export it",
	Long: `Loads a YAML or JSON record, advances it through every step the way the
interactive wizard would, and exports the report on submit. When a step fails
its errors are printed and nothing is exported.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

// validateCmd reports the errors of every step
var validateCmd = &cobra.Command{
	Use:   "validate <record.yaml>",
	Short: "Print the validation errors of every step for a record file",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func runRender(cmd *cobra.Command, args []string) error {
	record, err := loadRecordFile(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	warnDepartment(out, record)

	session := newSession()
	if err := timeeffort.Replay(session, record); err != nil {
		return err
	}
	doc, err := timeeffort.Complete(session)
	if err != nil {
		printStepErrors(out, session.Step(), session.Errors())
		return fmt.Errorf("%s: %w", args[0], err)
	}
	fmt.Fprintf(out, "* Report completed: %s\n", doc.Name)
	return exportDocument(cmd.Context(), out, doc)
}

func runValidate(cmd *cobra.Command, args []string) error {
	record, err := loadRecordFile(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	warnDepartment(out, record)

	failed := 0
	for _, step := range wizard.Steps() {
		errs := wizard.Validate(step, record)
		if len(errs) == 0 {
			fmt.Fprintf(out, "* Step %d (%s): ok\n", int(step), step)
			continue
		}
		failed++
		printStepErrors(out, step, errs)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d steps failed", failed, len(wizard.Steps()))
	}
	return nil
}

// warnDepartment flags a department outside the listed set. The list only
// constrains the interactive select, so this never fails a step.
func warnDepartment(out io.Writer, record model.Record) {
	if record.Department == "" || model.IsDepartment(record.Department) {
		return
	}
	fmt.Fprintf(out, "~ department %q is not one of the listed departments\n", record.Department)
}

func printStepErrors(out io.Writer, step wizard.Step, errs wizard.ErrorMap) {
	fmt.Fprintf(out, "! Step %d (%s):\n", int(step), step)
	for _, key := range errs.Keys() {
		fmt.Fprintf(out, "    %s: %s\n", key, errs[key].Message)
	}
}

func loadRecordFile(path string) (model.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return model.Record{}, fmt.Errorf("open record: %w", err)
	}
	defer file.Close()

	record, err := model.LoadRecord(file)
	if err != nil {
		return model.Record{}, fmt.Errorf("%s: %w", path, err)
	}
	return record, nil
}
