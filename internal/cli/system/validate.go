package system

import (
	"fmt"

	"github.com/julianstephens/aisle/internal/cli"
	"github.com/julianstephens/aisle/internal/validation"
)

type ValidateCmd struct {
	Strict bool `help:"Exit with an error when conflicts are found."`
}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	fmt.Fprintln(ctx.Out, "Validating planner documents...")
	docs, err := ctx.Documents()
	if err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}

	result := validation.New().Validate(docs)

	fmt.Fprintln(ctx.Out)
	fmt.Fprintln(ctx.Out, result.FormatReport())

	if cmd.Strict && result.HasConflicts() {
		return fmt.Errorf("%d conflicts found", len(result.Conflicts))
	}
	return nil
}
