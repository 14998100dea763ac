package cli

import (
	"github.com/julianstephens/mooded/internal/validation"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	result := ctx.validate()
	ctx.println(result.FormatReport())
	return nil
}

func (c *Context) validate() validation.ValidationResult {
	validator := validation.New(c.loc())
	moods := validator.ValidateMoods(c.Moods().All())
	habits := validator.ValidateHabits(c.Habits().Habits(), c.Habits().Completions())
	return validation.ValidationResult{Conflicts: append(moods.Conflicts, habits.Conflicts...)}
}
