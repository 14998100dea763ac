package cli

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	// Register the default mood-check reminders on a fresh store.
	ctx.Settings().Sync()
	ctx.printf("Initialized mooded storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
