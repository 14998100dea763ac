package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/mooded/internal/storage"
)

type DebugCmd struct {
	DBPath DebugDBPathCmd `cmd:"" help:"Show the storage location."`
	Keys   DebugKeysCmd   `cmd:"" help:"List stored keys."`
	Dump   DebugDumpCmd   `cmd:"" help:"Dump a stored blob as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	jsonBytes, err := json.MarshalIndent(map[string]string{"path": ctx.Store.GetConfigPath()}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.println(string(jsonBytes))
	return nil
}

type DebugKeysCmd struct{}

func (cmd *DebugKeysCmd) Run(ctx *Context) error {
	keys, err := ctx.Store.Keys()
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	for _, k := range keys {
		ctx.println(k)
	}
	return nil
}

type DebugDumpCmd struct {
	Key string `arg:"" help:"Storage key, e.g. SavedMoods."`
}

func (cmd *DebugDumpCmd) Run(ctx *Context) error {
	data, err := ctx.Store.Get(cmd.Key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no value stored for key: %s", cmd.Key)
		}
		return fmt.Errorf("failed to read %s: %w", cmd.Key, err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		// Not JSON; print as-is.
		ctx.println(string(data))
		return nil
	}
	ctx.println(out.String())
	return nil
}
