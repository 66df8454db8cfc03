package main

import (
	"fmt"

	internal "github.com/Rizirfan/FileNest/filenest"
	"github.com/Rizirfan/FileNest/filenest/config"
	"github.com/Rizirfan/FileNest/filenest/history"
	"github.com/Rizirfan/FileNest/filenest/organize"

	"github.com/rs/zerolog"
)

// commandContext carries the shared state every subcommand needs: the
// loaded configuration and the CLI logger.
type commandContext struct {
	configFlag *string
	cfg        *config.Config
	logger     zerolog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		logger:     internal.GetLogger(),
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.LoadConfig(*c.configFlag)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

// targetDir resolves the directory a command operates on: the first
// positional argument when present, the configured watch directory
// otherwise.
func (c *commandContext) targetDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return c.cfg.FileNest.WatchDir
}

// newOrganizer builds the organizer from the loaded configuration,
// attaching the history journal when enabled. The returned cleanup
// closes the journal.
func (c *commandContext) newOrganizer() (*organize.Organizer, func()) {
	registry := organize.NewRegistry(c.cfg.FileNest.CategoryTable())
	org := organize.NewOrganizer(registry)

	cleanup := func() {}
	if c.cfg.FileNest.History.Enabled {
		store, err := history.Open(c.cfg.FileNest.History.Path)
		if err != nil {
			// The journal is an audit convenience; organizing proceeds
			// without it.
			c.logger.Warn().Err(err).Msg("History journal unavailable")
		} else {
			org.SetRecorder(store)
			cleanup = func() { _ = store.Close() }
		}
	}
	return org, cleanup
}

func (c *commandContext) openHistory() (*history.Store, error) {
	if !c.cfg.FileNest.History.Enabled {
		return nil, fmt.Errorf("history journal is disabled in the configuration")
	}
	return history.Open(c.cfg.FileNest.History.Path)
}
