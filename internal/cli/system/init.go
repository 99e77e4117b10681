package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/streakly/internal/cli"
	"github.com/julianstephens/streakly/internal/config"
	"github.com/julianstephens/streakly/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Delete the existing store file before initializing."`
	Source string `help:"Store path or connection string to copy documents from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.removeExisting(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized streakly storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying documents from: %s\n", c.Source)
		n, err := c.copyFrom(ctx)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Printf("Copied %d documents.\n", n)
	}

	// a fresh store starts with every document at its default
	if _, err := ctx.Tracker.Documents().Load(); err != nil {
		return err
	}
	return nil
}

func (c *InitCmd) removeExisting(ctx *cli.Context) error {
	if ctx.Config.IsPostgres() {
		return fmt.Errorf("--force is only supported for file stores")
	}
	path := ctx.Store.GetConfigPath()
	if c.Source != "" {
		absPath, _ := filepath.Abs(path)
		absSource, _ := filepath.Abs(c.Source)
		if absPath == absSource {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", path)
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to access existing store: %w", err)
	}
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing store: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete existing store: %w", err)
	}
	ctx.Printf("Deleted existing store at: %s\n", path)
	return nil
}

// copyFrom replaces the application documents with those of the source store.
func (c *InitCmd) copyFrom(ctx *cli.Context) (int, error) {
	srcCfg, err := config.Resolve(config.Flags{Config: c.Source}, config.Env{})
	if err != nil {
		return 0, err
	}
	src := cli.OpenStore(srcCfg)
	if err := src.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source store: %w", err)
	}
	defer src.Close()

	docs := make(map[string][]byte, len(storage.AllDocuments))
	for _, key := range storage.AllDocuments {
		data, err := src.Get(key)
		if err == storage.ErrNoDocument {
			continue
		}
		if err != nil {
			return 0, err
		}
		docs[key] = data
	}
	if err := storage.WriteAll(ctx.Store, docs); err != nil {
		return 0, err
	}
	return len(docs), nil
}
