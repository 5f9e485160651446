package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todotui/internal/store/jsonstore"
)

func newExportCmd(e *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write all items as JSON (stdout when no file is given)",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := e.openStore()
			if err != nil {
				return err
			}
			items := store.List()
			if len(args) == 0 {
				return jsonstore.Encode(cmd.OutOrStdout(), items)
			}
			if err := jsonstore.Save(args[0], items); err != nil {
				return err
			}
			e.logger.Info("exported", "file", args[0], "items", len(items))
			e.theme.OK(cmd.OutOrStdout(), fmt.Sprintf("exported %d items to %s", len(items), args[0]))
			return nil
		},
	}
}

func newImportCmd(e *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge items from a JSON export; matching IDs are overwritten",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open import: %w", err)
			}
			defer f.Close()

			items, err := jsonstore.Decode(f)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			store, err := e.openStore()
			if err != nil {
				return err
			}
			var added, replaced int
			for _, it := range items {
				if _, ok := store.Get(it.ID); ok {
					err = store.Update(it)
					replaced++
				} else {
					err = store.Add(it)
					added++
				}
				if err != nil {
					return err
				}
			}
			e.logger.Info("imported", "file", args[0], "added", added, "replaced", replaced)
			e.theme.OK(cmd.OutOrStdout(), fmt.Sprintf("imported %d items (%d new, %d replaced)", len(items), added, replaced))
			return nil
		},
	}
}

func newPathsCmd(e *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Show where config, data and logs live",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := e.theme
			out := cmd.OutOrStdout()
			for _, row := range [][2]string{
				{"config dir", e.paths.ConfigDir},
				{"config", e.paths.ConfigPath},
				{"data", e.paths.DataPath},
				{"log", e.cfg.Log.File},
			} {
				fmt.Fprintf(out, "%s %s\n", t.Accent.Render(fmt.Sprintf("%-10s", row[0])), row[1])
			}
			return nil
		},
	}
}
