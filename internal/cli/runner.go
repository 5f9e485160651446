package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todotui/internal/model"
	"github.com/idilsaglam/todotui/internal/store/snapstore"
	"github.com/idilsaglam/todotui/internal/ui"
)

const maxSubjectWidth = 80

func newListCmd(e *Env) *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items in listing order",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := e.openStore()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), e.renderList(store.List(), group))
			return nil
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "Group output by pending/done")
	return cmd
}

func newAddCmd(e *Env) *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "add <subject...>",
		Short: "Add a new item (subject can be multiple words)",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			subject := strings.TrimSpace(strings.Join(args, " "))
			if subject == "" {
				return usagef("add: empty subject")
			}
			store, err := e.openStore()
			if err != nil {
				return err
			}
			it := model.New(subject, description, time.Now())
			if err := store.Add(it); err != nil {
				return err
			}
			e.logger.Info("item created", "id", it.ID)
			e.theme.OK(cmd.OutOrStdout(), "added")
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "m", "", "Item description")
	return cmd
}

func newDoneCmd(e *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "done <index>",
		Short: "Toggle completion of the item at a 1-based listing index",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, it, err := e.itemAt("done", args[0])
			if err != nil {
				return err
			}
			it.Toggle(time.Now())
			if err := store.Update(it); err != nil {
				return err
			}
			e.logger.Info("item toggled", "id", it.ID, "completed", it.Completed())
			e.theme.OK(cmd.OutOrStdout(), "toggled")
			return nil
		},
	}
}

func newRemoveCmd(e *Env) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <index>",
		Aliases: []string{"remove"},
		Short:   "Remove the item at a 1-based listing index",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, it, err := e.itemAt("rm", args[0])
			if err != nil {
				return err
			}
			if err := store.Delete(it.ID); err != nil {
				return err
			}
			e.logger.Info("item deleted", "id", it.ID)
			e.theme.OK(cmd.OutOrStdout(), "removed")
			return nil
		},
	}
}

// itemAt resolves a 1-based index against the current listing.
func (e *Env) itemAt(op, arg string) (*snapstore.Store, model.Item, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return nil, model.Item{}, usagef("%s: not a number: %s", op, arg)
	}
	store, err := e.openStore()
	if err != nil {
		return nil, model.Item{}, err
	}
	items := store.List()
	if n < 1 || n > len(items) {
		return nil, model.Item{}, usagef("%s: index out of range: have %d, got %d (run `todo ls` to see valid indexes)", op, len(items), n)
	}
	return store, items[n-1], nil
}

// -------------- rendering helpers --------------

func (e *Env) renderList(items []model.Item, group bool) string {
	t := e.theme
	done, pending := model.Stats(items)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), pending,
		t.Accent.Render("Total"), len(items),
	)

	lines := []string{header, t.Muted.Render(ui.ProgressBar(done, len(items), 28)), ""}
	if group {
		lines = append(lines, e.groupLines(items)...)
	} else {
		lines = append(lines, e.flatLines(items, 0)...)
	}
	lines = append(lines, "", t.Muted.Render("Tip: add with `todo add \"Buy milk\"`"))
	return t.Panel(lines)
}

// flatLines numbers items starting after offset so indexes match the listing.
func (e *Env) flatLines(items []model.Item, offset int) []string {
	t := e.theme
	if len(items) == 0 {
		return []string{t.Muted.Render("no items")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		idx := t.Muted.Render(fmt.Sprintf("%2d.", offset+i+1))
		subject := clip(firstLine(it.Subject), maxSubjectWidth)
		if it.Completed() {
			subject = t.Done.Render(subject)
		}
		out = append(out, fmt.Sprintf("%s %s %s", idx, t.Box(it.Completed()), subject))
	}
	return out
}

// groupLines splits the listing, which already puts pending items first.
func (e *Env) groupLines(items []model.Item) []string {
	t := e.theme
	split := len(items)
	for i, it := range items {
		if it.Completed() {
			split = i
			break
		}
	}
	pend, done := items[:split], items[split:]

	section := func(title string, part []model.Item, offset int) []string {
		lines := []string{t.Accent.Render(title)}
		if len(part) == 0 {
			return append(lines, t.Muted.Render("(none)"))
		}
		return append(lines, e.flatLines(part, offset)...)
	}

	lines := section("Pending", pend, 0)
	lines = append(lines, "")
	return append(lines, section("Done", done, split)...)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + "…"
	}
	return s
}

// clip shortens s to at most n runes.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
