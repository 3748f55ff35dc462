package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
)

// RunCleanup performs one artifact sweep and reports what was removed.
func RunCleanup(ctx context.Context, app *App) error {
	store, err := app.Store(ctx)
	if err != nil {
		return err
	}

	res, err := store.Sweep(ctx)
	if err != nil {
		return err
	}

	for _, name := range res.Removed {
		fmt.Fprintf(app.Stdout, "removed %s\n", name)
	}
	fmt.Fprintf(app.Stdout, "%d of %d artifacts removed", len(res.Removed), res.Scanned)
	if res.Failed > 0 {
		fmt.Fprintf(app.Stdout, ", %d failed", res.Failed)
	}
	fmt.Fprintln(app.Stdout)

	if res.Failed > 0 {
		return fmt.Errorf("%d artifacts could not be removed", res.Failed)
	}
	return nil
}

// RunStyles prints the available styles.
func RunStyles(ctx context.Context, app *App) error {
	catalog, err := app.Styles(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(app.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tFONT\tPRIMARY\tDESCRIPTION")
	for _, s := range catalog.List() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Name, s.Theme.FontFamily, s.Theme.PrimaryColor, s.Description)
	}
	return tw.Flush()
}
