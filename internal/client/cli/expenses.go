package cli

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/expensetracker/internal/client/models"
	"github.com/dmitrijs2005/expensetracker/internal/filex"
	"github.com/dmitrijs2005/expensetracker/internal/netx"
)

const dateLayout = "2006-01-02"

// download is a seam for netx.DownloadPresignedURL.
var download = netx.DownloadPresignedURL

func (a *App) List(ctx context.Context) error {
	list, total, err := a.expenseService.List(ctx)
	if err != nil {
		a.report(err)
		return err
	}

	if len(list) == 0 {
		fmt.Fprintln(a.out, "No expenses yet.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tCATEGORY\tTITLE\tAMOUNT")
	for _, e := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Date.Format(dateLayout), e.Category, e.Title, e.Amount.StringFixed(2))
	}
	fmt.Fprintf(tw, "\t\t\tTotal\t%s\n", total.StringFixed(2))
	return tw.Flush()
}

func (a *App) Add(ctx context.Context) error {
	var in models.ExpenseInput

	title, err := getSimpleText(a.reader, "Title (optional)", a.out)
	if err != nil {
		return err
	}
	in.Title = optional(title)

	amount, err := getSimpleText(a.reader, "Amount", a.out)
	if err != nil {
		return err
	}
	in.Amount = optional(amount)

	category, err := getSimpleText(a.reader, "Category", a.out)
	if err != nil {
		return err
	}
	in.Category = optional(category)

	today := time.Now().Format(dateLayout)
	date, err := getSimpleText(a.reader, "Date ["+today+"]", a.out)
	if err != nil {
		return err
	}
	if date == "" {
		date = today
	}
	in.Date = &date

	note, err := getSimpleText(a.reader, "Note (optional)", a.out)
	if err != nil {
		return err
	}
	in.Note = optional(note)

	e, err := a.expenseService.Add(ctx, in)
	if err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintf(a.out, "Added %s (%s)\n", e.Title, e.ID)
	return nil
}

// Edit prompts for each field; an empty answer keeps the current value.
func (a *App) Edit(ctx context.Context, id string) error {
	var in models.ExpenseInput

	prompts := []struct {
		label string
		dst   **string
	}{
		{"New title", &in.Title},
		{"New amount", &in.Amount},
		{"New category", &in.Category},
		{"New date (" + dateLayout + ")", &in.Date},
		{"New note", &in.Note},
	}

	fmt.Fprintln(a.out, "Leave a field empty to keep it.")
	for _, p := range prompts {
		v, err := getSimpleText(a.reader, p.label, a.out)
		if err != nil {
			return err
		}
		*p.dst = optional(v)
	}

	e, err := a.expenseService.Edit(ctx, id, in)
	if err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintf(a.out, "Updated %s\n", e.Title)
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.expenseService.Delete(ctx, id); err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintln(a.out, "Expense Deleted.")
	return nil
}

func (a *App) Export(ctx context.Context) error {
	e, err := a.expenseService.Export(ctx)
	if err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintf(a.out, "Exported %d expenses to %s\n%s\n", e.Count, e.Key, e.URL)

	if a.exportDir == "" {
		return nil
	}
	local, err := a.saveExport(ctx, e)
	if err != nil {
		fmt.Fprintf(a.out, "Could not download the export: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Saved to %s\n", local)
	return nil
}

func (a *App) saveExport(ctx context.Context, e *models.Export) (string, error) {
	dir, err := filex.EnsureSubdDir(filepath.Dir(a.exportDir), filepath.Base(a.exportDir))
	if err != nil {
		return "", err
	}

	local := filepath.Join(dir, path.Base(e.Key))
	f, err := os.Create(local)
	if err != nil {
		return "", err
	}

	if _, err := download(ctx, e.URL, f); err != nil {
		_ = f.Close()
		_ = os.Remove(local)
		return "", err
	}
	return local, f.Close()
}
