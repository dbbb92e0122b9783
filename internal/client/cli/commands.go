package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/gophschedule/internal/cipherx"
	"github.com/dmitrijs2005/gophschedule/internal/client/index"
	"github.com/dmitrijs2005/gophschedule/internal/client/models"
	"github.com/dmitrijs2005/gophschedule/internal/client/services"
	"github.com/dmitrijs2005/gophschedule/internal/common"
)

const defaultDurationMinutes = "60"

// writer authorizes the wallet against the store once and caches the
// resulting schedule service.
func (a *App) writer(ctx context.Context) (*services.ScheduleService, error) {
	if a.schedule != nil {
		return a.schedule, nil
	}
	if !a.hasWallet() {
		return nil, fmt.Errorf("%w: no wallet loaded, run keygen first", common.ErrorUnauthorized)
	}
	w, err := a.backend.Authorize(ctx, a.cred)
	if err != nil {
		return nil, err
	}
	idx := index.NewManager(a.backend.Reader, w, a.logger)
	a.schedule = services.NewScheduleService(a.backend.Reader, w, idx, a.cipher, a.logger)
	return a.schedule, nil
}

// List refreshes the schedule and prints it newest first. When the store is
// unreachable the last known schedule is shown.
func (a *App) List(ctx context.Context) error {
	recs, err := a.sync.Refresh(ctx)
	switch {
	case errors.Is(err, common.ErrUnavailable):
		a.setMode(ModeOffline)
		fmt.Fprintln(a.out, "store unavailable, showing last known schedule")
	case err != nil:
		return err
	default:
		a.setMode(ModeOnline)
	}

	if len(recs) == 0 {
		fmt.Fprintln(a.out, "No schedule items.")
		return nil
	}

	now := a.now()
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tTITLE\tCATEGORY\tSTATUS\tDURATION\tCREATED")
	for _, r := range recs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Time, r.Title, r.Category, r.EffectiveStatus(now),
			durationLabel(r.EncryptedDuration), r.CreatedTime().In(now.Location()).Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

// durationLabel never shows the value itself. Untagged values were written
// by older clients before durations were encrypted.
func durationLabel(v string) string {
	if cipherx.IsTagged(v) {
		return "(encrypted)"
	}
	return "(plaintext)"
}

// Add prompts for a new item and stores it.
func (a *App) Add(ctx context.Context) error {
	svc, err := a.writer(ctx)
	if err != nil {
		return err
	}

	title, err := GetSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return fmt.Errorf("get title: %w", err)
	}
	when, err := GetSimpleText(a.reader, "Enter time (YYYY-MM-DDTHH:MM)", a.out)
	if err != nil {
		return fmt.Errorf("get time: %w", err)
	}
	durText, err := GetWithDefault(a.reader, "Enter duration in minutes", defaultDurationMinutes, a.out)
	if err != nil {
		return fmt.Errorf("get duration: %w", err)
	}
	duration, err := strconv.ParseInt(durText, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: duration %q is not a number", common.ErrInvalidInput, durText)
	}
	category, err := GetWithDefault(a.reader, "Enter category ("+categoryList()+")", string(models.DefaultCategory), a.out)
	if err != nil {
		return fmt.Errorf("get category: %w", err)
	}

	rec, err := svc.Create(ctx, models.CreateInput{
		Title:    title,
		Time:     when,
		Duration: duration,
		Category: models.Category(strings.ToLower(category)),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created %s\n", rec.ID)
	return a.List(ctx)
}

// Complete marks the item id as completed and refreshes.
func (a *App) Complete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: usage: complete <id>", common.ErrInvalidInput)
	}
	svc, err := a.writer(ctx)
	if err != nil {
		return err
	}
	rec, err := svc.MarkComplete(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Completed %s %s\n", rec.ID, rec.Title)
	return a.List(ctx)
}

// Reveal asks the wallet to sign the session challenge and shows the
// decrypted duration of id.
func (a *App) Reveal(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: usage: reveal <id>", common.ErrInvalidInput)
	}
	if !a.hasWallet() {
		return fmt.Errorf("%w: no wallet loaded, run keygen first", common.ErrorUnauthorized)
	}

	rec, ok := a.sync.Find(id)
	if !ok {
		if _, err := a.sync.Refresh(ctx); err != nil && !errors.Is(err, common.ErrUnavailable) {
			return err
		}
		if rec, ok = a.sync.Find(id); !ok {
			return fmt.Errorf("%w: %s", common.ErrorNotFound, id)
		}
	}

	v, err := a.reveal.Reveal(ctx, rec, a.cred)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, v.String())
	return nil
}

// Hide drops the decrypted view.
func (a *App) Hide(ctx context.Context) error {
	a.reveal.Clear()
	return nil
}

// Stats prints the dashboard summary of the current snapshot.
func (a *App) Stats(ctx context.Context) error {
	if len(a.sync.Snapshot()) == 0 {
		if _, err := a.sync.Refresh(ctx); err != nil && !errors.Is(err, common.ErrUnavailable) {
			return err
		}
	}
	st := services.Summarize(a.sync.Snapshot(), a.now())
	fmt.Fprintf(a.out, "Total: %d  Completed: %d  Pending: %d  Missed: %d  Productivity: %d%%\n",
		st.Total, st.Completed, st.Pending, st.Missed, st.Productivity)
	return nil
}

// Whoami prints the wallet address in use.
func (a *App) Whoami(ctx context.Context) error {
	if !a.hasWallet() {
		fmt.Fprintln(a.out, "no wallet loaded (read-only)")
		return nil
	}
	fmt.Fprintf(a.out, "%s (chain %d)\n", a.cred.Address(), a.cred.ChainID())
	return nil
}

func categoryList() string {
	names := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
