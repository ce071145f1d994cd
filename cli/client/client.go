// Package client holds the contact book commands run against the API.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/VictoriaMetrics/metrics"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/oaiiae/contactbook/contactstore"
	"github.com/oaiiae/contactbook/gateway"
	"github.com/oaiiae/contactbook/model"
	"github.com/oaiiae/contactbook/query"
)

type APIOptions struct {
	API string `doc:"base url of the contacts api" default:"http://localhost:3000/api"`
}

// App is one client session: a store synchronized with the API and a view over it.
type App struct {
	Store   *contactstore.Store
	View    *query.View
	Out     io.Writer
	Metrics *metrics.Set

	logger *slog.Logger
}

func NewApp(options *APIOptions, logger *slog.Logger, out io.Writer) (*App, error) {
	set := metrics.NewSet()
	gw, err := gateway.New(options.API, gateway.WithLogger(logger), gateway.WithMetrics(set))
	if err != nil {
		return nil, err
	}
	view, err := query.NewView(query.DefaultViewSize)
	if err != nil {
		return nil, err
	}
	return &App{
		Store: contactstore.New(gw,
			contactstore.WithLogger(logger),
			contactstore.WithNotifier(contactstore.LogNotifier{Logger: logger}),
		),
		View:    view,
		Out:     out,
		Metrics: set,
		logger:  logger,
	}, nil
}

// LogMetrics logs the requests made so far in the Prometheus text format,
// at debug level.
func (a *App) LogMetrics(ctx context.Context) {
	if !a.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	var buf bytes.Buffer
	a.Metrics.WritePrometheus(&buf)
	a.logger.LogAttrs(ctx, slog.LevelDebug, "gateway metrics", slog.String("metrics", buf.String()))
}

// Filter selects the visible contacts.
type Filter struct {
	Group    model.GroupID
	Keywords string
}

// Load refreshes groups and contacts.
func (a *App) Load(ctx context.Context) error {
	if err := a.Store.RefreshGroups(ctx); err != nil {
		return err
	}
	return a.Store.RefreshContacts(ctx)
}

// Visible returns the contacts selected by f.
func (a *App) Visible(f Filter) []model.Contact {
	snap := a.Store.Snapshot()
	return a.View.Visible(snap.Revision, snap.Contacts, f.Group, f.Keywords)
}

// List prints one page of the contacts selected by f.
func (a *App) List(ctx context.Context, f Filter, page, size int) error {
	if !query.ValidPageSize(size) {
		return fmt.Errorf("page size must be one of %v", query.PageSizes)
	}
	if err := a.Load(ctx); err != nil {
		return err
	}

	visible := a.Visible(f)
	pages := query.Pages(len(visible), size)
	if page < 1 || page > pages {
		return fmt.Errorf("page must be between 1 and %d", pages)
	}

	rows := make([][]string, 0, size)
	for _, c := range query.Page(visible, page-1, size) {
		rows = append(rows, query.Row(&c))
	}
	fmt.Fprintln(a.Out, table.New().
		Border(lipgloss.NormalBorder()).
		Headers(query.Columns...).
		Rows(rows...).
		String())
	fmt.Fprintf(a.Out, "page %d/%d, %d of %d contacts\n", page, pages, len(visible), len(a.Store.Contacts()))
	return nil
}

// ListGroups prints the groups.
func (a *App) ListGroups(ctx context.Context) error {
	if err := a.Store.RefreshGroups(ctx); err != nil {
		return err
	}
	rows := [][]string{}
	for _, g := range a.Store.Groups() {
		rows = append(rows, []string{fmt.Sprint(g.ID), g.Name})
	}
	fmt.Fprintln(a.Out, table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Name").
		Rows(rows...).
		String())
	return nil
}

// Export writes the contacts selected by f as CSV.
func (a *App) Export(ctx context.Context, f Filter, w io.Writer) error {
	if err := a.Load(ctx); err != nil {
		return err
	}
	return query.WriteCSV(w, a.Visible(f))
}

// Contact returns the loaded contact id.
func (a *App) Contact(id model.ContactID) (model.Contact, bool) {
	for _, c := range a.Store.Contacts() {
		if c.ID == id {
			return c, true
		}
	}
	return model.Contact{}, false
}
