package client_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oaiiae/contactbook/cli/api"
	"github.com/oaiiae/contactbook/cli/client"
)

type harness struct {
	t      *testing.T
	apiURL string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	srv := httptest.NewServer(api.NewRouter(
		&api.RouterOptions{EndpointsPrefix: "/api"}, api.NewStores(true),
		"test", "0.0.0", "", "", slog.New(slog.DiscardHandler),
	))
	t.Cleanup(srv.Close)
	return &harness{t: t, apiURL: srv.URL + "/api"}
}

// run executes the command line args and returns stdout, stderr and the error.
func (h *harness) run(args ...string) (string, string, error) {
	h.t.Helper()
	root := &cobra.Command{Use: "contactbook", SilenceUsage: true, SilenceErrors: true}
	root.AddCommand(client.Commands(func(out io.Writer) (*client.App, error) {
		return client.NewApp(&client.APIOptions{API: h.apiURL}, slog.New(slog.DiscardHandler), out)
	})...)

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestList(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run("list")
	require.NoError(t, err)
	assert.Contains(t, out, "First Name")
	assert.Contains(t, out, "john")
	assert.Contains(t, out, "jane")
	assert.Contains(t, out, "page 1/1, 2 of 2 contacts")

	out, _, err = h.run("list", "--search", "DOE")
	require.NoError(t, err)
	assert.NotContains(t, out, "john")
	assert.Contains(t, out, "1 of 2 contacts")

	out, _, err = h.run("list", "--group", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "john")
	assert.NotContains(t, out, "jane")

	_, _, err = h.run("list", "--page-size", "7")
	assert.Error(t, err)
	_, _, err = h.run("list", "--page", "2")
	assert.Error(t, err)
}

func TestAddEditDelete(t *testing.T) {
	h := newHarness(t)

	_, stderr, err := h.run("add", "--last-name", "Lovelace", "--phone", "18l5")
	require.Error(t, err)
	assert.Contains(t, stderr, "firstName: First Name is required")
	assert.Contains(t, stderr, "phone: Phone number is invalid")

	_, _, err = h.run("add", "--first-name", "Ada", "--last-name", "Lovelace",
		"--country", "UK", "--city", "London", "--phone", "1815", "--group", "9")
	assert.ErrorContains(t, err, "unknown group 9")

	out, _, err := h.run("add", "--first-name", "Ada", "--last-name", "Lovelace",
		"--country", "UK", "--city", "London", "--phone", "1815", "--group", "2")
	require.NoError(t, err)
	assert.Equal(t, "contact 3 saved\n", out)

	out, _, err = h.run("edit", "3", "--city", "Marylebone")
	require.NoError(t, err)
	assert.Equal(t, "contact 3 saved\n", out)

	out, _, err = h.run("export", "--search", "ada")
	require.NoError(t, err)
	assert.Equal(t, ""+
		"ID,First Name,Last Name,Country,City,Street,Zipcode,Phone,Email,Groups\n"+
		"3,Ada,Lovelace,UK,Marylebone,,,1815,,work\n", out)

	_, _, err = h.run("edit", "42", "--city", "Nowhere")
	assert.ErrorContains(t, err, "contact 42 not found")

	_, _, err = h.run("delete", "3", "42")
	assert.ErrorContains(t, err, "1 of 2 deletes failed")

	out, _, err = h.run("list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Ada")

	_, _, err = h.run("delete", "zero")
	assert.Error(t, err)
}

func TestExportToFile(t *testing.T) {
	h := newHarness(t)
	file := filepath.Join(t.TempDir(), "contacts.csv")

	_, _, err := h.run("export", "-o", file)
	require.NoError(t, err)
	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(b), "1,john,smith,USA,Springfield,,,5550100,john.smith@example.com,family\n")
}

func TestGroups(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run("groups", "add", "VIP")
	require.NoError(t, err)
	assert.Equal(t, "group 3 saved\n", out)

	out, _, err = h.run("groups", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "family")
	assert.Contains(t, out, "VIP")
}

func TestUnreachableAPI(t *testing.T) {
	srv := httptest.NewServer(nil)
	h := &harness{t: t, apiURL: srv.URL + "/api"}
	srv.Close()

	_, _, err := h.run("list")
	assert.Error(t, err)
}

func TestCommandLogsGatewayMetrics(t *testing.T) {
	h := newHarness(t)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	root := &cobra.Command{Use: "contactbook", SilenceUsage: true, SilenceErrors: true}
	root.AddCommand(client.Commands(func(out io.Writer) (*client.App, error) {
		return client.NewApp(&client.APIOptions{API: h.apiURL}, logger, out)
	})...)
	root.SetOut(io.Discard)
	root.SetArgs([]string{"list"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	assert.Contains(t, logs.String(), "gateway metrics")
	assert.Contains(t, logs.String(), "contactbook_gateway_requests_total")
}

func TestLogMetricsQuietAboveDebug(t *testing.T) {
	h := newHarness(t)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelInfo}))
	app, err := client.NewApp(&client.APIOptions{API: h.apiURL}, logger, io.Discard)
	require.NoError(t, err)
	require.NoError(t, app.Load(context.Background()))

	app.LogMetrics(context.Background())
	assert.NotContains(t, logs.String(), "gateway metrics")

	var buf bytes.Buffer
	app.Metrics.WritePrometheus(&buf)
	assert.Contains(t, buf.String(), "contactbook_gateway_requests_total")
}
