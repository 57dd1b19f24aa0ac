//go:build e2e

// Package e2e drives the task page against a live backend.
//
//	TASKSYNC_E2E_BASE_URL=https://... go test -tags e2e ./internal/e2e/
package e2e

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"tasksync/internal/backend/restapi"
	"tasksync/internal/tasksync"
	"tasksync/internal/testutil"
	"tasksync/internal/webui"
)

const (
	baseURLVar = "TASKSYNC_E2E_BASE_URL"
	opTimeout  = 15 * time.Second
)

// browser is a page session: the web UI in front of the live backend,
// reached through a client that does not follow redirects.
type browser struct {
	base string
	http *http.Client
	logs *syncBuffer
}

// syncBuffer collects server log lines written from handler goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newBrowser(t *testing.T) *browser {
	t.Helper()
	base := os.Getenv(baseURLVar)
	if base == "" {
		t.Skipf("%s not set", baseURLVar)
	}
	svc, err := restapi.New(base, restapi.WithTimeout(opTimeout))
	require.NoError(t, err)

	logs := &syncBuffer{}
	logger := log.New(logs, "", 0)
	list := tasksync.NewListView()
	client := tasksync.New(svc, list, tasksync.WithLogger(logger))
	ui := webui.NewServer(client, list, logger, webui.WithOpTimeout(opTimeout))

	srv := httptest.NewServer(ui.Handler())
	t.Cleanup(srv.Close)

	return &browser{
		base: srv.URL,
		http: &http.Client{
			Timeout: 2 * opTimeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logs: logs,
	}
}

// visit loads the page. Failed fetches only show up in the log, the way
// the page itself treats them.
func (b *browser) visit(t *testing.T) *html.Node {
	t.Helper()
	resp, err := b.http.Get(b.base + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	if strings.Contains(b.logs.String(), "failed to fetch") {
		t.Logf("backend unreachable: %s", b.logs.String())
	}
	return testutil.ParseHTML(t, resp.Body)
}

func (b *browser) submit(t *testing.T, action string, form url.Values) {
	t.Helper()
	resp, err := b.http.PostForm(b.base+action, form)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode, "POST %s", action)
}

func (b *browser) item(t *testing.T, text string) (testutil.PageItem, bool) {
	t.Helper()
	return testutil.FindItem(testutil.PageItems(t, b.visit(t)), text)
}

// create types text into #task-input and submits the form.
func (b *browser) create(t *testing.T, text string) testutil.PageItem {
	t.Helper()
	doc := b.visit(t)
	form := testutil.ElementByID(doc, "task-form")
	require.NotNil(t, form)
	action, _ := testutil.Attr(form, "action")
	name, _ := testutil.Attr(testutil.ElementByID(doc, "task-input"), "name")

	b.submit(t, action, url.Values{name: {text}})

	it, ok := b.item(t, text)
	require.True(t, ok, "created task %q not visible", text)
	t.Cleanup(func() {
		if it, ok := b.item(t, text); ok {
			b.http.PostForm(b.base+it.Delete, nil)
		}
	})
	return it
}

func title(prefix string) string {
	return fmt.Sprintf("%s %s", prefix, uuid.NewString())
}

func TestLoadsApplication(t *testing.T) {
	b := newBrowser(t)
	doc := b.visit(t)

	assert.Contains(t, testutil.TextOf(doc), "Task Manager")
	assert.NotNil(t, testutil.ElementByID(doc, "task-input"))
	assert.True(t, testutil.HasSubmitButton(doc))
	assert.NotNil(t, testutil.ElementByID(doc, "task-list"))
}

func TestCreatesTask(t *testing.T) {
	b := newBrowser(t)
	it := b.create(t, title("Test Task"))

	assert.False(t, it.Checked)
	assert.Equal(t, "text-decoration: none", it.Style)
}

func TestMarksTaskCompleted(t *testing.T) {
	b := newBrowser(t)
	text := title("Complete Task")
	it := b.create(t, text)

	// Checking the box submits the inverted completed value.
	b.submit(t, it.Toggle, url.Values{"completed": {"true"}})

	it, ok := b.item(t, text)
	require.True(t, ok)
	assert.True(t, it.Checked)
	assert.Equal(t, "text-decoration: line-through", it.Style)
}

func TestDeletesTask(t *testing.T) {
	b := newBrowser(t)
	text := title("Delete Task")
	it := b.create(t, text)
	require.Contains(t, it.Buttons, "Deletar")

	b.submit(t, it.Delete, nil)

	_, ok := b.item(t, text)
	assert.False(t, ok)
}

func TestHandlesMultipleTasks(t *testing.T) {
	b := newBrowser(t)
	texts := []string{title("Task 1"), title("Task 2"), title("Task 3")}
	for _, text := range texts {
		b.create(t, text)
	}

	items := testutil.PageItems(t, b.visit(t))
	for _, text := range texts {
		_, ok := testutil.FindItem(items, text)
		assert.True(t, ok, "task %q not visible", text)
	}
}
