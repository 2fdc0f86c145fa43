package ui

import (
	"context"
	"io"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-contacts/internal/book"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/server"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockFetcher simulates the book.VCardFetcher interface using testify/mock.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// MemorySnapshot is a working in-memory persistence slot.
type MemorySnapshot struct {
	data []byte
}

func (s *MemorySnapshot) Load(_ context.Context) ([]byte, error) { return s.data, nil }
func (s *MemorySnapshot) Save(_ context.Context, data []byte) error {
	s.data = data
	return nil
}

// -----------------------------------------------------------------------------
// Test Setup Helper
// -----------------------------------------------------------------------------

// setupTestApp initializes a headless Fyne app with mocked dependencies.
func setupTestApp(t *testing.T) (*ContactsApp, *MockFetcher) {
	a := test.NewApp()

	b := book.New(&MemorySnapshot{}, MockClock{CurrentTime: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)})
	feed := server.NewFeedServer("0")
	fetcher := new(MockFetcher)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	app := NewContactsApp(a, ctx, b, feed, fetcher)

	// Manually load I18n as Run() is skipped
	app.SetupI18n()

	return app, fetcher
}

func addJane(app *ContactsApp) book.Contact {
	return app.Book.Add(app.Ctx, book.FormData{
		FirstName: "Jane", LastName: "Doe", UserName: "jdoe",
		Phone: "555-0100", Email: "jane@example.com",
	})
}

func addBob(app *ContactsApp) book.Contact {
	return app.Book.Add(app.Ctx, book.FormData{
		FirstName: "Bob", LastName: "Smith", UserName: "bsmith", Phone: "555-0199",
	})
}

// -----------------------------------------------------------------------------
// Localization Tests
// -----------------------------------------------------------------------------

func TestLocalization_Switching(t *testing.T) {
	app, _ := setupTestApp(t)

	// Case 1: English (Default)
	app.Preferences.SetString(config.PrefLanguage, "en")
	app.UpdateLocalizer()
	assert.Equal(t, "Settings...", app.GetMsg(config.TKeyMenuSettings))

	// Case 2: French
	app.Preferences.SetString(config.PrefLanguage, "fr")
	app.UpdateLocalizer()
	assert.Equal(t, "Paramètres...", app.GetMsg(config.TKeyMenuSettings))
}

func TestLocalization_MissingKeyFallsBackToKey(t *testing.T) {
	app, _ := setupTestApp(t)
	assert.Equal(t, "no_such_key", app.GetMsg("no_such_key"))
}

// -----------------------------------------------------------------------------
// Status Counter Tests
// -----------------------------------------------------------------------------

func TestStatusText(t *testing.T) {
	app, _ := setupTestApp(t)
	app.Preferences.SetString(config.PrefLanguage, "en")
	app.UpdateLocalizer()

	// Empty book uses the explicit zero string.
	assert.Equal(t, "No contacts yet", app.statusText())

	// Singular form.
	addJane(app)
	assert.Equal(t, "1 contact", app.statusText())

	// Plural form.
	addBob(app)
	assert.Equal(t, "2 contacts", app.statusText())
}

func TestStatusText_CountsFullListNotFilteredView(t *testing.T) {
	app, _ := setupTestApp(t)
	addJane(app)
	addBob(app)

	app.Book.Search("doe")
	require.Len(t, app.Book.Filtered(), 1)

	assert.Contains(t, app.statusText(), "2", "Counter reflects the whole book, not the filter")
}

// -----------------------------------------------------------------------------
// Mutation / View Synchronization Tests
// -----------------------------------------------------------------------------

func TestAfterMutation_ClearsActiveSearch(t *testing.T) {
	app, _ := setupTestApp(t)
	addJane(app)
	addBob(app)

	app.buildMainWindow()
	t.Cleanup(app.Window.Close)

	app.searchEntry.SetText("doe")
	require.Len(t, app.rows, 1, "Typing in the search box filters the table")

	app.afterMutation()

	assert.Empty(t, app.searchEntry.Text, "Mutations clear the search box")
	assert.Len(t, app.rows, 2, "The table shows the full list again")
}

func TestSearchEntry_DrivesFilteredView(t *testing.T) {
	app, _ := setupTestApp(t)
	addJane(app)
	addBob(app)

	app.buildMainWindow()
	t.Cleanup(app.Window.Close)

	app.searchEntry.SetText("bsmith")
	require.Len(t, app.rows, 1)
	assert.Equal(t, "Bob", app.rows[0].FirstName)

	app.searchEntry.SetText("")
	assert.Len(t, app.rows, 2)
}

// -----------------------------------------------------------------------------
// Display Sort Tests
// -----------------------------------------------------------------------------

func TestApplySort(t *testing.T) {
	app, _ := setupTestApp(t)
	addJane(app) // Jane Doe / jdoe
	addBob(app)  // Bob Smith / bsmith
	app.Book.Add(app.Ctx, book.FormData{
		FirstName: "ann", LastName: "adams", UserName: "Zara", Phone: "1",
	})

	// Default: insertion order, untouched.
	app.rows = app.Book.Filtered()
	app.applySort()
	assert.Equal(t, "Jane", app.rows[0].FirstName)

	// Sort by name, ascending, case-insensitive.
	app.sortCol = config.ColIDName
	app.sortAsc = true
	app.applySort()
	assert.Equal(t, "ann", app.rows[0].FirstName)
	assert.Equal(t, "Bob", app.rows[1].FirstName)
	assert.Equal(t, "Jane", app.rows[2].FirstName)

	// Descending inverts.
	app.sortAsc = false
	app.applySort()
	assert.Equal(t, "Jane", app.rows[0].FirstName)

	// Sort by username: bsmith < jdoe < Zara (case folded).
	app.sortCol = config.ColIDUserName
	app.sortAsc = true
	app.applySort()
	assert.Equal(t, "bsmith", app.rows[0].UserName)
	assert.Equal(t, "jdoe", app.rows[1].UserName)
	assert.Equal(t, "Zara", app.rows[2].UserName)
}

func TestApplySort_IsPresentationalOnly(t *testing.T) {
	app, _ := setupTestApp(t)
	jane := addJane(app)
	addBob(app)

	app.rows = app.Book.Filtered()
	app.sortCol = config.ColIDName
	app.applySort()

	all := app.Book.All()
	assert.Equal(t, jane.ID, all[0].ID, "The book keeps insertion order regardless of display sort")
}
