package ui

import (
	"context"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-contacts/internal/book"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/server"
)

// ContactsApp encapsulates the UI state and wires the contact book, the feed
// server and the import fetcher together.
type ContactsApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Book    *book.Book
	Feed    *server.FeedServer
	Fetcher book.VCardFetcher

	SupportedLanguages []string

	// Edit session state: empty means Idle, otherwise Editing(id).
	// Owned by the editor window (see ui_editor.go).
	editingID    string
	editorWindow fyne.Window

	settingsWindow fyne.Window

	// Table state
	rows        []book.Contact
	sortCol     int
	sortAsc     bool
	table       *widget.Table
	searchEntry *widget.Entry
	statusLabel *widget.Label
}

// NewContactsApp constructs the application and wires dependencies.
func NewContactsApp(a fyne.App, ctx context.Context, b *book.Book, feed *server.FeedServer, fetcher book.VCardFetcher) *ContactsApp {
	return &ContactsApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Book:               b,
		Feed:               feed,
		Fetcher:            fetcher,
		SupportedLanguages: config.SupportedLanguages,
		sortCol:            -1, // insertion order until a header is tapped
		sortAsc:            true,
	}
}

// Run loads the book, starts the feed and enters the main UI loop.
func (app *ContactsApp) Run() {
	app.SetupI18n()

	// Surface snapshot write failures as non-blocking notifications. The
	// in-memory book keeps working either way.
	app.Book.OnStorageError = func(err error) {
		app.App.SendNotification(fyne.NewNotification(
			config.TitleStorageWarn, app.GetMsg(config.TKeyNotifStorage)))
	}

	if err := app.Book.Load(app.Ctx); err != nil {
		// A failed load is not fatal: the session continues in memory only.
		slog.Error(config.ErrSnapshotRead,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		app.App.SendNotification(fyne.NewNotification(
			config.TitleStorageWarn, app.GetMsg(config.TKeyNotifStorage)))
	}
	app.publishFeed()

	go func() {
		if err := app.Feed.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyError, err)
			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Feed.Port)))
		}
	}()

	app.buildMainWindow()
	app.Window.ShowAndRun()
}

// publishFeed renders the full collection and swaps it into the feed server.
func (app *ContactsApp) publishFeed() {
	data, err := book.EncodeVCards(app.Book.All())
	if err != nil {
		slog.Error(config.ErrVCardEncode,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return
	}
	app.Feed.Update(data)
}

// statusText renders the contact counter, plural-aware where locales
// provide it.
func (app *ContactsApp) statusText() string {
	count := app.Book.Count()
	if count == 0 {
		if msg := app.GetMsg(config.TKeyStatusEmpty); msg != config.TKeyStatusEmpty {
			return msg
		}
		return fmt.Sprintf(config.FallbackStatusCount, 0)
	}

	if app.Localizer != nil {
		msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
			MessageID:    config.TKeyStatusCount,
			TemplateData: map[string]interface{}{"Count": count},
			PluralCount:  count,
		})
		if err == nil && msg != "" {
			return msg
		}
	}
	return fmt.Sprintf(config.FallbackStatusCount, count)
}
