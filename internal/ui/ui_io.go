package ui

import (
	"errors"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"github.com/tartampluch/go-contacts/internal/book"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/zalando/go-keyring"
)

// importFromFile lets the user pick a .vcf file and merges its cards into
// the book as new records.
func (app *ContactsApp) importFromFile() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		defer func() { _ = r.Close() }()

		slog.Info(config.MsgImportStart,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyFile, r.URI().Name())

		forms, err := book.DecodeVCards(r)
		if err != nil {
			app.notifyImportError(err)
			return
		}
		added, skipped := app.Book.ImportForms(app.Ctx, forms)
		app.finishImport(added, skipped)
	}, app.Window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
	d.Show()
}

// importFromURL performs a one-shot download of the vCard source configured
// in settings. The password lives in the OS keyring, never in preferences.
func (app *ContactsApp) importFromURL() {
	url := app.Preferences.String(config.PrefImportURL)
	if url == "" {
		app.notifyImportError(errors.New(config.ErrURLEmpty))
		return
	}

	user := app.Preferences.String(config.PrefImportUser)
	pass := ""
	if user != "" {
		if p, err := keyring.Get(config.KeyringService, user); err == nil {
			pass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyError, err)
		}
	}

	slog.Info(config.MsgImportStart,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyURL, url)

	// Network work happens off the event loop; the UI resync hops back on.
	go func() {
		rc, err := app.Fetcher.Fetch(app.Ctx, url, user, pass)
		if err != nil {
			app.notifyImportError(err)
			return
		}
		defer func() { _ = rc.Close() }()

		forms, err := book.DecodeVCards(rc)
		if err != nil {
			app.notifyImportError(err)
			return
		}

		added, skipped := app.Book.ImportForms(app.Ctx, forms)
		fyne.Do(func() {
			app.finishImport(added, skipped)
		})
	}()
}

// exportToFile writes the full collection to a user-chosen .vcf file.
func (app *ContactsApp) exportToFile() {
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer func() { _ = wc.Close() }()

		data, err := book.EncodeVCards(app.Book.All())
		if err == nil {
			_, err = wc.Write(data)
		}
		if err != nil {
			dialog.ShowError(err, app.Window)
			return
		}

		slog.Info(config.MsgExportDone,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyCount, app.Book.Count(),
			config.LogKeyFile, wc.URI().Name())
		app.App.SendNotification(fyne.NewNotification(
			config.AppName, app.GetMsg(config.TKeyNotifExportOK)))
	}, app.Window)
	d.SetFileName(config.SnapshotSlot + config.ExtVCF)
	d.Show()
}

// finishImport resyncs the UI and reports the outcome.
func (app *ContactsApp) finishImport(added, skipped int) {
	app.afterMutation()

	msg := app.GetMsgData(config.TKeyNotifImportOK, map[string]interface{}{
		"Added":   added,
		"Skipped": skipped,
	})
	if msg == config.TKeyNotifImportOK {
		msg = fmt.Sprintf(config.FallbackImportOK, added, skipped)
	}
	app.App.SendNotification(fyne.NewNotification(config.AppName, msg))
}

// notifyImportError logs the failure and raises a notification.
func (app *ContactsApp) notifyImportError(err error) {
	slog.Error(config.ErrVCardParse,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyError, err)
	app.App.SendNotification(fyne.NewNotification(
		config.TitleImportError, app.GetMsg(config.TKeyNotifImportErr)))
}
