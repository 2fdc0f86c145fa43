package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds references to UI elements to simplify data retrieval
// during save.
type settingsWidgets struct {
	langSelect    *widget.Select
	backendSelect *widget.Select
	entryPort     *NumericalEntry
	urlEntry      *widget.Entry
	userEntry     *widget.Entry
	passEntry     *widget.Entry
}

// ShowSettingsWindow displays the configuration dialog.
func (app *ContactsApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug("Settings window already open, requesting focus", config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info("Opening settings window", config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := &settingsWidgets{}

	// --- 1. General: Language ---
	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLang)

	generalForm := widget.NewForm(itemLang)
	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", generalForm)

	// --- 2. Storage: Backend & Feed Port ---
	// Both take effect at next launch: the snapshot slot and the feed
	// listener are opened once during startup.
	backendLabels := map[string]string{
		config.StorageBackendFile:   app.GetMsg(config.TKeyBackendFile),
		config.StorageBackendSQLite: app.GetMsg(config.TKeyBackendSQL),
	}
	sw.backendSelect = widget.NewSelect([]string{
		backendLabels[config.StorageBackendFile],
		backendLabels[config.StorageBackendSQLite],
	}, nil)
	sw.backendSelect.SetSelected(backendLabels[app.Preferences.StringWithFallback(config.PrefStorageBackend, config.DefaultBackend)])

	sw.entryPort = NewNumericalEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefFeedPort, config.DefaultPort))
	sw.entryPort.Validator = func(s string) error {
		if s == "" {
			return errors.New(app.GetMsg(config.TKeyErrPortReq))
		}
		port, err := strconv.Atoi(s)
		if err != nil {
			return errors.New(app.GetMsg(config.TKeyErrPortNum))
		}
		if port < config.MinPort || port > config.MaxPort {
			return errors.New(app.GetMsg(config.TKeyErrPortRange))
		}
		return nil
	}

	itemBackend := widget.NewFormItem(app.GetMsg(config.TKeyLblBackend), sw.backendSelect)
	itemBackend.HintText = app.GetMsg(config.TKeyHelpBackend)

	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	storageForm := widget.NewForm(itemBackend, itemPort)
	storageCard := widget.NewCard(app.GetMsg(config.TKeyLblStorage), "", storageForm)

	// --- 3. Remote Import Source ---
	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.SetText(app.Preferences.String(config.PrefImportURL))
	sw.urlEntry.PlaceHolder = config.PlaceholderURL

	sw.userEntry = widget.NewEntry()
	sw.userEntry.SetText(app.Preferences.String(config.PrefImportUser))

	sw.passEntry = widget.NewPasswordEntry()
	if user := sw.userEntry.Text; user != "" {
		if pwd, err := keyring.Get(config.KeyringService, user); err == nil {
			sw.passEntry.SetText(pwd)
		}
	}

	itemURL := widget.NewFormItem(app.GetMsg(config.TKeyLblURL), sw.urlEntry)
	itemURL.HintText = app.GetMsg(config.TKeyHelpURL)
	itemUser := widget.NewFormItem(app.GetMsg(config.TKeyLblUser), sw.userEntry)
	itemPass := widget.NewFormItem(app.GetMsg(config.TKeyLblPass), sw.passEntry)

	remoteForm := widget.NewForm(itemURL, itemUser, itemPass)
	remoteCard := widget.NewCard(app.GetMsg(config.TKeyLblRemote), "", remoteForm)

	// --- Actions ---
	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
		if err := sw.entryPort.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw, w)
	})
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	// --- Footer ---
	footerLabel := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	paddedContent := container.NewPadded(container.NewVBox(
		generalCard,
		storageCard,
		remoteCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	w.SetContent(paddedContent)
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, paddedContent.MinSize().Height))
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })
	w.Show()
}

// saveSettings persists the preferences and refreshes localized UI texts.
func (app *ContactsApp) saveSettings(sw *settingsWidgets, w fyne.Window) {
	slog.Info(config.MsgSavingPrefs, config.LogKeyComponent, config.CompUISet)

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)

	// Map the localized backend label back to its config code.
	backend := config.StorageBackendFile
	if sw.backendSelect.Selected == app.GetMsg(config.TKeyBackendSQL) {
		backend = config.StorageBackendSQLite
	}
	app.Preferences.SetString(config.PrefStorageBackend, backend)

	if sw.entryPort.Text != "" {
		app.Preferences.SetString(config.PrefFeedPort, sw.entryPort.Text)
	}

	app.Preferences.SetString(config.PrefImportURL, sw.urlEntry.Text)
	app.Preferences.SetString(config.PrefImportUser, sw.userEntry.Text)

	// Save password to keyring only if provided.
	if sw.userEntry.Text != "" && sw.passEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, sw.userEntry.Text, sw.passEntry.Text); err != nil {
			slog.Error("Failed to save credentials to keyring",
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUISet)
		}
	}

	app.UpdateLocalizer()
	app.refreshTexts()
	w.Close()
}
