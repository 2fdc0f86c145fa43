package ui

import (
	"log/slog"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-contacts/internal/config"
)

// buildMainWindow assembles the contact list window: search bar, sortable
// table, status counter and the application menu.
func (app *ContactsApp) buildMainWindow() {
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w
	w.Resize(fyne.NewSize(config.MainWinWidth, config.MainWinHeight))
	w.SetMainMenu(app.buildMainMenu())

	app.searchEntry = widget.NewEntry()
	app.searchEntry.PlaceHolder = app.GetMsg(config.TKeySearchHolder)
	app.searchEntry.OnChanged = func(query string) {
		app.Book.Search(query)
		app.refreshContacts()
	}

	btnAdd := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnAdd), theme.ContentAddIcon(), func() {
		app.ShowContactEditor(nil)
	})
	btnAdd.Importance = widget.HighImportance

	app.statusLabel = widget.NewLabel(app.statusText())
	app.statusLabel.TextStyle = fyne.TextStyle{Italic: true}

	app.table = app.buildContactTable()
	app.refreshContacts()

	topBar := container.NewBorder(nil, nil, nil, btnAdd, app.searchEntry)
	content := container.NewBorder(topBar, app.statusLabel, nil, nil, app.table)
	w.SetContent(content)
}

// buildMainMenu constructs the File menu with import/export and settings.
func (app *ContactsApp) buildMainMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu(app.GetMsg(config.TKeyMenuFile),
		fyne.NewMenuItem(app.GetMsg(config.TKeyMenuImportFile), app.importFromFile),
		fyne.NewMenuItem(app.GetMsg(config.TKeyMenuImportURL), app.importFromURL),
		fyne.NewMenuItem(app.GetMsg(config.TKeyMenuExport), app.exportToFile),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), app.ShowSettingsWindow),
	)
	return fyne.NewMainMenu(fileMenu)
}

// refreshContacts re-reads the filtered view, reapplies the display sort and
// redraws the table and counter. It must run on the Fyne event loop.
func (app *ContactsApp) refreshContacts() {
	app.rows = app.Book.Filtered()
	app.applySort()
	if app.table != nil {
		app.table.Refresh()
	}
	if app.statusLabel != nil {
		app.statusLabel.SetText(app.statusText())
	}
}

// applySort orders the display rows by the active header column. The sort is
// purely presentational: the book keeps insertion order, and sortCol -1
// shows it unchanged.
func (app *ContactsApp) applySort() {
	if app.sortCol < 0 {
		return
	}

	sort.SliceStable(app.rows, func(i, j int) bool {
		a, b := app.rows[i], app.rows[j]
		var less bool
		switch app.sortCol {
		case config.ColIDUserName:
			less = strings.ToLower(a.UserName) < strings.ToLower(b.UserName)
		case config.ColIDPhone:
			less = a.Phone < b.Phone
		case config.ColIDEmail:
			less = strings.ToLower(a.Email) < strings.ToLower(b.Email)
		default: // config.ColIDName
			less = strings.ToLower(a.FullName()) < strings.ToLower(b.FullName())
		}
		if !app.sortAsc {
			return !less
		}
		return less
	})

	slog.Debug(config.LogMsgSorted,
		config.LogKeyComponent, config.CompUI,
		config.LogKeySortCol, app.sortCol,
		config.LogKeySortAsc, app.sortAsc)
}

// buildContactTable creates the table widget rendering the filtered view.
// Tapping a row opens the editor for that contact.
func (app *ContactsApp) buildContactTable() *widget.Table {
	table := widget.NewTable(
		func() (int, int) {
			return len(app.rows), config.TableColumns
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if id.Row >= len(app.rows) {
				return
			}
			c := app.rows[id.Row]

			switch id.Col {
			case config.ColIDName:
				label.SetText(c.FullName())
			case config.ColIDUserName:
				label.SetText(c.UserName)
			case config.ColIDPhone:
				label.SetText(c.Phone)
			case config.ColIDEmail:
				label.SetText(c.Email)
			}
		},
	)

	table.ShowHeaderRow = true

	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton("Header", func() {})
	}

	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)

		var titleKey string
		switch id.Col {
		case config.ColIDUserName:
			titleKey = config.TKeyColUserName
		case config.ColIDPhone:
			titleKey = config.TKeyColPhone
		case config.ColIDEmail:
			titleKey = config.TKeyColEmail
		default:
			titleKey = config.TKeyColName
		}

		text := app.GetMsg(titleKey)
		if id.Col == app.sortCol {
			if app.sortAsc {
				text += config.SortIconAsc
			} else {
				text += config.SortIconDesc
			}
		}
		btn.SetText(text)

		btn.OnTapped = func() {
			if app.sortCol == id.Col {
				app.sortAsc = !app.sortAsc
			} else {
				app.sortCol = id.Col
				app.sortAsc = true
			}
			app.refreshContacts()
		}
	}

	table.SetColumnWidth(config.ColIDName, config.ColWidthName)
	table.SetColumnWidth(config.ColIDUserName, config.ColWidthUserName)
	table.SetColumnWidth(config.ColIDPhone, config.ColWidthPhone)
	table.SetColumnWidth(config.ColIDEmail, config.ColWidthEmail)

	table.OnSelected = func(id widget.TableCellID) {
		table.UnselectAll()
		if id.Row < 0 || id.Row >= len(app.rows) {
			return
		}
		selected := app.rows[id.Row]
		app.ShowContactEditor(&selected)
	}

	return table
}

// refreshTexts reapplies localized strings after a language change.
func (app *ContactsApp) refreshTexts() {
	if app.Window == nil {
		return
	}
	app.Window.SetTitle(app.GetMsg(config.TKeyWinTitle))
	app.Window.SetMainMenu(app.buildMainMenu())
	if app.searchEntry != nil {
		app.searchEntry.PlaceHolder = app.GetMsg(config.TKeySearchHolder)
		app.searchEntry.Refresh()
	}
	app.refreshContacts()
}
