package ui

import (
	"errors"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-contacts/internal/book"
	"github.com/tartampluch/go-contacts/internal/config"
)

// editorWidgets holds references to the form entries for retrieval on save.
type editorWidgets struct {
	firstName *widget.Entry
	lastName  *widget.Entry
	userName  *widget.Entry
	phone     *widget.Entry
	email     *widget.Entry
	address   *widget.Entry
}

// ShowContactEditor opens the add/edit window. A nil contact means add mode.
//
// The edit session is a two-state machine: Idle (editingID empty) and
// Editing(id). Opening the editor enters the state for its mode (add mode
// explicitly clears any stale edit id) and save, cancel and close all
// return to Idle.
func (app *ContactsApp) ShowContactEditor(existing *book.Contact) {
	if app.editorWindow != nil {
		app.editorWindow.RequestFocus()
		return
	}

	title := app.GetMsg(config.TKeyWinEditorAdd)
	if existing != nil {
		title = app.GetMsg(config.TKeyWinEditorEdit)
		app.editingID = existing.ID
	} else {
		app.editingID = ""
	}

	slog.Info(config.LogMsgOpenEditor,
		config.LogKeyComponent, config.CompUIEdit,
		config.LogKeyID, app.editingID)

	w := app.App.NewWindow(title)
	app.editorWindow = w

	ew := &editorWidgets{}
	requiredValidator := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(app.GetMsg(config.TKeyErrRequired))
		}
		return nil
	}

	ew.firstName = widget.NewEntry()
	ew.firstName.Validator = requiredValidator
	ew.lastName = widget.NewEntry()
	ew.lastName.Validator = requiredValidator
	ew.userName = widget.NewEntry()
	ew.userName.Validator = requiredValidator
	ew.phone = widget.NewEntry()
	ew.phone.Validator = requiredValidator
	ew.email = widget.NewEntry()
	ew.address = widget.NewEntry()

	if existing != nil {
		ew.firstName.SetText(existing.FirstName)
		ew.lastName.SetText(existing.LastName)
		ew.userName.SetText(existing.UserName)
		ew.phone.SetText(existing.Phone)
		ew.email.SetText(existing.Email)
		ew.address.SetText(existing.Address)
	}

	form := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblFirstName), ew.firstName),
		widget.NewFormItem(app.GetMsg(config.TKeyLblLastName), ew.lastName),
		widget.NewFormItem(app.GetMsg(config.TKeyLblUserName), ew.userName),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPhone), ew.phone),
		widget.NewFormItem(app.GetMsg(config.TKeyLblEmail), ew.email),
		widget.NewFormItem(app.GetMsg(config.TKeyLblAddress), ew.address),
	)

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
		app.saveContact(ew, w)
	})
	btnSave.Importance = widget.HighImportance

	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() {
		w.Close() // OnClosed resets the edit session
	})

	buttons := []fyne.CanvasObject{btnCancel, btnSave}
	if existing != nil {
		btnDelete := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnDelete), theme.DeleteIcon(), func() {
			app.confirmDelete(*existing, w)
		})
		btnDelete.Importance = widget.DangerImportance
		buttons = append([]fyne.CanvasObject{btnDelete}, buttons...)
	}

	content := container.NewPadded(container.NewVBox(
		form,
		container.NewGridWithColumns(len(buttons), buttons...),
	))

	w.SetContent(content)
	w.Resize(fyne.NewSize(config.EditorWindowWidth, content.MinSize().Height))
	w.SetFixedSize(true)
	w.SetOnClosed(func() {
		app.editorWindow = nil
		app.editingID = ""
	})
	w.Show()
}

// saveContact validates the form and performs the add or update decided by
// the edit session state. The trimmed values are what reach the book: it
// assumes pre-trimmed input.
func (app *ContactsApp) saveContact(ew *editorWidgets, w fyne.Window) {
	data := book.FormData{
		FirstName: strings.TrimSpace(ew.firstName.Text),
		LastName:  strings.TrimSpace(ew.lastName.Text),
		UserName:  strings.TrimSpace(ew.userName.Text),
		Phone:     strings.TrimSpace(ew.phone.Text),
		Email:     strings.TrimSpace(ew.email.Text),
		Address:   strings.TrimSpace(ew.address.Text),
	}

	if app.editingID == "" {
		// Add requires every mandatory field; the update path below instead
		// treats empty fields as "keep the current value".
		if err := book.Validate(data); err != nil {
			dialog.ShowError(errors.New(app.GetMsg(config.TKeyErrRequired)), w)
			return
		}
		app.Book.Add(app.Ctx, data)
	} else {
		// An id can only vanish when the record was deleted elsewhere in this
		// session; per the soft not-found contract this is silently ignored.
		app.Book.Update(app.Ctx, app.editingID, data)
	}

	app.afterMutation()
	w.Close()
}

// confirmDelete asks before removing a record, then deletes through the book.
func (app *ContactsApp) confirmDelete(c book.Contact, parent fyne.Window) {
	message := app.GetMsgData(config.TKeyConfirmDelMsg, map[string]interface{}{"Name": c.FullName()})
	dialog.ShowConfirm(app.GetMsg(config.TKeyConfirmDelete), message, func(ok bool) {
		if !ok {
			return
		}
		app.Book.Delete(app.Ctx, c.ID)
		app.afterMutation()
		parent.Close()
	}, parent)
}

// afterMutation resyncs everything that renders book state. Mutations reset
// the store's filtered view to the full list, so the search box is cleared
// in step with it.
func (app *ContactsApp) afterMutation() {
	if app.searchEntry != nil && app.searchEntry.Text != "" {
		// SetText("") triggers OnChanged, which re-runs the (now empty)
		// search and refreshes the table.
		app.searchEntry.SetText("")
	} else {
		app.refreshContacts()
	}
	app.publishFeed()
}
