package ui

import (
	"errors"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/google/uuid"

	"github.com/kerolus77/reminder-app/internal/domain"
)

const (
	dateLayout    = "2006-01-02"
	clockLayout   = "15:04"
	displayLayout = "2006-01-02 15:04"
)

// Scheduler applies reminder mutations and manages their schedules.
type Scheduler interface {
	Create(rec domain.Reminder) error
	Update(rec domain.Reminder) error
	Remove(id uuid.UUID) error
}

// Lister returns the current reminders in display order.
type Lister interface {
	List() []domain.Reminder
}

// MainWindow manages the reminder list and the add/edit form.
type MainWindow struct {
	window    fyne.Window
	scheduler Scheduler
	lister    Lister
	clock     func() time.Time

	cards *fyne.Container

	titleEntry       *widget.Entry
	descriptionEntry *widget.Entry
	dateEntry        *widget.Entry
	timeEntry        *widget.Entry
	editing          *uuid.UUID

	listView fyne.CanvasObject
	formView fyne.CanvasObject
}

// NewMainWindow builds the main window with both views attached.
func NewMainWindow(app fyne.App, scheduler Scheduler, lister Lister, clock func() time.Time) *MainWindow {
	window := app.NewWindow("Reminder App")
	window.Resize(fyne.NewSize(360, 640))

	main := &MainWindow{
		window:    window,
		scheduler: scheduler,
		lister:    lister,
		clock:     clock,
		cards:     container.NewVBox(),
	}

	main.listView = main.buildListView()
	main.formView = main.buildFormView()

	main.rebuildList()
	window.SetContent(main.listView)

	return main
}

// Window exposes the underlying window for ShowAndRun.
func (main *MainWindow) Window() fyne.Window {
	return main.window
}

// Refresh rebuilds the list on the UI thread. Safe to call from any
// goroutine.
func (main *MainWindow) Refresh() {
	fyne.Do(main.rebuildList)
}

// WarnSaveFailure surfaces a persistence error without interrupting
// scheduling. Safe to call from any goroutine.
func (main *MainWindow) WarnSaveFailure(err error) {
	fyne.Do(func() {
		dialog.ShowError(fmt.Errorf("saving reminders failed: %w", err), main.window)
	})
}

func (main *MainWindow) buildListView() fyne.CanvasObject {
	addButton := widget.NewButton("Add Reminder", func() {
		main.openForm(nil)
	})
	top := container.NewVBox(
		widget.NewLabelWithStyle("Your Reminders", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		addButton,
		widget.NewSeparator(),
	)
	return container.NewBorder(top, nil, nil, nil, container.NewVScroll(main.cards))
}

func (main *MainWindow) buildFormView() fyne.CanvasObject {
	main.titleEntry = widget.NewEntry()
	main.titleEntry.SetPlaceHolder("Reminder title")

	main.descriptionEntry = widget.NewMultiLineEntry()
	main.descriptionEntry.SetPlaceHolder("Description")
	main.descriptionEntry.Wrapping = fyne.TextWrapWord

	main.dateEntry = widget.NewEntry()
	main.dateEntry.SetPlaceHolder(dateLayout)

	main.timeEntry = widget.NewEntry()
	main.timeEntry.SetPlaceHolder("HH:MM")

	saveButton := widget.NewButton("Save", main.handleSave)
	backButton := widget.NewButton("Back", func() {
		main.showList()
	})

	form := container.NewVBox(
		widget.NewLabel("Reminder Title:"),
		main.titleEntry,
		widget.NewLabel("Description:"),
		main.descriptionEntry,
		widget.NewLabel("Date (YYYY-MM-DD):"),
		main.dateEntry,
		widget.NewLabel("Time (HH:MM):"),
		main.timeEntry,
	)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), backButton)

	return container.NewBorder(nil, buttons, nil, nil, form)
}

func (main *MainWindow) openForm(rec *domain.Reminder) {
	if rec == nil {
		main.editing = nil
		main.titleEntry.SetText("")
		main.descriptionEntry.SetText("")
		now := main.clock()
		main.dateEntry.SetText(now.Format(dateLayout))
		main.timeEntry.SetText("")
	} else {
		id := rec.ID
		main.editing = &id
		main.titleEntry.SetText(rec.Title)
		main.descriptionEntry.SetText(rec.Description)
		main.dateEntry.SetText(rec.TriggerAt.Format(dateLayout))
		main.timeEntry.SetText(rec.TriggerAt.Format(clockLayout))
	}
	main.window.SetContent(main.formView)
}

func (main *MainWindow) showList() {
	main.rebuildList()
	main.window.SetContent(main.listView)
}

func (main *MainWindow) handleSave() {
	triggerAt, err := time.ParseInLocation(
		dateLayout+" "+clockLayout,
		main.dateEntry.Text+" "+main.timeEntry.Text,
		time.Local,
	)
	if err != nil {
		dialog.ShowError(errors.New("invalid time format, use HH:MM (24-hour)"), main.window)
		return
	}

	if main.editing != nil {
		rec := domain.Reminder{
			ID:          *main.editing,
			Title:       main.titleEntry.Text,
			Description: main.descriptionEntry.Text,
			TriggerAt:   triggerAt,
			Active:      true,
		}
		if err := rec.ValidateEdit(main.clock()); err != nil {
			dialog.ShowError(err, main.window)
			return
		}
		if err := main.scheduler.Update(rec); err != nil {
			dialog.ShowError(err, main.window)
			return
		}
		dialog.ShowInformation("Success", "Reminder updated successfully!", main.window)
	} else {
		rec, err := domain.NewReminder(main.titleEntry.Text, main.descriptionEntry.Text, triggerAt, main.clock)
		if err != nil {
			dialog.ShowError(err, main.window)
			return
		}
		if err := main.scheduler.Create(rec); err != nil {
			dialog.ShowError(err, main.window)
			return
		}
		dialog.ShowInformation("Success", "Reminder added successfully!", main.window)
	}

	main.showList()
}

func (main *MainWindow) handleRemove(id uuid.UUID) {
	if err := main.scheduler.Remove(id); err != nil {
		dialog.ShowError(errors.New("reminder not found or already removed"), main.window)
		main.rebuildList()
		return
	}
	dialog.ShowInformation("Success", "Reminder removed.", main.window)
	main.rebuildList()
}

func (main *MainWindow) rebuildList() {
	main.cards.RemoveAll()
	for _, rec := range main.lister.List() {
		main.cards.Add(main.buildCard(rec))
	}
	main.cards.Refresh()
}

func (main *MainWindow) buildCard(rec domain.Reminder) fyne.CanvasObject {
	title := widget.NewLabelWithStyle(rec.Title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	description := widget.NewLabel(rec.Description)
	description.Wrapping = fyne.TextWrapWord

	when := widget.NewLabel(rec.TriggerAt.Format(displayLayout))

	status := "Expired"
	if rec.Active {
		status = "Active"
	}
	statusLabel := widget.NewLabelWithStyle(status, fyne.TextAlignLeading, fyne.TextStyle{Italic: true})

	id := rec.ID
	record := rec
	editButton := widget.NewButton("Edit", func() {
		main.openForm(&record)
	})
	removeButton := widget.NewButton("Remove", func() {
		main.handleRemove(id)
	})
	buttons := container.NewHBox(editButton, removeButton, layout.NewSpacer(), statusLabel)

	return container.NewVBox(title, description, when, buttons, widget.NewSeparator())
}
