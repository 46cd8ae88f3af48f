package ui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/kerolus77/reminder-app/internal/domain"
)

// Alert pops a notification window for each fired reminder.
type Alert struct {
	app          fyne.App
	dismissAfter time.Duration
}

// NewAlert creates an alert presenter. A zero dismissAfter disables
// auto-dismissal.
func NewAlert(app fyne.App, dismissAfter time.Duration) *Alert {
	return &Alert{app: app, dismissAfter: dismissAfter}
}

// Present schedules the alert window on the UI thread and returns
// immediately, so callers on worker goroutines never block.
func (alert *Alert) Present(event domain.NotificationEvent) {
	fyne.Do(func() {
		alert.show(event)
	})
}

func (alert *Alert) show(event domain.NotificationEvent) {
	window := alert.app.NewWindow("Reminder Alert")

	title := widget.NewLabelWithStyle(event.Title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	description := widget.NewLabel(event.Description)
	description.Wrapping = fyne.TextWrapWord
	description.Alignment = fyne.TextAlignCenter

	var timer *time.Timer
	dismiss := widget.NewButton("Dismiss", func() {
		window.Close()
	})
	window.SetOnClosed(func() {
		if timer != nil {
			timer.Stop()
		}
	})

	buttons := container.NewHBox(layout.NewSpacer(), dismiss, layout.NewSpacer())
	content := container.NewBorder(nil, buttons, nil, nil, container.NewVBox(title, description))

	window.SetContent(content)
	window.Resize(fyne.NewSize(300, 200))
	window.CenterOnScreen()
	window.Show()
	window.RequestFocus()

	if alert.dismissAfter > 0 {
		timer = time.AfterFunc(alert.dismissAfter, func() {
			fyne.Do(window.Close)
		})
	}
}
