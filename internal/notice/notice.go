// Package notice shows a blocking, user-facing message box.
package notice

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const minWidth = 320

// Show opens a window with message and an OK button and blocks until the
// user dismisses it. It must run on the main goroutine, and only once per
// process.
func Show(title, message string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("notice: could not open window: %v", r)
		}
	}()

	a := app.New()
	w := a.NewWindow(title)
	w.SetContent(content(message, a.Quit))
	w.Resize(fyne.NewSize(minWidth, 0))
	w.SetFixedSize(true)
	w.CenterOnScreen()
	w.ShowAndRun()
	return nil
}

func content(message string, dismiss func()) fyne.CanvasObject {
	label := widget.NewLabel(message)
	label.Wrapping = fyne.TextWrapWord
	label.Alignment = fyne.TextAlignCenter

	ok := widget.NewButton("OK", dismiss)
	ok.Importance = widget.HighImportance

	return container.NewVBox(label, container.NewCenter(ok))
}
