package notice

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
)

func TestContentShowsMessageAndDismisses(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	dismissed := false
	obj := content("An error occurred while loading the application", func() { dismissed = true })

	box, ok := obj.(*fyne.Container)
	if !ok || len(box.Objects) != 2 {
		t.Fatalf("expected a two-row container, got %T", obj)
	}

	label, ok := box.Objects[0].(*widget.Label)
	if !ok {
		t.Fatalf("first row should be a label, got %T", box.Objects[0])
	}
	if label.Text != "An error occurred while loading the application" {
		t.Errorf("unexpected message %q", label.Text)
	}

	row, ok := box.Objects[1].(*fyne.Container)
	if !ok || len(row.Objects) != 1 {
		t.Fatalf("second row should hold the button, got %T", box.Objects[1])
	}
	button, ok := row.Objects[0].(*widget.Button)
	if !ok {
		t.Fatalf("expected a button, got %T", row.Objects[0])
	}

	test.Tap(button)
	if !dismissed {
		t.Error("OK should dismiss the notice")
	}
}
