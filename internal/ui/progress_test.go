package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"w3cv/internal/driver"
)

func TestProgressModelTracksFiles(t *testing.T) {
	events := make(chan driver.Event)
	model := NewProgressModel("validating", []string{"a.html", "b.css", "a.html"}, events).(*progressModel)

	steps := []driver.Event{
		{File: "a.html", Status: driver.StatusQueued},
		{File: "a.html", Stage: driver.StageCheck, Status: driver.StatusWorking},
		{File: "a.html", Stage: driver.StageCheck, Status: driver.StatusDone, Count: 2},
		{File: "b.css", Stage: driver.StageLoad, Status: driver.StatusError, Count: 1, Err: errors.New("file b.css is empty")},
		{File: "a.html", Stage: driver.StageCheck, Status: driver.StatusDone},
	}
	for _, ev := range steps {
		model.Update(eventMsg(ev))
	}

	if model.finished != 3 || model.problems != 3 {
		t.Fatalf("finished=%d problems=%d", model.finished, model.problems)
	}
	if got := model.items[0].label(); got != "2 problems" {
		t.Errorf("first a.html: %q", got)
	}
	if got := model.items[1].label(); got != "failed" {
		t.Errorf("b.css: %q", got)
	}
	if got := model.items[2].label(); got != "ok" {
		t.Errorf("second a.html: %q", got)
	}

	view := model.View()
	for _, want := range []string{"validating (3/3)", "3 problems", "b.css"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestProgressModelQuitsWhenEventsClose(t *testing.T) {
	events := make(chan driver.Event)
	close(events)
	model := NewProgressModel("validating", []string{"a.html"}, events).(*progressModel)

	msg := model.listenForEvent()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("expected doneMsg, got %T", msg)
	}
	_, cmd := model.Update(msg)
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg")
	}
	if !model.done || !strings.Contains(model.View(), "done: validating") {
		t.Errorf("model not marked done")
	}
}

func TestTruncate(t *testing.T) {
	long := "abcdefghijklmnopqrstuvwxyz0123"
	for width, want := range map[int]string{
		6:  "abc...",
		10: "abcdefg...",
		20: "abcdefghijklmnopq...",
		3:  "abc",
	} {
		got := truncate(long, width)
		if got != want {
			t.Errorf("truncate(%d) = %q, want %q", width, got, want)
		}
		if runewidth.StringWidth(got) != width {
			t.Errorf("truncate(%d) is %d columns wide", width, runewidth.StringWidth(got))
		}
	}
	if got := truncate("abcdefghij", 6); got != "abc..." {
		t.Errorf("truncate: %q", got)
	}
	if got := truncate("abc", 6); got != "abc" {
		t.Errorf("short value changed: %q", got)
	}
}
