package csspurge

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelevant(t *testing.T) {
	tests := []struct {
		name   string
		event  fsnotify.Event
		output string
		want   bool
	}{
		{"css write", fsnotify.Event{Name: "a.css", Op: fsnotify.Write}, "", true},
		{"html create", fsnotify.Event{Name: "index.html", Op: fsnotify.Create}, "", true},
		{"chmod only", fsnotify.Event{Name: "a.css", Op: fsnotify.Chmod}, "", false},
		{"other extension", fsnotify.Event{Name: "a.txt", Op: fsnotify.Write}, "", false},
		{"own output", fsnotify.Event{Name: "out.css", Op: fsnotify.Write}, "out.css", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relevant(tt.event, tt.output))
		})
	}
}

func TestWatch_RerunsOnChange(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "a.css")
	writeFiles(t, dir, map[string]string{"a.css": ".a{top:0px}"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan string, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, Config{
			CSS:     []string{filepath.Join(dir, "*.css")},
			Output:  filepath.Join(dir, "out.css"),
			Options: DefaultOptions(),
		}, func(r *Result, err error) {
			if err != nil {
				results <- "error: " + err.Error()
				return
			}
			results <- r.CSS
		})
	}()

	require.Equal(t, ".a{top:0}", waitResult(t, results))

	require.NoError(t, os.WriteFile(input, []byte(".b{left:0px}"), 0o644))
	require.Equal(t, ".b{left:0}", waitResult(t, results))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestDebouncer(t *testing.T) {
	t.Run("fires once after delay", func(t *testing.T) {
		d := &debouncer{delay: 10 * time.Millisecond}
		d.trigger()
		fire := d.trigger()

		select {
		case <-fire:
		case <-time.After(5 * time.Second):
			t.Fatal("debouncer did not fire")
		}
		assert.False(t, d.stop())
	})

	t.Run("stop cancels pending run", func(t *testing.T) {
		d := &debouncer{delay: 20 * time.Millisecond}
		fire := d.trigger()
		require.True(t, d.stop())

		select {
		case <-fire:
			t.Fatal("stopped debouncer fired")
		case <-time.After(100 * time.Millisecond):
		}
	})

	t.Run("stop without trigger", func(t *testing.T) {
		assert.False(t, (&debouncer{delay: time.Second}).stop())
	})
}

func TestWatch_NoInput(t *testing.T) {
	err := Watch(context.Background(), Config{CSS: []string{filepath.Join(t.TempDir(), "*.css")}}, func(*Result, error) {})
	assert.ErrorIs(t, err, ErrNoInput)
}

func waitResult(t *testing.T, results <-chan string) string {
	t.Helper()
	select {
	case r := <-results:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for run")
		return ""
	}
}
