package tui

import (
	"testing"

	"github.com/javiermolinar/weekline/internal/config"
)

func TestNewModel_AppliesEditorStyles(t *testing.T) {
	cfg := config.Default()

	m := New(nil, cfg)
	if got, want := m.editor.TextStyle.Render("x"), m.styles.EditorTextStyle.Render("x"); got != want {
		t.Errorf("TextStyle mismatch: got %q, want %q", got, want)
	}
	if got, want := m.editor.Cursor.Style.Render("x"), m.styles.EditorCursorStyle.Render("x"); got != want {
		t.Errorf("Cursor style mismatch: got %q, want %q", got, want)
	}
	if got, want := m.editor.Cursor.TextStyle.Render("x"), m.styles.EditorTextStyle.Render("x"); got != want {
		t.Errorf("Cursor text style mismatch: got %q, want %q", got, want)
	}
	if m.editor.Prompt != "" {
		t.Errorf("editor prompt = %q, want empty", m.editor.Prompt)
	}
}

func TestNewModel_ClampsWeekWidth(t *testing.T) {
	cfg := config.Default()
	cfg.UI.WeekWidth = 1

	m := New(nil, cfg)
	if m.weekWidth != config.MinWeekWidth {
		t.Fatalf("weekWidth = %d, want %d", m.weekWidth, config.MinWeekWidth)
	}
}

func TestNewModel_DefaultEngagement(t *testing.T) {
	cfg := config.Default()
	cfg.Engagement.Default = "eng-1"

	m := New(nil, cfg)
	if m.engagementID != "eng-1" {
		t.Fatalf("engagementID = %q, want eng-1", m.engagementID)
	}

	m = New(nil, cfg, WithEngagement("eng-2"))
	if m.engagementID != "eng-2" {
		t.Fatalf("option should override config, got %q", m.engagementID)
	}
}

func TestNewModel_StartsLoading(t *testing.T) {
	m := New(nil, config.Default())
	if !m.loading || m.loadSeq != 1 {
		t.Fatalf("loading = %v, loadSeq = %d", m.loading, m.loadSeq)
	}
	if m.bridge.Saving() {
		t.Fatal("new model should not be saving")
	}
}

func TestInitStateMessage(t *testing.T) {
	tests := []struct {
		state InitState
		want  string
	}{
		{InitState{}, ""},
		{InitState{ConfigMissing: true, ConfigPath: "c.toml"}, "Created c.toml"},
		{InitState{DBMissing: true, DBPath: "w.db"}, "Created w.db"},
		{InitState{ConfigMissing: true, DBMissing: true, ConfigPath: "c.toml", DBPath: "w.db"}, "Created c.toml and w.db"},
	}
	for _, tt := range tests {
		if got := tt.state.Message(); got != tt.want {
			t.Errorf("Message() = %q, want %q", got, tt.want)
		}
	}
}
