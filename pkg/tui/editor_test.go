package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/taginput/pkg/models"
	"github.com/pluqqy/taginput/pkg/taginput"
	"github.com/pluqqy/taginput/pkg/tags"
)

func fruit() []models.Candidate {
	return []models.Candidate{
		{ID: "1", Name: "Apple"},
		{ID: "2", Name: "Banana"},
		{ID: "3", Name: "Avocado"},
		{ID: "4", Name: "Apricot", Disabled: true},
	}
}

func newTestEditor(t *testing.T, initial []string, mutate func(*taginput.Config)) (*Editor, *tags.Store) {
	t.Helper()

	store := tags.NewStore(models.TagsFromNames(initial), tags.StoreOptions{})
	cfg := taginput.DefaultConfig()
	cfg.Tags = store.List()
	cfg.Suggestions = fruit()
	cfg.Callbacks = store.Callbacks(taginput.Callbacks{})
	if mutate != nil {
		mutate(&cfg)
	}

	machine, err := taginput.New(cfg)
	require.NoError(t, err)

	editor := NewEditor(machine, store, Options{Width: 60, ShowHelp: true})
	return editor, store
}

func send(e *Editor, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = e.Update(msg)
	}
	return cmd
}

func typeText(e *Editor, text string) {
	for _, r := range text {
		send(e, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func TestEditor_TypingUpdatesQuery(t *testing.T) {
	e, _ := newTestEditor(t, nil, nil)

	typeText(e, "ap")

	assert.Equal(t, "ap", e.Machine().Query())
	assert.Equal(t, "ap", e.input.Value())
	assert.True(t, e.Machine().Expanded())
	assert.Equal(t, []string{"Apple", "Apricot"}, candidateNames(e.Machine().Options()))
}

func TestEditor_SelectSuggestionWithArrowsAndEnter(t *testing.T) {
	e, store := newTestEditor(t, nil, nil)

	typeText(e, "a")
	typeText(e, "v")
	send(e, keyMsg(tea.KeyDown))
	assert.Equal(t, 0, e.Machine().Index())

	send(e, keyMsg(tea.KeyEnter))

	assert.Equal(t, []string{"Avocado"}, store.Names())
	assert.Empty(t, e.Machine().Query())
	assert.Empty(t, e.input.Value())
	assert.Equal(t, taginput.NoIndex, e.Machine().Index())
}

func TestEditor_ArrowsWrap(t *testing.T) {
	e, _ := newTestEditor(t, nil, nil)

	typeText(e, "ap")
	send(e, keyMsg(tea.KeyUp))
	assert.Equal(t, 1, e.Machine().Index())

	send(e, keyMsg(tea.KeyDown))
	assert.Equal(t, 0, e.Machine().Index())
}

func TestEditor_TabCommitsExactMatch(t *testing.T) {
	e, store := newTestEditor(t, nil, nil)

	typeText(e, "banana")
	send(e, keyMsg(tea.KeyTab))

	assert.Equal(t, []string{"Banana"}, store.Names())
	assert.True(t, e.Machine().Focused())
}

func TestEditor_TabWithEmptyQueryBlurs(t *testing.T) {
	e, _ := newTestEditor(t, nil, nil)

	send(e, keyMsg(tea.KeyTab))
	assert.False(t, e.Machine().Focused())

	send(e, keyMsg(tea.KeyTab))
	assert.True(t, e.Machine().Focused())
}

func TestEditor_AllowNew(t *testing.T) {
	e, store := newTestEditor(t, nil, func(cfg *taginput.Config) {
		cfg.AllowNew = true
	})

	typeText(e, "kiwi")
	send(e, keyMsg(tea.KeyEnter))

	assert.Equal(t, []string{"kiwi"}, store.Names())
}

func TestEditor_DisabledSuggestionNotAdded(t *testing.T) {
	e, store := newTestEditor(t, nil, nil)

	typeText(e, "apr")
	send(e, keyMsg(tea.KeyDown), keyMsg(tea.KeyEnter))

	assert.Empty(t, store.Names())
	assert.Equal(t, "apr", e.input.Value())
}

func TestEditor_DuplicateKeepsQuery(t *testing.T) {
	e, store := newTestEditor(t, []string{"Apple"}, nil)

	typeText(e, "apple")
	send(e, keyMsg(tea.KeyEnter))

	assert.Equal(t, []string{"Apple"}, store.Names())
	assert.Equal(t, "apple", e.Machine().Query())
}

func TestEditor_BackspaceRemovesLastTag(t *testing.T) {
	e, store := newTestEditor(t, []string{"one", "two"}, nil)

	send(e, keyMsg(tea.KeyBackspace))
	assert.Equal(t, []string{"one"}, store.Names())
	assert.Len(t, e.Machine().Tags(), 1)

	typeText(e, "ab")
	send(e, keyMsg(tea.KeyBackspace))
	assert.Equal(t, "a", e.Machine().Query())
	assert.Equal(t, []string{"one"}, store.Names())
}

func TestEditor_BackspaceDisabled(t *testing.T) {
	e, store := newTestEditor(t, []string{"one"}, func(cfg *taginput.Config) {
		cfg.AllowBackspace = false
	})

	send(e, keyMsg(tea.KeyBackspace))
	assert.Equal(t, []string{"one"}, store.Names())
}

func TestEditor_EscTogglesFocus(t *testing.T) {
	e, _ := newTestEditor(t, nil, nil)

	send(e, keyMsg(tea.KeyEsc))
	assert.False(t, e.Machine().Focused())

	// typing is ignored while blurred
	typeText(e, "ab")
	assert.Empty(t, e.Machine().Query())

	send(e, keyMsg(tea.KeyEsc))
	assert.True(t, e.Machine().Focused())
}

func TestEditor_AddOnBlur(t *testing.T) {
	e, store := newTestEditor(t, nil, func(cfg *taginput.Config) {
		cfg.AddOnBlur = true
		cfg.AllowNew = true
	})

	typeText(e, "kiwi")
	send(e, tea.BlurMsg{})

	assert.Equal(t, []string{"kiwi"}, store.Names())
	assert.False(t, e.Machine().Focused())
	assert.Empty(t, e.input.Value())

	send(e, tea.FocusMsg{})
	assert.True(t, e.Machine().Focused())
}

func TestEditor_TagSelection(t *testing.T) {
	e, store := newTestEditor(t, []string{"one", "two", "three"}, nil)

	send(e, keyMsg(tea.KeyLeft))
	assert.Equal(t, 2, e.tagCursor)

	send(e, keyMsg(tea.KeyLeft))
	assert.Equal(t, 1, e.tagCursor)

	send(e, keyMsg(tea.KeyRight), keyMsg(tea.KeyRight))
	assert.Equal(t, 0, e.tagCursor)

	send(e, keyMsg(tea.KeyDelete))
	assert.Equal(t, []string{"two", "three"}, store.Names())
	assert.Equal(t, 0, e.tagCursor)
}

func TestEditor_DoneAndCancel(t *testing.T) {
	t.Run("done with empty query", func(t *testing.T) {
		e, _ := newTestEditor(t, nil, nil)
		cmd := send(e, keyMsg(tea.KeyCtrlS))

		assert.True(t, e.Done())
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})

	t.Run("done with pending query asks first", func(t *testing.T) {
		e, _ := newTestEditor(t, nil, nil)
		typeText(e, "ba")

		send(e, keyMsg(tea.KeyCtrlS))
		assert.False(t, e.Done())
		assert.True(t, e.confirm.Active())
		assert.Contains(t, e.View(), "Discard")

		send(e, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
		assert.False(t, e.Done())
		assert.Equal(t, "ba", e.Machine().Query())

		send(e, keyMsg(tea.KeyCtrlS))
		cmd := send(e, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
		assert.True(t, e.Done())
		assert.Empty(t, e.Machine().Query())
		require.NotNil(t, cmd)
	})

	t.Run("cancel", func(t *testing.T) {
		e, _ := newTestEditor(t, nil, nil)
		send(e, keyMsg(tea.KeyCtrlC))

		assert.True(t, e.Canceled())
		assert.False(t, e.Done())
		assert.Empty(t, e.View())
	})
}

func TestEditor_CopyTags(t *testing.T) {
	var copied string
	e, _ := newTestEditor(t, []string{"go", "tui"}, nil)
	e.opts.Clipboard = func(text string) error {
		copied = text
		return nil
	}

	cmd := send(e, keyMsg(tea.KeyCtrlY))
	require.NotNil(t, cmd)

	msg := cmd()
	send(e, msg)

	assert.Equal(t, "go, tui", copied)
	assert.Contains(t, e.status, "Copied")
}

func TestEditor_CopyTagsFailure(t *testing.T) {
	e, _ := newTestEditor(t, []string{"go"}, nil)
	e.opts.Clipboard = func(string) error { return errors.New("no clipboard") }

	send(e, send(e, keyMsg(tea.KeyCtrlY))())

	assert.Contains(t, e.status, "no clipboard")
}

func TestEditor_View(t *testing.T) {
	e, _ := newTestEditor(t, []string{"lang/go"}, func(cfg *taginput.Config) {
		cfg.NoSuggestionsText = "Nothing found"
	})
	e.opts.Title = "Tags"

	view := e.View()
	assert.Contains(t, view, "Tags")
	assert.Contains(t, view, "lang/")
	assert.Contains(t, view, "go")
	assert.NotContains(t, view, "Banana")

	typeText(e, "an")
	view = e.View()
	assert.Contains(t, view, "Ban")
	assert.Contains(t, view, "ana")

	typeText(e, "zz")
	assert.Contains(t, e.View(), "Nothing found")
}

func TestEditor_LogRecordShowsInStatus(t *testing.T) {
	e, _ := newTestEditor(t, nil, nil)

	send(e, logRecordMsg{Summary: "tag rejected (name=x)", Level: 4})

	assert.Equal(t, "tag rejected (name=x)", e.status)
	assert.Contains(t, e.View(), "tag rejected")

	// a stale fade leaves a newer message alone
	send(e, logRecordMsg{Summary: "second", Level: 4})
	send(e, statusFadeMsg{seq: e.statusSeq - 1})
	assert.Equal(t, "second", e.status)

	send(e, statusFadeMsg{seq: e.statusSeq})
	assert.Empty(t, e.status)
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "No tags selected", Summary(nil))
	assert.Equal(t, "2 tag(s): a, b", Summary(models.TagsFromNames([]string{"a", "b"})))
}

func candidateNames(candidates []models.Candidate) []string {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}
	return names
}
