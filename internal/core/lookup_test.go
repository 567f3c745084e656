package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/modalstack/internal/model"
)

func testStack() []model.Summary {
	return []model.Summary{
		{ID: "01JAAAAAAAAAAAAAAAAAAAAAAA", Content: "demo.Welcome", Visible: true},
		{ID: "01JBBBBBBBBBBBBBBBBBBBBBBB", Content: "demo.Settings", Visible: true,
			Parameters: map[string]any{"tab": "Network"}},
		{ID: "01JBCCCCCCCCCCCCCCCCCCCCCC", Content: "demo.Confirm", Visible: false},
	}
}

func TestLookupByID(t *testing.T) {
	dialogs := testStack()

	t.Run("found", func(t *testing.T) {
		result := LookupByID(dialogs, "01JBBBBBBBBBBBBBBBBBBBBBBB")
		require.NotNil(t, result)
		assert.Equal(t, "demo.Settings", result.Content)
	})

	t.Run("not found", func(t *testing.T) {
		assert.Nil(t, LookupByID(dialogs, "notexist"))
	})

	t.Run("empty slice", func(t *testing.T) {
		assert.Nil(t, LookupByID(nil, "01JAAAAAAAAAAAAAAAAAAAAAAA"))
	})
}

func TestLookupByIndex(t *testing.T) {
	dialogs := testStack()

	result := LookupByIndex(dialogs, 1)
	require.NotNil(t, result)
	assert.Equal(t, "demo.Welcome", result.Content)

	result = LookupByIndex(dialogs, 3)
	require.NotNil(t, result)
	assert.Equal(t, "demo.Confirm", result.Content)

	assert.Nil(t, LookupByIndex(dialogs, 0))
	assert.Nil(t, LookupByIndex(dialogs, -1))
	assert.Nil(t, LookupByIndex(dialogs, 4))
}

func TestLookupByPrefix(t *testing.T) {
	dialogs := testStack()

	d, err := LookupByPrefix(dialogs, "01ja")
	require.NoError(t, err)
	assert.Equal(t, "demo.Welcome", d.Content)

	_, err = LookupByPrefix(dialogs, "01JB")
	assert.ErrorIs(t, err, ErrAmbiguous)

	_, err = LookupByPrefix(dialogs, "01JZ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCurrent(t *testing.T) {
	dialogs := testStack()

	// The newest dialog is still opening, so the one below it is current.
	d := Current(dialogs)
	require.NotNil(t, d)
	assert.Equal(t, "demo.Settings", d.Content)

	dialogs[1].Removing = true
	d = Current(dialogs)
	require.NotNil(t, d)
	assert.Equal(t, "demo.Welcome", d.Content)

	assert.Nil(t, Current(nil))
}

func TestCurrent_UsesCreationTime(t *testing.T) {
	now := time.Now()
	dialogs := []model.Summary{
		{ID: "A", Visible: true, CreatedAt: now},
		{ID: "B", Visible: true, CreatedAt: now.Add(-time.Second)},
	}

	// Position does not decide; the later creation time does.
	d := Current(dialogs)
	require.NotNil(t, d)
	assert.Equal(t, "A", d.ID)

	dialogs[1].CreatedAt = now
	d = Current(dialogs)
	require.NotNil(t, d)
	assert.Equal(t, "B", d.ID)
}

func TestResolve(t *testing.T) {
	dialogs := testStack()

	tests := []struct {
		name    string
		ref     string
		want    string
		wantErr error
	}{
		{name: "current", ref: "current", want: "demo.Settings"},
		{name: "exact id", ref: "01JBCCCCCCCCCCCCCCCCCCCCCC", want: "demo.Confirm"},
		{name: "position", ref: "#1", want: "demo.Welcome"},
		{name: "position out of range", ref: "#9", wantErr: ErrNotFound},
		{name: "unique prefix", ref: "01JBC", want: "demo.Confirm"},
		{name: "ambiguous prefix", ref: "01JB", wantErr: ErrAmbiguous},
		{name: "empty", ref: " ", wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Resolve(dialogs, tt.ref)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Content)
		})
	}

	t.Run("bad position", func(t *testing.T) {
		_, err := Resolve(dialogs, "#two")
		assert.Error(t, err)
	})

	t.Run("no current", func(t *testing.T) {
		_, err := Resolve(dialogs[2:], "current")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSearch(t *testing.T) {
	dialogs := testStack()

	assert.Len(t, Search(dialogs, ""), 3)

	result := Search(dialogs, "CONFIRM")
	require.Len(t, result, 1)
	assert.Equal(t, "demo.Confirm", result[0].Content)

	result = Search(dialogs, "network")
	require.Len(t, result, 1)
	assert.Equal(t, "demo.Settings", result[0].Content)

	assert.Empty(t, Search(dialogs, "nothing"))
}
