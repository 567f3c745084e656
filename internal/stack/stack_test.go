package stack

import (
	"testing"
	"time"

	"github.com/jmylchreest/modalstack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDialog(effect model.BackgroundEffect) *model.Dialog {
	opts := model.DefaultOptions()
	opts.BackgroundEffect = effect
	return model.NewDialog(opts)
}

func TestNew(t *testing.T) {
	s := New()
	assert.Equal(t, 0, s.Len())
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestStack_InsertPreservesOrder(t *testing.T) {
	s := New()
	a := testDialog(model.EffectNone)
	b := testDialog(model.EffectNone)
	c := testDialog(model.EffectNone)
	s.Insert(a)
	s.Insert(b)
	s.Insert(c)

	assert.Equal(t, []string{a.ID, b.ID, c.ID}, s.IDs())
	all := s.All()
	require.Len(t, all, 3)
	assert.Same(t, a, all[0])
	assert.Less(t, a.Seq, b.Seq)
	assert.Less(t, b.Seq, c.Seq)
}

func TestStack_InsertDowngradesWhenBackdropOwned(t *testing.T) {
	s := New()
	a := testDialog(model.EffectDim)
	s.Insert(a)
	a.SetVisible(true)

	b := testDialog(model.EffectBlur)
	downgraded := s.Insert(b)

	assert.True(t, downgraded)
	assert.Equal(t, model.EffectNone, b.BackgroundEffect)
	assert.Equal(t, model.EffectDim, a.BackgroundEffect)
}

func TestStack_InsertKeepsEffectWhenOwnerNotYetVisible(t *testing.T) {
	s := New()
	a := testDialog(model.EffectDim)
	s.Insert(a)

	b := testDialog(model.EffectBlur)
	downgraded := s.Insert(b)

	assert.False(t, downgraded)
	assert.Equal(t, model.EffectBlur, b.BackgroundEffect)
}

func TestStack_InsertIgnoresRemovingOwner(t *testing.T) {
	s := New()
	a := testDialog(model.EffectDim)
	s.Insert(a)
	a.SetVisible(true)
	a.SetRemoving(true)

	b := testDialog(model.EffectDim)
	assert.False(t, s.Insert(b))
	assert.Equal(t, model.EffectDim, b.BackgroundEffect)
}

func TestStack_DowngradeIsNotRevisited(t *testing.T) {
	s := New()
	a := testDialog(model.EffectDim)
	s.Insert(a)
	a.SetVisible(true)

	b := testDialog(model.EffectDim)
	s.Insert(b)
	b.SetVisible(true)
	require.Equal(t, model.EffectNone, b.BackgroundEffect)

	s.Remove(a.ID)
	assert.Equal(t, model.EffectNone, b.BackgroundEffect)
	_, owned := s.BackdropOwner()
	assert.False(t, owned)
}

func TestStack_BackdropExclusivityOverSequences(t *testing.T) {
	s := New()
	effects := []model.BackgroundEffect{model.EffectDim, model.EffectBlur, model.EffectDim, model.EffectNone, model.EffectBlur}
	for _, e := range effects {
		d := testDialog(e)
		s.Insert(d)
		d.SetVisible(true)

		owners := 0
		for _, x := range s.All() {
			if x.OwnsBackdrop() {
				owners++
			}
		}
		assert.LessOrEqual(t, owners, 1)
	}
}

func TestStack_Find(t *testing.T) {
	s := New()
	d := testDialog(model.EffectDim)
	s.Insert(d)

	found, ok := s.Find(d.ID)
	require.True(t, ok)
	assert.Same(t, d, found)

	_, ok = s.Find("missing")
	assert.False(t, ok)
}

func TestStack_RemoveIsIdempotent(t *testing.T) {
	s := New()
	a := testDialog(model.EffectNone)
	b := testDialog(model.EffectNone)
	s.Insert(a)
	s.Insert(b)

	assert.True(t, s.Remove(a.ID))
	assert.False(t, s.Remove(a.ID))
	assert.False(t, s.Remove("missing"))
	assert.Equal(t, []string{b.ID}, s.IDs())
}

func TestStack_Current(t *testing.T) {
	s := New()
	_, ok := s.Current()
	assert.False(t, ok, "empty stack has no current dialog")

	base := time.Now()
	a := testDialog(model.EffectNone)
	a.CreatedAt = base
	b := testDialog(model.EffectNone)
	b.CreatedAt = base.Add(2 * time.Millisecond)
	c := testDialog(model.EffectNone)
	c.CreatedAt = base.Add(time.Millisecond)
	s.Insert(a)
	s.Insert(b)
	s.Insert(c)

	_, ok = s.Current()
	assert.False(t, ok, "hidden dialogs are not current")

	a.SetVisible(true)
	c.SetVisible(true)
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, c.ID, cur.ID)

	b.SetVisible(true)
	cur, _ = s.Current()
	assert.Equal(t, b.ID, cur.ID, "newest CreatedAt wins over insertion order")

	b.SetRemoving(true)
	cur, _ = s.Current()
	assert.Equal(t, c.ID, cur.ID)
}

func TestStack_CurrentTieBreaksOnInsertionOrder(t *testing.T) {
	s := New()
	at := time.Now()
	a := testDialog(model.EffectNone)
	b := testDialog(model.EffectNone)
	a.CreatedAt, b.CreatedAt = at, at
	a.SetVisible(true)
	b.SetVisible(true)
	s.Insert(a)
	s.Insert(b)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, b.ID, cur.ID)
}

func TestStack_Clear(t *testing.T) {
	s := New()
	s.Insert(testDialog(model.EffectDim))
	s.Insert(testDialog(model.EffectDim))
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.IDs())
}
