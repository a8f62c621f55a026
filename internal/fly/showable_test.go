package fly

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVisibility struct {
	calls []string
	err   error
}

func (v *fakeVisibility) SetVisible(el Element, visible bool) error {
	if v.err != nil {
		return v.err
	}
	state := "hidden"
	if visible {
		state = "visible"
	}
	v.calls = append(v.calls, el.ID()+":"+state)
	return nil
}

// tooltip embeds Showable the way a consumer component would.
type tooltip struct {
	Showable
	text string
}

func TestShowable_Delegation(t *testing.T) {
	vis := &fakeVisibility{}
	el := &fakeElement{id: "tip-1", content: "hint"}

	tip := tooltip{Showable: NewShowable(vis, el), text: "hint"}

	require.NoError(t, tip.Show())
	require.NoError(t, tip.Hide())
	assert.Equal(t, []string{"tip-1:visible", "tip-1:hidden"}, vis.calls)
}

func TestShowable_ErrorPropagates(t *testing.T) {
	boom := errors.New("host refused")
	s := NewShowable(&fakeVisibility{err: boom}, &fakeElement{id: "e"})

	assert.ErrorIs(t, s.Show(), boom)
	assert.ErrorIs(t, s.Hide(), boom)
}
