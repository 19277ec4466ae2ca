package sources

import (
	"testing"

	"github.com/jonathan/job-assistant/internal/fetch"
	"github.com/jonathan/job-assistant/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestNewRegistry_SkipsDisabledAndKeepsOrder(t *testing.T) {
	off := false
	boards := []Board{
		{Name: "b"},
		{Name: "a", Enabled: &off},
		{Name: "c"},
	}

	r := NewRegistry(boards, Options{})
	assert.Equal(t, []types.Source{"b", "c"}, r.Names())
	assert.Len(t, r.Adapters(), 2)
}

func TestNewRegistry_RenderBoardsUseBrowserOnlyWhenEnabled(t *testing.T) {
	browser := &stubRenderer{}
	boards := []Board{{Name: "plain"}, {Name: "spa", Render: true}}

	r := NewRegistry(boards, Options{UseBrowser: true, Browser: browser})
	adapters := r.Adapters()
	assert.IsType(t, fetch.HTTPRenderer{}, adapters[0].(*BoardAdapter).renderer)
	assert.Same(t, browser, adapters[1].(*BoardAdapter).renderer)

	r = NewRegistry(boards, Options{Browser: browser})
	assert.IsType(t, fetch.HTTPRenderer{}, r.Adapters()[1].(*BoardAdapter).renderer)
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry(nil, Options{})
	r.Register(NewBoardAdapter(Board{Name: "extra"}, nil, nil))
	assert.Equal(t, []types.Source{"extra"}, r.Names())
}
