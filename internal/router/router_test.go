package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/circlet/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	route   string
	initRan bool
	got     []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }
func (s *stubScreen) Route() string        { return s.route }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "home", route: "/dashboard"}
	r := New(s1)

	s2 := &stubScreen{title: "network", route: "/network"}
	r.Push(s2)

	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, "network", r.Active().Title())
	assert.Equal(t, "/network", r.ActiveRoute())
	assert.True(t, s2.initRan, "Init() runs on pushed screen")
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "home"}
	r := New(s1)

	r.Push(&stubScreen{title: "feed"})
	r.Pop()

	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "home", r.Active().Title())
}

func TestPopNoopAtBottom(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Pop()
	assert.Equal(t, 1, r.Depth())
}

func TestReplacePreservesStackDepth(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Push(&stubScreen{title: "feed"})

	s3 := &stubScreen{title: "chat"}
	r.Replace(s3)

	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, "chat", r.Active().Title())
	assert.True(t, s3.initRan)
}

func TestReset(t *testing.T) {
	r := New(&stubScreen{title: "onboarding"})
	r.Push(&stubScreen{title: "feed"})
	r.Push(&stubScreen{title: "chat"})

	home := &stubScreen{title: "home", route: "/dashboard"}
	r.Reset(home)

	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "/dashboard", r.ActiveRoute())
	assert.True(t, home.initRan)
}

func TestNavigationMessages(t *testing.T) {
	r := New(&stubScreen{title: "home"})

	r.Update(PushScreenMsg{Screen: &stubScreen{title: "feed"}})
	assert.Equal(t, 2, r.Depth())

	r.Update(ReplaceScreenMsg{Screen: &stubScreen{title: "circles"}})
	assert.Equal(t, "circles", r.Active().Title())

	r.Update(PopScreenMsg{})
	assert.Equal(t, "home", r.Active().Title())

	r.Update(ResetScreenMsg{Screen: &stubScreen{title: "profile"}})
	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "profile", r.Active().Title())
}

func TestUpdateForwardsToActive(t *testing.T) {
	bottom := &stubScreen{title: "home"}
	top := &stubScreen{title: "feed"}
	r := New(bottom)
	r.Push(top)

	type ping struct{}
	r.Update(ping{})

	assert.Len(t, top.got, 1)
	assert.Empty(t, bottom.got)
	assert.Equal(t, "feed", r.View(80, 24))
}
