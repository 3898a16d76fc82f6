package app

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordiz/internal/auth"
	"github.com/abhisek/wordiz/internal/content"
	"github.com/abhisek/wordiz/internal/notes"
	"github.com/abhisek/wordiz/internal/profile"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/stats"
	"github.com/abhisek/wordiz/internal/store/memstore"
)

func newTestDeps(t *testing.T) *screen.Deps {
	t.Helper()
	catalog, err := content.Default()
	require.NoError(t, err)
	mem := memstore.New()
	st := stats.NewStore(mem.KV())
	return &screen.Deps{
		Catalog:   catalog,
		Stats:     st,
		Auth:      auth.NewService(mem.KV(), st),
		Profile:   profile.NewAggregator(st, profile.WithHistory(mem.EventRepo())),
		Notes:     notes.New(st),
		EventRepo: mem.EventRepo(),
	}
}

func TestNewAppModel_StartsOnLogin(t *testing.T) {
	m := newAppModel(Options{Deps: newTestDeps(t), SkipWelcome: true})
	assert.Equal(t, "Sign In", m.router.Active().Title())
}

func TestNewAppModel_RestoresSession(t *testing.T) {
	deps := newTestDeps(t)
	_, err := deps.Auth.SignUp(context.Background(), auth.Credentials{Name: "Ada", Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)

	m := newAppModel(Options{Deps: deps, SkipWelcome: true})
	assert.Equal(t, "Home", m.router.Active().Title())
	assert.Equal(t, "Ada", deps.User.Name)
}

func TestNewAppModel_Welcome(t *testing.T) {
	m := newAppModel(Options{Deps: newTestDeps(t)})
	assert.Equal(t, "", m.router.Active().Title())
}

func TestAppModel_HeaderStatsRefresh(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()
	require.NoError(t, deps.Stats.CommitQuizResult(ctx, 3, 0))

	m := newAppModel(Options{Deps: deps, SkipWelcome: true})
	updated, cmd := m.Update(screen.StatsChangedMsg{})
	require.NotNil(t, cmd)
	updated, _ = updated.Update(cmd())

	am := updated.(AppModel)
	assert.Equal(t, 3, am.words)
	assert.Equal(t, 1, am.streak)
}

func TestCurrentStreak(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = time.Now })

	tests := []struct {
		name string
		in   stats.UserStats
		want int
	}{
		{"today", stats.UserStats{Streak: 4, LastStudyDate: "2026-03-10"}, 4},
		{"yesterday", stats.UserStats{Streak: 4, LastStudyDate: "2026-03-09"}, 4},
		{"lapsed", stats.UserStats{Streak: 4, LastStudyDate: "2026-03-07"}, 0},
		{"never", stats.UserStats{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, currentStreak(tt.in))
		})
	}
}

func TestAppModel_Keys(t *testing.T) {
	m := newAppModel(Options{Deps: newTestDeps(t), SkipWelcome: true})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd, "esc on the root screen does nothing")

	m.router.Push(screen.Screen(m.deps.NewHome()))
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)

	_, cmd = m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, ok = cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestAppModel_View(t *testing.T) {
	m := newAppModel(Options{Deps: newTestDeps(t), SkipWelcome: true})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	v := updated.(AppModel).View()
	assert.True(t, v.AltScreen)
}
