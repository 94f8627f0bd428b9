package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anuptiwari/portfolio/internal/contact"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "portfolio.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "  ")
	assert.Error(t, err)
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.db")
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(context.Background(), path)
	require.NoError(t, err)
	defer s.Close()

	var n int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM "+migrationTable).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestRecordAndListSubmissions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first := contact.Submission{ID: "a", Form: contact.Form{Name: "Jane", Email: "jane@x.com", Subject: "Hi", Message: "Hello"}, SubmittedAt: base}
	second := contact.Submission{ID: "b", Form: contact.Form{Name: "Raj", Email: "raj@x.com", Subject: "Training", Message: "Batch?"}, SubmittedAt: base.Add(time.Hour)}
	require.NoError(t, s.Record(ctx, first))
	require.NoError(t, s.Record(ctx, second))

	got, err := s.ListSubmissions(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []contact.Submission{second, first}, got)

	got, err = s.ListSubmissions(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []contact.Submission{second}, got)
}

func TestRecord_RejectsDuplicateAndMissingID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	sub := contact.Submission{ID: "dup", SubmittedAt: time.Now()}
	require.NoError(t, s.Record(ctx, sub))
	assert.Error(t, s.Record(ctx, sub))
	assert.Error(t, s.Record(ctx, contact.Submission{}))
}

func TestStoreIsAContactSink(t *testing.T) {
	s := openTestStore(t)
	sub := contact.NewSubmitter(contact.WithDelay(0), contact.WithSinks(s))
	require.NoError(t, sub.Fill(contact.Form{Name: "Jane", Email: "jane@x.com", Subject: "Hi", Message: "Hello"}))
	_, err := sub.Submit(context.Background())
	require.NoError(t, err)

	got, err := s.ListSubmissions(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Jane", got[0].Form.Name)
}

func TestStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	at := func(ts time.Time) { s.now = func() time.Time { return ts } }

	at(now.Add(-30 * 24 * time.Hour))
	require.NoError(t, s.TrackVisitor(ctx, "h1", "ua", "/"))
	at(now.Add(-3 * 24 * time.Hour))
	require.NoError(t, s.TrackVisitor(ctx, "h2", "ua", "/"))
	at(now.Add(-time.Hour))
	require.NoError(t, s.TrackVisitor(ctx, "h1", "ua", "/privacy"))
	require.NoError(t, s.TrackVisitor(ctx, "h3", "ua", "/"))
	require.NoError(t, s.Record(ctx, contact.Submission{ID: "x", SubmittedAt: now}))

	at(now)
	stats, err := s.Stats(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 4, stats.TotalVisitors)
	assert.EqualValues(t, 3, stats.UniqueVisitors)
	assert.EqualValues(t, 2, stats.VisitorsToday)
	assert.EqualValues(t, 3, stats.VisitorsThisWeek)
	assert.EqualValues(t, 1, stats.TotalSubmissions)
	assert.Equal(t, []PathStat{{Path: "/", Views: 3}, {Path: "/privacy", Views: 1}}, stats.TopPaths)
	require.Len(t, stats.RecentVisitors, 4)
	assert.Equal(t, "h1", stats.RecentVisitors[len(stats.RecentVisitors)-1].HashedIP)
}

func TestCleanupVisitors(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	s.now = func() time.Time { return now.Add(-400 * 24 * time.Hour) }
	require.NoError(t, s.TrackVisitor(ctx, "old", "", "/"))
	s.now = func() time.Time { return now }
	require.NoError(t, s.TrackVisitor(ctx, "new", "", "/"))

	n, err := s.CleanupVisitors(ctx, now.Add(-DefaultRetention))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	recent, err := s.RecentVisitors(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "new", recent[0].HashedIP)
}

func TestTrackVisitor_RequiresHash(t *testing.T) {
	s := openTestStore(t)
	assert.Error(t, s.TrackVisitor(context.Background(), "", "ua", "/"))
}

func TestNilStore(t *testing.T) {
	var s *Store
	ctx := context.Background()
	assert.NoError(t, s.Close())
	assert.ErrorIs(t, s.Ping(ctx), ErrNotConfigured)
	assert.ErrorIs(t, s.Record(ctx, contact.Submission{ID: "x"}), ErrNotConfigured)
	_, err := s.Stats(ctx)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestUpSection(t *testing.T) {
	assert.Equal(t, "\nCREATE;\n", upSection("-- +migrate Up\nCREATE;\n-- +migrate Down\nDROP;"))
	assert.Equal(t, "CREATE;", upSection("CREATE;"))
}
