package rawlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersister_ContentIsByteIdentical(t *testing.T) {
	dir := t.TempDir()
	p := NewPersister(dir)

	raw := "line one\n\x1b[31mansi noise\x1b[0m\nno trailing newline"
	path, err := p.Write("npm install", raw, time.Now())
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, raw, string(got))
}

func TestPersister_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "not", "yet", "there")
	p := NewPersister(dir)

	_, err := p.Write("ls", "output", time.Now())
	require.NoError(t, err)
}

func TestFileName_SameSecondDifferentCommands(t *testing.T) {
	at := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	a := FileName("npm install", at)
	b := FileName("npm test", at)
	assert.NotEqual(t, a, b, "different commands in the same second must not collide")

	// Same command, same second: deterministic name.
	assert.Equal(t, a, FileName("npm install", at))
}

func TestFileName_Format(t *testing.T) {
	at := time.Date(2026, 8, 31, 12, 34, 56, 0, time.UTC)
	name := FileName("go build ./...", at)
	assert.Regexp(t, `^20260831-123456-[0-9a-f]{12}\.log$`, name)
}

func TestSweep_DeletesOnlyExpiredFiles(t *testing.T) {
	dir := t.TempDir()

	old := filepath.Join(dir, "old.log")
	fresh := filepath.Join(dir, "fresh.log")
	require.NoError(t, os.WriteFile(old, []byte("x"), 0644))
	require.NoError(t, os.WriteFile(fresh, []byte("y"), 0644))

	now := time.Now()
	// Past the 14-day window vs one day inside it.
	require.NoError(t, os.Chtimes(old, now, now.Add(-15*24*time.Hour)))
	require.NoError(t, os.Chtimes(fresh, now, now.Add(-13*24*time.Hour)))

	deleted, err := Sweep(dir, 14, now)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, err = os.Stat(old)
	assert.True(t, os.IsNotExist(err), "expired file should be gone")
	_, err = os.Stat(fresh)
	assert.NoError(t, err, "file inside the window should remain")
}

func TestSweep_MissingDirectoryIsNoop(t *testing.T) {
	deleted, err := Sweep(filepath.Join(t.TempDir(), "absent"), 14, time.Now())
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestSweep_JudgesByMtimeNotName(t *testing.T) {
	dir := t.TempDir()
	// A foreign file with an unparseable name is still swept by mtime.
	weird := filepath.Join(dir, "not-a-timestamp.txt")
	require.NoError(t, os.WriteFile(weird, []byte("z"), 0644))
	now := time.Now()
	require.NoError(t, os.Chtimes(weird, now, now.Add(-30*24*time.Hour)))

	deleted, err := Sweep(dir, 14, now)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
}

func TestSweep_SkipsSubdirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	deleted, err := Sweep(dir, 14, time.Now())
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
