package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	afsfile "github.com/viant/afs/file"
)

func newTestTarget(t *testing.T, content []byte) string {
	t.Helper()
	target := filepath.Join(t.TempDir(), "script.js")
	require.NoError(t, os.WriteFile(target, content, 0o644))
	return target
}

func readTarget(t *testing.T, target string) string {
	t.Helper()
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	return string(data)
}

func Test_Service_Fix(t *testing.T) {
	target := newTestTarget(t, []byte(loadFixture(t, "legacy.js")))
	svc := NewService(&Config{})

	out, err := svc.Fix(context.Background(), &FixInput{URL: target})
	require.NoError(t, err)
	assert.True(t, out.Changed)
	assert.True(t, out.Written)
	assert.Equal(t, target, out.URL)
	assert.Empty(t, out.Diff)
	assert.Greater(t, out.Edits, 0)
	assert.Len(t, out.Rules, len(DefaultRules()))
	assert.Equal(t, loadFixture(t, "migrated.js"), readTarget(t, target))
}

func Test_Service_Fix_Scenarios(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		expect      string
	}{
		{description: "player get", input: "const snap = await getDoc(doc(db, \"players\", uid));\n", expect: "const snap = await getPlayerDoc(uid);\n"},
		{description: "session delete", input: "await deleteDoc(doc(db, \"sessions\", sessionId));\n", expect: "await deleteSessionDoc(sessionId);\n"},
		{description: "player update", input: "await updateDoc(doc(db, \"players\", uid), {score: 10});\n", expect: "await updatePlayerDoc(uid, {score: 10});\n"},
		{description: "sign out", input: "signOut(auth);\n", expect: "supabase.auth.signOut();\n"},
		{description: "current user", input: "const user = await getCurrentUser();\n", expect: "const { data: { user } } = await supabase.auth.getUser();\n"},
		{description: "byte order mark kept", input: "\ufeffsignOut(auth);\n", expect: "\ufeffsupabase.auth.signOut();\n"},
		{description: "crlf line endings kept", input: "signOut(auth);\r\nconst x = 1;\r\n", expect: "supabase.auth.signOut();\r\nconst x = 1;\r\n"},
		{description: "non ascii text kept", input: "// déconnexion\nsignOut(auth);\n", expect: "// déconnexion\nsupabase.auth.signOut();\n"},
	}

	svc := NewService(nil)
	for _, testCase := range testCases {
		target := newTestTarget(t, []byte(testCase.input))
		_, err := svc.Fix(context.Background(), &FixInput{URL: target})
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, readTarget(t, target), testCase.description)
	}
}

func Test_Service_Fix_Unchanged(t *testing.T) {
	migrated := loadFixture(t, "supabase_helpers.js")
	target := newTestTarget(t, []byte(migrated))

	out, err := NewService(nil).Fix(context.Background(), &FixInput{URL: target})
	require.NoError(t, err)
	assert.False(t, out.Changed)
	assert.True(t, out.Written)
	assert.Equal(t, 0, out.Edits)
	assert.Equal(t, migrated, readTarget(t, target))
}

func Test_Service_Fix_DryRun(t *testing.T) {
	legacy := loadFixture(t, "legacy.js")
	target := newTestTarget(t, []byte(legacy))

	out, err := NewService(&Config{SedDiffBytes: 64}).Fix(context.Background(), &FixInput{URL: target, DryRun: true})
	require.NoError(t, err)
	assert.True(t, out.Changed)
	assert.False(t, out.Written)
	assert.Greater(t, out.Edits, 0)
	assert.Equal(t, 64+len(truncatedMarker), len(out.Diff))
	assert.Equal(t, legacy, readTarget(t, target))
}

func Test_Service_Fix_DefaultTarget(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultTarget), []byte("signOut(auth);"), 0o644))
	t.Chdir(dir)

	out, err := NewService(nil).Fix(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, out.Written)
	assert.Equal(t, "supabase.auth.signOut();", readTarget(t, filepath.Join(dir, DefaultTarget)))
}

func Test_Service_Fix_MissingFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "missing.js")

	out, err := NewService(nil).Fix(context.Background(), &FixInput{URL: target})
	assert.Error(t, err)
	assert.Nil(t, out)
	_, statErr := os.Stat(target)
	assert.True(t, os.IsNotExist(statErr))
}

func Test_Service_Fix_InvalidEncoding(t *testing.T) {
	content := []byte{'s', 'i', 'g', 'n', 0xff, 0xfe, '\n'}
	target := newTestTarget(t, content)

	out, err := NewService(nil).Fix(context.Background(), &FixInput{URL: target})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidEncoding))
	assert.Nil(t, out)
	assert.Equal(t, string(content), readTarget(t, target))
}

func Test_NewService_Defaults(t *testing.T) {
	svc := NewService(nil)
	assert.Equal(t, DefaultTarget, svc.target)
	assert.Equal(t, defaultSedDiffBytes, svc.sedDiffBytes)
	assert.Equal(t, 0, svc.sedMaxEdits)
	assert.True(t, svc.UseTextField())

	svc = NewService(&Config{Target: "mem://localhost/app/script.js", UseData: true, SedDiffBytes: 10, SedMaxEditsPerFile: 3})
	assert.Equal(t, "mem://localhost/app/script.js", svc.target)
	assert.Equal(t, 10, svc.sedDiffBytes)
	assert.Equal(t, 3, svc.sedMaxEdits)
	assert.False(t, svc.UseTextField())
}

func Test_Service_Fix_MemURL(t *testing.T) {
	ctx := context.Background()
	URL := "mem://localhost/dbcalls/script.js"
	fs := afs.New()
	require.NoError(t, fs.Upload(ctx, URL, afsfile.DefaultFileOsMode, strings.NewReader("const user = await getCurrentUser();")))

	out, err := NewService(nil).Fix(ctx, &FixInput{URL: URL})
	require.NoError(t, err)
	assert.Equal(t, URL, out.URL)
	data, err := fs.DownloadWithURL(ctx, URL)
	require.NoError(t, err)
	assert.Equal(t, "const { data: { user } } = await supabase.auth.getUser();", string(data))
}

func Test_Service_Fix_LockedTarget(t *testing.T) {
	target := newTestTarget(t, []byte("signOut(auth);"))
	other := newTestTarget(t, []byte("signOut(auth);"))
	svc := NewService(&Config{Target: target, LockTarget: true})

	out, err := svc.Fix(context.Background(), &FixInput{URL: other})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTargetLocked))
	assert.Nil(t, out)
	assert.Equal(t, "signOut(auth);", readTarget(t, other))

	out, err = svc.Fix(context.Background(), &FixInput{URL: "mem://localhost/dbcalls/other.js"})
	assert.True(t, errors.Is(err, ErrTargetLocked))
	assert.Nil(t, out)

	out, err = svc.Fix(context.Background(), &FixInput{})
	require.NoError(t, err)
	assert.True(t, out.Written)
	assert.Equal(t, "supabase.auth.signOut();", readTarget(t, target))

	_, err = svc.Fix(context.Background(), &FixInput{URL: target, DryRun: true})
	assert.NoError(t, err)
}
