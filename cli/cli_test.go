package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/require"

	"slotpatch.lol/config"
	"slotpatch.lol/config/keyvalue"
	"slotpatch.lol/lol"
)

const target = `public static class Msm
{
    declare string[] G1_PAIRS = new string[]{ "old" };
    declare string[] G2_PAIRS = new string[]{ "old" };
    declare string[] G1_POINTS = new string[]{ "old" };
    declare string[] G2_POINTS = new string[]{ "old" };
}
`

// isolate runs the commands under default configuration: every configuration variable is
// cleared and the XDG config home is an empty directory, so no .env file is found.
func isolate(t *testing.T) {
	t.Helper()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	for _, kv := range keyvalue.EnvKV(config.C{}) {
		t.Setenv(kv.Key, "")
		require.NoError(t, os.Unsetenv(kv.Key))
	}
}

func run(t *testing.T, f func(args []string, stdout, stderr *bytes.Buffer) int, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	isolate(t)
	var o, e bytes.Buffer
	code = f(args, &o, &e)
	return code, o.String(), e.String()
}

var commands = map[string]func(args []string, stdout, stderr *bytes.Buffer) int{
	"patch-from-lists":   func(a []string, o, e *bytes.Buffer) int { return FromLists(a, o, e) },
	"patch-from-blocks":  func(a []string, o, e *bytes.Buffer) int { return FromBlocks(a, o, e) },
	"patch-single-array": func(a []string, o, e *bytes.Buffer) int { return SingleArray(a, o, e) },
}

func writeTarget(t *testing.T) string {
	t.Helper()
	return writeFile(t, target)
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "Msm.cs")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func read(t *testing.T, p string) string {
	t.Helper()
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	return string(b)
}

func TestFromLists(t *testing.T) {
	p := writeTarget(t)
	code, _, stderr := run(t, commands["patch-from-lists"], p, "a b", "c")
	require.Equal(t, ExitOK, code, stderr)
	require.Equal(t, `public static class Msm
{
    declare string[] G1_PAIRS = new string[]
{
    "a",
    "b"
};
    declare string[] G2_PAIRS = new string[]
{
    "c"
};
    declare string[] G1_POINTS = new string[]{ "old" };
    declare string[] G2_POINTS = new string[]{ "old" };
}
`, read(t, p))
}

func TestFromListsEmptyValues(t *testing.T) {
	p := writeTarget(t)
	code, _, stderr := run(t, commands["patch-from-lists"], p, "", "c")
	require.Equal(t, ExitOK, code, stderr)
	require.Contains(t, read(t, p), "declare string[] G1_PAIRS = new string[]\n{\n};")
}

func TestFromBlocksFileAndLiteral(t *testing.T) {
	p := writeTarget(t)
	g1 := filepath.Join(t.TempDir(), "g1.txt")
	require.NoError(t, os.WriteFile(g1, []byte("declare string[] G1_PAIRS = new string[] { \"from file\" };\n\n"), 0o644))
	code, _, stderr := run(t, commands["patch-from-blocks"], p, g1, `declare string[] G2_PAIRS = new string[] { "literal" }   `)
	require.Equal(t, ExitOK, code, stderr)
	out := read(t, p)
	require.Contains(t, out, `    declare string[] G1_PAIRS = new string[] { "from file" };`+"\n")
	require.Contains(t, out, `    declare string[] G2_PAIRS = new string[] { "literal" };`+"\n")
	require.NotContains(t, out, g1)
}

func TestSingleArray(t *testing.T) {
	p := writeTarget(t)
	code, _, stderr := run(t, commands["patch-single-array"], p, `declare string[] G2_POINTS = new string[] { "second" }`, "--use-secondary")
	require.Equal(t, ExitOK, code, stderr)
	require.Equal(t, strings.Replace(target, `declare string[] G2_POINTS = new string[]{ "old" };`,
		`declare string[] G2_POINTS = new string[] { "second" };`, 1), read(t, p))

	code, _, stderr = run(t, commands["patch-single-array"], p, `declare string[] G1_POINTS = new string[] { "first" }`)
	require.Equal(t, ExitOK, code, stderr)
	out := read(t, p)
	require.Contains(t, out, `declare string[] G1_POINTS = new string[] { "first" };`)
	require.Contains(t, out, `declare string[] G2_POINTS = new string[] { "second" };`)
	require.Contains(t, out, `declare string[] G1_PAIRS = new string[]{ "old" };`)
	require.Contains(t, out, `declare string[] G2_PAIRS = new string[]{ "old" };`)
}

func TestSingleArrayFromFileWithModifiers(t *testing.T) {
	const points = `public static class Points
{
    private static readonly string[] G1_POINTS = new string[]
    {
        "(0x01, 0x02)", // Point[0]
    };

    private static readonly string[] G2_POINTS = new string[]
    {
        "(0x03, 0x04)", // Point[0]
    };
}
`
	p := writeFile(t, points)
	const generated = `private static readonly string[] G2_POINTS = new string[]
    {
        "(0x05, 0x06)", // Point[0]
        "(0x07, 0x08)", // Point[1]
    };
`
	g2 := filepath.Join(t.TempDir(), "g2.txt")
	require.NoError(t, os.WriteFile(g2, []byte(generated), 0o644))
	var logged bytes.Buffer
	prev := lol.SetWriter(&logged)
	defer lol.SetWriter(prev)
	isolate(t)
	t.Setenv("DECLARATION_PREFIX", "private static readonly")
	var o, e bytes.Buffer
	code := SingleArray([]string{p, g2, "--use-secondary"}, &o, &e)
	require.Equal(t, ExitOK, code, e.String())
	require.Equal(t, strings.Replace(points, `private static readonly string[] G2_POINTS = new string[]
    {
        "(0x03, 0x04)", // Point[0]
    };`, strings.TrimSpace(generated), 1), read(t, p))
	require.Contains(t, logged.String(), "G2_POINTS: replacement block read from "+g2)
}

func TestPointsSlotNamesFromEnvironment(t *testing.T) {
	p := writeFile(t, "declare string[] H1 = a;\ndeclare string[] G1_POINTS = b;\n")
	isolate(t)
	t.Setenv("G1_POINTS_SLOT", "H1")
	var o, e bytes.Buffer
	code := SingleArray([]string{p, "declare string[] H1 = c"}, &o, &e)
	require.Equal(t, ExitOK, code, e.String())
	require.Equal(t, "declare string[] H1 = c;\ndeclare string[] G1_POINTS = b;\n", read(t, p))
}

func TestMissingTargetWritesNothing(t *testing.T) {
	args := map[string][]string{
		"patch-from-lists":   {"a", "b"},
		"patch-from-blocks":  {"x;", "y;"},
		"patch-single-array": {"x;"},
	}
	for name, f := range commands {
		dir := t.TempDir()
		p := filepath.Join(dir, "Msm.cs")
		code, _, stderr := run(t, f, append([]string{p}, args[name]...)...)
		require.Equal(t, ExitFailure, code, name)
		require.True(t, strings.HasPrefix(stderr, "error: "), "%s: %q", name, stderr)
		require.Contains(t, stderr, "not found")
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Empty(t, entries, name)
	}
}

func TestUsageErrors(t *testing.T) {
	for name, f := range commands {
		p := writeTarget(t)
		code, _, stderr := run(t, f, p)
		require.Equal(t, ExitFailure, code, name)
		require.Contains(t, stderr, "Usage:", name)
		code, _, _ = run(t, f, p, "a", "b", "c", "d")
		require.Equal(t, ExitFailure, code, name)
		require.Equal(t, target, read(t, p), name)
	}
}

func TestHelp(t *testing.T) {
	for name, f := range commands {
		code, stdout, _ := run(t, f, "--help")
		require.Equal(t, ExitOK, code, name)
		require.Contains(t, stdout, name)
		require.Contains(t, stdout, "G1_SLOT")
		require.Contains(t, stdout, "G1_POINTS_SLOT")
		require.Contains(t, stdout, "DECLARATION_PREFIX")
	}
}

func TestNoMatchStillSucceeds(t *testing.T) {
	p := filepath.Join(t.TempDir(), "Other.cs")
	const other = "declare string[] OTHER = new string[]{};\n"
	require.NoError(t, os.WriteFile(p, []byte(other), 0o644))
	code, _, stderr := run(t, commands["patch-from-lists"], p, "a", "b")
	require.Equal(t, ExitOK, code, stderr)
	require.Equal(t, other, read(t, p))

	code, _, stderr = run(t, commands["patch-from-lists"], p, "a", "b", "--strict")
	require.Equal(t, ExitFailure, code)
	require.Contains(t, stderr, "G1_PAIRS")
	require.Equal(t, other, read(t, p))
}

func TestDryRun(t *testing.T) {
	p := writeTarget(t)
	code, stdout, stderr := run(t, commands["patch-from-lists"], p, "a", "b", "--dry-run")
	require.Equal(t, ExitOK, code, stderr)
	require.Contains(t, stdout, "    \"a\"\n")
	require.Equal(t, target, read(t, p))
}
