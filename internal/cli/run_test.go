package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bfi/internal/engine"
	"github.com/roach88/bfi/internal/store"
	"github.com/roach88/bfi/internal/testutil"
)

func TestRun_Output(t *testing.T) {
	path := writeProgram(t, t.TempDir(), "two.bf", "add two then print: ++.")

	out, _, err := executeRoot(t, "", path)
	require.NoError(t, err)
	assert.Equal(t, "\x02", out)
}

func TestRun_EchoesInput(t *testing.T) {
	path := writeProgram(t, t.TempDir(), "cat.bf", ",[.,]")

	out, _, err := executeRoot(t, "hello", path)
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestRun_HelloWorld(t *testing.T) {
	path := writeProgram(t, t.TempDir(), "hello.bf",
		"++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++.")

	out, _, err := executeRoot(t, "", path)
	require.NoError(t, err)
	assert.Equal(t, "Hello World!\n", out)
}

func TestRun_MissingFile(t *testing.T) {
	_, _, err := executeRoot(t, "", "/nonexistent/prog.bf")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, "E005", ErrorCode(err))
}

func TestRun_UnmatchedOpen(t *testing.T) {
	path := writeProgram(t, t.TempDir(), "open.bf", "+[")

	_, _, err := executeRoot(t, "", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, "UNMATCHED_OPEN", ErrorCode(err))
	assert.Contains(t, err.Error(), "open.bf:1:2")
}

func TestRun_StrayCloseWarns(t *testing.T) {
	path := writeProgram(t, t.TempDir(), "stray.bf", "+.]+.")

	out, errOut, err := executeRoot(t, "", path)
	require.NoError(t, err)
	assert.Equal(t, "\x01", out)
	assert.Contains(t, errOut, "parse warning")
	assert.Contains(t, errOut, "UNMATCHED_CLOSE")
}

func TestRun_StrayCloseStrict(t *testing.T) {
	path := writeProgram(t, t.TempDir(), "stray.bf", "+.]+.")

	out, _, err := executeRoot(t, "", "--strict", path)
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, "UNMATCHED_CLOSE", ErrorCode(err))
}

func TestRun_TapeBounds(t *testing.T) {
	path := writeProgram(t, t.TempDir(), "left.bf", "+.<+")

	out, _, err := executeRoot(t, "", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, engine.IsBoundsError(err))
	assert.Equal(t, "\x01", out, "output before the error is flushed")
}

func TestRun_MaxSteps(t *testing.T) {
	path := writeProgram(t, t.TempDir(), "forever.bf", "+[]")

	_, _, err := executeRoot(t, "", "--max-steps", "100", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, engine.IsStepsExceededError(err))
}

func TestRun_OutputCharset(t *testing.T) {
	path := writeProgram(t, t.TempDir(), "e-acute.bf", strings.Repeat("+", 0xE9)+".")

	out, _, err := executeRoot(t, "", path)
	require.NoError(t, err)
	assert.Equal(t, "\xe9", out)

	out, _, err = executeRoot(t, "", "--output-charset", "latin1", path)
	require.NoError(t, err)
	assert.Equal(t, "é", out)
}

func TestRun_InvalidOutputCharset(t *testing.T) {
	path := writeProgram(t, t.TempDir(), "p.bf", "+")

	_, _, err := executeRoot(t, "", "--output-charset", "ebcdic", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRun_Encoding(t *testing.T) {
	// "+." in UTF-16LE with a byte order mark.
	path := writeProgram(t, t.TempDir(), "utf16.bf", "\xff\xfe+\x00.\x00")

	out, _, err := executeRoot(t, "", "--encoding", "utf-16", path)
	require.NoError(t, err)
	assert.Equal(t, "\x01", out)

	_, _, err = executeRoot(t, "", "--encoding", "klingon", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, "E009", ErrorCode(err))
}

func TestRun_BadEncodingCheckedBeforeRead(t *testing.T) {
	_, _, err := executeRoot(t, "", "--encoding", "klingon", "/nonexistent/prog.bf")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, "E009", ErrorCode(err), "flag error wins over the missing file")
}

func TestRun_VerboseLogsStats(t *testing.T) {
	path := writeProgram(t, t.TempDir(), "p.bf", "++.")

	_, errOut, err := executeRoot(t, "", "-v", path)
	require.NoError(t, err)
	assert.Contains(t, errOut, "run finished")
	assert.Contains(t, errOut, "steps=3")
}

func TestRunFile_RecordsRun(t *testing.T) {
	dir := t.TempDir()
	dbPath := dir + "/runs.db"
	path := writeProgram(t, dir, "p.bf", ",.")

	opts := &RunOptions{
		RootOptions:    &RootOptions{Format: "text"},
		Database:       dbPath,
		OutputCharset:  CharsetRaw,
		Encoding:       "utf-8",
		RunIDGenerator: testutil.NewFixedRunIDGenerator("run-1"),
		Clock:          testutil.NewDeterministicClock(),
	}
	cmd, out := bareCommand("Z")
	require.NoError(t, runFile(opts, path, cmd))
	assert.Equal(t, "Z", out.String())

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	run, err := st.ReadRun(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), run.Seq)
	assert.Equal(t, path, run.SourcePath)
	assert.Equal(t, "2024-01-01T00:00:00Z", run.StartedAt)
	assert.Equal(t, store.OutcomeOK, run.Outcome)
	assert.Equal(t, int64(2), run.Steps)
	assert.Equal(t, int64(1), run.InputBytes)
	assert.Equal(t, int64(1), run.OutputBytes)
	assert.NotEmpty(t, run.ProgramHash)
	assert.Empty(t, run.ErrorCode)
}

func TestRunFile_RecordsRuntimeError(t *testing.T) {
	dir := t.TempDir()
	dbPath := dir + "/runs.db"
	path := writeProgram(t, dir, "left.bf", "<+")

	opts := &RunOptions{
		RootOptions:    &RootOptions{Format: "text"},
		Database:       dbPath,
		OutputCharset:  CharsetRaw,
		RunIDGenerator: testutil.NewFixedRunIDGenerator("run-err"),
		Clock:          testutil.NewDeterministicClock(),
	}
	cmd, _ := bareCommand("")
	err := runFile(opts, path, cmd)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	run, err := st.ReadRun(context.Background(), "run-err")
	require.NoError(t, err)
	assert.Equal(t, store.OutcomeError, run.Outcome)
	assert.Equal(t, "TAPE_BOUNDS", run.ErrorCode)
	assert.Contains(t, run.ErrorMessage, "outside tape")
}

func TestRunFile_ParseErrorNotRecorded(t *testing.T) {
	dir := t.TempDir()
	dbPath := dir + "/runs.db"
	path := writeProgram(t, dir, "open.bf", "[")

	opts := &RunOptions{
		RootOptions:    &RootOptions{Format: "text"},
		Database:       dbPath,
		OutputCharset:  CharsetRaw,
		RunIDGenerator: testutil.NewFixedRunIDGenerator(),
	}
	cmd, _ := bareCommand("")
	err := runFile(opts, path, cmd)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
