package exec

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealCommander_Run(t *testing.T) {
	commander := &RealCommander{}
	ctx := context.Background()

	output, err := commander.Run(ctx, ".", "echo", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(output))
}

func TestRealCommander_Run_WithContextCancellation(t *testing.T) {
	commander := &RealCommander{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := commander.Run(ctx, ".", "sleep", "1")
	assert.Error(t, err, "expected error for cancelled context")
}

func TestRealCommander_Stream_InheritsOutput(t *testing.T) {
	var stdout bytes.Buffer
	commander := &RealCommander{Stdout: &stdout}

	code, err := commander.Stream(context.Background(), ".", "echo", "streamed")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "streamed\n", stdout.String())
}

func TestRealCommander_Stream_ReturnsExitStatus(t *testing.T) {
	commander := &RealCommander{}

	code, err := commander.Stream(context.Background(), ".", "sh", "-c", "exit 3")
	require.NoError(t, err, "a non-zero exit is not a start failure")
	assert.Equal(t, 3, code)
}

func TestRealCommander_Stream_MissingBinary(t *testing.T) {
	commander := &RealCommander{}

	_, err := commander.Stream(context.Background(), ".", "this-command-does-not-exist-at-all-12345")
	assert.Error(t, err)
}

func TestCommandExecutor_RunBinary(t *testing.T) {
	mock := NewMockCommander()
	mock.SetResponse("knowledge_repo", []string{"--version"}, []byte("0.9.1"), nil)

	executor := NewCommandExecutor(mock)
	output, err := executor.RunBinary(context.Background(), "/repo", "knowledge_repo", []string{"--version"})

	require.NoError(t, err)
	assert.Equal(t, "0.9.1", string(output))
	assert.Equal(t, 1, mock.CallCount())

	call := mock.LastCall()
	require.NotNil(t, call)
	assert.Equal(t, "/repo", call.Dir)
	assert.Equal(t, "knowledge_repo", call.Command)
	assert.False(t, call.Streamed)
}

func TestCommandExecutor_RunBinary_WithSpaces(t *testing.T) {
	mock := NewMockCommander()
	mock.SetResponse("python", []string{"-m", "knowledge_repo", "status"}, []byte("ok"), nil)

	executor := NewCommandExecutor(mock)
	output, err := executor.RunBinary(context.Background(), "/repo", "python -m knowledge_repo", []string{"status"})

	require.NoError(t, err)
	assert.Equal(t, "ok", string(output))

	call := mock.LastCall()
	assert.Equal(t, "python", call.Command)
	assert.Equal(t, []string{"-m", "knowledge_repo", "status"}, call.Args)
}

func TestCommandExecutor_RunBinary_Empty(t *testing.T) {
	executor := NewCommandExecutor(NewMockCommander())

	_, err := executor.RunBinary(context.Background(), ".", "   ", nil)
	assert.Error(t, err)
}

func TestCommandExecutor_StreamBinary(t *testing.T) {
	mock := NewMockCommander()
	mock.SetExitCode("knowledge_repo", []string{"status"}, 2)

	executor := NewCommandExecutor(mock)
	code, err := executor.StreamBinary(context.Background(), ".", "knowledge_repo", []string{"status"})

	require.NoError(t, err)
	assert.Equal(t, 2, code)
	assert.True(t, mock.LastCall().Streamed)
}

func TestCommandExecutor_StreamBinary_DoesNotAliasBinaryParts(t *testing.T) {
	mock := NewMockCommander()
	executor := NewCommandExecutor(mock)

	_, _ = executor.StreamBinary(context.Background(), ".", "python -m knowledge_repo", []string{"add"})
	_, _ = executor.StreamBinary(context.Background(), ".", "python -m knowledge_repo", []string{"status"})

	assert.Equal(t, []string{"-m", "knowledge_repo", "add"}, mock.GetCall(0).Args)
	assert.Equal(t, []string{"-m", "knowledge_repo", "status"}, mock.GetCall(1).Args)
}

func TestCommandExecutor_RunShell(t *testing.T) {
	mock := NewMockCommander()
	mock.SetResponse("sh", []string{"-c", "ls -la"}, []byte("file.txt"), nil)

	executor := NewCommandExecutor(mock)
	output, err := executor.RunShell(context.Background(), "/repo", "ls -la")

	require.NoError(t, err)
	assert.Equal(t, "file.txt", string(output))
	assert.Equal(t, "sh", mock.LastCall().Command)
}

func TestCommandExecutor_StreamShell(t *testing.T) {
	mock := NewMockCommander()
	line := "knowledge_repo --repo '/kr' status"

	executor := NewCommandExecutor(mock)
	code, err := executor.StreamShell(context.Background(), "", line)

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, []string{"sh", "-c", line}, mock.LastCall().Argv())
}

func TestMockCommander_WasCalled(t *testing.T) {
	mock := NewMockCommander()
	ctx := context.Background()

	_, _ = mock.Run(ctx, "/repo", "git", "status")
	_, _ = mock.Stream(ctx, "/repo", "knowledge_repo", "status")

	assert.True(t, mock.WasCalled("git", "status"))
	assert.True(t, mock.WasCalled("knowledge_repo", "status"))
	assert.False(t, mock.WasCalled("git", "log"))
}

func TestMockCommander_Reset(t *testing.T) {
	mock := NewMockCommander()
	ctx := context.Background()

	_, _ = mock.Run(ctx, ".", "echo", "hello")
	_, _ = mock.Run(ctx, ".", "echo", "world")
	mock.SetResponse("echo", nil, []byte("x"), nil)
	assert.Equal(t, 2, mock.CallCount())

	mock.Reset()

	assert.Equal(t, 0, mock.CallCount())
	assert.Empty(t, mock.Responses)
}

func TestMockCommander_NoResponse(t *testing.T) {
	mock := NewMockCommander()

	output, err := mock.Run(context.Background(), ".", "unknown", "cmd")
	assert.NoError(t, err)
	assert.Nil(t, output)

	code, err := mock.Stream(context.Background(), ".", "unknown", "cmd")
	assert.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestMockCommander_ErrorResponse(t *testing.T) {
	mock := NewMockCommander()
	expectedErr := errors.New("command failed")
	mock.SetResponse("failing", []string{"cmd"}, []byte("error output"), expectedErr)

	output, err := mock.Run(context.Background(), ".", "failing", "cmd")

	assert.Equal(t, expectedErr, err)
	assert.Equal(t, "error output", string(output))
}

func TestMockCommander_GetCallOutOfRange(t *testing.T) {
	mock := NewMockCommander()
	assert.Nil(t, mock.GetCall(0))
	assert.Nil(t, mock.GetCall(-1))
	assert.Nil(t, mock.LastCall())
}
