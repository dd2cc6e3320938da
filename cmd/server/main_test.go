package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	assert.Equal(t, "todo-api", root.Use)
	assert.NotNil(t, root.RunE, "serving is the default action")

	for _, name := range []string{"serve", "migrate"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
		assert.NotNil(t, cmd.RunE)
	}
}

func TestRunMigrate_SQLite(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_NAME", t.TempDir()+"/todo.db")
	t.Setenv("DB_LOG_LEVEL", "silent")

	root := newRootCmd()
	root.SetArgs([]string{"migrate"})
	require.NoError(t, root.Execute())
}

type recordingServer struct {
	shutdowns int
	err       error
}

func (s *recordingServer) Shutdown(ctx context.Context) error {
	s.shutdowns++
	_, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return errors.New("shutdown without deadline")
	}
	return s.err
}

func TestShutdown_ReleasesServer(t *testing.T) {
	srv := &recordingServer{}
	require.NoError(t, shutdown(srv))
	assert.Equal(t, 1, srv.shutdowns)

	failing := &recordingServer{err: errors.New("db close failed")}
	assert.ErrorIs(t, shutdown(failing), failing.err)
}

func TestRunServe_ListenFailureReturnsError(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("GIN_MODE", "test")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_NAME", t.TempDir()+"/todo.db")
	t.Setenv("DB_LOG_LEVEL", "silent")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("SERVER_PORT", "-1")

	root := newRootCmd()
	root.SetArgs([]string{"serve"})
	require.Error(t, root.Execute())
}
