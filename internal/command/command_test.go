package command

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/sakif/articles/internal/auth"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := App(strings.NewReader(stdin), &stdout, &stderr)
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"articlesctl"}, args...))
	return stdout.String(), err
}

func TestHashPassword(t *testing.T) {
	out, err := run(t, "s3cret\n", "hash-password", "--cost", "4")
	require.NoError(t, err)

	hash := strings.TrimSpace(out)
	assert.NoError(t, auth.NewPasswordService().Verify(hash, "s3cret"))

	cost, err := auth.Cost(hash)
	require.NoError(t, err)
	assert.Equal(t, 4, cost)
}

func TestHashPassword_NoTrailingNewline(t *testing.T) {
	out, err := run(t, "piped", "hash-password", "--cost", "4")
	require.NoError(t, err)
	assert.NoError(t, auth.NewPasswordService().Verify(strings.TrimSpace(out), "piped"))
}

func TestHashPassword_Empty(t *testing.T) {
	out, err := run(t, "\n", "hash-password", "--cost", "4")
	assert.Error(t, err)
	assert.Empty(t, out)
}

func TestRoutes(t *testing.T) {
	out, err := run(t, "", "routes")
	require.NoError(t, err)

	assert.Contains(t, out, "/articles/{id}")
	assert.Contains(t, out, "/auth/login")
}
