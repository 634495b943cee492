package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Daskott/folio/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordCmd(t *testing.T) {
	buff := new(bytes.Buffer)
	hashCmd := createHashPasswordCmd()
	hashCmd.SetOut(buff)
	hashCmd.SetErr(buff)
	hashCmd.SetArgs([]string{"--password", "s3cret"})

	require.Nil(t, hashCmd.Execute())
	assert.True(t, auth.CheckPasswordHash("s3cret", strings.TrimSpace(buff.String())))
}

func TestHashPasswordCmdFromStdin(t *testing.T) {
	buff := new(bytes.Buffer)
	hashCmd := createHashPasswordCmd()
	hashCmd.SetOut(buff)
	hashCmd.SetErr(buff)
	hashCmd.SetIn(strings.NewReader("from-stdin\n"))
	hashCmd.SetArgs([]string{})

	require.Nil(t, hashCmd.Execute())
	assert.True(t, auth.CheckPasswordHash("from-stdin", strings.TrimSpace(buff.String())))
}

func TestHashPasswordCmdRequiresPassword(t *testing.T) {
	buff := new(bytes.Buffer)
	hashCmd := createHashPasswordCmd()
	hashCmd.SetOut(buff)
	hashCmd.SetErr(buff)
	hashCmd.SetIn(strings.NewReader("\n"))
	hashCmd.SetArgs([]string{})

	assert.NotNil(t, hashCmd.Execute())
}
