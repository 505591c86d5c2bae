package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtm0/ccammeta/internal/cli"
	"github.com/rtm0/ccammeta/internal/dataset"
	"github.com/rtm0/ccammeta/internal/metadata"
	"github.com/rtm0/ccammeta/internal/testsupport"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCmdRequiresInput(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t)
	require.ErrorIs(t, err, cli.ErrMissingInput)
}

func TestRootCmdWritesOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := testsupport.WriteFile(t, dir, "raw.nc", testsupport.RawDataset(t))
	out := filepath.Join(dir, "annotated.nc")

	stdout, stderr, err := execute(t, in, out, "ignored-extra")
	require.NoError(t, err)
	assert.Equal(t, "saved at "+out+"\n", stdout)
	assert.Contains(t, stderr, "ignoring extra arguments")

	ds, err := dataset.Open(out)
	require.NoError(t, err)
	units, _ := ds.Var("lon").Attrs.String("units")
	assert.Equal(t, "degrees_east", units)
}

func TestRootCmdGlobalAttrsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := testsupport.WriteFile(t, dir, "raw.nc", testsupport.RawDataset(t))
	cfg := filepath.Join(dir, "globals.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("attributes:\n  domain: AUS-20i\n"), 0o600))

	stdout, _, err := execute(t, "name", in, "--global-attrs", cfg)
	require.NoError(t, err)
	assert.Equal(t, "tas_AUS-20i_CCAM_ACCESS-CM2_20150101T00-20150102T23.nc\n", stdout)
}

func TestRootCmdDryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := testsupport.WriteFile(t, dir, "raw.nc", testsupport.RawDataset(t))
	out := filepath.Join(dir, "annotated.nc")

	stdout, _, err := execute(t, "--dry-run", in, out)
	require.NoError(t, err)
	assert.Equal(t, "would save at "+out+"\n", stdout)
	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestRootCmdUnknownVariable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := testsupport.WriteFile(t, dir, "raw.nc", testsupport.RawDataset(t, "pr"))

	_, _, err := execute(t, in, filepath.Join(dir, "out.nc"))
	require.ErrorIs(t, err, metadata.ErrUnrecognizedVariable)
}

func TestRootCmdBadLogFormat(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "--log-format", "xml", "in.nc")
	require.ErrorContains(t, err, "failed creating log handler")
}

func TestShowCmd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := testsupport.WriteFile(t, dir, "raw.nc", testsupport.RawDataset(t))

	stdout, _, err := execute(t, "show", in)
	require.NoError(t, err)
	got := strings.ToLower(stdout)
	for _, want := range []string{"dimensions", "variables", "global attributes", "fill_value", "raw ccam output", "coord"} {
		assert.Contains(t, got, want)
	}
}
