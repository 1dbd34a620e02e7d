package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-locker/internal/adapter"
	"github.com/MKhiriev/go-pass-locker/models"
)

// fakeVault records the last call it received.
type fakeVault struct {
	adapter.VaultAdapter

	gotID     string
	gotQuery  string
	gotFields models.PasswordFields
	gotMaster string
	deleted   bool
}

func (f *fakeVault) ListAll(context.Context) ([]models.RecordView, error) {
	return []models.RecordView{{ID: "r1", Website: "GitHub"}}, nil
}

func (f *fakeVault) Search(_ context.Context, query string) ([]models.RecordView, error) {
	f.gotQuery = query
	return []models.RecordView{}, nil
}

func (f *fakeVault) Get(_ context.Context, id, masterPassword string) (models.DecryptedRecord, error) {
	f.gotID, f.gotMaster = id, masterPassword
	return models.DecryptedRecord{ID: id, Password: "Tr0ub4dor&3"}, nil
}

func (f *fakeVault) Add(_ context.Context, fields models.PasswordFields, masterPassword string) (models.RecordView, error) {
	f.gotFields, f.gotMaster = fields, masterPassword
	return models.RecordView{ID: "r2", Website: fields.Website}, nil
}

func (f *fakeVault) Update(_ context.Context, id string, fields models.PasswordFields, masterPassword string) (models.RecordView, error) {
	f.gotID, f.gotFields, f.gotMaster = id, fields, masterPassword
	return models.RecordView{ID: id, Website: fields.Website}, nil
}

func (f *fakeVault) Delete(_ context.Context, id string) error {
	f.gotID, f.deleted = id, true
	return nil
}

func newTestCommandLine(masterPassword string) (*commandLine, *fakeVault, *bytes.Buffer) {
	vault := &fakeVault{}
	out := &bytes.Buffer{}
	return &commandLine{vault: vault, masterPassword: masterPassword, in: strings.NewReader(""), out: out}, vault, out
}

func TestRun_List(t *testing.T) {
	cli, _, out := newTestCommandLine("")

	require.NoError(t, cli.run(context.Background(), []string{"list"}))

	var views []models.RecordView
	require.NoError(t, json.Unmarshal(out.Bytes(), &views))
	assert.Equal(t, "r1", views[0].ID)
}

func TestRun_Search(t *testing.T) {
	cli, vault, _ := newTestCommandLine("")

	require.NoError(t, cli.run(context.Background(), []string{"search", "git"}))
	assert.Equal(t, "git", vault.gotQuery)
}

func TestRun_Get(t *testing.T) {
	cli, vault, out := newTestCommandLine("Sup3r$ecret1")

	require.NoError(t, cli.run(context.Background(), []string{"get", "r1"}))
	assert.Equal(t, "r1", vault.gotID)
	assert.Equal(t, "Sup3r$ecret1", vault.gotMaster)
	assert.Contains(t, out.String(), `"password": "Tr0ub4dor&3"`)
	assert.NotContains(t, out.String(), `\u0026`)
}

func TestRun_AddWithNotes(t *testing.T) {
	cli, vault, _ := newTestCommandLine("m")
	cli.accountPassword = "p<&>"

	require.NoError(t, cli.run(context.Background(), []string{"add", "GitHub", "alice", "notes here"}))
	assert.Equal(t, models.PasswordFields{Website: "GitHub", Username: "alice", Password: "p<&>", Notes: "notes here"}, vault.gotFields)
}

func TestRun_AddReadsPasswordFromStdin(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		want  string
	}{
		{name: "newline terminated", stdin: "s3cret\nignored\n", want: "s3cret"},
		{name: "windows line ending", stdin: "s3cret\r\n", want: "s3cret"},
		{name: "no trailing newline", stdin: "s3cret", want: "s3cret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, vault, _ := newTestCommandLine("m")
			cli.in = strings.NewReader(tt.stdin)

			require.NoError(t, cli.run(context.Background(), []string{"add", "GitHub", "alice"}))
			assert.Equal(t, tt.want, vault.gotFields.Password)
			assert.Empty(t, vault.gotFields.Notes)
		})
	}
}

func TestRun_Update(t *testing.T) {
	cli, vault, _ := newTestCommandLine("m")
	cli.in = strings.NewReader("p\n")

	require.NoError(t, cli.run(context.Background(), []string{"update", "r1", "GitLab", "alice"}))
	assert.Equal(t, "r1", vault.gotID)
	assert.Equal(t, "GitLab", vault.gotFields.Website)
	assert.Equal(t, "p", vault.gotFields.Password)
	assert.Empty(t, vault.gotFields.Notes)
}

func TestRun_Delete(t *testing.T) {
	cli, vault, _ := newTestCommandLine("")

	require.NoError(t, cli.run(context.Background(), []string{"delete", "r1"}))
	assert.True(t, vault.deleted)
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name           string
		masterPassword string
		args           []string
		wantErr        error
	}{
		{name: "no command", wantErr: errUsage},
		{name: "unknown command", args: []string{"sync"}, wantErr: errUsage},
		{name: "get without master password", args: []string{"get", "r1"}, wantErr: errNoMasterPassword},
		{name: "add with too few arguments", masterPassword: "m", args: []string{"add", "GitHub"}, wantErr: errWrongArgumentsNum},
		{name: "add with too many arguments", masterPassword: "m", args: []string{"add", "GitHub", "alice", "pw", "notes"}, wantErr: errWrongArgumentsNum},
		{name: "add without account password", masterPassword: "m", args: []string{"add", "GitHub", "alice"}, wantErr: errNoAccountPassword},
		{name: "update without account password", masterPassword: "m", args: []string{"update", "r1", "GitHub", "alice"}, wantErr: errNoAccountPassword},
		{name: "delete without id", args: []string{"delete"}, wantErr: errWrongArgumentsNum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, _, _ := newTestCommandLine(tt.masterPassword)
			assert.ErrorIs(t, cli.run(context.Background(), tt.args), tt.wantErr)
		})
	}
}
