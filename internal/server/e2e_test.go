// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jeranaias/talentdesk/internal/account"
	"github.com/jeranaias/talentdesk/internal/api"
	"github.com/jeranaias/talentdesk/internal/conversation"
	"github.com/jeranaias/talentdesk/internal/model"
	"github.com/jeranaias/talentdesk/internal/server"
	"github.com/jeranaias/talentdesk/internal/storage"
	"github.com/jeranaias/talentdesk/internal/upload"
)

// =============================================================================
// END-TO-END: client packages against the development server
// =============================================================================

func newClient(t *testing.T) *api.Client {
	t.Helper()
	srv := server.NewServer(server.Options{BcryptCost: bcrypt.MinCost})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return api.NewClient(ts.URL).WithRateLimit(0).WithTimeout(5 * time.Second)
}

func signUp(t *testing.T, client *api.Client) {
	t.Helper()
	err := account.Register(context.Background(), client, account.Registration{
		Username:        "recruiter",
		Email:           "recruiter@example.com",
		Password:        "hunter22",
		ConfirmPassword: "hunter22",
	})
	require.NoError(t, err)
}

func TestE2E_SignedOutChatShowsNotice(t *testing.T) {
	client := newClient(t)
	ctrl := conversation.NewController(storage.NewRemoteStore(client))

	err := ctrl.Start(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrNotAuthenticated))
	assert.Equal(t, "Not signed in. Run 'talentdesk login' first.", ctrl.State().Notice)
}

func TestE2E_RemoteChat(t *testing.T) {
	ctx := context.Background()
	client := newClient(t)
	signUp(t, client)

	ctrl := conversation.NewController(storage.NewRemoteStore(client))
	require.NoError(t, ctrl.Start(ctx))

	st := ctrl.State()
	require.NotEmpty(t, st.ActiveID)
	assert.True(t, st.HasWelcome())

	ok, err := ctrl.Send(ctx, "hello")
	require.True(t, ok)
	require.NoError(t, err)

	require.Len(t, st.Entries, 2)
	assert.Equal(t, model.SenderUser, st.Entries[0].Sender)
	assert.Equal(t, "hello", st.Entries[0].Content)
	assert.Equal(t, model.SenderBot, st.Entries[1].Sender)
	assert.Equal(t, "You said: hello", st.Entries[1].Content)
	assert.Zero(t, st.Pending())

	// The server derived the title; the refreshed sidebar shows it active.
	items := st.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "hello", items[0].Title)
	assert.True(t, items[0].Active)

	// A second conversation becomes active and lists first.
	require.NoError(t, ctrl.New(ctx))
	items = ctrl.State().Items()
	require.Len(t, items, 2)
	assert.True(t, items[0].Active)
	assert.False(t, items[1].Active)

	// Reselecting the first reloads its messages.
	require.NoError(t, ctrl.Select(ctx, items[1].ID))
	assert.Len(t, ctrl.State().Entries, 2)
}

func TestE2E_LoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	client := newClient(t)
	signUp(t, client)
	require.NoError(t, account.Logout(ctx, client))

	err := account.Login(ctx, client, "recruiter", "nope-nope")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())

	require.NoError(t, account.Login(ctx, client, "recruiter@example.com", "hunter22"))
}

func writeResume(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, server.TextPDF(text), 0600))
	return path
}

func TestE2E_RankExportAndHistory(t *testing.T) {
	ctx := context.Background()
	client := newClient(t)
	signUp(t, client)

	dir := t.TempDir()
	paths := []string{
		writeResume(t, dir, "junior.pdf", "python intern"),
		writeResume(t, dir, "senior.pdf", "golang kubernetes grpc"),
		filepath.Join(dir, "cover.txt"),
	}
	require.NoError(t, os.WriteFile(paths[2], []byte("cover letter"), 0600))

	ctrl := upload.NewController(client, dir)
	rejected, err := ctrl.Selection().Select(paths)
	require.NoError(t, err)
	assert.Equal(t, 1, rejected)

	resp, err := ctrl.Submit(ctx, "golang kubernetes grpc")
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "senior.pdf", resp.Results[0].Filename)
	assert.Equal(t, 100.0, resp.Results[0].Score)
	assert.Equal(t, model.BandFor(100), model.BandFor(resp.Results[0].Score))
	assert.Equal(t, 0.0, resp.Results[1].Score)

	path, err := ctrl.ExportCSV(ctx)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Rank,Resume,Score,AI Feedback Summary\r\n1,senior.pdf,100.0,"))
	assert.Regexp(t, `resume_analysis_\d{8}_\d{6}\.csv$`, path)

	history, err := ctrl.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.False(t, history[0].UploadedAt.IsZero())
}

func TestE2E_UploadSignedOut(t *testing.T) {
	client := newClient(t)
	dir := t.TempDir()

	ctrl := upload.NewController(client, dir)
	_, err := ctrl.Selection().Select([]string{writeResume(t, dir, "a.pdf", "go")})
	require.NoError(t, err)

	_, err = ctrl.Submit(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, "Error: Not authenticated", upload.SubmitErrorText(err))
}
