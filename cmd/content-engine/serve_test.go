// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/content-engine/internal/credstore"
)

func TestOpenAuthenticatorEmptyPathDisablesLogin(t *testing.T) {
	auth, closeAuth, err := openAuthenticator("")
	require.NoError(t, err)
	assert.Nil(t, auth)
	assert.True(t, auth == nil, "interface must be untyped nil")
	assert.NoError(t, closeAuth())
}

func TestOpenAuthenticatorOpensStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.db")
	store, err := credstore.Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), "sara", "tea"))
	require.NoError(t, store.Close())

	auth, closeAuth, err := openAuthenticator(path)
	require.NoError(t, err)
	require.NotNil(t, auth)
	defer closeAuth()

	assert.NoError(t, auth.CheckLogin(context.Background(), "sara", "tea"))
	assert.ErrorIs(t, auth.CheckLogin(context.Background(), "sara", "coffee"), credstore.ErrWrongPassword)
}
