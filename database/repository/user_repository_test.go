package repository

import (
	"testing"

	"quipvid/database"
	"quipvid/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CRUD(t *testing.T) {
	setupTestDB(t)
	repo := NewUserRepository(database.GetDB())

	// InitDB seeds the default admin.
	first, err := repo.FindFirst()
	require.NoError(t, err)
	assert.Equal(t, "admin", first.Username)

	found, err := repo.FindByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, first.Id, found.Id)

	_, err = repo.FindByUsername("nobody")
	assert.True(t, database.IsNotFound(err))

	require.NoError(t, repo.UpdatePassword(first.Id, "new-hash"))
	found, err = repo.FindByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, "new-hash", found.Password)
}

func TestSettingRepository_CRUD(t *testing.T) {
	setupTestDB(t)
	repo := NewSettingRepository(database.GetDB())

	require.NoError(t, repo.Create(&model.Setting{Key: "webPort", Value: "8002"}))

	s, err := repo.FindByKey("webPort")
	require.NoError(t, err)
	assert.Equal(t, "8002", s.Value)

	s.Value = "9000"
	require.NoError(t, repo.Update(s))
	s, err = repo.FindByKey("webPort")
	require.NoError(t, err)
	assert.Equal(t, "9000", s.Value)

	all, err := repo.FindAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.DeleteAll())
	_, err = repo.FindByKey("webPort")
	assert.True(t, database.IsNotFound(err))
}
