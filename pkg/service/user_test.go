package service

import (
	"testing"
	"time"

	"shareit/pkg/dto"
	"shareit/pkg/httperr"
	"shareit/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateUser(t *testing.T) {
	env := setupEnv(t)

	user, err := env.users.Create(&dto.CreateUserInput{Name: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestCreateUserValidation(t *testing.T) {
	env := setupEnv(t)

	_, err := env.users.Create(&dto.CreateUserInput{Name: "", Email: "not-an-email"})
	var ve *httperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "name")
	assert.Contains(t, ve.Fields, "email")
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	env := setupEnv(t)
	env.createUser(t, "alice", "alice@example.com")

	_, err := env.users.Create(&dto.CreateUserInput{Name: "bob", Email: "alice@example.com"})
	// rendered as 409 "data integrity violation" by the HTTP layer
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestGetUserMissing(t *testing.T) {
	env := setupEnv(t)

	_, err := env.users.GetByID(5)
	assert.Equal(t, httperr.KindNotFound, kindOf(t, err))
	assert.EqualError(t, err, "not found user by id 5")
}

func TestGetAllUsers(t *testing.T) {
	env := setupEnv(t)
	env.createUser(t, "alice", "alice@example.com")
	env.createUser(t, "bob", "bob@example.com")

	users, err := env.users.GetAll()
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUpdateUserPartial(t *testing.T) {
	env := setupEnv(t)
	user := env.createUser(t, "alice", "alice@example.com")

	name := "alicia"
	updated, err := env.users.Update(user.ID, &dto.UpdateUserInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "alicia", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)

	email := "alicia@example.com"
	updated, err = env.users.Update(user.ID, &dto.UpdateUserInput{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "alicia", updated.Name)
	assert.Equal(t, "alicia@example.com", updated.Email)
}

func TestUpdateUserBadEmail(t *testing.T) {
	env := setupEnv(t)
	user := env.createUser(t, "alice", "alice@example.com")

	email := "nope"
	_, err := env.users.Update(user.ID, &dto.UpdateUserInput{Email: &email})
	var ve *httperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "email")
}

func TestDeleteUser(t *testing.T) {
	env := setupEnv(t)
	user := env.createUser(t, "alice", "alice@example.com")

	require.NoError(t, env.users.Delete(user.ID))
	_, err := env.users.GetByID(user.ID)
	assert.Equal(t, httperr.KindNotFound, kindOf(t, err))
}

func TestDeleteUserWithRelatedRecords(t *testing.T) {
	env := setupEnv(t)
	owner := env.createUser(t, "owner", "owner@example.com")
	booker := env.createUser(t, "booker", "booker@example.com")
	item := env.createItem(t, owner.ID, "drill", true)
	env.seedBooking(t, item.ID, booker.ID, time.Now().Add(time.Hour), time.Now().Add(2*time.Hour), models.StatusWaiting)

	err := env.users.Delete(owner.ID)
	assert.Equal(t, httperr.KindConflict, kindOf(t, err))
	assert.EqualError(t, err, "user has related records")

	err = env.users.Delete(booker.ID)
	assert.Equal(t, httperr.KindConflict, kindOf(t, err))
}

func TestDeleteUserMissing(t *testing.T) {
	env := setupEnv(t)

	err := env.users.Delete(9)
	assert.Equal(t, httperr.KindNotFound, kindOf(t, err))
}
