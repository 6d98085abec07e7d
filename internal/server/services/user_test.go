package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/dmitrijs2005/expensetracker/internal/server/auth"
	"github.com/dmitrijs2005/expensetracker/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_TokenResolvesToNewUser(t *testing.T) {
	us, _, tokens := newMemoryServices(t)

	s, err := us.Register(context.Background(), "Alice", "alice@example.com", "s3cret")
	require.NoError(t, err)

	assert.NotEmpty(t, s.User.ID)
	assert.Equal(t, "Alice", s.User.Name)
	assert.NotEqual(t, "s3cret", s.User.PasswordHash)
	assert.True(t, auth.CheckPassword(s.User.PasswordHash, "s3cret"))

	userID, err := tokens.Verify(s.Token)
	require.NoError(t, err)
	assert.Equal(t, s.User.ID, userID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	us, _, _ := newMemoryServices(t)
	mustRegister(t, us, "dup@example.com")

	_, err := us.Register(context.Background(), "Other", "dup@example.com", "x")
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestRegister_MissingFields(t *testing.T) {
	us, _, _ := newMemoryServices(t)

	for _, in := range [][3]string{
		{"", "a@example.com", "pw"},
		{"A", "", "pw"},
		{"A", "a@example.com", ""},
		{"  ", "a@example.com", "pw"},
	} {
		_, err := us.Register(context.Background(), in[0], in[1], in[2])
		var ve *common.ValidationError
		require.ErrorAs(t, err, &ve, "%v", in)
		assert.Equal(t, MsgRegisterFieldsRequired, ve.Message)
	}
}

func TestRegister_RepoError(t *testing.T) {
	rm := &fakeRepoManager{u: &fakeUsersRepo{createErr: errBoom{}}}
	us := NewUserService(nil, rm, auth.NewTokenService("k"))

	_, err := us.Register(context.Background(), "A", "a@example.com", "pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error creating user: boom")
	assert.False(t, errors.Is(err, common.ErrorAlreadyExists))
}

func TestLogin_Success(t *testing.T) {
	us, _, tokens := newMemoryServices(t)
	reg := mustRegister(t, us, "bob@example.com")

	s, err := us.Login(context.Background(), "bob@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, s.User.ID)

	userID, err := tokens.Verify(s.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, userID)
}

func TestLogin_UnknownEmailAndWrongPasswordAreIndistinguishable(t *testing.T) {
	us, _, _ := newMemoryServices(t)
	mustRegister(t, us, "carol@example.com")

	_, errUnknown := us.Login(context.Background(), "nobody@example.com", "password1")
	_, errWrong := us.Login(context.Background(), "carol@example.com", "wrong")

	assert.ErrorIs(t, errUnknown, common.ErrorInvalidCredentials)
	assert.ErrorIs(t, errWrong, common.ErrorInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestLogin_EmailIsCaseSensitive(t *testing.T) {
	us, _, _ := newMemoryServices(t)
	mustRegister(t, us, "dave@example.com")

	_, err := us.Login(context.Background(), "Dave@example.com", "password1")
	assert.ErrorIs(t, err, common.ErrorInvalidCredentials)
}

func TestLogin_MissingFields(t *testing.T) {
	us, _, _ := newMemoryServices(t)

	_, err := us.Login(context.Background(), "", "pw")
	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, MsgLoginFieldsRequired, ve.Message)

	_, err = us.Login(context.Background(), "a@example.com", "")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestLogin_RepoErrorIsInternal(t *testing.T) {
	rm := &fakeRepoManager{u: &fakeUsersRepo{getErr: errBoom{}}}
	us := NewUserService(nil, rm, auth.NewTokenService("k"))

	_, err := us.Login(context.Background(), "a@example.com", "pw")
	require.Error(t, err)
	assert.False(t, errors.Is(err, common.ErrorInvalidCredentials))
	assert.Contains(t, err.Error(), "error loading user: boom")
}

func TestLogin_CorruptHashIsInvalidCredentials(t *testing.T) {
	rm := &fakeRepoManager{u: &fakeUsersRepo{getOut: &models.User{ID: "u1", PasswordHash: "garbage"}}}
	us := NewUserService(nil, rm, auth.NewTokenService("k"))

	_, err := us.Login(context.Background(), "a@example.com", "pw")
	assert.ErrorIs(t, err, common.ErrorInvalidCredentials)
}
