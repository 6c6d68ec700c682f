package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"
	"testing"

	"github.com/devrakib/socialspace/backend/internal/models"
	"github.com/devrakib/socialspace/backend/internal/repositories/inmemory"
	"github.com/devrakib/socialspace/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartProfileUpdate(t *testing.T, fields map[string]string, fileName string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := w.CreateFormFile("profile_picture", fileName)
		require.NoError(t, err)
		_, err = fw.Write([]byte("image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUpdateProfileDeletesReplacedPicture(t *testing.T) {
	store := inmemory.New()
	storageStub := &fakeMediaStorage{}
	handler := NewUserHandler(services.NewUserService(store, "secret"), storageStub)

	user := &models.User{
		Username:          "alice",
		Email:             "alice@example.com",
		Password:          "x",
		ProfilePictureURL: "/media/profile_pics/old.png",
	}
	require.NoError(t, store.Users().Create(user))

	body, contentType := multipartProfileUpdate(t, map[string]string{"bio": "updated"}, "new.png")
	c, rec := newValidatedContext(t, http.MethodPut, "/profile", body, contentType, user.ID)

	require.NoError(t, handler.UpdateProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	updated, err := store.Users().GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated", updated.Bio)
	assert.Equal(t, "/media/profile_pics/new.png", updated.ProfilePictureURL)
	assert.Equal(t, []string{"/media/profile_pics/old.png"}, storageStub.deleted)
}

func TestUpdateProfileWithoutNewPictureKeepsOld(t *testing.T) {
	store := inmemory.New()
	storageStub := &fakeMediaStorage{}
	handler := NewUserHandler(services.NewUserService(store, "secret"), storageStub)

	user := &models.User{
		Username:          "alice",
		Email:             "alice@example.com",
		Password:          "x",
		ProfilePictureURL: "/media/profile_pics/old.png",
	}
	require.NoError(t, store.Users().Create(user))

	body, contentType := multipartProfileUpdate(t, map[string]string{"bio": "just text"}, "")
	c, rec := newValidatedContext(t, http.MethodPut, "/profile", body, contentType, user.ID)

	require.NoError(t, handler.UpdateProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	updated, err := store.Users().GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "/media/profile_pics/old.png", updated.ProfilePictureURL)
	assert.Empty(t, storageStub.deleted)
}

func TestGetUserIncludesFollowCounts(t *testing.T) {
	store := inmemory.New()
	handler := NewUserHandler(services.NewUserService(store, "secret"), nil)

	alice := &models.User{Username: "alice", Email: "alice@example.com", Password: "x"}
	require.NoError(t, store.Users().Create(alice))
	bob := &models.User{Username: "bob", Email: "bob@example.com", Password: "x"}
	require.NoError(t, store.Users().Create(bob))
	require.NoError(t, store.Follows().Create(&models.Follow{FollowerID: bob.ID, FollowingID: alice.ID}))

	c, rec := newValidatedContext(t, http.MethodGet, "/users/:id", nil, "", bob.ID)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(alice.ID)))

	require.NoError(t, handler.GetUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var profile models.UserProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "alice", profile.Username)
	assert.EqualValues(t, 1, profile.FollowersCount)
	assert.EqualValues(t, 0, profile.FollowingCount)
}
