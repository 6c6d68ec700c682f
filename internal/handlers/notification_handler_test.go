package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/devrakib/socialspace/backend/internal/models"
	"github.com/devrakib/socialspace/backend/internal/repositories/inmemory"
	"github.com/devrakib/socialspace/backend/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthedContext(t *testing.T, method, path string, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", &models.JwtCustomClaims{UserID: userID, Username: "tester"})
	return c, rec
}

func TestGetNotificationsResponseShape(t *testing.T) {
	store := inmemory.New()
	notifier := services.NewNotificationService(store)
	handler := NewNotificationHandler(notifier)

	alice := &models.User{Username: "alice", Email: "alice@example.com", Password: "x"}
	require.NoError(t, store.Users().Create(alice))
	bob := &models.User{Username: "bob", Email: "bob@example.com", Password: "x"}
	require.NoError(t, store.Users().Create(bob))

	n := &models.Notification{
		RecipientID: bob.ID,
		ActorID:     alice.ID,
		Verb:        services.VerbFollowed,
		TargetType:  models.TargetUser,
		TargetID:    alice.ID,
	}
	require.NoError(t, store.Notifications().Create(n))

	c, rec := newAuthedContext(t, http.MethodGet, "/notifications", bob.ID)
	require.NoError(t, handler.GetNotifications(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Unread []models.EnrichedNotification `json:"unread_notifications"`
		Read   []models.EnrichedNotification `json:"read_notifications"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Unread, 1)
	assert.Empty(t, body.Read)
	assert.Equal(t, "alice", body.Unread[0].Actor.Username)
	require.NotNil(t, body.Unread[0].Target)
	assert.Equal(t, models.TargetUser, body.Unread[0].Target.Model)
}

func TestMarkAsReadInvalidID(t *testing.T) {
	store := inmemory.New()
	handler := NewNotificationHandler(services.NewNotificationService(store))

	c, _ := newAuthedContext(t, http.MethodPost, "/notifications/abc/read", 1)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := handler.MarkAsRead(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestMarkAsReadForeignNotificationNotFound(t *testing.T) {
	store := inmemory.New()
	handler := NewNotificationHandler(services.NewNotificationService(store))

	owner := &models.User{Username: "owner", Email: "owner@example.com", Password: "x"}
	require.NoError(t, store.Users().Create(owner))
	n := &models.Notification{RecipientID: owner.ID, ActorID: 99, Verb: services.VerbLiked, TargetType: models.TargetPost, TargetID: 1}
	require.NoError(t, store.Notifications().Create(n))

	intruderID := owner.ID + 100
	c, _ := newAuthedContext(t, http.MethodPost, "/notifications/:id/read", intruderID)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(n.ID)))

	err := handler.MarkAsRead(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestMarkAsUnreadRoundTrip(t *testing.T) {
	store := inmemory.New()
	notifier := services.NewNotificationService(store)
	handler := NewNotificationHandler(notifier)

	owner := &models.User{Username: "owner", Email: "owner@example.com", Password: "x"}
	require.NoError(t, store.Users().Create(owner))
	n := &models.Notification{RecipientID: owner.ID, ActorID: 99, Verb: services.VerbLiked, TargetType: models.TargetPost, TargetID: 1}
	require.NoError(t, store.Notifications().Create(n))
	require.NoError(t, notifier.MarkRead(n.ID, owner.ID))

	c, rec := newAuthedContext(t, http.MethodDelete, "/notifications/:id/read", owner.ID)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(n.ID)))
	require.NoError(t, handler.MarkAsUnread(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	count, err := notifier.UnreadCount(owner.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
