package social

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitserver/internal/database/dbtest"
	"habitserver/internal/models"
	"habitserver/internal/models/api_error"
	"habitserver/internal/policy"
	"habitserver/internal/store"
)

var testDB *sqlx.DB

func TestMain(m *testing.M) {
	dbtest.Main(m, &testDB)
}

type fixture struct {
	svc   *Service
	store *store.Store
	clock time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dbtest.Require(t, testDB)

	f := &fixture{store: store.New(testDB), clock: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)}
	f.svc = New(f.store, Options{
		UploadDir: t.TempDir(),
		Now:       func() time.Time { return f.clock },
	})
	return f
}

func (f *fixture) user(t *testing.T, username string, v models.Visibility) *models.User {
	t.Helper()
	ctx := context.Background()
	u, err := f.svc.Signup(ctx, SignupInput{
		Email:    username + "@example.com",
		Password: "password1",
		Name:     strings.ToUpper(username[:1]) + username[1:],
		Username: username,
	})
	require.NoError(t, err)
	if v != models.VisibilityPublic {
		_, err := f.svc.UpdatePrivacy(ctx, u.ID, PrivacyUpdate{ProfileVisibility: &v})
		require.NoError(t, err)
		u.ProfileVisibility = v
	}
	return u
}

func (f *fixture) befriend(t *testing.T, a, b *models.User) {
	t.Helper()
	ctx := context.Background()
	req, err := f.svc.SendFriendRequest(ctx, a.ID, b.Username)
	require.NoError(t, err)
	_, err = f.svc.RespondToRequest(ctx, b.ID, RespondInput{RequestID: req.ID, Action: ActionAccept})
	require.NoError(t, err)
}

func (f *fixture) notifications(t *testing.T, u *models.User) []models.Notification {
	t.Helper()
	ns, err := f.svc.ListNotifications(context.Background(), u.ID)
	require.NoError(t, err)
	return ns
}

func TestService_SignupAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.svc.Signup(ctx, SignupInput{Email: "Jane.Doe+x@example.com", Password: "secret1", Name: "Jane"})
	require.NoError(t, err)
	assert.Equal(t, "janedoex", u.Username)
	assert.NotContains(t, u.PasswordHash, "secret1")

	twin, err := f.svc.Signup(ctx, SignupInput{Email: "jane.doe+x@other.com", Password: "secret1", Name: "Jane"})
	require.NoError(t, err)
	assert.Equal(t, "janedoex1", twin.Username)

	_, err = f.svc.Signup(ctx, SignupInput{Email: "Jane.Doe+x@example.com", Password: "secret1", Name: "Jane"})
	assert.ErrorIs(t, err, api_error.EmailTaken)

	logged, err := f.svc.Login(ctx, LoginInput{Email: "Jane.Doe+x@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)

	_, err = f.svc.Login(ctx, LoginInput{Email: "Jane.Doe+x@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, api_error.InvalidCreds)
	_, err = f.svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, api_error.InvalidCreds)
}

func TestService_BlockDeniesProfilesAndHidesRooms(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.user(t, "alice", models.VisibilityPublic)
	b := f.user(t, "bob", models.VisibilityPublic)

	room, err := f.svc.GetOrCreateDirectRoom(ctx, a.ID, b.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Block(ctx, a.ID, b.ID))

	for _, pair := range [][2]*models.User{{a, b}, {b, a}} {
		target, err := f.store.GetUserByID(ctx, pair[1].ID)
		require.NoError(t, err)
		access, err := f.svc.Policy().CanViewProfile(ctx, pair[0].ID, target)
		require.NoError(t, err)
		assert.Equal(t, policy.Denied, access)

		_, err = f.svc.ViewProfile(ctx, pair[0].ID, pair[1].ID)
		assert.ErrorIs(t, err, api_error.UserBlocked)

		rooms, err := f.svc.ListRoomsFor(ctx, pair[0].ID)
		require.NoError(t, err)
		for _, r := range rooms {
			assert.NotEqual(t, room.ID, r.ID)
		}
	}

	_, err = f.svc.GetOrCreateDirectRoom(ctx, b.ID, a.ID)
	assert.ErrorIs(t, err, api_error.UserBlocked)

	assert.ErrorIs(t, f.svc.Block(ctx, a.ID, a.ID), api_error.SelfBlock)
}

func TestService_ProfileVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	viewer := f.user(t, "viewer", models.VisibilityPublic)
	private := f.user(t, "hermit", models.VisibilityPrivate)
	friendsOnly := f.user(t, "cozy", models.VisibilityFriends)

	bio := "secret bio"
	_, err := f.svc.UpdateProfile(ctx, friendsOnly.ID, ProfileUpdate{Bio: &bio})
	require.NoError(t, err)
	_, err = f.svc.CreateHabit(ctx, friendsOnly.ID, HabitInput{Name: "Run"})
	require.NoError(t, err)

	_, err = f.svc.ViewProfile(ctx, viewer.ID, private.ID)
	assert.ErrorIs(t, err, api_error.ProfilePrivate)

	view, err := f.svc.ViewProfile(ctx, viewer.ID, friendsOnly.ID)
	require.NoError(t, err)
	restricted, ok := view.(*models.RestrictedProfile)
	require.True(t, ok, "got %T", view)
	assert.True(t, restricted.IsRestricted)
	assert.Equal(t, friendsOnly.Username, restricted.Username)

	f.befriend(t, viewer, friendsOnly)

	view, err = f.svc.ViewProfile(ctx, viewer.ID, friendsOnly.ID)
	require.NoError(t, err)
	full, ok := view.(*models.Profile)
	require.True(t, ok, "got %T", view)
	assert.Equal(t, bio, full.Bio)
	assert.Equal(t, 1, full.FriendCount)
	assert.Empty(t, full.Email)
	require.NotNil(t, full.Streak)

	hide := false
	_, err = f.svc.UpdatePrivacy(ctx, friendsOnly.ID, PrivacyUpdate{ShowStreak: &hide})
	require.NoError(t, err)
	view, err = f.svc.ViewProfile(ctx, viewer.ID, friendsOnly.ID)
	require.NoError(t, err)
	assert.Nil(t, view.(*models.Profile).Streak)

	own, err := f.svc.OwnProfile(ctx, friendsOnly.ID)
	require.NoError(t, err)
	assert.Equal(t, friendsOnly.Email, own.Email)
	require.NotNil(t, own.Streak)

	_, err = f.svc.ViewProfile(ctx, viewer.ID, uuid.New())
	assert.ErrorIs(t, err, api_error.UserNotFound)
}

func TestService_DirectRoomIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.user(t, "alice", models.VisibilityPublic)
	b := f.user(t, "bob", models.VisibilityPublic)

	first, err := f.svc.GetOrCreateDirectRoom(ctx, a.ID, b.ID)
	require.NoError(t, err)
	second, err := f.svc.GetOrCreateDirectRoom(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, second.Participants, 2)

	type result struct {
		id  uuid.UUID
		err error
	}
	results := make(chan result, 8)
	c := f.user(t, "carol", models.VisibilityPublic)
	for i := 0; i < cap(results); i++ {
		go func() {
			room, err := f.svc.GetOrCreateDirectRoom(ctx, a.ID, c.ID)
			if err != nil {
				results <- result{err: err}
				return
			}
			results <- result{id: room.ID}
		}()
	}
	ids := map[uuid.UUID]bool{}
	for i := 0; i < cap(results); i++ {
		r := <-results
		require.NoError(t, r.err)
		ids[r.id] = true
	}
	assert.Len(t, ids, 1, "concurrent calls agree on one room")

	rooms, err := f.svc.ListRoomsFor(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, rooms, 2)

	_, err = f.svc.GetOrCreateDirectRoom(ctx, a.ID, a.ID)
	assert.ErrorIs(t, err, api_error.SelfChat)
}

func seedChallenge(t *testing.T, f *fixture, name string) *models.Challenge {
	t.Helper()
	ctx := context.Background()
	forum := name + " Forum"
	room, err := f.store.CreateRoom(ctx, true, &forum)
	require.NoError(t, err)
	c := &models.Challenge{Name: name, Description: "d", Duration: "30 days", RoomID: &room.ID}
	require.NoError(t, f.store.CreateChallenge(ctx, c))
	return c
}

func TestService_JoinThenLeaveRestoresState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "joiner", models.VisibilityPublic)
	other := f.user(t, "other", models.VisibilityPublic)
	c := seedChallenge(t, f, "Morning Run")

	_, err := f.svc.JoinChallenge(ctx, other.ID, c.ID)
	require.NoError(t, err)
	before, err := f.store.GetChallenge(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, 1, before.Participants)

	view, err := f.svc.JoinChallenge(ctx, u.ID, c.ID)
	require.NoError(t, err)
	assert.True(t, view.Joined)
	assert.Equal(t, 2, view.Participants)
	require.NotNil(t, view.HabitID)

	habits, err := f.svc.ListHabits(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, "Morning Run", habits[0].Name)
	assert.Equal(t, models.CHALLENGE_CATEGORY, habits[0].Category)
	assert.Equal(t, 0, habits[0].Streak)

	in, err := f.store.IsParticipant(ctx, *c.RoomID, u.ID)
	require.NoError(t, err)
	assert.True(t, in)

	_, err = f.svc.JoinChallenge(ctx, u.ID, c.ID)
	assert.ErrorIs(t, err, api_error.AlreadyJoined)

	left, err := f.svc.LeaveChallenge(ctx, u.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, before.Participants, left.Participants)

	_, err = f.store.GetHabit(ctx, *view.HabitID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	in, err = f.store.IsParticipant(ctx, *c.RoomID, u.ID)
	require.NoError(t, err)
	assert.False(t, in)

	_, err = f.svc.LeaveChallenge(ctx, u.ID, c.ID)
	assert.ErrorIs(t, err, api_error.NotAParticipant)
	_, err = f.svc.JoinChallenge(ctx, u.ID, uuid.New())
	assert.ErrorIs(t, err, api_error.ChallengeNotFound)
}

func TestService_StreakStableWithinDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "steady", models.VisibilityPublic)

	h, err := f.svc.CreateHabit(ctx, u.ID, HabitInput{Name: "Meditate"})
	require.NoError(t, err)
	assert.Equal(t, models.DEFAULT_CATEGORY, h.Category)

	done, undone := true, false
	h, err = f.svc.UpdateHabit(ctx, u.ID, h.ID, HabitUpdate{CompletedToday: &done})
	require.NoError(t, err)
	require.Equal(t, 1, h.Streak)

	for i := 0; i < 4; i++ {
		h, err = f.svc.UpdateHabit(ctx, u.ID, h.ID, HabitUpdate{CompletedToday: &undone})
		require.NoError(t, err)
		assert.Equal(t, 1, h.Streak)
		h, err = f.svc.UpdateHabit(ctx, u.ID, h.ID, HabitUpdate{CompletedToday: &done})
		require.NoError(t, err)
		assert.Equal(t, 1, h.Streak)
	}

	f.clock = f.clock.Add(24 * time.Hour)
	habits, err := f.svc.ListHabits(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, habits[0].CompletedToday, "completion resets on a new day")

	h, err = f.svc.UpdateHabit(ctx, u.ID, h.ID, HabitUpdate{CompletedToday: &done})
	require.NoError(t, err)
	assert.Equal(t, 2, h.Streak)

	stranger := f.user(t, "stranger", models.VisibilityPublic)
	_, err = f.svc.UpdateHabit(ctx, stranger.ID, h.ID, HabitUpdate{CompletedToday: &done})
	assert.ErrorIs(t, err, api_error.HabitNotFound)
}

func TestService_NoSelfNotifications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.user(t, "alice", models.VisibilityPublic)
	b := f.user(t, "bob", models.VisibilityPublic)

	post, err := f.svc.CreatePost(ctx, a.ID, PostInput{Content: "Day 1 done"})
	require.NoError(t, err)

	like, err := f.svc.ToggleLike(ctx, a.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, like.Liked)
	_, err = f.svc.AddComment(ctx, a.ID, post.ID, CommentInput{Content: "me again"})
	require.NoError(t, err)

	room, err := f.svc.GetOrCreateDirectRoom(ctx, a.ID, b.ID)
	require.NoError(t, err)
	_, err = f.svc.SendMessage(ctx, a.ID, room.ID, MessageInput{Content: "hi"})
	require.NoError(t, err)

	for _, n := range f.notifications(t, a) {
		if n.SenderID != nil {
			assert.NotEqual(t, a.ID, *n.SenderID)
		}
	}

	ns := f.notifications(t, b)
	require.Len(t, ns, 1)
	assert.Equal(t, models.NotificationMessage, ns[0].Type)
	assert.Equal(t, room.ID, *ns[0].EntityID)

	like, err = f.svc.ToggleLike(ctx, b.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LikeResult{Likes: 2, Liked: true}, *like)
	like, err = f.svc.ToggleLike(ctx, b.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LikeResult{Likes: 1, Liked: false}, *like)

	var likes int
	for _, n := range f.notifications(t, a) {
		if n.Type == models.NotificationLike {
			likes++
		}
	}
	assert.Equal(t, 1, likes, "unlike does not notify")
}

func TestService_FriendRequestUniqueness(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.user(t, "alice", models.VisibilityPublic)
	b := f.user(t, "bob", models.VisibilityPublic)
	p := f.svc.Policy()

	ok, err := p.CanSendFriendRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	req, err := f.svc.SendFriendRequest(ctx, a.ID, "bob")
	require.NoError(t, err)

	for _, pair := range [][2]uuid.UUID{{a.ID, b.ID}, {b.ID, a.ID}} {
		ok, err := p.CanSendFriendRequest(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.False(t, ok)
	}
	_, err = f.svc.SendFriendRequest(ctx, b.ID, "alice")
	assert.ErrorIs(t, err, api_error.RequestExists)
	_, err = f.svc.SendFriendRequest(ctx, a.ID, "alice")
	assert.ErrorIs(t, err, api_error.SelfRequest)
	_, err = f.svc.SendFriendRequest(ctx, a.ID, "nobody")
	assert.ErrorIs(t, err, api_error.UserNotFound)

	incoming, err := f.svc.IncomingRequests(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, a.ID, incoming[0].Sender.ID)

	_, err = f.svc.RespondToRequest(ctx, a.ID, RespondInput{RequestID: req.ID, Action: ActionAccept})
	assert.ErrorIs(t, err, api_error.RequestNotFound, "only the receiver may respond")

	_, err = f.svc.RespondToRequest(ctx, b.ID, RespondInput{RequestID: req.ID, Action: ActionReject})
	require.NoError(t, err)

	again, err := f.svc.SendFriendRequest(ctx, b.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, req.ID, again.ID, "rejected friendship row is reused")
	assert.Equal(t, b.ID, again.SenderID)

	_, err = f.svc.RespondToRequest(ctx, a.ID, RespondInput{RequestID: again.ID, Action: "accept"})
	require.NoError(t, err)

	friends, err := f.svc.ListFriends(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, b.ID, friends[0].ID)

	var requests int
	for _, n := range f.notifications(t, a) {
		if n.Type == models.NotificationFriendRequest {
			requests++
		}
	}
	assert.Equal(t, 1, requests)
}

func TestService_FeedFollowsFriendship(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.user(t, "alice", models.VisibilityFriends)
	b := f.user(t, "bob", models.VisibilityPublic)

	post, err := f.svc.CreatePost(ctx, a.ID, PostInput{Content: "Day 1 done"})
	require.NoError(t, err)

	contains := func(posts []models.Post) bool {
		for _, p := range posts {
			if p.ID == post.ID {
				return true
			}
		}
		return false
	}

	feed, err := f.svc.FeedFor(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, contains(feed))

	_, err = f.svc.ToggleLike(ctx, b.ID, post.ID)
	assert.ErrorIs(t, err, api_error.PostNotFound, "invisible posts cannot be liked")

	f.befriend(t, a, b)

	feed, err = f.svc.FeedFor(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, contains(feed))

	c, err := f.svc.AddComment(ctx, b.ID, post.ID, CommentInput{Content: "nice"})
	require.NoError(t, err)
	_, err = f.svc.AddComment(ctx, a.ID, post.ID, CommentInput{Content: "thanks", ParentID: &c.ID})
	require.NoError(t, err)

	feed, err = f.svc.FeedFor(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, contains(feed))
	assert.Len(t, feed[0].Comments, 2)

	reply := feed[0].Comments[1]
	_, err = f.svc.AddComment(ctx, b.ID, post.ID, CommentInput{Content: "deeper", ParentID: &reply.ID})
	assert.Error(t, err)
	assert.Equal(t, 400, api_error.StatusOf(err))

	require.NoError(t, f.svc.Block(ctx, b.ID, a.ID))
	feed, err = f.svc.FeedFor(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, contains(feed), "blocked authors are hidden from the feed")

	assert.Error(t, f.svc.DeletePost(ctx, b.ID, post.ID))
	require.NoError(t, f.svc.DeletePost(ctx, a.ID, post.ID))
}

func TestService_BlockThenUnblockMessaging(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.user(t, "alice", models.VisibilityPublic)
	b := f.user(t, "bob", models.VisibilityPublic)

	room, err := f.svc.GetOrCreateDirectRoom(ctx, a.ID, b.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Block(ctx, a.ID, b.ID))
	_, err = f.svc.SendMessage(ctx, b.ID, room.ID, MessageInput{Content: "hello?"})
	assert.ErrorIs(t, err, api_error.UserBlocked)
	assert.Equal(t, 403, api_error.StatusOf(err))
	_, err = f.svc.ListMessages(ctx, b.ID, room.ID)
	assert.ErrorIs(t, err, api_error.UserBlocked)

	require.NoError(t, f.svc.Unblock(ctx, a.ID, b.ID))
	msg, err := f.svc.SendMessage(ctx, b.ID, room.ID, MessageInput{Content: "hello?"})
	require.NoError(t, err)
	assert.Equal(t, "hello?", msg.Content)

	msgs, err := f.svc.ListMessages(ctx, a.ID, room.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	outsider := f.user(t, "eve", models.VisibilityPublic)
	_, err = f.svc.SendMessage(ctx, outsider.ID, room.ID, MessageInput{Content: "hi"})
	assert.ErrorIs(t, err, api_error.NotParticipant)
	_, err = f.svc.SendMessage(ctx, a.ID, room.ID, MessageInput{Content: "   "})
	assert.ErrorIs(t, err, api_error.EmptyContent)
}

func TestService_GroupRoomsIgnoreBlocks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.user(t, "alice", models.VisibilityPublic)
	b := f.user(t, "bob", models.VisibilityPublic)
	c := seedChallenge(t, f, "Hydrate")

	_, err := f.svc.JoinChallenge(ctx, a.ID, c.ID)
	require.NoError(t, err)
	_, err = f.svc.JoinChallenge(ctx, b.ID, c.ID)
	require.NoError(t, err)
	require.NoError(t, f.svc.Block(ctx, a.ID, b.ID))

	_, err = f.svc.SendMessage(ctx, b.ID, *c.RoomID, MessageInput{Content: "go team"})
	require.NoError(t, err)

	rooms, err := f.svc.ListRoomsFor(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.True(t, rooms[0].IsGroup)
	require.Len(t, rooms[0].Messages, 1)
	assert.Equal(t, "go team", rooms[0].Messages[0].Content)
}

func TestService_BadgesAwardedOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "achiever", models.VisibilityPublic)

	require.NoError(t, f.store.UpsertBadge(ctx, &models.Badge{Name: "First Step", Type: models.BadgeHabitCount, Threshold: 1}))
	require.NoError(t, f.store.UpsertBadge(ctx, &models.Badge{Name: "Collector", Type: models.BadgeHabitCount, Threshold: 3}))

	for i := 0; i < 2; i++ {
		_, err := f.svc.CreateHabit(ctx, u.ID, HabitInput{Name: "h"})
		require.NoError(t, err)
	}

	badges, err := f.svc.ListBadges(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, badges, 1)
	assert.Equal(t, "First Step", badges[0].Name)

	var achievements int
	for _, n := range f.notifications(t, u) {
		if n.Type == models.NotificationAchievement {
			achievements++
			assert.Nil(t, n.SenderID)
		}
	}
	assert.Equal(t, 1, achievements)
}

func TestService_ActivityAndAnalytics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "tracker", models.VisibilityPublic)
	other := f.user(t, "other", models.VisibilityPublic)

	h1, err := f.svc.CreateHabit(ctx, u.ID, HabitInput{Name: "one"})
	require.NoError(t, err)
	_, err = f.svc.CreateHabit(ctx, u.ID, HabitInput{Name: "two"})
	require.NoError(t, err)
	foreign, err := f.svc.CreateHabit(ctx, other.ID, HabitInput{Name: "theirs"})
	require.NoError(t, err)

	a, err := f.svc.SaveActivity(ctx, u.ID, ActivityInput{Date: "2024-03-10", CompletedHabits: []uuid.UUID{h1.ID, h1.ID}})
	require.NoError(t, err)
	assert.Equal(t, 2, a.TotalHabits)
	assert.Equal(t, 50.0, a.CompletionRate)

	_, err = f.svc.SaveActivity(ctx, u.ID, ActivityInput{Date: "2024-03-09", CompletedHabits: []uuid.UUID{h1.ID}})
	require.NoError(t, err)

	_, err = f.svc.SaveActivity(ctx, u.ID, ActivityInput{Date: "2024-03-10", CompletedHabits: []uuid.UUID{foreign.ID}})
	assert.ErrorIs(t, err, api_error.HabitNotFound)
	_, err = f.svc.SaveActivity(ctx, u.ID, ActivityInput{Date: "10/03/2024"})
	assert.Equal(t, 400, api_error.StatusOf(err))

	summary, err := f.svc.AnalyticsSummary(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalHabits)
	assert.Equal(t, 2, summary.ActivityStreak)
	assert.Len(t, summary.RecentActivity, 2)
}

func TestService_SettingsAndPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "settler", models.VisibilityPublic)
	other := f.user(t, "taken", models.VisibilityPublic)

	off := false
	settings, err := f.svc.UpdateSettings(ctx, u.ID, SettingsUpdate{EmailNotifications: &off})
	require.NoError(t, err)
	assert.False(t, settings.EmailNotifications)
	assert.True(t, settings.HabitReminders)

	view, err := f.svc.GetSettings(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, view.Settings.EmailNotifications)

	_, err = f.svc.UpdateAccount(ctx, u.ID, AccountUpdate{Email: &other.Email})
	assert.ErrorIs(t, err, api_error.EmailTaken)

	err = f.svc.ChangePassword(ctx, u.ID, PasswordChange{CurrentPassword: "wrong", NewPassword: "newpass1"})
	assert.ErrorIs(t, err, api_error.WrongPassword)
	require.NoError(t, f.svc.ChangePassword(ctx, u.ID, PasswordChange{CurrentPassword: "password1", NewPassword: "newpass1"}))
	_, err = f.svc.Login(ctx, LoginInput{Email: u.Email, Password: "newpass1"})
	require.NoError(t, err)

	bad := models.Visibility("SECRET")
	_, err = f.svc.UpdatePrivacy(ctx, u.ID, PrivacyUpdate{ProfileVisibility: &bad})
	assert.Equal(t, 400, api_error.StatusOf(err))
}

func TestService_Avatar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "pictured", models.VisibilityPublic)

	_, err := f.svc.SetAvatar(ctx, u.ID, AvatarUpload{
		Body: bytes.NewReader([]byte("gif")), Filename: "a.gif", ContentType: "image/gif", Size: 3,
	})
	assert.Equal(t, 400, api_error.StatusOf(err))

	_, err = f.svc.SetAvatar(ctx, u.ID, AvatarUpload{
		Body: bytes.NewReader(nil), Filename: "a.png", ContentType: "image/png", Size: models.MAX_AVATAR_FILESIZE + 1,
	})
	assert.Equal(t, 400, api_error.StatusOf(err))

	first, err := f.svc.SetAvatar(ctx, u.ID, AvatarUpload{
		Body: bytes.NewReader([]byte("png-bytes")), Filename: "me.PNG", ContentType: "image/png", Size: 9,
	})
	require.NoError(t, err)
	require.NotNil(t, first.AvatarURL)
	firstPath := filepath.Join(f.svc.uploadDir, "avatars", filepath.Base(*first.AvatarURL))
	assert.FileExists(t, firstPath)

	second, err := f.svc.SetAvatar(ctx, u.ID, AvatarUpload{
		Body: bytes.NewReader([]byte("jpg-bytes")), Filename: "me.jpeg", ContentType: "image/jpeg", Size: 9,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(*second.AvatarURL, ".jpg"))
	assert.NoFileExists(t, firstPath)

	require.NoError(t, f.svc.DeleteAvatar(ctx, u.ID))
	entries, err := os.ReadDir(filepath.Join(f.svc.uploadDir, "avatars"))
	require.NoError(t, err)
	assert.Empty(t, entries)

	me, err := f.svc.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, me.AvatarURL)
}

func TestService_Utilities(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "planner", models.VisibilityPublic)
	other := f.user(t, "snoop", models.VisibilityPublic)

	r, err := f.svc.CreateReminder(ctx, u.ID, ReminderInput{Title: "Stretch"})
	require.NoError(t, err)
	done := true
	r, err = f.svc.UpdateReminder(ctx, u.ID, r.ID, ReminderUpdate{IsDone: &done})
	require.NoError(t, err)
	assert.True(t, r.IsDone)

	_, err = f.svc.UpdateReminder(ctx, other.ID, r.ID, ReminderUpdate{IsDone: &done})
	assert.ErrorIs(t, err, api_error.ReminderNotFound)
	assert.ErrorIs(t, f.svc.DeleteReminder(ctx, other.ID, r.ID), api_error.ReminderNotFound)
	require.NoError(t, f.svc.DeleteReminder(ctx, u.ID, r.ID))

	ps, err := f.svc.PomodoroSettings(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPomodoroSettings(u.ID), ps)

	focus := 45
	ps, err = f.svc.UpdatePomodoroSettings(ctx, u.ID, PomodoroUpdate{FocusMinutes: &focus})
	require.NoError(t, err)
	assert.Equal(t, 45, ps.FocusMinutes)
	assert.Equal(t, 5, ps.ShortBreakMinutes)

	zero := 0
	_, err = f.svc.UpdatePomodoroSettings(ctx, u.ID, PomodoroUpdate{LongBreakMinutes: &zero})
	assert.Equal(t, 400, api_error.StatusOf(err))

	session, err := f.svc.RecordSession(ctx, u.ID, SessionInput{Type: models.SessionFocus, PlannedMinutes: 45, Completed: true})
	require.NoError(t, err)
	assert.True(t, session.Completed)
	_, err = f.svc.RecordSession(ctx, u.ID, SessionInput{Type: "NAP", PlannedMinutes: 20})
	assert.Equal(t, 400, api_error.StatusOf(err))
}

func TestService_Notifications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.user(t, "alice", models.VisibilityPublic)
	b := f.user(t, "bob", models.VisibilityPublic)

	_, err := f.svc.SendFriendRequest(ctx, a.ID, "bob")
	require.NoError(t, err)

	ns := f.notifications(t, b)
	require.Len(t, ns, 1)
	require.NotNil(t, ns[0].Sender)
	assert.Equal(t, "alice", ns[0].Sender.Username)
	assert.False(t, ns[0].IsRead)

	assert.ErrorIs(t, f.svc.MarkNotificationRead(ctx, a.ID, ns[0].ID), api_error.NotificationNotFound)
	require.NoError(t, f.svc.MarkNotificationRead(ctx, b.ID, ns[0].ID))
	assert.True(t, f.notifications(t, b)[0].IsRead)

	n, err := f.svc.MarkAllNotificationsRead(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
