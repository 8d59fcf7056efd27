package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitserver/internal/database/dbtest"
	"habitserver/internal/models"
)

var testDB *sqlx.DB

func TestMain(m *testing.M) {
	dbtest.Main(m, &testDB)
}

func newStore(t *testing.T) *Store {
	t.Helper()
	dbtest.Require(t, testDB)
	return New(testDB)
}

func createUser(t *testing.T, s *Store, username string, v models.Visibility) *models.User {
	t.Helper()
	u := &models.User{
		Email:             username + "@example.com",
		PasswordHash:      "hash",
		Name:              "Name " + username,
		Username:          username,
		ProfileVisibility: v,
	}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func TestStore_Users(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	u := createUser(t, s, "alice", models.VisibilityFriends)
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, models.VisibilityFriends, u.ProfileVisibility)

	byEmail, err := s.GetUserByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	_, err = s.GetUserByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	dup := &models.User{Email: "alice@example.com", PasswordHash: "x", Name: "x", Username: "other"}
	assert.ErrorIs(t, s.CreateUser(ctx, dup), ErrConflict)

	exists, err := s.UsernameExists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	name := "Alice"
	updated, err := s.UpdateProfile(ctx, u.ID, &name, nil)
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.Name)
	assert.Equal(t, u.Bio, updated.Bio)
}

func TestStore_SearchUsers(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	viewer := createUser(t, s, "viewer", models.VisibilityPublic)
	match := createUser(t, s, "runner_1", models.VisibilityPublic)
	blocked := createUser(t, s, "runner_2", models.VisibilityPublic)
	createUser(t, s, "walker", models.VisibilityPublic)
	require.NoError(t, s.Block(ctx, blocked.ID, viewer.ID))

	results, err := s.SearchUsers(ctx, viewer.ID, "RUNNER", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, match.ID, results[0].ID)

	results, err = s.SearchUsers(ctx, viewer.ID, "%", 10)
	require.NoError(t, err)
	assert.Empty(t, results, "wildcards are matched literally")
}

func TestStore_Settings(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	u := createUser(t, s, "bob", models.VisibilityPublic)

	settings, err := s.GetSettings(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultUserSettings(u.ID), settings)

	settings.ShowStreak = false
	require.NoError(t, s.SaveSettings(ctx, settings))

	settings, err = s.GetSettings(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, settings.ShowStreak)
}

func TestStore_WithTxRollsBack(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx *Store) error {
		createUser(t, tx, "ghost", models.VisibilityPublic)
		return tx.WithTx(ctx, func(inner *Store) error {
			assert.Same(t, tx, inner)
			return boom
		})
	})
	assert.ErrorIs(t, err, boom)

	exists, err := s.UsernameExists(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.Error(t, s.LockPair(ctx, "x", uuid.New(), uuid.New()))
}

func TestStore_FriendshipPairIsUnique(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	a := createUser(t, s, "a_user", models.VisibilityPublic)
	b := createUser(t, s, "b_user", models.VisibilityPublic)

	f, err := s.CreateFriendRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendshipPending, f.Status)

	_, err = s.CreateFriendRequest(ctx, b.ID, a.ID)
	assert.ErrorIs(t, err, ErrConflict)

	between, err := s.FriendshipBetween(ctx, b.ID, a.ID)
	require.NoError(t, err)
	require.NotNil(t, between)
	assert.Equal(t, f.ID, between.ID)

	_, err = s.SetFriendshipStatus(ctx, f.ID, models.FriendshipRejected)
	require.NoError(t, err)

	reopened, err := s.ReopenFriendRequest(ctx, f.ID, b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, reopened.SenderID)
	assert.Equal(t, models.FriendshipPending, reopened.Status)

	_, err = s.SetFriendshipStatus(ctx, f.ID, models.FriendshipAccepted)
	require.NoError(t, err)

	ids, err := s.FriendIDs(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b.ID}, ids)

	n, err := s.CountFriends(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	none, err := s.FriendshipBetween(ctx, a.ID, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestStore_Blocks(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	a := createUser(t, s, "blocker", models.VisibilityPublic)
	b := createUser(t, s, "blockee", models.VisibilityPublic)

	require.NoError(t, s.Block(ctx, a.ID, b.ID))
	require.NoError(t, s.Block(ctx, a.ID, b.ID))

	for _, pair := range [][2]uuid.UUID{{a.ID, b.ID}, {b.ID, a.ID}} {
		blocked, err := s.IsBlocked(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.True(t, blocked)
	}

	ids, err := s.BlockedIDs(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a.ID}, ids)

	list, err := s.ListBlocked(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)

	require.NoError(t, s.Unblock(ctx, a.ID, b.ID))
	blocked, err := s.IsBlocked(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestStore_FeedPosts(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	viewer := createUser(t, s, "viewer", models.VisibilityPrivate)
	public := createUser(t, s, "public", models.VisibilityPublic)
	friend := createUser(t, s, "friend", models.VisibilityFriends)
	stranger := createUser(t, s, "stranger", models.VisibilityFriends)
	private := createUser(t, s, "private", models.VisibilityPrivate)

	for _, u := range []*models.User{viewer, public, friend, stranger, private} {
		_, err := s.CreatePost(ctx, u.ID, u.Name, "post by "+u.Username)
		require.NoError(t, err)
	}

	posts, err := s.FeedPosts(ctx, viewer.ID, []uuid.UUID{friend.ID, private.ID}, nil, 50)
	require.NoError(t, err)

	authors := map[uuid.UUID]bool{}
	for _, p := range posts {
		authors[p.UserID] = true
		assert.Equal(t, p.UserID, p.User.ID)
	}
	assert.Equal(t, map[uuid.UUID]bool{viewer.ID: true, public.ID: true, friend.ID: true}, authors)

	posts, err = s.FeedPosts(ctx, viewer.ID, nil, []uuid.UUID{public.ID}, 50)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, viewer.ID, posts[0].UserID)

	posts, err = s.FeedPosts(ctx, public.ID, nil, nil, 1)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestStore_LikesAndComments(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	author := createUser(t, s, "author", models.VisibilityPublic)
	fan := createUser(t, s, "fan", models.VisibilityPublic)

	p, err := s.CreatePost(ctx, author.ID, author.Name, "hello")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Likes)
	assert.Empty(t, p.LikedBy)

	require.NoError(t, s.SetLikedBy(ctx, p.ID, models.UUIDList{fan.ID}))
	p, err = s.GetPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Likes)
	assert.True(t, p.LikedBy.Contains(fan.ID))

	top, err := s.CreateComment(ctx, &models.Comment{PostID: p.ID, UserID: fan.ID, Author: fan.Name, Content: "first"})
	require.NoError(t, err)
	reply, err := s.CreateComment(ctx, &models.Comment{PostID: p.ID, UserID: author.ID, Author: author.Name, Content: "thanks", ParentID: &top.ID})
	require.NoError(t, err)
	assert.Equal(t, fan.ID, top.User.ID)

	posts := []models.Post{*p}
	require.NoError(t, s.AttachComments(ctx, posts))
	require.Len(t, posts[0].Comments, 2)
	assert.Equal(t, top.ID, posts[0].Comments[0].ID)
	assert.Equal(t, reply.ID, posts[0].Comments[1].ID)
	assert.Equal(t, top.ID, *posts[0].Comments[1].ParentID)

	require.NoError(t, s.DeletePost(ctx, p.ID))
	assert.ErrorIs(t, s.DeletePost(ctx, p.ID), ErrNotFound)
}

func TestStore_Chat(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	a := createUser(t, s, "chat_a", models.VisibilityPublic)
	b := createUser(t, s, "chat_b", models.VisibilityPublic)
	c := createUser(t, s, "chat_c", models.VisibilityPublic)

	_, err := s.FindDirectRoom(ctx, a.ID, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	room, err := s.CreateRoom(ctx, false, nil, a.ID, b.ID)
	require.NoError(t, err)
	name := "Group"
	group, err := s.CreateRoom(ctx, true, &name, a.ID, b.ID, c.ID)
	require.NoError(t, err)

	found, err := s.FindDirectRoom(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, room.ID, found.ID)

	for i := 0; i < 3; i++ {
		_, err := s.CreateMessage(ctx, room.ID, a.ID, fmt.Sprintf("m%d", i), nil)
		require.NoError(t, err)
	}
	first, err := s.ListMessages(ctx, room.ID, 50)
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.Equal(t, "m0", first[0].Content)
	assert.Equal(t, "m2", first[2].Content)

	reply, err := s.CreateMessage(ctx, room.ID, b.ID, "re", &first[0].ID)
	require.NoError(t, err)
	require.NotNil(t, reply.ReplyTo)
	assert.Equal(t, "m0", reply.ReplyTo.Content)
	assert.Equal(t, a.ID, reply.ReplyTo.Sender.ID)

	latest, err := s.ListMessages(ctx, room.ID, 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "m2", latest[0].Content)
	assert.Equal(t, "re", latest[1].Content)

	rooms, err := s.RoomsFor(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, room.ID, rooms[0].ID, "room with the newest message comes first")
	assert.Equal(t, group.ID, rooms[1].ID)

	last, err := s.LastMessages(ctx, room.ID, group.ID)
	require.NoError(t, err)
	assert.Equal(t, "re", last[room.ID].Content)
	_, ok := last[group.ID]
	assert.False(t, ok)

	parts, err := s.Participants(ctx, group.ID)
	require.NoError(t, err)
	assert.Len(t, parts[group.ID], 3)

	require.NoError(t, s.RemoveParticipant(ctx, group.ID, c.ID))
	in, err := s.IsParticipant(ctx, group.ID, c.ID)
	require.NoError(t, err)
	assert.False(t, in)
}

func TestStore_LockPair(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()

	err := s.WithTx(ctx, func(tx *Store) error {
		if err := tx.LockPair(ctx, "direct-room", a, b); err != nil {
			return err
		}
		return tx.LockPair(ctx, "direct-room", b, a)
	})
	require.NoError(t, err)
}

func TestStore_Challenges(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	u := createUser(t, s, "joiner", models.VisibilityPublic)

	c := &models.Challenge{Name: "30 Day Run", Description: "run", Duration: "30 days"}
	require.NoError(t, s.CreateChallenge(ctx, c))

	require.NoError(t, s.AdjustParticipants(ctx, c.ID, -1))
	got, err := s.GetChallenge(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Participants, "counter never goes below zero")

	h := &models.Habit{UserID: u.ID, Name: c.Name, Category: models.CHALLENGE_CATEGORY}
	require.NoError(t, s.CreateHabit(ctx, h))
	require.NoError(t, s.CreateParticipant(ctx, c.ID, u.ID, &h.ID))
	assert.ErrorIs(t, s.CreateParticipant(ctx, c.ID, u.ID, nil), ErrConflict)

	views, err := s.ListChallenges(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].Joined)
	assert.Equal(t, h.ID, *views[0].HabitID)

	views, err = s.ListChallenges(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, views[0].Joined)
	assert.Nil(t, views[0].HabitID)
}

func TestStore_HabitsAndActivity(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	u := createUser(t, s, "habitual", models.VisibilityPublic)

	h := &models.Habit{UserID: u.ID, Name: "Read", Category: models.DEFAULT_CATEGORY}
	require.NoError(t, s.CreateHabit(ctx, h))
	h.Streak = 4
	require.NoError(t, s.SaveHabit(ctx, h))

	count, longest, err := s.HabitStats(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 4, longest)

	owned, err := s.CountOwnedHabits(ctx, u.ID, []uuid.UUID{h.ID, uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, 1, owned)

	a := &models.DailyActivity{UserID: u.ID, Date: "2024-03-10", CompletedHabits: models.UUIDList{h.ID}, TotalHabits: 1, CompletionRate: 100}
	require.NoError(t, s.UpsertActivity(ctx, a))
	a.CompletedHabits = models.UUIDList{}
	a.CompletionRate = 0
	require.NoError(t, s.UpsertActivity(ctx, a))
	require.NoError(t, s.UpsertActivity(ctx, &models.DailyActivity{UserID: u.ID, Date: "2024-03-09", CompletedHabits: models.UUIDList{h.ID}, TotalHabits: 1}))

	recent, err := s.RecentActivity(ctx, u.ID, 7)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "2024-03-10", recent[0].Date)
	assert.Empty(t, recent[0].CompletedHabits)

	dates, err := s.ActivityDates(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-09"}, dates)
}

func TestStore_NotificationsAndBadges(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	u := createUser(t, s, "notified", models.VisibilityPublic)
	other := createUser(t, s, "sender", models.VisibilityPublic)

	self := &models.Notification{UserID: u.ID, Type: models.NotificationLike, SenderID: &u.ID}
	assert.Error(t, s.CreateNotification(ctx, self), "schema rejects self notifications")

	n := &models.Notification{UserID: u.ID, Type: models.NotificationLike, SenderID: &other.ID, Content: "liked"}
	require.NoError(t, s.CreateNotification(ctx, n))

	list, err := s.ListNotifications(ctx, u.ID, 50)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Sender)
	assert.Equal(t, other.Username, list[0].Sender.Username)

	assert.ErrorIs(t, s.MarkNotificationRead(ctx, n.ID, other.ID), ErrNotFound)
	require.NoError(t, s.MarkNotificationRead(ctx, n.ID, u.ID))
	marked, err := s.MarkAllNotificationsRead(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), marked)

	b := &models.Badge{Name: "Starter", Type: models.BadgeHabitCount, Threshold: 1}
	require.NoError(t, s.UpsertBadge(ctx, b))
	awarded, err := s.AwardBadge(ctx, u.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, awarded)
	awarded, err = s.AwardBadge(ctx, u.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, awarded)

	locked, err := s.LockedBadges(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, locked)
	unlocked, err := s.UnlockedBadges(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, unlocked, 1)
	assert.Equal(t, "Starter", unlocked[0].Name)
}

func TestStore_Utilities(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	u := createUser(t, s, "focused", models.VisibilityPublic)

	ps, err := s.GetPomodoroSettings(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, ps.FocusMinutes)

	ps.FocusMinutes = 50
	require.NoError(t, s.SavePomodoroSettings(ctx, ps))
	ps, err = s.GetPomodoroSettings(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, ps.FocusMinutes)

	session := &models.PomodoroSession{UserID: u.ID, Type: models.SessionFocus, PlannedMinutes: 50}
	require.NoError(t, s.CreatePomodoroSession(ctx, session))
	assert.NotEqual(t, uuid.Nil, session.ID)

	done := &models.Reminder{UserID: u.ID, Title: "done"}
	require.NoError(t, s.CreateReminder(ctx, done))
	done.IsDone = true
	require.NoError(t, s.SaveReminder(ctx, done))
	open := &models.Reminder{UserID: u.ID, Title: "open"}
	require.NoError(t, s.CreateReminder(ctx, open))

	list, err := s.ListReminders(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "open", list[0].Title)

	require.NoError(t, s.DeleteReminder(ctx, open.ID))
	_, err = s.GetReminder(ctx, open.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
