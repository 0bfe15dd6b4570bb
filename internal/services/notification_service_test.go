package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
	"tourproof/internal/models/db_models"
	"tourproof/pkg/utils"
)

type failingSubscriber struct{ calls int }

func (f *failingSubscriber) Name() string { return "failing" }

func (f *failingSubscriber) Handle(context.Context, *db_models.Notification) error {
	f.calls++
	return errors.New("boom")
}

func TestPublishIgnoresFailingSubscribers(t *testing.T) {
	failing := &failingSubscriber{}
	recorder := &recordingSubscriber{}
	svc := NewNotificationService(nil, zap.NewNop(), []Subscriber{failing, recorder})

	svc.Publish(context.Background(), []*db_models.Notification{
		tourCreatedEvent(&db_models.Tour{ID: 0, OwnerID: uuid.New(), Location: "Paris"}),
		tourDeactivatedEvent(&db_models.Tour{ID: 0, OwnerID: uuid.New()}),
	})

	assert.Equal(t, 2, failing.calls)
	assert.Equal(t, []string{db_models.EventTourCreated, db_models.EventTourDeactivated}, recorder.types())
}

func TestListNotificationsFollowsOutboxOrder(t *testing.T) {
	env := setupTestEnv(t, 1)
	ctx := context.Background()
	owner := uuid.New()

	tourID, err := env.tours.CreateTour(ctx, owner, "Qm1", "Paris")
	require.NoError(t, err)
	_, err = env.votes.Upvote(ctx, tourID, uuid.New(), 1)
	require.NoError(t, err)

	all, err := env.notifier.ListNotifications(ctx, 0, 50)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, db_models.EventTourCreated, all[0].Type)
	assert.Equal(t, db_models.EventTourUpvoted, all[1].Type)
	assert.Equal(t, db_models.EventTourVerified, all[2].Type)
	require.NotNil(t, all[0].TourID)
	assert.Equal(t, tourID, *all[0].TourID)
	assert.Equal(t, "Paris", all[0].Attributes["location"])

	rest, err := env.notifier.ListNotifications(ctx, all[0].ID, 50)
	require.NoError(t, err)
	assert.Len(t, rest, 2)

	_, err = env.notifier.ListNotifications(ctx, 0, 0)
	assert.ErrorIs(t, err, utils.ErrInvalidPageSize)
}

func TestMetricsSubscriberRejectsMalformedAmount(t *testing.T) {
	sub := NewMetricsSubscriber()
	ctx := context.Background()

	good := pointsAwardedEvent(1, uuid.New(), RoleCreator, 10, 10)
	assert.NoError(t, sub.Handle(ctx, good))

	bad := pointsAwardedEvent(1, uuid.New(), RoleCreator, 10, 10)
	bad.Attributes["amount"] = "ten"
	assert.Error(t, sub.Handle(ctx, bad))
}

func TestMailSubscriberMailsVerifiedOwnerAndRecipients(t *testing.T) {
	env := setupTestEnv(t, 3)
	mail := &fakeMailService{}
	sub := NewMailSubscriber(env.accounts, mail, "https://tourproof.test", zap.NewNop())
	sub.dispatch = func(f func()) { f() }
	ctx := context.Background()

	owner := env.newAccount(t, db_models.RoleUser)
	ownerAccount, err := env.accounts.FindById(ctx, owner)
	require.NoError(t, err)

	verified := tourVerifiedEvent(&db_models.Tour{ID: 4, OwnerID: owner, Upvotes: 3}, 3)
	require.NoError(t, sub.Handle(ctx, verified))
	require.NoError(t, sub.Handle(ctx, pointsAwardedEvent(4, owner, RoleCreator, 10, 10)))
	// unknown recipients and unrelated events are skipped
	require.NoError(t, sub.Handle(ctx, pointsAwardedEvent(4, uuid.New(), RoleParticipant, 5, 5)))
	require.NoError(t, sub.Handle(ctx, tourCreatedEvent(&db_models.Tour{ID: 4, OwnerID: owner})))

	sent := mail.all()
	require.Len(t, sent, 2)
	assert.Equal(t, ownerAccount.Email, sent[0].to)
	assert.Equal(t, "Tour #4 is verified", sent[0].subject)
	assert.Contains(t, sent[1].body, "10 points")
}

type capturingSender struct {
	messages []*gomail.Message
}

func (c *capturingSender) DialAndSend(m ...*gomail.Message) error {
	c.messages = append(c.messages, m...)
	return nil
}

func TestSMTPMailServiceBuildsMessage(t *testing.T) {
	sender := &capturingSender{}
	svc, err := newMailService(SMTPConfig{
		From:       "no-reply@tourproof.test",
		FromName:   "Tourproof",
		AppName:    "Tourproof",
		AppBaseURL: "https://tourproof.test/",
	}, sender)
	require.NoError(t, err)

	require.NoError(t, svc.SendMailToResetPassword("bob@example.com", "abc"))
	require.Len(t, sender.messages, 1)
	assert.Equal(t, []string{"bob@example.com"}, sender.messages[0].GetHeader("To"))
	assert.Equal(t, []string{"Reset your password"}, sender.messages[0].GetHeader("Subject"))

	_, err = NewSMTPMailService(SMTPConfig{})
	assert.Error(t, err)
}
