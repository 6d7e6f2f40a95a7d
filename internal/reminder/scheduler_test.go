package reminder_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtrackr/jobtrackr/internal/events"
	"github.com/jobtrackr/jobtrackr/internal/model"
	"github.com/jobtrackr/jobtrackr/internal/reminder"
)

type fakeSource struct {
	due []model.Application
	err error
}

func (f *fakeSource) ListDueFollowUps(string) ([]model.Application, error) {
	return f.due, f.err
}

type fakePublisher struct {
	channels []string
	payloads [][]byte
}

func (f *fakePublisher) Publish(_ context.Context, channel string, payload []byte) error {
	f.channels = append(f.channels, channel)
	f.payloads = append(f.payloads, payload)
	return nil
}

func TestScan_PublishesOneEventPerDueFollowUp(t *testing.T) {
	date := "2024-05-01"
	due := []model.Application{
		{ID: uuid.New(), UserID: uuid.New(), CompanyName: "Acme", Status: model.StatusApplied, FollowUpDate: &date},
		{ID: uuid.New(), UserID: uuid.New(), CompanyName: "Globex", Status: model.StatusInterview, FollowUpDate: &date},
	}
	pub := &fakePublisher{}
	s := reminder.New(&fakeSource{due: due}, pub, "@every 1h")

	s.Scan(context.Background())

	require.Len(t, pub.channels, 2)
	for _, ch := range pub.channels {
		assert.Equal(t, events.ChannelFollowUpDue, ch)
	}

	var evt events.FollowUpDue
	require.NoError(t, json.Unmarshal(pub.payloads[0], &evt))
	assert.Equal(t, "EVENT_FOLLOW_UP_DUE", evt.Type)
	assert.Equal(t, "Acme", evt.CompanyName)
	assert.Equal(t, date, evt.FollowUpDate)
}

func TestScan_NothingDue(t *testing.T) {
	pub := &fakePublisher{}
	s := reminder.New(&fakeSource{}, pub, "")

	s.Scan(context.Background())

	assert.Empty(t, pub.channels)
}

func TestScan_SourceErrorIsLoggedNotFatal(t *testing.T) {
	pub := &fakePublisher{}
	s := reminder.New(&fakeSource{err: errors.New("db down")}, pub, "")

	s.Scan(context.Background())

	assert.Empty(t, pub.channels)
}
