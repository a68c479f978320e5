package hermes

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) Publish(subject string, data interface{}) error {
	args := m.Called(subject, data)
	return args.Error(0)
}

func (m *mockClient) Subscribe(subject string, handler func(string, []byte)) error {
	args := m.Called(subject, handler)
	return args.Error(0)
}

func (m *mockClient) Close() { m.Called() }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSubjects(t *testing.T) {
	assert.Equal(t, "frontier.dataset.abc.created", SubjectDatasetCreated("abc"))
	assert.Equal(t, "frontier.dataset.abc.deleted", SubjectDatasetDeleted("abc"))
	assert.Equal(t, "frontier.dataset.abc.computed", SubjectFrontierComputed("abc"))
	assert.Equal(t, "frontier.>", SubjectAll)
}

func TestPublisherForwards(t *testing.T) {
	m := &mockClient{}
	evt := DatasetDeletedEvent{DatasetID: "abc"}
	m.On("Publish", "frontier.dataset.abc.deleted", evt).Return(nil).Once()

	NewPublisher(m, discardLogger()).Publish(SubjectDatasetDeleted("abc"), evt)
	m.AssertExpectations(t)
}

func TestPublisherSwallowsErrors(t *testing.T) {
	m := &mockClient{}
	m.On("Publish", mock.Anything, mock.Anything).Return(errors.New("no responders"))

	assert.NotPanics(t, func() {
		NewPublisher(m, discardLogger()).Publish(SubjectAdhocComputed, FrontierComputedEvent{})
	})
	m.AssertNumberOfCalls(t, "Publish", 1)
}

func TestPublisherWithoutClient(t *testing.T) {
	assert.NotPanics(t, func() {
		NewPublisher(nil, discardLogger()).Publish(SubjectAdhocComputed, nil)
		var p *Publisher
		p.Publish(SubjectAdhocComputed, nil)
	})
}
