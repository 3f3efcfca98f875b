package view

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/matheuskafuri/newsassist/internal/api"
)

func TestParseTopics(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"  ,  , ", nil},
		{"ai", []string{"ai"}},
		{" ai , climate,, space ", []string{"ai", "climate", "space"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseTopics(tt.in), tt.in)
	}
}

func TestCollectorApplicationFailure(t *testing.T) {
	svc := new(MockCollectionService)
	svc.On("Collect", mock.Anything, []string(nil)).
		Return(nil, &api.Error{Kind: api.KindApplication, Message: "rate limited"})

	c := NewCollector(svc)
	st := c.Collect(context.Background())

	assert.Equal(t, Failed, st.Status)
	assert.Equal(t, "rate limited", st.Message())
	assert.Nil(t, st.Data)
}

func TestCollectorNotIdempotent(t *testing.T) {
	svc := new(MockCollectionService)
	svc.On("Collect", mock.Anything, []string{"ai", "space"}).Return(&api.CollectionResponse{
		Envelope: api.Envelope{Success: true},
		Message:  "done",
		Stats:    &api.CollectionStats{TotalArticles: 10, NewArticles: 3},
	}, nil)

	c := NewCollector(svc)
	c.SetInput("ai, space")
	c.Collect(context.Background())
	st := c.Collect(context.Background())

	assert.Equal(t, Succeeded, st.Status)
	assert.Equal(t, 3, st.Data.Stats.NewArticles)
	svc.AssertNumberOfCalls(t, "Collect", 2)
}

func TestCollectorClose(t *testing.T) {
	svc := new(MockCollectionService)
	svc.On("Collect", mock.Anything, mock.Anything).Return(&api.CollectionResponse{Envelope: api.Envelope{Success: true}}, nil)

	c := NewCollector(svc)
	c.SetInput("ai")
	c.Collect(context.Background())
	c.Close()

	assert.Empty(t, c.Input())
	assert.Equal(t, Idle, c.Run.State().Status)
}

func TestCollectorPoll(t *testing.T) {
	svc := new(MockCollectionService)
	svc.On("Status", mock.Anything).Return(&api.CollectionStatus{IsCollecting: true}, nil).Twice()
	svc.On("Status", mock.Anything).Return(&api.CollectionStatus{IsCollecting: false}, nil).Once()

	c := NewCollector(svc)
	err := c.Poll(context.Background(), time.Millisecond)
	assert.NoError(t, err)
	svc.AssertNumberOfCalls(t, "Status", 3)
}

func TestCollectorPollStatusError(t *testing.T) {
	svc := new(MockCollectionService)
	svc.On("Status", mock.Anything).Return(nil, errors.New("down"))

	c := NewCollector(svc)
	err := c.Poll(context.Background(), time.Millisecond)
	assert.ErrorContains(t, err, "down")
}

func TestCollectorPollCanceled(t *testing.T) {
	svc := new(MockCollectionService)
	svc.On("Status", mock.Anything).Return(&api.CollectionStatus{IsCollecting: true}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	c := NewCollector(svc)
	err := c.Poll(ctx, 10*time.Millisecond)
	assert.Error(t, err)
}
