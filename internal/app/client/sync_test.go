package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"hmis/internal/domain/sync"
)

type MockQueue struct {
	mock.Mock
}

func (m *MockQueue) List(ctx context.Context, entity sync.Entity, limit int) ([]Item, error) {
	args := m.Called(ctx, entity, limit)
	items, _ := args.Get(0).([]Item)
	return items, args.Error(1)
}

func (m *MockQueue) Remove(ctx context.Context, ids []int64) error {
	return m.Called(ctx, ids).Error(0)
}

func (m *MockQueue) LogBatch(ctx context.Context, l BatchLog) error {
	return m.Called(ctx, l).Error(0)
}

type MockPusher struct {
	mock.Mock
}

func (m *MockPusher) PushBatch(ctx context.Context, entity sync.Entity, payloads []json.RawMessage) (*sync.BatchResponse, error) {
	args := m.Called(ctx, entity, payloads)
	resp, _ := args.Get(0).(*sync.BatchResponse)
	return resp, args.Error(1)
}

func newTestSyncService(q Queue, p Pusher, batchSize int) *SyncService {
	s := NewSyncService(q, p, slog.New(slog.NewTextHandler(io.Discard, nil)), batchSize)
	s.newID = func() string { return "batch-1" }
	return s
}

func TestSyncService_Sync_Success(t *testing.T) {
	// Arrange
	q := new(MockQueue)
	p := new(MockPusher)
	ctx := context.Background()

	patients := []Item{
		{ID: 1, Entity: sync.EntityPatients, Payload: json.RawMessage(`{"usn":"P1"}`)},
		{ID: 2, Entity: sync.EntityPatients, Payload: json.RawMessage(`{"usn":"P2"}`)},
	}
	q.On("List", ctx, sync.EntityPatients, 10).Return(patients, nil)
	for _, e := range sync.Entities[1:] {
		q.On("List", ctx, e, 10).Return([]Item(nil), nil)
	}
	p.On("PushBatch", ctx, sync.EntityPatients, []json.RawMessage{patients[0].Payload, patients[1].Payload}).
		Return(&sync.BatchResponse{Status: "success", SyncedCount: 1, TotalReceived: 2, SkippedCount: 1}, nil)
	q.On("Remove", ctx, []int64{1, 2}).Return(nil)
	q.On("LogBatch", ctx, BatchLog{BatchID: "batch-1", Entity: sync.EntityPatients, Sent: 2, Synced: 1, Skipped: 1}).Return(nil)

	// Act
	results, err := newTestSyncService(q, p, 10).Sync(ctx)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []BatchResult{{
		BatchID: "batch-1", Entity: sync.EntityPatients, Sent: 2, Synced: 1, Skipped: 1, Received: 2,
	}}, results)
	q.AssertExpectations(t)
	p.AssertExpectations(t)
}

func TestSyncService_Sync_KeepsBatchOnError(t *testing.T) {
	q := new(MockQueue)
	p := new(MockPusher)
	ctx := context.Background()

	items := []Item{{ID: 7, Entity: sync.EntityPatients, Payload: json.RawMessage(`{"usn":"P1"}`)}}
	q.On("List", ctx, sync.EntityPatients, 10).Return(items, nil)
	p.On("PushBatch", ctx, sync.EntityPatients, mock.Anything).
		Return(nil, &ServerError{Status: 500, Message: "database is locked"})
	q.On("LogBatch", ctx, mock.MatchedBy(func(l BatchLog) bool {
		return l.Entity == sync.EntityPatients && l.Sent == 1 && l.Error != ""
	})).Return(nil)

	results, err := newTestSyncService(q, p, 10).Sync(ctx)

	require.Error(t, err)
	var se *ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 500, se.Status)
	assert.Empty(t, results)
	q.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
	q.AssertNotCalled(t, "List", ctx, sync.EntityVitals, 10)
}

func TestSyncService_Sync_NonSuccessStatus(t *testing.T) {
	q := new(MockQueue)
	p := new(MockPusher)
	ctx := context.Background()

	items := []Item{{ID: 1, Entity: sync.EntityVitals, Payload: json.RawMessage(`{}`)}}
	q.On("List", ctx, sync.EntityVitals, 10).Return(items, nil)
	p.On("PushBatch", ctx, sync.EntityVitals, mock.Anything).Return(&sync.BatchResponse{Status: "error"}, nil)
	q.On("LogBatch", ctx, mock.Anything).Return(nil)

	_, err := newTestSyncService(q, p, 10).Sync(ctx, sync.EntityVitals)

	assert.ErrorIs(t, err, ErrBatchState)
	q.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
}

func TestSyncService_Sync_SplitsIntoBatches(t *testing.T) {
	q := new(MockQueue)
	p := new(MockPusher)
	ctx := context.Background()

	first := []Item{
		{ID: 1, Payload: json.RawMessage(`{"n":1}`)},
		{ID: 2, Payload: json.RawMessage(`{"n":2}`)},
	}
	second := []Item{{ID: 3, Payload: json.RawMessage(`{"n":3}`)}}

	q.On("List", ctx, sync.EntityCaseReports, 2).Return(first, nil).Once()
	q.On("List", ctx, sync.EntityCaseReports, 2).Return(second, nil).Once()
	p.On("PushBatch", ctx, sync.EntityCaseReports, mock.Anything).
		Return(&sync.BatchResponse{Status: "success", SyncedCount: 2, TotalReceived: 2}, nil).Once()
	p.On("PushBatch", ctx, sync.EntityCaseReports, mock.Anything).
		Return(&sync.BatchResponse{Status: "success", SyncedCount: 1, TotalReceived: 1}, nil).Once()
	q.On("Remove", ctx, []int64{1, 2}).Return(nil)
	q.On("Remove", ctx, []int64{3}).Return(nil)
	q.On("LogBatch", ctx, mock.Anything).Return(nil)

	results, err := newTestSyncService(q, p, 2).Sync(ctx, sync.EntityCaseReports)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 2, results[0].Synced)
	assert.Equal(t, 1, results[1].Synced)
	q.AssertExpectations(t)
	p.AssertExpectations(t)
}

func TestSyncService_Sync_LogFailureDoesNotFailBatch(t *testing.T) {
	q := new(MockQueue)
	p := new(MockPusher)
	ctx := context.Background()

	q.On("List", ctx, sync.EntityPatients, 10).Return([]Item{{ID: 1, Payload: json.RawMessage(`{}`)}}, nil)
	p.On("PushBatch", ctx, sync.EntityPatients, mock.Anything).
		Return(&sync.BatchResponse{Status: "success", SkippedCount: 1, TotalReceived: 1}, nil)
	q.On("Remove", ctx, []int64{1}).Return(nil)
	q.On("LogBatch", ctx, mock.Anything).Return(errors.New("disk full"))

	results, err := newTestSyncService(q, p, 10).Sync(ctx, sync.EntityPatients)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Skipped)
}

func TestSyncOrder(t *testing.T) {
	tests := []struct {
		name    string
		in      []sync.Entity
		want    []sync.Entity
		wantErr bool
	}{
		{name: "all", in: nil, want: sync.Entities},
		{
			name: "dependency order kept",
			in:   []sync.Entity{sync.EntitySickIntimations, sync.EntityPatients},
			want: []sync.Entity{sync.EntityPatients, sync.EntitySickIntimations},
		},
		{name: "unknown", in: []sync.Entity{"labs"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := syncOrder(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, sync.ErrUnknownEntity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
