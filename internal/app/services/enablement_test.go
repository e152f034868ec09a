package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dparedes/leagueadmin/internal/app/models"
)

func paidShare() models.Share {
	now := time.Now()
	return models.Share{PaymentDate: &now, Status: models.SharePaid}
}

func pendingShare() models.Share {
	return models.Share{Status: models.SharePending}
}

func TestComputeEnabled(t *testing.T) {
	tests := []struct {
		name   string
		shares []models.Share
		want   bool
	}{
		{"no shares", nil, false},
		{"single pending", []models.Share{pendingShare()}, false},
		{"single paid", []models.Share{paidShare()}, true},
		{"mixed", []models.Share{paidShare(), pendingShare()}, false},
		{"all paid", []models.Share{paidShare(), paidShare(), paidShare()}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeEnabled(tt.shares))
		})
	}
}

func TestComputeEnabledIdempotent(t *testing.T) {
	shares := []models.Share{paidShare(), paidShare()}
	first := ComputeEnabled(shares)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ComputeEnabled(shares))
	}
}

// fakeEnablementStore records every SetEnabled call.
type fakeEnablementStore struct {
	calls []bool
	err   error
}

func (f *fakeEnablementStore) SetEnabled(_ context.Context, _ int64, enabled bool) error {
	f.calls = append(f.calls, enabled)
	return f.err
}

// fakeShareLookup serves canned shares or a lookup error.
type fakeShareLookup struct {
	shareStore
	shares []models.Share
	err    error
}

func (f *fakeShareLookup) GetSharesByStudent(_ context.Context, _ int64) ([]models.Share, error) {
	return f.shares, f.err
}

func TestRecalculateEnablementPersistsComputedValue(t *testing.T) {
	students := &fakeEnablementStore{}
	svc := NewShareService(&fakeShareLookup{shares: []models.Share{paidShare()}}, students)

	require.NoError(t, svc.RecalculateEnablement(context.Background(), 7))
	require.Len(t, students.calls, 1)
	assert.True(t, students.calls[0])
}

func TestRecalculateEnablementFailsClosed(t *testing.T) {
	// A failed share lookup must force the flag off, never leave it stale.
	students := &fakeEnablementStore{}
	svc := NewShareService(&fakeShareLookup{err: errors.New("connection reset")}, students)

	require.NoError(t, svc.RecalculateEnablement(context.Background(), 7))
	require.Len(t, students.calls, 1)
	assert.False(t, students.calls[0])
}
