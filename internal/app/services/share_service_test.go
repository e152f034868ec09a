package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dparedes/leagueadmin/internal/app/models"
	"github.com/dparedes/leagueadmin/internal/app/models/dto"
	"github.com/dparedes/leagueadmin/internal/pkg/apperrors"
)

// fakeShareStore is an in-memory shareStore.
type fakeShareStore struct {
	shares  map[int64]*models.Share
	nextID  int64
	created []int64 // student ids returned by CreateForActiveStudents
}

func newFakeShareStore() *fakeShareStore {
	return &fakeShareStore{shares: map[int64]*models.Share{}, nextID: 1}
}

func (f *fakeShareStore) CreateShare(_ context.Context, share *models.Share) (int64, error) {
	id := f.nextID
	f.nextID++
	copied := *share
	copied.ID = id
	f.shares[id] = &copied
	return id, nil
}

func (f *fakeShareStore) GetShareByID(_ context.Context, id int64) (*models.Share, error) {
	share, ok := f.shares[id]
	if !ok {
		return nil, apperrors.ErrShareNotFound
	}
	copied := *share
	return &copied, nil
}

func (f *fakeShareStore) GetSharesByStudent(_ context.Context, studentID int64) ([]models.Share, error) {
	var out []models.Share
	for _, share := range f.shares {
		if share.StudentID == studentID {
			out = append(out, *share)
		}
	}
	return out, nil
}

func (f *fakeShareStore) GetAllShares(_ context.Context, status string) ([]*models.Share, error) {
	var out []*models.Share
	for _, share := range f.shares {
		if status == "" || string(share.Status) == status {
			out = append(out, share)
		}
	}
	return out, nil
}

func (f *fakeShareStore) UpdateShare(_ context.Context, share *models.Share) error {
	if _, ok := f.shares[share.ID]; !ok {
		return apperrors.ErrShareNotFound
	}
	copied := *share
	f.shares[share.ID] = &copied
	return nil
}

func (f *fakeShareStore) DeleteShare(_ context.Context, id int64) (int64, error) {
	share, ok := f.shares[id]
	if !ok {
		return 0, apperrors.ErrShareNotFound
	}
	delete(f.shares, id)
	return share.StudentID, nil
}

func (f *fakeShareStore) CreateForActiveStudents(_ context.Context, paymentName string, year int) ([]int64, error) {
	for _, studentID := range f.created {
		id := f.nextID
		f.nextID++
		f.shares[id] = &models.Share{
			ID: id, StudentID: studentID, PaymentName: paymentName,
			Year: year, Status: models.SharePending,
		}
	}
	return f.created, nil
}

func TestCreateShareStartsPendingAndDisablesStudent(t *testing.T) {
	store := newFakeShareStore()
	students := &fakeEnablementStore{}
	svc := NewShareService(store, students)

	share, err := svc.CreateShare(context.Background(), &dto.CreateShareRequest{
		StudentID: 3, PaymentName: "Marzo", Year: 2025,
	})
	require.NoError(t, err)
	assert.Equal(t, models.SharePending, share.Status)
	assert.Nil(t, share.PaymentDate)

	// The new share is pending, so the reconciliation must disable.
	require.Len(t, students.calls, 1)
	assert.False(t, students.calls[0])
}

func TestUpdateShareRegistersPayment(t *testing.T) {
	store := newFakeShareStore()
	students := &fakeEnablementStore{}
	svc := NewShareService(store, students)

	created, err := svc.CreateShare(context.Background(), &dto.CreateShareRequest{
		StudentID: 3, PaymentName: "Marzo", Year: 2025,
	})
	require.NoError(t, err)

	amount := 1500.0
	date := "24/03/2025"
	method := "efectivo"
	updated, err := svc.UpdateShare(context.Background(), created.ID, &dto.UpdateShareRequest{
		Amount:        &amount,
		PaymentDate:   &date,
		PaymentMethod: &method,
	})
	require.NoError(t, err)

	// Status follows the payment date; the client never sets it directly.
	assert.Equal(t, models.SharePaid, updated.Status)
	require.NotNil(t, updated.PaymentDate)
	assert.Equal(t, "24/03/2025", updated.PaymentDate.Format("02/01/2006"))

	// Create disabled, update (now fully paid) enabled.
	require.Len(t, students.calls, 2)
	assert.True(t, students.calls[1])
}

func TestUpdateShareRejectsUnknownPaymentMethod(t *testing.T) {
	store := newFakeShareStore()
	svc := NewShareService(store, &fakeEnablementStore{})

	created, err := svc.CreateShare(context.Background(), &dto.CreateShareRequest{
		StudentID: 3, PaymentName: "Marzo", Year: 2025,
	})
	require.NoError(t, err)

	method := "cheque"
	_, err = svc.UpdateShare(context.Background(), created.ID, &dto.UpdateShareRequest{PaymentMethod: &method})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestDeleteShareReconcilesOwner(t *testing.T) {
	store := newFakeShareStore()
	students := &fakeEnablementStore{}
	svc := NewShareService(store, students)

	created, err := svc.CreateShare(context.Background(), &dto.CreateShareRequest{
		StudentID: 9, PaymentName: "Abril", Year: 2025,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteShare(context.Background(), created.ID))

	// After the delete the student holds zero shares, so they are disabled.
	require.Len(t, students.calls, 2)
	assert.False(t, students.calls[1])
}

func TestDeleteShareNotFound(t *testing.T) {
	svc := NewShareService(newFakeShareStore(), &fakeEnablementStore{})
	err := svc.DeleteShare(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrShareNotFound)
}

func TestCreateMassiveSharesReconcilesEachStudent(t *testing.T) {
	store := newFakeShareStore()
	store.created = []int64{1, 2, 3}
	students := &fakeEnablementStore{}
	svc := NewShareService(store, students)

	result, err := svc.CreateMassiveShares(context.Background(), &dto.CreateMassiveSharesRequest{
		PaymentName: "Mayo", Year: 2025,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Count)
	assert.Len(t, students.calls, 3)
}

func TestParseDateInput(t *testing.T) {
	t.Run("rfc3339", func(t *testing.T) {
		got, err := ParseDateInput("2025-03-24T00:00:00Z")
		require.NoError(t, err)
		assert.Equal(t, "24/03/2025", got.Format("02/01/2006"))
	})
	t.Run("day first", func(t *testing.T) {
		got, err := ParseDateInput("24/03/2025")
		require.NoError(t, err)
		assert.Equal(t, "24/03/2025", got.Format("02/01/2006"))
	})
	t.Run("garbage", func(t *testing.T) {
		_, err := ParseDateInput("whenever")
		assert.ErrorIs(t, err, apperrors.ErrInvalidDateFormat)
	})
}
