package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dparedes/leagueadmin/internal/app/models"
	"github.com/dparedes/leagueadmin/internal/app/models/dto"
	"github.com/dparedes/leagueadmin/internal/app/repositories"
	"github.com/dparedes/leagueadmin/internal/pkg/apperrors"
)

type fakeStudentStore struct {
	students map[int64]*models.Student
	nextID   int64
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: map[int64]*models.Student{}, nextID: 1}
}

func (f *fakeStudentStore) CreateStudent(_ context.Context, student *models.Student) (int64, error) {
	for _, existing := range f.students {
		if existing.DNI == student.DNI {
			return 0, apperrors.ErrDNIAlreadyExists
		}
	}
	id := f.nextID
	f.nextID++
	copied := *student
	copied.ID = id
	f.students[id] = &copied
	return id, nil
}

func (f *fakeStudentStore) GetStudentByID(_ context.Context, id int64) (*models.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	copied := *student
	return &copied, nil
}

func (f *fakeStudentStore) GetAllStudents(_ context.Context, _ repositories.StudentFilter) ([]*models.Student, error) {
	var out []*models.Student
	for _, student := range f.students {
		out = append(out, student)
	}
	return out, nil
}

func (f *fakeStudentStore) UpdateStudent(_ context.Context, student *models.Student) error {
	if _, ok := f.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	copied := *student
	f.students[student.ID] = &copied
	return nil
}

func (f *fakeStudentStore) DeleteStudent(_ context.Context, id int64) error {
	if _, ok := f.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(f.students, id)
	return nil
}

func createStudentReq() *dto.CreateStudentRequest {
	return &dto.CreateStudentRequest{
		Name:        "Lucía",
		LastName:    "Fernández",
		DNI:         "40123456",
		BirthDate:   "14/06/2012",
		Address:     "Calle Falsa 123",
		MotherName:  "María",
		FatherName:  "Jorge",
		MotherPhone: "1155551234",
		FatherPhone: "1155555678",
		Category:    "2012",
		School:      "Escuela 12",
		Sex:         "Femenino",
	}
}

func TestCreateStudentDefaultsActiveAndDisabled(t *testing.T) {
	store := newFakeStudentStore()
	svc := NewStudentService(store, &fakeStorage{})

	student, err := svc.CreateStudent(context.Background(), createStudentReq())
	require.NoError(t, err)

	assert.Equal(t, models.StudentActive, student.Status)
	assert.False(t, student.IsEnabled)
	assert.Nil(t, student.Email)
}

func TestCreateStudentInvalidDNI(t *testing.T) {
	svc := NewStudentService(newFakeStudentStore(), &fakeStorage{})

	req := createStudentReq()
	req.DNI = "40.123.456"
	_, err := svc.CreateStudent(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDNI)
}

func TestCreateStudentInvalidSex(t *testing.T) {
	svc := NewStudentService(newFakeStudentStore(), &fakeStorage{})

	req := createStudentReq()
	req.Sex = "F"
	_, err := svc.CreateStudent(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrInvalidSex)
}

func TestCreateStudentDuplicateDNI(t *testing.T) {
	store := newFakeStudentStore()
	svc := NewStudentService(store, &fakeStorage{})

	_, err := svc.CreateStudent(context.Background(), createStudentReq())
	require.NoError(t, err)

	_, err = svc.CreateStudent(context.Background(), createStudentReq())
	assert.ErrorIs(t, err, apperrors.ErrDNIAlreadyExists)
}

func TestUpdateStudentClearsEmail(t *testing.T) {
	store := newFakeStudentStore()
	svc := NewStudentService(store, &fakeStorage{})

	req := createStudentReq()
	email := "lucia@example.com"
	req.Email = &email
	created, err := svc.CreateStudent(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, created.Email)

	empty := ""
	updated, err := svc.UpdateStudent(context.Background(), created.ID, &dto.UpdateStudentRequest{Email: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.Email)
}

func TestUpdateStudentCannotTouchEnablement(t *testing.T) {
	store := newFakeStudentStore()
	svc := NewStudentService(store, &fakeStorage{})

	created, err := svc.CreateStudent(context.Background(), createStudentReq())
	require.NoError(t, err)

	// Flip the stored flag behind the service's back; an edit must not
	// reset it.
	store.students[created.ID].IsEnabled = true

	name := "Lucía Belén"
	updated, err := svc.UpdateStudent(context.Background(), created.ID, &dto.UpdateStudentRequest{Name: &name})
	require.NoError(t, err)
	assert.True(t, updated.IsEnabled)
}

func TestDeleteStudentReportsFileErrors(t *testing.T) {
	store := newFakeStudentStore()
	storage := &fakeStorage{deleteErr: errors.New("disk gone")}
	svc := NewStudentService(store, storage)

	created, err := svc.CreateStudent(context.Background(), createStudentReq())
	require.NoError(t, err)
	image := "http://localhost/uploads/students/profiles/1.jpg"
	store.students[created.ID].ProfileImage = &image

	result, err := svc.DeleteStudent(context.Background(), created.ID)
	require.NoError(t, err)

	// The delete itself succeeds even when media cleanup fails.
	assert.NotContains(t, store.students, created.ID)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "profile image")
}

func TestDeleteArchivedFileOutOfRange(t *testing.T) {
	store := newFakeStudentStore()
	svc := NewStudentService(store, &fakeStorage{})

	created, err := svc.CreateStudent(context.Background(), createStudentReq())
	require.NoError(t, err)

	_, err = svc.DeleteArchivedFile(context.Background(), created.ID, 0)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestDeleteArchivedFileRemovesEntryAndMedia(t *testing.T) {
	store := newFakeStudentStore()
	storage := &fakeStorage{}
	svc := NewStudentService(store, storage)

	created, err := svc.CreateStudent(context.Background(), createStudentReq())
	require.NoError(t, err)
	store.students[created.ID].Archived = []string{"u1", "u2"}
	store.students[created.ID].ArchivedNames = []string{"Ficha", "Apto físico"}

	updated, err := svc.DeleteArchivedFile(context.Background(), created.ID, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"u2"}, updated.Archived)
	assert.Equal(t, []string{"Apto físico"}, updated.ArchivedNames)
	assert.Equal(t, []string{"u1"}, storage.deleted)
}
