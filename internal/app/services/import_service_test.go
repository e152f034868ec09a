package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dparedes/leagueadmin/internal/app/models"
	"github.com/dparedes/leagueadmin/internal/pkg/apperrors"
)

type fakeImportStore struct {
	existing map[string]bool
	inserted []*models.Student
}

func (f *fakeImportStore) CreateStudents(_ context.Context, students []*models.Student) error {
	for i, student := range students {
		student.ID = int64(len(f.inserted) + i + 1)
	}
	f.inserted = append(f.inserted, students...)
	return nil
}

func (f *fakeImportStore) GetExistingDNIs(_ context.Context) (map[string]bool, error) {
	if f.existing == nil {
		return map[string]bool{}, nil
	}
	return f.existing, nil
}

// fakeFetcher is called from concurrent workers, so it locks.
type fakeFetcher struct {
	mu      sync.Mutex
	failFor map[string]bool
	fetched []string
}

func (f *fakeFetcher) Fetch(_ context.Context, rawURL string) ([]byte, string, error) {
	if f.failFor[rawURL] {
		return nil, "", errors.New("fetch failed")
	}
	f.mu.Lock()
	f.fetched = append(f.fetched, rawURL)
	f.mu.Unlock()
	return []byte("img"), ".jpg", nil
}

type fakeStorage struct {
	mu         sync.Mutex
	saved      int
	deleted    []string
	deleteErr  error
	savedPaths []string
}

func (f *fakeStorage) SaveFile(_ *multipart.FileHeader) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeStorage) SaveFileWithPath(_ *multipart.FileHeader, _ string) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeStorage) SaveBytes(_ []byte, ext, path string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved++
	url := fmt.Sprintf("http://localhost/uploads/%s/%d%s", path, f.saved, ext)
	f.savedPaths = append(f.savedPaths, url)
	return url, nil
}

func (f *fakeStorage) DeleteFile(filePath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, filePath)
	return f.deleteErr
}

type fakeRecalc struct {
	studentIDs []int64
}

func (f *fakeRecalc) RecalculateEnablement(_ context.Context, studentID int64) error {
	f.studentIDs = append(f.studentIDs, studentID)
	return nil
}

// importWorkbook builds an xlsx with the standard headers plus one row per
// entry of rows.
func importWorkbook(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetList()[0]
	all := append([][]string{{
		"Nombre", "Apellido", "DNI", "Fecha de Nacimiento", "Direccion",
		"Madre", "Padre", "Telefono Madre", "Telefono Padre",
		"Email", "Categoria", "Escuela", "Sexo", "Foto", "Archivo 1",
	}}, rows...)
	for i, cells := range all {
		for j, value := range cells {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func importRow(dni string, extra ...string) []string {
	row := []string{
		"Lucía", "Fernández", dni, "14/06/2012", "Calle Falsa 123",
		"María", "Jorge", "1155551234", "1155555678",
		"lucia@example.com", "2012", "Escuela 12", "Femenino",
	}
	return append(row, extra...)
}

func TestImportStudentsHappyPath(t *testing.T) {
	store := &fakeImportStore{}
	recalc := &fakeRecalc{}
	svc := NewImportService(store, recalc, &fakeFetcher{}, &fakeStorage{})

	result, err := svc.ImportStudents(context.Background(), importWorkbook(t, [][]string{
		importRow("40123456"),
		importRow("40123457"),
	}))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Count)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "Imported 2 of 2 rows", result.Message)
	require.Len(t, store.inserted, 2)
	assert.ElementsMatch(t, []int64{1, 2}, recalc.studentIDs)
}

func TestImportStudentsRejectsExistingDNI(t *testing.T) {
	store := &fakeImportStore{existing: map[string]bool{"40123456": true}}
	svc := NewImportService(store, &fakeRecalc{}, &fakeFetcher{}, &fakeStorage{})

	result, err := svc.ImportStudents(context.Background(), importWorkbook(t, [][]string{
		importRow("40123456"),
		importRow("40123457"),
	}))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Count)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "row 2:")
	assert.Contains(t, result.Errors[0], "already registered")
}

func TestImportStudentsRejectsDuplicateDNIInFile(t *testing.T) {
	store := &fakeImportStore{}
	svc := NewImportService(store, &fakeRecalc{}, &fakeFetcher{}, &fakeStorage{})

	result, err := svc.ImportStudents(context.Background(), importWorkbook(t, [][]string{
		importRow("40123456"),
		importRow("40123456"),
	}))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Count)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "duplicated in file")
	assert.Contains(t, result.Errors[0], "row 2")
}

func TestImportStudentsInvalidRowDoesNotBlockOthers(t *testing.T) {
	store := &fakeImportStore{}
	svc := NewImportService(store, &fakeRecalc{}, &fakeFetcher{}, &fakeStorage{})

	bad := importRow("12") // dni too short
	result, err := svc.ImportStudents(context.Background(), importWorkbook(t, [][]string{
		bad,
		importRow("40123457"),
	}))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Count)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "dni")
}

func TestImportStudentsRehostsImages(t *testing.T) {
	store := &fakeImportStore{}
	fetcher := &fakeFetcher{}
	storage := &fakeStorage{}
	svc := NewImportService(store, &fakeRecalc{}, fetcher, storage)

	result, err := svc.ImportStudents(context.Background(), importWorkbook(t, [][]string{
		importRow("40123456", "https://example.com/p.jpg", "https://example.com/a.pdf"),
	}))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Count)
	assert.Empty(t, result.Errors)
	require.Len(t, store.inserted, 1)
	student := store.inserted[0]
	require.NotNil(t, student.ProfileImage)
	assert.True(t, strings.Contains(*student.ProfileImage, "students/profiles"))
	require.Len(t, student.Archived, 1)
	assert.Equal(t, []string{"Archivo 1"}, student.ArchivedNames)
	assert.Len(t, fetcher.fetched, 2)
}

func TestImportStudentsImageFailureDropsImageNotStudent(t *testing.T) {
	store := &fakeImportStore{}
	fetcher := &fakeFetcher{failFor: map[string]bool{"https://example.com/p.jpg": true}}
	svc := NewImportService(store, &fakeRecalc{}, fetcher, &fakeStorage{})

	result, err := svc.ImportStudents(context.Background(), importWorkbook(t, [][]string{
		importRow("40123456", "https://example.com/p.jpg"),
	}))
	require.NoError(t, err)

	// The student is still imported; only the image is lost.
	assert.Equal(t, 1, result.Count)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "profile image")
	require.Len(t, store.inserted, 1)
	assert.Nil(t, store.inserted[0].ProfileImage)
}

func TestImportStudentsSharedURLFetchedOnce(t *testing.T) {
	store := &fakeImportStore{}
	fetcher := &fakeFetcher{}
	svc := NewImportService(store, &fakeRecalc{}, fetcher, &fakeStorage{})

	// Profile and archived link point at the same URL within one row, so
	// the second use must be served from the cache.
	_, err := svc.ImportStudents(context.Background(), importWorkbook(t, [][]string{
		importRow("40123456", "https://example.com/shared.jpg", "https://example.com/shared.jpg"),
	}))
	require.NoError(t, err)

	assert.Len(t, fetcher.fetched, 1)
}

func TestImportStudentsEmptyWorkbook(t *testing.T) {
	svc := NewImportService(&fakeImportStore{}, &fakeRecalc{}, &fakeFetcher{}, &fakeStorage{})

	f := excelize.NewFile()
	defer f.Close()
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	_, err := svc.ImportStudents(context.Background(), &buf)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestImportStudentsNotAWorkbook(t *testing.T) {
	svc := NewImportService(&fakeImportStore{}, &fakeRecalc{}, &fakeFetcher{}, &fakeStorage{})

	_, err := svc.ImportStudents(context.Background(), strings.NewReader("plain text"))
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}
