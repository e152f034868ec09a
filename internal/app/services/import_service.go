package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dparedes/leagueadmin/internal/app/importer"
	"github.com/dparedes/leagueadmin/internal/app/models"
	"github.com/dparedes/leagueadmin/internal/app/models/dto"
	"github.com/dparedes/leagueadmin/internal/pkg/apperrors"
	"github.com/dparedes/leagueadmin/internal/pkg/filestorage"
	"github.com/dparedes/leagueadmin/internal/pkg/logger"
)

// importWorkers bounds concurrent image downloads during a bulk import.
const importWorkers = 5

// importStudentStore is the subset of the student repository used by bulk
// import.
type importStudentStore interface {
	CreateStudents(ctx context.Context, students []*models.Student) error
	GetExistingDNIs(ctx context.Context) (map[string]bool, error)
}

// imageFetcher downloads a remote image and infers its file extension.
type imageFetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, string, error)
}

// enablementRecalculator recomputes one student's derived enablement.
type enablementRecalculator interface {
	RecalculateEnablement(ctx context.Context, studentID int64) error
}

// ImportService defines the interface for bulk spreadsheet imports
type ImportService interface {
	ImportStudents(ctx context.Context, r io.Reader) (*dto.ImportResponse, error)
}

// importServiceImpl implements the ImportService interface
type importServiceImpl struct {
	studentRepo importStudentStore
	shares      enablementRecalculator
	fetcher     imageFetcher
	storage     filestorage.FileStorage
}

// NewImportService creates a new import service instance
func NewImportService(studentRepo importStudentStore, shares enablementRecalculator, fetcher imageFetcher, storage filestorage.FileStorage) ImportService {
	return &importServiceImpl{
		studentRepo: studentRepo,
		shares:      shares,
		fetcher:     fetcher,
		storage:     storage,
	}
}

// rowResult is the outcome of processing one validated row, collected per
// task so no goroutine touches a shared error slice.
type rowResult struct {
	number   int
	student  *models.Student
	problems []string
}

// urlCache deduplicates image downloads within one import run. Rows often
// share links, so each distinct URL is fetched and re-hosted once.
type urlCache struct {
	mu     sync.Mutex
	stored map[string]string
}

// ImportStudents parses the first sheet of an xlsx workbook, validates each
// row, re-hosts linked images into local storage and inserts the valid
// students in one batch. Invalid rows are reported by row number and never
// block the valid ones.
func (s *importServiceImpl) ImportStudents(ctx context.Context, r io.Reader) (*dto.ImportResponse, error) {
	raws, err := importer.ParseSheet(r)
	if err != nil {
		if errors.Is(err, importer.ErrEmptySheet) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrBadRequest, err)
	}

	existingDNIs, err := s.studentRepo.GetExistingDNIs(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading existing dnis: %w", err)
	}

	var rejected []string
	var valid []*importer.StudentRow
	batchDNIs := make(map[string]int, len(raws))
	for _, raw := range raws {
		row, problems := importer.ValidateRow(raw)
		if problems != nil {
			rejected = append(rejected, problems...)
			continue
		}
		if existingDNIs[row.Student.DNI] {
			rejected = append(rejected, fmt.Sprintf("row %d: dni %s already registered", row.Number, row.Student.DNI))
			continue
		}
		if firstRow, dup := batchDNIs[row.Student.DNI]; dup {
			rejected = append(rejected, fmt.Sprintf("row %d: dni %s duplicated in file (first used at row %d)", row.Number, row.Student.DNI, firstRow))
			continue
		}
		batchDNIs[row.Student.DNI] = row.Number
		valid = append(valid, row)
	}

	cache := &urlCache{stored: make(map[string]string)}
	results := make([]rowResult, len(valid))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(importWorkers)
	for i, row := range valid {
		i, row := i, row
		g.Go(func() error {
			results[i] = s.resolveImages(gctx, cache, row)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("error resolving images: %w", err)
	}

	var students []*models.Student
	for _, result := range results {
		rejected = append(rejected, result.problems...)
		students = append(students, result.student)
	}
	sort.Strings(rejected)

	if len(students) > 0 {
		if err := s.studentRepo.CreateStudents(ctx, students); err != nil {
			return nil, fmt.Errorf("error inserting imported students: %w", err)
		}
		for _, student := range students {
			if err := s.shares.RecalculateEnablement(ctx, student.ID); err != nil {
				logger.Error().Err(err).Int64("studentID", student.ID).Msg("Failed to reconcile imported student")
			}
		}
	}

	return &dto.ImportResponse{
		Message:  fmt.Sprintf("Imported %d of %d rows", len(students), len(raws)),
		Count:    len(students),
		Errors:   rejected,
		Students: students,
	}, nil
}

// resolveImages downloads and re-hosts the row's linked images. A failed
// download drops that image, not the student; the failure is reported as a
// row problem.
func (s *importServiceImpl) resolveImages(ctx context.Context, cache *urlCache, row *importer.StudentRow) rowResult {
	result := rowResult{number: row.Number, student: row.Student}

	if row.ProfileURL != "" {
		stored, err := s.rehost(ctx, cache, row.ProfileURL, "students/profiles")
		if err != nil {
			result.problems = append(result.problems, fmt.Sprintf("row %d: profile image: %v", row.Number, err))
		} else {
			result.student.ProfileImage = &stored
		}
	}

	for i, rawURL := range row.ArchivedURLs {
		stored, err := s.rehost(ctx, cache, rawURL, "students/archived")
		if err != nil {
			result.problems = append(result.problems, fmt.Sprintf("row %d: archived file: %v", row.Number, err))
			continue
		}
		result.student.Archived = append(result.student.Archived, stored)
		result.student.ArchivedNames = append(result.student.ArchivedNames, fmt.Sprintf("Archivo %d", i+1))
	}

	return result
}

// rehost fetches one remote URL and stores the bytes locally, consulting
// the per-run cache first.
func (s *importServiceImpl) rehost(ctx context.Context, cache *urlCache, rawURL, subPath string) (string, error) {
	cache.mu.Lock()
	stored, ok := cache.stored[rawURL]
	cache.mu.Unlock()
	if ok {
		return stored, nil
	}

	data, ext, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}

	stored, err = s.storage.SaveBytes(data, ext, subPath)
	if err != nil {
		return "", fmt.Errorf("storing fetched file: %w", err)
	}

	cache.mu.Lock()
	cache.stored[rawURL] = stored
	cache.mu.Unlock()
	return stored, nil
}
