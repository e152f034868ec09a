package filestorage

import "mime/multipart"

// FileStorage defines the operations the media layer needs. Student
// profile images and archived attachments are re-hosted through it and
// deleted best-effort when the owning student goes away.
type FileStorage interface {
	// SaveFile saves an uploaded file and returns its accessible URL
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// SaveFileWithPath saves an uploaded file under a subdirectory
	SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error)

	// SaveBytes stores raw content (e.g. a fetched remote image) under a
	// subdirectory, choosing a unique name with the given extension
	SaveBytes(data []byte, ext, path string) (string, error)

	// DeleteFile removes a stored file given its accessible URL or path
	DeleteFile(filePath string) error
}
