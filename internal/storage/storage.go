package storage

import "mime/multipart"

// FileStorage saves uploaded files and returns the path they are served
// from. The backend is selected by STORAGE_BACKEND at startup.
type FileStorage interface {
	UploadFile(file *multipart.FileHeader, path string) (string, error)
}
