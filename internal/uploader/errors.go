package uploader

import "fmt"

// UploadError reports the file that stopped an upload batch
type UploadError struct {
	Path string
	Key  string
	Err  error
}

func (e *UploadError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("unable to upload %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("unable to upload %s as %s: %v", e.Path, e.Key, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}
