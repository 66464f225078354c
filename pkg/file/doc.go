// Package file stores uploaded files in local or S3 blob storage.
//
// The Storage interface covers what a form relay needs: Put a buffered
// upload, Delete or check it, and build its public URL. Two implementations
// are provided:
//   - LocalStorage: files below a base directory, served by Handler
//   - S3Storage: AWS S3 and S3-compatible services (MinIO, R2, Wasabi)
//
// New picks one from Config.Driver.
//
// # Usage
//
//	storage, err := file.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//
//	if err := file.ValidateSize(int64(len(data)), 10<<20); err != nil {
//		return err
//	}
//
//	key := fmt.Sprintf("issues/%d-%s", time.Now().UnixMilli(), file.ObjectName(name))
//	stored, err := storage.Put(ctx, key, data, declaredType)
//	if err != nil {
//		return err
//	}
//	link := stored.URL
//
// # Security
//
// Keys with a ".." segment are rejected. LocalStorage additionally confines every
// resolved path to its base directory. Content types are sniffed with
// http.DetectContentType; the declared type is only trusted when sniffing
// yields a generic result.
//
// # Errors
//
// S3 failures are classified into sentinel errors (ErrAccessDenied,
// ErrBucketNotFound, ErrOperationTimeout, ...) that can be checked with
// errors.Is.
package file
