package order

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sitehatch/market-backend/internal/application/consts"
	"github.com/sitehatch/market-backend/internal/application/errs"
	"github.com/sitehatch/market-backend/internal/application/interfaces"
)

// PendingFile is one storefront upload waiting to be pushed to object storage.
type PendingFile struct {
	Role        consts.FileRole
	Name        string
	ContentType string
	Content     io.Reader
}

// UploadBatch pushes files to object storage one at a time: logo first, then
// media, then other, keeping each role's selection order. The first failure
// aborts the batch; objects written before it are not rolled back here, the
// caller keeps their keys for any later compensation.
type UploadBatch struct {
	store  interfaces.ObjectStore
	prefix string
}

func NewUploadBatch(store interfaces.ObjectStore, prefix string) *UploadBatch {
	return &UploadBatch{store: store, prefix: prefix}
}

type BatchResult struct {
	URLs []string
	Keys []string
}

func (b *UploadBatch) Run(ctx context.Context, submittedAt time.Time, files []PendingFile) (BatchResult, error) {
	var result BatchResult
	for _, role := range []consts.FileRole{consts.FileRoleLogo, consts.FileRoleMedia, consts.FileRoleOther} {
		for _, f := range files {
			if f.Role != role {
				continue
			}
			key := b.objectKey(submittedAt, f.Name)
			contentType := f.ContentType
			url, err := b.store.UploadFile(ctx, key, &contentType, f.Content)
			if err != nil {
				return result, errs.UploadError{Err: fmt.Errorf("uploading %s file %q: %w", f.Role, f.Name, err)}
			}
			result.Keys = append(result.Keys, key)
			result.URLs = append(result.URLs, url)
		}
	}
	return result, nil
}

// objectKey prefixes the sanitized name with the submission timestamp so two
// orders uploading the same filename don't collide.
func (b *UploadBatch) objectKey(submittedAt time.Time, name string) string {
	return fmt.Sprintf("%s%d-%s", b.prefix, submittedAt.UnixMilli(), SanitizeFilename(name))
}

// SanitizeFilename strips every rune outside the alphanumeric/dot/dash
// allowlist. Underscores are kept, spaces become dashes.
func SanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
