package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	afsfile "github.com/viant/afs/file"
)

// write overwrites the target in place; there is no backup and no rename.
func write(ctx context.Context, fs afs.Service, URL, text string) error {
	if err := fs.Upload(ctx, URL, afsfile.DefaultFileOsMode, strings.NewReader(text)); err != nil {
		return fmt.Errorf("failed to write %v: %w", URL, err)
	}
	return nil
}
