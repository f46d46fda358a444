package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
	"github.com/yakuperoglu/nova-ai-cli/internal/pkg/filesystem"
)

// loadAttachments reads each file up to domain.MaxAttachmentBytes.
// Unreadable, oversized or binary files are skipped with a warning.
func (s *ExecutionService) loadAttachments(paths []string) []domain.Attachment {
	var attachments []domain.Attachment
	for _, path := range paths {
		attachment, err := readAttachment(path)
		if err != nil {
			s.Reporter.Warning(fmt.Sprintf("Skipping attachment %s: %v", path, err))
			continue
		}
		attachments = append(attachments, attachment)
	}
	return attachments
}

func readAttachment(path string) (domain.Attachment, error) {
	resolved := filesystem.ExpandPath(path)
	info, err := os.Stat(resolved)
	if err != nil {
		return domain.Attachment{}, err
	}
	if info.IsDir() {
		return domain.Attachment{}, fmt.Errorf("is a directory")
	}
	if info.Size() > domain.MaxAttachmentBytes {
		return domain.Attachment{}, fmt.Errorf("larger than %d KiB", domain.MaxAttachmentBytes>>10)
	}

	file, err := os.Open(resolved)
	if err != nil {
		return domain.Attachment{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, domain.MaxAttachmentBytes+1))
	if err != nil {
		return domain.Attachment{}, err
	}
	if len(data) > domain.MaxAttachmentBytes {
		return domain.Attachment{}, fmt.Errorf("larger than %d KiB", domain.MaxAttachmentBytes>>10)
	}
	if !utf8.Valid(data) {
		return domain.Attachment{}, fmt.Errorf("not a text file")
	}
	return domain.Attachment{
		Path:    resolved,
		Name:    filepath.Base(resolved),
		Content: string(data),
	}, nil
}
