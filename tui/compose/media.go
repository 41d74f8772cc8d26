package compose

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxAttachmentBytes caps a local file attached to a post.
const MaxAttachmentBytes = 10 << 20

// ErrUnsupportedMedia is returned for attachments that are not images or videos.
var ErrUnsupportedMedia = errors.New("please select an image or video file")

// ResolveMedia turns the attachment field into a stored media value: an
// http(s) URL or data URI is kept as is, a local file path is inlined as a
// data URI. An empty field means no attachment.
func ResolveMedia(input string) ([]string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}
	if strings.HasPrefix(input, "data:image/") || strings.HasPrefix(input, "data:video/") {
		return []string{input}, nil
	}
	if u, err := url.Parse(input); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return []string{input}, nil
	}

	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("attachment: %w", err)
	}
	if info.Size() > MaxAttachmentBytes {
		return nil, fmt.Errorf("file is too large (%d MB); use a file smaller than 10MB", info.Size()>>20)
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("attachment: %w", err)
	}
	kind, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	if !strings.HasPrefix(kind, "image/") && !strings.HasPrefix(kind, "video/") {
		return nil, ErrUnsupportedMedia
	}
	return []string{"data:" + kind + ";base64," + base64.StdEncoding.EncodeToString(data)}, nil
}
