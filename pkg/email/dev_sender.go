package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DevSender writes each message to a directory instead of delivering it.
// The directory is created on first send.
type DevSender struct {
	dir string
	now func() time.Time
}

func NewDevSender(dir string) EmailSender {
	return &DevSender{dir: dir, now: time.Now}
}

// devRecord is the JSON written next to the bodies.
type devRecord struct {
	Timestamp     string         `json:"timestamp"`
	SendTo        string         `json:"send_to"`
	ReplyTo       string         `json:"reply_to,omitempty"`
	Subject       string         `json:"subject"`
	Tag           string         `json:"tag,omitempty"`
	TemplateID    int64          `json:"template_id,omitempty"`
	TemplateModel map[string]any `json:"template_model,omitempty"`
	Attachments   []string       `json:"attachments,omitempty"`
}

// SendEmail writes <timestamp>_<tag-or-subject>.{html,txt,json} and one
// file per attachment. Empty bodies are skipped.
func (d *DevSender) SendEmail(_ context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create directory: %w", ErrSendFailed, err)
	}

	now := d.now()
	label := params.Tag
	if label == "" {
		label = params.Subject
	}
	prefix := now.Format("2006_01_02_150405") + "_" + sanitizeFilename(label)

	rec := devRecord{
		Timestamp:     now.Format(time.RFC3339),
		SendTo:        params.SendTo,
		ReplyTo:       params.ReplyTo,
		Subject:       params.Subject,
		Tag:           params.Tag,
		TemplateID:    params.TemplateID,
		TemplateModel: params.TemplateModel,
	}

	files := map[string][]byte{}
	if params.BodyHTML != "" {
		files[prefix+".html"] = []byte(params.BodyHTML)
	}
	if params.BodyText != "" {
		files[prefix+".txt"] = []byte(params.BodyText)
	}
	for _, a := range params.Attachments {
		name := prefix + "_" + sanitizeFilename(a.Name)
		files[name] = a.Data
		rec.Attachments = append(rec.Attachments, name)
	}

	meta, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode metadata: %w", ErrSendFailed, err)
	}
	files[prefix+".json"] = meta

	for name, data := range files {
		if err := os.WriteFile(filepath.Join(d.dir, name), data, 0o644); err != nil {
			return fmt.Errorf("%w: write %s: %w", ErrSendFailed, name, err)
		}
	}
	return nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-z0-9._-]`)

// sanitizeFilename lowercases s, turns spaces into underscores and drops
// anything else outside [a-z0-9._-]. The result is at most 100 bytes and
// never empty.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(strings.ToLower(s), " ", "_")
	s = unsafeFilenameChars.ReplaceAllString(s, "")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		return "email"
	}
	return s
}
