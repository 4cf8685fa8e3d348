package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// ErrAudioNotFound is returned when the file to upload does not exist
var ErrAudioNotFound = errors.New("audio file not found")

// SendAudio uploads an audio file with an HTML caption. The multipart body
// is streamed from disk.
func (b *Bot) SendAudio(ctx context.Context, chatID, audioPath, caption, title string) (*Response, error) {
	info, err := os.Stat(audioPath)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrAudioNotFound, audioPath)
	}

	file, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}

	fields := [][2]string{
		{"chat_id", chatID},
		{"caption", caption},
		{"title", title},
		{"parse_mode", "HTML"},
	}

	pr, pw := io.Pipe()
	defer pr.Close()
	mw := multipart.NewWriter(pw)

	go func() {
		defer file.Close()
		err := writeAudioForm(mw, fields, filepath.Base(audioPath), file)
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint("sendAudio"), pr)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", b.redact(err))
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return b.do(req, "sendAudio")
}

func writeAudioForm(mw *multipart.Writer, fields [][2]string, filename string, audio io.Reader) error {
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return err
		}
	}
	part, err := mw.CreateFormFile("audio", filename)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, audio)
	return err
}
