package page

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"
)

// decodeMHTML extracts the HTML document from an MHTML web archive.
//
// An MHTML file is a MIME message whose body is a multipart/related stream:
// the first text/html part is the saved document, the remaining parts are
// page assets (images, stylesheets) which extraction ignores. Part bodies
// are transfer-encoded, usually quoted-printable, sometimes base64.
func decodeMHTML(r io.Reader) (string, error) {
	msg, err := mail.ReadMessage(r)
	if err != nil {
		return "", fmt.Errorf("read archive headers: %w", err)
	}

	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("parse archive content type: %w", err)
	}

	// Some savers emit a bare text/html message with no multipart wrapper.
	if strings.HasPrefix(mediaType, "text/html") {
		return decodePartBody(msg.Body, msg.Header.Get("Content-Transfer-Encoding"))
	}

	if !strings.HasPrefix(mediaType, "multipart/") {
		return "", fmt.Errorf("unexpected archive content type %q", mediaType)
	}
	boundary := params["boundary"]
	if boundary == "" {
		return "", errors.New("archive missing multipart boundary")
	}

	mr := multipart.NewReader(msg.Body, boundary)
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read archive part: %w", err)
		}

		partType, _, err := mime.ParseMediaType(part.Header.Get("Content-Type"))
		if err != nil || !strings.HasPrefix(partType, "text/html") {
			part.Close()
			continue
		}

		markup, err := decodePartBody(part, part.Header.Get("Content-Transfer-Encoding"))
		part.Close()
		if err != nil {
			return "", err
		}
		return markup, nil
	}

	return "", errors.New("archive contains no text/html part")
}

// decodePartBody decodes a MIME part body according to its transfer encoding.
func decodePartBody(body io.Reader, encoding string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "quoted-printable":
		body = quotedprintable.NewReader(body)
	case "base64":
		body = base64.NewDecoder(base64.StdEncoding, body)
	case "", "7bit", "8bit", "binary":
		// Already plain text.
	default:
		return "", fmt.Errorf("unsupported transfer encoding %q", encoding)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("decode archive body: %w", err)
	}
	return string(data), nil
}
