package rich

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/zeebo/blake3"

	"github.com/DiscordGophers/docmaker/node"
)

const contentType = "application/octet-stream"

// Attachment is an image payload extracted from the document.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Description string `json:"description"`
	Content     []byte `json:"-"`
}

// Stream returns a reader over the attachment content, for upload clients.
func (a Attachment) Stream() io.Reader {
	return bytes.NewReader(a.Content)
}

// Size is the human readable content size.
func (a Attachment) Size() string {
	return humanize.Bytes(uint64(len(a.Content)))
}

// signatures maps the first base64 character of common image formats to
// their extension.
var signatures = map[byte]string{
	'/': "jpg",
	'i': "png",
	'R': "gif",
	'U': "webp",
}

func extract(img node.Image) (Attachment, error) {
	if img.Blob == "" {
		return Attachment{}, errors.New("image has no payload")
	}

	filename := img.Filename
	if filename == "" {
		ext, err := extension(img.Blob)
		if err != nil {
			return Attachment{}, err
		}
		filename = ContentName(img.Blob, ext)
	}

	content, err := decode(img.Blob)
	if err != nil {
		return Attachment{}, errors.Wrapf(err, "could not decode image %s", filename)
	}

	description := img.Caption
	if description == "" {
		description = filename
	}
	return Attachment{
		Filename:    filename,
		ContentType: contentType,
		Description: description,
		Content:     content,
	}, nil
}

// ContentName derives a filename from the payload so identical payloads
// always get the same name.
func ContentName(blob, ext string) string {
	sum := blake3.Sum256([]byte(blob))
	return "img_" + hex.EncodeToString(sum[:16]) + "." + ext
}

// extension reads the extension from a data URI header, falling back to the
// signature of the payload.
func extension(blob string) (string, error) {
	if i := strings.Index(blob, ";base64"); i >= 0 {
		mime := strings.TrimPrefix(blob[:i], "data:")
		if j := strings.LastIndex(mime, "/"); j >= 0 && j < len(mime)-1 {
			return mime[j+1:], nil
		}
		return "", errors.Errorf("extension could not be determined from media type %q", mime)
	}
	if ext, ok := signatures[blob[0]]; ok {
		return ext, nil
	}
	return "", errors.New("extension could not be determined from imageblob")
}

func decode(blob string) ([]byte, error) {
	if i := strings.Index(blob, ";base64,"); i >= 0 {
		blob = blob[i+len(";base64,"):]
	}
	blob = strings.Join(strings.Fields(blob), "")

	content, err := base64.StdEncoding.DecodeString(blob)
	if err != nil && len(blob)%4 != 0 {
		return base64.RawStdEncoding.DecodeString(blob)
	}
	return content, err
}
