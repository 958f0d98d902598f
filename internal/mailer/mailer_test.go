package mailer

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	csvData := []byte("institution_name,faculty_name\nTest University,Alice Lee\n")

	raw, err := buildMessage(
		"me@example.com",
		"lab@example.com",
		"Research outreach emails",
		"Attached are the generated outreach emails.",
		"out.csv",
		csvData,
	)
	require.NoError(t, err)

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)

	assert.Equal(t, "me@example.com", msg.Header.Get("From"))
	assert.Equal(t, "lab@example.com", msg.Header.Get("To"))
	assert.Equal(t, "Research outreach emails", msg.Header.Get("Subject"))

	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/mixed", mediaType)

	mr := multipart.NewReader(msg.Body, params["boundary"])

	textPart, err := mr.NextPart()
	require.NoError(t, err)
	textBody, err := io.ReadAll(textPart)
	require.NoError(t, err)
	assert.Equal(t, "Attached are the generated outreach emails.", string(textBody))

	attachPart, err := mr.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "out.csv", attachPart.FileName())
	assert.Equal(t, "base64", attachPart.Header.Get("Content-Transfer-Encoding"))

	encoded, err := io.ReadAll(attachPart)
	require.NoError(t, err)
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(string(encoded), "\r\n", ""))
	require.NoError(t, err)
	assert.Equal(t, csvData, decoded)

	_, err = mr.NextPart()
	assert.Equal(t, io.EOF, err)
}

func TestBuildMessageWrapsBase64Lines(t *testing.T) {
	big := bytes.Repeat([]byte("row,data\n"), 500)
	raw, err := buildMessage("me@example.com", "lab@example.com", "s", "b", "out.csv", big)
	require.NoError(t, err)

	for _, line := range strings.Split(string(raw), "\r\n") {
		assert.LessOrEqual(t, len(line), 100, "line too long: %q", line)
	}
}
