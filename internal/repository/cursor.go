package repository

import (
	"encoding/base64"
	"time"
)

const timeFormat = time.RFC3339Nano

// DecodeCursor accepts either a plain RFC 3339 timestamp, which is what
// clients send when they reuse the createdAt of the last article they saw,
// or the base64 form produced by EncodeCursor.
func DecodeCursor(cursor string) (time.Time, error) {
	if t, err := time.Parse(timeFormat, cursor); err == nil {
		return t, nil
	}

	byt, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, err
	}

	return time.Parse(timeFormat, string(byt))
}

// EncodeCursor encodes t into the opaque cursor handed out in the X-Cursor header.
func EncodeCursor(t time.Time) string {
	return base64.StdEncoding.EncodeToString([]byte(t.Format(timeFormat)))
}
