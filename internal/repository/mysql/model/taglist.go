package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// TagList 以 JSON 数组存储, 不做 HTML 转义, 使 LIKE 可以直接匹配 & < > 等字符
type TagList []string

func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		t = TagList{}
	}
	b, err := encodeJSON([]string(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *TagList) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*t = TagList{}
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported tag list type %T", src)
	}
	if len(b) == 0 {
		*t = TagList{}
		return nil
	}
	return json.Unmarshal(b, (*[]string)(t))
}

// EncodeTagFragment encodes s the way it appears inside the stored column,
// so a containment pattern built from it matches tags with quotes or backslashes.
func EncodeTagFragment(s string) string {
	b, err := encodeJSON(s)
	if err != nil {
		return s
	}
	return strings.TrimSuffix(strings.TrimPrefix(string(b), `"`), `"`)
}
