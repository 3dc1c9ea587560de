package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// EpochMillis 毫秒 epoch，接受 JSON number 或數字字串；null / "" / 0 代表沒有值
type EpochMillis int64

func (e *EpochMillis) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*e = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*e = 0
			return nil
		}
		data = []byte(s)
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		f, floatErr := strconv.ParseFloat(string(data), 64)
		if floatErr != nil {
			return fmt.Errorf("invalid millisecond timestamp %q", string(data))
		}
		n = int64(f)
	}
	*e = EpochMillis(n)
	return nil
}

// Time 0 → nil，不會變成「現在」
func (e EpochMillis) Time() *time.Time {
	if e == 0 {
		return nil
	}
	t := time.UnixMilli(int64(e)).UTC()
	return &t
}
