package model

import (
	"database/sql/driver"
	"fmt"

	"github.com/goccy/go-json"
)

// 项目的 timeline / technologies / outcomes 均以 JSON 文本落库。
// 序列化与反序列化在存储边界显式完成（Scan/Value），不依赖 ORM 钩子。

type TimelineEntry struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type OutcomeEntry struct {
	Metric      string `json:"metric"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

type TimelineList []TimelineEntry

func (l TimelineList) Value() (driver.Value, error) {
	if l == nil {
		l = TimelineList{}
	}
	return json.Marshal(l)
}

func (l *TimelineList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

type OutcomeList []OutcomeEntry

func (l OutcomeList) Value() (driver.Value, error) {
	if l == nil {
		l = OutcomeList{}
	}
	return json.Marshal(l)
}

func (l *OutcomeList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

func scanJSON(src interface{}, dst interface{}) error {
	if src == nil {
		return nil
	}
	switch v := src.(type) {
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported json column type %T", src)
	}
}
