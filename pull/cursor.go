package pull

import (
	"encoding/xml"
	"fmt"
	"time"
)

// someOldDate 仅用于比较缺失 lastUpdate 的游标，保证空游标总是排最前。
var someOldDate = time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)

const cursorTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Cursor 不透明的分页续传令牌，构造后不可变。
// 序列化形式用于持久化与请求参数；排序只看 lastUpdate，
// 相等性定义在 (lastUpdate, lastReturnedValue) 上而非序列化文本上。
type Cursor struct {
	value string

	lastUpdate    time.Time
	hasLastUpdate bool

	lastReturnedValue    string
	hasLastReturnedValue bool
}

// EmptyCursor 返回恒等空游标：无时间戳、无最后返回项，序列化为空串。
func EmptyCursor() Cursor { return Cursor{} }

// cursorXML 游标信封（解码用）。
type cursorXML struct {
	XMLName              xml.Name `xml:"cursor"`
	AttributeName        string   `xml:"attributeName"`
	AttributeValue       string   `xml:"attributeValue"`
	UriLastReturnedValue string   `xml:"uriLastReturnedValue"`
	IsForwardCursor      string   `xml:"isForwardCursor"`
}

// CursorFromXML 从服务端返回的游标片段构造；时间戳或最后返回项缺失均可容忍。
// 序列化形式原样保留片段文本。
func CursorFromXML(fragment string) (Cursor, error) {
	var env cursorXML
	if err := xml.Unmarshal([]byte(fragment), &env); err != nil {
		return Cursor{}, fmt.Errorf("parse cursor: %w", err)
	}
	c := Cursor{value: fragment}
	if env.AttributeValue != "" {
		ts, err := parseISO(env.AttributeValue)
		if err != nil {
			return Cursor{}, fmt.Errorf("parse cursor timestamp: %w", err)
		}
		c.lastUpdate = ts
		c.hasLastUpdate = true
	}
	if env.UriLastReturnedValue != "" {
		c.lastReturnedValue = env.UriLastReturnedValue
		c.hasLastReturnedValue = true
	}
	return c, nil
}

// CursorOf 由显式时间戳与最后返回项构造；序列化信封按固定格式重新生成。
func CursorOf(lastUpdate time.Time, lastReturnedValue string) Cursor {
	value := fmt.Sprintf("<cursor xmlns=\"http://www.opendatakit.org/cursor\">"+
		"<attributeName>_LAST_UPDATE_DATE</attributeName>"+
		"<attributeValue>%s</attributeValue>"+
		"<uriLastReturnedValue>%s</uriLastReturnedValue>"+
		"<isForwardCursor>true</isForwardCursor>"+
		"</cursor>",
		lastUpdate.Format(cursorTimeLayout),
		lastReturnedValue,
	)
	return Cursor{
		value:                value,
		lastUpdate:           lastUpdate,
		hasLastUpdate:        true,
		lastReturnedValue:    lastReturnedValue,
		hasLastReturnedValue: true,
	}
}

// CursorOfDate 由起始日期构造（当天零点 UTC），无最后返回项。
// 用于用户指定“从某天开始重新拉取”的场景。
func CursorOfDate(date time.Time) Cursor {
	lastUpdate := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	value := fmt.Sprintf("<cursor xmlns=\"http://www.opendatakit.org/cursor\">"+
		"<attributeName>_LAST_UPDATE_DATE</attributeName>"+
		"<attributeValue>%s</attributeValue>"+
		"<uriLastReturnedValue/>"+
		"<isForwardCursor>true</isForwardCursor>"+
		"</cursor>",
		lastUpdate.Format(cursorTimeLayout),
	)
	return Cursor{value: value, lastUpdate: lastUpdate, hasLastUpdate: true}
}

// CursorOfDateAndID 由起始日期与最后返回项构造。
func CursorOfDateAndID(date time.Time, lastReturnedValue string) Cursor {
	return CursorOf(time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC), lastReturnedValue)
}

// Value 序列化形式（持久化与请求参数使用）。
func (c Cursor) Value() string { return c.value }

// IsEmpty 是否为空游标。
func (c Cursor) IsEmpty() bool { return !c.hasLastUpdate && !c.hasLastReturnedValue && c.value == "" }

// Compare 按 lastUpdate 全序比较；缺失的时间戳以 someOldDate 代入，
// 因此空游标总是 <= 任何带真实时间戳的游标。
func (c Cursor) Compare(o Cursor) int {
	a, b := c.effectiveLastUpdate(), o.effectiveLastUpdate()
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

// Equals 相等性只看 (lastUpdate, lastReturnedValue)，不看序列化文本。
func (c Cursor) Equals(o Cursor) bool {
	if c.hasLastUpdate != o.hasLastUpdate || c.hasLastReturnedValue != o.hasLastReturnedValue {
		return false
	}
	if c.hasLastUpdate && !c.lastUpdate.Equal(o.lastUpdate) {
		return false
	}
	return c.lastReturnedValue == o.lastReturnedValue
}

func (c Cursor) effectiveLastUpdate() time.Time {
	if c.hasLastUpdate {
		return c.lastUpdate
	}
	return someOldDate
}

// MaxCursor 返回两个游标中较大的一个；相等时取 a。
func MaxCursor(a, b Cursor) Cursor {
	if b.Compare(a) > 0 {
		return b
	}
	return a
}

// parseISO 解析 ISO-8601 带偏移的时间戳，容忍是否带小数秒。
func parseISO(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339, s)
}
