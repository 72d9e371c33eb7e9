package pull

import (
	"context"

	"github.com/FrankApiyo/briefcase/logging"
	"github.com/FrankApiyo/briefcase/prefs"
)

const cursorPrefSuffix = "_pull_cursor"

// ReadCursor 读取某表单已保存的续传游标；不存在或无法解析时返回 false。
func ReadCursor(p prefs.Preferences, formID string) (Cursor, bool) {
	raw, ok := p.Get(formID + cursorPrefSuffix)
	if !ok || raw == "" {
		return Cursor{}, false
	}
	c, err := CursorFromXML(raw)
	if err != nil {
		logging.L().Warn(context.Background(), "stored cursor unreadable, starting from scratch",
			"form", formID, "err", err)
		return Cursor{}, false
	}
	return c, true
}

// StoreCursor 保存某表单的续传游标，作为下次拉取的起点。
func StoreCursor(p prefs.Preferences, formID string, c Cursor) {
	p.Put(formID+cursorPrefSuffix, c.Value())
}
