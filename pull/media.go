package pull

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/FrankApiyo/briefcase/client"
)

// needsUpdate 判断清单中的附件是否需要（重新）下载：
// 本地文件不存在，或 md5 与清单声明不一致。
// 清单哈希形如 md5:<hex>；无法识别的哈希格式按需要更新处理。
func needsUpdate(m client.MediaFile, mediaDir string) bool {
	target := filepath.Join(mediaDir, m.Filename)
	want, ok := strings.CutPrefix(m.Hash, "md5:")
	if !ok {
		return true
	}
	got, err := md5OfFile(target)
	if err != nil {
		return true
	}
	return !strings.EqualFold(got, want)
}

func md5OfFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
