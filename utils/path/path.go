package path

import (
	"os"
	"path/filepath"
	"runtime"
)

// RootEnv 部署時（binary 不在原始碼樹中）可指定設定檔根目錄
const RootEnv = "MEDCARD_ROOT"

// RootPath 傳回專案根目錄的絕對路徑
func RootPath() string {
	if root := os.Getenv(RootEnv); root != "" {
		return filepath.Clean(root)
	}
	// /project/utils/path/path.go → /project
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		panic("無法取得 caller 位置")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
}
