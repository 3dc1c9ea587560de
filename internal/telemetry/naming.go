package telemetry

import (
	"runtime"
	"strings"

	"github.com/gin-gonic/gin"
)

var receiverReplacer = strings.NewReplacer("(*", "", "(", "", ")", "")

func pickName(override, fallback string) string {
	if n := strings.TrimSpace(override); n != "" {
		return n
	}
	if fallback == "" {
		return "unknown"
	}
	return fallback
}

// prettifyFuncName "medcard/internal/service.(*ProfileService).AddDisease-fm" -> "ProfileService.AddDisease"
func prettifyFuncName(full string) string {
	if i := strings.LastIndex(full, "/"); i >= 0 {
		full = full[i+1:]
	}
	full = strings.TrimSuffix(full, "-fm")
	if i := strings.LastIndex(full, ".func"); i >= 0 {
		full = full[:i]
	}
	if i := strings.Index(full, "·"); i >= 0 {
		full = full[:i]
	}
	// 去掉 package 前綴
	if i := strings.Index(full, "."); i >= 0 {
		full = full[i+1:]
	}
	full = receiverReplacer.Replace(full)
	// 泛型型參
	if open := strings.Index(full, "["); open >= 0 {
		if end := strings.Index(full[open:], "]"); end >= 0 {
			full = full[:open] + full[open+end+1:]
		}
	}
	return full
}

func spanNameFromGin(c *gin.Context) string {
	if hn := c.HandlerName(); hn != "" {
		return prettifyFuncName(hn)
	}
	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}
	return c.Request.Method + " " + route
}

func callerFuncName(skip int) string {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		return fn.Name()
	}
	return ""
}
