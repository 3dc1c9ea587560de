package vk

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"medcard/config"
	"medcard/internal/core"
	cErr "medcard/internal/pkg/error"
	"medcard/internal/telemetry"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	defaultBaseURL    = "https://api.vk.com"
	defaultAPIVersion = "5.131"
	usersGetPath      = "/method/users.get"
	userFields        = "photo_200,sex,bdate"
)

type usersGetResponse struct {
	Response []vkUser `json:"response"`
	Error    *vkError `json:"error"`
}

type vkUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Photo200  string `json:"photo_200"`
	Sex       *int   `json:"sex"`
	BDate     string `json:"bdate"`
}

type vkError struct {
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// Client VK users.get（resty）
type Client struct {
	httpClient *resty.Client
	trace      *telemetry.Trace
	logger     *zap.Logger
	config     config.VK
}

func NewClient(trace *telemetry.Trace, logger *zap.Logger, conf *config.Configuration) Service {
	vkConfig := conf.VK
	if vkConfig.BaseURL == "" {
		vkConfig.BaseURL = defaultBaseURL
	}
	if vkConfig.APIVersion == "" {
		vkConfig.APIVersion = defaultAPIVersion
	}
	if vkConfig.Timeout <= 0 {
		vkConfig.Timeout = 10 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(vkConfig.BaseURL).
		SetTimeout(vkConfig.Timeout).
		SetRetryCount(vkConfig.RetryCount).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		SetHeader("Accept", "application/json")

	return &Client{httpClient: httpClient, trace: trace, logger: logger, config: vkConfig}
}

// Fetch 呼叫 users.get。
// 失敗時依錯誤類型回傳：
//   - 請求送出失敗 / 非 2xx / VK error payload：ExternalRequestError
//   - 回應解碼失敗或沒有使用者：ExternalResponseFormatError
func (c *Client) Fetch(ctx context.Context, userID int64) (_ *UserInfo, returnedError error) {
	ctx, span, end := c.trace.WithSpan(ctx, "vk.users.get")
	defer func() { end(returnedError) }()

	meta := core.TraceExternalFetchMeta{UserID: userID}
	defer func() { c.trace.ApplyTraceAttributes(span, meta) }()

	query := map[string]string{
		"user_ids": strconv.FormatInt(userID, 10),
		"fields":   userFields,
		"v":        c.config.APIVersion,
	}
	if c.config.AccessToken != "" {
		query["access_token"] = c.config.AccessToken
	}
	if c.config.Lang != "" {
		query["lang"] = c.config.Lang
	}

	var result usersGetResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(query).
		SetResult(&result).
		Get(usersGetPath)
	if err != nil {
		c.logger.Warn("vk users.get request failed", zap.Int64("userId", userID), zap.Error(err))
		return nil, cErr.ExternalRequestError("vk api request failed").Wrap(err)
	}
	meta.StatusCode = resp.StatusCode()

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		c.logger.Warn("vk users.get non-2xx",
			zap.Int64("userId", userID),
			zap.Int("status", resp.StatusCode()),
			zap.String("body", strings.TrimSpace(resp.String())))
		return nil, cErr.ExternalRequestError(fmt.Sprintf("vk api error: status %d", resp.StatusCode()))
	}
	if result.Error != nil {
		meta.ErrorCode, meta.ErrorMsg = result.Error.ErrorCode, result.Error.ErrorMsg
		c.logger.Warn("vk users.get error payload",
			zap.Int64("userId", userID),
			zap.Int("errorCode", result.Error.ErrorCode),
			zap.String("errorMsg", result.Error.ErrorMsg))
		return nil, cErr.ExternalRequestError(fmt.Sprintf("vk api error %d: %s", result.Error.ErrorCode, result.Error.ErrorMsg))
	}
	if len(result.Response) == 0 {
		return nil, cErr.ExternalResponseFormatError("vk api returned no user")
	}

	return toUserInfo(result.Response[0]), nil
}

func toUserInfo(user vkUser) *UserInfo {
	return &UserInfo{
		UserName: strings.TrimSpace(user.FirstName + " " + user.LastName),
		Photo:    user.Photo200,
		Sex:      user.Sex,
		Birthday: parseBDate(user.BDate),
	}
}

// parseBDate D.M.YYYY → 日期；D.M（隱藏年份）或格式錯誤 → nil
func parseBDate(bdate string) *time.Time {
	if strings.Count(bdate, ".") != 2 {
		return nil
	}
	parsed, err := time.Parse("2.1.2006", bdate)
	if err != nil {
		return nil
	}
	return &parsed
}
