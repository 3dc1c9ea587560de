package model

type RequestLog struct {
	RequestID string `bson:"request_id" json:"request_id"`
	Path      string `bson:"path" json:"path"`
	Method    string `bson:"method" json:"method"`
	Query     string `bson:"query,omitempty" json:"query,omitempty"`
	Body      string `bson:"body,omitempty" json:"body,omitempty"`
	IPHash    string `bson:"ip_hash,omitempty" json:"ip_hash,omitempty"`
	UserAgent string `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	// 由 user agent 解析
	Browser   string `bson:"browser,omitempty" json:"browser,omitempty"`
	OS        string `bson:"os,omitempty" json:"os,omitempty"`
	Mobile    bool   `bson:"mobile" json:"mobile"`
	Bot       bool   `bson:"bot" json:"bot"`
	Version   string `bson:"version,omitempty" json:"version,omitempty"`
	RequestTS string `bson:"request_ts" json:"request_ts"`
	LoggedAt  string `bson:"logged_at" json:"logged_at"`
}
