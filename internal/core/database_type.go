package core

// ─── Database Types ────────────────────────────────────────────────────────────

type MongoCollection string
type RedisKey string
type FluentdSubTag string

// ─── MongoDB ───────────────────────────────────────────────────────────────────

// 未設定 MONGODB__DATABASE 時使用
const DefaultMongoDatabase = "medcard"

// MongoDB collections
const (
	MongoCollectionProfiles MongoCollection = "users"
	MongoCollectionEvents   MongoCollection = "events"
	MongoCollectionViewLogs MongoCollection = "histories"
)

// ─── Redis Keys ────────────────────────────────────────────────────────────────

const (
	RedisKeyServerName   RedisKey = "medcard"      // 預設 key 前綴
	RedisKeyProfileLimit RedisKey = "profile_read" // 個人檔案查詢限流
)

const (
	FluentdRequest  FluentdSubTag = "request_log"
	FluentdResponse FluentdSubTag = "response_log"
	FluentdViewLog  FluentdSubTag = "profile_view_log"
)
