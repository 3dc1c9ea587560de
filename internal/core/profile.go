package core

// VisibilityMode 對應 Profile.allowView，決定接受哪一種分享方式
type VisibilityMode int

const (
	VisibilityByID    VisibilityMode = 0 // 允許以 internal id (uuid) 分享
	VisibilityByToken VisibilityMode = 1 // 允許以 rotating token (uuidv4) 分享
	VisibilityClosed  VisibilityMode = 2 // 其他值：兩者皆不允許
)

// ShareMode 寫入瀏覽紀錄的分享管道
type ShareMode int

const (
	ShareModeID    ShareMode = 0
	ShareModeToken ShareMode = 1
)

// TargetKind 查詢目標的參照種類
type TargetKind int

const (
	TargetSelf TargetKind = iota
	TargetByID
	TargetByToken
)

func (k TargetKind) String() string {
	switch k {
	case TargetByID:
		return "uuid"
	case TargetByToken:
		return "uuidv4"
	default:
		return "self"
	}
}

// LoadState GetOrCreateProfile 的結果分支
type LoadState string

const (
	LoadStateFound   LoadState = "found"
	LoadStateCreated LoadState = "created"
)

// BloodTypeUnknown 未填寫血型時的預設值
const BloodTypeUnknown = 8

// StaleAfterDays 外部資料超過幾個完整天數未同步需重新抓取（> 此值）
const StaleAfterDays = 1

// Profile 內可 push/pull 的陣列欄位
type ProfileArray string

const (
	ProfileArrayDiseases  ProfileArray = "diseases"
	ProfileArrayAllergens ProfileArray = "allergens"
)
