package handler

import (
	"context"
	"time"

	"medcard/internal/core"
	"medcard/internal/dto"
	"medcard/internal/middleware"
	cErr "medcard/internal/pkg/error"
	"medcard/internal/pkg/response"
	"medcard/internal/service"
	"medcard/internal/telemetry"
	"medcard/utils/validate"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileAccessor 由 service.AccessService 實作
type ProfileAccessor interface {
	ResolveAccess(ctx context.Context, requester service.RequesterRef, target service.TargetRef) (*dto.ProfileViewDto, error)
}

// ProfileMutator 由 service.ProfileService 實作
type ProfileMutator interface {
	AddDisease(ctx context.Context, userID int64, in *dto.DiseaseDto) (*dto.DiseaseResponseDto, error)
	EditDisease(ctx context.Context, userID int64, diseaseID primitive.ObjectID, in *dto.DiseaseDto) (*dto.MutationResultDto, error)
	DeleteDisease(ctx context.Context, userID int64, diseaseID primitive.ObjectID) (*dto.MutationResultDto, error)
	AddAllergen(ctx context.Context, userID int64, in *dto.AllergenDto) (*dto.AllergenResponseDto, error)
	EditAllergen(ctx context.Context, userID int64, allergenID primitive.ObjectID, in *dto.AllergenDto) (*dto.MutationResultDto, error)
	DeleteAllergen(ctx context.Context, userID int64, allergenID primitive.ObjectID) (*dto.MutationResultDto, error)
	ChangeBirthday(ctx context.Context, userID int64, birthday *time.Time) (*dto.MutationResultDto, error)
	ChangeGender(ctx context.Context, userID int64, sex *int) (*dto.MutationResultDto, error)
	ChangeBloodType(ctx context.Context, userID int64, bloodType int) (*dto.MutationResultDto, error)
	ChangeVisibility(ctx context.Context, userID int64, mode core.VisibilityMode) (*dto.MutationResultDto, error)
	RotateShareToken(ctx context.Context, userID int64) (*dto.ShareTokenResponseDto, error)
}

type ProfileHandler struct {
	trace    *telemetry.Trace
	access   ProfileAccessor
	profiles ProfileMutator
}

func NewProfileHandler(trace *telemetry.Trace, access ProfileAccessor, profiles ProfileMutator) *ProfileHandler {
	return &ProfileHandler{trace: trace, access: access, profiles: profiles}
}

// GetProfile 查看個人檔案
// @Summary 查看自己的或他人分享的個人檔案
// @Description 不帶參數為自己的檔案（首次存取自動建立）；uuid 為對方 internal id，uuidv4 為對方分享 token，兩者皆有時以 uuid 為準
// @Tags Profile
// @Security BearerAuth
// @Produce json
// @Param uuid query string false "對方的 internal id"
// @Param uuidv4 query string false "對方的分享 token"
// @Success 200 {object} dto.ProfileViewDto
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 429 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /api/v1/profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	ctx, span, end := h.trace.WithSpan(c)
	var cause error
	defer func() { end(cause) }()

	userID, err := requesterID(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	var query dto.ProfileQueryDto
	if bindErr, respErr := validate.BindQuery(c, &query); bindErr != nil {
		cause = bindErr
		response.AbortWithError(c, respErr)
		return
	}

	target := service.NewTargetRef(query.UUID, query.UUIDv4)
	h.trace.ApplyTraceAttributes(span, core.TraceProfileAccessMeta{RequesterUserID: userID, TargetKind: target.Kind.String()})

	view, err := h.access.ResolveAccess(ctx, service.RequesterRef{UserID: userID}, target)
	if err != nil {
		cause = err
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, view)
}

// AddDisease 新增疾病
// @Summary 新增疾病
// @Description 與新增過敏原共用 flood control，視窗內已有修改時回傳 429
// @Tags Profile-Disease
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.DiseaseDto true "疾病"
// @Success 201 {object} dto.DiseaseResponseDto
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /api/v1/profile/diseases [post]
func (h *ProfileHandler) AddDisease(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	var cause error
	defer func() { end(cause) }()

	userID, err := requesterID(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	var req dto.DiseaseDto
	if bindErr, respErr := validate.BindAndValidate(c, &req); bindErr != nil {
		cause = bindErr
		response.AbortWithError(c, respErr)
		return
	}

	res, err := h.profiles.AddDisease(ctx, userID, &req)
	if err != nil {
		cause = err
		response.AbortWithError(c, err)
		return
	}
	response.Create(c, res)
}

// EditDisease 編輯疾病
// @Summary 整筆覆寫一筆疾病
// @Tags Profile-Disease
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param diseaseID path string true "Disease ID"
// @Param body body dto.DiseaseDto true "疾病"
// @Success 200 {object} dto.MutationResultDto
// @Failure 400 {object} response.Response
// @Router /api/v1/profile/diseases/{diseaseID} [put]
func (h *ProfileHandler) EditDisease(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	var cause error
	defer func() { end(cause) }()

	userID, err := requesterID(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	diseaseID, parseErr, respErr := validate.ParseObjectID(c, "diseaseID")
	if parseErr != nil {
		cause = parseErr
		response.AbortWithError(c, respErr)
		return
	}
	var req dto.DiseaseDto
	if bindErr, respErr := validate.BindAndValidate(c, &req); bindErr != nil {
		cause = bindErr
		response.AbortWithError(c, respErr)
		return
	}

	res, err := h.profiles.EditDisease(ctx, userID, diseaseID, &req)
	if err != nil {
		cause = err
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, res)
}

// DeleteDisease 刪除疾病
// @Summary 刪除一筆疾病
// @Description 找不到時 updated 為 0
// @Tags Profile-Disease
// @Security BearerAuth
// @Produce json
// @Param diseaseID path string true "Disease ID"
// @Success 200 {object} dto.MutationResultDto
// @Failure 400 {object} response.Response
// @Router /api/v1/profile/diseases/{diseaseID} [delete]
func (h *ProfileHandler) DeleteDisease(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	var cause error
	defer func() { end(cause) }()

	userID, err := requesterID(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	diseaseID, parseErr, respErr := validate.ParseObjectID(c, "diseaseID")
	if parseErr != nil {
		cause = parseErr
		response.AbortWithError(c, respErr)
		return
	}

	res, err := h.profiles.DeleteDisease(ctx, userID, diseaseID)
	if err != nil {
		cause = err
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, res)
}

// AddAllergen 新增過敏原
// @Summary 新增過敏原
// @Tags Profile-Allergen
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.AllergenDto true "過敏原"
// @Success 201 {object} dto.AllergenResponseDto
// @Failure 400 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /api/v1/profile/allergens [post]
func (h *ProfileHandler) AddAllergen(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	var cause error
	defer func() { end(cause) }()

	userID, err := requesterID(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	var req dto.AllergenDto
	if bindErr, respErr := validate.BindAndValidate(c, &req); bindErr != nil {
		cause = bindErr
		response.AbortWithError(c, respErr)
		return
	}

	res, err := h.profiles.AddAllergen(ctx, userID, &req)
	if err != nil {
		cause = err
		response.AbortWithError(c, err)
		return
	}
	response.Create(c, res)
}

// EditAllergen 編輯過敏原
// @Summary 整筆覆寫一筆過敏原
// @Tags Profile-Allergen
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param allergenID path string true "Allergen ID"
// @Param body body dto.AllergenDto true "過敏原"
// @Success 200 {object} dto.MutationResultDto
// @Failure 400 {object} response.Response
// @Router /api/v1/profile/allergens/{allergenID} [put]
func (h *ProfileHandler) EditAllergen(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	var cause error
	defer func() { end(cause) }()

	userID, err := requesterID(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	allergenID, parseErr, respErr := validate.ParseObjectID(c, "allergenID")
	if parseErr != nil {
		cause = parseErr
		response.AbortWithError(c, respErr)
		return
	}
	var req dto.AllergenDto
	if bindErr, respErr := validate.BindAndValidate(c, &req); bindErr != nil {
		cause = bindErr
		response.AbortWithError(c, respErr)
		return
	}

	res, err := h.profiles.EditAllergen(ctx, userID, allergenID, &req)
	if err != nil {
		cause = err
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, res)
}

// DeleteAllergen 刪除過敏原
// @Summary 刪除一筆過敏原
// @Tags Profile-Allergen
// @Security BearerAuth
// @Produce json
// @Param allergenID path string true "Allergen ID"
// @Success 200 {object} dto.MutationResultDto
// @Failure 400 {object} response.Response
// @Router /api/v1/profile/allergens/{allergenID} [delete]
func (h *ProfileHandler) DeleteAllergen(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	var cause error
	defer func() { end(cause) }()

	userID, err := requesterID(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	allergenID, parseErr, respErr := validate.ParseObjectID(c, "allergenID")
	if parseErr != nil {
		cause = parseErr
		response.AbortWithError(c, respErr)
		return
	}

	res, err := h.profiles.DeleteAllergen(ctx, userID, allergenID)
	if err != nil {
		cause = err
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, res)
}

// ChangeBirthday 修改生日
// @Summary 修改生日（epoch 毫秒，0 或 null 為清除）
// @Tags Profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.ChangeBirthdayDto true "生日"
// @Success 200 {object} dto.MutationResultDto
// @Router /api/v1/profile/birthday [patch]
func (h *ProfileHandler) ChangeBirthday(c *gin.Context) {
	h.changeField(c, &dto.ChangeBirthdayDto{}, func(ctx context.Context, userID int64, req any) (any, error) {
		return h.profiles.ChangeBirthday(ctx, userID, req.(*dto.ChangeBirthdayDto).Birthday.Time())
	})
}

// ChangeGender 修改性別
// @Summary 修改性別（VK 性別代碼 0..2，null 為清除）
// @Tags Profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.ChangeGenderDto true "性別"
// @Success 200 {object} dto.MutationResultDto
// @Router /api/v1/profile/gender [patch]
func (h *ProfileHandler) ChangeGender(c *gin.Context) {
	h.changeField(c, &dto.ChangeGenderDto{}, func(ctx context.Context, userID int64, req any) (any, error) {
		return h.profiles.ChangeGender(ctx, userID, req.(*dto.ChangeGenderDto).Sex)
	})
}

// ChangeBloodType 修改血型
// @Summary 修改血型（0..8，8 為未知）
// @Tags Profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.ChangeBloodTypeDto true "血型"
// @Success 200 {object} dto.MutationResultDto
// @Failure 400 {object} response.Response
// @Router /api/v1/profile/blood-type [patch]
func (h *ProfileHandler) ChangeBloodType(c *gin.Context) {
	h.changeField(c, &dto.ChangeBloodTypeDto{}, func(ctx context.Context, userID int64, req any) (any, error) {
		return h.profiles.ChangeBloodType(ctx, userID, *req.(*dto.ChangeBloodTypeDto).BloodType)
	})
}

// ChangeVisibility 修改分享方式
// @Summary 修改分享方式（0=uuid、1=uuidv4、其他=不分享）
// @Tags Profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.ChangeVisibilityDto true "分享方式"
// @Success 200 {object} dto.MutationResultDto
// @Failure 400 {object} response.Response
// @Router /api/v1/profile/visibility [patch]
func (h *ProfileHandler) ChangeVisibility(c *gin.Context) {
	h.changeField(c, &dto.ChangeVisibilityDto{}, func(ctx context.Context, userID int64, req any) (any, error) {
		return h.profiles.ChangeVisibility(ctx, userID, core.VisibilityMode(*req.(*dto.ChangeVisibilityDto).AllowView))
	})
}

// RotateShareToken 重新產生分享 token
// @Summary 重新產生 uuidv4，舊連結立即失效
// @Tags Profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.ShareTokenResponseDto
// @Router /api/v1/profile/share-token [post]
func (h *ProfileHandler) RotateShareToken(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	var cause error
	defer func() { end(cause) }()

	userID, err := requesterID(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	res, err := h.profiles.RotateShareToken(ctx, userID)
	if err != nil {
		cause = err
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, res)
}

// changeField 單欄位 PATCH 的共用流程
func (h *ProfileHandler) changeField(c *gin.Context, req any, apply func(ctx context.Context, userID int64, req any) (any, error)) {
	ctx, _, end := h.trace.WithSpan(c)
	var cause error
	defer func() { end(cause) }()

	userID, err := requesterID(c)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	if bindErr, respErr := validate.BindAndValidate(c, req); bindErr != nil {
		cause = bindErr
		response.AbortWithError(c, respErr)
		return
	}

	res, err := apply(ctx, userID, req)
	if err != nil {
		cause = err
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, res)
}

func requesterID(c *gin.Context) (int64, error) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return 0, cErr.InvalidToken("missing user context")
	}
	return userID, nil
}
