package service

import (
	"medcard/internal/database/mongodb/model"
	"medcard/internal/dto"
)

// toProfileViewDto includeToken=false 時不回傳 uuidv4（分享檢視）
func toProfileViewDto(view *ProfileView, includeToken bool) *dto.ProfileViewDto {
	profile := view.Profile
	out := &dto.ProfileViewDto{
		ID:        profile.ID.Hex(),
		UserID:    profile.UserID,
		UserName:  profile.UserName,
		Photo:     profile.Photo,
		AllowView: profile.AllowView,
		BloodType: profile.BloodType,
		Diseases:  make([]dto.DiseaseResponseDto, 0, len(profile.Diseases)),
		Allergens: make([]dto.AllergenResponseDto, 0, len(profile.Allergens)),
		Birthday:  profile.Birthday,
		Sex:       profile.Sex,
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
		Events:    make([]dto.EventResponseDto, 0, len(view.Events)),
		History:   make([]dto.ViewLogResponseDto, 0, len(view.History)),
	}
	if includeToken {
		out.UUIDv4 = profile.ShareToken
	}
	for _, disease := range profile.Diseases {
		out.Diseases = append(out.Diseases, *toDiseaseResponseDto(disease))
	}
	for _, allergen := range profile.Allergens {
		out.Allergens = append(out.Allergens, *toAllergenResponseDto(allergen))
	}
	for _, event := range view.Events {
		out.Events = append(out.Events, dto.EventResponseDto{
			ID:    event.ID.Hex(),
			Title: event.Title,
			Date:  event.Date,
			Color: event.Color,
		})
	}
	for _, viewLog := range view.History {
		out.History = append(out.History, dto.ViewLogResponseDto{
			ID:        viewLog.ID.Hex(),
			ClientID:  viewLog.ViewedUserID,
			UserName:  viewLog.ViewedUserName,
			Photo:     viewLog.ViewedPhoto,
			Type:      viewLog.ShareMode,
			CreatedAt: viewLog.CreatedAt,
		})
	}
	return out
}

func toDiseaseResponseDto(disease model.Disease) *dto.DiseaseResponseDto {
	return &dto.DiseaseResponseDto{
		ID:        disease.ID.Hex(),
		Title:     disease.Title,
		DateStart: disease.DateStart,
		DateEnd:   disease.DateEnd,
		Color:     disease.Color,
	}
}

func toAllergenResponseDto(allergen model.Allergen) *dto.AllergenResponseDto {
	return &dto.AllergenResponseDto{
		ID:    allergen.ID.Hex(),
		Title: allergen.Title,
		Date:  allergen.Date,
		Color: allergen.Color,
	}
}
