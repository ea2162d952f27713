package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MilanAlbertz/pmo-dashboard/internal/dto"
	"github.com/MilanAlbertz/pmo-dashboard/internal/model"
	"github.com/MilanAlbertz/pmo-dashboard/internal/repository"
)

// ── 勘探卡业务错误 ──

var (
	ErrProspectionCardNotFound  = errors.New("勘探卡不存在")
	ErrProspectionCardDuplicate = errors.New("该年份、周期与课程已存在勘探卡")
)

// ProspectionCardService 勘探卡业务接口
type ProspectionCardService interface {
	List(ctx context.Context) ([]dto.ProspectionCardResponse, error)
	GetByID(ctx context.Context, id int) (*dto.ProspectionCardResponse, error)
	Create(ctx context.Context, req *dto.CreateProspectionCardRequest) (*dto.ProspectionCardResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateProspectionCardRequest) (*dto.ProspectionCardResponse, error)
}

type prospectionCardService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewProspectionCardService 创建 ProspectionCardService 实例
func NewProspectionCardService(repo *repository.Repository, logger *zap.Logger) ProspectionCardService {
	return &prospectionCardService{repo: repo, logger: logger}
}

// ────────────────────── List / Get ──────────────────────

func (s *prospectionCardService) List(ctx context.Context) ([]dto.ProspectionCardResponse, error) {
	cards, err := s.repo.ProspectionCard.List(ctx)
	if err != nil {
		s.logger.Error("查询勘探卡列表失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.ProspectionCardResponse, 0, len(cards))
	for i := range cards {
		result = append(result, toProspectionCardResponse(&cards[i]))
	}
	return result, nil
}

func (s *prospectionCardService) GetByID(ctx context.Context, id int) (*dto.ProspectionCardResponse, error) {
	card, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toProspectionCardResponse(card)
	return &resp, nil
}

// ────────────────────── Create ──────────────────────

func (s *prospectionCardService) Create(ctx context.Context, req *dto.CreateProspectionCardRequest) (*dto.ProspectionCardResponse, error) {
	if err := s.ensureSlotFree(ctx, 0, req.Year, req.Period, req.Course); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.CardStatusOpen
	}

	card := &model.ProspectionCard{
		Name:        model.NullableString(req.Name),
		Course:      req.Course,
		Description: model.NullableString(req.Description),
		Year:        req.Year,
		Period:      req.Period,
		ClassCode:   model.NullableString(req.ClassCode),
		Status:      status,
		Advisor:     model.NullableString(req.Advisor),
		Classroom:   model.NullableString(req.Classroom),
		PartnerName: model.NullableString(req.PartnerName),
	}
	if err := s.repo.ProspectionCard.Create(ctx, card); err != nil {
		// 并发创建时由唯一键兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrProspectionCardDuplicate
		}
		s.logger.Error("创建勘探卡失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("创建勘探卡",
		zap.Int("id", card.ProspectionCardID),
		zap.Int("year", card.Year),
		zap.Int("period", card.Period),
		zap.String("course", card.Course),
	)
	resp := toProspectionCardResponse(card)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *prospectionCardService) Update(ctx context.Context, id int, req *dto.UpdateProspectionCardRequest) (*dto.ProspectionCardResponse, error) {
	card, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	slotChanged := false
	if req.Course != nil && *req.Course != card.Course {
		card.Course = *req.Course
		slotChanged = true
	}
	if req.Year != nil && *req.Year != card.Year {
		card.Year = *req.Year
		slotChanged = true
	}
	if req.Period != nil && *req.Period != card.Period {
		card.Period = *req.Period
		slotChanged = true
	}
	if slotChanged {
		if err := s.ensureSlotFree(ctx, card.ProspectionCardID, card.Year, card.Period, card.Course); err != nil {
			return nil, err
		}
	}

	if req.Name != nil {
		card.Name = model.NullableString(*req.Name)
	}
	if req.Description != nil {
		card.Description = model.NullableString(*req.Description)
	}
	if req.ClassCode != nil {
		card.ClassCode = model.NullableString(*req.ClassCode)
	}
	if req.Status != nil {
		card.Status = *req.Status
	}
	if req.Advisor != nil {
		card.Advisor = model.NullableString(*req.Advisor)
	}
	if req.Classroom != nil {
		card.Classroom = model.NullableString(*req.Classroom)
	}
	if req.PartnerName != nil {
		card.PartnerName = model.NullableString(*req.PartnerName)
	}

	if err := s.repo.ProspectionCard.Update(ctx, card); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrProspectionCardDuplicate
		}
		s.logger.Error("更新勘探卡失败", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	resp := toProspectionCardResponse(card)
	return &resp, nil
}

// ── 辅助函数 ──

func (s *prospectionCardService) find(ctx context.Context, id int) (*model.ProspectionCard, error) {
	card, err := s.repo.ProspectionCard.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProspectionCardNotFound
		}
		s.logger.Error("查询勘探卡失败", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return card, nil
}

// ensureSlotFree (year, period, course) 已被其他卡片占用时返回 ErrProspectionCardDuplicate
func (s *prospectionCardService) ensureSlotFree(ctx context.Context, selfID, year, period int, course string) error {
	existing, err := s.repo.ProspectionCard.FindBySlot(ctx, year, period, course)
	switch {
	case err == nil:
		if existing.ProspectionCardID != selfID {
			return ErrProspectionCardDuplicate
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		s.logger.Error("查询勘探卡失败", zap.Error(err))
		return err
	}
}

func toProspectionCardResponse(c *model.ProspectionCard) dto.ProspectionCardResponse {
	return dto.ProspectionCardResponse{
		ID:          c.ProspectionCardID,
		Name:        model.StringValue(c.Name),
		Course:      c.Course,
		Description: model.StringValue(c.Description),
		Year:        c.Year,
		Period:      c.Period,
		ClassCode:   model.StringValue(c.ClassCode),
		Status:      c.Status,
		Advisor:     model.StringValue(c.Advisor),
		Classroom:   model.StringValue(c.Classroom),
		PartnerName: model.StringValue(c.PartnerName),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
