package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/MilanAlbertz/pmo-dashboard/internal/dto"
)

var ErrProspectionNotFound = errors.New("勘探记录不存在")

// ProspectionService 勘探记录（进程内存储，重启后清空）
type ProspectionService interface {
	List() []dto.Prospection
	Get(id string) (*dto.Prospection, error)
	Create(req *dto.CreateProspectionRequest) *dto.Prospection
	Update(id string, req *dto.UpdateProspectionRequest) (*dto.Prospection, error)
}

type prospectionService struct {
	mu      sync.RWMutex
	items   []dto.Prospection
	logger  *zap.Logger
	nowYear func() int
}

// NewProspectionService 创建 ProspectionService 实例
func NewProspectionService(logger *zap.Logger) ProspectionService {
	return &prospectionService{
		items:   []dto.Prospection{},
		logger:  logger,
		nowYear: func() int { return time.Now().Year() },
	}
}

func (s *prospectionService) List() []dto.Prospection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]dto.Prospection, len(s.items))
	copy(out, s.items)
	return out
}

func (s *prospectionService) Get(id string) (*dto.Prospection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.items {
		if s.items[i].ID == id {
			p := s.items[i]
			return &p, nil
		}
	}
	return nil, ErrProspectionNotFound
}

// Create ID 形如 "2024-EngenhariadeSoftware-T03"：年份-专业名（去掉第一个空格）-序号
func (s *prospectionService) Create(req *dto.CreateProspectionRequest) *dto.Prospection {
	s.mu.Lock()
	defer s.mu.Unlock()

	year := string(req.Year)
	if year == "" {
		year = strconv.Itoa(s.nowYear())
	}
	id := fmt.Sprintf("%s-%s-T%02d", year, strings.Replace(req.FieldOfStudy, " ", "", 1), len(s.items)+1)

	p := dto.Prospection{
		ID:           id,
		FieldOfStudy: req.FieldOfStudy,
		ClassCode:    req.ClassCode,
		Partner:      req.Partner,
		Year:         req.Year,
		Module:       req.Module,
		Period:       req.Period,
		Atelie:       req.Atelie,
		Supervisor:   req.Supervisor,
		Comment:      req.Comment,
	}
	s.items = append(s.items, p)

	s.logger.Info("创建勘探记录", zap.String("id", id))
	return &p
}

func (s *prospectionService) Update(id string, req *dto.UpdateProspectionRequest) (*dto.Prospection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.items {
		if s.items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrProspectionNotFound
	}

	p := &s.items[idx]
	if req.FieldOfStudy != nil {
		p.FieldOfStudy = *req.FieldOfStudy
	}
	if req.ClassCode != nil {
		p.ClassCode = *req.ClassCode
	}
	if req.Partner != nil {
		p.Partner = *req.Partner
	}
	if req.Year != nil {
		p.Year = *req.Year
	}
	if req.Module != nil {
		p.Module = *req.Module
	}
	if req.Period != nil {
		p.Period = *req.Period
	}
	if req.Atelie != nil {
		p.Atelie = *req.Atelie
	}
	if req.Supervisor != nil {
		p.Supervisor = *req.Supervisor
	}
	if req.Comment != nil {
		p.Comment = *req.Comment
	}

	out := *p
	return &out, nil
}
