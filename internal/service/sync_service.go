package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MilanAlbertz/pmo-dashboard/config"
	"github.com/MilanAlbertz/pmo-dashboard/internal/dto"
	"github.com/MilanAlbertz/pmo-dashboard/internal/model"
	"github.com/MilanAlbertz/pmo-dashboard/internal/repository"
	pkgerrors "github.com/MilanAlbertz/pmo-dashboard/pkg/errors"
	"github.com/MilanAlbertz/pmo-dashboard/pkg/metrics"
	"github.com/MilanAlbertz/pmo-dashboard/pkg/salesforce"
)

// ── 同步模块业务错误 ──

var (
	ErrSyncInProgress = errors.New("另一个同步任务正在进行")
	ErrSyncFetch      = errors.New("拉取 Salesforce 数据失败")
	ErrSyncFailed     = errors.New("同步事务失败")
)

// syncLockKey 同步互斥锁键
const syncLockKey = "sync:salesforce:lock"

// SyncSource 同步所需的 Salesforce 读取能力
type SyncSource interface {
	GetPartners(ctx context.Context) (*salesforce.Result[salesforce.Account], error)
	GetContacts(ctx context.Context) (*salesforce.Result[salesforce.Contact], error)
	GetProjects(ctx context.Context) (*salesforce.Result[salesforce.Opportunity], error)
	GetLeads(ctx context.Context) (*salesforce.Result[salesforce.Lead], error)
}

// SyncLocker 跨实例互斥锁（Redis 实现）
type SyncLocker interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (string, error)
	ReleaseLock(ctx context.Context, key, token string) error
}

// SyncService Salesforce → MySQL 同步业务接口
type SyncService interface {
	Run(ctx context.Context) (*dto.SyncResult, error)
}

type syncService struct {
	repo   *repository.Repository
	source SyncSource
	locker SyncLocker
	cfg    *config.SyncConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewSyncService 创建 SyncService 实例；locker 为 nil 时不做互斥
func NewSyncService(repo *repository.Repository, source SyncSource, locker SyncLocker, cfg *config.SyncConfig, logger *zap.Logger) SyncService {
	return &syncService{
		repo:   repo,
		source: source,
		locker: locker,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// ────────────────────── Run ──────────────────────

func (s *syncService) Run(ctx context.Context) (*dto.SyncResult, error) {
	runID := uuid.New().String()
	started := s.now()
	log := s.logger.With(zap.String("run_id", runID))

	if s.locker != nil {
		token, err := s.locker.AcquireLock(ctx, syncLockKey, s.cfg.LockTTL)
		switch {
		case errors.Is(err, pkgerrors.ErrLockNotAcquired):
			metrics.SyncRuns.WithLabelValues("locked").Inc()
			return nil, ErrSyncInProgress
		case err != nil:
			// Redis 不可用时退化为无锁运行
			log.Warn("获取同步锁失败，继续无锁同步", zap.Error(err))
		default:
			defer func() {
				if err := s.locker.ReleaseLock(context.Background(), syncLockKey, token); err != nil {
					log.Warn("释放同步锁失败", zap.Error(err))
				}
			}()
		}
	}

	log.Info("开始 Salesforce 同步")

	remote, err := s.fetch(ctx)
	if err != nil {
		metrics.SyncRuns.WithLabelValues("failed").Inc()
		log.Error("拉取 Salesforce 数据失败", zap.Error(err))
		return nil, err
	}

	report, err := s.reconcile(ctx, remote, log)
	if err != nil {
		metrics.SyncRuns.WithLabelValues("failed").Inc()
		return nil, err
	}

	finished := s.now()
	metrics.SyncRuns.WithLabelValues("success").Inc()
	metrics.SyncDuration.Observe(finished.Sub(started).Seconds())
	recordEntityMetrics("partners", report.Partners)
	recordEntityMetrics("contacts", report.Contacts)
	recordEntityMetrics("projects", report.Projects)
	recordEntityMetrics("leads", report.Leads)

	stats := report.Stats()
	log.Info("Salesforce 同步完成",
		zap.Duration("elapsed", finished.Sub(started)),
		zap.Any("stats", stats),
	)

	return &dto.SyncResult{
		RunID:      runID,
		StartedAt:  started,
		FinishedAt: finished,
		Stats:      stats,
		Changes:    *report,
	}, nil
}

// fetch 依次拉取四类记录；任一失败即终止，不写库
func (s *syncService) fetch(ctx context.Context) (RemoteData, error) {
	var remote RemoteData

	partners, err := s.source.GetPartners(ctx)
	if err != nil {
		return remote, fmt.Errorf("%w: partners: %w", ErrSyncFetch, err)
	}
	contacts, err := s.source.GetContacts(ctx)
	if err != nil {
		return remote, fmt.Errorf("%w: contacts: %w", ErrSyncFetch, err)
	}
	projects, err := s.source.GetProjects(ctx)
	if err != nil {
		return remote, fmt.Errorf("%w: projects: %w", ErrSyncFetch, err)
	}
	leads, err := s.source.GetLeads(ctx)
	if err != nil {
		return remote, fmt.Errorf("%w: leads: %w", ErrSyncFetch, err)
	}

	remote.Partners = partners.Records
	remote.Contacts = contacts.Records
	remote.Projects = projects.Records
	remote.Leads = leads.Records
	return remote, nil
}

// reconcile 在单个事务内读取快照、计算计划并执行写入
func (s *syncService) reconcile(ctx context.Context, remote RemoteData, log *zap.Logger) (*dto.SyncReport, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error("开启事务失败", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrSyncFailed, err)
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	snapshot, err := loadSnapshot(ctx, txRepo)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		log.Error("读取本地快照失败", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrSyncFailed, err)
	}

	plan, report := PlanSync(remote, snapshot)

	if err := newApplier(txRepo, log).apply(ctx, plan, report, snapshot.Partners); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		log.Error("执行同步写入失败", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrSyncFailed, err)
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			log.Error("提交事务失败", zap.Error(err))
			return nil, fmt.Errorf("%w: %w", ErrSyncFailed, err)
		}
	}
	return report, nil
}

func loadSnapshot(ctx context.Context, repo *repository.Repository) (LocalSnapshot, error) {
	var snap LocalSnapshot
	var err error
	if snap.Partners, err = repo.Partner.List(ctx); err != nil {
		return snap, err
	}
	if snap.Contacts, err = repo.Contact.List(ctx); err != nil {
		return snap, err
	}
	if snap.Projects, err = repo.Project.List(ctx); err != nil {
		return snap, err
	}
	if snap.Leads, err = repo.Lead.List(ctx); err != nil {
		return snap, err
	}
	return snap, nil
}

func recordEntityMetrics(entity string, rep dto.EntityReport) {
	metrics.SyncRecords.WithLabelValues(entity, "inserted").Add(float64(len(rep.Inserted)))
	metrics.SyncRecords.WithLabelValues(entity, "updated").Add(float64(len(rep.Updated)))
	metrics.SyncRecords.WithLabelValues(entity, "error").Add(float64(len(rep.Errors)))
}

// ────────────────────── 写入执行 ──────────────────────

// applier 在事务内按顺序执行 SyncPlan
// 单行失败只影响该行：从 inserted/updated 移入 errors，后续行继续执行
type applier struct {
	repo       *repository.Repository
	logger     *zap.Logger
	partnerIDs map[string]int // SalesforceID → PartnerID
	classIDs   map[string]int // ClassCode → ClassID
	modules    map[ModuleKey]*model.Module
}

func newApplier(repo *repository.Repository, logger *zap.Logger) *applier {
	return &applier{
		repo:       repo,
		logger:     logger,
		partnerIDs: make(map[string]int),
		classIDs:   make(map[string]int),
		modules:    make(map[ModuleKey]*model.Module),
	}
}

// apply 返回的错误表示无法继续，需整体回滚；单行错误只写入报告
func (a *applier) apply(ctx context.Context, plan *SyncPlan, report *dto.SyncReport, partners []model.Partner) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, p := range partners {
		if p.SalesforceID != nil {
			a.partnerIDs[*p.SalesforceID] = p.PartnerID
		}
	}

	for _, w := range plan.Partners {
		row := w.Row
		if err := a.repo.Partner.Upsert(ctx, &row); err != nil {
			a.fail(&report.Partners, w.Kind, w.Entry, "partners", err)
			continue
		}
		a.partnerIDs[w.Entry.ID] = row.PartnerID
	}

	for _, w := range plan.Contacts {
		partnerID, ok := a.partnerIDs[w.PartnerSFID]
		if !ok {
			demote(&report.Contacts, w.Kind, dto.SyncError{
				ID: w.Entry.ID, Name: w.Entry.Name, Error: errMsgPartnerNotFound,
				PartnerID: w.PartnerSFID, PartnerName: w.PartnerName,
			})
			continue
		}
		row := w.Row
		row.PartnerID = model.IntPtr(partnerID)
		if err := a.repo.Contact.Upsert(ctx, &row); err != nil {
			a.fail(&report.Contacts, w.Kind, w.Entry, "contacts", err)
		}
	}

	for _, w := range plan.Projects {
		partnerID, ok := a.partnerIDs[w.PartnerSFID]
		if !ok {
			demote(&report.Projects, w.Kind, dto.SyncError{
				ID: w.Entry.ID, Name: w.Entry.Name, Error: errMsgPartnerNotFound,
				PartnerID: w.PartnerSFID, PartnerName: w.PartnerName,
			})
			continue
		}
		module, err := a.resolveModule(ctx, w)
		if err != nil {
			a.fail(&report.Projects, w.Kind, w.Entry, "projects", err)
			continue
		}
		row := w.Row
		row.PartnerID = model.IntPtr(partnerID)
		row.ModuleID = model.IntPtr(module.ModuleID)
		if err := a.repo.Project.Upsert(ctx, &row); err != nil {
			a.fail(&report.Projects, w.Kind, w.Entry, "projects", err)
		}
	}

	// 声明字段未变的项目同样解析模块并修正漂移；模块变化时改写关联并计为 updated
	for _, w := range plan.Relinks {
		module, err := a.resolveModule(ctx, w)
		if err != nil {
			a.fail(&report.Projects, w.Kind, w.Entry, "projects", err)
			continue
		}
		if model.EqualIntPtr(w.StoredModuleID, &module.ModuleID) {
			continue
		}
		report.Projects.Updated = append(report.Projects.Updated, w.Entry)
		row := w.Row
		row.ModuleID = model.IntPtr(module.ModuleID)
		if err := a.repo.Project.Upsert(ctx, &row); err != nil {
			a.fail(&report.Projects, w.Kind, w.Entry, "projects", err)
		}
	}

	for _, w := range plan.Leads {
		row := w.Row
		if err := a.repo.Lead.Upsert(ctx, &row); err != nil {
			a.fail(&report.Leads, w.Kind, w.Entry, "leads", err)
		}
	}
	return nil
}

// resolveModule 查找或创建 (名称, 周期) 对应的模块，并修正漂移的班级 / 课程关联
func (a *applier) resolveModule(ctx context.Context, w ProjectWrite) (*model.Module, error) {
	var classID *int
	if w.ClassCode != "" {
		id, err := a.resolveClass(ctx, w.ClassCode)
		if err != nil {
			return nil, fmt.Errorf("解析班级 %s 失败: %w", w.ClassCode, err)
		}
		classID = model.IntPtr(id)
	}

	module, ok := a.modules[w.Module]
	if !ok {
		period := model.NullableString(w.Module.Period)
		found, err := a.repo.Module.FindByNamePeriod(ctx, w.Module.Name, period)
		switch {
		case err == nil:
			module = found
		case errors.Is(err, gorm.ErrRecordNotFound):
			module = &model.Module{Name: w.Module.Name, Period: period}
			if w.Module.Name != model.DefaultModuleName {
				module.ClassID = classID
				module.Course = model.NullableString(w.Course)
			}
			if err := a.repo.Module.Create(ctx, module); err != nil {
				return nil, fmt.Errorf("创建模块 %s 失败: %w", w.Module.Name, err)
			}
		default:
			return nil, fmt.Errorf("查询模块 %s 失败: %w", w.Module.Name, err)
		}
		a.modules[w.Module] = module
	}

	// 共享的默认模块不随单个项目改动关联
	if w.Module.Name == model.DefaultModuleName {
		return module, nil
	}

	classDrift := classID != nil && !model.EqualIntPtr(module.ClassID, classID)
	courseDrift := w.Course != "" && model.StringValue(module.Course) != w.Course
	if classDrift || courseDrift {
		newClass, newCourse := module.ClassID, module.Course
		if classDrift {
			newClass = classID
		}
		if courseDrift {
			newCourse = model.NullableString(w.Course)
		}
		if err := a.repo.Module.UpdateLinkage(ctx, module.ModuleID, newClass, newCourse); err != nil {
			return nil, fmt.Errorf("更新模块 %s 关联失败: %w", w.Module.Name, err)
		}
		module.ClassID, module.Course = newClass, newCourse
	}
	return module, nil
}

func (a *applier) resolveClass(ctx context.Context, code string) (int, error) {
	if id, ok := a.classIDs[code]; ok {
		return id, nil
	}
	class, err := a.repo.Class.FindOrCreate(ctx, code)
	if err != nil {
		return 0, err
	}
	a.classIDs[code] = class.ClassID
	return class.ClassID, nil
}

// fail 记录单行写入失败
func (a *applier) fail(rep *dto.EntityReport, kind writeKind, entry dto.ChangeEntry, entity string, err error) {
	a.logger.Warn("同步单行写入失败",
		zap.String("entity", entity),
		zap.String("salesforce_id", entry.ID),
		zap.Error(err),
	)
	demote(rep, kind, dto.SyncError{ID: entry.ID, Name: entry.Name, Error: err.Error()})
}

// demote 将记录从 inserted / updated 移入 errors
func demote(rep *dto.EntityReport, kind writeKind, syncErr dto.SyncError) {
	list := &rep.Inserted
	if kind == writeUpdate {
		list = &rep.Updated
	}
	kept := (*list)[:0]
	for _, e := range *list {
		if e.ID != syncErr.ID {
			kept = append(kept, e)
		}
	}
	*list = kept
	rep.Errors = append(rep.Errors, syncErr)
}
