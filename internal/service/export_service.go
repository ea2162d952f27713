package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/MilanAlbertz/pmo-dashboard/internal/model"
	"github.com/MilanAlbertz/pmo-dashboard/internal/repository"
)

var ErrExportGenerateFail = errors.New("生成 Excel 文件失败")

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出内容与 GET /api/projects 相同的联表列表
//   - 以 bytes.Buffer 返回，由 Handler 层设置下载响应头
type ExportService interface {
	ExportProjects(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

// exportColumn 导出列定义
type exportColumn struct {
	header string
	width  float64
	value  func(*model.ProjectView) interface{}
}

var projectExportColumns = []exportColumn{
	{"ID", 8, func(p *model.ProjectView) interface{} { return p.ID }},
	{"Title", 40, func(p *model.ProjectView) interface{} { return p.Title }},
	{"Status", 18, func(p *model.ProjectView) interface{} { return model.StringValue(p.Status) }},
	{"Partner", 30, func(p *model.ProjectView) interface{} { return model.StringValue(p.Partner) }},
	{"Sector", 16, func(p *model.ProjectView) interface{} { return model.StringValue(p.Sector) }},
	{"Module", 28, func(p *model.ProjectView) interface{} { return model.StringValue(p.Module) }},
	{"Course", 24, func(p *model.ProjectView) interface{} { return model.StringValue(p.Course) }},
	{"Class", 14, func(p *model.ProjectView) interface{} { return model.StringValue(p.ClassCode) }},
	{"Year", 8, func(p *model.ProjectView) interface{} { return intCell(p.Year) }},
	{"Quarter", 9, func(p *model.ProjectView) interface{} { return intCell(p.Quarter) }},
	{"Period", 10, func(p *model.ProjectView) interface{} { return model.StringValue(p.Period) }},
	{"Coordinator", 22, func(p *model.ProjectView) interface{} { return model.StringValue(p.Coordinator) }},
	{"Advisor", 22, func(p *model.ProjectView) interface{} { return model.StringValue(p.Advisor) }},
	{"Prototypes", 11, func(p *model.ProjectView) interface{} { return intCell(p.NumPrototypes) }},
	{"Agreement signed", 16, func(p *model.ProjectView) interface{} { return boolCell(p.AgreementSigned) }},
	{"TAPI aligned", 13, func(p *model.ProjectView) interface{} { return boolCell(p.TapiSigned) }},
	{"GitHub", 36, func(p *model.ProjectView) interface{} { return model.StringValue(p.GithubLink) }},
	{"Comment", 40, func(p *model.ProjectView) interface{} { return model.StringValue(p.Comment) }},
}

// ═══════════════════════════════════════════════════════════
// ExportProjects — 导出项目列表为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：单个 Sheet "Projects"，首行表头并冻结

func (s *exportService) ExportProjects(ctx context.Context) (*bytes.Buffer, string, error) {
	rows, err := s.repo.Project.ListViews(ctx)
	if err != nil {
		s.logger.Error("查询项目列表失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Projects"
	idx, _ := f.NewSheet(sheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, col := range projectExportColumns {
		name := colName(i)
		f.SetColWidth(sheet, name, name, col.width)
		f.SetCellValue(sheet, cell(name, 1), col.header)
	}
	f.SetCellStyle(sheet, "A1", cell(colName(len(projectExportColumns)-1), 1), headerStyle)
	f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	for r := range rows {
		for i, col := range projectExportColumns {
			f.SetCellValue(sheet, cell(colName(i), r+2), col.value(&rows[r]))
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("projects_%s.xlsx", s.now().Format("20060102"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func intCell(p *int) interface{} {
	if p == nil {
		return ""
	}
	return *p
}

func boolCell(p *bool) string {
	if p == nil {
		return ""
	}
	if *p {
		return "Yes"
	}
	return "No"
}
