package service

import (
	"context"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/IT-Nick/visionhub/internal/domain/dto"
	"github.com/IT-Nick/visionhub/internal/domain/model"
	progressService "github.com/IT-Nick/visionhub/internal/domain/progress/service"
	usersService "github.com/IT-Nick/visionhub/internal/domain/users/service"
	"github.com/IT-Nick/visionhub/internal/storage"
)

//go:embed fonts/DejaVuSans.ttf fonts/DejaVuSans-Bold.ttf
var embeddedFonts embed.FS

const fontFamily = "DejaVu"

// ReportService формирует сводки прохождения обучения для руководителей и администраторов
type ReportService struct {
	store       storage.Store
	userService *usersService.UserService
	classifier  *progressService.Classifier
	fontDir     string
	now         func() time.Time
}

// NewReportService создает новый экземпляр ReportService. fontDir каталог со шрифтами
// DejaVuSans.ttf и DejaVuSans-Bold.ttf; пустой fontDir означает встроенные шрифты.
func NewReportService(store storage.Store, userService *usersService.UserService, classifier *progressService.Classifier, fontDir string) *ReportService {
	return &ReportService{
		store:       store,
		userService: userService,
		classifier:  classifier,
		fontDir:     fontDir,
		now:         time.Now,
	}
}

// TeamOverview считает модули в каждой корзине для сотрудников, видимых вызывающему
func (s *ReportService) TeamOverview(ctx context.Context, identity model.Identity) (*dto.TeamOverviewResponse, error) {
	const op = "reports.TeamOverview"

	staff, err := s.userService.VisibleStaff(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	overview := &dto.TeamOverviewResponse{TotalStaff: len(staff), Staff: make([]dto.StaffProgress, 0, len(staff))}
	for _, user := range staff {
		dashboard, err := s.classifier.Dashboard(ctx, s.store, user.ID)
		if err != nil {
			return nil, fmt.Errorf("%s: user %d: %w: %w", op, user.ID, model.ErrPersistence, err)
		}

		progress := dto.StaffProgress{
			UserID:     user.ID,
			Username:   user.Username,
			FullName:   user.FullName(),
			JobTitle:   user.JobTitle,
			ToDo:       len(dashboard.ToDo),
			InProgress: len(dashboard.InProgress),
			Completed:  len(dashboard.Completed),
		}
		progress.Total = progress.ToDo + progress.InProgress + progress.Completed
		overview.Staff = append(overview.Staff, progress)
	}

	return overview, nil
}

// CompletionPDF записывает в w PDF-отчет по сводке TeamOverview
func (s *ReportService) CompletionPDF(ctx context.Context, identity model.Identity, w io.Writer) error {
	const op = "reports.CompletionPDF"

	overview, err := s.TeamOverview(ctx, identity)
	if err != nil {
		return err
	}

	// Создаем новый PDF документ формата A4
	pdf := gofpdf.New("P", "mm", "A4", "")
	if err := s.registerFonts(pdf); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	pdf.AddPage()

	// Заголовок отчёта
	pdf.SetFont(fontFamily, "B", 16)
	pdf.MultiCell(0, 10, "Отчет о прохождении обучения", "", "L", false)
	pdf.SetFont(fontFamily, "", 10)
	pdf.MultiCell(0, 6, fmt.Sprintf("Сформирован: %s, сотрудников: %d",
		s.now().Format("02.01.2006 15:04"), overview.TotalStaff), "", "L", false)
	pdf.Ln(4)

	widths := []float64{70, 50, 22, 22, 22}
	headers := []string{"Сотрудник", "Должность", "К выполнению", "В процессе", "Завершено"}

	pdf.SetFont(fontFamily, "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(fontFamily, "", 9)
	for _, p := range overview.Staff {
		name := p.FullName
		if name == "" {
			name = p.Username
		}
		row := []string{name, p.JobTitle, fmt.Sprint(p.ToDo), fmt.Sprint(p.InProgress), fmt.Sprintf("%d/%d", p.Completed, p.Total)}
		for i, cell := range row {
			align := "C"
			if i < 2 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 7, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// registerFonts подключает UTF-8 шрифты с кириллицей
func (s *ReportService) registerFonts(pdf *gofpdf.Fpdf) error {
	fonts := []struct{ style, file string }{
		{"", "DejaVuSans.ttf"},
		{"B", "DejaVuSans-Bold.ttf"},
	}
	for _, f := range fonts {
		raw, err := s.fontBytes(f.file)
		if err != nil {
			return err
		}
		pdf.AddUTF8FontFromBytes(fontFamily, f.style, raw)
	}
	return pdf.Error()
}

func (s *ReportService) fontBytes(name string) ([]byte, error) {
	if s.fontDir == "" {
		return embeddedFonts.ReadFile("fonts/" + name)
	}
	raw, err := os.ReadFile(filepath.Join(s.fontDir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	return raw, nil
}
