package handler

import (
	"embed"
	"html/template"

	"github.com/gofiber/fiber/v2"
	"github.com/scooter-map/internal/domain"
	"github.com/scooter-map/internal/usecase"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

// DashboardPageData - данные для шаблона дашборда
type DashboardPageData struct {
	Title      string
	Tabs       []DashboardTab
	RunID      string
	Window     string
	Ready      bool
	Providers  []domain.ProviderSummary
	Excluded   []string
	Total      int
	PlotlyURL  string
	APIBaseURL string
}

// DashboardTab - вкладка со своей картой
type DashboardTab struct {
	ID     string
	Label  string
	Active bool
}

// DashboardHandler рендерит страницу с тремя вкладками; карты подгружаются из /api/v1/layers/:layer/figure
type DashboardHandler struct {
	dashboardUC *usecase.DashboardUseCase
	templates   *template.Template
	logger      *zap.Logger
}

// NewDashboardHandler создает новый экземпляр DashboardHandler
func NewDashboardHandler(dashboardUC *usecase.DashboardUseCase, logger *zap.Logger) (*DashboardHandler, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &DashboardHandler{
		dashboardUC: dashboardUC,
		templates:   tmpl,
		logger:      logger,
	}, nil
}

// DefaultTabs - вкладки в порядке слоев, первая активна
func DefaultTabs() []DashboardTab {
	layers := domain.AllLayers()
	tabs := make([]DashboardTab, len(layers))
	for i, kind := range layers {
		tabs[i] = DashboardTab{ID: string(kind), Label: kind.Label(), Active: i == 0}
	}
	return tabs
}

// Render - страница дашборда
func (h *DashboardHandler) Render(c *fiber.Ctx) error {
	data := DashboardPageData{
		Title:      "Scooter availability",
		Tabs:       DefaultTabs(),
		PlotlyURL:  "https://cdn.plot.ly/plotly-2.35.2.min.js",
		APIBaseURL: "/api/v1",
	}

	if latest := h.dashboardUC.Latest(); latest != nil {
		data.Ready = true
		data.RunID = latest.RunID
		data.Window = latest.Window.Format("2006-01-02 15:04 UTC")
		data.Providers = latest.Providers
		data.Excluded = latest.Excluded
		data.Total = latest.Inventory.Total
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	if err := h.templates.ExecuteTemplate(c.Response().BodyWriter(), "dashboard.html", data); err != nil {
		h.logger.Error("Failed to render dashboard", zap.Error(err))
		return err
	}
	return nil
}
