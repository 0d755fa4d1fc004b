package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizhub/internal/dto"
	"github.com/lshigami/quizhub/internal/service"
	"github.com/rs/zerolog/log"
)

const adminDashboardPath = "/admin/dashboard"

type AdminController struct {
	catalogService service.CatalogService
	searchService  service.SearchService
	reportService  service.ReportService
}

func NewAdminController(
	catalogService service.CatalogService,
	searchService service.SearchService,
	reportService service.ReportService,
) *AdminController {
	return &AdminController{
		catalogService: catalogService,
		searchService:  searchService,
		reportService:  reportService,
	}
}

func (c *AdminController) Dashboard(ctx *gin.Context) {
	c.renderDashboard(ctx, "", service.SearchAll)
}

func (c *AdminController) Search(ctx *gin.Context) {
	var q dto.SearchQuery
	_ = ctx.ShouldBindQuery(&q)
	c.renderDashboard(ctx, q.Query, q.Type)
}

// renderDashboard degrades to empty lists and no charts when loading or
// charting fails.
func (c *AdminController) renderDashboard(ctx *gin.Context, query, scope string) {
	data := gin.H{
		"SearchQuery": query,
		"Subjects":    nil,
		"Chapters":    nil,
		"Quizzes":     nil,
		"Users":       nil,
	}

	lists, err := c.searchService.Search(query, scope)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("Admin dashboard: failed to load lists")
		render(ctx, http.StatusOK, "admin_dashboard.html", "Admin Dashboard", data)
		return
	}
	charts, err := c.reportService.RenderAdminCharts(lists.Subjects)
	if err != nil {
		log.Error().Err(err).Msg("Admin dashboard: failed to render charts")
		render(ctx, http.StatusOK, "admin_dashboard.html", "Admin Dashboard", data)
		return
	}

	data["Subjects"] = lists.Subjects
	data["Chapters"] = lists.Chapters
	data["Quizzes"] = lists.Quizzes
	data["Users"] = lists.Users
	data["BarChart"] = staticURL(charts.BarChart)
	data["PieChart"] = staticURL(charts.PieChart)
	render(ctx, http.StatusOK, "admin_dashboard.html", "Admin Dashboard", data)
}

// --- Subjects ---

func (c *AdminController) AddSubject(ctx *gin.Context) {
	var form dto.SubjectForm
	if err := ctx.ShouldBind(&form); err != nil {
		badForm(ctx, err)
		return
	}
	if _, err := c.catalogService.CreateSubject(form); err != nil {
		fail(ctx, err, "Subject")
		return
	}
	redirect(ctx, adminDashboardPath)
}

func (c *AdminController) EditSubject(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var form dto.SubjectForm
	if err := ctx.ShouldBind(&form); err != nil {
		badForm(ctx, err)
		return
	}
	if _, err := c.catalogService.UpdateSubject(id, form); err != nil {
		fail(ctx, err, "Subject")
		return
	}
	redirect(ctx, adminDashboardPath)
}

func (c *AdminController) DeleteSubject(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.catalogService.DeleteSubject(id); err != nil {
		fail(ctx, err, "Subject")
		return
	}
	redirect(ctx, adminDashboardPath)
}

// --- Chapters ---

func (c *AdminController) AddChapter(ctx *gin.Context) {
	var form dto.ChapterCreateForm
	if err := ctx.ShouldBind(&form); err != nil {
		badForm(ctx, err)
		return
	}
	if _, err := c.catalogService.CreateChapter(form); err != nil {
		fail(ctx, err, "Subject")
		return
	}
	redirect(ctx, adminDashboardPath)
}

func (c *AdminController) EditChapter(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var form dto.ChapterForm
	if err := ctx.ShouldBind(&form); err != nil {
		badForm(ctx, err)
		return
	}
	if _, err := c.catalogService.UpdateChapter(id, form); err != nil {
		fail(ctx, err, "Chapter")
		return
	}
	redirect(ctx, adminDashboardPath)
}

func (c *AdminController) DeleteChapter(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.catalogService.DeleteChapter(id); err != nil {
		fail(ctx, err, "Chapter")
		return
	}
	redirect(ctx, adminDashboardPath)
}

// --- Quizzes ---

func (c *AdminController) AddQuiz(ctx *gin.Context) {
	var form dto.QuizCreateForm
	if err := ctx.ShouldBind(&form); err != nil {
		badForm(ctx, err)
		return
	}
	if _, err := c.catalogService.CreateQuiz(form); err != nil {
		fail(ctx, err, "Chapter")
		return
	}
	redirect(ctx, adminDashboardPath)
}

func (c *AdminController) EditQuiz(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var form dto.QuizForm
	if err := ctx.ShouldBind(&form); err != nil {
		badForm(ctx, err)
		return
	}
	if _, err := c.catalogService.UpdateQuiz(id, form); err != nil {
		fail(ctx, err, "Quiz")
		return
	}
	redirect(ctx, adminDashboardPath)
}

func (c *AdminController) DeleteQuiz(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.catalogService.DeleteQuiz(id); err != nil {
		fail(ctx, err, "Quiz")
		return
	}
	redirect(ctx, adminDashboardPath)
}

// --- Questions ---

func (c *AdminController) AddQuestion(ctx *gin.Context) {
	var form dto.QuestionCreateForm
	if err := ctx.ShouldBind(&form); err != nil {
		badForm(ctx, err)
		return
	}
	if _, err := c.catalogService.CreateQuestion(form); err != nil {
		fail(ctx, err, "Quiz")
		return
	}
	redirect(ctx, adminDashboardPath)
}

func (c *AdminController) EditQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var form dto.QuestionForm
	if err := ctx.ShouldBind(&form); err != nil {
		badForm(ctx, err)
		return
	}
	if _, err := c.catalogService.UpdateQuestion(id, form); err != nil {
		fail(ctx, err, "Question")
		return
	}
	redirect(ctx, adminDashboardPath)
}

func (c *AdminController) DeleteQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.catalogService.DeleteQuestion(id); err != nil {
		fail(ctx, err, "Question")
		return
	}
	redirect(ctx, adminDashboardPath)
}

// staticURL turns a chart file name into a cache-busted URL.
func staticURL(name string) string {
	if name == "" {
		return ""
	}
	return fmt.Sprintf("/static/%s?v=%d", name, time.Now().UnixNano())
}
