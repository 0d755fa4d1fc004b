package service

import (
	"fmt"
	"math"

	"github.com/lshigami/quizhub/internal/chart"
	"github.com/lshigami/quizhub/internal/model"
	"github.com/lshigami/quizhub/internal/repository"
	"github.com/rs/zerolog/log"
)

// Chart file names under the static directory.
const (
	SubjectScoresChart   = "subject_scores_bar.png"
	SubjectAttemptsChart = "subject_attempts_pie.png"
	UserPerformanceChart = "user_performance.png"
)

// SubjectStat is the aggregate of all scores mapping to one subject.
type SubjectStat struct {
	SubjectID     uint
	Name          string
	TotalScored   int
	Attempts      int
	TotalPossible int
	Percentage    float64
}

// AggregateSubjects folds attempt rows into one stat per subject, in the
// order of subjects. Rows for subjects not listed are ignored.
func AggregateSubjects(subjects []model.Subject, rows []repository.SubjectAttempt) []SubjectStat {
	stats := make([]SubjectStat, len(subjects))
	index := make(map[uint]int, len(subjects))
	for i, subj := range subjects {
		stats[i] = SubjectStat{SubjectID: subj.ID, Name: subj.Name}
		index[subj.ID] = i
	}
	for _, row := range rows {
		i, ok := index[row.SubjectID]
		if !ok {
			continue
		}
		stats[i].TotalScored += row.TotalScored
		stats[i].TotalPossible += row.QuestionCount
		stats[i].Attempts++
	}
	for i := range stats {
		if stats[i].TotalPossible > 0 {
			// Scores keep their totals when questions are later removed.
			stats[i].Percentage = math.Min(100, 100*float64(stats[i].TotalScored)/float64(stats[i].TotalPossible))
		}
	}
	return stats
}

// Attempted keeps only the subjects with at least one attempt.
func Attempted(stats []SubjectStat) []SubjectStat {
	out := make([]SubjectStat, 0, len(stats))
	for _, st := range stats {
		if st.Attempts > 0 {
			out = append(out, st)
		}
	}
	return out
}

// AdminCharts holds the chart file names; empty means not rendered.
type AdminCharts struct {
	BarChart string
	PieChart string
}

type ReportService interface {
	SubjectTotals(subjects []model.Subject, userID *uint) ([]SubjectStat, error)
	RenderAdminCharts(subjects []model.Subject) (AdminCharts, error)
	RenderUserChart(userID uint) (string, []SubjectStat, error)
}

type reportService struct {
	subjectRepo repository.SubjectRepository
	scoreRepo   repository.ScoreRepository
	renderer    chart.Renderer
}

func NewReportService(subjectRepo repository.SubjectRepository, scoreRepo repository.ScoreRepository, renderer chart.Renderer) ReportService {
	return &reportService{subjectRepo: subjectRepo, scoreRepo: scoreRepo, renderer: renderer}
}

func (s *reportService) SubjectTotals(subjects []model.Subject, userID *uint) ([]SubjectStat, error) {
	rows, err := s.scoreRepo.FindSubjectAttempts(userID)
	if err != nil {
		return nil, fmt.Errorf("loading subject attempts: %w", err)
	}
	return AggregateSubjects(subjects, rows), nil
}

// RenderAdminCharts draws the subject totals bar chart whenever subjects are
// listed and the attempts pie chart only when some attempt exists.
func (s *reportService) RenderAdminCharts(subjects []model.Subject) (AdminCharts, error) {
	var charts AdminCharts
	stats, err := s.SubjectTotals(subjects, nil)
	if err != nil {
		return charts, err
	}
	if len(stats) == 0 {
		return charts, nil
	}

	labels := make([]string, len(stats))
	totals := make([]float64, len(stats))
	attempts := make([]float64, len(stats))
	anyAttempt := false
	for i, st := range stats {
		labels[i] = st.Name
		totals[i] = float64(st.TotalScored)
		attempts[i] = float64(st.Attempts)
		anyAttempt = anyAttempt || st.Attempts > 0
	}

	charts.BarChart, err = s.renderer.Bar(SubjectScoresChart, chart.BarChart{
		Title:  "Subject-wise Top Scores",
		YLabel: "Total Scores",
		Labels: labels,
		Values: totals,
	})
	if err != nil {
		return AdminCharts{}, err
	}
	if anyAttempt {
		charts.PieChart, err = s.renderer.Pie(SubjectAttemptsChart, chart.PieChart{
			Title:  "Subject-wise User Attempts",
			Labels: labels,
			Values: attempts,
		})
		if err != nil {
			return AdminCharts{}, err
		}
	}
	return charts, nil
}

// RenderUserChart draws the user's percentage per attempted subject. No file
// is produced when the user has no attempts.
func (s *reportService) RenderUserChart(userID uint) (string, []SubjectStat, error) {
	subjects, err := s.subjectRepo.FindAll()
	if err != nil {
		return "", nil, fmt.Errorf("listing subjects: %w", err)
	}
	stats, err := s.SubjectTotals(subjects, &userID)
	if err != nil {
		return "", nil, err
	}
	performance := Attempted(stats)
	if len(performance) == 0 {
		return "", performance, nil
	}

	labels := make([]string, len(performance))
	values := make([]float64, len(performance))
	for i, st := range performance {
		labels[i] = st.Name
		values[i] = st.Percentage
	}
	name, err := s.renderer.Bar(UserPerformanceChart, chart.BarChart{
		Title:  "Your Performance by Subject",
		YLabel: "Average Score (%)",
		Labels: labels,
		Values: values,
		YMax:   100,
	})
	if err != nil {
		log.Warn().Err(err).Uint("userID", userID).Msg("Failed to render performance chart")
		return "", performance, err
	}
	return name, performance, nil
}
