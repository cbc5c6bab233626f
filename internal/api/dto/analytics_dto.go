package dto

// RecordResultDTO 记录结果,自访问会被抑制
type RecordResultDTO struct {
	Recorded bool `json:"recorded"`
}

// DailyPointDTO 单日计数点
type DailyPointDTO struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// BreakdownItemDTO 按项目拆分的计数
type BreakdownItemDTO struct {
	ProjectID uint64 `json:"project_id"`
	Title     string `json:"title"`
	Count     int64  `json:"count"`
}

// StatsDTO 统计看板返回
type StatsDTO struct {
	Period            string              `json:"period"` // week | month | year | all
	From              string              `json:"from"`
	To                string              `json:"to"`
	TotalCount        int64               `json:"total_count"`
	UniqueViewerCount int64               `json:"unique_viewer_count"`
	DailySeries       []*DailyPointDTO    `json:"daily_series"`
	Breakdown         []*BreakdownItemDTO `json:"breakdown,omitempty"`
}

// TotalsDTO 累计总数
type TotalsDTO struct {
	SubjectID uint64 `json:"subject_id"`
	Total     int64  `json:"total"`
}

// SeedResultDTO 示例数据生成结果
type SeedResultDTO struct {
	Days           int   `json:"days"`
	VisitsCreated  int64 `json:"visits_created"`
	ViewsCreated   int64 `json:"views_created"`
	ProjectsSeeded int   `json:"projects_seeded"`
}
