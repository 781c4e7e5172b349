package dto

import (
	"github.com/anbu-gynaecare/webapp/internal/application/usecase/cyclesetup"
	"github.com/anbu-gynaecare/webapp/internal/application/usecase/dashboard"
	"github.com/anbu-gynaecare/webapp/internal/application/usecase/prediction"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
)

// CreateLogRequest represents the request body for a new cycle log.
type CreateLogRequest struct {
	PeriodFlow string   `json:"period_flow" binding:"required,oneof=none light medium heavy"`
	Feeling    string   `json:"feeling" binding:"required,oneof=moody tired irritable stressed energetic"`
	Symptoms   []string `json:"symptoms" binding:"required"`
}

// ToInput converts the request into a LogInput.
func (r CreateLogRequest) ToInput() entity.LogInput {
	return entity.LogInput{
		PeriodFlow: entity.PeriodFlow(r.PeriodFlow),
		Feeling:    entity.Feeling(r.Feeling),
		Symptoms:   r.Symptoms,
	}
}

// PredictionResponse represents the latest prediction with its countdown.
type PredictionResponse struct {
	Prediction    *entity.CyclePrediction `json:"prediction"`
	DaysUntil     int                     `json:"days_until"`
	Active        bool                    `json:"active"`
	FormattedDate string                  `json:"formatted_date,omitempty"`
	Error         string                  `json:"error,omitempty"`
}

// ToPredictionResponse converts a prediction summary to its DTO.
func ToPredictionResponse(s prediction.Summary) PredictionResponse {
	resp := PredictionResponse{
		Prediction: s.Prediction,
		DaysUntil:  s.DaysUntil,
		Active:     s.Active,
		Error:      s.Error,
	}
	if s.Prediction != nil {
		resp.FormattedDate = entity.FormatPredictionDate(s.Prediction.PredictedDate)
	}
	return resp
}

// DraftRequest represents a wizard step being saved.
type DraftRequest struct {
	Step    int                      `json:"step" binding:"min=0"`
	Answers entity.OnboardingAnswers `json:"answers"`
}

// DraftResponse represents the saved wizard progress.
type DraftResponse struct {
	Step    int                      `json:"step"`
	Answers entity.OnboardingAnswers `json:"answers"`
	Errors  map[string]string        `json:"errors"`
	Touched map[string]bool          `json:"touched"`
	Saved   bool                     `json:"saved"`
}

// ToDraftResponse converts a draft view to its DTO.
func ToDraftResponse(v *cyclesetup.DraftView) DraftResponse {
	return DraftResponse{
		Step:    v.Step,
		Answers: v.Form.Values,
		Errors:  v.Form.Errors,
		Touched: v.Form.Touched,
		Saved:   v.Stored,
	}
}

// DashboardResponse represents the dashboard summary.
type DashboardResponse struct {
	UserName        string                  `json:"user_name"`
	Prediction      *entity.CyclePrediction `json:"prediction"`
	DaysUntil       int                     `json:"days_until"`
	FormattedDate   string                  `json:"formatted_date,omitempty"`
	LogCount        int                     `json:"log_count"`
	RestockReminder bool                    `json:"restock_reminder"`
}

// ToDashboardResponse converts the dashboard output to its DTO.
func ToDashboardResponse(out *dashboard.GetSummaryOutput) DashboardResponse {
	return DashboardResponse{
		UserName:        out.UserName,
		Prediction:      out.Prediction,
		DaysUntil:       out.DaysUntil,
		FormattedDate:   out.FormattedDate,
		LogCount:        out.LogCount,
		RestockReminder: out.RestockReminder,
	}
}
