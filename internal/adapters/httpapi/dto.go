package httpapi

import (
	"github.com/example/assess/internal/core/questionnaire"
	"github.com/example/assess/internal/ports/secondary"
)

type optionDTO struct {
	ID    string `json:"id"`
	Index int    `json:"index"`
	Title string `json:"title"`
}

type confidenceLevelDTO struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type answerDTO struct {
	SelectedOption  *optionDTO          `json:"selected_option"`
	ConfidenceLevel *confidenceLevelDTO `json:"confidence_level"`
	IsNotApplicable *bool               `json:"is_not_applicable"`
	Approved        *bool               `json:"approved"`
}

type countsDTO struct {
	AnswerHistories int `json:"answer_histories"`
	Evidences       int `json:"evidences"`
	Comments        int `json:"comments"`
}

type issuesDTO struct {
	IsUnanswered                bool `json:"is_unanswered"`
	IsAnsweredWithLowConfidence bool `json:"is_answered_with_low_confidence"`
	IsAnsweredWithoutEvidences  bool `json:"is_answered_without_evidences"`
	UnresolvedCommentsCount     int  `json:"unresolved_comments_count"`
	HasUnapprovedAnswer         bool `json:"has_unapproved_answer"`
}

type questionDTO struct {
	ID                 string      `json:"id"`
	Index              int         `json:"index"`
	Title              string      `json:"title"`
	Hint               string      `json:"hint"`
	MayNotBeApplicable bool        `json:"may_not_be_applicable"`
	Options            []optionDTO `json:"options"`
	Answer             *answerDTO  `json:"answer"`
	Counts             *countsDTO  `json:"counts"`
	Issues             *issuesDTO  `json:"issues"`
}

type questionPageDTO struct {
	Items []questionDTO `json:"items"`
	Page  int           `json:"page"`
	Size  int           `json:"size"`
	Total int           `json:"total"`
}

type submitAnswerBody struct {
	QuestionnaireID   string  `json:"questionnaire_id"`
	QuestionID        string  `json:"question_id"`
	AnswerOptionID    *string `json:"answer_option_id"`
	IsNotApplicable   bool    `json:"is_not_applicable"`
	ConfidenceLevelID *int    `json:"confidence_level_id"`
}

type submittedQuestionDTO struct {
	Answer *answerDTO `json:"answer"`
	Counts *countsDTO `json:"counts"`
}

// submitAnswerResponse accepts the confirmed question wrapped in "question"
// or "result", or as the bare body.
type submitAnswerResponse struct {
	Question *submittedQuestionDTO `json:"question"`
	Result   *submittedQuestionDTO `json:"result"`
	submittedQuestionDTO
}

func (r submitAnswerResponse) confirmed() submittedQuestionDTO {
	switch {
	case r.Question != nil:
		return *r.Question
	case r.Result != nil:
		return *r.Result
	default:
		return r.submittedQuestionDTO
	}
}

type approveAnswerBody struct {
	QuestionID string `json:"question_id"`
}

type nextQuestionnaireDTO struct {
	Status string `json:"status"`
	ID     string `json:"id"`
	Index  int    `json:"index"`
}

type titleDTO struct {
	Title string `json:"title"`
}

type pathInfoDTO struct {
	Space         *titleDTO `json:"space"`
	Assessment    *titleDTO `json:"assessment"`
	Questionnaire *titleDTO `json:"questionnaire"`
}

type confidenceLevelsDTO struct {
	ConfidenceLevels []confidenceLevelDTO `json:"confidence_levels"`
}

func (o *optionDTO) toDomain() *questionnaire.Option {
	if o == nil {
		return nil
	}
	return &questionnaire.Option{ID: o.ID, Index: o.Index, Title: o.Title}
}

func (l *confidenceLevelDTO) toDomain() *questionnaire.ConfidenceLevel {
	if l == nil {
		return nil
	}
	return &questionnaire.ConfidenceLevel{ID: l.ID, Title: l.Title}
}

func (c *countsDTO) toDomain() *questionnaire.Counts {
	if c == nil {
		return nil
	}
	return &questionnaire.Counts{AnswerHistories: c.AnswerHistories, Evidences: c.Evidences, Comments: c.Comments}
}

func (i *issuesDTO) toDomain() questionnaire.Issues {
	if i == nil {
		return questionnaire.Issues{}
	}
	return questionnaire.Issues{
		IsUnanswered:                i.IsUnanswered,
		IsAnsweredWithLowConfidence: i.IsAnsweredWithLowConfidence,
		IsAnsweredWithoutEvidences:  i.IsAnsweredWithoutEvidences,
		UnresolvedCommentsCount:     i.UnresolvedCommentsCount,
		HasUnapprovedAnswer:         i.HasUnapprovedAnswer,
	}
}

func (a *answerDTO) toConfirmed() *questionnaire.ConfirmedAnswer {
	if a == nil {
		return nil
	}
	return &questionnaire.ConfirmedAnswer{
		SelectedOption:  a.SelectedOption.toDomain(),
		ConfidenceLevel: a.ConfidenceLevel.toDomain(),
		IsNotApplicable: a.IsNotApplicable,
		Approved:        a.Approved,
	}
}

// toAnswer converts a stored answer. An answer with nothing set is nil.
func (a *answerDTO) toAnswer() *questionnaire.Answer {
	if a == nil {
		return nil
	}
	out := &questionnaire.Answer{
		SelectedOption:  a.SelectedOption.toDomain(),
		ConfidenceLevel: a.ConfidenceLevel.toDomain(),
	}
	if a.IsNotApplicable != nil {
		out.IsNotApplicable = *a.IsNotApplicable
	}
	if a.Approved != nil {
		out.Approved = *a.Approved
	}
	if out.SelectedOption == nil && out.ConfidenceLevel == nil && !out.IsNotApplicable {
		return nil
	}
	return out
}

func (q questionDTO) toDomain() questionnaire.Question {
	out := questionnaire.Question{
		ID:                 q.ID,
		Index:              q.Index,
		Title:              q.Title,
		Hint:               q.Hint,
		MayNotBeApplicable: q.MayNotBeApplicable,
		Answer:             q.Answer.toAnswer(),
		Issues:             q.Issues.toDomain(),
	}
	if len(q.Options) > 0 {
		out.Options = make([]questionnaire.Option, len(q.Options))
		for i, o := range q.Options {
			out.Options[i] = *o.toDomain()
		}
	}
	if c := q.Counts.toDomain(); c != nil {
		out.Counts = *c
	}
	return out
}

func (n nextQuestionnaireDTO) toDomain() *secondary.NextQuestionnaire {
	status := n.Status
	if status == "" {
		status = secondary.NextNotFound
	}
	return &secondary.NextQuestionnaire{Status: status, ID: n.ID, QuestionIndex: n.Index}
}

func (p pathInfoDTO) toDomain() *secondary.PathInfo {
	title := func(t *titleDTO) string {
		if t == nil {
			return ""
		}
		return t.Title
	}
	return &secondary.PathInfo{
		SpaceTitle:         title(p.Space),
		AssessmentTitle:    title(p.Assessment),
		QuestionnaireTitle: title(p.Questionnaire),
	}
}
