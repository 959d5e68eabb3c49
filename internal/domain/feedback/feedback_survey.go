package feedback

import (
	"time"

	"gorm.io/datatypes"
)

// Section names of a feedback survey, in validation order.
const (
	SectionTableStructureAndLayout      = "table_structure_and_layout"
	SectionUsabilityAndDataHandling     = "usability_and_data_handling"
	SectionSpeedAndPerformance          = "speed_and_performance"
	SectionDataRelevanceAndSTSSupport   = "data_relevance_and_sts_support"
	SectionSuggestionsAndNeeds          = "suggestions_and_needs"
	SectionOverallSatisfactionAndImpact = "overall_satisfaction_and_impact"
)

var Sections = []string{
	SectionTableStructureAndLayout,
	SectionUsabilityAndDataHandling,
	SectionSpeedAndPerformance,
	SectionDataRelevanceAndSTSSupport,
	SectionSuggestionsAndNeeds,
	SectionOverallSatisfactionAndImpact,
}

const DateLayout = "2006-01-02"

type FeedbackSurvey struct {
	ID              int64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SalesPersonText string         `gorm:"column:sales_person_text;type:text;not null" json:"sales_person_text"`
	Date            datatypes.Date `gorm:"column:date;not null" json:"date"`

	TableStructureAndLayout      datatypes.JSON `gorm:"column:table_structure_and_layout;not null" json:"table_structure_and_layout"`
	UsabilityAndDataHandling     datatypes.JSON `gorm:"column:usability_and_data_handling;not null" json:"usability_and_data_handling"`
	SpeedAndPerformance          datatypes.JSON `gorm:"column:speed_and_performance;not null" json:"speed_and_performance"`
	DataRelevanceAndSTSSupport   datatypes.JSON `gorm:"column:data_relevance_and_sts_support;not null" json:"data_relevance_and_sts_support"`
	SuggestionsAndNeeds          datatypes.JSON `gorm:"column:suggestions_and_needs;not null" json:"suggestions_and_needs"`
	OverallSatisfactionAndImpact datatypes.JSON `gorm:"column:overall_satisfaction_and_impact;not null" json:"overall_satisfaction_and_impact"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (FeedbackSurvey) TableName() string { return "feedback_survey" }

// SetSection assigns serialized JSON to the column backing name. Unknown
// names are ignored.
func (f *FeedbackSurvey) SetSection(name string, raw []byte) {
	v := datatypes.JSON(raw)
	switch name {
	case SectionTableStructureAndLayout:
		f.TableStructureAndLayout = v
	case SectionUsabilityAndDataHandling:
		f.UsabilityAndDataHandling = v
	case SectionSpeedAndPerformance:
		f.SpeedAndPerformance = v
	case SectionDataRelevanceAndSTSSupport:
		f.DataRelevanceAndSTSSupport = v
	case SectionSuggestionsAndNeeds:
		f.SuggestionsAndNeeds = v
	case SectionOverallSatisfactionAndImpact:
		f.OverallSatisfactionAndImpact = v
	}
}
