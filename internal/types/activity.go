package types

// ActivityCategory groups activity log entries for the feed
type ActivityCategory string

const (
	ActivityCategoryCreated       ActivityCategory = "created"
	ActivityCategoryStatusChanged ActivityCategory = "status_changed"
	ActivityCategorySafety        ActivityCategory = "safety"
	ActivityCategoryQuality       ActivityCategory = "quality"
	ActivityCategoryMembership    ActivityCategory = "membership"
	ActivityCategoryModule        ActivityCategory = "module"
	ActivityCategorySubscription  ActivityCategory = "subscription"
	ActivityCategoryEstimating    ActivityCategory = "estimating"
)

// ActivitySeverity marks entries that need operator or manager attention
type ActivitySeverity string

const (
	ActivitySeverityInfo     ActivitySeverity = "info"
	ActivitySeverityElevated ActivitySeverity = "elevated"
)

// EntityType names the tracked entity an activity or transition refers to
type EntityType string

const (
	EntityTypeOrganization   EntityType = "organization"
	EntityTypeMembership     EntityType = "membership"
	EntityTypeModule         EntityType = "module"
	EntityTypeUser           EntityType = "user"
	EntityTypeProject        EntityType = "project"
	EntityTypeEstimate       EntityType = "estimate"
	EntityTypeSection        EntityType = "estimate_section"
	EntityTypeLineItem       EntityType = "estimate_line_item"
	EntityTypeProposal       EntityType = "proposal"
	EntityTypeRFI            EntityType = "rfi"
	EntityTypeSubmittal      EntityType = "submittal"
	EntityTypeDocument       EntityType = "document"
	EntityTypeDailyLog       EntityType = "daily_log"
	EntityTypeSafetyIncident EntityType = "safety_incident"
	EntityTypeDeficiency     EntityType = "deficiency"
	EntityTypeServiceTicket  EntityType = "service_ticket"
	EntityTypeWarrantyClaim  EntityType = "warranty_claim"
	EntityTypePayrollRun     EntityType = "payroll_run"
	EntityTypeClientApproval EntityType = "client_approval"
	EntityTypeActivity       EntityType = "activity"
)

func (e EntityType) String() string {
	return string(e)
}

// ActivityFilter narrows the activity feed
type ActivityFilter struct {
	*QueryFilter
	EntityType EntityType       `json:"entity_type,omitempty" form:"entity_type"`
	EntityID   string           `json:"entity_id,omitempty" form:"entity_id"`
	Category   ActivityCategory `json:"category,omitempty" form:"category"`
	Severity   ActivitySeverity `json:"severity,omitempty" form:"severity"`
}

func NewActivityFilter() *ActivityFilter {
	return &ActivityFilter{QueryFilter: NewDefaultQueryFilter()}
}
