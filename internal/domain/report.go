package domain

// Derived, immutable snapshots produced by the analysis pipeline. Field names
// and JSON tags follow the report documents written to disk.

// StatusGroups partitions a sprint's issues into the exclusive three-way
// status buckets. Blocked is an orthogonal tag: a blocked issue also lives in
// exactly one of the other three groups.
type StatusGroups struct {
    Completed  []Issue
    InProgress []Issue
    Todo       []Issue
    Blocked    []Issue
}

type Metrics struct {
    TotalIssues          int        `json:"totalIssues"`
    CompletedIssues      int        `json:"completedIssues"`
    InProgressIssues     int        `json:"inProgressIssues"`
    TodoIssues           int        `json:"todoIssues"`
    BlockedIssues        int        `json:"blockedIssues"`
    TotalStoryPoints     float64    `json:"totalStoryPoints"`
    CompletedStoryPoints float64    `json:"completedStoryPoints"`
    // Velocity counts completed issues, not story points.
    Velocity           int        `json:"velocity"`
    VelocityPercentage float64    `json:"velocityPercentage"`
    CompletionRate     float64    `json:"completionRate"`
    DurationDays       int        `json:"durationDays"`
    StartDate          string     `json:"startDate"`
    EndDate            string     `json:"endDate"`
    IssueTypes         *Frequency `json:"issueTypes"`
    Priorities         *Frequency `json:"priorities"`

    StatusGroups StatusGroups `json:"-"`
}

type HealthStatus string

const (
    HealthGood    HealthStatus = "Good"
    HealthFair    HealthStatus = "Fair"
    HealthPoor    HealthStatus = "Poor"
    HealthWarning HealthStatus = "Warning" // indicator-only, never an overall tier
)

type HealthIndicator struct {
    Indicator string       `json:"indicator"`
    Status    HealthStatus `json:"status"`
    Message   string       `json:"message"`
}

type HealthAnalysis struct {
    OverallHealth    HealthStatus      `json:"overallHealth"`
    HealthIndicators []HealthIndicator `json:"healthIndicators"`
}

type Accomplishment struct {
    Key         string  `json:"key"`
    Summary     string  `json:"summary"`
    Type        string  `json:"type"`
    Priority    string  `json:"priority"`
    Assignee    string  `json:"assignee"`
    StoryPoints float64 `json:"storyPoints"`
    Team        string  `json:"team,omitempty"`
    Project     string  `json:"project,omitempty"`
}

type Blocker struct {
    Key      string `json:"key"`
    Summary  string `json:"summary"`
    Type     string `json:"type"`
    Priority string `json:"priority"`
    Assignee string `json:"assignee"`
    Status   string `json:"status"`
    Team     string `json:"team,omitempty"`
    Project  string `json:"project,omitempty"`
}

type Recommendation struct {
    Category       string `json:"category"`
    Priority       string `json:"priority"`
    Recommendation string `json:"recommendation"`
}

type NextSprintPriority struct {
    Priority string `json:"priority"`
    Item     string `json:"item"`
}
