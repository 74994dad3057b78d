package domain

// Summary is the full report document saved as JSON and rendered to Markdown.
// Percentage fields are preformatted strings ("82.5%") to match the report
// file format; the numeric values live in Metrics.

type SprintInfo struct {
    Name      string `json:"name"`
    ID        int64  `json:"id"`
    State     string `json:"state"`
    StartDate string `json:"startDate"`
    EndDate   string `json:"endDate"`
    Goal      string `json:"goal"`
}

type ProjectInfo struct {
    Key  string `json:"key"`
    Name string `json:"name"`
}

type TeamInfo struct {
    Label string `json:"label"`
}

type HealthMetrics struct {
    OverallHealth        HealthStatus `json:"overallHealth"`
    TotalIssues          int          `json:"totalIssues"`
    CompletedIssues      int          `json:"completedIssues"`
    InProgressIssues     int          `json:"inProgressIssues"`
    TodoIssues           int          `json:"todoIssues"`
    BlockedIssues        int          `json:"blockedIssues"`
    CompletionRate       string       `json:"completionRate"`
    Velocity             int          `json:"velocity"`
    TotalStoryPoints     float64      `json:"totalStoryPoints"`
    CompletedStoryPoints float64      `json:"completedStoryPoints"`
    VelocityPercentage   string       `json:"velocityPercentage"`
    SprintDurationDays   int          `json:"sprintDurationDays"`
}

type WorkBreakdown struct {
    IssuesByType     *Frequency `json:"issuesByType"`
    IssuesByPriority *Frequency `json:"issuesByPriority"`
    CompletedWork    int        `json:"completedWork"`
    InProgressWork   int        `json:"inProgressWork"`
}

type TeamComposition struct {
    TotalMembers int             `json:"totalMembers"`
    Members      []MemberContact `json:"members"`
}

type MemberContact struct {
    DisplayName string `json:"displayName"`
    Email       string `json:"email"`
}

type SprintStatus struct {
    Status            string `json:"status"`
    CompletionSummary string `json:"completionSummary"`
    VelocitySummary   string `json:"velocitySummary"`
}

type Summary struct {
    SprintInfo           SprintInfo           `json:"sprintInfo"`
    ProjectInfo          ProjectInfo          `json:"projectInfo"`
    TeamInfo             TeamInfo             `json:"teamInfo"`
    SprintHealthMetrics  HealthMetrics        `json:"sprintHealthMetrics"`
    SprintHealthAnalysis HealthAnalysis       `json:"sprintHealthAnalysis"`
    WhatTheTeamWorkedOn  WorkBreakdown        `json:"whatTheTeamWorkedOn"`
    CurrentBlockers      []Blocker            `json:"currentBlockers"`
    KeyAccomplishments   []Accomplishment     `json:"keyAccomplishments"`
    NextSprintPriorities []NextSprintPriority `json:"nextSprintPriorities"`
    TeamComposition      TeamComposition      `json:"teamComposition"`
    SprintStatus         SprintStatus         `json:"sprintStatus"`
    Recommendations      []Recommendation     `json:"recommendations"`
    GeneratedAt          string               `json:"generatedAt"`
}

type CombinedMetrics struct {
    TotalIssues          int     `json:"totalIssues"`
    CompletedIssues      int     `json:"completedIssues"`
    InProgressIssues     int     `json:"inProgressIssues"`
    TodoIssues           int     `json:"todoIssues"`
    BlockedIssues        int     `json:"blockedIssues"`
    TotalStoryPoints     float64 `json:"totalStoryPoints"`
    CompletedStoryPoints float64 `json:"completedStoryPoints"`
    TotalTeamMembers     int     `json:"totalTeamMembers"`
    CompletionRate       string  `json:"completionRate"`
    VelocityPercentage   string  `json:"velocityPercentage"`
    Velocity             float64 `json:"velocity"`
}

type TeamDigest struct {
    Team           string       `json:"team"`
    Project        string       `json:"project"`
    Health         HealthStatus `json:"health"`
    CompletionRate string       `json:"completionRate"`
    Velocity       int          `json:"velocity"`
}

type CombinedSummary struct {
    Title              string           `json:"title"`
    Projects           []ProjectInfo    `json:"projects"`
    Teams              []string         `json:"teams"`
    SprintHealthMetrics CombinedMetrics `json:"sprintHealthMetrics"`
    CurrentBlockers    []Blocker        `json:"currentBlockers"`
    KeyAccomplishments []Accomplishment `json:"keyAccomplishments"`
    TeamSummaries      []TeamDigest     `json:"teamSummaries"`
    GeneratedAt        string           `json:"generatedAt"`
}

// SlideContent is the 2x2 narrative grid for one team's deck slide.
type SlideSection struct {
    Title   string   `json:"title"`
    Bullets []string `json:"bullets"`
}

type SlideContent struct {
    HealthSummary   SlideSection `json:"healthSummary"`
    Accomplishments SlideSection `json:"accomplishments"`
    Blockers        SlideSection `json:"blockers"`
    Recommendations SlideSection `json:"recommendations"`
}

// DeckSlide pairs one team's slide grid with its identifying header.
type DeckSlide struct {
    Team    string       `json:"team"`
    Project string       `json:"project"`
    Sprint  string       `json:"sprint"`
    Content SlideContent `json:"content"`
}

type Deck struct {
    Title       string      `json:"title"`
    Slides      []DeckSlide `json:"slides"`
    GeneratedAt string      `json:"generatedAt"`
}
