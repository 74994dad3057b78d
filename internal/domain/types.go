package domain

// Jira wire shapes (REST API v3 / Agile 1.0). Optional fields are pointers so
// a missing object is distinguishable from an empty one; defaults are applied
// at the classifier boundary, never here.

type StatusCategory struct {
    Name string `json:"name"`
}

type Status struct {
    Name           string         `json:"name"`
    StatusCategory StatusCategory `json:"statusCategory"`
}

type IssueType struct {
    Name string `json:"name"`
}

type Priority struct {
    Name string `json:"name"`
}

type User struct {
    AccountID    string            `json:"accountId"`
    DisplayName  string            `json:"displayName"`
    EmailAddress string            `json:"emailAddress"`
    AvatarURLs   map[string]string `json:"avatarUrls"`
}

// IssueFields carries the two story-point slots Jira instances are known to
// use. PointsLegacy is customfield_20826, PointsDefault is customfield_10016;
// which slot wins depends on the call site (see the analysis package).
type IssueFields struct {
    Summary       string    `json:"summary"`
    Status        Status    `json:"status"`
    IssueType     IssueType `json:"issuetype"`
    Priority      *Priority `json:"priority"`
    Assignee      *User     `json:"assignee"`
    Labels        []string  `json:"labels"`
    PointsLegacy  *float64  `json:"customfield_20826"`
    PointsDefault *float64  `json:"customfield_10016"`
}

type Issue struct {
    ID     string      `json:"id"`
    Key    string      `json:"key"`
    Fields IssueFields `json:"fields"`
}

type Sprint struct {
    ID        int64  `json:"id"`
    Name      string `json:"name"`
    State     string `json:"state"`
    StartDate string `json:"startDate"`
    EndDate   string `json:"endDate"`
    Goal      string `json:"goal"`
}

type BoardLocation struct {
    ProjectKey string `json:"projectKey"`
}

type Board struct {
    ID       int64         `json:"id"`
    Name     string        `json:"name"`
    Location BoardLocation `json:"location"`

    // ProjectKey is stamped by the collector when boards are gathered across
    // projects; Jira itself reports it under location.
    ProjectKey string `json:"-"`
}

type Project struct {
    Key  string `json:"key"`
    Name string `json:"name"`
}

type TeamMember struct {
    AccountID    string `json:"accountId"`
    DisplayName  string `json:"displayName"`
    EmailAddress string `json:"emailAddress"`
    AvatarURL    string `json:"avatarUrl"`
}

// SprintData is one sprint's full input batch as gathered by the collector.
type SprintData struct {
    Sprint      Sprint
    BoardID     int64
    BoardName   string
    Issues      []Issue
    TeamMembers []TeamMember
    Project     Project
    ProjectKey  string
    TeamLabel   string
}
