/* Copyright (c) 2025 Sprint Summary Agent contributors
 * SPDX-License-Identifier: BSD-3-Clause */

// Package analysis is the sprint metrics and health engine: it classifies raw
// Jira issues into status buckets, folds them into a metrics snapshot,
// applies the health rules, and projects the accomplishment/blocker lists.
// Everything here is a pure function over one sprint's issue batch.
package analysis

import (
    "strings"

    "github.com/derekschatz/Sprint-Summary-Agent/internal/domain"
)

type Bucket int

const (
    BucketCompleted Bucket = iota
    BucketInProgress
    BucketTodo
)

// Classification is the per-issue view the aggregator folds over. Points here
// are resolved with the aggregator slot order; the accomplishment extractor
// reads the opposite order via ReportPoints.
type Classification struct {
    Bucket   Bucket
    Blocked  bool
    Points   float64
    Type     string
    Priority string
    Assignee string
}

// pointsChain resolves a story-point value by trying field slots in a fixed
// order; the first non-nil, non-zero slot wins.
type pointsChain []func(f domain.IssueFields) *float64

func (c pointsChain) resolve(f domain.IssueFields) float64 {
    for _, slot := range c {
        if v := slot(f); v != nil && *v != 0 {
            return *v
        }
    }
    return 0
}

func legacySlot(f domain.IssueFields) *float64  { return f.PointsLegacy }
func defaultSlot(f domain.IssueFields) *float64 { return f.PointsDefault }

// The two chains check the slots in opposite orders. This asymmetry is
// load-bearing: the metrics totals and the accomplishment list have always
// read the fields this way, and unifying the order would silently change
// reported numbers on instances that populate both slots.
var (
    aggregatorPoints = pointsChain{legacySlot, defaultSlot}
    reportPoints     = pointsChain{defaultSlot, legacySlot}
)

// ReportPoints resolves story points with the accomplishment-extractor slot
// order (customfield_10016 before customfield_20826).
func ReportPoints(f domain.IssueFields) float64 { return reportPoints.resolve(f) }

// Classify maps one raw issue to its status bucket and extracted fields.
// Absent fields degrade to defaults; there are no error conditions.
func Classify(is domain.Issue) Classification {
    f := is.Fields
    c := Classification{
        Points:   aggregatorPoints.resolve(f),
        Type:     issueTypeName(f),
        Priority: PriorityName(f),
        Assignee: AssigneeName(f),
    }

    switch strings.ToLower(f.Status.StatusCategory.Name) {
    case "done":
        c.Bucket = BucketCompleted
    case "in progress", "indeterminate":
        c.Bucket = BucketInProgress
    default:
        c.Bucket = BucketTodo
    }

    statusName := strings.ToLower(f.Status.Name)
    for _, l := range f.Labels {
        if l == "blocked" {
            c.Blocked = true
        }
    }
    if strings.Contains(statusName, "block") {
        c.Blocked = true
    }
    return c
}

func issueTypeName(f domain.IssueFields) string {
    if f.IssueType.Name == "" {
        return "Unknown"
    }
    return f.IssueType.Name
}

// PriorityName returns the issue priority, or "None" when Jira omits it.
func PriorityName(f domain.IssueFields) string {
    if f.Priority == nil || f.Priority.Name == "" {
        return "None"
    }
    return f.Priority.Name
}

// AssigneeName returns the assignee display name, or "Unassigned".
func AssigneeName(f domain.IssueFields) string {
    if f.Assignee == nil || f.Assignee.DisplayName == "" {
        return "Unassigned"
    }
    return f.Assignee.DisplayName
}
