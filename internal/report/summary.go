/* Copyright (c) 2025 Sprint Summary Agent contributors
 * SPDX-License-Identifier: BSD-3-Clause */

// Package report assembles the summary documents and renders them to
// JSON and Markdown files under the output directory.
package report

import (
    "fmt"
    "sort"
    "time"

    "github.com/derekschatz/Sprint-Summary-Agent/internal/domain"
)

const (
    maxCombinedBlockers        = 20
    maxCombinedAccomplishments = 20
)

// now is swapped out in tests.
var now = func() time.Time { return time.Now().UTC() }

// BuildSummary assembles the full report document for one team's sprint.
func BuildSummary(data domain.SprintData, m domain.Metrics, health domain.HealthAnalysis,
    accomplishments []domain.Accomplishment, blockers []domain.Blocker,
    recs []domain.Recommendation) domain.Summary {

    sprint := data.Sprint
    state := sprint.State
    if state == "" { state = "unknown" }
    goal := sprint.Goal
    if goal == "" { goal = "No goal set" }
    teamLabel := data.TeamLabel
    if teamLabel == "" { teamLabel = "All Teams" }

    members := make([]domain.MemberContact, 0, len(data.TeamMembers))
    for _, tm := range data.TeamMembers {
        members = append(members, domain.MemberContact{DisplayName: tm.DisplayName, Email: tm.EmailAddress})
    }

    return domain.Summary{
        SprintInfo: domain.SprintInfo{
            Name:      sprint.Name,
            ID:        sprint.ID,
            State:     state,
            StartDate: sprint.StartDate,
            EndDate:   sprint.EndDate,
            Goal:      goal,
        },
        ProjectInfo: domain.ProjectInfo{Key: data.Project.Key, Name: data.Project.Name},
        TeamInfo:    domain.TeamInfo{Label: teamLabel},
        SprintHealthMetrics: domain.HealthMetrics{
            OverallHealth:        health.OverallHealth,
            TotalIssues:          m.TotalIssues,
            CompletedIssues:      m.CompletedIssues,
            InProgressIssues:     m.InProgressIssues,
            TodoIssues:           m.TodoIssues,
            BlockedIssues:        m.BlockedIssues,
            CompletionRate:       pct(m.CompletionRate),
            Velocity:             m.Velocity,
            TotalStoryPoints:     m.TotalStoryPoints,
            CompletedStoryPoints: m.CompletedStoryPoints,
            VelocityPercentage:   pct(m.VelocityPercentage),
            SprintDurationDays:   m.DurationDays,
        },
        SprintHealthAnalysis: health,
        WhatTheTeamWorkedOn: domain.WorkBreakdown{
            IssuesByType:     m.IssueTypes,
            IssuesByPriority: m.Priorities,
            CompletedWork:    len(accomplishments),
            InProgressWork:   m.InProgressIssues,
        },
        CurrentBlockers:      blockers,
        KeyAccomplishments:   accomplishments,
        NextSprintPriorities: NextSprintPriorities(m, blockers),
        TeamComposition:      domain.TeamComposition{TotalMembers: len(members), Members: members},
        SprintStatus: domain.SprintStatus{
            Status: state,
            CompletionSummary: fmt.Sprintf("%d of %d issues completed (%s)",
                m.CompletedIssues, m.TotalIssues, pct(m.CompletionRate)),
            VelocitySummary: fmt.Sprintf("%s of %s story points completed (%s)",
                trimFloat(m.CompletedStoryPoints), trimFloat(m.TotalStoryPoints), pct(m.VelocityPercentage)),
        },
        Recommendations: recs,
        GeneratedAt:     now().Format(time.RFC3339),
    }
}

// NextSprintPriorities derives the carry-over action list from the
// sprint's leftover work. Order is fixed: carry-over, blockers, backlog
// review, then the two standing ceremonies.
func NextSprintPriorities(m domain.Metrics, blockers []domain.Blocker) []domain.NextSprintPriority {
    var out []domain.NextSprintPriority
    if m.InProgressIssues > 0 {
        out = append(out, domain.NextSprintPriority{
            Priority: "High",
            Item:     fmt.Sprintf("Complete %d in-progress issue(s) from previous sprint", m.InProgressIssues),
        })
    }
    if len(blockers) > 0 {
        out = append(out, domain.NextSprintPriority{
            Priority: "High",
            Item:     fmt.Sprintf("Resolve %d blocked issue(s)", len(blockers)),
        })
    }
    if m.TodoIssues > 0 {
        out = append(out, domain.NextSprintPriority{
            Priority: "Medium",
            Item:     fmt.Sprintf("Review and re-prioritize %d unstarted issue(s)", m.TodoIssues),
        })
    }
    out = append(out,
        domain.NextSprintPriority{Priority: "Medium", Item: "Conduct sprint planning with updated velocity metrics"},
        domain.NextSprintPriority{Priority: "Low", Item: "Schedule retrospective to discuss improvements"},
    )
    return out
}

// BuildCombined rolls individual team summaries into the cross-team
// document. Unlike per-team rates, the combined percentages are computed
// over the pooled totals, and combined velocity is pooled story points.
func BuildCombined(summaries []domain.Summary) *domain.CombinedSummary {
    if len(summaries) == 0 { return nil }

    var cm domain.CombinedMetrics
    var allBlockers []domain.Blocker
    var allAcc []domain.Accomplishment
    projects := make([]domain.ProjectInfo, 0, len(summaries))
    seenProjects := map[string]bool{}
    teamsSet := map[string]bool{}
    digests := make([]domain.TeamDigest, 0, len(summaries))

    for _, s := range summaries {
        hm := s.SprintHealthMetrics
        cm.TotalIssues += hm.TotalIssues
        cm.CompletedIssues += hm.CompletedIssues
        cm.InProgressIssues += hm.InProgressIssues
        cm.TodoIssues += hm.TodoIssues
        cm.BlockedIssues += hm.BlockedIssues
        cm.TotalStoryPoints += hm.TotalStoryPoints
        cm.CompletedStoryPoints += hm.CompletedStoryPoints
        cm.TotalTeamMembers += s.TeamComposition.TotalMembers

        for _, b := range s.CurrentBlockers {
            b.Team = s.TeamInfo.Label
            b.Project = s.ProjectInfo.Key
            allBlockers = append(allBlockers, b)
        }
        for _, a := range s.KeyAccomplishments {
            a.Team = s.TeamInfo.Label
            a.Project = s.ProjectInfo.Key
            allAcc = append(allAcc, a)
        }

        if !seenProjects[s.ProjectInfo.Key] {
            seenProjects[s.ProjectInfo.Key] = true
            projects = append(projects, s.ProjectInfo)
        }
        teamsSet[s.TeamInfo.Label] = true

        digests = append(digests, domain.TeamDigest{
            Team:           s.TeamInfo.Label,
            Project:        s.ProjectInfo.Key,
            Health:         s.SprintHealthAnalysis.OverallHealth,
            CompletionRate: hm.CompletionRate,
            Velocity:       hm.Velocity,
        })
    }

    var completionRate, velocityPct float64
    if cm.TotalIssues > 0 {
        completionRate = round1(float64(cm.CompletedIssues) / float64(cm.TotalIssues) * 100)
    }
    if cm.TotalStoryPoints > 0 {
        velocityPct = round1(cm.CompletedStoryPoints / cm.TotalStoryPoints * 100)
    }
    cm.CompletionRate = pct(completionRate)
    cm.VelocityPercentage = pct(velocityPct)
    cm.Velocity = cm.CompletedStoryPoints

    sort.SliceStable(allAcc, func(i, j int) bool { return allAcc[i].StoryPoints > allAcc[j].StoryPoints })
    if len(allBlockers) > maxCombinedBlockers { allBlockers = allBlockers[:maxCombinedBlockers] }
    if len(allAcc) > maxCombinedAccomplishments { allAcc = allAcc[:maxCombinedAccomplishments] }

    teams := make([]string, 0, len(teamsSet))
    for t := range teamsSet { teams = append(teams, t) }
    sort.Strings(teams)

    return &domain.CombinedSummary{
        Title:               "Combined Sprint Summary - All Teams",
        Projects:            projects,
        Teams:               teams,
        SprintHealthMetrics: cm,
        CurrentBlockers:     allBlockers,
        KeyAccomplishments:  allAcc,
        TeamSummaries:       digests,
        GeneratedAt:         now().Format(time.RFC3339),
    }
}
