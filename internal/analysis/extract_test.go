package analysis

import (
    "fmt"
    "testing"

    "github.com/stretchr/testify/require"

    "github.com/derekschatz/Sprint-Summary-Agent/internal/domain"
)

func completedIssue(key, priority string, points *float64) domain.Issue {
    iss := makeIssue(key, "done", "Done")
    if priority != "" {
        iss.Fields.Priority = &domain.Priority{Name: priority}
    }
    iss.Fields.PointsDefault = points
    iss.Fields.Summary = "work on " + key
    return iss
}

func TestExtractAccomplishmentsPrioritySort(t *testing.T) {
    m := domain.Metrics{StatusGroups: domain.StatusGroups{Completed: []domain.Issue{
        completedIssue("T-1", "Low", fp(2)),
        completedIssue("T-2", "Highest", fp(8)),
        completedIssue("T-3", "Custom", nil),
        completedIssue("T-4", "Medium", fp(3)),
        completedIssue("T-5", "", fp(1)),
        completedIssue("T-6", "High", fp(5)),
    }}}

    acc := ExtractAccomplishments(m)
    require.Len(t, acc, 6)

    keys := make([]string, 0, len(acc))
    for _, a := range acc {
        keys = append(keys, a.Key)
    }
    // unrecognized priorities ("Custom", missing) rank after Lowest, in input order
    require.Equal(t, []string{"T-2", "T-6", "T-4", "T-1", "T-3", "T-5"}, keys)
    require.Equal(t, 8.0, acc[0].StoryPoints)
    require.Equal(t, "Highest", acc[0].Priority)
}

func TestExtractAccomplishmentsSortIsStable(t *testing.T) {
    in := make([]domain.Issue, 0, 5)
    for i := 1; i <= 5; i++ {
        in = append(in, completedIssue(fmt.Sprintf("T-%d", i), "Medium", fp(float64(i))))
    }
    acc := ExtractAccomplishments(domain.Metrics{StatusGroups: domain.StatusGroups{Completed: in}})
    for i, a := range acc {
        require.Equal(t, fmt.Sprintf("T-%d", i+1), a.Key, "equal priorities must keep input order")
    }
}

func TestExtractAccomplishmentsCappedAtTen(t *testing.T) {
    in := make([]domain.Issue, 0, 14)
    for i := 0; i < 12; i++ {
        in = append(in, completedIssue(fmt.Sprintf("L-%d", i), "Low", fp(1)))
    }
    // higher-priority stragglers at the tail must survive the cap
    in = append(in, completedIssue("H-1", "Highest", fp(13)))
    in = append(in, completedIssue("H-2", "High", fp(8)))

    acc := ExtractAccomplishments(domain.Metrics{StatusGroups: domain.StatusGroups{Completed: in}})
    require.Len(t, acc, 10)
    require.Equal(t, "H-1", acc[0].Key)
    require.Equal(t, "H-2", acc[1].Key)
    require.Equal(t, "L-0", acc[2].Key)
}

func TestExtractAccomplishmentsPointSlotOrder(t *testing.T) {
    iss := completedIssue("T-1", "High", fp(3))
    iss.Fields.PointsLegacy = fp(8)
    acc := ExtractAccomplishments(domain.Metrics{StatusGroups: domain.StatusGroups{Completed: []domain.Issue{iss}}})
    require.Equal(t, 3.0, acc[0].StoryPoints, "accomplishments read the default slot first")
}

func TestExtractBlockers(t *testing.T) {
    b1 := makeIssue("B-1", "indeterminate", "Blocked by vendor")
    b1.Fields.Summary = "waiting on vendor fix"
    b1.Fields.Assignee = &domain.User{DisplayName: "Dana"}
    b2 := makeIssue("B-2", "new", "")

    out := ExtractBlockers(domain.Metrics{StatusGroups: domain.StatusGroups{Blocked: []domain.Issue{b1, b2}}})
    require.Len(t, out, 2)
    require.Equal(t, "B-1", out[0].Key)
    require.Equal(t, "Blocked by vendor", out[0].Status)
    require.Equal(t, "Dana", out[0].Assignee)
    require.Equal(t, "Unknown", out[1].Status)
    require.Equal(t, "Unassigned", out[1].Assignee)

    require.Empty(t, ExtractBlockers(domain.Metrics{}))
}
