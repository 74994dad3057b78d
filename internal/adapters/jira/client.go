/* Copyright (c) 2025 Sprint Summary Agent contributors
 * SPDX-License-Identifier: BSD-3-Clause */
package jira

import (
    "bytes"
    "context"
    "encoding/base64"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "strings"
    "time"

    "github.com/rs/zerolog"

    "github.com/derekschatz/Sprint-Summary-Agent/internal/config"
    "github.com/derekschatz/Sprint-Summary-Agent/internal/domain"
)

const issuePageSize = 1000

type Client struct {
    baseURL string
    token   string
    basic   string
    http    *http.Client
    log     zerolog.Logger
}

func NewClient(cfg config.Config, log zerolog.Logger) *Client {
    c := &Client{
        baseURL: strings.TrimRight(cfg.JiraHost, "/"),
        token:   cfg.JiraPAT,
        http:    &http.Client{Timeout: cfg.HTTPTimeout},
        log:     log,
    }
    if cfg.JiraEmail != "" && cfg.JiraAPIToken != "" {
        c.basic = base64.StdEncoding.EncodeToString([]byte(cfg.JiraEmail + ":" + cfg.JiraAPIToken))
    }
    return c
}

func (c *Client) apiURL(path string, q url.Values) string {
    if !strings.HasPrefix(path, "/") { path = "/" + path }
    u := c.baseURL + path
    if len(q) > 0 { u = u + "?" + q.Encode() }
    return u
}

// doJSON issues a request and decodes the response into out, retrying
// up to three times on 429 and 5xx with exponential backoff.
func (c *Client) doJSON(ctx context.Context, method, u string, body, out any) error {
    if c.baseURL == "" { return errors.New("jira: empty host") }
    var payload []byte
    if body != nil {
        b, err := json.Marshal(body)
        if err != nil { return err }
        payload = b
    }
    var lastErr error
    for attempt := 0; attempt < 3; attempt++ {
        var r io.Reader
        if payload != nil { r = bytes.NewReader(payload) }
        req, err := http.NewRequestWithContext(ctx, method, u, r)
        if err != nil { return err }
        req.Header.Set("Accept", "application/json")
        if payload != nil { req.Header.Set("Content-Type", "application/json") }
        if c.token != "" {
            req.Header.Set("Authorization", "Bearer "+c.token)
        } else if c.basic != "" {
            req.Header.Set("Authorization", "Basic "+c.basic)
        }
        resp, err := c.http.Do(req)
        if err != nil {
            lastErr = err
        } else {
            b, readErr := io.ReadAll(resp.Body)
            resp.Body.Close()
            if readErr != nil { return readErr }
            if resp.StatusCode >= 300 {
                apiErr := fmt.Errorf("jira api status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(b)))
                if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
                    lastErr = apiErr
                } else {
                    return apiErr
                }
            } else {
                if out == nil { return nil }
                return json.Unmarshal(b, out)
            }
        }
        time.Sleep(time.Duration(300*(1<<attempt)) * time.Millisecond)
    }
    return lastErr
}

type boardsPage struct {
    MaxResults int            `json:"maxResults"`
    StartAt    int            `json:"startAt"`
    IsLast     bool           `json:"isLast"`
    Values     []domain.Board `json:"values"`
}

// Boards lists every scrum board attached to the project, walking the
// agile API's pagination until the last page.
func (c *Client) Boards(ctx context.Context, projectKey string) ([]domain.Board, error) {
    if projectKey == "" { return nil, errors.New("jira: empty project key") }
    var out []domain.Board
    startAt := 0
    for {
        q := url.Values{}
        q.Set("projectKeyOrId", projectKey)
        q.Set("type", "scrum")
        q.Set("startAt", fmt.Sprint(startAt))
        u := c.apiURL("/rest/agile/1.0/board", q)
        var page boardsPage
        if err := c.doJSON(ctx, http.MethodGet, u, nil, &page); err != nil { return nil, err }
        for i := range page.Values {
            page.Values[i].ProjectKey = projectKey
        }
        out = append(out, page.Values...)
        if page.IsLast || len(page.Values) == 0 { break }
        startAt += len(page.Values)
    }
    return out, nil
}

type sprintsPage struct {
    MaxResults int             `json:"maxResults"`
    StartAt    int             `json:"startAt"`
    IsLast     bool            `json:"isLast"`
    Values     []domain.Sprint `json:"values"`
}

// ClosedSprints lists a board's closed sprints, oldest first.
func (c *Client) ClosedSprints(ctx context.Context, boardID int64) ([]domain.Sprint, error) {
    var out []domain.Sprint
    startAt := 0
    for {
        q := url.Values{}
        q.Set("state", "closed")
        q.Set("startAt", fmt.Sprint(startAt))
        u := c.apiURL(fmt.Sprintf("/rest/agile/1.0/board/%d/sprint", boardID), q)
        var page sprintsPage
        if err := c.doJSON(ctx, http.MethodGet, u, nil, &page); err != nil { return nil, err }
        out = append(out, page.Values...)
        if page.IsLast || len(page.Values) == 0 { break }
        startAt += len(page.Values)
    }
    return out, nil
}

type issuesPage struct {
    MaxResults int            `json:"maxResults"`
    StartAt    int            `json:"startAt"`
    Total      int            `json:"total"`
    Issues     []domain.Issue `json:"issues"`
}

// SprintIssues fetches every issue assigned to the sprint.
func (c *Client) SprintIssues(ctx context.Context, sprintID int64) ([]domain.Issue, error) {
    var out []domain.Issue
    startAt := 0
    for {
        q := url.Values{}
        q.Set("maxResults", fmt.Sprint(issuePageSize))
        q.Set("startAt", fmt.Sprint(startAt))
        u := c.apiURL(fmt.Sprintf("/rest/agile/1.0/sprint/%d/issue", sprintID), q)
        var page issuesPage
        if err := c.doJSON(ctx, http.MethodGet, u, nil, &page); err != nil { return nil, err }
        out = append(out, page.Issues...)
        startAt += len(page.Issues)
        if len(page.Issues) == 0 || startAt >= page.Total { break }
    }
    return out, nil
}

// Project fetches project metadata (name, lead) for report headers.
func (c *Client) Project(ctx context.Context, key string) (*domain.Project, error) {
    if key == "" { return nil, errors.New("jira: empty project key") }
    u := c.apiURL("/rest/api/3/project/"+url.PathEscape(key), nil)
    var p domain.Project
    if err := c.doJSON(ctx, http.MethodGet, u, nil, &p); err != nil { return nil, err }
    return &p, nil
}
