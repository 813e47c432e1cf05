package splunk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/tidwall/gjson"
)

// errJobRunning signals the poll loop that the job has not finished yet.
var errJobRunning = errors.New("search job still running")

// CreateJob submits a search and returns its SID. The query is sent as is;
// callers are responsible for the leading "search" command.
func (c *Client) CreateJob(ctx context.Context, query string, opts SearchOptions) (string, error) {
	form := url.Values{
		"search":    {query},
		"exec_mode": {"normal"},
	}
	if opts.EarliestTime != "" {
		form.Set("earliest_time", opts.EarliestTime)
	}
	if opts.LatestTime != "" {
		form.Set("latest_time", opts.LatestTime)
	}

	var resp struct {
		SID string `json:"sid"`
	}
	if err := c.post(ctx, "/services/search/jobs", form, &resp); err != nil {
		return "", fmt.Errorf("creating search job: %w", err)
	}
	if resp.SID == "" {
		return "", errors.New("creating search job: no sid in response")
	}
	return resp.SID, nil
}

// JobStatus fetches the current status of a search job.
func (c *Client) JobStatus(ctx context.Context, sid string) (*JobStatus, error) {
	body, err := c.do(ctx, http.MethodGet, "/services/search/jobs/"+url.PathEscape(sid), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("getting status of job %s: %w", sid, err)
	}

	content := gjson.GetBytes(body, "entry.0.content")
	if !content.Exists() {
		return nil, fmt.Errorf("getting status of job %s: response has no job content", sid)
	}

	return &JobStatus{
		SID:           sid,
		DispatchState: content.Get("dispatchState").String(),
		IsDone:        content.Get("isDone").Bool(),
		IsFailed:      content.Get("isFailed").Bool(),
		ResultCount:   content.Get("resultCount").Int(),
		EventCount:    content.Get("eventCount").Int(),
		RunDuration:   content.Get("runDuration").Float(),
		Messages:      parseMessages(content.Get("messages")),
	}, nil
}

// WaitForJob polls the job until Splunk reports it done or failed. Poll
// delays grow exponentially between the configured bounds. Errors fetching
// the status end the wait immediately.
func (c *Client) WaitForJob(ctx context.Context, sid string) (*JobStatus, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.pollInitial
	b.MaxInterval = c.pollMax

	poll := func() (*JobStatus, error) {
		status, err := c.JobStatus(ctx, sid)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		if status.Failed() {
			return nil, backoff.Permanent(&JobFailedError{
				SID:           sid,
				DispatchState: status.DispatchState,
				Messages:      status.Messages,
			})
		}
		if !status.IsDone {
			return nil, errJobRunning
		}
		return status, nil
	}

	status, err := backoff.Retry(ctx, poll,
		backoff.WithBackOff(b),
		backoff.WithMaxElapsedTime(c.jobTimeout),
		backoff.WithNotify(func(_ error, next time.Duration) {
			slog.Debug("search job still running",
				slog.String("sid", sid),
				slog.Duration("next_poll", next),
			)
		}),
	)
	if errors.Is(err, errJobRunning) {
		return nil, fmt.Errorf("waiting for job %s: %w", sid, ErrJobTimeout)
	}
	if err != nil {
		return nil, err
	}
	return status, nil
}

// JobResults fetches the results of a finished job. The body is returned
// exactly as Splunk sent it so csv and xml output pass through untouched.
func (c *Client) JobResults(ctx context.Context, sid string, opts ResultsOptions) ([]byte, error) {
	mode := opts.OutputMode
	if mode == "" {
		mode = OutputJSON
	}
	query := url.Values{
		"output_mode": {mode},
		"count":       {strconv.Itoa(opts.Count)},
	}

	body, err := c.do(ctx, http.MethodGet, "/services/search/jobs/"+url.PathEscape(sid)+"/results", query, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching results of job %s: %w", sid, err)
	}
	return body, nil
}
