// Package splunk provides a small Go client for the Splunk Enterprise REST API.
//
// The client covers the management endpoints needed to authenticate, run
// ad-hoc and saved searches, and read index and server metadata. Every method
// blocks until Splunk answers and honours context cancellation.
//
// # Quick Start
//
// Create a client for the management port and log in:
//
//	c := splunk.New(splunk.BaseURL("https", "splunk.example.com", 8089))
//	if err := c.Login(ctx, "admin", "changeme"); err != nil {
//	    return err
//	}
//
// # Search Jobs
//
// Searches are asynchronous on the Splunk side. CreateJob submits the query and
// returns a search id (SID); WaitForJob polls the job with exponential backoff
// until it is done or failed; JobResults fetches the results in the requested
// output mode:
//
//	sid, err := c.CreateJob(ctx, "search index=_internal | head 5", splunk.SearchOptions{
//	    EarliestTime: "-15m",
//	})
//	status, err := c.WaitForJob(ctx, sid)
//	body, err := c.JobResults(ctx, sid, splunk.ResultsOptions{Count: 100})
//
// JSON results can be decoded with ParseResults. CSV and XML bodies are
// returned exactly as Splunk produced them.
//
// # Errors
//
// Non-2xx responses are returned as *APIError carrying the HTTP status and the
// messages Splunk attached to the response. A rejected login wraps
// ErrAuthenticationFailed, and a job that Splunk marks as failed is reported as
// *JobFailedError.
package splunk
