package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"slotfinder-api/core/config"
	"slotfinder-api/core/constants"
	"slotfinder-api/core/logger"
	"slotfinder-api/modules/scheduling/entity"

	"github.com/sony/gobreaker"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Microsoft Graph returns getSchedule timestamps without a zone offset, in
// the requested time zone, with seven fractional digits.
const graphTimeFormat = "2006-01-02T15:04:05.9999999"

// GraphScheduleService reads participant busy intervals from Microsoft Graph.
// Tokens come from an app-only client-credentials exchange, so requests are
// anchored on the queried mailbox (/users/{mailbox}/calendar/getSchedule);
// /me is only valid for delegated tokens. Calls run behind a circuit breaker
// so a struggling Graph tenant degrades the scheduler instead of hammering it.
type GraphScheduleService struct {
	baseURL     string
	tokenSource oauth2.TokenSource
	httpClient  *http.Client
	cb          *gobreaker.CircuitBreaker
}

// graphAPIError is a non-2xx Graph response. Server-side statuses trip the
// breaker; client errors do not.
type graphAPIError struct {
	Status int
	Body   string
}

func (e *graphAPIError) Error() string {
	return fmt.Sprintf("graph getSchedule returned status %d: %s", e.Status, e.Body)
}

func (e *graphAPIError) serverSide() bool {
	return e.Status >= 500 || e.Status == http.StatusTooManyRequests
}

// NewGraphScheduleService creates a new Graph free/busy provider
func NewGraphScheduleService(cfg config.GraphConfig) *GraphScheduleService {
	creds := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", cfg.TenantID),
		Scopes:       []string{"https://graph.microsoft.com/.default"},
	}

	cbSettings := gobreaker.Settings{
		Name:     "graph-getschedule",
		Interval: 60 * time.Second,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.ConsecutiveFailures > 5 ||
				(counts.Requests >= 10 && failureRatio >= 0.6)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("GraphScheduleService:CircuitBreaker:StateChange",
				"name", name, "from", from.String(), "to", to.String())
		},
	}

	return &GraphScheduleService{
		baseURL:     cfg.BaseURL,
		tokenSource: creds.TokenSource(context.Background()),
		httpClient:  &http.Client{Timeout: constants.GraphRequestTimeout},
		cb:          gobreaker.NewCircuitBreaker(cbSettings),
	}
}

// GetBusyIntervals implements scheduling/service.FreeBusyProvider.
func (s *GraphScheduleService) GetBusyIntervals(ctx context.Context, participant string, windowStart, windowEnd time.Time, timezone string) ([]entity.BusyInterval, error) {
	result, err := s.cb.Execute(func() (any, error) {
		intervals, apiErr, err := s.doGetSchedule(ctx, participant, windowStart, windowEnd, timezone)
		if err != nil {
			return nil, err
		}
		if apiErr != nil {
			if apiErr.serverSide() {
				return nil, apiErr
			}
			// Client errors (bad mailbox, missing consent) must not trip
			// the breaker for every other participant.
			return apiErr, nil
		}
		return intervals, nil
	})
	if err != nil {
		return nil, fmt.Errorf("graph free/busy fetch failed: %w", err)
	}

	if apiErr, ok := result.(*graphAPIError); ok {
		return nil, fmt.Errorf("graph free/busy fetch rejected: %w", apiErr)
	}

	return result.([]entity.BusyInterval), nil
}

func (s *GraphScheduleService) doGetSchedule(ctx context.Context, participant string, windowStart, windowEnd time.Time, timezone string) ([]entity.BusyInterval, *graphAPIError, error) {
	body := map[string]any{
		"schedules": []string{participant},
		"startTime": map[string]string{
			"dateTime": windowStart.UTC().Format(time.RFC3339),
			"timeZone": timezone,
		},
		"endTime": map[string]string{
			"dateTime": windowEnd.UTC().Format(time.RFC3339),
			"timeZone": timezone,
		},
		"availabilityViewInterval": 15,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal getSchedule body: %w", err)
	}

	endpoint := fmt.Sprintf("%s/users/%s/calendar/getSchedule", s.baseURL, url.PathEscape(participant))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create getSchedule request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := s.tokenSource.Token()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to acquire graph token: %w", err)
	}
	token.SetAuthHeader(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("getSchedule request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		logger.Error("GraphScheduleService:doGetSchedule:APIError",
			"status", resp.StatusCode, "participant", participant, "body", string(raw))
		return nil, &graphAPIError{Status: resp.StatusCode, Body: string(raw)}, nil
	}

	var payload struct {
		Value []struct {
			ScheduleID    string `json:"scheduleId"`
			ScheduleItems []struct {
				Status string `json:"status"`
				Start  struct {
					DateTime string `json:"dateTime"`
				} `json:"start"`
				End struct {
					DateTime string `json:"dateTime"`
				} `json:"end"`
			} `json:"scheduleItems"`
		} `json:"value"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, nil, fmt.Errorf("failed to decode getSchedule response: %w", err)
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	intervals := []entity.BusyInterval{}
	for _, schedule := range payload.Value {
		for _, item := range schedule.ScheduleItems {
			switch item.Status {
			case "busy", "tentative", "oof":
			default:
				continue
			}

			start, err := parseGraphTime(item.Start.DateTime, loc)
			if err != nil {
				logger.Warn("GraphScheduleService:doGetSchedule:BadStartTime",
					"value", item.Start.DateTime, "error", err)
				continue
			}
			end, err := parseGraphTime(item.End.DateTime, loc)
			if err != nil {
				logger.Warn("GraphScheduleService:doGetSchedule:BadEndTime",
					"value", item.End.DateTime, "error", err)
				continue
			}

			intervals = append(intervals, entity.BusyInterval{Start: start, End: end})
		}
	}

	return intervals, nil, nil
}

func parseGraphTime(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(graphTimeFormat, value, loc); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
