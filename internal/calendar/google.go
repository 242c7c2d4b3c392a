package calendar

import (
	"context"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const interviewBlock = time.Hour

// ExternalEvent is an event read from a linked external calendar.
type ExternalEvent struct {
	ID          string    `json:"id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
}

// GoogleClient wraps the readonly Google Calendar integration.
type GoogleClient struct {
	config *oauth2.Config
}

// NewGoogleClient builds the OAuth2 config, or nil when unconfigured.
func NewGoogleClient(clientID, clientSecret, redirectURL string) *GoogleClient {
	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil
	}
	return &GoogleClient{config: &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{gcal.CalendarReadonlyScope},
		Endpoint:     google.Endpoint,
	}}
}

// AuthURL returns the consent page URL for the given state.
func (g *GoogleClient) AuthURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades an authorization code for a token.
func (g *GoogleClient) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return g.config.Exchange(ctx, code)
}

// ListEvents fetches the user's events between timeMin and timeMax.
func (g *GoogleClient) ListEvents(ctx context.Context, token *oauth2.Token, timeMin, timeMax string) ([]ExternalEvent, error) {
	client := g.config.Client(ctx, token)
	srv, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, err
	}

	call := srv.Events.List("primary").SingleEvents(true).OrderBy("startTime").MaxResults(250)
	if timeMin != "" {
		call = call.TimeMin(timeMin)
	}
	if timeMax != "" {
		call = call.TimeMax(timeMax)
	}

	result, err := call.Do()
	if err != nil {
		return nil, err
	}

	events := make([]ExternalEvent, 0, len(result.Items))
	for _, item := range result.Items {
		ev := ExternalEvent{
			ID:          item.Id,
			Summary:     item.Summary,
			Description: item.Description,
			Status:      item.Status,
		}
		ev.StartTime = parseGoogleTime(item.Start)
		ev.EndTime = parseGoogleTime(item.End)
		events = append(events, ev)
	}
	return events, nil
}

func parseGoogleTime(t *gcal.EventDateTime) time.Time {
	if t == nil {
		return time.Time{}
	}
	if t.DateTime != "" {
		if parsed, err := time.Parse(time.RFC3339, t.DateTime); err == nil {
			return parsed
		}
	}
	if t.Date != "" {
		if parsed, err := time.Parse("2006-01-02", t.Date); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
