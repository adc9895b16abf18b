// Package platinium implements an unofficial client for the Fitness
// Platinium club API.
package platinium

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/grelade/platinium-booker/internal/domain/booking"
	"github.com/grelade/platinium-booker/internal/domain/schedule"
)

const DefaultBaseURL = "https://stats.fitnessplatinium.pl:13002/club-api"

const boundaryChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// SessionData is the session block of a successful login response.
type SessionData struct {
	SessionID string `json:"SessionId"`
	UserID    int64  `json:"UserId"`
}

type loginResponse struct {
	AccessToken string      `json:"access_token"`
	Session     SessionData `json:"session"`
}

// Location is one club venue as listed by the locations endpoint.
type Location struct {
	ID   int64  `json:"Id"`
	Name string `json:"Name"`
}

// Client talks to the club API over HTTP. Safe for use from concurrent
// cron jobs: the session token swap on re-login is guarded.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	log        *logrus.Logger

	mu          sync.RWMutex
	accessToken string
	session     *SessionData
}

func NewClient(baseURL, username, password string, timeout time.Duration, log *logrus.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		username:   username,
		password:   password,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// Login authenticates with the multipart user-token endpoint and installs
// the bearer token for subsequent calls.
func (c *Client) Login(ctx context.Context) error {
	c.log.Infof("logging in as: %s", c.username)
	if c.username == "" && c.password == "" {
		c.log.Warn("empty username and password; auth file is likely incorrect")
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	// The web client sends a WebKit-style boundary; the API checks it.
	if err := writer.SetBoundary("----WebKitFormBoundary" + randomBoundaryID(16)); err != nil {
		return fmt.Errorf("setting form boundary: %w", err)
	}
	for field, value := range map[string]string{
		"login":      c.username,
		"password":   c.password,
		"facebookid": "undefined",
	} {
		if err := writer.WriteField(field, value); err != nil {
			return fmt.Errorf("writing login form field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing login form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/user-token", body)
	if err != nil {
		return fmt.Errorf("building login request: %w", err)
	}
	setCommonHeaders(req)
	req.Header.Set("content-type", writer.FormDataContentType())

	var resp loginResponse
	if err := c.do(req, &resp); err != nil {
		return fmt.Errorf("login failed, check auth file: %w", err)
	}

	c.mu.Lock()
	c.accessToken = resp.AccessToken
	c.session = &resp.Session
	c.mu.Unlock()

	c.log.WithField("session_id", resp.Session.SessionID).Info("login succeeded")
	return nil
}

// SessionID returns the current API session id, empty before login.
func (c *Client) SessionID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return ""
	}
	return c.session.SessionID
}

func (c *Client) userID() (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return 0, fmt.Errorf("not logged in")
	}
	return c.session.UserID, nil
}

// FetchClasses lists the classes published for one venue over a window of
// daysForward days. Implements booking.Client.
func (c *Client) FetchClasses(ctx context.Context, venueID int64, startDate time.Time, daysForward int) ([]booking.RawRecord, error) {
	userID, err := c.userID()
	if err != nil {
		return nil, err
	}
	payload := map[string]any{
		"LocationId": venueID,
		"StartDate":  startDate.Format(schedule.TimestampLayout),
		"Days":       daysForward,
		"UserId":     userID,
	}
	var records []booking.RawRecord
	if err := c.post(ctx, "/pl/classes", payload, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetLocations lists the club venues that publish classes.
func (c *Client) GetLocations(ctx context.Context) ([]Location, error) {
	var locations []Location
	if err := c.get(ctx, "/pl/locations/with-classes", &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// AddReservation books a class occurrence. date is the class StartTime as
// returned by FetchClasses; classScheduleID is its Id.
func (c *Client) AddReservation(ctx context.Context, classScheduleID int64, date string) (*booking.ReservationStatus, error) {
	userID, err := c.userID()
	if err != nil {
		return nil, err
	}
	payload := map[string]any{
		"UserId":          userID,
		"Date":            date,
		"ClassScheduleId": classScheduleID,
	}
	status := &booking.ReservationStatus{}
	if err := c.post(ctx, "/pl/classes/add-reservation", payload, status); err != nil {
		return nil, err
	}
	return status, nil
}

// RemoveReservation cancels a previously made reservation.
func (c *Client) RemoveReservation(ctx context.Context, classScheduleID int64, date string) (*booking.ReservationStatus, error) {
	userID, err := c.userID()
	if err != nil {
		return nil, err
	}
	payload := map[string]any{
		"UserId":          userID,
		"Date":            date,
		"ClassScheduleId": classScheduleID,
	}
	status := &booking.ReservationStatus{}
	if err := c.post(ctx, "/pl/classes/remove-reservation", payload, status); err != nil {
		return nil, err
	}
	return status, nil
}

// ActiveReservations lists the user's current reservations.
func (c *Client) ActiveReservations(ctx context.Context) ([]booking.RawRecord, error) {
	userID, err := c.userID()
	if err != nil {
		return nil, err
	}
	var records []booking.RawRecord
	if err := c.get(ctx, fmt.Sprintf("/pl/classes/user-active-reservations/%d", userID), &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ReservationHistory lists the user's past reservations.
func (c *Client) ReservationHistory(ctx context.Context) ([]booking.RawRecord, error) {
	userID, err := c.userID()
	if err != nil {
		return nil, err
	}
	var records []booking.RawRecord
	if err := c.get(ctx, fmt.Sprintf("/pl/classes/user-reservations-history/%d", userID), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	c.authorize(req)
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding request body for %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	c.authorize(req)
	return c.do(req, out)
}

func (c *Client) authorize(req *http.Request) {
	setCommonHeaders(req)
	req.Header.Set("content-type", "application/json")
	c.mu.RLock()
	if c.accessToken != "" {
		req.Header.Set("authorization", "Bearer "+c.accessToken)
	}
	c.mu.RUnlock()
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response from %s: %w", req.URL.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidResponse, truncate(data, 200))
	}
	return nil
}

func setCommonHeaders(req *http.Request) {
	req.Header.Set("accept", "application/json, text/plain, */*")
	req.Header.Set("accept-language", "en-GB,en-US;q=0.9,en;q=0.8")
	req.Header.Set("cache-control", "no-cache")
}

func randomBoundaryID(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = boundaryChars[rand.Intn(len(boundaryChars))]
	}
	return string(b)
}

func truncate(data []byte, n int) string {
	if len(data) <= n {
		return string(data)
	}
	return string(data[:n]) + "..."
}
