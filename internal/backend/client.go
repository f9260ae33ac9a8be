package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/mresler/dayboard/internal/domain"
)

const dayLayout = "2006-01-02"

// Config holds the connection parameters for the booking backend API.
type Config struct {
	BaseURL   string
	APIToken  string
	TimeoutMs int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "http://localhost:8080",
		TimeoutMs: 10000,
	}
}

// Client talks to the booking platform's HTTP API. It is the engine's only
// path to durable state: day-scoped bookings and the roster are read through
// it, and event creation/updates are written through it. It satisfies the
// board coordinator's DataSource and Persister interfaces.
type Client struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewClient creates a backend API client.
func NewClient(cfg Config, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// wire types

type bookingPayload struct {
	ID                string          `json:"id"`
	LeaderName        string          `json:"leader_name"`
	Students          []string        `json:"students"`
	CapacityStudents  int             `json:"capacity_students"`
	PricePerStudent   float64         `json:"price_per_student"`
	CategoryEquipment string          `json:"category_equipment"`
	CapacityEquipment int             `json:"capacity_equipment"`
	Lessons           []lessonPayload `json:"lessons"`
}

type lessonPayload struct {
	ID         string         `json:"id"`
	TeacherID  string         `json:"teacher_id"`
	Commission struct {
		Type string  `json:"type"`
		CPH  float64 `json:"cph"`
	} `json:"commission"`
	Events []eventPayload `json:"events"`
}

type eventPayload struct {
	ID          string    `json:"id"`
	StartTime   time.Time `json:"start_time"`
	DurationMin int       `json:"duration_minutes"`
	Location    string    `json:"location"`
	Status      string    `json:"status"`
}

type teacherPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type mutationResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// DayBookings returns the day's bookings with their lessons and events.
func (c *Client) DayBookings(ctx context.Context, day time.Time) ([]domain.Booking, error) {
	path := fmt.Sprintf("/api/days/%s/bookings", day.Format(dayLayout))
	var payload struct {
		Bookings []bookingPayload `json:"bookings"`
	}
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(payload.Bookings))
	for _, b := range payload.Bookings {
		out = append(out, toDomainBooking(b))
	}
	return out, nil
}

// ActiveTeachers returns the day's active roster.
func (c *Client) ActiveTeachers(ctx context.Context, day time.Time) ([]domain.Teacher, error) {
	path := fmt.Sprintf("/api/days/%s/teachers", day.Format(dayLayout))
	var payload struct {
		Teachers []teacherPayload `json:"teachers"`
	}
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return nil, err
	}

	out := make([]domain.Teacher, 0, len(payload.Teachers))
	for _, t := range payload.Teachers {
		out = append(out, domain.Teacher{ID: t.ID, Username: t.Username})
	}
	return out, nil
}

// CreateEvent persists a new scheduled event. The client reference travels
// with the request so the backend can echo it on the realtime feed.
func (c *Client) CreateEvent(ctx context.Context, req domain.EventCreate) error {
	body := map[string]any{
		"client_ref":       req.ClientRef,
		"lesson_id":        req.LessonID,
		"start_time":       req.Start.Format(time.RFC3339),
		"duration_minutes": req.DurationMin,
		"location":         req.Location,
	}
	return c.mutate(ctx, http.MethodPost, "/api/events", body)
}

// UpdateEvent patches an event's scheduling fields.
func (c *Client) UpdateEvent(ctx context.Context, eventID string, patch domain.EventPatch) error {
	body := map[string]any{}
	if patch.Start != nil {
		body["start_time"] = patch.Start.Format(time.RFC3339)
	}
	if patch.DurationMin != nil {
		body["duration_minutes"] = *patch.DurationMin
	}
	if patch.Location != nil {
		body["location"] = *patch.Location
	}
	if patch.Status != nil {
		body["status"] = string(*patch.Status)
	}
	return c.mutate(ctx, http.MethodPatch, "/api/events/"+eventID, body)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	start := time.Now()
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		mapped := c.mapTransportError(ctx, err)
		c.complete(http.MethodGet, path, 0, start, mapped)
		return mapped
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("%w: GET %s returned %d", ErrRequestRejected, path, resp.StatusCode)
		c.complete(http.MethodGet, path, resp.StatusCode, start, err)
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		err = fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		c.complete(http.MethodGet, path, resp.StatusCode, start, err)
		return err
	}
	c.complete(http.MethodGet, path, resp.StatusCode, start, nil)
	return nil
}

func (c *Client) mutate(ctx context.Context, method, path string, body any) error {
	start := time.Now()
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		mapped := c.mapTransportError(ctx, err)
		c.complete(method, path, 0, start, mapped)
		return mapped
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("%w: %s %s returned %d", ErrRequestRejected, method, path, resp.StatusCode)
		c.complete(method, path, resp.StatusCode, start, err)
		return err
	}

	var result mutationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		err = fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		c.complete(method, path, resp.StatusCode, start, err)
		return err
	}
	if !result.Success {
		err := fmt.Errorf("%w: %s", ErrRequestRejected, result.Error)
		c.complete(method, path, resp.StatusCode, start, err)
		return err
	}
	c.complete(method, path, resp.StatusCode, start, nil)
	return nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := time.Duration(c.cfg.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

func (c *Client) authorize(req *http.Request) {
	if c.cfg.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
	}
}

func (c *Client) mapTransportError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func (c *Client) complete(method, path string, status int, start time.Time, err error) {
	c.observer.OnCallComplete(CallEvent{
		Method:    method,
		Path:      path,
		Status:    status,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	case errors.Is(err, ErrRequestRejected):
		return "rejected"
	case errors.Is(err, ErrInvalidPayload):
		return "invalid_payload"
	default:
		return "unknown"
	}
}

func toDomainBooking(b bookingPayload) domain.Booking {
	out := domain.Booking{
		ID:                b.ID,
		LeaderName:        b.LeaderName,
		Students:          b.Students,
		CapacityStudents:  b.CapacityStudents,
		PricePerStudent:   b.PricePerStudent,
		CategoryEquipment: b.CategoryEquipment,
		CapacityEquipment: b.CapacityEquipment,
	}
	for _, l := range b.Lessons {
		lesson := domain.Lesson{
			ID:        l.ID,
			TeacherID: l.TeacherID,
			Commission: domain.Commission{
				Type: domain.CommissionType(l.Commission.Type),
				CPH:  l.Commission.CPH,
			},
		}
		for _, ev := range l.Events {
			status := domain.EventStatus(ev.Status)
			if !domain.ValidEventStatuses[ev.Status] {
				status = domain.EventPlanned
			}
			lesson.Events = append(lesson.Events, domain.LessonEvent{
				ID:          ev.ID,
				Start:       ev.StartTime,
				DurationMin: ev.DurationMin,
				Location:    ev.Location,
				Status:      status,
			})
		}
		out.Lessons = append(out.Lessons, lesson)
	}
	return out
}
