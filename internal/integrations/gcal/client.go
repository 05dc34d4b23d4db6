package gcal

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/trillium/massage-availability/internal/domain"
)

// Options параметры клиента Google Calendar
type Options struct {
	// CredentialsFile JSON ключ сервисного аккаунта, пусто = Application Default Credentials
	CredentialsFile     string
	BusyCalendarIDs     []string
	ContainerCalendarID string
	Timeout             time.Duration
	Location            *time.Location
}

// Client клиент Google Calendar: занятость владельца и события-контейнеры
type Client struct {
	svc                 *calendar.Service
	busyCalendarIDs     []string
	containerCalendarID string
	timeout             time.Duration
	loc                 *time.Location
	log                 Logger
}

// NewClient создает клиент с доступом только на чтение
func NewClient(ctx context.Context, opts Options, log Logger, extra ...option.ClientOption) (*Client, error) {
	clientOpts := []option.ClientOption{option.WithScopes(calendar.CalendarReadonlyScope)}
	if opts.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	}
	clientOpts = append(clientOpts, extra...)

	svc, err := calendar.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create calendar service: %v", ErrInternal, err)
	}

	return newClient(svc, opts, log), nil
}

func newClient(svc *calendar.Service, opts Options, log Logger) *Client {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	containerID := opts.ContainerCalendarID
	if containerID == "" && len(opts.BusyCalendarIDs) > 0 {
		containerID = opts.BusyCalendarIDs[0]
	}

	return &Client{
		svc:                 svc,
		busyCalendarIDs:     opts.BusyCalendarIDs,
		containerCalendarID: containerID,
		timeout:             opts.Timeout,
		loc:                 loc,
		log:                 log,
	}
}

// GetBusy возвращает занятые интервалы всех календарей владельца в [from, to)
// Прозрачные события (transparency=transparent) Calendar API в занятость не включает.
func (c *Client) GetBusy(ctx context.Context, from, to time.Time) ([]domain.Interval, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	items := make([]*calendar.FreeBusyRequestItem, 0, len(c.busyCalendarIDs))
	for _, id := range c.busyCalendarIDs {
		items = append(items, &calendar.FreeBusyRequestItem{Id: id})
	}

	resp, err := c.svc.Freebusy.Query(&calendar.FreeBusyRequest{
		TimeMin:  from.Format(time.RFC3339),
		TimeMax:  to.Format(time.RFC3339),
		TimeZone: c.loc.String(),
		Items:    items,
	}).Context(ctx).Do()
	if err != nil {
		c.log.Error("GetBusy: freebusy query failed: %v", err)
		return nil, fmt.Errorf("%w: freebusy query: %v", ErrInternal, err)
	}

	busy, err := busyFromResponse(resp)
	if err != nil {
		c.log.Error("GetBusy: %v", err)
		return nil, err
	}

	c.log.Info("GetBusy: %d busy intervals between %s and %s", len(busy),
		from.Format(time.RFC3339), to.Format(time.RFC3339))
	return busy, nil
}

// GetContainers возвращает события-контейнеры, в названии которых есть query
func (c *Client) GetContainers(ctx context.Context, query string, from, to time.Time) ([]domain.ContainerEvent, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var events []*calendar.Event
	err := c.svc.Events.List(c.containerCalendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		Q(query).
		SingleEvents(true).
		OrderBy("startTime").
		Pages(ctx, func(page *calendar.Events) error {
			events = append(events, page.Items...)
			return nil
		})
	if err != nil {
		c.log.Error("GetContainers: events list failed for query=%q: %v", query, err)
		return nil, fmt.Errorf("%w: events list: %v", ErrInternal, err)
	}

	containers := containersFromEvents(events, query, c.loc)
	c.log.Info("GetContainers: %d of %d events match query=%q", len(containers), len(events), query)
	return containers, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}
