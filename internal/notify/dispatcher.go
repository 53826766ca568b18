package notify

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/opswatch/opswatch/internal/database"
	"github.com/opswatch/opswatch/internal/events"
	"gorm.io/gorm"
)

// queueSize bounds the background dispatch backlog
const queueSize = 256

// Dispatcher routes one incident+alert+system triple to zero or more
// channels and records every delivery attempt as a Notification row.
//
// Failure policy is uniform across channels: any send failure writes a
// failed record with the error text. A recipient lookup failure aborts that
// channel's whole batch before any record is created (recipients are
// resolved once per channel, not per recipient). A failure on one channel
// never prevents the next channel from being attempted.
type Dispatcher struct {
	db       *gorm.DB
	policy   RoutingPolicy
	resolver *Resolver
	chat     ChatSender
	email    EmailSender
	sms      SMSSender
	events   events.Publisher

	queue chan dispatchJob
	wg    sync.WaitGroup
}

type dispatchJob struct {
	incident *database.Incident
	alert    *database.Alert
	system   *database.System
}

// NewDispatcher creates a dispatcher with the given providers. Any nil
// provider falls back to the simulated sender.
func NewDispatcher(db *gorm.DB, policy RoutingPolicy, chat ChatSender, email EmailSender, sms SMSSender) *Dispatcher {
	simulated := &SimulatedSender{}
	if chat == nil {
		chat = simulated
	}
	if email == nil {
		email = simulated
	}
	if sms == nil {
		sms = simulated
	}
	return &Dispatcher{
		db:       db,
		policy:   policy,
		resolver: NewResolver(db),
		chat:     chat,
		email:    email,
		sms:      sms,
		queue:    make(chan dispatchJob, queueSize),
	}
}

// SetPublisher attaches an event publisher for the dashboard live feed
func (d *Dispatcher) SetPublisher(p events.Publisher) {
	d.events = p
}

// Start launches the background dispatch worker. The worker drains the
// queue until the context is cancelled, then finishes in-flight work.
func (d *Dispatcher) Start(ctx context.Context) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for {
			select {
			case job := <-d.queue:
				d.run(ctx, job)
			case <-ctx.Done():
				// Drain whatever is already queued before exiting
				for {
					select {
					case job := <-d.queue:
						d.run(context.Background(), job)
					default:
						return
					}
				}
			}
		}
	}()
}

// Wait blocks until the worker has exited (call after cancelling the
// context passed to Start)
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands an incident to the background worker. The HTTP response
// does not wait for delivery outcomes. If the queue is full the dispatch
// runs inline so nothing is silently lost.
func (d *Dispatcher) Enqueue(incident *database.Incident, alert *database.Alert, system *database.System) {
	job := dispatchJob{incident: incident, alert: alert, system: system}
	select {
	case d.queue <- job:
	default:
		log.Printf("notify: dispatch queue full, sending incident #%d inline", incident.ID)
		d.run(context.Background(), job)
	}
}

func (d *Dispatcher) run(ctx context.Context, job dispatchJob) {
	d.Dispatch(ctx, job.incident, job.alert, job.system)
}

// Dispatch routes the incident through every channel the policy selects for
// the alert's severity, in order. It never stops at a failed channel.
func (d *Dispatcher) Dispatch(ctx context.Context, incident *database.Incident, alert *database.Alert, system *database.System) {
	channels := d.policy.ChannelsFor(alert.Severity)
	log.Printf("notify: dispatching incident #%d severity=%s channels=%v", incident.ID, alert.Severity, channels)

	for _, channel := range channels {
		var err error
		switch channel {
		case database.ChannelChatwork:
			err = d.dispatchChat(ctx, incident, alert, system)
		case database.ChannelEmail:
			err = d.dispatchEmail(ctx, incident, alert, system)
		case database.ChannelSMS:
			err = d.dispatchSMS(ctx, incident, alert, system)
		default:
			err = fmt.Errorf("unknown channel %q", channel)
		}
		if err != nil {
			log.Printf("notify: %s dispatch for incident #%d: %v", channel, incident.ID, err)
		}
	}
}

// dispatchChat sends the full-form message to the system's chat group, or
// the general fallback group when none is configured.
func (d *Dispatcher) dispatchChat(ctx context.Context, incident *database.Incident, alert *database.Alert, system *database.System) error {
	target := ChatTarget(system)
	message := FormatChatMessage(incident, alert, system)

	return d.attempt(ctx, &database.Notification{
		IncidentID: incident.ID,
		Channel:    database.ChannelChatwork,
		Recipient:  target,
		Message:    message,
	}, func(ctx context.Context) error {
		return d.chat.SendGroupMessage(ctx, target, message)
	})
}

// dispatchEmail resolves recipients once and sends one email per contact.
// A lookup failure fails the whole channel before any record is created.
func (d *Dispatcher) dispatchEmail(ctx context.Context, incident *database.Incident, alert *database.Alert, system *database.System) error {
	recipients, err := d.resolver.EmailRecipients(alert.Severity)
	if err != nil {
		return fmt.Errorf("email recipient lookup failed: %w", err)
	}
	if len(recipients) == 0 {
		log.Printf("notify: no email recipients for severity=%s", alert.Severity)
		return nil
	}

	message := FormatMessage(incident, alert, system)
	subject := EmailSubject(incident)

	for _, contact := range recipients {
		to := contact.Email
		sendErr := d.attempt(ctx, &database.Notification{
			IncidentID: incident.ID,
			Channel:    database.ChannelEmail,
			Recipient:  to,
			Message:    message,
		}, func(ctx context.Context) error {
			return d.email.SendEmail(ctx, to, subject, message)
		})
		if sendErr != nil {
			log.Printf("notify: email to %s failed: %v", to, sendErr)
		}
	}
	return nil
}

// dispatchSMS resolves recipients once and sends one text per contact. For
// severities outside down/critical the recipient list is empty and no SMS
// record is created at all.
func (d *Dispatcher) dispatchSMS(ctx context.Context, incident *database.Incident, alert *database.Alert, system *database.System) error {
	recipients, err := d.resolver.SMSRecipients(alert.Severity)
	if err != nil {
		return fmt.Errorf("sms recipient lookup failed: %w", err)
	}
	if len(recipients) == 0 {
		return nil
	}

	message := FormatSMS(incident, alert, system)

	for _, contact := range recipients {
		phone := contact.Phone
		sendErr := d.attempt(ctx, &database.Notification{
			IncidentID: incident.ID,
			Channel:    database.ChannelSMS,
			Recipient:  phone,
			Message:    message,
		}, func(ctx context.Context) error {
			return d.sms.SendSMS(ctx, phone, message)
		})
		if sendErr != nil {
			log.Printf("notify: sms to %s failed: %v", phone, sendErr)
		}
	}
	return nil
}

// attempt persists the pending record, runs the send, and transitions the
// record to sent or failed. Notification.Status never moves backwards.
func (d *Dispatcher) attempt(ctx context.Context, n *database.Notification, send func(context.Context) error) error {
	if err := database.CreateNotification(d.db, n); err != nil {
		return fmt.Errorf("failed to create notification record: %w", err)
	}

	sendErr := send(ctx)
	if sendErr != nil {
		if err := database.MarkNotificationFailed(d.db, n.ID, sendErr.Error()); err != nil {
			log.Printf("notify: failed to mark notification %d failed: %v", n.ID, err)
		}
		d.publish(n.ID)
		return sendErr
	}

	if err := database.MarkNotificationSent(d.db, n.ID); err != nil {
		log.Printf("notify: failed to mark notification %d sent: %v", n.ID, err)
	}
	d.publish(n.ID)
	return nil
}

func (d *Dispatcher) publish(notificationID uint) {
	if d.events == nil {
		return
	}
	var n database.Notification
	if err := d.db.First(&n, notificationID).Error; err != nil {
		return
	}
	d.events.Publish(events.EventNotificationUpdated, n)
}
