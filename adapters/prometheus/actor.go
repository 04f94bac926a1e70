package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/cellactor/core/actor"
)

// actorMetrics implements actor.ActorMetrics using Prometheus.
type actorMetrics struct {
	messageDuration       *prometheus.HistogramVec
	messagesTotal         *prometheus.CounterVec
	panicTotal            *prometheus.CounterVec
	typeMismatchTotal     *prometheus.CounterVec
	deadLettersTotal      *prometheus.CounterVec
	mailboxDepth          *prometheus.GaugeVec
	scheduleRequests      *prometheus.CounterVec
	schedulerInflight     prometheus.Gauge
	schedulerTaskDuration prometheus.Histogram
	schedulerTasksTotal   *prometheus.CounterVec
}

// NewActorMetrics creates a new Prometheus implementation of ActorMetrics
// and registers its collectors with reg.
func NewActorMetrics(reg prometheus.Registerer) actor.ActorMetrics {
	m := &actorMetrics{
		messageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cellactor_message_duration_seconds",
			Help:    "Message handling time in seconds",
			Buckets: defaultBuckets,
		}, []string{"message_type"}),

		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cellactor_messages_total",
			Help: "Total number of messages processed",
		}, []string{"message_type", "success"}),

		panicTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cellactor_panics_total",
			Help: "Total number of handler panics",
		}, []string{"message_type"}),

		typeMismatchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cellactor_type_mismatches_total",
			Help: "Total number of messages rejected for their type",
		}, []string{"message_type"}),

		deadLettersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cellactor_dead_letters_total",
			Help: "Total number of undeliverable messages",
		}, []string{"message_type"}),

		mailboxDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cellactor_mailbox_depth",
			Help: "Current mailbox queue depth",
		}, []string{"actor_id"}),

		scheduleRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cellactor_schedule_requests_total",
			Help: "Total number of requests to run an actor",
		}, []string{"actor_id"}),

		schedulerInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cellactor_scheduler_inflight",
			Help: "Number of actors currently running on a worker",
		}),

		schedulerTaskDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cellactor_scheduler_task_duration_seconds",
			Help:    "Worker run duration in seconds",
			Buckets: defaultBuckets,
		}),

		schedulerTasksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cellactor_scheduler_tasks_total",
			Help: "Total number of worker runs completed",
		}, []string{"success"}),
	}

	reg.MustRegister(
		m.messageDuration,
		m.messagesTotal,
		m.panicTotal,
		m.typeMismatchTotal,
		m.deadLettersTotal,
		m.mailboxDepth,
		m.scheduleRequests,
		m.schedulerInflight,
		m.schedulerTaskDuration,
		m.schedulerTasksTotal,
	)

	return m
}

func (m *actorMetrics) MessageDuration(msgType string) actor.Timer {
	return newTimer(m.messageDuration.WithLabelValues(msgType))
}

func (m *actorMetrics) MessageProcessed(msgType string, success bool) {
	m.messagesTotal.WithLabelValues(msgType, boolToStr(success)).Inc()
}

func (m *actorMetrics) MessagePanic(msgType string) {
	m.panicTotal.WithLabelValues(msgType).Inc()
}

func (m *actorMetrics) TypeMismatch(msgType string) {
	m.typeMismatchTotal.WithLabelValues(msgType).Inc()
}

func (m *actorMetrics) DeadLetter(msgType string) {
	m.deadLettersTotal.WithLabelValues(msgType).Inc()
}

func (m *actorMetrics) MailboxDepth(actorID string, depth int) {
	m.mailboxDepth.WithLabelValues(actorID).Set(float64(depth))
}

func (m *actorMetrics) ScheduleRequested(actorID string) {
	m.scheduleRequests.WithLabelValues(actorID).Inc()
}

func (m *actorMetrics) SchedulerInflight(count int) {
	m.schedulerInflight.Set(float64(count))
}

func (m *actorMetrics) SchedulerTaskDuration() actor.Timer {
	return newTimer(m.schedulerTaskDuration)
}

func (m *actorMetrics) SchedulerTaskCompleted(success bool) {
	m.schedulerTasksTotal.WithLabelValues(boolToStr(success)).Inc()
}

var _ actor.ActorMetrics = (*actorMetrics)(nil)
