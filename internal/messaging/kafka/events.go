package kafka

// TopicCheckoutEvents — topic по умолчанию для событий чекаута.
const TopicCheckoutEvents = "checkout.events"

// Заголовки сообщений с событиями чекаута.
const (
	HeaderEventType = "x-event-type"
	HeaderAttemptID = "x-attempt-id"
	HeaderSource    = "x-source"
)

// sourceName попадает в HeaderSource.
const sourceName = "checkout-service"
