package core

// System internal event codes. Application should use codes beyond 255.
type EventCode int

const (
	// A solid was selected and the angle reset.
	EVENT_CODE_SOLID_SELECTED EventCode = 0x01
	// The transformation choice changed.
	EVENT_CODE_TRANSFORMATION_SELECTED EventCode = 0x02
	// The animation moved from Idle to Running.
	EVENT_CODE_ANIMATION_STARTED EventCode = 0x03
	// The animation moved from Running to Idle.
	EVENT_CODE_ANIMATION_STOPPED EventCode = 0x04
	// The scene was cleared.
	EVENT_CODE_SCENE_CLEARED EventCode = 0x05
	// A tick advanced the angle.
	/* Context usage:
	 * angle := context.Angle
	 */
	EVENT_CODE_TICK EventCode = 0x06
	// The configuration file was reloaded and applied.
	EVENT_CODE_CONFIG_RELOADED EventCode = 0x07

	MAX_EVENT_CODE EventCode = 0xFF
)

// This should be more than enough codes...
const MAX_MESSAGE_CODES = 16384

type EventContext struct {
	Type  EventCode
	Angle int64
	Data  interface{}
}

// Should return true if handled.
type FnOnEvent func(context EventContext) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

// EventBus dispatches events synchronously on the caller's goroutine.
// It is meant to be used from the engine's event loop only.
type EventBus struct {
	registered map[EventCode][]*registeredEvent
}

func NewEventBus() *EventBus {
	return &EventBus{
		registered: make(map[EventCode][]*registeredEvent),
	}
}

/**
 * Register to listen for when events are sent with the provided code. Events with duplicate
 * listeners will not be registered again and will cause this to return false.
 */
func (b *EventBus) Register(code EventCode, listener interface{}, onEvent FnOnEvent) bool {
	if code < 0 || code >= MAX_MESSAGE_CODES || onEvent == nil {
		return false
	}
	for _, e := range b.registered[code] {
		if e.listener == listener {
			LogWarn("listener already registered for event code `%d`", code)
			return false
		}
	}
	b.registered[code] = append(b.registered[code], &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

/**
 * Unregister from listening for when events are sent with the provided code. If no matching
 * registration is found, this function returns false.
 */
func (b *EventBus) Unregister(code EventCode, listener interface{}) bool {
	events := b.registered[code]
	for i, e := range events {
		if e.listener == listener {
			b.registered[code] = append(events[:i], events[i+1:]...)
			return true
		}
	}
	return false
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * true, the event is considered handled and is not passed on to any more listeners.
 */
func (b *EventBus) Fire(context EventContext) bool {
	for _, e := range b.registered[context.Type] {
		if e.callback(context) {
			// Message has been handled, do not send to other listeners.
			return true
		}
	}
	return false
}

// Shutdown drops every registration.
func (b *EventBus) Shutdown() {
	b.registered = make(map[EventCode][]*registeredEvent)
}
